package requirements

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/designdesk/session-gateway/internal/config"
	"github.com/designdesk/session-gateway/internal/entity"
	pkgRetry "github.com/designdesk/session-gateway/internal/pkg/retry"
	pkghttp "github.com/designdesk/session-gateway/pkg/http"
	"go.uber.org/zap"
)

func testConnector(serverURL string) *Connector {
	cfg := config.RequirementsConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			RequestTimeout:        2 * time.Second,
			ConnTimeout:           2 * time.Second,
			KeepAlive:             30 * time.Second,
			IdleConnTimeout:       30 * time.Second,
			ResponseHeaderTimeout: 2 * time.Second,
			Url:                   serverURL,
		},
		Retry: *pkgRetry.DefaultRetryConfig(),
	}
	return NewConnector(cfg, zap.NewNop())
}

func TestCreatePostsDraftPayload(t *testing.T) {
	var received entity.CreateRequirementRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/requirements/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entity.Requirement{ID: 7, Title: received.Title, Status: entity.TaskStatusPending})
	}))
	defer srv.Close()

	c := testConnector(srv.URL)
	created, err := c.Create(context.Background(), &entity.CreateRequirementRequest{
		Title:           "Sale Banner",
		RequirementType: entity.RequirementTypeBanner,
		ReferenceImages: []string{},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID != 7 || created.Title != "Sale Banner" {
		t.Fatalf("unexpected response: %+v", created)
	}
	if received.RequirementType != entity.RequirementTypeBanner {
		t.Fatalf("payload type = %q", received.RequirementType)
	}
}

func TestListPassesFilterQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("status") != "pending" || q.Get("skip") != "5" || q.Get("limit") != "10" {
			t.Errorf("unexpected query: %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"title":"a","status":"pending"}]`))
	}))
	defer srv.Close()

	c := testConnector(srv.URL)
	items, err := c.List(context.Background(), &entity.ListRequirementsRequest{
		Status: entity.TaskStatusPending,
		Skip:   5,
		Limit:  10,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != 1 {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestUpstreamErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := testConnector(srv.URL)
	_, err := c.Create(context.Background(), &entity.CreateRequirementRequest{Title: "x"})
	if err == nil {
		t.Fatal("upstream failure swallowed")
	}

	var httpErr *pkghttp.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected HTTPError 422, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("non-2xx retried %d times; upstream failures must not be retried", calls.Load())
	}
}

func TestCreateNetworkFailureIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		hj, ok := w.(http.Hijacker)
		if !ok {
			t.Error("server does not support hijacking")
			return
		}
		conn, _, err := hj.Hijack()
		if err != nil {
			t.Errorf("hijack: %v", err)
			return
		}
		// Drop the connection mid-request so the client sees a network
		// error after the create may already be persisted upstream.
		conn.Close()
	}))
	defer srv.Close()

	c := testConnector(srv.URL)
	_, err := c.Create(context.Background(), &entity.CreateRequirementRequest{Title: "x"})

	var netErr *pkghttp.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("create sent %d times; a create must never be replayed", calls.Load())
	}
}

func TestNetworkErrorIsRetried(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // dialing a closed server yields network errors

	c := testConnector(srv.URL)
	_, err := c.Get(context.Background(), 1)

	var netErr *pkghttp.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}
