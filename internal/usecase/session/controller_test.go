package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/designdesk/session-gateway/internal/channel"
	"github.com/designdesk/session-gateway/internal/config"
	"github.com/designdesk/session-gateway/internal/entity"
	"github.com/designdesk/session-gateway/internal/pkg/validator"
	"github.com/designdesk/session-gateway/internal/sessionstore"
	"go.uber.org/zap"
)

// --- fakes ---

type fakeChannel struct {
	mu        sync.Mutex
	sent      []any
	sendErr   error
	incoming  chan []byte
	closeOnce sync.Once
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{incoming: make(chan []byte, 16)}
}

func (f *fakeChannel) Send(_ context.Context, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, payload)
	return nil
}

func (f *fakeChannel) Receive() ([]byte, error) {
	data, ok := <-f.incoming
	if !ok {
		return nil, errors.New("connection reset")
	}
	return data, nil
}

func (f *fakeChannel) Close() error {
	f.closeOnce.Do(func() { close(f.incoming) })
	return nil
}

func (f *fakeChannel) push(frame string) {
	f.incoming <- []byte(frame)
}

func (f *fakeChannel) sentFrames() []any {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]any, len(f.sent))
	copy(out, f.sent)
	return out
}

type fakeDialer struct {
	mu       sync.Mutex
	failures int
	sendFail int
	dials    int
	channels []*fakeChannel
}

func (d *fakeDialer) Dial(_ context.Context) (channel.Channel, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dials++
	if d.failures > 0 {
		d.failures--
		return nil, errors.New("dial refused")
	}
	ch := newFakeChannel()
	if d.sendFail > 0 {
		d.sendFail--
		ch.sendErr = errors.New("connection reset during write")
	}
	d.channels = append(d.channels, ch)
	return ch, nil
}

func (d *fakeDialer) dialCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dials
}

func (d *fakeDialer) channelCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.channels)
}

func (d *fakeDialer) channelAt(i int) *fakeChannel {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.channels[i]
}

type fakeStore struct {
	mu      sync.Mutex
	data    map[string]map[string]json.RawMessage
	cleared int
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]map[string]json.RawMessage)}
}

func (s *fakeStore) Load(_ context.Context, sessionID string) (map[string]json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]json.RawMessage)
	for k, v := range s.data[sessionID] {
		out[k] = v
	}
	return out, nil
}

func (s *fakeStore) Save(_ context.Context, sessionID string, values map[string]json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[sessionID] == nil {
		s.data[sessionID] = make(map[string]json.RawMessage)
	}
	for k, v := range values {
		s.data[sessionID][k] = v
	}
	return nil
}

func (s *fakeStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	s.cleared++
	return nil
}

func (s *fakeStore) clearCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleared
}

func (s *fakeStore) set(sessionID, key string, value any) {
	raw, _ := json.Marshal(value)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[sessionID] == nil {
		s.data[sessionID] = make(map[string]json.RawMessage)
	}
	s.data[sessionID][key] = raw
}

type fakeRequirements struct {
	mu      sync.Mutex
	created []*entity.CreateRequirementRequest
	err     error
	gate    chan struct{}
	entered int
}

func (f *fakeRequirements) Create(_ context.Context, req *entity.CreateRequirementRequest) (*entity.Requirement, error) {
	f.mu.Lock()
	f.entered++
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, req)
	return &entity.Requirement{
		ID:              int64(len(f.created)),
		Title:           req.Title,
		RequirementType: req.RequirementType,
		Status:          entity.TaskStatusPending,
	}, nil
}

func (f *fakeRequirements) enteredCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entered
}

func (f *fakeRequirements) lastCreated() *entity.CreateRequirementRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.created) == 0 {
		return nil
	}
	return f.created[len(f.created)-1]
}

// --- helpers ---

func testValidator() *validator.Validator {
	return validator.NewValidator(config.UploadConfig{
		MaxImageSize: 5 << 20,
		MaxImages:    16,
	})
}

func newTestController(t *testing.T, dialer *fakeDialer, store sessionstore.Store, reqs RequirementsConnector) *Controller {
	t.Helper()
	c := NewController("sess-1", dialer, store, reqs, testValidator(),
		ReconnectPolicy{Interval: 10 * time.Millisecond}, zap.NewNop())
	c.Start()
	t.Cleanup(c.Close)
	return c
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func connectController(t *testing.T, c *Controller, dialer *fakeDialer) *fakeChannel {
	t.Helper()
	waitFor(t, func() bool { return dialer.channelCount() >= 1 }, "controller never dialed")
	ch := dialer.channelAt(0)
	waitFor(t, func() bool { return len(ch.sentFrames()) >= 1 }, "init frame never sent")
	return ch
}

// --- tests ---

func TestFreshSessionSendsInitWithoutConversationID(t *testing.T) {
	dialer := &fakeDialer{}
	c := newTestController(t, dialer, newFakeStore(), &fakeRequirements{})

	ch := connectController(t, c, dialer)

	init, ok := ch.sentFrames()[0].(entity.InitFrame)
	if !ok {
		t.Fatalf("first frame is %T, want InitFrame", ch.sentFrames()[0])
	}
	if init.Type != entity.FrameTypeInit {
		t.Fatalf("init type = %q", init.Type)
	}
	if init.ConversationID != nil {
		t.Fatalf("fresh session sent conversation id %q", *init.ConversationID)
	}

	view := c.View()
	if view.ConnectionStatus != entity.ConnectionConnected {
		t.Fatalf("status = %q, want connected", view.ConnectionStatus)
	}
}

func TestSubmitUserMessageAppendsOptimistically(t *testing.T) {
	dialer := &fakeDialer{}
	c := newTestController(t, dialer, newFakeStore(), &fakeRequirements{})
	ch := connectController(t, c, dialer)

	if err := c.SubmitUserMessage(context.Background(), "I need a sale banner"); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	view := c.View()
	if len(view.Messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(view.Messages))
	}
	if view.Messages[0].Role != entity.RoleUser || view.Messages[0].Text != "I need a sale banner" {
		t.Fatalf("unexpected entry: %+v", view.Messages[0])
	}
	if !view.AwaitingReply {
		t.Fatal("awaiting-reply flag not set")
	}

	frames := ch.sentFrames()
	turn, ok := frames[len(frames)-1].(entity.UserTurnFrame)
	if !ok {
		t.Fatalf("last frame is %T, want UserTurnFrame", frames[len(frames)-1])
	}
	if turn.Message != "I need a sale banner" {
		t.Fatalf("turn message = %q", turn.Message)
	}
}

func TestSubmitUserMessageRejectsBlank(t *testing.T) {
	dialer := &fakeDialer{}
	c := newTestController(t, dialer, newFakeStore(), &fakeRequirements{})
	connectController(t, c, dialer)

	if err := c.SubmitUserMessage(context.Background(), "   "); !errors.Is(err, entity.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if len(c.View().Messages) != 0 {
		t.Fatal("blank message appended to transcript")
	}
}

func TestSubmitUserMessageWithoutChannelFails(t *testing.T) {
	dialer := &fakeDialer{failures: 1 << 30}
	c := newTestController(t, dialer, newFakeStore(), &fakeRequirements{})

	err := c.SubmitUserMessage(context.Background(), "anyone there?")
	if !errors.Is(err, entity.ErrChannelClosed) {
		t.Fatalf("expected ErrChannelClosed, got %v", err)
	}
	if c.View().ConnectionStatus != entity.ConnectionConnecting {
		t.Fatal("status should report connecting while the dial loop runs")
	}
}

func TestAssistantMessageAppliesFullTurn(t *testing.T) {
	dialer := &fakeDialer{}
	c := newTestController(t, dialer, newFakeStore(), &fakeRequirements{})
	ch := connectController(t, c, dialer)

	if err := c.SubmitUserMessage(context.Background(), "I need a sale banner"); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	ch.push(`{
		"type": "message",
		"response": "Noted a sale banner. What size?",
		"updated_form": {"title": "Sale Banner", "requirement_type": "banner"},
		"missing_fields": ["dimensions"],
		"is_complete": false,
		"design_specs": ["bold red palette"],
		"conversation_id": "conv-1"
	}`)

	waitFor(t, func() bool { return len(c.View().Messages) == 2 }, "assistant reply never arrived")

	view := c.View()
	if view.Messages[1].Role != entity.RoleAssistant {
		t.Fatalf("second entry role = %q", view.Messages[1].Role)
	}
	if view.Draft.Title != "Sale Banner" || view.Draft.RequirementType != entity.RequirementTypeBanner {
		t.Fatalf("patch not merged: %+v", view.Draft)
	}
	if len(view.MissingFields) != 1 || view.MissingFields[0] != entity.FieldDimensions {
		t.Fatalf("missing fields = %v", view.MissingFields)
	}
	if len(view.DesignSpecHints) != 1 || view.DesignSpecHints[0] != "bold red palette" {
		t.Fatalf("design specs = %v", view.DesignSpecHints)
	}
	if view.ConversationID != "conv-1" {
		t.Fatalf("conversation id = %q", view.ConversationID)
	}
	if view.AwaitingReply {
		t.Fatal("awaiting-reply flag not cleared by assistant turn")
	}
}

func TestConnectedFrameResumesWithoutTranscriptEntry(t *testing.T) {
	dialer := &fakeDialer{}
	c := newTestController(t, dialer, newFakeStore(), &fakeRequirements{})
	ch := connectController(t, c, dialer)

	ch.push(`{"type":"connected","conversation_id":"conv-9"}`)

	waitFor(t, func() bool { return c.View().ConversationID == "conv-9" }, "conversation id never adopted")

	if len(c.View().Messages) != 0 {
		t.Fatal("connected frame must not produce a chat entry")
	}
}

func TestReconnectResumesConversationAndKeepsAwaitingReply(t *testing.T) {
	dialer := &fakeDialer{}
	c := newTestController(t, dialer, newFakeStore(), &fakeRequirements{})
	ch := connectController(t, c, dialer)

	ch.push(`{"type":"connected","conversation_id":"conv-7"}`)
	waitFor(t, func() bool { return c.View().ConversationID == "conv-7" }, "conversation id never adopted")

	if err := c.SubmitUserMessage(context.Background(), "still with me?"); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	// Server drops the connection before replying.
	ch.Close()

	waitFor(t, func() bool { return dialer.channelCount() >= 2 }, "no reconnect attempt")
	ch2 := dialer.channelAt(1)
	waitFor(t, func() bool { return len(ch2.sentFrames()) >= 1 }, "no init on the new channel")

	init, ok := ch2.sentFrames()[0].(entity.InitFrame)
	if !ok {
		t.Fatalf("first frame on new channel is %T", ch2.sentFrames()[0])
	}
	if init.ConversationID == nil || *init.ConversationID != "conv-7" {
		t.Fatal("reconnect must resume the prior conversation")
	}

	// The turn in flight got no reply; the flag stays up until the next
	// exchange completes.
	if !c.View().AwaitingReply {
		t.Fatal("awaiting-reply flag should survive the drop")
	}
	if len(c.View().Messages) != 1 {
		t.Fatal("optimistic user entry should survive the drop")
	}
}

func TestDialFailuresRetryOnFixedInterval(t *testing.T) {
	dialer := &fakeDialer{failures: 3}
	c := newTestController(t, dialer, newFakeStore(), &fakeRequirements{})

	waitFor(t, func() bool { return dialer.channelCount() >= 1 }, "never got past dial failures")
	if dialer.dialCount() < 4 {
		t.Fatalf("dials = %d, want at least 4", dialer.dialCount())
	}
	connectController(t, c, dialer)
}

func TestInitSendFailureRetriesOnFreshChannel(t *testing.T) {
	dialer := &fakeDialer{sendFail: 1}
	c := newTestController(t, dialer, newFakeStore(), &fakeRequirements{})

	waitFor(t, func() bool { return dialer.channelCount() >= 2 }, "no redial after failed init")
	ch2 := dialer.channelAt(1)
	waitFor(t, func() bool { return len(ch2.sentFrames()) >= 1 }, "no init on the fresh channel")

	if _, ok := ch2.sentFrames()[0].(entity.InitFrame); !ok {
		t.Fatalf("first frame is %T, want InitFrame", ch2.sentFrames()[0])
	}
	waitFor(t, func() bool {
		return c.View().ConnectionStatus == entity.ConnectionConnected
	}, "never recovered from the failed init")

	// The dead channel never became visible to user turns.
	if len(dialer.channelAt(0).sentFrames()) != 0 {
		t.Fatal("frames recorded on the dead channel")
	}
	if err := c.SubmitUserMessage(context.Background(), "hello"); err != nil {
		t.Fatalf("submit after recovery failed: %v", err)
	}
}

func TestUpdateDraftRecomputesMissingFieldsLocally(t *testing.T) {
	dialer := &fakeDialer{failures: 1 << 30} // draft edits work without a channel
	c := newTestController(t, dialer, newFakeStore(), &fakeRequirements{})

	title := "Sale Banner"
	view := c.UpdateDraft(context.Background(), &entity.UpdateDraftRequest{Title: &title})

	want := []string{entity.FieldRequirementType, entity.FieldDimensions}
	if len(view.MissingFields) != 2 || view.MissingFields[0] != want[0] || view.MissingFields[1] != want[1] {
		t.Fatalf("missing fields = %v, want %v", view.MissingFields, want)
	}
	if view.IsComplete {
		t.Fatal("draft reported complete with missing fields")
	}

	rt := entity.RequirementTypeBanner
	dims := "1920x1080"
	view = c.UpdateDraft(context.Background(), &entity.UpdateDraftRequest{RequirementType: &rt, Dimensions: &dims})
	if len(view.MissingFields) != 0 || !view.IsComplete {
		t.Fatalf("completed draft still missing %v", view.MissingFields)
	}
}

func TestSubmitDraftResetsEverythingButDesigner(t *testing.T) {
	dialer := &fakeDialer{}
	store := newFakeStore()
	reqs := &fakeRequirements{}
	c := newTestController(t, dialer, store, reqs)
	ch := connectController(t, c, dialer)

	ch.push(`{"type":"connected","conversation_id":"conv-3"}`)
	waitFor(t, func() bool { return c.View().ConversationID == "conv-3" }, "conversation id never adopted")

	title := "Sale Banner"
	designerID := int64(5)
	c.UpdateDraft(context.Background(), &entity.UpdateDraftRequest{Title: &title, DesignerID: &designerID})
	if err := c.SubmitUserMessage(context.Background(), "ship it"); err != nil {
		t.Fatalf("submit message failed: %v", err)
	}

	created, err := c.SubmitDraft(context.Background())
	if err != nil {
		t.Fatalf("submit draft failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("created requirement has no id")
	}
	if reqs.lastCreated().RequirementType != entity.RequirementTypeOther {
		t.Fatalf("untyped draft submitted as %q, want other", reqs.lastCreated().RequirementType)
	}

	view := c.View()
	if view.Draft.Title != "" {
		t.Fatalf("title survived reset: %q", view.Draft.Title)
	}
	if view.Draft.DesignerID == nil || *view.Draft.DesignerID != designerID {
		t.Fatal("designer binding must survive the reset")
	}
	if len(view.Messages) != 0 || view.ConversationID != "" {
		t.Fatal("conversation state survived the reset")
	}
	if store.clearCount() != 1 {
		t.Fatalf("cache cleared %d times, want 1", store.clearCount())
	}

	// The channel is cycled so a fresh conversation gets negotiated.
	waitFor(t, func() bool { return dialer.channelCount() >= 2 }, "channel not cycled after submit")
	ch2 := dialer.channelAt(1)
	waitFor(t, func() bool { return len(ch2.sentFrames()) >= 1 }, "no init on the fresh channel")
	init := ch2.sentFrames()[0].(entity.InitFrame)
	if init.ConversationID != nil {
		t.Fatal("fresh conversation should not resume the submitted one")
	}
}

func TestSubmitDraftValidationFailureChangesNothing(t *testing.T) {
	dialer := &fakeDialer{}
	store := newFakeStore()
	c := newTestController(t, dialer, store, &fakeRequirements{})
	connectController(t, c, dialer)

	// No title, no designer.
	if _, err := c.SubmitDraft(context.Background()); !errors.Is(err, entity.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	if store.clearCount() != 0 {
		t.Fatal("cache cleared on failed submit")
	}
	if dialer.channelCount() != 1 {
		t.Fatal("channel cycled on failed submit")
	}
}

func TestSecondSubmitWhileCreateInFlightIsRejected(t *testing.T) {
	dialer := &fakeDialer{}
	reqs := &fakeRequirements{gate: make(chan struct{})}
	c := newTestController(t, dialer, newFakeStore(), reqs)
	connectController(t, c, dialer)

	title := "Sale Banner"
	designerID := int64(4)
	c.UpdateDraft(context.Background(), &entity.UpdateDraftRequest{Title: &title, DesignerID: &designerID})

	done := make(chan error, 1)
	go func() {
		_, err := c.SubmitDraft(context.Background())
		done <- err
	}()
	waitFor(t, func() bool { return reqs.enteredCount() == 1 }, "create never started")

	if _, err := c.SubmitDraft(context.Background()); !errors.Is(err, entity.ErrSubmitInProgress) {
		t.Fatalf("expected ErrSubmitInProgress, got %v", err)
	}

	close(reqs.gate)
	if err := <-done; err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if reqs.enteredCount() != 1 {
		t.Fatalf("create called %d times, want 1", reqs.enteredCount())
	}
}

func TestSubmitDraftUpstreamFailureKeepsState(t *testing.T) {
	dialer := &fakeDialer{}
	reqs := &fakeRequirements{err: errors.New("upstream down")}
	c := newTestController(t, dialer, newFakeStore(), reqs)
	connectController(t, c, dialer)

	title := "Sale Banner"
	designerID := int64(2)
	c.UpdateDraft(context.Background(), &entity.UpdateDraftRequest{Title: &title, DesignerID: &designerID})

	if _, err := c.SubmitDraft(context.Background()); err == nil {
		t.Fatal("upstream failure swallowed")
	}
	if c.View().Draft.Title != title {
		t.Fatal("draft reset despite failed submit")
	}
}

func TestAttachAndRemoveImagesPreservesUploadOrder(t *testing.T) {
	dialer := &fakeDialer{}
	c := newTestController(t, dialer, newFakeStore(), &fakeRequirements{})
	connectController(t, c, dialer)

	idA, err := c.AttachReferenceImage("a.png", "image/png", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("attach a failed: %v", err)
	}
	idB, err := c.AttachReferenceImage("b.png", "image/png", []byte{4, 5, 6})
	if err != nil {
		t.Fatalf("attach b failed: %v", err)
	}

	waitFor(t, func() bool {
		imgs := c.View().Draft.ReferenceImages
		return len(imgs) == 2 && imgs[0].DataURI != "" && imgs[1].DataURI != ""
	}, "encodings never completed")

	if err := c.RemoveReferenceImage(context.Background(), idB); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	imgs := c.View().Draft.ReferenceImages
	if len(imgs) != 1 || imgs[0].ID != idA {
		t.Fatalf("remaining images = %+v, want only %s", imgs, idA)
	}

	if err := c.RemoveReferenceImage(context.Background(), "no-such-id"); !errors.Is(err, entity.ErrImageNotFound) {
		t.Fatalf("expected ErrImageNotFound, got %v", err)
	}
}

func TestRestoreResumesFromDurableCache(t *testing.T) {
	store := newFakeStore()
	store.set("sess-1", sessionstore.KeyDraft, entity.RequirementDraft{
		Title:           "Sale Banner",
		ReferenceImages: []entity.ReferenceImage{},
	})
	store.set("sess-1", sessionstore.KeyMessages, []entity.ChatMessage{
		{Role: entity.RoleUser, Text: "I need a sale banner"},
		{Role: entity.RoleAssistant, Text: "What size?"},
	})
	store.set("sess-1", sessionstore.KeyConversationID, "conv-5")
	store.set("sess-1", sessionstore.KeyMissingFields, []string{entity.FieldRequirementType, entity.FieldDimensions})

	dialer := &fakeDialer{}
	c := newTestController(t, dialer, store, &fakeRequirements{})
	ch := connectController(t, c, dialer)

	view := c.View()
	if view.Draft.Title != "Sale Banner" {
		t.Fatalf("draft not restored: %+v", view.Draft)
	}
	if len(view.Messages) != 2 {
		t.Fatalf("transcript not restored: %d entries", len(view.Messages))
	}
	if view.ConversationID != "conv-5" {
		t.Fatalf("conversation id not restored: %q", view.ConversationID)
	}

	// Restored sessions resume the prior conversation on connect.
	init := ch.sentFrames()[0].(entity.InitFrame)
	if init.ConversationID == nil || *init.ConversationID != "conv-5" {
		t.Fatal("restored session should resume its conversation")
	}
}

func TestMalformedCacheEntriesAreSkipped(t *testing.T) {
	store := newFakeStore()
	store.data["sess-1"] = map[string]json.RawMessage{
		sessionstore.KeyDraft:          json.RawMessage(`{broken`),
		sessionstore.KeyConversationID: json.RawMessage(`"conv-8"`),
	}

	dialer := &fakeDialer{failures: 1 << 30}
	c := newTestController(t, dialer, store, &fakeRequirements{})

	view := c.View()
	if view.Draft.Title != "" {
		t.Fatal("malformed draft should fall back to empty")
	}
	if view.ConversationID != "conv-8" {
		t.Fatal("valid sibling entry lost to a malformed one")
	}
}

func TestManagerReusesControllersPerSession(t *testing.T) {
	dialer := &fakeDialer{failures: 1 << 30}
	m := NewManager(dialer, newFakeStore(), &fakeRequirements{}, testValidator(),
		ReconnectPolicy{Interval: 10 * time.Millisecond}, zap.NewNop())
	t.Cleanup(m.Close)

	a := m.GetOrCreate("sess-a")
	if m.GetOrCreate("sess-a") != a {
		t.Fatal("same session id produced a second controller")
	}
	if m.GetOrCreate("sess-b") == a {
		t.Fatal("distinct sessions share a controller")
	}
}

func TestImageCountCapRejectsWithoutChangingList(t *testing.T) {
	dialer := &fakeDialer{failures: 1 << 30}
	c := newTestController(t, dialer, newFakeStore(), &fakeRequirements{})

	for i := 0; i < 16; i++ {
		if _, err := c.AttachReferenceImage(fmt.Sprintf("img-%d.png", i), "image/png", []byte{1}); err != nil {
			t.Fatalf("attach %d failed: %v", i, err)
		}
	}

	if _, err := c.AttachReferenceImage("one-too-many.png", "image/png", []byte{1}); !errors.Is(err, entity.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	if len(c.View().Draft.ReferenceImages) != 16 {
		t.Fatalf("image list changed by rejected upload: %d", len(c.View().Draft.ReferenceImages))
	}
}
