package common

import (
	"context"
	"errors"

	"github.com/avast/retry-go/v4"
	"github.com/designdesk/session-gateway/internal/config"
	pkgRetry "github.com/designdesk/session-gateway/internal/pkg/retry"
	pkgHTTP "github.com/designdesk/session-gateway/pkg/http"
	"go.uber.org/zap"
)

func NewBaseConnector(cfg config.HTTPClientConfig, logger *zap.Logger) *pkgHTTP.Connector {
	connCfg := &pkgHTTP.ConnectorConfig{
		Logger:  logger,
		BaseURL: cfg.Url,
	}

	return pkgHTTP.NewConnector(
		connCfg,
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithRequestLogging(),
		pkgHTTP.WithAuthToken(cfg.Token),
	)
}

// DoWithRetry retries fn on network-level failures only. Non-2xx responses
// are surfaced immediately: upstream request failures are never retried
// automatically.
func DoWithRetry(ctx context.Context, rc *pkgRetry.RetryConfig, fn func() error) error {
	opts := append(rc.ToRetryOptions(),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var netErr *pkgHTTP.NetworkError
			return errors.As(err, &netErr)
		}),
	)
	return retry.Do(fn, opts...)
}
