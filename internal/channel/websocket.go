package channel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/designdesk/session-gateway/internal/config"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WebSocketDialer dials the assistant backend over WebSocket.
type WebSocketDialer struct {
	cfg    config.AssistantChannelConfig
	logger *zap.Logger
}

func NewWebSocketDialer(cfg config.AssistantChannelConfig, logger *zap.Logger) *WebSocketDialer {
	return &WebSocketDialer{
		cfg:    cfg,
		logger: logger,
	}
}

func (d *WebSocketDialer) Dial(ctx context.Context) (Channel, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: d.cfg.HandshakeTimeout,
	}

	conn, _, err := dialer.DialContext(ctx, d.cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial assistant channel: %w", err)
	}

	conn.SetReadLimit(d.cfg.ReadLimit)

	d.logger.Info("assistant channel established", zap.String("url", d.cfg.URL))

	return &wsChannel{
		conn:         conn,
		writeTimeout: d.cfg.WriteTimeout,
	}, nil
}

type wsChannel struct {
	conn         *websocket.Conn
	writeTimeout time.Duration

	// gorilla supports one concurrent writer per connection; Send is called
	// from the connect goroutine and from request handlers.
	writeMu sync.Mutex
}

func (c *wsChannel) Send(ctx context.Context, payload any) error {
	deadline := time.Now().Add(c.writeTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}

	if err := c.conn.WriteJSON(payload); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}

	return nil
}

func (c *wsChannel) Receive() ([]byte, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("read frame: %w", err)
	}
	return data, nil
}

func (c *wsChannel) Close() error {
	// Best-effort close handshake; the peer may already be gone.
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return c.conn.Close()
}
