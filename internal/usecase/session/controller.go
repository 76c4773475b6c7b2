package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/designdesk/session-gateway/internal/channel"
	"github.com/designdesk/session-gateway/internal/entity"
	"github.com/designdesk/session-gateway/internal/pkg/validator"
	"github.com/designdesk/session-gateway/internal/sessionstore"
	"go.uber.org/zap"
)

// Controller owns one conversation: the requirement draft, the reconciled
// conversation state and the live channel to the assistant backend. All state
// transitions happen on message-arrival or user-action callbacks, serialized
// by one mutex.
type Controller struct {
	id string

	mu    sync.Mutex
	draft entity.RequirementDraft
	conv  entity.ConversationState

	ch         channel.Channel
	connecting bool
	closed     bool
	submitting bool
	reconnect  *time.Timer

	dialer       channel.Dialer
	store        sessionstore.Store
	requirements RequirementsConnector
	validator    *validator.Validator
	policy       ReconnectPolicy
	logger       *zap.Logger
}

func NewController(
	sessionID string,
	dialer channel.Dialer,
	store sessionstore.Store,
	requirements RequirementsConnector,
	v *validator.Validator,
	policy ReconnectPolicy,
	logger *zap.Logger,
) *Controller {
	c := &Controller{
		id:           sessionID,
		dialer:       dialer,
		store:        store,
		requirements: requirements,
		validator:    v,
		policy:       policy,
		logger:       logger.With(zap.String("session_id", sessionID)),
		draft: entity.RequirementDraft{
			ReferenceImages: []entity.ReferenceImage{},
		},
		conv: entity.ConversationState{
			Messages:         []entity.ChatMessage{},
			DesignSpecHints:  []string{},
			ConnectionStatus: entity.ConnectionConnecting,
		},
	}
	c.conv.MissingFields = c.draft.MissingFields()

	c.restore(context.Background())
	return c
}

// Start opens the assistant channel. Called once after construction.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startConnectLocked()
}

// Close tears the session down. No reconnect is scheduled afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	if c.reconnect != nil {
		c.reconnect.Stop()
		c.reconnect = nil
	}
	ch := c.ch
	c.ch = nil
	c.mu.Unlock()

	if ch != nil {
		ch.Close()
	}
}

// SubmitUserMessage appends the user entry optimistically, marks the session
// as awaiting a reply and sends the turn with the full current draft. With no
// live channel the operation is rejected and a reconnect is kicked off as a
// side effect.
func (c *Controller) SubmitUserMessage(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return entity.ErrEmptyMessage
	}

	c.mu.Lock()
	if c.ch == nil || c.conv.ConnectionStatus != entity.ConnectionConnected {
		c.startConnectLocked()
		c.mu.Unlock()
		return entity.ErrChannelClosed
	}

	ch := c.ch
	c.conv.Messages = append(c.conv.Messages, entity.ChatMessage{
		Role:      entity.RoleUser,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	})
	c.conv.AwaitingReply = true

	frame := entity.UserTurnFrame{
		Message:        text,
		CurrentForm:    c.draft,
		ConversationID: c.conv.ConversationID,
	}
	c.persistLocked(ctx, sessionstore.KeyMessages)
	c.mu.Unlock()

	if err := ch.Send(ctx, frame); err != nil {
		// The channel is going down; the read loop schedules the reconnect.
		// The optimistic user entry stays in the transcript.
		c.logger.Warn("send user turn failed", zap.Error(err))
		return fmt.Errorf("%w: %v", entity.ErrChannelClosed, err)
	}

	return nil
}

// UpdateDraft applies local form edits. Missing fields are recomputed
// synchronously, independent of the assistant.
func (c *Controller) UpdateDraft(ctx context.Context, req *entity.UpdateDraftRequest) entity.SessionView {
	c.mu.Lock()
	defer c.mu.Unlock()

	if req.Title != nil {
		c.draft.Title = *req.Title
	}
	if req.RequirementType != nil {
		c.draft.RequirementType = *req.RequirementType
	}
	if req.Dimensions != nil {
		c.draft.Dimensions = *req.Dimensions
	}
	if req.Copywriting != nil {
		c.draft.Copywriting = *req.Copywriting
	}
	if req.AdditionalNotes != nil {
		c.draft.AdditionalNotes = *req.AdditionalNotes
	}
	if req.DesignerID != nil {
		c.draft.DesignerID = req.DesignerID
	}

	c.recomputeMissingLocked()
	c.persistLocked(ctx, sessionstore.KeyDraft, sessionstore.KeyMissingFields, sessionstore.KeyIsComplete)

	return c.viewLocked()
}

// SubmitDraft sends the one-shot create to the Requirements service. On
// success the whole session resets (only the designer binding survives) and
// the channel is cycled so a fresh conversation id gets negotiated. On
// failure nothing changes. Only one submission may be in flight at a time;
// the create is not retried, so a second attempt would duplicate it.
func (c *Controller) SubmitDraft(ctx context.Context) (*entity.Requirement, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return nil, entity.ErrSubmitInProgress
	}
	if err := c.validator.ValidateSubmitDraft(&c.draft); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.submitting = true
	req := buildCreateRequest(&c.draft)
	c.mu.Unlock()

	created, err := c.requirements.Create(ctx, req)
	if err != nil {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
		return nil, fmt.Errorf("create requirement: %w", err)
	}

	c.mu.Lock()
	c.submitting = false
	designerID := c.draft.DesignerID
	c.draft = entity.RequirementDraft{
		DesignerID:      designerID,
		ReferenceImages: []entity.ReferenceImage{},
	}
	c.conv.Messages = []entity.ChatMessage{}
	c.conv.DesignSpecHints = []string{}
	c.conv.ConversationID = ""
	c.conv.AwaitingReply = false
	c.recomputeMissingLocked()

	old := c.ch
	c.ch = nil
	c.conv.ConnectionStatus = entity.ConnectionConnecting
	c.mu.Unlock()

	if err := c.store.Clear(ctx, c.id); err != nil {
		c.logger.Warn("clear session cache failed", zap.Error(err))
	}

	if old != nil {
		old.Close()
	}

	c.mu.Lock()
	c.startConnectLocked()
	c.mu.Unlock()

	c.logger.Info("draft submitted, session reset", zap.Int64("requirement_id", created.ID))
	return created, nil
}

// View returns a copy of the reconciled session state.
func (c *Controller) View() entity.SessionView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// startConnectLocked launches the dial loop unless one is already running.
func (c *Controller) startConnectLocked() {
	if c.closed || c.connecting || c.ch != nil {
		return
	}
	c.connecting = true
	c.conv.ConnectionStatus = entity.ConnectionConnecting
	go c.connect()
}

// connect dials until a channel is up, waiting the policy interval between
// attempts. On success the init frame goes out immediately with the last
// known conversation id.
func (c *Controller) connect() {
	attempts := 0
	for {
		ch, err := c.dialer.Dial(context.Background())
		if err == nil {
			c.attach(ch)
			return
		}

		attempts++
		c.logger.Warn("assistant dial failed",
			zap.Error(err),
			zap.Int("attempt", attempts),
		)

		if c.policy.MaxAttempts > 0 && attempts >= c.policy.MaxAttempts {
			c.logger.Error("giving up on assistant channel",
				zap.Int("attempts", attempts),
			)
			c.mu.Lock()
			c.connecting = false
			c.mu.Unlock()
			return
		}

		time.Sleep(c.policy.Interval)

		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()
	}
}

func (c *Controller) attach(ch channel.Channel) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		ch.Close()
		return
	}
	convID := c.conv.ConversationID
	c.mu.Unlock()

	init := entity.InitFrame{Type: entity.FrameTypeInit}
	if convID != "" {
		init.ConversationID = &convID
	}

	// Init must be the first frame on the wire, so it goes out before the
	// channel becomes visible to user turns.
	if err := ch.Send(context.Background(), init); err != nil {
		c.logger.Warn("send init failed", zap.Error(err))
		ch.Close()
		c.mu.Lock()
		c.connecting = false
		c.conv.ConnectionStatus = entity.ConnectionConnecting
		c.scheduleReconnectLocked()
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		ch.Close()
		return
	}
	c.ch = ch
	c.connecting = false
	c.conv.ConnectionStatus = entity.ConnectionConnected
	c.mu.Unlock()

	go c.readLoop(ch)
}

// readLoop pumps frames until the channel dies, then hands off to the
// reconnect path. Unknown frame variants are rejected and logged, not
// silently dropped.
func (c *Controller) readLoop(ch channel.Channel) {
	for {
		data, err := ch.Receive()
		if err != nil {
			c.logger.Warn("assistant channel closed", zap.Error(err))
			ch.Close()
			c.channelDown(ch)
			return
		}

		frame, err := entity.DecodeServerFrame(data)
		if err != nil {
			c.logger.Error("rejected assistant frame", zap.Error(err))
			continue
		}

		switch f := frame.(type) {
		case entity.ConnectedFrame:
			c.handleConnected(f)
		case entity.MessageFrame:
			c.handleMessage(f)
		}
	}
}

// channelDown schedules exactly one reconnection attempt after the fixed
// delay. A stale channel (already replaced) schedules nothing, so the error
// and close paths of one connection cannot double-schedule.
func (c *Controller) channelDown(ch channel.Channel) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ch != ch {
		return
	}
	c.ch = nil
	c.conv.ConnectionStatus = entity.ConnectionConnecting
	c.scheduleReconnectLocked()
}

// scheduleReconnectLocked arms the single reconnect timer for the fixed delay.
func (c *Controller) scheduleReconnectLocked() {
	if c.closed || c.connecting {
		return
	}
	c.connecting = true
	c.reconnect = time.AfterFunc(c.policy.Interval, func() {
		c.mu.Lock()
		c.reconnect = nil
		if c.closed {
			c.connecting = false
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()
		c.connect()
	})
}

// handleConnected is the silent resume path: adopt the conversation id,
// append nothing.
func (c *Controller) handleConnected(f entity.ConnectedFrame) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.conv.ConversationID = f.ConversationID
	c.persistLocked(context.Background(), sessionstore.KeyConversationID)

	c.logger.Info("conversation resumed", zap.String("conversation_id", f.ConversationID))
}

// handleMessage applies one assistant turn: append the assistant entry, merge
// the partial form update, replace the derived fields wholesale and clear the
// awaiting-reply flag.
func (c *Controller) handleMessage(f entity.MessageFrame) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.conv.Messages = append(c.conv.Messages, entity.ChatMessage{
		Role:      entity.RoleAssistant,
		Text:      f.Response,
		CreatedAt: time.Now().UTC(),
	})

	f.UpdatedForm.Apply(&c.draft)

	c.conv.MissingFields = f.MissingFields
	if c.conv.MissingFields == nil {
		c.conv.MissingFields = []string{}
	}
	c.conv.IsComplete = f.IsComplete
	c.conv.DesignSpecHints = f.DesignSpecs
	if c.conv.DesignSpecHints == nil {
		c.conv.DesignSpecHints = []string{}
	}
	c.conv.ConversationID = f.ConversationID
	c.conv.AwaitingReply = false

	c.persistLocked(context.Background(), sessionstore.Keys...)
}

// recomputeMissingLocked derives missing fields from the draft in the fixed
// required-field order.
func (c *Controller) recomputeMissingLocked() {
	missing := c.draft.MissingFields()
	if missing == nil {
		missing = []string{}
	}
	c.conv.MissingFields = missing
	c.conv.IsComplete = len(missing) == 0
}
