package session

import (
	"sync"

	"github.com/designdesk/session-gateway/internal/channel"
	"github.com/designdesk/session-gateway/internal/pkg/validator"
	"github.com/designdesk/session-gateway/internal/sessionstore"
	"go.uber.org/zap"
)

// Manager hands out one controller per session id. A session unknown to the
// manager is created on first touch and restored from the durable cache, so a
// reload resumes exactly where it left off.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Controller

	dialer       channel.Dialer
	store        sessionstore.Store
	requirements RequirementsConnector
	validator    *validator.Validator
	policy       ReconnectPolicy
	logger       *zap.Logger
}

func NewManager(
	dialer channel.Dialer,
	store sessionstore.Store,
	requirements RequirementsConnector,
	v *validator.Validator,
	policy ReconnectPolicy,
	logger *zap.Logger,
) *Manager {
	return &Manager{
		sessions:     make(map[string]*Controller),
		dialer:       dialer,
		store:        store,
		requirements: requirements,
		validator:    v,
		policy:       policy,
		logger:       logger,
	}
}

// GetOrCreate returns the controller for the session, starting a new one
// (restored from cache) when none is live yet.
func (m *Manager) GetOrCreate(sessionID string) *Controller {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.sessions[sessionID]; ok {
		return c
	}

	c := NewController(sessionID, m.dialer, m.store, m.requirements, m.validator, m.policy, m.logger)
	m.sessions[sessionID] = c
	c.Start()

	m.logger.Info("session controller started", zap.String("session_id", sessionID))
	return c
}

// Close shuts every live controller down.
func (m *Manager) Close() {
	m.mu.Lock()
	controllers := make([]*Controller, 0, len(m.sessions))
	for _, c := range m.sessions {
		controllers = append(controllers, c)
	}
	m.sessions = make(map[string]*Controller)
	m.mu.Unlock()

	for _, c := range controllers {
		c.Close()
	}
}
