package sessionstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/designdesk/session-gateway/internal/config"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// FileStore keeps session values in an in-process cache and snapshots them to
// a JSON file so sessions survive a restart. Disk failures are logged and
// otherwise ignored.
type FileStore struct {
	mu     sync.Mutex
	cache  *gocache.Cache
	path   string
	delay  time.Duration
	timer  *time.Timer
	logger *zap.Logger
}

func NewFileStore(cfg config.SessionCacheConfig, logger *zap.Logger) *FileStore {
	s := &FileStore{
		cache:  gocache.New(gocache.NoExpiration, 0),
		path:   cfg.FilePath,
		delay:  cfg.SaveInterval,
		logger: logger,
	}
	s.restore()
	return s
}

func (s *FileStore) Load(_ context.Context, sessionID string) (map[string]json.RawMessage, error) {
	values := make(map[string]json.RawMessage)
	for _, key := range Keys {
		if raw, ok := s.cache.Get(cacheKey(sessionID, key)); ok {
			values[key] = raw.(json.RawMessage)
		}
	}
	return values, nil
}

func (s *FileStore) Save(_ context.Context, sessionID string, values map[string]json.RawMessage) error {
	for key, raw := range values {
		s.cache.Set(cacheKey(sessionID, key), raw, gocache.NoExpiration)
	}
	s.scheduleFlush()
	return nil
}

func (s *FileStore) Clear(_ context.Context, sessionID string) error {
	for _, key := range Keys {
		s.cache.Delete(cacheKey(sessionID, key))
	}
	s.scheduleFlush()
	return nil
}

// Close flushes any pending snapshot.
func (s *FileStore) Close() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	s.flush()
}

// scheduleFlush coalesces bursts of writes into one snapshot.
func (s *FileStore) scheduleFlush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		return
	}
	s.timer = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		s.timer = nil
		s.mu.Unlock()
		s.flush()
	})
}

func (s *FileStore) flush() {
	snapshot := make(map[string]json.RawMessage)
	for key, item := range s.cache.Items() {
		snapshot[key] = item.Object.(json.RawMessage)
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.Warn("marshal session snapshot failed", zap.Error(err))
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.logger.Warn("create session cache directory failed", zap.Error(err))
		return
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		s.logger.Warn("write session snapshot failed", zap.Error(err))
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.logger.Warn("replace session snapshot failed", zap.Error(err))
	}
}

// restore loads the previous snapshot. A missing or corrupt file means a
// fresh cache; individual unreadable entries are skipped.
func (s *FileStore) restore() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("read session snapshot failed", zap.Error(err))
		}
		return
	}

	var snapshot map[string]json.RawMessage
	if err := json.Unmarshal(data, &snapshot); err != nil {
		s.logger.Warn("decode session snapshot failed, starting empty", zap.Error(err))
		return
	}

	for key, raw := range snapshot {
		if !strings.Contains(key, "/") {
			continue
		}
		s.cache.Set(key, raw, gocache.NoExpiration)
	}

	s.logger.Info("session snapshot restored", zap.Int("entries", len(snapshot)))
}

func cacheKey(sessionID, key string) string {
	return sessionID + "/" + key
}
