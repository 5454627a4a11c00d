package auth

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Static validates requests against a single shared token held in memory.
type Static string

// IsValidToken reports whether the supplied token matches exactly.
func (s Static) IsValidToken(token string) bool {
	return s != "" && token == string(s)
}

// TokenStore holds the shared feed token read from a file on disk and keeps
// it current when the file changes. The first non-empty trimmed line of the
// file is the token; an empty file rejects everything.
type TokenStore struct {
	file         string
	logger       *log.Logger
	watcher      *fsnotify.Watcher
	refreshDelay time.Duration

	mu    sync.RWMutex
	token string

	refreshMu    sync.Mutex
	refreshTimer *time.Timer
	done         chan struct{}
	wg           sync.WaitGroup
	closeOnce    sync.Once
	closeErr     error
}

// NewTokenStore creates a TokenStore backed by the provided token file path.
func NewTokenStore(filePath string, debounce time.Duration, logger *log.Logger) (*TokenStore, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = log.Default()
	}

	s := &TokenStore{
		file:         filepath.Clean(filePath),
		logger:       logger,
		watcher:      watcher,
		refreshDelay: debounce,
		done:         make(chan struct{}),
	}

	if err := s.refresh(); err != nil {
		watcher.Close()
		return nil, err
	}

	// Watch the directory too: editors replace files instead of rewriting
	// them, which surfaces as create/rename events on the parent.
	dir := filepath.Dir(s.file)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}
	if err := watcher.Add(s.file); err != nil {
		s.logger.Printf("token watcher could not watch file directly: %v", err)
	}

	s.wg.Add(1)
	go s.run()

	return s, nil
}

// Close stops the file watcher and releases resources.
func (s *TokenStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)

		s.refreshMu.Lock()
		if s.refreshTimer != nil {
			s.refreshTimer.Stop()
			s.refreshTimer = nil
		}
		s.refreshMu.Unlock()

		s.closeErr = s.watcher.Close()
		s.wg.Wait()
	})
	return s.closeErr
}

// IsValidToken reports whether the supplied token matches the stored one.
func (s *TokenStore) IsValidToken(token string) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && token == s.token
}

func (s *TokenStore) run() {
	defer s.wg.Done()

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			s.handleEvent(event)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Printf("token watcher error: %v", err)
		case <-s.done:
			return
		}
	}
}

func (s *TokenStore) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != s.file {
		return
	}

	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
		s.scheduleRefresh()
	}
}

func (s *TokenStore) scheduleRefresh() {
	select {
	case <-s.done:
		return
	default:
	}

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	if s.refreshTimer != nil {
		s.refreshTimer.Stop()
	}

	s.refreshTimer = time.AfterFunc(s.refreshDelay, func() {
		if err := s.refresh(); err != nil {
			s.logger.Printf("token refresh error: %v", err)
		}

		s.refreshMu.Lock()
		if s.refreshTimer != nil {
			s.refreshTimer = nil
		}
		s.refreshMu.Unlock()
	})
}

func (s *TokenStore) refresh() error {
	data, err := os.ReadFile(s.file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.setToken("")
			s.logger.Printf("token file %s missing; rejecting all requests", s.file)
			return nil
		}
		return err
	}

	token := ""
	for _, line := range strings.Split(string(data), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			token = trimmed
			break
		}
	}

	s.setToken(token)
	if token == "" {
		s.logger.Printf("token file %s empty; rejecting all requests", s.file)
	} else {
		s.logger.Printf("feed token loaded")
	}
	return nil
}

func (s *TokenStore) setToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}
