package state

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/five82/tael/internal/inbox"
)

// Store loads and saves one inbox document on disk.
type Store struct {
	Path   string
	Logger *slog.Logger

	mu sync.Mutex // serializes Update within this process
}

// NewStore returns a store for the document at path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load reads and parses the document. A missing file is an empty inbox.
// The result is normalized into canonical order.
func (s *Store) Load() (*inbox.Inbox, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return inbox.New(), nil
		}
		return nil, fmt.Errorf("read inbox: %w", err)
	}

	in := inbox.Parse(string(data))
	in.Normalize()
	s.logger().Debug("inbox loaded", "path", s.Path, "items", in.Len())
	return in, nil
}

// Save writes the rendered inbox, creating parent directories as needed.
// Saving an empty inbox removes the file instead of writing zero bytes.
func (s *Store) Save(in *inbox.Inbox) error {
	if in.IsEmpty() {
		if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove inbox: %w", err)
		}
		s.logger().Debug("inbox removed", "path", s.Path)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("create inbox dir: %w", err)
	}
	if err := writeAtomic(s.Path, []byte(inbox.Render(in))); err != nil {
		return fmt.Errorf("write inbox: %w", err)
	}
	s.logger().Debug("inbox saved", "path", s.Path, "items", in.Len())
	return nil
}

// writeAtomic replaces path in one rename so readers never see a partial
// document.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Update runs load, fn, save. The inbox is saved only when fn reports a change.
func (s *Store) Update(fn func(in *inbox.Inbox) bool) (*inbox.Inbox, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in, err := s.Load()
	if err != nil {
		return nil, err
	}
	if !fn(in) {
		return in, nil
	}
	if err := s.Save(in); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *Store) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Load reads the inbox at path.
func Load(path string) (*inbox.Inbox, error) {
	return NewStore(path).Load()
}

// Save writes the inbox to path.
func Save(path string, in *inbox.Inbox) error {
	return NewStore(path).Save(in)
}

// DefaultPath resolves the inbox document location from the environment.
//
// TAEL_INBOX_FILE wins. Otherwise the file lives under the data directory,
// one document per multiplexer session so parallel sessions stay separate.
func DefaultPath() string {
	if path := strings.TrimSpace(os.Getenv("TAEL_INBOX_FILE")); path != "" {
		return path
	}
	return filepath.Join(dataDir(), "tael", sessionName()+".md")
}

func dataDir() string {
	if dir := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(home, ".local", "share")
}

func sessionName() string {
	if name := strings.TrimSpace(os.Getenv("ZELLIJ_SESSION_NAME")); name != "" {
		return name
	}
	if pane := strings.TrimSpace(os.Getenv("TMUX_PANE")); pane != "" {
		return "tmux-" + pane
	}
	return "default"
}
