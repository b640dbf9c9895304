// Package highscore persists the best score between runs.
package highscore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

// Key names the best-score record in the scores file.
const Key = "laneshift_highscore"

// Record is one stored best score.
type Record struct {
	Score   float64   `toml:"score"`
	Updated time.Time `toml:"updated"`
}

// FileStore keeps records in a TOML file, one table per key. Tables other
// than Key are written back as they were read.
type FileStore struct {
	path string
	now  func() time.Time

	mu sync.Mutex
}

// NewFileStore returns a store backed by path. The file and its directory
// are created on the first improved score.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// Path is the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Best returns the stored best score, or zero if nothing was stored yet.
func (s *FileStore) Best() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, own, err := s.read()
	if err != nil {
		return 0, err
	}
	return own.Score, nil
}

// Submit stores score if it beats the current best.
func (s *FileStore) Submit(score float64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, own, err := s.read()
	if err != nil {
		return false, err
	}
	if score <= own.Score {
		return false, nil
	}

	doc[Key] = Record{Score: score, Updated: s.now().UTC().Truncate(time.Second)}
	if err := s.write(doc); err != nil {
		return false, err
	}
	return true, nil
}

// read returns the whole document untyped, so foreign tables round-trip,
// along with the decoded Key record.
func (s *FileStore) read() (map[string]any, Record, error) {
	doc := make(map[string]any)
	var own struct {
		Record Record `toml:"laneshift_highscore"`
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, own.Record, nil
	}
	if err != nil {
		return nil, Record{}, fmt.Errorf("reading high scores: %w", err)
	}
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, Record{}, fmt.Errorf("reading high scores: %w", err)
	}
	if _, err := toml.Decode(string(data), &own); err != nil {
		return nil, Record{}, fmt.Errorf("reading high scores: %w", err)
	}
	return doc, own.Record, nil
}

func (s *FileStore) write(doc map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating high score directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".scores-*.toml")
	if err != nil {
		return fmt.Errorf("writing high scores: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(doc); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding high scores: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing high scores: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("writing high scores: %w", err)
	}
	return nil
}

// MemoryStore keeps the best score for the lifetime of the process.
type MemoryStore struct {
	mu   sync.Mutex
	best float64
}

func (m *MemoryStore) Best() (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best, nil
}

func (m *MemoryStore) Submit(score float64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if score <= m.best {
		return false, nil
	}
	m.best = score
	return true, nil
}
