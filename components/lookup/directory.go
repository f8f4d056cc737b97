package lookup

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// Directory answers whether an account name is registered. The returned
// string is the canonical spelling of the stored name.
type Directory interface {
	Find(ctx context.Context, acct string) (string, bool, error)
}

// NameSet is an in-memory Directory. It is safe for concurrent use.
type NameSet struct {
	mu    sync.RWMutex
	names map[string]string
}

// NewNameSet builds a set holding names.
func NewNameSet(names ...string) *NameSet {
	s := &NameSet{names: make(map[string]string, len(names))}
	for _, name := range names {
		s.Add(name)
	}
	return s
}

// ReadNames builds a set from r, one name per line. Blank lines and lines
// starting with "#" are skipped.
func ReadNames(r io.Reader) (*NameSet, error) {
	s := NewNameSet()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s.Add(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("lookup: read names: %w", err)
	}
	return s, nil
}

// Add registers name. Empty names are ignored.
func (s *NameSet) Add(name string) {
	key := Normalize(name)
	if key == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names[key] = strings.TrimPrefix(strings.TrimSpace(name), "@")
}

// Len returns the number of names.
func (s *NameSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.names)
}

// Names returns the stored spellings, sorted.
func (s *NameSet) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Find implements Directory.
func (s *NameSet) Find(_ context.Context, acct string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name, ok := s.names[Normalize(acct)]
	return name, ok, nil
}

// Normalize folds acct for comparison.
func Normalize(acct string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(acct), "@"))
}
