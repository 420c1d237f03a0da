// Package store persists journal entries in a single flat JSON file,
// mirroring the full entry list in memory. The file is the lowdb-style
// document {"entries": [...]} so databases written by earlier deployments
// load unchanged.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/lazypower/daybook/internal/journal"
)

// record is the on-disk entry shape. It carries the legacy single-image
// field so older databases still load; the canonical form is always
// image_paths and that is the only form ever written back.
type record struct {
	ID         string    `json:"id"`
	Title      string    `json:"title,omitempty"`
	Content    string    `json:"content"`
	ImagePaths []string  `json:"image_paths"`
	ImagePath  string    `json:"image_path,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// entry converts a disk record to the domain shape, folding the legacy
// single-image field into image_paths at this boundary only.
func (r record) entry() journal.Entry {
	paths := r.ImagePaths
	if len(paths) == 0 && r.ImagePath != "" {
		paths = []string{r.ImagePath}
	}
	if paths == nil {
		paths = []string{}
	}
	return journal.Entry{
		ID:         r.ID,
		Title:      r.Title,
		Content:    r.Content,
		ImagePaths: paths,
		CreatedAt:  r.CreatedAt,
	}
}

// dbFile is the top-level document.
type dbFile struct {
	Entries []record `json:"entries"`
}

// Store is the single source of truth for entries. Every mutation runs
// under one mutex and rewrites the whole file before it is considered
// applied, so concurrent callers serialize instead of each reading a
// stale snapshot and clobbering the other's write.
type Store struct {
	mu      sync.Mutex
	path    string
	entries []journal.Entry
}

// Open loads the JSON store at path, creating an empty one (and its
// parent directory) if the file does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if dir := filepath.Dir(path); dir != "." {
			if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
				return nil, fmt.Errorf("create store dir: %w", mkErr)
			}
		}
		if wErr := s.persist(nil); wErr != nil {
			return nil, wErr
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}

	var doc dbFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode store %s: %w", path, err)
	}
	s.entries = make([]journal.Entry, 0, len(doc.Entries))
	for _, r := range doc.Entries {
		s.entries = append(s.entries, r.entry())
	}
	return s, nil
}

// Append adds a new entry and rewrites the file.
func (s *Store) Append(e journal.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(e.ID) >= 0 {
		return fmt.Errorf("append %s: %w", e.ID, journal.ErrDuplicateID)
	}

	next := make([]journal.Entry, len(s.entries), len(s.entries)+1)
	copy(next, s.entries)
	next = append(next, e)
	return s.commit(next)
}

// Get returns the entry with the given id.
func (s *Store) Get(id string) (journal.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return journal.Entry{}, fmt.Errorf("get %s: %w", id, journal.ErrNotFound)
	}
	return s.entries[i], nil
}

// Update merges the given fields into an existing entry. Nil fields stay
// untouched; a non-nil image list replaces the stored one wholesale.
func (s *Store) Update(id string, u journal.Update) (journal.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return journal.Entry{}, fmt.Errorf("update %s: %w", id, journal.ErrNotFound)
	}

	next := make([]journal.Entry, len(s.entries))
	copy(next, s.entries)

	e := next[i]
	if u.Title != nil {
		e.Title = *u.Title
	}
	if u.Content != nil {
		e.Content = *u.Content
	}
	if u.ImagePaths != nil {
		e.ImagePaths = u.ImagePaths
	}
	next[i] = e

	if err := s.commit(next); err != nil {
		return journal.Entry{}, err
	}
	return e, nil
}

// Remove deletes the entry with the given id. Removing an id that is not
// present is a no-op, so repeated deletes never fail.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}

	next := make([]journal.Entry, 0, len(s.entries)-1)
	next = append(next, s.entries[:i]...)
	next = append(next, s.entries[i+1:]...)
	return s.commit(next)
}

// List returns all entries in insertion order.
func (s *Store) List() []journal.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]journal.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Path returns the location of the backing file.
func (s *Store) Path() string { return s.path }

// indexOf returns the position of id, or -1. Caller must hold mu.
func (s *Store) indexOf(id string) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// commit writes the candidate entry list to disk and, only on success,
// makes it the in-memory state. A failed write therefore leaves memory
// and disk agreeing on the pre-mutation state instead of diverging.
// Caller must hold mu.
func (s *Store) commit(next []journal.Entry) error {
	if err := s.persist(next); err != nil {
		return err
	}
	s.entries = next
	return nil
}

// persist serializes the whole collection and rewrites the file through
// a temp-file rename, so readers never observe a half-written document.
// Caller must hold mu or own s exclusively.
func (s *Store) persist(entries []journal.Entry) error {
	doc := dbFile{Entries: make([]record, len(entries))}
	for i, e := range entries {
		paths := e.ImagePaths
		if paths == nil {
			paths = []string{}
		}
		doc.Entries[i] = record{
			ID:         e.ID,
			Title:      e.Title,
			Content:    e.Content,
			ImagePaths: paths,
			CreatedAt:  e.CreatedAt,
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &journal.StorageError{Op: "encode", Err: err}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &journal.StorageError{Op: "write", Err: err}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return &journal.StorageError{Op: "rename", Err: err}
	}
	return nil
}
