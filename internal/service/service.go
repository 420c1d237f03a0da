// Package service orchestrates the entry store, the date transform, the
// memory query, and image file storage behind the operations the HTTP
// and CLI surfaces call. Every operation is a single atomic step.
package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lazypower/daybook/internal/images"
	"github.com/lazypower/daybook/internal/journal"
	"github.com/lazypower/daybook/internal/logging"
	"github.com/lazypower/daybook/internal/store"
)

// Service exposes the journal operations.
type Service struct {
	store  *store.Store
	images images.Store
	log    logging.Logger
	now    func() time.Time
}

// New creates a Service over the given store and image storage.
func New(st *store.Store, img images.Store, log logging.Logger) *Service {
	return &Service{store: st, images: img, log: log, now: time.Now}
}

// Upload is one image file attached to a create or update request.
type Upload struct {
	Filename string
	Data     io.Reader
}

// CreateParams carries the fields of a create request.
type CreateParams struct {
	Title   string
	Content string
	Images  []Upload
}

// UpdateParams names the fields an update may change. Nil pointers leave
// the stored value untouched. A non-empty Images set replaces the
// entry's image list wholesale; there is no incremental append.
type UpdateParams struct {
	Title   *string
	Content *string
	Images  []Upload
}

// Create validates content, persists any uploaded images, mints an id,
// stamps the creation time, and appends the entry to the store.
func (s *Service) Create(ctx context.Context, p CreateParams) (journal.Enriched, error) {
	if strings.TrimSpace(p.Content) == "" {
		return journal.Enriched{}, journal.ErrEmptyContent
	}

	paths, err := s.saveImages(p.Images)
	if err != nil {
		return journal.Enriched{}, err
	}

	e := journal.Entry{
		ID:         uuid.NewString(),
		Title:      p.Title,
		Content:    p.Content,
		ImagePaths: paths,
		CreatedAt:  s.now(),
	}
	if err := s.store.Append(e); err != nil {
		s.removeImages(ctx, paths)
		return journal.Enriched{}, err
	}

	s.log.Info(ctx, "entry created", "id", e.ID, "images", len(paths))
	return journal.Enrich(e), nil
}

// Update applies a partial update to an existing entry. When new images
// are supplied the prior set is replaced and its files removed from disk
// best effort.
func (s *Service) Update(ctx context.Context, id string, p UpdateParams) (journal.Enriched, error) {
	if p.Content != nil && strings.TrimSpace(*p.Content) == "" {
		return journal.Enriched{}, journal.ErrEmptyContent
	}

	// Look the entry up first so an unknown id never leaves freshly
	// written image files orphaned on disk.
	prev, err := s.store.Get(id)
	if err != nil {
		return journal.Enriched{}, err
	}

	u := journal.Update{Title: p.Title, Content: p.Content}
	if len(p.Images) > 0 {
		paths, err := s.saveImages(p.Images)
		if err != nil {
			return journal.Enriched{}, err
		}
		u.ImagePaths = paths
	}

	e, err := s.store.Update(id, u)
	if err != nil {
		if u.ImagePaths != nil {
			s.removeImages(ctx, u.ImagePaths)
		}
		return journal.Enriched{}, err
	}

	if u.ImagePaths != nil {
		s.removeImages(ctx, prev.ImagePaths)
	}
	s.log.Info(ctx, "entry updated", "id", id)
	return journal.Enrich(e), nil
}

// Delete removes the entry and, best effort, its image files. Deleting
// an id that does not exist succeeds; the operation is idempotent.
func (s *Service) Delete(ctx context.Context, id string) error {
	prev, err := s.store.Get(id)
	if errors.Is(err, journal.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.store.Remove(id); err != nil {
		return err
	}

	s.removeImages(ctx, prev.ImagePaths)
	s.log.Info(ctx, "entry deleted", "id", id)
	return nil
}

// Get returns one enriched entry.
func (s *Service) Get(ctx context.Context, id string) (journal.Enriched, error) {
	e, err := s.store.Get(id)
	if err != nil {
		return journal.Enriched{}, err
	}
	return journal.Enrich(e), nil
}

// List returns all enriched entries in insertion order.
func (s *Service) List(ctx context.Context) []journal.Enriched {
	return journal.EnrichAll(s.store.List())
}

// Memories returns entries written on today's month and day in earlier
// years.
func (s *Service) Memories(ctx context.Context) []journal.Enriched {
	return journal.EnrichAll(journal.Memories(s.store.List(), s.now()))
}

// Count returns the number of stored entries.
func (s *Service) Count() int { return s.store.Len() }

// StorePath returns the location of the backing store file.
func (s *Service) StorePath() string { return s.store.Path() }

func (s *Service) saveImages(uploads []Upload) ([]string, error) {
	paths := make([]string, 0, len(uploads))
	for _, u := range uploads {
		name, err := s.images.Save(u.Filename, u.Data)
		if err != nil {
			return nil, &journal.StorageError{Op: "save image", Err: err}
		}
		paths = append(paths, name)
	}
	return paths, nil
}

// removeImages deletes stored files no entry references anymore.
// Failures are logged and swallowed: the entry mutation already took
// effect, and a leftover file beats a failed request.
func (s *Service) removeImages(ctx context.Context, names []string) {
	for _, n := range names {
		if err := s.images.Remove(n); err != nil {
			s.log.Warn(ctx, "orphaned image not removed", "file", n, "err", err)
		}
	}
}
