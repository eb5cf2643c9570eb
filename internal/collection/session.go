package collection

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/debemdeboas/the-gallery/internal/carousel"
	"github.com/debemdeboas/the-gallery/internal/model"
	"github.com/debemdeboas/the-gallery/internal/repository"
)

var ErrInvalidDraft = errors.New("required fields are missing")

// Session is the editing state of one collection: its items, the add form,
// at most one item being edited and the lightbox selection. Every operation
// holds the session lock until the change is persisted.
type Session[T Item, D Draft] struct {
	mu    sync.Mutex
	kind  Kind[T, D]
	store *Store[T]
	items []T

	editing   bool
	editingID model.ItemID
	draft     D

	addOpen  bool
	addDraft D

	lightbox carousel.Navigator

	notify func(key string)
	now    func() time.Time
}

type sessionOptions struct {
	now    func() time.Time
	notify func(key string)
}

type Option func(*sessionOptions)

// WithClock replaces time.Now when creating ids and dates.
func WithClock(now func() time.Time) Option {
	return func(o *sessionOptions) { o.now = now }
}

func WithChangeNotifier(fn func(key string)) Option {
	return func(o *sessionOptions) { o.notify = fn }
}

// Open loads the collection described by kind from repo, seeding it when the
// key is absent.
func Open[T Item, D Draft](ctx context.Context, repo repository.Repository, kind Kind[T, D], opts ...Option) (*Session[T, D], error) {
	o := sessionOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	store := NewStore[T](repo, kind.Key)
	items, err := store.Load(ctx, kind.Seed())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", kind.Name, err)
	}

	return &Session[T, D]{
		kind:   kind,
		store:  store,
		items:  items,
		notify: o.notify,
		now:    o.now,
	}, nil
}

func (s *Session[T, D]) Name() string { return s.kind.Name }
func (s *Session[T, D]) Key() string  { return s.kind.Key }

// SetChangeNotifier registers fn to be called with the storage key after
// every persisted change.
func (s *Session[T, D]) SetChangeNotifier(fn func(key string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify = fn
}

func (s *Session[T, D]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

func (s *Session[T, D]) Get(id model.ItemID) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

// Add prepends the item built from draft. The new id is the current time in
// milliseconds, moved past the largest existing id when it would collide.
func (s *Session[T, D]) Add(ctx context.Context, draft D) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	if !draft.Valid() {
		return zero, ErrInvalidDraft
	}

	now := s.now()
	item := s.kind.New(s.nextID(now), draft, now)
	s.items = append([]T{item}, s.items...)

	var empty D
	s.addDraft = empty
	s.addOpen = false

	if err := s.persist(ctx); err != nil {
		return item, err
	}
	collectionLogger.Info().Str("collection", s.kind.Name).Int64("id", int64(item.ItemID())).Msg("Item added")
	return item, nil
}

// Remove deletes the item with id, closing the lightbox and the edit session
// when they refer to it. removed is false for an unknown id.
func (s *Session[T, D]) Remove(ctx context.Context, id model.ItemID) (removed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.items = slices.Delete(s.items, i, i+1)

	if selected, open := s.lightbox.Selected(); open && selected == id {
		s.lightbox.Close()
	}
	if s.editing && s.editingID == id {
		s.clearEdit()
	}

	if err := s.persist(ctx); err != nil {
		return true, err
	}
	collectionLogger.Info().Str("collection", s.kind.Name).Int64("id", int64(id)).Msg("Item removed")
	return true, nil
}

// StartEdit begins editing id, replacing any edit in progress.
func (s *Session[T, D]) StartEdit(id model.ItemID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.editing = true
	s.editingID = id
	s.draft = s.kind.DraftOf(s.items[i])
	return true
}

// SetDraft replaces the draft of the edit in progress.
func (s *Session[T, D]) SetDraft(draft D) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editing {
		return false
	}
	s.draft = draft
	return true
}

// Editing returns the id and draft of the edit in progress.
func (s *Session[T, D]) Editing() (model.ItemID, D, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingID, s.draft, s.editing
}

// SaveEdit commits the draft to the edited item and ends the edit. saved is
// false when nothing was being edited.
func (s *Session[T, D]) SaveEdit(ctx context.Context) (saved bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.editing {
		return false, nil
	}
	id, draft := s.editingID, s.draft
	s.clearEdit()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.items[i] = s.kind.Apply(s.items[i], draft)

	if err := s.persist(ctx); err != nil {
		return true, err
	}
	collectionLogger.Info().Str("collection", s.kind.Name).Int64("id", int64(id)).Msg("Item updated")
	return true, nil
}

// Update applies draft to the item with id in one step, replacing any edit in
// progress. found is false for an unknown id.
func (s *Session[T, D]) Update(ctx context.Context, id model.ItemID, draft D) (item T, found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return item, false, nil
	}
	s.clearEdit()
	s.items[i] = s.kind.Apply(s.items[i], draft)

	if err := s.persist(ctx); err != nil {
		return s.items[i], true, err
	}
	collectionLogger.Info().Str("collection", s.kind.Name).Int64("id", int64(id)).Msg("Item updated")
	return s.items[i], true, nil
}

func (s *Session[T, D]) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearEdit()
}

func (s *Session[T, D]) ShowAddForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addOpen = true
}

// HideAddForm closes the add form and discards its draft.
func (s *Session[T, D]) HideAddForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var empty D
	s.addOpen = false
	s.addDraft = empty
}

func (s *Session[T, D]) SetAddDraft(draft D) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addDraft = draft
}

func (s *Session[T, D]) AddForm() (open bool, draft D) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addOpen, s.addDraft
}

// OpenLightbox shows id. Unknown ids are ignored.
func (s *Session[T, D]) OpenLightbox(id model.ItemID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(id) < 0 {
		return false
	}
	s.lightbox.Open(id)
	return true
}

func (s *Session[T, D]) CloseLightbox() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lightbox.Close()
}

func (s *Session[T, D]) NextInLightbox() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lightbox.Next(s.ids())
}

func (s *Session[T, D]) PreviousInLightbox() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lightbox.Previous(s.ids())
}

// Lightbox returns the item shown in the lightbox.
func (s *Session[T, D]) Lightbox() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	id, open := s.lightbox.Selected()
	if !open {
		return zero, false
	}
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return zero, false
}

// View is a consistent copy of the session state for rendering.
type View[T Item, D Draft] struct {
	Items []T

	Editing   bool
	EditingID model.ItemID
	Draft     D

	AddFormOpen bool
	AddDraft    D

	LightboxOpen bool
	Lightbox     T
}

func (s *Session[T, D]) View() View[T, D] {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View[T, D]{
		Items:       slices.Clone(s.items),
		Editing:     s.editing,
		EditingID:   s.editingID,
		Draft:       s.draft,
		AddFormOpen: s.addOpen,
		AddDraft:    s.addDraft,
	}
	if id, open := s.lightbox.Selected(); open {
		if i := s.indexOf(id); i >= 0 {
			v.LightboxOpen = true
			v.Lightbox = s.items[i]
		}
	}
	return v
}

func (s *Session[T, D]) persist(ctx context.Context) error {
	written, err := s.store.Persist(ctx, s.items)
	if err != nil {
		collectionLogger.Error().Err(err).Str("collection", s.kind.Name).Msg("Failed to persist collection")
		return err
	}
	if written && s.notify != nil {
		s.notify(s.kind.Key)
	}
	return nil
}

func (s *Session[T, D]) clearEdit() {
	var empty D
	s.editing = false
	s.editingID = 0
	s.draft = empty
}

func (s *Session[T, D]) nextID(now time.Time) model.ItemID {
	id := model.ItemID(now.UnixMilli())
	for _, item := range s.items {
		if item.ItemID() >= id {
			id = item.ItemID() + 1
		}
	}
	return id
}

func (s *Session[T, D]) indexOf(id model.ItemID) int {
	return slices.IndexFunc(s.items, func(item T) bool { return item.ItemID() == id })
}

func (s *Session[T, D]) ids() []model.ItemID {
	ids := make([]model.ItemID, len(s.items))
	for i, item := range s.items {
		ids[i] = item.ItemID()
	}
	return ids
}
