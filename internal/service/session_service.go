package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"invoicepad/internal/calc"
	"invoicepad/internal/config"
	"invoicepad/internal/domain"
	"invoicepad/internal/editor"
)

// SessionView is the DTO handed to the rendering layer: the settled invoice
// plus everything derived from it, ready for 2-decimal display.
type SessionView struct {
	ID                uuid.UUID      `json:"id"`
	Invoice           domain.Invoice `json:"invoice"`
	Totals            domain.Totals  `json:"totals"`
	LineAmounts       []string       `json:"line_amounts"`
	GrandTotalDisplay string         `json:"grand_total_display"`
	CreatedAt         time.Time      `json:"created_at"`
	LastEditedAt      time.Time      `json:"last_edited_at"`
}

// SessionService manages invoice editing sessions and is the mutation call
// surface for the document state store.
type SessionService interface {
	Create(ctx context.Context, initial *domain.Invoice) (*SessionView, error)
	Get(ctx context.Context, id uuid.UUID) (*SessionView, error)
	EditField(ctx context.Context, id uuid.UUID, name string, value any) (*SessionView, error)
	EditLineField(ctx context.Context, id uuid.UUID, index int, name, value string) (*SessionView, error)
	AddLine(ctx context.Context, id uuid.UUID) (*SessionView, error)
	RemoveLine(ctx context.Context, id uuid.UUID, index int) (*SessionView, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Snapshot returns the fully settled invoice and totals for export.
	Snapshot(ctx context.Context, id uuid.UUID) (*domain.Invoice, domain.Totals, error)
	// SweepIdle drops sessions whose last edit is older than olderThan and
	// returns how many were removed.
	SweepIdle(olderThan time.Duration) int
	Count() int
}

// session pairs an editor with its serialization lock. The per-session mutex
// guarantees each mutation observes the fully-settled result of all prior
// mutations on that session.
type session struct {
	mu           sync.Mutex
	editor       *editor.Editor
	createdAt    time.Time
	lastEditedAt time.Time
}

type sessionService struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
	cfg      config.SessionConfig
	observer editor.Observer
	now      func() time.Time
}

// NewSessionService creates a SessionService. The observer, if non-nil, is
// attached to every session's editor and receives each settled invoice.
func NewSessionService(cfg config.SessionConfig, observer editor.Observer) SessionService {
	return &sessionService{
		sessions: make(map[uuid.UUID]*session),
		cfg:      cfg,
		observer: observer,
		now:      time.Now,
	}
}

func (s *sessionService) Create(_ context.Context, initial *domain.Invoice) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.MaxSessions > 0 && len(s.sessions) >= s.cfg.MaxSessions {
		return nil, domain.ErrSessionLimit
	}

	opts := []editor.Option{editor.WithMaxLineItems(s.cfg.MaxLineItems)}
	if s.observer != nil {
		opts = append(opts, editor.WithObserver(s.observer))
	}

	id := uuid.New()
	now := s.now()
	sess := &session{
		editor:       editor.New(initial, opts...),
		createdAt:    now,
		lastEditedAt: now,
	}
	s.sessions[id] = sess

	return s.view(id, sess), nil
}

func (s *sessionService) Get(_ context.Context, id uuid.UUID) (*SessionView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.view(id, sess), nil
}

func (s *sessionService) EditField(_ context.Context, id uuid.UUID, name string, value any) (*SessionView, error) {
	return s.mutate(id, func(e *editor.Editor) error {
		return e.EditField(name, value)
	})
}

func (s *sessionService) EditLineField(_ context.Context, id uuid.UUID, index int, name, value string) (*SessionView, error) {
	return s.mutate(id, func(e *editor.Editor) error {
		return e.EditLineField(index, name, value)
	})
}

func (s *sessionService) AddLine(_ context.Context, id uuid.UUID) (*SessionView, error) {
	return s.mutate(id, func(e *editor.Editor) error {
		return e.AddLine()
	})
}

func (s *sessionService) RemoveLine(_ context.Context, id uuid.UUID, index int) (*SessionView, error) {
	return s.mutate(id, func(e *editor.Editor) error {
		return e.RemoveLine(index)
	})
}

func (s *sessionService) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *sessionService) Snapshot(_ context.Context, id uuid.UUID) (*domain.Invoice, domain.Totals, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, domain.Totals{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	inv := sess.editor.Invoice()
	return &inv, sess.editor.Totals(), nil
}

func (s *sessionService) SweepIdle(olderThan time.Duration) int {
	cutoff := s.now().Add(-olderThan)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		// lastEditedAt is written under the session lock, so it must be
		// read under it too. mutate never holds sess.mu while waiting on
		// s.mu, so taking both here cannot deadlock.
		sess.mu.Lock()
		idle := sess.lastEditedAt.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *sessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *sessionService) lookup(id uuid.UUID) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *sessionService) mutate(id uuid.UUID, op func(*editor.Editor) error) (*SessionView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := op(sess.editor); err != nil {
		return nil, err
	}
	sess.lastEditedAt = s.now()
	return s.view(id, sess), nil
}

// view builds the outward DTO from a settled session. Callers hold the
// session lock.
func (s *sessionService) view(id uuid.UUID, sess *session) *SessionView {
	totals := sess.editor.Totals()
	return &SessionView{
		ID:                id,
		Invoice:           sess.editor.Invoice(),
		Totals:            totals,
		LineAmounts:       sess.editor.LineAmounts(),
		GrandTotalDisplay: calc.FormatAmount(totals.GrandTotal),
		CreatedAt:         sess.createdAt,
		LastEditedAt:      sess.lastEditedAt,
	}
}
