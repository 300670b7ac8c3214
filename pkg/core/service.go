package core

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
)

// Service handles the business logic for notes.
// It delegates each call to exactly one Repository operation. Any int64 is
// a valid id; ids with no note behave as missing.
type Service struct {
	mu     sync.RWMutex
	repo   Repository
	logger *slog.Logger
	closed bool
}

// NewService creates a new Service. A nil logger discards output.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// InsertNote stores a new note and returns its id.
func (s *Service) InsertNote(ctx context.Context, n Note) (int64, error) {
	id, err := s.repo.Insert(ctx, n)
	if err != nil {
		s.logger.Debug("insert failed", "error", err)
		return 0, err
	}
	s.logger.Debug("note inserted", "id", id)
	return id, nil
}

// GetNote retrieves a note.
func (s *Service) GetNote(ctx context.Context, id int64) (Note, error) {
	n, err := s.repo.Get(ctx, id)
	if err != nil {
		s.logger.Debug("get failed", "id", id, "error", err)
		return Note{}, err
	}
	return n, nil
}

// ListNotes retrieves all notes.
func (s *Service) ListNotes(ctx context.Context) ([]NoteRow, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("notes listed", "count", len(rows))
	return rows, nil
}

// UpdateNote overwrites a note and returns the number of rows changed.
func (s *Service) UpdateNote(ctx context.Context, id int64, n Note) (int64, error) {
	affected, err := s.repo.Update(ctx, id, n)
	if err != nil {
		s.logger.Debug("update failed", "id", id, "error", err)
		return 0, err
	}
	s.logger.Debug("note updated", "id", id, "affected", affected)
	return affected, nil
}

// DeleteNote removes a note and returns the number of rows removed.
func (s *Service) DeleteNote(ctx context.Context, id int64) (int64, error) {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Debug("delete failed", "id", id, "error", err)
		return 0, err
	}
	s.logger.Debug("note deleted", "id", id, "affected", affected)
	return affected, nil
}

// Close releases the repository. Calling it more than once is a no-op.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.repo.Close()
}

// Repository exposes the underlying port, mainly for introspection.
func (s *Service) Repository() Repository {
	return s.repo
}

// ParseID turns user input into a note id. Only malformed or out of range
// input is rejected; zero and negative ids are well formed.
func ParseID(raw string) (int64, error) {
	if raw == "" {
		return 0, &ValidationError{Field: "id", Reason: "missing"}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		reason := "not a number"
		if errors.Is(err, strconv.ErrRange) {
			reason = "out of range"
		}
		return 0, &ValidationError{Field: "id", Value: raw, Reason: reason}
	}
	return id, nil
}
