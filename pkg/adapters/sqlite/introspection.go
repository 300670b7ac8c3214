package sqlite

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Path       string `json:"path"`
	Table      string `json:"table"`
	ReadOnly   bool   `json:"read_only"`
	Open       bool   `json:"open"`
	Statements int    `json:"prepared_statements"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prepared := 0
	for _, stmt := range s.stmts.all() {
		if stmt != nil {
			prepared++
		}
	}

	return StoreState{
		Path:       s.config.Path,
		Table:      TableName,
		ReadOnly:   s.config.ReadOnly,
		Open:       s.db != nil && !s.closed,
		Statements: prepared,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "sqlite-store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
