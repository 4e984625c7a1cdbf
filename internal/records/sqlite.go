package records

import (
	"context"
	"errors"

	"github.com/roach88/workday/internal/responsibility"
	"github.com/roach88/workday/internal/store"
)

// decodeSQLiteFile reads a store without writing to it.
func decodeSQLiteFile(path string) ([]responsibility.Responsibility, error) {
	s, err := store.OpenReadOnly(path)
	if err != nil {
		if errors.Is(err, store.ErrNotStore) {
			return nil, &LoadError{Kind: KindParse, Path: path, Err: err}
		}
		return nil, err
	}
	defer s.Close()

	return s.Responsibilities(context.Background())
}
