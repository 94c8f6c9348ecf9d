package ports

import (
	"context"

	"github.com/aretw0/errfix/pkg/domain"
)

// WalkStore persists generated walks so a suite can be replayed later.
type WalkStore interface {
	// Save persists the walk. If w.ID is empty a new ID is assigned to w.
	// Saving a walk with an existing ID replaces it. The ID is returned.
	Save(ctx context.Context, w *domain.Walk) (string, error)

	// Load retrieves the walk with the given ID.
	// Returns domain.ErrWalkNotFound if the walk does not exist.
	Load(ctx context.Context, id string) (*domain.Walk, error)

	// Delete removes the walk. Deleting a missing walk is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of the stored walks.
	List(ctx context.Context) ([]string, error)
}
