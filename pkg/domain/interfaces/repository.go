package interfaces

import (
	"context"

	"github.com/acreflow/leadflow/pkg/domain/model"
	"github.com/acreflow/leadflow/pkg/domain/types"
)

// Repository defines the interface for data persistence
type Repository interface {
	Lead() LeadRepository
	Close() error
}

// LeadRepository defines the interface for Lead data access
type LeadRepository interface {
	// Create persists a new lead. The lead must already carry its ID.
	Create(ctx context.Context, lead *model.Lead) (*model.Lead, error)

	// Get retrieves a lead by ID
	Get(ctx context.Context, id types.LeadID) (*model.Lead, error)

	// List retrieves all leads
	List(ctx context.Context) ([]*model.Lead, error)

	// Update persists lead if its stored revision still equals
	// expectedRevision, bumping the revision on success. A stale revision
	// returns ErrRevisionConflict: the caller lost a concurrent update race
	// and must re-read before retrying.
	Update(ctx context.Context, lead *model.Lead, expectedRevision int64) (*model.Lead, error)

	// Delete removes a lead by ID
	Delete(ctx context.Context, id types.LeadID) error
}
