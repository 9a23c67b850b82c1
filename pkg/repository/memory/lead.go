package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/acreflow/leadflow/pkg/domain/interfaces"
	"github.com/acreflow/leadflow/pkg/domain/model"
	"github.com/acreflow/leadflow/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type leadRepository struct {
	mu    sync.RWMutex
	leads map[types.LeadID]*model.Lead
}

func newLeadRepository() *leadRepository {
	return &leadRepository{
		leads: make(map[types.LeadID]*model.Lead),
	}
}

func (r *leadRepository) Create(ctx context.Context, lead *model.Lead) (*model.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if lead.ID == "" {
		return nil, goerr.New("lead ID is required")
	}
	if _, exists := r.leads[lead.ID]; exists {
		return nil, goerr.New("lead already exists", goerr.V("id", lead.ID))
	}

	now := time.Now().UTC()
	created := lead.Clone()
	if created.CreatedAt.IsZero() {
		created.CreatedAt = now
	}
	created.UpdatedAt = now
	created.Revision = 1

	r.leads[created.ID] = created
	return created.Clone(), nil
}

func (r *leadRepository) Get(ctx context.Context, id types.LeadID) (*model.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lead, exists := r.leads[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrLeadNotFound, "lead not found", goerr.V("id", id))
	}

	return lead.Clone(), nil
}

func (r *leadRepository) List(ctx context.Context) ([]*model.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	leads := make([]*model.Lead, 0, len(r.leads))
	for _, lead := range r.leads {
		leads = append(leads, lead.Clone())
	}

	sort.Slice(leads, func(i, j int) bool {
		return leads[i].CreatedAt.Before(leads[j].CreatedAt)
	})

	return leads, nil
}

func (r *leadRepository) Update(ctx context.Context, lead *model.Lead, expectedRevision int64) (*model.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.leads[lead.ID]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrLeadNotFound, "lead not found", goerr.V("id", lead.ID))
	}

	if existing.Revision != expectedRevision {
		return nil, goerr.Wrap(interfaces.ErrRevisionConflict, "lead was modified concurrently",
			goerr.V("id", lead.ID),
			goerr.V("expected_revision", expectedRevision),
			goerr.V("stored_revision", existing.Revision))
	}

	updated := lead.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	updated.Revision = existing.Revision + 1

	r.leads[updated.ID] = updated
	return updated.Clone(), nil
}

func (r *leadRepository) Delete(ctx context.Context, id types.LeadID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.leads[id]; !exists {
		return goerr.Wrap(interfaces.ErrLeadNotFound, "lead not found", goerr.V("id", id))
	}

	delete(r.leads, id)
	return nil
}
