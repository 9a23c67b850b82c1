package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/acreflow/leadflow/pkg/domain/interfaces"
	"github.com/acreflow/leadflow/pkg/domain/model"
	"github.com/acreflow/leadflow/pkg/domain/types"
	"github.com/acreflow/leadflow/pkg/service/directory"
	"github.com/m-mizutani/goerr/v2"
)

// LeadUseCase covers lead record management outside the assignment workflow:
// creation, field edits, lookup, and the administrative delete.
type LeadUseCase struct {
	repo      interfaces.Repository
	directory interfaces.Directory
}

func NewLeadUseCase(repo interfaces.Repository, dir interfaces.Directory) *LeadUseCase {
	return &LeadUseCase{
		repo:      repo,
		directory: dir,
	}
}

// LeadInput carries the writable contact fields of a lead.
type LeadInput struct {
	Name     string
	Email    string
	Phone    string
	Location string
	Property string
	Budget   string
	Status   types.LeadStatus
}

func (uc *LeadUseCase) resolve(id types.UserID) (*model.User, error) {
	user, err := uc.directory.Lookup(id)
	if err != nil {
		if errors.Is(err, directory.ErrUserNotFound) {
			return nil, goerr.Wrap(ErrUserNotFound, "unknown user", goerr.V(ActorKey, id))
		}
		return nil, goerr.Wrap(err, "failed to resolve user", goerr.V(ActorKey, id))
	}
	return user, nil
}

// CreateLead records a new lead owned by the creator. The lifecycle starts
// with a single chain entry assigning the lead to its creator.
func (uc *LeadUseCase) CreateLead(ctx context.Context, creatorID types.UserID, input LeadInput) (*model.Lead, error) {
	creator, err := uc.resolve(creatorID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	lead := &model.Lead{
		ID:           types.NewLeadID(),
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Location:     input.Location,
		Property:     input.Property,
		Budget:       input.Budget,
		Status:       input.Status.Normalize(),
		WorkProgress: types.WorkProgressPending,
		CreatedBy:    creatorID,
		CreatedAt:    now,
		AssignmentChain: []model.AssignmentEntry{
			model.NewAssignmentEntry(creator.Snapshot(), creatorID, now),
		},
		FollowUps: []model.FollowUp{},
	}

	if err := lead.Validate(); err != nil {
		return nil, goerr.Wrap(ErrValidation, err.Error())
	}

	created, err := uc.repo.Lead().Create(ctx, lead)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create lead", goerr.V(LeadIDKey, lead.ID))
	}

	return created, nil
}

// GetLead retrieves a lead by ID
func (uc *LeadUseCase) GetLead(ctx context.Context, id types.LeadID) (*model.Lead, error) {
	lead, err := uc.repo.Lead().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrLeadNotFound) {
			return nil, goerr.Wrap(ErrLeadNotFound, "lead not found", goerr.V(LeadIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get lead", goerr.V(LeadIDKey, id))
	}
	return lead, nil
}

// ListLeads returns all leads, or only those currently held by assignedTo
// when it is non-empty.
func (uc *LeadUseCase) ListLeads(ctx context.Context, assignedTo types.UserID) ([]*model.Lead, error) {
	leads, err := uc.repo.Lead().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list leads")
	}

	if assignedTo == "" {
		return leads, nil
	}

	filtered := make([]*model.Lead, 0, len(leads))
	for _, lead := range leads {
		if lead.IsOpen() && lead.AssignedTo() == assignedTo {
			filtered = append(filtered, lead)
		}
	}
	return filtered, nil
}

// UpdateLeadFields edits contact fields and sales status. The workflow
// histories are untouched; status edits are open to any directory user with
// write access to the lead.
func (uc *LeadUseCase) UpdateLeadFields(ctx context.Context, leadID types.LeadID, actorID types.UserID, input LeadInput) (*model.Lead, error) {
	if _, err := uc.resolve(actorID); err != nil {
		return nil, err
	}

	lead, err := uc.GetLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	lead.Name = input.Name
	lead.Email = input.Email
	lead.Phone = input.Phone
	lead.Location = input.Location
	lead.Property = input.Property
	lead.Budget = input.Budget
	if input.Status != "" {
		lead.Status = input.Status
	}

	if err := lead.Validate(); err != nil {
		return nil, goerr.Wrap(ErrValidation, err.Error(), goerr.V(LeadIDKey, leadID))
	}

	updated, err := uc.repo.Lead().Update(ctx, lead, lead.Revision)
	if err != nil {
		if errors.Is(err, interfaces.ErrRevisionConflict) {
			return nil, goerr.Wrap(ErrInvalidTransition, "lead changed concurrently",
				goerr.V(LeadIDKey, leadID),
				goerr.V(ActionKey, "update"))
		}
		return nil, goerr.Wrap(err, "failed to update lead", goerr.V(LeadIDKey, leadID))
	}

	return updated, nil
}

// DeleteLead removes a lead entirely. Workflow logic never deletes leads;
// this is the administrative operation reserved for the super admin.
func (uc *LeadUseCase) DeleteLead(ctx context.Context, leadID types.LeadID, actorID types.UserID) error {
	actor, err := uc.resolve(actorID)
	if err != nil {
		return err
	}

	if actor.Role != types.RoleSuperAdmin {
		return goerr.Wrap(ErrForbidden, "only the super admin may delete leads",
			goerr.V(LeadIDKey, leadID),
			goerr.V(ActorKey, actorID))
	}

	if err := uc.repo.Lead().Delete(ctx, leadID); err != nil {
		if errors.Is(err, interfaces.ErrLeadNotFound) {
			return goerr.Wrap(ErrLeadNotFound, "lead not found", goerr.V(LeadIDKey, leadID))
		}
		return goerr.Wrap(err, "failed to delete lead", goerr.V(LeadIDKey, leadID))
	}

	return nil
}
