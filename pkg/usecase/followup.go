package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/acreflow/leadflow/pkg/domain/interfaces"
	"github.com/acreflow/leadflow/pkg/domain/model"
	"github.com/acreflow/leadflow/pkg/domain/types"
	"github.com/acreflow/leadflow/pkg/service/authz"
	"github.com/acreflow/leadflow/pkg/service/directory"
	"github.com/m-mizutani/goerr/v2"
)

// FollowUpUseCase is the follow-up ledger: append-only, role-tagged comments
// on a lead. Entries are never removed, only hidden.
type FollowUpUseCase struct {
	repo      interfaces.Repository
	directory interfaces.Directory
}

func NewFollowUpUseCase(repo interfaces.Repository, dir interfaces.Directory) *FollowUpUseCase {
	return &FollowUpUseCase{
		repo:      repo,
		directory: dir,
	}
}

func (uc *FollowUpUseCase) resolve(id types.UserID) (*model.User, error) {
	user, err := uc.directory.Lookup(id)
	if err != nil {
		if errors.Is(err, directory.ErrUserNotFound) {
			return nil, goerr.Wrap(ErrUserNotFound, "unknown user", goerr.V(ActorKey, id))
		}
		return nil, goerr.Wrap(err, "failed to resolve user", goerr.V(ActorKey, id))
	}
	return user, nil
}

func (uc *FollowUpUseCase) load(ctx context.Context, id types.LeadID) (*model.Lead, error) {
	lead, err := uc.repo.Lead().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrLeadNotFound) {
			return nil, goerr.Wrap(ErrLeadNotFound, "lead not found", goerr.V(LeadIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to load lead", goerr.V(LeadIDKey, id))
	}
	return lead, nil
}

// AddFollowUp appends a comment to the lead's ledger. The author's role and
// display name are resolved from the directory and snapshotted into the
// entry. An empty timestamp is stamped with the call time in RFC3339.
func (uc *FollowUpUseCase) AddFollowUp(ctx context.Context, leadID types.LeadID, authorID types.UserID, comment, timestamp string) (*model.Lead, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, goerr.Wrap(ErrValidation, "follow-up comment is required",
			goerr.V(LeadIDKey, leadID))
	}

	author, err := uc.resolve(authorID)
	if err != nil {
		return nil, err
	}

	if timestamp == "" {
		timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	entry := model.FollowUp{
		Comment:   comment,
		Author:    author.Name,
		AuthorID:  author.ID,
		Role:      author.Role,
		Timestamp: timestamp,
		IsVisible: true,
	}
	if err := entry.Validate(); err != nil {
		return nil, goerr.Wrap(ErrValidation, err.Error(), goerr.V(LeadIDKey, leadID))
	}

	// Appends are commutative, so a lost revision race just means re-reading
	// and appending again. A few attempts are plenty for a single hot lead.
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		lead, err := uc.load(ctx, leadID)
		if err != nil {
			return nil, err
		}

		lead.FollowUps = append(lead.FollowUps, entry)

		updated, err := uc.repo.Lead().Update(ctx, lead, lead.Revision)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, interfaces.ErrRevisionConflict) {
			return nil, goerr.Wrap(err, "failed to append follow-up", goerr.V(LeadIDKey, leadID))
		}
		lastErr = err
	}

	return nil, goerr.Wrap(lastErr, "failed to append follow-up after retries", goerr.V(LeadIDKey, leadID))
}

// HideFollowUp soft-hides the entry at index. Allowed for head-admin and
// above, or the entry's original author. The entry itself is never removed.
func (uc *FollowUpUseCase) HideFollowUp(ctx context.Context, leadID types.LeadID, index int, actorID types.UserID) (*model.Lead, error) {
	actor, err := uc.resolve(actorID)
	if err != nil {
		return nil, err
	}

	lead, err := uc.load(ctx, leadID)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(lead.FollowUps) {
		return nil, goerr.Wrap(ErrValidation, "follow-up index out of range",
			goerr.V(LeadIDKey, leadID),
			goerr.V("index", index),
			goerr.V("ledger_size", len(lead.FollowUps)))
	}

	entry := &lead.FollowUps[index]
	if !authz.CanHideFollowUp(actor.Role, actorID, entry.AuthorID) {
		return nil, goerr.Wrap(ErrForbidden, "not allowed to hide this follow-up",
			goerr.V(LeadIDKey, leadID),
			goerr.V(ActorKey, actorID),
			goerr.V("index", index))
	}

	entry.IsVisible = false

	updated, err := uc.repo.Lead().Update(ctx, lead, lead.Revision)
	if err != nil {
		if errors.Is(err, interfaces.ErrRevisionConflict) {
			return nil, goerr.Wrap(ErrInvalidTransition, "lead changed concurrently",
				goerr.V(LeadIDKey, leadID),
				goerr.V(ActionKey, "hide-followup"))
		}
		return nil, goerr.Wrap(err, "failed to hide follow-up", goerr.V(LeadIDKey, leadID))
	}

	return updated, nil
}

// ListFollowUps returns the lead's ledger scoped by the reader's role.
// Roles below head-admin see only visible entries; head-admin and above may
// request the full ledger including hidden entries for audit.
func (uc *FollowUpUseCase) ListFollowUps(ctx context.Context, leadID types.LeadID, readerID types.UserID, includeHidden bool) ([]model.FollowUp, error) {
	reader, err := uc.resolve(readerID)
	if err != nil {
		return nil, err
	}

	lead, err := uc.load(ctx, leadID)
	if err != nil {
		return nil, err
	}

	audit := includeHidden && authz.CanReadHidden(reader.Role)

	entries := make([]model.FollowUp, 0, len(lead.FollowUps))
	for _, entry := range lead.FollowUps {
		if entry.IsVisible || audit {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}
