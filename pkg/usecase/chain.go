package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/acreflow/leadflow/pkg/domain/interfaces"
	"github.com/acreflow/leadflow/pkg/domain/model"
	"github.com/acreflow/leadflow/pkg/domain/types"
	"github.com/acreflow/leadflow/pkg/service/authz"
	"github.com/acreflow/leadflow/pkg/service/directory"
	"github.com/acreflow/leadflow/pkg/utils/async"
	"github.com/m-mizutani/goerr/v2"
)

// ChainUseCase is the assignment chain engine. Every mutation follows the
// same path: load the lead, consult the authorization gate, check the tail
// precondition, mutate, then save with the revision the load observed. A
// concurrent writer invalidates that revision and the save reports
// ErrInvalidTransition, so two racing operations never both land on the same
// tail entry.
//
// Operations are not idempotent on purpose: each call records a real-world
// event, so repeating a Forward appends two chain entries. Transport-level
// deduplication is the caller's concern.
type ChainUseCase struct {
	repo      interfaces.Repository
	directory interfaces.Directory
	notifier  interfaces.Notifier
}

func NewChainUseCase(repo interfaces.Repository, dir interfaces.Directory, notifier interfaces.Notifier) *ChainUseCase {
	return &ChainUseCase{
		repo:      repo,
		directory: dir,
		notifier:  notifier,
	}
}

func (uc *ChainUseCase) load(ctx context.Context, id types.LeadID) (*model.Lead, error) {
	lead, err := uc.repo.Lead().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrLeadNotFound) {
			return nil, goerr.Wrap(ErrLeadNotFound, "lead not found", goerr.V(LeadIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to load lead", goerr.V(LeadIDKey, id))
	}
	return lead, nil
}

func (uc *ChainUseCase) resolve(id types.UserID) (*model.User, error) {
	user, err := uc.directory.Lookup(id)
	if err != nil {
		if errors.Is(err, directory.ErrUserNotFound) {
			return nil, goerr.Wrap(ErrUserNotFound, "unknown user", goerr.V(ActorKey, id))
		}
		return nil, goerr.Wrap(err, "failed to resolve user", goerr.V(ActorKey, id))
	}
	return user, nil
}

// save persists the mutated lead against the revision observed at load time.
// A revision conflict means another operation already closed the tail this
// one was computed from.
func (uc *ChainUseCase) save(ctx context.Context, lead *model.Lead, action string) (*model.Lead, error) {
	updated, err := uc.repo.Lead().Update(ctx, lead, lead.Revision)
	if err != nil {
		if errors.Is(err, interfaces.ErrRevisionConflict) {
			return nil, goerr.Wrap(ErrInvalidTransition, "tail already closed by a concurrent operation",
				goerr.V(LeadIDKey, lead.ID),
				goerr.V(ActionKey, action))
		}
		return nil, goerr.Wrap(err, "failed to save lead",
			goerr.V(LeadIDKey, lead.ID),
			goerr.V(ActionKey, action))
	}
	return updated, nil
}

func (uc *ChainUseCase) notifyAssigned(ctx context.Context, lead *model.Lead, assignee model.UserSnapshot) {
	if uc.notifier == nil {
		return
	}
	async.Dispatch(ctx, func(ctx context.Context) error {
		return uc.notifier.NotifyAssigned(ctx, lead, assignee)
	})
}

// Assign gives an unowned lead a fresh holder: the initial assignment at
// intake, or a re-opening after the previous segment completed or was
// rejected. An empty actorID marks system-initiated intake.
func (uc *ChainUseCase) Assign(ctx context.Context, leadID types.LeadID, actorID, targetID types.UserID) (*model.Lead, error) {
	var actorRole types.Role
	if actorID != "" {
		actor, err := uc.resolve(actorID)
		if err != nil {
			return nil, err
		}
		actorRole = actor.Role
	}

	if !authz.CanAssign(actorRole, actorID == "") {
		return nil, goerr.Wrap(ErrForbidden, "role may not assign leads",
			goerr.V(LeadIDKey, leadID),
			goerr.V(ActionKey, "assign"),
			goerr.V(ActorKey, actorID))
	}

	lead, err := uc.load(ctx, leadID)
	if err != nil {
		return nil, err
	}

	if tail := lead.Tail(); tail != nil && !tail.Status.IsResolved() {
		return nil, goerr.Wrap(ErrInvalidTransition, "lead is still owned, forward it instead",
			goerr.V(LeadIDKey, leadID),
			goerr.V(ActionKey, "assign"),
			goerr.V(TailStatusKey, tail.Status))
	}

	target, err := uc.resolve(targetID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	lead.AssignmentChain = append(lead.AssignmentChain, model.NewAssignmentEntry(target.Snapshot(), actorID, now))
	lead.WorkProgress = types.WorkProgressPending

	updated, err := uc.save(ctx, lead, "assign")
	if err != nil {
		return nil, err
	}

	uc.notifyAssigned(ctx, updated, target.Snapshot())
	return updated, nil
}

// Forward hands the lead from its current holder to another user, closing
// the open tail entry as forwarded and opening a new one. Escalation and
// delegation are the same primitive; which directions are legal is the
// authorization gate's decision.
func (uc *ChainUseCase) Forward(ctx context.Context, leadID types.LeadID, actorID, targetID types.UserID, notes string) (*model.Lead, error) {
	actor, err := uc.resolve(actorID)
	if err != nil {
		return nil, err
	}
	target, err := uc.resolve(targetID)
	if err != nil {
		return nil, err
	}

	lead, err := uc.load(ctx, leadID)
	if err != nil {
		return nil, err
	}

	tail := lead.Tail()
	if tail == nil || !tail.Status.IsOpen() {
		return nil, goerr.Wrap(ErrInvalidTransition, "lead has no open assignment to forward",
			goerr.V(LeadIDKey, leadID),
			goerr.V(ActionKey, "forward"),
			goerr.V(TailStatusKey, tailStatus(tail)))
	}
	if tail.Assignee.UserID != actorID {
		return nil, goerr.Wrap(ErrNotCurrentOwner, "only the current holder may forward",
			goerr.V(LeadIDKey, leadID),
			goerr.V(ActionKey, "forward"),
			goerr.V(ActorKey, actorID))
	}

	isSubordinate := func(candidate types.UserID) bool {
		return uc.directory.IsSubordinate(actorID, candidate)
	}
	if !authz.CanForward(actor.Role, target.Role, targetID, isSubordinate) {
		return nil, goerr.Wrap(ErrForbidden, "forward target not permitted for role",
			goerr.V(LeadIDKey, leadID),
			goerr.V(ActionKey, "forward"),
			goerr.V(ActorKey, actorID),
			goerr.V("target_role", target.Role))
	}

	now := time.Now().UTC()
	tail.Close(types.AssignmentForwarded, notes, now)
	lead.AssignmentChain = append(lead.AssignmentChain, model.NewAssignmentEntry(target.Snapshot(), actorID, now))
	lead.WorkProgress = types.WorkProgressPending

	updated, err := uc.save(ctx, lead, "forward")
	if err != nil {
		return nil, err
	}

	uc.notifyAssigned(ctx, updated, target.Snapshot())
	return updated, nil
}

// Complete closes the current segment as handled. The lead becomes unowned
// and may be re-assigned later.
func (uc *ChainUseCase) Complete(ctx context.Context, leadID types.LeadID, actorID types.UserID, notes string) (*model.Lead, error) {
	return uc.closeTail(ctx, leadID, actorID, types.AssignmentCompleted, notes)
}

// Reject closes the current segment as not handleable by the holder. The
// chain records the distinction from Complete; both end the segment.
func (uc *ChainUseCase) Reject(ctx context.Context, leadID types.LeadID, actorID types.UserID, reason string) (*model.Lead, error) {
	return uc.closeTail(ctx, leadID, actorID, types.AssignmentRejected, reason)
}

func (uc *ChainUseCase) closeTail(ctx context.Context, leadID types.LeadID, actorID types.UserID, status types.AssignmentStatus, notes string) (*model.Lead, error) {
	action := status.String()

	if _, err := uc.resolve(actorID); err != nil {
		return nil, err
	}

	lead, err := uc.load(ctx, leadID)
	if err != nil {
		return nil, err
	}

	tail := lead.Tail()
	if tail == nil || !tail.Status.IsOpen() {
		return nil, goerr.Wrap(ErrInvalidTransition, "lead has no open assignment",
			goerr.V(LeadIDKey, leadID),
			goerr.V(ActionKey, action),
			goerr.V(TailStatusKey, tailStatus(tail)))
	}
	if tail.Assignee.UserID != actorID || !authz.CanResolve(actorID, tail.Assignee.UserID) {
		return nil, goerr.Wrap(ErrNotCurrentOwner, "only the current holder may close the assignment",
			goerr.V(LeadIDKey, leadID),
			goerr.V(ActionKey, action),
			goerr.V(ActorKey, actorID))
	}

	tail.Close(status, notes, time.Now().UTC())
	if status == types.AssignmentCompleted {
		lead.WorkProgress = types.WorkProgressDone
	}

	return uc.save(ctx, lead, action)
}

// SetWorkProgress updates the advisory progress indicator for the current
// holder. Moving to done without a Complete is allowed: progress reflects
// what the holder says, completion is what the chain records.
func (uc *ChainUseCase) SetWorkProgress(ctx context.Context, leadID types.LeadID, actorID types.UserID, progress types.WorkProgress) (*model.Lead, error) {
	if !progress.IsValid() {
		return nil, goerr.Wrap(ErrValidation, "invalid work progress value",
			goerr.V(LeadIDKey, leadID),
			goerr.V("progress", progress))
	}

	if _, err := uc.resolve(actorID); err != nil {
		return nil, err
	}

	lead, err := uc.load(ctx, leadID)
	if err != nil {
		return nil, err
	}

	tail := lead.Tail()
	if tail == nil || !tail.Status.IsOpen() {
		return nil, goerr.Wrap(ErrInvalidTransition, "lead has no open assignment",
			goerr.V(LeadIDKey, leadID),
			goerr.V(ActionKey, "progress"),
			goerr.V(TailStatusKey, tailStatus(tail)))
	}
	if !authz.CanResolve(actorID, tail.Assignee.UserID) {
		return nil, goerr.Wrap(ErrNotCurrentOwner, "only the current holder may set progress",
			goerr.V(LeadIDKey, leadID),
			goerr.V(ActionKey, "progress"),
			goerr.V(ActorKey, actorID))
	}

	lead.WorkProgress = progress
	return uc.save(ctx, lead, "progress")
}

func tailStatus(tail *model.AssignmentEntry) string {
	if tail == nil {
		return "none"
	}
	return tail.Status.String()
}
