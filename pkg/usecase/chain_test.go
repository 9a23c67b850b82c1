package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/acreflow/leadflow/pkg/domain/model"
	"github.com/acreflow/leadflow/pkg/domain/types"
	"github.com/acreflow/leadflow/pkg/repository/memory"
	"github.com/acreflow/leadflow/pkg/service/directory"
	"github.com/acreflow/leadflow/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func testDirectory(t *testing.T) *directory.Service {
	t.Helper()
	svc, err := directory.New([]model.User{
		{ID: "super", Name: "Sue Prime", Email: "sue@example.com", Role: types.RoleSuperAdmin},
		{ID: "head", Name: "Hank Head", Email: "hank@example.com", Role: types.RoleHeadAdmin, ReportsTo: "super"},
		{ID: "tl", Name: "Tina Lead", Email: "tina@example.com", Role: types.RoleTeamLeader, ReportsTo: "head"},
		{ID: "emp", Name: "Evan Emp", Email: "evan@example.com", Role: types.RoleEmployee, ReportsTo: "tl"},
		{ID: "emp2", Name: "Erin Emp", Email: "erin@example.com", Role: types.RoleEmployee, ReportsTo: "tl"},
		{ID: "tl2", Name: "Tom Lead", Email: "tom@example.com", Role: types.RoleTeamLeader, ReportsTo: "head"},
		{ID: "emp3", Name: "Eli Emp", Email: "eli@example.com", Role: types.RoleEmployee, ReportsTo: "tl2"},
	})
	gt.NoError(t, err).Required()
	return svc
}

func newUseCases(t *testing.T, opts ...usecase.Option) *usecase.UseCases {
	t.Helper()
	return usecase.New(memory.New(), testDirectory(t), opts...)
}

func createLead(t *testing.T, uc *usecase.UseCases, creator types.UserID) *model.Lead {
	t.Helper()
	lead, err := uc.Lead.CreateLead(context.Background(), creator, usecase.LeadInput{
		Name:  "Prospect One",
		Email: "prospect@example.com",
	})
	gt.NoError(t, err).Required()
	return lead
}

// chainInvariants asserts the structural properties every lead must hold:
// at most one non-terminal entry, always at the tail, and the denormalized
// holder view always derived from that tail.
func chainInvariants(t *testing.T, lead *model.Lead) {
	t.Helper()

	open := 0
	for i, entry := range lead.AssignmentChain {
		if entry.Status.IsOpen() {
			open++
			gt.Number(t, i).Equal(len(lead.AssignmentChain) - 1)
		}
	}
	gt.Bool(t, open <= 1).True()

	if tail := lead.Tail(); tail != nil {
		gt.Value(t, lead.AssignedTo()).Equal(tail.Assignee.UserID)
		gt.Value(t, lead.AssignedBy()).Equal(tail.AssignedBy)
	}
}

func TestChainLifecycle(t *testing.T) {
	t.Run("team leader assigns, employee works and completes", func(t *testing.T) {
		uc := newUseCases(t)
		ctx := context.Background()

		lead := createLead(t, uc, "tl")
		gt.Array(t, lead.AssignmentChain).Length(1)
		gt.Value(t, lead.AssignedTo()).Equal(types.UserID("tl"))

		// Creator completes their own intake entry, then assigns to employee
		lead, err := uc.Chain.Complete(ctx, lead.ID, "tl", "triaged")
		gt.NoError(t, err).Required()

		lead, err = uc.Chain.Assign(ctx, lead.ID, "tl", "emp")
		gt.NoError(t, err).Required()
		gt.Array(t, lead.AssignmentChain).Length(2)
		gt.Value(t, lead.AssignedTo()).Equal(types.UserID("emp"))
		gt.Value(t, lead.AssignedBy()).Equal(types.UserID("tl"))
		gt.Value(t, lead.WorkProgress).Equal(types.WorkProgressPending)
		chainInvariants(t, lead)

		lead, err = uc.Chain.SetWorkProgress(ctx, lead.ID, "emp", types.WorkProgressInProgress)
		gt.NoError(t, err).Required()
		gt.Value(t, lead.WorkProgress).Equal(types.WorkProgressInProgress)
		gt.Array(t, lead.AssignmentChain).Length(2)

		lead, err = uc.Chain.Complete(ctx, lead.ID, "emp", "")
		gt.NoError(t, err).Required()
		gt.Value(t, lead.Tail().Status).Equal(types.AssignmentCompleted)
		gt.Value(t, lead.WorkProgress).Equal(types.WorkProgressDone)
		gt.Value(t, lead.Tail().CompletedAt == nil).Equal(false)
		chainInvariants(t, lead)
	})

	t.Run("forward closes old tail and opens new one atomically", func(t *testing.T) {
		uc := newUseCases(t)
		ctx := context.Background()

		lead := createLead(t, uc, "tl")
		lead, err := uc.Chain.Complete(ctx, lead.ID, "tl", "")
		gt.NoError(t, err).Required()
		lead, err = uc.Chain.Assign(ctx, lead.ID, "tl", "emp")
		gt.NoError(t, err).Required()

		before := len(lead.AssignmentChain)
		lead, err = uc.Chain.Forward(ctx, lead.ID, "emp", "head", "needs approval")
		gt.NoError(t, err).Required()

		gt.Array(t, lead.AssignmentChain).Length(before + 1)
		closed := lead.AssignmentChain[before-1]
		gt.Value(t, closed.Status).Equal(types.AssignmentForwarded)
		gt.Value(t, closed.Notes).Equal("needs approval")
		gt.Value(t, closed.CompletedAt == nil).Equal(false)

		gt.Value(t, lead.AssignedTo()).Equal(types.UserID("head"))
		gt.Value(t, lead.Tail().Status).Equal(types.AssignmentAssigned)
		gt.Value(t, lead.WorkProgress).Equal(types.WorkProgressPending)
		chainInvariants(t, lead)
	})

	t.Run("reject ends segment without forcing progress to done", func(t *testing.T) {
		uc := newUseCases(t)
		ctx := context.Background()

		lead := createLead(t, uc, "tl")
		lead, err := uc.Chain.SetWorkProgress(ctx, lead.ID, "tl", types.WorkProgressInProgress)
		gt.NoError(t, err).Required()

		lead, err = uc.Chain.Reject(ctx, lead.ID, "tl", "duplicate entry")
		gt.NoError(t, err).Required()
		gt.Value(t, lead.Tail().Status).Equal(types.AssignmentRejected)
		gt.Value(t, lead.Tail().Notes).Equal("duplicate entry")
		gt.Value(t, lead.WorkProgress).Equal(types.WorkProgressInProgress)
		chainInvariants(t, lead)
	})

	t.Run("rejected lead can be re-assigned", func(t *testing.T) {
		uc := newUseCases(t)
		ctx := context.Background()

		lead := createLead(t, uc, "tl")
		lead, err := uc.Chain.Reject(ctx, lead.ID, "tl", "wrong region")
		gt.NoError(t, err).Required()

		lead, err = uc.Chain.Assign(ctx, lead.ID, "tl", "emp2")
		gt.NoError(t, err).Required()
		gt.Array(t, lead.AssignmentChain).Length(2)
		gt.Value(t, lead.AssignedTo()).Equal(types.UserID("emp2"))
		gt.Value(t, lead.WorkProgress).Equal(types.WorkProgressPending)
		chainInvariants(t, lead)
	})

	t.Run("progress done without complete keeps chain open", func(t *testing.T) {
		uc := newUseCases(t)
		ctx := context.Background()

		lead := createLead(t, uc, "tl")
		lead, err := uc.Chain.SetWorkProgress(ctx, lead.ID, "tl", types.WorkProgressDone)
		gt.NoError(t, err).Required()

		// Progress says done; the chain still records an open assignment.
		gt.Value(t, lead.WorkProgress).Equal(types.WorkProgressDone)
		gt.Bool(t, lead.IsOpen()).True()
	})
}

func TestChainPreconditions(t *testing.T) {
	t.Run("assign on an open lead is an invalid transition", func(t *testing.T) {
		uc := newUseCases(t)
		ctx := context.Background()

		lead := createLead(t, uc, "tl")
		_, err := uc.Chain.Assign(ctx, lead.ID, "tl", "emp")
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidTransition)).True()
	})

	t.Run("non-owner complete returns ErrNotCurrentOwner", func(t *testing.T) {
		uc := newUseCases(t)
		ctx := context.Background()

		lead := createLead(t, uc, "tl")
		_, err := uc.Chain.Complete(ctx, lead.ID, "emp", "")
		gt.Bool(t, errors.Is(err, usecase.ErrNotCurrentOwner)).True()
	})

	t.Run("non-owner forward returns ErrNotCurrentOwner", func(t *testing.T) {
		uc := newUseCases(t)
		ctx := context.Background()

		lead := createLead(t, uc, "tl")
		_, err := uc.Chain.Forward(ctx, lead.ID, "emp", "head", "")
		gt.Bool(t, errors.Is(err, usecase.ErrNotCurrentOwner)).True()
	})

	t.Run("complete on a closed lead is an invalid transition", func(t *testing.T) {
		uc := newUseCases(t)
		ctx := context.Background()

		lead := createLead(t, uc, "tl")
		_, err := uc.Chain.Complete(ctx, lead.ID, "tl", "")
		gt.NoError(t, err).Required()

		_, err = uc.Chain.Complete(ctx, lead.ID, "tl", "")
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidTransition)).True()
	})

	t.Run("invalid progress value fails validation", func(t *testing.T) {
		uc := newUseCases(t)
		ctx := context.Background()

		lead := createLead(t, uc, "tl")
		_, err := uc.Chain.SetWorkProgress(ctx, lead.ID, "tl", types.WorkProgress("halfway"))
		gt.Bool(t, errors.Is(err, usecase.ErrValidation)).True()
	})

	t.Run("unknown actor returns ErrUserNotFound", func(t *testing.T) {
		uc := newUseCases(t)
		ctx := context.Background()

		lead := createLead(t, uc, "tl")
		_, err := uc.Chain.Forward(ctx, lead.ID, "ghost", "head", "")
		gt.Bool(t, errors.Is(err, usecase.ErrUserNotFound)).True()
	})
}

func TestChainAuthorization(t *testing.T) {
	t.Run("employee cannot forward to out-of-scope peer", func(t *testing.T) {
		uc := newUseCases(t)
		ctx := context.Background()

		lead := createLead(t, uc, "tl")
		lead, err := uc.Chain.Complete(ctx, lead.ID, "tl", "")
		gt.NoError(t, err).Required()
		lead, err = uc.Chain.Assign(ctx, lead.ID, "tl", "emp")
		gt.NoError(t, err).Required()

		_, err = uc.Chain.Forward(ctx, lead.ID, "emp", "emp3", "")
		gt.Bool(t, errors.Is(err, usecase.ErrForbidden)).True()
	})

	t.Run("employee escalates to own team leader", func(t *testing.T) {
		uc := newUseCases(t)
		ctx := context.Background()

		lead := createLead(t, uc, "tl")
		lead, err := uc.Chain.Complete(ctx, lead.ID, "tl", "")
		gt.NoError(t, err).Required()
		lead, err = uc.Chain.Assign(ctx, lead.ID, "tl", "emp")
		gt.NoError(t, err).Required()

		lead, err = uc.Chain.Forward(ctx, lead.ID, "emp", "tl", "over my head")
		gt.NoError(t, err).Required()
		gt.Value(t, lead.AssignedTo()).Equal(types.UserID("tl"))
	})

	t.Run("team leader delegates down within scope only", func(t *testing.T) {
		uc := newUseCases(t)
		ctx := context.Background()

		lead := createLead(t, uc, "tl")

		// emp3 reports to tl2, not tl
		_, err := uc.Chain.Forward(ctx, lead.ID, "tl", "emp3", "")
		gt.Bool(t, errors.Is(err, usecase.ErrForbidden)).True()

		lead, err = uc.Chain.Forward(ctx, lead.ID, "tl", "emp", "your patch")
		gt.NoError(t, err).Required()
		gt.Value(t, lead.AssignedTo()).Equal(types.UserID("emp"))
	})

	t.Run("employee cannot make a fresh assignment", func(t *testing.T) {
		uc := newUseCases(t)
		ctx := context.Background()

		lead := createLead(t, uc, "tl")
		lead, err := uc.Chain.Complete(ctx, lead.ID, "tl", "")
		gt.NoError(t, err).Required()

		_, err = uc.Chain.Assign(ctx, lead.ID, "emp", "emp2")
		gt.Bool(t, errors.Is(err, usecase.ErrForbidden)).True()
	})

	t.Run("system intake assignment needs no actor", func(t *testing.T) {
		uc := newUseCases(t)
		ctx := context.Background()

		lead := createLead(t, uc, "tl")
		lead, err := uc.Chain.Complete(ctx, lead.ID, "tl", "")
		gt.NoError(t, err).Required()

		lead, err = uc.Chain.Assign(ctx, lead.ID, "", "emp")
		gt.NoError(t, err).Required()
		gt.Value(t, lead.AssignedTo()).Equal(types.UserID("emp"))
		gt.Value(t, lead.AssignedBy()).Equal(types.UserID(""))
	})
}

func TestChainConcurrency(t *testing.T) {
	t.Run("two concurrent forwards on the same tail have one winner", func(t *testing.T) {
		uc := newUseCases(t)
		ctx := context.Background()

		lead := createLead(t, uc, "tl")

		var wg sync.WaitGroup
		results := make(chan error, 2)
		for _, target := range []types.UserID{"emp", "emp2"} {
			wg.Add(1)
			go func(target types.UserID) {
				defer wg.Done()
				_, err := uc.Chain.Forward(ctx, lead.ID, "tl", target, "")
				results <- err
			}(target)
		}
		wg.Wait()
		close(results)

		var wins, losses int
		for err := range results {
			if err == nil {
				wins++
				continue
			}
			// The loser observed either the raced revision or the already
			// closed tail, both reported as an invalid transition or a
			// lost ownership check.
			gt.Bool(t, errors.Is(err, usecase.ErrInvalidTransition) ||
				errors.Is(err, usecase.ErrNotCurrentOwner)).True()
			losses++
		}
		gt.Number(t, wins).Equal(1)
		gt.Number(t, losses).Equal(1)

		final, err := uc.Lead.GetLead(ctx, lead.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, final.AssignmentChain).Length(2)
		chainInvariants(t, final)
	})
}
