package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/acreflow/leadflow/pkg/domain/interfaces"
	"github.com/acreflow/leadflow/pkg/domain/model"
	"github.com/acreflow/leadflow/pkg/domain/types"
	"github.com/acreflow/leadflow/pkg/repository/memory"
	"github.com/acreflow/leadflow/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestCreateLead(t *testing.T) {
	t.Run("creates lead with intake chain entry", func(t *testing.T) {
		uc := newUseCases(t)
		ctx := context.Background()

		lead, err := uc.Lead.CreateLead(ctx, "tl", usecase.LeadInput{
			Name:     "Prospect Two",
			Email:    "p2@example.com",
			Phone:    "555-0100",
			Location: "Gurgaon",
			Property: "3BHK",
			Budget:   "90L",
		})
		gt.NoError(t, err).Required()

		gt.Value(t, lead.Status).Equal(types.LeadStatusCold)
		gt.Value(t, lead.WorkProgress).Equal(types.WorkProgressPending)
		gt.Value(t, lead.CreatedBy).Equal(types.UserID("tl"))
		gt.Array(t, lead.AssignmentChain).Length(1)

		entry := lead.AssignmentChain[0]
		gt.Value(t, entry.Assignee.UserID).Equal(types.UserID("tl"))
		gt.Value(t, entry.Assignee.Role).Equal(types.RoleTeamLeader)
		gt.Value(t, entry.Assignee.Name).Equal("Tina Lead")
		gt.Value(t, entry.Status).Equal(types.AssignmentAssigned)
	})

	t.Run("missing name fails validation", func(t *testing.T) {
		uc := newUseCases(t)

		_, err := uc.Lead.CreateLead(context.Background(), "tl", usecase.LeadInput{Email: "x@example.com"})
		gt.Bool(t, errors.Is(err, usecase.ErrValidation)).True()
	})

	t.Run("missing email fails validation", func(t *testing.T) {
		uc := newUseCases(t)

		_, err := uc.Lead.CreateLead(context.Background(), "tl", usecase.LeadInput{Name: "No Mail"})
		gt.Bool(t, errors.Is(err, usecase.ErrValidation)).True()
	})

	t.Run("unknown creator fails", func(t *testing.T) {
		uc := newUseCases(t)

		_, err := uc.Lead.CreateLead(context.Background(), "ghost", usecase.LeadInput{
			Name: "X", Email: "x@example.com",
		})
		gt.Bool(t, errors.Is(err, usecase.ErrUserNotFound)).True()
	})
}

func TestUpdateLeadFields(t *testing.T) {
	t.Run("edits contact fields and status", func(t *testing.T) {
		uc := newUseCases(t)
		ctx := context.Background()

		lead := createLead(t, uc, "tl")
		updated, err := uc.Lead.UpdateLeadFields(ctx, lead.ID, "emp", usecase.LeadInput{
			Name:   "Prospect One",
			Email:  "prospect@example.com",
			Budget: "1.2Cr",
			Status: types.LeadStatusHot,
		})
		gt.NoError(t, err).Required()

		gt.Value(t, updated.Budget).Equal("1.2Cr")
		gt.Value(t, updated.Status).Equal(types.LeadStatusHot)
		// Workflow state is untouched by field edits
		gt.Array(t, updated.AssignmentChain).Length(1)
		gt.Value(t, updated.WorkProgress).Equal(lead.WorkProgress)
	})

	t.Run("invalid status fails validation", func(t *testing.T) {
		uc := newUseCases(t)
		ctx := context.Background()

		lead := createLead(t, uc, "tl")
		_, err := uc.Lead.UpdateLeadFields(ctx, lead.ID, "tl", usecase.LeadInput{
			Name:   "Prospect One",
			Email:  "prospect@example.com",
			Status: types.LeadStatus("Boiling"),
		})
		gt.Bool(t, errors.Is(err, usecase.ErrValidation)).True()
	})
}

func TestListLeads(t *testing.T) {
	t.Run("filter by current holder uses the chain tail", func(t *testing.T) {
		uc := newUseCases(t)
		ctx := context.Background()

		first := createLead(t, uc, "tl")
		second := createLead(t, uc, "tl")

		_, err := uc.Chain.Forward(ctx, first.ID, "tl", "emp", "")
		gt.NoError(t, err).Required()

		mine, err := uc.Lead.ListLeads(ctx, "emp")
		gt.NoError(t, err).Required()
		gt.Array(t, mine).Length(1)
		gt.Value(t, mine[0].ID).Equal(first.ID)

		all, err := uc.Lead.ListLeads(ctx, "")
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(2)

		// A completed lead is no longer "assigned to" anyone
		_, err = uc.Chain.Complete(ctx, second.ID, "tl", "")
		gt.NoError(t, err).Required()
		tlLeads, err := uc.Lead.ListLeads(ctx, "tl")
		gt.NoError(t, err).Required()
		gt.Array(t, tlLeads).Length(0)
	})
}

func TestDeleteLead(t *testing.T) {
	t.Run("super admin may delete", func(t *testing.T) {
		uc := newUseCases(t)
		ctx := context.Background()

		lead := createLead(t, uc, "tl")
		gt.NoError(t, uc.Lead.DeleteLead(ctx, lead.ID, "super")).Required()

		_, err := uc.Lead.GetLead(ctx, lead.ID)
		gt.Bool(t, errors.Is(err, usecase.ErrLeadNotFound)).True()
	})

	t.Run("lower roles are forbidden", func(t *testing.T) {
		uc := newUseCases(t)
		ctx := context.Background()

		lead := createLead(t, uc, "tl")
		for _, actor := range []types.UserID{"emp", "tl", "head"} {
			err := uc.Lead.DeleteLead(ctx, lead.ID, actor)
			gt.Bool(t, errors.Is(err, usecase.ErrForbidden)).True()
		}
	})
}

// recordingNotifier captures notifications for assertion
type recordingNotifier struct {
	mu    sync.Mutex
	calls []model.UserSnapshot
	done  chan struct{}
	fail  error
}

var _ interfaces.Notifier = &recordingNotifier{}

func (n *recordingNotifier) NotifyAssigned(ctx context.Context, lead *model.Lead, assignee model.UserSnapshot) error {
	n.mu.Lock()
	n.calls = append(n.calls, assignee)
	n.mu.Unlock()
	if n.done != nil {
		n.done <- struct{}{}
	}
	return n.fail
}

func TestAssignmentNotification(t *testing.T) {
	t.Run("forward notifies the new assignee", func(t *testing.T) {
		notifier := &recordingNotifier{done: make(chan struct{}, 1)}
		uc := usecase.New(memory.New(), testDirectory(t), usecase.WithNotifier(notifier))
		ctx := context.Background()

		lead := createLead(t, uc, "tl")
		_, err := uc.Chain.Forward(ctx, lead.ID, "tl", "emp", "")
		gt.NoError(t, err).Required()

		<-notifier.done
		notifier.mu.Lock()
		defer notifier.mu.Unlock()
		gt.Array(t, notifier.calls).Length(1)
		gt.Value(t, notifier.calls[0].UserID).Equal(types.UserID("emp"))
	})

	t.Run("notifier failure does not roll back the mutation", func(t *testing.T) {
		notifier := &recordingNotifier{done: make(chan struct{}, 1), fail: errors.New("smtp down")}
		uc := usecase.New(memory.New(), testDirectory(t), usecase.WithNotifier(notifier))
		ctx := context.Background()

		lead := createLead(t, uc, "tl")
		lead, err := uc.Chain.Forward(ctx, lead.ID, "tl", "emp", "")
		gt.NoError(t, err).Required()
		<-notifier.done

		final, err := uc.Lead.GetLead(ctx, lead.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, final.AssignedTo()).Equal(types.UserID("emp"))
	})
}
