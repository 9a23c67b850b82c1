package notify

import (
	"context"
	"errors"

	"github.com/acreflow/leadflow/pkg/domain/interfaces"
	"github.com/acreflow/leadflow/pkg/domain/model"
)

// Multi fans a notification out to several notifiers. Each target is
// attempted even when an earlier one fails; failures are joined.
type Multi []interfaces.Notifier

var _ interfaces.Notifier = Multi{}

func (m Multi) NotifyAssigned(ctx context.Context, lead *model.Lead, assignee model.UserSnapshot) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyAssigned(ctx, lead, assignee); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
