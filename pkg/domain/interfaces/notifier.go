package interfaces

import (
	"context"

	"github.com/acreflow/leadflow/pkg/domain/model"
)

// Notifier delivers a best-effort notice that a lead changed hands. It is
// invoked after the chain mutation is persisted; a delivery failure must
// never roll the mutation back.
type Notifier interface {
	// NotifyAssigned informs the new holder of the lead. The assignee
	// snapshot is the freshly appended chain tail.
	NotifyAssigned(ctx context.Context, lead *model.Lead, assignee model.UserSnapshot) error
}
