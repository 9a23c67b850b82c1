package usecase

import (
	"github.com/acreflow/leadflow/pkg/domain/interfaces"
)

// UseCases bundles the lead workflow use cases behind a single constructor.
type UseCases struct {
	repo      interfaces.Repository
	directory interfaces.Directory
	notifier  interfaces.Notifier

	Lead     *LeadUseCase
	Chain    *ChainUseCase
	FollowUp *FollowUpUseCase
}

type Option func(*UseCases)

// WithNotifier attaches a best-effort assignment notifier.
func WithNotifier(n interfaces.Notifier) Option {
	return func(uc *UseCases) {
		uc.notifier = n
	}
}

func New(repo interfaces.Repository, dir interfaces.Directory, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:      repo,
		directory: dir,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Lead = NewLeadUseCase(repo, dir)
	uc.Chain = NewChainUseCase(repo, dir, uc.notifier)
	uc.FollowUp = NewFollowUpUseCase(repo, dir)

	return uc
}
