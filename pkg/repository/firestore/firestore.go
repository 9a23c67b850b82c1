package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/acreflow/leadflow/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// Firestore is the production Repository, one document per lead. Conditional
// updates run inside a transaction comparing the stored revision.
type Firestore struct {
	client *firestore.Client
	lead   *leadRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces collections, used to isolate test runs.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.lead.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	f := &Firestore{
		client: client,
		lead:   newLeadRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Lead() interfaces.LeadRepository {
	return f.lead
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
