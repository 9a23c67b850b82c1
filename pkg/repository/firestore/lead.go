package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/acreflow/leadflow/pkg/domain/interfaces"
	"github.com/acreflow/leadflow/pkg/domain/model"
	"github.com/acreflow/leadflow/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type leadRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newLeadRepository(client *firestore.Client) *leadRepository {
	return &leadRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *leadRepository) leadsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_leads"
	}
	return "leads"
}

func (r *leadRepository) Create(ctx context.Context, lead *model.Lead) (*model.Lead, error) {
	if lead.ID == "" {
		return nil, goerr.New("lead ID is required")
	}

	now := time.Now().UTC()
	created := lead.Clone()
	if created.CreatedAt.IsZero() {
		created.CreatedAt = now
	}
	created.UpdatedAt = now
	created.Revision = 1

	docRef := r.client.Collection(r.leadsCollection()).Doc(created.ID.String())
	if _, err := docRef.Create(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create lead", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *leadRepository) Get(ctx context.Context, id types.LeadID) (*model.Lead, error) {
	docSnap, err := r.client.Collection(r.leadsCollection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrLeadNotFound, "lead not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get lead", goerr.V("id", id))
	}

	var lead model.Lead
	if err := docSnap.DataTo(&lead); err != nil {
		return nil, goerr.Wrap(err, "failed to decode lead", goerr.V("id", id))
	}

	return &lead, nil
}

func (r *leadRepository) List(ctx context.Context) ([]*model.Lead, error) {
	iter := r.client.Collection(r.leadsCollection()).OrderBy("createdAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var leads []*model.Lead
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate leads")
		}

		var lead model.Lead
		if err := docSnap.DataTo(&lead); err != nil {
			return nil, goerr.Wrap(err, "failed to decode lead", goerr.V("doc_id", docSnap.Ref.ID))
		}

		leads = append(leads, &lead)
	}

	return leads, nil
}

// Update applies the lead inside a transaction only if the stored revision
// still equals expectedRevision. This is the compare-and-swap that makes two
// racing chain mutations resolve to exactly one winner.
func (r *leadRepository) Update(ctx context.Context, lead *model.Lead, expectedRevision int64) (*model.Lead, error) {
	docRef := r.client.Collection(r.leadsCollection()).Doc(lead.ID.String())

	updated := lead.Clone()

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docSnap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(interfaces.ErrLeadNotFound, "lead not found", goerr.V("id", lead.ID))
			}
			return goerr.Wrap(err, "failed to get lead", goerr.V("id", lead.ID))
		}

		var stored model.Lead
		if err := docSnap.DataTo(&stored); err != nil {
			return goerr.Wrap(err, "failed to decode lead", goerr.V("id", lead.ID))
		}

		if stored.Revision != expectedRevision {
			return goerr.Wrap(interfaces.ErrRevisionConflict, "lead was modified concurrently",
				goerr.V("id", lead.ID),
				goerr.V("expected_revision", expectedRevision),
				goerr.V("stored_revision", stored.Revision))
		}

		updated.CreatedAt = stored.CreatedAt
		updated.UpdatedAt = time.Now().UTC()
		updated.Revision = stored.Revision + 1

		return tx.Set(docRef, updated)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *leadRepository) Delete(ctx context.Context, id types.LeadID) error {
	docRef := r.client.Collection(r.leadsCollection()).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(interfaces.ErrLeadNotFound, "lead not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check lead existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete lead", goerr.V("id", id))
	}

	return nil
}
