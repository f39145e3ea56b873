package travel

import (
	"context"
	"errors"

	"travelbook/logger"
	"travelbook/models"
)

// Documents stores the financial documents linked to travels and runs the
// document analytics over them.
type Documents struct {
	docs    DocumentStore
	travels Store
	opts    Options
	log     *logger.Logger
}

func NewDocuments(docs DocumentStore, travels Store, opts Options, log *logger.Logger) *Documents {
	return &Documents{docs: docs, travels: travels, opts: opts.withDefaults(), log: log}
}

// Add links a document to an existing travel of the twin.
func (d *Documents) Add(ctx context.Context, twinID, travelID string, in models.DocumentInput) (*models.TravelDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, d.opts.StoreTimeout)
	defer cancel()

	if _, err := d.travels.Get(ctx, travelID, twinID); err != nil {
		if errors.Is(err, ErrNoDocument) {
			return nil, notFound(EntityTravel, travelID)
		}
		return nil, classify("read travel", err)
	}
	doc, err := models.NewTravelDocument(d.opts.NewID(), twinID, travelID, in, d.opts.Now().UTC())
	if err != nil {
		return nil, classify("create document", err)
	}
	if err := d.docs.InsertDocument(ctx, doc); err != nil {
		return nil, classify("insert document", err)
	}
	d.log.Info("travel document added", "documentId", doc.ID, "travelId", travelID, "twinId", twinID)
	return doc, nil
}

// List returns the twin's documents, all of them or those of one travel.
func (d *Documents) List(ctx context.Context, twinID, travelID string) ([]models.TravelDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, d.opts.StoreTimeout)
	defer cancel()

	docs, err := d.docs.ListDocuments(ctx, twinID, travelID, d.opts.StatsScanLimit)
	if err != nil {
		return nil, classify("list documents", err)
	}
	if docs == nil {
		docs = []models.TravelDocument{}
	}
	return docs, nil
}

func (d *Documents) Stats(ctx context.Context, twinID, travelID string) (*models.DocumentStats, error) {
	docs, err := d.List(ctx, twinID, travelID)
	if err != nil {
		return nil, err
	}
	return SummarizeDocuments(docs), nil
}
