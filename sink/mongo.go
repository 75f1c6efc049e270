package sink

import (
	"context"
	"fmt"
	"time"

	xmlschemas "github.com/gegedenice/star-harvest/XMLSchemas"
	"github.com/gegedenice/star-harvest/starharvester"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const disconnectTimeout = 10 * time.Second

// MongoSink mirrors kept rows into a MongoDB collection, one document per row.
type MongoSink struct {
	client     *mongo.Client
	collection *mongo.Collection
	runID      string
}

func OpenMongo(ctx context.Context, uri, database, collection, runID string) (*MongoSink, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}
	return &MongoSink{
		client:     client,
		collection: client.Database(database).Collection(collection),
		runID:      runID,
	}, nil
}

func (s *MongoSink) WriteRow(ctx context.Context, row *starharvester.Row) error {
	if _, err := s.collection.InsertOne(ctx, ThesisDocument(row, s.runID)); err != nil {
		return fmt.Errorf("inserting %s into mongodb: %w", row.OaiID, err)
	}
	return nil
}

func (s *MongoSink) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// ThesisDocument maps a row to its bson document. Contributors keep only
// the filled columns.
func ThesisDocument(row *starharvester.Row, runID string) xmlschemas.Thesis {
	contributors := make([]string, 0, len(row.Contributors))
	for _, c := range row.Contributors {
		if c != "" {
			contributors = append(contributors, c)
		}
	}
	return xmlschemas.Thesis{
		OaiID:         row.OaiID,
		Datestamp:     row.Datestamp,
		SetSpecs:      row.SetSpecs,
		SetEtab:       row.SetEtab,
		SetDDC:        row.SetDDC,
		IsDiffusable:  row.IsDiffusable,
		Title:         row.Title,
		Subject:       row.Subject,
		DescriptionFr: row.DescriptionFr,
		DescriptionEn: row.DescriptionEn,
		Language:      row.Language,
		Identifier:    row.Identifier,
		Creator:       row.Creator,
		Date:          row.Date,
		Year:          row.Year,
		Rights:        row.Rights,
		Contributors:  contributors,
		RunID:         runID,
	}
}
