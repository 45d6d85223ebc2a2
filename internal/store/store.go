// Package store provides a thin document-store abstraction over the two
// logical collections (jobs, bids). Filters are exact-match only and ids are
// opaque strings that round-trip exactly as produced by InsertOne.
package store

import (
	"context"
	"encoding/json"
	"errors"
)

// Document is a schemaless record as stored. The "_id" key carries the
// store-assigned identifier on reads and is never part of an insert or update
// payload.
type Document map[string]any

// Filter maps field names to exact-match values.
type Filter map[string]any

// Sort names a single field and direction. A nil sort means natural order,
// which is insertion-ish and carries no stability guarantee.
type Sort struct {
	Field      string
	Descending bool
}

// UpdateResult reports the outcome of UpdateOne.
type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
	UpsertedID    string
}

// DeleteResult reports the outcome of DeleteOne.
type DeleteResult struct {
	DeletedCount int64
}

var (
	// ErrNotFound is returned by FindOne when no document has the given id.
	ErrNotFound = errors.New("store: document not found")
	// ErrInvalidID is returned when an id does not parse into the store's
	// native identifier shape. It is never folded into ErrNotFound.
	ErrInvalidID = errors.New("store: invalid identifier")
)

// Collection is the capability set each logical collection exposes.
type Collection interface {
	Find(ctx context.Context, filter Filter, sort *Sort) ([]Document, error)
	FindOne(ctx context.Context, id string) (Document, error)
	InsertOne(ctx context.Context, doc Document) (string, error)
	// UpdateOne merges only the named fields into the document. With upsert
	// enabled a missing id creates a document holding exactly those fields.
	UpdateOne(ctx context.Context, id string, fields Document, upsert bool) (UpdateResult, error)
	DeleteOne(ctx context.Context, id string) (DeleteResult, error)
}

// Encode converts a domain value into a Document via its JSON form.
func Encode(v any) (Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	delete(doc, "_id")
	return doc, nil
}

// Decode populates a domain value from a Document via its JSON form.
func Decode(doc Document, v any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
