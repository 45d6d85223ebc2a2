package store

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryCollection is an in-process Collection with the same contract as the
// Postgres implementation. Used by tests.
type MemoryCollection struct {
	mu    sync.RWMutex
	docs  map[string]Document
	order []string
}

// NewMemoryCollection returns an empty collection.
func NewMemoryCollection() *MemoryCollection {
	return &MemoryCollection{docs: make(map[string]Document)}
}

func (c *MemoryCollection) Find(ctx context.Context, filter Filter, s *Sort) ([]Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Document, 0)
	for _, id := range c.order {
		doc := c.docs[id]
		if !matches(doc, filter) {
			continue
		}
		out = append(out, withID(doc, id))
	}

	if s != nil {
		field := s.Field
		sort.SliceStable(out, func(i, j int) bool {
			if s.Descending {
				return compareValues(out[j][field], out[i][field])
			}
			return compareValues(out[i][field], out[j][field])
		})
	}
	return out, nil
}

func (c *MemoryCollection) FindOne(ctx context.Context, id string) (Document, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	doc, ok := c.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return withID(doc, id), nil
}

func (c *MemoryCollection) InsertOne(ctx context.Context, doc Document) (string, error) {
	id := uuid.NewString()
	stored := clone(doc)
	delete(stored, "_id")

	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs[id] = stored
	c.order = append(c.order, id)
	return id, nil
}

func (c *MemoryCollection) UpdateOne(ctx context.Context, id string, fields Document, upsert bool) (UpdateResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UpdateResult{}, ErrInvalidID
	}
	merged := clone(fields)
	delete(merged, "_id")

	c.mu.Lock()
	defer c.mu.Unlock()

	doc, ok := c.docs[id]
	if !ok {
		if !upsert {
			return UpdateResult{}, nil
		}
		c.docs[id] = merged
		c.order = append(c.order, id)
		return UpdateResult{UpsertedID: id}, nil
	}

	for k, v := range merged {
		doc[k] = v
	}
	return UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (c *MemoryCollection) DeleteOne(ctx context.Context, id string) (DeleteResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DeleteResult{}, ErrInvalidID
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.docs[id]; !ok {
		return DeleteResult{}, nil
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return DeleteResult{DeletedCount: 1}, nil
}

func matches(doc Document, filter Filter) bool {
	for k, want := range filter {
		if !reflect.DeepEqual(doc[k], want) {
			return false
		}
	}
	return true
}

func withID(doc Document, id string) Document {
	out := clone(doc)
	out["_id"] = id
	return out
}

func clone(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

func compareValues(a, b any) bool {
	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok {
		return af < bf
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return as < bs
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}
