package service

import (
	"context"
	"errors"

	"github.com/spec-kit/marketplace-service/internal/cache"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/store"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// JobUpdate names the replaceable job fields. An update always writes the
// whole set, never a subset.
type JobUpdate struct {
	JobTitle     string
	Deadline     string
	Category     domain.Category
	MinimumPrice float64
	MaximumPrice float64
	Description  string
}

// JobService maps job operations onto the document store.
type JobService struct {
	jobs       store.Collection
	listings   *cache.ListingCache
	dispatcher events.Dispatcher
}

// NewJobService builds the service.
func NewJobService(jobs store.Collection, listings *cache.ListingCache, dispatcher events.Dispatcher) *JobService {
	return &JobService{jobs: jobs, listings: listings, dispatcher: dispatcher}
}

// ListByBuyer returns every job owned by the given buyer identity.
func (s *JobService) ListByBuyer(ctx context.Context, email string) ([]domain.Job, error) {
	docs, err := s.jobs.Find(ctx, store.Filter{"buyerEmail": email}, nil)
	if err != nil {
		return nil, err
	}
	return decodeJobs(docs)
}

// Get looks up a job by id. A missing job is not an error: the lookup is
// permissive and yields nil.
func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	doc, err := s.jobs.FindOne(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		if errors.Is(err, store.ErrInvalidID) {
			return nil, apperrors.NewInvalidIdentifier("malformed job id")
		}
		return nil, err
	}

	var job domain.Job
	if err := store.Decode(doc, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// ListByCategory returns the public listing for one fixed category tag,
// served from the listing cache when warm.
func (s *JobService) ListByCategory(ctx context.Context, category domain.Category) ([]domain.Job, error) {
	key := listingKey(category)
	var cached []domain.Job
	if s.listings.Get(ctx, key, &cached) {
		return cached, nil
	}

	docs, err := s.jobs.Find(ctx, store.Filter{"category": string(category)}, nil)
	if err != nil {
		return nil, err
	}
	jobs, err := decodeJobs(docs)
	if err != nil {
		return nil, err
	}

	s.listings.Set(ctx, key, jobs)
	return jobs, nil
}

// Create inserts a job. Ownership of the record is whatever buyerEmail the
// caller supplied; creation is not identity-gated.
func (s *JobService) Create(ctx context.Context, job domain.Job) (string, error) {
	doc, err := store.Encode(job)
	if err != nil {
		return "", err
	}
	id, err := s.jobs.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}

	s.listings.Invalidate(ctx, listingKey(job.Category))
	s.publish(ctx, events.NewJobCreated(id, events.JobCreatedPayload{
		BuyerEmail: job.BuyerEmail,
		Category:   job.Category,
		JobTitle:   job.JobTitle,
	}))
	return id, nil
}

// Update replaces the six editable fields, creating the document when the id
// is unknown (upsert).
func (s *JobService) Update(ctx context.Context, id string, upd JobUpdate) (store.UpdateResult, error) {
	fields := store.Document{
		"jobTitle":     upd.JobTitle,
		"deadline":     upd.Deadline,
		"category":     string(upd.Category),
		"minimumPrice": upd.MinimumPrice,
		"maximumPrice": upd.MaximumPrice,
		"description":  upd.Description,
	}
	result, err := s.jobs.UpdateOne(ctx, id, fields, true)
	if err != nil {
		if errors.Is(err, store.ErrInvalidID) {
			return store.UpdateResult{}, apperrors.NewInvalidIdentifier("malformed job id")
		}
		return store.UpdateResult{}, err
	}

	// the category may have changed, drop every tab listing
	s.invalidateListings(ctx)
	return result, nil
}

// Delete removes a job by id.
func (s *JobService) Delete(ctx context.Context, id string) (store.DeleteResult, error) {
	result, err := s.jobs.DeleteOne(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrInvalidID) {
			return store.DeleteResult{}, apperrors.NewInvalidIdentifier("malformed job id")
		}
		return store.DeleteResult{}, err
	}

	s.invalidateListings(ctx)
	return result, nil
}

func (s *JobService) invalidateListings(ctx context.Context) {
	for _, category := range domain.Categories {
		s.listings.Invalidate(ctx, listingKey(category))
	}
}

func (s *JobService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func listingKey(category domain.Category) string {
	return "jobs:category:" + string(category)
}

func decodeJobs(docs []store.Document) ([]domain.Job, error) {
	jobs := make([]domain.Job, 0, len(docs))
	for _, doc := range docs {
		var job domain.Job
		if err := store.Decode(doc, &job); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
