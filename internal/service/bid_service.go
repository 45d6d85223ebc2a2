package service

import (
	"context"
	"errors"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/store"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// bidSortFields is the allow-list for caller-supplied sort fields.
var bidSortFields = map[string]bool{
	"price":    true,
	"deadline": true,
	"status":   true,
	"jobTitle": true,
}

// BidService maps bid operations onto the document store.
type BidService struct {
	bids       store.Collection
	dispatcher events.Dispatcher
}

// NewBidService builds the service.
func NewBidService(bids store.Collection, dispatcher events.Dispatcher) *BidService {
	return &BidService{bids: bids, dispatcher: dispatcher}
}

// ListBySeller returns every bid placed by the given seller identity,
// optionally sorted by one allow-listed field.
func (s *BidService) ListBySeller(ctx context.Context, email, sortField, sortOrder string) ([]domain.Bid, error) {
	var sort *store.Sort
	if sortField != "" && sortOrder != "" {
		if !bidSortFields[sortField] {
			return nil, apperrors.NewValidationError("unsupported sort field", map[string]any{"sortField": sortField})
		}
		sort = &store.Sort{Field: sortField, Descending: sortOrder == "desc"}
	}

	docs, err := s.bids.Find(ctx, store.Filter{"sellerEmail": email}, sort)
	if err != nil {
		return nil, err
	}
	return decodeBids(docs)
}

// ListByBuyer returns every bid placed against the given buyer's jobs.
func (s *BidService) ListByBuyer(ctx context.Context, email string) ([]domain.Bid, error) {
	docs, err := s.bids.Find(ctx, store.Filter{"buyerEmail": email}, nil)
	if err != nil {
		return nil, err
	}
	return decodeBids(docs)
}

// Create inserts a bid; creation is not identity-gated.
func (s *BidService) Create(ctx context.Context, bid domain.Bid) (string, error) {
	doc, err := store.Encode(bid)
	if err != nil {
		return "", err
	}
	id, err := s.bids.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}

	s.publish(ctx, events.NewBidPlaced(id, events.BidPlacedPayload{
		JobID:       bid.JobID,
		SellerEmail: bid.SellerEmail,
		BuyerEmail:  bid.BuyerEmail,
		Price:       bid.Price,
	}))
	return id, nil
}

// UpdateStatus replaces only the status field, with upsert enabled. On an
// unknown id this creates a document holding nothing but the status.
func (s *BidService) UpdateStatus(ctx context.Context, id string, status domain.BidStatus) (store.UpdateResult, error) {
	result, err := s.bids.UpdateOne(ctx, id, store.Document{"status": string(status)}, true)
	if err != nil {
		if errors.Is(err, store.ErrInvalidID) {
			return store.UpdateResult{}, apperrors.NewInvalidIdentifier("malformed bid id")
		}
		return store.UpdateResult{}, err
	}

	s.publish(ctx, events.NewBidStatusChanged(id, events.BidStatusChangedPayload{NewStatus: status}))
	return result, nil
}

func (s *BidService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func decodeBids(docs []store.Document) ([]domain.Bid, error) {
	bids := make([]domain.Bid, 0, len(docs))
	for _, doc := range docs {
		var bid domain.Bid
		if err := store.Decode(doc, &bid); err != nil {
			return nil, err
		}
		bids = append(bids, bid)
	}
	return bids, nil
}
