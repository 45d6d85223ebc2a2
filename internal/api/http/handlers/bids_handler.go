package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// BidsHandler manages bid endpoints.
type BidsHandler struct {
	service *service.BidService
}

// NewBidsHandler constructs handler.
func NewBidsHandler(bidService *service.BidService) *BidsHandler {
	return &BidsHandler{service: bidService}
}

// ListAsSeller GET /bids. Gated; supports optional caller-supplied sorting.
func (h *BidsHandler) ListAsSeller(c *fiber.Ctx) error {
	bids, err := h.service.ListBySeller(c.Context(), c.Query("email"), c.Query("sortField"), c.Query("sortOrder"))
	if err != nil {
		return err
	}
	return c.JSON(bids)
}

// ListAsBuyer GET /bids-request. Gated; lists bids placed against the
// buyer's jobs.
func (h *BidsHandler) ListAsBuyer(c *fiber.Ctx) error {
	bids, err := h.service.ListByBuyer(c.Context(), c.Query("email"))
	if err != nil {
		return err
	}
	return c.JSON(bids)
}

// Create POST /bids. Not identity-gated.
func (h *BidsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateBidRequest
	if err := dto.DecodeStrict(c.Body(), &req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.SellerEmail == "" || req.BuyerEmail == "" {
		return apperrors.NewValidationError("sellerEmail, buyerEmail required", nil)
	}
	status := domain.BidStatus(req.Status)
	if req.Status == "" {
		status = domain.BidStatusPending
	}
	if !status.Valid() {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": req.Status})
	}

	id, err := h.service.Create(c.Context(), domain.Bid{
		JobID:       req.JobID,
		JobTitle:    req.JobTitle,
		BuyerEmail:  req.BuyerEmail,
		SellerEmail: req.SellerEmail,
		Price:       req.Price,
		Deadline:    req.Deadline,
		Status:      status,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.InsertResponse{InsertedID: id})
}

// UpdateStatus PUT /bids-request/:id. Replaces only the status field, with
// upsert enabled.
func (h *BidsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateBidStatusRequest
	if err := dto.DecodeStrict(c.Body(), &req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status := domain.BidStatus(req.Status)
	if !status.Valid() {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": req.Status})
	}

	result, err := h.service.UpdateStatus(c.Context(), c.Params("id"), status)
	if err != nil {
		return err
	}
	return c.JSON(dto.UpdateResponse{
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
		UpsertedID:    result.UpsertedID,
	})
}
