package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// JobsHandler manages job endpoints.
type JobsHandler struct {
	service *service.JobService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobService *service.JobService) *JobsHandler {
	return &JobsHandler{service: jobService}
}

// ListMine GET /jobs. The ownership gate has already bound the credential to
// the email query parameter.
func (h *JobsHandler) ListMine(c *fiber.Ctx) error {
	jobs, err := h.service.ListByBuyer(c.Context(), c.Query("email"))
	if err != nil {
		return err
	}
	return c.JSON(jobs)
}

// Get GET /jobs/:id. Public; a missing job yields null rather than an error.
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	job, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(job)
}

// ByCategory serves one public category tab.
func (h *JobsHandler) ByCategory(category domain.Category) fiber.Handler {
	return func(c *fiber.Ctx) error {
		jobs, err := h.service.ListByCategory(c.Context(), category)
		if err != nil {
			return err
		}
		return c.JSON(jobs)
	}
}

// Create POST /jobs. Not identity-gated: the supplied buyerEmail becomes the
// owner as-is.
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateJobRequest
	if err := dto.DecodeStrict(c.Body(), &req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.BuyerEmail == "" || req.JobTitle == "" {
		return apperrors.NewValidationError("buyerEmail, jobTitle required", nil)
	}
	category := domain.Category(req.Category)
	if !category.Valid() {
		return apperrors.NewValidationError("unknown category", map[string]any{"category": req.Category})
	}

	id, err := h.service.Create(c.Context(), domain.Job{
		BuyerEmail:   req.BuyerEmail,
		JobTitle:     req.JobTitle,
		Category:     category,
		Deadline:     req.Deadline,
		MinimumPrice: req.MinimumPrice,
		MaximumPrice: req.MaximumPrice,
		Description:  req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.InsertResponse{InsertedID: id})
}

// Update PUT /jobs/:id. Replaces the editable field set; upserts on an
// unknown id.
func (h *JobsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateJobRequest
	if err := dto.DecodeStrict(c.Body(), &req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category := domain.Category(req.Category)
	if !category.Valid() {
		return apperrors.NewValidationError("unknown category", map[string]any{"category": req.Category})
	}

	result, err := h.service.Update(c.Context(), c.Params("id"), service.JobUpdate{
		JobTitle:     req.JobTitle,
		Deadline:     req.Deadline,
		Category:     category,
		MinimumPrice: req.MinimumPrice,
		MaximumPrice: req.MaximumPrice,
		Description:  req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.UpdateResponse{
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
		UpsertedID:    result.UpsertedID,
	})
}

// Delete DELETE /jobs/:id.
func (h *JobsHandler) Delete(c *fiber.Ctx) error {
	result, err := h.service.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.DeleteResponse{DeletedCount: result.DeletedCount})
}
