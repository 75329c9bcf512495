package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Nikhilkrishnapk/complaint-hub/internal/api/dto"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/api/presenter"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/auth"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/domain"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/service"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/validation"
	apperrors "github.com/Nikhilkrishnapk/complaint-hub/pkg/util"
)

// ComplaintsHandler manages complaint endpoints for both roles.
type ComplaintsHandler struct {
	service *service.ComplaintService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService *service.ComplaintService) *ComplaintsHandler {
	return &ComplaintsHandler{service: complaintService}
}

// CreateComplaint POST /complaints.
func (h *ComplaintsHandler) CreateComplaint(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing session")
	}
	var req dto.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	complaint, err := h.service.CreateComplaint(c.UserContext(), principal, service.ComplaintCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data":     complaintResponse(complaint),
		"redirect": redirectDashboard,
	})
}

// ListComplaints GET /complaints?status=.
func (h *ComplaintsHandler) ListComplaints(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing session")
	}
	status, err := service.ParseStatusFilter(c.Query("status"))
	if err != nil {
		return err
	}
	complaints, err := h.service.ListComplaints(c.UserContext(), principal, status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": presenter.Cards(complaints, principal.IsAdmin())})
}

// GetComplaint GET /complaints/:id.
func (h *ComplaintsHandler) GetComplaint(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing session")
	}
	detail, err := h.service.GetDetail(c.UserContext(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": complaintDetailResponse(detail)})
}

// AddComment POST /complaints/:id/comments.
func (h *ComplaintsHandler) AddComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing session")
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	ctx := c.UserContext()
	comment, err := h.service.AddComment(ctx, principal, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	detail, err := h.service.GetDetail(ctx, principal, c.Params("id"))
	if err != nil {
		return err
	}

	status := http.StatusOK
	if comment != nil {
		status = http.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"data": dto.CommentThreadResponse{
		Created:  comment != nil,
		Comments: commentResponses(detail.Comments),
	}})
}

// UpdateStatus PATCH /complaints/:id/status.
func (h *ComplaintsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing session")
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	ctx := c.UserContext()
	if _, err := h.service.UpdateStatus(ctx, principal, c.Params("id"), req.Status); err != nil {
		return err
	}
	detail, err := h.service.GetDetail(ctx, principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": complaintDetailResponse(detail)})
}

func complaintResponse(c *domain.Complaint) dto.ComplaintResponse {
	return dto.ComplaintResponse{
		ID:          c.ID,
		StudentID:   c.StudentID,
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Priority:    c.Priority,
		Status:      c.Status,
		Badges: dto.ComplaintBadges{
			Status:   presenter.StatusBadge(c.Status),
			Priority: presenter.PriorityBadge(c.Priority),
			Category: presenter.CategoryBadge(c.Category),
		},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func complaintDetailResponse(d *service.ComplaintDetail) dto.ComplaintDetailResponse {
	options := d.StatusOptions
	if options == nil {
		options = []domain.ComplaintStatus{}
	}
	return dto.ComplaintDetailResponse{
		Complaint:       complaintResponse(d.Complaint),
		Comments:        commentResponses(d.Comments),
		CanChangeStatus: d.CanChangeStatus,
		StatusOptions:   options,
	}
}

func commentResponses(comments []domain.Comment) []dto.CommentResponse {
	out := make([]dto.CommentResponse, 0, len(comments))
	for _, cm := range comments {
		resp := dto.CommentResponse{
			ID:          cm.ID,
			ComplaintID: cm.ComplaintID,
			UserID:      cm.AuthorID,
			Content:     cm.Content,
			CreatedAt:   cm.CreatedAt,
		}
		if cm.Author != nil {
			resp.AuthorName = cm.Author.FullName
			resp.AuthorRole = cm.Author.Role
		}
		out = append(out, resp)
	}
	return out
}
