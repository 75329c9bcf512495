package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Nikhilkrishnapk/complaint-hub/internal/auth"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/domain"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/events"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/repository"
	apperrors "github.com/Nikhilkrishnapk/complaint-hub/pkg/util"
)

const commentPreviewLength = 120

// ComplaintService coordinates complaint workflows.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	comments   repository.CommentRepository
	policy     *auth.Policy
	dispatcher events.Dispatcher
}

// ComplaintDependencies bundles collaborators for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo repository.ComplaintRepository
	CommentRepo   repository.CommentRepository
	Policy        *auth.Policy
	Dispatcher    events.Dispatcher
}

// ComplaintCreateInput describes complaint creation payload.
type ComplaintCreateInput struct {
	Title       string
	Description string
	Category    domain.ComplaintCategory
	Priority    domain.ComplaintPriority
}

// ComplaintDetail is one complaint with its thread and the caller's controls.
type ComplaintDetail struct {
	Complaint       *domain.Complaint
	Comments        []domain.Comment
	CanChangeStatus bool
	StatusOptions   []domain.ComplaintStatus
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	return &ComplaintService{
		complaints: deps.ComplaintRepo,
		comments:   deps.CommentRepo,
		policy:     deps.Policy,
		dispatcher: deps.Dispatcher,
	}
}

// CreateComplaint files a complaint owned by the calling student.
// Status is never supplied; the store defaults it.
func (s *ComplaintService) CreateComplaint(ctx context.Context, principal *auth.Principal, input ComplaintCreateInput) (*domain.Complaint, error) {
	if principal == nil || principal.Profile == nil {
		return nil, apperrors.NewUnauthorized("missing session")
	}
	if !s.policy.CanCreate(principal) {
		return nil, apperrors.NewForbidden("only students can file complaints")
	}

	complaint := &domain.Complaint{
		StudentID:   principal.Profile.ID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    input.Category,
		Priority:    input.Priority,
	}
	if complaint.Priority == "" {
		complaint.Priority = domain.ComplaintPriorityMedium
	}
	if err := validateComplaint(complaint); err != nil {
		return nil, err
	}

	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintCreated,
		ComplaintID: complaint.ID,
		Actor:       actorOf(principal),
		Payload: events.ComplaintCreatedPayload{
			Title:    complaint.Title,
			Category: complaint.Category,
			Priority: complaint.Priority,
		},
	})
	return complaint, nil
}

// ListComplaints returns the complaints visible to the caller, newest first.
func (s *ComplaintService) ListComplaints(ctx context.Context, principal *auth.Principal, status *domain.ComplaintStatus) ([]domain.Complaint, error) {
	filter, err := s.policy.ListScope(principal, status)
	if err != nil {
		return nil, err
	}
	return s.complaints.List(ctx, filter)
}

// GetDetail loads a complaint with its ordered comment thread.
// Complaints the caller may not see are reported as missing.
func (s *ComplaintService) GetDetail(ctx context.Context, principal *auth.Principal, complaintID string) (*ComplaintDetail, error) {
	complaint, err := s.loadVisible(ctx, principal, complaintID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByComplaint(ctx, complaint.ID)
	if err != nil {
		return nil, err
	}
	return &ComplaintDetail{
		Complaint:       complaint,
		Comments:        comments,
		CanChangeStatus: s.policy.CanChangeStatus(principal),
		StatusOptions:   s.policy.StatusOptions(principal, complaint.Status),
	}, nil
}

// AddComment appends a comment authored by the caller. Blank content is a
// no-op: nothing is read or written and the returned comment is nil.
func (s *ComplaintService) AddComment(ctx context.Context, principal *auth.Principal, complaintID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil
	}
	if principal == nil || principal.Profile == nil {
		return nil, apperrors.NewUnauthorized("missing session")
	}

	complaint, err := s.loadVisible(ctx, principal, complaintID)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanComment(principal, complaint) {
		return nil, apperrors.NewForbidden("cannot comment on this complaint")
	}

	comment := &domain.Comment{
		ComplaintID: complaint.ID,
		AuthorID:    principal.Profile.ID,
		Content:     content,
		Author: &domain.CommentAuthor{
			FullName: principal.Profile.FullName,
			Role:     principal.Profile.Role,
		},
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:        events.EventCommentAdded,
		ComplaintID: complaint.ID,
		Actor:       actorOf(principal),
		Payload: events.CommentAddedPayload{
			CommentID:      comment.ID,
			StudentID:      complaint.StudentID,
			ContentPreview: stringPreview(comment.Content, commentPreviewLength),
		},
	})
	return comment, nil
}

// UpdateStatus moves a complaint to a new status and returns the refetched complaint.
func (s *ComplaintService) UpdateStatus(ctx context.Context, principal *auth.Principal, complaintID string, newStatus domain.ComplaintStatus) (*domain.Complaint, error) {
	if !s.policy.CanChangeStatus(principal) {
		return nil, apperrors.NewForbidden("admin required")
	}
	if !newStatus.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(newStatus)})
	}

	complaint, err := s.loadVisible(ctx, principal, complaintID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CheckTransition(complaint.Status, newStatus); err != nil {
		return nil, err
	}

	oldStatus := complaint.Status
	if err := s.complaints.UpdateStatus(ctx, complaint.ID, newStatus); err != nil {
		return nil, err
	}
	updated, err := s.complaints.GetByID(ctx, complaint.ID)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintStatusChanged,
		ComplaintID: complaint.ID,
		Actor:       actorOf(principal),
		Payload: events.ComplaintStatusChangedPayload{
			StudentID: complaint.StudentID,
			OldStatus: oldStatus,
			NewStatus: updated.Status,
		},
	})
	return updated, nil
}

func (s *ComplaintService) loadVisible(ctx context.Context, principal *auth.Principal, complaintID string) (*domain.Complaint, error) {
	if principal == nil || principal.Profile == nil {
		return nil, apperrors.NewUnauthorized("missing session")
	}
	notFound := apperrors.NewNotFound("complaint", map[string]any{"id": complaintID})
	if _, err := uuid.Parse(complaintID); err != nil {
		return nil, notFound
	}
	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if apperrors.ToDomainError(err).Code == "NOT_FOUND" {
			return nil, notFound
		}
		return nil, err
	}
	if !s.policy.CanView(principal, complaint) {
		return nil, notFound
	}
	return complaint, nil
}

func validateComplaint(c *domain.Complaint) error {
	details := map[string]any{}
	if c.Title == "" {
		details["title"] = "this field is required"
	}
	if c.Description == "" {
		details["description"] = "this field is required"
	}
	if !c.Category.Valid() {
		details["category"] = "unknown category"
	}
	if !c.Priority.Valid() {
		details["priority"] = "unknown priority"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid complaint", details)
	}
	return nil
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorOf(principal *auth.Principal) events.Actor {
	return events.Actor{
		ProfileID: principal.Profile.ID,
		Role:      principal.Profile.Role,
	}
}

func stringPreview(body string, max int) string {
	runes := []rune(strings.TrimSpace(body))
	if len(runes) <= max {
		return string(runes)
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
