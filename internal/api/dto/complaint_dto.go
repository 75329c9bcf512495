package dto

import (
	"time"

	"github.com/Nikhilkrishnapk/complaint-hub/internal/api/presenter"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/domain"
)

// CreateComplaintRequest payload.
type CreateComplaintRequest struct {
	Title       string                   `json:"title" validate:"notblank,max=200"`
	Description string                   `json:"description" validate:"notblank,max=5000"`
	Category    domain.ComplaintCategory `json:"category" validate:"required,oneof=hostel academic transport fees library facilities other"`
	Priority    domain.ComplaintPriority `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.ComplaintStatus `json:"status" validate:"required,oneof=new in_progress resolved closed"`
}

// CreateCommentRequest payload. Blank content is accepted and ignored.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"max=5000"`
}

// ComplaintResponse is the full complaint record.
type ComplaintResponse struct {
	ID          string                   `json:"id"`
	StudentID   string                   `json:"student_id"`
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Category    domain.ComplaintCategory `json:"category"`
	Priority    domain.ComplaintPriority `json:"priority"`
	Status      domain.ComplaintStatus   `json:"status"`
	Badges      ComplaintBadges          `json:"badges"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// ComplaintBadges groups the display badges of a complaint.
type ComplaintBadges struct {
	Status   presenter.Badge `json:"status"`
	Priority presenter.Badge `json:"priority"`
	Category presenter.Badge `json:"category"`
}

// CommentResponse represents one thread entry.
type CommentResponse struct {
	ID          string      `json:"id"`
	ComplaintID string      `json:"complaint_id"`
	UserID      string      `json:"user_id"`
	Content     string      `json:"content"`
	AuthorName  string      `json:"author_name"`
	AuthorRole  domain.Role `json:"author_role"`
	CreatedAt   time.Time   `json:"created_at"`
}

// ComplaintDetailResponse is a complaint with its thread and the caller's controls.
type ComplaintDetailResponse struct {
	Complaint       ComplaintResponse        `json:"complaint"`
	Comments        []CommentResponse        `json:"comments"`
	CanChangeStatus bool                     `json:"can_change_status"`
	StatusOptions   []domain.ComplaintStatus `json:"status_options"`
}

// CommentThreadResponse is returned by the comment endpoint.
type CommentThreadResponse struct {
	Created  bool              `json:"created"`
	Comments []CommentResponse `json:"comments"`
}

// StatsResponse holds dashboard counters.
type StatsResponse struct {
	Total      int `json:"total"`
	New        int `json:"new"`
	InProgress int `json:"in_progress"`
	Resolved   int `json:"resolved"`
	Closed     int `json:"closed"`
}

// DashboardResponse is the role-gated dashboard.
type DashboardResponse struct {
	View          string                    `json:"view"`
	StatusFilter  string                    `json:"status_filter"`
	FilterOptions []string                  `json:"filter_options,omitempty"`
	Stats         StatsResponse             `json:"stats"`
	Complaints    []presenter.ComplaintCard `json:"complaints"`
}
