package service

import (
	"context"
	"strings"

	"github.com/Nikhilkrishnapk/complaint-hub/internal/auth"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/domain"
	apperrors "github.com/Nikhilkrishnapk/complaint-hub/pkg/util"
)

// StatusFilterAll disables status narrowing.
const StatusFilterAll = "all"

// DashboardView selects which dashboard a caller sees.
type DashboardView string

const (
	DashboardStudent DashboardView = "student"
	DashboardAdmin   DashboardView = "admin"
)

// ComplaintStats are counts over a fetched complaint collection.
type ComplaintStats struct {
	Total      int
	New        int
	InProgress int
	Resolved   int
	Closed     int
}

// Dashboard is the role-gated landing view after sign-in.
type Dashboard struct {
	View         DashboardView
	StatusFilter string
	Complaints   []domain.Complaint
	Stats        ComplaintStats
}

// DashboardService builds dashboards on top of complaint listing.
type DashboardService struct {
	complaints *ComplaintService
}

// NewDashboardService constructs the service.
func NewDashboardService(complaints *ComplaintService) *DashboardService {
	return &DashboardService{complaints: complaints}
}

// Build fetches the caller's baseline collection once, counts it, and then
// narrows the listed complaints by the status filter. Counts always reflect
// the unfiltered baseline. Students ignore the filter.
func (s *DashboardService) Build(ctx context.Context, principal *auth.Principal, rawFilter string) (*Dashboard, error) {
	if principal == nil || principal.Profile == nil {
		return nil, apperrors.NewUnauthorized("missing session")
	}

	view := DashboardStudent
	filter := (*domain.ComplaintStatus)(nil)
	if principal.IsAdmin() {
		view = DashboardAdmin
		parsed, err := ParseStatusFilter(rawFilter)
		if err != nil {
			return nil, err
		}
		filter = parsed
	}

	baseline, err := s.complaints.ListComplaints(ctx, principal, nil)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		View:         view,
		StatusFilter: StatusFilterAll,
		Complaints:   FilterByStatus(baseline, filter),
		Stats:        ComputeStats(baseline),
	}
	if filter != nil {
		dashboard.StatusFilter = string(*filter)
	}
	return dashboard, nil
}

// ParseStatusFilter maps "", "all" to no filter and rejects unknown statuses.
func ParseStatusFilter(raw string) (*domain.ComplaintStatus, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" || raw == StatusFilterAll {
		return nil, nil
	}
	status := domain.ComplaintStatus(raw)
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid status filter", map[string]any{
			"status":  raw,
			"allowed": []string{StatusFilterAll, "new", "in_progress", "resolved", "closed"},
		})
	}
	return &status, nil
}

// FilterByStatus returns the complaints with the given status, or all when status is nil.
func FilterByStatus(complaints []domain.Complaint, status *domain.ComplaintStatus) []domain.Complaint {
	if status == nil {
		return complaints
	}
	filtered := make([]domain.Complaint, 0, len(complaints))
	for _, c := range complaints {
		if c.Status == *status {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// ComputeStats counts complaints per status.
func ComputeStats(complaints []domain.Complaint) ComplaintStats {
	stats := ComplaintStats{Total: len(complaints)}
	for _, c := range complaints {
		switch c.Status {
		case domain.ComplaintStatusNew:
			stats.New++
		case domain.ComplaintStatusInProgress:
			stats.InProgress++
		case domain.ComplaintStatusResolved:
			stats.Resolved++
		case domain.ComplaintStatusClosed:
			stats.Closed++
		}
	}
	return stats
}
