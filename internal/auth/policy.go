package auth

import (
	"github.com/Nikhilkrishnapk/complaint-hub/internal/config"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/domain"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/repository"
	apperrors "github.com/Nikhilkrishnapk/complaint-hub/pkg/util"
)

// strictTransitions is the table enforced under the strict status policy.
var strictTransitions = map[domain.ComplaintStatus][]domain.ComplaintStatus{
	domain.ComplaintStatusNew:        {domain.ComplaintStatusInProgress, domain.ComplaintStatusResolved, domain.ComplaintStatusClosed},
	domain.ComplaintStatusInProgress: {domain.ComplaintStatusNew, domain.ComplaintStatusResolved, domain.ComplaintStatusClosed},
	domain.ComplaintStatusResolved:   {domain.ComplaintStatusInProgress, domain.ComplaintStatusClosed},
	domain.ComplaintStatusClosed:     {},
}

// Policy is the single place that decides who may see and change complaints.
// Handlers and services ask it; none of them check roles on their own.
type Policy struct {
	strict bool
}

// NewPolicy builds a policy for the configured status transition mode.
func NewPolicy(statusPolicy string) *Policy {
	return &Policy{strict: statusPolicy == config.StatusPolicyStrict}
}

// ListScope returns the repository filter a caller is allowed to see.
// Students are always pinned to their own complaints; status only narrows.
func (p *Policy) ListScope(principal *Principal, status *domain.ComplaintStatus) (repository.ComplaintFilter, error) {
	if principal == nil || principal.Profile == nil {
		return repository.ComplaintFilter{}, apperrors.NewUnauthorized("missing session")
	}
	filter := repository.ComplaintFilter{Status: status}
	if !principal.IsAdmin() {
		ownerID := principal.Profile.ID
		filter.StudentID = &ownerID
	}
	return filter, nil
}

// CanView reports whether the caller may read the complaint and its thread.
func (p *Policy) CanView(principal *Principal, complaint *domain.Complaint) bool {
	if principal == nil || principal.Profile == nil || complaint == nil {
		return false
	}
	return principal.IsAdmin() || complaint.StudentID == principal.Profile.ID
}

// CanComment reports whether the caller may add to the complaint's thread.
func (p *Policy) CanComment(principal *Principal, complaint *domain.Complaint) bool {
	return p.CanView(principal, complaint)
}

// CanCreate reports whether the caller may file complaints.
func (p *Policy) CanCreate(principal *Principal) bool {
	return principal != nil && principal.Profile != nil && principal.Profile.Role == domain.RoleStudent
}

// CanChangeStatus reports whether the caller may move complaints between statuses.
func (p *Policy) CanChangeStatus(principal *Principal) bool {
	return principal.IsAdmin()
}

// CheckTransition validates a status change. Re-setting the current status is always allowed.
func (p *Policy) CheckTransition(from, to domain.ComplaintStatus) error {
	if !to.Valid() {
		return apperrors.NewValidationError("invalid status", map[string]any{"status": string(to)})
	}
	if from == to || !p.strict {
		return nil
	}
	for _, candidate := range strictTransitions[from] {
		if candidate == to {
			return nil
		}
	}
	return apperrors.NewInvalidTransition(string(from), string(to))
}

// StatusOptions lists the statuses an admin may pick for a complaint, in display order.
// Non-admins get none.
func (p *Policy) StatusOptions(principal *Principal, current domain.ComplaintStatus) []domain.ComplaintStatus {
	if !p.CanChangeStatus(principal) {
		return nil
	}
	options := make([]domain.ComplaintStatus, 0, len(domain.ComplaintStatuses))
	for _, status := range domain.ComplaintStatuses {
		if p.CheckTransition(current, status) == nil {
			options = append(options, status)
		}
	}
	return options
}
