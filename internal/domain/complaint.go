package domain

import "time"

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	ComplaintStatusNew        ComplaintStatus = "new"
	ComplaintStatusInProgress ComplaintStatus = "in_progress"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
	ComplaintStatusClosed     ComplaintStatus = "closed"
)

// ComplaintStatuses lists every status in display order.
var ComplaintStatuses = []ComplaintStatus{
	ComplaintStatusNew,
	ComplaintStatusInProgress,
	ComplaintStatusResolved,
	ComplaintStatusClosed,
}

// Valid reports whether s is a known status.
func (s ComplaintStatus) Valid() bool {
	for _, candidate := range ComplaintStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ComplaintPriority enumerates urgency levels.
type ComplaintPriority string

const (
	ComplaintPriorityLow    ComplaintPriority = "low"
	ComplaintPriorityMedium ComplaintPriority = "medium"
	ComplaintPriorityHigh   ComplaintPriority = "high"
)

// Valid reports whether p is a known priority.
func (p ComplaintPriority) Valid() bool {
	switch p {
	case ComplaintPriorityLow, ComplaintPriorityMedium, ComplaintPriorityHigh:
		return true
	}
	return false
}

// ComplaintCategory groups complaints by area.
type ComplaintCategory string

const (
	CategoryHostel     ComplaintCategory = "hostel"
	CategoryAcademic   ComplaintCategory = "academic"
	CategoryTransport  ComplaintCategory = "transport"
	CategoryFees       ComplaintCategory = "fees"
	CategoryLibrary    ComplaintCategory = "library"
	CategoryFacilities ComplaintCategory = "facilities"
	CategoryOther      ComplaintCategory = "other"
)

// ComplaintCategories lists every category.
var ComplaintCategories = []ComplaintCategory{
	CategoryHostel,
	CategoryAcademic,
	CategoryTransport,
	CategoryFees,
	CategoryLibrary,
	CategoryFacilities,
	CategoryOther,
}

// Valid reports whether c is a known category.
func (c ComplaintCategory) Valid() bool {
	for _, candidate := range ComplaintCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// Complaint is a student-submitted issue record.
type Complaint struct {
	ID          string
	StudentID   string
	Title       string
	Description string
	Category    ComplaintCategory
	Priority    ComplaintPriority
	Status      ComplaintStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
