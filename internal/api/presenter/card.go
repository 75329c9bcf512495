package presenter

import (
	"time"

	"github.com/Nikhilkrishnapk/complaint-hub/internal/domain"
)

// ComplaintCard is one entry of a dashboard list.
type ComplaintCard struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Badge     `json:"category"`
	Status      Badge     `json:"status"`
	Priority    Badge     `json:"priority"`
	StudentID   string    `json:"student_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Link        string    `json:"link"`
}

// Card renders a complaint. The owning student is shown only on admin views.
func Card(c domain.Complaint, showStudent bool) ComplaintCard {
	card := ComplaintCard{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Category:    CategoryBadge(c.Category),
		Status:      StatusBadge(c.Status),
		Priority:    PriorityBadge(c.Priority),
		CreatedAt:   c.CreatedAt,
		Link:        "/complaints/" + c.ID,
	}
	if showStudent {
		card.StudentID = c.StudentID
	}
	return card
}

// Cards renders a list, preserving order.
func Cards(complaints []domain.Complaint, showStudent bool) []ComplaintCard {
	cards := make([]ComplaintCard, 0, len(complaints))
	for _, c := range complaints {
		cards = append(cards, Card(c, showStudent))
	}
	return cards
}
