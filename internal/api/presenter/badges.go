package presenter

import (
	"strings"

	"github.com/Nikhilkrishnapk/complaint-hub/internal/domain"
)

// Badge is the display form of an enumerated value.
type Badge struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon,omitempty"`
}

var statusColors = map[domain.ComplaintStatus]string{
	domain.ComplaintStatusNew:        "status-new",
	domain.ComplaintStatusInProgress: "status-progress",
	domain.ComplaintStatusResolved:   "status-resolved",
	domain.ComplaintStatusClosed:     "status-closed",
}

type priorityStyle struct {
	color string
	icon  string
}

var priorityStyles = map[domain.ComplaintPriority]priorityStyle{
	domain.ComplaintPriorityHigh:   {color: "destructive", icon: "alert-circle"},
	domain.ComplaintPriorityMedium: {color: "warning", icon: "arrow-up"},
	domain.ComplaintPriorityLow:    {color: "muted", icon: "minus"},
}

// StatusBadge maps a status to its badge. Unknown values render muted.
func StatusBadge(status domain.ComplaintStatus) Badge {
	color, ok := statusColors[status]
	if !ok {
		color = "muted"
	}
	return Badge{Value: string(status), Label: titleCase(string(status)), Color: color}
}

// PriorityBadge maps a priority to its badge.
func PriorityBadge(priority domain.ComplaintPriority) Badge {
	style, ok := priorityStyles[priority]
	if !ok {
		style = priorityStyle{color: "muted"}
	}
	return Badge{Value: string(priority), Label: titleCase(string(priority)), Color: style.color, Icon: style.icon}
}

// CategoryBadge renders a category as an outline label.
func CategoryBadge(category domain.ComplaintCategory) Badge {
	return Badge{Value: string(category), Label: titleCase(string(category)), Color: "outline"}
}

// titleCase turns "in_progress" into "In Progress".
func titleCase(value string) string {
	words := strings.Fields(strings.ReplaceAll(value, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
