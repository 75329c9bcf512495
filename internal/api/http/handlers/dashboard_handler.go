package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Nikhilkrishnapk/complaint-hub/internal/api/dto"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/api/presenter"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/auth"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/domain"
	"github.com/Nikhilkrishnapk/complaint-hub/internal/service"
	apperrors "github.com/Nikhilkrishnapk/complaint-hub/pkg/util"
)

// DashboardHandler serves the role-gated dashboard.
type DashboardHandler struct {
	dashboards *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboards *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

// Get handles GET /dashboard?status=.
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing session")
	}
	dash, err := h.dashboards.Build(c.UserContext(), principal, c.Query("status"))
	if err != nil {
		return err
	}

	resp := dto.DashboardResponse{
		View:         string(dash.View),
		StatusFilter: dash.StatusFilter,
		Stats: dto.StatsResponse{
			Total:      dash.Stats.Total,
			New:        dash.Stats.New,
			InProgress: dash.Stats.InProgress,
			Resolved:   dash.Stats.Resolved,
			Closed:     dash.Stats.Closed,
		},
		Complaints: presenter.Cards(dash.Complaints, dash.View == service.DashboardAdmin),
	}
	if dash.View == service.DashboardAdmin {
		resp.FilterOptions = []string{service.StatusFilterAll}
		for _, s := range domain.ComplaintStatuses {
			resp.FilterOptions = append(resp.FilterOptions, string(s))
		}
	}
	return c.JSON(fiber.Map{"data": resp})
}
