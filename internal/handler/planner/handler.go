package planner

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praxisops/dienstplan-api/internal/handler"
	"github.com/praxisops/dienstplan-api/internal/service/planner"
	"github.com/praxisops/dienstplan-api/internal/service/stats"
)

type Handler struct {
	service  *planner.Service
	statsSvc *stats.Service
}

func NewHandler(service *planner.Service, statsSvc *stats.Service) *Handler {
	return &Handler{service: service, statsSvc: statsSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/schedule", h.GetWeekSchedule)
	r.GET("/stats", h.GetStats)
}

// GetWeekSchedule returns the full planner payload for the week containing
// the week query date, defaulting to today.
func (h *Handler) GetWeekSchedule(c *gin.Context) {
	practiceID, ok := handler.PracticeID(c)
	if !ok {
		return
	}

	week := c.Query("week")
	if week == "" {
		week = handler.Today()
	}

	schedule, err := h.service.GetWeekSchedule(c.Request.Context(), practiceID, week)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(schedule))
}

func (h *Handler) GetStats(c *gin.Context) {
	practiceID, ok := handler.PracticeID(c)
	if !ok {
		return
	}

	start, end := c.Query("start"), c.Query("end")
	if start == "" || end == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("start and end are required"))
		return
	}

	result, err := h.statsSvc.GetStats(c.Request.Context(), practiceID, start, end)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}
