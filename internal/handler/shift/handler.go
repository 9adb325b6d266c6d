package shift

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/praxisops/dienstplan-api/internal/handler"
	"github.com/praxisops/dienstplan-api/internal/model"
	"github.com/praxisops/dienstplan-api/internal/service/shift"
)

type Handler struct {
	service *shift.Service
}

func NewHandler(service *shift.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	shifts := r.Group("/shifts")
	{
		shifts.GET("", h.ListShifts)
		shifts.POST("", h.CreateShift)
		shifts.GET("/:id", h.GetShift)
		shifts.PUT("/:id", h.UpdateShift)
		shifts.DELETE("/:id", h.DeleteShift)
	}
}

// ListShifts returns all shifts in the requested date range, optionally
// narrowed to one member.
func (h *Handler) ListShifts(c *gin.Context) {
	practiceID, ok := handler.PracticeID(c)
	if !ok {
		return
	}

	filters := &model.ShiftFilters{
		PracticeID: practiceID,
		DateStart:  c.Query("start"),
		DateEnd:    c.Query("end"),
	}
	if id := c.Query("team_member_id"); id != "" {
		memberID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid team member ID"))
			return
		}
		filters.TeamMemberID = &memberID
	}

	shifts, err := h.service.ListByRange(c.Request.Context(), filters)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(shifts))
}

func (h *Handler) GetShift(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	s, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(s))
}

func (h *Handler) CreateShift(c *gin.Context) {
	practiceID, ok := handler.PracticeID(c)
	if !ok {
		return
	}

	var req model.CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}

	s, err := h.service.Create(c.Request.Context(), practiceID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(s))
}

func (h *Handler) UpdateShift(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}

	s, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(s))
}

func (h *Handler) DeleteShift(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
