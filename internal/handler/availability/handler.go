package availability

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/praxisops/dienstplan-api/internal/handler"
	"github.com/praxisops/dienstplan-api/internal/model"
	"github.com/praxisops/dienstplan-api/internal/service/availability"
)

type Handler struct {
	service *availability.Service
}

func NewHandler(service *availability.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	rules := r.Group("/availability")
	{
		rules.GET("", h.ListAvailability)
		rules.POST("", h.CreateAvailability)
		rules.PUT("/:id", h.UpdateAvailability)
		rules.DELETE("/:id", h.DeleteAvailability)
	}
}

// ListAvailability returns all rules of the practice, or one member's rules
// when team_member_id is given.
func (h *Handler) ListAvailability(c *gin.Context) {
	practiceID, ok := handler.PracticeID(c)
	if !ok {
		return
	}

	if id := c.Query("team_member_id"); id != "" {
		memberID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid team member ID"))
			return
		}
		rules, err := h.service.ListByMember(c.Request.Context(), memberID)
		if err != nil {
			handler.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, handler.NewSuccessResponse(rules))
		return
	}

	rules, err := h.service.List(c.Request.Context(), practiceID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(rules))
}

func (h *Handler) CreateAvailability(c *gin.Context) {
	practiceID, ok := handler.PracticeID(c)
	if !ok {
		return
	}

	var req model.CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}

	rule, err := h.service.Create(c.Request.Context(), practiceID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(rule))
}

func (h *Handler) UpdateAvailability(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}

	rule, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(rule))
}

func (h *Handler) DeleteAvailability(c *gin.Context) {
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
