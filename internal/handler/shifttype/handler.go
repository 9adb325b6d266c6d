package shifttype

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praxisops/dienstplan-api/internal/handler"
	"github.com/praxisops/dienstplan-api/internal/model"
	"github.com/praxisops/dienstplan-api/internal/service/shifttype"
)

type Handler struct {
	service *shifttype.Service
}

func NewHandler(service *shifttype.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	types := r.Group("/shift-types")
	{
		types.GET("", h.ListShiftTypes)
		types.POST("", h.CreateShiftType)
		types.GET("/:id", h.GetShiftType)
		types.PUT("/:id", h.UpdateShiftType)
		types.DELETE("/:id", h.DeleteShiftType)
	}
}

func (h *Handler) ListShiftTypes(c *gin.Context) {
	practiceID, ok := handler.PracticeID(c)
	if !ok {
		return
	}

	activeOnly := c.Query("active_only") == "true"
	types, err := h.service.List(c.Request.Context(), practiceID, activeOnly)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(types))
}

func (h *Handler) GetShiftType(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	st, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(st))
}

func (h *Handler) CreateShiftType(c *gin.Context) {
	practiceID, ok := handler.PracticeID(c)
	if !ok {
		return
	}

	var req model.CreateShiftTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}

	st, err := h.service.Create(c.Request.Context(), practiceID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(st))
}

func (h *Handler) UpdateShiftType(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateShiftTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}

	st, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(st))
}

func (h *Handler) DeleteShiftType(c *gin.Context) {
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
