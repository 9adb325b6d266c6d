package absence

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praxisops/dienstplan-api/internal/handler"
	"github.com/praxisops/dienstplan-api/internal/model"
	"github.com/praxisops/dienstplan-api/internal/service/absence"
)

type Handler struct {
	service *absence.Service
}

func NewHandler(service *absence.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	holidays := r.Group("/holiday-requests")
	{
		holidays.GET("", h.ListHolidayRequests)
		holidays.POST("", h.CreateHolidayRequest)
		holidays.POST("/:id/approve", h.ApproveHolidayRequest)
		holidays.POST("/:id/reject", h.RejectHolidayRequest)
	}

	sick := r.Group("/sick-leaves")
	{
		sick.GET("", h.ListSickLeaves)
		sick.POST("", h.CreateSickLeave)
		sick.DELETE("/:id", h.DeleteSickLeave)
	}
}

func (h *Handler) ListHolidayRequests(c *gin.Context) {
	practiceID, ok := handler.PracticeID(c)
	if !ok {
		return
	}

	requests, err := h.service.ListHolidayRequests(c.Request.Context(), practiceID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(requests))
}

func (h *Handler) CreateHolidayRequest(c *gin.Context) {
	practiceID, ok := handler.PracticeID(c)
	if !ok {
		return
	}

	var req model.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}

	r, err := h.service.CreateHolidayRequest(c.Request.Context(), practiceID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(r))
}

func (h *Handler) ApproveHolidayRequest(c *gin.Context) {
	h.reviewHolidayRequest(c, true)
}

func (h *Handler) RejectHolidayRequest(c *gin.Context) {
	h.reviewHolidayRequest(c, false)
}

func (h *Handler) reviewHolidayRequest(c *gin.Context, approve bool) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	var req model.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}

	var (
		r   *model.HolidayRequest
		err error
	)
	if approve {
		r, err = h.service.ApproveHolidayRequest(c.Request.Context(), id, &req)
	} else {
		r, err = h.service.RejectHolidayRequest(c.Request.Context(), id, &req)
	}
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(r))
}

func (h *Handler) ListSickLeaves(c *gin.Context) {
	practiceID, ok := handler.PracticeID(c)
	if !ok {
		return
	}

	leaves, err := h.service.ListSickLeaves(c.Request.Context(), practiceID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(leaves))
}

func (h *Handler) CreateSickLeave(c *gin.Context) {
	practiceID, ok := handler.PracticeID(c)
	if !ok {
		return
	}

	var req model.CreateSickLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}

	l, err := h.service.CreateSickLeave(c.Request.Context(), practiceID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(l))
}

func (h *Handler) DeleteSickLeave(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteSickLeave(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
