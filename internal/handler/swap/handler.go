package swap

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praxisops/dienstplan-api/internal/handler"
	"github.com/praxisops/dienstplan-api/internal/model"
	"github.com/praxisops/dienstplan-api/internal/service/swap"
)

type Handler struct {
	service *swap.Service
}

func NewHandler(service *swap.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	swaps := r.Group("/swap-requests")
	{
		swaps.GET("", h.ListSwapRequests)
		swaps.POST("", h.CreateSwapRequest)
		swaps.GET("/:id", h.GetSwapRequest)
		swaps.POST("/:id/approve", h.ApproveSwapRequest)
		swaps.POST("/:id/reject", h.RejectSwapRequest)
	}
	r.GET("/shifts/:id/eligible-targets", h.ListEligibleTargets)
}

func (h *Handler) ListSwapRequests(c *gin.Context) {
	practiceID, ok := handler.PracticeID(c)
	if !ok {
		return
	}

	var status *model.SwapStatus
	if raw := c.Query("status"); raw != "" {
		s := model.SwapStatus(raw)
		switch s {
		case model.SwapStatusPending, model.SwapStatusApproved, model.SwapStatusRejected:
			status = &s
		default:
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid status filter"))
			return
		}
	}

	swaps, err := h.service.List(c.Request.Context(), practiceID, status)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(swaps))
}

func (h *Handler) GetSwapRequest(c *gin.Context) {
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

func (h *Handler) CreateSwapRequest(c *gin.Context) {
	practiceID, ok := handler.PracticeID(c)
	if !ok {
		return
	}

	var req model.CreateSwapRequest
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

func (h *Handler) ApproveSwapRequest(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	var req model.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}

	s, err := h.service.Approve(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(s))
}

func (h *Handler) RejectSwapRequest(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	var req model.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindingError(c, err)
		return
	}

	s, err := h.service.Reject(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(s))
}

// ListEligibleTargets lists swappable counterpart shifts for one shift,
// grouped per member. The optional date range defaults to the shift's own
// date.
func (h *Handler) ListEligibleTargets(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	groups, err := h.service.EligibleTargets(c.Request.Context(), id, c.Query("start"), c.Query("end"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(groups))
}
