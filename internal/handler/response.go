package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/praxisops/dienstplan-api/internal/model"
	apperrors "github.com/praxisops/dienstplan-api/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// Error writes the error with the status code its taxonomy maps to. Unknown
// errors become opaque 500s so internals never leak to clients.
func Error(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.StatusCode(), NewErrorResponse(appErr.Message))
		return
	}
	c.JSON(http.StatusInternalServerError, NewErrorResponse("internal server error"))
}

// BindingError writes a 400 for a request body that failed binding,
// flattening field-level validation errors into one readable line.
func BindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, NewErrorResponse(err.Error()))
		return
	}

	parts := make([]string, 0, len(verrs))
	for _, e := range verrs {
		switch e.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", e.Field()))
		case "uuid":
			parts = append(parts, fmt.Sprintf("%s must be a valid uuid", e.Field()))
		case "datetime":
			parts = append(parts, fmt.Sprintf("%s has an invalid format", e.Field()))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}
	c.JSON(http.StatusBadRequest, NewErrorResponse(strings.Join(parts, "; ")))
}

// PracticeID parses the :practiceID path parameter. On failure it has
// already written the response; callers just return.
func PracticeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("practiceID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("invalid practice ID"))
		return uuid.Nil, false
	}
	return id, true
}

// Today returns the current wall-clock date in the planner's string form.
func Today() string {
	return time.Now().Format(model.DateLayout)
}

// PathID parses a named uuid path parameter with the same contract as
// PracticeID.
func PathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}
