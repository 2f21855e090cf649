package response

import (
	"errors"
	"net/http"

	"github.com/cinemax-hub/service-checkout/internal/common/domain"
	"github.com/gin-gonic/gin"
)

// Envelope is the JSON body of every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

// Success writes a 200 envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// PageMeta describes one page of a listing.
type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// Paginated writes a 200 envelope with items and page metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	pages := int64(0)
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	c.JSON(http.StatusOK, Envelope{Success: true, Data: gin.H{
		"items": items,
		"meta":  PageMeta{Page: page, Limit: limit, Total: total, TotalPages: pages},
	}})
}

// BadRequest writes a 400 envelope.
func BadRequest(c *gin.Context, msg string) {
	abort(c, http.StatusBadRequest, "bad_request", msg, false)
}

// Unauthorized writes a 401 envelope.
func Unauthorized(c *gin.Context, msg string) {
	abort(c, http.StatusUnauthorized, "unauthorized", msg, false)
}

// Forbidden writes a 403 envelope.
func Forbidden(c *gin.Context, msg string) {
	abort(c, http.StatusForbidden, "forbidden", msg, false)
}

// Error maps err onto an HTTP status using the domain error kinds.
func Error(c *gin.Context, err error) {
	status, code := classify(err)
	retryable := false
	if de, ok := domain.AsDomainError(err); ok {
		retryable = de.Retryable()
	}
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	abort(c, status, code, msg, retryable)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, domain.ErrPrecondition):
		return http.StatusPreconditionFailed, "precondition_failed"
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusConflict, "invalid_state"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrTransientStore):
		return http.StatusServiceUnavailable, "store_unavailable"
	case errors.Is(err, domain.ErrCommit):
		return http.StatusBadGateway, "commit_failed"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func abort(c *gin.Context, status int, code, msg string, retryable bool) {
	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Error:   &ErrorBody{Code: code, Message: msg, Retryable: retryable},
	})
}
