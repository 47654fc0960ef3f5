package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
)

type errorResponse struct {
	Error  string `json:"error"`
	Kind   string `json:"kind,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// statusFor maps a game error onto its HTTP status.
func statusFor(err error) int {
	kind, ok := domain.KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch kind {
	case domain.KindValidation:
		switch {
		case errors.Is(err, domain.ErrQuestNotFound):
			return http.StatusNotFound
		case errors.Is(err, domain.ErrCorruptSnapshot):
			return http.StatusConflict
		}
		return http.StatusBadRequest
	case domain.KindAlreadyCompleted:
		return http.StatusConflict
	case domain.KindCapacityExceeded:
		return http.StatusTooManyRequests
	case domain.KindPersistence:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, errorResponse{Error: "internal server error"})
		return
	}

	kind, _ := domain.KindOf(err)
	c.JSON(status, errorResponse{
		Error:  err.Error(),
		Kind:   string(kind),
		Reason: domain.ReasonOf(err),
	})
}
