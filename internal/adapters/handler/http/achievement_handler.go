package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-quest/internal/core/services"
)

type AchievementHandler struct {
	svc *services.GameService
}

func NewAchievementHandler(svc *services.GameService) *AchievementHandler {
	return &AchievementHandler{svc: svc}
}

func (h *AchievementHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/achievements", h.List)
}

// List godoc
// @Summary      Achievement catalogue with unlock state
// @Tags         achievements
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  services.AchievementsView
// @Router       /achievements [get]
func (h *AchievementHandler) List(c *gin.Context) {
	id, ok := playerID(c)
	if !ok {
		return
	}

	view, err := h.svc.Achievements(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
