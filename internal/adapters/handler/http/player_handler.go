package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-quest/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-quest/internal/core/services"
)

type PlayerHandler struct {
	svc *services.GameService
}

func NewPlayerHandler(svc *services.GameService) *PlayerHandler {
	return &PlayerHandler{svc: svc}
}

type renameRequest struct {
	Name string `json:"name" binding:"required"`
}

type settingRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

func (h *PlayerHandler) RegisterRoutes(router *gin.RouterGroup) {
	player := router.Group("/player")
	{
		player.GET("", h.Get)
		player.DELETE("", h.Reset)
		player.POST("/refresh", h.Refresh)
		player.PUT("/name", h.Rename)
		player.PUT("/settings", h.UpdateSetting)
	}
}

// playerID reads the authenticated player or aborts with 500, since the
// auth middleware always sets it on protected routes.
func playerID(c *gin.Context) (string, bool) {
	id, ok := middleware.GetPlayerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "player context missing"})
		return "", false
	}
	return id, true
}

// Get godoc
// @Summary      Current profile
// @Description  Runs the day and week boundary check, then returns the player.
// @Tags         player
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  services.PlayerState
// @Failure      409  {object}  errorResponse  "Saved progress is corrupted"
// @Router       /player [get]
func (h *PlayerHandler) Get(c *gin.Context) {
	id, ok := playerID(c)
	if !ok {
		return
	}

	state, err := h.svc.Open(c.Request.Context(), id, "")
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// Refresh godoc
// @Summary      Run the daily and weekly boundary check
// @Tags         player
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  services.RefreshResult
// @Router       /player/refresh [post]
func (h *PlayerHandler) Refresh(c *gin.Context) {
	id, ok := playerID(c)
	if !ok {
		return
	}

	res, err := h.svc.Refresh(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Rename godoc
// @Summary      Rename the player
// @Tags         player
// @Accept       json
// @Security     BearerAuth
// @Produce      json
// @Param        body  body      renameRequest  true  "New name"
// @Success      200   {object}  services.Outcome
// @Failure      400   {object}  errorResponse
// @Router       /player/name [put]
func (h *PlayerHandler) Rename(c *gin.Context) {
	id, ok := playerID(c)
	if !ok {
		return
	}

	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	out, err := h.svc.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// UpdateSetting godoc
// @Summary      Change one setting
// @Description  Keys are addressed as category.setting, e.g. display.theme.
// @Tags         player
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      settingRequest  true  "Setting"
// @Success      200   {object}  services.SettingsResult
// @Failure      400   {object}  errorResponse
// @Router       /player/settings [put]
func (h *PlayerHandler) UpdateSetting(c *gin.Context) {
	id, ok := playerID(c)
	if !ok {
		return
	}

	var req settingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	res, err := h.svc.UpdateSetting(c.Request.Context(), id, req.Key, req.Value)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Reset godoc
// @Summary      Delete all progress and start over
// @Tags         player
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  services.PlayerState
// @Failure      503  {object}  errorResponse
// @Router       /player [delete]
func (h *PlayerHandler) Reset(c *gin.Context) {
	id, ok := playerID(c)
	if !ok {
		return
	}

	state, err := h.svc.Reset(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}
