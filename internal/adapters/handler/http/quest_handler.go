package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
	"github.com/comitanigiacomo/kanso-quest/internal/core/services"
)

type QuestHandler struct {
	svc *services.GameService
}

func NewQuestHandler(svc *services.GameService) *QuestHandler {
	return &QuestHandler{svc: svc}
}

type questsResponse struct {
	Date      string                  `json:"date"`
	Quests    []*domain.Quest         `json:"quests"`
	Challenge *domain.WeeklyChallenge `json:"challenge,omitempty"`
}

func (h *QuestHandler) RegisterRoutes(router *gin.RouterGroup) {
	quests := router.Group("/quests")
	{
		quests.GET("", h.List)
		quests.GET("/stats", h.Stats)
		quests.POST("/:id/complete", h.Complete)
	}
}

// List godoc
// @Summary      Today's quests and the weekly challenge
// @Tags         quests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  questsResponse
// @Router       /quests [get]
func (h *QuestHandler) List(c *gin.Context) {
	id, ok := playerID(c)
	if !ok {
		return
	}

	state, err := h.svc.State(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, questsResponse{
		Date:      state.Date,
		Quests:    state.Quests,
		Challenge: state.Challenge,
	})
}

// Complete godoc
// @Summary      Complete one of today's quests
// @Tags         quests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Quest ID"
// @Success      200  {object}  services.CompleteQuestResult
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse  "Quest already completed"
// @Failure      503  {object}  errorResponse  "Failed to save progress"
// @Router       /quests/{id}/complete [post]
func (h *QuestHandler) Complete(c *gin.Context) {
	id, ok := playerID(c)
	if !ok {
		return
	}

	res, err := h.svc.CompleteQuest(c.Request.Context(), id, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Stats godoc
// @Summary      Completion statistics over the quest history
// @Tags         quests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.QuestStats
// @Router       /quests/stats [get]
func (h *QuestHandler) Stats(c *gin.Context) {
	id, ok := playerID(c)
	if !ok {
		return
	}

	stats, err := h.svc.QuestStats(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
