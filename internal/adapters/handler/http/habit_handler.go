package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-quest/internal/core/services"
)

type HabitHandler struct {
	svc *services.GameService
}

func NewHabitHandler(svc *services.GameService) *HabitHandler {
	return &HabitHandler{
		svc: svc,
	}
}

type logHabitRequest struct {
	Activity string  `json:"activity"`
	Minutes  int     `json:"minutes"`
	Hours    float64 `json:"hours"`
	Weight   float64 `json:"weight"`
	Mood     int     `json:"mood"`
	Notes    string  `json:"notes"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/habits/:kind", h.Log)
}

// Log godoc
// @Summary      Log a habit
// @Description  Kinds: meal, activity, sleep, mood, meditation, weight.
// @Tags         habits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path      string           true   "Habit kind"
// @Param        body  body      logHabitRequest  false  "Details"
// @Success      201   {object}  services.LogHabitResult
// @Failure      400   {object}  errorResponse
// @Router       /habits/{kind} [post]
func (h *HabitHandler) Log(c *gin.Context) {
	id, ok := playerID(c)
	if !ok {
		return
	}

	var req logHabitRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	input := services.LogHabitInput{
		Kind:     c.Param("kind"),
		Activity: req.Activity,
		Minutes:  req.Minutes,
		Hours:    req.Hours,
		Weight:   req.Weight,
		Mood:     req.Mood,
		Notes:    req.Notes,
	}

	res, err := h.svc.LogHabit(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}
