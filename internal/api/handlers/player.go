package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/contrarian-dfs/internal/insights"
	"github.com/jstittsworth/contrarian-dfs/internal/models"
	"github.com/jstittsworth/contrarian-dfs/pkg/utils"
)

type PlayerHandler struct {
	table PlayerTable
	now   func() time.Time
}

func NewPlayerHandler(table PlayerTable) *PlayerHandler {
	return &PlayerHandler{
		table: table,
		now:   time.Now,
	}
}

type playerQuery struct {
	Position     string  `form:"position"`
	PlayType     string  `form:"play_type"`
	MaxOwnership float64 `form:"max_ownership" binding:"gte=0,lte=100"`
	Limit        int     `form:"limit" binding:"gte=0"`
}

// GetPlayers returns the classified table, optionally filtered.
func (h *PlayerHandler) GetPlayers(c *gin.Context) {
	var q playerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.SendValidationError(c, "Invalid query parameters", err.Error())
		return
	}

	filter := insights.Filter{MaxOwnership: q.MaxOwnership, Limit: q.Limit}
	if q.Position != "" {
		pos := models.ParsePosition(q.Position)
		if pos == models.PositionFLEX {
			utils.SendValidationError(c, "Invalid position", q.Position)
			return
		}
		filter.Position = pos
	}
	if q.PlayType != "" {
		pt := models.PlayType(q.PlayType)
		if !pt.Valid() {
			utils.SendValidationError(c, "Invalid play type", q.PlayType)
			return
		}
		filter.PlayType = pt
	}

	snap, err := h.table.Snapshot(c.Request.Context())
	if err != nil {
		c.Error(err)
		utils.SendInternalError(c, "Failed to load player table")
		return
	}

	players := insights.FilterPlayers(snap.Players, filter)
	utils.SendSuccessWithMeta(c, players, &utils.Meta{Total: len(players), DataVersion: snap.Version})
}

// GetPlayer returns one classified player by name.
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	snap, err := h.table.Snapshot(c.Request.Context())
	if err != nil {
		c.Error(err)
		utils.SendInternalError(c, "Failed to load player table")
		return
	}

	player, err := insights.FindPlayer(snap.Players, c.Param("name"))
	if errors.Is(err, utils.ErrNotFound) {
		utils.SendNotFound(c, "Player not found")
		return
	}

	utils.SendSuccessWithMeta(c, player, &utils.Meta{DataVersion: snap.Version})
}

func (h *PlayerHandler) GetSummary(c *gin.Context) {
	snap, err := h.table.Snapshot(c.Request.Context())
	if err != nil {
		c.Error(err)
		utils.SendInternalError(c, "Failed to load player table")
		return
	}

	utils.SendSuccessWithMeta(c, insights.Summarize(snap.Players), &utils.Meta{DataVersion: snap.Version})
}

func (h *PlayerHandler) GetFreshness(c *gin.Context) {
	snap, err := h.table.Snapshot(c.Request.Context())
	if err != nil {
		c.Error(err)
		utils.SendInternalError(c, "Failed to load player table")
		return
	}

	utils.SendSuccessWithMeta(c, insights.CheckFreshness(snap.LatestUpdate, h.now()), &utils.Meta{DataVersion: snap.Version})
}
