package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jstittsworth/contrarian-dfs/internal/metrics"
	"github.com/jstittsworth/contrarian-dfs/internal/models"
	"github.com/jstittsworth/contrarian-dfs/internal/optimizer"
	"github.com/jstittsworth/contrarian-dfs/pkg/logger"
	"github.com/jstittsworth/contrarian-dfs/pkg/utils"
	"github.com/sirupsen/logrus"
)

type LineupHandler struct {
	table            PlayerTable
	defaultSalaryCap int
	metrics          *metrics.Recorder
}

func NewLineupHandler(table PlayerTable, defaultSalaryCap int, rec *metrics.Recorder) *LineupHandler {
	return &LineupHandler{
		table:            table,
		defaultSalaryCap: defaultSalaryCap,
		metrics:          rec,
	}
}

type BuildLineupRequest struct {
	Strategy    string   `json:"strategy" binding:"required"`
	SalaryCap   int      `json:"salary_cap" binding:"gte=0"`
	MustInclude []string `json:"must_include"`
	Exclude     []string `json:"exclude"`
}

// BuildLineup runs the greedy builder over the current table. A roster that
// cannot be completed is a 422 carrying the builder's reason.
func (h *LineupHandler) BuildLineup(c *gin.Context) {
	var req BuildLineupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	strategy, err := models.ParseStrategy(req.Strategy)
	if err != nil {
		utils.SendValidationError(c, "Invalid strategy", err.Error())
		return
	}

	salaryCap := req.SalaryCap
	if salaryCap == 0 {
		salaryCap = h.defaultSalaryCap
	}

	snap, err := h.table.Snapshot(c.Request.Context())
	if err != nil {
		c.Error(err)
		utils.SendInternalError(c, "Failed to load player table")
		return
	}

	log := logger.WithBuildContext(uuid.NewString(), string(strategy), salaryCap).
		WithField("request_id", c.GetString("request_id"))

	start := time.Now()
	lineup, err := optimizer.BuildLineup(snap.Players, optimizer.BuildRequest{
		Strategy:    strategy,
		SalaryCap:   salaryCap,
		MustInclude: req.MustInclude,
		Exclude:     req.Exclude,
	})
	elapsed := time.Since(start)

	var nvl *optimizer.NoValidLineupError
	switch {
	case errors.As(err, &nvl):
		h.metrics.RecordBuild(string(strategy), metrics.OutcomeNoLineup, elapsed)
		log.WithFields(logrus.Fields{
			"kind":     nvl.Kind,
			"position": nvl.Position,
		}).Info(nvl.Reason)
		utils.SendNoValidLineup(c, nvl.Reason)
		return
	case errors.Is(err, optimizer.ErrInvalidRequest):
		h.metrics.RecordBuild(string(strategy), metrics.OutcomeBadRequest, elapsed)
		utils.SendValidationError(c, "Invalid build request", err.Error())
		return
	case err != nil:
		c.Error(err)
		utils.SendInternalError(c, "Lineup build failed")
		return
	}

	h.metrics.RecordBuild(string(strategy), metrics.OutcomeSuccess, elapsed)
	log.WithFields(logrus.Fields{
		"total_salary":     lineup.TotalSalary,
		"projected_points": lineup.ProjectedPoints,
		"duration":         elapsed.String(),
	}).Info("Lineup built")

	utils.SendSuccessWithMeta(c, lineup, &utils.Meta{DataVersion: snap.Version})
}
