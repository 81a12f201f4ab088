package httpapi

import (
	"net/http"

	"github.com/riskibarqy/tournament-engine/internal/usecase"
)

func (h *Handler) RunRecalculateStandingsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecalculateStandingsJob")
	defer span.End()

	var req recalculateJobRequest
	if _, err := decodeOptionalJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	workers := req.MaxWorkers
	if workers == 0 {
		workers = h.recalcWorkers
	}

	summary, err := h.standingService.RecalculateAll(ctx, usecase.RecalculationInput{
		TournamentIDs: req.TournamentIDs,
		MaxWorkers:    workers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "run recalculate standings job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "recalculate standings job finished",
		"tournaments", summary.TournamentCount,
		"succeeded", summary.SuccessCount,
		"failed", summary.FailedCount,
		"skipped", summary.SkippedCount,
		"workers", summary.WorkerCount,
	)
	writeSuccess(ctx, w, http.StatusOK, summary)
}
