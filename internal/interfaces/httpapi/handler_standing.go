package httpapi

import (
	"net/http"

	"github.com/riskibarqy/tournament-engine/internal/usecase"
)

// CompleteMatch records a scorecard and applies it. An empty body processes
// a result that was already stored on the match.
func (h *Handler) CompleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompleteMatch")
	defer span.End()

	tournamentID := pathValue(r, "tournamentID")
	matchID := pathValue(r, "matchID")

	var req completeMatchRequest
	empty, err := decodeOptionalJSON(w, r, &req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var result usecase.ProcessResult
	if empty || req.isEmpty() {
		result, err = h.standingService.ProcessCompletedMatch(ctx, tournamentID, matchID)
	} else {
		if err := h.validateRequest(ctx, req); err != nil {
			writeError(ctx, w, err)
			return
		}
		input, convErr := req.toInput(tournamentID, matchID)
		if convErr != nil {
			writeError(ctx, w, convErr)
			return
		}
		result, err = h.standingService.RecordResult(ctx, input)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "complete match failed",
			"tournament_id", tournamentID,
			"match_id", matchID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, processResultToDTO(ctx, result))
}

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	tournamentID := pathValue(r, "tournamentID")
	group := r.URL.Query().Get("group")
	rows, err := h.standingService.ListByTournament(ctx, tournamentID, group)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "tournament_id", tournamentID, "group", group, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(ctx, rows))
}

func (h *Handler) RecalculateStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateStandings")
	defer span.End()

	tournamentID := pathValue(r, "tournamentID")
	rows, err := h.standingService.Recalculate(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "recalculate standings failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(ctx, rows))
}

func (h *Handler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerStats")
	defer span.End()

	tournamentID := pathValue(r, "tournamentID")
	playerID := pathValue(r, "playerID")
	stat, err := h.standingService.GetPlayerStats(ctx, tournamentID, playerID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerStatsToDTO(stat))
}
