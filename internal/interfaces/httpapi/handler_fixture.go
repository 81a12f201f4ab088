package httpapi

import (
	"net/http"
)

func (h *Handler) GenerateFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateFixtures")
	defer span.End()

	tournamentID := pathValue(r, "tournamentID")
	var req generateFixturesRequest
	if _, err := decodeOptionalJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input, err := req.toInput(ctx, tournamentID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.fixtureService.GenerateFixtures(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "generate fixtures failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	warnings := result.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	degraded := result.Degraded
	if degraded == nil {
		degraded = []int{}
	}

	writeSuccess(ctx, w, http.StatusCreated, generateFixturesDTO{
		Fixtures: fixturesToDTO(ctx, result.Fixtures),
		Warnings: warnings,
		Degraded: degraded,
		Skipped:  result.Skipped,
	})
}

func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtures")
	defer span.End()

	tournamentID := pathValue(r, "tournamentID")
	items, err := h.fixtureService.ListByTournament(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list fixtures failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixturesToDTO(ctx, items))
}
