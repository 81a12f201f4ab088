package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/panics"

	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
)

const (
	recalcStatusSuccess = "success"
	recalcStatusFailed  = "failed"
	recalcStatusSkipped = "skipped"

	defaultRecalcWorkers = 4
	maxRecalcWorkers     = 32
)

type RecalculationInput struct {
	// TournamentIDs limits the run; empty means every live tournament.
	TournamentIDs []string
	MaxWorkers    int
}

type RecalculationSummary struct {
	TournamentCount int                   `json:"tournament_count"`
	SuccessCount    int                   `json:"success_count"`
	FailedCount     int                   `json:"failed_count"`
	SkippedCount    int                   `json:"skipped_count"`
	WorkerCount     int                   `json:"worker_count"`
	Tasks           []RecalculationResult `json:"tasks"`
}

type RecalculationResult struct {
	TournamentID string `json:"tournament_id"`
	Status       string `json:"status"`
	Rows         int    `json:"rows"`
	DurationMs   int64  `json:"duration_ms"`
	Message      string `json:"message,omitempty"`
}

// RecalculateAll rebuilds standings for many tournaments on a bounded worker
// pool. A failing or panicking tournament is reported and does not stop the
// others.
func (s *StandingService) RecalculateAll(ctx context.Context, input RecalculationInput) (RecalculationSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.RecalculateAll")
	defer span.End()

	targets := input.TournamentIDs
	if len(targets) == 0 {
		live, err := s.tournamentRepo.ListByStatus(ctx, tournament.StatusLive)
		if err != nil {
			return RecalculationSummary{}, fmt.Errorf("list live tournaments: %w", err)
		}
		for _, item := range live {
			targets = append(targets, item.ID)
		}
	}

	workerCount := normalizeRecalcWorkerCount(input.MaxWorkers, len(targets))
	summary := RecalculationSummary{
		TournamentCount: len(targets),
		WorkerCount:     workerCount,
		Tasks:           make([]RecalculationResult, 0, len(targets)),
	}
	if len(targets) == 0 {
		return summary, nil
	}

	results := make(chan RecalculationResult, len(targets))

	var successCount atomic.Int32
	var failedCount atomic.Int32
	var skippedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecalculationSummary{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, tournamentID := range targets {
		tournamentID := tournamentID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := RecalculationResult{TournamentID: tournamentID}

			var catcher panics.Catcher
			catcher.Try(func() {
				rows, err := s.Recalculate(ctx, tournamentID)
				row.Rows = len(rows)
				switch {
				case err == nil:
					row.Status = recalcStatusSuccess
				case isConflict(err):
					row.Status = recalcStatusSkipped
					row.Message = err.Error()
				default:
					row.Status = recalcStatusFailed
					row.Message = err.Error()
				}
			})
			if recovered := catcher.Recovered(); recovered != nil {
				row.Status = recalcStatusFailed
				row.Message = recovered.AsError().Error()
				s.logger.ErrorContext(ctx, "standings recalculation panicked",
					"tournament_id", tournamentID,
					"panic", recovered.Value,
				)
			}
			row.DurationMs = time.Since(start).Milliseconds()

			switch row.Status {
			case recalcStatusSuccess:
				successCount.Add(1)
			case recalcStatusSkipped:
				skippedCount.Add(1)
			default:
				failedCount.Add(1)
			}

			results <- row
		}); err != nil {
			workers.Done()
			return RecalculationSummary{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		summary.Tasks = append(summary.Tasks, row)
	}
	sort.SliceStable(summary.Tasks, func(i, j int) bool {
		return summary.Tasks[i].TournamentID < summary.Tasks[j].TournamentID
	})

	summary.SuccessCount = int(successCount.Load())
	summary.FailedCount = int(failedCount.Load())
	summary.SkippedCount = int(skippedCount.Load())

	s.logger.InfoContext(ctx, "standings recalculation batch finished",
		"tournaments", summary.TournamentCount,
		"success", summary.SuccessCount,
		"failed", summary.FailedCount,
		"skipped", summary.SkippedCount,
	)
	return summary, nil
}

func normalizeRecalcWorkerCount(requested, tasks int) int {
	workers := requested
	if workers <= 0 {
		workers = defaultRecalcWorkers
	}
	workers = min(workers, maxRecalcWorkers)
	if tasks > 0 {
		workers = min(workers, tasks)
	}
	return max(workers, 1)
}
