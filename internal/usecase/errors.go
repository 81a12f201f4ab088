package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/tournament-engine/internal/domain/bracket"
	"github.com/riskibarqy/tournament-engine/internal/domain/cricket"
	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/match"
	"github.com/riskibarqy/tournament-engine/internal/domain/progression"
	"github.com/riskibarqy/tournament-engine/internal/domain/schedule"
	"github.com/riskibarqy/tournament-engine/internal/domain/standing"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("conflicting state")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

var invalidInputErrors = []error{
	bracket.ErrTooFewTeams,
	bracket.ErrDuplicateTeam,
	bracket.ErrEmptyTeamID,
	fixture.ErrTooFewTeamsForPlayoffs,
	schedule.ErrInvertedWindow,
	schedule.ErrNoVenues,
	schedule.ErrInsufficientDays,
	cricket.ErrEmptyScore,
	cricket.ErrInvalidScore,
	cricket.ErrInvalidOvers,
	match.ErrUnknownResult,
	progression.ErrUnknownTiePolicy,
}

var conflictErrors = []error{
	match.ErrNotCompleted,
	match.ErrMissingTeam,
	standing.ErrTeamNotInMatch,
	progression.ErrSlotAlreadyFilled,
	progression.ErrUnresolvedTie,
}

// classifyDomainError tags domain failures with the usecase error kind the
// transport layer maps to a status code. Unknown errors pass through.
func classifyDomainError(err error) error {
	if err == nil {
		return nil
	}
	for _, target := range invalidInputErrors {
		if errors.Is(err, target) {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return fmt.Errorf("%w: %w", ErrConflict, err)
		}
	}
	return err
}

func isConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
