package usecase

import "sync"

// TournamentLocks serializes state-changing work per tournament.
type TournamentLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewTournamentLocks() *TournamentLocks {
	return &TournamentLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *TournamentLocks) lock(tournamentID string) func() {
	if l == nil {
		return func() {}
	}
	l.mu.Lock()
	m, ok := l.locks[tournamentID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[tournamentID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
