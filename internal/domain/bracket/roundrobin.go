package bracket

import crerr "github.com/cockroachdb/errors"

// Pairing is one round-robin meeting between two teams.
type Pairing struct {
	Round int
	Home  string
	Away  string
}

// RoundRobin pairs every team with every other team using the circle method.
// An odd roster gets a phantom bye entry; its pairings are dropped. Home and
// away alternate by round parity. A double round robin appends the mirrored
// fixtures as rounds n..2(n-1).
func RoundRobin(teamIDs []string, doubleRound bool) ([]Pairing, error) {
	if err := ValidateRoster(teamIDs); err != nil {
		return nil, err
	}

	slots := make([]Slot, 0, len(teamIDs)+1)
	for _, id := range teamIDs {
		slots = append(slots, Assigned(id))
	}
	if len(slots)%2 == 1 {
		slots = append(slots, Bye())
	}

	n := len(slots)
	rounds := n - 1
	pairings := make([]Pairing, 0, n*rounds/2)
	for round := 0; round < rounds; round++ {
		for i := 0; i < n/2; i++ {
			home, away := slots[i], slots[n-1-i]
			if home.IsBye() || away.IsBye() {
				continue
			}
			if round%2 == 1 {
				home, away = away, home
			}
			homeID, _ := home.TeamID()
			awayID, _ := away.TeamID()
			pairings = append(pairings, Pairing{Round: round + 1, Home: homeID, Away: awayID})
		}

		// slot 0 stays fixed, everything else rotates one step clockwise.
		last := slots[n-1]
		copy(slots[2:], slots[1:n-1])
		slots[1] = last
	}

	if !doubleRound {
		return pairings, nil
	}

	single := len(pairings)
	for i := 0; i < single; i++ {
		p := pairings[i]
		pairings = append(pairings, Pairing{Round: p.Round + rounds, Home: p.Away, Away: p.Home})
	}
	return pairings, nil
}

// ValidateRoster rejects rosters that are too small or carry empty or repeated ids.
func ValidateRoster(teamIDs []string) error {
	if len(teamIDs) < 2 {
		return crerr.Wrapf(ErrTooFewTeams, "got %d", len(teamIDs))
	}
	seen := make(map[string]struct{}, len(teamIDs))
	for i, id := range teamIDs {
		if id == "" {
			return crerr.Wrapf(ErrEmptyTeamID, "index %d", i)
		}
		if _, ok := seen[id]; ok {
			return crerr.Wrapf(ErrDuplicateTeam, "team %s", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
