package bracket

import crerr "github.com/cockroachdb/errors"

var (
	ErrTooFewTeams   = crerr.New("at least two teams are required")
	ErrEmptyTeamID   = crerr.New("team id is empty")
	ErrDuplicateTeam = crerr.New("team listed more than once")
)
