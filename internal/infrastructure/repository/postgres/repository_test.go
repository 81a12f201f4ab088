package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/riskibarqy/tournament-engine/internal/domain/bracket"
	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/match"
	"github.com/riskibarqy/tournament-engine/internal/domain/standing"
	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
	idgen "github.com/riskibarqy/tournament-engine/internal/platform/id"
)

type RepositoryTestSuite struct {
	suite.Suite
	db   *sqlx.DB
	mock sqlmock.Sqlmock
	ctx  context.Context
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func (s *RepositoryTestSuite) SetupTest() {
	mockDB, mock, err := sqlmock.New()
	require.NoError(s.T(), err)

	s.db = sqlx.NewDb(mockDB, "sqlmock")
	s.mock = mock
	s.ctx = context.Background()
}

func (s *RepositoryTestSuite) TearDownTest() {
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
	s.db.Close()
}

func (s *RepositoryTestSuite) TestTournamentGetByID_Found() {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(tournamentColumns).AddRow(
		"ipl-2026", "IPL 2026", "cricket", "ipl", false, "live", start, end,
		"{wankhede,chepauk}", `{"win":2,"loss":0,"tie":1,"no_result":1}`, 4, "home_team",
	)
	s.mock.ExpectQuery(`SELECT .* FROM tournaments WHERE public_id = \$1 AND deleted_at IS NULL LIMIT 1`).
		WithArgs("ipl-2026").
		WillReturnRows(rows)

	item, found, err := NewTournamentRepository(s.db).GetByID(s.ctx, "ipl-2026")
	s.Require().NoError(err)
	s.Require().True(found)
	s.Equal("IPL 2026", item.Name)
	s.Equal(tournament.Status("live"), item.Status)
	s.Equal([]string{"wankhede", "chepauk"}, item.VenueIDs)
	s.Equal(standing.PointsTable{Win: 2, Loss: 0, Tie: 1, NoResult: 1}, item.Points)
	s.Equal(4, item.QualificationSpots)
	s.Equal(end, item.EndDate)
}

func (s *RepositoryTestSuite) TestTournamentGetByID_NotFound() {
	s.mock.ExpectQuery(`SELECT .* FROM tournaments WHERE public_id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(tournamentColumns))

	_, found, err := NewTournamentRepository(s.db).GetByID(s.ctx, "missing")
	s.Require().NoError(err)
	s.False(found)
}

func (s *RepositoryTestSuite) TestTournamentGetByID_BadPointsTable() {
	rows := sqlmock.NewRows(tournamentColumns).AddRow(
		"ipl-2026", "IPL 2026", "cricket", "ipl", false, "live", time.Now(), time.Now(),
		"{}", `{"win":`, 4, "home_team",
	)
	s.mock.ExpectQuery(`SELECT .* FROM tournaments`).WillReturnRows(rows)

	_, _, err := NewTournamentRepository(s.db).GetByID(s.ctx, "ipl-2026")
	s.Require().Error(err)
	s.Contains(err.Error(), "decode points table")
}

func (s *RepositoryTestSuite) TestFixtureListByTournament_DecodesSlotsAndSources() {
	day := time.Date(2026, 5, 24, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(fixtureColumns).
		AddRow("fx-57", "ipl-2026", "", "pending", "", "pending", "",
			`{"kind":"standing","group":"A","position":1}`, `{"kind":"standing","group":"A","position":2}`,
			15, 57, "qualifier-1", "", 1, true, day, "19:30", "wankhede", false, false).
		AddRow("fx-60", "ipl-2026", "m-60", "assigned", "csk", "bye", "",
			`{"kind":"winner","match_number":57}`, nil,
			17, 60, "final", "", 1, true, nil, "", "", true, false)
	s.mock.ExpectQuery(`SELECT .* FROM fixtures WHERE tournament_public_id = \$1 AND deleted_at IS NULL ORDER BY match_number, id`).
		WithArgs("ipl-2026").
		WillReturnRows(rows)

	items, err := NewFixtureRepository(s.db, idgen.NewSequenceGenerator("fx")).ListByTournament(s.ctx, "ipl-2026")
	s.Require().NoError(err)
	s.Require().Len(items, 2)

	q1 := items[0]
	s.True(q1.Home.IsPending())
	s.Equal(fixture.FromStanding("A", 1), q1.HomeSource)
	s.Equal(fixture.FromStanding("A", 2), q1.AwaySource)
	s.Equal(fixture.StageQualifier1, q1.Stage)
	s.Equal(day, q1.ScheduledDate)

	final := items[1]
	teamID, ok := final.Home.TeamID()
	s.True(ok)
	s.Equal("csk", teamID)
	s.True(final.Away.IsBye())
	s.Equal(fixture.WinnerOf(57), final.HomeSource)
	s.True(final.AwaySource.IsZero())
	s.True(final.ScheduledDate.IsZero())
	s.True(final.Degraded)
}

func (s *RepositoryTestSuite) TestFixtureCreate_AssignsIDAndInserts() {
	s.mock.ExpectExec(`INSERT INTO fixtures \(public_id, tournament_public_id, .*\) VALUES \(\$1, \$2, .*\)`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	item, err := NewFixtureRepository(s.db, idgen.NewSequenceGenerator("fx")).Create(s.ctx, fixture.Fixture{
		TournamentID: "ipl-2026",
		Home:         bracket.Assigned("mi"),
		Away:         bracket.Assigned("csk"),
		MatchNumber:  1,
		Round:        1,
		Stage:        fixture.StageLeague,
	})
	s.Require().NoError(err)
	s.Equal("fx-1", item.ID)
}

func (s *RepositoryTestSuite) TestFixtureCreate_DatabaseError() {
	s.mock.ExpectExec(`INSERT INTO fixtures`).WillReturnError(errors.New("connection reset"))

	_, err := NewFixtureRepository(s.db, idgen.NewSequenceGenerator("fx")).Create(s.ctx, fixture.Fixture{
		ID:           "fx-9",
		TournamentID: "ipl-2026",
		MatchNumber:  9,
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "insert fixture 9")
}

func (s *RepositoryTestSuite) TestFixtureDelete_SoftDeletes() {
	s.mock.ExpectExec(`UPDATE fixtures SET deleted_at = NOW\(\) WHERE tournament_public_id = \$1 AND public_id = \$2 AND deleted_at IS NULL`).
		WithArgs("ipl-2026", "fx-3").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewFixtureRepository(s.db, idgen.NewSequenceGenerator("fx")).Delete(s.ctx, "ipl-2026", "fx-3")
	s.Require().NoError(err)
}

func (s *RepositoryTestSuite) TestMatchUpdate_MissingRow() {
	s.mock.ExpectExec(`UPDATE matches SET tournament_public_id = \$1, .* WHERE public_id = \$13`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewMatchRepository(s.db, idgen.NewSequenceGenerator("m")).Update(s.ctx, match.Match{
		ID:           "m-404",
		TournamentID: "ipl-2026",
		HomeTeamID:   "mi",
		AwayTeamID:   "csk",
		Status:       match.StatusCompleted,
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "match m-404 not found")
}

func (s *RepositoryTestSuite) TestVenueListByIDs_EmptyMatchesNothing() {
	s.mock.ExpectQuery(`SELECT .* FROM venues WHERE 1=0 AND deleted_at IS NULL ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(venueColumns))

	items, err := NewVenueRepository(s.db).ListByIDs(s.ctx, nil)
	s.Require().NoError(err)
	s.Empty(items)
}

func (s *RepositoryTestSuite) TestStandingUpdate_KeysOnTournamentAndID() {
	s.mock.ExpectExec(`UPDATE standings SET team_public_id = \$1, .* WHERE tournament_public_id = \$18 AND public_id = \$19`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	row := standing.New("ipl-2026", "mi", "")
	row.ID = "st-1"
	row.Played = 3
	row.Points = 4

	err := NewStandingRepository(s.db, idgen.NewSequenceGenerator("st")).Update(s.ctx, row)
	s.Require().NoError(err)
}
