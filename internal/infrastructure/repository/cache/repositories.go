package cache

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-engine/internal/domain/standing"
	"github.com/riskibarqy/tournament-engine/internal/domain/team"
	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
	"github.com/riskibarqy/tournament-engine/internal/domain/venue"
	basecache "github.com/riskibarqy/tournament-engine/internal/platform/cache"
)

type lookup[T any] struct {
	value  T
	exists bool
}

type TournamentRepository struct {
	next  tournament.Repository
	byID  *basecache.Store[lookup[tournament.Tournament]]
	lists *basecache.Store[[]tournament.Tournament]
}

func NewTournamentRepository(next tournament.Repository, ttl time.Duration) *TournamentRepository {
	return &TournamentRepository{
		next:  next,
		byID:  basecache.NewStore[lookup[tournament.Tournament]](ttl),
		lists: basecache.NewStore[[]tournament.Tournament](ttl),
	}
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	cached, err := r.byID.GetOrLoad(ctx, "tournament:id:"+tournamentID, func(ctx context.Context) (lookup[tournament.Tournament], error) {
		item, exists, err := r.next.GetByID(ctx, tournamentID)
		if err != nil {
			return lookup[tournament.Tournament]{}, err
		}
		return lookup[tournament.Tournament]{value: cloneTournament(item), exists: exists}, nil
	})
	if err != nil {
		return tournament.Tournament{}, false, err
	}
	return cloneTournament(cached.value), cached.exists, nil
}

func (r *TournamentRepository) ListByStatus(ctx context.Context, status tournament.Status) ([]tournament.Tournament, error) {
	items, err := r.lists.GetOrLoad(ctx, "tournament:status:"+string(status), func(ctx context.Context) ([]tournament.Tournament, error) {
		items, err := r.next.ListByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		return cloneTournaments(items), nil
	})
	if err != nil {
		return nil, err
	}
	return cloneTournaments(items), nil
}

type TeamRepository struct {
	next  team.Repository
	byID  *basecache.Store[lookup[team.Team]]
	lists *basecache.Store[[]team.Team]
}

func NewTeamRepository(next team.Repository, ttl time.Duration) *TeamRepository {
	return &TeamRepository{
		next:  next,
		byID:  basecache.NewStore[lookup[team.Team]](ttl),
		lists: basecache.NewStore[[]team.Team](ttl),
	}
}

func (r *TeamRepository) ListByTournament(ctx context.Context, tournamentID string) ([]team.Team, error) {
	items, err := r.lists.GetOrLoad(ctx, "team:list:"+tournamentID, func(ctx context.Context) ([]team.Team, error) {
		items, err := r.next.ListByTournament(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, tournamentID, teamID string) (team.Team, bool, error) {
	key := "team:id:" + tournamentID + ":" + teamID
	cached, err := r.byID.GetOrLoad(ctx, key, func(ctx context.Context) (lookup[team.Team], error) {
		item, exists, err := r.next.GetByID(ctx, tournamentID, teamID)
		if err != nil {
			return lookup[team.Team]{}, err
		}
		return lookup[team.Team]{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}
	return cached.value, cached.exists, nil
}

type VenueRepository struct {
	next  venue.Repository
	cache *basecache.Store[[]venue.Venue]
}

func NewVenueRepository(next venue.Repository, ttl time.Duration) *VenueRepository {
	return &VenueRepository{next: next, cache: basecache.NewStore[[]venue.Venue](ttl)}
}

func (r *VenueRepository) List(ctx context.Context) ([]venue.Venue, error) {
	return r.load(ctx, "venue:list", r.next.List)
}

func (r *VenueRepository) ListByIDs(ctx context.Context, ids []string) ([]venue.Venue, error) {
	ids = append([]string(nil), ids...)
	sort.Strings(ids)
	key := "venue:ids:" + strings.Join(ids, ",")
	return r.load(ctx, key, func(ctx context.Context) ([]venue.Venue, error) {
		return r.next.ListByIDs(ctx, ids)
	})
}

func (r *VenueRepository) load(ctx context.Context, key string, fn func(context.Context) ([]venue.Venue, error)) ([]venue.Venue, error) {
	items, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) ([]venue.Venue, error) {
		items, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		return append([]venue.Venue(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]venue.Venue(nil), items...), nil
}

// StandingRepository caches table reads per tournament and drops the
// tournament's entries on every write.
type StandingRepository struct {
	next  standing.Repository
	cache *basecache.Store[[]standing.Standing]
}

func NewStandingRepository(next standing.Repository, ttl time.Duration) *StandingRepository {
	return &StandingRepository{next: next, cache: basecache.NewStore[[]standing.Standing](ttl)}
}

func (r *StandingRepository) ListByTournament(ctx context.Context, tournamentID string) ([]standing.Standing, error) {
	items, err := r.cache.GetOrLoad(ctx, standingsKey(tournamentID), func(ctx context.Context) ([]standing.Standing, error) {
		items, err := r.next.ListByTournament(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return append([]standing.Standing(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]standing.Standing(nil), items...), nil
}

func (r *StandingRepository) GetByTeam(ctx context.Context, tournamentID, teamID string) (standing.Standing, bool, error) {
	return r.next.GetByTeam(ctx, tournamentID, teamID)
}

func (r *StandingRepository) Create(ctx context.Context, item standing.Standing) (standing.Standing, error) {
	created, err := r.next.Create(ctx, item)
	if err != nil {
		return standing.Standing{}, err
	}
	r.cache.Delete(ctx, standingsKey(item.TournamentID))
	return created, nil
}

func (r *StandingRepository) Update(ctx context.Context, item standing.Standing) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, standingsKey(item.TournamentID))
	return nil
}

func standingsKey(tournamentID string) string {
	return "standing:list:" + tournamentID
}

func cloneTournament(item tournament.Tournament) tournament.Tournament {
	item.VenueIDs = append([]string(nil), item.VenueIDs...)
	return item
}

func cloneTournaments(items []tournament.Tournament) []tournament.Tournament {
	out := make([]tournament.Tournament, 0, len(items))
	for _, item := range items {
		out = append(out, cloneTournament(item))
	}
	return out
}
