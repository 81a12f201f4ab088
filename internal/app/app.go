package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/tournament-engine/internal/config"
	"github.com/riskibarqy/tournament-engine/internal/domain/fixture"
	"github.com/riskibarqy/tournament-engine/internal/domain/match"
	"github.com/riskibarqy/tournament-engine/internal/domain/playerstats"
	"github.com/riskibarqy/tournament-engine/internal/domain/schedule"
	"github.com/riskibarqy/tournament-engine/internal/domain/standing"
	"github.com/riskibarqy/tournament-engine/internal/domain/team"
	"github.com/riskibarqy/tournament-engine/internal/domain/tournament"
	"github.com/riskibarqy/tournament-engine/internal/domain/venue"
	"github.com/riskibarqy/tournament-engine/internal/infrastructure/publisher"
	"github.com/riskibarqy/tournament-engine/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/tournament-engine/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tournament-engine/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/tournament-engine/internal/interfaces/httpapi"
	"github.com/riskibarqy/tournament-engine/internal/platform/dburl"
	idgen "github.com/riskibarqy/tournament-engine/internal/platform/id"
	"github.com/riskibarqy/tournament-engine/internal/platform/logging"
	"github.com/riskibarqy/tournament-engine/internal/usecase"
)

type repositories struct {
	tournaments tournament.Repository
	teams       team.Repository
	venues      venue.Repository
	matches     match.Repository
	fixtures    fixture.Repository
	standings   standing.Repository
	playerStats playerstats.Repository
}

// CloseFunc releases what NewHTTPServer opened.
type CloseFunc func(context.Context) error

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, CloseFunc, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	var closers []CloseFunc
	closeAll := func(ctx context.Context) error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](ctx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	repos, closeStorage, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, closeStorage)

	if cfg.CacheEnabled {
		repos.tournaments = cache.NewTournamentRepository(repos.tournaments, cfg.CacheTTL)
		repos.teams = cache.NewTeamRepository(repos.teams, cfg.CacheTTL)
		repos.venues = cache.NewVenueRepository(repos.venues, cfg.CacheTTL)
		repos.standings = cache.NewStandingRepository(repos.standings, cfg.CacheTTL)
		logger.Info("repository cache enabled", "ttl", cfg.CacheTTL.String())
	}

	events, closeEvents, err := buildEventPublisher(ctx, cfg, logger)
	if err != nil {
		_ = closeAll(ctx)
		return nil, nil, err
	}
	closers = append(closers, closeEvents)

	locks := usecase.NewTournamentLocks()
	fixtureSvc := usecase.NewFixtureService(usecase.FixtureRepositories{
		Tournaments: repos.tournaments,
		Teams:       repos.teams,
		Venues:      repos.venues,
		Matches:     repos.matches,
		Fixtures:    repos.fixtures,
		Standings:   repos.standings,
	}, scheduleConstraints(cfg), events, locks, logger)
	standingSvc := usecase.NewStandingService(usecase.StandingRepositories{
		Tournaments: repos.tournaments,
		Matches:     repos.matches,
		Fixtures:    repos.fixtures,
		Standings:   repos.standings,
		PlayerStats: repos.playerStats,
	}, scheduleConstraints(cfg), events, locks, logger)

	handler := httpapi.NewHandler(fixtureSvc, standingSvc, cfg.RecalcMaxWorkers, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
	}

	return server, closeAll, nil
}

func scheduleConstraints(cfg config.Config) schedule.Constraints {
	constraints := schedule.DefaultConstraints()
	constraints.MaxMatchesPerDay = cfg.ScheduleMaxMatchesPerDay
	constraints.MatineeSlot = cfg.ScheduleMatineeSlot
	constraints.EveningSlot = cfg.ScheduleEveningSlot
	constraints.PlayoffGapDays = cfg.SchedulePlayoffGapDays
	return constraints
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, CloseFunc, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		return buildPostgresRepositories(ctx, cfg, logger)
	default:
		return buildMemoryRepositories(cfg, logger), func(context.Context) error { return nil }, nil
	}
}

func buildMemoryRepositories(cfg config.Config, logger *logging.Logger) repositories {
	var (
		tournaments []tournament.Tournament
		teams       []team.Team
		venues      []venue.Venue
	)
	if cfg.SeedEnabled {
		tournaments = memory.SeedTournaments()
		teams = memory.SeedTeams()
		venues = memory.SeedVenues()
	}
	logger.Info("storage ready", "driver", config.StorageMemory, "seeded", cfg.SeedEnabled, "tournaments", len(tournaments))

	ids := idgen.NewUUIDGenerator()
	return repositories{
		tournaments: memory.NewTournamentRepository(tournaments),
		teams:       memory.NewTeamRepository(teams),
		venues:      memory.NewVenueRepository(venues),
		matches:     memory.NewMatchRepository(ids),
		fixtures:    memory.NewFixtureRepository(ids),
		standings:   memory.NewStandingRepository(ids),
		playerStats: memory.NewPlayerStatsRepository(),
	}
}

func buildPostgresRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, CloseFunc, error) {
	dsn := dburl.Normalize(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBName(dburl.Name(dsn)),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return repositories{}, nil, fmt.Errorf("ping postgres: %w", err)
	}

	if cfg.SeedEnabled {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			_ = db.Close()
			return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
		}
	}
	logger.Info("storage ready", "driver", config.StoragePostgres, "db", dburl.Name(dsn), "url", dburl.Redact(dsn), "seeded", cfg.SeedEnabled)

	ids := idgen.NewUUIDGenerator()
	repos := repositories{
		tournaments: postgres.NewTournamentRepository(db),
		teams:       postgres.NewTeamRepository(db),
		venues:      postgres.NewVenueRepository(db),
		matches:     postgres.NewMatchRepository(db, ids),
		fixtures:    postgres.NewFixtureRepository(db, ids),
		standings:   postgres.NewStandingRepository(db, ids),
		playerStats: postgres.NewPlayerStatsRepository(db),
	}
	return repos, closeDB(db), nil
}

func closeDB(db *sqlx.DB) CloseFunc {
	return func(context.Context) error {
		return db.Close()
	}
}

func buildEventPublisher(ctx context.Context, cfg config.Config, logger *logging.Logger) (usecase.EventPublisher, CloseFunc, error) {
	noop := func(context.Context) error { return nil }
	if !cfg.EventsEnabled {
		logger.Info("event publishing disabled", "reason", "EVENTS_ENABLED=false")
		return usecase.NewNopEventPublisher(), noop, nil
	}

	switch cfg.EventsDriver {
	case config.EventsWebhook:
		pub, err := publisher.NewWebhookPublisher(publisher.WebhookConfig{
			URL:            cfg.EventsWebhookURL,
			Token:          cfg.EventsWebhookToken,
			Timeout:        cfg.EventsWebhookTimeout,
			CircuitBreaker: cfg.EventsCircuit,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("event publishing enabled", "driver", config.EventsWebhook)
		return pub, noop, nil
	default:
		client, err := publisher.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		pub := publisher.NewRedisStreamPublisher(client, publisher.RedisStreamConfig{
			Stream: cfg.EventsStream,
			MaxLen: cfg.EventsStreamMaxLen,
		}, logger)
		logger.Info("event publishing enabled", "driver", config.EventsRedis, "stream", cfg.EventsStream)
		return pub, func(context.Context) error { return client.Close() }, nil
	}
}
