// Package app assembles the service: repositories, use cases, the
// account verifier, the league office publisher, and the HTTP router.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	_ "github.com/lib/pq"

	"github.com/obhl/rinkside/internal/config"
	"github.com/obhl/rinkside/internal/domain/game"
	"github.com/obhl/rinkside/internal/domain/penalty"
	"github.com/obhl/rinkside/internal/domain/player"
	"github.com/obhl/rinkside/internal/domain/playerstats"
	"github.com/obhl/rinkside/internal/domain/team"
	"github.com/obhl/rinkside/internal/infrastructure/account/gatekeeper"
	"github.com/obhl/rinkside/internal/infrastructure/leagueoffice"
	cacherepo "github.com/obhl/rinkside/internal/infrastructure/repository/cache"
	"github.com/obhl/rinkside/internal/infrastructure/repository/memory"
	"github.com/obhl/rinkside/internal/infrastructure/repository/postgres"
	"github.com/obhl/rinkside/internal/interfaces/httpapi"
	basecache "github.com/obhl/rinkside/internal/platform/cache"
	idgen "github.com/obhl/rinkside/internal/platform/id"
	"github.com/obhl/rinkside/internal/platform/logging"
	"github.com/obhl/rinkside/internal/platform/resilience"
	"github.com/obhl/rinkside/internal/usecase"
)

type repositories struct {
	teams       team.Repository
	players     player.Repository
	games       game.Repository
	events      game.EventRepository
	penalties   penalty.Repository
	playerStats playerstats.Repository
}

// App holds the built HTTP server and the resources it owns.
type App struct {
	Server *http.Server

	db *sqlx.DB
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, db, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
		logger.Info("roster cache enabled", "ttl", cfg.CacheTTL)
	}

	ids := idgen.NewRandomGenerator()

	teamSvc := usecase.NewTeamService(repos.teams, ids)
	playerSvc := usecase.NewPlayerService(repos.players, repos.teams, ids)
	gameSvc := usecase.NewGameService(repos.games, repos.events, repos.teams, ids)
	penaltySvc := usecase.NewPenaltyService(repos.penalties, ids)
	statsSvc := usecase.NewStatsService(repos.playerStats, repos.games, repos.events, logger)
	standingsSvc := usecase.NewStandingsService(repos.teams, repos.games)
	scheduleSvc := usecase.NewScheduleService(repos.teams, repos.games, ids, logger)

	scorekeepingSvc := usecase.NewScorekeepingService(
		repos.games,
		repos.events,
		repos.players,
		penaltySvc,
		statsSvc,
		buildResultPublisher(cfg, logger),
		ids,
		logger,
	)

	verifier := gatekeeper.NewClient(
		&http.Client{Timeout: cfg.GatekeeperTimeout},
		gatekeeper.Config{
			BaseURL:        cfg.GatekeeperBaseURL,
			IntrospectPath: cfg.GatekeeperIntrospectPath,
			CacheTTL:       cfg.GatekeeperCacheTTL,
			CacheMaxSize:   cfg.GatekeeperCacheMaxSize,
			Circuit: resilience.CircuitBreakerConfig{
				Enabled:          cfg.GatekeeperCircuitEnabled,
				FailureThreshold: cfg.GatekeeperCircuitFailureCount,
				OpenTimeout:      cfg.GatekeeperCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.GatekeeperCircuitHalfOpenMax,
			},
		},
		logger,
	)

	handler := httpapi.NewHandler(
		teamSvc,
		playerSvc,
		gameSvc,
		scorekeepingSvc,
		penaltySvc,
		standingsSvc,
		statsSvc,
		scheduleSvc,
		logger,
	)
	router := httpapi.NewRouter(
		handler,
		verifier,
		logger,
		cfg.SwaggerEnabled,
		cfg.CORSAllowedOrigins,
		cfg.InternalJobToken,
	)

	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		db: db,
	}, nil
}

// Close releases resources owned by the app. The HTTP server is shut
// down by the caller.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, *sqlx.DB, error) {
	if cfg.DBURL == "" {
		logger.Info("no DB_URL configured, using seeded in-memory repositories")
		return repositories{
			teams:       memory.NewTeamRepository(memory.SeedTeams()),
			players:     memory.NewPlayerRepository(memory.SeedPlayers()),
			games:       memory.NewGameRepository(memory.SeedGames()),
			events:      memory.NewEventRepository(),
			penalties:   memory.NewPenaltyRepository(),
			playerStats: memory.NewPlayerStatsRepository(),
		}, nil, nil
	}

	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("connect postgres: %w", err)
	}

	logger.Info("postgres connected", "database", dbNameFromURL(cfg.DBURL))

	return repositories{
		teams:       postgres.NewTeamRepository(db),
		players:     postgres.NewPlayerRepository(db),
		games:       postgres.NewGameRepository(db),
		events:      postgres.NewGameEventRepository(db),
		penalties:   postgres.NewPenaltyTrackingRepository(db),
		playerStats: postgres.NewSeasonStatsRepository(db),
	}, db, nil
}

func buildResultPublisher(cfg config.Config, logger *logging.Logger) usecase.ResultPublisher {
	if !cfg.LeagueOfficeEnabled {
		logger.Info("league office publishing disabled, results stay local")
		return nopResultPublisher{logger: logger}
	}

	return leagueoffice.NewPublisher(leagueoffice.PublisherConfig{
		BaseURL:     cfg.LeagueOfficeBaseURL,
		ResultsPath: cfg.LeagueOfficeResultsPath,
		APIKey:      cfg.LeagueOfficeAPIKey,
		Timeout:     cfg.LeagueOfficeTimeout,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.LeagueOfficeCircuitEnabled,
			FailureThreshold: cfg.LeagueOfficeCircuitFailureCount,
			OpenTimeout:      cfg.LeagueOfficeCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.LeagueOfficeCircuitHalfOpenMax,
		},
	}, logger)
}

type nopResultPublisher struct {
	logger *logging.Logger
}

func (p nopResultPublisher) PublishResult(ctx context.Context, g game.Game) error {
	p.logger.DebugContext(ctx, "result publishing skipped", "game_id", g.ID)
	return nil
}
