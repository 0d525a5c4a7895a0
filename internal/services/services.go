package services

import (
	"log/slog"

	"cinerate/proj/internal/clients/sso/grpc"
	"cinerate/proj/internal/config"
	"cinerate/proj/internal/services/aggregator"
	"cinerate/proj/internal/services/auth"
	"cinerate/proj/internal/services/movies"
	"cinerate/proj/internal/services/reviews"
	"cinerate/proj/internal/services/users"
	"cinerate/proj/internal/services/watchlist"
	"cinerate/proj/internal/storage/memory"
	pgmodels "cinerate/proj/internal/storage/postgres/models"

	govalidator "github.com/go-playground/validator/v10"
)

type MovieStorage interface {
	movies.MoviesStorage
	reviews.MovieCatalog
}

type ReviewStorage interface {
	reviews.ReviewStorage
	users.ReviewStats
}

type WatchlistStorage interface {
	watchlist.WatchlistStorage
	users.WatchlistStats
}

// Storage is everything the services persist through. Both drivers fill it.
type Storage struct {
	Movies     MovieStorage
	Reviews    ReviewStorage
	Watchlist  WatchlistStorage
	Aggregates aggregator.Storage
}

func NewPostgresStorage(m *pgmodels.Models) Storage {
	return Storage{Movies: m.Movie, Reviews: m.Review, Watchlist: m.Watchlist, Aggregates: m.Aggregate}
}

func NewMemoryStorage(m *memory.Models) Storage {
	return Storage{Movies: m.Movie, Reviews: m.Review, Watchlist: m.Watchlist, Aggregates: m.Aggregate}
}

type Services struct {
	Auth       *auth.AuthService
	Movies     *movies.MovieService
	Reviews    *reviews.ReviewService
	Watchlist  *watchlist.WatchlistService
	Users      *users.UserService
	Aggregator *aggregator.Aggregator

	sso *grpc.Client
}

func New(
	log *slog.Logger,
	cfg *config.Config,
	storage Storage,
	taskExecutor aggregator.TaskExecutor,
	validator *govalidator.Validate,
) (*Services, error) {
	var (
		ssoProvider auth.SsoProvider
		ssoClient   *grpc.Client
	)
	if cfg.Clients.SSO.Addr != "" {
		client, err := grpc.New(
			log,
			cfg.Clients.SSO.Addr,
			cfg.Clients.SSO.RetryTimeout,
			cfg.Clients.SSO.RetriesCount,
		)
		if err != nil {
			return nil, err
		}
		ssoProvider, ssoClient = client, client
	}
	agg := aggregator.New(log, storage.Aggregates, taskExecutor, aggregator.Options{
		MaxRetries: cfg.Aggregator.MaxRetries,
		RetryDelay: cfg.Aggregator.RetryDelay,
		Timeout:    cfg.Aggregator.Timeout,
	})
	return &Services{
		Auth:       auth.New(log, cfg.AppSecret, ssoProvider),
		Movies:     movies.New(log, storage.Movies),
		Reviews:    reviews.New(log, storage.Reviews, storage.Movies, agg, validator),
		Watchlist:  watchlist.New(log, storage.Watchlist),
		Users:      users.New(log, storage.Reviews, storage.Watchlist),
		Aggregator: agg,
		sso:        ssoClient,
	}, nil
}

func (s *Services) Close() error {
	if s.sso == nil {
		return nil
	}
	return s.sso.Close()
}
