// Package aggregator keeps a movie's average rating and review count in line
// with its reviews. Every recomputation reads the full review set, so running
// it twice or out of order still converges on the right values.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cinerate/proj/internal/domain/errs"
	"cinerate/proj/internal/domain/fields"
	"cinerate/proj/internal/domain/models"
	"cinerate/proj/internal/storage"
)

type Storage interface {
	RatingsForMovie(ctx context.Context, movieID int64) ([]int, error)
	SetAggregate(ctx context.Context, agg models.MovieAggregate) error
	MovieIDs(ctx context.Context) ([]int64, error)
}

type TaskExecutor interface {
	Add(task func()) bool
}

type Options struct {
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
}

type Aggregator struct {
	log          *slog.Logger
	storage      Storage
	taskExecutor TaskExecutor
	opts         Options
	locks        *movieLocks
}

func New(log *slog.Logger, storage Storage, taskExecutor TaskExecutor, opts Options) *Aggregator {
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	return &Aggregator{
		log:          log,
		storage:      storage,
		taskExecutor: taskExecutor,
		opts:         opts,
		locks:        newMovieLocks(),
	}
}

// Compute derives the aggregate from a movie's ratings. No ratings gives 0.0 over 0 reviews.
func Compute(movieID int64, ratings []int) models.MovieAggregate {
	var sum int64
	for _, r := range ratings {
		sum += int64(r)
	}
	count := int64(len(ratings))
	return models.MovieAggregate{
		MovieID:       movieID,
		AverageRating: fields.AverageOf(sum, count),
		TotalReviews:  count,
	}
}

// Recompute refreshes the stored aggregate of movieID. It is not interrupted
// when ctx is cancelled, since the review mutation it follows is already
// committed. When every attempt fails a repair is queued in the background
// and the error wraps errs.ErrAggregateStale.
func (a *Aggregator) Recompute(ctx context.Context, movieID int64) (*models.MovieAggregate, error) {
	const op = "aggregator.Aggregator.Recompute"
	log := a.log.With("op", op, "movieID", movieID)
	agg, err := a.recomputeWithRetries(context.WithoutCancel(ctx), movieID)
	if err == nil {
		return agg, nil
	}
	if errors.Is(err, storage.ErrNotFound) {
		log.Info("movie not found")
		return nil, fmt.Errorf("movie %d: %w", movieID, errs.ErrNotFound)
	}
	log.Error("failed to recompute movie rating", "errMsg", err.Error())
	if !a.scheduleRepair(movieID) {
		log.Warn("repair of movie rating could not be scheduled")
	}
	return nil, fmt.Errorf("movie %d: %w", movieID, errs.ErrAggregateStale)
}

// ReconcileAll recomputes every movie and returns the number it could not refresh.
func (a *Aggregator) ReconcileAll(ctx context.Context) (int, error) {
	const op = "aggregator.Aggregator.ReconcileAll"
	log := a.log.With("op", op)
	ids, err := a.storage.MovieIDs(ctx)
	if err != nil {
		log.Error("failed to list movies", "errMsg", err.Error())
		return 0, err
	}
	failed := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return failed, err
		}
		if _, err := a.recomputeWithRetries(ctx, id); err != nil {
			log.Warn("movie rating left stale", "movieID", id, "errMsg", err.Error())
			failed++
		}
	}
	log.Info("movie ratings reconciled", "movies", len(ids), "failed", failed)
	return failed, nil
}

// ScheduleReconcile queues ReconcileAll on the background workers.
func (a *Aggregator) ScheduleReconcile() bool {
	return a.taskExecutor.Add(func() {
		a.ReconcileAll(context.Background())
	})
}

func (a *Aggregator) scheduleRepair(movieID int64) bool {
	return a.taskExecutor.Add(func() {
		const op = "aggregator.Aggregator.repair"
		log := a.log.With("op", op, "movieID", movieID)
		if _, err := a.recomputeWithRetries(context.Background(), movieID); err != nil {
			log.Error("repair failed, rating stays stale until the next review change", "errMsg", err.Error())
			return
		}
		log.Info("movie rating repaired")
	})
}

func (a *Aggregator) recomputeWithRetries(ctx context.Context, movieID int64) (*models.MovieAggregate, error) {
	var lastErr error
	for attempt := 1; attempt <= a.opts.MaxRetries; attempt++ {
		agg, err := a.recomputeOnce(ctx, movieID)
		if err == nil {
			return agg, nil
		}
		if errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		lastErr = err
		a.log.Debug("recompute attempt failed", "movieID", movieID, "attempt", attempt, "errMsg", err.Error())
		if attempt < a.opts.MaxRetries && a.opts.RetryDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(a.opts.RetryDelay):
			}
		}
	}
	return nil, lastErr
}

// recomputeOnce holds the movie lock across read and write, so two
// recomputations of one movie never interleave and the later one always wins.
func (a *Aggregator) recomputeOnce(ctx context.Context, movieID int64) (*models.MovieAggregate, error) {
	a.locks.Lock(movieID)
	defer a.locks.Unlock(movieID)
	ctx, cancel := context.WithTimeout(ctx, a.opts.Timeout)
	defer cancel()
	ratings, err := a.storage.RatingsForMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}
	agg := Compute(movieID, ratings)
	if err := a.storage.SetAggregate(ctx, agg); err != nil {
		return nil, err
	}
	return &agg, nil
}
