package workers

import (
	"context"
	"log"
	"time"

	"github.com/climatecoach/carbon-engine/internal/core/domain"
	"github.com/climatecoach/carbon-engine/internal/core/engine"
)

type FootprintRepository interface {
	ListByUserAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.StoredFootprint, error)
}

type SummaryJob struct {
	UserID string
}

// SummaryWorker recomputes a user's carbon summary in the background after
// their activity log changes and warms the cache with the result. The cache
// is a view, never authoritative: a dropped job only means the next summary
// read recomputes on demand.
type SummaryWorker struct {
	footprintRepo FootprintRepository
	cache         domain.SummaryCache
	analyzer      *engine.Analyzer
	jobs          chan SummaryJob
}

func NewSummaryWorker(fRepo FootprintRepository, cache domain.SummaryCache, analyzer *engine.Analyzer) *SummaryWorker {
	return &SummaryWorker{
		footprintRepo: fRepo,
		cache:         cache,
		analyzer:      analyzer,
		jobs:          make(chan SummaryJob, 100),
	}
}

func (w *SummaryWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Summary Worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("Summary Worker shutting down...")
				return
			}
		}
	}()
}

func (w *SummaryWorker) Enqueue(userID string) {
	select {
	case w.jobs <- SummaryJob{UserID: userID}:
	default:
		log.Printf("Summary Worker queue full! Dropping job for user %s", userID)
	}
}

func (w *SummaryWorker) processJob(ctx context.Context, job SummaryJob) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -engine.DefaultWindowDays)

	footprints, err := w.footprintRepo.ListByUserAndDateRange(ctx, job.UserID, from, now)
	if err != nil {
		log.Printf("Worker Error fetching footprints for user %s: %v", job.UserID, err)
		return
	}

	summary := w.analyzer.Summarize(footprints)

	if err := w.cache.Set(ctx, job.UserID, &summary); err != nil {
		log.Printf("Worker Failed to cache summary for user %s: %v", job.UserID, err)
		return
	}

	log.Printf("Summary refreshed for user %s: %d days tracked, trend=%s", job.UserID, summary.DaysTracked, summary.Trend)
}
