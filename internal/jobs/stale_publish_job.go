package job

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/maheshrc27/postbridge/internal/models"
	"github.com/maheshrc27/postbridge/internal/repository"
)

// StalePublishJob fails posts that have been publishing for longer than
// staleAfter. A publish call that never reported back leaves its post in
// that state.
type StalePublishJob struct {
	pr         repository.PostRepository
	ph         repository.PostingHistoryRepository
	staleAfter time.Duration
	now        func() time.Time
}

func NewStalePublishJob(
	pr repository.PostRepository,
	ph repository.PostingHistoryRepository,
	staleAfter time.Duration) *StalePublishJob {
	return &StalePublishJob{
		pr:         pr,
		ph:         ph,
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

// Reconcile is the cron entry point.
func (j *StalePublishJob) Reconcile() {
	n, err := j.Run(context.Background())
	if err != nil {
		slog.Error("stale publish reconciliation failed", "error", err.Error())
		return
	}
	if n > 0 {
		slog.Info("marked stale posts failed", "count", n)
	}
}

func (j *StalePublishJob) Run(ctx context.Context) (int, error) {
	before := j.now().Add(-j.staleAfter)

	posts, err := j.pr.ListStalePublishing(ctx, before)
	if err != nil {
		return 0, err
	}

	failed := 0
	for _, post := range posts {
		ok, err := j.pr.FailIfStillPublishing(ctx, post.ID, before)
		if err != nil {
			slog.Info(err.Error(), "post_id", post.ID)
			continue
		}
		if !ok {
			continue
		}
		failed++

		postingHistory := models.PostingHistory{
			UserID:       post.UserID,
			PostID:       post.ID,
			ErrorMessage: fmt.Sprintf("publish did not complete within %s", j.staleAfter),
		}
		if post.PlatformAccountID != nil {
			postingHistory.AccountID = *post.PlatformAccountID
		}
		if _, err := j.ph.Create(ctx, &postingHistory); err != nil {
			slog.Error("unable to save posting history", "post_id", post.ID, "error", err.Error())
		}
	}

	return failed, nil
}
