package queue

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Scheduler enqueues delayed publish tasks.
type Scheduler struct {
	client enqueuer
}

func NewScheduler(client *asynq.Client) *Scheduler {
	return &Scheduler{client: client}
}

// SchedulePublish enqueues a single-attempt publish task for the post,
// processed at the given time.
func (s *Scheduler) SchedulePublish(ctx context.Context, postID int64, at time.Time) error {
	taskPayload, err := json.Marshal(PublishPostPayload{PostID: postID})
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypePublishPost, taskPayload)

	info, err := s.client.EnqueueContext(ctx, task, asynq.ProcessAt(at), asynq.MaxRetry(0))
	if err != nil {
		slog.Error("unable to enqueue publish task", "post_id", postID, "error", err.Error())
		return err
	}

	slog.Info("task scheduled", "post_id", postID, "task_id", info.ID, "process_at", at)
	return nil
}
