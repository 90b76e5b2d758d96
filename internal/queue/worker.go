package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/postbridge/internal/models"
	"github.com/maheshrc27/postbridge/internal/transfer"
)

var errAccountRemoved = errors.New("social account was removed")

func (j *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decoding %s payload: %v: %w", TaskTypePublishPost, err, asynq.SkipRetry)
	}

	return j.PublishPost(ctx, payload.PostID)
}

// PublishPost publishes a scheduled post as its owner and records the
// outcome in the posting history. Posts that are gone or no longer
// scheduled are skipped.
func (j *Queue) PublishPost(ctx context.Context, postID int64) error {
	post, err := j.pr.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		slog.Info("scheduled post no longer exists", "post_id", postID)
		return nil
	}

	claimed, err := j.pr.ClaimScheduled(ctx, postID)
	if err != nil {
		return err
	}
	if !claimed {
		slog.Info("post is not scheduled, skipping", "post_id", postID, "status", post.Status)
		return nil
	}

	postingHistory := models.PostingHistory{
		UserID: post.UserID,
		PostID: post.ID,
	}

	if post.PlatformAccountID == nil {
		err = errAccountRemoved
	} else {
		postingHistory.AccountID = *post.PlatformAccountID
		_, err = j.publisher.Publish(ctx, post.UserID, &transfer.PublishRequest{
			PlatformAccountID: *post.PlatformAccountID,
			Content:           post.Content,
			PostID:            post.ID,
		})
	}

	if err != nil {
		postingHistory.ErrorMessage = err.Error()
		slog.Error("scheduled publish failed", "post_id", post.ID, "platform", post.Platform, "error", err.Error())
		if err := j.pr.MarkFailed(ctx, post.ID); err != nil {
			slog.Error("unable to mark post failed", "post_id", post.ID, "error", err.Error())
		}
	}

	if _, err := j.ph.Create(ctx, &postingHistory); err != nil {
		slog.Error("unable to save posting history", "post_id", post.ID, "error", err.Error())
	}

	return nil
}
