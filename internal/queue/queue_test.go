package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/postbridge/internal/models"
	"github.com/maheshrc27/postbridge/internal/repository"
	"github.com/maheshrc27/postbridge/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnqueuer struct {
	task *asynq.Task
	opts []asynq.Option
	err  error
}

func (e *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.task = task
	e.opts = opts
	return &asynq.TaskInfo{ID: "task-1"}, nil
}

func TestScheduler_SchedulePublish(t *testing.T) {
	enq := &fakeEnqueuer{}
	s := &Scheduler{client: enq}
	at := time.Date(2024, 5, 2, 7, 30, 0, 0, time.UTC)

	require.NoError(t, s.SchedulePublish(context.Background(), 42, at))

	require.NotNil(t, enq.task)
	assert.Equal(t, TaskTypePublishPost, enq.task.Type())
	assert.JSONEq(t, `{"post_id":42}`, string(enq.task.Payload()))

	opts := map[asynq.OptionType]any{}
	for _, o := range enq.opts {
		opts[o.Type()] = o.Value()
	}
	assert.Equal(t, at, opts[asynq.ProcessAtOpt])
	assert.Equal(t, 0, opts[asynq.MaxRetryOpt])
}

func TestScheduler_EnqueueError(t *testing.T) {
	s := &Scheduler{client: &fakeEnqueuer{err: errors.New("redis down")}}
	assert.Error(t, s.SchedulePublish(context.Background(), 1, time.Now()))
}

type fakePosts struct {
	repository.PostRepository
	post    *models.Post
	claimed bool
	failed  bool
}

func (f *fakePosts) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	if f.post == nil || f.post.ID != id {
		return nil, nil
	}
	cp := *f.post
	return &cp, nil
}

func (f *fakePosts) ClaimScheduled(ctx context.Context, postID int64) (bool, error) {
	if f.post == nil || f.post.Status != models.PostStatusScheduled {
		return false, nil
	}
	f.post.Status = models.PostStatusPublishing
	f.claimed = true
	return true, nil
}

func (f *fakePosts) MarkFailed(ctx context.Context, postID int64) error {
	f.post.Status = models.PostStatusFailed
	f.failed = true
	return nil
}

type fakeHistory struct {
	repository.PostingHistoryRepository
	entries []models.PostingHistory
}

func (f *fakeHistory) Create(ctx context.Context, ph *models.PostingHistory) (int64, error) {
	f.entries = append(f.entries, *ph)
	return int64(len(f.entries)), nil
}

type publishCall struct {
	userID int64
	req    transfer.PublishRequest
}

type fakePublisher struct {
	calls []publishCall
	err   error
}

func (f *fakePublisher) Publish(ctx context.Context, userID int64, req *transfer.PublishRequest) (json.RawMessage, error) {
	f.calls = append(f.calls, publishCall{userID: userID, req: *req})
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{"id":"1"}`), nil
}

func scheduledPost() *models.Post {
	accountID := int64(3)
	return &models.Post{
		ID:                42,
		UserID:            7,
		Platform:          "twitter",
		PlatformAccountID: &accountID,
		Content:           "scheduled hello",
		Status:            models.PostStatusScheduled,
	}
}

func publishTask(t *testing.T, postID int64) *asynq.Task {
	payload, err := json.Marshal(PublishPostPayload{PostID: postID})
	require.NoError(t, err)
	return asynq.NewTask(TaskTypePublishPost, payload)
}

func TestHandlePublishPostTask_Success(t *testing.T) {
	posts := &fakePosts{post: scheduledPost()}
	history := &fakeHistory{}
	pub := &fakePublisher{}
	q := NewQueue(posts, history, pub)

	require.NoError(t, q.HandlePublishPostTask(context.Background(), publishTask(t, 42)))

	require.Len(t, pub.calls, 1)
	assert.Equal(t, int64(7), pub.calls[0].userID)
	assert.Equal(t, transfer.PublishRequest{PlatformAccountID: 3, Content: "scheduled hello", PostID: 42}, pub.calls[0].req)
	assert.True(t, posts.claimed)
	assert.False(t, posts.failed)

	require.Len(t, history.entries, 1)
	assert.True(t, history.entries[0].Succeeded())
	assert.Equal(t, int64(3), history.entries[0].AccountID)
}

func TestHandlePublishPostTask_FailureIsRecorded(t *testing.T) {
	posts := &fakePosts{post: scheduledPost()}
	history := &fakeHistory{}
	pub := &fakePublisher{err: errors.New("Twitter API error: {\"detail\":\"Unauthorized\"}")}
	q := NewQueue(posts, history, pub)

	require.NoError(t, q.HandlePublishPostTask(context.Background(), publishTask(t, 42)))

	assert.True(t, posts.failed)
	assert.Equal(t, models.PostStatusFailed, posts.post.Status)
	require.Len(t, history.entries, 1)
	assert.Equal(t, `Twitter API error: {"detail":"Unauthorized"}`, history.entries[0].ErrorMessage)
}

func TestHandlePublishPostTask_SkipsUnscheduled(t *testing.T) {
	post := scheduledPost()
	post.Status = models.PostStatusDraft
	posts := &fakePosts{post: post}
	history := &fakeHistory{}
	pub := &fakePublisher{}
	q := NewQueue(posts, history, pub)

	require.NoError(t, q.HandlePublishPostTask(context.Background(), publishTask(t, 42)))
	require.NoError(t, q.HandlePublishPostTask(context.Background(), publishTask(t, 99)))

	assert.Empty(t, pub.calls)
	assert.Empty(t, history.entries)
}

func TestHandlePublishPostTask_RemovedAccount(t *testing.T) {
	post := scheduledPost()
	post.PlatformAccountID = nil
	posts := &fakePosts{post: post}
	history := &fakeHistory{}
	pub := &fakePublisher{}
	q := NewQueue(posts, history, pub)

	require.NoError(t, q.HandlePublishPostTask(context.Background(), publishTask(t, 42)))

	assert.Empty(t, pub.calls)
	assert.True(t, posts.failed)
	require.Len(t, history.entries, 1)
	assert.Equal(t, errAccountRemoved.Error(), history.entries[0].ErrorMessage)
}

func TestHandlePublishPostTask_BadPayload(t *testing.T) {
	q := NewQueue(&fakePosts{}, &fakeHistory{}, &fakePublisher{})

	err := q.HandlePublishPostTask(context.Background(), asynq.NewTask(TaskTypePublishPost, []byte("not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
