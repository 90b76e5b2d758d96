package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/maheshrc27/postbridge/internal/models"
	"github.com/maheshrc27/postbridge/internal/repository"
	"github.com/maheshrc27/postbridge/internal/transfer"
)

// PublishScheduler arranges for a scheduled post to be published at a later
// time.
type PublishScheduler interface {
	SchedulePublish(ctx context.Context, postID int64, at time.Time) error
}

type PostService interface {
	CreatePost(ctx context.Context, userID int64, pc *transfer.PostCreation) (*transfer.PostCreated, error)
	List(ctx context.Context, userID int64) ([]*models.Post, error)
	PostInfo(ctx context.Context, postID, userID int64) (*models.Post, error)
	History(ctx context.Context, postID, userID int64) ([]*models.PostingHistory, error)
	Remove(ctx context.Context, userID, postID int64) error
}

type postService struct {
	pr        repository.PostRepository
	ac        repository.SocialAccountRepository
	ph        repository.PostingHistoryRepository
	publisher PublishService
	scheduler PublishScheduler
	now       func() time.Time
}

func NewPostService(
	pr repository.PostRepository,
	ac repository.SocialAccountRepository,
	ph repository.PostingHistoryRepository,
	publisher PublishService,
	scheduler PublishScheduler) PostService {
	return &postService{
		pr:        pr,
		ac:        ac,
		ph:        ph,
		publisher: publisher,
		scheduler: scheduler,
		now:       time.Now,
	}
}

// CreatePost stores a post as a draft, schedules it, or publishes it right
// away. When an immediate publish fails the created post is still returned
// together with the publish error.
func (s *postService) CreatePost(ctx context.Context, userID int64, pc *transfer.PostCreation) (*transfer.PostCreated, error) {
	if userID == 0 {
		slog.Info(ErrUnauthorized.Error())
		return nil, ErrUnauthorized
	}
	if pc == nil {
		return nil, invalidRequest("post creation data is nil")
	}
	if strings.TrimSpace(pc.Content) == "" {
		return nil, invalidRequest("content cannot be empty")
	}
	if pc.PlatformAccountID == 0 {
		return nil, invalidRequest("platform_account_id is required")
	}
	if pc.PublishNow && pc.ScheduledTime != "" {
		return nil, invalidRequest("publish_now and scheduled_time are mutually exclusive")
	}

	var scheduledTime *time.Time
	if pc.ScheduledTime != "" {
		t, err := time.Parse(time.RFC3339, pc.ScheduledTime)
		if err != nil {
			return nil, invalidRequest(fmt.Sprintf("invalid scheduled time format: %v", err))
		}
		if !t.After(s.now()) {
			return nil, invalidRequest("scheduled_time must be in the future")
		}
		t = t.UTC()
		scheduledTime = &t
	}

	account, err := s.ac.GetActiveByIDForUser(ctx, pc.PlatformAccountID, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading social account: %w", err)
	}
	if account == nil {
		slog.Info(ErrNotFound.Error(), "account_id", pc.PlatformAccountID)
		return nil, ErrNotFound
	}

	status := models.PostStatusDraft
	switch {
	case pc.PublishNow:
		status = models.PostStatusPublishing
	case scheduledTime != nil:
		status = models.PostStatusScheduled
	}

	accountID := account.ID
	post := &models.Post{
		UserID:            userID,
		Platform:          account.Platform,
		PlatformAccountID: &accountID,
		Content:           pc.Content,
		ScheduledTime:     scheduledTime,
		Status:            status,
	}

	postID, err := s.pr.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}
	created := &transfer.PostCreated{PostID: postID, Status: status}

	switch status {
	case models.PostStatusScheduled:
		if err := s.scheduler.SchedulePublish(ctx, postID, *scheduledTime); err != nil {
			slog.Error("unable to schedule post", "post_id", postID, "error", err.Error())
			if rmErr := s.pr.Remove(ctx, postID); rmErr != nil {
				slog.Error(rmErr.Error())
			}
			return nil, fmt.Errorf("error scheduling post: %w", err)
		}

	case models.PostStatusPublishing:
		result, err := s.publisher.Publish(ctx, userID, &transfer.PublishRequest{
			PlatformAccountID: accountID,
			Content:           pc.Content,
			PostID:            postID,
		})
		if err != nil {
			return created, err
		}
		created.Status = models.PostStatusPublished
		created.Result = &transfer.PublishResponse{Success: true, Result: result}
	}

	return created, nil
}

func (s *postService) List(ctx context.Context, userID int64) ([]*models.Post, error) {
	if userID == 0 {
		slog.Info(ErrUnauthorized.Error())
		return nil, ErrUnauthorized
	}

	posts, err := s.pr.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting posts: %w", err)
	}
	return posts, nil
}

func (s *postService) PostInfo(ctx context.Context, postID, userID int64) (*models.Post, error) {
	if userID == 0 {
		slog.Info(ErrUnauthorized.Error())
		return nil, ErrUnauthorized
	}

	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error getting post: %w", err)
	}
	if post == nil || post.UserID != userID {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *postService) History(ctx context.Context, postID, userID int64) ([]*models.PostingHistory, error) {
	if err := s.checkOwner(ctx, postID, userID); err != nil {
		return nil, err
	}

	history, err := s.ph.GetByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error getting posting history: %w", err)
	}
	return history, nil
}

func (s *postService) Remove(ctx context.Context, userID, postID int64) error {
	if err := s.checkOwner(ctx, postID, userID); err != nil {
		return err
	}
	return s.pr.Remove(ctx, postID)
}

func (s *postService) checkOwner(ctx context.Context, postID, userID int64) error {
	if userID == 0 {
		slog.Info(ErrUnauthorized.Error())
		return ErrUnauthorized
	}
	if postID == 0 {
		return invalidRequest("PostID is not valid")
	}

	isValid, err := s.pr.CheckByUserID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if !isValid {
		slog.Info(ErrPostNotFound.Error(), "post_id", postID)
		return ErrPostNotFound
	}
	return nil
}
