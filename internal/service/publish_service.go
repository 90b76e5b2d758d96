package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/maheshrc27/postbridge/internal/models"
	"github.com/maheshrc27/postbridge/internal/publisher"
	"github.com/maheshrc27/postbridge/internal/repository"
	"github.com/maheshrc27/postbridge/internal/transfer"
	"github.com/maheshrc27/postbridge/pkg/utils"
)

// PublishService sends one piece of text through one connected account.
type PublishService interface {
	Publish(ctx context.Context, userID int64, req *transfer.PublishRequest) (json.RawMessage, error)
}

type publishService struct {
	secretKey []byte
	registry  *publisher.Registry
	sa        repository.SocialAccountRepository
	pr        repository.PostRepository
}

func NewPublishService(
	secretKey string,
	registry *publisher.Registry,
	sa repository.SocialAccountRepository,
	pr repository.PostRepository) PublishService {
	return &publishService{
		secretKey: []byte(secretKey),
		registry:  registry,
		sa:        sa,
		pr:        pr,
	}
}

// Publish performs at most one outbound platform call. Ownership of both the
// account and the post is confirmed before that call. The post status is
// only touched after a successful publish.
func (s *publishService) Publish(ctx context.Context, userID int64, req *transfer.PublishRequest) (json.RawMessage, error) {
	if userID == 0 {
		slog.Info(ErrUnauthorized.Error())
		return nil, ErrUnauthorized
	}
	if req == nil || req.PlatformAccountID == 0 {
		return nil, invalidRequest("platform_account_id is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, invalidRequest("content is required")
	}

	account, err := s.sa.GetActiveByIDForUser(ctx, req.PlatformAccountID, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading social account: %w", err)
	}
	if account == nil {
		slog.Info(ErrNotFound.Error(), "account_id", req.PlatformAccountID, "user_id", userID)
		return nil, ErrNotFound
	}

	if req.PostID != 0 {
		owned, err := s.pr.CheckByUserID(ctx, req.PostID, userID)
		if err != nil {
			return nil, fmt.Errorf("error checking post: %w", err)
		}
		if !owned {
			slog.Info(ErrPostNotFound.Error(), "post_id", req.PostID, "user_id", userID)
			return nil, ErrPostNotFound
		}
	}

	pub, err := s.registry.Lookup(account.Platform)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	creds, err := s.credentials(account, pub.Platform())
	if err != nil {
		return nil, err
	}

	result, err := pub.Publish(ctx, req.Content, creds)
	if err != nil {
		slog.Info("publish failed", "platform", account.Platform, "account_id", account.ID, "error", err.Error())
		return nil, err
	}

	if req.PostID != 0 {
		if err := s.pr.MarkPublished(ctx, req.PostID, userID, account.ID); err != nil {
			slog.Error("post published but status update failed", "post_id", req.PostID, "error", err.Error())
		}
	}

	return result, nil
}

func (s *publishService) credentials(account *models.SocialAccount, platform publisher.Platform) (publisher.Credentials, error) {
	plain, err := utils.Decrypt(account.EncryptedCredentials, s.secretKey)
	if err != nil {
		slog.Error("unable to decrypt credentials", "account_id", account.ID, "error", err.Error())
		return nil, fmt.Errorf("error reading credentials for account %d: %w", account.ID, err)
	}

	creds, err := publisher.DecodeCredentials(platform, plain)
	if err != nil {
		slog.Info(err.Error(), "account_id", account.ID)
		return nil, err
	}
	return creds, nil
}
