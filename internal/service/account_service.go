package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/maheshrc27/postbridge/internal/models"
	"github.com/maheshrc27/postbridge/internal/publisher"
	"github.com/maheshrc27/postbridge/internal/repository"
	"github.com/maheshrc27/postbridge/internal/transfer"
	"github.com/maheshrc27/postbridge/pkg/utils"
)

type AccountService interface {
	Connect(ctx context.Context, userID int64, ac *transfer.AccountConnection) (int64, error)
	List(ctx context.Context, userID int64) ([]*models.SocialAccount, error)
	SetActive(ctx context.Context, userID, accountID int64, active bool) error
	Delete(ctx context.Context, userID, accountID int64) error
}

type accountService struct {
	secretKey []byte
	sa        repository.SocialAccountRepository
}

func NewAccountService(secretKey string, sa repository.SocialAccountRepository) AccountService {
	return &accountService{
		secretKey: []byte(secretKey),
		sa:        sa,
	}
}

// Connect validates the credential bundle for the platform and stores it
// encrypted. The stored form is the re-encoded bundle, so unknown fields are
// dropped.
func (s *accountService) Connect(ctx context.Context, userID int64, ac *transfer.AccountConnection) (int64, error) {
	if userID == 0 {
		slog.Info(ErrUnauthorized.Error())
		return 0, ErrUnauthorized
	}
	if ac == nil {
		return 0, invalidRequest("account data is required")
	}

	platform, err := publisher.ParsePlatform(ac.Platform)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	name := strings.TrimSpace(ac.AccountName)
	if name == "" {
		return 0, invalidRequest("account_name is required")
	}

	creds, err := publisher.DecodeCredentials(platform, ac.Credentials)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	plain, err := json.Marshal(creds)
	if err != nil {
		return 0, fmt.Errorf("error encoding credentials: %w", err)
	}

	encrypted, err := utils.Encrypt(plain, s.secretKey)
	if err != nil {
		slog.Error("unable to encrypt credentials", "error", err.Error())
		return 0, fmt.Errorf("error encrypting credentials: %w", err)
	}

	account := &models.SocialAccount{
		UserID:               userID,
		Platform:             string(platform),
		AccountName:          name,
		EncryptedCredentials: encrypted,
		IsActive:             true,
	}

	id, err := s.sa.Create(ctx, account)
	if err != nil {
		return 0, fmt.Errorf("error saving social account: %w", err)
	}
	return id, nil
}

func (s *accountService) List(ctx context.Context, userID int64) ([]*models.SocialAccount, error) {
	if userID == 0 {
		slog.Info(ErrUnauthorized.Error())
		return nil, ErrUnauthorized
	}

	accounts, err := s.sa.ListInfoByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting social accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) SetActive(ctx context.Context, userID, accountID int64, active bool) error {
	if userID == 0 {
		slog.Info(ErrUnauthorized.Error())
		return ErrUnauthorized
	}
	if accountID == 0 {
		return invalidRequest("AccountID is not valid")
	}

	err := s.sa.SetActive(ctx, accountID, userID, active)
	if errors.Is(err, repository.ErrNoRowsAffected) {
		return ErrNotFound
	}
	return err
}

func (s *accountService) Delete(ctx context.Context, userID, accountID int64) error {
	if userID == 0 {
		slog.Info(ErrUnauthorized.Error())
		return ErrUnauthorized
	}
	if accountID == 0 {
		return invalidRequest("AccountID is not valid")
	}

	isValid, err := s.sa.CheckByUserID(ctx, accountID, userID)
	if err != nil {
		return err
	}
	if !isValid {
		slog.Info(ErrNotFound.Error(), "account_id", accountID)
		return ErrNotFound
	}

	return s.sa.Remove(ctx, accountID)
}
