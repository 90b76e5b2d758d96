package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/maheshrc27/postbridge/internal/logging"
	"github.com/maheshrc27/postbridge/internal/models"
	"github.com/maheshrc27/postbridge/internal/repository"
	"github.com/maheshrc27/postbridge/pkg/utils"
)

var (
	ErrTooManyApiKeys = fmt.Errorf("Only %d API Keys can be created.", models.MaxApiKeysPerUser)
	ErrUnknownApiKey  = errors.New("Key doesn't exist")
)

type ApiKeyService interface {
	Create(ctx context.Context, userID int64) (*models.ApiKey, error)
	List(ctx context.Context, userID int64) ([]*models.ApiKey, error)
	GetUserID(ctx context.Context, apiKey string) (int64, error)
	RemoveAPIKey(ctx context.Context, userID, keyID int64) error
}

type apiKeyService struct {
	k repository.ApiKeyRepository
}

func NewApiKeyService(k repository.ApiKeyRepository) ApiKeyService {
	return &apiKeyService{
		k: k,
	}
}

// Create returns the only copy of the full key the caller will ever see.
func (s *apiKeyService) Create(ctx context.Context, userID int64) (*models.ApiKey, error) {
	if userID == 0 {
		slog.Info(ErrUnauthorized.Error())
		return nil, ErrUnauthorized
	}

	keys, err := s.k.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(keys) >= models.MaxApiKeysPerUser {
		slog.Info(ErrTooManyApiKeys.Error(), "user_id", userID)
		return nil, ErrTooManyApiKeys
	}

	key, err := utils.GenerateRandomKey(16)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("Error generating API key")
	}

	apiKey := &models.ApiKey{
		UserID: userID,
		ApiKey: key,
	}

	id, err := s.k.Create(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("Error saving API key")
	}
	apiKey.ID = id
	return apiKey, nil
}

func (s *apiKeyService) GetUserID(ctx context.Context, apiKey string) (int64, error) {
	if apiKey == "" {
		return 0, ErrUnknownApiKey
	}

	userID, isExist, err := s.k.GetUserIDByKey(ctx, apiKey)
	if err != nil {
		return 0, err
	}

	if !isExist {
		slog.Info(ErrUnknownApiKey.Error(), "api_key", logging.MaskToken(apiKey))
		return 0, ErrUnknownApiKey
	}

	return userID, nil
}

// List masks every key.
func (s *apiKeyService) List(ctx context.Context, userID int64) ([]*models.ApiKey, error) {
	if userID == 0 {
		slog.Info(ErrUnauthorized.Error())
		return nil, ErrUnauthorized
	}

	apiKeys, err := s.k.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Error getting API keys")
	}
	for _, k := range apiKeys {
		k.ApiKey = logging.MaskToken(k.ApiKey)
	}
	return apiKeys, nil
}

func (s *apiKeyService) RemoveAPIKey(ctx context.Context, userID, keyID int64) error {
	if userID == 0 {
		slog.Info(ErrUnauthorized.Error())
		return ErrUnauthorized
	}

	if keyID == 0 {
		return invalidRequest("KeyID is not valid")
	}

	isValid, err := s.k.CheckByUserID(ctx, keyID, userID)
	if err != nil {
		return err
	}

	if !isValid {
		slog.Info(ErrUnknownApiKey.Error())
		return ErrUnknownApiKey
	}

	return s.k.Remove(ctx, keyID)
}
