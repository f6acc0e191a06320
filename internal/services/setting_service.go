package services

import (
	"context"
	"fmt"
	"strings"

	"edupanel/internal/models/db_models"
	"edupanel/internal/models/request_models"
	"edupanel/internal/models/response_models"
	"edupanel/internal/repositories"
	"edupanel/pkg/utils"
)

type SettingServiceInterface interface {
	ListSettings(ctx context.Context) ([]response_models.SettingResponse, error)
	UpsertSetting(ctx context.Context, req request_models.UpsertSettingRequest) (*response_models.SettingResponse, error)
}

type SettingService struct {
	settingRepo repositories.SettingRepository
}

func NewSettingService(settingRepo repositories.SettingRepository) SettingServiceInterface {
	return &SettingService{settingRepo: settingRepo}
}

func (s *SettingService) ListSettings(ctx context.Context) ([]response_models.SettingResponse, error) {
	settings, err := s.settingRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}

	out := make([]response_models.SettingResponse, 0, len(settings))
	for i := range settings {
		out = append(out, toSettingResponse(&settings[i]))
	}
	return out, nil
}

// UpsertSetting stores a value under key. An omitted type keeps the stored one,
// or is inferred from the value for new keys. An omitted description is kept.
func (s *SettingService) UpsertSetting(ctx context.Context, req request_models.UpsertSettingRequest) (*response_models.SettingResponse, error) {
	key := strings.TrimSpace(req.Key)
	if key == "" {
		return nil, utils.NewValidationError("key is required")
	}

	existing, err := s.settingRepo.FindByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("find setting: %w", err)
	}

	typ := db_models.SettingType(req.Type)
	switch {
	case typ != "":
		if !typ.Valid() {
			return nil, utils.ErrInvalidSettingType
		}
	case existing != nil:
		typ = existing.Type
	default:
		typ = db_models.InferSettingType(req.Value)
	}

	value, err := db_models.ParseSettingValue(typ, req.Value)
	if err != nil {
		return nil, err
	}
	raw, err := db_models.EncodeSettingValue(value)
	if err != nil {
		return nil, fmt.Errorf("encode setting: %w", err)
	}

	setting := &db_models.Setting{Key: key, Value: raw, Type: typ}
	switch {
	case req.Description != nil:
		setting.Description = *req.Description
	case existing != nil:
		setting.Description = existing.Description
	}

	stored, err := s.settingRepo.Upsert(ctx, setting)
	if err != nil {
		return nil, fmt.Errorf("upsert setting: %w", err)
	}
	resp := toSettingResponse(stored)
	return &resp, nil
}

func toSettingResponse(s *db_models.Setting) response_models.SettingResponse {
	return response_models.SettingResponse{
		ID:          s.ID.String(),
		Key:         s.Key,
		Value:       s.Decoded().Interface(),
		Type:        string(s.Type),
		Description: s.Description,
		UpdatedAt:   utils.FormatUnixRFC3339(s.UpdatedAt),
	}
}
