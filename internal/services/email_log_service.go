package services

import (
	"context"
	"fmt"

	"edupanel/internal/models/response_models"
	"edupanel/internal/repositories"
	"edupanel/pkg/utils"
)

const MaxPageSize = 100

type EmailLogServiceInterface interface {
	ListEmails(ctx context.Context, page, pageSize int) (*response_models.Page[response_models.EmailLogResponse], error)
}

type EmailLogService struct {
	logRepo repositories.EmailLogRepository
}

func NewEmailLogService(logRepo repositories.EmailLogRepository) EmailLogServiceInterface {
	return &EmailLogService{logRepo: logRepo}
}

func (s *EmailLogService) ListEmails(ctx context.Context, page, pageSize int) (*response_models.Page[response_models.EmailLogResponse], error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return nil, utils.ErrInvalidPageSize
	}

	logs, total, err := s.logRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list e-mail logs: %w", err)
	}

	items := make([]response_models.EmailLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, response_models.EmailLogResponse{
			ID:                l.ID.String(),
			To:                l.Recipient,
			From:              l.Sender,
			Subject:           l.Subject,
			Type:              string(l.Type),
			Status:            string(l.Status),
			Provider:          l.Provider,
			ProviderMessageID: l.ProviderMessageID,
			Error:             l.Error,
			CreatedAt:         utils.FormatUnixRFC3339(l.CreatedAt),
		})
	}

	return &response_models.Page[response_models.EmailLogResponse]{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}, nil
}
