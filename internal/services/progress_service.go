package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"edupanel/internal/models/request_models"
	"edupanel/internal/models/response_models"
	"edupanel/internal/repositories"
	"edupanel/pkg/metrics"
	"edupanel/pkg/utils"
)

type ProgressServiceInterface interface {
	UpdateProgress(ctx context.Context, caller utils.Principal, req request_models.UpdateProgressRequest) (*response_models.ProgressResponse, error)
}

type progressService struct {
	db           *gorm.DB
	courseRepo   repositories.CourseRepository
	clientRepo   repositories.ClientRepository
	progressRepo repositories.ProgressRepository
}

func NewProgressService(
	db *gorm.DB,
	courseRepo repositories.CourseRepository,
	clientRepo repositories.ClientRepository,
	progressRepo repositories.ProgressRepository,
) ProgressServiceInterface {
	return &progressService{db: db, courseRepo: courseRepo, clientRepo: clientRepo, progressRepo: progressRepo}
}

// UpdateProgress marks a chapter completed for the caller. Completing a chapter
// twice leaves the score unchanged; completing a chapter whose predecessors are
// not all completed fails with ErrChapterLocked and writes nothing.
func (s *progressService) UpdateProgress(ctx context.Context, caller utils.Principal, req request_models.UpdateProgressRequest) (*response_models.ProgressResponse, error) {
	courseID, err := utils.ParseUUID(req.CourseID)
	if err != nil {
		return nil, err
	}
	chapterID, err := utils.ParseUUID(req.ChapterID)
	if err != nil {
		return nil, err
	}

	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("find course: %w", err)
	}
	if course == nil {
		return nil, utils.ErrCourseNotFound
	}
	chapters := course.OrderedChapters()
	idx := course.ChapterIndex(chapterID)
	if idx < 0 {
		return nil, utils.ErrChapterNotFound
	}
	if err := checkCourseAccess(ctx, s.clientRepo, caller, courseID); err != nil {
		return nil, err
	}

	resp := &response_models.ProgressResponse{CourseID: courseID.String(), TotalChapters: len(chapters)}
	newlyCompleted := false
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		progressRepo := s.progressRepo.WithTx(tx)

		progress, err := progressRepo.EnsureForUpdate(ctx, caller.UserID, courseID)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		done, err := progressRepo.CompletedChapterIDs(ctx, progress.ID)
		if err != nil {
			return fmt.Errorf("completed chapters: %w", err)
		}
		completed := make(map[uuid.UUID]bool, len(done))
		for _, id := range done {
			completed[id] = true
		}
		for _, prev := range chapters[:idx] {
			if !completed[prev.ID] {
				return utils.ErrChapterLocked
			}
		}

		inserted, err := progressRepo.AddChapter(ctx, progress.ID, chapterID)
		if err != nil {
			return fmt.Errorf("add chapter: %w", err)
		}
		score := progress.Score
		if inserted {
			points := chapters[idx].Points
			if err := progressRepo.AddScore(ctx, progress.ID, points); err != nil {
				return fmt.Errorf("add score: %w", err)
			}
			score += points
			completed[chapterID] = true
		}

		isCompleted := progress.IsCompleted
		if !isCompleted && len(completed) == len(chapters) {
			if err := progressRepo.MarkCompleted(ctx, progress.ID); err != nil {
				return fmt.Errorf("mark completed: %w", err)
			}
			isCompleted = true
		}

		resp.Score = score
		resp.IsCompleted = isCompleted
		resp.CompletedChapters = make([]string, 0, len(completed))
		for _, ch := range chapters {
			if completed[ch.ID] {
				resp.CompletedChapters = append(resp.CompletedChapters, ch.ID.String())
			}
		}
		newlyCompleted = inserted
		return nil
	})
	if err != nil {
		return nil, err
	}
	if newlyCompleted {
		metrics.ChapterCompletions.Inc()
	}
	return resp, nil
}
