package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"edupanel/internal/models/db_models"
)

type ProgressRepository interface {
	WithTx(tx *gorm.DB) ProgressRepository

	Find(ctx context.Context, userID, courseID uuid.UUID) (*db_models.Progress, error)
	// EnsureForUpdate inserts the (user, course) row if absent and returns it row-locked.
	EnsureForUpdate(ctx context.Context, userID, courseID uuid.UUID) (*db_models.Progress, error)
	CompletedChapterIDs(ctx context.Context, progressID uuid.UUID) ([]uuid.UUID, error)
	// AddChapter is a set-add; inserted is false when the chapter was already present.
	AddChapter(ctx context.Context, progressID, chapterID uuid.UUID) (inserted bool, err error)
	AddScore(ctx context.Context, progressID uuid.UUID, points int) error
	MarkCompleted(ctx context.Context, progressID uuid.UUID) error
	DeleteByClient(ctx context.Context, clientID uuid.UUID) error
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) WithTx(tx *gorm.DB) ProgressRepository {
	return &progressRepository{db: tx}
}

func (r *progressRepository) Find(ctx context.Context, userID, courseID uuid.UUID) (*db_models.Progress, error) {
	var p db_models.Progress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *progressRepository) EnsureForUpdate(ctx context.Context, userID, courseID uuid.UUID) (*db_models.Progress, error) {
	fresh := db_models.Progress{UserID: userID, CourseID: courseID}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&fresh).Error; err != nil {
		return nil, err
	}

	var p db_models.Progress
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *progressRepository) CompletedChapterIDs(ctx context.Context, progressID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&db_models.ProgressChapter{}).
		Where("progress_id = ?", progressID).
		Pluck("chapter_id", &ids).Error
	return ids, err
}

func (r *progressRepository) AddChapter(ctx context.Context, progressID, chapterID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&db_models.ProgressChapter{ProgressID: progressID, ChapterID: chapterID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *progressRepository) AddScore(ctx context.Context, progressID uuid.UUID, points int) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Progress{}).
		Where("id = ?", progressID).
		Update("score", gorm.Expr("score + ?", points)).Error
}

func (r *progressRepository) MarkCompleted(ctx context.Context, progressID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Progress{}).
		Where("id = ?", progressID).
		Update("is_completed", true).Error
}

func (r *progressRepository) DeleteByClient(ctx context.Context, clientID uuid.UUID) error {
	clientUsers := r.db.Model(&db_models.User{}).Select("id").Where("client_id = ?", clientID)
	clientProgress := r.db.Model(&db_models.Progress{}).Select("id").Where("user_id IN (?)", clientUsers)

	if err := r.db.WithContext(ctx).
		Where("progress_id IN (?)", clientProgress).
		Delete(&db_models.ProgressChapter{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("user_id IN (?)", clientUsers).
		Delete(&db_models.Progress{}).Error
}
