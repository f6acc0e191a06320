package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"edupanel/internal/models/db_models"
)

type CourseRepository interface {
	// Create inserts the course with its modules and chapters.
	Create(ctx context.Context, course *db_models.Course) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Course, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	FindByTitle(ctx context.Context, title string) (*db_models.Course, error)
	List(ctx context.Context) ([]db_models.Course, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]db_models.Course, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

// withTree preloads modules and chapters in position order.
func withTree(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Modules.Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})
}

func (r *courseRepository) Create(ctx context.Context, course *db_models.Course) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(course).Error
	})
}

func (r *courseRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Course, error) {
	var course db_models.Course
	err := r.db.WithContext(ctx).Scopes(withTree).First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&db_models.Course{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *courseRepository) FindByTitle(ctx context.Context, title string) (*db_models.Course, error) {
	var course db_models.Course
	err := r.db.WithContext(ctx).First(&course, "title = ?", title).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) List(ctx context.Context) ([]db_models.Course, error) {
	var courses []db_models.Course
	err := r.db.WithContext(ctx).Scopes(withTree).Order("title ASC").Find(&courses).Error
	return courses, err
}

func (r *courseRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]db_models.Course, error) {
	if len(ids) == 0 {
		return []db_models.Course{}, nil
	}
	var courses []db_models.Course
	err := r.db.WithContext(ctx).Scopes(withTree).Where("id IN ?", ids).Order("title ASC").Find(&courses).Error
	return courses, err
}
