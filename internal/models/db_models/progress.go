package db_models

import "github.com/google/uuid"

type Progress struct {
	BaseModel
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_course"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_course;index"`
	Score       int       `gorm:"not null;default:0"`
	IsCompleted bool      `gorm:"not null;default:false"`
}

// ProgressChapter is one member of a progress row's completed-chapter set.
type ProgressChapter struct {
	ProgressID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChapterID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt  int64     `gorm:"autoCreateTime"`
}
