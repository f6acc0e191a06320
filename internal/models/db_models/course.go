package db_models

import "github.com/google/uuid"

type ChapterType string

const (
	ChapterLesson ChapterType = "lesson"
	ChapterQuiz   ChapterType = "quiz"
)

const DefaultChapterPoints = 10

type Course struct {
	BaseModel
	Title       string         `gorm:"uniqueIndex;not null"`
	Description string         `gorm:"type:text"`
	Modules     []CourseModule `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

type CourseModule struct {
	BaseModel
	CourseID uuid.UUID `gorm:"type:uuid;not null;index"`
	Position int       `gorm:"not null"`
	Title    string    `gorm:"not null"`
	Chapters []Chapter `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE"`
}

type Chapter struct {
	BaseModel
	ModuleID uuid.UUID   `gorm:"type:uuid;not null;index"`
	Position int         `gorm:"not null"`
	Title    string      `gorm:"not null"`
	Type     ChapterType `gorm:"type:varchar(10);not null;default:lesson"`
	Content  string      `gorm:"type:text"`
	Points   int         `gorm:"not null;check:chk_chapters_points,points >= 0"`
}

// OrderedChapters flattens modules and chapters in position order.
// Modules and chapters must already be sorted.
func (c *Course) OrderedChapters() []Chapter {
	var out []Chapter
	for _, m := range c.Modules {
		out = append(out, m.Chapters...)
	}
	return out
}

// ChapterIndex returns the position of a chapter in the flattened sequence, or -1.
func (c *Course) ChapterIndex(chapterID uuid.UUID) int {
	for i, ch := range c.OrderedChapters() {
		if ch.ID == chapterID {
			return i
		}
	}
	return -1
}
