package request_models

type CreateCourseRequest struct {
	Title       string                `json:"title" binding:"required,min=2"`
	Description string                `json:"description"`
	Modules     []CreateModuleRequest `json:"modules" binding:"required,min=1,dive"`
}

type CreateModuleRequest struct {
	Title    string                 `json:"title" binding:"required"`
	Chapters []CreateChapterRequest `json:"chapters" binding:"required,min=1,dive"`
}

type CreateChapterRequest struct {
	Title   string `json:"title" binding:"required"`
	Type    string `json:"type" binding:"omitempty,oneof=lesson quiz"`
	Content string `json:"content"`
	// Points defaults to 10 when omitted.
	Points *int `json:"points" binding:"omitempty,min=0"`
}

type UpdateProgressRequest struct {
	CourseID  string `json:"courseId" binding:"required,uuid"`
	ChapterID string `json:"chapterId" binding:"required,uuid"`
}
