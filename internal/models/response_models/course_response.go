package response_models

type CourseSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	ChapterCount int    `json:"chapterCount"`
}

type ChapterResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	Content   string `json:"content,omitempty"`
	Points    int    `json:"points"`
	Completed bool   `json:"completed"`
	Unlocked  bool   `json:"unlocked"`
}

type ModuleResponse struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Chapters []ChapterResponse `json:"chapters"`
}

type ProgressResponse struct {
	CourseID          string   `json:"courseId"`
	Score             int      `json:"score"`
	IsCompleted       bool     `json:"isCompleted"`
	CompletedChapters []string `json:"completedChapters"`
	TotalChapters     int      `json:"totalChapters"`
}

type CourseDetailResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Modules     []ModuleResponse `json:"modules"`
	Progress    ProgressResponse `json:"progress"`
}
