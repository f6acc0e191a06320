package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"edupanel/internal/models/db_models"
	"edupanel/internal/models/request_models"
	"edupanel/internal/models/response_models"
	"edupanel/internal/repositories"
	"edupanel/pkg/utils"
)

type CourseServiceInterface interface {
	CreateCourse(ctx context.Context, req request_models.CreateCourseRequest) (*response_models.CourseSummary, error)
	// ListCourses returns every course for SUPER_ADMIN and the client's subscriptions otherwise.
	ListCourses(ctx context.Context, caller utils.Principal) ([]response_models.CourseSummary, error)
	GetCourse(ctx context.Context, caller utils.Principal, courseID uuid.UUID) (*response_models.CourseDetailResponse, error)
}

type courseService struct {
	courseRepo   repositories.CourseRepository
	clientRepo   repositories.ClientRepository
	progressRepo repositories.ProgressRepository
}

func NewCourseService(
	courseRepo repositories.CourseRepository,
	clientRepo repositories.ClientRepository,
	progressRepo repositories.ProgressRepository,
) CourseServiceInterface {
	return &courseService{courseRepo: courseRepo, clientRepo: clientRepo, progressRepo: progressRepo}
}

func (s *courseService) CreateCourse(ctx context.Context, req request_models.CreateCourseRequest) (*response_models.CourseSummary, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, utils.NewValidationError("title is required")
	}

	existing, err := s.courseRepo.FindByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("check title: %w", err)
	}
	if existing != nil {
		return nil, utils.ErrCourseTitleTaken
	}

	course := &db_models.Course{Title: title, Description: req.Description}
	for mi, m := range req.Modules {
		module := db_models.CourseModule{Position: mi + 1, Title: m.Title}
		for ci, ch := range m.Chapters {
			chapter := db_models.Chapter{
				Position: ci + 1,
				Title:    ch.Title,
				Type:     db_models.ChapterLesson,
				Content:  ch.Content,
				Points:   db_models.DefaultChapterPoints,
			}
			if ch.Type != "" {
				chapter.Type = db_models.ChapterType(ch.Type)
			}
			if ch.Points != nil {
				chapter.Points = *ch.Points
			}
			module.Chapters = append(module.Chapters, chapter)
		}
		course.Modules = append(course.Modules, module)
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrCourseTitleTaken
		}
		return nil, fmt.Errorf("create course: %w", err)
	}
	summary := toCourseSummary(course)
	return &summary, nil
}

func (s *courseService) ListCourses(ctx context.Context, caller utils.Principal) ([]response_models.CourseSummary, error) {
	var (
		courses []db_models.Course
		err     error
	)
	switch {
	case caller.HasRole(string(db_models.RoleSuperAdmin)):
		courses, err = s.courseRepo.List(ctx)
	case caller.ClientID != nil:
		var ids []uuid.UUID
		ids, err = s.clientRepo.SubscribedCourseIDs(ctx, *caller.ClientID)
		if err == nil {
			courses, err = s.courseRepo.ListByIDs(ctx, ids)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	out := make([]response_models.CourseSummary, 0, len(courses))
	for i := range courses {
		out = append(out, toCourseSummary(&courses[i]))
	}
	return out, nil
}

func (s *courseService) GetCourse(ctx context.Context, caller utils.Principal, courseID uuid.UUID) (*response_models.CourseDetailResponse, error) {
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("find course: %w", err)
	}
	if course == nil {
		return nil, utils.ErrCourseNotFound
	}
	if err := checkCourseAccess(ctx, s.clientRepo, caller, courseID); err != nil {
		return nil, err
	}

	completed := map[uuid.UUID]bool{}
	progress, err := s.progressRepo.Find(ctx, caller.UserID, courseID)
	if err != nil {
		return nil, fmt.Errorf("find progress: %w", err)
	}
	resp := &response_models.CourseDetailResponse{
		ID:          course.ID.String(),
		Title:       course.Title,
		Description: course.Description,
		Progress: response_models.ProgressResponse{
			CourseID:          course.ID.String(),
			CompletedChapters: []string{},
			TotalChapters:     len(course.OrderedChapters()),
		},
	}
	if progress != nil {
		ids, err := s.progressRepo.CompletedChapterIDs(ctx, progress.ID)
		if err != nil {
			return nil, fmt.Errorf("completed chapters: %w", err)
		}
		for _, id := range ids {
			completed[id] = true
			resp.Progress.CompletedChapters = append(resp.Progress.CompletedChapters, id.String())
		}
		resp.Progress.Score = progress.Score
		resp.Progress.IsCompleted = progress.IsCompleted
	}

	// A chapter stays unlocked only while every earlier one is completed.
	unlocked := true
	resp.Modules = make([]response_models.ModuleResponse, 0, len(course.Modules))
	for _, m := range course.Modules {
		mr := response_models.ModuleResponse{
			ID:       m.ID.String(),
			Title:    m.Title,
			Chapters: make([]response_models.ChapterResponse, 0, len(m.Chapters)),
		}
		for _, ch := range m.Chapters {
			mr.Chapters = append(mr.Chapters, response_models.ChapterResponse{
				ID:        ch.ID.String(),
				Title:     ch.Title,
				Type:      string(ch.Type),
				Content:   ch.Content,
				Points:    ch.Points,
				Completed: completed[ch.ID],
				Unlocked:  unlocked,
			})
			if !completed[ch.ID] {
				unlocked = false
			}
		}
		resp.Modules = append(resp.Modules, mr)
	}
	return resp, nil
}

// checkCourseAccess allows SUPER_ADMIN everywhere and everyone else only on
// courses their client subscribes to.
func checkCourseAccess(ctx context.Context, clients repositories.ClientRepository, caller utils.Principal, courseID uuid.UUID) error {
	if caller.HasRole(string(db_models.RoleSuperAdmin)) {
		return nil
	}
	if caller.ClientID == nil {
		return utils.ErrCourseNotAssigned
	}
	ok, err := clients.IsSubscribed(ctx, *caller.ClientID, courseID)
	if err != nil {
		return fmt.Errorf("check subscription: %w", err)
	}
	if !ok {
		return utils.ErrCourseNotAssigned
	}
	return nil
}

func toCourseSummary(c *db_models.Course) response_models.CourseSummary {
	return response_models.CourseSummary{
		ID:           c.ID.String(),
		Title:        c.Title,
		Description:  c.Description,
		ChapterCount: len(c.OrderedChapters()),
	}
}
