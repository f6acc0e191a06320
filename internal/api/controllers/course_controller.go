package controllers

import (
	"github.com/gin-gonic/gin"

	"edupanel/internal/models/request_models"
	"edupanel/internal/services"
	"edupanel/pkg/utils"
)

type CourseController struct {
	courseService   services.CourseServiceInterface
	progressService services.ProgressServiceInterface
}

func NewCourseController(courseService services.CourseServiceInterface, progressService services.ProgressServiceInterface) *CourseController {
	return &CourseController{courseService: courseService, progressService: progressService}
}

// CreateCourse godoc
// @Summary Create a course
// @Tags Courses
// @Accept json
// @Produce json
// @Param request body request_models.CreateCourseRequest true "Course with modules and chapters"
// @Success 201 {object} utils.APIResponse{data=response_models.CourseSummary}
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/courses [post]
func (cc *CourseController) CreateCourse(c *gin.Context) {
	var req request_models.CreateCourseRequest
	if !bindJSON(c, &req) {
		return
	}

	course, err := cc.courseService.CreateCourse(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, course, "Course created successfully")
}

// ListCourses godoc
// @Summary Courses available to the caller
// @Tags Courses
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]response_models.CourseSummary}
// @Security BearerAuth
// @Router /api/courses [get]
func (cc *CourseController) ListCourses(c *gin.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}

	courses, err := cc.courseService.ListCourses(c.Request.Context(), p)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, courses, "")
}

// GetCourse godoc
// @Summary Course content and progress
// @Description Returns the module/chapter tree with the caller's completion and unlock state per chapter
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} utils.APIResponse{data=response_models.CourseDetailResponse}
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/courses/{id} [get]
func (cc *CourseController) GetCourse(c *gin.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	course, err := cc.courseService.GetCourse(c.Request.Context(), p, id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, course, "")
}

// UpdateProgress godoc
// @Summary Complete a chapter
// @Description Marks a chapter completed. Chapters unlock in order; completing one twice does not add points again.
// @Tags Progress
// @Accept json
// @Produce json
// @Param request body request_models.UpdateProgressRequest true "Course and chapter"
// @Success 200 {object} utils.APIResponse{data=response_models.ProgressResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/progress/update [post]
func (cc *CourseController) UpdateProgress(c *gin.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	var req request_models.UpdateProgressRequest
	if !bindJSON(c, &req) {
		return
	}

	progress, err := cc.progressService.UpdateProgress(c.Request.Context(), p, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, progress, "Progress updated")
}
