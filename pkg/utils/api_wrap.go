package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondWithStatus(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	RespondWithStatus(c, http.StatusCreated, data, message)
}

func RespondWithStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

// RespondUntraced writes a success envelope without the per-request trace id,
// so two calls produce byte-identical bodies.
func RespondUntraced(c *gin.Context, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

type errorMapping struct {
	err     error
	code    int
	message string
}

var serviceErrors = []errorMapping{
	{ErrInvalidPage, http.StatusBadRequest, "Page must be greater than 0"},
	{ErrInvalidPageSize, http.StatusBadRequest, "Page size must be between 1 and 100"},
	{ErrInvalidID, http.StatusBadRequest, "Invalid id"},
	{ErrInvalidResetToken, http.StatusBadRequest, "Invalid or expired token"},
	{ErrInvalidPackage, http.StatusBadRequest, "Invalid package type"},
	{ErrCustomLicensesRequired, http.StatusBadRequest, "customLicenses must be at least 1 for a CUSTOM package"},
	{ErrCustomLicensesTooMany, http.StatusBadRequest, "customLicenses must be at most 10000"},
	{ErrInvalidSettingValue, http.StatusBadRequest, "Invalid value for setting type"},
	{ErrInvalidSettingType, http.StatusBadRequest, "type must be one of: string, number, boolean, json"},

	{ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{ErrAccountNotFound, http.StatusUnauthorized, "Invalid email or password"},

	{ErrForbidden, http.StatusForbidden, "Forbidden: insufficient permissions"},
	{ErrNoClientAssigned, http.StatusForbidden, "Forbidden: insufficient permissions"},
	{ErrCourseNotAssigned, http.StatusForbidden, "You do not have access to this course"},

	{ErrClientNotFound, http.StatusNotFound, "Client not found"},
	{ErrCourseNotFound, http.StatusNotFound, "Course not found"},
	{ErrChapterNotFound, http.StatusNotFound, "Chapter not found in this course"},

	{ErrEmailAlreadyExists, http.StatusConflict, "A user with this email already exists"},
	{ErrNoFreeLicenses, http.StatusConflict, "No free licenses available. Please purchase more licenses"},
	{ErrChapterLocked, http.StatusConflict, "Complete the previous chapters first"},
	{ErrCourseTitleTaken, http.StatusConflict, "A course with this title already exists"},
}

func HandleServiceError(c *gin.Context, err error) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		RespondError(c, http.StatusBadRequest, vErr.Message)
		return
	}

	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			RespondError(c, m.code, m.message)
			return
		}
	}

	log.Error().
		Err(err).
		Str("trace_id", c.GetString("trace_id")).
		Str("path", c.FullPath()).
		Msg("unhandled service error")
	RespondError(c, http.StatusInternalServerError, "Internal server error")
}
