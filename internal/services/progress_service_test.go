package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edupanel/internal/models/db_models"
	"edupanel/internal/models/request_models"
	"edupanel/pkg/utils"
)

type progressFixture struct {
	env      *testEnv
	course   *db_models.Course
	chapters []db_models.Chapter
	learner  utils.Principal
}

func newProgressFixture(t *testing.T) *progressFixture {
	env := newTestEnv(t)
	course := env.createCourse(t, "Course", 10, 20, 30)
	acme := env.createClient(t, "Acme", "boss@acme.test", 2, course.ID.String())
	employee, _, err := env.employees.InviteEmployee(context.Background(), acme, "a@acme.test")
	require.NoError(t, err)
	return &progressFixture{
		env:      env,
		course:   course,
		chapters: course.OrderedChapters(),
		learner:  env.employeePrincipal(employee),
	}
}

func (f *progressFixture) complete(i int) (*int, error) {
	resp, err := f.env.progSvc.UpdateProgress(context.Background(), f.learner, request_models.UpdateProgressRequest{
		CourseID:  f.course.ID.String(),
		ChapterID: f.chapters[i].ID.String(),
	})
	if err != nil {
		return nil, err
	}
	return &resp.Score, nil
}

func TestUpdateProgress_LockedChapterChangesNothing(t *testing.T) {
	f := newProgressFixture(t)

	_, err := f.complete(1)
	require.ErrorIs(t, err, utils.ErrChapterLocked)

	var rows int64
	require.NoError(t, f.env.db.Model(&db_models.Progress{}).Count(&rows).Error)
	assert.Zero(t, rows, "rejected completion must not create a progress row")

	_, err = f.complete(0)
	require.NoError(t, err)
	_, err = f.complete(2)
	require.ErrorIs(t, err, utils.ErrChapterLocked)

	p, err := f.env.progress.Find(context.Background(), f.learner.UserID, f.course.ID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 10, p.Score)
}

func TestUpdateProgress_ScoreIsIdempotent(t *testing.T) {
	f := newProgressFixture(t)

	score, err := f.complete(0)
	require.NoError(t, err)
	assert.Equal(t, 10, *score)

	score, err = f.complete(0)
	require.NoError(t, err)
	assert.Equal(t, 10, *score)

	p, err := f.env.progress.Find(context.Background(), f.learner.UserID, f.course.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Score)
	ids, err := f.env.progress.CompletedChapterIDs(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestUpdateProgress_CompletesExactlyAtLastChapter(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	for i := range f.chapters {
		resp, err := f.env.progSvc.UpdateProgress(ctx, f.learner, request_models.UpdateProgressRequest{
			CourseID:  f.course.ID.String(),
			ChapterID: f.chapters[i].ID.String(),
		})
		require.NoError(t, err)
		assert.Equal(t, i == len(f.chapters)-1, resp.IsCompleted, "after chapter %d", i)
		assert.Len(t, resp.CompletedChapters, i+1)
	}

	p, err := f.env.progress.Find(ctx, f.learner.UserID, f.course.ID)
	require.NoError(t, err)
	assert.True(t, p.IsCompleted)
	assert.Equal(t, 60, p.Score)
}

func TestUpdateProgress_Errors(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()
	other := f.env.createCourse(t, "Other course", 5)

	cases := []struct {
		name    string
		caller  utils.Principal
		req     request_models.UpdateProgressRequest
		wantErr error
	}{
		{
			name:    "malformed course id",
			caller:  f.learner,
			req:     request_models.UpdateProgressRequest{CourseID: "nope", ChapterID: f.chapters[0].ID.String()},
			wantErr: utils.ErrInvalidID,
		},
		{
			name:    "unknown course",
			caller:  f.learner,
			req:     request_models.UpdateProgressRequest{CourseID: "5f0c7d8e-34a1-4c9b-9a55-1b2c3d4e5f60", ChapterID: f.chapters[0].ID.String()},
			wantErr: utils.ErrCourseNotFound,
		},
		{
			name:    "chapter from another course",
			caller:  f.learner,
			req:     request_models.UpdateProgressRequest{CourseID: f.course.ID.String(), ChapterID: other.OrderedChapters()[0].ID.String()},
			wantErr: utils.ErrChapterNotFound,
		},
		{
			name:    "course not subscribed",
			caller:  f.learner,
			req:     request_models.UpdateProgressRequest{CourseID: other.ID.String(), ChapterID: other.OrderedChapters()[0].ID.String()},
			wantErr: utils.ErrCourseNotAssigned,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.env.progSvc.UpdateProgress(ctx, tc.caller, tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	t.Run("super admin may use any course", func(t *testing.T) {
		admin := utils.Principal{UserID: f.learner.UserID, Role: string(db_models.RoleSuperAdmin)}
		resp, err := f.env.progSvc.UpdateProgress(ctx, admin, request_models.UpdateProgressRequest{
			CourseID:  other.ID.String(),
			ChapterID: other.OrderedChapters()[0].ID.String(),
		})
		require.NoError(t, err)
		assert.True(t, resp.IsCompleted)
		assert.Equal(t, 5, resp.Score)
	})
}

func TestGetCourse_UnlockFlags(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	_, err := f.complete(0)
	require.NoError(t, err)

	detail, err := f.env.courseSvc.GetCourse(ctx, f.learner, f.course.ID)
	require.NoError(t, err)
	require.Len(t, detail.Modules, 1)
	chapters := detail.Modules[0].Chapters
	require.Len(t, chapters, 3)

	assert.True(t, chapters[0].Completed)
	assert.True(t, chapters[0].Unlocked)
	assert.False(t, chapters[1].Completed)
	assert.True(t, chapters[1].Unlocked)
	assert.False(t, chapters[2].Unlocked)
	assert.Equal(t, 10, detail.Progress.Score)
	assert.Equal(t, 3, detail.Progress.TotalChapters)

	courses, err := f.env.courseSvc.ListCourses(ctx, f.learner)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Course", courses[0].Title)
}
