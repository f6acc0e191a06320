package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edupanel/internal/infra/infratest"
	"edupanel/internal/models/request_models"
	"edupanel/internal/repositories"
	"edupanel/pkg/utils"
)

func strPtr(s string) *string { return &s }

func TestUpsertSetting(t *testing.T) {
	svc := NewSettingService(repositories.NewSettingRepository(infratest.NewDB(t)))
	ctx := context.Background()

	upsert := func(key, raw, typ string, desc *string) (interface{}, string, error) {
		resp, err := svc.UpsertSetting(ctx, request_models.UpsertSettingRequest{
			Key: key, Value: json.RawMessage(raw), Type: typ, Description: desc,
		})
		if err != nil {
			return nil, "", err
		}
		return resp.Value, resp.Type, nil
	}

	v, typ, err := upsert("maxUsers", `"42"`, "number", strPtr("cap"))
	require.NoError(t, err)
	assert.Equal(t, float64(42), v)
	assert.Equal(t, "number", typ)

	_, _, err = upsert("maxUsers", `"many"`, "", nil)
	assert.ErrorAs(t, err, new(*utils.ValidationError), "stored number type is kept")

	v, typ, err = upsert("maxUsers", `7`, "", nil)
	require.NoError(t, err)
	assert.Equal(t, float64(7), v)
	assert.Equal(t, "number", typ)

	v, typ, err = upsert("flag", `"true"`, "boolean", nil)
	require.NoError(t, err)
	assert.Equal(t, true, v)
	assert.Equal(t, "boolean", typ)

	v, _, err = upsert("flag", `"yes"`, "", nil)
	require.NoError(t, err)
	assert.Equal(t, false, v)

	_, _, err = upsert("blob", `"{not json"`, "json", nil)
	assert.ErrorAs(t, err, new(*utils.ValidationError))

	v, typ, err = upsert("colors", `["red","blue"]`, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "json", typ)
	require.IsType(t, json.RawMessage{}, v)
	assert.JSONEq(t, `["red","blue"]`, string(v.(json.RawMessage)))

	_, _, err = upsert("  ", `1`, "", nil)
	assert.ErrorAs(t, err, new(*utils.ValidationError))

	list, err := svc.ListSettings(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, s := range list {
		if s.Key == "maxUsers" {
			assert.Equal(t, "cap", s.Description, "omitted description is kept")
		}
	}
}

func TestCreateCourse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := request_models.CreateCourseRequest{
		Title: "Hygiene",
		Modules: []request_models.CreateModuleRequest{
			{Title: "Basics", Chapters: []request_models.CreateChapterRequest{
				{Title: "Intro"},
				{Title: "Quiz", Type: "quiz", Points: intPtr(0)},
			}},
			{Title: "Advanced", Chapters: []request_models.CreateChapterRequest{
				{Title: "Deep dive", Points: intPtr(25)},
			}},
		},
	}
	summary, err := env.courseSvc.CreateCourse(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.ChapterCount)

	course, err := env.courses.FindByID(ctx, uuidOf(t, summary.ID))
	require.NoError(t, err)
	chapters := course.OrderedChapters()
	require.Len(t, chapters, 3)
	assert.Equal(t, "Intro", chapters[0].Title)
	assert.Equal(t, 10, chapters[0].Points)
	assert.Equal(t, "lesson", string(chapters[0].Type))
	assert.Equal(t, 0, chapters[1].Points)
	assert.Equal(t, "quiz", string(chapters[1].Type))
	assert.Equal(t, "Deep dive", chapters[2].Title)

	_, err = env.courseSvc.CreateCourse(ctx, req)
	assert.ErrorIs(t, err, utils.ErrCourseTitleTaken)
}

func TestListEmails_Pagination(t *testing.T) {
	sender := &stubSender{}
	mail, logs := newMailServiceForTest(t, sender)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, mail.SendPasswordReset(ctx, "a@acme.test", "tok"))
	}
	svc := NewEmailLogService(logs)

	page, err := svc.ListEmails(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Items, 1)

	_, err = svc.ListEmails(ctx, 0, 10)
	assert.ErrorIs(t, err, utils.ErrInvalidPage)
	_, err = svc.ListEmails(ctx, 1, MaxPageSize+1)
	assert.ErrorIs(t, err, utils.ErrInvalidPageSize)
}

func TestBuildAdminStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	course := env.createCourse(t, "Course", 10)
	acme := env.createClient(t, "Acme", "boss@acme.test", 2, course.ID.String())
	_, _, err := env.employees.InviteEmployee(ctx, acme, "a@acme.test")
	require.NoError(t, err)
	_, err = env.paySvc.Purchase(ctx, acme, request_models.CreatePaymentRequest{PackageType: "5_LICENSES"})
	require.NoError(t, err)

	stats, err := env.dashboard.BuildAdminStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Users["CLIENT_ADMIN"])
	assert.Equal(t, int64(1), stats.Users["USER"])
	assert.Equal(t, int64(0), stats.Users["SUPER_ADMIN"])
	assert.Equal(t, int64(1), stats.Clients)
	assert.Equal(t, int64(7), stats.Licenses.Total)
	assert.Equal(t, int64(1), stats.Licenses.Used)
	assert.Equal(t, int64(50), stats.Revenue.Amount)
	assert.Equal(t, int64(5), stats.Revenue.LicensesSold)
	assert.Equal(t, int64(1), stats.Courses)
	require.Len(t, stats.RecentPayments, 1)
	assert.Equal(t, "Acme", stats.RecentPayments[0].ClientName)
	assert.Len(t, stats.RecentUsers, 2)
}
