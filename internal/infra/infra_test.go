package infra_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edupanel/internal/config"
	"edupanel/internal/infra"
	"edupanel/internal/infra/infratest"
	dbm "edupanel/internal/models/db_models"
	"edupanel/pkg/utils"
)

func seedConfig() *config.Config {
	return &config.Config{
		App:        config.AppConfig{Name: "Edupanel"},
		SuperAdmin: config.SuperAdminConfig{Email: " Root@Example.com ", Password: "sup3r-secret"},
		Seed:       config.SeedConfig{Demo: true},
	}
}

func TestSeed_Idempotent(t *testing.T) {
	db := infratest.NewDB(t)
	ctx := context.Background()
	cfg := seedConfig()

	require.NoError(t, infra.Seed(ctx, db, cfg))
	require.NoError(t, infra.Seed(ctx, db, cfg))

	var admins []dbm.User
	require.NoError(t, db.Where("role = ?", dbm.RoleSuperAdmin).Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, "root@example.com", admins[0].Email)
	require.True(t, admins[0].HasPassword())
	assert.NoError(t, utils.ComparePasswords(*admins[0].PasswordHash, "sup3r-secret"))

	var courses int64
	require.NoError(t, db.Model(&dbm.Course{}).Count(&courses).Error)
	assert.Equal(t, int64(1), courses)

	var chapters []dbm.Chapter
	require.NoError(t, db.Find(&chapters).Error)
	assert.Len(t, chapters, 6)
	quizPoints := 0
	for _, ch := range chapters {
		if ch.Type == dbm.ChapterQuiz {
			quizPoints += ch.Points
		}
	}
	assert.Equal(t, 60, quizPoints)

	var settings []dbm.Setting
	require.NoError(t, db.Order("key").Find(&settings).Error)
	require.Len(t, settings, 3)
	assert.Equal(t, "defaultLicenseCount", settings[0].Key)
	assert.Equal(t, dbm.NumberValue(5), settings[0].Decoded())
	assert.Equal(t, dbm.BoolValue(false), settings[1].Decoded())
	assert.Equal(t, dbm.StringValue("Edupanel"), settings[2].Decoded())
}

func TestSeed_KeepsEditedSettings(t *testing.T) {
	db := infratest.NewDB(t)
	ctx := context.Background()
	cfg := seedConfig()
	require.NoError(t, infra.Seed(ctx, db, cfg))

	require.NoError(t, db.Model(&dbm.Setting{}).Where("key = ?", "siteTitle").
		Update("value", []byte(`"Renamed"`)).Error)
	require.NoError(t, infra.Seed(ctx, db, cfg))

	var s dbm.Setting
	require.NoError(t, db.First(&s, "key = ?", "siteTitle").Error)
	assert.Equal(t, dbm.StringValue("Renamed"), s.Decoded())
}

func TestSeed_SkipsDemoAndAdminWhenDisabled(t *testing.T) {
	db := infratest.NewDB(t)
	cfg := seedConfig()
	cfg.Seed.Demo = false
	cfg.SuperAdmin.Password = ""

	require.NoError(t, infra.Seed(context.Background(), db, cfg))

	var users, courses int64
	require.NoError(t, db.Model(&dbm.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&dbm.Course{}).Count(&courses).Error)
	assert.Zero(t, users)
	assert.Zero(t, courses)
}
