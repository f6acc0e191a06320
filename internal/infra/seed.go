package infra

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"edupanel/internal/config"
	dbm "edupanel/internal/models/db_models"
	"edupanel/internal/repositories"
	"edupanel/pkg/utils"
)

const DemoCourseTitle = "HACCP Master Course"

// Seed creates bootstrap data that is missing. Safe to run on every start.
func Seed(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	if err := seedSuperAdmin(ctx, db, cfg.SuperAdmin); err != nil {
		return err
	}
	if cfg.Seed.Demo {
		if err := seedDemoCourse(ctx, db); err != nil {
			return err
		}
	}
	return seedSettings(ctx, db, cfg.App)
}

func seedSuperAdmin(ctx context.Context, db *gorm.DB, cfg config.SuperAdminConfig) error {
	email := strings.ToLower(strings.TrimSpace(cfg.Email))
	if email == "" || cfg.Password == "" {
		log.Warn().Msg("SUPER_ADMIN_EMAIL or SUPER_ADMIN_PASSWORD not set, skipping super admin seed")
		return nil
	}

	var existing dbm.User
	err := db.WithContext(ctx).First(&existing, "email = ?", email).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("seed super admin: %w", err)
	}

	hash, err := utils.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("seed super admin: %w", err)
	}
	admin := &dbm.User{Email: email, PasswordHash: &hash, Role: dbm.RoleSuperAdmin}
	if err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(admin).Error; err != nil {
		return fmt.Errorf("seed super admin: %w", err)
	}
	log.Info().Str("email", email).Msg("super admin created")
	return nil
}

func seedDemoCourse(ctx context.Context, db *gorm.DB) error {
	var n int64
	if err := db.WithContext(ctx).Model(&dbm.Course{}).Where("title = ?", DemoCourseTitle).Count(&n).Error; err != nil {
		return fmt.Errorf("seed demo course: %w", err)
	}
	if n > 0 {
		return nil
	}

	lesson := func(pos int, title, content string) dbm.Chapter {
		return dbm.Chapter{Position: pos, Title: title, Type: dbm.ChapterLesson, Content: content, Points: dbm.DefaultChapterPoints}
	}
	quiz := func(pos int, title, content string) dbm.Chapter {
		return dbm.Chapter{Position: pos, Title: title, Type: dbm.ChapterQuiz, Content: content, Points: 30}
	}

	course := &dbm.Course{
		Title:       DemoCourseTitle,
		Description: "Interactive training for mastering food safety management systems.",
		Modules: []dbm.CourseModule{
			{
				Position: 1,
				Title:    "Module 1: The Basics",
				Chapters: []dbm.Chapter{
					lesson(1, "1.1 Introduction", "Welcome to the HACCP Master Course! This module covers the foundations of the system and why it matters."),
					lesson(2, "1.2 Key Concepts", "The most important terms: hazard, risk, CCP, CP."),
					quiz(3, "1.3 Module Quiz", `{"questions":[{"q":"What is HACCP?","a":["A car model","A food safety system","A piece of software"],"correct":1}]}`),
				},
			},
			{
				Position: 2,
				Title:    "Module 2: In Practice",
				Chapters: []dbm.Chapter{
					lesson(1, "2.1 Hazard Analysis in Practice", "A worked example from a restaurant kitchen."),
					lesson(2, "2.2 Identifying CCPs", "How do we decide what counts as a critical control point?"),
					quiz(3, "2.3 Module Quiz", `{"questions":[{"q":"What does CCP stand for?","a":["Critical Control Point","Central Cooking Place"],"correct":0}]}`),
				},
			},
		},
	}
	if err := db.WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("seed demo course: %w", err)
	}
	log.Info().Str("course", DemoCourseTitle).Msg("demo course created")
	return nil
}

func seedSettings(ctx context.Context, db *gorm.DB, app config.AppConfig) error {
	defaults := []struct {
		key         string
		value       dbm.SettingValue
		description string
	}{
		{"siteTitle", dbm.StringValue(app.Name), "Title shown in the browser and in e-mails"},
		{"defaultLicenseCount", dbm.NumberValue(5), "Suggested license count for new clients"},
		{"maintenanceMode", dbm.BoolValue(false), "Show the maintenance page to non-admin users"},
	}

	settings := repositories.NewSettingRepository(db)
	for _, d := range defaults {
		raw, err := dbm.EncodeSettingValue(d.value)
		if err != nil {
			return fmt.Errorf("seed setting %s: %w", d.key, err)
		}
		s := &dbm.Setting{
			Key:         d.key,
			Value:       raw,
			Type:        d.value.Type(),
			Description: d.description,
		}
		if err := settings.CreateIfAbsent(ctx, s); err != nil {
			return fmt.Errorf("seed setting %s: %w", d.key, err)
		}
	}
	return nil
}
