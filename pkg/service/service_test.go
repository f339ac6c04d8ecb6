package service

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/portfolio/pkg/errors"
	"github.com/matzehuels/portfolio/pkg/portfolio"
	"github.com/matzehuels/portfolio/pkg/storage/memory"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()
	n := 0
	return New(memory.New(),
		WithClock(func() time.Time { return testNow }),
		WithIDs(func() string { n++; return fmt.Sprintf("id-%d", n) }),
		WithLogger(log.New(io.Discard)),
	)
}

func seeded(t *testing.T) *Service {
	t.Helper()
	s := newTestService(t)
	seed, err := portfolio.PlaceholderSeed()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Migrate(context.Background(), seed); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return s
}

func ptr[T any](v T) *T { return &v }

func wantCode(t *testing.T, err error, code errors.Code, msg string) {
	t.Helper()
	if !errors.Is(err, code) {
		t.Fatalf("err = %v, want code %s", err, code)
	}
	if msg != "" && errors.UserMessage(err) != msg {
		t.Errorf("message = %q, want %q", errors.UserMessage(err), msg)
	}
}

func TestPortfolioMissing(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.Portfolio(ctx)
	wantCode(t, err, errors.ErrCodeNotFound, "Portfolio not found")
	if got := errors.StatusOf(err); got != 404 {
		t.Errorf("status = %d, want 404", got)
	}

	_, err = s.Export(ctx)
	wantCode(t, err, errors.ErrCodeNotFound, "No data found")
}

func TestMigrate(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	snap, err := s.Portfolio(ctx)
	if err != nil {
		t.Fatal(err)
	}
	seed, _ := portfolio.PlaceholderSeed()
	if snap.Portfolio.Personal.Name != seed.Personal.Name {
		t.Errorf("name = %q", snap.Portfolio.Personal.Name)
	}
	if snap.Portfolio.UserID != portfolio.DefaultUserID {
		t.Errorf("userId = %q", snap.Portfolio.UserID)
	}
	if len(snap.Skills) != len(seed.Skills.Categories) {
		t.Fatalf("skills = %d, want %d", len(snap.Skills), len(seed.Skills.Categories))
	}
	for i, sk := range snap.Skills {
		if sk.Order != i {
			t.Errorf("skills[%d].order = %d", i, sk.Order)
		}
		if sk.PortfolioID != portfolio.DefaultUserID {
			t.Errorf("skills[%d].portfolioId = %q", i, sk.PortfolioID)
		}
	}
	if len(snap.Experiences) != len(seed.Experience) {
		t.Errorf("experiences = %d, want %d", len(snap.Experiences), len(seed.Experience))
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	before, _ := s.Portfolio(ctx)

	seed, _ := portfolio.PlaceholderSeed()
	msg, err := s.Migrate(ctx, seed)
	if err != nil {
		t.Fatal(err)
	}
	if msg.Message != "Data migrated successfully" {
		t.Errorf("message = %q", msg.Message)
	}

	after, _ := s.Portfolio(ctx)
	if before.Counts() != after.Counts() {
		t.Errorf("counts changed: %+v -> %+v", before.Counts(), after.Counts())
	}
}

func TestMigrateInvalidSeed(t *testing.T) {
	s := newTestService(t)
	_, err := s.Migrate(context.Background(), portfolio.SeedData{})
	wantCode(t, err, errors.ErrCodeInvalidSeed, "Migration failed")
	if got := errors.StatusOf(err); got != 422 {
		t.Errorf("status = %d, want 422", got)
	}
}

func TestUpdatePersonal(t *testing.T) {
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		s := seeded(t)
		_, err := s.UpdatePersonal(ctx, portfolio.PersonalInfoUpdate{})
		wantCode(t, err, errors.ErrCodeNoUpdates, "No updates provided or portfolio not found")
	})

	t.Run("missing portfolio", func(t *testing.T) {
		s := newTestService(t)
		_, err := s.UpdatePersonal(ctx, portfolio.PersonalInfoUpdate{Name: ptr("X")})
		wantCode(t, err, errors.ErrCodeNoUpdates, "")
	})

	t.Run("merges", func(t *testing.T) {
		s := seeded(t)
		before, _ := s.Portfolio(ctx)
		msg, err := s.UpdatePersonal(ctx, portfolio.PersonalInfoUpdate{Name: ptr("Ada")})
		if err != nil {
			t.Fatal(err)
		}
		if msg.Message != "Personal information updated successfully" {
			t.Errorf("message = %q", msg.Message)
		}
		after, _ := s.Portfolio(ctx)
		if after.Portfolio.Personal.Name != "Ada" {
			t.Errorf("name = %q", after.Portfolio.Personal.Name)
		}
		if after.Portfolio.Personal.Email != before.Portfolio.Personal.Email {
			t.Errorf("email changed to %q", after.Portfolio.Personal.Email)
		}
	})
}

func TestUpdateAbout(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	if _, err := s.UpdateAbout(ctx, portfolio.AboutSectionUpdate{}); !errors.Is(err, errors.ErrCodeNoUpdates) {
		t.Fatalf("empty update: %v", err)
	}
	msg, err := s.UpdateAbout(ctx, portfolio.AboutSectionUpdate{Description: ptr("New bio")})
	if err != nil {
		t.Fatal(err)
	}
	if msg.Message != "About section updated successfully" {
		t.Errorf("message = %q", msg.Message)
	}
	snap, _ := s.Portfolio(ctx)
	if snap.Portfolio.About.Description != "New bio" {
		t.Errorf("description = %q", snap.Portfolio.About.Description)
	}
}

func TestSkillLifecycle(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	created, err := s.CreateSkill(ctx, portfolio.SkillCategoryCreate{Title: "Go", Items: []string{"chi"}})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID != "id-1" || created.PortfolioID != portfolio.DefaultUserID {
		t.Errorf("created = %+v", created)
	}
	if !created.CreatedAt.Equal(testNow) {
		t.Errorf("createdAt = %v", created.CreatedAt)
	}

	msg, err := s.UpdateSkill(ctx, created.ID, portfolio.SkillCategoryUpdate{Title: ptr("Golang")})
	if err != nil {
		t.Fatal(err)
	}
	if msg.Message != "Skill category updated successfully" {
		t.Errorf("message = %q", msg.Message)
	}
	skills, _ := s.Skills(ctx)
	if len(skills) != 1 || skills[0].Title != "Golang" || len(skills[0].Items) != 1 {
		t.Errorf("skills = %+v", skills)
	}

	msg, err = s.DeleteSkill(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if msg.Message != "Skill category deleted successfully" {
		t.Errorf("message = %q", msg.Message)
	}
	if skills, _ := s.Skills(ctx); len(skills) != 0 {
		t.Errorf("skills after delete = %+v", skills)
	}
}

func TestResourceErrors(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		code errors.Code
		msg  string
	}{
		{"update missing skill", func() error {
			_, err := s.UpdateSkill(ctx, "nope", portfolio.SkillCategoryUpdate{Title: ptr("x")})
			return err
		}, errors.ErrCodeNotFound, "Skill category not found or no updates provided"},
		{"empty experience update", func() error {
			_, err := s.UpdateExperience(ctx, "nope", portfolio.ExperienceUpdate{})
			return err
		}, errors.ErrCodeNotFound, "Experience not found or no updates provided"},
		{"delete missing project", func() error {
			_, err := s.DeleteProject(ctx, "nope")
			return err
		}, errors.ErrCodeNotFound, "Project not found"},
		{"delete missing achievement", func() error {
			_, err := s.DeleteAchievement(ctx, "nope")
			return err
		}, errors.ErrCodeNotFound, "Achievement not found"},
		{"update missing publication", func() error {
			_, err := s.UpdatePublication(ctx, "nope", portfolio.PublicationUpdate{Title: ptr("x")})
			return err
		}, errors.ErrCodeNotFound, "Publication not found or no updates provided"},
		{"create without title", func() error {
			_, err := s.CreateAchievement(ctx, portfolio.AchievementCreate{Description: "x"})
			return err
		}, errors.ErrCodeValidation, ""},
		{"invalid id", func() error {
			_, err := s.DeleteSkill(ctx, "a/b")
			return err
		}, errors.ErrCodeInvalidInput, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantCode(t, tt.call(), tt.code, tt.msg)
		})
	}
}

func TestCollectionsAreOrdered(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	for i, title := range []string{"c", "a", "b"} {
		order := []int{2, 0, 1}[i]
		if _, err := s.CreateProject(ctx, portfolio.ProjectCreate{Title: title, Order: order}); err != nil {
			t.Fatal(err)
		}
	}
	projects, err := s.Projects(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var got string
	for _, p := range projects {
		got += p.Title
	}
	if got != "abc" {
		t.Errorf("order = %q, want abc", got)
	}
}

func TestStatusChecks(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	if _, err := s.CreateStatus(ctx, ""); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty client name: %v", err)
	}
	check, err := s.CreateStatus(ctx, "web")
	if err != nil {
		t.Fatal(err)
	}
	if check.ClientName != "web" || check.ID == "" || !check.Timestamp.Equal(testNow) {
		t.Errorf("check = %+v", check)
	}
	checks, err := s.Status(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(checks) != 1 {
		t.Errorf("checks = %d, want 1", len(checks))
	}
}
