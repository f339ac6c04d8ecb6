// Package storagetest provides a behavioural test suite shared by every
// [storage.Store] implementation.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matzehuels/portfolio/pkg/portfolio"
	"github.com/matzehuels/portfolio/pkg/storage"
)

// Run exercises a fresh store returned by newStore for each subtest.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Run("Profile", func(t *testing.T) { testProfile(t, newStore(t)) })
	t.Run("CollectionOrder", func(t *testing.T) { testCollectionOrder(t, newStore(t)) })
	t.Run("CollectionUpdateDelete", func(t *testing.T) { testCollectionUpdateDelete(t, newStore(t)) })
	t.Run("Upsert", func(t *testing.T) { testUpsert(t, newStore(t)) })
	t.Run("StatusChecks", func(t *testing.T) { testStatusChecks(t, newStore(t)) })
}

var now = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func testProfile(t *testing.T, s storage.Store) {
	ctx := context.Background()

	if _, err := s.Profile(ctx, portfolio.DefaultUserID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("missing profile: err = %v, want ErrNotFound", err)
	}
	if err := s.UpdatePersonal(ctx, portfolio.DefaultUserID, portfolio.PersonalInfoUpdate{Name: ptr("x")}, now); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("update missing profile: err = %v, want ErrNotFound", err)
	}

	p := portfolio.Profile{
		ID:     "p1",
		UserID: portfolio.DefaultUserID,
		Personal: portfolio.PersonalInfo{
			Name:  "Ada",
			Email: "ada@example.com",
		},
		About:     portfolio.AboutSection{Title: "About Me", Description: "old"},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.SaveProfile(ctx, p); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	later := now.Add(time.Hour)
	if err := s.UpdatePersonal(ctx, p.UserID, portfolio.PersonalInfoUpdate{Name: ptr("Ada L.")}, later); err != nil {
		t.Fatalf("UpdatePersonal: %v", err)
	}
	if err := s.UpdateAbout(ctx, p.UserID, portfolio.AboutSectionUpdate{Description: ptr("new")}, later); err != nil {
		t.Fatalf("UpdateAbout: %v", err)
	}

	got, err := s.Profile(ctx, p.UserID)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if got.Personal.Name != "Ada L." || got.Personal.Email != "ada@example.com" {
		t.Errorf("personal = %+v", got.Personal)
	}
	if got.About.Description != "new" || got.About.Title != "About Me" {
		t.Errorf("about = %+v", got.About)
	}
	if !got.UpdatedAt.Equal(later) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, later)
	}

	p.Personal.Name = "Replaced"
	if err := s.SaveProfile(ctx, p); err != nil {
		t.Fatal(err)
	}
	got, _ = s.Profile(ctx, p.UserID)
	if got.Personal.Name != "Replaced" {
		t.Error("SaveProfile should replace the existing profile")
	}
}

func testCollectionOrder(t *testing.T, s storage.Store) {
	ctx := context.Background()
	c := s.Projects()

	for i, title := range []string{"third", "first", "second"} {
		order := []int{2, 0, 1}[i]
		p := portfolio.ProjectCreate{Title: title, Order: order}.Build("p-"+title, portfolio.DefaultUserID, now)
		if err := c.Insert(ctx, p); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	other := portfolio.ProjectCreate{Title: "other"}.Build("p-other", "someone-else", now)
	if err := c.Insert(ctx, other); err != nil {
		t.Fatal(err)
	}

	got, err := c.List(ctx, portfolio.DefaultUserID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("List returned %d items, want 3 (scoped by portfolio)", len(got))
	}
	for i, want := range []string{"first", "second", "third"} {
		if got[i].Title != want {
			t.Errorf("item %d = %q, want %q", i, got[i].Title, want)
		}
	}
	if got[0].GitHub != "#" {
		t.Errorf("default link not stored: %q", got[0].GitHub)
	}

	empty, err := s.Skills().List(ctx, portfolio.DefaultUserID)
	if err != nil {
		t.Fatal(err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("empty List = %#v, want empty non-nil slice", empty)
	}
}

func testCollectionUpdateDelete(t *testing.T, s storage.Store) {
	ctx := context.Background()
	c := s.Skills()

	sk := portfolio.SkillCategoryCreate{Title: "Languages", Items: []string{"Go"}}.Build("s1", portfolio.DefaultUserID, now)
	if err := c.Insert(ctx, sk); err != nil {
		t.Fatal(err)
	}

	later := now.Add(time.Minute)
	u := portfolio.SkillCategoryUpdate{Items: []string{"Go", "Python"}}
	if err := c.Update(ctx, "s1", u, later); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := c.List(ctx, portfolio.DefaultUserID)
	if len(got) != 1 || len(got[0].Items) != 2 || got[0].Title != "Languages" {
		t.Fatalf("after update: %+v", got)
	}
	if !got[0].UpdatedAt.Equal(later) {
		t.Errorf("UpdatedAt = %v, want %v", got[0].UpdatedAt, later)
	}

	if err := c.Update(ctx, "missing", u, later); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("update missing: err = %v", err)
	}
	if err := c.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := c.Delete(ctx, "s1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}
}

func testUpsert(t *testing.T, s storage.Store) {
	ctx := context.Background()
	c := s.Experiences()
	keys := []string{"portfolioId", "title", "company"}

	first := portfolio.ExperienceCreate{Title: "Engineer", Company: "Acme", Location: "Berlin"}.Build("e1", portfolio.DefaultUserID, now)
	if err := c.Upsert(ctx, first, keys...); err != nil {
		t.Fatal(err)
	}
	again := portfolio.ExperienceCreate{Title: "Engineer", Company: "Acme", Location: "Remote", Order: 3}.Build("e2", portfolio.DefaultUserID, now)
	if err := c.Upsert(ctx, again, keys...); err != nil {
		t.Fatal(err)
	}
	other := portfolio.ExperienceCreate{Title: "Engineer", Company: "Globex"}.Build("e3", portfolio.DefaultUserID, now)
	if err := c.Upsert(ctx, other, keys...); err != nil {
		t.Fatal(err)
	}

	got, err := c.List(ctx, portfolio.DefaultUserID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d experiences, want 2", len(got))
	}
	var acme portfolio.Experience
	for _, e := range got {
		if e.Company == "Acme" {
			acme = e
		}
	}
	if acme.Location != "Remote" || acme.ID != "e2" || acme.Order != 3 {
		t.Errorf("upsert should replace the matching document, got %+v", acme)
	}
}

func testStatusChecks(t *testing.T, s storage.Store) {
	ctx := context.Background()
	sc := s.StatusChecks()

	for _, name := range []string{"cli", "web"} {
		if err := sc.Insert(ctx, portfolio.StatusCheck{ID: name + "-id", ClientName: name, Timestamp: now}); err != nil {
			t.Fatal(err)
		}
	}
	got, err := sc.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("got %d checks, want 2", len(got))
	}
	if got, _ := sc.List(ctx, 1); len(got) != 1 {
		t.Errorf("limit 1 returned %d checks", len(got))
	}
}
