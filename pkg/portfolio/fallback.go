package portfolio

import (
	_ "embed"
	"encoding/json"
	"sync"
	"time"
)

//go:embed data/placeholder.json
var placeholderJSON []byte

var (
	placeholderOnce sync.Once
	placeholderSeed SeedData
	placeholderErr  error
)

// PlaceholderSeed returns the bundled placeholder dataset as seed data, the
// same payload the migrate command accepts.
func PlaceholderSeed() (SeedData, error) {
	placeholderOnce.Do(func() {
		placeholderErr = json.Unmarshal(placeholderJSON, &placeholderSeed)
	})
	seed := placeholderSeed
	seed.Skills.Categories = append([]SkillCategoryCreate(nil), seed.Skills.Categories...)
	seed.Experience = append([]ExperienceCreate(nil), seed.Experience...)
	seed.Projects = append([]ProjectCreate(nil), seed.Projects...)
	seed.Achievements = append([]AchievementCreate(nil), seed.Achievements...)
	seed.Publications = append([]PublicationCreate(nil), seed.Publications...)
	return seed, placeholderErr
}

// Fallback returns a fresh copy of the bundled placeholder snapshot. Clients
// render it when the API is unreachable so the page is never empty.
func Fallback() *Snapshot {
	seed, err := PlaceholderSeed()
	if err != nil {
		// The embedded file is fixed at build time.
		panic("portfolio: invalid embedded placeholder data: " + err.Error())
	}
	return seed.Snapshot(time.Time{})
}
