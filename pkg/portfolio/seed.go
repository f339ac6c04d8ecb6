package portfolio

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSeed is returned by [SeedData.Validate] for unusable payloads.
var ErrInvalidSeed = errors.New("invalid seed data")

// SeedData is the bulk payload of POST /migrate. Its layout follows the
// bundled dataset file rather than the stored documents: skills are nested
// under "categories" and item ids and ordering are assigned on import.
type SeedData struct {
	Personal     PersonalInfo        `json:"personal" toml:"personal"`
	About        SeedAbout           `json:"about" toml:"about"`
	Skills       SeedSkills          `json:"skills" toml:"skills"`
	Experience   []ExperienceCreate  `json:"experience" toml:"experience"`
	Projects     []ProjectCreate     `json:"projects" toml:"projects"`
	Achievements []AchievementCreate `json:"achievements" toml:"achievements"`
	Publications []PublicationCreate `json:"publications" toml:"publications"`
}

// SeedAbout mirrors [AboutSection] with TOML keys.
type SeedAbout struct {
	Title       string        `json:"title" toml:"title"`
	Description string        `json:"description" toml:"description"`
	Education   SeedEducation `json:"education" toml:"education"`
}

// SeedEducation mirrors [Education] with TOML keys.
type SeedEducation struct {
	Institution string `json:"institution" toml:"institution"`
	Degree      string `json:"degree" toml:"degree"`
	Duration    string `json:"duration" toml:"duration"`
}

// SeedSkills wraps the skill categories of a seed file.
type SeedSkills struct {
	Categories []SkillCategoryCreate `json:"categories" toml:"categories"`
}

// Validate checks the fields the backend cannot default.
func (s *SeedData) Validate() error {
	if s.Personal.Name == "" {
		return fmt.Errorf("%w: personal.name is required", ErrInvalidSeed)
	}
	if s.About.Description == "" {
		return fmt.Errorf("%w: about.description is required", ErrInvalidSeed)
	}
	for i, c := range s.Skills.Categories {
		if err := c.Validate(); err != nil {
			return seedItemError("skills.categories", i, err)
		}
	}
	for i, e := range s.Experience {
		if err := e.Validate(); err != nil {
			return seedItemError("experience", i, err)
		}
	}
	for i, p := range s.Projects {
		if err := p.Validate(); err != nil {
			return seedItemError("projects", i, err)
		}
	}
	for i, a := range s.Achievements {
		if err := a.Validate(); err != nil {
			return seedItemError("achievements", i, err)
		}
	}
	for i, p := range s.Publications {
		if err := p.Validate(); err != nil {
			return seedItemError("publications", i, err)
		}
	}
	return nil
}

func seedItemError(list string, i int, err error) error {
	return fmt.Errorf("%w: %s[%d]: %w", ErrInvalidSeed, list, i, err)
}

// AboutSection converts the seed about block.
func (s *SeedData) AboutSection() AboutSection {
	title := s.About.Title
	if title == "" {
		title = "About Me"
	}
	return AboutSection{
		Title:       title,
		Description: s.About.Description,
		Education: Education{
			Institution: s.About.Education.Institution,
			Degree:      s.About.Education.Degree,
			Duration:    s.About.Education.Duration,
		},
	}
}

// Snapshot converts the seed into a snapshot whose item order follows the
// seed's list order. ids are derived from the collection and position.
func (s *SeedData) Snapshot(now time.Time) *Snapshot {
	snap := &Snapshot{
		Portfolio: Profile{
			ID:        "seed",
			UserID:    DefaultUserID,
			Personal:  s.Personal,
			About:     s.AboutSection(),
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	id := func(kind string, i int) string { return fmt.Sprintf("%s-%d", kind, i+1) }

	for i, c := range s.Skills.Categories {
		c.Order = i
		snap.Skills = append(snap.Skills, c.Build(id("skill", i), DefaultUserID, now))
	}
	for i, c := range s.Experience {
		c.Order = i
		snap.Experiences = append(snap.Experiences, c.Build(id("experience", i), DefaultUserID, now))
	}
	for i, c := range s.Projects {
		c.Order = i
		snap.Projects = append(snap.Projects, c.Build(id("project", i), DefaultUserID, now))
	}
	for i, c := range s.Achievements {
		c.Order = i
		snap.Achievements = append(snap.Achievements, c.Build(id("achievement", i), DefaultUserID, now))
	}
	for i, c := range s.Publications {
		c.Order = i
		snap.Publications = append(snap.Publications, c.Build(id("publication", i), DefaultUserID, now))
	}
	return snap
}
