package portfolio

import (
	"errors"
	"fmt"
	"time"
)

// ErrMissingField is returned by the Validate methods of create bodies.
var ErrMissingField = errors.New("missing required field")

func required(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, pairs[i])
		}
	}
	return nil
}

// defaultLink is stored for project links that are not public.
const defaultLink = "#"

// SkillCategoryCreate is the body of POST /skills.
type SkillCategoryCreate struct {
	Title string   `json:"title" toml:"title"`
	Items []string `json:"items" toml:"items"`
	Order int      `json:"order" toml:"order"`
}

func (c SkillCategoryCreate) Validate() error { return required("title", c.Title) }

// Build creates the stored item.
func (c SkillCategoryCreate) Build(id, portfolioID string, now time.Time) SkillCategory {
	return SkillCategory{
		ID:          id,
		PortfolioID: portfolioID,
		Title:       c.Title,
		Items:       append([]string(nil), c.Items...),
		Order:       c.Order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ExperienceCreate is the body of POST /experience.
type ExperienceCreate struct {
	Title       string `json:"title" toml:"title"`
	Company     string `json:"company" toml:"company"`
	Location    string `json:"location" toml:"location"`
	Duration    string `json:"duration" toml:"duration"`
	Description string `json:"description" toml:"description"`
	Current     bool   `json:"current" toml:"current"`
	Order       int    `json:"order" toml:"order"`
}

func (c ExperienceCreate) Validate() error {
	return required("title", c.Title, "company", c.Company)
}

// Build creates the stored item.
func (c ExperienceCreate) Build(id, portfolioID string, now time.Time) Experience {
	return Experience{
		ID:          id,
		PortfolioID: portfolioID,
		Title:       c.Title,
		Company:     c.Company,
		Location:    c.Location,
		Duration:    c.Duration,
		Description: c.Description,
		Current:     c.Current,
		Order:       c.Order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ProjectCreate is the body of POST /projects. Empty links default to "#".
type ProjectCreate struct {
	Title        string   `json:"title" toml:"title"`
	Description  string   `json:"description" toml:"description"`
	Technologies []string `json:"technologies" toml:"technologies"`
	GitHub       string   `json:"github,omitempty" toml:"github"`
	Demo         string   `json:"demo,omitempty" toml:"demo"`
	Featured     bool     `json:"featured" toml:"featured"`
	Placeholder  bool     `json:"placeholder" toml:"placeholder"`
	Order        int      `json:"order" toml:"order"`
}

func (c ProjectCreate) Validate() error { return required("title", c.Title) }

// Build creates the stored item.
func (c ProjectCreate) Build(id, portfolioID string, now time.Time) Project {
	return Project{
		ID:           id,
		PortfolioID:  portfolioID,
		Title:        c.Title,
		Description:  c.Description,
		Technologies: append([]string(nil), c.Technologies...),
		GitHub:       orDefault(c.GitHub, defaultLink),
		Demo:         orDefault(c.Demo, defaultLink),
		Featured:     c.Featured,
		Placeholder:  c.Placeholder,
		Order:        c.Order,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// AchievementCreate is the body of POST /achievements.
type AchievementCreate struct {
	Title       string `json:"title" toml:"title"`
	Description string `json:"description" toml:"description"`
	Order       int    `json:"order" toml:"order"`
}

func (c AchievementCreate) Validate() error { return required("title", c.Title) }

// Build creates the stored item.
func (c AchievementCreate) Build(id, portfolioID string, now time.Time) Achievement {
	return Achievement{
		ID:          id,
		PortfolioID: portfolioID,
		Title:       c.Title,
		Description: c.Description,
		Order:       c.Order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// PublicationCreate is the body of POST /publications.
type PublicationCreate struct {
	Title       string  `json:"title" toml:"title"`
	Authors     string  `json:"authors" toml:"authors"`
	Publication string  `json:"publication" toml:"publication"`
	Year        string  `json:"year" toml:"year"`
	DOI         *string `json:"doi,omitempty" toml:"doi"`
	Order       int     `json:"order" toml:"order"`
}

func (c PublicationCreate) Validate() error { return required("title", c.Title) }

// Build creates the stored item.
func (c PublicationCreate) Build(id, portfolioID string, now time.Time) Publication {
	p := Publication{
		ID:          id,
		PortfolioID: portfolioID,
		Title:       c.Title,
		Authors:     c.Authors,
		Publication: c.Publication,
		Year:        c.Year,
		Order:       c.Order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if c.DOI != nil {
		doi := *c.DOI
		p.DOI = &doi
	}
	return p
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
