package api

import (
	"context"
	"net/http"

	"github.com/matzehuels/portfolio/pkg/portfolio"
)

// FetchSkills lists skill categories ordered by their order field.
func (c *Client) FetchSkills(ctx context.Context) ([]portfolio.SkillCategory, error) {
	return call[[]portfolio.SkillCategory](ctx, c, http.MethodGet, resource("skills"), nil)
}

// CreateSkill stores a new skill category and returns it with its assigned id.
func (c *Client) CreateSkill(ctx context.Context, in portfolio.SkillCategoryCreate) (portfolio.SkillCategory, error) {
	return call[portfolio.SkillCategory](ctx, c, http.MethodPost, resource("skills"), in)
}

// UpdateSkill applies the non-nil fields of u to the skill category with the given id.
func (c *Client) UpdateSkill(ctx context.Context, id string, u portfolio.SkillCategoryUpdate) (portfolio.Message, error) {
	return call[portfolio.Message](ctx, c, http.MethodPut, resource("skills", id), u)
}

// DeleteSkill removes the skill category with the given id.
func (c *Client) DeleteSkill(ctx context.Context, id string) (portfolio.Message, error) {
	return call[portfolio.Message](ctx, c, http.MethodDelete, resource("skills", id), nil)
}

// FetchExperiences lists work history entries ordered by their order field.
func (c *Client) FetchExperiences(ctx context.Context) ([]portfolio.Experience, error) {
	return call[[]portfolio.Experience](ctx, c, http.MethodGet, resource("experience"), nil)
}

// CreateExperience stores a new experience and returns it with its assigned id.
func (c *Client) CreateExperience(ctx context.Context, in portfolio.ExperienceCreate) (portfolio.Experience, error) {
	return call[portfolio.Experience](ctx, c, http.MethodPost, resource("experience"), in)
}

// UpdateExperience applies the non-nil fields of u to the experience with the given id.
func (c *Client) UpdateExperience(ctx context.Context, id string, u portfolio.ExperienceUpdate) (portfolio.Message, error) {
	return call[portfolio.Message](ctx, c, http.MethodPut, resource("experience", id), u)
}

// DeleteExperience removes the experience with the given id.
func (c *Client) DeleteExperience(ctx context.Context, id string) (portfolio.Message, error) {
	return call[portfolio.Message](ctx, c, http.MethodDelete, resource("experience", id), nil)
}

// FetchProjects lists projects ordered by their order field.
func (c *Client) FetchProjects(ctx context.Context) ([]portfolio.Project, error) {
	return call[[]portfolio.Project](ctx, c, http.MethodGet, resource("projects"), nil)
}

// CreateProject stores a new project and returns it with its assigned id.
func (c *Client) CreateProject(ctx context.Context, in portfolio.ProjectCreate) (portfolio.Project, error) {
	return call[portfolio.Project](ctx, c, http.MethodPost, resource("projects"), in)
}

// UpdateProject applies the non-nil fields of u to the project with the given id.
func (c *Client) UpdateProject(ctx context.Context, id string, u portfolio.ProjectUpdate) (portfolio.Message, error) {
	return call[portfolio.Message](ctx, c, http.MethodPut, resource("projects", id), u)
}

// DeleteProject removes the project with the given id.
func (c *Client) DeleteProject(ctx context.Context, id string) (portfolio.Message, error) {
	return call[portfolio.Message](ctx, c, http.MethodDelete, resource("projects", id), nil)
}

// FetchAchievements lists achievements ordered by their order field.
func (c *Client) FetchAchievements(ctx context.Context) ([]portfolio.Achievement, error) {
	return call[[]portfolio.Achievement](ctx, c, http.MethodGet, resource("achievements"), nil)
}

// CreateAchievement stores a new achievement and returns it with its assigned id.
func (c *Client) CreateAchievement(ctx context.Context, in portfolio.AchievementCreate) (portfolio.Achievement, error) {
	return call[portfolio.Achievement](ctx, c, http.MethodPost, resource("achievements"), in)
}

// UpdateAchievement applies the non-nil fields of u to the achievement with the given id.
func (c *Client) UpdateAchievement(ctx context.Context, id string, u portfolio.AchievementUpdate) (portfolio.Message, error) {
	return call[portfolio.Message](ctx, c, http.MethodPut, resource("achievements", id), u)
}

// DeleteAchievement removes the achievement with the given id.
func (c *Client) DeleteAchievement(ctx context.Context, id string) (portfolio.Message, error) {
	return call[portfolio.Message](ctx, c, http.MethodDelete, resource("achievements", id), nil)
}

// FetchPublications lists publications ordered by their order field.
func (c *Client) FetchPublications(ctx context.Context) ([]portfolio.Publication, error) {
	return call[[]portfolio.Publication](ctx, c, http.MethodGet, resource("publications"), nil)
}

// CreatePublication stores a new publication and returns it with its assigned id.
func (c *Client) CreatePublication(ctx context.Context, in portfolio.PublicationCreate) (portfolio.Publication, error) {
	return call[portfolio.Publication](ctx, c, http.MethodPost, resource("publications"), in)
}

// UpdatePublication applies the non-nil fields of u to the publication with the given id.
func (c *Client) UpdatePublication(ctx context.Context, id string, u portfolio.PublicationUpdate) (portfolio.Message, error) {
	return call[portfolio.Message](ctx, c, http.MethodPut, resource("publications", id), u)
}

// DeletePublication removes the publication with the given id.
func (c *Client) DeletePublication(ctx context.Context, id string) (portfolio.Message, error) {
	return call[portfolio.Message](ctx, c, http.MethodDelete, resource("publications", id), nil)
}
