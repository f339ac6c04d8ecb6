package api

import (
	"context"
	"net/http"

	"github.com/matzehuels/portfolio/pkg/portfolio"
)

// FetchPortfolio returns the full portfolio aggregate.
func (c *Client) FetchPortfolio(ctx context.Context) (*portfolio.Snapshot, error) {
	return call[*portfolio.Snapshot](ctx, c, http.MethodGet, resource("portfolio"), nil)
}

// UpdatePersonalInfo sets the non-nil fields of u on the personal block.
func (c *Client) UpdatePersonalInfo(ctx context.Context, u portfolio.PersonalInfoUpdate) (portfolio.Message, error) {
	return call[portfolio.Message](ctx, c, http.MethodPut, resource("portfolio", "personal"), u)
}

// UpdateAboutSection sets the non-nil fields of u on the about section.
func (c *Client) UpdateAboutSection(ctx context.Context, u portfolio.AboutSectionUpdate) (portfolio.Message, error) {
	return call[portfolio.Message](ctx, c, http.MethodPut, resource("portfolio", "about"), u)
}

// MigrateMockData replaces the stored portfolio with seed. Items are matched
// by their natural key, so repeating a migration does not duplicate them.
func (c *Client) MigrateMockData(ctx context.Context, seed portfolio.SeedData) (portfolio.Message, error) {
	return call[portfolio.Message](ctx, c, http.MethodPost, resource("migrate"), seed)
}

// ExportData returns the same aggregate as [Client.FetchPortfolio] from the
// export endpoint.
func (c *Client) ExportData(ctx context.Context) (*portfolio.Snapshot, error) {
	return call[*portfolio.Snapshot](ctx, c, http.MethodGet, resource("export"), nil)
}

// HealthCheck reports whether the API root answers with a 2xx status within
// the health timeout. It never returns an error and does not retry.
func (c *Client) HealthCheck(ctx context.Context) bool {
	err := c.requestTimeout(ctx, c.cfg.HealthTimeout, http.MethodGet, "/", nil, nil)
	if err != nil {
		c.logger.Debug("health check failed", "url", c.cfg.BaseURL, "err", err)
		return false
	}
	return true
}

// Status lists the recorded status checks. It is not retried.
func (c *Client) Status(ctx context.Context) ([]portfolio.StatusCheck, error) {
	var out []portfolio.StatusCheck
	err := c.request(ctx, http.MethodGet, resource("status"), nil, &out)
	return out, err
}

// CreateStatus records a status check for clientName.
func (c *Client) CreateStatus(ctx context.Context, clientName string) (portfolio.StatusCheck, error) {
	body := map[string]string{"client_name": clientName}
	return call[portfolio.StatusCheck](ctx, c, http.MethodPost, resource("status"), body)
}
