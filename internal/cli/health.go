package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/portfolio/pkg/api"
)

var errUnhealthy = errors.New("API health check failed")

// healthCommand creates the health command.
func (c *CLI) healthCommand() *cobra.Command {
	var (
		record  string
		history bool
	)

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check whether the API is reachable",
		Example: `  portfolio health
  portfolio health --record ci --history`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := c.newClient()

			start := time.Now()
			if !client.HealthCheck(ctx) {
				printError("API unreachable")
				printDetail("Endpoint: %s", client.BaseURL())
				return errUnhealthy
			}
			printSuccess("API is healthy (%s)", time.Since(start).Round(time.Millisecond))
			printDetail("Endpoint: %s", client.BaseURL())

			if record != "" {
				check, err := client.CreateStatus(ctx, record)
				if err != nil {
					return fmt.Errorf("record status check: %s", api.Message(err))
				}
				printDetail("Recorded status check %s", check.ID)
			}

			if history {
				checks, err := client.Status(ctx)
				if err != nil {
					return fmt.Errorf("list status checks: %s", api.Message(err))
				}
				if len(checks) == 0 {
					printInfo("No status checks recorded")
					return nil
				}
				rows := make([][]string, len(checks))
				for i, ch := range checks {
					rows[i] = []string{ch.ID, ch.ClientName, ch.Timestamp.Local().Format(time.DateTime)}
				}
				fmt.Println(renderTable([]string{"ID", "Client", "Time"}, rows))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&record, "record", "", "record a status check under this client name")
	cmd.Flags().BoolVar(&history, "history", false, "list recorded status checks")

	return cmd
}
