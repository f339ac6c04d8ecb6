package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/portfolio/pkg/api"
)

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full portfolio as JSON",
		Example: `  portfolio export
  portfolio export -o backup.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := c.newClient().ExportData(cmd.Context())
			if err != nil {
				return fmt.Errorf("export: %s", api.Message(err))
			}

			if output == "" || output == "-" {
				return writeJSON(os.Stdout, snap)
			}
			var buf bytes.Buffer
			if err := writeJSON(&buf, snap); err != nil {
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			printSuccess("Exported portfolio")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}
