package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/portfolio/pkg/api"
	"github.com/matzehuels/portfolio/pkg/errors"
	"github.com/matzehuels/portfolio/pkg/portfolio"
)

// migrateCommand creates the migrate command.
func (c *CLI) migrateCommand() *cobra.Command {
	var placeholder bool

	cmd := &cobra.Command{
		Use:   "migrate [seed.json|seed.toml]",
		Short: "Import portfolio data from a seed file",
		Long: `Migrate uploads a seed file to the API, which replaces the profile and
upserts every listed item. Items are matched by title (and company for
experience), so running a migration twice does not duplicate them.

After the upload the portfolio is fetched again and the item counts are
compared with the seed.`,
		Example: `  portfolio migrate seed.toml
  portfolio migrate --placeholder`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				seed portfolio.SeedData
				name string
				err  error
			)
			switch {
			case placeholder && len(args) == 0:
				seed, err = portfolio.PlaceholderSeed()
				name = "bundled placeholder data"
			case len(args) == 1 && !placeholder:
				seed, err = readSeed(args[0])
				name = args[0]
			default:
				return fmt.Errorf("give either a seed file or --placeholder")
			}
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			client := c.newClient()
			prog := newProgress(c.Logger)

			spinner := newSpinner(ctx, "Migrating "+name+"...")
			spinner.Start()
			msg, err := client.MigrateMockData(ctx, seed)
			if err != nil {
				spinner.StopWithError("Migration failed: %s", api.Message(err))
				return err
			}
			spinner.StopWithSuccess("%s", msg.Message)
			prog.done("Migrated " + name)

			c.forgetSnapshot(ctx, client)
			snap, err := client.FetchPortfolio(ctx)
			if err != nil {
				printWarning("Could not verify migration: %s", api.Message(err))
				return nil
			}
			if !verifyCounts(seed.Snapshot(time.Time{}).Counts(), snap.Counts()) {
				printWarning("Some items are missing after migration")
			}
			printNextStep("View it", "portfolio show")
			return nil
		},
	}

	cmd.Flags().BoolVar(&placeholder, "placeholder", false, "migrate the bundled placeholder data")

	return cmd
}

// readSeed decodes a JSON or TOML seed file.
func readSeed(path string) (portfolio.SeedData, error) {
	var seed portfolio.SeedData
	format, err := errors.ValidateSeedFilename(path)
	if err != nil {
		return seed, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return seed, fmt.Errorf("read seed: %w", err)
	}

	switch format {
	case errors.SeedTOML:
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&seed)
		if err != nil {
			return seed, fmt.Errorf("parse %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return seed, fmt.Errorf("parse %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	default:
		if err := json.Unmarshal(data, &seed); err != nil {
			return seed, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return seed, nil
}

// verifyCounts prints the stored count of every collection next to the
// seeded one and reports whether all seeded items are present.
func verifyCounts(want, got portfolio.Counts) bool {
	ok := true
	for _, row := range []struct {
		name      string
		want, got int
	}{
		{"skills", want.Skills, got.Skills},
		{"experiences", want.Experiences, got.Experiences},
		{"projects", want.Projects, got.Projects},
		{"achievements", want.Achievements, got.Achievements},
		{"publications", want.Publications, got.Publications},
	} {
		if row.got < row.want {
			ok = false
			printDetail("%s %-13s %d of %d", iconWarning, row.name, row.got, row.want)
			continue
		}
		printDetail("%s %-13s %d", iconSuccess, row.name, row.got)
	}
	return ok
}
