package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/portfolio/pkg/api"
	"github.com/matzehuels/portfolio/pkg/loader"
	"github.com/matzehuels/portfolio/pkg/portfolio"
)

// showCommand creates the show command.
func (c *CLI) showCommand() *cobra.Command {
	var (
		refresh bool
		noCache bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "show [section]",
		Short: "Show the portfolio or one of its sections",
		Long: `Show the portfolio profile, or a table of one section (` + strings.Join(portfolio.Sections, ", ") + `).

A snapshot fetched within the cache TTL is reused. When the API cannot be
reached the last saved snapshot is shown, and failing that the bundled
placeholder data.`,
		Example: `  portfolio show
  portfolio show projects
  portfolio show --refresh --json`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: portfolio.Sections,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			section := ""
			if len(args) == 1 {
				section = args[0]
			}

			l := c.newLoader(ctx, c.newClient(), noCache)

			spinner := newSpinner(ctx, "Loading portfolio...")
			spinner.Start()
			var (
				snap *portfolio.Snapshot
				src  = loader.SourceNetwork
				err  error
			)
			if refresh {
				snap, err = l.Refresh(ctx)
			} else {
				snap, src, err = l.LoadOrFallback(ctx)
			}
			spinner.Stop()

			if snap == nil {
				return err
			}
			if err != nil {
				printWarning("API unavailable (%s), showing %s data", api.Message(err), src)
			}

			if asJSON {
				var v any = snap
				if section != "" {
					items, ok := snap.Section(section)
					if !ok {
						return unknownSection(section)
					}
					v = items
				}
				return writeJSON(os.Stdout, v)
			}

			if section == "" {
				printProfile(snap.Portfolio)
				fmt.Println()
				printCounts(snap.Counts(), src)
				return nil
			}
			headers, rows, ok := sectionTable(snap, section)
			if !ok {
				return unknownSection(section)
			}
			if len(rows) == 0 {
				printInfo("No %s", section)
				return nil
			}
			fmt.Println(renderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and fetch from the API")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "do not read or write the snapshot cache")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of formatted output")

	return cmd
}

func unknownSection(name string) error {
	return fmt.Errorf("unknown section %q (valid: %s)", name, strings.Join(portfolio.Sections, ", "))
}

// sectionTable lays out the named section of snap as table rows.
func sectionTable(snap *portfolio.Snapshot, name string) ([]string, [][]string, bool) {
	switch name {
	case "skills":
		h, r := skillTable(snap.Skills)
		return h, r, true
	case "experiences", "experience":
		h, r := experienceTable(snap.Experiences)
		return h, r, true
	case "projects":
		h, r := projectTable(snap.Projects)
		return h, r, true
	case "achievements":
		h, r := achievementTable(snap.Achievements)
		return h, r, true
	case "publications":
		h, r := publicationTable(snap.Publications)
		return h, r, true
	}
	return nil, nil, false
}

func skillTable(items []portfolio.SkillCategory) ([]string, [][]string) {
	rows := make([][]string, len(items))
	for i, s := range items {
		rows[i] = []string{s.ID, s.Title, strings.Join(s.Items, ", ")}
	}
	return []string{"ID", "Category", "Skills"}, rows
}

func experienceTable(items []portfolio.Experience) ([]string, [][]string) {
	rows := make([][]string, len(items))
	for i, e := range items {
		rows[i] = []string{e.ID, e.Title, e.Company, e.Duration, yesNo(e.Current)}
	}
	return []string{"ID", "Title", "Company", "Duration", "Current"}, rows
}

func projectTable(items []portfolio.Project) ([]string, [][]string) {
	rows := make([][]string, len(items))
	for i, p := range items {
		rows[i] = []string{p.ID, p.Title, truncate(strings.Join(p.Technologies, ", "), 40), yesNo(p.Featured)}
	}
	return []string{"ID", "Title", "Technologies", "Featured"}, rows
}

func achievementTable(items []portfolio.Achievement) ([]string, [][]string) {
	rows := make([][]string, len(items))
	for i, a := range items {
		rows[i] = []string{a.ID, a.Title, truncate(a.Description, 50)}
	}
	return []string{"ID", "Title", "Description"}, rows
}

func publicationTable(items []portfolio.Publication) ([]string, [][]string) {
	rows := make([][]string, len(items))
	for i, p := range items {
		doi := ""
		if p.DOI != nil {
			doi = *p.DOI
		}
		rows[i] = []string{p.ID, truncate(p.Title, 40), p.Publication, p.Year, doi}
	}
	return []string{"ID", "Title", "Venue", "Year", "DOI"}, rows
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
