package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/portfolio/pkg/api"
	"github.com/matzehuels/portfolio/pkg/portfolio"
)

// updateCommand creates the update command group.
func (c *CLI) updateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Edit the personal information or about section",
	}

	cmd.AddCommand(c.updatePersonalCommand())
	cmd.AddCommand(c.updateAboutCommand())

	return cmd
}

// stringFlag returns a pointer to the flag value when the flag was given.
func stringFlag(flags *pflag.FlagSet, name string) *string {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetString(name)
	return &v
}

func (c *CLI) updatePersonalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "personal",
		Short:   "Update name, tagline, email or profile links",
		Example: `  portfolio update personal --name "Ada Lovelace" --email ada@example.com`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			u := portfolio.PersonalInfoUpdate{
				Name:     stringFlag(f, "name"),
				Tagline:  stringFlag(f, "tagline"),
				Email:    stringFlag(f, "email"),
				GitHub:   stringFlag(f, "github"),
				LinkedIn: stringFlag(f, "linkedin"),
				Kaggle:   stringFlag(f, "kaggle"),
			}
			if u.Empty() {
				return fmt.Errorf("nothing to update: set at least one flag")
			}

			ctx := cmd.Context()
			l := c.newLoader(ctx, c.newClient(), false)
			if err := l.UpdatePersonalInfo(ctx, u); err != nil {
				return fmt.Errorf("update personal information: %s", api.Message(err))
			}
			printSuccess("Personal information updated")
			for k, v := range u.Fields() {
				printDetail("%s: %v", k, v)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.String("name", "", "display name")
	f.String("tagline", "", "one-line tagline")
	f.String("email", "", "contact email")
	f.String("github", "", "GitHub profile URL")
	f.String("linkedin", "", "LinkedIn profile URL")
	f.String("kaggle", "", "Kaggle profile URL")

	return cmd
}

func (c *CLI) updateAboutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "about",
		Short:   "Update the about section",
		Example: `  portfolio update about --description "I build data pipelines." --degree "MSc Computer Science"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f := cmd.Flags()
			l := c.newLoader(ctx, c.newClient(), false)

			u := portfolio.AboutSectionUpdate{
				Title:       stringFlag(f, "title"),
				Description: stringFlag(f, "description"),
			}
			// Education is replaced as a whole, so unchanged fields are
			// filled from the current snapshot.
			if f.Changed("institution") || f.Changed("degree") || f.Changed("duration") {
				var edu portfolio.Education
				if p := l.Profile(); p != nil {
					edu = p.About.Education
				} else if snap, err := l.FetchPortfolio(ctx, false); err == nil {
					edu = snap.Portfolio.About.Education
				}
				if v := stringFlag(f, "institution"); v != nil {
					edu.Institution = *v
				}
				if v := stringFlag(f, "degree"); v != nil {
					edu.Degree = *v
				}
				if v := stringFlag(f, "duration"); v != nil {
					edu.Duration = *v
				}
				u.Education = &edu
			}
			if u.Empty() {
				return fmt.Errorf("nothing to update: set at least one flag")
			}

			if err := l.UpdateAboutSection(ctx, u); err != nil {
				return fmt.Errorf("update about section: %s", api.Message(err))
			}
			printSuccess("About section updated")
			return nil
		},
	}

	f := cmd.Flags()
	f.String("title", "", "section title")
	f.String("description", "", "biography text")
	f.String("institution", "", "education institution")
	f.String("degree", "", "education degree")
	f.String("duration", "", "education period, e.g. \"2018 - 2022\"")

	return cmd
}
