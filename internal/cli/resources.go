package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/portfolio/pkg/api"
	"github.com/matzehuels/portfolio/pkg/portfolio"
)

// resourceSpec binds a collection endpoint to the CLI. Bodies are decoded
// from JSON into the create and update types of the collection.
type resourceSpec struct {
	name     string
	singular string
	example  string

	list   func(context.Context, *api.Client) ([]string, [][]string, any, error)
	create func(context.Context, *api.Client, []byte) (string, any, error)
	update func(context.Context, *api.Client, string, []byte) (portfolio.Message, error)
	remove func(context.Context, *api.Client, string) (portfolio.Message, error)
}

var resources = []resourceSpec{
	newResource("skills", "skill category", `{"title": "Languages", "items": ["Go", "SQL"]}`,
		(*api.Client).FetchSkills, (*api.Client).CreateSkill, (*api.Client).UpdateSkill, (*api.Client).DeleteSkill, skillTable),
	newResource("experience", "experience", `{"title": "Engineer", "company": "Acme", "duration": "2021 - Present", "current": true}`,
		(*api.Client).FetchExperiences, (*api.Client).CreateExperience, (*api.Client).UpdateExperience, (*api.Client).DeleteExperience, experienceTable),
	newResource("projects", "project", `{"title": "portfolio", "technologies": ["Go"], "featured": true}`,
		(*api.Client).FetchProjects, (*api.Client).CreateProject, (*api.Client).UpdateProject, (*api.Client).DeleteProject, projectTable),
	newResource("achievements", "achievement", `{"title": "Kaggle Expert", "description": "Top 1% in two competitions"}`,
		(*api.Client).FetchAchievements, (*api.Client).CreateAchievement, (*api.Client).UpdateAchievement, (*api.Client).DeleteAchievement, achievementTable),
	newResource("publications", "publication", `{"title": "On Caching", "authors": "A. Lovelace", "publication": "JCS", "year": "2024"}`,
		(*api.Client).FetchPublications, (*api.Client).CreatePublication, (*api.Client).UpdatePublication, (*api.Client).DeletePublication, publicationTable),
}

func newResource[T portfolio.Item, C, U any](
	name, singular, example string,
	list func(*api.Client, context.Context) ([]T, error),
	create func(*api.Client, context.Context, C) (T, error),
	update func(*api.Client, context.Context, string, U) (portfolio.Message, error),
	remove func(*api.Client, context.Context, string) (portfolio.Message, error),
	table func([]T) ([]string, [][]string),
) resourceSpec {
	return resourceSpec{
		name:     name,
		singular: singular,
		example:  example,
		list: func(ctx context.Context, c *api.Client) ([]string, [][]string, any, error) {
			items, err := list(c, ctx)
			if err != nil {
				return nil, nil, nil, err
			}
			headers, rows := table(items)
			return headers, rows, items, nil
		},
		create: func(ctx context.Context, c *api.Client, body []byte) (string, any, error) {
			var in C
			if err := json.Unmarshal(body, &in); err != nil {
				return "", nil, fmt.Errorf("decode %s: %w", singular, err)
			}
			item, err := create(c, ctx, in)
			if err != nil {
				return "", nil, err
			}
			return item.ItemID(), item, nil
		},
		update: func(ctx context.Context, c *api.Client, id string, body []byte) (portfolio.Message, error) {
			var u U
			if err := json.Unmarshal(body, &u); err != nil {
				return portfolio.Message{}, fmt.Errorf("decode %s update: %w", singular, err)
			}
			return update(c, ctx, id, u)
		},
		remove: func(ctx context.Context, c *api.Client, id string) (portfolio.Message, error) {
			return remove(c, ctx, id)
		},
	}
}

// resourceCommand creates the list/create/update/delete group for r.
func (c *CLI) resourceCommand(r resourceSpec) *cobra.Command {
	cmd := &cobra.Command{
		Use:   r.name,
		Short: fmt.Sprintf("Manage %s entries", r.singular),
	}

	cmd.AddCommand(c.resourceListCommand(r))
	cmd.AddCommand(c.resourceCreateCommand(r))
	cmd.AddCommand(c.resourceUpdateCommand(r))
	cmd.AddCommand(c.resourceDeleteCommand(r))

	return cmd
}

func (c *CLI) resourceListCommand(r resourceSpec) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s entries", r.singular),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			headers, rows, items, err := r.list(cmd.Context(), c.newClient())
			if err != nil {
				return fmt.Errorf("list %s: %s", r.name, api.Message(err))
			}
			if asJSON {
				return writeJSON(os.Stdout, items)
			}
			if len(rows) == 0 {
				printInfo("No %s entries", r.singular)
				return nil
			}
			fmt.Println(renderTable(headers, rows))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (c *CLI) resourceCreateCommand(r resourceSpec) *cobra.Command {
	var data, file string
	cmd := &cobra.Command{
		Use:     "create",
		Short:   fmt.Sprintf("Create a %s from JSON", r.singular),
		Example: fmt.Sprintf("  portfolio %s create --data '%s'", r.name, r.example),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(cmd.InOrStdin(), data, file)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			client := c.newClient()
			id, _, err := r.create(ctx, client, body)
			if err != nil {
				return fmt.Errorf("create %s: %s", r.singular, api.Message(err))
			}
			c.forgetSnapshot(ctx, client)
			printSuccess("Created %s %s", r.singular, id)
			return nil
		},
	}
	addBodyFlags(cmd, &data, &file)
	return cmd
}

func (c *CLI) resourceUpdateCommand(r resourceSpec) *cobra.Command {
	var data, file string
	cmd := &cobra.Command{
		Use:     "update <id>",
		Short:   fmt.Sprintf("Update fields of a %s", r.singular),
		Example: fmt.Sprintf("  portfolio %s update 3f2a... --data '{\"title\": \"New title\"}'", r.name),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(cmd.InOrStdin(), data, file)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			client := c.newClient()
			msg, err := r.update(ctx, client, args[0], body)
			if err != nil {
				return fmt.Errorf("update %s: %s", r.singular, api.Message(err))
			}
			c.forgetSnapshot(ctx, client)
			printSuccess("%s", msg.Message)
			return nil
		},
	}
	addBodyFlags(cmd, &data, &file)
	return cmd
}

func (c *CLI) resourceDeleteCommand(r resourceSpec) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: fmt.Sprintf("Delete a %s", r.singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := c.newClient()
			msg, err := r.remove(ctx, client, args[0])
			if err != nil {
				return fmt.Errorf("delete %s: %s", r.singular, api.Message(err))
			}
			c.forgetSnapshot(ctx, client)
			printSuccess("%s", msg.Message)
			return nil
		},
	}
}

// forgetSnapshot drops the cached snapshot after a collection changed.
func (c *CLI) forgetSnapshot(ctx context.Context, client *api.Client) {
	if err := c.newLoader(ctx, client, false).Forget(ctx); err != nil {
		c.Logger.Debug("forget snapshot", "error", err)
	}
}

func addBodyFlags(cmd *cobra.Command, data, file *string) {
	cmd.Flags().StringVarP(data, "data", "d", "", "JSON body")
	cmd.Flags().StringVarP(file, "file", "f", "", "read the JSON body from a file (- for stdin)")
	cmd.MarkFlagsMutuallyExclusive("data", "file")
	cmd.MarkFlagsOneRequired("data", "file")
}

func readBody(stdin io.Reader, data, file string) ([]byte, error) {
	switch {
	case data != "":
		return []byte(data), nil
	case file == "-":
		return io.ReadAll(stdin)
	case file != "":
		return os.ReadFile(file)
	}
	return nil, fmt.Errorf("a JSON body is required (--data or --file)")
}
