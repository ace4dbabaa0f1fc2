package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"curseforge-client/curseforge"
	"curseforge-client/ui"
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List the games available to the API key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		index, _ := cmd.Flags().GetInt("index")
		pageSize, _ := cmd.Flags().GetInt("page-size")

		page, err := a.client.GetGames(cmd.Context(), &curseforge.GetGamesOptions{Index: index, PageSize: pageSize})
		if err != nil {
			return err
		}
		return render(cmd, page, func(w io.Writer) {
			for _, g := range page.Data {
				fmt.Fprintf(w, "%-8d %s %s\n", g.ID, ui.Title.Render(g.Name), ui.Subtle.Render(g.Slug))
			}
			printPagination(w, page.Pagination)
		})
	},
}

var gameCmd = &cobra.Command{
	Use:   "game <gameId>",
	Short: "Show a single game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gameID, err := parseID(args[0])
		if err != nil {
			return err
		}
		a, err := bootstrap()
		if err != nil {
			return err
		}

		g, err := a.client.GetGame(cmd.Context(), gameID)
		if err != nil {
			return err
		}
		return render(cmd, g, func(w io.Writer) {
			fmt.Fprintf(w, "%s (%d)\n", ui.Title.Render(g.Name), g.ID)
			fmt.Fprintf(w, "  slug:     %s\n", g.Slug)
			fmt.Fprintf(w, "  modified: %s\n", g.DateModified.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(w, "  icon:     %s\n", g.Assets.IconURL)
		})
	},
}

var versionsCmd = &cobra.Command{
	Use:   "versions <gameId>",
	Short: "List a game's versions grouped by version type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gameID, err := parseID(args[0])
		if err != nil {
			return err
		}
		a, err := bootstrap()
		if err != nil {
			return err
		}

		groups, err := a.client.GetVersions(cmd.Context(), gameID)
		if err != nil {
			return err
		}
		return render(cmd, groups, func(w io.Writer) {
			for _, g := range groups {
				fmt.Fprintf(w, "%s %v\n", ui.Title.Render(fmt.Sprintf("type %d:", g.Type)), g.Versions)
			}
		})
	},
}

var versionTypesCmd = &cobra.Command{
	Use:   "version-types <gameId>",
	Short: "List a game's version types",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gameID, err := parseID(args[0])
		if err != nil {
			return err
		}
		a, err := bootstrap()
		if err != nil {
			return err
		}

		types, err := a.client.GetVersionTypes(cmd.Context(), gameID)
		if err != nil {
			return err
		}
		return render(cmd, types, func(w io.Writer) {
			for _, t := range types {
				fmt.Fprintf(w, "%-8d %s %s\n", t.ID, t.Name, ui.Subtle.Render(t.Slug))
			}
		})
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories <gameId>",
	Short: "List the classes and categories of a game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gameID, err := parseID(args[0])
		if err != nil {
			return err
		}
		a, err := bootstrap()
		if err != nil {
			return err
		}
		classID, _ := cmd.Flags().GetInt("class")
		classesOnly, _ := cmd.Flags().GetBool("classes-only")

		categories, err := a.client.GetCategories(cmd.Context(), gameID, &curseforge.GetCategoriesOptions{
			ClassID:     classID,
			ClassesOnly: classesOnly,
		})
		if err != nil {
			return err
		}
		return render(cmd, categories, func(w io.Writer) {
			for _, c := range categories {
				name := c.Name
				if c.IsClass {
					name = ui.Title.Render(name)
				}
				fmt.Fprintf(w, "%-8d %s %s\n", c.ID, name, ui.Subtle.Render(c.Slug))
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(gamesCmd, gameCmd, versionsCmd, versionTypesCmd, categoriesCmd)

	gamesCmd.Flags().Int("index", 0, "index of the first game")
	gamesCmd.Flags().Int("page-size", 0, "number of games per page")

	categoriesCmd.Flags().Int("class", 0, "only list categories under this class id")
	categoriesCmd.Flags().Bool("classes-only", false, "only list classes")
}

// render prints v as JSON when --json is set and calls text otherwise.
func render(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), v)
	}
	text(cmd.OutOrStdout())
	return nil
}

func printPagination(w io.Writer, p curseforge.Pagination) {
	fmt.Fprintln(w, ui.Subtle.Render(fmt.Sprintf("showing %d-%d of %d", p.Index+1, p.Index+p.ResultCount, p.TotalCount)))
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
