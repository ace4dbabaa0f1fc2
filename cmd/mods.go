package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"curseforge-client/curseforge"
	"curseforge-client/ui"
)

var sortFields = map[string]curseforge.ModsSearchSortField{
	"featured":    curseforge.SortFeatured,
	"popularity":  curseforge.SortPopularity,
	"updated":     curseforge.SortLastUpdated,
	"name":        curseforge.SortName,
	"author":      curseforge.SortAuthor,
	"downloads":   curseforge.SortTotalDownloads,
	"category":    curseforge.SortCategory,
	"gameversion": curseforge.SortGameVersion,
}

var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Search mods of a game",
	Example: `  curseforge-client search jei --version 1.18.2 --loader forge
  curseforge-client search --slug jei --class 6`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := searchOptions(cmd, args)
		if err != nil {
			return err
		}
		a, err := bootstrap()
		if err != nil {
			return err
		}
		gameID, _ := cmd.Flags().GetInt("game")
		if gameID == 0 {
			gameID = a.cfg.GameID
		}

		page, err := a.client.SearchMods(cmd.Context(), gameID, opts)
		if err != nil {
			return err
		}
		return render(cmd, page, func(w io.Writer) {
			for _, m := range page.Data {
				printModLine(w, m)
			}
			printPagination(w, page.Pagination)
		})
	},
}

func searchOptions(cmd *cobra.Command, args []string) (*curseforge.SearchModsOptions, error) {
	opts := &curseforge.SearchModsOptions{}
	if len(args) == 1 {
		opts.SearchFilter = args[0]
	}
	opts.Slug, _ = cmd.Flags().GetString("slug")
	opts.ClassID, _ = cmd.Flags().GetInt("class")
	opts.CategoryID, _ = cmd.Flags().GetInt("category")
	opts.GameVersion, _ = cmd.Flags().GetString("version")
	opts.Index, _ = cmd.Flags().GetInt("index")
	opts.PageSize, _ = cmd.Flags().GetInt("page-size")

	loader, _ := cmd.Flags().GetString("loader")
	var err error
	if opts.ModLoaderType, err = loaderFlag(loader); err != nil {
		return nil, err
	}

	if sortName, _ := cmd.Flags().GetString("sort"); sortName != "" {
		field, ok := sortFields[strings.ToLower(sortName)]
		if !ok {
			return nil, fmt.Errorf("unknown sort field %q", sortName)
		}
		opts.SortField = field
	}
	switch order, _ := cmd.Flags().GetString("order"); strings.ToLower(order) {
	case "":
	case "asc":
		opts.SortOrder = curseforge.Ascending
	case "desc":
		opts.SortOrder = curseforge.Descending
	default:
		return nil, fmt.Errorf("sort order must be asc or desc, got %q", order)
	}
	return opts, nil
}

var modCmd = &cobra.Command{
	Use:   "mod <modId>",
	Short: "Show a single mod",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modID, err := parseID(args[0])
		if err != nil {
			return err
		}
		a, err := bootstrap()
		if err != nil {
			return err
		}

		m, err := a.client.GetMod(cmd.Context(), modID)
		if err != nil {
			return err
		}
		return render(cmd, m, func(w io.Writer) {
			printModLine(w, m)
			fmt.Fprintf(w, "  %s\n", m.Summary)
			fmt.Fprintf(w, "  downloads: %d  updated: %s\n", m.DownloadCount, m.DateModified.Format("2006-01-02"))
			for _, f := range m.LatestFiles {
				printFileLine(w, f)
			}
		})
	},
}

var modsCmd = &cobra.Command{
	Use:   "mods <modId>...",
	Short: "Show several mods in one request",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		a, err := bootstrap()
		if err != nil {
			return err
		}

		mods, err := a.client.GetMods(cmd.Context(), ids)
		if err != nil {
			return err
		}
		return render(cmd, mods, func(w io.Writer) {
			for _, m := range mods {
				printModLine(w, m)
			}
		})
	},
}

var featuredCmd = &cobra.Command{
	Use:   "featured",
	Short: "Show featured, popular and recently updated mods",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		gameID, _ := cmd.Flags().GetInt("game")
		if gameID == 0 {
			gameID = a.cfg.GameID
		}
		excluded, _ := cmd.Flags().GetIntSlice("exclude")
		versionType, _ := cmd.Flags().GetInt("version-type")

		featured, err := a.client.GetFeaturedMods(cmd.Context(), curseforge.FeaturedModsRequest{
			GameID:            gameID,
			ExcludedModIDs:    excluded,
			GameVersionTypeID: versionType,
		})
		if err != nil {
			return err
		}
		return render(cmd, featured, func(w io.Writer) {
			sections := []struct {
				name string
				mods []*curseforge.Mod
			}{
				{"Featured", featured.Featured},
				{"Popular", featured.Popular},
				{"Recently updated", featured.RecentlyUpdated},
			}
			for _, s := range sections {
				fmt.Fprintln(w, ui.Title.Render(s.name))
				for _, m := range s.mods {
					printModLine(w, m)
				}
			}
		})
	},
}

var descriptionCmd = &cobra.Command{
	Use:   "description <modId>",
	Short: "Print the HTML description of a mod",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modID, err := parseID(args[0])
		if err != nil {
			return err
		}
		a, err := bootstrap()
		if err != nil {
			return err
		}

		m, err := a.client.GetMod(cmd.Context(), modID)
		if err != nil {
			return err
		}
		description, err := m.GetDescription(cmd.Context())
		if err != nil {
			return err
		}
		return render(cmd, description, func(w io.Writer) {
			fmt.Fprintln(w, description)
		})
	},
}

func init() {
	rootCmd.AddCommand(searchCmd, modCmd, modsCmd, featuredCmd, descriptionCmd)

	addSearchFlags(searchCmd)

	featuredCmd.Flags().Int("game", 0, "game id (defaults to GAME_ID)")
	featuredCmd.Flags().IntSlice("exclude", nil, "mod ids to exclude")
	featuredCmd.Flags().Int("version-type", 0, "game version type id")
}

// addSearchFlags registers the flags read by searchOptions.
func addSearchFlags(c *cobra.Command) {
	c.Flags().Int("game", 0, "game id (defaults to GAME_ID)")
	c.Flags().String("slug", "", "exact project slug")
	c.Flags().Int("class", 0, "class id, e.g. 6 for Minecraft mods")
	c.Flags().Int("category", 0, "category id")
	c.Flags().String("version", "", "game version, e.g. 1.18.2")
	c.Flags().String("loader", "", "mod loader: forge, fabric, quilt, neoforge, ...")
	c.Flags().String("sort", "", "sort field: featured, popularity, updated, name, author, downloads, category, gameversion")
	c.Flags().String("order", "", "sort order: asc or desc")
	c.Flags().Int("index", 0, "index of the first result")
	c.Flags().Int("page-size", 0, "results per page")
}

func printModLine(w io.Writer, m *curseforge.Mod) {
	fmt.Fprintf(w, "%-8d %s %s\n", m.ID, ui.Title.Render(truncate(m.Name, 40)), ui.Subtle.Render(m.Slug))
}

func printFileLine(w io.Writer, f *curseforge.File) {
	fmt.Fprintf(w, "  %-9d %s %s %s\n",
		f.ID,
		ui.ReleaseBadge(f.ReleaseType),
		f.FileName,
		ui.Subtle.Render(f.FileDate.Format("2006-01-02")),
	)
}
