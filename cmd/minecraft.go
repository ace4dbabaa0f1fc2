package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"curseforge-client/curseforge"
	"curseforge-client/ui"
)

var mcVersionsCmd = &cobra.Command{
	Use:   "mc-versions",
	Short: "List Minecraft versions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		desc, _ := cmd.Flags().GetBool("desc")

		versions, err := a.client.GetMinecraftVersions(cmd.Context(), &curseforge.GetMinecraftVersionsOptions{SortDescending: desc})
		if err != nil {
			return err
		}
		return render(cmd, versions, func(w io.Writer) {
			for _, v := range versions {
				fmt.Fprintf(w, "%-12s %s\n", v.VersionString, ui.Subtle.Render(v.DateModified.Format("2006-01-02")))
			}
		})
	},
}

var mcVersionCmd = &cobra.Command{
	Use:   "mc-version <version>",
	Short: "Show one Minecraft version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}

		v, err := a.client.GetSpecificMinecraftVersion(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return render(cmd, v, func(w io.Writer) {
			fmt.Fprintln(w, ui.Title.Render(v.VersionString))
			fmt.Fprintf(w, "  jar:  %s\n", v.JarDownloadURL)
			fmt.Fprintf(w, "  json: %s\n", v.JSONDownloadURL)
		})
	},
}

var modLoadersCmd = &cobra.Command{
	Use:   "modloaders",
	Short: "List Minecraft mod loaders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		version, _ := cmd.Flags().GetString("version")
		all, _ := cmd.Flags().GetBool("all")

		loaders, err := a.client.GetMinecraftModLoaders(cmd.Context(), &curseforge.GetMinecraftModLoadersOptions{
			Version:    version,
			IncludeAll: all,
		})
		if err != nil {
			return err
		}
		return render(cmd, loaders, func(w io.Writer) {
			for _, l := range loaders {
				marker := ""
				if l.Recommended {
					marker = ui.Success.Render(" recommended")
				} else if l.Latest {
					marker = ui.Warning.Render(" latest")
				}
				fmt.Fprintf(w, "%-32s %-10s %s%s\n", l.Name, l.GameVersion, l.Type, marker)
			}
		})
	},
}

var modLoaderCmd = &cobra.Command{
	Use:   "modloader <name>",
	Short: "Show one mod loader, e.g. forge-40.1.0",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}

		l, err := a.client.GetSpecificMinecraftModLoader(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return render(cmd, l, func(w io.Writer) {
			fmt.Fprintf(w, "%s (%s)\n", ui.Title.Render(l.Name), l.Type)
			fmt.Fprintf(w, "  minecraft: %s\n", l.MinecraftVersion)
			fmt.Fprintf(w, "  maven:     %s\n", l.MavenVersionString)
			fmt.Fprintf(w, "  download:  %s\n", l.DownloadURL)
		})
	},
}

func init() {
	rootCmd.AddCommand(mcVersionsCmd, mcVersionCmd, modLoadersCmd, modLoaderCmd)

	mcVersionsCmd.Flags().Bool("desc", false, "newest first")

	modLoadersCmd.Flags().String("version", "", "only loaders for this Minecraft version")
	modLoadersCmd.Flags().Bool("all", false, "include all loader versions")
}
