package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"curseforge-client/curseforge"
	"curseforge-client/ui"
)

var filesCmd = &cobra.Command{
	Use:   "files <modId>",
	Short: "List the files of a mod",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modID, err := parseID(args[0])
		if err != nil {
			return err
		}
		opts := &curseforge.GetModFilesOptions{}
		opts.GameVersion, _ = cmd.Flags().GetString("version")
		opts.Index, _ = cmd.Flags().GetInt("index")
		opts.PageSize, _ = cmd.Flags().GetInt("page-size")
		loader, _ := cmd.Flags().GetString("loader")
		if opts.ModLoaderType, err = loaderFlag(loader); err != nil {
			return err
		}

		a, err := bootstrap()
		if err != nil {
			return err
		}
		page, err := a.client.GetModFiles(cmd.Context(), modID, opts)
		if err != nil {
			return err
		}
		return render(cmd, page, func(w io.Writer) {
			for _, f := range page.Data {
				printFileLine(w, f)
			}
			printPagination(w, page.Pagination)
		})
	},
}

var fileCmd = &cobra.Command{
	Use:   "file <modId> <fileId>",
	Short: "Show a single file, optionally with its changelog or download URL",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		a, err := bootstrap()
		if err != nil {
			return err
		}

		f, err := a.client.GetModFile(cmd.Context(), ids[0], ids[1])
		if err != nil {
			return err
		}

		if showChangelog, _ := cmd.Flags().GetBool("changelog"); showChangelog {
			changelog, err := f.GetChangelog(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, changelog, func(w io.Writer) { fmt.Fprintln(w, changelog) })
		}
		if showURL, _ := cmd.Flags().GetBool("url"); showURL {
			u, err := f.GetDownloadURL(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, u, func(w io.Writer) { fmt.Fprintln(w, u) })
		}

		return render(cmd, f, func(w io.Writer) {
			fmt.Fprintf(w, "%s %s\n", ui.Title.Render(f.DisplayName), ui.ReleaseBadge(f.ReleaseType))
			fmt.Fprintf(w, "  file:        %s (%d bytes)\n", f.FileName, f.FileLength)
			fmt.Fprintf(w, "  date:        %s\n", f.FileDate.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(w, "  versions:    %v\n", f.GameVersions)
			fmt.Fprintf(w, "  fingerprint: %d\n", f.FileFingerprint)
			fmt.Fprintf(w, "  sha1:        %s\n", f.Hash(curseforge.Sha1))
			if f.DownloadURL != "" {
				fmt.Fprintf(w, "  download:    %s\n", f.DownloadURL)
			}
		})
	},
}

var getFilesCmd = &cobra.Command{
	Use:   "get-files <fileId>...",
	Short: "Show several files in one request",
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

		files, err := a.client.GetFiles(cmd.Context(), ids)
		if err != nil {
			return err
		}
		return render(cmd, files, func(w io.Writer) {
			for _, f := range files {
				printFileLine(w, f)
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(filesCmd, fileCmd, getFilesCmd)

	filesCmd.Flags().String("version", "", "game version, e.g. 1.18.2")
	filesCmd.Flags().String("loader", "", "mod loader")
	filesCmd.Flags().Int("index", 0, "index of the first file")
	filesCmd.Flags().Int("page-size", 0, "files per page")

	fileCmd.Flags().Bool("changelog", false, "print the changelog instead")
	fileCmd.Flags().Bool("url", false, "print the download URL instead")
}
