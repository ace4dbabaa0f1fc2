package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"curseforge-client/curseforge"
	"curseforge-client/fingerprint"
	"curseforge-client/ui"
)

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint <path>...",
	Short: "Identify local files by their CurseForge fingerprint",
	Long: `Computes the CurseForge fingerprint of each file and looks them up.
Directories contribute every .jar they contain. With --fuzzy each directory is
sent as one folder fingerprint set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fuzzy, _ := cmd.Flags().GetBool("fuzzy")
		a, err := bootstrap()
		if err != nil {
			return err
		}

		if fuzzy {
			folders, err := folderFingerprints(args)
			if err != nil {
				return err
			}
			matches, err := a.client.GetFingerprintsFuzzyMatches(cmd.Context(), curseforge.FuzzyMatchesRequest{
				GameID:       a.cfg.GameID,
				Fingerprints: folders,
			})
			if err != nil {
				return err
			}
			return render(cmd, matches, func(w io.Writer) {
				for _, m := range matches {
					fmt.Fprintf(w, "mod %d\n", m.ID)
					if m.File != nil {
						printFileLine(w, m.File)
					}
				}
			})
		}

		byPrint, prints, err := fileFingerprints(args)
		if err != nil {
			return err
		}
		res, err := a.client.GetFingerprintsMatches(cmd.Context(), prints)
		if err != nil {
			return err
		}
		return render(cmd, res, func(w io.Writer) {
			for _, m := range res.ExactMatches {
				if m.File == nil {
					continue
				}
				name := byPrint[m.File.FileFingerprint]
				fmt.Fprintf(w, "%s %s mod %d\n", ui.Success.Render("match"), name, m.ID)
				printFileLine(w, m.File)
			}
			for _, fp := range res.UnmatchedFingerprints {
				fmt.Fprintf(w, "%s %s\n", ui.Failure.Render("unknown"), byPrint[fp])
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(fingerprintCmd)
	fingerprintCmd.Flags().Bool("fuzzy", false, "fuzzy match per directory")
}

// fileFingerprints fingerprints files and the .jar files of directories. It
// returns the fingerprints and a reverse index to file paths.
func fileFingerprints(paths []string) (map[int64]string, []int64, error) {
	byPrint := make(map[int64]string)
	var prints []int64
	add := func(path string, fp uint32) {
		if _, seen := byPrint[int64(fp)]; !seen {
			prints = append(prints, int64(fp))
		}
		byPrint[int64(fp)] = path
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, nil, err
		}
		if !info.IsDir() {
			fp, err := fingerprint.File(path)
			if err != nil {
				return nil, nil, err
			}
			add(path, fp)
			continue
		}
		dirPrints, names, err := fingerprint.Dir(path, "")
		if err != nil {
			return nil, nil, err
		}
		for _, name := range names {
			add(filepath.Join(path, name), dirPrints[name])
		}
	}
	return byPrint, prints, nil
}

// folderFingerprints builds one fuzzy-match folder per directory argument.
func folderFingerprints(dirs []string) ([]curseforge.FolderFingerprint, error) {
	folders := make([]curseforge.FolderFingerprint, 0, len(dirs))
	for _, dir := range dirs {
		prints, names, err := fingerprint.Dir(dir, "")
		if err != nil {
			return nil, err
		}
		folder := curseforge.FolderFingerprint{Foldername: filepath.Base(dir)}
		for _, name := range names {
			folder.Fingerprints = append(folder.Fingerprints, int64(prints[name]))
		}
		folders = append(folders, folder)
	}
	return folders, nil
}
