package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"curseforge-client/config"
	"curseforge-client/curseforge"
	"curseforge-client/db"
	"curseforge-client/fingerprint"
	"curseforge-client/logger"
	"curseforge-client/ui"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Identify installed mods and record them in the database",
	Long: `Fingerprints every .jar and .zip under mods/, resourcepacks/ and
shaderpacks/ that is not yet recorded, and matches them against CurseForge in
a single request. Recognized files are stored for update and rollback.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrapInstance()
		if err != nil {
			return err
		}
		res, err := importInstalledMods(cmd.Context(), a)
		if err != nil {
			return err
		}
		return render(cmd, res, func(w io.Writer) {
			fmt.Fprintf(w, "Scan %s: %d files checked, %s, %s\n",
				ui.Subtle.Render(res.ScanID),
				res.Checked,
				ui.Success.Render(fmt.Sprintf("%d recognized", len(res.Recognized))),
				ui.Warning.Render(fmt.Sprintf("%d unknown", len(res.Unknown))),
			)
			for _, name := range res.Unknown {
				fmt.Fprintf(w, "  unknown: %s\n", name)
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

// scanResult summarizes one scan.
type scanResult struct {
	ScanID     string   `json:"scanId"`
	Checked    int      `json:"checked"`
	Recognized []string `json:"recognized"`
	Unknown    []string `json:"unknown"`
}

// localFile is an unrecorded file found during a scan.
type localFile struct {
	path        string
	fingerprint int64
}

// importInstalledMods scans the content folders and records files CurseForge recognizes.
func importInstalledMods(ctx context.Context, a *app) (*scanResult, error) {
	res := &scanResult{ScanID: uuid.NewString(), Recognized: []string{}, Unknown: []string{}}
	log := logger.Log.With(zap.String("scan_id", res.ScanID))
	log.Info("Scanning for existing mods...")

	files, err := collectUnrecorded(a, log)
	if err != nil {
		return nil, err
	}
	res.Checked = len(files)
	if len(files) == 0 {
		return res, nil
	}

	byPrint := make(map[int64]localFile, len(files))
	prints := make([]int64, 0, len(files))
	for _, f := range files {
		byPrint[f.fingerprint] = f
		prints = append(prints, f.fingerprint)
	}

	matches, err := a.client.GetFingerprintsMatches(ctx, prints)
	if err != nil {
		return nil, fmt.Errorf("failed to match fingerprints: %w", err)
	}

	names := modNames(ctx, a, matches.ExactMatches, log)
	matched := make(map[int64]bool)
	for _, m := range matches.ExactMatches {
		if m.File == nil {
			continue
		}
		local, ok := byPrint[m.File.FileFingerprint]
		if !ok {
			continue
		}
		matched[m.File.FileFingerprint] = true

		mod := &db.InstalledMod{
			ModID:       m.ID,
			FileID:      m.File.ID,
			Name:        names[m.ID].Name,
			Slug:        names[m.ID].Slug,
			FileName:    filepath.Base(local.path),
			DisplayName: m.File.DisplayName,
			ReleaseType: int(m.File.ReleaseType),
			Fingerprint: local.fingerprint,
			InstallPath: local.path,
			FileDate:    m.File.FileDate,
			ScanID:      res.ScanID,
		}
		if mod.Name == "" {
			mod.Name = m.File.DisplayName
		}
		if err := db.SaveInstalled(a.db, mod); err != nil {
			log.Errorw("Failed to save imported mod to DB", zap.String("file", mod.FileName), zap.Error(err))
			continue
		}
		log.Infow("Imported existing mod", zap.String("name", mod.Name), zap.Int("file_id", mod.FileID))
		res.Recognized = append(res.Recognized, mod.FileName)
	}

	for _, f := range files {
		if !matched[f.fingerprint] {
			res.Unknown = append(res.Unknown, filepath.Base(f.path))
		}
	}
	return res, nil
}

// collectUnrecorded fingerprints every candidate file that the database does not know yet.
func collectUnrecorded(a *app, log *zap.SugaredLogger) ([]localFile, error) {
	var files []localFile
	for _, sub := range config.ContentDirs {
		dir := filepath.Join(a.cfg.MinecraftDir, sub)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}

		err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if d.Name() == "versions" {
					return filepath.SkipDir
				}
				return nil
			}
			if !isContentFile(d.Name()) {
				return nil
			}

			var count int64
			a.db.Model(&db.InstalledMod{}).Where("file_name = ?", d.Name()).Count(&count)
			if count > 0 {
				return nil
			}

			fp, err := fingerprint.File(path)
			if err != nil {
				log.Warnw("Failed to fingerprint file", zap.String("file", d.Name()), zap.Error(err))
				return nil
			}
			files = append(files, localFile{path: path, fingerprint: int64(fp)})
			return nil
		})
		if err != nil {
			log.Errorw("Error scanning directory", zap.String("dir", dir), zap.Error(err))
		}
	}
	return files, nil
}

func isContentFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".jar" || ext == ".zip"
}

// modNames fetches names and slugs for matched mods in one request. Failures
// only cost the names.
func modNames(ctx context.Context, a *app, matches []curseforge.FingerprintMatch, log *zap.SugaredLogger) map[int]*curseforge.Mod {
	out := make(map[int]*curseforge.Mod)
	var ids []int
	for _, m := range matches {
		if _, seen := out[m.ID]; !seen {
			out[m.ID] = &curseforge.Mod{}
			ids = append(ids, m.ID)
		}
	}
	if len(ids) == 0 {
		return out
	}

	mods, err := a.client.GetMods(ctx, ids)
	if err != nil {
		log.Warnw("Failed to get mod details", zap.Error(err))
		return out
	}
	for _, m := range mods {
		out[m.ID] = m
	}
	return out
}
