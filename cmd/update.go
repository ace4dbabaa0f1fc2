package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"curseforge-client/curseforge"
	"curseforge-client/db"
	"curseforge-client/logger"
	"curseforge-client/ui"
)

// maxConcurrentChecks bounds the number of mods checked and downloaded at once.
const maxConcurrentChecks = 8

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check recorded mods for newer files and install them",
	Long: `Checks CurseForge for newer files of every recorded mod that match
MINECRAFT_VERSION and MINECRAFT_LOADER, and downloads them into the instance.
Run 'scan' first so installed files are recorded.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger.Log.Info("Running update command...")
		force, _ := cmd.Flags().GetBool("force")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		useTUI, _ := cmd.Flags().GetBool("tui")

		a, err := bootstrapInstance()
		if err != nil {
			return err
		}
		opts := updateOptions{force: force, dryRun: dryRun}

		if useTUI && !dryRun {
			m := initialUpdateModel(cmd.Context(), a, opts)
			_, err := tea.NewProgram(m).Run()
			return err
		}

		summary, err := runUpdate(cmd.Context(), a, opts, nil)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if dryRun {
			fmt.Fprint(out, summary.Diff)
		}
		fmt.Fprintln(out, summary.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().BoolP("force", "f", false, "reinstall the newest file even when it is already installed")
	updateCmd.Flags().Bool("dry-run", false, "only print a diff of the file changes")
	updateCmd.Flags().Bool("tui", false, "show progress in an interactive view")
}

type updateOptions struct {
	force  bool
	dryRun bool
}

// updateEvent reports progress from runUpdate.
type updateEvent struct {
	Kind        string // "status", "check", "download_start", "download_success", "error", "summary"
	ModName     string
	FileName    string
	ReleaseType curseforge.FileReleaseType
	Message     string
}

// updatePlan is one mod that should move to another file.
type updatePlan struct {
	installed db.InstalledMod
	file      *curseforge.File
}

type updateSummary struct {
	Checked int
	Updated int
	Failed  int
	Diff    string // only set for dry runs
}

func (s updateSummary) String() string {
	return fmt.Sprintf("Finished. Checked %d mods, updated %d, %d failed.", s.Checked, s.Updated, s.Failed)
}

func emit(events chan<- updateEvent, ev updateEvent) {
	if events != nil {
		events <- ev
	}
}

// runUpdate checks every recorded mod and applies the updates it finds.
// events may be nil.
func runUpdate(ctx context.Context, a *app, opts updateOptions, events chan<- updateEvent) (updateSummary, error) {
	installed, err := db.ListInstalled(a.db)
	if err != nil {
		return updateSummary{}, fmt.Errorf("failed to list installed mods: %w", err)
	}
	if len(installed) == 0 {
		logger.Log.Info("No recorded mods found. Run scan first.")
		emit(events, updateEvent{Kind: "status", Message: "No recorded mods found. Run scan first."})
		return updateSummary{}, nil
	}

	logger.Log.Infof("Checking %d mods for Minecraft %s (%s)...", len(installed), a.cfg.MinecraftVersion, a.cfg.MinecraftLoader)
	emit(events, updateEvent{Kind: "status", Message: fmt.Sprintf("Checking %d mods...", len(installed))})

	plans, failed := planUpdates(ctx, a, installed, opts.force, events)
	summary := updateSummary{Checked: len(installed), Failed: int(failed)}

	if opts.dryRun {
		summary.Diff = dryRunDiff(installed, plans)
		return summary, nil
	}

	var updated, applyFailed atomic.Int64
	var dbMu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrentChecks)

	for _, plan := range plans {
		wg.Add(1)
		go func(p updatePlan) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := applyUpdate(ctx, a, p, &dbMu, events); err != nil {
				logger.Log.Errorw("Failed to update mod", zap.String("mod", p.installed.Name), zap.Error(err))
				emit(events, updateEvent{Kind: "error", ModName: p.installed.Name, Message: err.Error()})
				applyFailed.Add(1)
				return
			}
			updated.Add(1)
		}(plan)
	}
	wg.Wait()

	summary.Updated = int(updated.Load())
	summary.Failed += int(applyFailed.Load())
	logger.Log.Info(summary.String())
	emit(events, updateEvent{Kind: "summary", Message: summary.String()})
	return summary, nil
}

// planUpdates looks up the newest compatible file of each mod concurrently.
// The result is sorted by mod name.
func planUpdates(ctx context.Context, a *app, installed []db.InstalledMod, force bool, events chan<- updateEvent) ([]updatePlan, int64) {
	var (
		mu     sync.Mutex
		plans  []updatePlan
		failed atomic.Int64
		wg     sync.WaitGroup
	)
	sem := make(chan struct{}, maxConcurrentChecks)

	for _, mod := range installed {
		wg.Add(1)
		go func(m db.InstalledMod) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			log := logger.Log.With(zap.Int("mod_id", m.ModID), zap.String("mod", m.Name))
			emit(events, updateEvent{Kind: "check", ModName: m.Name})

			page, err := a.client.GetModFiles(ctx, m.ModID, &curseforge.GetModFilesOptions{
				GameVersion:   a.cfg.MinecraftVersion,
				ModLoaderType: loaderFor(a, m.InstallPath),
			})
			if err != nil {
				log.Errorw("Failed to get mod files", zap.Error(err))
				emit(events, updateEvent{Kind: "error", ModName: m.Name, Message: err.Error()})
				failed.Add(1)
				return
			}

			latest := pickLatestFile(page.Data)
			if latest == nil {
				log.Info("No compatible files found.")
				return
			}
			if latest.ID == m.FileID && !force {
				log.Infow("Mod is already up to date", zap.Int("file_id", m.FileID))
				return
			}

			log.Infow("Update available", zap.Int("current_file", m.FileID), zap.Int("new_file", latest.ID))
			mu.Lock()
			plans = append(plans, updatePlan{installed: m, file: latest})
			mu.Unlock()
		}(mod)
	}
	wg.Wait()

	sort.Slice(plans, func(i, j int) bool { return plans[i].installed.Name < plans[j].installed.Name })
	return plans, failed.Load()
}

// loaderFor applies the configured loader only to files in mods/.
func loaderFor(a *app, installPath string) curseforge.ModLoaderType {
	if filepath.Base(filepath.Dir(installPath)) == "mods" {
		return a.cfg.LoaderType()
	}
	return curseforge.AnyLoader
}

// applyUpdate downloads the planned file next to the installed one and
// replaces the database record. dbMu serializes database writes.
func applyUpdate(ctx context.Context, a *app, p updatePlan, dbMu *sync.Mutex, events chan<- updateEvent) error {
	log := logger.Log.With(zap.Int("mod_id", p.installed.ModID), zap.String("mod", p.installed.Name))
	emit(events, updateEvent{Kind: "download_start", ModName: p.installed.Name, FileName: p.file.FileName, ReleaseType: p.file.ReleaseType})

	url, err := resolveDownloadURL(ctx, p.file)
	if err != nil {
		return err
	}

	targetDir := filepath.Dir(p.installed.InstallPath)
	downloadPath := filepath.Join(targetDir, p.file.FileName)
	sameName := downloadPath == p.installed.InstallPath

	log.Infow(ui.ReleaseBadge(p.file.ReleaseType)+" Downloading", zap.String("file", p.file.FileName))
	if err := downloadFile(ctx, a.http, url, downloadPath); err != nil {
		return err
	}

	archivePath := ""
	if !sameName {
		archivePath = archiveOrRemove(p.installed.InstallPath, p.installed.FileID, a.cfg.KeepOldVersions, log)
	}

	next := db.InstalledMod{
		ModID:       p.installed.ModID,
		FileID:      p.file.ID,
		Name:        p.installed.Name,
		Slug:        p.installed.Slug,
		FileName:    p.file.FileName,
		DisplayName: p.file.DisplayName,
		ReleaseType: int(p.file.ReleaseType),
		Fingerprint: p.file.FileFingerprint,
		InstallPath: downloadPath,
		FileDate:    p.file.FileDate,
		ScanID:      p.installed.ScanID,
	}

	dbMu.Lock()
	defer dbMu.Unlock()
	old := p.installed
	if err := db.ReplaceInstalled(a.db, &old, next, archivePath); err != nil {
		return fmt.Errorf("failed to update database record: %w", err)
	}

	log.Infow("Successfully updated", zap.String("file", p.file.FileName))
	emit(events, updateEvent{Kind: "download_success", ModName: p.installed.Name, FileName: p.file.FileName, ReleaseType: p.file.ReleaseType})
	return nil
}

// dryRunDiff renders the installed file listing before and after the plans
// as a unified diff.
func dryRunDiff(installed []db.InstalledMod, plans []updatePlan) string {
	replacement := make(map[string]string, len(plans))
	for _, p := range plans {
		replacement[p.installed.InstallPath] = filepath.Join(filepath.Dir(p.installed.InstallPath), p.file.FileName)
	}

	var before, after []string
	for _, m := range installed {
		before = append(before, m.InstallPath)
		if next, ok := replacement[m.InstallPath]; ok {
			after = append(after, next)
		} else {
			after = append(after, m.InstallPath)
		}
	}
	sort.Strings(before)
	sort.Strings(after)

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        lines(before),
		B:        lines(after),
		FromFile: "installed",
		ToFile:   "after update",
		Context:  1,
	})
	if err != nil {
		return ""
	}
	return diff
}

func lines(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = s + "\n"
	}
	return out
}
