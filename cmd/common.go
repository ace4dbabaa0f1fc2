package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"curseforge-client/config"
	"curseforge-client/curseforge"
	"curseforge-client/db"
	"curseforge-client/logger"
)

// CurseForge class ids of the Minecraft content this tool installs.
const (
	classMods          = 6
	classResourcePacks = 12
	classShaders       = 6552
)

// app carries what a command needs after bootstrapping.
type app struct {
	cfg    config.Config
	client *curseforge.Client
	http   *http.Client
	db     *gorm.DB // nil for API-only commands
}

// bootstrap loads configuration and builds the API client.
func bootstrap() (*app, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.CurseForgeAPIKey == "" {
		return nil, errors.New("CURSEFORGE_API_KEY must be set")
	}

	hc := &http.Client{Timeout: cfg.HTTPTimeout}
	client, err := curseforge.NewClient(cfg.CurseForgeAPIKey,
		curseforge.WithHTTPClient(hc),
		curseforge.WithBaseURL(cfg.CurseForgeAPIURL),
		curseforge.WithLogger(logger.ZapLogger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CurseForge client: %w", err)
	}
	return &app{cfg: cfg, client: client, http: hc}, nil
}

// bootstrapInstance is bootstrap plus the instance directories and database.
func bootstrapInstance() (*app, error) {
	a, err := bootstrap()
	if err != nil {
		return nil, err
	}
	if err := config.PrepareInstance(&a.cfg); err != nil {
		return nil, err
	}
	if a.db, err = db.InitDatabase(a.cfg.DatabasePath); err != nil {
		return nil, err
	}
	logger.Log.Infow("Database initialized", zap.String("path", a.cfg.DatabasePath))
	return a, nil
}

// getTargetSubDir returns the instance folder for a CurseForge class id.
func getTargetSubDir(classID int) string {
	switch classID {
	case classResourcePacks:
		return "resourcepacks"
	case classShaders:
		return "shaderpacks"
	default:
		return "mods"
	}
}

// pickLatestFile returns the newest available file, preferring full releases.
// It returns nil for an empty list.
func pickLatestFile(files []*curseforge.File) *curseforge.File {
	candidates := make([]*curseforge.File, 0, len(files))
	for _, f := range files {
		if f != nil && f.IsAvailable {
			candidates = append(candidates, f)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].FileDate.After(candidates[j].FileDate)
	})
	for _, f := range candidates {
		if f.ReleaseType == curseforge.Release {
			return f
		}
	}
	return candidates[0]
}

// resolveDownloadURL returns the file's download URL, asking the API when the
// listing left it empty.
func resolveDownloadURL(ctx context.Context, f *curseforge.File) (string, error) {
	if f.DownloadURL != "" {
		return f.DownloadURL, nil
	}
	u, err := f.GetDownloadURL(ctx)
	if err != nil {
		return "", err
	}
	if u == "" {
		return "", fmt.Errorf("file %d does not allow third-party downloads", f.ID)
	}
	return u, nil
}

// downloadFile streams url into destinationPath. A partial file is removed on error.
func downloadFile(ctx context.Context, hc *http.Client, url, destinationPath string) error {
	if err := os.MkdirAll(filepath.Dir(destinationPath), 0755); err != nil {
		return fmt.Errorf("failed to create target directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("failed to start download for '%s': %w", filepath.Base(destinationPath), err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download of '%s' failed: %s", filepath.Base(destinationPath), resp.Status)
	}

	tmpPath := destinationPath + ".part"
	outFile, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create file '%s': %w", tmpPath, err)
	}
	if _, err := io.Copy(outFile, resp.Body); err != nil {
		outFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write downloaded content to '%s': %w", destinationPath, err)
	}
	if err := outFile.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, destinationPath)
}

// archiveOrRemove moves an old file into versions/ when keep is set and deletes
// it otherwise. It returns the archive path, or "" when nothing was archived.
func archiveOrRemove(installPath string, fileID int, keep bool, log *zap.SugaredLogger) string {
	if !keep {
		if err := os.Remove(installPath); err != nil && !os.IsNotExist(err) {
			log.Warnw("Failed to remove old file", zap.String("file", installPath), zap.Error(err))
		}
		return ""
	}

	versionsDir := filepath.Join(filepath.Dir(installPath), "versions")
	if err := os.MkdirAll(versionsDir, 0755); err != nil {
		log.Warnw("Failed to create versions directory", zap.String("directory", versionsDir), zap.Error(err))
		return ""
	}
	archivePath := filepath.Join(versionsDir, fmt.Sprintf("%d-%s", fileID, filepath.Base(installPath)))
	if err := os.Rename(installPath, archivePath); err != nil {
		if !os.IsNotExist(err) {
			log.Warnw("Failed to archive old file", zap.String("file", installPath), zap.Error(err))
		}
		return ""
	}
	log.Infow("Archived old version", zap.String("archive_path", archivePath))
	return archivePath
}

// printJSON writes v as indented JSON to w.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}

// loaderFlag parses a --loader value; empty means any loader.
func loaderFlag(name string) (curseforge.ModLoaderType, error) {
	if strings.TrimSpace(name) == "" {
		return curseforge.AnyLoader, nil
	}
	t, ok := curseforge.ParseModLoaderType(name)
	if !ok {
		return 0, fmt.Errorf("unknown mod loader %q", name)
	}
	return t, nil
}
