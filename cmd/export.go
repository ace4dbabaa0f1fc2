package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"curseforge-client/config"
	"curseforge-client/db"
	"curseforge-client/logger"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the recorded mods as a manifest",
	Long: `Writes every recorded mod with its CurseForge ids as a TOML or JSON
manifest. The manifest can be shared to reproduce the instance.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		if format != "toml" && format != "json" {
			return fmt.Errorf("unknown format %q, want toml or json", format)
		}

		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := config.PrepareInstance(&cfg); err != nil {
			return err
		}
		conn, err := db.InitDatabase(cfg.DatabasePath)
		if err != nil {
			return err
		}
		m, err := buildManifest(conn, cfg, time.Now())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			defer f.Close()
			w = f
		}
		if err := writeManifest(w, m, format); err != nil {
			return err
		}
		logger.Log.Infof("Exported %d mods", len(m.Mods))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("format", "toml", "manifest format: toml or json")
	exportCmd.Flags().StringP("output", "o", "", "write to a file instead of stdout")
}

// manifest describes a Minecraft instance by its CurseForge files.
type manifest struct {
	GeneratedAt      time.Time       `toml:"generated_at" json:"generatedAt"`
	MinecraftVersion string          `toml:"minecraft_version" json:"minecraftVersion"`
	Loader           string          `toml:"loader" json:"loader"`
	Mods             []manifestEntry `toml:"mods" json:"mods"`
}

type manifestEntry struct {
	Name        string `toml:"name" json:"name"`
	Slug        string `toml:"slug,omitempty" json:"slug,omitempty"`
	ModID       int    `toml:"mod_id" json:"modId"`
	FileID      int    `toml:"file_id" json:"fileId"`
	FileName    string `toml:"file_name" json:"fileName"`
	Folder      string `toml:"folder" json:"folder"`
	Fingerprint int64  `toml:"fingerprint" json:"fingerprint"`
}

func buildManifest(conn *gorm.DB, cfg config.Config, now time.Time) (manifest, error) {
	installed, err := db.ListInstalled(conn)
	if err != nil {
		return manifest{}, fmt.Errorf("failed to list installed mods: %w", err)
	}
	m := manifest{
		GeneratedAt:      now.UTC().Truncate(time.Second),
		MinecraftVersion: cfg.MinecraftVersion,
		Loader:           cfg.MinecraftLoader,
		Mods:             make([]manifestEntry, 0, len(installed)),
	}
	for _, mod := range installed {
		m.Mods = append(m.Mods, manifestEntry{
			Name:        mod.Name,
			Slug:        mod.Slug,
			ModID:       mod.ModID,
			FileID:      mod.FileID,
			FileName:    mod.FileName,
			Folder:      filepath.Base(filepath.Dir(mod.InstallPath)),
			Fingerprint: mod.Fingerprint,
		})
	}
	return m, nil
}

func writeManifest(w io.Writer, m manifest, format string) error {
	if format == "json" {
		return printJSON(w, m)
	}
	return toml.NewEncoder(w).Encode(m)
}
