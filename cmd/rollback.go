package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"curseforge-client/db"
	"curseforge-client/logger"
	"curseforge-client/ui"
)

var rollbackCmd = &cobra.Command{
	Use:   "rollback <modId>",
	Short: "Restore the previous archived file of a mod",
	Long: `Restore the previous version of a mod.
Example: curseforge-client rollback 238222

This removes the currently installed file and restores the most recent
archived file. Archives only exist when KEEP_OLD_VERSIONS was enabled
during the update.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modID, err := parseID(args[0])
		if err != nil {
			return err
		}
		a, err := bootstrapInstance()
		if err != nil {
			return err
		}
		restored, err := rollbackMod(a.db, modID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Successfully rolled back mod %d to %s\n", modID, ui.Success.Render(restored.FileName))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rollbackCmd)
}

// rollbackMod swaps the installed file of a mod for its newest archived
// version and returns the restored record.
func rollbackMod(conn *gorm.DB, modID int) (*db.InstalledMod, error) {
	current, err := db.FindInstalled(conn, modID)
	if err != nil {
		return nil, fmt.Errorf("failed to query database: %w", err)
	}
	if current == nil {
		return nil, fmt.Errorf("mod %d is not recorded; run scan first", modID)
	}
	log := logger.Log.With(zap.Int("mod_id", modID), zap.String("mod", current.Name))
	log.Infow("Attempting rollback")

	previous, err := db.LatestArchived(conn, modID)
	if err != nil {
		return nil, fmt.Errorf("failed to query version history: %w", err)
	}
	if previous == nil {
		return nil, fmt.Errorf("no archived versions found for mod %d", modID)
	}
	if _, err := os.Stat(previous.ArchivePath); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("archive file not found: %s", previous.ArchivePath)
	}

	targetPath := filepath.Join(filepath.Dir(current.InstallPath), previous.FileName)
	sourceBytes, err := os.ReadFile(previous.ArchivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive file: %w", err)
	}

	if err := os.Remove(current.InstallPath); err != nil && !os.IsNotExist(err) {
		log.Warnw("Failed to remove current version", zap.String("file", current.InstallPath), zap.Error(err))
	}
	log.Infow("Restoring previous version", zap.String("file", previous.FileName), zap.Int("file_id", previous.FileID))
	if err := os.WriteFile(targetPath, sourceBytes, 0644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	restored := *current
	restored.FileID = previous.FileID
	restored.FileName = previous.FileName
	restored.InstallPath = targetPath
	restored.DisplayName = previous.FileName
	restored.FileDate = previous.CreatedAt

	err = conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&restored).Error; err != nil {
			return err
		}
		if err := tx.Delete(previous).Error; err != nil {
			return err
		}
		return os.Remove(previous.ArchivePath)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update database record: %w", err)
	}

	log.Infow("Rollback successful", zap.Int("restored_file_id", restored.FileID), zap.String("restored_file", restored.FileName))
	return &restored, nil
}
