package db

import (
	"errors"
	"fmt"
	"time"

	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/gormlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"curseforge-client/logger"
)

// logWriter sends gorm's log lines to the application log instead of stdout.
type logWriter struct{}

func (logWriter) Printf(format string, args ...any) {
	logger.Log.Warnf(format, args...)
}

// InitDatabase opens the SQLite database at dbPath and migrates the models.
func InitDatabase(dbPath string) (*gorm.DB, error) {
	newLogger := gormlogger.New(
		logWriter{},
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		},
	)

	conn, err := gorm.Open(gormlite.Open(dbPath), &gorm.Config{Logger: newLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if err := conn.AutoMigrate(&InstalledMod{}, &ModVersion{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database schema: %w", err)
	}
	return conn, nil
}

// SaveInstalled inserts mod or updates the row with the same file name.
func SaveInstalled(conn *gorm.DB, mod *InstalledMod) error {
	return conn.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "file_name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"mod_id", "file_id", "name", "slug", "display_name", "release_type",
			"fingerprint", "install_path", "file_date", "scan_id", "updated_at",
		}),
	}).Create(mod).Error
}

// ListInstalled returns all installed mods ordered by name.
func ListInstalled(conn *gorm.DB) ([]InstalledMod, error) {
	var mods []InstalledMod
	err := conn.Order("name").Find(&mods).Error
	return mods, err
}

// FindInstalled returns the installed file of a mod, or nil when none is recorded.
func FindInstalled(conn *gorm.DB, modID int) (*InstalledMod, error) {
	var mod InstalledMod
	err := conn.Where("mod_id = ?", modID).First(&mod).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mod, nil
}

// ReplaceInstalled swaps the installed record of a mod for a new file and
// records the previous file as history, in one transaction.
func ReplaceInstalled(conn *gorm.DB, old *InstalledMod, next InstalledMod, archivePath string) error {
	return conn.Transaction(func(tx *gorm.DB) error {
		history := ModVersion{
			ModID:       old.ModID,
			FileID:      old.FileID,
			FileName:    old.FileName,
			ArchivePath: archivePath,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Delete(old).Error; err != nil {
			return err
		}
		return tx.Create(&next).Error
	})
}

// LatestArchived returns the newest archived version of a mod that still has
// a file on disk, or nil.
func LatestArchived(conn *gorm.DB, modID int) (*ModVersion, error) {
	var v ModVersion
	err := conn.Where("mod_id = ? AND archive_path <> ''", modID).Order("id DESC").First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}
