package db

import (
	"time"

	"gorm.io/gorm"
)

// InstalledMod is a CurseForge file currently present in the instance.
type InstalledMod struct {
	gorm.Model
	ModID       int    `gorm:"index"`
	FileID      int    // CurseForge file id of the installed file
	Name        string // mod name
	Slug        string
	FileName    string `gorm:"uniqueIndex"`
	DisplayName string
	ReleaseType int
	Fingerprint int64
	InstallPath string // absolute path of the installed file
	FileDate    time.Time
	ScanID      string // scan that first recognized the file
}

// ModVersion is a file that was replaced by an update.
type ModVersion struct {
	gorm.Model
	ModID       int `gorm:"index"`
	FileID      int
	FileName    string
	ArchivePath string // empty when the old file was deleted
}
