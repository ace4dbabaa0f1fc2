package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"curseforge-client/curseforge"
	"curseforge-client/logger"
)

const (
	DefaultAPIURL      = "https://api.curseforge.com"
	DefaultHTTPTimeout = 30 * time.Second
	DefaultLoader      = "forge"
)

// Config holds all configuration for the application.
// Values are loaded by Viper from a .env file and/or environment variables.
type Config struct {
	CurseForgeAPIKey string        `mapstructure:"CURSEFORGE_API_KEY"`
	CurseForgeAPIURL string        `mapstructure:"CURSEFORGE_API_URL"`
	HTTPTimeout      time.Duration `mapstructure:"HTTP_TIMEOUT"`
	MinecraftDir     string        `mapstructure:"MINECRAFT_DIR"`
	MinecraftVersion string        `mapstructure:"MINECRAFT_VERSION"`
	MinecraftLoader  string        `mapstructure:"MINECRAFT_LOADER"`
	GameID           int           `mapstructure:"GAME_ID"`
	KeepOldVersions  bool          `mapstructure:"KEEP_OLD_VERSIONS"`
	DatabasePath     string        `mapstructure:"-"` // derived from MinecraftDir
}

// envKeys are bound explicitly so Unmarshal sees them even without a .env file.
var envKeys = []string{
	"CURSEFORGE_API_KEY",
	"CURSEFORGE_API_URL",
	"HTTP_TIMEOUT",
	"MINECRAFT_DIR",
	"MINECRAFT_VERSION",
	"MINECRAFT_LOADER",
	"GAME_ID",
	"KEEP_OLD_VERSIONS",
}

// ContentDirs are the folders under MINECRAFT_DIR that hold CurseForge content.
var ContentDirs = []string{"mods", "resourcepacks", "shaderpacks"}

// LoadConfig reads configuration from path/.env and the environment. It does
// not touch the filesystem beyond the .env file; see PrepareInstance.
func LoadConfig(path string) (Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	err := viper.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		logger.Log.Info("Config file (.env) not found, relying on environment variables.")
	} else if err != nil {
		return Config{}, fmt.Errorf("fatal error config file: %w", err)
	}

	viper.AutomaticEnv()
	for _, key := range envKeys {
		if err := viper.BindEnv(key); err != nil {
			logger.Log.Warnw("Unable to bind env var", "key", key, "error", err)
		}
	}

	viper.SetDefault("CURSEFORGE_API_URL", DefaultAPIURL)
	viper.SetDefault("HTTP_TIMEOUT", DefaultHTTPTimeout)
	viper.SetDefault("GAME_ID", curseforge.GameMinecraft)
	viper.SetDefault("KEEP_OLD_VERSIONS", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct, %w", err)
	}

	processConfigDefaults(&cfg)
	return cfg, nil
}

// PrepareInstance validates MINECRAFT_DIR and creates its content folders.
// Commands that manage local files call it; pure API commands do not.
func PrepareInstance(cfg *Config) error {
	return validateAndEnsureDirectories(cfg)
}

// processConfigDefaults fills in anything Unmarshal left empty.
func processConfigDefaults(cfg *Config) {
	if cfg.CurseForgeAPIURL == "" {
		cfg.CurseForgeAPIURL = DefaultAPIURL
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = DefaultHTTPTimeout
	}
	if cfg.GameID == 0 {
		cfg.GameID = curseforge.GameMinecraft
	}

	cfg.MinecraftLoader = strings.ToLower(strings.TrimSpace(cfg.MinecraftLoader))
	if cfg.MinecraftLoader == "" {
		cfg.MinecraftLoader = DefaultLoader
	} else if _, ok := curseforge.ParseModLoaderType(cfg.MinecraftLoader); !ok {
		logger.Log.Warnw("Unknown MINECRAFT_LOADER, using default", "value", cfg.MinecraftLoader, "default", DefaultLoader)
		cfg.MinecraftLoader = DefaultLoader
	}
}

// validateAndEnsureDirectories requires MINECRAFT_DIR and creates the content
// folders below it. It also derives DatabasePath.
func validateAndEnsureDirectories(cfg *Config) error {
	if cfg.MinecraftDir == "" {
		logger.Log.Error("MINECRAFT_DIR is not set")
		return fmt.Errorf("MINECRAFT_DIR is required")
	}

	dirs := []string{cfg.MinecraftDir}
	for _, sub := range ContentDirs {
		dirs = append(dirs, filepath.Join(cfg.MinecraftDir, sub))
	}
	for _, dir := range dirs {
		if err := ensureDir(dir); err != nil {
			return err
		}
	}

	cfg.DatabasePath = filepath.Join(cfg.MinecraftDir, "mods.db")
	return nil
}

func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		logger.Log.Infow("Directory does not exist, creating it", "path", dir)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

// LoaderType returns the configured loader as an API enum value.
func (c Config) LoaderType() curseforge.ModLoaderType {
	t, _ := curseforge.ParseModLoaderType(c.MinecraftLoader)
	return t
}
