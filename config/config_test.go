package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"

	"curseforge-client/curseforge"
	"curseforge-client/logger"
)

func TestMain(m *testing.M) {
	logger.UseNop()
	os.Exit(m.Run())
}

func TestProcessConfigDefaults(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		viper.Reset()
		cfg := Config{}
		processConfigDefaults(&cfg)

		if cfg.MinecraftLoader != "forge" {
			t.Errorf("Expected MinecraftLoader to be forge, got %s", cfg.MinecraftLoader)
		}
		if cfg.CurseForgeAPIURL != DefaultAPIURL {
			t.Errorf("Expected default API URL, got %s", cfg.CurseForgeAPIURL)
		}
		if cfg.HTTPTimeout != 30*time.Second {
			t.Errorf("Expected 30s timeout, got %s", cfg.HTTPTimeout)
		}
		if cfg.GameID != curseforge.GameMinecraft {
			t.Errorf("Expected game id 432, got %d", cfg.GameID)
		}
	})

	t.Run("respects existing values", func(t *testing.T) {
		viper.Reset()
		cfg := Config{
			MinecraftLoader:  "Fabric",
			CurseForgeAPIURL: "http://localhost:8080",
			HTTPTimeout:      5 * time.Second,
			GameID:           78062,
		}
		processConfigDefaults(&cfg)

		if cfg.MinecraftLoader != "fabric" {
			t.Errorf("Expected MinecraftLoader to be normalized to fabric, got %s", cfg.MinecraftLoader)
		}
		if cfg.LoaderType() != curseforge.Fabric {
			t.Errorf("Expected Fabric loader type, got %v", cfg.LoaderType())
		}
		if cfg.CurseForgeAPIURL != "http://localhost:8080" {
			t.Errorf("Expected API URL to stay, got %s", cfg.CurseForgeAPIURL)
		}
		if cfg.HTTPTimeout != 5*time.Second || cfg.GameID != 78062 {
			t.Errorf("Expected timeout and game id to stay, got %s and %d", cfg.HTTPTimeout, cfg.GameID)
		}
	})

	t.Run("unknown loader falls back", func(t *testing.T) {
		cfg := Config{MinecraftLoader: "rift"}
		processConfigDefaults(&cfg)
		if cfg.MinecraftLoader != DefaultLoader {
			t.Errorf("Expected fallback to %s, got %s", DefaultLoader, cfg.MinecraftLoader)
		}
	})
}

func TestValidateAndEnsureDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("missing minecraft dir", func(t *testing.T) {
		cfg := Config{MinecraftDir: ""}
		err := validateAndEnsureDirectories(&cfg)
		if err == nil {
			t.Error("Expected error for missing MinecraftDir")
		}
	})

	t.Run("creates directories", func(t *testing.T) {
		mcDir := filepath.Join(tmpDir, "mc")
		cfg := Config{MinecraftDir: mcDir}
		err := validateAndEnsureDirectories(&cfg)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		for _, sub := range ContentDirs {
			path := filepath.Join(mcDir, sub)
			if _, err := os.Stat(path); os.IsNotExist(err) {
				t.Errorf("Directory %s was not created", sub)
			}
		}
		if cfg.DatabasePath != filepath.Join(mcDir, "mods.db") {
			t.Errorf("Unexpected database path %s", cfg.DatabasePath)
		}
	})

	t.Run("file in the way", func(t *testing.T) {
		mcDir := filepath.Join(tmpDir, "blocked")
		if err := os.MkdirAll(mcDir, 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(mcDir, "mods"), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		cfg := Config{MinecraftDir: mcDir}
		if err := validateAndEnsureDirectories(&cfg); err == nil {
			t.Error("Expected error when mods is a file")
		}
	})
}

func TestLoadConfig_FromEnv(t *testing.T) {
	viper.Reset()
	mcDir := filepath.Join(t.TempDir(), "instance")
	t.Setenv("CURSEFORGE_API_KEY", "secret")
	t.Setenv("MINECRAFT_DIR", mcDir)
	t.Setenv("MINECRAFT_VERSION", "1.18.2")
	t.Setenv("HTTP_TIMEOUT", "10s")
	t.Setenv("KEEP_OLD_VERSIONS", "true")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.CurseForgeAPIKey != "secret" || cfg.MinecraftVersion != "1.18.2" {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("Expected 10s timeout, got %s", cfg.HTTPTimeout)
	}
	if !cfg.KeepOldVersions {
		t.Error("Expected KeepOldVersions to be true")
	}
	if cfg.GameID != curseforge.GameMinecraft || cfg.MinecraftLoader != DefaultLoader {
		t.Errorf("Expected defaults, got game %d loader %s", cfg.GameID, cfg.MinecraftLoader)
	}

	if _, err := os.Stat(mcDir); !os.IsNotExist(err) {
		t.Error("LoadConfig should not create MINECRAFT_DIR")
	}
	if err := PrepareInstance(&cfg); err != nil {
		t.Fatalf("PrepareInstance failed: %v", err)
	}
	if cfg.DatabasePath != filepath.Join(mcDir, "mods.db") {
		t.Errorf("Unexpected database path %s", cfg.DatabasePath)
	}
}
