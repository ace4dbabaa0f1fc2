package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"curseforge-client/curseforge"
	"curseforge-client/logger"
)

func TestMain(m *testing.M) {
	logger.UseNop()
	os.Exit(m.Run())
}

func TestGetTargetSubDir(t *testing.T) {
	tests := []struct {
		name     string
		classID  int
		expected string
	}{
		{"mods", classMods, "mods"},
		{"shaders", classShaders, "shaderpacks"},
		{"resource packs", classResourcePacks, "resourcepacks"},
		{"modpacks fall back to mods", 4471, "mods"},
		{"zero", 0, "mods"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := getTargetSubDir(tt.classID)
			if result != tt.expected {
				t.Errorf("getTargetSubDir(%d) = %q, want %q", tt.classID, result, tt.expected)
			}
		})
	}
}

func TestPickLatestFile(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2022, 1, d, 0, 0, 0, 0, time.UTC) }

	t.Run("newest release wins over newer beta", func(t *testing.T) {
		files := []*curseforge.File{
			{ID: 1, FileName: "old.jar", IsAvailable: true, ReleaseType: curseforge.Release, FileDate: day(1)},
			{ID: 2, FileName: "beta.jar", IsAvailable: true, ReleaseType: curseforge.Beta, FileDate: day(5)},
			{ID: 3, FileName: "new.jar", IsAvailable: true, ReleaseType: curseforge.Release, FileDate: day(3)},
		}
		result := pickLatestFile(files)
		if result == nil || result.ID != 3 {
			t.Errorf("pickLatestFile() = %v, want file 3", result)
		}
	})

	t.Run("no release returns newest file", func(t *testing.T) {
		files := []*curseforge.File{
			{ID: 1, IsAvailable: true, ReleaseType: curseforge.Alpha, FileDate: day(1)},
			{ID: 2, IsAvailable: true, ReleaseType: curseforge.Beta, FileDate: day(2)},
		}
		result := pickLatestFile(files)
		if result == nil || result.ID != 2 {
			t.Errorf("pickLatestFile() = %v, want file 2", result)
		}
	})

	t.Run("unavailable files are skipped", func(t *testing.T) {
		files := []*curseforge.File{
			{ID: 1, IsAvailable: false, ReleaseType: curseforge.Release, FileDate: day(9)},
			{ID: 2, IsAvailable: true, ReleaseType: curseforge.Release, FileDate: day(2)},
			nil,
		}
		result := pickLatestFile(files)
		if result == nil || result.ID != 2 {
			t.Errorf("pickLatestFile() = %v, want file 2", result)
		}
	})

	t.Run("empty list", func(t *testing.T) {
		if result := pickLatestFile(nil); result != nil {
			t.Errorf("pickLatestFile(nil) should return nil, got %v", result)
		}
	})
}

func TestLoaderFlag(t *testing.T) {
	tests := []struct {
		input    string
		expected curseforge.ModLoaderType
		wantErr  bool
	}{
		{"", curseforge.AnyLoader, false},
		{"  ", curseforge.AnyLoader, false},
		{"forge", curseforge.Forge, false},
		{"Fabric", curseforge.Fabric, false},
		{"neoforge", curseforge.NeoForge, false},
		{"rift", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := loaderFlag(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("loaderFlag(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && result != tt.expected {
				t.Errorf("loaderFlag(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs([]string{"238222", "1"})
	if err != nil {
		t.Fatalf("parseIDs failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != 238222 || ids[1] != 1 {
		t.Errorf("parseIDs = %v, want [238222 1]", ids)
	}

	for _, bad := range []string{"abc", "0", "-5", ""} {
		if _, err := parseID(bad); err == nil {
			t.Errorf("parseID(%q) should fail", bad)
		}
	}
	if _, err := parseIDs([]string{"1", "x"}); err == nil {
		t.Error("parseIDs should fail when one id is invalid")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"Hello World", 5, "He..."},
		{"Hi", 5, "Hi"},
		{"Test", 4, "Test"},
		{"LongString", 7, "Long..."},
		{"", 5, ""},
	}

	for _, test := range tests {
		result := truncate(test.input, test.maxLen)
		if result != test.expected {
			t.Fatalf("truncate(%q, %d) = %q, expected %q", test.input, test.maxLen, result, test.expected)
		}
	}
}

func TestSearchOptions(t *testing.T) {
	newCmd := func(t *testing.T, flags ...string) *cobra.Command {
		t.Helper()
		c := &cobra.Command{}
		addSearchFlags(c)
		if err := c.ParseFlags(flags); err != nil {
			t.Fatalf("ParseFlags failed: %v", err)
		}
		return c
	}

	t.Run("all flags", func(t *testing.T) {
		c := newCmd(t, "--slug", "jei", "--class", "6", "--version", "1.18.2", "--loader", "forge",
			"--sort", "Popularity", "--order", "desc", "--index", "50", "--page-size", "25")
		opts, err := searchOptions(c, []string{"just enough"})
		if err != nil {
			t.Fatalf("searchOptions failed: %v", err)
		}
		if opts.SearchFilter != "just enough" || opts.Slug != "jei" || opts.ClassID != 6 {
			t.Errorf("unexpected text options: %+v", opts)
		}
		if opts.GameVersion != "1.18.2" || opts.ModLoaderType != curseforge.Forge {
			t.Errorf("unexpected version options: %+v", opts)
		}
		if opts.SortField != curseforge.SortPopularity || opts.SortOrder != curseforge.Descending {
			t.Errorf("unexpected sort options: %+v", opts)
		}
		if opts.Index != 50 || opts.PageSize != 25 {
			t.Errorf("unexpected paging options: %+v", opts)
		}
	})

	t.Run("no flags leaves zero values", func(t *testing.T) {
		opts, err := searchOptions(newCmd(t), nil)
		if err != nil {
			t.Fatalf("searchOptions failed: %v", err)
		}
		if *opts != (curseforge.SearchModsOptions{}) {
			t.Errorf("expected zero options, got %+v", opts)
		}
	})

	for _, flags := range [][]string{
		{"--sort", "stars"},
		{"--order", "sideways"},
		{"--loader", "rift"},
	} {
		t.Run("rejects "+flags[0]+" "+flags[1], func(t *testing.T) {
			if _, err := searchOptions(newCmd(t, flags...), nil); err == nil {
				t.Errorf("expected an error for %v", flags)
			}
		})
	}
}

func TestArchiveOrRemove(t *testing.T) {
	log := zap.NewNop().Sugar()

	t.Run("remove when not keeping", func(t *testing.T) {
		modsDir := t.TempDir()
		oldModFile := filepath.Join(modsDir, "old-mod-1.0.jar")
		if err := os.WriteFile(oldModFile, []byte("old mod content"), 0644); err != nil {
			t.Fatalf("Failed to create old mod file: %v", err)
		}

		if archived := archiveOrRemove(oldModFile, 42, false, log); archived != "" {
			t.Errorf("expected no archive path, got %q", archived)
		}
		if _, err := os.Stat(oldModFile); !os.IsNotExist(err) {
			t.Fatal("Old mod file should be removed")
		}
	})

	t.Run("archive when keeping", func(t *testing.T) {
		modsDir := t.TempDir()
		oldModFile := filepath.Join(modsDir, "old-mod-1.0.jar")
		if err := os.WriteFile(oldModFile, []byte("old mod content"), 0644); err != nil {
			t.Fatalf("Failed to create old mod file: %v", err)
		}

		archived := archiveOrRemove(oldModFile, 42, true, log)
		expected := filepath.Join(modsDir, "versions", "42-old-mod-1.0.jar")
		if archived != expected {
			t.Fatalf("archive path = %q, want %q", archived, expected)
		}
		if _, err := os.Stat(oldModFile); !os.IsNotExist(err) {
			t.Fatal("Old mod file should be moved from original location")
		}
		content, err := os.ReadFile(archived)
		if err != nil || string(content) != "old mod content" {
			t.Fatalf("archived file content = %q, err %v", content, err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "gone.jar")
		if archived := archiveOrRemove(missing, 1, true, log); archived != "" {
			t.Errorf("expected no archive path for a missing file, got %q", archived)
		}
	})
}

func TestDownloadFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ok.jar" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("jar bytes"))
	}))
	defer server.Close()

	dir := t.TempDir()

	t.Run("success", func(t *testing.T) {
		dest := filepath.Join(dir, "mods", "ok.jar")
		if err := downloadFile(context.Background(), server.Client(), server.URL+"/ok.jar", dest); err != nil {
			t.Fatalf("downloadFile failed: %v", err)
		}
		content, err := os.ReadFile(dest)
		if err != nil || string(content) != "jar bytes" {
			t.Fatalf("downloaded content = %q, err %v", content, err)
		}
		if _, err := os.Stat(dest + ".part"); !os.IsNotExist(err) {
			t.Error("temporary file should not remain")
		}
	})

	t.Run("http error", func(t *testing.T) {
		dest := filepath.Join(dir, "mods", "missing.jar")
		if err := downloadFile(context.Background(), server.Client(), server.URL+"/missing.jar", dest); err == nil {
			t.Fatal("expected an error for a 404")
		}
		if _, err := os.Stat(dest); !os.IsNotExist(err) {
			t.Error("no file should be created on failure")
		}
	})
}
