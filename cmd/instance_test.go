package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"curseforge-client/config"
	"curseforge-client/curseforge"
	"curseforge-client/db"
)

// fakeAPI serves the handful of CurseForge endpoints the instance commands use.
type fakeAPI struct {
	server *httptest.Server

	mu        sync.Mutex
	files     map[string][]map[string]any // mod id -> file payloads
	downloads map[string]string           // file name -> content
	matches   []map[string]any
	mods      []map[string]any
	queries   map[string]string // mod id -> raw query of the last files request
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{
		files:     map[string][]map[string]any{},
		downloads: map[string]string{},
		queries:   map[string]string{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/mods/{id}/files", func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		defer api.mu.Unlock()
		id := r.PathValue("id")
		api.queries[id] = r.URL.RawQuery
		files, ok := api.files[id]
		if !ok {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}
		writeJSON(w, map[string]any{
			"data":       files,
			"pagination": map[string]any{"index": 0, "pageSize": 50, "resultCount": len(files), "totalCount": len(files)},
		})
	})
	mux.HandleFunc("POST /v1/fingerprints", func(w http.ResponseWriter, _ *http.Request) {
		api.mu.Lock()
		defer api.mu.Unlock()
		writeJSON(w, map[string]any{"data": map[string]any{
			"isCacheBuilt":          true,
			"exactMatches":          api.matches,
			"exactFingerprints":     []int64{},
			"partialMatches":        []any{},
			"installedFingerprints": []int64{},
			"unmatchedFingerprints": []int64{},
		}})
	})
	mux.HandleFunc("POST /v1/mods", func(w http.ResponseWriter, _ *http.Request) {
		api.mu.Lock()
		defer api.mu.Unlock()
		writeJSON(w, map[string]any{"data": api.mods})
	})
	mux.HandleFunc("GET /downloads/{name}", func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		content, ok := api.downloads[r.PathValue("name")]
		api.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(content))
	})

	api.server = httptest.NewServer(mux)
	t.Cleanup(api.server.Close)
	return api
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// addFile publishes a downloadable file for a mod.
func (api *fakeAPI) addFile(modID, fileID int, name, content, date string, release curseforge.FileReleaseType) map[string]any {
	api.mu.Lock()
	defer api.mu.Unlock()
	f := map[string]any{
		"id":          fileID,
		"modId":       modID,
		"gameId":      curseforge.GameMinecraft,
		"isAvailable": true,
		"displayName": name,
		"fileName":    name,
		"releaseType": int(release),
		"fileStatus":  10,
		"fileDate":    date,
		"downloadUrl": api.server.URL + "/downloads/" + name,
	}
	key := fmt.Sprint(modID)
	api.files[key] = append(api.files[key], f)
	api.downloads[name] = content
	return f
}

func (api *fakeAPI) lastQuery(modID string) string {
	api.mu.Lock()
	defer api.mu.Unlock()
	return api.queries[modID]
}

func newTestApp(t *testing.T, api *fakeAPI, keepOldVersions bool) *app {
	t.Helper()
	cfg := config.Config{
		MinecraftDir:     t.TempDir(),
		MinecraftVersion: "1.18.2",
		MinecraftLoader:  "forge",
		GameID:           curseforge.GameMinecraft,
		KeepOldVersions:  keepOldVersions,
	}
	if err := config.PrepareInstance(&cfg); err != nil {
		t.Fatalf("PrepareInstance failed: %v", err)
	}
	conn, err := db.InitDatabase(cfg.DatabasePath)
	if err != nil {
		t.Fatalf("InitDatabase failed: %v", err)
	}
	if sqlDB, err := conn.DB(); err == nil {
		t.Cleanup(func() { sqlDB.Close() })
	}

	hc := api.server.Client()
	client, err := curseforge.NewClient("test-key",
		curseforge.WithHTTPClient(hc),
		curseforge.WithBaseURL(api.server.URL),
	)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return &app{cfg: cfg, client: client, http: hc, db: conn}
}

// installMod writes a file into the instance and records it.
func installMod(t *testing.T, a *app, sub string, mod db.InstalledMod, content string) db.InstalledMod {
	t.Helper()
	mod.InstallPath = filepath.Join(a.cfg.MinecraftDir, sub, mod.FileName)
	if err := os.WriteFile(mod.InstallPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", mod.FileName, err)
	}
	if err := db.SaveInstalled(a.db, &mod); err != nil {
		t.Fatalf("SaveInstalled failed: %v", err)
	}
	return mod
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(content)
}

func assertMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("%s should not exist", path)
	}
}
