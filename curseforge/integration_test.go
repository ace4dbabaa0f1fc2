//go:build integration

package curseforge

import (
	"context"
	"os"
	"testing"
	"time"
)

// These tests talk to the live API. Run with:
//
//	CURSEFORGE_API_KEY=... go test -tags integration ./curseforge/...
func liveClient(t *testing.T) *Client {
	t.Helper()
	key := os.Getenv("CURSEFORGE_API_KEY")
	if key == "" {
		t.Skip("CURSEFORGE_API_KEY not set")
	}
	c, err := NewClient(key)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return c
}

func liveContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestLive_Minecraft(t *testing.T) {
	c := liveClient(t)
	ctx := liveContext(t)

	game, err := c.GetGame(ctx, GameMinecraft)
	if err != nil {
		t.Fatalf("GetGame failed: %v", err)
	}
	if game.Name != "Minecraft" {
		t.Errorf("expected Minecraft, got %q", game.Name)
	}
	if game.DateModified.IsZero() {
		t.Error("expected dateModified to be a date")
	}

	versions, err := game.GetVersions(ctx)
	if err != nil {
		t.Fatalf("GetVersions follow-up failed: %v", err)
	}
	if len(versions) == 0 {
		t.Error("expected at least one version group")
	}
}

func TestLive_GetFilesOrder(t *testing.T) {
	c := liveClient(t)
	ctx := liveContext(t)

	ids := []int{3847103, 3872145}
	files, err := c.GetFiles(ctx, ids)
	if err != nil {
		t.Fatalf("GetFiles failed: %v", err)
	}
	if len(files) != len(ids) {
		t.Fatalf("expected %d files, got %d", len(ids), len(files))
	}
	for _, f := range files {
		if f.ID != ids[0] && f.ID != ids[1] {
			t.Errorf("unexpected file id %d", f.ID)
		}
		u, err := f.GetDownloadURL(ctx)
		if err != nil {
			t.Errorf("GetDownloadURL for %d failed: %v", f.ID, err)
		} else if u == "" {
			t.Errorf("expected download url for %d", f.ID)
		}
	}
}

func TestLive_FingerprintChangelog(t *testing.T) {
	c := liveClient(t)
	ctx := liveContext(t)

	res, err := c.GetFingerprintsMatches(ctx, []int64{3652023177})
	if err != nil {
		t.Fatalf("GetFingerprintsMatches failed: %v", err)
	}
	if len(res.ExactMatches) == 0 {
		t.Fatal("expected an exact match")
	}

	changelog, err := res.ExactMatches[0].File.GetChangelog(ctx)
	if err != nil {
		t.Fatalf("GetChangelog follow-up failed: %v", err)
	}
	if changelog == "" {
		t.Error("expected a changelog")
	}
}

func TestLive_MissingGame(t *testing.T) {
	c := liveClient(t)

	_, err := c.GetGame(liveContext(t), 99999999)
	if err == nil {
		t.Fatal("expected an error for an unknown game")
	}
}
