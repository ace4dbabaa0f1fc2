package curseforge

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

const matchesBody = `{"data": {
	"isCacheBuilt": true,
	"exactMatches": [{
		"id": 238222,
		"file": {"id": 3847103, "modId": 238222, "fileName": "jei-1.18.2-9.7.0.195.jar", "fileFingerprint": 3652023177, "fileDate": "2022-06-27T21:24:58.213Z"},
		"latestFiles": [
			{"id": 3847103, "modId": 238222, "fileName": "jei-1.18.2-9.7.0.195.jar"},
			{"id": 3900000, "modId": 238222, "fileName": "jei-1.19-11.0.0.206.jar"}
		],
		"channel": "stable"
	}],
	"exactFingerprints": [3652023177],
	"partialMatches": [{
		"id": 328085,
		"file": {"id": 3872145, "modId": 328085, "fileName": "create-1.18.2-0.4.1.jar"},
		"latestFiles": null
	}],
	"partialMatchFingerprints": {"3872145": [11, 22]},
	"additionalProperties": [],
	"installedFingerprints": [3652023177],
	"unmatchedFingerprints": [42]
}}`

func TestGetFingerprintsMatches(t *testing.T) {
	c, rec := newRecorded(t, http.StatusOK, matchesBody)

	res, err := c.GetFingerprintsMatches(context.Background(), []int64{3652023177, 42})
	if err != nil {
		t.Fatalf("GetFingerprintsMatches failed: %v", err)
	}

	if got := string(rec.opts.Body); got != `{"fingerprints":[3652023177,42]}` {
		t.Errorf("unexpected body %s", got)
	}
	if rec.opts.Method != http.MethodPost {
		t.Errorf("expected POST, got %s", rec.opts.Method)
	}

	if !res.IsCacheBuilt {
		t.Error("expected isCacheBuilt to pass through")
	}
	if len(res.ExactFingerprints) != 1 || res.ExactFingerprints[0] != 3652023177 {
		t.Errorf("unexpected exact fingerprints %v", res.ExactFingerprints)
	}
	if len(res.UnmatchedFingerprints) != 1 || res.UnmatchedFingerprints[0] != 42 {
		t.Errorf("unexpected unmatched fingerprints %v", res.UnmatchedFingerprints)
	}
	if got := res.PartialMatchFingerprints["3872145"]; len(got) != 2 || got[1] != 22 {
		t.Errorf("unexpected partial match fingerprints %v", res.PartialMatchFingerprints)
	}

	if len(res.ExactMatches) != 1 {
		t.Fatalf("expected 1 exact match, got %d", len(res.ExactMatches))
	}
	exact := res.ExactMatches[0]
	if exact.ID != 238222 {
		t.Errorf("expected match id 238222, got %d", exact.ID)
	}
	if exact.File == nil || exact.File.ID != 3847103 || exact.File.client != c {
		t.Fatalf("expected client-bound file 3847103, got %+v", exact.File)
	}
	if exact.File.FileFingerprint != 3652023177 || exact.File.FileDate.IsZero() {
		t.Errorf("unexpected file fields %+v", exact.File)
	}
	if len(exact.LatestFiles) != 2 || exact.LatestFiles[1].ID != 3900000 {
		t.Fatalf("expected 2 latest files in order, got %+v", exact.LatestFiles)
	}
	for i, f := range exact.LatestFiles {
		if f.client != c {
			t.Errorf("latest file %d not bound to client", i)
		}
	}
	if exact.Extra["channel"] != "stable" {
		t.Errorf("expected undeclared field kept, got %v", exact.Extra)
	}
	if _, ok := exact.Extra["file"]; ok {
		t.Error("promoted field leaked into extra")
	}

	if len(res.PartialMatches) != 1 {
		t.Fatalf("expected 1 partial match, got %d", len(res.PartialMatches))
	}
	partial := res.PartialMatches[0]
	if partial.File == nil || partial.File.ID != 3872145 || partial.File.client != c {
		t.Errorf("expected client-bound partial file, got %+v", partial.File)
	}
	if partial.LatestFiles == nil || len(partial.LatestFiles) != 0 {
		t.Errorf("expected empty latest files, got %v", partial.LatestFiles)
	}
}

func TestGetFingerprintsMatches_FollowUp(t *testing.T) {
	c, rec := newRecorded(t, http.StatusOK, matchesBody)

	res, err := c.GetFingerprintsMatches(context.Background(), []int64{3652023177})
	if err != nil {
		t.Fatalf("GetFingerprintsMatches failed: %v", err)
	}

	rec.body = `{"data": "https://edge.forgecdn.net/files/3847/103/jei-1.18.2-9.7.0.195.jar"}`
	u, err := res.ExactMatches[0].File.GetDownloadURL(context.Background())
	if err != nil {
		t.Fatalf("GetDownloadURL failed: %v", err)
	}
	if u != "https://edge.forgecdn.net/files/3847/103/jei-1.18.2-9.7.0.195.jar" {
		t.Errorf("unexpected url %s", u)
	}
	if rec.url != "https://api.curseforge.com/v1/mods/238222/files/3847103/download-url" {
		t.Errorf("unexpected request url %s", rec.url)
	}
}

func TestGetFingerprintsFuzzyMatches(t *testing.T) {
	body := `{"data": {"fuzzyMatches": [{
		"id": 238222,
		"file": {"id": 3847103, "modId": 238222},
		"latestFiles": [{"id": 3847103, "modId": 238222}],
		"fingerprints": [1, 2, 3],
		"score": 0.9
	}]}}`
	c, rec := newRecorded(t, http.StatusOK, body)

	matches, err := c.GetFingerprintsFuzzyMatches(context.Background(), FuzzyMatchesRequest{
		GameID: GameMinecraft,
		Fingerprints: []FolderFingerprint{
			{Foldername: "mods", Fingerprints: []int64{1, 2, 3}},
		},
	})
	if err != nil {
		t.Fatalf("GetFingerprintsFuzzyMatches failed: %v", err)
	}

	var sent FuzzyMatchesRequest
	if err := json.Unmarshal(rec.opts.Body, &sent); err != nil {
		t.Fatalf("request body is not json: %v", err)
	}
	if sent.GameID != GameMinecraft || len(sent.Fingerprints) != 1 || sent.Fingerprints[0].Foldername != "mods" {
		t.Errorf("unexpected request %+v", sent)
	}

	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	m := matches[0]
	if m.File == nil || m.File.client != c {
		t.Error("expected client-bound file")
	}
	if len(m.LatestFiles) != 1 || m.LatestFiles[0].client != c {
		t.Error("expected client-bound latest files")
	}
	if len(m.Fingerprints) != 3 || m.Fingerprints[2] != 3 {
		t.Errorf("unexpected fingerprints %v", m.Fingerprints)
	}
	if m.Extra["score"] != json.Number("0.9") {
		t.Errorf("expected score kept in extra, got %v", m.Extra)
	}
}

func TestGetFingerprintsMatches_Malformed(t *testing.T) {
	c, _ := newRecorded(t, http.StatusOK, `{"data": {"exactMatches": [{"id": 1, "file": "nope"}]}}`)

	if _, err := c.GetFingerprintsMatches(context.Background(), nil); err == nil {
		t.Fatal("expected decode error for malformed file")
	}
}
