package curseforge

import (
	"context"
	"fmt"
	"time"
)

// File is a single uploaded file of a mod.
type File struct {
	ID                   int                   `json:"id"`
	GameID               int                   `json:"gameId"`
	ModID                int                   `json:"modId"`
	IsAvailable          bool                  `json:"isAvailable"`
	DisplayName          string                `json:"displayName"`
	FileName             string                `json:"fileName"`
	ReleaseType          FileReleaseType       `json:"releaseType"`
	FileStatus           FileStatus            `json:"fileStatus"`
	Hashes               []FileHash            `json:"hashes"`
	FileDate             time.Time             `json:"fileDate"`
	FileLength           int64                 `json:"fileLength"`
	DownloadCount        int64                 `json:"downloadCount"`
	DownloadURL          string                `json:"downloadUrl"`
	GameVersions         []string              `json:"gameVersions"`
	SortableGameVersions []SortableGameVersion `json:"sortableGameVersions"`
	Dependencies         []FileDependency      `json:"dependencies"`
	ExposeAsAlternative  *bool                 `json:"exposeAsAlternative,omitempty"`
	ParentProjectFileID  int                   `json:"parentProjectFileId,omitempty"`
	AlternateFileID      int                   `json:"alternateFileId,omitempty"`
	IsServerPack         *bool                 `json:"isServerPack,omitempty"`
	ServerPackFileID     int                   `json:"serverPackFileId,omitempty"`
	FileFingerprint      int64                 `json:"fileFingerprint"`
	Modules              []FileModule          `json:"modules"`

	client *Client
}

func newFile(c *Client, raw any) (*File, error) {
	var f File
	if err := decodeInto(raw, &f); err != nil {
		return nil, err
	}
	f.client = c
	return &f, nil
}

// Hash returns the file hash for algo, or "" when the API did not send one.
func (f *File) Hash(algo HashAlgo) string {
	for _, h := range f.Hashes {
		if h.Algo == algo {
			return h.Value
		}
	}
	return ""
}

// GetChangelog returns the HTML changelog of this file.
func (f *File) GetChangelog(ctx context.Context) (string, error) {
	if f.client == nil {
		return "", ErrNoClient
	}
	return f.client.GetModFileChangelog(ctx, f.ModID, f.ID)
}

// GetDownloadURL asks the API for this file's download URL. Useful when
// DownloadURL is empty because the author disabled third-party distribution.
func (f *File) GetDownloadURL(ctx context.Context) (string, error) {
	if f.client == nil {
		return "", ErrNoClient
	}
	return f.client.GetModFileDownloadURL(ctx, f.ModID, f.ID)
}

// GetModFile retrieves a single file of a mod.
func (c *Client) GetModFile(ctx context.Context, modID, fileID int) (*File, error) {
	data, err := c.fetchData(ctx, fmt.Sprintf("/v1/mods/%d/files/%d", modID, fileID), request{})
	if err != nil {
		return nil, fmt.Errorf("failed to get file %d of mod %d: %w", fileID, modID, err)
	}
	return newFile(c, data)
}

// GetModFiles lists the files of a mod.
func (c *Client) GetModFiles(ctx context.Context, modID int, opts *GetModFilesOptions) (*Page[*File], error) {
	payload, err := c.fetchURL(ctx, fmt.Sprintf("/v1/mods/%d/files", modID), request{query: opts.query()})
	if err != nil {
		return nil, fmt.Errorf("failed to get files of mod %d: %w", modID, err)
	}
	return materializePage(c, payload, newFile)
}

// GetFiles retrieves several files in one request.
func (c *Client) GetFiles(ctx context.Context, fileIDs []int) ([]*File, error) {
	body := map[string]any{"fileIds": nonNil(fileIDs)}
	data, err := c.fetchData(ctx, "/v1/mods/files", request{body: body})
	if err != nil {
		return nil, fmt.Errorf("failed to get files: %w", err)
	}
	return materializeArray(c, data, newFile)
}

// GetModFileChangelog returns the HTML changelog of a file.
func (c *Client) GetModFileChangelog(ctx context.Context, modID, fileID int) (string, error) {
	data, err := c.fetchData(ctx, fmt.Sprintf("/v1/mods/%d/files/%d/changelog", modID, fileID), request{})
	if err != nil {
		return "", fmt.Errorf("failed to get changelog of file %d: %w", fileID, err)
	}
	return decodeAs[string](data)
}

// GetModFileDownloadURL returns the download URL of a file.
func (c *Client) GetModFileDownloadURL(ctx context.Context, modID, fileID int) (string, error) {
	data, err := c.fetchData(ctx, fmt.Sprintf("/v1/mods/%d/files/%d/download-url", modID, fileID), request{})
	if err != nil {
		return "", fmt.Errorf("failed to get download url of file %d: %w", fileID, err)
	}
	return decodeAs[string](data)
}
