package curseforge

import (
	"context"
	"fmt"
	"time"
)

// Mod is a project on CurseForge: a mod, modpack, resource pack, and so on.
type Mod struct {
	ID                   int         `json:"id"`
	GameID               int         `json:"gameId"`
	Name                 string      `json:"name"`
	Slug                 string      `json:"slug"`
	Links                ModLinks    `json:"links"`
	Summary              string      `json:"summary"`
	Status               ModStatus   `json:"status"`
	DownloadCount        int64       `json:"downloadCount"`
	IsFeatured           bool        `json:"isFeatured"`
	PrimaryCategoryID    int         `json:"primaryCategoryId"`
	Categories           []Category  `json:"categories"`
	ClassID              int         `json:"classId,omitempty"`
	Authors              []ModAuthor `json:"authors"`
	Logo                 ModAsset    `json:"logo"`
	Screenshots          []ModAsset  `json:"screenshots"`
	MainFileID           int         `json:"mainFileId"`
	LatestFiles          []*File     `json:"latestFiles"`
	LatestFilesIndexes   []FileIndex `json:"latestFilesIndexes"`
	DateCreated          time.Time   `json:"dateCreated"`
	DateModified         time.Time   `json:"dateModified"`
	DateReleased         time.Time   `json:"dateReleased"`
	AllowModDistribution *bool       `json:"allowModDistribution,omitempty"`
	GamePopularityRank   int         `json:"gamePopularityRank"`
	IsAvailable          bool        `json:"isAvailable"`
	ThumbsUpCount        int         `json:"thumbsUpCount"`

	client *Client
}

// newMod decodes a raw mod record. The embedded latest files are materialized
// as full File objects bound to the same client.
func newMod(c *Client, raw any) (*Mod, error) {
	record, ok := raw.(map[string]any)
	if !ok {
		return nil, &DecodeError{Type: "*curseforge.Mod", Err: fmt.Errorf("expected object, got %T", raw)}
	}

	rest := make(map[string]any, len(record))
	for k, v := range record {
		if k != "latestFiles" {
			rest[k] = v
		}
	}

	var m Mod
	if err := decodeInto(rest, &m); err != nil {
		return nil, err
	}
	files, err := materializeArray(c, record["latestFiles"], newFile)
	if err != nil {
		return nil, fmt.Errorf("latestFiles: %w", err)
	}
	m.LatestFiles = files
	m.client = c
	return &m, nil
}

// GetDescription returns the mod's HTML description.
func (m *Mod) GetDescription(ctx context.Context) (string, error) {
	if m.client == nil {
		return "", ErrNoClient
	}
	return m.client.GetModDescription(ctx, m.ID)
}

// GetFiles lists the mod's files.
func (m *Mod) GetFiles(ctx context.Context, opts *GetModFilesOptions) (*Page[*File], error) {
	if m.client == nil {
		return nil, ErrNoClient
	}
	return m.client.GetModFiles(ctx, m.ID, opts)
}

// GetFile retrieves one of the mod's files.
func (m *Mod) GetFile(ctx context.Context, fileID int) (*File, error) {
	if m.client == nil {
		return nil, ErrNoClient
	}
	return m.client.GetModFile(ctx, m.ID, fileID)
}

// FeaturedMods is the result of GetFeaturedMods.
type FeaturedMods struct {
	Featured        []*Mod `json:"featured"`
	Popular         []*Mod `json:"popular"`
	RecentlyUpdated []*Mod `json:"recentlyUpdated"`
}

// SearchMods returns the mods of a game that match opts.
func (c *Client) SearchMods(ctx context.Context, gameID int, opts *SearchModsOptions) (*Page[*Mod], error) {
	payload, err := c.fetchURL(ctx, "/v1/mods/search", request{query: opts.query(gameID)})
	if err != nil {
		return nil, fmt.Errorf("failed to search mods for game %d: %w", gameID, err)
	}
	return materializePage(c, payload, newMod)
}

// GetMod retrieves a single mod.
func (c *Client) GetMod(ctx context.Context, modID int) (*Mod, error) {
	data, err := c.fetchData(ctx, fmt.Sprintf("/v1/mods/%d", modID), request{})
	if err != nil {
		return nil, fmt.Errorf("failed to get mod %d: %w", modID, err)
	}
	return newMod(c, data)
}

// GetMods retrieves several mods in one request.
func (c *Client) GetMods(ctx context.Context, modIDs []int) ([]*Mod, error) {
	body := map[string]any{"modIds": nonNil(modIDs)}
	data, err := c.fetchData(ctx, "/v1/mods", request{body: body})
	if err != nil {
		return nil, fmt.Errorf("failed to get mods: %w", err)
	}
	return materializeArray(c, data, newMod)
}

// GetFeaturedMods returns featured, popular and recently updated mods of a game.
func (c *Client) GetFeaturedMods(ctx context.Context, req FeaturedModsRequest) (*FeaturedMods, error) {
	req.ExcludedModIDs = nonNil(req.ExcludedModIDs)
	data, err := c.fetchData(ctx, "/v1/mods/featured", request{body: req})
	if err != nil {
		return nil, fmt.Errorf("failed to get featured mods for game %d: %w", req.GameID, err)
	}

	record, ok := data.(map[string]any)
	if !ok {
		return nil, &DecodeError{Type: "*curseforge.FeaturedMods", Err: fmt.Errorf("expected object, got %T", data)}
	}
	var out FeaturedMods
	if out.Featured, err = materializeArray(c, record["featured"], newMod); err != nil {
		return nil, err
	}
	if out.Popular, err = materializeArray(c, record["popular"], newMod); err != nil {
		return nil, err
	}
	if out.RecentlyUpdated, err = materializeArray(c, record["recentlyUpdated"], newMod); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetModDescription returns the full HTML description of a mod.
func (c *Client) GetModDescription(ctx context.Context, modID int) (string, error) {
	data, err := c.fetchData(ctx, fmt.Sprintf("/v1/mods/%d/description", modID), request{})
	if err != nil {
		return "", fmt.Errorf("failed to get description for mod %d: %w", modID, err)
	}
	return decodeAs[string](data)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
