package curseforge

import (
	"context"
	"fmt"
	"time"
)

// Game is a game known to CurseForge.
type Game struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Slug         string        `json:"slug"`
	DateModified time.Time     `json:"dateModified"`
	Assets       GameAssets    `json:"assets"`
	Status       CoreStatus    `json:"status"`
	APIStatus    CoreApiStatus `json:"apiStatus"`

	client *Client
}

func newGame(c *Client, raw any) (*Game, error) {
	var g Game
	if err := decodeInto(raw, &g); err != nil {
		return nil, err
	}
	g.client = c
	return &g, nil
}

// GetVersions lists this game's versions grouped by version type.
func (g *Game) GetVersions(ctx context.Context) ([]GameVersionsByType, error) {
	if g.client == nil {
		return nil, ErrNoClient
	}
	return g.client.GetVersions(ctx, g.ID)
}

// GetVersionTypes lists this game's version types.
func (g *Game) GetVersionTypes(ctx context.Context) ([]GameVersionType, error) {
	if g.client == nil {
		return nil, ErrNoClient
	}
	return g.client.GetVersionTypes(ctx, g.ID)
}

// GetGames lists the games available to the API key.
func (c *Client) GetGames(ctx context.Context, opts *GetGamesOptions) (*Page[*Game], error) {
	payload, err := c.fetchURL(ctx, "/v1/games", request{query: opts.query()})
	if err != nil {
		return nil, fmt.Errorf("failed to get games: %w", err)
	}
	return materializePage(c, payload, newGame)
}

// GetGame retrieves a single game. Private games are only visible to their own API key.
func (c *Client) GetGame(ctx context.Context, gameID int) (*Game, error) {
	data, err := c.fetchData(ctx, fmt.Sprintf("/v1/games/%d", gameID), request{})
	if err != nil {
		return nil, fmt.Errorf("failed to get game %d: %w", gameID, err)
	}
	return newGame(c, data)
}

// GetVersions lists all versions of a game for each known version type.
func (c *Client) GetVersions(ctx context.Context, gameID int) ([]GameVersionsByType, error) {
	data, err := c.fetchData(ctx, fmt.Sprintf("/v1/games/%d/versions", gameID), request{})
	if err != nil {
		return nil, fmt.Errorf("failed to get versions for game %d: %w", gameID, err)
	}
	return materializeArray(c, data, plain[GameVersionsByType])
}

// GetVersionTypes lists the version types of a game.
func (c *Client) GetVersionTypes(ctx context.Context, gameID int) ([]GameVersionType, error) {
	data, err := c.fetchData(ctx, fmt.Sprintf("/v1/games/%d/version-types", gameID), request{})
	if err != nil {
		return nil, fmt.Errorf("failed to get version types for game %d: %w", gameID, err)
	}
	return materializeArray(c, data, plain[GameVersionType])
}

// GetCategories lists the classes and categories of a game. Set
// opts.ClassID to list only the categories under that class.
func (c *Client) GetCategories(ctx context.Context, gameID int, opts *GetCategoriesOptions) ([]Category, error) {
	data, err := c.fetchData(ctx, "/v1/categories", request{query: opts.query(gameID)})
	if err != nil {
		return nil, fmt.Errorf("failed to get categories for game %d: %w", gameID, err)
	}
	return materializeArray(c, data, plain[Category])
}
