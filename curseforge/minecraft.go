package curseforge

import (
	"context"
	"fmt"
	"net/url"
)

// GetMinecraftVersions lists Minecraft versions, oldest first unless
// opts.SortDescending is set.
func (c *Client) GetMinecraftVersions(ctx context.Context, opts *GetMinecraftVersionsOptions) ([]MinecraftGameVersion, error) {
	data, err := c.fetchData(ctx, "/v1/minecraft/version", request{query: opts.query()})
	if err != nil {
		return nil, fmt.Errorf("failed to get minecraft versions: %w", err)
	}
	return materializeArray(c, data, plain[MinecraftGameVersion])
}

// GetSpecificMinecraftVersion retrieves one Minecraft version by its version string.
func (c *Client) GetSpecificMinecraftVersion(ctx context.Context, version string) (*MinecraftGameVersion, error) {
	data, err := c.fetchData(ctx, "/v1/minecraft/version/"+url.PathEscape(version), request{})
	if err != nil {
		return nil, fmt.Errorf("failed to get minecraft version %s: %w", version, err)
	}
	v, err := decodeAs[MinecraftGameVersion](data)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// GetMinecraftModLoaders lists mod loaders, optionally for a single game version.
func (c *Client) GetMinecraftModLoaders(ctx context.Context, opts *GetMinecraftModLoadersOptions) ([]MinecraftModLoaderIndex, error) {
	data, err := c.fetchData(ctx, "/v1/minecraft/modloader", request{query: opts.query()})
	if err != nil {
		return nil, fmt.Errorf("failed to get minecraft mod loaders: %w", err)
	}
	return materializeArray(c, data, plain[MinecraftModLoaderIndex])
}

// GetSpecificMinecraftModLoader retrieves a mod loader by name, e.g. "forge-40.1.0".
func (c *Client) GetSpecificMinecraftModLoader(ctx context.Context, name string) (*MinecraftModLoaderVersion, error) {
	data, err := c.fetchData(ctx, "/v1/minecraft/modloader/"+url.PathEscape(name), request{})
	if err != nil {
		return nil, fmt.Errorf("failed to get minecraft mod loader %s: %w", name, err)
	}
	v, err := decodeAs[MinecraftModLoaderVersion](data)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
