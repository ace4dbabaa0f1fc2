package curseforge

// GetGamesOptions pages through /v1/games.
type GetGamesOptions struct {
	Index    int // zero based index of the first item to include
	PageSize int
}

func (o *GetGamesOptions) query() query {
	var q query
	if o == nil {
		return q
	}
	q.addInt("index", o.Index)
	q.addInt("pageSize", o.PageSize)
	return q
}

// GetCategoriesOptions narrows /v1/categories.
type GetCategoriesOptions struct {
	ClassID     int
	ClassesOnly bool // only return classes; used together with a game id
}

func (o *GetCategoriesOptions) query(gameID int) query {
	var q query
	q.add("gameId", gameID)
	if o == nil {
		return q
	}
	q.addInt("classId", o.ClassID)
	q.addBool("classesOnly", o.ClassesOnly)
	return q
}

// SearchModsOptions holds the /v1/mods/search filters. Zero values are omitted.
type SearchModsOptions struct {
	ClassID           int
	CategoryID        int
	GameVersion       string
	SearchFilter      string // free text over mod name and author
	SortField         ModsSearchSortField
	SortOrder         SortOrder
	ModLoaderType     ModLoaderType // must be combined with GameVersion
	GameVersionTypeID int
	Slug              string // unique when combined with ClassID
	Index             int
	PageSize          int
}

func (o *SearchModsOptions) query(gameID int) query {
	var q query
	q.add("gameId", gameID)
	if o == nil {
		return q
	}
	q.addInt("classId", o.ClassID)
	q.addInt("categoryId", o.CategoryID)
	q.addString("gameVersion", o.GameVersion)
	q.addString("searchFilter", o.SearchFilter)
	q.addInt("sortField", int(o.SortField))
	q.addString("sortOrder", string(o.SortOrder))
	q.addInt("modLoaderType", int(o.ModLoaderType))
	q.addInt("gameVersionTypeId", o.GameVersionTypeID)
	q.addString("slug", o.Slug)
	q.addInt("index", o.Index)
	q.addInt("pageSize", o.PageSize)
	return q
}

// GetModFilesOptions filters /v1/mods/{modId}/files.
type GetModFilesOptions struct {
	GameVersion       string
	ModLoaderType     ModLoaderType
	GameVersionTypeID int
	Index             int
	PageSize          int
}

func (o *GetModFilesOptions) query() query {
	var q query
	if o == nil {
		return q
	}
	q.addString("gameVersion", o.GameVersion)
	q.addInt("modLoaderType", int(o.ModLoaderType))
	q.addInt("gameVersionTypeId", o.GameVersionTypeID)
	q.addInt("index", o.Index)
	q.addInt("pageSize", o.PageSize)
	return q
}

// GetMinecraftVersionsOptions controls ordering of /v1/minecraft/version.
type GetMinecraftVersionsOptions struct {
	SortDescending bool
}

func (o *GetMinecraftVersionsOptions) query() query {
	var q query
	if o == nil {
		return q
	}
	q.addBool("sortDescending", o.SortDescending)
	return q
}

// GetMinecraftModLoadersOptions filters /v1/minecraft/modloader.
type GetMinecraftModLoadersOptions struct {
	Version    string
	IncludeAll bool
}

func (o *GetMinecraftModLoadersOptions) query() query {
	var q query
	if o == nil {
		return q
	}
	q.addString("version", o.Version)
	q.addBool("includeAll", o.IncludeAll)
	return q
}

// FeaturedModsRequest is the body of POST /v1/mods/featured.
type FeaturedModsRequest struct {
	GameID            int   `json:"gameId"`
	ExcludedModIDs    []int `json:"excludedModIds"`
	GameVersionTypeID int   `json:"gameVersionTypeId,omitempty"`
}

// FuzzyMatchesRequest is the body of POST /v1/fingerprints/fuzzy.
type FuzzyMatchesRequest struct {
	GameID       int                 `json:"gameId"`
	Fingerprints []FolderFingerprint `json:"fingerprints"`
}
