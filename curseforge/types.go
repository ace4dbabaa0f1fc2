package curseforge

import (
	"strings"
	"time"
)

// Well-known game ids.
const (
	GameWorldOfWarcraft = 1
	GameMinecraft       = 432
	GameKerbalSpaceProg = 4401
	GameTheSims4        = 78062
	GameTerraria        = 431
)

type CoreApiStatus int

const (
	CoreApiStatusPrivate CoreApiStatus = 1
	CoreApiStatusPublic  CoreApiStatus = 2
)

type CoreStatus int

const (
	CoreStatusDraft         CoreStatus = 1
	CoreStatusTest          CoreStatus = 2
	CoreStatusPendingReview CoreStatus = 3
	CoreStatusRejected      CoreStatus = 4
	CoreStatusApproved      CoreStatus = 5
	CoreStatusLive          CoreStatus = 6
)

type FileRelationType int

const (
	EmbeddedLibrary    FileRelationType = 1
	OptionalDependency FileRelationType = 2
	RequiredDependency FileRelationType = 3
	Tool               FileRelationType = 4
	Incompatible       FileRelationType = 5
	Include            FileRelationType = 6
)

type FileReleaseType int

const (
	Release FileReleaseType = 1
	Beta    FileReleaseType = 2
	Alpha   FileReleaseType = 3
)

func (t FileReleaseType) String() string {
	switch t {
	case Release:
		return "release"
	case Beta:
		return "beta"
	case Alpha:
		return "alpha"
	default:
		return "unknown"
	}
}

type FileStatus int

const (
	FileStatusProcessing         FileStatus = 1
	FileStatusChangesRequired    FileStatus = 2
	FileStatusUnderReview        FileStatus = 3
	FileStatusApproved           FileStatus = 4
	FileStatusRejected           FileStatus = 5
	FileStatusMalwareDetected    FileStatus = 6
	FileStatusDeleted            FileStatus = 7
	FileStatusArchived           FileStatus = 8
	FileStatusTesting            FileStatus = 9
	FileStatusReleased           FileStatus = 10
	FileStatusReadyForReview     FileStatus = 11
	FileStatusDeprecated         FileStatus = 12
	FileStatusBaking             FileStatus = 13
	FileStatusAwaitingPublishing FileStatus = 14
	FileStatusFailedPublishing   FileStatus = 15
)

type GameVersionStatus int

const (
	GameVersionApproved GameVersionStatus = 1
	GameVersionDeleted  GameVersionStatus = 2
	GameVersionNew      GameVersionStatus = 3
)

type GameVersionTypeStatus int

const (
	GameVersionTypeNormal  GameVersionTypeStatus = 1
	GameVersionTypeDeleted GameVersionTypeStatus = 2
)

type HashAlgo int

const (
	Sha1 HashAlgo = 1
	Md5  HashAlgo = 2
)

type ModLoaderInstallMethod int

const (
	ForgeInstaller   ModLoaderInstallMethod = 1
	ForgeJarInstall  ModLoaderInstallMethod = 2
	ForgeInstallerV2 ModLoaderInstallMethod = 3
)

type ModLoaderType int

const (
	AnyLoader  ModLoaderType = 0
	Forge      ModLoaderType = 1
	Cauldron   ModLoaderType = 2
	LiteLoader ModLoaderType = 3
	Fabric     ModLoaderType = 4
	Quilt      ModLoaderType = 5
	NeoForge   ModLoaderType = 6
)

var modLoaderNames = map[ModLoaderType]string{
	AnyLoader:  "any",
	Forge:      "forge",
	Cauldron:   "cauldron",
	LiteLoader: "liteloader",
	Fabric:     "fabric",
	Quilt:      "quilt",
	NeoForge:   "neoforge",
}

func (t ModLoaderType) String() string {
	if name, ok := modLoaderNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseModLoaderType maps a loader name such as "fabric" onto its enum value.
func ParseModLoaderType(name string) (ModLoaderType, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range modLoaderNames {
		if n == name {
			return t, true
		}
	}
	return AnyLoader, false
}

type ModsSearchSortField int

const (
	SortFeatured       ModsSearchSortField = 1
	SortPopularity     ModsSearchSortField = 2
	SortLastUpdated    ModsSearchSortField = 3
	SortName           ModsSearchSortField = 4
	SortAuthor         ModsSearchSortField = 5
	SortTotalDownloads ModsSearchSortField = 6
	SortCategory       ModsSearchSortField = 7
	SortGameVersion    ModsSearchSortField = 8
)

type ModStatus int

const (
	ModStatusNew             ModStatus = 1
	ModStatusChangesRequired ModStatus = 2
	ModStatusUnderSoftReview ModStatus = 3
	ModStatusApproved        ModStatus = 4
	ModStatusRejected        ModStatus = 5
	ModStatusChangesMade     ModStatus = 6
	ModStatusInactive        ModStatus = 7
	ModStatusAbandoned       ModStatus = 8
	ModStatusDeleted         ModStatus = 9
	ModStatusUnderReview     ModStatus = 10
)

type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// Pagination describes the slice of results carried by a paginated response.
type Pagination struct {
	Index       int `json:"index"`       // zero based index of the first item
	PageSize    int `json:"pageSize"`    // requested number of items
	ResultCount int `json:"resultCount"` // items actually included
	TotalCount  int `json:"totalCount"`  // items available for the request
}

// Page pairs pagination metadata with the materialized items.
type Page[T any] struct {
	Pagination Pagination `json:"pagination"`
	Data       []T        `json:"data"`
}

type GameAssets struct {
	IconURL  string `json:"iconUrl"`
	TileURL  string `json:"tileUrl"`
	CoverURL string `json:"coverUrl"`
}

type GameVersionsByType struct {
	Type     int      `json:"type"`
	Versions []string `json:"versions"`
}

type GameVersionType struct {
	ID     int    `json:"id"`
	GameID int    `json:"gameId"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
}

type Category struct {
	ID               int       `json:"id"`
	GameID           int       `json:"gameId"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	URL              string    `json:"url"`
	IconURL          string    `json:"iconUrl"`
	DateModified     time.Time `json:"dateModified"`
	IsClass          bool      `json:"isClass,omitempty"`
	ClassID          int       `json:"classId,omitempty"`
	ParentCategoryID int       `json:"parentCategoryId,omitempty"`
	DisplayIndex     int       `json:"displayIndex,omitempty"`
}

type FileHash struct {
	Value string   `json:"value"`
	Algo  HashAlgo `json:"algo"`
}

type FileDependency struct {
	ModID        int              `json:"modId"`
	RelationType FileRelationType `json:"relationType"`
}

type FileModule struct {
	Name        string `json:"name"`
	Fingerprint int64  `json:"fingerprint"`
}

type SortableGameVersion struct {
	GameVersionName        string    `json:"gameVersionName"`   // e.g. 1.5b
	GameVersionPadded      string    `json:"gameVersionPadded"` // e.g. 0000000001.0000000005
	GameVersion            string    `json:"gameVersion"`       // e.g. 1.5
	GameVersionReleaseDate time.Time `json:"gameVersionReleaseDate"`
	GameVersionTypeID      int       `json:"gameVersionTypeId,omitempty"`
}

type FileIndex struct {
	GameVersion       string          `json:"gameVersion"`
	FileID            int             `json:"fileId"`
	Filename          string          `json:"filename"`
	ReleaseType       FileReleaseType `json:"releaseType"`
	GameVersionTypeID int             `json:"gameVersionTypeId,omitempty"`
	ModLoader         ModLoaderType   `json:"modLoader"`
}

type ModLinks struct {
	WebsiteURL string `json:"websiteUrl"`
	WikiURL    string `json:"wikiUrl"`
	IssuesURL  string `json:"issuesUrl"`
	SourceURL  string `json:"sourceUrl"`
}

type ModAuthor struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type ModAsset struct {
	ID           int    `json:"id"`
	ModID        int    `json:"modId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl"`
	URL          string `json:"url"`
}

type FolderFingerprint struct {
	Foldername   string  `json:"foldername"`
	Fingerprints []int64 `json:"fingerprints"`
}

type MinecraftGameVersion struct {
	ID                    int                   `json:"id"`
	GameVersionID         int                   `json:"gameVersionId"`
	VersionString         string                `json:"versionString"`
	JarDownloadURL        string                `json:"jarDownloadUrl"`
	JSONDownloadURL       string                `json:"jsonDownloadUrl"`
	Approved              bool                  `json:"approved"`
	DateModified          time.Time             `json:"dateModified"`
	GameVersionTypeID     int                   `json:"gameVersionTypeId"`
	GameVersionStatus     GameVersionStatus     `json:"gameVersionStatus"`
	GameVersionTypeStatus GameVersionTypeStatus `json:"gameVersionTypeStatus"`
}

type MinecraftModLoaderIndex struct {
	Name         string        `json:"name"`
	GameVersion  string        `json:"gameVersion"`
	Latest       bool          `json:"latest"`
	Recommended  bool          `json:"recommended"`
	DateModified time.Time     `json:"dateModified"`
	Type         ModLoaderType `json:"type"`
}

type MinecraftModLoaderVersion struct {
	ID                             int                    `json:"id"`
	GameVersionID                  int                    `json:"gameVersionId"`
	MinecraftGameVersionID         int                    `json:"minecraftGameVersionId"`
	ForgeVersion                   string                 `json:"forgeVersion"`
	Name                           string                 `json:"name"`
	Type                           ModLoaderType          `json:"type"`
	DownloadURL                    string                 `json:"downloadUrl"`
	Filename                       string                 `json:"filename"`
	InstallMethod                  ModLoaderInstallMethod `json:"installMethod"`
	Latest                         bool                   `json:"latest"`
	Recommended                    bool                   `json:"recommended"`
	Approved                       bool                   `json:"approved"`
	DateModified                   time.Time              `json:"dateModified"`
	MavenVersionString             string                 `json:"mavenVersionString"`
	VersionJSON                    string                 `json:"versionJson"`
	LibrariesInstallLocation       string                 `json:"librariesInstallLocation"`
	MinecraftVersion               string                 `json:"minecraftVersion"`
	AdditionalFilesJSON            string                 `json:"additionalFilesJson"`
	ModLoaderGameVersionID         int                    `json:"modLoaderGameVersionId"`
	ModLoaderGameVersionTypeID     int                    `json:"modLoaderGameVersionTypeId"`
	ModLoaderGameVersionStatus     GameVersionStatus      `json:"modLoaderGameVersionStatus"`
	ModLoaderGameVersionTypeStatus GameVersionTypeStatus  `json:"modLoaderGameVersionTypeStatus"`
	McGameVersionID                int                    `json:"mcGameVersionId"`
	McGameVersionTypeID            int                    `json:"mcGameVersionTypeId"`
	McGameVersionStatus            GameVersionStatus      `json:"mcGameVersionStatus"`
	McGameVersionTypeStatus        GameVersionTypeStatus  `json:"mcGameVersionTypeStatus"`
	InstallProfileJSON             string                 `json:"installProfileJson"`
}
