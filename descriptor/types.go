package descriptor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/terrapath/elevation"
)

// Sentinel errors for descriptor validation.
var (
	ErrNoTerrain        = errors.New("descriptor: no terrain block")
	ErrDuplicateTerrain = errors.New("descriptor: duplicate terrain name")
	ErrNoHeightmap      = errors.New("descriptor: heightmap path is empty")
	ErrBadResolution    = errors.New("descriptor: resolution must be positive")
	ErrBadScale         = errors.New("descriptor: vertical scale must be positive and finite")
	ErrBadTagType       = errors.New("descriptor: unknown tag type")
	ErrTagUV            = errors.New("descriptor: tag coordinates must lie in [0,1]")
)

// TagType classifies a tagged place.
type TagType int

const (
	// TagName is a label shown on the map.
	TagName TagType = iota
	// TagLevelStart marks where the level's path network begins.
	TagLevelStart
	// TagLevelEnd marks a place the network must reach.
	TagLevelEnd
)

var tagTypes = map[string]TagType{
	"name":        TagName,
	"level_start": TagLevelStart,
	"level_end":   TagLevelEnd,
}

// String returns the descriptor spelling of the type.
func (t TagType) String() string {
	switch t {
	case TagName:
		return "name"
	case TagLevelStart:
		return "level_start"
	case TagLevelEnd:
		return "level_end"
	default:
		return fmt.Sprintf("TagType(%d)", int(t))
	}
}

// Tag is a named place on the terrain in texture coordinates.
type Tag struct {
	Name string
	U, V float64
	Type TagType
}

// Local returns the tag's position on f.
func (t Tag) Local(f *elevation.Field) elevation.Point {
	return f.LocalFromUV(t.U, t.V)
}

// IsHandle reports whether the tag is a path handle.
func (t Tag) IsHandle() bool {
	return t.Type == TagLevelStart || t.Type == TagLevelEnd
}

// Terrain is one validated terrain block.
type Terrain struct {
	Name  string
	Title string
	// Heightmap is the image path, resolved against the descriptor's directory.
	Heightmap string

	ResolutionX, ResolutionY     int
	MinimumHeight, MaximumHeight float64
	VerticalScale                float64

	// WaterLevel and SnowLevel are nil when the block does not set them.
	WaterLevel, SnowLevel *float64

	Tags []Tag
}

// terrainFile is the decoding target for a whole descriptor file.
type terrainFile struct {
	Terrains []*terrainBlock `hcl:"terrain,block"`
}

type terrainBlock struct {
	Name          string      `hcl:"name,label"`
	Title         string      `hcl:"title,optional"`
	Heightmap     string      `hcl:"heightmap"`
	ResolutionX   int         `hcl:"resolution_x"`
	ResolutionY   int         `hcl:"resolution_y"`
	MinimumHeight float64     `hcl:"minimum_height,optional"`
	MaximumHeight float64     `hcl:"maximum_height,optional"`
	VerticalScale float64     `hcl:"vertical_scale"`
	WaterLevel    *float64    `hcl:"water_level,optional"`
	SnowLevel     *float64    `hcl:"snow_level,optional"`
	Tags          []*tagBlock `hcl:"tag,block"`
}

type tagBlock struct {
	Name string  `hcl:"name,label"`
	U    float64 `hcl:"u"`
	V    float64 `hcl:"v"`
	Type string  `hcl:"type,optional"`
}

type loggerKey struct{}

// WithLogger returns a context carrying l for Load, Parse and Terrain.Field.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFrom returns the context logger, or a discarding one.
func loggerFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
