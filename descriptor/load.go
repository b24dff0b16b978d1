package descriptor

import (
	"context"
	"fmt"
	"math"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/katalvlaran/terrapath/elevation"
	"github.com/katalvlaran/terrapath/heightmap"
)

// Load parses the descriptor file at path. vars are available to
// expressions by name; nil means none.
func Load(ctx context.Context, path string, vars map[string]cty.Value) ([]*Terrain, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("descriptor: failed to parse %s: %w", path, diags)
	}
	return decode(ctx, file, path, vars)
}

// Parse is Load for in-memory source; filename names the source in
// diagnostics and anchors relative heightmap paths.
func Parse(ctx context.Context, src []byte, filename string, vars map[string]cty.Value) ([]*Terrain, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("descriptor: failed to parse %s: %w", filename, diags)
	}
	return decode(ctx, file, filename, vars)
}

func decode(ctx context.Context, file *hcl.File, filename string, vars map[string]cty.Value) ([]*Terrain, error) {
	logger := loggerFrom(ctx)

	var root terrainFile
	if diags := gohcl.DecodeBody(file.Body, evalContext(vars), &root); diags.HasErrors() {
		return nil, fmt.Errorf("descriptor: failed to decode %s: %w", filename, diags)
	}
	if len(root.Terrains) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoTerrain, filename)
	}

	dir := filepath.Dir(filename)
	seen := make(map[string]struct{}, len(root.Terrains))
	out := make([]*Terrain, 0, len(root.Terrains))
	for _, b := range root.Terrains {
		if _, dup := seen[b.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTerrain, b.Name)
		}
		seen[b.Name] = struct{}{}

		t, err := translate(b, dir)
		if err != nil {
			return nil, fmt.Errorf("terrain %q: %w", b.Name, err)
		}
		out = append(out, t)
		logger.Debug("terrain described", "name", t.Name, "heightmap", t.Heightmap, "tags", len(t.Tags))
	}

	return out, nil
}

// evalContext exposes the caller's variables and a few numeric functions.
func evalContext(vars map[string]cty.Value) *hcl.EvalContext {
	if vars == nil {
		vars = map[string]cty.Value{}
	}
	return &hcl.EvalContext{
		Variables: vars,
		Functions: map[string]function.Function{
			"min": stdlib.MinFunc,
			"max": stdlib.MaxFunc,
			"abs": stdlib.AbsoluteFunc,
		},
	}
}

// translate validates a decoded block and converts it into a Terrain.
func translate(b *terrainBlock, dir string) (*Terrain, error) {
	if b.Heightmap == "" {
		return nil, ErrNoHeightmap
	}
	if b.ResolutionX <= 0 || b.ResolutionY <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadResolution, b.ResolutionX, b.ResolutionY)
	}
	if !(b.VerticalScale > 0) || math.IsInf(b.VerticalScale, 0) {
		return nil, fmt.Errorf("%w: %v", ErrBadScale, b.VerticalScale)
	}

	path := b.Heightmap
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	t := &Terrain{
		Name:          b.Name,
		Title:         b.Title,
		Heightmap:     path,
		ResolutionX:   b.ResolutionX,
		ResolutionY:   b.ResolutionY,
		MinimumHeight: b.MinimumHeight,
		MaximumHeight: b.MaximumHeight,
		VerticalScale: b.VerticalScale,
		WaterLevel:    b.WaterLevel,
		SnowLevel:     b.SnowLevel,
		Tags:          make([]Tag, 0, len(b.Tags)),
	}
	if t.Title == "" {
		t.Title = b.Name
	}

	for _, tb := range b.Tags {
		kind := TagName
		if tb.Type != "" {
			k, ok := tagTypes[tb.Type]
			if !ok {
				return nil, fmt.Errorf("%w: tag %q has type %q", ErrBadTagType, tb.Name, tb.Type)
			}
			kind = k
		}
		if tb.U < 0 || tb.U > 1 || tb.V < 0 || tb.V > 1 {
			return nil, fmt.Errorf("%w: tag %q at (%v,%v)", ErrTagUV, tb.Name, tb.U, tb.V)
		}
		t.Tags = append(t.Tags, Tag{Name: tb.Name, U: tb.U, V: tb.V, Type: kind})
	}

	return t, nil
}

// Field loads the terrain's heightmap at its declared resolution and vertical
// scale. Extra options are applied last.
func (t *Terrain) Field(ctx context.Context, opts ...heightmap.Option) (*elevation.Field, error) {
	base := []heightmap.Option{
		heightmap.WithResolution(t.ResolutionX, t.ResolutionY),
		heightmap.WithFieldOptions(elevation.WithVerticalScale(t.VerticalScale)),
		heightmap.WithLogger(loggerFrom(ctx)),
	}
	return heightmap.Load(t.Heightmap, append(base, opts...)...)
}

// Handles returns the tags that are path handles, in declaration order.
func (t *Terrain) Handles() []Tag {
	var out []Tag
	for _, tag := range t.Tags {
		if tag.IsHandle() {
			out = append(out, tag)
		}
	}
	return out
}
