// Package descriptor loads terrain descriptors: HCL files naming a heightmap,
// its resolution and vertical scale, and the tagged places on it.
//
// A descriptor holds one or more terrain blocks:
//
//	terrain "valley" {
//	  title          = "Green Valley"
//	  heightmap      = "valley.png"
//	  resolution_x   = 1024
//	  resolution_y   = 1024
//	  minimum_height = 0
//	  maximum_height = 295.07
//	  vertical_scale = maximum_height_m / resolution
//	  water_level    = 0.12
//
//	  tag "start" {
//	    u    = 0.1
//	    v    = 0.2
//	    type = "level_start"
//	  }
//	}
//
// Expressions may reference variables supplied by the caller (resolution and
// maximum_height_m above) and the functions min, max and abs.
//
// Heightmap paths are relative to the descriptor file. Tag types are "name"
// (the default, a label only), "level_start" and "level_end"; the latter two
// are path handles a session registers as destinations.
//
// Logging goes to the *slog.Logger stored in the context with WithLogger;
// without one, records are discarded.
package descriptor
