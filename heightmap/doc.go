// Package heightmap turns grayscale images into elevation fields.
//
// Supported formats are PNG, TIFF and BMP. 16-bit grayscale sources keep
// their full precision and produce a field with bit depth 16; all other
// sources are read as 8-bit luminance.
//
// Image row 0 is the top of the picture while field row 0 is the bottom of
// the terrain, so rows are flipped on conversion.
//
// When a declared resolution is supplied and the image differs from it, the
// image is resampled bilinearly before conversion.
package heightmap
