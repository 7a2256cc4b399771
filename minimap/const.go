package minimap

// Colour tolerances, per channel on the 0-255 scale
var (
	// The black frame around the overlay renders flat, so a tight tolerance is enough.
	BACKGROUND_TOLERANCE = 10
	// Cursor vs. empty terrain when locating the cursor.
	CURSOR_TOLERANCE = 20
	// Cursor colour continuity when measuring the blob; its edges are anti-aliased.
	CURSOR_SIZE_TOLERANCE = 25
)

// Tile pitch padding, added to the measured cursor size.
// Approximates the gap between two neighbouring screens on the minimap.
var (
	TILE_PAD_X = 5
	TILE_PAD_Y = 4
)
