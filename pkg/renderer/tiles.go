package renderer

// TileSize is the recommended square tile edge from spec §4.10.
const TileSize = 16

// Tile is a rectangular pixel range, half-open on Max like image.Rectangle:
// [MinX,MaxX) x [MinY,MaxY).
type Tile struct {
	MinX, MinY, MaxX, MaxY int
}

// tilesFor partitions a width x height image into TileSize x TileSize tiles,
// left-to-right then top-to-bottom; the last tile in each row/column is
// clipped to the image bounds rather than padded.
func tilesFor(width, height int) []Tile {
	var tiles []Tile
	for y := 0; y < height; y += TileSize {
		for x := 0; x < width; x += TileSize {
			tiles = append(tiles, Tile{
				MinX: x, MinY: y,
				MaxX: min(x+TileSize, width),
				MaxY: min(y+TileSize, height),
			})
		}
	}
	return tiles
}
