package ggview

import (
	"fmt"

	"github.com/gogpu/ggview/backend"
	"github.com/gogpu/ggview/internal/decode"
	"github.com/gogpu/ggview/internal/parallel"
)

// DefaultTileLimit is the tile dimension used when the renderer does not
// report a texture size limit of its own.
const DefaultTileLimit = 2048

// Tile is one rectangular piece of a decoded image, uploaded as a texture.
type Tile struct {
	// X, Y is the tile origin in image pixels.
	X, Y int

	// W, H is the tile extent. Edge tiles are clipped to the image, never
	// padded, so the texture is exactly this size.
	W, H int

	// Tex is the uploaded texture.
	Tex backend.Texture
}

// TileID returns the stable texture identifier for a tile: the image path
// plus the tile origin. Reloading the same file reproduces the same ids.
func TileID(path string, x, y int) string {
	return fmt.Sprintf("%s#%d,%d", path, x, y)
}

// ImageSet is a fully tiled image ready to draw. It is immutable after
// construction; navigation replaces the whole set.
type ImageSet struct {
	Path string
	W, H int

	// Tiles in row-major order, top-left first.
	Tiles []Tile
}

// Close releases every tile texture. Safe on nil and safe to call twice.
func (s *ImageSet) Close() {
	if s == nil {
		return
	}
	for i := range s.Tiles {
		if s.Tiles[i].Tex != nil {
			s.Tiles[i].Tex.Close()
		}
	}
}

// BuildImageSet partitions a raster into tiles no larger than limit on
// either axis and uploads each as its own texture. A limit of 0 or less
// falls back to DefaultTileLimit; a smaller limit reported by the factory
// wins either way, since larger textures could not be created.
//
// The grid is row-major with the top-left tile first. Pixel packing runs on
// the pool when one is given, one job per tile. On any upload failure the
// textures created so far are released and the error is returned; a huge
// image never panics, it fails the load.
func BuildImageSet(r *decode.Raster, path string, limit int, f backend.TextureFactory, pool *parallel.Pool) (*ImageSet, error) {
	if limit <= 0 {
		limit = DefaultTileLimit
	}
	if d := f.MaxTextureDim(); d > 0 && d < limit {
		limit = d
	}

	cols := (r.W + limit - 1) / limit
	rows := (r.H + limit - 1) / limit

	tiles := make([]Tile, 0, cols*rows)
	for y := 0; y < r.H; y += limit {
		for x := 0; x < r.W; x += limit {
			tiles = append(tiles, Tile{
				X: x, Y: y,
				W: min(limit, r.W-x),
				H: min(limit, r.H-y),
			})
		}
	}

	// Pack each tile's pixel block scanline by scanline into its own
	// contiguous buffer.
	bufs := make([][]byte, len(tiles))
	pack := func(i int) {
		t := tiles[i]
		pix := make([]byte, 4*t.W*t.H)
		for row := range t.H {
			copy(pix[row*t.W*4:(row+1)*t.W*4], r.SubRow(t.Y+row, t.X, t.W))
		}
		bufs[i] = pix
	}
	if pool != nil {
		pool.ForEach(len(tiles), pack)
	} else {
		for i := range tiles {
			pack(i)
		}
	}

	for i := range tiles {
		id := TileID(path, tiles[i].X, tiles[i].Y)
		tex, err := f.CreateTexture(id, tiles[i].W, tiles[i].H, bufs[i])
		if err != nil {
			for j := range i {
				tiles[j].Tex.Close()
			}
			return nil, fmt.Errorf("ggview: upload tile %s: %w", id, err)
		}
		tiles[i].Tex = tex
	}

	return &ImageSet{
		Path:  path,
		W:     r.W,
		H:     r.H,
		Tiles: tiles,
	}, nil
}
