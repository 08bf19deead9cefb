package graphics

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Placeholder grid: longitude bands by latitude bands.
const (
	placeholderWidth  = 256
	placeholderHeight = 128
	placeholderCols   = 16
	placeholderRows   = 8
	placeholderShade  = 0.45
)

// TextureManager loads body textures from a directory and caches them.
// Missing or unreadable files are replaced by a procedural placeholder.
type TextureManager struct {
	dir      string
	textures map[string]*ebiten.Image
	missing  map[string]bool
}

func NewTextureManager(dir string) *TextureManager {
	return &TextureManager{
		dir:      dir,
		textures: make(map[string]*ebiten.Image),
		missing:  make(map[string]bool),
	}
}

// GetTexture returns the texture for name, tinted placeholder if it cannot
// be loaded. The result is cached either way.
func (tm *TextureManager) GetTexture(name string, tint color.RGBA) *ebiten.Image {
	if tex, exists := tm.textures[name]; exists {
		return tex
	}

	img, err := tm.load(name)
	if err != nil {
		log.Printf("texture %q unavailable, using placeholder: %v", name, err)
		tm.missing[name] = true
		img = Placeholder(placeholderWidth, placeholderHeight, tint)
	}
	tex := ebiten.NewImageFromImage(img)
	tm.textures[name] = tex
	return tex
}

// IsPlaceholder reports whether name fell back to a placeholder.
func (tm *TextureManager) IsPlaceholder(name string) bool {
	return tm.missing[name]
}

func (tm *TextureManager) load(name string) (image.Image, error) {
	if name == "" {
		return nil, fmt.Errorf("no texture configured")
	}
	return LoadImage(filepath.Join(tm.dir, name))
}

// LoadImage decodes a jpeg, png, bmp or webp file.
func LoadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("decode %s: empty image", path)
	}
	return img, nil
}

// Placeholder draws a latitude/longitude checkerboard in two shades of
// base, so spin stays visible on untextured bodies.
func Placeholder(w, h int, base color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	light := color.RGBA{base.R, base.G, base.B, 255}
	dark := Shade(light, placeholderShade)

	cellW := max(1, w/placeholderCols)
	cellH := max(1, h/placeholderRows)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/cellW+y/cellH)%2 == 0 {
				img.SetRGBA(x, y, light)
			} else {
				img.SetRGBA(x, y, dark)
			}
		}
	}
	return img
}

// Shade blends c toward black by amount in CIE L*a*b* space.
func Shade(c color.RGBA, amount float64) color.RGBA {
	cc, _ := colorful.MakeColor(c)
	r, g, b := cc.BlendLab(colorful.Color{}, amount).Clamped().RGB255()
	return color.RGBA{r, g, b, c.A}
}

// RGBA converts a configured [r, g, b] triple.
func RGBA(c [3]int) color.RGBA {
	return color.RGBA{clampByte(c[0]), clampByte(c[1]), clampByte(c[2]), 255}
}

func clampByte(v int) uint8 {
	return uint8(min(255, max(0, v)))
}
