// Package ebiten runs Puffin scenes on Ebitengine. It provides the drawing
// backend, asset loading, mouse and keyboard providers, a beep based audio
// player and an ebiten.Game that drives a scene.Director.
package ebiten

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/puffin/drawing"
	"github.com/plus3/puffin/geom"
)

type texture struct {
	img *ebiten.Image
}

func (t *texture) Size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

func (t *texture) Dispose() { t.img.Deallocate() }

type font struct {
	face       *text.GoTextFace
	lineHeight float64
}

func (f *font) Measure(s string) (float64, float64) {
	return text.Measure(s, f.face, f.lineHeight)
}

// Backend draws onto the ebiten image set with SetTarget and loads textures
// and TrueType fonts from disk. Font files are looked up as
// <fontDir>/<name>.ttf.
type Backend struct {
	fontDir string
	sources map[string]*text.GoTextFaceSource

	target    *ebiten.Image
	transform drawing.Transform
	geoM      ebiten.GeoM
}

func NewBackend(fontDir string) *Backend {
	return &Backend{
		fontDir:   fontDir,
		sources:   make(map[string]*text.GoTextFaceSource),
		transform: drawing.Identity,
	}
}

// SetTarget selects the image the next frame is drawn onto.
func (b *Backend) SetTarget(img *ebiten.Image) { b.target = img }

func (b *Backend) LoadTexture(path string) (drawing.Texture, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, err
	}
	return &texture{img: img}, nil
}

// LoadFont parses each font file once and shares the source between sizes.
func (b *Backend) LoadFont(name string, size int) (drawing.Font, error) {
	source, ok := b.sources[name]
	if !ok {
		f, err := os.Open(filepath.Join(b.fontDir, name+".ttf"))
		if err != nil {
			return nil, err
		}
		defer f.Close()

		source, err = text.NewGoTextFaceSource(f)
		if err != nil {
			return nil, fmt.Errorf("parse font %q: %w", name, err)
		}
		b.sources[name] = source
	}

	face := &text.GoTextFace{Source: source, Size: float64(size)}
	m := face.Metrics()
	return &font{face: face, lineHeight: m.HAscent + m.HDescent + m.HLineGap}, nil
}

func (b *Backend) Begin(t drawing.Transform) {
	b.transform = t
	b.geoM.Reset()
	b.geoM.Scale(t.Scale(), t.Scale())
	b.geoM.Translate(t.TranslateX, t.TranslateY)
}

func (b *Backend) End() {
	b.transform = drawing.Identity
	b.geoM.Reset()
}

func (b *Backend) Clear(c color.Color) {
	if b.target == nil {
		return
	}
	b.target.Fill(c)
}

func (b *Backend) DrawTexture(tex drawing.Texture, x, y float64, src image.Rectangle, tint color.Color) {
	t, ok := tex.(*texture)
	if !ok || b.target == nil {
		return
	}
	img := t.img
	if !src.Empty() {
		img = img.SubImage(src).(*ebiten.Image)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(b.geoM)
	op.ColorScale.ScaleWithColor(tint)
	b.target.DrawImage(img, op)
}

func (b *Backend) FillRect(r geom.Rect, c color.Color) {
	if b.target == nil {
		return
	}
	x0, y0 := b.transform.Apply(r.X, r.Y)
	x1, y1 := b.transform.Apply(r.Right(), r.Bottom())
	vector.DrawFilledRect(b.target, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), c, false)
}

func (b *Backend) DrawText(f drawing.Font, s string, x, y float64, c color.Color) {
	ft, ok := f.(*font)
	if !ok || b.target == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(b.geoM)
	op.ColorScale.ScaleWithColor(c)
	op.LineSpacing = ft.lineHeight
	text.Draw(b.target, s, ft.face, op)
}
