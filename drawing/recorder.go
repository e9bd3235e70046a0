package drawing

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"unicode/utf8"

	"github.com/plus3/puffin/geom"
)

// Op names a recorded draw call.
type Op string

const (
	OpBegin   Op = "begin"
	OpEnd     Op = "end"
	OpClear   Op = "clear"
	OpTexture Op = "texture"
	OpFill    Op = "fill"
	OpText    Op = "text"
)

// Call is one recorded draw call. Only the fields relevant to Op are set.
type Call struct {
	Op        Op
	Transform Transform
	Texture   string
	X, Y      float64
	Src       image.Rectangle
	Rect      geom.Rect
	Text      string
	Colour    color.NRGBA
}

// RecordedTexture is the texture handed out by a Recorder.
type RecordedTexture struct {
	Path     string
	Width    int
	Height   int
	Disposed bool
}

func (t *RecordedTexture) Size() (int, int) { return t.Width, t.Height }
func (t *RecordedTexture) Dispose()         { t.Disposed = true }

// FixedFont measures every rune as CharWidth wide.
type FixedFont struct {
	Name       string
	Size       int
	CharWidth  float64
	LineHeight float64
}

func (f *FixedFont) Measure(s string) (float64, float64) {
	return float64(utf8.RuneCountInString(s)) * f.CharWidth, f.LineHeight
}

// Recorder is a headless Backend that records draw calls instead of
// rendering them.
type Recorder struct {
	// Sizes overrides the 32x32 size reported for a texture path.
	Sizes map[string]image.Point
	// Missing paths and font names fail to load with os.ErrNotExist.
	Missing map[string]bool

	Calls    []Call
	Textures []*RecordedTexture
	Fonts    []*FixedFont
}

var _ Backend = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{
		Sizes:   make(map[string]image.Point),
		Missing: make(map[string]bool),
	}
}

func (r *Recorder) LoadTexture(path string) (Texture, error) {
	if r.Missing[path] {
		return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}
	size, ok := r.Sizes[path]
	if !ok {
		size = image.Pt(32, 32)
	}
	tex := &RecordedTexture{Path: path, Width: size.X, Height: size.Y}
	r.Textures = append(r.Textures, tex)
	return tex, nil
}

func (r *Recorder) LoadFont(name string, size int) (Font, error) {
	if r.Missing[name] {
		return nil, fmt.Errorf("open font %s: %w", name, os.ErrNotExist)
	}
	font := &FixedFont{Name: name, Size: size, CharWidth: float64(size) / 2, LineHeight: float64(size)}
	r.Fonts = append(r.Fonts, font)
	return font, nil
}

func (r *Recorder) Begin(t Transform) {
	r.Calls = append(r.Calls, Call{Op: OpBegin, Transform: t})
}

func (r *Recorder) End() {
	r.Calls = append(r.Calls, Call{Op: OpEnd})
}

func (r *Recorder) Clear(c color.Color) {
	r.Calls = append(r.Calls, Call{Op: OpClear, Colour: toNRGBA(c)})
}

func (r *Recorder) DrawTexture(tex Texture, x, y float64, src image.Rectangle, tint color.Color) {
	path := ""
	if rt, ok := tex.(*RecordedTexture); ok {
		path = rt.Path
	}
	r.Calls = append(r.Calls, Call{Op: OpTexture, Texture: path, X: x, Y: y, Src: src, Colour: toNRGBA(tint)})
}

func (r *Recorder) FillRect(rect geom.Rect, c color.Color) {
	r.Calls = append(r.Calls, Call{Op: OpFill, Rect: rect, Colour: toNRGBA(c)})
}

func (r *Recorder) DrawText(font Font, s string, x, y float64, c color.Color) {
	r.Calls = append(r.Calls, Call{Op: OpText, Text: s, X: x, Y: y, Colour: toNRGBA(c)})
}

// Reset drops the recorded calls but keeps loaded resources.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

// LiveTextures returns the textures that have not been disposed.
func (r *Recorder) LiveTextures() []*RecordedTexture {
	var live []*RecordedTexture
	for _, tex := range r.Textures {
		if !tex.Disposed {
			live = append(live, tex)
		}
	}
	return live
}

// Ops returns the op of every recorded call.
func (r *Recorder) Ops() []Op {
	ops := make([]Op, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Filter returns the recorded calls with the given op.
func (r *Recorder) Filter(op Op) []Call {
	var calls []Call
	for _, c := range r.Calls {
		if c.Op == op {
			calls = append(calls, c)
		}
	}
	return calls
}

func toNRGBA(c color.Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
