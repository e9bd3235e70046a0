package drawing

import (
	"errors"
	"fmt"
	"image"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/kamstrup/intmap"
	"github.com/plus3/puffin/ecs"
	"github.com/plus3/puffin/logging"
	"github.com/plus3/puffin/tiles"
	"go.uber.org/zap"
)

// ErrResourceLoad wraps every texture or font load failure.
var ErrResourceLoad = errors.New("drawing: resource load failed")

// Background is what the surface clears to before drawing a frame.
type Background struct {
	Colour uint32
	// Image, when set, is drawn over the colour in screen space.
	Image string
}

// Options configures a Surface.
type Options struct {
	// Width and Height are the render target size, used to centre following
	// cameras.
	Width, Height int

	DefaultFont     string
	DefaultFontSize int

	// ShowCollisionAreas overlays every collision box in translucent red.
	ShowCollisionAreas bool

	Logger *zap.Logger
}

type spriteEntry struct {
	fileName string
	texture  Texture
}

type fontRef struct {
	font Font
	refs int
}

type loadedImage struct {
	fileName string
	texture  Texture
}

// Surface draws the entities and tile maps of one scene. It owns every
// texture and font it loads and releases them when the entity or tile map
// that needed them is removed, or when the surface is disposed.
type Surface struct {
	backend Backend
	opts    Options
	logger  *zap.Logger

	entities []*ecs.Entity
	tileMaps []*tiles.TileMap

	sprites     *intmap.Map[ecs.EntityID, spriteEntry]
	entityFonts *intmap.Map[ecs.EntityID, uint64]
	fonts       *intmap.Map[uint64, *fontRef]
	tileImages  map[*tiles.TileMap]Texture
	background  loadedImage

	transform Transform
	subs      []ecs.Subscription
	disposed  bool
}

// NewSurface creates a surface drawing to backend. Sprite and font change
// events published on bus invalidate the matching cache entries.
func NewSurface(bus *ecs.EventBus, backend Backend, opts Options) *Surface {
	if opts.DefaultFontSize <= 0 {
		opts.DefaultFontSize = 16
	}
	s := &Surface{
		backend:     backend,
		opts:        opts,
		logger:      logging.OrNop(opts.Logger),
		sprites:     intmap.New[ecs.EntityID, spriteEntry](64),
		entityFonts: intmap.New[ecs.EntityID, uint64](64),
		fonts:       intmap.New[uint64, *fontRef](8),
		tileImages:  make(map[*tiles.TileMap]Texture),
		transform:   Identity,
	}
	s.subs = append(s.subs,
		ecs.Subscribe(bus, func(ev ecs.SpriteChanged) { s.releaseSprite(ev.Entity.ID()) }),
		ecs.Subscribe(bus, func(ev ecs.LabelFontChanged) { s.releaseFont(ev.Entity.ID()) }),
	)
	return s
}

func (s *Surface) AddEntity(e *ecs.Entity) {
	if !slices.Contains(s.entities, e) {
		s.entities = append(s.entities, e)
	}
}

// RemoveEntity stops drawing e and releases its sprite and font.
func (s *Surface) RemoveEntity(e *ecs.Entity) {
	s.entities = slices.DeleteFunc(s.entities, func(o *ecs.Entity) bool { return o == e })
	s.releaseSprite(e.ID())
	s.releaseFont(e.ID())
}

func (s *Surface) AddTileMap(m *tiles.TileMap) {
	if !slices.Contains(s.tileMaps, m) {
		s.tileMaps = append(s.tileMaps, m)
	}
}

// RemoveTileMap stops drawing m and releases its atlas.
func (s *Surface) RemoveTileMap(m *tiles.TileMap) {
	s.tileMaps = slices.DeleteFunc(s.tileMaps, func(o *tiles.TileMap) bool { return o == m })
	if tex, ok := s.tileImages[m]; ok {
		tex.Dispose()
		delete(s.tileImages, m)
	}
}

// SetShowCollisionAreas toggles the collision overlay.
func (s *Surface) SetShowCollisionAreas(show bool) { s.opts.ShowCollisionAreas = show }

func (s *Surface) ShowCollisionAreas() bool { return s.opts.ShowCollisionAreas }

// ActiveTransform returns the camera transform used by the last frame.
func (s *Surface) ActiveTransform() Transform { return s.transform }

// Camera returns the entity whose camera is active: the last added entity
// with a camera component.
func (s *Surface) Camera() *ecs.Entity {
	for _, e := range slices.Backward(s.entities) {
		if e.Has(ecs.KindCamera) {
			return e
		}
	}
	return nil
}

// SpriteCount returns the number of cached entity textures.
func (s *Surface) SpriteCount() int { return s.sprites.Len() }

// FontCount returns the number of distinct faces loaded.
func (s *Surface) FontCount() int { return s.fonts.Len() }

// TileImageCount returns the number of loaded tile atlases.
func (s *Surface) TileImageCount() int { return len(s.tileImages) }

// DrawAll draws one frame. Every resource the frame needs is loaded before
// the first draw call; if any load fails nothing is drawn, nothing is cached
// and the error wraps ErrResourceLoad.
func (s *Surface) DrawAll(bg Background) error {
	if s.disposed {
		return nil
	}
	if err := s.prepare(bg); err != nil {
		return err
	}

	s.transform = s.cameraTransform()

	s.backend.Begin(Identity)
	s.backend.Clear(RGBA(bg.Colour, 1))
	if s.background.texture != nil {
		s.backend.DrawTexture(s.background.texture, 0, 0, image.Rectangle{}, white)
	}
	s.backend.End()

	s.backend.Begin(s.transform)
	for _, m := range s.tileMaps {
		s.drawTileMap(m)
	}
	s.drawEntities(false)
	s.backend.End()

	s.backend.Begin(Identity)
	s.drawEntities(true)
	s.backend.End()

	if s.opts.ShowCollisionAreas {
		s.backend.Begin(s.transform)
		for _, e := range s.entities {
			if c := ecs.Get[*ecs.CollisionComponent](e); c != nil {
				s.backend.FillRect(c.Bounds(), debugColor)
			}
		}
		s.backend.End()
	}
	return nil
}

func (s *Surface) drawTileMap(m *tiles.TileMap) {
	tex := s.tileImages[m]
	m.Each(func(x, y int, def tiles.Definition) {
		bounds := m.TileBounds(x, y)
		src := m.SourceRect(def)
		s.backend.DrawTexture(tex, bounds.X, bounds.Y, rectangle(src.X, src.Y, src.Width, src.Height), white)
	})
}

func (s *Surface) drawEntities(ui bool) {
	for _, e := range s.entities {
		if e.IsUI() != ui {
			continue
		}
		if e.DrawColourBeforeSprite {
			s.drawColour(e)
			s.drawSprite(e)
		} else {
			s.drawSprite(e)
			s.drawColour(e)
		}
	}
	for _, e := range s.entities {
		if e.IsUI() == ui {
			s.drawLabel(e)
		}
	}
}

func (s *Surface) drawSprite(e *ecs.Entity) {
	sprite := ecs.Get[*ecs.SpriteComponent](e)
	if sprite == nil || !sprite.IsVisible {
		return
	}
	entry, ok := s.sprites.Get(e.ID())
	if !ok {
		return
	}
	s.backend.DrawTexture(entry.texture, e.X()+sprite.OffsetX, e.Y()+sprite.OffsetY, frameRect(sprite, entry.texture), white)
}

func (s *Surface) drawColour(e *ecs.Entity) {
	c := ecs.Get[*ecs.ColourComponent](e)
	if c == nil {
		return
	}
	r := c.Bounds()
	s.backend.FillRect(r, RGBA(c.Colour, c.Alpha))
}

func (s *Surface) drawLabel(e *ecs.Entity) {
	label := ecs.Get[*ecs.TextLabelComponent](e)
	if label == nil || label.Text == "" {
		return
	}
	key, ok := s.entityFonts.Get(e.ID())
	if !ok {
		return
	}
	ref, _ := s.fonts.Get(key)

	x := e.X() + label.OffsetX
	y := e.Y() + label.OffsetY
	colour := RGBA(label.Colour, 1)
	outline := RGBA(label.OutlineColour, 1)
	t := label.OutlineThickness

	for _, line := range WrapLines(ref.font, label.Text, label.WordWrapWidth) {
		if t > 0 {
			s.backend.DrawText(ref.font, line, x-t, y-t, outline)
			s.backend.DrawText(ref.font, line, x+t, y-t, outline)
			s.backend.DrawText(ref.font, line, x-t, y+t, outline)
			s.backend.DrawText(ref.font, line, x+t, y+t, outline)
		}
		s.backend.DrawText(ref.font, line, x, y, colour)

		_, h := ref.font.Measure(line)
		if h <= 0 {
			h = float64(label.FontSize)
		}
		y += h
	}
}

func (s *Surface) cameraTransform() Transform {
	camEntity := s.Camera()
	if camEntity == nil {
		return Identity
	}
	cam := ecs.Get[*ecs.CameraComponent](camEntity)
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	t := Transform{
		Zoom:       zoom,
		TranslateX: -camEntity.X() * zoom,
		TranslateY: -camEntity.Y() * zoom,
	}
	if cam.Follow {
		t.TranslateX += float64(s.opts.Width) / 2
		t.TranslateY += float64(s.opts.Height) / 2
	}
	return t
}

// pending collects the resources loaded by one prepare pass.
type pending struct {
	sprites    map[ecs.EntityID]spriteEntry
	fonts      map[uint64]Font
	tileImages map[*tiles.TileMap]Texture
	background Texture
}

func (p *pending) rollback() {
	for _, entry := range p.sprites {
		entry.texture.Dispose()
	}
	for _, tex := range p.tileImages {
		tex.Dispose()
	}
	if p.background != nil {
		p.background.Dispose()
	}
}

func (s *Surface) prepare(bg Background) error {
	p := &pending{
		sprites:    make(map[ecs.EntityID]spriteEntry),
		fonts:      make(map[uint64]Font),
		tileImages: make(map[*tiles.TileMap]Texture),
	}

	if err := s.collect(p, bg); err != nil {
		p.rollback()
		s.logger.Error("frame aborted", zap.Error(err))
		return err
	}

	if bg.Image != s.background.fileName {
		if s.background.texture != nil {
			s.background.texture.Dispose()
		}
		s.background = loadedImage{fileName: bg.Image, texture: p.background}
	}
	for m, tex := range p.tileImages {
		s.tileImages[m] = tex
	}
	for id, entry := range p.sprites {
		s.releaseSprite(id)
		s.sprites.Put(id, entry)
	}
	for key, font := range p.fonts {
		s.fonts.Put(key, &fontRef{font: font})
	}
	for _, e := range s.entities {
		s.bindFont(e)
		if sprite := ecs.Get[*ecs.SpriteComponent](e); sprite != nil {
			if entry, ok := s.sprites.Get(e.ID()); ok {
				r := frameRect(sprite, entry.texture)
				sprite.Width, sprite.Height = float64(r.Dx()), float64(r.Dy())
			}
		}
	}
	return nil
}

// collect loads everything missing from the caches into p.
func (s *Surface) collect(p *pending, bg Background) error {
	if bg.Image != "" && bg.Image != s.background.fileName {
		tex, err := s.loadTexture(bg.Image)
		if err != nil {
			return err
		}
		p.background = tex
	}

	for _, m := range s.tileMaps {
		if _, ok := s.tileImages[m]; ok {
			continue
		}
		tex, err := s.loadTexture(m.ImageFile())
		if err != nil {
			return err
		}
		p.tileImages[m] = tex
	}

	for _, e := range s.entities {
		if sprite := ecs.Get[*ecs.SpriteComponent](e); sprite != nil && sprite.IsVisible {
			entry, ok := s.sprites.Get(e.ID())
			if !ok || entry.fileName != sprite.FileName {
				tex, err := s.loadTexture(sprite.FileName)
				if err != nil {
					return err
				}
				p.sprites[e.ID()] = spriteEntry{fileName: sprite.FileName, texture: tex}
			}
		}

		if label := ecs.Get[*ecs.TextLabelComponent](e); label != nil {
			name, size := s.fontFor(label)
			key := fontKey(name, size)
			if _, ok := s.fonts.Get(key); ok {
				continue
			}
			if _, ok := p.fonts[key]; ok {
				continue
			}
			font, err := s.backend.LoadFont(name, size)
			if err != nil {
				return fmt.Errorf("%w: font %s %d: %w", ErrResourceLoad, name, size, err)
			}
			s.logger.Debug("font loaded", zap.String("font", name), zap.Int("size", size))
			p.fonts[key] = font
		}
	}
	return nil
}

func (s *Surface) loadTexture(path string) (Texture, error) {
	tex, err := s.backend.LoadTexture(path)
	if err != nil {
		return nil, fmt.Errorf("%w: image %s: %w", ErrResourceLoad, path, err)
	}
	s.logger.Debug("texture loaded", zap.String("file", path))
	return tex, nil
}

// bindFont points e at the face its label currently asks for.
func (s *Surface) bindFont(e *ecs.Entity) {
	label := ecs.Get[*ecs.TextLabelComponent](e)
	if label == nil {
		return
	}
	key := fontKey(s.fontFor(label))
	if current, ok := s.entityFonts.Get(e.ID()); ok {
		if current == key {
			return
		}
		s.releaseFont(e.ID())
	}
	if ref, ok := s.fonts.Get(key); ok {
		ref.refs++
		s.entityFonts.Put(e.ID(), key)
	}
}

func (s *Surface) fontFor(label *ecs.TextLabelComponent) (string, int) {
	name, size := label.FontName, label.FontSize
	if name == "" {
		name = s.opts.DefaultFont
	}
	if size <= 0 {
		size = s.opts.DefaultFontSize
	}
	return name, size
}

func (s *Surface) releaseSprite(id ecs.EntityID) {
	if entry, ok := s.sprites.Get(id); ok {
		entry.texture.Dispose()
		s.sprites.Del(id)
	}
}

// releaseFont drops e's reference to its face and unloads the face once no
// entity uses it.
func (s *Surface) releaseFont(id ecs.EntityID) {
	key, ok := s.entityFonts.Get(id)
	if !ok {
		return
	}
	s.entityFonts.Del(id)
	if ref, ok := s.fonts.Get(key); ok {
		ref.refs--
		if ref.refs <= 0 {
			s.fonts.Del(key)
		}
	}
}

// Dispose releases every texture and font and detaches from the event bus.
func (s *Surface) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	for _, sub := range s.subs {
		sub.Cancel()
	}
	for _, e := range s.entities {
		s.releaseSprite(e.ID())
		s.releaseFont(e.ID())
	}
	for m, tex := range s.tileImages {
		tex.Dispose()
		delete(s.tileImages, m)
	}
	if s.background.texture != nil {
		s.background.texture.Dispose()
	}
	s.background = loadedImage{}
	s.fonts.Clear()
	s.entities = nil
	s.tileMaps = nil
}

func fontKey(name string, size int) uint64 {
	return xxhash.Sum64String(name + " " + strconv.Itoa(size))
}

func frameRect(sprite *ecs.SpriteComponent, tex Texture) image.Rectangle {
	w, h := tex.Size()
	if !sprite.IsSpritesheet() {
		return image.Rect(0, 0, w, h)
	}
	cols := max(w/sprite.FrameWidth, 1)
	col := sprite.FrameIndex % cols
	row := sprite.FrameIndex / cols
	x, y := col*sprite.FrameWidth, row*sprite.FrameHeight
	return image.Rect(x, y, x+sprite.FrameWidth, y+sprite.FrameHeight)
}

func rectangle(x, y, w, h float64) image.Rectangle {
	return image.Rect(int(x), int(y), int(x+w), int(y+h))
}
