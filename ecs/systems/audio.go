package systems

import (
	"errors"
	"fmt"
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/plus3/puffin/ecs"
	"github.com/plus3/puffin/logging"
	"go.uber.org/zap"
)

// ErrSoundLoad wraps failures to load a sound file.
var ErrSoundLoad = errors.New("load sound")

// Sound is a decoded sound owned by an AudioPlayer.
type Sound interface {
	FileName() string
}

// PlayOptions controls a single playback.
type PlayOptions struct {
	Volume float64
	Pitch  float64
	Loop   bool
}

// AudioPlayer is the host's sound output.
type AudioPlayer interface {
	Load(fileName string) (Sound, error)
	Play(sound Sound, opts PlayOptions)
	Stop(sound Sound)
	Unload(sound Sound)
}

type audioRequest struct {
	entity *ecs.Entity
	audio  *ecs.AudioComponent
	play   bool
}

// AudioSystem plays and stops the sounds requested by audio components since
// the previous frame. Sounds are loaded on first play and released when their
// entity leaves the scene.
type AudioSystem struct {
	player   AudioPlayer
	logger   *zap.Logger
	entities entityList
	sounds   *intmap.Map[ecs.EntityID, Sound]
	queue    []audioRequest
	subs     []ecs.Subscription
}

// NewAudioSystem creates an audio system. A nil player drops every request.
func NewAudioSystem(bus *ecs.EventBus, player AudioPlayer, logger *zap.Logger) *AudioSystem {
	s := &AudioSystem{
		player: player,
		logger: logging.OrNop(logger),
		sounds: intmap.New[ecs.EntityID, Sound](16),
	}
	s.subs = append(s.subs,
		ecs.Subscribe(bus, func(ev ecs.PlaySound) { s.enqueue(ev.Entity, ev.Audio, true) }),
		ecs.Subscribe(bus, func(ev ecs.StopSound) { s.enqueue(ev.Entity, ev.Audio, false) }),
	)
	return s
}

func (s *AudioSystem) enqueue(e *ecs.Entity, audio *ecs.AudioComponent, play bool) {
	if e == nil || !slices.Contains(s.entities.items, e) {
		return
	}
	s.queue = append(s.queue, audioRequest{entity: e, audio: audio, play: play})
}

func (s *AudioSystem) OnAddEntity(e *ecs.Entity) { s.entities.add(e) }

func (s *AudioSystem) OnRemoveEntity(e *ecs.Entity) {
	s.entities.remove(e)
	s.queue = slices.DeleteFunc(s.queue, func(r audioRequest) bool { return r.entity == e })
	s.release(e.ID())
}

// Loaded returns the number of sounds currently held.
func (s *AudioSystem) Loaded() int { return s.sounds.Len() }

func (s *AudioSystem) OnUpdate(frame *ecs.UpdateFrame) error {
	queue := s.queue
	s.queue = nil
	if s.player == nil {
		return nil
	}

	for _, req := range queue {
		if !req.play {
			if sound, ok := s.sounds.Get(req.entity.ID()); ok {
				s.player.Stop(sound)
			}
			continue
		}

		sound, err := s.load(req.entity, req.audio)
		if err != nil {
			return err
		}
		s.player.Play(sound, PlayOptions{
			Volume: req.audio.Volume,
			Pitch:  req.audio.Pitch,
			Loop:   req.audio.Loop,
		})
	}
	return nil
}

func (s *AudioSystem) load(e *ecs.Entity, audio *ecs.AudioComponent) (Sound, error) {
	if sound, ok := s.sounds.Get(e.ID()); ok {
		if sound.FileName() == audio.FileName {
			return sound, nil
		}
		s.release(e.ID())
	}

	sound, err := s.player.Load(audio.FileName)
	if err != nil {
		s.logger.Error("sound load failed", zap.String("file", audio.FileName), zap.Error(err))
		return nil, fmt.Errorf("%w %q: %w", ErrSoundLoad, audio.FileName, err)
	}
	s.logger.Debug("sound loaded", zap.String("file", audio.FileName))
	s.sounds.Put(e.ID(), sound)
	return sound, nil
}

func (s *AudioSystem) release(id ecs.EntityID) {
	sound, ok := s.sounds.Get(id)
	if !ok {
		return
	}
	s.sounds.Del(id)
	if s.player != nil {
		s.player.Stop(sound)
		s.player.Unload(sound)
	}
}

// Dispose stops and unloads every sound and detaches from the event bus.
func (s *AudioSystem) Dispose() {
	for _, sub := range s.subs {
		sub.Cancel()
	}
	s.subs = nil
	s.queue = nil
	for _, e := range s.entities.items {
		s.release(e.ID())
	}
}
