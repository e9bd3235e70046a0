package ebiten

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/plus3/puffin/ecs/systems"
)

const sampleRate = beep.SampleRate(48000)

// ErrUnsupportedSound is returned for files that are neither wav nor mp3.
var ErrUnsupportedSound = errors.New("unsupported sound format")

type sound struct {
	fileName string
	buffer   *beep.Buffer
	playing  []*beep.Ctrl
}

func (s *sound) FileName() string { return s.fileName }

// AudioPlayer plays fully decoded wav and mp3 files through the beep speaker.
type AudioPlayer struct {
	initialized bool
	mixer       *beep.Mixer
}

func NewAudioPlayer() *AudioPlayer {
	return &AudioPlayer{mixer: &beep.Mixer{}}
}

func (p *AudioPlayer) init() error {
	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

func (p *AudioPlayer) Load(fileName string) (systems.Sound, error) {
	if err := p.init(); err != nil {
		return nil, err
	}

	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSound, fileName)
	}
	if err != nil {
		f.Close()
		return nil, err
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	return &sound{fileName: fileName, buffer: buffer}, nil
}

// Play starts a new voice for s. Pitch scales the playback rate.
func (p *AudioPlayer) Play(s systems.Sound, opts systems.PlayOptions) {
	snd, ok := s.(*sound)
	if !ok || !p.initialized {
		return
	}

	var src beep.Streamer = snd.buffer.Streamer(0, snd.buffer.Len())
	if opts.Loop {
		src = beep.Loop(-1, snd.buffer.Streamer(0, snd.buffer.Len()))
	}

	pitch := opts.Pitch
	if pitch <= 0 {
		pitch = 1
	}
	ratio := pitch * float64(snd.buffer.Format().SampleRate) / float64(sampleRate)
	if ratio != 1 {
		src = beep.ResampleRatio(4, ratio, src)
	}

	ctrl := &beep.Ctrl{Streamer: volume(src, opts.Volume)}

	speaker.Lock()
	snd.playing = append(snd.playing, ctrl)
	p.mixer.Add(ctrl)
	speaker.Unlock()
}

// Stop silences every voice of s.
func (p *AudioPlayer) Stop(s systems.Sound) {
	snd, ok := s.(*sound)
	if !ok || !p.initialized {
		return
	}
	speaker.Lock()
	for _, ctrl := range snd.playing {
		ctrl.Streamer = nil
	}
	snd.playing = nil
	speaker.Unlock()
}

func (p *AudioPlayer) Unload(s systems.Sound) { p.Stop(s) }

// Close stops every voice.
func (p *AudioPlayer) Close() {
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
}

func volume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
