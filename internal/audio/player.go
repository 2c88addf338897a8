// Package audio plays the games' sound cues through the beep speaker.
package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/siege-arcade/internal/core"
)

// Player consumes sound cues raised by the games.
type Player interface {
	Play(cue core.SoundCue)
	SetMuted(muted bool)
	Muted() bool
	Close()
}

// Config holds audio settings.
type Config struct {
	Enabled    bool
	SampleRate int
	Volume     float64 // Master volume, 0..1
	Dir        string  // Optional directory with clips/ and music/ WAV files
}

// DefaultConfig returns the default audio settings.
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		SampleRate: 44100,
		Volume:     0.8,
	}
}

// musicVolume keeps background loops under the effects.
const musicVolume = 0.45

// New returns a speaker-backed player, or a no-op player when audio is
// disabled or the output device cannot be opened. The error is informational.
func New(cfg Config, logger *log.Logger) (Player, error) {
	if !cfg.Enabled {
		return &Nop{}, nil
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultConfig().SampleRate
	}

	sp := newSpeaker(cfg, logger)
	if err := speaker.Init(sp.rate, sp.rate.N(100*time.Millisecond)); err != nil {
		return &Nop{}, fmt.Errorf("audio: cannot open output: %w", err)
	}
	speaker.Play(sp.mixer)
	sp.live = true
	return sp, nil
}

// Speaker mixes cues into a single beep mixer.
type Speaker struct {
	mu     sync.Mutex
	cfg    Config
	rate   beep.SampleRate
	mixer  *beep.Mixer
	logger *log.Logger
	live   bool // speaker initialized; false in tests

	muted     bool
	music     *beep.Ctrl
	musicName string
	clips     map[string]*beep.Buffer
}

func newSpeaker(cfg Config, logger *log.Logger) *Speaker {
	return &Speaker{
		cfg:    cfg,
		rate:   beep.SampleRate(cfg.SampleRate),
		mixer:  &beep.Mixer{},
		logger: logger,
		clips:  make(map[string]*beep.Buffer),
	}
}

// Play starts a cue. Muted players ignore everything except music changes,
// which are remembered so unmuting resumes the right track.
func (s *Speaker) Play(cue core.SoundCue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch cue.Kind {
	case core.SoundNone:
		return
	case core.SoundMusic:
		s.startMusic(cue.Name)
		return
	case core.SoundMusicStop:
		s.stopMusic()
		return
	}

	if s.muted {
		return
	}

	var st beep.Streamer
	if cue.Kind == core.SoundClip {
		st = s.clip(cue.Name)
	} else {
		st = CreateCue(cue.Kind, s.rate)
	}
	if st == nil {
		return
	}
	s.add(newVolume(st, s.cfg.Volume))
}

// SetMuted silences or restores all output.
func (s *Speaker) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.muted = muted
	if s.music != nil {
		s.lock()
		s.music.Paused = muted
		s.unlock()
	}
}

// Muted reports whether output is silenced.
func (s *Speaker) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

// Close stops all sounds and releases the output device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lock()
	s.mixer.Clear()
	s.unlock()
	s.music = nil
	s.musicName = ""
	if s.live {
		speaker.Close()
		s.live = false
	}
}

func (s *Speaker) startMusic(name string) {
	if name == s.musicName && s.music != nil {
		return
	}
	s.stopMusic()

	buf := s.load(filepath.Join("music", name+".wav"))
	if buf == nil {
		s.musicName = name
		return
	}
	ctrl := &beep.Ctrl{
		Streamer: beep.Loop(-1, buf.Streamer(0, buf.Len())),
		Paused:   s.muted,
	}
	s.music = ctrl
	s.musicName = name
	s.add(newVolume(ctrl, s.cfg.Volume*musicVolume))
}

func (s *Speaker) stopMusic() {
	if s.music != nil {
		s.lock()
		s.music.Paused = true
		s.music.Streamer = nil
		s.unlock()
	}
	s.music = nil
	s.musicName = ""
}

func (s *Speaker) clip(name string) beep.Streamer {
	buf := s.load(filepath.Join("clips", name+".wav"))
	if buf == nil {
		return nil
	}
	return buf.Streamer(0, buf.Len())
}

// load decodes and caches a WAV file relative to the audio directory.
// Missing files are cached as nil so they are only reported once.
func (s *Speaker) load(rel string) *beep.Buffer {
	if buf, ok := s.clips[rel]; ok {
		return buf
	}
	buf, err := s.decode(rel)
	if err != nil && s.logger != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("audio file missing", "file", rel)
		} else {
			s.logger.Warn("cannot decode audio file", "file", rel, "error", err)
		}
	}
	s.clips[rel] = buf
	return buf
}

func (s *Speaker) decode(rel string) (*beep.Buffer, error) {
	if s.cfg.Dir == "" {
		return nil, fs.ErrNotExist
	}
	f, err := os.Open(filepath.Join(s.cfg.Dir, rel))
	if err != nil {
		return nil, err
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("audio: decode %s: %w", rel, err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != s.rate {
		src = beep.Resample(4, format.SampleRate, s.rate, streamer)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: s.rate, NumChannels: 2, Precision: 2})
	buf.Append(src)
	return buf, nil
}

func (s *Speaker) add(st beep.Streamer) {
	s.lock()
	s.mixer.Add(st)
	s.unlock()
}

// lock guards the mixer against the speaker goroutine.
func (s *Speaker) lock() {
	if s.live {
		speaker.Lock()
	}
}

func (s *Speaker) unlock() {
	if s.live {
		speaker.Unlock()
	}
}

// Nop is a Player that only tracks the mute flag.
type Nop struct {
	mu    sync.Mutex
	muted bool
}

func (n *Nop) Play(core.SoundCue) {}

func (n *Nop) SetMuted(muted bool) {
	n.mu.Lock()
	n.muted = muted
	n.mu.Unlock()
}

func (n *Nop) Muted() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.muted
}

func (n *Nop) Close() {}
