package audio

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/oto/v2"

	"github.com/vovakirdan/space-shooter/internal/games/shooter"
)

// maxVoices caps simultaneous effects so rapid fire does not clip.
const maxVoices = 6

const (
	sfxVolume   = 0.6
	musicVolume = 0.15
)

// readyTimeout bounds how long Open waits for the device before handing
// out the sink anyway. Music requested before the device is ready starts later.
const readyTimeout = 500 * time.Millisecond

// voice is the part of oto.Player the sink uses.
type voice interface {
	Play()
	IsPlaying() bool
	SetVolume(volume float64)
	Close() error
}

// device is the part of oto.Context the sink uses.
type device interface {
	NewVoice(r io.Reader) voice
	Err() error
}

type otoDevice struct {
	ctx *oto.Context
}

func (d otoDevice) NewVoice(r io.Reader) voice { return d.ctx.NewPlayer(r) }
func (d otoDevice) Err() error                 { return d.ctx.Err() }

// Sink plays sound events on the default output device.
// Every method returns immediately; playback runs on its own goroutines.
type Sink struct {
	dev    device
	ready  <-chan struct{}
	logger *log.Logger

	effects map[shooter.Sound][]byte
	music   []byte
	voices  atomic.Int32

	mu          sync.Mutex
	musicPlayer voice
	wantMusic   bool
	musicGen    int
}

// NewSink opens the audio device and pre-renders every sound.
// The device finishes opening in the background; see Await.
func NewSink(logger *log.Logger) (*Sink, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}
	return newSink(otoDevice{ctx: ctx}, ready, logger), nil
}

func newSink(dev device, ready <-chan struct{}, logger *log.Logger) *Sink {
	s := &Sink{
		dev:     dev,
		ready:   ready,
		logger:  logger,
		effects: make(map[shooter.Sound][]byte),
		music:   EncodeF32(MusicLoop()),
	}
	for _, snd := range []shooter.Sound{
		shooter.SoundFire, shooter.SoundExplosion, shooter.SoundCollision,
		shooter.SoundVictory, shooter.SoundGameOver,
	} {
		s.effects[snd] = EncodeF32(Effect(snd))
	}
	return s
}

// Open returns an oto sink, or a silent one when no device is available.
func Open(logger *log.Logger) shooter.SoundSink {
	sink, err := NewSink(logger)
	if err != nil {
		logger.Warn("Audio disabled", "error", err)
		return shooter.NopSound{}
	}
	if err := sink.Await(readyTimeout); err != nil {
		logger.Warn("Audio disabled", "error", err)
		return shooter.NopSound{}
	}
	return sink
}

// Await waits up to timeout for the device to open and reports a failed open.
// A device still opening after timeout is not an error.
func (s *Sink) Await(timeout time.Duration) error {
	select {
	case <-s.ready:
	case <-time.After(timeout):
		s.logger.Debug("Audio device still opening", "waited", timeout)
		return nil
	}
	if err := s.dev.Err(); err != nil {
		return fmt.Errorf("audio: opening device: %w", err)
	}
	return nil
}

// usable reports whether the device is open and healthy.
func (s *Sink) usable() bool {
	select {
	case <-s.ready:
		return s.dev.Err() == nil
	default:
		return false
	}
}

// Play starts a one-shot effect. Effects past the voice limit are dropped.
func (s *Sink) Play(snd shooter.Sound) {
	data := s.effects[snd]
	if len(data) == 0 || !s.usable() {
		return
	}
	if s.voices.Add(1) > maxVoices {
		s.voices.Add(-1)
		return
	}

	go func() {
		defer s.voices.Add(-1)
		player := s.dev.NewVoice(&byteReader{data: data})
		player.SetVolume(sfxVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			s.logger.Debug("Closing effect player", "sound", snd, "error", err)
		}
	}()
}

// StartMusic restarts the background loop from the top.
// Before the device is ready the request is remembered and served once it is.
func (s *Sink) StartMusic() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closeMusicLocked()
	s.wantMusic = true
	s.musicGen++

	select {
	case <-s.ready:
		s.startMusicLocked()
	default:
		go s.startMusicWhenReady(s.musicGen)
	}
}

func (s *Sink) startMusicWhenReady(gen int) {
	<-s.ready
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wantMusic && s.musicGen == gen {
		s.startMusicLocked()
	}
}

func (s *Sink) startMusicLocked() {
	if s.dev.Err() != nil {
		return
	}
	player := s.dev.NewVoice(&loopReader{data: s.music})
	player.SetVolume(musicVolume)
	player.Play()
	s.musicPlayer = player
}

// StopMusic silences the background loop and cancels a pending start.
func (s *Sink) StopMusic() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wantMusic = false
	s.closeMusicLocked()
}

func (s *Sink) closeMusicLocked() {
	if s.musicPlayer == nil {
		return
	}
	if err := s.musicPlayer.Close(); err != nil {
		s.logger.Debug("Closing music player", "error", err)
	}
	s.musicPlayer = nil
}

type byteReader struct {
	data []byte
	pos  int
}

func (r *byteReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// loopReader repeats data forever.
type loopReader struct {
	data []byte
	pos  int
}

func (r *loopReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := 0
	for n < len(p) {
		c := copy(p[n:], r.data[r.pos:])
		n += c
		r.pos = (r.pos + c) % len(r.data)
	}
	return n, nil
}
