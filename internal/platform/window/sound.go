package window

import (
	"bytes"

	"github.com/charmbracelet/log"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/vovakirdan/space-shooter/internal/audio"
	"github.com/vovakirdan/space-shooter/internal/games/shooter"
)

const (
	sfxVolume   = 0.6
	musicVolume = 0.15
)

// Sound plays the shared synthesized sounds through ebiten's audio context.
type Sound struct {
	ctx     *ebaudio.Context
	effects map[shooter.Sound][]byte
	music   *ebaudio.Player
	logger  *log.Logger
}

// NewSound renders every effect and the music loop as 16-bit stereo PCM.
func NewSound(logger *log.Logger) (*Sound, error) {
	ctx := ebaudio.NewContext(audio.SampleRate)

	pcm := audio.EncodeS16(audio.MusicLoop())
	loop := ebaudio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	music, err := ctx.NewPlayer(loop)
	if err != nil {
		return nil, err
	}
	music.SetVolume(musicVolume)

	s := &Sound{
		ctx:     ctx,
		effects: make(map[shooter.Sound][]byte),
		music:   music,
		logger:  logger,
	}
	for _, snd := range []shooter.Sound{
		shooter.SoundFire, shooter.SoundExplosion, shooter.SoundCollision,
		shooter.SoundVictory, shooter.SoundGameOver,
	} {
		s.effects[snd] = audio.EncodeS16(audio.Effect(snd))
	}
	return s, nil
}

// Play starts a new player per event so effects can overlap.
func (s *Sound) Play(snd shooter.Sound) {
	data := s.effects[snd]
	if len(data) == 0 {
		return
	}
	p := s.ctx.NewPlayerFromBytes(data)
	p.SetVolume(sfxVolume)
	p.Play()
}

// StartMusic plays the loop from the top.
func (s *Sound) StartMusic() {
	if err := s.music.Rewind(); err != nil {
		s.logger.Debug("Rewinding music", "error", err)
	}
	s.music.Play()
}

// StopMusic pauses the loop.
func (s *Sound) StopMusic() {
	s.music.Pause()
}
