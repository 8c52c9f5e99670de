// Package audio synthesizes the shooter's sound effects and music loop and
// plays them through oto. All sounds are generated procedurally at startup,
// so the binary ships without audio assets.
package audio

import (
	"math"

	"github.com/vovakirdan/space-shooter/internal/games/shooter"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
)

// Effect returns mono samples in [-1,1] for a sound event.
func Effect(s shooter.Sound) []float64 {
	switch s {
	case shooter.SoundFire:
		return genFire()
	case shooter.SoundExplosion:
		return genExplosion()
	case shooter.SoundCollision:
		return genCollision()
	case shooter.SoundVictory:
		return genVictory()
	case shooter.SoundGameOver:
		return genGameOver()
	}
	return nil
}

// EncodeF32 converts mono samples to interleaved stereo float32 LE.
func EncodeF32(samples []float64) []byte {
	buf := make([]byte, len(samples)*8)
	for i, s := range samples {
		v := math.Float32bits(float32(clamp(s)))
		for c := range ChannelCount {
			o := i*8 + c*4
			buf[o] = byte(v)
			buf[o+1] = byte(v >> 8)
			buf[o+2] = byte(v >> 16)
			buf[o+3] = byte(v >> 24)
		}
	}
	return buf
}

// EncodeS16 converts mono samples to interleaved stereo signed 16-bit LE.
func EncodeS16(samples []float64) []byte {
	buf := make([]byte, len(samples)*4)
	for i, s := range samples {
		v := int16(clamp(s) * math.MaxInt16)
		for c := range ChannelCount {
			o := i*4 + c*2
			buf[o] = byte(v)
			buf[o+1] = byte(uint16(v) >> 8)
		}
	}
	return buf
}

func clamp(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}

// softSat is a gentle cubic saturator.
func softSat(x float64) float64 {
	if x > 1 {
		return 1 - 0.5/x
	}
	if x < -1 {
		return -1 + 0.5/(-x)
	}
	return x - x*x*x/3
}

// adsr returns an envelope at normalized progress [0,1].
// attack, decay and release are fractions of the total duration.
func adsr(p, attack, decay, sustain, release float64) float64 {
	switch {
	case p < attack:
		return p / attack
	case p < attack+decay:
		return 1 - (p-attack)/decay*(1-sustain)
	case p < 1-release:
		return sustain
	default:
		return sustain * (1 - (p-(1-release))/release)
	}
}

func fm(t, carrier, ratio, index float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * ratio * t)
	return math.Sin(2*math.Pi*carrier*t + index*mod)
}

// noise advances an LCG and returns a sample in [-1,1].
func noise(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func seconds(d float64) int { return int(d * SampleRate) }

// genFire is a short downward laser chirp.
func genFire() []float64 {
	n := seconds(0.09)
	out := make([]float64, n)
	for i := range n {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		freq := 1400 - 900*p
		env := adsr(p, 0.02, 0.3, 0.4, 0.4)
		out[i] = softSat(fm(t, freq, 0.5, 1.5*(1-p)) * env * 0.35)
	}
	return out
}

// genExplosion is low-passed noise with a falling rumble.
func genExplosion() []float64 {
	n := seconds(0.35)
	out := make([]float64, n)
	seed := uint64(7919)
	lp := 0.0
	for i := range n {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		lp = lp*0.82 + noise(&seed)*0.18
		rumble := math.Sin(2 * math.Pi * (90 - 50*p) * t)
		env := math.Pow(1-p, 2)
		out[i] = softSat((lp*1.6 + rumble*0.4) * env * 0.7)
	}
	return out
}

// genCollision is a dull thud for the player being hit.
func genCollision() []float64 {
	n := seconds(0.18)
	out := make([]float64, n)
	seed := uint64(104729)
	for i := range n {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		freq := 220 - 140*p
		env := adsr(p, 0.01, 0.5, 0.2, 0.3)
		s := fm(t, freq, 1.5, 3*(1-p))*0.6 + noise(&seed)*0.15*(1-p)
		out[i] = softSat(s * env * 0.55)
	}
	return out
}

// genVictory is a rising major arpeggio with a held top note.
func genVictory() []float64 {
	notes := []float64{523.25, 659.25, 783.99, 1046.50} // C5 E5 G5 C6
	step := seconds(0.12)
	total := len(notes)*step + seconds(0.5)
	mix := make([]float64, total)
	for k, freq := range notes {
		start := k * step
		dur := total - start
		for j := range dur {
			t := float64(start+j) / SampleRate
			env := adsr(float64(j)/float64(dur), 0.005, 0.5, 0.15, 0.35)
			mix[start+j] += fm(t, freq, 2, 2.5*env) * env * 0.25
		}
	}
	for i, s := range mix {
		mix[i] = softSat(s)
	}
	return mix
}

// genGameOver is a slow descending minor chord.
func genGameOver() []float64 {
	n := seconds(0.8)
	notes := []struct{ freq, onset float64 }{
		{329.63, 0.00}, // E4
		{261.63, 0.15}, // C4
		{220.00, 0.30}, // A3
	}
	mix := make([]float64, n)
	for _, note := range notes {
		start := seconds(note.onset)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			p := float64(i-start) / float64(n-start)
			env := adsr(p, 0.01, 0.25, 0.3, 0.45)
			freq := note.freq * (1 - p*0.03)
			mix[i] += fm(t, freq, 2, 2*env) * env * 0.3
		}
	}
	for i, s := range mix {
		mix[i] = softSat(s)
	}
	return mix
}

// MusicLoop renders one seamless loop of the background track.
func MusicLoop() []float64 {
	const (
		bpm   = 132
		beats = 16
	)
	beat := 60.0 / bpm
	n := seconds(beat * beats)
	out := make([]float64, n)

	// A minor, F, C, G; one chord per bar.
	roots := []float64{110.00, 87.31, 130.81, 98.00}
	arp := []float64{1, 1.5, 2, 1.5}
	seed := uint64(2654435761)

	for i := range n {
		t := float64(i) / SampleRate
		pos := t / beat
		b := int(pos)
		frac := pos - float64(b)
		root := roots[(b/4)%len(roots)]

		bass := math.Sin(2*math.Pi*root*t) * math.Exp(-frac*3) * 0.35

		half := int(pos * 2)
		hf := pos*2 - float64(half)
		lead := root * 4 * arp[half%len(arp)]
		arpS := squareish(lead*t) * math.Exp(-hf*6) * 0.12

		kick := 0.0
		if b%2 == 0 {
			kt := frac * beat
			kick = math.Sin(2*math.Pi*(60+90*math.Exp(-kt*30))*kt) * math.Exp(-kt*14) * 0.5
		}
		hat := noise(&seed) * math.Exp(-hf*40) * 0.05

		out[i] = softSat(bass + arpS + kick + hat)
	}
	return out
}

func squareish(phase float64) float64 {
	return math.Tanh(4 * math.Sin(2*math.Pi*phase))
}
