package audio

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/space-shooter/internal/games/shooter"
	"github.com/vovakirdan/space-shooter/internal/logging"
)

type fakeVoice struct {
	mu      sync.Mutex
	looping bool
	playing bool
	closed  bool
}

func (v *fakeVoice) Play() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.playing = true
}

func (v *fakeVoice) IsPlaying() bool { return false }

func (v *fakeVoice) SetVolume(float64) {}

func (v *fakeVoice) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	return nil
}

func (v *fakeVoice) state() (playing, closed bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.playing, v.closed
}

// fakeDevice records every voice it hands out.
type fakeDevice struct {
	mu     sync.Mutex
	err    error
	voices []*fakeVoice
}

func (d *fakeDevice) NewVoice(r io.Reader) voice {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, looping := r.(*loopReader)
	v := &fakeVoice{looping: looping}
	d.voices = append(d.voices, v)
	return v
}

func (d *fakeDevice) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

func (d *fakeDevice) music() []*fakeVoice {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []*fakeVoice
	for _, v := range d.voices {
		if v.looping {
			out = append(out, v)
		}
	}
	return out
}

func (d *fakeDevice) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.voices)
}

// waitFor polls cond until it holds or a second passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestStartMusicBeforeReady(t *testing.T) {
	dev := &fakeDevice{}
	ready := make(chan struct{})
	s := newSink(dev, ready, logging.Discard())

	s.StartMusic()
	if n := len(dev.music()); n != 0 {
		t.Fatalf("music started before the device was ready: %d voices", n)
	}

	close(ready)
	waitFor(t, "deferred music", func() bool { return len(dev.music()) == 1 })
	if playing, _ := dev.music()[0].state(); !playing {
		t.Error("deferred music voice should be playing")
	}
}

func TestStopMusicCancelsPendingStart(t *testing.T) {
	dev := &fakeDevice{}
	ready := make(chan struct{})
	s := newSink(dev, ready, logging.Discard())

	s.StartMusic()
	s.StopMusic()
	close(ready)

	// Give the pending start time to run.
	time.Sleep(20 * time.Millisecond)
	if n := len(dev.music()); n != 0 {
		t.Errorf("stopped music still started: %d voices", n)
	}
}

func TestRepeatedStartMusicBeforeReady(t *testing.T) {
	dev := &fakeDevice{}
	ready := make(chan struct{})
	s := newSink(dev, ready, logging.Discard())

	s.StartMusic()
	s.StartMusic()
	close(ready)

	waitFor(t, "deferred music", func() bool { return len(dev.music()) >= 1 })
	time.Sleep(20 * time.Millisecond)
	if n := len(dev.music()); n != 1 {
		t.Errorf("expected a single music voice, got %d", n)
	}
}

func TestStartMusicWhenReady(t *testing.T) {
	dev := &fakeDevice{}
	ready := make(chan struct{})
	close(ready)
	s := newSink(dev, ready, logging.Discard())

	s.StartMusic()
	if n := len(dev.music()); n != 1 {
		t.Fatalf("expected music to start at once, got %d voices", n)
	}
	first := dev.music()[0]

	s.StartMusic()
	if _, closed := first.state(); !closed {
		t.Error("restarting music should close the previous voice")
	}

	s.StopMusic()
	if _, closed := dev.music()[1].state(); !closed {
		t.Error("StopMusic should close the music voice")
	}
}

func TestFailedDeviceStaysSilent(t *testing.T) {
	dev := &fakeDevice{err: errors.New("no such device")}
	ready := make(chan struct{})
	close(ready)
	s := newSink(dev, ready, logging.Discard())

	if err := s.Await(time.Second); err == nil {
		t.Error("Await should report the device error")
	}

	s.StartMusic()
	s.Play(shooter.SoundFire)
	time.Sleep(20 * time.Millisecond)
	if n := dev.count(); n != 0 {
		t.Errorf("failed device should get no voices, got %d", n)
	}
}

func TestAwaitTimeout(t *testing.T) {
	s := newSink(&fakeDevice{}, make(chan struct{}), logging.Discard())

	if err := s.Await(5 * time.Millisecond); err != nil {
		t.Errorf("a device still opening is not an error, got %v", err)
	}
}

func TestPlayEffectWhenReady(t *testing.T) {
	dev := &fakeDevice{}
	ready := make(chan struct{})
	s := newSink(dev, ready, logging.Discard())

	s.Play(shooter.SoundFire)
	if n := dev.count(); n != 0 {
		t.Fatalf("effects before ready should be dropped, got %d voices", n)
	}

	close(ready)
	s.Play(shooter.SoundFire)
	waitFor(t, "effect voice closed", func() bool {
		if dev.count() != 1 {
			return false
		}
		_, closed := dev.voices[0].state()
		return closed
	})
}
