package puppet

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/tacodoll/schedule"
	"github.com/pthm-cable/tacodoll/telemetry"
)

// Song names, also used as sound names.
const (
	SongTaco    = "taco"
	SongBurrito = "burrito"
)

// singer runs one mouth sequence at a time. step is 0 while idle; while a
// sequence runs it is the 1-based index of the delay being waited on.
type singer struct {
	c *Controller

	song   string
	delays []time.Duration
	step   int
	token  schedule.Token
}

func (s *singer) init(c *Controller) { s.c = c }

func (s *singer) busy() bool { return s.step > 0 }

// start closes the mouth and schedules the toggles. It returns false if a
// sequence is already running.
func (s *singer) start(song string, delays []time.Duration) bool {
	if s.busy() {
		return false
	}
	s.song = song
	s.delays = delays
	s.c.setMouth(false)
	if len(delays) == 0 {
		s.c.setMouth(true)
		return true
	}
	s.step = 1
	s.token = s.c.sched.After(delays[0], s.advance)
	return true
}

// advance flips the mouth and waits on the next delay, or goes idle after
// the last one.
func (s *singer) advance() {
	s.c.setMouth(!s.c.mouthOpen())
	if s.step >= len(s.delays) {
		s.step = 0
		s.token = 0
		return
	}
	d := s.delays[s.step]
	s.step++
	s.token = s.c.sched.After(d, s.advance)
}

// abort stops a running sequence and leaves the mouth open.
func (s *singer) abort() {
	if !s.busy() {
		return
	}
	s.c.sched.Cancel(s.token)
	s.step = 0
	s.token = 0
	s.c.setMouth(true)
}

func millis(ms []int) []time.Duration {
	out := make([]time.Duration, len(ms))
	for i, v := range ms {
		out[i] = time.Duration(v) * time.Millisecond
	}
	return out
}

// SingTaco plays the taco mouth sequence and, unless mute, its sound. It
// returns false without doing anything if a sequence is already running.
func (c *Controller) SingTaco(mute bool) bool {
	return c.sing(SongTaco, c.cfg.Sing.Taco, mute)
}

// SingBurrito plays the burrito mouth sequence. See SingTaco.
func (c *Controller) SingBurrito(mute bool) bool {
	return c.sing(SongBurrito, c.cfg.Sing.Burrito, mute)
}

// Singing reports whether a mouth sequence is running.
func (c *Controller) Singing() bool { return c.singer.busy() }

func (c *Controller) sing(song string, delays []int, mute bool) bool {
	if !c.singer.start(song, millis(delays)) {
		slog.Debug("sing rejected", "song", song)
		c.emit(telemetry.NewSingEvent(c.tick, song, true))
		return false
	}
	if !mute && c.voice != nil {
		c.voice.Play(song)
	}
	c.emit(telemetry.NewSingEvent(c.tick, song, false))
	return true
}

// MouthOpen reports whether the head shows the open-mouth texture.
func (c *Controller) MouthOpen() bool { return c.mouthOpen() }

func (c *Controller) mouthOpen() bool {
	if !c.store.Alive(c.head) || !c.mouthMap.Has(c.head) {
		return true
	}
	return c.mouthMap.Get(c.head).Open
}

func (c *Controller) setMouth(open bool) {
	if !c.store.Alive(c.head) || !c.mouthMap.Has(c.head) {
		return
	}
	c.mouthMap.Get(c.head).Open = open
	c.applyMouth()
}

// applyMouth copies the mouth texture onto the head sprite. An empty
// texture leaves the sprite's own texture alone.
func (c *Controller) applyMouth() {
	m := c.mouthMap.Get(c.head)
	if tex := m.Texture(); tex != "" {
		c.spriteMap.Get(c.head).Texture = tex
	}
}
