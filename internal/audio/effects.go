package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

type Effect int

const (
	EffectCoin Effect = iota
	EffectPowerUp
	EffectStomp
	EffectDeath
)

func (e Effect) String() string {
	switch e {
	case EffectCoin:
		return "coin"
	case EffectPowerUp:
		return "power-up"
	case EffectStomp:
		return "stomp"
	case EffectDeath:
		return "death"
	}
	return "unknown"
}

// sweep is a sine tone gliding linearly from one frequency to another,
// shaped by a short attack and a release over the last quarter.
type sweep struct {
	rate     beep.SampleRate
	from, to float64
	total    int
	pos      int
	phase    float64
}

// NewSweep returns a streamer of exactly rate.N(d) samples.
func NewSweep(from, to float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{rate: rate, from: from, to: to, total: rate.N(d)}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= s.total {
		return 0, false
	}
	attack := float64(s.rate.N(5 * time.Millisecond))
	release := float64(s.total) / 4

	for i := range samples {
		if s.pos >= s.total {
			break
		}
		t := float64(s.pos) / float64(s.total)
		freq := s.from + (s.to-s.from)*t
		s.phase += 2 * math.Pi * freq / float64(s.rate)

		env := 1.0
		if p := float64(s.pos); p < attack {
			env = p / attack
		}
		if left := float64(s.total - s.pos); left < release {
			env = math.Min(env, left/release)
		}

		v := math.Sin(s.phase) * env
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
		n++
	}
	return n, true
}

func (s *sweep) Err() error { return nil }

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Sound builds a fresh streamer for effect e. Streamers are single use.
func Sound(e Effect, rate beep.SampleRate, vol float64) beep.Streamer {
	var s beep.Streamer
	switch e {
	case EffectCoin:
		// B5 then E6
		s = beep.Seq(
			NewSweep(987.77, 987.77, 60*time.Millisecond, rate),
			NewSweep(1318.51, 1318.51, 180*time.Millisecond, rate),
		)
	case EffectPowerUp:
		s = NewSweep(330, 990, 400*time.Millisecond, rate)
	case EffectStomp:
		s = NewSweep(220, 110, 120*time.Millisecond, rate)
	case EffectDeath:
		s = NewSweep(660, 80, 700*time.Millisecond, rate)
	default:
		return nil
	}
	return withVolume(s, vol)
}
