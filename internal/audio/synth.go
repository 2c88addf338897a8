package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/siege-arcade/internal/core"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveTriangle
	WaveNoise
)

// oscillator generates raw audio waves. The frequency may glide linearly
// from freq to endFreq over the duration.
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator whose pitch glides from start to end.
func NewSweep(start, end float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     start,
		endFreq:  end,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveTriangle:
			val = 1.0 - 4.0*math.Abs(o.phase-0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		freq := o.freq
		if o.endFreq != o.freq && o.duration > 0 {
			freq += (o.endFreq - o.freq) * float64(o.position) / float64(o.duration)
		}
		o.phase += freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// EnvelopeShape selects how the release phase decays.
type EnvelopeShape int

const (
	ReleaseLinear      EnvelopeShape = iota
	ReleaseExponential               // Decays to 1% of the peak, like an exp ramp to 0.01
)

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	shape          EnvelopeShape
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/release envelope with a linear release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return newShapedEnvelope(s, duration, attack, release, ReleaseLinear, rate)
}

func newShapedEnvelope(s beep.Streamer, duration, attack, release time.Duration, shape EnvelopeShape, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		shape:          shape,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0

		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			progress := float64(e.position-releaseStart) / float64(e.releaseSamples)
			switch e.shape {
			case ReleaseExponential:
				vol = math.Pow(0.01, progress)
			default:
				vol = math.Max(0, 1-progress)
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so 0 volume is handled by making the stream silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

const (
	popDuration = 100 * time.Millisecond
	winDuration = time.Second
)

// CreatePop is the short item pickup blip: 800 Hz, decaying to 1% in 100 ms.
func CreatePop(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(800, popDuration, WaveSine, rate)
	return newShapedEnvelope(osc, popDuration, 0, popDuration, ReleaseExponential, rate)
}

// CreateWin is the 500 Hz triangle tone fading to silence over one second.
func CreateWin(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(500, winDuration, WaveTriangle, rate)
	return NewEnvelope(osc, winDuration, 0, winDuration, rate)
}

// CreateFire is a rising noise whoosh layered over a saw sweep.
func CreateFire(rate beep.SampleRate) beep.Streamer {
	const d = 250 * time.Millisecond
	noise := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, 10*time.Millisecond, 200*time.Millisecond, rate)
	sweep := NewEnvelope(NewSweep(180, 420, d, WaveSaw, rate), d, 5*time.Millisecond, 200*time.Millisecond, rate)
	return beep.Mix(newVolume(noise, 0.4), newVolume(sweep, 0.3))
}

// CreateHit is a low square thump with a noise burst.
func CreateHit(rate beep.SampleRate) beep.Streamer {
	const d = 300 * time.Millisecond
	thump := newShapedEnvelope(NewSweep(140, 50, d, WaveSquare, rate), d, 0, d, ReleaseExponential, rate)
	crack := newShapedEnvelope(NewOscillator(0, d/2, WaveNoise, rate), d/2, 0, d/2, ReleaseExponential, rate)
	return beep.Mix(newVolume(thump, 0.5), newVolume(crack, 0.4))
}

// CreateBounce is a soft low blip.
func CreateBounce(rate beep.SampleRate) beep.Streamer {
	const d = 80 * time.Millisecond
	return newVolume(newShapedEnvelope(NewSweep(220, 160, d, WaveSine, rate), d, 0, d, ReleaseExponential, rate), 0.5)
}

// CreatePowerUp is a rising two-note chime.
func CreatePowerUp(rate beep.SampleRate) beep.Streamer {
	const d = 120 * time.Millisecond
	first := NewEnvelope(NewOscillator(660, d, WaveSine, rate), d, 5*time.Millisecond, 60*time.Millisecond, rate)
	second := NewEnvelope(NewOscillator(990, 2*d, WaveSine, rate), 2*d, 5*time.Millisecond, 150*time.Millisecond, rate)
	return beep.Seq(newVolume(first, 0.6), newVolume(second, 0.6))
}

// CreateBoxBreak is a crackle of decaying noise.
func CreateBoxBreak(rate beep.SampleRate) beep.Streamer {
	const d = 200 * time.Millisecond
	return newVolume(newShapedEnvelope(NewOscillator(0, d, WaveNoise, rate), d, 0, d, ReleaseExponential, rate), 0.5)
}

// CreateLose is a falling triangle tone.
func CreateLose(rate beep.SampleRate) beep.Streamer {
	const d = 700 * time.Millisecond
	return NewEnvelope(NewSweep(440, 110, d, WaveTriangle, rate), d, 10*time.Millisecond, 300*time.Millisecond, rate)
}

// CreateCue returns the synthesized streamer for a sound kind, or nil when
// the kind has no synthesized form (clips and music).
func CreateCue(kind core.Sound, rate beep.SampleRate) beep.Streamer {
	switch kind {
	case core.SoundFire:
		return CreateFire(rate)
	case core.SoundHit:
		return CreateHit(rate)
	case core.SoundBounce:
		return CreateBounce(rate)
	case core.SoundPowerUp:
		return CreatePowerUp(rate)
	case core.SoundBoxBreak:
		return CreateBoxBreak(rate)
	case core.SoundPop:
		return CreatePop(rate)
	case core.SoundWin:
		return CreateWin(rate)
	case core.SoundLose:
		return CreateLose(rate)
	default:
		return nil
	}
}
