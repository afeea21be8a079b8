package synth

import (
	"encoding/binary"
	"math"
	"sync"
	"time"
)

// Envelope is an ADSR amplitude envelope.
type Envelope struct {
	Attack  time.Duration
	Decay   time.Duration
	Sustain float64 // level 0..1 held until release
	Release time.Duration
}

// DefaultEnvelope is a soft pluck: quick attack, short decay, long release.
var DefaultEnvelope = Envelope{
	Attack:  50 * time.Millisecond,
	Decay:   100 * time.Millisecond,
	Sustain: 0.3,
	Release: time.Second,
}

const (
	// MaxVoices caps polyphony; the oldest voice is stolen beyond it.
	MaxVoices  = 16
	voiceGain  = 0.2
	channels   = 2
	bytesFrame = 4 * channels // float32 per channel
)

type voice struct {
	step    float64 // phase increment per frame, in cycles
	phase   float64
	pos     int // frames rendered
	gate    int // frames before release starts
	attack  int
	decay   int
	release int
	sustain float64
}

// held is the envelope level while the gate is open.
func (v *voice) held(pos int) float64 {
	switch {
	case pos < v.attack:
		return float64(pos) / float64(v.attack)
	case pos < v.attack+v.decay:
		return 1 - (1-v.sustain)*float64(pos-v.attack)/float64(v.decay)
	}
	return v.sustain
}

func (v *voice) level() float64 {
	if v.pos < v.gate {
		return v.held(v.pos)
	}
	start := v.held(v.gate)
	return start * (1 - float64(v.pos-v.gate)/float64(v.release))
}

func (v *voice) done() bool { return v.pos >= v.gate+v.release }

// Mixer renders polyphonic sine voices as interleaved stereo float32
// little-endian PCM. It is the io.Reader handed to the audio backend.
type Mixer struct {
	rate int
	env  Envelope

	mu     sync.Mutex
	voices []*voice
}

// NewMixer returns a mixer rendering at rate frames per second.
func NewMixer(rate int, env Envelope) *Mixer {
	return &Mixer{rate: rate, env: env}
}

func (m *Mixer) frames(d time.Duration) int {
	n := int(d.Seconds() * float64(m.rate))
	if n < 1 {
		n = 1
	}
	return n
}

// NoteOn starts a voice at freq Hz whose gate stays open for length.
func (m *Mixer) NoteOn(freq float64, length time.Duration) {
	v := &voice{
		step:    freq / float64(m.rate),
		gate:    m.frames(length),
		attack:  m.frames(m.env.Attack),
		decay:   m.frames(m.env.Decay),
		release: m.frames(m.env.Release),
		sustain: m.env.Sustain,
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.voices) >= MaxVoices {
		m.voices = m.voices[1:]
	}
	m.voices = append(m.voices, v)
}

// Active is the number of sounding voices.
func (m *Mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

// Read fills p with whole stereo frames; silence when no voice sounds.
func (m *Mixer) Read(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(p) / bytesFrame
	for i := 0; i < n; i++ {
		var sum float64
		for _, v := range m.voices {
			if v.done() {
				continue
			}
			sum += math.Sin(2*math.Pi*v.phase) * v.level() * voiceGain
			v.phase += v.step
			if v.phase >= 1 {
				v.phase--
			}
			v.pos++
		}
		sum = math.Max(-1, math.Min(1, sum))
		bits := math.Float32bits(float32(sum))
		off := i * bytesFrame
		binary.LittleEndian.PutUint32(p[off:], bits)
		binary.LittleEndian.PutUint32(p[off+4:], bits)
	}

	live := m.voices[:0]
	for _, v := range m.voices {
		if !v.done() {
			live = append(live, v)
		}
	}
	for i := len(live); i < len(m.voices); i++ {
		m.voices[i] = nil
	}
	m.voices = live
	return n * bytesFrame, nil
}
