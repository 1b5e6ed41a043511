package view

import (
	"encoding/binary"
	"math"

	"arenashooter/game"
)

// Tone describes a short synthesized sound effect
type Tone struct {
	// Frequency sweeps linearly from Start to End over Duration
	Start, End float64
	Duration   float64
	Volume     float64
}

// Tones maps sound names to their effect
var Tones = map[string]Tone{
	game.SoundShoot:   {Start: 880, End: 220, Duration: 0.08, Volume: 0.3},
	game.SoundReload:  {Start: 330, End: 440, Duration: 0.15, Volume: 0.25},
	game.SoundPowerup: {Start: 440, End: 1320, Duration: 0.25, Volume: 0.3},
}

// PCM renders the tone as 16-bit little-endian stereo samples
func (t Tone) PCM(sampleRate int) []byte {
	n := int(t.Duration * float64(sampleRate))
	buf := make([]byte, n*4)

	phase := 0.0
	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)
		freq := t.Start + (t.End-t.Start)*progress
		phase += 2 * math.Pi * freq / float64(sampleRate)

		// Linear fade out so the sound ends without a click
		amp := t.Volume * (1 - progress)
		v := int16(math.Sin(phase) * amp * math.MaxInt16)

		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}

	return buf
}
