package frontend

import (
	"fmt"

	"arenashooter/frontend/view"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const sampleRate = 44100

// Audio plays synthesized effects through ebiten's mixer
type Audio struct {
	context *audio.Context
	sounds  map[string][]byte
}

func NewAudio() *Audio {
	a := &Audio{
		context: audio.NewContext(sampleRate),
		sounds:  make(map[string][]byte, len(view.Tones)),
	}
	for name, tone := range view.Tones {
		a.sounds[name] = tone.PCM(sampleRate)
	}
	return a
}

func (a *Audio) Play(name string) error {
	pcm, ok := a.sounds[name]
	if !ok {
		return fmt.Errorf("unknown sound %q", name)
	}
	player := a.context.NewPlayerFromBytes(pcm)
	player.Play()
	return nil
}
