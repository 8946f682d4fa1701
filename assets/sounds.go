// Package assets synthesizes the character's sound effects from the tone
// descriptions in the player prefab.
package assets

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/firstperson/controller"
	"github.com/milk9111/firstperson/prefabs"
	"github.com/rs/zerolog"
)

const SampleRate = 44100

// ErrUnknownSound is returned for an audio entry naming no controller sound.
var ErrUnknownSound = errors.New("assets: unknown sound")

var (
	contextOnce  sync.Once
	audioContext *audio.Context
)

// Context returns the process-wide audio context, creating it on first use.
func Context() *audio.Context {
	contextOnce.Do(func() {
		audioContext = audio.NewContext(SampleRate)
	})
	return audioContext
}

// ParseSound maps a prefab sound name to a controller.Sound.
func ParseSound(name string) (controller.Sound, error) {
	for s := controller.SoundFootstep; s <= controller.SoundFallDamage; s++ {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownSound, name)
}

// Tone renders a decaying sine as 16-bit little endian stereo PCM.
func Tone(spec prefabs.AudioSpec, sampleRate int) []byte {
	n := int(spec.Duration * float64(sampleRate))
	if n <= 0 || spec.Frequency <= 0 {
		return nil
	}
	volume := spec.Volume
	if volume <= 0 || volume > 1 {
		volume = 1
	}
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		env := 1 - float64(i)/float64(n)
		v := int16(math.Sin(2*math.Pi*spec.Frequency*t) * env * volume * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(v))
	}
	return out
}

// SoundBank plays synthesized tones for controller sounds. It implements
// controller.Audio. With a nil context it only counts what was played.
type SoundBank struct {
	ctx     *audio.Context
	log     zerolog.Logger
	tones   map[controller.Sound][]byte
	players map[controller.Sound]*audio.Player
	played  map[controller.Sound]int
}

func NewSoundBank(ctx *audio.Context, specs []prefabs.AudioSpec, log zerolog.Logger) (*SoundBank, error) {
	b := &SoundBank{
		ctx:     ctx,
		log:     log.With().Str("component", "audio").Logger(),
		tones:   make(map[controller.Sound][]byte, len(specs)),
		players: make(map[controller.Sound]*audio.Player, len(specs)),
		played:  make(map[controller.Sound]int),
	}
	rate := SampleRate
	if ctx != nil {
		rate = ctx.SampleRate()
	}
	for _, spec := range specs {
		s, err := ParseSound(spec.Name)
		if err != nil {
			return nil, err
		}
		b.tones[s] = Tone(spec, rate)
	}
	return b, nil
}

func (b *SoundBank) Play(s controller.Sound) {
	b.played[s]++
	tone := b.tones[s]
	if len(tone) == 0 {
		b.log.Debug().Stringer("sound", s).Msg("no tone")
		return
	}
	if b.ctx == nil {
		b.log.Trace().Stringer("sound", s).Msg("play")
		return
	}
	p, ok := b.players[s]
	if !ok {
		p = b.ctx.NewPlayerFromBytes(tone)
		b.players[s] = p
	}
	if err := p.Rewind(); err != nil {
		b.log.Warn().Err(err).Stringer("sound", s).Msg("rewind failed")
		return
	}
	p.Play()
}

// Played returns how many times s was requested.
func (b *SoundBank) Played(s controller.Sound) int {
	return b.played[s]
}

func (b *SoundBank) Close() error {
	var errs []error
	for s, p := range b.players {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(b.players, s)
	}
	return errors.Join(errs...)
}
