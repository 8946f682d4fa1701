package assets

import (
	"encoding/binary"
	"testing"

	"github.com/milk9111/firstperson/controller"
	"github.com/milk9111/firstperson/prefabs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTone(t *testing.T) {
	pcm := Tone(prefabs.AudioSpec{Frequency: 441, Duration: 0.1, Volume: 0.5}, 44100)
	require.Len(t, pcm, 4410*4)

	peak := 0
	for i := 0; i < len(pcm); i += 4 {
		l := int16(binary.LittleEndian.Uint16(pcm[i:]))
		r := int16(binary.LittleEndian.Uint16(pcm[i+2:]))
		assert.Equal(t, l, r)
		if v := int(l); v > peak {
			peak = v
		} else if -v > peak {
			peak = -v
		}
	}
	assert.LessOrEqual(t, peak, 32767/2)
	assert.Greater(t, peak, 32767/4)

	assert.Nil(t, Tone(prefabs.AudioSpec{Frequency: 0, Duration: 1}, 44100))
	assert.Nil(t, Tone(prefabs.AudioSpec{Frequency: 100}, 44100))
}

func TestParseSound(t *testing.T) {
	s, err := ParseSound("fall_damage")
	require.NoError(t, err)
	assert.Equal(t, controller.SoundFallDamage, s)

	_, err = ParseSound("explosion")
	assert.ErrorIs(t, err, ErrUnknownSound)
}

func TestSilentBankCounts(t *testing.T) {
	specs := []prefabs.AudioSpec{
		{Name: "jump", Frequency: 440, Duration: 0.05, Volume: 1},
		{Name: "land", Frequency: 165, Duration: 0.05, Volume: 1},
	}
	b, err := NewSoundBank(nil, specs, zerolog.Nop())
	require.NoError(t, err)

	b.Play(controller.SoundJump)
	b.Play(controller.SoundJump)
	b.Play(controller.SoundFootstep)
	assert.Equal(t, 2, b.Played(controller.SoundJump))
	assert.Equal(t, 1, b.Played(controller.SoundFootstep))
	assert.Zero(t, b.Played(controller.SoundLand))
	assert.NoError(t, b.Close())

	_, err = NewSoundBank(nil, []prefabs.AudioSpec{{Name: "boom"}}, zerolog.Nop())
	assert.ErrorIs(t, err, ErrUnknownSound)
}

func TestPlayerPrefabSounds(t *testing.T) {
	spec, err := prefabs.LoadPlayerSpec()
	require.NoError(t, err)
	b, err := NewSoundBank(nil, spec.Audio, zerolog.Nop())
	require.NoError(t, err)
	for s := controller.SoundFootstep; s <= controller.SoundFallDamage; s++ {
		assert.NotEmpty(t, b.tones[s], s.String())
	}
}
