package game

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSynthesizeTone(t *testing.T) {
	tests := []struct {
		name     string
		seconds  float64
		wantSize int
	}{
		{"0.1秒立体声16位", 0.1, 4800 * 4},
		{"时长为0返回空", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := SynthesizeTone(AudioSampleRate, 440, 1, tt.seconds)
			assert.Len(t, buf, tt.wantSize)
		})
	}
}

// TestSynthesizeToneChannels 左右声道写入相同的采样，并在结尾衰减到接近静音
func TestSynthesizeToneChannels(t *testing.T) {
	buf := SynthesizeTone(AudioSampleRate, 440, 2, 0.05)
	for i := 0; i+4 <= len(buf); i += 4 {
		left := binary.LittleEndian.Uint16(buf[i:])
		right := binary.LittleEndian.Uint16(buf[i+2:])
		if left != right {
			t.Fatalf("sample %d: left %d != right %d", i/4, left, right)
		}
	}

	last := int16(binary.LittleEndian.Uint16(buf[len(buf)-4:]))
	assert.Less(t, abs16(last), int16(200))
}

func abs16(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}

func TestAudioManagerSilentMode(t *testing.T) {
	var nilManager *AudioManager
	assert.False(t, nilManager.PlaySound(CuePerk))

	am := NewAudioManager(nil, NewSettingsManager(nil))
	for cue := range cueTones {
		assert.False(t, am.PlaySound(cue), "cue %s should not play without an audio context", cue)
	}
}
