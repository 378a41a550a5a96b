package scenes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/crimson/pkg/config"
	"github.com/gonewx/crimson/pkg/events"
	"github.com/gonewx/crimson/pkg/game"
	"github.com/gonewx/crimson/pkg/modes"
)

func TestSoundCueFor(t *testing.T) {
	tests := []struct {
		name   string
		event  events.Event
		want   game.SoundCue
		wantOK bool
	}{
		{"武器掉落", events.PickupRequested{Bonus: string(config.BonusWeapon), WeaponID: "rifle"}, game.CuePickup, true},
		{"医疗包掉落", events.PickupRequested{Bonus: string(config.BonusSmallHealth)}, game.CuePickup, true},
		{"技能待选", events.PerkOffered{Level: 2}, game.CuePerk, true},
		{"新波次", events.WaveStarted{Wave: 3}, game.CueWave, true},
		{"Rush 得分", events.ScoreChanged{Delta: 10}, game.CueScore, true},
		{"得分未变化不播放", events.ScoreChanged{Delta: 0}, game.CueScore, false},
		{"模式结束", events.ModeTransitioned{From: "rush", To: modes.KindEnded.String()}, game.CueGameOver, true},
		{"任务推进不播放结束音效", events.ModeTransitioned{From: "quest", To: "quest"}, game.CueGameOver, false},
		{"生成请求没有音效", events.SpawnRequested{CreatureID: "zombie"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cue, ok := soundCueFor(tt.event)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, cue)
			}
		})
	}
}

// TestPlaySceneSaveOnExit 关闭窗口时中止对局，结果写入存档
func TestPlaySceneSaveOnExit(t *testing.T) {
	saves, err := game.NewSaveManager(nil)
	require.NoError(t, err)

	session := game.NewSession(game.SessionConfig{Registries: newTestRegistries(t), Seed: 5, Saves: saves, Record: true})
	require.NoError(t, session.Start(modes.KindRush, 0, "Sidearm"))

	scene := NewPlayScene(game.NewSceneManager(), session, PlayOptions{})
	require.NoError(t, scene.Arena().Step(tick, 0, 0))

	assert.True(t, scene.SaveOnExit())
	assert.False(t, session.Running())

	result := session.LastResult()
	require.NotNil(t, result)
	assert.Equal(t, modes.OutcomeAborted, result.Outcome)
	assert.Equal(t, 1, saves.GetData().Rush.Plays)
	assert.NotNil(t, session.Recording())
}

func TestPickupColor(t *testing.T) {
	assert.Equal(t, colorPickup, pickupColor(config.BonusWeapon))
	assert.Equal(t, colorHealthDrop, pickupColor(config.BonusFullHealth))
	assert.Equal(t, colorExpDrop, pickupColor(config.BonusLargeExp))
	assert.Equal(t, colorEffectDrop, pickupColor(config.BonusShield))
}

func TestEffectsLine(t *testing.T) {
	assert.Empty(t, effectsLine(nil))
	line := effectsLine(map[config.BonusKind]float64{
		config.BonusShield: 12.2,
		config.BonusSpeed:  3.6,
		config.BonusDamage: 0,
	})
	assert.Equal(t, "Speed Boost 4s  Shield 12s", line)
}
