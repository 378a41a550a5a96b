package scenes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/crimson/pkg/game"
	"github.com/gonewx/crimson/pkg/modes"
)

func newTestMenu(t *testing.T, unlocked int) (*MenuScene, *game.SceneManager, *[]game.ModeRequest) {
	t.Helper()
	saves, err := game.NewSaveManager(nil)
	require.NoError(t, err)
	saves.GetData().UnlockedMissions = unlocked

	settings := game.NewSettingsManager(nil)
	settings.SetRushLoadout("Rifleman")

	sm := game.NewSceneManager()
	var played []game.ModeRequest
	sm.SetSceneFactory(func(req game.ModeRequest) game.Scene {
		played = append(played, req)
		return &MenuScene{}
	})
	return NewMenuScene(sm, newTestRegistries(t), saves, settings), sm, &played
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		i, n int
		want int
	}{
		{name: "范围内", i: 1, n: 3, want: 1},
		{name: "向后回绕", i: 3, n: 3, want: 0},
		{name: "向前回绕", i: -1, n: 3, want: 2},
		{name: "空列表", i: 5, n: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrap(tt.i, tt.n))
		})
	}
}

func TestMenuSceneDefaults(t *testing.T) {
	m, _, _ := newTestMenu(t, 5)

	// 解锁数量超过任务总数时按总数计算，默认选中最后一个已解锁任务
	assert.Equal(t, 2, m.unlockedMissions())
	assert.Equal(t, game.ModeRequest{Mode: modes.KindQuest, Mission: 1}, m.Selected())

	// 上次使用的装备被预选
	m.Move(0, 2)
	assert.Equal(t, game.ModeRequest{Mode: modes.KindRush, Loadout: "Rifleman"}, m.Selected())
}

func TestMenuSceneMissionSelectionRespectsUnlocks(t *testing.T) {
	m, _, _ := newTestMenu(t, 1)
	assert.Equal(t, 0, m.Selected().Mission)

	m.Move(1, 0)
	assert.Equal(t, 0, m.Selected().Mission, "只有一个任务解锁时不能切换")
}

func TestMenuSceneConfirm(t *testing.T) {
	m, sm, played := newTestMenu(t, 1)

	m.Move(0, 1)
	assert.True(t, m.Confirm())
	m.Move(0, 1)
	m.Move(-1, 0)
	assert.True(t, m.Confirm())

	require.Len(t, *played, 2)
	assert.Equal(t, game.ModeRequest{Mode: modes.KindSurvival}, (*played)[0])
	assert.Equal(t, game.ModeRequest{Mode: modes.KindRush, Loadout: "Sidearm"}, (*played)[1])
	assert.Equal(t, "Sidearm", m.settings.GetSettings().RushLoadout)
	assert.NotNil(t, sm.GetCurrentScene())
}

func TestMenuSceneLines(t *testing.T) {
	m, _, _ := newTestMenu(t, 2)
	lines := m.Lines()

	assert.Equal(t, "CRIMSON", lines[0])
	assert.Contains(t, lines[2], "> QUEST")
	assert.Contains(t, lines[2], "m2 Second")
	assert.Contains(t, lines[4], "Rifleman: rifle")
}
