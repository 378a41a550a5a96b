package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"

	"github.com/gonewx/crimson/pkg/modes"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
	saved        bool
}

func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// SaveOnExit 使 MockScene 同时实现 Saveable
func (m *MockScene) SaveOnExit() bool {
	m.saved = true
	return true
}

type plainScene struct{}

func (plainScene) Update(float64)      {}
func (plainScene) Draw(*ebiten.Image) {}

func TestSceneManagerUpdateAndDraw(t *testing.T) {
	sm := NewSceneManager()
	assert.Nil(t, sm.GetCurrentScene())

	// 没有场景时不应 panic
	sm.Update(0.016)
	sm.Draw(nil)

	scene := &MockScene{}
	sm.SwitchTo(scene)
	sm.Update(0.016)
	sm.Draw(nil)

	assert.True(t, scene.updateCalled)
	assert.True(t, scene.drawCalled)
	assert.Equal(t, 0.016, scene.deltaTime)
	assert.Same(t, scene, sm.GetCurrentScene())
}

func TestSceneManagerPlay(t *testing.T) {
	sm := NewSceneManager()
	assert.False(t, sm.Play(ModeRequest{Mode: modes.KindRush}), "未设置工厂时应失败")

	var got ModeRequest
	scene := &MockScene{}
	sm.SetSceneFactory(func(req ModeRequest) Scene {
		got = req
		if req.Mode == modes.KindQuest && req.Mission > 10 {
			return nil
		}
		return scene
	})

	req := ModeRequest{Mode: modes.KindRush, Loadout: "Rifleman"}
	assert.True(t, sm.Play(req))
	assert.Equal(t, req, got)
	assert.Same(t, scene, sm.GetCurrentScene())

	// 工厂返回 nil 时保持当前场景
	assert.False(t, sm.Play(ModeRequest{Mode: modes.KindQuest, Mission: 99}))
	assert.Same(t, scene, sm.GetCurrentScene())
}

func TestSceneManagerReturnToMenu(t *testing.T) {
	sm := NewSceneManager()
	sm.ReturnToMenu()
	assert.Nil(t, sm.GetCurrentScene())

	menu := &MockScene{}
	sm.SetMenuFactory(func() Scene { return menu })
	sm.ReturnToMenu()
	assert.Same(t, menu, sm.GetCurrentScene())
}

func TestSceneManagerSaveOnExit(t *testing.T) {
	sm := NewSceneManager()
	assert.True(t, sm.SaveOnExit(), "没有场景时视为无需保存")

	sm.SwitchTo(plainScene{})
	assert.True(t, sm.SaveOnExit())

	scene := &MockScene{}
	sm.SwitchTo(scene)
	assert.True(t, sm.SaveOnExit())
	assert.True(t, scene.saved)
}
