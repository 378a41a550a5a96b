package game

import (
	"log"

	"github.com/gonewx/crimson/pkg/modes"
	"github.com/hajimehoshi/ebiten/v2"
)

// ModeRequest 进入对局所需的参数
type ModeRequest struct {
	Mode    modes.Kind
	Mission int    // 任务模式起始任务
	Loadout string // Rush 装备
}

// SceneFactory 对局场景工厂函数类型
// 用于创建对局场景，避免 game 与 scenes 包循环依赖
type SceneFactory func(req ModeRequest) Scene

// MenuFactory 菜单场景工厂函数类型
type MenuFactory func() Scene

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	playFactory  SceneFactory
	menuFactory  MenuFactory
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置对局场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.playFactory = factory
}

// SetMenuFactory 设置菜单场景工厂函数
func (sm *SceneManager) SetMenuFactory(factory MenuFactory) {
	sm.menuFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Play 切换到新的对局场景
//
// 返回：
//   - bool: 是否成功切换
func (sm *SceneManager) Play(req ModeRequest) bool {
	log.Printf("[SceneManager] 进入模式: %s (mission=%d, loadout=%q)", req.Mode, req.Mission, req.Loadout)

	if sm.playFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return false
	}

	scene := sm.playFactory(req)
	if scene == nil {
		log.Printf("[SceneManager] 错误: 无法创建对局场景: %s", req.Mode)
		return false
	}
	sm.SwitchTo(scene)
	return true
}

// ReturnToMenu 回到菜单场景
func (sm *SceneManager) ReturnToMenu() {
	if sm.menuFactory == nil {
		log.Printf("[SceneManager] 错误: MenuFactory 未设置")
		return
	}
	sm.SwitchTo(sm.menuFactory())
}

// SaveOnExit 在程序退出时让当前场景保存状态
func (sm *SceneManager) SaveOnExit() bool {
	if saveable, ok := sm.currentScene.(Saveable); ok {
		return saveable.SaveOnExit()
	}
	return true
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
