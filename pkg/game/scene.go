package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 场景接口（菜单、对局）
// SceneManager 每帧调用一次 Update 与 Draw
type Scene interface {
	// Update 推进场景逻辑，deltaTime 为固定 tick 时长（秒）
	Update(deltaTime float64)

	// Draw 绘制场景
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口：窗口关闭时需要落盘的场景实现它
// 对局场景借此中止进行中的模式，使结果计入存档
type Saveable interface {
	// SaveOnExit 返回 false 表示保存失败，程序仍会退出
	SaveOnExit() bool
}
