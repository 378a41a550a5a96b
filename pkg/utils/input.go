// Package utils 提供通用工具函数
package utils

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 摇杆与触摸的死区
const (
	GamepadDeadZone = 0.2
	TouchDeadZone   = 24.0
)

// MoveAxis 读取当前帧的移动方向
// 键盘（WASD/方向键）、标准布局手柄左摇杆、触摸按住点三者叠加，结果长度不超过 1
//
// 参数：
//
//	centerX, centerY - 触摸方向的参考点（通常为玩家屏幕坐标）
func MoveAxis(centerX, centerY float64) (float64, float64) {
	x, y := keyboardAxis()

	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		gx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		gy := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		gx, gy = applyDeadZone(gx, gy, GamepadDeadZone)
		x += gx
		y += gy
	}

	if touches := ebiten.AppendTouchIDs(nil); len(touches) > 0 {
		tx, ty := ebiten.TouchPosition(touches[0])
		dx, dy := TouchDirection(float64(tx), float64(ty), centerX, centerY, TouchDeadZone)
		x += dx
		y += dy
	}

	return ClampLength(x, y)
}

func keyboardAxis() (float64, float64) {
	x, y := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		x--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		x++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		y++
	}
	return x, y
}

// TouchDirection 计算触摸点相对参考点的单位方向
// 距离小于死区时返回 (0, 0)
func TouchDirection(touchX, touchY, centerX, centerY, deadZone float64) (float64, float64) {
	dx := touchX - centerX
	dy := touchY - centerY
	dist := math.Hypot(dx, dy)
	if dist < deadZone || dist == 0 {
		return 0, 0
	}
	return dx / dist, dy / dist
}

// ClampLength 将向量长度限制在 1 以内，方向不变
func ClampLength(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l <= 1 {
		return x, y
	}
	return x / l, y / l
}

func applyDeadZone(x, y, deadZone float64) (float64, float64) {
	if math.Hypot(x, y) < deadZone {
		return 0, 0
	}
	return x, y
}

// MenuDelta 返回本帧菜单光标的移动量（仅刚按下的按键/手柄方向键）
func MenuDelta() (dx, dy int) {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyW) {
		dy--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyS) {
		dy++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		dx--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		dx++
	}
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonLeftTop) {
			dy--
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonLeftBottom) {
			dy++
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonLeftLeft) {
			dx--
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonLeftRight) {
			dx++
		}
	}
	return dx, dy
}

// IsConfirmJustPressed 检查确认输入：回车、空格、手柄 A 键或点击/触摸
func IsConfirmJustPressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		return true
	}
	if gamepadJustPressed(ebiten.StandardGamepadButtonRightBottom) {
		return true
	}
	pressed, _, _ := IsJustTouchedOrClicked()
	return pressed
}

// IsBackJustPressed 检查返回输入：Esc 或手柄 Back 键
func IsBackJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		gamepadJustPressed(ebiten.StandardGamepadButtonCenterLeft)
}

// IsPauseJustPressed 检查暂停输入：P 或手柄 Start 键
func IsPauseJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyP) ||
		gamepadJustPressed(ebiten.StandardGamepadButtonCenterRight)
}

// ChoiceJustPressed 返回本帧按下的数字选项（1..n 对应 0..n-1），没有时返回 -1
func ChoiceJustPressed(n int) int {
	keys := []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5}
	for i, key := range keys {
		if i >= n {
			break
		}
		if inpututil.IsKeyJustPressed(key) {
			return i
		}
	}
	return -1
}

func gamepadJustPressed(button ebiten.StandardGamepadButton) bool {
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if ebiten.IsStandardGamepadLayoutAvailable(id) && inpututil.IsStandardGamepadButtonJustPressed(id, button) {
			return true
		}
	}
	return false
}

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	if touchIDs := inpututil.AppendJustPressedTouchIDs(nil); len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}
	return false, 0, 0
}
