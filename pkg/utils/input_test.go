package utils

import (
	"math"
	"testing"
)

func TestTouchDirection(t *testing.T) {
	tests := []struct {
		name         string
		touchX       float64
		touchY       float64
		wantX, wantY float64
	}{
		{"死区内不移动", 110, 105, 0, 0},
		{"正右方", 300, 100, 1, 0},
		{"正上方", 100, 0, 0, -1},
		{"对角线归一化", 200, 200, math.Sqrt2 / 2, math.Sqrt2 / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := TouchDirection(tt.touchX, tt.touchY, 100, 100, TouchDeadZone)
			if math.Abs(x-tt.wantX) > 1e-9 || math.Abs(y-tt.wantY) > 1e-9 {
				t.Errorf("TouchDirection() = (%v, %v), want (%v, %v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestClampLength(t *testing.T) {
	tests := []struct {
		name         string
		x, y         float64
		wantX, wantY float64
	}{
		{"零向量", 0, 0, 0, 0},
		{"单轴保持不变", -1, 0, -1, 0},
		{"短向量保持不变", 0.3, 0.4, 0.3, 0.4},
		{"键盘对角线缩放到单位长度", 1, 1, math.Sqrt2 / 2, math.Sqrt2 / 2},
		{"键盘加手柄叠加", 2, 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := ClampLength(tt.x, tt.y)
			if math.Abs(x-tt.wantX) > 1e-9 || math.Abs(y-tt.wantY) > 1e-9 {
				t.Errorf("ClampLength() = (%v, %v), want (%v, %v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestApplyDeadZone(t *testing.T) {
	if x, y := applyDeadZone(0.1, 0.1, GamepadDeadZone); x != 0 || y != 0 {
		t.Errorf("small stick drift should be ignored, got (%v, %v)", x, y)
	}
	if x, y := applyDeadZone(0.5, -0.5, GamepadDeadZone); x != 0.5 || y != -0.5 {
		t.Errorf("stick outside dead zone should pass through, got (%v, %v)", x, y)
	}
}
