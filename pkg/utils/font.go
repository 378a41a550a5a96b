package utils

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// 界面字号
const (
	FontSizeHUD   = 16.0
	FontSizeTitle = 28.0
)

// LineHeightScale 行高相对字号的倍数
const LineHeightScale = 1.35

// NewUIFace 使用内置的 Go Regular 字体创建文字外观
//
// 参数：
//
//	size - 字号（像素）
//
// 返回：
//
//	*text.GoTextFace - 文字外观
//	error - 字体解析失败时返回错误
func NewUIFace(size float64) (*text.GoTextFace, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load ui font: %w", err)
	}
	return &text.GoTextFace{Source: source, Size: size}, nil
}

// LineHeight 返回多行文字的行距，face 为 nil 时使用调试字体的 16 像素
func LineHeight(face *text.GoTextFace) float64 {
	if face == nil {
		return 16
	}
	return face.Size * LineHeightScale
}

// DrawText 在 (x, y) 绘制文字，支持换行
// face 为 nil 时退回 ebitenutil 调试字体（忽略颜色）
func DrawText(screen *ebiten.Image, str string, face *text.GoTextFace, x, y float64, clr color.Color) {
	if face == nil {
		ebitenutil.DebugPrintAt(screen, str, int(x), int(y))
		return
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = LineHeight(face)
	text.Draw(screen, str, face, op)
}

// MeasureText 返回文字的像素宽高，face 为 nil 时按调试字体估算
func MeasureText(str string, face *text.GoTextFace) (float64, float64) {
	if face == nil {
		return float64(len(str) * 6), 16
	}
	return text.Measure(str, face, LineHeight(face))
}
