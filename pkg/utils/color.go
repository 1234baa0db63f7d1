package utils

import (
	"github.com/decker502/textbox/pkg/types"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// LinearToSRGB 将线性空间颜色转换为 sRGB（alpha 不变）
// 网格顶点颜色以线性空间定义，Ebiten 顶点颜色按 sRGB 解释，绘制前需要转换
func LinearToSRGB(c types.Color) types.Color {
	srgb := colorful.LinearRgb(c.R, c.G, c.B).Clamped()
	return types.Color{R: srgb.R, G: srgb.G, B: srgb.B, A: Clamp01(c.A)}
}

// Clamp01 将值限制在 0.0 ~ 1.0 范围内
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
