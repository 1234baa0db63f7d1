// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// Color 浮点 RGBA 颜色，各通道取值 0.0 ~ 1.0
//
// 注意：颜色空间由使用方决定
//   - 网格顶点颜色为线性空间（渲染时经 utils.LinearToSRGB 转换）
//   - 文本颜色为 sRGB 空间（直接作为 ColorScale 使用）
type Color struct {
	R, G, B, A float64
}

// RGBA 构造颜色
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Mix 在 c 与 other 之间按 t 线性插值（包括 alpha 通道）
// t=0 返回 c，t=1 返回 other
func (c Color) Mix(other Color, t float64) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// WithAlpha 返回替换 alpha 通道后的颜色
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// 常用颜色
var (
	// ColorBlack 纯黑（文本阴影层）
	ColorBlack = Color{R: 0, G: 0, B: 0, A: 1}
	// ColorGhostWhite CSS ghostwhite #F8F8FF（文本正面层）
	ColorGhostWhite = Color{R: 248.0 / 255.0, G: 248.0 / 255.0, B: 1, A: 1}
)
