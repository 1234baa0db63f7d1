package mesh

import (
	"math"

	"github.com/decker502/textbox/pkg/types"
)

// 三个顶点的渐变端点：base 为蓝色，positive 为绿色（t >= 0），negative 为黄色（t < 0）
var triangleGradients = [3]struct {
	base, positive, negative types.Color
}{
	{
		base:     types.RGBA(0.05, 0.2, 0.95, 1.0),
		positive: types.RGBA(0.05, 0.95, 0.2, 1.0),
		negative: types.RGBA(0.95, 0.95, 0.2, 1.0),
	},
	{
		base:     types.RGBA(0.0, 0.17, 0.97, 1.0),
		positive: types.RGBA(0.0, 0.97, 0.17, 1.0),
		negative: types.RGBA(0.97, 0.97, 0.17, 1.0),
	},
	{
		base:     types.RGBA(0.0, 0.1, 0.98, 1.0),
		positive: types.RGBA(0.0, 0.98, 0.1, 1.0),
		negative: types.RGBA(0.98, 0.98, 0.1, 1.0),
	},
}

// TriangleColors 计算指示三角形的三个顶点颜色
//
// blendT 通常为 sin(now * speed)，取值 [-1, 1]：
//   - blendT >= 0：蓝 → 绿，混合系数为 blendT
//   - blendT < 0：蓝 → 黄，混合系数为 |blendT|
func TriangleColors(blendT float64) [3]types.Color {
	var colors [3]types.Color
	for i, g := range triangleGradients {
		if blendT >= 0 {
			colors[i] = g.base.Mix(g.positive, blendT)
		} else {
			colors[i] = g.base.Mix(g.negative, math.Abs(blendT))
		}
	}
	return colors
}

// TriangleMesh 生成朝下的指示三角形
// 顶点顺序：左上、右上、底部尖角
func TriangleMesh(height, width, blendT float64) Geometry {
	halfH := height / 2
	halfW := width / 2
	colors := TriangleColors(blendT)

	return Geometry{
		Vertices: []Vertex{
			{X: -halfW, Y: halfH, Color: colors[0]},
			{X: halfW, Y: halfH, Color: colors[1]},
			{X: 0, Y: -halfH, Color: colors[2]},
		},
		Indices: []uint16{0, 1, 2},
	}
}
