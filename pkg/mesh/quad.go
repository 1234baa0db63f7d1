package mesh

import (
	"github.com/decker502/textbox/pkg/config"
	"github.com/decker502/textbox/pkg/types"
)

// 外框四角的基础颜色（左上、右上、右下、左下），内框四角复用同一组颜色
var quadCornerColors = [4]types.Color{
	{R: 0.95, G: 0.05, B: 0.2},
	{R: 0.97, G: 0.0, B: 0.17},
	{R: 0.98, G: 0.0, B: 0.1},
	{R: 0.92, G: 0.1, B: 0.1},
}

// 实心矩形：2 个三角形
var filledQuadIndices = []uint16{0, 1, 2, 3, 0, 2}

// 镂空边框：外框 0-3 与内框 4-7 之间的 8 个三角形
var cutoutQuadIndices = []uint16{
	0, 1, 4,
	4, 1, 5,
	5, 1, 2,
	6, 5, 2,
	3, 7, 6,
	2, 3, 6,
	3, 4, 7,
	4, 3, 0,
}

// QuadMesh 生成默认尺寸的对话框背景网格
//
// 参数：
//   - withCutout: true 生成镂空边框（8 顶点 / 8 三角形），false 生成实心矩形（4 顶点 / 2 三角形）
//   - alpha: 所有顶点的 alpha 值
func QuadMesh(withCutout bool, alpha float64) Geometry {
	return QuadMeshSized(config.TextBoxWidth, config.TextBoxHeight, config.TextBoxLineThickness, withCutout, alpha)
}

// QuadMeshSized 生成指定尺寸的对话框背景网格
// thickness 为镂空边框的线宽，withCutout 为 false 时忽略
func QuadMeshSized(width, height, thickness float64, withCutout bool, alpha float64) Geometry {
	halfW := width * 0.5
	halfH := height * 0.5

	vertexCount := 4
	if withCutout {
		vertexCount = 8
	}
	vertices := make([]Vertex, 0, vertexCount)
	vertices = appendRect(vertices, halfW, halfH, alpha)

	if !withCutout {
		return Geometry{Vertices: vertices, Indices: cloneIndices(filledQuadIndices)}
	}

	vertices = appendRect(vertices, halfW-thickness, halfH-thickness, alpha)
	return Geometry{Vertices: vertices, Indices: cloneIndices(cutoutQuadIndices)}
}

// appendRect 按左上、右上、右下、左下的顺序追加矩形四角
func appendRect(dst []Vertex, halfW, halfH, alpha float64) []Vertex {
	corners := [4][2]float64{
		{-halfW, halfH},
		{halfW, halfH},
		{halfW, -halfH},
		{-halfW, -halfH},
	}
	for i, c := range corners {
		dst = append(dst, Vertex{
			X:     c[0],
			Y:     c[1],
			Color: quadCornerColors[i].WithAlpha(alpha),
		})
	}
	return dst
}

func cloneIndices(src []uint16) []uint16 {
	dst := make([]uint16, len(src))
	copy(dst, src)
	return dst
}
