// Package mesh 生成对话框使用的程序化几何体
//
// 所有函数都是纯函数：相同输入总是产生相同的顶点、索引和颜色。
// 坐标系为世界坐标（原点位于屏幕中心，Y 轴向上），
// 由 TextBoxRenderSystem 在绘制时转换为屏幕坐标。
package mesh

import "github.com/decker502/textbox/pkg/types"

// Vertex 带颜色的二维顶点
type Vertex struct {
	X, Y  float64
	Color types.Color // 线性空间 RGBA
}

// Geometry 三角形列表几何体
type Geometry struct {
	Vertices []Vertex
	Indices  []uint16 // 每 3 个索引组成一个三角形
}

// TriangleCount 返回三角形数量
func (g Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// WithAlpha 返回所有顶点 alpha 乘以 alpha 后的副本
// 原几何体不会被修改
func (g Geometry) WithAlpha(alpha float64) Geometry {
	vertices := make([]Vertex, len(g.Vertices))
	for i, v := range g.Vertices {
		v.Color.A *= alpha
		vertices[i] = v
	}
	indices := make([]uint16, len(g.Indices))
	copy(indices, g.Indices)
	return Geometry{Vertices: vertices, Indices: indices}
}
