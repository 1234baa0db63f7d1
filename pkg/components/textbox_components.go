package components

import (
	"github.com/decker502/textbox/pkg/ecs"
	"github.com/decker502/textbox/pkg/mesh"
)

// PositionComponent 世界坐标位置（原点为屏幕中心，Y 轴向上）
type PositionComponent struct {
	X, Y float64
}

// LayerComponent 绘制层级，Z 越大越靠前
type LayerComponent struct {
	Z float64
}

// MeshComponent 程序化网格
type MeshComponent struct {
	Geometry mesh.Geometry
}

// TextLayerComponent 单层文本（阴影层或正面层）
type TextLayerComponent struct {
	Text     string
	FontSize float64
}

// LineViewComponent 行视图：一行台词由阴影层和正面层两个文本实体组成
type LineViewComponent struct {
	LineIndex int
	Text      string
	Layers    [2]ecs.EntityID // [0] 阴影，[1] 正面
	SpawnTime float64
	Owner     ecs.EntityID
}
