package systems

import (
	"image"
	"image/color"
	"sort"

	"github.com/decker502/textbox/pkg/components"
	"github.com/decker502/textbox/pkg/config"
	"github.com/decker502/textbox/pkg/ecs"
	"github.com/decker502/textbox/pkg/mesh"
	"github.com/decker502/textbox/pkg/types"
	"github.com/decker502/textbox/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// TextBoxRenderSystem 对话框渲染系统
//
// 职责：
//   - 按 LayerComponent.Z 从后到前绘制网格层与文本层
//   - 网格：几何体生成一次，淡入透明度在转换顶点时统一乘上
//   - 文本：居中绘制，颜色取自 TextRevealComponent
//
// 只读取组件，不修改任何状态
type TextBoxRenderSystem struct {
	entityManager *ecs.EntityManager
	fontFace      *text.GoTextFace

	// 纯白子图，作为 DrawTriangles 的纹理源
	whiteSubImage *ebiten.Image

	// 复用的顶点/索引缓冲区
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewTextBoxRenderSystem 创建对话框渲染系统
// fontFace 为 nil 时跳过文本绘制
func NewTextBoxRenderSystem(em *ecs.EntityManager, fontFace *text.GoTextFace) *TextBoxRenderSystem {
	return &TextBoxRenderSystem{
		entityManager: em,
		fontFace:      fontFace,
	}
}

// SetFontFace 替换文本字体（脚本热重载后字体配置可能变化）
func (s *TextBoxRenderSystem) SetFontFace(fontFace *text.GoTextFace) {
	s.fontFace = fontFace
}

// white 首次绘制时创建纯白子图
func (s *TextBoxRenderSystem) white() *ebiten.Image {
	if s.whiteSubImage == nil {
		whiteImage := ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		s.whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return s.whiteSubImage
}

// drawItem 一个待绘制的层
type drawItem struct {
	id ecs.EntityID
	z  float64
}

// collectDrawItems 收集所有可绘制层并按 Z 升序排序（Z 相同按实体 ID）
func collectDrawItems(em *ecs.EntityManager) []drawItem {
	ids := ecs.GetEntitiesWith2[*components.LayerComponent, *components.PositionComponent](em)
	items := make([]drawItem, 0, len(ids))
	for _, id := range ids {
		layer, _ := ecs.GetComponent[*components.LayerComponent](em, id)
		items = append(items, drawItem{id: id, z: layer.Z})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].z != items[j].z {
			return items[i].z < items[j].z
		}
		return items[i].id < items[j].id
	})
	return items
}

// Draw 绘制所有对话框层
func (s *TextBoxRenderSystem) Draw(screen *ebiten.Image) {
	for _, item := range collectDrawItems(s.entityManager) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, item.id)

		if meshComp, ok := ecs.GetComponent[*components.MeshComponent](s.entityManager, item.id); ok {
			alpha := 1.0
			if reveal, ok := ecs.GetComponent[*components.MeshRevealComponent](s.entityManager, item.id); ok {
				alpha = reveal.Alpha
			}
			s.drawMesh(screen, meshComp.Geometry, pos.X, pos.Y, alpha)
			continue
		}

		if layer, ok := ecs.GetComponent[*components.TextLayerComponent](s.entityManager, item.id); ok {
			c := types.ColorGhostWhite
			if reveal, ok := ecs.GetComponent[*components.TextRevealComponent](s.entityManager, item.id); ok {
				c = reveal.Color
			}
			s.drawText(screen, layer.Text, pos.X, pos.Y, c)
		}
	}
}

// drawMesh 绘制一个网格
func (s *TextBoxRenderSystem) drawMesh(screen *ebiten.Image, g mesh.Geometry, x, y, alpha float64) {
	if alpha <= 0 || len(g.Indices) == 0 {
		return
	}

	s.vertices, s.indices = appendGeometryVertices(s.vertices[:0], s.indices[:0], g, x, y, alpha,
		config.GameWindowWidth, config.GameWindowHeight)

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	screen.DrawTriangles(s.vertices, s.indices, s.white(), op)
}

// drawText 以 (x, y) 为中心绘制文本
func (s *TextBoxRenderSystem) drawText(screen *ebiten.Image, str string, x, y float64, c types.Color) {
	if s.fontFace == nil || str == "" || c.A <= 0 {
		return
	}

	sx, sy := utils.WorldToScreen(x, y, config.GameWindowWidth, config.GameWindowHeight)

	op := &text.DrawOptions{}
	op.GeoM.Translate(sx, sy)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.Scale(float32(c.R), float32(c.G), float32(c.B), 1)
	op.ColorScale.ScaleAlpha(float32(c.A))
	text.Draw(screen, str, s.fontFace, op)
}

// appendGeometryVertices 将世界坐标几何体平移到 (x, y) 并转换为屏幕顶点
// 顶点颜色从线性空间转换为 sRGB，alpha 乘以整体透明度
func appendGeometryVertices(
	vs []ebiten.Vertex,
	is []uint16,
	g mesh.Geometry,
	x, y, alpha float64,
	screenWidth, screenHeight int,
) ([]ebiten.Vertex, []uint16) {
	base := uint16(len(vs))

	for _, v := range g.Vertices {
		sx, sy := utils.WorldToScreen(x+v.X, y+v.Y, screenWidth, screenHeight)
		c := utils.LinearToSRGB(v.Color)
		vs = append(vs, ebiten.Vertex{
			DstX:   float32(sx),
			DstY:   float32(sy),
			SrcX:   1,
			SrcY:   1,
			ColorR: float32(c.R),
			ColorG: float32(c.G),
			ColorB: float32(c.B),
			ColorA: float32(utils.Clamp01(c.A * alpha)),
		})
	}

	for _, idx := range g.Indices {
		is = append(is, base+idx)
	}
	return vs, is
}
