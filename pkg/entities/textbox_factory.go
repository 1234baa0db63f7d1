package entities

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/decker502/textbox/pkg/components"
	"github.com/decker502/textbox/pkg/config"
	"github.com/decker502/textbox/pkg/ecs"
	"github.com/decker502/textbox/pkg/mesh"
	"github.com/decker502/textbox/pkg/types"
)

// ErrEmptyDialogue 对话台词列表为空
var ErrEmptyDialogue = errors.New("dialogue must contain at least one line")

// 背景层索引
const (
	BackgroundShadow = 0 // 投影（实心矩形）
	BackgroundMain   = 1 // 主框（镂空边框）
)

// 文本层索引
const (
	TextLayerShadow = 0
	TextLayerFace   = 1
)

// TextBox 对话框构建结果
type TextBox struct {
	DialogueID  ecs.EntityID
	Backgrounds [2]ecs.EntityID
	// InitialGeometry 两个背景层在创建时刻（alpha = 0）的几何体
	InitialGeometry [2]mesh.Geometry
}

// BuildTextBox 创建对话框：对话状态实体 + 两个背景层实体
//
// 参数:
//   - em: 实体管理器
//   - cfg: 对话框配置（nil 时使用默认配置）
//   - lines: 台词列表，不能为空
//   - spawnTime: 当前全局时间（秒），作为背景淡入的起点
//
// 返回:
//   - *TextBox: 对话实体与背景层实体
//   - error: lines 为空时返回 ErrEmptyDialogue
//
// 注意：
//   - 台词行与指示器不在这里创建，由 DialogueSequencerSystem 按时间生成
//   - 背景几何体只生成一次，淡入通过 MeshRevealComponent.Alpha 在绘制时应用
func BuildTextBox(em *ecs.EntityManager, cfg *config.TextBoxConfig, lines []string, spawnTime float64) (*TextBox, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	if len(lines) == 0 {
		return nil, ErrEmptyDialogue
	}
	if cfg == nil {
		cfg = config.DefaultTextBoxConfig()
	}

	dialogueID := em.CreateEntity()
	dialogue := components.NewDialogueComponent(lines, cfg.TransitionDelay)
	ecs.AddComponent(em, dialogueID, dialogue)

	box := &TextBox{DialogueID: dialogueID}

	// 投影：实心矩形，向右下偏移
	shadowGeometry := mesh.QuadMeshSized(cfg.Width, cfg.Height, cfg.LineThickness, false, 1.0)
	box.Backgrounds[BackgroundShadow] = newBackgroundLayer(em, dialogueID, shadowGeometry,
		cfg.BgShadowOffset, cfg.OffsetFromCenterY-cfg.BgShadowOffset, config.BoxBgShadowZ,
		cfg.BgShadowAlpha, cfg.FadeInTime, spawnTime)

	// 主框：镂空边框
	mainGeometry := mesh.QuadMeshSized(cfg.Width, cfg.Height, cfg.LineThickness, true, 1.0)
	box.Backgrounds[BackgroundMain] = newBackgroundLayer(em, dialogueID, mainGeometry,
		0, cfg.OffsetFromCenterY, config.BoxBgZ,
		cfg.BgAlpha, cfg.FadeInTime, spawnTime)

	box.InitialGeometry[BackgroundShadow] = shadowGeometry.WithAlpha(0)
	box.InitialGeometry[BackgroundMain] = mainGeometry.WithAlpha(0)
	dialogue.Backgrounds = box.Backgrounds

	log.Printf("[TextBoxFactory] Built textbox %d with %d lines (spawn=%.3f)", dialogueID, len(lines), spawnTime)
	return box, nil
}

func newBackgroundLayer(
	em *ecs.EntityManager,
	owner ecs.EntityID,
	geometry mesh.Geometry,
	x, y, z float64,
	targetAlpha, fadeIn, spawnTime float64,
) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.LayerComponent{Z: z})
	ecs.AddComponent(em, id, &components.MeshComponent{Geometry: geometry})
	ecs.AddComponent(em, id, &components.MeshRevealComponent{
		Timer: components.RevealTimer{
			SpawnTime:          spawnTime,
			AppearanceDuration: fadeIn,
		},
		TargetAlpha: targetAlpha,
		Alpha:       0,
		Owner:       owner,
	})
	return id
}

// SpawnLineView 为对话创建一行台词视图（阴影层 + 正面层）
// 两个文本层共享 spawnTime，各自拥有独立的淡入计时器
func SpawnLineView(
	em *ecs.EntityManager,
	cfg *config.TextBoxConfig,
	dialogueID ecs.EntityID,
	lineIndex int,
	text string,
	spawnTime float64,
) (ecs.EntityID, error) {
	dialogue, ok := ecs.GetComponent[*components.DialogueComponent](em, dialogueID)
	if !ok {
		return ecs.InvalidEntity, fmt.Errorf("entity %d has no DialogueComponent", dialogueID)
	}
	if cfg == nil {
		cfg = config.DefaultTextBoxConfig()
	}

	lineID := em.CreateEntity()
	view := &components.LineViewComponent{
		LineIndex: lineIndex,
		Text:      text,
		SpawnTime: spawnTime,
		Owner:     dialogueID,
	}

	view.Layers[TextLayerShadow] = newTextLayer(em, dialogueID, text, cfg.FontSize,
		cfg.TextShadowOffset, cfg.OffsetFromCenterY-cfg.TextShadowOffset, config.TextShadowZ,
		types.ColorBlack, cfg.FadeInTime, spawnTime)
	view.Layers[TextLayerFace] = newTextLayer(em, dialogueID, text, cfg.FontSize,
		0, cfg.OffsetFromCenterY, config.TextZ,
		types.ColorGhostWhite, cfg.FadeInTime, spawnTime)

	ecs.AddComponent(em, lineID, view)
	dialogue.LineViews = append(dialogue.LineViews, lineID)

	log.Printf("[TextBoxFactory] Dialogue %d: spawned line %d %q at %.3f", dialogueID, lineIndex, text, spawnTime)
	return lineID, nil
}

func newTextLayer(
	em *ecs.EntityManager,
	owner ecs.EntityID,
	text string,
	fontSize float64,
	x, y, z float64,
	target types.Color,
	fadeIn, spawnTime float64,
) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.LayerComponent{Z: z})
	ecs.AddComponent(em, id, &components.TextLayerComponent{Text: text, FontSize: fontSize})
	ecs.AddComponent(em, id, &components.TextRevealComponent{
		Timer: components.RevealTimer{
			SpawnTime:          spawnTime,
			AppearanceDuration: fadeIn,
		},
		TargetColor: target,
		Color:       target.WithAlpha(0),
		Owner:       owner,
	})
	return id
}

// SpawnIndicatorView 为对话创建推进指示器（已存在时直接返回现有实体）
func SpawnIndicatorView(
	em *ecs.EntityManager,
	cfg *config.TextBoxConfig,
	dialogueID ecs.EntityID,
	now float64,
) (ecs.EntityID, error) {
	dialogue, ok := ecs.GetComponent[*components.DialogueComponent](em, dialogueID)
	if !ok {
		return ecs.InvalidEntity, fmt.Errorf("entity %d has no DialogueComponent", dialogueID)
	}
	if dialogue.Indicator != ecs.InvalidEntity && em.IsAlive(dialogue.Indicator) {
		return dialogue.Indicator, nil
	}
	if cfg == nil {
		cfg = config.DefaultTextBoxConfig()
	}

	phase := math.Sin(now * cfg.WobbleSpeed)
	baseY := cfg.IndicatorBaseY()

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: 0, Y: baseY + phase*cfg.WobbleAmplitude})
	ecs.AddComponent(em, id, &components.LayerComponent{Z: config.IndicatorZ})
	ecs.AddComponent(em, id, &components.MeshComponent{
		Geometry: mesh.TriangleMesh(cfg.IndicatorHeight, cfg.IndicatorWidth, phase),
	})
	ecs.AddComponent(em, id, &components.IndicatorComponent{
		BaseY:   baseY,
		OffsetY: baseY + phase*cfg.WobbleAmplitude,
		Colors:  mesh.TriangleColors(phase),
		Owner:   dialogueID,
	})
	dialogue.Indicator = id

	log.Printf("[TextBoxFactory] Dialogue %d: spawned indicator %d at %.3f", dialogueID, id, now)
	return id, nil
}

// DespawnLines 销毁对话当前拥有的所有行视图
func DespawnLines(em *ecs.EntityManager, dialogueID ecs.EntityID) {
	dialogue, ok := ecs.GetComponent[*components.DialogueComponent](em, dialogueID)
	if !ok {
		return
	}
	for _, lineID := range dialogue.LineViews {
		if view, ok := ecs.GetComponent[*components.LineViewComponent](em, lineID); ok {
			for _, layer := range view.Layers {
				em.DestroyEntity(layer)
			}
		}
		em.DestroyEntity(lineID)
	}
	dialogue.LineViews = dialogue.LineViews[:0]
}

// DespawnIndicator 销毁对话的推进指示器
func DespawnIndicator(em *ecs.EntityManager, dialogueID ecs.EntityID) {
	dialogue, ok := ecs.GetComponent[*components.DialogueComponent](em, dialogueID)
	if !ok || dialogue.Indicator == ecs.InvalidEntity {
		return
	}
	em.DestroyEntity(dialogue.Indicator)
	dialogue.Indicator = ecs.InvalidEntity
}

// DestroyTextBox 沿拥有关系标记销毁对话及其全部子实体
// 实际移除发生在 EntityManager.RemoveMarkedEntities
func DestroyTextBox(em *ecs.EntityManager, dialogueID ecs.EntityID) {
	dialogue, ok := ecs.GetComponent[*components.DialogueComponent](em, dialogueID)
	if !ok {
		return
	}

	DespawnLines(em, dialogueID)
	DespawnIndicator(em, dialogueID)
	for _, bg := range dialogue.Backgrounds {
		em.DestroyEntity(bg)
	}
	em.DestroyEntity(dialogueID)

	log.Printf("[TextBoxFactory] Destroyed textbox %d", dialogueID)
}
