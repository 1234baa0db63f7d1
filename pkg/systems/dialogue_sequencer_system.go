package systems

import (
	"log"

	"github.com/decker502/textbox/pkg/components"
	"github.com/decker502/textbox/pkg/config"
	"github.com/decker502/textbox/pkg/ecs"
	"github.com/decker502/textbox/pkg/entities"
)

// DialogueEffectKind 对话推进产生的效果类型
type DialogueEffectKind int

const (
	// EffectSpawnLine 生成新的一行台词
	EffectSpawnLine DialogueEffectKind = iota + 1
	// EffectSpawnIndicator 显示推进指示器
	EffectSpawnIndicator
	// EffectFinish 最后一行被推进，对话结束
	EffectFinish
)

// String 返回效果类型的字符串表示
func (k DialogueEffectKind) String() string {
	switch k {
	case EffectSpawnLine:
		return "SpawnLine"
	case EffectSpawnIndicator:
		return "SpawnIndicator"
	case EffectFinish:
		return "Finish"
	default:
		return "Unknown"
	}
}

// DialogueEffect 一次 Tick 产生的效果
type DialogueEffect struct {
	Kind      DialogueEffectKind
	Text      string  // 仅 EffectSpawnLine
	LineIndex int     // 仅 EffectSpawnLine
	SpawnTime float64 // 产生效果时的全局时间
}

// TickDialogue 推进一帧对话状态
//
// 参数：
//   - d: 对话状态
//   - now: 当前全局时间（秒）
//   - dt: 本帧时长（秒）
//
// 返回：
//   - DialogueEffect: 本帧产生的效果
//   - bool: 是否产生了效果
//
// 每帧按以下顺序求值：
//  1. 累加计时（仅在 TimeSinceShown < TransitionDelay 时）
//  2. 尚未显示任何行且计时到达 → 生成第 0 行
//  3. 有推进请求（手动或自动）且指示器已显示 → 生成下一行或结束对话
//  4. 已显示行、计时到达且指示器未显示 → 显示指示器
//
// 空台词列表或已结束的对话是无操作的
func TickDialogue(d *components.DialogueComponent, now, dt float64) (DialogueEffect, bool) {
	if d == nil || d.Finished || len(d.Lines) == 0 {
		return DialogueEffect{}, false
	}

	if d.TimeSinceShown < d.TransitionDelay {
		d.TimeSinceShown += dt
	}

	if d.LastShown == components.NoLineShown {
		if d.TimeSinceShown >= d.TransitionDelay {
			d.LastShown = 0
			d.Cursor = 0
			d.TimeSinceShown = 0
			return DialogueEffect{Kind: EffectSpawnLine, Text: d.Lines[0], LineIndex: 0, SpawnTime: now}, true
		}
		return DialogueEffect{}, false
	}

	if d.IndicatorShown {
		if d.AutoAdvanceDelay > 0 {
			d.IndicatorAge += dt
			if d.IndicatorAge >= d.AutoAdvanceDelay {
				d.AdvanceRequested = true
			}
		}
		if d.AdvanceRequested {
			return advanceDialogue(d, now), true
		}
		return DialogueEffect{}, false
	}

	if d.TimeSinceShown >= d.TransitionDelay {
		d.IndicatorShown = true
		d.IndicatorAge = 0
		return DialogueEffect{Kind: EffectSpawnIndicator, SpawnTime: now}, true
	}

	return DialogueEffect{}, false
}

// advanceDialogue 推进到下一行，或在最后一行时结束对话
func advanceDialogue(d *components.DialogueComponent, now float64) DialogueEffect {
	d.AdvanceRequested = false
	d.IndicatorShown = false
	d.IndicatorAge = 0

	if d.Cursor+1 >= len(d.Lines) {
		d.Finished = true
		return DialogueEffect{Kind: EffectFinish, SpawnTime: now}
	}

	d.Cursor++
	d.LastShown = d.Cursor
	d.TimeSinceShown = 0
	return DialogueEffect{Kind: EffectSpawnLine, Text: d.Lines[d.Cursor], LineIndex: d.Cursor, SpawnTime: now}
}

// RequestAdvance 请求推进对话
// 仅在指示器已显示时接受请求（返回 true），由下一次 TickDialogue 消费
func RequestAdvance(d *components.DialogueComponent) bool {
	if d == nil || d.Finished || !d.IndicatorShown {
		return false
	}
	d.AdvanceRequested = true
	return true
}

// SkipToIndicator 跳过当前行剩余的等待时间，使下一次 Tick 立即显示指示器
// 仅在已显示行且指示器未显示时生效
func SkipToIndicator(d *components.DialogueComponent) bool {
	if d == nil || d.Finished || d.LastShown == components.NoLineShown || d.IndicatorShown {
		return false
	}
	if d.TimeSinceShown < d.TransitionDelay {
		d.TimeSinceShown = d.TransitionDelay
	}
	return true
}

// DialogueSequencerSystem 对话推进系统
//
// 职责：
//   - 每帧对当前活动对话调用 TickDialogue
//   - 将效果落实为实体：生成/销毁行视图、生成/销毁指示器
//   - 处理推进输入：指示器显示时推进，否则跳过淡入与等待
//
// 活动对话由宿主通过 SetActiveDialogue 显式传入，系统不做全局查询
type DialogueSequencerSystem struct {
	entityManager *ecs.EntityManager
	config        *config.TextBoxConfig
	revealSystem  *RevealSystem

	activeDialogue ecs.EntityID
	warnedMissing  bool

	// OnLineSpawned 新行生成后的回调（用于播放提示音等），可为 nil
	OnLineSpawned func(effect DialogueEffect)
}

// NewDialogueSequencerSystem 创建对话推进系统
// 参数：
//   - em: EntityManager 实例
//   - cfg: 对话框配置（nil 时使用默认配置）
//   - revealSystem: 用于跳过时强制完成淡入，可为 nil
func NewDialogueSequencerSystem(em *ecs.EntityManager, cfg *config.TextBoxConfig, revealSystem *RevealSystem) *DialogueSequencerSystem {
	if cfg == nil {
		cfg = config.DefaultTextBoxConfig()
	}
	return &DialogueSequencerSystem{
		entityManager:  em,
		config:         cfg,
		revealSystem:   revealSystem,
		activeDialogue: ecs.InvalidEntity,
	}
}

// SetActiveDialogue 设置当前活动对话
func (s *DialogueSequencerSystem) SetActiveDialogue(id ecs.EntityID) {
	s.activeDialogue = id
	s.warnedMissing = false
}

// ActiveDialogue 返回当前活动对话实体
func (s *DialogueSequencerSystem) ActiveDialogue() ecs.EntityID {
	return s.activeDialogue
}

// activeComponent 获取活动对话组件，不存在时只记录一次警告
func (s *DialogueSequencerSystem) activeComponent() (*components.DialogueComponent, bool) {
	dialogue, ok := ecs.GetComponent[*components.DialogueComponent](s.entityManager, s.activeDialogue)
	if !ok || s.entityManager.IsMarkedForDestroy(s.activeDialogue) {
		if !s.warnedMissing {
			log.Printf("[DialogueSequencerSystem] Warning: no active dialogue (entity %d), skipping", s.activeDialogue)
			s.warnedMissing = true
		}
		return nil, false
	}
	return dialogue, true
}

// Update 推进活动对话一帧
// 必须在 RevealSystem.Update 之前调用，确保新生成的行以本帧时间作为淡入起点
func (s *DialogueSequencerSystem) Update(now, dt float64) {
	dialogue, ok := s.activeComponent()
	if !ok {
		return
	}

	effect, ok := TickDialogue(dialogue, now, dt)
	if !ok {
		return
	}
	s.applyEffect(dialogue, effect)
}

// applyEffect 将效果落实为实体变更
func (s *DialogueSequencerSystem) applyEffect(dialogue *components.DialogueComponent, effect DialogueEffect) {
	id := s.activeDialogue

	switch effect.Kind {
	case EffectSpawnLine:
		entities.DespawnIndicator(s.entityManager, id)
		entities.DespawnLines(s.entityManager, id)
		if _, err := entities.SpawnLineView(s.entityManager, s.config, id, effect.LineIndex, effect.Text, effect.SpawnTime); err != nil {
			log.Printf("[DialogueSequencerSystem] Warning: failed to spawn line %d: %v", effect.LineIndex, err)
			return
		}
		log.Printf("[DialogueSequencerSystem] Dialogue %d: line %d/%d shown", id, effect.LineIndex+1, len(dialogue.Lines))
		if s.OnLineSpawned != nil {
			s.OnLineSpawned(effect)
		}

	case EffectSpawnIndicator:
		if _, err := entities.SpawnIndicatorView(s.entityManager, s.config, id, effect.SpawnTime); err != nil {
			log.Printf("[DialogueSequencerSystem] Warning: failed to spawn indicator: %v", err)
		}

	case EffectFinish:
		entities.DespawnIndicator(s.entityManager, id)
		log.Printf("[DialogueSequencerSystem] Dialogue %d: finished", id)
		if dialogue.OnCompleteCallback != nil {
			dialogue.OnCompleteCallback()
		}
	}
}

// Advance 处理一次推进输入
//
// 返回：
//   - true: 指示器已显示，推进请求已接受（下一帧生效）
//   - false: 当前行仍在淡入或等待，已强制完成淡入并跳到指示器
func (s *DialogueSequencerSystem) Advance() bool {
	dialogue, ok := s.activeComponent()
	if !ok {
		return false
	}

	if RequestAdvance(dialogue) {
		return true
	}

	if s.revealSystem != nil {
		s.revealSystem.CompleteAll(s.activeDialogue)
	}
	SkipToIndicator(dialogue)
	return false
}
