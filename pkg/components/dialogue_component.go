package components

import "github.com/decker502/textbox/pkg/ecs"

// NoLineShown 表示对话尚未显示任何一行（LastShown 的初始值）
const NoLineShown = -1

// DialogueComponent 对话框状态组件（纯数据，无方法）
//
// 设计目的:
//
//	存储一段对话的全部状态：台词队列、当前游标、行间计时、指示器状态，
//	以及该对话拥有的所有子实体（背景层、行视图、指示器）。
//	配合 DialogueSequencerSystem 实现逐行出现与推进。
//
// 生命周期:
//  1. entities.BuildTextBox 创建实体时添加此组件
//  2. DialogueSequencerSystem 每帧推进状态并生成行/指示器
//  3. 场景退出时 entities.DestroyTextBox 沿拥有关系销毁全部子实体
//
// 不变量:
//   - IndicatorShown 为 true 时 LastShown 必然不为 NoLineShown
//   - Cursor 只会随着“生成新行”一起改变
type DialogueComponent struct {
	// ==========================================================================
	// 对话内容 (Dialogue Content)
	// ==========================================================================

	// Lines 全部台词，创建后不再修改
	Lines []string

	// Cursor 当前正在推进的行索引（从 0 开始）
	Cursor int

	// LastShown 最近一次完整生成的行索引，尚未显示时为 NoLineShown
	LastShown int

	// ==========================================================================
	// 计时 (Timing)
	// ==========================================================================

	// TimeSinceShown 距上一次生成行的累计时间（秒），超过 TransitionDelay 后停止累加
	TimeSinceShown float64

	// TransitionDelay 首行出现前、以及行出现后到显示指示器之间的等待时间（秒）
	TransitionDelay float64

	// IndicatorShown 当前行的推进指示器是否已显示
	IndicatorShown bool

	// IndicatorAge 指示器已显示的时间（秒），仅在自动推进时累加
	IndicatorAge float64

	// AutoAdvanceDelay 自动推进等待时间（秒），0 表示只能手动推进
	AutoAdvanceDelay float64

	// AdvanceRequested 手动推进请求，由下一次 Tick 消费
	AdvanceRequested bool

	// Finished 最后一行被推进后置为 true，之后 Tick 不再产生任何效果
	Finished bool

	// ==========================================================================
	// 拥有的子实体 (Owned Children)
	// ==========================================================================

	// Backgrounds 背景层：[0] 投影，[1] 镂空主框
	Backgrounds [2]ecs.EntityID

	// LineViews 当前存在的行视图实体
	LineViews []ecs.EntityID

	// Indicator 推进指示器实体，不存在时为 ecs.InvalidEntity
	Indicator ecs.EntityID

	// ==========================================================================
	// 回调 (Callbacks)
	// ==========================================================================

	// OnCompleteCallback 对话完成回调（最后一行被推进后调用一次）
	OnCompleteCallback func()
}

// NewDialogueComponent 创建尚未显示任何行的对话状态
// lines 会被复制，LastShown 初始为 NoLineShown，Indicator 初始为 ecs.InvalidEntity
func NewDialogueComponent(lines []string, transitionDelay float64) *DialogueComponent {
	dialogueLines := make([]string, len(lines))
	copy(dialogueLines, lines)
	return &DialogueComponent{
		Lines:           dialogueLines,
		Cursor:          0,
		LastShown:       NoLineShown,
		TransitionDelay: transitionDelay,
		Indicator:       ecs.InvalidEntity,
	}
}
