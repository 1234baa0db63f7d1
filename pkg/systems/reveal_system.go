package systems

import (
	"github.com/decker502/textbox/pkg/components"
	"github.com/decker502/textbox/pkg/ecs"
	"github.com/decker502/textbox/pkg/types"
)

// revealProgress 计算淡入进度 [0, 1]
// done 为 true 表示已到达目标（包括 AppearanceDuration <= 0 的退化情况）
func revealProgress(timer *components.RevealTimer, now float64) (progress float64, done bool) {
	elapsed := now - timer.SpawnTime
	if timer.AppearanceDuration <= 0 || elapsed >= timer.AppearanceDuration {
		return 1, true
	}
	if elapsed <= 0 {
		return 0, false
	}
	return elapsed / timer.AppearanceDuration, false
}

// StepRevealAlpha 计算网格层当前透明度：target * 进度
// 到达时长后锁存 Visible 并返回 target；已锁存的计时器直接返回 target
func StepRevealAlpha(timer *components.RevealTimer, target, now float64) float64 {
	if timer.Visible {
		return target
	}
	progress, done := revealProgress(timer, now)
	if done {
		timer.Visible = true
		return target
	}
	return target * progress
}

// StepRevealColor 计算文本层当前颜色：target 的 alpha 通道替换为进度
// 到达时长后锁存 Visible 并返回 target
func StepRevealColor(timer *components.RevealTimer, target types.Color, now float64) types.Color {
	if timer.Visible {
		return target
	}
	progress, done := revealProgress(timer, now)
	if done {
		timer.Visible = true
		return target
	}
	return target.WithAlpha(progress)
}

// RevealSystem 淡入系统
// 每帧推进所有未锁存的网格层与文本层淡入，只依赖全局时间，与 DialogueSequencerSystem 互不调用
type RevealSystem struct {
	entityManager *ecs.EntityManager
}

// NewRevealSystem 创建淡入系统
func NewRevealSystem(em *ecs.EntityManager) *RevealSystem {
	return &RevealSystem{entityManager: em}
}

// Update 推进所有淡入
func (s *RevealSystem) Update(now float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.MeshRevealComponent](s.entityManager) {
		reveal, _ := ecs.GetComponent[*components.MeshRevealComponent](s.entityManager, id)
		if reveal.Timer.Visible {
			continue
		}
		reveal.Alpha = StepRevealAlpha(&reveal.Timer, reveal.TargetAlpha, now)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.TextRevealComponent](s.entityManager) {
		reveal, _ := ecs.GetComponent[*components.TextRevealComponent](s.entityManager, id)
		if reveal.Timer.Visible {
			continue
		}
		reveal.Color = StepRevealColor(&reveal.Timer, reveal.TargetColor, now)
	}
}

// CompleteAll 强制完成 owner 拥有的全部淡入（跳过操作使用）
// 返回本次被强制完成的层数
func (s *RevealSystem) CompleteAll(owner ecs.EntityID) int {
	completed := 0

	for _, id := range ecs.GetEntitiesWith1[*components.MeshRevealComponent](s.entityManager) {
		reveal, _ := ecs.GetComponent[*components.MeshRevealComponent](s.entityManager, id)
		if reveal.Owner != owner || reveal.Timer.Visible {
			continue
		}
		reveal.Timer.Visible = true
		reveal.Alpha = reveal.TargetAlpha
		completed++
	}

	for _, id := range ecs.GetEntitiesWith1[*components.TextRevealComponent](s.entityManager) {
		reveal, _ := ecs.GetComponent[*components.TextRevealComponent](s.entityManager, id)
		if reveal.Owner != owner || reveal.Timer.Visible {
			continue
		}
		reveal.Timer.Visible = true
		reveal.Color = reveal.TargetColor
		completed++
	}

	return completed
}
