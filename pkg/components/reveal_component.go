package components

import (
	"github.com/decker502/textbox/pkg/ecs"
	"github.com/decker502/textbox/pkg/types"
)

// RevealTimer 淡入计时器
// Visible 是单向锁存：一旦为 true，渲染值固定为目标值，不再重新计算
type RevealTimer struct {
	SpawnTime          float64 // 创建时的全局时间（秒）
	AppearanceDuration float64 // 从透明到完全可见的时长（秒），<= 0 表示立即可见
	Visible            bool
}

// MeshRevealComponent 网格背景层的淡入状态
// 几何体只生成一次，Alpha 在绘制时作为整体透明度应用
type MeshRevealComponent struct {
	Timer       RevealTimer
	TargetAlpha float64 // 完全可见时的透明度
	Alpha       float64 // 当前透明度
	Owner       ecs.EntityID
}

// TextRevealComponent 文本层的淡入状态
type TextRevealComponent struct {
	Timer       RevealTimer
	TargetColor types.Color // 完全可见时的颜色（sRGB）
	Color       types.Color // 当前颜色，alpha 通道随时间变化
	Owner       ecs.EntityID
}
