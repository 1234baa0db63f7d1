package components

import (
	"github.com/decker502/textbox/pkg/ecs"
	"github.com/decker502/textbox/pkg/types"
)

// IndicatorComponent 推进指示器（摆动三角形）
// 姿态是全局时间的纯函数，每帧由 IndicatorSystem 重新计算，没有锁存
type IndicatorComponent struct {
	BaseY   float64        // 基准 Y（对话框下边缘）
	Phase   float64        // 当前帧的摆动相位 [-1, 1]
	OffsetY float64        // 当前帧的 Y 坐标
	Colors  [3]types.Color // 当前帧的顶点颜色（线性空间）
	Owner   ecs.EntityID
}
