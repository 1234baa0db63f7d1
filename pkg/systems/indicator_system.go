package systems

import (
	"math"

	"github.com/decker502/textbox/pkg/components"
	"github.com/decker502/textbox/pkg/config"
	"github.com/decker502/textbox/pkg/ecs"
	"github.com/decker502/textbox/pkg/mesh"
	"github.com/decker502/textbox/pkg/types"
)

// IndicatorPhase 指示器摆动相位：sin(now * speed)，取值 [-1, 1]
func IndicatorPhase(now, speed float64) float64 {
	return math.Sin(now * speed)
}

// IndicatorPose 计算指示器在 now 时刻的姿态
//
// 返回：
//   - offsetY: baseY + phase * amplitude
//   - phase: 本次使用的相位，网格必须用同一个值生成
//   - colors: 三个顶点颜色（phase >= 0 蓝→绿，phase < 0 蓝→黄）
func IndicatorPose(now, baseY, speed, amplitude float64) (offsetY, phase float64, colors [3]types.Color) {
	phase = IndicatorPhase(now, speed)
	return baseY + phase*amplitude, phase, mesh.TriangleColors(phase)
}

// IndicatorSystem 指示器动画系统
// 每帧根据全局时间重新计算所有指示器的位置与顶点颜色
type IndicatorSystem struct {
	entityManager *ecs.EntityManager
	config        *config.TextBoxConfig
}

// NewIndicatorSystem 创建指示器动画系统
func NewIndicatorSystem(em *ecs.EntityManager, cfg *config.TextBoxConfig) *IndicatorSystem {
	if cfg == nil {
		cfg = config.DefaultTextBoxConfig()
	}
	return &IndicatorSystem{entityManager: em, config: cfg}
}

// Update 刷新所有指示器
func (s *IndicatorSystem) Update(now float64) {
	cfg := s.config
	for _, id := range ecs.GetEntitiesWith2[*components.IndicatorComponent, *components.PositionComponent](s.entityManager) {
		indicator, _ := ecs.GetComponent[*components.IndicatorComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		indicator.OffsetY, indicator.Phase, indicator.Colors = IndicatorPose(now, indicator.BaseY, cfg.WobbleSpeed, cfg.WobbleAmplitude)
		pos.Y = indicator.OffsetY

		if meshComp, ok := ecs.GetComponent[*components.MeshComponent](s.entityManager, id); ok {
			meshComp.Geometry = mesh.TriangleMesh(cfg.IndicatorHeight, cfg.IndicatorWidth, indicator.Phase)
		}
	}
}
