package types

import (
	"math"
	"testing"
)

// TestColorMix 测试颜色线性插值
func TestColorMix(t *testing.T) {
	from := RGBA(0.05, 0.2, 0.95, 1.0)
	to := RGBA(0.05, 0.95, 0.2, 1.0)

	tests := []struct {
		name string
		t    float64
		want Color
	}{
		{"起点", 0, from},
		{"终点", 1, to},
		{"中点", 0.5, RGBA(0.05, 0.575, 0.575, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := from.Mix(to, tt.t)
			if !approxColor(got, tt.want) {
				t.Errorf("Mix(%v) = %+v, 期望 %+v", tt.t, got, tt.want)
			}
		})
	}
}

// TestColorWithAlpha 测试 alpha 替换不影响 RGB
func TestColorWithAlpha(t *testing.T) {
	c := ColorGhostWhite.WithAlpha(0.25)
	if c.A != 0.25 {
		t.Errorf("A = %v, 期望 0.25", c.A)
	}
	if c.R != ColorGhostWhite.R || c.G != ColorGhostWhite.G || c.B != ColorGhostWhite.B {
		t.Errorf("RGB 被修改: %+v", c)
	}
	if ColorGhostWhite.A != 1 {
		t.Error("WithAlpha 不应修改原颜色")
	}
}

func approxColor(a, b Color) bool {
	const eps = 1e-9
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps && math.Abs(a.A-b.A) < eps
}
