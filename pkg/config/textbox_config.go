package config

import (
	"fmt"
	"os"

	"github.com/decker502/textbox/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// 窗口逻辑尺寸
const (
	GameWindowWidth  = 800
	GameWindowHeight = 600
)

// ========== 对话框布局（世界坐标：原点为屏幕中心，Y 轴向上） ==========

// TextBoxOffsetFromCenterY 对话框中心相对屏幕中心的 Y 偏移（负值向下）
const TextBoxOffsetFromCenterY = -150.0

// TextBoxWidth / TextBoxHeight 对话框尺寸（像素）
const (
	TextBoxWidth  = 700.0
	TextBoxHeight = 200.0
)

// TextBoxLineThickness 镂空边框线宽（像素）
const TextBoxLineThickness = 10.0

// 背景层目标透明度与投影偏移
const (
	TextBoxBgAlpha        = 1.0
	TextBoxBgShadowAlpha  = 0.2
	TextBoxBgShadowOffset = 8.0
)

// 指示三角形尺寸（像素）
const (
	IndicatorWidth  = 34.0
	IndicatorHeight = 28.0
)

// 绘制层级，数值越大越靠前
const (
	BoxBgShadowZ = 0.9
	BoxBgZ       = 1.0
	TextShadowZ  = 1.1
	TextZ        = 1.2
	IndicatorZ   = 1.3
)

// 文本
const (
	TextShadowOffset = 2.0
	TextFontSize     = 25.0
)

// ========== 时序 ==========

// TextBoxFadeInTime 背景与文本淡入时长（秒）
const TextBoxFadeInTime = 0.125

// TransitionDelay 首行出现前、以及行出现后到显示指示器之间的等待时间（秒）
const TransitionDelay = 0.75

// 指示器摆动参数
const (
	IndicatorWobbleSpeed     = 4.0
	IndicatorWobbleAmplitude = 3.0
)

// DefaultAutoAdvanceDelay 自动推进模式下指示器出现后等待的时间（秒）
const DefaultAutoAdvanceDelay = 2.5

// TextBoxConfig 对话框配置（assets/config/textbox.yaml）
// 未出现在 YAML 中的字段保持 DefaultTextBoxConfig 的默认值
type TextBoxConfig struct {
	OffsetFromCenterY float64 `yaml:"offsetFromCenterY"` // 对话框中心 Y 偏移
	Width             float64 `yaml:"width"`             // 对话框宽度
	Height            float64 `yaml:"height"`            // 对话框高度
	LineThickness     float64 `yaml:"lineThickness"`     // 边框线宽

	BgAlpha        float64 `yaml:"bgAlpha"`        // 主背景目标透明度
	BgShadowAlpha  float64 `yaml:"bgShadowAlpha"`  // 投影目标透明度
	BgShadowOffset float64 `yaml:"bgShadowOffset"` // 投影偏移

	IndicatorWidth  float64 `yaml:"indicatorWidth"`
	IndicatorHeight float64 `yaml:"indicatorHeight"`

	FontPath         string  `yaml:"fontPath"` // 为空时使用内置 Go Regular 字体
	FontSize         float64 `yaml:"fontSize"`
	TextShadowOffset float64 `yaml:"textShadowOffset"`

	FadeInTime       float64 `yaml:"fadeInTime"`       // 淡入时长（秒）
	TransitionDelay  float64 `yaml:"transitionDelay"`  // 行间等待（秒）
	WobbleSpeed      float64 `yaml:"wobbleSpeed"`      // 指示器摆动角速度
	WobbleAmplitude  float64 `yaml:"wobbleAmplitude"`  // 指示器摆动幅度（像素）
	AutoAdvanceDelay float64 `yaml:"autoAdvanceDelay"` // 自动推进等待（秒）
}

// DefaultTextBoxConfig 返回默认配置
func DefaultTextBoxConfig() *TextBoxConfig {
	return &TextBoxConfig{
		OffsetFromCenterY: TextBoxOffsetFromCenterY,
		Width:             TextBoxWidth,
		Height:            TextBoxHeight,
		LineThickness:     TextBoxLineThickness,
		BgAlpha:           TextBoxBgAlpha,
		BgShadowAlpha:     TextBoxBgShadowAlpha,
		BgShadowOffset:    TextBoxBgShadowOffset,
		IndicatorWidth:    IndicatorWidth,
		IndicatorHeight:   IndicatorHeight,
		FontSize:          TextFontSize,
		TextShadowOffset:  TextShadowOffset,
		FadeInTime:        TextBoxFadeInTime,
		TransitionDelay:   TransitionDelay,
		WobbleSpeed:       IndicatorWobbleSpeed,
		WobbleAmplitude:   IndicatorWobbleAmplitude,
		AutoAdvanceDelay:  DefaultAutoAdvanceDelay,
	}
}

// IndicatorBaseY 指示器基准 Y 坐标（对话框下边缘）
func (c *TextBoxConfig) IndicatorBaseY() float64 {
	return c.OffsetFromCenterY - c.Height/2
}

// LoadTextBoxConfig 加载对话框配置（嵌入资源优先，其次磁盘）
// 参数：
//
//	filepath - 配置文件路径（如 "assets/config/textbox.yaml"）
//
// 返回：
//
//	*TextBoxConfig - 默认值叠加 YAML 内容后的配置
//	error - 如果文件读取、解析或校验失败
func LoadTextBoxConfig(filepath string) (*TextBoxConfig, error) {
	var data []byte
	var err error
	if embedded.IsInitialized() && embedded.Exists(filepath) {
		data, err = embedded.ReadFile(filepath)
	} else {
		data, err = os.ReadFile(filepath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read textbox config file %s: %w", filepath, err)
	}

	cfg, err := ParseTextBoxConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid textbox config in %s: %w", filepath, err)
	}
	return cfg, nil
}

// ParseTextBoxConfig 解析 YAML 数据并校验
func ParseTextBoxConfig(data []byte) (*TextBoxConfig, error) {
	cfg := DefaultTextBoxConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse textbox YAML: %w", err)
	}

	if err := validateTextBoxConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateTextBoxConfig 验证配置的合法性
func validateTextBoxConfig(cfg *TextBoxConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("width and height must be positive, got %vx%v", cfg.Width, cfg.Height)
	}

	if cfg.LineThickness < 0 || cfg.LineThickness*2 >= cfg.Width || cfg.LineThickness*2 >= cfg.Height {
		return fmt.Errorf("lineThickness %v does not fit a %vx%v box", cfg.LineThickness, cfg.Width, cfg.Height)
	}

	if cfg.BgAlpha < 0 || cfg.BgAlpha > 1 || cfg.BgShadowAlpha < 0 || cfg.BgShadowAlpha > 1 {
		return fmt.Errorf("background alphas must be within [0, 1], got %v / %v", cfg.BgAlpha, cfg.BgShadowAlpha)
	}

	if cfg.IndicatorWidth <= 0 || cfg.IndicatorHeight <= 0 {
		return fmt.Errorf("indicator size must be positive, got %vx%v", cfg.IndicatorWidth, cfg.IndicatorHeight)
	}

	if cfg.FontSize <= 0 {
		return fmt.Errorf("fontSize must be positive, got %v", cfg.FontSize)
	}

	if cfg.FadeInTime < 0 {
		return fmt.Errorf("fadeInTime cannot be negative, got %v", cfg.FadeInTime)
	}

	if cfg.TransitionDelay < 0 {
		return fmt.Errorf("transitionDelay cannot be negative, got %v", cfg.TransitionDelay)
	}

	if cfg.AutoAdvanceDelay < 0 {
		return fmt.Errorf("autoAdvanceDelay cannot be negative, got %v", cfg.AutoAdvanceDelay)
	}

	return nil
}
