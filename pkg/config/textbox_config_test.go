package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/decker502/textbox/pkg/embedded"
)

// TestDefaultTextBoxConfig 测试默认配置与常量一致
func TestDefaultTextBoxConfig(t *testing.T) {
	cfg := DefaultTextBoxConfig()

	if cfg.Width != 700 || cfg.Height != 200 {
		t.Errorf("尺寸 = %vx%v, 期望 700x200", cfg.Width, cfg.Height)
	}
	if cfg.TransitionDelay != 0.75 {
		t.Errorf("TransitionDelay = %v, 期望 0.75", cfg.TransitionDelay)
	}
	if cfg.FadeInTime != 0.125 {
		t.Errorf("FadeInTime = %v, 期望 0.125", cfg.FadeInTime)
	}
	if cfg.WobbleSpeed != 4 || cfg.WobbleAmplitude != 3 {
		t.Errorf("摆动参数 = %v/%v, 期望 4/3", cfg.WobbleSpeed, cfg.WobbleAmplitude)
	}
	if got := cfg.IndicatorBaseY(); got != -250 {
		t.Errorf("IndicatorBaseY() = %v, 期望 -250", got)
	}
	if err := validateTextBoxConfig(cfg); err != nil {
		t.Errorf("默认配置校验失败: %v", err)
	}
}

// TestParseTextBoxConfig 测试 YAML 覆盖默认值与校验
func TestParseTextBoxConfig(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
		check   func(t *testing.T, cfg *TextBoxConfig)
	}{
		{
			name: "部分覆盖",
			yaml: "width: 640\ntransitionDelay: 1.5\n",
			check: func(t *testing.T, cfg *TextBoxConfig) {
				if cfg.Width != 640 {
					t.Errorf("Width = %v, 期望 640", cfg.Width)
				}
				if cfg.TransitionDelay != 1.5 {
					t.Errorf("TransitionDelay = %v, 期望 1.5", cfg.TransitionDelay)
				}
				if cfg.Height != TextBoxHeight {
					t.Errorf("Height 应保持默认值, got %v", cfg.Height)
				}
			},
		},
		{
			name: "空文件使用默认值",
			yaml: "",
			check: func(t *testing.T, cfg *TextBoxConfig) {
				if cfg.FadeInTime != TextBoxFadeInTime {
					t.Errorf("FadeInTime = %v, 期望默认值", cfg.FadeInTime)
				}
			},
		},
		{
			name: "淡入时长为零合法",
			yaml: "fadeInTime: 0\n",
			check: func(t *testing.T, cfg *TextBoxConfig) {
				if cfg.FadeInTime != 0 {
					t.Errorf("FadeInTime = %v, 期望 0", cfg.FadeInTime)
				}
			},
		},
		{name: "负淡入时长", yaml: "fadeInTime: -1\n", wantErr: "fadeInTime"},
		{name: "负行间等待", yaml: "transitionDelay: -0.5\n", wantErr: "transitionDelay"},
		{name: "边框过宽", yaml: "lineThickness: 150\n", wantErr: "lineThickness"},
		{name: "零宽度", yaml: "width: 0\n", wantErr: "width and height"},
		{name: "透明度越界", yaml: "bgAlpha: 1.5\n", wantErr: "alphas"},
		{name: "非法 YAML", yaml: "width: [\n", wantErr: "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseTextBoxConfig([]byte(tt.yaml))
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("期望错误包含 %q, 但没有错误", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("错误 = %v, 期望包含 %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("意外错误: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

// TestLoadTextBoxConfig 测试从嵌入资源加载
func TestLoadTextBoxConfig(t *testing.T) {
	embedded.Init(fstest.MapFS{
		"assets/config/textbox.yaml": {Data: []byte("fontSize: 30\n")},
	}, fstest.MapFS{})

	cfg, err := LoadTextBoxConfig("assets/config/textbox.yaml")
	if err != nil {
		t.Fatalf("LoadTextBoxConfig() error: %v", err)
	}
	if cfg.FontSize != 30 {
		t.Errorf("FontSize = %v, 期望 30", cfg.FontSize)
	}

	if _, err := LoadTextBoxConfig("assets/config/missing.yaml"); err == nil {
		t.Error("期望缺失文件返回错误")
	}
}

// TestLoadTextBoxConfig_Disk 测试从磁盘加载（--config 指定的路径）
func TestLoadTextBoxConfig_Disk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("transitionDelay: 0.5\n"), 0644); err != nil {
		t.Fatalf("写入配置失败: %v", err)
	}

	cfg, err := LoadTextBoxConfig(path)
	if err != nil {
		t.Fatalf("LoadTextBoxConfig() error: %v", err)
	}
	if cfg.TransitionDelay != 0.5 {
		t.Errorf("TransitionDelay = %v, 期望 0.5", cfg.TransitionDelay)
	}
	if cfg.Width != TextBoxWidth {
		t.Errorf("Width = %v, 期望默认值 %v", cfg.Width, TextBoxWidth)
	}
}
