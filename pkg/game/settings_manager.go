package game

import (
	"fmt"
	"log"

	"github.com/decker502/textbox/pkg/config"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// TextBoxSettings 对话框的玩家偏好设置
// 注意：只保存偏好，对话进度本身从不持久化
type TextBoxSettings struct {
	// 推进设置
	AutoAdvance      bool    `yaml:"autoAdvance"`      // 指示器显示后是否自动推进
	AutoAdvanceDelay float64 `yaml:"autoAdvanceDelay"` // 自动推进等待时间（秒）

	// 音频设置
	SoundEnabled bool    `yaml:"soundEnabled"` // 行出现提示音开关
	SoundVolume  float64 `yaml:"soundVolume"`  // 提示音音量 0.0 ~ 1.0

	// 显示设置
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *TextBoxSettings {
	return &TextBoxSettings{
		AutoAdvance:      false,
		AutoAdvanceDelay: config.DefaultAutoAdvanceDelay,
		SoundEnabled:     true,
		SoundVolume:      0.6,
		Fullscreen:       false,
	}
}

// EffectiveAutoAdvanceDelay 返回写入 DialogueComponent 的自动推进时间
// 未开启自动推进时返回 0（只能手动推进）
func (s *TextBoxSettings) EffectiveAutoAdvanceDelay() float64 {
	if !s.AutoAdvance {
		return 0
	}
	return s.AutoAdvanceDelay
}

// SettingsManager 设置管理器
// 负责偏好设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager   // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *TextBoxSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "textbox"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留用于兼容调用方，加载失败只记录警告
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
//
// 返回：
//   - error: 如果反序列化失败返回错误
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 先填入默认值，旧版本文件缺少的字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)
	if loaded.AutoAdvanceDelay <= 0 {
		loaded.AutoAdvanceDelay = config.DefaultAutoAdvanceDelay
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *TextBoxSettings {
	return sm.settings
}

// SetAutoAdvance 设置自动推进开关
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetAutoAdvance(enabled bool) {
	sm.settings.AutoAdvance = enabled
}

// ToggleAutoAdvance 切换自动推进开关，返回切换后的值
func (sm *SettingsManager) ToggleAutoAdvance() bool {
	sm.settings.AutoAdvance = !sm.settings.AutoAdvance
	return sm.settings.AutoAdvance
}

// SetAutoAdvanceDelay 设置自动推进等待时间
// 非正数会被忽略
func (sm *SettingsManager) SetAutoAdvanceDelay(seconds float64) {
	if seconds <= 0 {
		return
	}
	sm.settings.AutoAdvanceDelay = seconds
}

// SetSoundVolume 设置提示音音量
// 音量值会被限制在 0.0 ~ 1.0 范围内
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

// SetSoundEnabled 设置提示音开关
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
