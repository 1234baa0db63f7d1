package scenes

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/decker502/textbox/pkg/components"
	"github.com/decker502/textbox/pkg/config"
	"github.com/decker502/textbox/pkg/ecs"
	"github.com/decker502/textbox/pkg/entities"
	"github.com/decker502/textbox/pkg/game"
	"github.com/decker502/textbox/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// backgroundColor 场景背景色
var backgroundColor = color.RGBA{R: 24, G: 26, B: 38, A: 255}

// TextBoxScene 对话框场景
//
// 职责：
//   - 持有权威时钟（elapsed += dt），所有系统都以它为全局时间
//   - 按固定顺序驱动系统：推进 → 淡入 → 指示器 → 清理
//   - 处理输入：推进/跳过、切换自动推进、提示音开关与音量、重新开始
//   - 脚本文件变化时热重载
//   - OnExit 时沿拥有关系销毁对话框
type TextBoxScene struct {
	entityManager   *ecs.EntityManager
	resourceManager *game.ResourceManager
	settingsManager *game.SettingsManager
	audioManager    *game.AudioManager
	config          *config.TextBoxConfig

	revealSystem    *systems.RevealSystem
	sequencerSystem *systems.DialogueSequencerSystem
	indicatorSystem *systems.IndicatorSystem
	renderSystem    *systems.TextBoxRenderSystem

	input   TextBoxInput
	watcher *game.ScriptWatcher

	scriptPath string
	script     *config.DialogueScript
	box        *entities.TextBox

	elapsed  float64
	finished bool
}

// NewTextBoxScene 创建对话框场景
//
// 参数：
//   - rm: 资源管理器（字体），可为 nil（不绘制文本）
//   - sm: 设置管理器，可为 nil（使用默认设置）
//   - am: 音频管理器，可为 nil（不播放提示音）
//   - cfg: 对话框配置，nil 时使用默认配置
//   - scriptPath: 对话脚本路径
//
// 返回：
//   - error: 脚本无法加载或不含任何台词时返回错误
func NewTextBoxScene(
	rm *game.ResourceManager,
	sm *game.SettingsManager,
	am *game.AudioManager,
	cfg *config.TextBoxConfig,
	scriptPath string,
) (*TextBoxScene, error) {
	if cfg == nil {
		cfg = config.DefaultTextBoxConfig()
	}

	script, err := config.LoadDialogueScript(scriptPath)
	if err != nil {
		return nil, err
	}

	em := ecs.NewEntityManager()
	revealSystem := systems.NewRevealSystem(em)

	scene := &TextBoxScene{
		entityManager:   em,
		resourceManager: rm,
		settingsManager: sm,
		audioManager:    am,
		config:          cfg,
		revealSystem:    revealSystem,
		sequencerSystem: systems.NewDialogueSequencerSystem(em, cfg, revealSystem),
		indicatorSystem: systems.NewIndicatorSystem(em, cfg),
		renderSystem:    systems.NewTextBoxRenderSystem(em, nil),
		input:           defaultTextBoxInput,
		scriptPath:      scriptPath,
		script:          script,
	}
	scene.sequencerSystem.OnLineSpawned = scene.onLineSpawned

	if rm != nil {
		face, err := rm.LoadFontOrDefault(cfg.FontPath, cfg.FontSize)
		if err != nil {
			log.Printf("[TextBoxScene] Warning: no font available: %v (text will not be drawn)", err)
		} else {
			scene.renderSystem.SetFontFace(face)
		}
	}

	if err := scene.buildTextBox(); err != nil {
		return nil, err
	}

	log.Printf("[TextBoxScene] Created scene for %s (%d lines)", scriptPath, len(script.Lines))
	return scene, nil
}

// SetInput 替换输入源（测试使用）
func (s *TextBoxScene) SetInput(input TextBoxInput) {
	s.input = input
}

// SetWatcher 设置脚本监听器，监听器的生命周期由调用方管理
func (s *TextBoxScene) SetWatcher(w *game.ScriptWatcher) {
	s.watcher = w
}

// Elapsed 返回场景时钟（秒）
func (s *TextBoxScene) Elapsed() float64 {
	return s.elapsed
}

// IsFinished 对话是否已全部推进完毕
func (s *TextBoxScene) IsFinished() bool {
	return s.finished
}

// DialogueID 返回当前对话实体，尚未构建或已销毁时为 ecs.InvalidEntity
func (s *TextBoxScene) DialogueID() ecs.EntityID {
	if s.box == nil {
		return ecs.InvalidEntity
	}
	return s.box.DialogueID
}

// Update 推进一帧
func (s *TextBoxScene) Update(deltaTime float64) {
	s.elapsed += deltaTime

	s.handleInput()
	s.handleScriptChanges()

	s.sequencerSystem.Update(s.elapsed, deltaTime)
	s.revealSystem.Update(s.elapsed)
	s.indicatorSystem.Update(s.elapsed)
	s.entityManager.RemoveMarkedEntities()
}

// Draw 绘制场景
func (s *TextBoxScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	s.renderSystem.Draw(screen)
}

// OnExit 销毁对话框及其全部子实体，可重复调用
func (s *TextBoxScene) OnExit() {
	s.destroyTextBox()
	log.Printf("[TextBoxScene] Exited %s", s.scriptPath)
}

// handleInput 处理本帧输入
func (s *TextBoxScene) handleInput() {
	if s.input == nil {
		return
	}

	if s.input.RestartPressed() {
		log.Printf("[TextBoxScene] Restart requested")
		s.restart()
		return
	}

	if s.input.ToggleAutoAdvancePressed() {
		s.toggleAutoAdvance()
	}
	if s.input.ToggleSoundPressed() {
		s.toggleSound()
	}
	if step := s.input.VolumeStep(); step != 0 {
		s.adjustVolume(step)
	}

	if s.input.AdvancePressed() && !s.finished {
		if s.sequencerSystem.Advance() {
			log.Printf("[TextBoxScene] Advance accepted at %.3f", s.elapsed)
		} else {
			log.Printf("[TextBoxScene] Skip to indicator at %.3f", s.elapsed)
		}
	}
}

// toggleAutoAdvance 切换自动推进并保存设置
func (s *TextBoxScene) toggleAutoAdvance() {
	if s.settingsManager == nil {
		return
	}

	enabled := s.settingsManager.ToggleAutoAdvance()
	s.saveSettings()
	if dialogue, ok := s.dialogue(); ok {
		dialogue.AutoAdvanceDelay = s.autoAdvanceDelay()
		dialogue.IndicatorAge = 0
	}
	log.Printf("[TextBoxScene] Auto advance: %v", enabled)
}

// toggleSound 切换提示音并保存设置
func (s *TextBoxScene) toggleSound() {
	if s.settingsManager == nil {
		return
	}
	enabled := !s.settingsManager.GetSettings().SoundEnabled
	s.settingsManager.SetSoundEnabled(enabled)
	s.saveSettings()
	log.Printf("[TextBoxScene] Sound: %v", enabled)
}

// adjustVolume 调整提示音音量并保存设置（范围由 SettingsManager 限制）
func (s *TextBoxScene) adjustVolume(step float64) {
	if s.settingsManager == nil {
		return
	}
	s.settingsManager.SetSoundVolume(s.settingsManager.GetSettings().SoundVolume + step)
	s.saveSettings()
	log.Printf("[TextBoxScene] Sound volume: %.1f", s.settingsManager.GetSettings().SoundVolume)
}

func (s *TextBoxScene) saveSettings() {
	if err := s.settingsManager.Save(); err != nil {
		log.Printf("[TextBoxScene] Warning: failed to save settings: %v", err)
	}
}

// handleScriptChanges 处理脚本文件变化
func (s *TextBoxScene) handleScriptChanges() {
	if s.watcher == nil {
		return
	}
	target := filepath.Clean(s.scriptPath)
	for _, path := range s.watcher.Drain() {
		if path != target {
			continue
		}
		if err := s.Reload(); err != nil {
			log.Printf("[TextBoxScene] Warning: reload failed, keeping current script: %v", err)
		}
	}
}

// Reload 重新读取脚本并从头开始
// 读取失败时保留当前对话
func (s *TextBoxScene) Reload() error {
	script, err := config.LoadDialogueScript(s.scriptPath)
	if err != nil {
		return err
	}
	s.script = script
	log.Printf("[TextBoxScene] Reloaded %s (%d lines)", s.scriptPath, len(script.Lines))
	s.restart()
	return nil
}

// restart 销毁当前对话框并以当前时钟重新构建
func (s *TextBoxScene) restart() {
	s.destroyTextBox()
	if err := s.buildTextBox(); err != nil {
		log.Printf("[TextBoxScene] Warning: failed to rebuild textbox: %v", err)
	}
}

// buildTextBox 构建对话框并设为活动对话
func (s *TextBoxScene) buildTextBox() error {
	box, err := entities.BuildTextBox(s.entityManager, s.config, s.script.Lines, s.elapsed)
	if err != nil {
		return fmt.Errorf("failed to build textbox for %s: %w", s.scriptPath, err)
	}

	dialogue, _ := ecs.GetComponent[*components.DialogueComponent](s.entityManager, box.DialogueID)
	dialogue.AutoAdvanceDelay = s.autoAdvanceDelay()
	dialogue.OnCompleteCallback = s.onDialogueComplete

	s.box = box
	s.finished = false
	s.sequencerSystem.SetActiveDialogue(box.DialogueID)
	return nil
}

// destroyTextBox 销毁当前对话框并立即清理
func (s *TextBoxScene) destroyTextBox() {
	if s.box == nil {
		return
	}
	entities.DestroyTextBox(s.entityManager, s.box.DialogueID)
	s.entityManager.RemoveMarkedEntities()
	s.sequencerSystem.SetActiveDialogue(ecs.InvalidEntity)
	s.box = nil
}

// autoAdvanceDelay 计算自动推进等待时间：脚本覆盖优先，其次玩家设置
func (s *TextBoxScene) autoAdvanceDelay() float64 {
	settings := game.DefaultSettings()
	if s.settingsManager != nil {
		settings = s.settingsManager.GetSettings()
	} else {
		settings.AutoAdvanceDelay = s.config.AutoAdvanceDelay
	}

	if s.script != nil && s.script.AutoAdvance != nil {
		if !*s.script.AutoAdvance {
			return 0
		}
		return settings.AutoAdvanceDelay
	}
	return settings.EffectiveAutoAdvanceDelay()
}

func (s *TextBoxScene) dialogue() (*components.DialogueComponent, bool) {
	if s.box == nil {
		return nil, false
	}
	return ecs.GetComponent[*components.DialogueComponent](s.entityManager, s.box.DialogueID)
}

func (s *TextBoxScene) onLineSpawned(effect systems.DialogueEffect) {
	if s.audioManager != nil {
		s.audioManager.PlayBlip(effect.LineIndex)
	}
}

func (s *TextBoxScene) onDialogueComplete() {
	s.finished = true
	log.Printf("[TextBoxScene] Dialogue %s finished (press R to restart)", s.scriptID())
}

func (s *TextBoxScene) scriptID() string {
	if s.script != nil && s.script.ID != "" {
		return s.script.ID
	}
	return s.scriptPath
}
