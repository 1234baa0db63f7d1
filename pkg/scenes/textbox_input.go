package scenes

import (
	"github.com/decker502/textbox/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// TextBoxInput 对话场景的输入源（便于测试注入）
type TextBoxInput interface {
	// AdvancePressed 本帧是否按下推进（空格 / 回车 / 左键 / 触摸）
	AdvancePressed() bool
	// ToggleAutoAdvancePressed 本帧是否按下切换自动推进（A）
	ToggleAutoAdvancePressed() bool
	// RestartPressed 本帧是否按下重新开始（R）
	RestartPressed() bool
	// ToggleSoundPressed 本帧是否按下切换提示音（M）
	ToggleSoundPressed() bool
	// VolumeStep 本帧的音量调整量（[ 减小，] 增大），未按下时为 0
	VolumeStep() float64
}

// volumeStep 每次按键调整的音量
const volumeStep = 0.1

// ebitenTextBoxInput 基于 Ebitengine 的默认输入实现
type ebitenTextBoxInput struct{}

func (ebitenTextBoxInput) AdvancePressed() bool {
	return utils.IsAdvanceJustPressed()
}

func (ebitenTextBoxInput) ToggleAutoAdvancePressed() bool {
	return utils.IsAnyKeyJustPressed(ebiten.KeyA)
}

func (ebitenTextBoxInput) RestartPressed() bool {
	return utils.IsAnyKeyJustPressed(ebiten.KeyR)
}

func (ebitenTextBoxInput) ToggleSoundPressed() bool {
	return utils.IsAnyKeyJustPressed(ebiten.KeyM)
}

func (ebitenTextBoxInput) VolumeStep() float64 {
	step := 0.0
	if utils.IsAnyKeyJustPressed(ebiten.KeyBracketLeft) {
		step -= volumeStep
	}
	if utils.IsAnyKeyJustPressed(ebiten.KeyBracketRight) {
		step += volumeStep
	}
	return step
}

// defaultTextBoxInput 默认输入实例
var defaultTextBoxInput TextBoxInput = ebitenTextBoxInput{}
