package game

import (
	"encoding/binary"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// 提示音参数
const (
	blipFrequency = 880.0 // Hz
	blipDuration  = 0.06  // 秒
	blipPitchStep = 0.06  // 相邻两行的音高变化比例
	blipPitchKeys = 3     // 音高循环的档位数
)

// AudioManager 音频管理器
// 职责：
//   - 新行出现时播放短促的提示音
//   - 与 SettingsManager 联动：开关与音量
//
// 提示音在运行时合成，不依赖音频资源文件
// audio context 为 nil 时所有播放都是无操作（测试环境）
type AudioManager struct {
	resourceManager *ResourceManager
	settingsManager *SettingsManager
	blipPlayers     []*audio.Player // 按音高档位缓存
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例（提供 audio context，可为 nil）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(rm *ResourceManager, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
		blipPlayers:     make([]*audio.Player, blipPitchKeys),
	}
}

// PlayBlip 播放行出现提示音
// lineIndex 用于让相邻行的音高略有不同
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlayBlip(lineIndex int) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	player := am.getBlipPlayer(blipPitchIndex(lineIndex))
	if player == nil {
		return false
	}

	player.SetVolume(am.getSoundVolume())
	if err := player.Rewind(); err != nil {
		return false
	}
	player.Play()
	return true
}

// getBlipPlayer 获取或合成指定音高档位的播放器
func (am *AudioManager) getBlipPlayer(key int) *audio.Player {
	if am.resourceManager == nil || am.resourceManager.AudioContext() == nil {
		return nil
	}
	if player := am.blipPlayers[key]; player != nil {
		return player
	}

	ctx := am.resourceManager.AudioContext()
	freq := blipFrequency * (1 + blipPitchStep*float64(key))
	player := ctx.NewPlayerFromBytes(synthesizeBlip(ctx.SampleRate(), freq, blipDuration))
	am.blipPlayers[key] = player
	return player
}

// getSoundVolume 获取提示音音量
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager == nil {
		return 1.0
	}
	return am.settingsManager.GetSettings().SoundVolume
}

// blipPitchIndex 将行号映射到音高档位
func blipPitchIndex(lineIndex int) int {
	if lineIndex < 0 {
		lineIndex = -lineIndex
	}
	return lineIndex % blipPitchKeys
}

// synthesizeBlip 合成一段带线性衰减包络的正弦波
// 输出为 16 位有符号小端立体声 PCM（Ebitengine audio 的原生格式）
func synthesizeBlip(sampleRate int, freq, duration float64) []byte {
	samples := int(float64(sampleRate) * duration)
	if samples <= 0 {
		return nil
	}

	buf := make([]byte, samples*4)
	for i := 0; i < samples; i++ {
		envelope := 1 - float64(i)/float64(samples)
		v := math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)) * envelope * 0.5
		s := uint16(int16(v * math.MaxInt16))
		binary.LittleEndian.PutUint16(buf[i*4:], s)
		binary.LittleEndian.PutUint16(buf[i*4+2:], s)
	}
	return buf
}
