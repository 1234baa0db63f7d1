package game

import (
	"encoding/binary"
	"testing"
)

// TestSynthesizeBlip 测试合成的 PCM 数据格式
func TestSynthesizeBlip(t *testing.T) {
	data := synthesizeBlip(48000, 880, 0.06)

	wantSamples := int(48000 * 0.06)
	if len(data) != wantSamples*4 {
		t.Fatalf("len = %d, want %d", len(data), wantSamples*4)
	}

	// 第一个采样点是 sin(0) = 0
	if first := int16(binary.LittleEndian.Uint16(data[0:])); first != 0 {
		t.Errorf("first sample = %d, want 0", first)
	}

	// 左右声道相同，幅度不超过一半
	for i := 0; i < wantSamples; i++ {
		l := int16(binary.LittleEndian.Uint16(data[i*4:]))
		r := int16(binary.LittleEndian.Uint16(data[i*4+2:]))
		if l != r {
			t.Fatalf("sample %d: left %d != right %d", i, l, r)
		}
		if l > 16384 || l < -16384 {
			t.Fatalf("sample %d out of range: %d", i, l)
		}
	}
}

// TestSynthesizeBlip_Empty 测试零时长返回空数据
func TestSynthesizeBlip_Empty(t *testing.T) {
	if data := synthesizeBlip(48000, 880, 0); data != nil {
		t.Errorf("Expected nil, got %d bytes", len(data))
	}
}

// TestBlipPitchIndex 测试行号到音高档位的映射
func TestBlipPitchIndex(t *testing.T) {
	tests := []struct {
		line int
		want int
	}{
		{0, 0}, {1, 1}, {2, 2}, {3, 0}, {7, 1}, {-1, 1},
	}
	for _, tt := range tests {
		if got := blipPitchIndex(tt.line); got != tt.want {
			t.Errorf("blipPitchIndex(%d) = %d, want %d", tt.line, got, tt.want)
		}
	}
}

// TestPlayBlip_NoAudioContext 测试无 audio context 时安全跳过
func TestPlayBlip_NoAudioContext(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	tests := []struct {
		name string
		am   *AudioManager
	}{
		{name: "无资源管理器", am: NewAudioManager(nil, nil)},
		{name: "无 audio context", am: NewAudioManager(NewResourceManager(nil), sm)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.am.PlayBlip(0) {
				t.Error("PlayBlip should return false without audio context")
			}
		})
	}
}

// TestPlayBlip_SoundDisabled 测试关闭提示音时不播放
func TestPlayBlip_SoundDisabled(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	sm.SetSoundEnabled(false)

	am := NewAudioManager(NewResourceManager(nil), sm)
	if am.PlayBlip(1) {
		t.Error("PlayBlip should return false when sound is disabled")
	}
}
