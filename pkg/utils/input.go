package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// advanceKeys 推进对话的按键
var advanceKeys = []ebiten.Key{
	ebiten.KeySpace,
	ebiten.KeyEnter,
	ebiten.KeyNumpadEnter,
}

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	// 检查触摸
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	// 检查鼠标
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// IsAdvanceJustPressed 检查本帧是否有推进对话的输入
// 空格 / 回车 / 鼠标左键 / 触摸均视为推进
func IsAdvanceJustPressed() bool {
	if pressed, _, _ := IsJustTouchedOrClicked(); pressed {
		return true
	}
	return IsAnyKeyJustPressed(advanceKeys...)
}

// IsAnyKeyJustPressed 检查任一按键是否刚刚按下
func IsAnyKeyJustPressed(keys ...ebiten.Key) bool {
	for _, key := range keys {
		if inpututil.IsKeyJustPressed(key) {
			return true
		}
	}
	return false
}
