package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a screen of the application (e.g. a dialogue scene).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Exiter 是一个可选接口，用于场景在被替换或程序退出时释放资源
//
// 实现此接口的场景会在以下时机被调用 OnExit()：
//   - SceneManager.SwitchTo 切换到其他场景
//   - 游戏窗口关闭（SceneManager.Shutdown）
//
// OnExit 可能被调用多次，实现需要保证幂等
type Exiter interface {
	OnExit()
}
