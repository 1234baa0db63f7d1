package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 根据对话脚本路径创建场景，避免 game 包依赖 scenes 包
type SceneFactory func(scriptPath string) Scene

// SceneManager manages the application's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory // 场景工厂函数，用于创建新场景
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// If the previous scene implements Exiter, its OnExit is called first.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene == scene {
		return
	}
	sm.exitCurrent()
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景
//
// 返回：
//   - Scene: 当前场景，如果没有活动场景则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// LoadScript 通过工厂函数为指定对话脚本创建场景并切换
// 返回是否切换成功
func (sm *SceneManager) LoadScript(scriptPath string) bool {
	log.Printf("[SceneManager] Loading dialogue script: %s", scriptPath)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] Error: SceneFactory not set")
		return false
	}

	newScene := sm.sceneFactory(scriptPath)
	if newScene == nil {
		log.Printf("[SceneManager] Error: failed to create scene for %s", scriptPath)
		return false
	}

	sm.SwitchTo(newScene)
	log.Printf("[SceneManager] Switched to scene for %s", scriptPath)
	return true
}

// Shutdown 退出当前场景（窗口关闭时调用）
func (sm *SceneManager) Shutdown() {
	sm.exitCurrent()
	sm.currentScene = nil
}

func (sm *SceneManager) exitCurrent() {
	if exiter, ok := sm.currentScene.(Exiter); ok {
		exiter.OnExit()
	}
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
