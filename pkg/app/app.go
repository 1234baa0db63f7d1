// Package app 提供对话框应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：资源、设置、音频、场景管理器，
// 以及开发时的脚本热重载。main.go 只负责解析命令行参数并调用 NewApp()。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"os"

	"github.com/decker502/textbox/pkg/config"
	"github.com/decker502/textbox/pkg/game"
	"github.com/decker502/textbox/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// 默认资源路径
const (
	DefaultConfigPath = "assets/config/textbox.yaml"
	DefaultScriptPath = "data/dialogues/intro.yaml"
	appName           = "textbox"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ScriptPath 对话脚本路径，为空时使用内置脚本
	ScriptPath string
	// ConfigPath 对话框配置路径，为空时使用内置配置
	ConfigPath string
	// Watch 监听脚本文件变化并热重载（仅对磁盘上的脚本有效）
	Watch bool
	// Fullscreen 以全屏启动（覆盖玩家设置）
	Fullscreen bool
	// AutoAdvanceDelay 大于 0 时开启自动推进并使用该等待时间（秒，覆盖玩家设置）
	AutoAdvanceDelay float64
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settingsManager          *game.SettingsManager
	watcher                  *game.ScriptWatcher
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	if cfg.ConfigPath == "" {
		cfg.ConfigPath = DefaultConfigPath
	}
	if cfg.ScriptPath == "" {
		cfg.ScriptPath = DefaultScriptPath
	}

	textBoxConfig, err := config.LoadTextBoxConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("对话框配置加载失败: %w", err)
	}
	log.Printf("[Config] Loaded textbox config: %s", cfg.ConfigPath)

	// 设置存储失败时降级为内存设置
	var gdataManager *gdata.Manager
	if m, err := gdata.Open(gdata.Config{AppName: appName}); err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (settings will not persist)", err)
	} else {
		gdataManager = m
	}
	settingsManager, _ := game.NewSettingsManager(gdataManager)
	if cfg.Fullscreen {
		settingsManager.SetFullscreen(true)
	}
	ebiten.SetFullscreen(settingsManager.GetSettings().Fullscreen)
	if cfg.AutoAdvanceDelay > 0 {
		settingsManager.SetAutoAdvance(true)
		settingsManager.SetAutoAdvanceDelay(cfg.AutoAdvanceDelay)
		log.Printf("[App] Auto advance forced on (%.2fs)", cfg.AutoAdvanceDelay)
	}

	audioContext := audio.NewContext(48000)
	resourceManager := game.NewResourceManager(audioContext)
	audioManager := game.NewAudioManager(resourceManager, settingsManager)
	log.Printf("[App] AudioManager initialized")

	a := &App{
		settingsManager: settingsManager,
	}

	if cfg.Watch {
		if _, err := os.Stat(cfg.ScriptPath); err != nil {
			log.Printf("[App] Warning: --watch ignored, %s is not on disk: %v", cfg.ScriptPath, err)
		} else if w, err := game.NewScriptWatcher(cfg.ScriptPath); err != nil {
			log.Printf("[App] Warning: failed to watch %s: %v", cfg.ScriptPath, err)
		} else {
			a.watcher = w
			log.Printf("[App] Watching %s for changes", cfg.ScriptPath)
		}
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(scriptPath string) game.Scene {
		scene, err := scenes.NewTextBoxScene(resourceManager, settingsManager, audioManager, textBoxConfig, scriptPath)
		if err != nil {
			log.Printf("[App] Error: %v", err)
			return nil
		}
		scene.SetWatcher(a.watcher)
		return scene
	})
	a.sceneManager = sceneManager

	if !sceneManager.LoadScript(cfg.ScriptPath) {
		a.closeWatcher()
		return nil, fmt.Errorf("对话脚本加载失败: %s", cfg.ScriptPath)
	}

	return a, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// toggleFullscreen 切换全屏并保存到设置
func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}

	a.settingsManager.SetFullscreen(ebiten.IsFullscreen())
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Shutdown 退出当前场景并停止脚本监听
// 在 ebiten.RunGame 返回后调用
func (a *App) Shutdown() {
	a.sceneManager.Shutdown()
	a.closeWatcher()
}

func (a *App) closeWatcher() {
	if a.watcher == nil {
		return
	}
	if err := a.watcher.Close(); err != nil {
		log.Printf("[App] Warning: failed to close watcher: %v", err)
	}
	a.watcher = nil
}
