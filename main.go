// Command textbox 运行对话框演示：逐行淡入的台词、摆动的推进指示器。
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--script <path>   对话脚本（默认内置 data/dialogues/intro.yaml）
//	--config <path>   对话框配置（默认内置 assets/config/textbox.yaml）
//	--watch           脚本文件变化时热重载
//	--fullscreen      以全屏启动
//	--auto-delay <s>  开启自动推进并使用该等待时间（秒）
//	--verbose         输出详细日志
//
// 启动失败与运行错误总是输出到 stderr，不受 --verbose 影响。
//
// Controls:
//
//	Space/Enter/Click  推进（淡入中按下则跳过）
//	A                  切换自动推进
//	M                  切换提示音
//	[ / ]              减小 / 增大提示音音量
//	R                  重新开始
//	F11                切换全屏
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/decker502/textbox/pkg/app"
	"github.com/decker502/textbox/pkg/config"
	"github.com/decker502/textbox/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	scriptFlag     = flag.String("script", app.DefaultScriptPath, "Dialogue script to play")
	configFlag     = flag.String("config", app.DefaultConfigPath, "Textbox layout and timing config")
	watchFlag      = flag.Bool("watch", false, "Reload the script when it changes on disk")
	fullscreenFlag = flag.Bool("fullscreen", false, "Start in fullscreen mode")
	autoDelayFlag  = flag.Float64("auto-delay", 0, "Enable auto advance with this delay in seconds (0 keeps the saved setting)")
	verboseFlag    = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	embedded.Init(assetsFS, dataFS)

	os.Exit(run(app.Config{
		Verbose:          *verboseFlag,
		ScriptPath:       *scriptFlag,
		ConfigPath:       *configFlag,
		Watch:            *watchFlag,
		Fullscreen:       *fullscreenFlag,
		AutoAdvanceDelay: *autoDelayFlag,
	}, os.Stderr))
}

// run 启动应用并返回进程退出码
// NewApp 在非 verbose 模式下会丢弃 log 输出，所以错误直接写到 stderr
func run(cfg app.Config, stderr io.Writer) int {
	a, err := app.NewApp(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "textbox: %v\n", err)
		return 1
	}
	defer a.Shutdown()

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("TextBox")

	if err := ebiten.RunGame(a); err != nil {
		fmt.Fprintf(stderr, "textbox: %v\n", err)
		return 1
	}
	return 0
}
