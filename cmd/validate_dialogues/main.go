// Package main validates dialogue scripts and the textbox config on disk,
// and optionally prints the timeline a script produces.
//
// Usage:
//
//	go run ./cmd/validate_dialogues [flags]
//
// Flags:
//
//	--dir <path>        Directory containing dialogue scripts (default: "data/dialogues")
//	--config <path>     Textbox config to validate (default: "assets/config/textbox.yaml")
//	--simulate          Print the effect timeline of every script
//	--advance <sec>     Simulated player delay after the indicator appears (default: 1.0)
//
// Purpose:
//   - Catch empty or malformed scripts before they are embedded
//   - Preview how long a script takes with the configured timing
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/decker502/textbox/pkg/components"
	"github.com/decker502/textbox/pkg/config"
	"github.com/decker502/textbox/pkg/systems"
)

var (
	dirFlag      = flag.String("dir", "data/dialogues", "Directory containing dialogue scripts")
	configFlag   = flag.String("config", "assets/config/textbox.yaml", "Textbox config to validate")
	simulateFlag = flag.Bool("simulate", false, "Print the effect timeline of every script")
	advanceFlag  = flag.Float64("advance", 1.0, "Simulated player delay after the indicator appears")
)

// 模拟时长上限（秒），防止异常配置导致死循环
const maxSimulatedSeconds = 600.0

func main() {
	flag.Parse()

	cfg, err := config.LoadTextBoxConfig(*configFlag)
	if err != nil {
		fmt.Printf("❌ 配置无效: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ 配置有效: %s\n", *configFlag)

	paths, err := scriptPaths(*dirFlag)
	if err != nil {
		fmt.Printf("❌ 读取目录失败: %v\n", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		fmt.Printf("❌ %s 中没有对话脚本\n", *dirFlag)
		os.Exit(1)
	}

	failed := 0
	for _, path := range paths {
		script, err := config.LoadDialogueScript(path)
		if err != nil {
			fmt.Printf("❌ %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Printf("✅ %s: %d 行\n", path, len(script.Lines))

		if *simulateFlag {
			simulate(script, cfg, *advanceFlag)
		}
	}

	if failed > 0 {
		fmt.Printf("❌ %d 个脚本无效\n", failed)
		os.Exit(1)
	}
}

// scriptPaths 列出目录下所有 YAML 脚本，按文件名排序
func scriptPaths(dir string) ([]string, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	return paths, nil
}

// simulate 以 60 FPS 推进对话并打印每个效果出现的时间
// 指示器出现 advanceAfter 秒后模拟一次推进
func simulate(script *config.DialogueScript, cfg *config.TextBoxConfig, advanceAfter float64) {
	d := components.NewDialogueComponent(script.Lines, cfg.TransitionDelay)

	const dt = 1.0 / 60.0
	now := 0.0
	indicatorAt := -1.0

	for now < maxSimulatedSeconds {
		now += dt
		if indicatorAt >= 0 && now-indicatorAt >= advanceAfter {
			systems.RequestAdvance(d)
			indicatorAt = -1
		}

		effect, ok := systems.TickDialogue(d, now, dt)
		if !ok {
			continue
		}

		switch effect.Kind {
		case systems.EffectSpawnLine:
			fmt.Printf("   %7.3fs  line %d: %q\n", now, effect.LineIndex, effect.Text)
		case systems.EffectSpawnIndicator:
			fmt.Printf("   %7.3fs  indicator\n", now)
			indicatorAt = now
		case systems.EffectFinish:
			fmt.Printf("   %7.3fs  finished\n", now)
			return
		}
	}
	fmt.Printf("   ⚠️ 模拟在 %.0f 秒后仍未结束\n", maxSimulatedSeconds)
}
