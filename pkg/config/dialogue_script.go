package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/decker502/textbox/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// ErrEmptyScript 对话脚本不包含任何台词
var ErrEmptyScript = errors.New("dialogue script has no lines")

// DialogueScript 对话脚本（data/dialogues/*.yaml）
//
// 示例：
//
//	id: intro
//	autoAdvance: false
//	lines:
//	  - "Hello there."
//	  - "Press space to continue."
type DialogueScript struct {
	ID    string   `yaml:"id"`
	Lines []string `yaml:"lines"`

	// AutoAdvance 覆盖玩家设置；nil 表示跟随设置
	AutoAdvance *bool `yaml:"autoAdvance,omitempty"`
}

// LoadDialogueScript 加载对话脚本
// 优先从磁盘读取（便于热重载），磁盘上不存在且路径以 "data/" 或 "assets/" 开头时回退到嵌入资源
func LoadDialogueScript(path string) (*DialogueScript, error) {
	data, err := os.ReadFile(path)
	if err != nil && isEmbeddedPath(path) && embedded.Exists(path) {
		data, err = embedded.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dialogue script %s: %w", path, err)
	}

	script, err := ParseDialogueScript(data)
	if err != nil {
		return nil, fmt.Errorf("invalid dialogue script %s: %w", path, err)
	}
	return script, nil
}

// ParseDialogueScript 解析对话脚本 YAML
func ParseDialogueScript(data []byte) (*DialogueScript, error) {
	var script DialogueScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("failed to parse dialogue YAML: %w", err)
	}

	if len(script.Lines) == 0 {
		return nil, ErrEmptyScript
	}
	return &script, nil
}

func isEmbeddedPath(path string) bool {
	path = strings.TrimPrefix(path, "./")
	return strings.HasPrefix(path, "data/") || strings.HasPrefix(path, "assets/")
}
