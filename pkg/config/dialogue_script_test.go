package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/decker502/textbox/pkg/embedded"
)

// TestParseDialogueScript 测试脚本解析
func TestParseDialogueScript(t *testing.T) {
	script, err := ParseDialogueScript([]byte("id: intro\nautoAdvance: true\nlines:\n  - a\n  - b\n"))
	if err != nil {
		t.Fatalf("ParseDialogueScript() error: %v", err)
	}
	if script.ID != "intro" {
		t.Errorf("ID = %q, 期望 intro", script.ID)
	}
	if len(script.Lines) != 2 || script.Lines[0] != "a" || script.Lines[1] != "b" {
		t.Errorf("Lines = %v, 期望 [a b]", script.Lines)
	}
	if script.AutoAdvance == nil || !*script.AutoAdvance {
		t.Errorf("AutoAdvance = %v, 期望 true", script.AutoAdvance)
	}

	noOverride, err := ParseDialogueScript([]byte("lines: [x]\n"))
	if err != nil {
		t.Fatalf("ParseDialogueScript() error: %v", err)
	}
	if noOverride.AutoAdvance != nil {
		t.Error("未设置 autoAdvance 时应为 nil")
	}
}

// TestParseDialogueScript_Empty 测试空脚本被拒绝
func TestParseDialogueScript_Empty(t *testing.T) {
	for _, input := range []string{"", "id: empty\n", "lines: []\n"} {
		_, err := ParseDialogueScript([]byte(input))
		if !errors.Is(err, ErrEmptyScript) {
			t.Errorf("ParseDialogueScript(%q) error = %v, 期望 ErrEmptyScript", input, err)
		}
	}
}

// TestLoadDialogueScript_Disk 测试从磁盘加载
func TestLoadDialogueScript_Disk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte("lines: [hello]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	script, err := LoadDialogueScript(path)
	if err != nil {
		t.Fatalf("LoadDialogueScript() error: %v", err)
	}
	if script.Lines[0] != "hello" {
		t.Errorf("Lines[0] = %q, 期望 hello", script.Lines[0])
	}
}

// TestLoadDialogueScript_EmbeddedFallback 测试磁盘不存在时回退到嵌入资源
func TestLoadDialogueScript_EmbeddedFallback(t *testing.T) {
	embedded.Init(fstest.MapFS{}, fstest.MapFS{
		"data/dialogues/test_only.yaml": {Data: []byte("lines: [embedded]\n")},
	})

	script, err := LoadDialogueScript("data/dialogues/test_only.yaml")
	if err != nil {
		t.Fatalf("LoadDialogueScript() error: %v", err)
	}
	if script.Lines[0] != "embedded" {
		t.Errorf("Lines[0] = %q, 期望 embedded", script.Lines[0])
	}

	if _, err := LoadDialogueScript("data/dialogues/none.yaml"); err == nil {
		t.Error("期望缺失脚本返回错误")
	}
}
