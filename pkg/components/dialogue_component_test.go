package components

import (
	"testing"

	"github.com/decker502/textbox/pkg/ecs"
)

// TestNewDialogueComponent_Init 测试新建对话尚未显示任何行
func TestNewDialogueComponent_Init(t *testing.T) {
	comp := NewDialogueComponent([]string{"a", "b"}, 0.75)

	if comp.LastShown != NoLineShown {
		t.Errorf("Expected LastShown %d, got %d", NoLineShown, comp.LastShown)
	}
	if comp.Cursor != 0 {
		t.Errorf("Expected Cursor 0, got %d", comp.Cursor)
	}
	if comp.TransitionDelay != 0.75 {
		t.Errorf("Expected TransitionDelay 0.75, got %v", comp.TransitionDelay)
	}
	if comp.Indicator != ecs.InvalidEntity {
		t.Errorf("Expected no indicator, got %d", comp.Indicator)
	}
	if comp.IndicatorShown || comp.Finished || comp.AdvanceRequested {
		t.Error("Expected all flags to be false")
	}
	if len(comp.Lines) != 2 {
		t.Errorf("Expected 2 lines, got %d", len(comp.Lines))
	}
}

// TestNewDialogueComponent_CopiesLines 测试台词被复制，外部修改不影响组件
func TestNewDialogueComponent_CopiesLines(t *testing.T) {
	lines := []string{"a", "b"}
	comp := NewDialogueComponent(lines, 0.75)

	lines[0] = "changed"
	if comp.Lines[0] != "a" {
		t.Errorf("Expected line 0 to stay %q, got %q", "a", comp.Lines[0])
	}
}

// TestDialogueComponent_ZeroValue 测试零值 LastShown 指向第 0 行，必须通过构造函数创建
func TestDialogueComponent_ZeroValue(t *testing.T) {
	comp := &DialogueComponent{}
	if comp.LastShown == NoLineShown {
		t.Error("Zero value unexpectedly equals NoLineShown")
	}
}
