package entities

import (
	"errors"
	"testing"

	"github.com/decker502/textbox/pkg/components"
	"github.com/decker502/textbox/pkg/config"
	"github.com/decker502/textbox/pkg/ecs"
	"github.com/decker502/textbox/pkg/types"
)

// TestBuildTextBox_Success 测试成功创建对话框
func TestBuildTextBox_Success(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultTextBoxConfig()

	box, err := BuildTextBox(em, cfg, []string{"first", "second"}, 1.5)
	if err != nil {
		t.Fatalf("BuildTextBox failed: %v", err)
	}
	if box.DialogueID == ecs.InvalidEntity {
		t.Fatal("Expected valid dialogue entity")
	}

	dialogue, ok := ecs.GetComponent[*components.DialogueComponent](em, box.DialogueID)
	if !ok {
		t.Fatal("Expected DialogueComponent to be present")
	}
	if len(dialogue.Lines) != 2 || dialogue.LastShown != components.NoLineShown {
		t.Errorf("Unexpected dialogue state: %+v", dialogue)
	}
	if dialogue.TransitionDelay != cfg.TransitionDelay {
		t.Errorf("TransitionDelay = %.3f, want %.3f", dialogue.TransitionDelay, cfg.TransitionDelay)
	}
	if dialogue.Backgrounds != box.Backgrounds {
		t.Error("Dialogue should own both background layers")
	}

	// 对话实体 + 两个背景层
	if em.EntityCount() != 3 {
		t.Errorf("Expected 3 entities, got %d", em.EntityCount())
	}
}

// TestBuildTextBox_Layers 测试两个背景层的位置、层级和目标透明度
func TestBuildTextBox_Layers(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultTextBoxConfig()

	box, err := BuildTextBox(em, cfg, []string{"a"}, 2)
	if err != nil {
		t.Fatalf("BuildTextBox failed: %v", err)
	}

	tests := []struct {
		name        string
		index       int
		wantX       float64
		wantY       float64
		wantZ       float64
		wantTarget  float64
		wantIndices int
	}{
		{name: "投影层", index: BackgroundShadow, wantX: 8, wantY: -158, wantZ: config.BoxBgShadowZ, wantTarget: 0.2, wantIndices: 6},
		{name: "主框层", index: BackgroundMain, wantX: 0, wantY: -150, wantZ: config.BoxBgZ, wantTarget: 1.0, wantIndices: 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := box.Backgrounds[tt.index]
			pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
			layer, _ := ecs.GetComponent[*components.LayerComponent](em, id)
			meshComp, _ := ecs.GetComponent[*components.MeshComponent](em, id)
			reveal, _ := ecs.GetComponent[*components.MeshRevealComponent](em, id)

			if pos.X != tt.wantX || pos.Y != tt.wantY {
				t.Errorf("position = (%.1f, %.1f), want (%.1f, %.1f)", pos.X, pos.Y, tt.wantX, tt.wantY)
			}
			if layer.Z != tt.wantZ {
				t.Errorf("z = %.2f, want %.2f", layer.Z, tt.wantZ)
			}
			if len(meshComp.Geometry.Indices) != tt.wantIndices {
				t.Errorf("indices = %d, want %d", len(meshComp.Geometry.Indices), tt.wantIndices)
			}
			if reveal.TargetAlpha != tt.wantTarget || reveal.Alpha != 0 {
				t.Errorf("reveal target/alpha = %.2f/%.2f, want %.2f/0", reveal.TargetAlpha, reveal.Alpha, tt.wantTarget)
			}
			if reveal.Timer.SpawnTime != 2 || reveal.Timer.AppearanceDuration != cfg.FadeInTime {
				t.Errorf("unexpected reveal timer: %+v", reveal.Timer)
			}
			if reveal.Owner != box.DialogueID {
				t.Errorf("owner = %d, want %d", reveal.Owner, box.DialogueID)
			}
		})
	}
}

// TestBuildTextBox_InitialGeometryTransparent 测试创建时刻背景几何体全透明
func TestBuildTextBox_InitialGeometryTransparent(t *testing.T) {
	em := ecs.NewEntityManager()

	box, err := BuildTextBox(em, nil, []string{"a"}, 0)
	if err != nil {
		t.Fatalf("BuildTextBox failed: %v", err)
	}

	for i, g := range box.InitialGeometry {
		if len(g.Vertices) == 0 {
			t.Fatalf("layer %d has no vertices", i)
		}
		for j, v := range g.Vertices {
			if v.Color.A != 0 {
				t.Errorf("layer %d vertex %d alpha = %.3f, want 0", i, j, v.Color.A)
			}
		}
	}
}

// TestBuildTextBox_Errors 测试错误输入
func TestBuildTextBox_Errors(t *testing.T) {
	em := ecs.NewEntityManager()

	if _, err := BuildTextBox(em, nil, nil, 0); !errors.Is(err, ErrEmptyDialogue) {
		t.Errorf("Expected ErrEmptyDialogue for nil lines, got %v", err)
	}
	if _, err := BuildTextBox(em, nil, []string{}, 0); !errors.Is(err, ErrEmptyDialogue) {
		t.Errorf("Expected ErrEmptyDialogue for empty lines, got %v", err)
	}
	if _, err := BuildTextBox(nil, nil, []string{"a"}, 0); err == nil {
		t.Error("Expected error for nil entity manager")
	}
	if em.EntityCount() != 0 {
		t.Errorf("No entities should be created on error, got %d", em.EntityCount())
	}
}

// TestBuildTextBox_CopiesLines 测试调用方修改切片不影响对话
func TestBuildTextBox_CopiesLines(t *testing.T) {
	em := ecs.NewEntityManager()
	lines := []string{"a", "b"}

	box, err := BuildTextBox(em, nil, lines, 0)
	if err != nil {
		t.Fatalf("BuildTextBox failed: %v", err)
	}
	lines[0] = "changed"

	dialogue, _ := ecs.GetComponent[*components.DialogueComponent](em, box.DialogueID)
	if dialogue.Lines[0] != "a" {
		t.Errorf("Lines[0] = %q, want %q", dialogue.Lines[0], "a")
	}
}

// TestSpawnLineView 测试行视图的两个文本层
func TestSpawnLineView(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultTextBoxConfig()
	box, _ := BuildTextBox(em, cfg, []string{"hello"}, 0)

	lineID, err := SpawnLineView(em, cfg, box.DialogueID, 0, "hello", 0.75)
	if err != nil {
		t.Fatalf("SpawnLineView failed: %v", err)
	}

	view, ok := ecs.GetComponent[*components.LineViewComponent](em, lineID)
	if !ok {
		t.Fatal("Expected LineViewComponent to be present")
	}
	if view.Text != "hello" || view.LineIndex != 0 || view.Owner != box.DialogueID {
		t.Errorf("Unexpected line view: %+v", view)
	}

	shadow, _ := ecs.GetComponent[*components.TextRevealComponent](em, view.Layers[TextLayerShadow])
	face, _ := ecs.GetComponent[*components.TextRevealComponent](em, view.Layers[TextLayerFace])

	if shadow.Timer.SpawnTime != face.Timer.SpawnTime || face.Timer.SpawnTime != 0.75 {
		t.Errorf("Layers should share spawn time 0.75, got %.3f / %.3f", shadow.Timer.SpawnTime, face.Timer.SpawnTime)
	}
	if shadow.TargetColor != types.ColorBlack || face.TargetColor != types.ColorGhostWhite {
		t.Error("Unexpected target colors")
	}
	if shadow.Color.A != 0 || face.Color.A != 0 {
		t.Error("Text layers should start transparent")
	}

	shadowPos, _ := ecs.GetComponent[*components.PositionComponent](em, view.Layers[TextLayerShadow])
	facePos, _ := ecs.GetComponent[*components.PositionComponent](em, view.Layers[TextLayerFace])
	if shadowPos.X-facePos.X != cfg.TextShadowOffset || facePos.Y-shadowPos.Y != cfg.TextShadowOffset {
		t.Errorf("Shadow should be offset right-down by %.1f", cfg.TextShadowOffset)
	}

	dialogue, _ := ecs.GetComponent[*components.DialogueComponent](em, box.DialogueID)
	if len(dialogue.LineViews) != 1 || dialogue.LineViews[0] != lineID {
		t.Errorf("Dialogue should own the line view, got %v", dialogue.LineViews)
	}
}

// TestSpawnLineView_MissingDialogue 测试对话实体不存在时返回错误
func TestSpawnLineView_MissingDialogue(t *testing.T) {
	em := ecs.NewEntityManager()
	if _, err := SpawnLineView(em, nil, ecs.EntityID(42), 0, "x", 0); err == nil {
		t.Error("Expected error for missing dialogue")
	}
	if _, err := SpawnIndicatorView(em, nil, ecs.EntityID(42), 0); err == nil {
		t.Error("Expected error for missing dialogue")
	}
}

// TestSpawnIndicatorView_Idempotent 测试重复创建指示器返回同一实体
func TestSpawnIndicatorView_Idempotent(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultTextBoxConfig()
	box, _ := BuildTextBox(em, cfg, []string{"a"}, 0)

	first, err := SpawnIndicatorView(em, cfg, box.DialogueID, 0)
	if err != nil {
		t.Fatalf("SpawnIndicatorView failed: %v", err)
	}
	second, _ := SpawnIndicatorView(em, cfg, box.DialogueID, 1)
	if first != second {
		t.Errorf("Expected same indicator, got %d and %d", first, second)
	}

	indicator, _ := ecs.GetComponent[*components.IndicatorComponent](em, first)
	if indicator.BaseY != cfg.IndicatorBaseY() {
		t.Errorf("BaseY = %.1f, want %.1f", indicator.BaseY, cfg.IndicatorBaseY())
	}
	layer, _ := ecs.GetComponent[*components.LayerComponent](em, first)
	if layer.Z != config.IndicatorZ {
		t.Errorf("z = %.2f, want %.2f", layer.Z, config.IndicatorZ)
	}
}

// TestDestroyTextBox 测试销毁对话框会移除全部子实体
func TestDestroyTextBox(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultTextBoxConfig()
	box, _ := BuildTextBox(em, cfg, []string{"a", "b"}, 0)
	SpawnLineView(em, cfg, box.DialogueID, 0, "a", 0.75)
	SpawnIndicatorView(em, cfg, box.DialogueID, 1.5)

	// 对话 + 2 背景 + 行视图 + 2 文本层 + 指示器
	if em.EntityCount() != 7 {
		t.Fatalf("Expected 7 entities, got %d", em.EntityCount())
	}

	DestroyTextBox(em, box.DialogueID)
	if removed := em.RemoveMarkedEntities(); removed != 7 {
		t.Errorf("Expected 7 entities removed, got %d", removed)
	}
	if em.EntityCount() != 0 {
		t.Errorf("Expected 0 entities, got %d", em.EntityCount())
	}

	// 重复销毁是安全的
	DestroyTextBox(em, box.DialogueID)
}

// TestDespawnLines 测试只销毁行视图，背景保留
func TestDespawnLines(t *testing.T) {
	em := ecs.NewEntityManager()
	box, _ := BuildTextBox(em, nil, []string{"a"}, 0)
	SpawnLineView(em, nil, box.DialogueID, 0, "a", 0)

	DespawnLines(em, box.DialogueID)
	em.RemoveMarkedEntities()

	if em.EntityCount() != 3 {
		t.Errorf("Expected dialogue and backgrounds to remain, got %d entities", em.EntityCount())
	}
	dialogue, _ := ecs.GetComponent[*components.DialogueComponent](em, box.DialogueID)
	if len(dialogue.LineViews) != 0 {
		t.Errorf("LineViews should be empty, got %v", dialogue.LineViews)
	}
}
