package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/scatterfield/pkg/scene"
)

func demoScene(t *testing.T) *scene.Result {
	t.Helper()
	res, err := scene.Generate(context.Background(), scene.DefaultPlan())
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func press(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m
}

func TestLayerListNavigation(t *testing.T) {
	res := demoScene(t)
	var m tea.Model = NewLayerListModel(res)

	m = press(m, "up")
	if got := m.(LayerListModel).Cursor; got != 0 {
		t.Errorf("cursor moved above first layer: %d", got)
	}

	m = press(m, "down", "j", "down")
	if got := m.(LayerListModel).Cursor; got != 3 {
		t.Errorf("cursor = %d, want 3", got)
	}

	m = press(m, "G")
	if got := m.(LayerListModel).Cursor; got != len(res.Layers)-1 {
		t.Errorf("cursor after G = %d, want %d", got, len(res.Layers)-1)
	}
	m = press(m, "down")
	if got := m.(LayerListModel).Cursor; got != len(res.Layers)-1 {
		t.Errorf("cursor moved past last layer: %d", got)
	}

	m = press(m, "k", "g")
	if got := m.(LayerListModel).Cursor; got != 0 {
		t.Errorf("cursor after g = %d, want 0", got)
	}
}

func TestLayerListScrolls(t *testing.T) {
	var m tea.Model = NewLayerListModel(demoScene(t))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 14})
	if got := m.(LayerListModel).Height; got != 3 {
		t.Fatalf("height = %d, want 3", got)
	}

	m = press(m, "down", "down", "down", "down")
	lm := m.(LayerListModel)
	if lm.Offset != 2 {
		t.Errorf("offset = %d, want 2", lm.Offset)
	}
	view := lm.View()
	if strings.Contains(view, "windmills ") {
		t.Error("scrolled view still lists the first layer")
	}
	if !strings.Contains(view, "[5/6]") {
		t.Errorf("view missing position indicator:\n%s", view)
	}
}

func TestLayerListQuit(t *testing.T) {
	var m tea.Model = NewLayerListModel(demoScene(t))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestLayerListView(t *testing.T) {
	view := NewLayerListModel(demoScene(t)).View()
	for _, want := range []string{"demo · seed 42", "windmills", "zombies", "assets/windmill.obj", "count 10, min distance 50", "#0"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestLayerDetailGrid(t *testing.T) {
	plan := scene.SingleLayer(1, scene.DefaultArea, scene.Layer{
		Name: "fence", Sampler: scene.SamplerGrid,
		Width: 4, Height: 2, Spacing: 10, Jitter: 2,
	})
	res, err := scene.Generate(context.Background(), plan)
	if err != nil {
		t.Fatal(err)
	}
	detail := layerDetail(res.Layers[0])
	for _, want := range []string{"4×2, spacing 10, jitter 2", "center", "#4", "… 3 more"} {
		if !strings.Contains(detail, want) {
			t.Errorf("detail missing %q:\n%s", want, detail)
		}
	}
	if strings.Contains(detail, "attempts") {
		t.Error("grid layers have no attempt stats")
	}
}
