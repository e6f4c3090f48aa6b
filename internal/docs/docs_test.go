package docs

import (
	"strings"
	"testing"
)

func TestTopics_ListsEmbeddedContent(t *testing.T) {
	t.Parallel()

	got := strings.Join(Topics(), ",")
	if got != "editing,fragment,keys,library" {
		t.Fatalf("unexpected topics: %s", got)
	}
	if _, ok := Get("KEYS"); !ok {
		t.Fatalf("expected case-insensitive lookup")
	}
	if _, ok := Get("../docs"); ok {
		t.Fatalf("expected unknown topic")
	}
}

func TestRender_NoTTYStyleKeepsText(t *testing.T) {
	t.Parallel()

	body, _ := Get("editing")
	out := Render(body, "notty", 60)
	if !strings.Contains(out, "Auto-clear") {
		t.Fatalf("rendered docs lost headings: %q", out)
	}
	if Render("   ", "notty", 60) != "" {
		t.Fatalf("expected empty render for blank input")
	}
}
