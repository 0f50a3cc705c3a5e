package footer

import (
	"strings"
	"testing"
)

func TestMarkdown_Fallback(t *testing.T) {
	md, err := Markdown(BuildFallback(2026, FallbackConfig{}))
	if err != nil {
		t.Fatalf("markdown: %v", err)
	}
	for _, want := range []string{
		"2026 Ordo",
		"[Politique de confidentialité](confidentialite.html)",
		"[Mentions légales](legal.html)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown should contain %q, got:\n%s", want, md)
		}
	}
}
