package theme

import "testing"

func TestControlsByName(t *testing.T) {
	if got := Controls("Yosemite"); len(got) != 3 || got[0].Glyph != "●" {
		t.Fatalf("unexpected Yosemite controls %+v", got)
	}
	if got := Controls("Windows 11"); len(got) != 3 || got[2].Glyph != "✕" {
		t.Fatalf("unexpected Windows 11 controls %+v", got)
	}
	if got := Controls(""); len(got) != 3 {
		t.Fatalf("the platform default must resolve to a full set, got %+v", got)
	}
}

func TestDefaultStylesArePopulated(t *testing.T) {
	s := Default()
	for name, style := range map[string]any{
		"Label": s.Label, "SelectedItem": s.SelectedItem, "Box": s.Box, "Mnemonic": s.Mnemonic,
	} {
		if style == nil {
			t.Fatalf("%s style missing", name)
		}
	}
}
