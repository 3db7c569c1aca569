package palette

import "testing"

func TestIndexCycles(t *testing.T) {
	if Index(0) != Default[0] {
		t.Errorf("Index(0) = %s, want %s", Index(0), Default[0])
	}
	if Index(len(Default)) != Default[0] {
		t.Error("Index should cycle back to the first entry")
	}
	if Index(len(Default)+3) != Default[3] {
		t.Error("Index should cycle with an offset")
	}
	if Index(-1) != Default[0] {
		t.Error("negative index should clamp to the first entry")
	}
}

func TestForTagDeterministic(t *testing.T) {
	tags := []string{"e", "eileen", "narrator", "m", "sylvie"}
	for _, tag := range tags {
		first := ForTag(tag)
		for i := 0; i < 5; i++ {
			if got := ForTag(tag); got != first {
				t.Fatalf("ForTag(%q) not stable: %s then %s", tag, first, got)
			}
		}
	}
}

func TestForTagInPalette(t *testing.T) {
	for _, tag := range []string{"", "a", "狐", "long_character_tag_name"} {
		color := ForTag(tag)
		found := false
		for _, c := range Default {
			if c == color {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("ForTag(%q) = %s, not in palette", tag, color)
		}
	}
}

func TestIndexIn(t *testing.T) {
	colors := []string{"#111111", "#222222"}

	if got := IndexIn(colors, 0); got != "#111111" {
		t.Errorf("IndexIn(colors, 0) = %s", got)
	}
	if got := IndexIn(colors, 3); got != "#222222" {
		t.Errorf("IndexIn(colors, 3) = %s, want wraparound", got)
	}
	if got := IndexIn(colors, -1); got != "#111111" {
		t.Errorf("IndexIn(colors, -1) = %s, want first color", got)
	}
	if got := IndexIn(nil, 1); got != Index(1) {
		t.Errorf("IndexIn(nil, 1) = %s, want default palette", got)
	}
}
