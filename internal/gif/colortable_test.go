package gif

import "testing"

func TestDefaultPaletteLayout(t *testing.T) {
	p := DefaultPalette()
	if len(p) != 256 {
		t.Fatalf("default palette has %d entries, want 256", len(p))
	}
	tests := []struct {
		index int
		want  RGB
	}{
		{0, RGB{0, 0, 0}},
		{1, RGB{0, 0, 64}},
		{3, RGB{0, 0, 192}},
		{4, RGB{0, 32, 0}},
		{32, RGB{32, 0, 0}},
		{100, RGB{96, 32, 0}},
		{255, RGB{224, 224, 192}},
	}
	for _, test := range tests {
		if got := p[test.index]; got != test.want {
			t.Errorf("entry %d = %v, want %v", test.index, got, test.want)
		}
	}

	// Callers get a copy.
	p[0] = RGB{1, 1, 1}
	if DefaultPalette()[0] != (RGB{}) {
		t.Error("mutating a returned palette changed the built-in table")
	}
}

func TestColorTableSizeField(t *testing.T) {
	tests := []struct {
		entries int
		field   byte
		ok      bool
	}{
		{2, 0, true},
		{4, 1, true},
		{16, 3, true},
		{256, 7, true},
		{0, 0, false},
		{1, 0, false},
		{3, 0, false},
		{512, 0, false},
	}
	for _, test := range tests {
		field, ok := make(ColorTable, test.entries).SizeField()
		if ok != test.ok || field != test.field {
			t.Errorf("%d entries: got (%d, %v), want (%d, %v)", test.entries, field, ok, test.field, test.ok)
		}
		if test.ok && tableLen(field) != test.entries {
			t.Errorf("tableLen(%d) = %d, want %d", field, tableLen(field), test.entries)
		}
	}
}

func TestParseColorTable(t *testing.T) {
	ct, err := ParseColorTable([]byte{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatalf("ParseColorTable failed: %v", err)
	}
	if len(ct) != 2 || ct[1] != (RGB{4, 5, 6}) {
		t.Errorf("unexpected table %v", ct)
	}
	if _, err := ParseColorTable([]byte{1, 2}); err == nil {
		t.Error("expected error for partial entry")
	}
	if got := ct.Bytes(); len(got) != 6 || got[5] != 6 {
		t.Errorf("Bytes() = %v", got)
	}
}

func TestBuiltinPalettes(t *testing.T) {
	gray := GrayscalePalette()
	if len(gray) != 256 || gray[128] != (RGB{128, 128, 128}) {
		t.Errorf("unexpected grayscale palette entry %v", gray[128])
	}
	web := WebSafePalette()
	if len(web) != 256 {
		t.Fatalf("web-safe palette has %d entries", len(web))
	}
	if web[215] != (RGB{255, 255, 255}) || web[216] != (RGB{}) {
		t.Errorf("unexpected web-safe entries %v %v", web[215], web[216])
	}
}
