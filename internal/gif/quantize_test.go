package gif

import "testing"

func TestNearestIndexTieBreak(t *testing.T) {
	pixel := RGB{5, 0, 0}
	tests := []struct {
		name    string
		palette ColorTable
		want    byte
	}{
		{"lower first", ColorTable{{0, 0, 0}, {10, 0, 0}}, 0},
		{"higher first", ColorTable{{10, 0, 0}, {0, 0, 0}}, 0},
		{"tie after closer", ColorTable{{100, 100, 100}, {0, 0, 0}, {10, 0, 0}, {5, 0, 1}}, 3},
	}
	for _, test := range tests {
		if got := nearestIndex(test.palette, pixel); got != test.want {
			t.Errorf("%s: got %d, want %d", test.name, got, test.want)
		}
	}
}

func TestNearestIndexExactAndNearest(t *testing.T) {
	palette := ColorTable{{0, 0, 0}, {255, 0, 0}, {0, 255, 0}, {0, 0, 255}}
	tests := []struct {
		c    RGB
		want byte
	}{
		{RGB{0, 0, 0}, 0},
		{RGB{255, 0, 0}, 1},
		{RGB{200, 30, 30}, 1},
		{RGB{10, 250, 0}, 2},
		{RGB{0, 10, 140}, 3},
	}
	for _, test := range tests {
		if got := nearestIndex(palette, test.c); got != test.want {
			t.Errorf("nearestIndex(%v) = %d, want %d", test.c, got, test.want)
		}
	}
}

func TestQuantizerCachesConsistently(t *testing.T) {
	q := newQuantizer(DefaultPalette())
	rgb := []byte{
		255, 255, 255,
		10, 20, 30,
		255, 255, 255,
	}
	got := q.quantize(rgb)
	if len(got) != 3 {
		t.Fatalf("got %d indices, want 3", len(got))
	}
	if got[0] != got[2] {
		t.Errorf("same color mapped to %d and %d", got[0], got[2])
	}
	if want := nearestIndex(DefaultPalette(), RGB{10, 20, 30}); got[1] != want {
		t.Errorf("got %d, want %d", got[1], want)
	}
	if len(q.cache) != 2 {
		t.Errorf("cache holds %d colors, want 2", len(q.cache))
	}
}

func TestQuantizerCacheIsBounded(t *testing.T) {
	palette := DefaultPalette()
	q := newQuantizer(palette)
	q.limit = 4

	rgb := make([]byte, 0, 3*10)
	for i := 0; i < 10; i++ {
		rgb = append(rgb, byte(i*25), byte(255-i*25), byte(i*10))
	}
	got := q.quantize(rgb)
	if len(q.cache) > q.limit {
		t.Errorf("cache holds %d colors, limit %d", len(q.cache), q.limit)
	}
	for i := range got {
		c := RGB{rgb[3*i], rgb[3*i+1], rgb[3*i+2]}
		if want := nearestIndex(palette, c); got[i] != want {
			t.Errorf("pixel %d: got %d, want %d", i, got[i], want)
		}
	}
}
