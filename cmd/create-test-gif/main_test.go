package main

import (
	"path/filepath"
	"testing"

	"github.com/jdeng/gogif/pkg/gif"
)

func TestCreateTestGIFDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.gif")
	if err := createTestGIF(path); err != nil {
		t.Fatalf("createTestGIF failed: %v", err)
	}

	dec, err := gif.OpenFile(path, gif.DecodeOptions{})
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer dec.Close()

	if dec.FrameCount() != 2 || dec.LoopCount() != 0 {
		t.Fatalf("frames=%d loop=%d", dec.FrameCount(), dec.LoopCount())
	}
	if comments := dec.Comments(); len(comments) != 1 || comments[0] != "create-test-gif fixture" {
		t.Errorf("Comments = %q", comments)
	}

	if res, err := dec.Next(); res != gif.ResultFrame {
		t.Fatalf("frame 0: %v, %v", res, err)
	}
	if res, err := dec.Next(); res != gif.ResultFrame {
		t.Fatalf("frame 1: %v, %v", res, err)
	}
	if !dec.Interlaced() {
		t.Error("second frame should be interlaced")
	}

	img := dec.Image()
	green := [3]uint8{0x00, 0xFF, 0x00}
	red := [3]uint8{0xFF, 0x00, 0x00}
	white := [3]uint8{0xFF, 0xFF, 0xFF}
	tests := []struct {
		x, y int
		want [3]uint8
	}{
		{0, 0, green}, // row 0 drawn
		{1, 0, red},   // transparent, first frame shows through
		{0, 1, white}, // row 1 fully transparent
		{1, 2, green}, // row 2 after deinterlacing
		{3, 3, green},
	}
	for _, test := range tests {
		c := img.RGBAAt(test.x, test.y)
		if got := [3]uint8{c.R, c.G, c.B}; got != test.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", test.x, test.y, got, test.want)
		}
	}
}
