package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func writeSolidPNG(t *testing.T, path string, w, h int, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readPNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}

// Colors taken from the default palette so quantization is exact.
var (
	paletteRed  = color.RGBA{R: 224, A: 0xFF}
	paletteBlue = color.RGBA{B: 192, A: 0xFF}
)

func TestEncodeInfoDecodeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "missing.toml")
	first := filepath.Join(dir, "a.png")
	second := filepath.Join(dir, "b.png")
	writeSolidPNG(t, first, 4, 3, paletteRed)
	writeSolidPNG(t, second, 4, 3, paletteBlue)
	output := filepath.Join(dir, "anim.gif")

	out, _, err := runCLI(t, []string{"encode", "-o", output, "--delay", "20", "--loop", "3", first, second}, configPath)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	requireContains(t, out, "2 frame(s), 4x3")

	out, _, err = runCLI(t, []string{"info", output}, configPath)
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	requireContains(t, out, "GIF89a")
	requireContains(t, out, "4x3")
	requireContains(t, out, "200ms")
	requireContains(t, out, "256 colors")

	frames := filepath.Join(dir, "frames")
	out, _, err = runCLI(t, []string{"decode", "-o", frames, output}, configPath)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	requireContains(t, out, "Wrote 2 frame(s)")

	img := readPNG(t, filepath.Join(frames, "frame_000.png"))
	if got := color.RGBAModel.Convert(img.At(3, 2)); got != paletteRed {
		t.Errorf("frame 0 pixel = %v, want %v", got, paletteRed)
	}
	img = readPNG(t, filepath.Join(frames, "frame_001.png"))
	if got := color.RGBAModel.Convert(img.At(0, 0)); got != paletteBlue {
		t.Errorf("frame 1 pixel = %v, want %v", got, paletteBlue)
	}
}

func TestEncodeResizesAndExpandsGIFInputs(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "missing.toml")
	src := filepath.Join(dir, "a.png")
	writeSolidPNG(t, src, 4, 3, paletteRed)
	twice := filepath.Join(dir, "twice.gif")
	if _, _, err := runCLI(t, []string{"encode", "-o", twice, src, src}, configPath); err != nil {
		t.Fatalf("encode: %v", err)
	}

	scaled := filepath.Join(dir, "scaled.gif")
	out, _, err := runCLI(t, []string{"encode", "-o", scaled, "--width", "8", twice, src}, configPath)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	requireContains(t, out, "3 frame(s), 8x6")
}

func TestEncodeRequiresOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.png")
	writeSolidPNG(t, src, 1, 1, paletteRed)
	_, _, err := runCLI(t, []string{"encode", src}, filepath.Join(dir, "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "--output") {
		t.Fatalf("expected --output error, got %v", err)
	}
}

func TestEncodeRejectsUnknownPalette(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.png")
	writeSolidPNG(t, src, 1, 1, paletteRed)
	_, _, err := runCLI(t, []string{"encode", "-o", filepath.Join(dir, "x.gif"), "--palette", "sepia", src}, filepath.Join(dir, "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "unknown palette") {
		t.Fatalf("expected palette error, got %v", err)
	}
}

func TestDecodeRejectsBadPattern(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runCLI(t, []string{"decode", "--pattern", "frame.png", filepath.Join(dir, "in.gif")}, filepath.Join(dir, "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "--pattern") {
		t.Fatalf("expected pattern error, got %v", err)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "config.toml")

	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected error when config already exists")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	out, _, err = runCLI(t, []string{"config", "show"}, target)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "# Config path: "+target)
	requireContains(t, out, "frame_pattern")

	out, _, err = runCLI(t, []string{"config", "show"}, filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "defaults are shown")
}

func TestDecodeStopsAtDamagedTail(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "missing.toml")
	src := filepath.Join(dir, "a.png")
	writeSolidPNG(t, src, 2, 2, paletteRed)
	full := filepath.Join(dir, "full.gif")
	if _, _, err := runCLI(t, []string{"encode", "-o", full, src, src}, configPath); err != nil {
		t.Fatalf("encode: %v", err)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		t.Fatal(err)
	}
	cut := filepath.Join(dir, "cut.gif")
	if err := os.WriteFile(cut, data[:len(data)-3], 0o644); err != nil {
		t.Fatal(err)
	}

	out, stderr, err := runCLI(t, []string{"decode", "-o", filepath.Join(dir, "frames"), cut}, configPath)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	requireContains(t, out, "Wrote 1 frame(s)")
	requireContains(t, stderr, "stopping at malformed frame")
}

func TestDecodeRejectsNonIntegerVerb(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runCLI(t, []string{"decode", "--pattern", "frame%s.png", filepath.Join(dir, "in.gif")}, filepath.Join(dir, "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "--pattern") {
		t.Fatalf("expected pattern error, got %v", err)
	}
}

func TestInfoReportsBrokenConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(configPath, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := runCLI(t, []string{"info", filepath.Join(dir, "in.gif")}, configPath)
	if err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected config error, got %v", err)
	}
}
