package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/jdeng/gogif/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "gogif", "config.toml"); resolved != want {
		t.Fatalf("resolved path %q, want %q", resolved, want)
	}
	def := config.Default()
	if cfg.Encode != def.Encode || cfg.Decode != def.Decode {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Encode.TransparentIndex != -1 {
		t.Fatalf("expected transparency disabled by default, got %d", cfg.Encode.TransparentIndex)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[logging]
format = " JSON "
level = "Warning"
file = "~/logs/gifcodec.log"

[encode]
delay = 4
loop_count = -1
palette = "Grey"
transparent_index = 0
disposal = "Background"
width = 120

[decode]
apply_disposal = true
frame_pattern = "out-%d.png"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved %q (exists=%v), want %q", resolved, exists, path)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "warn" {
		t.Fatalf("logging not normalized: %+v", cfg.Logging)
	}
	if cfg.Logging.File != filepath.Join(tempHome, "logs", "gifcodec.log") {
		t.Fatalf("logging.file not expanded: %q", cfg.Logging.File)
	}
	want := config.Encode{
		Delay:            4,
		LoopCount:        -1,
		Palette:          config.PaletteGrayscale,
		TransparentIndex: 0,
		Disposal:         config.DisposalBackground,
		Width:            120,
	}
	if cfg.Encode != want {
		t.Fatalf("encode = %+v, want %+v", cfg.Encode, want)
	}
	if !cfg.Decode.ApplyDisposal || cfg.Decode.FramePattern != "out-%d.png" {
		t.Fatalf("decode = %+v", cfg.Decode)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"format", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"level", "[logging]\nlevel = \"loud\"\n", "logging.level"},
		{"delay", "[encode]\ndelay = 70000\n", "encode.delay"},
		{"loop", "[encode]\nloop_count = -2\n", "encode.loop_count"},
		{"transparent", "[encode]\ntransparent_index = 256\n", "encode.transparent_index"},
		{"palette", "[encode]\npalette = \"rainbow\"\n", "encode.palette"},
		{"disposal", "[encode]\ndisposal = \"explode\"\n", "encode.disposal"},
		{"size", "[encode]\nwidth = -5\n", "encode.width"},
		{"pattern", "[decode]\nframe_pattern = \"frame.png\"\n", "decode.frame_pattern"},
		{"string verb", "[decode]\nframe_pattern = \"frame%s.png\"\n", "decode.frame_pattern"},
		{"unknown key", "[encode]\nspeed = 3\n", "parse config"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(test.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Fatalf("error %q does not mention %q", err, test.want)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	def := config.Default()
	if cfg.Encode != def.Encode || cfg.Decode != def.Decode {
		t.Fatalf("sample diverges from defaults: %+v", cfg)
	}
}

func TestMarshalProducesParseableTOML(t *testing.T) {
	cfg := config.Default()
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded != cfg {
		t.Fatalf("decoded %+v, want %+v", decoded, cfg)
	}
}

func TestValidFramePattern(t *testing.T) {
	tests := []struct {
		pattern string
		valid   bool
	}{
		{"frame_%03d.png", true},
		{"%x.png", true},
		{"frame.png", false},
		{"frame%s.png", false},
		{"%d_%d.png", false},
		{"frame%.png", false},
	}
	for _, test := range tests {
		if got := config.ValidFramePattern(test.pattern); got != test.valid {
			t.Errorf("ValidFramePattern(%q) = %v, want %v", test.pattern, got, test.valid)
		}
	}
}
