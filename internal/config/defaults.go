package config

const (
	defaultConfigPath    = "~/.config/gogif/config.toml"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultDelay         = 10
	defaultLoopCount     = 0
	defaultPalette       = PaletteDefault
	defaultDisposal      = DisposalNone
	defaultFramePattern  = "frame_%03d.png"
	defaultApplyDisposal = false

	maxUint16              = 0xFFFF
	maxTransparentIndex    = 255
	noTransparentIndex     = -1
	omitLoopExtensionValue = -1
)

// Palette names accepted by encode.palette.
const (
	PaletteDefault   = "default"
	PaletteGrayscale = "grayscale"
	PaletteWebSafe   = "websafe"
)

// Disposal names accepted by encode.disposal.
const (
	DisposalNone       = "none"
	DisposalKeep       = "keep"
	DisposalBackground = "background"
	DisposalPrevious   = "previous"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Encode: Encode{
			Delay:            defaultDelay,
			LoopCount:        defaultLoopCount,
			Palette:          defaultPalette,
			TransparentIndex: noTransparentIndex,
			Disposal:         defaultDisposal,
		},
		Decode: Decode{
			ApplyDisposal: defaultApplyDisposal,
			FramePattern:  defaultFramePattern,
		},
	}
}
