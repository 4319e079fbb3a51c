package config

const (
	defaultSort            = "by_name"
	defaultFPS             = 30
	defaultSecondsPerFrame = 2.0
	defaultBackground      = "#000000"
	defaultCodec           = "libx264"
	defaultCRF             = 23
	defaultPreset          = "medium"
	defaultFFmpegBinary    = "ffmpeg"
	defaultFFprobeBinary   = "ffprobe"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"

	defaultConfigLocation = "~/.config/snapmotion/config.toml"
	projectConfigFileName = "snapmotion.toml"
	maxFPS                = 240
	maxDimension          = 16384
	maxCRF                = 51
)

// MaxSecondsPerFrame caps how long a single image may stay on screen.
const MaxSecondsPerFrame = 3600.0

var validPresets = []string{
	"ultrafast", "superfast", "veryfast", "faster", "fast",
	"medium", "slow", "slower", "veryslow", "placebo",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Input: Input{
			Sort: defaultSort,
		},
		Render: Render{
			FPS:             defaultFPS,
			SecondsPerFrame: defaultSecondsPerFrame,
			Background:      defaultBackground,
		},
		Output: Output{
			Codec:  defaultCodec,
			CRF:    defaultCRF,
			Preset: defaultPreset,
		},
		FFmpeg: FFmpeg{
			Binary:        defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
