package config

// Config is the root configuration structure.
type Config struct {
	Playback PlaybackConfig `toml:"playback"`
	Library  LibraryConfig  `toml:"library"`
	Gesture  GestureConfig  `toml:"gesture"`
	TUI      TUIConfig      `toml:"tui"`
	Log      LogConfig      `toml:"log"`
}

// PlaybackConfig holds default playback settings.
type PlaybackConfig struct {
	Volume    int  `toml:"volume"` // percent, 0-100
	Shuffle   bool `toml:"shuffle"`
	RepeatOne bool `toml:"repeat_one"`
}

// LibraryConfig holds music library settings.
type LibraryConfig struct {
	Paths []string `toml:"paths"`
}

// GestureConfig holds swipe-to-dismiss settings for the expanded view.
type GestureConfig struct {
	Threshold    float64 `toml:"threshold"`      // device-independent units
	CloseDelayMS int     `toml:"close_delay_ms"` // listener teardown delay
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme        string `toml:"theme"`
	SeekStepSecs int    `toml:"seek_step_secs"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}
