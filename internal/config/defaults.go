package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Playback: PlaybackConfig{
			Volume: 80,
		},
		Gesture: GestureConfig{
			Threshold:    100,
			CloseDelayMS: 400,
		},
		TUI: TUIConfig{
			Theme:        "mocha",
			SeekStepSecs: 5,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	if c.Playback.Volume == 0 {
		c.Playback.Volume = d.Playback.Volume
	}

	if c.Gesture.Threshold == 0 {
		c.Gesture.Threshold = d.Gesture.Threshold
	}
	if c.Gesture.CloseDelayMS == 0 {
		c.Gesture.CloseDelayMS = d.Gesture.CloseDelayMS
	}

	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}
	if c.TUI.SeekStepSecs == 0 {
		c.TUI.SeekStepSecs = d.TUI.SeekStepSecs
	}

	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
