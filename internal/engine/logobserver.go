package engine

import (
	"github.com/charmbracelet/log"

	"github.com/tomos/cadence/internal/core"
)

// LogObserver logs playback notifications at debug level. It subscribes
// alongside the views in interactive mode, where no console printer runs.
// Progress is deliberately not logged.
type LogObserver struct {
	BaseObserver
	logger *log.Logger
}

// NewLogObserver creates a log observer writing to l.
func NewLogObserver(l *log.Logger) *LogObserver {
	return &LogObserver{logger: l}
}

func (o *LogObserver) TrackChanged(t core.Track) {
	o.logger.Debug("track changed", "id", t.ID, "title", t.Title)
}

func (o *LogObserver) StatusChanged(s core.Status) {
	o.logger.Debug("status changed", "status", s)
}

func (o *LogObserver) ShuffleChanged(enabled bool) {
	o.logger.Debug("shuffle changed", "enabled", enabled)
}

func (o *LogObserver) RepeatChanged(repeatOne bool) {
	o.logger.Debug("repeat changed", "repeat_one", repeatOne)
}

var _ Observer = (*LogObserver)(nil)
