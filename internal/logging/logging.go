// Package logging maps the driver's --verbosity flag onto a logrus
// level.
package logging

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// LevelForVerbosity maps 0/1/2 to Warn/Debug/Trace.
func LevelForVerbosity(v int) (logrus.Level, error) {
	switch v {
	case 0:
		return logrus.WarnLevel, nil
	case 1:
		return logrus.DebugLevel, nil
	case 2:
		return logrus.TraceLevel, nil
	default:
		return 0, fmt.Errorf("verbosity must be 0, 1, or 2, got %d", v)
	}
}

// New builds a text-formatted logger at the level implied by v.
func New(v int) (*logrus.Logger, error) {
	level, err := LevelForVerbosity(v)
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetLevel(level)
	return log, nil
}
