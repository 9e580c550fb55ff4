package services

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// TrackTime logs how long a call took at debug level.
// Use as: defer TrackTime("Name", time.Now())
func TrackTime(funcName string, start time.Time) {
	log.WithFields(log.Fields{
		"func":       funcName,
		"elapsed_ms": time.Since(start).Milliseconds(),
	}).Debug("timing")
}
