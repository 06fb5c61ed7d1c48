package dirtree

import (
	"time"

	"github.com/sirupsen/logrus"
)

// opLogger traces operation entry/exit. It runs entirely outside of
// any node lock, so a slow log sink can never contribute a new
// deadlock: fields are computed, the call is logged, the operation
// runs, and the result is logged — none of that touches n.mu.
//
// A nil *logrus.Logger (the zero value of opLogger) makes every method
// a no-op, so tracing is opt-in via WithLogger.
type opLogger struct {
	log *logrus.Logger
}

func (o opLogger) enabled() bool { return o.log != nil }

// call logs operation entry and returns a start time to hand to
// finish.
func (o opLogger) call(op string, fields logrus.Fields) time.Time {
	if o.enabled() {
		o.log.WithFields(fields).WithField("op", op).Debug("call")
	}
	return time.Now()
}

// finish logs operation exit with its status and elapsed duration.
func (o opLogger) finish(op string, start time.Time, status Status, err error) {
	if !o.enabled() {
		return
	}
	fields := logrus.Fields{
		"op":       op,
		"status":   status.String(),
		"duration": time.Since(start),
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	o.log.WithFields(fields).Debug("return")
}
