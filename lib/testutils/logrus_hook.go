// Package testutils holds helpers shared by this module's tests.
package testutils

import "github.com/sirupsen/logrus"

// SimpleLogrusHook implements the logrus.Hook interface and can be used to
// check if log messages were outputted.
type SimpleLogrusHook struct {
	HookedLevels []logrus.Level
	messageCache []logrus.Entry
}

// Levels just returns whatever was stored in the HookedLevels slice.
func (smh *SimpleLogrusHook) Levels() []logrus.Level {
	return smh.HookedLevels
}

// Fire saves whatever message the logrus library passed in the cache.
func (smh *SimpleLogrusHook) Fire(e *logrus.Entry) error {
	smh.messageCache = append(smh.messageCache, *e)
	return nil
}

// Drain returns the currently stored messages and deletes them from the cache.
func (smh *SimpleLogrusHook) Drain() []logrus.Entry {
	res := smh.messageCache
	smh.messageCache = nil
	return res
}

// Lines returns the logged messages.
func (smh *SimpleLogrusHook) Lines() []string {
	entries := smh.Drain()
	lines := make([]string, len(entries))
	for i, entry := range entries {
		lines[i] = entry.Message
	}
	return lines
}

var _ logrus.Hook = &SimpleLogrusHook{}

// NewLogger returns a logger with an attached capture hook for the given
// levels (all levels when none are specified). The logger itself discards
// its output; the hook is the observable surface.
func NewLogger(levels ...logrus.Level) (*logrus.Logger, *SimpleLogrusHook) {
	if len(levels) == 0 {
		levels = logrus.AllLevels
	}
	logger := logrus.New()
	logger.SetOutput(nopWriter{})
	logger.SetLevel(logrus.DebugLevel)
	hook := &SimpleLogrusHook{HookedLevels: levels}
	logger.AddHook(hook)
	return logger, hook
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
