package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// GooseLogger satisfies goose.Logger on top of zap.
type GooseLogger struct {
	log *zap.SugaredLogger
}

// NewGooseLogger wraps log for migration output.
func NewGooseLogger(log *zap.Logger) *GooseLogger {
	return &GooseLogger{log: log.Named("migrate").Sugar()}
}

func (g *GooseLogger) Printf(format string, v ...interface{}) {
	g.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (g *GooseLogger) Fatalf(format string, v ...interface{}) {
	g.log.Fatal(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// CronLogger satisfies cron.Logger on top of zap. keysAndValues are alternating
// key/value pairs, which is what the sugared logger expects.
type CronLogger struct {
	log *zap.SugaredLogger
}

// NewCronLogger wraps log for scheduler output.
func NewCronLogger(log *zap.Logger) *CronLogger {
	return &CronLogger{log: log.Named("cron").Sugar()}
}

func (c *CronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.log.Debugw(msg, keysAndValues...)
}

func (c *CronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
