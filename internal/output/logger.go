// Package output handles all subsweep CLI output formatting.
package output

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// levelFormatter prints "[INF] message" lines with no timestamps or fields.
type levelFormatter struct{}

func (f *levelFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var tag string
	switch entry.Level {
	case logrus.InfoLevel:
		tag = "[INF]"
	case logrus.WarnLevel:
		tag = "[WRN]"
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		tag = "[ERR]"
	case logrus.DebugLevel, logrus.TraceLevel:
		tag = "[DBG]"
	default:
		tag = "[???]"
	}
	return []byte(fmt.Sprintf("%s %s\n", tag, entry.Message)), nil
}

// NewLogger returns the CLI logger. Verbose enables debug lines; silent
// keeps only errors.
func NewLogger(w io.Writer, verbose, silent bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&levelFormatter{})

	switch {
	case silent:
		logger.SetLevel(logrus.ErrorLevel)
	case verbose:
		logger.SetLevel(logrus.DebugLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}
