package internal

import (
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// cliHook for logging Info level and above to the CLI when the main output is
// a log file.
type cliHook struct {
	formatter log.Formatter
}

func (h *cliHook) Levels() []log.Level {
	return []log.Level{log.InfoLevel, log.WarnLevel, log.ErrorLevel, log.FatalLevel, log.PanicLevel}
}

func (h *cliHook) Fire(entry *log.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = os.Stderr.Write(line)
	return err
}

// SetupLogger configures the package level logrus logger. Without a log
// directory everything goes to stderr as text; with one, a rotating JSON log
// file receives every level and stderr still gets Info and above.
func SetupLogger(level, logDir string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)

	textFormatter := &log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	}

	if logDir == "" {
		log.SetFormatter(textFormatter)
		log.SetOutput(os.Stderr)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	// Rotating file logger setup
	log.SetOutput(&lumberjack.Logger{
		Filename:   filepath.Join(logDir, "frame-interpolator.log"),
		MaxSize:    5, // in MB
		MaxBackups: 10,
		MaxAge:     30,   // in days
		Compress:   true, // compress old log files
	})
	log.SetFormatter(&log.JSONFormatter{
		TimestampFormat: time.RFC1123Z,
	})
	log.AddHook(&cliHook{formatter: textFormatter})
	return nil
}
