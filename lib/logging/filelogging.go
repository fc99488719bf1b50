package logging

import (
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/ziflex/lecho/v3"
)

// Logger writes to STDOUT, or to a log file when a path is configured.
func Logger(logFilePath string) *lecho.Logger {
	logger := lecho.New(
		os.Stdout,
		lecho.WithLevel(log.INFO),
		lecho.WithTimestamp(),
	)
	if logFilePath != "" {
		file, err := OpenLoggingFile(logFilePath)
		if err != nil {
			logger.Errorf("failed to open logging file: %v", err)
			return logger
		}
		logger.SetOutput(file)
	}
	return logger
}

// OpenLoggingFile opens the log file for appending, stamping the current
// date into the file name.
func OpenLoggingFile(path string) (*os.File, error) {
	extension := filepath.Ext(path)
	stamp := time.Now().Format("2006-01-02")
	if extension != "" {
		path = path[:len(path)-len(extension)] + "-" + stamp + extension
	} else {
		path = path + "-" + stamp + ".log"
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
}
