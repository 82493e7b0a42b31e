package orion

import (
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogging installs the default slog logger. Without a log file,
// logs are written as text to stderr. With a log file they are written
// as json into a rotating file. The returned function closes the file.
func SetupLogging(conf Config) (closeLog func() error) {
	if conf.LogFile == "" {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{AddSource: true, Level: conf.LogLevel})
		slog.SetDefault(slog.New(handler))

		return func() error { return nil }
	}

	w := &lumberjack.Logger{
		Filename:   conf.LogFile,
		MaxSize:    32, // MB
		MaxBackups: 1,
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: conf.LogLevel})
	slog.SetDefault(slog.New(handler))

	return w.Close
}
