package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log — общий логгер приложения. Никогда не nil: до вызова Init
// пишет JSON на уровне info, поэтому фоновые задачи могут логировать
// и в тестах без инициализации.
var Log = newLogger(logrus.InfoLevel, &logrus.JSONFormatter{})

// Init настраивает логгер под окружение: в development — подробный
// текстовый вывод, в остальных случаях — JSON для сборщиков логов.
func Init(env string) {
	if env == "development" {
		Log = newLogger(logrus.DebugLevel, &logrus.TextFormatter{FullTimestamp: true})
		return
	}
	Log = newLogger(logrus.InfoLevel, &logrus.JSONFormatter{})
}

func newLogger(level logrus.Level, formatter logrus.Formatter) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(level)
	l.SetFormatter(formatter)
	return l
}
