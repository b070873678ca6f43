package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New создает logrus-логгер. format: "json" (по умолчанию) или "text".
// Каждая запись получает поле app с именем приложения.
func New(logLevel, format, app string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	switch strings.ToLower(format) {
	case "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	// Уровень логирования
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel // Уровень по умолчанию, если передан некорректный
	}
	log.SetLevel(level)

	if app != "" {
		log.AddHook(appHook{app: app})
	}
	return log
}

// appHook добавляет имя приложения во все записи
type appHook struct {
	app string
}

func (h appHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h appHook) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data["app"]; !ok {
		entry.Data["app"] = h.app
	}
	return nil
}
