package logging

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger. Production gets JSON output,
// everything else human-readable text. Unknown levels fall back to info.
func Setup(level string, production bool) {
	log.SetOutput(os.Stdout)

	if production {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("Unknown log level, using info")
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}
