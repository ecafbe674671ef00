package resources

import (
	"os"
	"path"
	"time"

	"github.com/flowtag/flowtag/config"
	"github.com/flowtag/flowtag/util"

	"github.com/google/uuid"
	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
)

// initLogger creates the logger for logging to stderr. Every entry carries a
// run_id field so entries from concurrent or repeated runs can be told apart
// once they land in shared log files.
func initLogger(logConfig *config.LogStaticCfg) *log.Logger {
	var logs = log.New()

	logs.Formatter = new(log.TextFormatter)
	logs.Out = os.Stderr

	switch logConfig.LogLevel {
	case 3:
		logs.Level = log.DebugLevel
	case 2:
		logs.Level = log.InfoLevel
	case 1:
		logs.Level = log.WarnLevel
	case 0:
		logs.Level = log.ErrorLevel
	}

	logs.Hooks.Add(&runIDHook{runID: uuid.New().String()})
	return logs
}

func addFileLogger(logger *log.Logger, logPath string) error {
	time := time.Now().Format(util.TimeFormat)
	logPath = path.Join(logPath, time)
	_, err := os.Stat(logPath)
	if err != nil && os.IsNotExist(err) {
		err = os.MkdirAll(logPath, 0755)
		if err != nil {
			return err
		}
	}

	logger.Hooks.Add(lfshook.NewHook(lfshook.PathMap{
		log.DebugLevel: path.Join(logPath, "debug.log"),
		log.InfoLevel:  path.Join(logPath, "info.log"),
		log.WarnLevel:  path.Join(logPath, "warn.log"),
		log.ErrorLevel: path.Join(logPath, "error.log"),
		log.FatalLevel: path.Join(logPath, "fatal.log"),
		log.PanicLevel: path.Join(logPath, "panic.log"),
	}, nil))
	return nil
}

// runIDHook stamps every log entry with the id of the current run
type runIDHook struct {
	runID string
}

func (h *runIDHook) Levels() []log.Level {
	return log.AllLevels
}

func (h *runIDHook) Fire(entry *log.Entry) error {
	entry.Data["run_id"] = h.runID
	return nil
}
