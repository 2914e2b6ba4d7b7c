package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	WarningLog *log.Logger
	InfoLog    *log.Logger
	ErrorLog   *log.Logger

	// writer shared by the global and component loggers
	globalWriter io.Writer = os.Stderr

	componentMu      sync.Mutex
	componentLoggers map[string]*Loggers
)

// LogConfig holds logging configuration
type LogConfig struct {
	LogsEnabled bool
	LogsDir     string
	LogMaxSize  int
	LogMaxFiles int
	LogMaxAge   int
	LogCompress bool
}

// DefaultLogConfig returns the default logging configuration
func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		LogsEnabled: true,
		LogsDir:     "",
		LogMaxSize:  10, // 10MB
		LogMaxFiles: 5,  // 5 backups
		LogMaxAge:   30, // 30 days
		LogCompress: true,
	}
}

const logBaseName = "quasimode.log"

// Default log file used when the configured directory is unusable
var logFileName = filepath.Join(os.TempDir(), logBaseName)

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".quasimode"), nil
}

// GetLogDir returns the directory where logs should be stored
func GetLogDir(cfg *LogConfig) (string, error) {
	if cfg != nil && !cfg.LogsEnabled {
		return os.TempDir(), nil
	}

	if cfg != nil && cfg.LogsDir != "" {
		return cfg.LogsDir, nil
	}

	// Otherwise use ~/.quasimode/logs/
	configDir, err := GetConfigDir()
	if err != nil {
		return os.TempDir(), fmt.Errorf("failed to get config directory: %w", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return os.TempDir(), fmt.Errorf("failed to create log directory: %w", err)
	}

	return logDir, nil
}

// GetLogFilePath returns the full path to the log file
func GetLogFilePath(cfg *LogConfig) (string, error) {
	logDir, err := GetLogDir(cfg)
	if err != nil {
		return logFileName, err
	}

	return filepath.Join(logDir, logBaseName), nil
}

// Loggers holds the three levelled loggers for one component of the launcher.
type Loggers struct {
	WarningLog *log.Logger
	InfoLog    *log.Logger
	ErrorLog   *log.Logger
}

// For returns loggers whose lines are prefixed with the component name, e.g.
// "[hook] INFO: ". They share the global writer.
func For(component string) *Loggers {
	componentMu.Lock()
	defer componentMu.Unlock()

	if loggers, exists := componentLoggers[component]; exists {
		return loggers
	}

	loggers := newComponentLoggers(globalWriter, component)
	componentLoggers[component] = loggers
	return loggers
}

func newComponentLoggers(w io.Writer, component string) *Loggers {
	flags := log.Ldate | log.Ltime | log.Lshortfile
	return &Loggers{
		InfoLog:    log.New(w, fmt.Sprintf("[%s] INFO: ", component), flags),
		WarningLog: log.New(w, fmt.Sprintf("[%s] WARNING: ", component), flags),
		ErrorLog:   log.New(w, fmt.Sprintf("[%s] ERROR: ", component), flags),
	}
}

var globalLogFile io.WriteCloser

func init() {
	componentLoggers = make(map[string]*Loggers)

	// Tests and early startup log to stderr until Initialize is called.
	InfoLog = log.New(os.Stderr, "INFO: ", log.Ldate|log.Ltime)
	WarningLog = log.New(os.Stderr, "WARNING: ", log.Ldate|log.Ltime)
	ErrorLog = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime)
}

// Initialize should be called once at the beginning of the program to set up logging.
// defer Close() after calling this function. A nil config uses DefaultLogConfig.
func Initialize(cfg *LogConfig) {
	if cfg == nil {
		cfg = DefaultLogConfig()
	}
	logFilePath, err := GetLogFilePath(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Using default log file location due to error: %v\n", err)
		logFilePath = logFileName
	}

	writer := createRotatingWriter(logFilePath, cfg)
	setWriter(writer)

	if closer, ok := writer.(io.WriteCloser); ok {
		globalLogFile = closer
	}

	logFileName = logFilePath
}

// setWriter points every logger, including already handed out component
// loggers, at w.
func setWriter(w io.Writer) {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	InfoLog = log.New(w, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLog = log.New(w, "WARNING: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog = log.New(w, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)

	componentMu.Lock()
	defer componentMu.Unlock()
	globalWriter = w
	for _, loggers := range componentLoggers {
		loggers.InfoLog.SetOutput(w)
		loggers.WarningLog.SetOutput(w)
		loggers.ErrorLog.SetOutput(w)
	}
}

// createRotatingWriter creates a writer that handles log rotation based on config
func createRotatingWriter(logFilePath string, cfg *LogConfig) io.Writer {
	if cfg == nil || cfg.LogMaxSize <= 0 {
		logDir := filepath.Dir(logFilePath)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			panic(fmt.Sprintf("could not create log directory: %s", err))
		}

		// No rotation, use standard file
		f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			panic(fmt.Sprintf("could not open log file: %s", err))
		}
		return f
	}

	return &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    cfg.LogMaxSize,  // megabytes
		MaxBackups: cfg.LogMaxFiles, // number of backups
		MaxAge:     cfg.LogMaxAge,   // days
		Compress:   cfg.LogCompress, // compress rotated files
		LocalTime:  true,
	}
}

// Close closes the log file and reports where the logs went.
func Close() {
	if globalLogFile != nil {
		_ = globalLogFile.Close()
		globalLogFile = nil
	}
	setWriter(os.Stderr)

	fmt.Fprintln(os.Stderr, "wrote logs to "+logFileName)
}

// Every is used to log at most once every timeout duration.
type Every struct {
	mu      sync.Mutex
	timeout time.Duration
	timer   *time.Timer
}

func NewEvery(timeout time.Duration) *Every {
	return &Every{timeout: timeout}
}

// ShouldLog returns true if the timeout has passed since the last log.
func (e *Every) ShouldLog() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.timer == nil {
		e.timer = time.NewTimer(e.timeout)
		return true
	}

	select {
	case <-e.timer.C:
		e.timer.Reset(e.timeout)
		return true
	default:
		return false
	}
}
