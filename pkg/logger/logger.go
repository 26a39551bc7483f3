package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Category represents a log category
type Category string

const (
	CategoryStartup   Category = "startup"
	CategoryAPI       Category = "api"
	CategoryDB        Category = "db"
	CategoryAuth      Category = "auth"
	CategoryGeocode   Category = "geocode"
	CategoryIngest    Category = "ingest"
	CategoryPosting   Category = "posting"
	CategoryScheduler Category = "scheduler"
)

var allCategories = []Category{
	CategoryStartup, CategoryAPI, CategoryDB, CategoryAuth,
	CategoryGeocode, CategoryIngest, CategoryPosting, CategoryScheduler,
}

// Level represents log level
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// LogEntry represents a structured log entry
type LogEntry struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     Level                  `json:"level"`
	Category  Category               `json:"category"`
	Action    string                 `json:"action"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Duration  string                 `json:"duration,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// Logger writes one JSON-lines file per category per day and optionally
// mirrors entries to the console.
type Logger struct {
	mu      sync.Mutex
	logDir  string
	writers map[Category]*os.File
	console bool
}

var (
	defaultLogger *Logger
	once          sync.Once

	// fallback takes over when Init failed. It has no log directory,
	// so entries go to the console only.
	fallback = &Logger{writers: make(map[Category]*os.File), console: true}
)

// Init initializes the default logger
func Init(logDir string, console bool) error {
	var err error
	once.Do(func() {
		defaultLogger, err = NewLogger(logDir, console)
	})
	return err
}

// NewLogger creates a new logger
func NewLogger(logDir string, console bool) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &Logger{
		logDir:  logDir,
		writers: make(map[Category]*os.File),
		console: console,
	}, nil
}

// getWriter returns or creates a file writer for the category
func (l *Logger) getWriter(category Category) (io.Writer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// One file per category per day
	filename := fmt.Sprintf("%s_%s.log", category, time.Now().Format("2006-01-02"))
	path := filepath.Join(l.logDir, filename)

	if writer, exists := l.writers[category]; exists {
		if info, err := writer.Stat(); err == nil && info.Name() == filename {
			return writer, nil
		}
		writer.Close()
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	l.writers[category] = file
	return file, nil
}

// Log writes a log entry
func (l *Logger) Log(entry LogEntry) {
	entry.Timestamp = time.Now()

	jsonData, err := json.Marshal(entry)
	if err != nil {
		fmt.Printf("Error marshaling log entry: %v\n", err)
		return
	}

	if l.logDir != "" {
		writer, err := l.getWriter(entry.Category)
		if err != nil {
			fmt.Printf("Error getting log writer: %v\n", err)
		} else {
			fmt.Fprintln(writer, string(jsonData))
		}
	}

	if l.console {
		l.printToConsole(entry)
	}
}

// printToConsole prints formatted log to console
func (l *Logger) printToConsole(entry LogEntry) {
	levelColors := map[Level]string{
		LevelDebug: "\033[36m", // Cyan
		LevelInfo:  "\033[32m", // Green
		LevelWarn:  "\033[33m", // Yellow
		LevelError: "\033[31m", // Red
	}
	reset := "\033[0m"

	fmt.Printf("%s[%s]%s [%s] [%s] %s: %s",
		levelColors[entry.Level],
		entry.Level,
		reset,
		entry.Timestamp.Format("15:04:05.000"),
		entry.Category,
		entry.Action,
		entry.Message,
	)

	if entry.Duration != "" {
		fmt.Printf(" (duration: %s)", entry.Duration)
	}
	if entry.Error != "" {
		fmt.Printf(" ERROR: %s", entry.Error)
	}
	fmt.Println()

	if len(entry.Data) > 0 {
		dataJSON, _ := json.Marshal(entry.Data)
		fmt.Printf("    Data: %s\n", string(dataJSON))
	}
}

// Close closes all file writers
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, writer := range l.writers {
		writer.Close()
	}
	l.writers = make(map[Category]*os.File)
}

// Default returns the default logger. When Init was never called it
// initializes one lazily; when Init failed it returns a console-only
// logger so callers never hold a nil logger.
func Default() *Logger {
	if defaultLogger == nil {
		Init("logs", true)
	}
	if defaultLogger == nil {
		return fallback
	}
	return defaultLogger
}

// Helper functions for common log operations

func Startup(action, message string, data map[string]interface{}) {
	Info(CategoryStartup, action, message, data)
}

func StartupError(action, message string, err error, data map[string]interface{}) {
	Error(CategoryStartup, action, message, err, data)
}

func StartupWarn(action, message string, data map[string]interface{}) {
	Warn(CategoryStartup, action, message, data)
}

func API(action, message string, data map[string]interface{}) {
	Info(CategoryAPI, action, message, data)
}

func Auth(action, message string, data map[string]interface{}) {
	Info(CategoryAuth, action, message, data)
}

func AuthError(action, message string, err error, data map[string]interface{}) {
	Error(CategoryAuth, action, message, err, data)
}

func Geocode(action, message string, data map[string]interface{}) {
	Info(CategoryGeocode, action, message, data)
}

func GeocodeError(action, message string, err error, data map[string]interface{}) {
	Error(CategoryGeocode, action, message, err, data)
}

func Ingest(action, message string, data map[string]interface{}) {
	Info(CategoryIngest, action, message, data)
}

func IngestError(action, message string, err error, data map[string]interface{}) {
	Error(CategoryIngest, action, message, err, data)
}

func Posting(action, message string, data map[string]interface{}) {
	Info(CategoryPosting, action, message, data)
}

func PostingError(action, message string, err error, data map[string]interface{}) {
	Error(CategoryPosting, action, message, err, data)
}

func Scheduler(action, message string, data map[string]interface{}) {
	Info(CategoryScheduler, action, message, data)
}

func SchedulerError(action, message string, err error, data map[string]interface{}) {
	Error(CategoryScheduler, action, message, err, data)
}

func SchedulerWarn(action, message string, data map[string]interface{}) {
	Warn(CategoryScheduler, action, message, data)
}

// Info logs info level message
func Info(category Category, action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{
		Level:    LevelInfo,
		Category: category,
		Action:   action,
		Message:  message,
		Data:     data,
	})
}

// Error logs error level message
func Error(category Category, action, message string, err error, data map[string]interface{}) {
	errStr := ""
	if err != nil {
		errStr = err.Error()
	}
	Default().Log(LogEntry{
		Level:    LevelError,
		Category: category,
		Action:   action,
		Message:  message,
		Error:    errStr,
		Data:     data,
	})
}

// Debug logs debug level message
func Debug(category Category, action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{
		Level:    LevelDebug,
		Category: category,
		Action:   action,
		Message:  message,
		Data:     data,
	})
}

// Warn logs warning level message
func Warn(category Category, action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{
		Level:    LevelWarn,
		Category: category,
		Action:   action,
		Message:  message,
		Data:     data,
	})
}

// ReadLogsOptions options for reading logs
type ReadLogsOptions struct {
	Category Category // Filter by category (empty = all)
	Level    Level    // Filter by level (empty = all)
	Lines    int      // Number of lines to return (default 100)
	Search   string   // Search in message/action
}

// ReadLogs reads log entries from files
func ReadLogs(opts ReadLogsOptions) ([]LogEntry, error) {
	return Default().ReadLogs(opts)
}

// ReadLogs reads today's log entries from the logger's log directory
func (l *Logger) ReadLogs(opts ReadLogsOptions) ([]LogEntry, error) {
	if opts.Lines <= 0 {
		opts.Lines = 100
	}
	if opts.Lines > 1000 {
		opts.Lines = 1000 // Max limit
	}

	categories := allCategories
	if opts.Category != "" {
		categories = []Category{opts.Category}
	}

	today := time.Now().Format("2006-01-02")
	var entries []LogEntry

	for _, cat := range categories {
		path := filepath.Join(l.logDir, fmt.Sprintf("%s_%s.log", cat, today))

		data, err := os.ReadFile(path)
		if err != nil {
			continue // Skip if file doesn't exist
		}

		for _, line := range strings.Split(string(data), "\n") {
			if line == "" {
				continue
			}

			var entry LogEntry
			if err := json.Unmarshal([]byte(line), &entry); err != nil {
				continue
			}

			if opts.Level != "" && entry.Level != opts.Level {
				continue
			}
			if opts.Search != "" && !entryMatches(entry, opts.Search) {
				continue
			}

			entries = append(entries, entry)
		}
	}

	// Newest first
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	if len(entries) > opts.Lines {
		entries = entries[:opts.Lines]
	}

	return entries, nil
}

func entryMatches(entry LogEntry, search string) bool {
	search = strings.ToLower(search)
	return strings.Contains(strings.ToLower(entry.Message), search) ||
		strings.Contains(strings.ToLower(entry.Action), search) ||
		strings.Contains(strings.ToLower(entry.Error), search)
}

// ListLogFiles returns list of log files
func ListLogFiles() ([]string, error) {
	return Default().ListLogFiles()
}

// ListLogFiles returns list of log files in the log directory
func (l *Logger) ListLogFiles() ([]string, error) {
	var files []string

	entries, err := os.ReadDir(l.logDir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".log" {
			files = append(files, entry.Name())
		}
	}

	return files, nil
}
