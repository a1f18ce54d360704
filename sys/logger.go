package sys

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

var (
	// Style definitions
	infoColor      = color.New(color.FgHiBlack)
	warnColor      = color.New(color.FgHiYellow)
	errorColor     = color.New(color.FgHiRed)
	fatalColor     = color.New(color.FgHiRed, color.Bold)
	databaseColor  = color.New(color.FgHiBlack)
	schedulerColor = color.New(color.FgHiMagenta)
	backupColor    = color.New(color.FgHiBlue)
	timerColor     = color.New(color.FgHiMagenta)

	IsSilent  = false
	LogToFile = false

	// Global default logger
	Logger *slog.Logger

	// Log file handling
	logFile *os.File
	logMu   sync.Mutex
)

func init() {
	// Initialize with a default handler immediately (Stdout only)
	InitLogger(false, false)
}

// InitLogger initializes the global structured logger
func InitLogger(silent bool, saveToFile bool) {
	logMu.Lock()
	defer logMu.Unlock()

	IsSilent = silent
	LogToFile = saveToFile
	level := slog.LevelInfo
	if strings.ToLower(os.Getenv("DEBUG")) == "true" {
		level = slog.LevelDebug
	}

	// Clean up previous file if it exists (e.g. during reload)
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writer io.Writer = os.Stdout
	var err error

	// Open log file if requested
	if LogToFile {
		exePath, exeErr := os.Executable()
		logName := "utool.log" // Fallback
		if exeErr == nil {
			logName = filepath.Base(exePath) + ".log"
		}

		logFile, err = os.OpenFile(logName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open %s: %v\n", logName, err)
		} else {
			writer = io.MultiWriter(os.Stdout, logFile)
		}
	}

	// Force colors to be enabled even if writing to a file/pipe avoids detection
	color.NoColor = false

	handler := NewBotLogHandler(writer, &BotLogHandlerOptions{
		Silent: IsSilent,
		Level:  level,
	})
	Logger = slog.New(handler)
	slog.SetDefault(Logger)
}

func SetSilentMode(silent bool) {
	InitLogger(silent, LogToFile)
}

// --- Log Functions ---

func LogInfo(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...))
}

func LogWarn(format string, v ...interface{}) {
	slog.Warn(fmt.Sprintf(format, v...))
}

func LogError(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...))
}

func LogFatal(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	slog.Log(context.Background(), slog.LevelError+4, msg) // Custom Fatal level
	os.Exit(1)
}

func LogDatabase(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", "database"))
}

func LogScheduler(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", "scheduler"))
}

func LogBackup(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", "backup"))
}

func LogTimer(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", "timer"))
}

func LogDebug(format string, v ...interface{}) {
	slog.Debug(fmt.Sprintf(format, v...))
}

// --- Custom Slog Handler ---

type BotLogHandlerOptions struct {
	Silent bool
	Level  slog.Leveler
}

type BotLogHandler struct {
	w    io.Writer
	opts *BotLogHandlerOptions
	mu   *sync.Mutex
}

func NewBotLogHandler(w io.Writer, opts *BotLogHandlerOptions) *BotLogHandler {
	if opts == nil {
		opts = &BotLogHandlerOptions{Level: slog.LevelInfo}
	}
	return &BotLogHandler{
		w:    w,
		opts: opts,
		mu:   &sync.Mutex{},
	}
}

func (h *BotLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.opts.Silent {
		return false
	}
	return level >= h.opts.Level.Level()
}

func (h *BotLogHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.opts.Silent {
		return nil
	}

	timeStr := time.Now().Format("15:04:05")
	var levelStr string
	var levelColor *color.Color

	switch {
	case r.Level >= slog.LevelError+4: // Fatal
		levelStr = "FATAL"
		levelColor = fatalColor
	case r.Level >= slog.LevelError:
		levelStr = "ERROR"
		levelColor = errorColor
	case r.Level >= slog.LevelWarn:
		levelStr = "WARN"
		levelColor = warnColor
	case r.Level >= slog.LevelInfo:
		levelStr = "INFO"
		levelColor = infoColor
	}

	// Extract component if present
	component := ""
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "component" {
			component = strings.ToUpper(a.Value.String())
			return false
		}
		return true
	})

	// Output: 15:04:05 [INFO] [COMPONENT] Message
	// Timestamp is always printed in default color.
	fmt.Fprintf(h.w, "%s", timeStr)

	if component != "" {
		// Component-specific logs: Level tag (if not INFO) is isolated, Message bleeds component color
		if levelStr != "INFO" {
			fmt.Fprintf(h.w, " %s", levelColor.Sprintf("[%s]", levelStr))
		}
		compColor := getComponentColor(component)
		fmt.Fprintf(h.w, " %s\n", compColor.Sprintf("[%s] %s", component, r.Message))
	} else {
		// General logs: Level tag color bleeds into the message
		fmt.Fprintf(h.w, " %s\n", levelColor.Sprintf("[%s] %s", levelStr, r.Message))
	}

	return nil
}

func (h *BotLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler { return h }
func (h *BotLogHandler) WithGroup(name string) slog.Handler       { return h }

func getComponentColor(name string) *color.Color {
	switch name {
	case "DATABASE":
		return databaseColor
	case "SCHEDULER":
		return schedulerColor
	case "BACKUP":
		return backupColor
	case "TIMER":
		return timerColor
	default:
		return color.New(color.FgCyan)
	}
}

// @sys
const (
	// Configuration
	MsgConfigMissingToken = "DISCORD_TOKEN is not set in .env file"
	MsgConfigBadTimezone  = "invalid TIMEZONE %q: %v"
	MsgConfigBadCron      = "invalid BACKUP_CRON %q: %v"

	// Data layer
	MsgDatabaseInitSuccess = "Database initialized successfully"
	MsgDatabaseTableError  = "Failed to create table: %w"
	MsgDatabasePragmaError = "Failed to set pragma %s: %w"
	MsgDatabaseLoaded      = "Loaded %d guild records"
	MsgDatabaseLoadSkip    = "Skipping unreadable guild record %s: %v"
	MsgDatabasePersistFail = "Failed to persist guild data: %v"

	// Command Registry
	MsgLoaderSyncCommands  = "Syncing commands... (Mode: %s)"
	MsgLoaderProdStarting  = "Registering commands globally..."
	MsgLoaderProdFail      = "failed to register global commands: %w"
	MsgLoaderProdDone      = "Registered global command: %s"
	MsgLoaderDevStarting   = "Registering commands to guild: %s"
	MsgLoaderDevFail       = "Failed to register guild commands: %v"
	MsgLoaderDevDone       = "Registered guild command: %s"
	MsgLoaderDevClear      = "Clearing global commands..."
	MsgLoaderDevClearFail  = "Failed to clear global commands: %v"
	MsgLoaderPanicRecover  = "Recovered from panic in handler: %v"
	MsgDaemonStarting      = "Starting..."

	// Bot Lifecycle
	MsgBotReady         = "%s is online! (ID: %s) (PID: %d)"
	MsgBotShutdown      = "Shutting down %s..."
	MsgBotKillingOld    = "Killing running instance... (PID: %d)"
	MsgBotKillFail      = "Failed to kill old instance: %v"
	MsgBotOldTerminated = "Old instance terminated."
	MsgBotPIDWriteFail  = "Failed to write PID file: %v"
	MsgBotRegisterFail  = "Background command registration failed: %v"
)

// @scheduler
const (
	MsgSchedulerCycleSkip   = "Minute %s already evaluated, skipping cycle"
	MsgSchedulerChannelSkip = "Channel %s unresolvable, skipping notification"
	MsgSchedulerSendFail    = "Failed to deliver notification to %s: %v"
	MsgSchedulerDelivered   = "Delivered %d notification(s) for minute %s"
)

// @commands
const (
	MsgRespondError = "Failed to respond to interaction: %v"
)

// @backup
const (
	MsgBackupWritten   = "Snapshot written: %s (%d bytes)"
	MsgBackupWriteFail = "Failed to write snapshot: %v"
	MsgBackupPruned    = "Pruned old snapshot: %s"
	MsgBackupPruneFail = "Failed to prune snapshots: %v"
	MsgBackupNextRun   = "Next snapshot at %s"
)

// @calendar
const (
	ErrCalBadDate      = "Invalid date. Use YYYY-MM-DD (optionally HH:MM) or a natural phrase like 'next friday 18:00'."
	ErrCalBadIndex     = "Invalid number. Check the current list with /cal list."
	ErrCalNoPermission = "You need the Manage Server permission for this."
	ErrCalSaveFailed   = "Failed to save. Please try again."
	MsgCalEmpty        = "No events scheduled."
	MsgCalCleared      = "All events deleted."
	MsgCalExportEmpty  = "Nothing to export."
)

// @todo
const (
	ErrTodoBadDue   = "Invalid due date. Use YYYY-MM-DD (optionally HH:MM)."
	ErrTodoBadIndex = "Invalid number. Check the current list with /todo list."
	MsgTodoEmpty    = "No todos yet."
)

// @reminder
const (
	ErrRemBadClock    = "Invalid time. Use HH:MM (24-hour)."
	ErrRemBadWeekday  = "Invalid weekday. Use Monday through Sunday."
	ErrRemBadID       = "Invalid ID. Use D# or W# as shown by /rem list."
	ErrRemBadDuration = "Could not parse that. Try '10m', '1h30m' or 'in 2 hours'."
	ErrRemPastTime    = "The timer must end in the future."
	MsgRemEnabled     = "Event announcements enabled in this channel (%d minutes before)."
	MsgRemDisabled    = "Event announcements disabled for this server."
	MsgRemNone        = "No recurring reminders registered."
)

// @fun
const (
	ErrRollBadFormat = "Wrong format. Example: /roll 2d6"
	ErrRollTooMany   = "At most 100 dice with up to 1000 sides."
	ErrPollOptions   = "A poll needs at least 2 options."
)
