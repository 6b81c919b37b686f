package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/tartampluch/addressbook/internal/book"
	"github.com/tartampluch/addressbook/internal/config"
	"github.com/tartampluch/addressbook/internal/i18n"
)

// main delegates to runMain so deferred calls (closing the log file) run
// before the process exits.
func main() {
	os.Exit(runMain(os.Args[1:], os.Stdout, os.Stderr))
}

// runMain parses global flags, configures logging and dispatches the command.
// It returns the process exit code.
func runMain(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(config.BinaryName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	showVersion := fs.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := fs.Bool(config.FlagDebug, false, config.FlagDescDebug)
	bookPath := fs.String(config.FlagBook, "", config.FlagDescBook)
	settingsPath := fs.String(config.FlagConfig, "", config.FlagDescConfig)
	lang := fs.String(config.FlagLang, "", config.FlagDescLang)

	if err := fs.Parse(args); err != nil {
		return config.ExitCodeUsage
	}

	if *showVersion {
		fmt.Fprintf(stdout, config.MsgVersionOutput, config.AppName, config.Version, runtime.GOOS, runtime.GOARCH)
		return config.ExitCodeSuccess
	}

	logCloser := setupLogging(*debugMode, stderr)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}
	logStartupInfo()

	settings, err := config.LoadSettings(*settingsPath)
	if err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		fmt.Fprintf(stderr, "%v\n", err)
		return config.ExitCodeError
	}
	if *bookPath != "" {
		settings.BookPath = *bookPath
	}
	if *lang != "" {
		settings.Language = *lang
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return config.ExitCodeUsage
	}

	a := &app{
		out:      stdout,
		tr:       i18n.New(settings.Language),
		settings: settings,
		clock:    book.RealClock{},
	}

	if fs.NArg() == 0 {
		a.usage(fs)
		return config.ExitCodeUsage
	}

	if err := a.dispatch(fs.Arg(0), fs.Args()[1:]); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyCommand, fs.Arg(0),
			config.LogKeyError, err,
		)
		fmt.Fprintf(stderr, "%s: %v\n", a.tr.T(i18n.KeyErrorPrefix, nil), err)
		if isUsageError(err) {
			a.usage(fs)
			return config.ExitCodeUsage
		}
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Debug(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyCommit, config.Commit),
			slog.String(config.LogKeyDate, config.Date),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger. Logs always go to a file in
// the user cache directory; stderr only receives them in debug mode so command
// output stays clean.
func setupLogging(debugMode bool, stderr io.Writer) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	if debugMode {
		writers = append(writers, stderr)
	}

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on every run to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	// Ensure the directory exists with restricted permissions (700).
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
