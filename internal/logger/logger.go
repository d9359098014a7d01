package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

const (
	colorReset  = "\033[0m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

var colorEnabled = isatty.IsTerminal(os.Stdout.Fd())

func paint(color, s string) string {
	if !colorEnabled {
		return s
	}
	return color + s + colorReset
}

func line(color, level, tag, msg string) {
	ts := time.Now().Format("15:04:05")
	fmt.Printf("%s %s %s %s\n",
		paint(colorGray, ts),
		paint(color, level),
		paint(colorBold, "["+tag+"]"),
		msg)
}

// Info logs an informational message under a short component tag.
func Info(tag, msg string) { line(colorCyan, "INFO", tag, msg) }

// Success logs a completed-action message.
func Success(tag, msg string) { line(colorGreen, " OK ", tag, msg) }

// Warn logs a recoverable problem.
func Warn(tag, msg string) { line(colorYellow, "WARN", tag, msg) }

// Error logs a failure. It does not exit; callers decide that.
func Error(tag, msg string) { line(colorRed, "FAIL", tag, msg) }

// Section prints a visual separator before a group of related log lines.
func Section(name string) {
	fmt.Printf("%s\n", paint(colorBold, "── "+name+" ──"))
}

// Stats prints a key/value pair aligned for startup summaries.
func Stats(key string, value interface{}) {
	fmt.Printf("    %-24s %v\n", key, value)
}

// Banner prints the startup banner with the build version.
func Banner(version string) {
	if version == "" {
		version = "dev"
	}
	fmt.Printf("%s\n", paint(colorBold, "margin-desk "+version))
}
