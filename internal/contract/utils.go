package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Ratio band label constants.
const (
	CriticalValue = "Critical" // Critical value
	LowValue      = "Low"      // Low value
	FairValue     = "Fair"     // Fair value
	GoodValue     = "Good"     // Good value
)

// Ratio band thresholds. KPI ratios degrade downward, so the bands run the
// opposite direction of a score.
const (
	goodThreshold = 0.90
	fairThreshold = 0.75
	lowThreshold  = 0.50
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // criticalColor represents standard danger.
	LowColor      = color.New(color.FgMagenta, color.Bold) // lowColor represents strong, distinct warning.
	FairColor     = color.New(color.FgYellow)              // fairColor represents standard caution, not bold.
	GoodColor     = color.New(color.FgCyan)                // goodColor represents an on-target signal.
)

// GetPlainLabel returns a plain text label indicating the health band
// for a KPI ratio. This is the core logic used for CSV, JSON, and table
// printing.
func GetPlainLabel(ratio float64) string {
	switch {
	case ratio >= goodThreshold:
		return GoodValue
	case ratio >= fairThreshold:
		return FairValue
	case ratio >= lowThreshold:
		return LowValue
	default:
		return CriticalValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(ratio float64) string {
	text := GetPlainLabel(ratio)

	switch text {
	case GoodValue:
		return GoodColor.Sprint(text)
	case FairValue:
		return FairColor.Sprint(text)
	case LowValue:
		return LowColor.Sprint(text)
	default: // "Critical"
		return CriticalColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// FormatRatio renders a ratio as a percentage string with the configured
// precision, the way the legacy reports print it.
func FormatRatio(ratio float64, precision int) string {
	return strconv.FormatFloat(ratio*100.0, 'f', precision, 64) + "%"
}

// FormatHours renders an hour quantity with the configured precision.
func FormatHours(hours float64, precision int) string {
	return strconv.FormatFloat(hours, 'f', precision, 64)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for the results store.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".rigkpi_store.db"
	}
	return filepath.Join(homeDir, ".rigkpi_store.db")
}

// TruncateLabel shortens a delay-code label to maxWidth runes for table
// display. Labels differ at the front, so the tail is cut.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
