package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/sirupsen/logrus"
)

// InitLogging configures the debug logger. User-facing output goes through
// the Print* helpers; logrus carries diagnostic traces only.
func InitLogging(debug bool) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}

func PrintStatus(format string, args ...any) {
	fmt.Printf("%s %s\n", text.FgHiBlue.Sprint("[INFO]"), fmt.Sprintf(format, args...))
}

func PrintSuccess(format string, args ...any) {
	fmt.Printf("%s %s\n", text.FgHiGreen.Sprint("[SUCCESS]"), fmt.Sprintf(format, args...))
}

func PrintWarning(format string, args ...any) {
	fmt.Printf("%s %s\n", text.FgHiYellow.Sprint("[WARNING]"), fmt.Sprintf(format, args...))
}

func PrintError(format string, args ...any) {
	fmt.Printf("%s %s\n", text.FgHiRed.Sprint("[ERROR]"), fmt.Sprintf(format, args...))
}

func PrintDebug(format string, args ...any) {
	logrus.Debugf(format, args...)
}

// PrintHeader draws a full-width section banner.
func PrintHeader(title string) {
	rule := strings.Repeat("═", 64)
	fmt.Println()
	fmt.Println(text.FgHiMagenta.Sprint(rule))
	fmt.Println(text.FgHiMagenta.Sprintf("  %s", title))
	fmt.Println(text.FgHiMagenta.Sprint(rule))
	fmt.Println()
}

// PrintSubheader draws a lighter section marker.
func PrintSubheader(title string) {
	fmt.Println()
	fmt.Println(text.FgHiCyan.Sprintf("── %s ──", title))
	fmt.Println()
}
