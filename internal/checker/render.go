package checker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bannerWidth = 42

var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00d7ff")).
			Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00ff87"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffaf00"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff5f5f"))
)

func (c *Checker) printBanner(title string) {
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(c.out, bannerStyle.Render(rule))
	fmt.Fprintln(c.out, bannerStyle.Render(title))
	fmt.Fprintln(c.out, bannerStyle.Render(rule))
}

func (c *Checker) printOK(format string, args ...interface{}) {
	fmt.Fprintln(c.out, okStyle.Render(fmt.Sprintf(format, args...)))
}

func (c *Checker) printWarn(format string, args ...interface{}) {
	fmt.Fprintln(c.out, warnStyle.Render("[WARNING] "+fmt.Sprintf(format, args...)))
}

func (c *Checker) printError(format string, args ...interface{}) {
	fmt.Fprintln(c.out, errorStyle.Render("[ERROR] "+fmt.Sprintf(format, args...)))
}
