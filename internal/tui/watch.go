// Package tui renders a live GPU watch screen that refreshes device memory
// and utilization once per second.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mlready/internal/gpu"
	"mlready/internal/logging"
	"mlready/internal/sysinfo"
)

const bytesPerGB = 1 << 30

// Sample is one point-in-time GPU reading.
type Sample struct {
	Available   bool
	DeviceName  string
	UsedGB      float64
	TotalGB     float64
	FreeGB      float64
	Utilization uint32
	Err         string
}

// Sampler produces GPU samples for the watch screen.
type Sampler interface {
	Sample() Sample
}

// TelemetrySampler samples a device over an already-initialized telemetry
// session. The caller owns the session lifecycle.
type TelemetrySampler struct {
	Telemetry   gpu.Telemetry
	DeviceIndex int
}

// Sample reads memory and utilization for the configured device.
func (s TelemetrySampler) Sample() Sample {
	sample := Sample{}

	name, err := s.Telemetry.DeviceName(s.DeviceIndex)
	if err != nil {
		sample.Err = err.Error()
		return sample
	}
	sample.DeviceName = name
	sample.Available = true

	info, err := s.Telemetry.MemoryInfo(s.DeviceIndex)
	if err != nil {
		sample.Err = err.Error()
		return sample
	}
	sample.UsedGB = float64(info.Used) / bytesPerGB
	sample.TotalGB = float64(info.Total) / bytesPerGB
	sample.FreeGB = float64(info.Free) / bytesPerGB

	util, err := s.Telemetry.UtilizationRate(s.DeviceIndex)
	if err != nil {
		sample.Err = err.Error()
		return sample
	}
	sample.Utilization = util

	return sample
}

type tickMsg time.Time

// Model represents the watch screen state
type Model struct {
	sampler  Sampler
	logger   *logging.Logger
	interval time.Duration

	sample   Sample
	host     sysinfo.Info
	hasHost  bool
	lastTick time.Time
	quitting bool
}

// NewModel creates a watch model and takes an initial sample. The host
// snapshot is read once; GPU readings refresh on every tick.
func NewModel(sampler Sampler, logger *logging.Logger) Model {
	m := Model{
		sampler:  sampler,
		logger:   logger,
		interval: time.Second,
		lastTick: time.Now(),
	}
	m.sample = sampler.Sample()

	if info, err := sysinfo.Collect("."); err == nil {
		m.host = info
		m.hasHost = true
	} else {
		logger.Warn("watch.host.failed", "Host snapshot failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return m
}

// Init schedules the first refresh tick
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles key presses and refresh ticks
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "r":
			m.sample = m.sampler.Sample()
			m.lastTick = time.Now()
			return m, nil
		}
	case tickMsg:
		m.sample = m.sampler.Sample()
		m.lastTick = time.Time(msg)
		return m, m.tick()
	}
	return m, nil
}

// View renders the watch screen
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00d7ff")).MarginBottom(1)
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd700")).MarginTop(1)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#87d7af"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#5fafff")).MarginTop(1)

	b.WriteString(titleStyle.Render("mlready — GPU Watch"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("GPU"))
	b.WriteString("\n")
	if !m.sample.Available {
		b.WriteString(errorStyle.Render("  GPU monitoring is not available"))
		b.WriteString("\n")
		if m.sample.Err != "" {
			b.WriteString(errorStyle.Render("  " + m.sample.Err))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(labelStyle.Render("  Device:      "))
		b.WriteString(valueStyle.Render(m.sample.DeviceName))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("  Memory:      "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.2f / %.2f GB used (%.2f GB free)",
			m.sample.UsedGB, m.sample.TotalGB, m.sample.FreeGB)))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("  Utilization: "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%d%%", m.sample.Utilization)))
		b.WriteString("\n")
		if m.sample.Err != "" {
			b.WriteString(errorStyle.Render("  " + m.sample.Err))
			b.WriteString("\n")
		}
	}

	if m.hasHost {
		b.WriteString(sectionStyle.Render("Host"))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("  System:      "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%s (%s)", m.host.Hostname, m.host.Platform)))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("  RAM:         "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.2f / %.2f GB available",
			m.host.AvailableMemGB, m.host.TotalMemGB)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render(fmt.Sprintf("Updated %s | Refresh: r | Quit: q",
		m.lastTick.Format("15:04:05"))))
	b.WriteString("\n")

	return b.String()
}

// Run starts the watch screen and blocks until it exits
func Run(sampler Sampler, logger *logging.Logger) error {
	p := tea.NewProgram(NewModel(sampler, logger))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run watch screen: %w", err)
	}
	return nil
}
