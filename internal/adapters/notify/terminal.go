package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/bnema/camp-cli/internal/domain"
	"github.com/bnema/camp-cli/internal/ports"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang/glog"
)

type styles struct {
	success lipgloss.Style
	info    lipgloss.Style
	failure lipgloss.Style
	message lipgloss.Style
}

func newStyles() styles {
	return styles{
		success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
		info:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		failure: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		message: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// Terminal prints one line per notification, the CLI's stand-in for a toast.
type Terminal struct {
	out    io.Writer
	styles styles
	mu     sync.Mutex
}

var _ ports.Notifier = (*Terminal)(nil)

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out, styles: newStyles()}
}

func (t *Terminal) Notify(n domain.Notification) {
	logNotification(n)

	if t.out == nil {
		return
	}

	line := t.badge(n.Level).Render(symbol(n.Level)+" "+n.Title)
	if n.Message != "" {
		line += " " + t.styles.message.Render(n.Message)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = fmt.Fprintln(t.out, line)
}

func (t *Terminal) badge(level domain.NotificationLevel) lipgloss.Style {
	switch level {
	case domain.NotifySuccess:
		return t.styles.success
	case domain.NotifyError:
		return t.styles.failure
	default:
		return t.styles.info
	}
}

func symbol(level domain.NotificationLevel) string {
	switch level {
	case domain.NotifySuccess:
		return "✓"
	case domain.NotifyError:
		return "✗"
	default:
		return "•"
	}
}

func logNotification(n domain.Notification) {
	if n.Level == domain.NotifyError {
		glog.Warningf("[notify] %s: %s", n.Title, n.Message)
		return
	}
	glog.V(1).Infof("[notify] %s: %s", n.Title, n.Message)
}

// Recorder keeps notifications in memory.
type Recorder struct {
	mu   sync.Mutex
	seen []domain.Notification
}

var _ ports.Notifier = (*Recorder)(nil)

func (r *Recorder) Notify(n domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, n)
}

func (r *Recorder) All() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Notification(nil), r.seen...)
}

func (r *Recorder) Levels() []domain.NotificationLevel {
	r.mu.Lock()
	defer r.mu.Unlock()

	levels := make([]domain.NotificationLevel, 0, len(r.seen))
	for _, n := range r.seen {
		levels = append(levels, n.Level)
	}
	return levels
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = nil
}
