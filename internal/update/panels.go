package update

import (
	"strings"

	"github.com/sandeepkv93/todod/internal/views"
)

const notificationLogSize = 40

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

// notify records a notification and, when enabled, forwards it to the
// desktop.
func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > notificationLogSize {
		m.Notifications = m.Notifications[len(m.Notifications)-notificationLogSize:]
	}
	if m.desktop && m.notifier != nil {
		if err := m.notifier.Send(n); err != nil {
			m.log.WithError(err).Debug("desktop notification failed")
		}
	}
}
