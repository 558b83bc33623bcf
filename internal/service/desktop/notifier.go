package desktop

import (
	"context"
	"fmt"
	"os"

	"CovidPulse/internal/domain/models"
	drepo "CovidPulse/internal/domain/repository"
	xlogger "CovidPulse/pkg/logger"

	"github.com/gen2brain/beeep"
)

// Notifier shows notifications through the OS notification service.
//
// The display timeout carried by a notification is not applied: beeep leaves
// dismissal to the platform.
type Notifier struct {
	icon   string
	notify func(title, message string, icon any) error
}

// New creates a desktop notifier. An icon path that does not exist is
// dropped and notifications are shown without an icon.
func New(appName, iconPath string, logger *xlogger.Logger) drepo.Notifier {
	if appName != "" {
		beeep.AppName = appName
	}
	return &Notifier{icon: resolveIcon(iconPath, logger), notify: beeep.Notify}
}

func resolveIcon(path string, logger *xlogger.Logger) string {
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		logger.Warn("notification icon not found, continuing without it", xlogger.String("path", path))
		return ""
	}
	return path
}

func (n *Notifier) Notify(ctx context.Context, note models.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := n.notify(note.Title, note.Message, n.icon); err != nil {
		return fmt.Errorf("desktop notify: %w", err)
	}
	return nil
}

func (n *Notifier) Close() error { return nil }
