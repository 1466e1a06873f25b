// Package notification sends desktop notifications through beeep. On
// macOS it uses terminal-notifier or AppleScript, on Linux D-Bus or
// notify-send, and on Windows the Windows Runtime COM API.
package notification

import (
	"fmt"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/zhubert/loom/internal/errors"
	"github.com/zhubert/loom/internal/logger"
)

// AppName is the title of every notification.
const AppName = "loom"

var notify = beeep.Notify

// SetNotifier replaces the delivery function, for tests.
func SetNotifier(fn func(title, message string, icon any) error) {
	notify = fn
}

// ResetNotifier restores beeep delivery.
func ResetNotifier() {
	notify = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	logger.Debug("Notification: Sending notification - title=%q, message=%q", title, message)
	err := notify(title, message, "")
	if err != nil {
		logger.Warn("Notification: Failed to send notification: %v", err)
	}
	return err
}

// CommandFinished reports a long running console command.
func CommandFinished(command string, elapsed time.Duration, err error) error {
	msg := fmt.Sprintf("%s finished in %s", command, elapsed.Round(time.Second))
	if err != nil {
		msg = fmt.Sprintf("%s failed after %s: %s", command, elapsed.Round(time.Second), errors.Message(err))
	}
	return Send(AppName, msg)
}
