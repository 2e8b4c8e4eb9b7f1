package obs

import (
	"context"
	"log/slog"
)

// LogNotifier writes notifications to the log instead of a mail or SMS
// gateway. Stands in until a real channel is wired up.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Send(_ context.Context, to string, template string, data any) error {
	if n.Logger != nil {
		n.Logger.Info("notification", "to", to, "template", template, "data", data)
	}
	return nil
}
