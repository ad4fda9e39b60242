// Package notify renders check-in reports and delivers them to the
// configured channels.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"

	"forum-checkin/internal/runner"
)

// Notifier delivers a message to one channel.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// Writer mirrors notifications to a writer, usually stdout.
type Writer struct {
	W io.Writer
}

func (w Writer) Notify(_ context.Context, _, body string) error {
	_, err := fmt.Fprintln(w.W, body)
	return err
}

// Multi sends to every notifier, one failing does not stop the others.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, title, body string) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, title, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Deliver formats the report and hands it to the notifier. Nothing is sent
// for an empty report, the returned bool tells if a notification went out.
func Deliver(ctx context.Context, n Notifier, report runner.Report) (bool, error) {
	body := Format(report)
	if body == "" {
		return false, nil
	}
	err := n.Notify(ctx, Title, body)
	if err != nil {
		return true, fmt.Errorf("notify: %w", err)
	}
	return true, nil
}
