package notify

import (
	"context"
	"errors"
	"fmt"

	"CovidPulse/internal/domain/models"
	drepo "CovidPulse/internal/domain/repository"
)

// Sink is a named notification destination.
type Sink struct {
	Name     string
	Notifier drepo.Notifier
}

// Fanout delivers every notification to all sinks in order. A failing or
// panicking sink does not prevent delivery to the others.
type Fanout struct {
	sinks []Sink
}

func NewFanout(sinks ...Sink) *Fanout {
	out := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s.Notifier != nil {
			out = append(out, s)
		}
	}
	return &Fanout{sinks: out}
}

var _ drepo.Notifier = (*Fanout)(nil)

// Notify returns the joined errors of all failed sinks, or nil.
func (f *Fanout) Notify(ctx context.Context, n models.Notification) error {
	var errs []error
	for _, s := range f.sinks {
		if err := deliver(ctx, s, n); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name, err))
		}
	}
	return errors.Join(errs...)
}

func deliver(ctx context.Context, s Sink, n models.Notification) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.Notifier.Notify(ctx, n)
}

// Names lists the configured sinks.
func (f *Fanout) Names() []string {
	names := make([]string, len(f.sinks))
	for i, s := range f.sinks {
		names[i] = s.Name
	}
	return names
}

func (f *Fanout) Close() error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.Notifier.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name, err))
		}
	}
	return errors.Join(errs...)
}
