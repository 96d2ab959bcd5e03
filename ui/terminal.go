package ui

import (
	"context"

	"github.com/nsf/termbox-go"
	"golang.org/x/sync/errgroup"
)

// EventSource is a blocking terminal event stream. Interrupt must make a
// pending or the next Poll return an EventInterrupt event, and may block until
// it does.
type EventSource struct {
	Poll      func() termbox.Event
	Interrupt func()
}

// TermboxEvents reads events from the initialized termbox terminal
func TermboxEvents() EventSource {
	return EventSource{
		Poll:      termbox.PollEvent,
		Interrupt: termbox.Interrupt,
	}
}

// RunTerminal runs session against the event stream from source until the
// session ends or ctx is done
func RunTerminal(ctx context.Context, session *Session, source EventSource) error {
	eg, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)
	events := make(chan termbox.Event)

	eg.Go(func() error {
		return pumpEvents(ctx, source.Poll, events)
	})
	eg.Go(func() error {
		// cancel first: Interrupt blocks until the pump is back in Poll
		defer source.Interrupt()
		defer cancel()
		return session.Run(ctx, events)
	})

	return eg.Wait()
}

// pumpEvents forwards polled events until an interrupt arrives. Once ctx is
// done events are dropped instead of forwarded, so the pump always gets back
// to poll to receive the interrupt.
func pumpEvents(ctx context.Context, poll func() termbox.Event, events chan<- termbox.Event) error {
	for {
		ev := poll()
		if ev.Type == termbox.EventInterrupt {
			return nil
		}
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	}
}
