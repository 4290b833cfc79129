package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/traffichub/internal/client/gate"
	"github.com/dmitrijs2005/traffichub/internal/logging"
)

const navBuffer = 8

// navigator hands navigation requests from view goroutines to the shell.
type navigator struct {
	ch  chan gate.View
	log logging.Logger
}

func newNavigator(log logging.Logger) *navigator {
	return &navigator{ch: make(chan gate.View, navBuffer), log: log}
}

// Navigate never blocks; a request is dropped when the shell is that far behind.
func (n *navigator) Navigate(v gate.View) {
	select {
	case n.ch <- v:
	default:
		n.log.Warn(context.Background(), "navigation request dropped", "view", string(v))
	}
}

// pending returns the oldest queued request without waiting.
func (n *navigator) pending() (gate.View, bool) {
	select {
	case v := <-n.ch:
		return v, true
	default:
		return "", false
	}
}

// wait blocks for the next request up to d.
func (n *navigator) wait(ctx context.Context, d time.Duration) (gate.View, bool) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case v := <-n.ch:
		return v, true
	case <-t.C:
	case <-ctx.Done():
	}
	return "", false
}
