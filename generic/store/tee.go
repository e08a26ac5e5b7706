package store

import (
	"context"

	"github.com/warp/vacation-grant/generic"
)

// Tee records every grant into each ledger in turn, stopping at the first error.
func Tee(ledgers ...generic.GrantLedger) generic.GrantLedger {
	return tee(ledgers)
}

type tee []generic.GrantLedger

func (t tee) Record(ctx context.Context, g generic.Grant) error {
	for _, l := range t {
		if err := l.Record(ctx, g); err != nil {
			return err
		}
	}
	return nil
}
