// Package ledger implements the profit-accounting core: replaying an ordered
// buy/sell history into a position with weighted-average cost basis, realized
// profit, and (given a market price) unrealized profit.
//
// Everything here is a pure function of its inputs. Persistence, price
// fetching, and HTTP live in the packages around it.
package ledger

import (
	"errors"
	"math"
	"sort"
	"time"
)

// Kind is the side of a ledger entry.
type Kind string

const (
	Buy  Kind = "buy"
	Sell Kind = "sell"
)

// quantityEpsilon absorbs float drift when fractional sells exhaust a position.
const quantityEpsilon = 1e-9

var (
	// ErrInvalidEntry reports an entry with a non-positive quantity or price,
	// or an unknown kind.
	ErrInvalidEntry = errors.New("ledger: entry must be a buy or sell with positive quantity and unit price")

	// ErrInsufficientShares reports a sell that would drive held shares
	// negative. Histories are validated on write, but replay re-checks so an
	// externally supplied history cannot corrupt a position.
	ErrInsufficientShares = errors.New("ledger: sell quantity exceeds held shares")
)

// Entry is one buy or sell to replay. UnitPrice is cents per share.
type Entry struct {
	ID         string
	Kind       Kind
	Quantity   float64
	UnitPrice  int64
	ExecutedAt time.Time
}

// Position is the state of one symbol after replaying its history.
// AverageCost is cents per share and only meaningful while Shares > 0; it is
// recomputed on buys and untouched by sells. RealizedProfit is cents.
type Position struct {
	Shares         float64 `json:"shares"`
	AverageCost    float64 `json:"average_cost"`
	RealizedProfit int64   `json:"realized_profit"`
}

// Replay folds entries into a Position, oldest first. Entries that share an
// ExecutedAt keep their given order, so callers must supply the history in
// insertion order (the services read rows ordered by executed_at, then the
// time-ordered id).
func Replay(entries []Entry) (Position, error) {
	return fold(entries, nil)
}

// RunningEntry is an Entry annotated with the position state after applying it.
type RunningEntry struct {
	Entry
	SharesAfter      float64
	AverageCostAfter float64
	RealizedToDate   int64
}

// RunningTotals replays entries and reports the position after each one, in
// replay order. This is the view export consumers flatten into one row per
// transaction.
func RunningTotals(entries []Entry) ([]RunningEntry, error) {
	out := make([]RunningEntry, 0, len(entries))
	_, err := fold(entries, func(e Entry, after Position) {
		out = append(out, RunningEntry{
			Entry:            e,
			SharesAfter:      after.Shares,
			AverageCostAfter: after.AverageCost,
			RealizedToDate:   after.RealizedProfit,
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// fold is the single replay loop behind Replay and RunningTotals. visit, if
// non-nil, observes the position after each applied entry.
func fold(entries []Entry, visit func(e Entry, after Position)) (Position, error) {
	ordered := sortEntries(entries)

	var p Position
	var realized float64

	for _, e := range ordered {
		if e.Quantity <= 0 || e.UnitPrice <= 0 {
			return Position{}, ErrInvalidEntry
		}

		switch e.Kind {
		case Buy:
			price := float64(e.UnitPrice)
			// Weighted average over what we held plus what we bought. A buy
			// into an empty position starts a fresh basis at its own price.
			p.AverageCost = (p.AverageCost*p.Shares + price*e.Quantity) / (p.Shares + e.Quantity)
			p.Shares += e.Quantity

		case Sell:
			if e.Quantity > p.Shares+quantityEpsilon {
				return Position{}, ErrInsufficientShares
			}
			realized += e.Quantity * (float64(e.UnitPrice) - p.AverageCost)
			p.Shares -= e.Quantity
			if p.Shares < quantityEpsilon {
				p.Shares = 0
			}

		default:
			return Position{}, ErrInvalidEntry
		}

		if visit != nil {
			p.RealizedProfit = int64(math.Round(realized))
			visit(e, p)
		}
	}

	p.RealizedProfit = int64(math.Round(realized))
	return p, nil
}

// sortEntries returns a copy of entries stably sorted by ExecutedAt ascending.
// The input slice is never mutated; replay stays side-effect free.
func sortEntries(entries []Entry) []Entry {
	ordered := make([]Entry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ExecutedAt.Before(ordered[j].ExecutedAt)
	})
	return ordered
}
