package importer

import (
	"github.com/hearthledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

// maxBatchRows bounds the quadratic candidate scan.
const maxBatchRows = 10000

// amountTolerance is the maximum difference between the magnitudes of
// two legs for them to still count as one transfer.
var amountTolerance = decimal.New(1, -2)

// maxDateDiffDays is the maximum number of days between the two legs of
// a transfer. Bank processing delays make same-day matching too strict.
const maxDateDiffDays = 3

// FindTransferCandidates scans all unordered pairs of rows for ones
// that look like the two legs of a transfer: opposite signs, different
// accounts, magnitudes within the tolerance and dates at most three
// days apart.
//
// The negative leg is always the From side of a candidate. One row may
// appear in several candidates, exclusivity is only enforced when a
// batch is committed.
func FindTransferCandidates(rows []Row) ([]TransferCandidate, error) {
	if len(rows) > maxBatchRows {
		return nil, ErrBatchTooLarge
	}

	candidates := make([]TransferCandidate, 0)

	for i := 0; i < len(rows); i++ {
		for j := i + 1; j < len(rows); j++ {
			candidate, ok := matchPair(i, j, rows[i], rows[j])
			if ok {
				candidates = append(candidates, candidate)
			}
		}
	}

	return candidates, nil
}

// matchPair checks one pair of rows against the transfer heuristic.
func matchPair(i, j int, a, b Row) (TransferCandidate, bool) {
	// One leg out, one leg in
	if a.Amount.Sign() == b.Amount.Sign() {
		return TransferCandidate{}, false
	}

	// A transfer within one account is meaningless
	if a.AccountID == b.AccountID {
		return TransferCandidate{}, false
	}

	if a.Amount.Abs().Sub(b.Amount.Abs()).Abs().GreaterThanOrEqual(amountTolerance) {
		return TransferCandidate{}, false
	}

	from, fromIndex, to, toIndex := a, i, b, j
	if a.Amount.Sign() > 0 {
		from, fromIndex, to, toIndex = b, j, a, i
	}

	diff := types.DaysBetween(from.Date, to.Date)
	if diff < -maxDateDiffDays || diff > maxDateDiffDays {
		return TransferCandidate{}, false
	}

	return TransferCandidate{
		FromIndex:    fromIndex,
		ToIndex:      toIndex,
		Amount:       to.Amount,
		DateDiffDays: diff,
	}, true
}
