package service

import (
	"fmt"
	"math/rand/v2"
	"time"

	"exchange-ledger/internal/core/domain"
)

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ReferenceGenerator builds a candidate order reference. Candidates are not
// assumed unique; the ledger checks each one under its write lock.
type ReferenceGenerator func(direction domain.Direction, now time.Time) string

// NewReference formats PREFIX-TTTT-RRR where TTTT is the last four digits
// of the millisecond clock and RRR is three random base36 characters.
func NewReference(direction domain.Direction, now time.Time) string {
	suffix := make([]byte, 3)
	for i := range suffix {
		suffix[i] = base36[rand.IntN(len(base36))]
	}
	return fmt.Sprintf("%s-%04d-%s", direction.ReferencePrefix(), now.UnixMilli()%10000, suffix)
}
