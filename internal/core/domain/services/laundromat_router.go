package services

import (
	"errors"
	"sort"
	"strings"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/domain/model/laundromat"
)

// ErrNoCoverage is returned when no active laundromat with remaining capacity
// serves the pickup postal code. It surfaces to the customer as an
// "outside service area" message; no order is created when routing fails.
var ErrNoCoverage = errors.New("no laundromat covers this postal code")

// LaundromatRouter is the domain service that resolves a pickup postal code
// to the laundromat that should take the order.
//
// Selection rules:
//   - Only active laundromats whose service area contains the postal code
//     are candidates
//   - Candidates are ranked by remaining capacity for the pickup date,
//     highest first
//   - Equal remaining capacity breaks ties by lowest laundromat ID, so
//     routing is deterministic across replicas
//   - Candidates with zero remaining capacity are skipped
//
// The router only ranks; the caller reserves a slot against the capacity
// ledger and falls through to the next candidate when a reservation loses
// a concurrent race.
type LaundromatRouter struct{}

// NewLaundromatRouter creates a LaundromatRouter instance.
func NewLaundromatRouter() LaundromatRouter {
	return LaundromatRouter{}
}

type routingCandidate struct {
	laundromat *laundromat.Laundromat
	remaining  int
}

// Rank returns the routing candidates for a postal code in reservation order.
// remaining maps laundromat ID strings to the day's remaining slots; a missing
// entry means the day is untouched and the full daily capacity remains.
// Returns ErrNoCoverage when no candidate has capacity left.
func (r LaundromatRouter) Rank(
	postalCode kernel.PostalCode,
	laundromats []*laundromat.Laundromat,
	remaining map[string]int,
) ([]*laundromat.Laundromat, error) {
	if err := postalCode.Validate(); err != nil {
		return nil, err
	}

	candidates := make([]routingCandidate, 0, len(laundromats))
	for _, l := range laundromats {
		if err := l.Validate(); err != nil {
			return nil, err
		}
		if !l.IsActive() || !l.Covers(postalCode) {
			continue
		}

		slots, tracked := remaining[l.ID().String()]
		if !tracked {
			slots = l.DailyCapacity()
		}
		if slots <= 0 {
			continue
		}

		candidates = append(candidates, routingCandidate{laundromat: l, remaining: slots})
	}

	if len(candidates) == 0 {
		return nil, ErrNoCoverage
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].remaining != candidates[j].remaining {
			return candidates[i].remaining > candidates[j].remaining
		}
		return strings.Compare(
			candidates[i].laundromat.ID().String(),
			candidates[j].laundromat.ID().String(),
		) < 0
	})

	ranked := make([]*laundromat.Laundromat, len(candidates))
	for i, c := range candidates {
		ranked[i] = c.laundromat
	}
	return ranked, nil
}

// Resolve returns the single best candidate, the head of Rank's ordering.
func (r LaundromatRouter) Resolve(
	postalCode kernel.PostalCode,
	laundromats []*laundromat.Laundromat,
	remaining map[string]int,
) (*laundromat.Laundromat, error) {
	ranked, err := r.Rank(postalCode, laundromats, remaining)
	if err != nil {
		return nil, err
	}
	return ranked[0], nil
}
