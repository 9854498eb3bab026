// Package registration turns the raw entry log into seat availability.
package registration

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/gildedernacht/olymp/internal/model"
)

var errIncomplete = errors.New("public body needs roundId and userId")

// Decode converts raw entries into registrations.
// Entries that are not registrations are returned separately with the reason.
func Decode(entries []model.Entry) ([]model.Registration, []error) {
	regs := make([]model.Registration, 0, len(entries))
	var skipped []error

	for _, e := range entries {
		reg, err := model.RegistrationFromEntry(e)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		if reg.Public.RoundID == "" || reg.Public.UserID == "" {
			skipped = append(skipped, fmt.Errorf("entry %s: %w", e.EntryUID, errIncomplete))
			continue
		}
		regs = append(regs, reg)
	}

	return regs, skipped
}

type groupKey struct {
	round model.RoundID
	user  string
}

// Canonicalize collapses repeat entries so that each (round, user) pair keeps
// only its most recent entry, the one with the greatest sequence number.
// Equal sequence numbers are resolved in favour of the later position.
// The result is ordered by sequence, so canonicalizing it again is a no-op.
func Canonicalize(regs []model.Registration) []model.CanonicalRegistration {
	index := make(map[groupKey]int, len(regs))
	out := make([]model.CanonicalRegistration, 0, len(regs))

	for _, r := range regs {
		k := groupKey{round: r.Public.RoundID, user: r.Public.UserID}
		i, seen := index[k]
		if !seen {
			index[k] = len(out)
			out = append(out, model.CanonicalRegistration{Registration: r})
			continue
		}
		if r.Sequence >= out[i].Sequence {
			out[i].Registration = r
		}
	}

	slices.SortStableFunc(out, func(a, b model.CanonicalRegistration) int {
		return cmp.Or(
			cmp.Compare(a.Sequence, b.Sequence),
			cmp.Compare(a.Public.RoundID, b.Public.RoundID),
			cmp.Compare(a.Public.UserID, b.Public.UserID),
		)
	})

	return out
}

// Registrations unwraps canonical registrations back to plain ones
func Registrations(canonical []model.CanonicalRegistration) []model.Registration {
	regs := make([]model.Registration, len(canonical))
	for i, c := range canonical {
		regs[i] = c.Registration
	}
	return regs
}

// Active keeps the registrations that currently hold a seat
func Active(canonical []model.CanonicalRegistration) []model.CanonicalRegistration {
	active := make([]model.CanonicalRegistration, 0, len(canonical))
	for _, c := range canonical {
		if c.Active() {
			active = append(active, c)
		}
	}
	return active
}

// Holds reports whether a user currently holds a seat in a round
func Holds(canonical []model.CanonicalRegistration, round model.RoundID, userID string) bool {
	for _, c := range canonical {
		if c.Public.RoundID == round && c.Public.UserID == userID {
			return c.Active()
		}
	}
	return false
}
