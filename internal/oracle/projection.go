package oracle

import (
	"sort"
	"time"

	"github.com/clearlane/ownership-oracle/internal/domain"
)

// ownerAt returns the event deciding ownership at time t: the latest mint or
// transfer event with timestamp <= t. Events must already be in canonical log
// order. Returns nil when the asset did not exist at t.
func ownerAt(events []domain.OwnershipEvent, t time.Time) *domain.OwnershipEvent {
	var decider *domain.OwnershipEvent
	for i := range events {
		if events[i].Timestamp.After(t) {
			continue
		}
		if events[i].TransfersOwnership() {
			decider = &events[i]
		}
	}
	return decider
}

// contributingEvents returns the mint and transfer events with timestamp <= t
// that the ownership projection at t is built from
func contributingEvents(events []domain.OwnershipEvent, t time.Time) []domain.OwnershipEvent {
	var contributing []domain.OwnershipEvent
	for i := range events {
		if events[i].Timestamp.After(t) {
			continue
		}
		if events[i].TransfersOwnership() {
			contributing = append(contributing, events[i])
		}
	}
	return contributing
}

// encumbranceState pairs the pledge event that opened an encumbrance with the
// release event that closed it, if any
type encumbranceState struct {
	pledge  *domain.OwnershipEvent
	release *domain.OwnershipEvent
}

// projectEncumbrances folds pledge and release events into per-encumbrance
// state, keyed by encumbrance id. Events must be in canonical log order so
// the first pledge and first release per id win.
func projectEncumbrances(events []domain.OwnershipEvent) map[string]*encumbranceState {
	states := make(map[string]*encumbranceState)
	for i := range events {
		event := &events[i]
		if event.EncumbranceID == nil {
			continue
		}
		id := *event.EncumbranceID

		switch event.EventType {
		case domain.EventTypePledge:
			if _, ok := states[id]; !ok {
				states[id] = &encumbranceState{pledge: event}
			}
		case domain.EventTypeRelease:
			state, ok := states[id]
			if !ok {
				// Release for a pledge outside this event window
				states[id] = &encumbranceState{release: event}
				continue
			}
			if state.release == nil {
				state.release = event
			}
		}
	}
	return states
}

// activeEncumbrances returns the encumbrances that are open as of the end of
// the event window: pledged, with full terms, and not released
func activeEncumbrances(events []domain.OwnershipEvent) []domain.Encumbrance {
	states := projectEncumbrances(events)

	var active []domain.Encumbrance
	for _, state := range states {
		if state.pledge == nil || state.release != nil || state.pledge.Encumbrance == nil {
			continue
		}
		enc := *state.pledge.Encumbrance
		enc.IsActive = true
		active = append(active, enc)
	}
	sortEncumbrances(active)
	return active
}

// activeEncumbrancesAt returns the encumbrances active at time t: pledged at
// or before t, not released at or before t, and not yet matured at t
func activeEncumbrancesAt(events []domain.OwnershipEvent, t time.Time) []domain.Encumbrance {
	states := projectEncumbrances(events)

	var active []domain.Encumbrance
	for _, state := range states {
		if state.pledge == nil || state.pledge.Encumbrance == nil {
			continue
		}
		if state.pledge.Timestamp.After(t) {
			continue
		}
		if state.release != nil && !state.release.Timestamp.After(t) {
			continue
		}
		enc := *state.pledge.Encumbrance
		if !enc.MaturityTime.IsZero() && !enc.MaturityTime.After(t) {
			continue
		}
		enc.IsActive = true
		active = append(active, enc)
	}
	sortEncumbrances(active)
	return active
}

// sortEncumbrances orders encumbrances by start time, then id, so projections
// are deterministic regardless of map iteration order
func sortEncumbrances(encumbrances []domain.Encumbrance) {
	sort.Slice(encumbrances, func(i, j int) bool {
		if !encumbrances[i].StartTime.Equal(encumbrances[j].StartTime) {
			return encumbrances[i].StartTime.Before(encumbrances[j].StartTime)
		}
		return encumbrances[i].EncumbranceID < encumbrances[j].EncumbranceID
	})
}

// locationChains collects the distinct chains referenced by the events, in
// first-seen order
func locationChains(events []domain.OwnershipEvent) []domain.Chain {
	seen := make(map[domain.Chain]bool)
	var chains []domain.Chain
	for i := range events {
		if events[i].Chain == "" || seen[events[i].Chain] {
			continue
		}
		seen[events[i].Chain] = true
		chains = append(chains, events[i].Chain)
	}
	return chains
}

// anyFlagged reports whether any event with timestamp <= t is dispute-flagged
func anyFlagged(events []domain.OwnershipEvent, t time.Time) bool {
	for i := range events {
		if !events[i].Timestamp.After(t) && events[i].IsFlagged {
			return true
		}
	}
	return false
}

// minConsensus returns the lowest consensus level among the given events, or
// 0 when the list is empty
func minConsensus(events []domain.OwnershipEvent) int {
	if len(events) == 0 {
		return 0
	}
	lowest := events[0].ConsensusLevel
	for i := 1; i < len(events); i++ {
		if events[i].ConsensusLevel < lowest {
			lowest = events[i].ConsensusLevel
		}
	}
	return lowest
}
