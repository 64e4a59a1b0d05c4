package tripcounter

import (
	"cmp"
)

// TripCounter counts the amount of trips that fall in each category (a station, a month, a user type...)
// + counters: amount of trips per category
// + order: categories in the order they were first seen
type TripCounter[K comparable] struct {
	counters map[K]int
	order    []K
}

func NewTripCounter[K comparable]() *TripCounter[K] {
	return &TripCounter[K]{
		counters: make(map[K]int),
	}
}

// UpdateCounter adds one trip to the given category
func (tc *TripCounter[K]) UpdateCounter(key K) {
	if _, ok := tc.counters[key]; !ok {
		tc.order = append(tc.order, key)
	}
	tc.counters[key] += 1
}

// Counts returns a copy of the counters
func (tc *TripCounter[K]) Counts() map[K]int {
	counts := make(map[K]int, len(tc.counters))
	for key, counter := range tc.counters {
		counts[key] = counter
	}
	return counts
}

// ModeFirstSeen returns the most frequent category. Ties are won by the category seen first.
// ok is false when nothing was counted.
func (tc *TripCounter[K]) ModeFirstSeen() (mode K, counter int, ok bool) {
	for _, key := range tc.order {
		if tc.counters[key] > counter {
			mode = key
			counter = tc.counters[key]
			ok = true
		}
	}
	return mode, counter, ok
}

// ModeLowest returns the most frequent category of an ordered counter. Ties are won by the lowest category.
// ok is false when nothing was counted.
func ModeLowest[K cmp.Ordered](tc *TripCounter[K]) (mode K, counter int, ok bool) {
	for key, c := range tc.counters {
		if !ok || c > counter || (c == counter && key < mode) {
			mode = key
			counter = c
			ok = true
		}
	}
	return mode, counter, ok
}
