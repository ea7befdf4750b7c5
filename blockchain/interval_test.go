// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "testing"

// TestGetStakeModifierSelectionIntervalSection checks four of the 64 section
// lengths (rounds 0, 1, 32 and 63) against the section formula worked out
// for modifier_interval=10240, modifier_interval_ratio=3.
func TestGetStakeModifierSelectionIntervalSection(t *testing.T) {
	params := &TestNetParams

	tests := []struct {
		n    int
		want int64
	}{
		{0, 10240 * 63 / (63 + 63*2)},
		{1, 10240 * 63 / (63 + 62*2)},
		{32, 10240 * 63 / (63 + 31*2)},
		{63, 10240 * 63 / 63},
	}

	for _, test := range tests {
		got := getStakeModifierSelectionIntervalSection(params, test.n)
		if got != test.want {
			t.Errorf("getStakeModifierSelectionIntervalSection(%d) = %d, want %d",
				test.n, got, test.want)
		}
	}
}

// TestGetStakeModifierSelectionInterval checks the sum of all 64 sections
// is the sum of the individually computed section lengths (round-trip
// against the per-section formula, not a hardcoded magic total).
func TestGetStakeModifierSelectionInterval(t *testing.T) {
	params := &TestNetParams

	var want int64
	for n := 0; n < 64; n++ {
		want += getStakeModifierSelectionIntervalSection(params, n)
	}

	got := getStakeModifierSelectionInterval(params)
	if got != want {
		t.Errorf("getStakeModifierSelectionInterval() = %d, want %d", got, want)
	}
	if got <= 0 {
		t.Errorf("getStakeModifierSelectionInterval() = %d, want positive", got)
	}
}

// TestSelectionIntervalStart checks the anchored-window formula: the most
// recent modifier-interval boundary at or before prevTime, minus the full
// selection window.
func TestSelectionIntervalStart(t *testing.T) {
	params := &TestNetParams
	window := getStakeModifierSelectionInterval(params)

	prevTime := int64(123456789)
	want := prevTime/params.ModifierInterval*params.ModifierInterval - window

	got := selectionIntervalStart(params, prevTime)
	if got != want {
		t.Errorf("selectionIntervalStart(%d) = %d, want %d", prevTime, got, want)
	}
}
