// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "fmt"

// ErrorCode identifies a kind of consensus-rule violation raised by this
// package. Callers can compare against these values (via errors.As into a
// RuleError) instead of matching on error strings.
type ErrorCode int

const (
	// ErrStakeTimeViolation indicates a coinstake's timestamp precedes the
	// timestamp of the transaction it is spending.
	ErrStakeTimeViolation ErrorCode = iota

	// ErrMinAgeViolation indicates a coinstake attempts to spend a UTXO
	// younger than the network's stake_min_age.
	ErrMinAgeViolation

	// ErrKernelTargetNotMet indicates the coinstake's kernel hash exceeds
	// the stake-time-weighted target.
	ErrKernelTargetNotMet

	// ErrStakeModifierCheckpoint indicates a computed stake modifier
	// checksum disagrees with a hard-coded checkpoint for its height.
	ErrStakeModifierCheckpoint

	// ErrUnknownModifierSource indicates GetKernelStakeModifier was asked
	// to resolve a block hash the chain adapter does not know about.
	ErrUnknownModifierSource

	// ErrNotCoinstake indicates CheckProofOfStake was called on a
	// transaction that does not carry the coinstake marker.
	ErrNotCoinstake
)

// errorCodeStrings maps each ErrorCode to a human readable description.
var errorCodeStrings = map[ErrorCode]string{
	ErrStakeTimeViolation:      "ErrStakeTimeViolation",
	ErrMinAgeViolation:         "ErrMinAgeViolation",
	ErrKernelTargetNotMet:      "ErrKernelTargetNotMet",
	ErrStakeModifierCheckpoint: "ErrStakeModifierCheckpoint",
	ErrUnknownModifierSource:   "ErrUnknownModifierSource",
	ErrNotCoinstake:            "ErrNotCoinstake",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s, ok := errorCodeStrings[e]; ok {
		return s
	}
	return fmt.Sprintf("ErrorCode(%d)", int(e))
}

// RuleError identifies a rule violation raised by this package. It carries
// an ErrorCode so callers can programmatically distinguish violation kinds
// without parsing the description.
type RuleError struct {
	ErrorCode   ErrorCode
	Description string
}

// Error satisfies the error interface.
func (e RuleError) Error() string {
	return e.Description
}

// ruleError creates a RuleError given an ErrorCode and a description.
func ruleError(c ErrorCode, desc string) RuleError {
	return RuleError{ErrorCode: c, Description: desc}
}
