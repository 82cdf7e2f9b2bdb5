// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "fmt"

// ErrorCode identifies a kind of error the chain engine can return.
type ErrorCode int

const (
	// ErrDuplicateBlock indicates a block already exists in the store or
	// orphan pool.
	ErrDuplicateBlock ErrorCode = iota

	// ErrMissingParent indicates the header's previous block is not
	// known, so the header is held in the orphan pool.
	ErrMissingParent

	// ErrInvalidTimestamp indicates the header timestamp is not after
	// the median time of the preceding 11 blocks, or is too far in the
	// future.
	ErrInvalidTimestamp

	// ErrUnexpectedDifficulty indicates the header's difficulty bits do
	// not match the value the retarget rule requires.
	ErrUnexpectedDifficulty

	// ErrHighHash indicates the header's hash does not satisfy its
	// claimed difficulty target.
	ErrHighHash

	// ErrBadCheckpoint indicates the header conflicts with a hard-coded
	// checkpoint hash at the same height.
	ErrBadCheckpoint

	// ErrForkTooOld indicates a reorganize point lies before a block the
	// engine treats as final (older than a checkpoint).
	ErrForkTooOld

	// ErrRuleChecker indicates an injected RuleChecker rejected a
	// candidate header.
	ErrRuleChecker

	// ErrStore indicates the underlying Store returned an error while
	// serving a read or write the engine needed to make progress.
	ErrStore

	// ErrBadVersion indicates a candidate header carries a block version
	// the BIP34/66-style rolling supermajority tally has already
	// obsoleted.
	ErrBadVersion
)

var errorCodeStrings = map[ErrorCode]string{
	ErrDuplicateBlock:       "ErrDuplicateBlock",
	ErrMissingParent:        "ErrMissingParent",
	ErrInvalidTimestamp:     "ErrInvalidTimestamp",
	ErrUnexpectedDifficulty: "ErrUnexpectedDifficulty",
	ErrHighHash:             "ErrHighHash",
	ErrBadCheckpoint:        "ErrBadCheckpoint",
	ErrForkTooOld:           "ErrForkTooOld",
	ErrRuleChecker:          "ErrRuleChecker",
	ErrStore:                "ErrStore",
	ErrBadVersion:           "ErrBadVersion",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s, ok := errorCodeStrings[e]; ok {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// RuleError identifies an error due to a header violating the consensus
// rules of the chain engine. It carries the ErrorCode so callers can
// branch on the failure kind instead of parsing the message text.
type RuleError struct {
	ErrorCode   ErrorCode
	Description string
}

// Error satisfies the error interface.
func (e RuleError) Error() string {
	return e.Description
}

// ruleError creates a RuleError given a set of arguments.
func ruleError(c ErrorCode, desc string) RuleError {
	return RuleError{ErrorCode: c, Description: desc}
}

// AssertError identifies an error that indicates an internal code
// consistency issue and should be treated as a critical and unrecoverable
// error.
type AssertError string

// Error returns the assertion error as a human-readable string and
// satisfies the error interface.
func (e AssertError) Error() string {
	return "assertion failed: " + string(e)
}
