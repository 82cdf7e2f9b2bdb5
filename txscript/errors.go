// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "fmt"

// ErrorCode identifies a kind of script error, as described in
// txscript/doc.go's package overview.
type ErrorCode int

const (
	// ErrInternal is returned if an internal error occurs during script
	// execution such as running out of stack or index space.
	ErrInternal ErrorCode = iota

	// ErrInvalidFlags identifies an invalid combination of verify flags.
	// CorrectlySpends does not validate flag combinations and does not
	// return it.
	ErrInvalidFlags

	// ErrInvalidIndex is returned when an out-of-bounds input index is
	// passed to a function expecting one that is in range.
	ErrInvalidIndex

	// ErrUnsupportedAddress is returned when a concrete address is not
	// one supported by the script engine's pay-to template matching.
	ErrUnsupportedAddress

	// ErrNotMultisigScript is returned when a script that does not
	// match the standard multisig pattern is submitted to a function
	// that expects one.
	ErrNotMultisigScript

	// ErrTooManyRequiredSigs is returned when a multisig script has a
	// required-signature count that exceeds the allowed maximum.
	ErrTooManyRequiredSigs

	// ErrTooManyPubKeys is returned when a multisig script has more than
	// the allowed maximum number of public keys.
	ErrTooManyPubKeys

	// ErrTooMuchNullData is returned when attempting to build a null
	// data script that has too much data.
	ErrTooMuchNullData

	// -- Parsing and general execution errors.

	// ErrScriptTooBig is returned when the script exceeds the maximum
	// allowed size (10,000 bytes).
	ErrScriptTooBig

	// ErrMalformedPush is returned when a parsed opcode that pushes data
	// specifies a length larger than the number of bytes remaining in
	// the script.
	ErrMalformedPush

	// ErrElementTooBig is returned when attempting to push a data
	// element onto the stack that exceeds the maximum allowed size
	// (520 bytes).
	ErrElementTooBig

	// ErrTooManyOperations is returned when a script exceeds the
	// maximum allowed operation count (201).
	ErrTooManyOperations

	// ErrStackOverflow is returned when the combined size of the data
	// and alt stacks exceeds the maximum allowed depth (1000).
	ErrStackOverflow

	// ErrInvalidPubKeyCount is returned when the number of public keys
	// specified to OP_CHECKMULTISIG is negative or exceeds 20.
	ErrInvalidPubKeyCount

	// ErrInvalidSignatureCount is returned when the number of
	// signatures specified to OP_CHECKMULTISIG is negative or exceeds
	// the number of public keys.
	ErrInvalidSignatureCount

	// ErrNumberTooBig is returned when the argument for an opcode that
	// expects numeric data overflows the expected type.
	ErrNumberTooBig

	// -- Push evaluation errors.

	// ErrEvalFalse is returned when the script evaluated without any
	// apparent errors but the top item on the stack evaluates to false.
	ErrEvalFalse

	// ErrVerify is returned when OP_VERIFY is encountered and the top of
	// the stack evaluates to false.
	ErrVerify

	// ErrEqualVerify is returned when OP_EQUALVERIFY is encountered and
	// the top items on the stack are not equal.
	ErrEqualVerify

	// ErrNumEqualVerify is returned when OP_NUMEQUALVERIFY is
	// encountered and the top items on the stack are not equal.
	ErrNumEqualVerify

	// ErrCheckSigVerify is returned when OP_CHECKSIGVERIFY is
	// encountered and the signature check fails.
	ErrCheckSigVerify

	// ErrCheckMultiSigVerify is returned when OP_CHECKMULTISIGVERIFY is
	// encountered and the signature check fails.
	ErrCheckMultiSigVerify

	// -- Stack and conditional errors.

	// ErrInvalidStackOperation is returned when an opcode attempts to
	// read beyond the bounds of the main or alt stack.
	ErrInvalidStackOperation

	// ErrUnbalancedConditional is returned when an OP_ELSE or OP_ENDIF
	// is encountered without a matching OP_IF/OP_NOTIF, or the script
	// ends with unterminated conditionals.
	ErrUnbalancedConditional

	// -- Opcode-specific errors.

	// ErrMinimalData is returned when a numeric operand popped from the
	// stack is not minimally encoded. The engine enforces this regardless
	// of ScriptVerifyMinimalData.
	ErrMinimalData

	// ErrInvalidSigHashType is returned when a signature hash type is
	// not one of the supported types.
	ErrInvalidSigHashType

	// ErrSigTooShort is returned when a signature that is being verified
	// is shorter than 9 bytes.
	ErrSigTooShort

	// ErrSigTooLong is returned when a signature that is being verified
	// is longer than the maximum allowed encoding.
	ErrSigTooLong

	// ErrSigInvalidSeqID is returned when a signature that is being
	// verified does not start with the correct sequence ID.
	ErrSigInvalidSeqID

	// ErrSigInvalidDataLen is returned when a signature that is being
	// verified has a data length that does not match the actual length
	// of the remaining data.
	ErrSigInvalidDataLen

	// ErrSigMissingSTypeID is returned when a signature that is being
	// verified is missing the mandatory 0x02 R-value integer id.
	ErrSigMissingSTypeID

	// ErrSigMissingSLen is returned when a signature that is being
	// verified is missing the length of S.
	ErrSigMissingSLen

	// ErrSigInvalidSLen is returned when a signature that is being
	// verified has an S length that does not match the actual length of
	// the S value.
	ErrSigInvalidSLen

	// ErrSigInvalidRIntID is returned when a signature that is being
	// verified does not have the mandatory 0x02 R integer id.
	ErrSigInvalidRIntID

	// ErrSigZeroRLen is returned when a signature that is being
	// verified has an R length of zero.
	ErrSigZeroRLen

	// ErrSigNegativeR is returned when a signature that is being
	// verified has a negative value for R.
	ErrSigNegativeR

	// ErrSigTooMuchRPadding is returned when a signature that is being
	// verified has too much padding for R.
	ErrSigTooMuchRPadding

	// ErrSigZeroSLen is returned when a signature that is being
	// verified has an S length of zero.
	ErrSigZeroSLen

	// ErrSigNegativeS is returned when a signature that is being
	// verified has a negative value for S.
	ErrSigNegativeS

	// ErrSigTooMuchSPadding is returned when a signature that is being
	// verified has too much padding for S.
	ErrSigTooMuchSPadding

	// ErrSigHighS identifies a signature with an S value that is higher
	// than the half order. This package defines no low-S verify flag and
	// does not return it.
	ErrSigHighS

	// ErrNotPushOnly is returned when a script that is required to
	// only push data to the stack performs other operations, in
	// particular when evaluating a P2SH scriptSig.
	ErrNotPushOnly

	// ErrPubKeyType identifies an invalidly encoded public key. This
	// package defines no strict-encoding verify flag and does not return
	// it; a public key that fails to parse makes the signature check false.
	ErrPubKeyType

	// ErrCleanStack identifies a main stack that does not consist of
	// exactly one item when script execution has completed. This package
	// defines no clean-stack verify flag and does not return it.
	ErrCleanStack

	// ErrDiscourageUpgradableNOPs is returned when the
	// ScriptDiscourageUpgradableNops flag is set and a NOP opcode is
	// encountered.
	ErrDiscourageUpgradableNOPs

	// ErrNegativeLockTime is returned when a candidate locktime or
	// sequence provided to OP_CHECKLOCKTIMEVERIFY/OP_CHECKSEQUENCEVERIFY
	// is negative.
	ErrNegativeLockTime

	// ErrUnsatisfiedLockTime is returned when the input's locktime or
	// sequence has not reached the required threshold to spend.
	ErrUnsatisfiedLockTime

	// -- Specific opcode errors.

	// ErrOpReturn is returned when OP_RETURN is executed.
	ErrOpReturn

	// ErrReservedOpcode is returned when an opcode marked as reserved is
	// encountered, such as OP_VERIF and OP_VERNOTIF, which fail
	// unconditionally even when the branch is not executed.
	ErrReservedOpcode

	// ErrMalformedOpcode is returned when an opcode that pushes a
	// value whose length would run past the end of the script is
	// encountered.
	ErrMalformedOpcode

	// ErrDisabledOpcode is returned when a disabled opcode is
	// encountered, whether or not its containing branch is executed.
	ErrDisabledOpcode

	// numErrorCodes is the number of error codes defined above.
	numErrorCodes
)

var errorCodeStrings = map[ErrorCode]string{
	ErrInternal:                  "ErrInternal",
	ErrInvalidFlags:              "ErrInvalidFlags",
	ErrInvalidIndex:              "ErrInvalidIndex",
	ErrUnsupportedAddress:        "ErrUnsupportedAddress",
	ErrNotMultisigScript:         "ErrNotMultisigScript",
	ErrTooManyRequiredSigs:       "ErrTooManyRequiredSigs",
	ErrTooManyPubKeys:            "ErrTooManyPubKeys",
	ErrTooMuchNullData:           "ErrTooMuchNullData",
	ErrScriptTooBig:              "ErrScriptTooBig",
	ErrMalformedPush:             "ErrMalformedPush",
	ErrElementTooBig:             "ErrElementTooBig",
	ErrTooManyOperations:         "ErrTooManyOperations",
	ErrStackOverflow:             "ErrStackOverflow",
	ErrInvalidPubKeyCount:        "ErrInvalidPubKeyCount",
	ErrInvalidSignatureCount:     "ErrInvalidSignatureCount",
	ErrNumberTooBig:              "ErrNumberTooBig",
	ErrEvalFalse:                 "ErrEvalFalse",
	ErrVerify:                    "ErrVerify",
	ErrEqualVerify:               "ErrEqualVerify",
	ErrNumEqualVerify:            "ErrNumEqualVerify",
	ErrCheckSigVerify:            "ErrCheckSigVerify",
	ErrCheckMultiSigVerify:       "ErrCheckMultiSigVerify",
	ErrInvalidStackOperation:     "ErrInvalidStackOperation",
	ErrUnbalancedConditional:     "ErrUnbalancedConditional",
	ErrMinimalData:               "ErrMinimalData",
	ErrInvalidSigHashType:        "ErrInvalidSigHashType",
	ErrSigTooShort:               "ErrSigTooShort",
	ErrSigTooLong:                "ErrSigTooLong",
	ErrSigInvalidSeqID:           "ErrSigInvalidSeqID",
	ErrSigInvalidDataLen:         "ErrSigInvalidDataLen",
	ErrSigMissingSTypeID:         "ErrSigMissingSTypeID",
	ErrSigMissingSLen:            "ErrSigMissingSLen",
	ErrSigInvalidSLen:            "ErrSigInvalidSLen",
	ErrSigInvalidRIntID:          "ErrSigInvalidRIntID",
	ErrSigZeroRLen:               "ErrSigZeroRLen",
	ErrSigNegativeR:              "ErrSigNegativeR",
	ErrSigTooMuchRPadding:        "ErrSigTooMuchRPadding",
	ErrSigZeroSLen:               "ErrSigZeroSLen",
	ErrSigNegativeS:              "ErrSigNegativeS",
	ErrSigTooMuchSPadding:        "ErrSigTooMuchSPadding",
	ErrSigHighS:                  "ErrSigHighS",
	ErrNotPushOnly:               "ErrNotPushOnly",
	ErrPubKeyType:                "ErrPubKeyType",
	ErrCleanStack:                "ErrCleanStack",
	ErrDiscourageUpgradableNOPs:  "ErrDiscourageUpgradableNOPs",
	ErrNegativeLockTime:          "ErrNegativeLockTime",
	ErrUnsatisfiedLockTime:       "ErrUnsatisfiedLockTime",
	ErrOpReturn:                  "ErrOpReturn",
	ErrReservedOpcode:            "ErrReservedOpcode",
	ErrMalformedOpcode:           "ErrMalformedOpcode",
	ErrDisabledOpcode:            "ErrDisabledOpcode",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s, ok := errorCodeStrings[e]; ok {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error identifies a script execution failure. It implements the error
// interface and carries an ErrorCode so callers can branch on the failure
// kind programmatically, per the convention described in doc.go.
type Error struct {
	ErrorCode   ErrorCode
	Description string
}

// Error satisfies the error interface.
func (e Error) Error() string {
	return e.Description
}

// scriptError creates a script Error given a set of arguments.
func scriptError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

// IsErrorCode returns whether or not the provided error is a script Error
// with the given ErrorCode.
func IsErrorCode(err error, c ErrorCode) bool {
	var serr Error
	ok := asScriptError(err, &serr)
	return ok && serr.ErrorCode == c
}

func asScriptError(err error, target *Error) bool {
	serr, ok := err.(Error)
	if ok {
		*target = serr
	}
	return ok
}
