// Copyright (c) 2015-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "fmt"

const (
	// maxScriptNumLen is the maximum number of bytes data being
	// interpreted as an integer may be for the majority of op codes.
	maxScriptNumLen = 4

	// cltvMaxScriptNumLen is the maximum script number length allowed
	// for OP_CHECKLOCKTIMEVERIFY and OP_CHECKSEQUENCEVERIFY, which allow
	// 5-byte integers so that every unsigned 32-bit locktime or sequence
	// value fits.
	cltvMaxScriptNumLen = 5
)

// scriptNum represents a numeric value used in the scripting engine with
// special handling to deal with the subtle semantics required by consensus.
//
// All numbers are stored on the stack as little endian sign-magnitude
// values. The last (most significant) byte of the encoding, when masked with
// 0x80, is used to indicate the sign: a 1 indicates negative and a 0
// indicates positive.
//
// Due to this sign bit, the maximum effective value that can be represented
// in a given number of bytes is (2 ^ (8*numBytes-1)) - 1. The encoding also
// requires that when the most significant byte would have its high bit set
// as part of the magnitude, an extra byte (0x00, or 0x80 for a negative
// number) is appended so that the high bit is only ever used for the sign.
type scriptNum int64

// checkMinimalDataEncoding returns whether or not the passed byte array
// adheres to the minimal encoding requirements.
func checkMinimalDataEncoding(v []byte) error {
	if len(v) == 0 {
		return nil
	}

	// Check that the number is encoded with the minimum possible number
	// of bytes.
	//
	// If the most-significant-byte - excluding the sign bit - is zero,
	// then we're not minimal. Note how this test also rejects the
	// negative-zero encoding, 0x80.
	if v[len(v)-1]&0x7f == 0 {
		// One exception: if there's more than one byte and the most
		// significant bit of the second-to-last byte is set, it
		// would conflict with the sign bit, so a single extra byte
		// is required to hold the value.
		if len(v) == 1 || v[len(v)-2]&0x80 == 0 {
			return scriptError(ErrMinimalData,
				"numeric value encoded as 0x"+
					hexEncode(v)+" is not minimally encoded")
		}
	}

	return nil
}

func hexEncode(v []byte) string {
	const hexdigits = "0123456789abcdef"
	out := make([]byte, len(v)*2)
	for i, b := range v {
		out[i*2] = hexdigits[b>>4]
		out[i*2+1] = hexdigits[b&0x0f]
	}
	return string(out)
}

// MakeScriptNum interprets the passed serialized bytes as an encoded integer
// and returns the result as a script number.
//
// Since the consensus rules dictate that serialized bytes interpreted as an
// integer can be sign extended to any length greater than the original
// length, the caller must specify the maximum number of bytes the encoded
// value can be so the code knows how much is too much. If a caller passes an
// encoded value that exceeds this limit, the failure will be ErrNumberTooBig.
//
// When the requireMinimal flag is set, the function will only accept
// canonically-encoded data. Otherwise non-canonical data is accepted with
// the caveat that it can result in a larger number than would otherwise be
// possible.
func MakeScriptNum(serialized []byte, requireMinimal bool, scriptNumLen int) (scriptNum, error) {
	// Interpreting a negative zero as zero is valid, however a negative
	// zero cannot be created while maintaining the minimal encoding
	// rule, so this is only applicable for requireMinimal equal to false.
	if len(serialized) > scriptNumLen {
		return 0, scriptError(ErrNumberTooBig,
			"numeric value encoded as "+hexEncode(serialized)+
				" is longer than the max allowed size of "+
				fmt.Sprintf("%d", scriptNumLen))
	}

	if requireMinimal {
		if err := checkMinimalDataEncoding(serialized); err != nil {
			return 0, err
		}
	}

	if len(serialized) == 0 {
		return 0, nil
	}

	var result int64
	for i, val := range serialized {
		result |= int64(val) << uint8(8*i)
	}

	// When the most significant byte of the input bytes has the sign bit
	// set, the result is negative. So, remove the sign bit which is
	// part of the most significant byte and make the result negative.
	if serialized[len(serialized)-1]&0x80 != 0 {
		// The maximum length of v has already been determined to be
		// at most 8 bytes, so result will not overflow here.
		result &= ^(int64(0x80) << uint8(8*(len(serialized)-1)))
		return scriptNum(-result), nil
	}

	return scriptNum(result), nil
}

// Bytes returns the number serialized as a little endian sign-magnitude
// byte array.
func (n scriptNum) Bytes() []byte {
	// Zero encodes as an empty byte slice.
	if n == 0 {
		return nil
	}

	// Take the absolute value and keep track of whether it was originally
	// negative.
	isNegative := n < 0
	if isNegative {
		n = -n
	}

	// Encode to little endian. The maximum number of encoded bytes is
	// effectively the size of the number plus the sign byte.
	result := make([]byte, 0, 9)
	for n > 0 {
		result = append(result, byte(n&0xff))
		n >>= 8
	}

	// When the most significant byte already has the high bit set, an
	// additional high byte is required to indicate whether the number is
	// negative or positive. The additional byte is removed when it's
	// not needed.
	if result[len(result)-1]&0x80 != 0 {
		extraByte := byte(0x00)
		if isNegative {
			extraByte = 0x80
		}
		result = append(result, extraByte)
	} else if isNegative {
		result[len(result)-1] |= 0x80
	}

	return result
}

// Int32 returns the script number clamped to a valid int32. That is to say
// when the script number is higher than the max allowed int32, the max
// int32 value is returned and vice versa for the minimum value. Not that
// this behavior is different from a simple int32 cast because that truncates
// and the consensus rules dictate numbers which are directly cast to int32
// are only allowed in specific circumstances.
func (n scriptNum) Int32() int32 {
	if n > maxInt32 {
		return maxInt32
	}

	if n < minInt32 {
		return minInt32
	}

	return int32(n)
}

const (
	maxInt32 = 1<<31 - 1
	minInt32 = -1 << 31
)
