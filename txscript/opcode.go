// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "fmt"

// These constants are the byte values of the script opcodes. OP_DATA_1 and
// OP_DATA_75 bound the direct pushes, whose opcode byte is itself the
// number of data bytes that follow; the opcodes between them are named by
// the table below rather than by a constant.
const (
	OP_0       = 0x00
	OP_FALSE   = 0x00
	OP_DATA_1  = 0x01
	OP_DATA_75 = 0x4b

	OP_PUSHDATA1 = 0x4c
	OP_PUSHDATA2 = 0x4d
	OP_PUSHDATA4 = 0x4e
	OP_1NEGATE   = 0x4f
	OP_RESERVED  = 0x50
	OP_1         = 0x51
	OP_TRUE      = 0x51
	OP_2         = 0x52
	OP_3         = 0x53
	OP_4         = 0x54
	OP_5         = 0x55
	OP_6         = 0x56
	OP_7         = 0x57
	OP_8         = 0x58
	OP_9         = 0x59
	OP_10        = 0x5a
	OP_11        = 0x5b
	OP_12        = 0x5c
	OP_13        = 0x5d
	OP_14        = 0x5e
	OP_15        = 0x5f
	OP_16        = 0x60

	OP_NOP      = 0x61
	OP_VER      = 0x62
	OP_IF       = 0x63
	OP_NOTIF    = 0x64
	OP_VERIF    = 0x65
	OP_VERNOTIF = 0x66
	OP_ELSE     = 0x67
	OP_ENDIF    = 0x68
	OP_VERIFY   = 0x69
	OP_RETURN   = 0x6a

	OP_TOALTSTACK   = 0x6b
	OP_FROMALTSTACK = 0x6c
	OP_2DROP        = 0x6d
	OP_2DUP         = 0x6e
	OP_3DUP         = 0x6f
	OP_2OVER        = 0x70
	OP_2ROT         = 0x71
	OP_2SWAP        = 0x72
	OP_IFDUP        = 0x73
	OP_DEPTH        = 0x74
	OP_DROP         = 0x75
	OP_DUP          = 0x76
	OP_NIP          = 0x77
	OP_OVER         = 0x78
	OP_PICK         = 0x79
	OP_ROLL         = 0x7a
	OP_ROT          = 0x7b
	OP_SWAP         = 0x7c
	OP_TUCK         = 0x7d

	OP_CAT    = 0x7e
	OP_SUBSTR = 0x7f
	OP_LEFT   = 0x80
	OP_RIGHT  = 0x81
	OP_SIZE   = 0x82

	OP_INVERT = 0x83
	OP_AND    = 0x84
	OP_OR     = 0x85
	OP_XOR    = 0x86

	OP_EQUAL       = 0x87
	OP_EQUALVERIFY = 0x88

	OP_1ADD               = 0x8b
	OP_1SUB               = 0x8c
	OP_2MUL               = 0x8d
	OP_2DIV               = 0x8e
	OP_NEGATE             = 0x8f
	OP_ABS                = 0x90
	OP_NOT                = 0x91
	OP_0NOTEQUAL          = 0x92
	OP_ADD                = 0x93
	OP_SUB                = 0x94
	OP_MUL                = 0x95
	OP_DIV                = 0x96
	OP_MOD                = 0x97
	OP_LSHIFT             = 0x98
	OP_RSHIFT             = 0x99
	OP_BOOLAND            = 0x9a
	OP_BOOLOR             = 0x9b
	OP_NUMEQUAL           = 0x9c
	OP_NUMEQUALVERIFY     = 0x9d
	OP_NUMNOTEQUAL        = 0x9e
	OP_LESSTHAN           = 0x9f
	OP_GREATERTHAN        = 0xa0
	OP_LESSTHANOREQUAL    = 0xa1
	OP_GREATERTHANOREQUAL = 0xa2
	OP_MIN                = 0xa3
	OP_MAX                = 0xa4
	OP_WITHIN             = 0xa5

	OP_RIPEMD160           = 0xa6
	OP_SHA1                = 0xa7
	OP_SHA256              = 0xa8
	OP_HASH160             = 0xa9
	OP_HASH256             = 0xaa
	OP_CODESEPARATOR       = 0xab
	OP_CHECKSIG            = 0xac
	OP_CHECKSIGVERIFY      = 0xad
	OP_CHECKMULTISIG       = 0xae
	OP_CHECKMULTISIGVERIFY = 0xaf

	OP_NOP1                = 0xb0
	OP_CHECKLOCKTIMEVERIFY = 0xb1
	OP_NOP2                = 0xb1
	OP_CHECKSEQUENCEVERIFY = 0xb2
	OP_NOP3                = 0xb2
	OP_NOP4                = 0xb3
	OP_NOP5                = 0xb4
	OP_NOP6                = 0xb5
	OP_NOP7                = 0xb6
	OP_NOP8                = 0xb7
	OP_NOP9                = 0xb8
	OP_NOP10               = 0xb9

	OP_INVALIDOPCODE = 0xff
)

// opcodeArray associates an opcode with the information needed to parse the
// script. An entry's length holds the parse length: for a fixed-size
// instruction, its total size in bytes including the opcode byte, and a
// sentinel negative value for the three variable-length pushdata opcodes,
// decoded by parseScript.
const (
	lenPushData1 = -1
	lenPushData2 = -2
	lenPushData4 = -4
)

type opcodeInfo struct {
	value  byte
	name   string
	length int
}

var opcodeArray [256]opcodeInfo

func init() {
	for i := 0; i < 256; i++ {
		opcodeArray[i] = opcodeInfo{value: byte(i), name: fmt.Sprintf("OP_UNKNOWN%d", i), length: 1}
	}

	// Direct pushes: opcode value N (1..75) pushes the following N bytes.
	for i := OP_DATA_1; i <= OP_DATA_75; i++ {
		opcodeArray[i] = opcodeInfo{value: byte(i), name: fmt.Sprintf("OP_DATA_%d", i), length: i + 1}
	}

	named := []struct {
		val    int
		name   string
		length int
	}{
		{OP_0, "OP_0", 1},
		{OP_PUSHDATA1, "OP_PUSHDATA1", lenPushData1},
		{OP_PUSHDATA2, "OP_PUSHDATA2", lenPushData2},
		{OP_PUSHDATA4, "OP_PUSHDATA4", lenPushData4},
		{OP_1NEGATE, "OP_1NEGATE", 1},
		{OP_RESERVED, "OP_RESERVED", 1},
		{OP_1, "OP_1", 1},
		{OP_2, "OP_2", 1},
		{OP_3, "OP_3", 1},
		{OP_4, "OP_4", 1},
		{OP_5, "OP_5", 1},
		{OP_6, "OP_6", 1},
		{OP_7, "OP_7", 1},
		{OP_8, "OP_8", 1},
		{OP_9, "OP_9", 1},
		{OP_10, "OP_10", 1},
		{OP_11, "OP_11", 1},
		{OP_12, "OP_12", 1},
		{OP_13, "OP_13", 1},
		{OP_14, "OP_14", 1},
		{OP_15, "OP_15", 1},
		{OP_16, "OP_16", 1},
		{OP_NOP, "OP_NOP", 1},
		{OP_VER, "OP_VER", 1},
		{OP_IF, "OP_IF", 1},
		{OP_NOTIF, "OP_NOTIF", 1},
		{OP_VERIF, "OP_VERIF", 1},
		{OP_VERNOTIF, "OP_VERNOTIF", 1},
		{OP_ELSE, "OP_ELSE", 1},
		{OP_ENDIF, "OP_ENDIF", 1},
		{OP_VERIFY, "OP_VERIFY", 1},
		{OP_RETURN, "OP_RETURN", 1},
		{OP_TOALTSTACK, "OP_TOALTSTACK", 1},
		{OP_FROMALTSTACK, "OP_FROMALTSTACK", 1},
		{OP_2DROP, "OP_2DROP", 1},
		{OP_2DUP, "OP_2DUP", 1},
		{OP_3DUP, "OP_3DUP", 1},
		{OP_2OVER, "OP_2OVER", 1},
		{OP_2ROT, "OP_2ROT", 1},
		{OP_2SWAP, "OP_2SWAP", 1},
		{OP_IFDUP, "OP_IFDUP", 1},
		{OP_DEPTH, "OP_DEPTH", 1},
		{OP_DROP, "OP_DROP", 1},
		{OP_DUP, "OP_DUP", 1},
		{OP_NIP, "OP_NIP", 1},
		{OP_OVER, "OP_OVER", 1},
		{OP_PICK, "OP_PICK", 1},
		{OP_ROLL, "OP_ROLL", 1},
		{OP_ROT, "OP_ROT", 1},
		{OP_SWAP, "OP_SWAP", 1},
		{OP_TUCK, "OP_TUCK", 1},
		{OP_CAT, "OP_CAT", 1},
		{OP_SUBSTR, "OP_SUBSTR", 1},
		{OP_LEFT, "OP_LEFT", 1},
		{OP_RIGHT, "OP_RIGHT", 1},
		{OP_SIZE, "OP_SIZE", 1},
		{OP_INVERT, "OP_INVERT", 1},
		{OP_AND, "OP_AND", 1},
		{OP_OR, "OP_OR", 1},
		{OP_XOR, "OP_XOR", 1},
		{OP_EQUAL, "OP_EQUAL", 1},
		{OP_EQUALVERIFY, "OP_EQUALVERIFY", 1},
		{OP_1ADD, "OP_1ADD", 1},
		{OP_1SUB, "OP_1SUB", 1},
		{OP_2MUL, "OP_2MUL", 1},
		{OP_2DIV, "OP_2DIV", 1},
		{OP_NEGATE, "OP_NEGATE", 1},
		{OP_ABS, "OP_ABS", 1},
		{OP_NOT, "OP_NOT", 1},
		{OP_0NOTEQUAL, "OP_0NOTEQUAL", 1},
		{OP_ADD, "OP_ADD", 1},
		{OP_SUB, "OP_SUB", 1},
		{OP_MUL, "OP_MUL", 1},
		{OP_DIV, "OP_DIV", 1},
		{OP_MOD, "OP_MOD", 1},
		{OP_LSHIFT, "OP_LSHIFT", 1},
		{OP_RSHIFT, "OP_RSHIFT", 1},
		{OP_BOOLAND, "OP_BOOLAND", 1},
		{OP_BOOLOR, "OP_BOOLOR", 1},
		{OP_NUMEQUAL, "OP_NUMEQUAL", 1},
		{OP_NUMEQUALVERIFY, "OP_NUMEQUALVERIFY", 1},
		{OP_NUMNOTEQUAL, "OP_NUMNOTEQUAL", 1},
		{OP_LESSTHAN, "OP_LESSTHAN", 1},
		{OP_GREATERTHAN, "OP_GREATERTHAN", 1},
		{OP_LESSTHANOREQUAL, "OP_LESSTHANOREQUAL", 1},
		{OP_GREATERTHANOREQUAL, "OP_GREATERTHANOREQUAL", 1},
		{OP_MIN, "OP_MIN", 1},
		{OP_MAX, "OP_MAX", 1},
		{OP_WITHIN, "OP_WITHIN", 1},
		{OP_RIPEMD160, "OP_RIPEMD160", 1},
		{OP_SHA1, "OP_SHA1", 1},
		{OP_SHA256, "OP_SHA256", 1},
		{OP_HASH160, "OP_HASH160", 1},
		{OP_HASH256, "OP_HASH256", 1},
		{OP_CODESEPARATOR, "OP_CODESEPARATOR", 1},
		{OP_CHECKSIG, "OP_CHECKSIG", 1},
		{OP_CHECKSIGVERIFY, "OP_CHECKSIGVERIFY", 1},
		{OP_CHECKMULTISIG, "OP_CHECKMULTISIG", 1},
		{OP_CHECKMULTISIGVERIFY, "OP_CHECKMULTISIGVERIFY", 1},
		{OP_NOP1, "OP_NOP1", 1},
		{OP_CHECKLOCKTIMEVERIFY, "OP_CHECKLOCKTIMEVERIFY", 1},
		{OP_CHECKSEQUENCEVERIFY, "OP_CHECKSEQUENCEVERIFY", 1},
		{OP_NOP4, "OP_NOP4", 1},
		{OP_NOP5, "OP_NOP5", 1},
		{OP_NOP6, "OP_NOP6", 1},
		{OP_NOP7, "OP_NOP7", 1},
		{OP_NOP8, "OP_NOP8", 1},
		{OP_NOP9, "OP_NOP9", 1},
		{OP_NOP10, "OP_NOP10", 1},
		{OP_INVALIDOPCODE, "OP_INVALIDOPCODE", 1},
	}

	for _, n := range named {
		opcodeArray[n.val] = opcodeInfo{value: byte(n.val), name: n.name, length: n.length}
	}
}

// disabledOpcodes is the set of opcodes the reference client removed for
// script safety. Executing one is a failure even inside a conditional
// branch that is not taken; the check runs before the shouldExecute gate.
var disabledOpcodes = map[byte]bool{
	OP_CAT:    true,
	OP_SUBSTR: true,
	OP_LEFT:   true,
	OP_RIGHT:  true,
	OP_INVERT: true,
	OP_AND:    true,
	OP_OR:     true,
	OP_XOR:    true,
	OP_2MUL:   true,
	OP_2DIV:   true,
	OP_MUL:    true,
	OP_DIV:    true,
	OP_MOD:    true,
	OP_LSHIFT: true,
	OP_RSHIFT: true,
}

// opcodeName returns the human-readable name for the given opcode value, as
// used in error messages and disassembly.
func opcodeName(op byte) string {
	return opcodeArray[op].name
}
