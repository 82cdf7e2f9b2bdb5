// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

// MaxScriptSize is the largest allowed script program, in bytes.
const MaxScriptSize = 10000

// MaxScriptElementSize is the largest allowed size, in bytes, for a single
// data push onto the stack.
const MaxScriptElementSize = 520

// ScriptChunk is a single parsed instruction from a Script: either an
// opcode with no associated data, or a literal data push. Data carries the
// pushed bytes (nil for opcodes). StartOffset is the byte offset of this
// chunk's opcode byte within the owning Script's original program, which
// OP_CODESEPARATOR needs to compute the sub-script for subsequent
// signature checks.
type ScriptChunk struct {
	Opcode      byte
	Data        []byte
	StartOffset int
}

// isPush reports whether the chunk represents a data push rather than an
// opcode with no payload. The numeric constant pushes (OP_0, OP_1NEGATE,
// OP_1..OP_16) are not pushes in this sense; they are handled directly by
// the engine.
func (c ScriptChunk) isPush() bool {
	return c.Opcode <= OP_PUSHDATA4 && c.Opcode != OP_0
}

// Script is the parsed form of a raw byte program: the original bytes plus
// the left-to-right tokenized chunk sequence. Scripts are value objects;
// callers must not mutate one while it is being executed, though distinct
// Scripts may be executed concurrently.
type Script struct {
	raw    []byte
	chunks []ScriptChunk
}

// Bytes returns the original, unparsed program bytes.
func (s Script) Bytes() []byte {
	return s.raw
}

// Chunks returns the parsed chunk sequence.
func (s Script) Chunks() []ScriptChunk {
	return s.chunks
}

// ParseScript tokenizes a raw byte program into a Script. It rejects
// programs that exceed MaxScriptSize or that contain a push opcode whose
// declared length runs past the end of the program.
func ParseScript(raw []byte) (Script, error) {
	if len(raw) > MaxScriptSize {
		return Script{}, scriptError(ErrScriptTooBig,
			"script size exceeds the maximum allowed size")
	}

	chunks, err := parseScript(raw)
	if err != nil {
		return Script{}, err
	}
	return Script{raw: raw, chunks: chunks}, nil
}

// parseScript walks raw left to right, splitting it into a sequence of
// ScriptChunks. Bytes 0x01..0x4b push the following N bytes; OP_PUSHDATA1/
// 2/4 are length-prefixed pushes with a 1/2/4-byte little-endian length;
// every other byte is a bare opcode.
func parseScript(raw []byte) ([]ScriptChunk, error) {
	var chunks []ScriptChunk

	i := 0
	for i < len(raw) {
		start := i
		op := raw[i]
		i++

		switch {
		case op >= OP_DATA_1 && op <= OP_DATA_75:
			n := int(op)
			if i+n > len(raw) {
				return nil, scriptError(ErrMalformedPush,
					"opcode "+opcodeName(op)+" requires "+
						"more bytes than are remaining")
			}
			chunks = append(chunks, ScriptChunk{
				Opcode: op, Data: raw[i : i+n], StartOffset: start,
			})
			i += n

		case op == OP_PUSHDATA1:
			if i+1 > len(raw) {
				return nil, scriptError(ErrMalformedPush,
					"OP_PUSHDATA1 is missing its length byte")
			}
			n := int(raw[i])
			i++
			if i+n > len(raw) {
				return nil, scriptError(ErrMalformedPush,
					"OP_PUSHDATA1 requires more bytes than are remaining")
			}
			chunks = append(chunks, ScriptChunk{
				Opcode: op, Data: raw[i : i+n], StartOffset: start,
			})
			i += n

		case op == OP_PUSHDATA2:
			if i+2 > len(raw) {
				return nil, scriptError(ErrMalformedPush,
					"OP_PUSHDATA2 is missing its length bytes")
			}
			n := int(raw[i]) | int(raw[i+1])<<8
			i += 2
			if i+n > len(raw) {
				return nil, scriptError(ErrMalformedPush,
					"OP_PUSHDATA2 requires more bytes than are remaining")
			}
			chunks = append(chunks, ScriptChunk{
				Opcode: op, Data: raw[i : i+n], StartOffset: start,
			})
			i += n

		case op == OP_PUSHDATA4:
			if i+4 > len(raw) {
				return nil, scriptError(ErrMalformedPush,
					"OP_PUSHDATA4 is missing its length bytes")
			}
			// Four distinct length bytes, little-endian.
			n := int(raw[i]) | int(raw[i+1])<<8 | int(raw[i+2])<<16 | int(raw[i+3])<<24
			i += 4
			if n < 0 || i+n > len(raw) {
				return nil, scriptError(ErrMalformedPush,
					"OP_PUSHDATA4 requires more bytes than are remaining")
			}
			chunks = append(chunks, ScriptChunk{
				Opcode: op, Data: raw[i : i+n], StartOffset: start,
			})
			i += n

		default:
			chunks = append(chunks, ScriptChunk{Opcode: op, StartOffset: start})
		}
	}

	return chunks, nil
}

// isPushOnly reports whether every chunk in chunks has an opcode no greater
// than OP_16: a data push, one of the small-integer constant opcodes (OP_0,
// OP_1NEGATE, OP_1..OP_16), or OP_RESERVED, which lies in that range. It is
// used to enforce that a P2SH scriptSig contains no other opcodes.
func isPushOnly(chunks []ScriptChunk) bool {
	for _, c := range chunks {
		if c.Opcode > OP_16 {
			return false
		}
	}
	return true
}

// isScriptHash reports whether raw is exactly the P2SH template
// OP_HASH160 <20 bytes> OP_EQUAL.
func isScriptHash(raw []byte) bool {
	return len(raw) == 23 &&
		raw[0] == OP_HASH160 &&
		raw[1] == 0x14 &&
		raw[22] == OP_EQUAL
}
