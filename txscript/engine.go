// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"crypto/sha1"
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160"
)

// VerifyFlags is a bitmask of script-verification behaviors that are off
// by default, matching the base consensus rules this package implements
// unless a caller opts into a later soft-fork rule.
type VerifyFlags uint32

const (
	// ScriptVerifyP2SH enables the BIP16 pay-to-script-hash
	// post-execution step in CorrectlySpends.
	ScriptVerifyP2SH VerifyFlags = 1 << iota

	// ScriptVerifyMinimalData is accepted but not consulted by the engine.
	// Numeric operands popped by arithmetic and comparison opcodes must be
	// minimally encoded whether or not it is set, and data pushes are not
	// checked for minimal encoding either way.
	ScriptVerifyMinimalData

	// ScriptVerifyCheckLockTimeVerify enables BIP65's OP_CHECKLOCKTIMEVERIFY
	// semantics for OP_NOP2; without it OP_NOP2 is handled like the other
	// upgradable NOPs (see ScriptDiscourageUpgradableNops).
	ScriptVerifyCheckLockTimeVerify

	// ScriptVerifyCheckSequenceVerify enables BIP112's OP_CHECKSEQUENCEVERIFY
	// semantics for OP_NOP3; without it OP_NOP3 is handled like the other
	// upgradable NOPs (see ScriptDiscourageUpgradableNops).
	ScriptVerifyCheckSequenceVerify

	// ScriptDiscourageUpgradableNops fails the script whenever an
	// OP_NOP1 or OP_NOP4..OP_NOP10 is executed, or an OP_NOP2/OP_NOP3 whose
	// lock-time flag above is not set; without it they are no-ops. This lets
	// future soft forks safely redefine them the way BIP65/BIP112 redefined
	// OP_NOP2/OP_NOP3.
	ScriptDiscourageUpgradableNops
)

// maxOpsPerScript is the maximum allowed number of counted operations in a
// single script, matching the reference client's limit.
const maxOpsPerScript = 201

// maxPubKeysPerMultiSig is the maximum number of public keys allowed in an
// OP_CHECKMULTISIG / OP_CHECKMULTISIGVERIFY invocation.
const maxPubKeysPerMultiSig = 20

// LockTimeContext is consulted by OP_CHECKLOCKTIMEVERIFY and
// OP_CHECKSEQUENCEVERIFY when those flags are enabled. It is deliberately
// narrow: the engine needs only the spending input's own locktime/sequence
// fields, not the whole transaction model.
type LockTimeContext interface {
	// TxLockTime returns the containing transaction's nLockTime field.
	TxLockTime() uint32

	// InputSequence returns the nSequence field of the input being
	// verified.
	InputSequence(inputIndex int) uint32
}

// engine holds the mutable state threaded through script evaluation. One
// engine runs scriptSig and then scriptPubKey over the same stack; a fresh
// engine runs a P2SH redeem script. Each execute call resets the opcode
// counter, matching the reference client's per-script accounting.
type engine struct {
	flags       VerifyFlags
	sigHasher   SigHasher
	sigCache    *SigCache
	lockCtx     LockTimeContext
	inputIndex  int

	stack    stack
	altStack stack
	ifStack  []bool

	opCount      int
	lastSepPlus1 int
}

func (e *engine) shouldExecute() bool {
	for _, b := range e.ifStack {
		if !b {
			return false
		}
	}
	return true
}

func (e *engine) checkStackSize() error {
	if e.stack.Depth()+e.altStack.Depth() > maxStackSize {
		return scriptError(ErrStackOverflow, "combined stack size exceeds limit")
	}
	return nil
}

func (e *engine) checkOpCount(op byte) error {
	if op > OP_16 {
		e.opCount++
		if e.opCount > maxOpsPerScript {
			return scriptError(ErrTooManyOperations,
				"script exceeds the maximum allowed operations")
		}
	}
	return nil
}

// execute runs chunks (parsed from raw) against e's stack. On return, the
// stack holds whatever results from the final operation.
func (e *engine) execute(raw []byte, chunks []ScriptChunk) error {
	e.opCount = 0
	e.lastSepPlus1 = 0

	for _, c := range chunks {
		if disabledOpcodes[c.Opcode] {
			return scriptError(ErrDisabledOpcode,
				"attempt to execute disabled opcode "+opcodeName(c.Opcode))
		}

		if c.Opcode == OP_VERIF || c.Opcode == OP_VERNOTIF {
			return scriptError(ErrReservedOpcode,
				"attempt to execute reserved opcode "+opcodeName(c.Opcode))
		}

		if err := e.checkOpCount(c.Opcode); err != nil {
			return err
		}

		execute := e.shouldExecute()

		switch {
		case c.Opcode == OP_IF, c.Opcode == OP_NOTIF:
			branch := false
			if execute {
				v, err := e.stack.PopBool()
				if err != nil {
					return err
				}
				branch = v
				if c.Opcode == OP_NOTIF {
					branch = !branch
				}
			}
			e.ifStack = append(e.ifStack, branch)
			continue

		case c.Opcode == OP_ELSE:
			if len(e.ifStack) == 0 {
				return scriptError(ErrUnbalancedConditional, "OP_ELSE without matching OP_IF")
			}
			e.ifStack[len(e.ifStack)-1] = !e.ifStack[len(e.ifStack)-1]
			continue

		case c.Opcode == OP_ENDIF:
			if len(e.ifStack) == 0 {
				return scriptError(ErrUnbalancedConditional, "OP_ENDIF without matching OP_IF")
			}
			e.ifStack = e.ifStack[:len(e.ifStack)-1]
			continue
		}

		if !execute {
			continue
		}

		if c.isPush() {
			if len(c.Data) > MaxScriptElementSize {
				return scriptError(ErrElementTooBig,
					"element size exceeds the maximum allowed size")
			}
			e.stack.PushByteArray(c.Data)
			if err := e.checkStackSize(); err != nil {
				return err
			}
			continue
		}

		if err := e.step(raw, c); err != nil {
			return err
		}
		if err := e.checkStackSize(); err != nil {
			return err
		}
	}

	if len(e.ifStack) != 0 {
		return scriptError(ErrUnbalancedConditional, "unbalanced conditional at end of script")
	}

	return nil
}

// step executes a single non-push opcode.
func (e *engine) step(raw []byte, c ScriptChunk) error {
	op := c.Opcode
	switch {
	case op == OP_0:
		e.stack.PushByteArray(nil)

	case op == OP_1NEGATE:
		e.stack.PushInt(scriptNum(-1))

	case op >= OP_1 && op <= OP_16:
		e.stack.PushInt(scriptNum(op - (OP_1 - 1)))

	case op == OP_NOP:
		// no-op

	case op == OP_VERIFY:
		v, err := e.stack.PopBool()
		if err != nil {
			return err
		}
		if !v {
			return scriptError(ErrVerify, "OP_VERIFY failed")
		}

	case op == OP_RETURN:
		return scriptError(ErrOpReturn, "script executed OP_RETURN")

	case op == OP_CODESEPARATOR:
		e.lastSepPlus1 = c.StartOffset + 1

	case op == OP_TOALTSTACK:
		v, err := e.stack.PopByteArray()
		if err != nil {
			return err
		}
		e.altStack.PushByteArray(v)

	case op == OP_FROMALTSTACK:
		v, err := e.altStack.PopByteArray()
		if err != nil {
			return err
		}
		e.stack.PushByteArray(v)

	case op == OP_IFDUP:
		v, err := e.stack.PeekByteArray(0)
		if err != nil {
			return err
		}
		if asBool(v) {
			e.stack.PushByteArray(v)
		}

	case op == OP_DEPTH:
		e.stack.PushInt(scriptNum(e.stack.Depth()))

	case op == OP_DROP:
		return e.stack.DropN(1)

	case op == OP_2DROP:
		return e.stack.DropN(2)

	case op == OP_DUP:
		return e.stack.DupN(1)

	case op == OP_2DUP:
		return e.stack.DupN(2)

	case op == OP_3DUP:
		return e.stack.DupN(3)

	case op == OP_NIP:
		return e.stack.nipN(1)

	case op == OP_OVER:
		return e.stack.OverN(1)

	case op == OP_2OVER:
		return e.stack.OverN(2)

	case op == OP_PICK, op == OP_ROLL:
		n, err := e.stack.PopInt()
		if err != nil {
			return err
		}
		idx := int(n.Int32())
		v, err := e.stack.PeekByteArray(idx)
		if err != nil {
			return err
		}
		if op == OP_ROLL {
			if err := e.stack.nipN(idx); err != nil {
				return err
			}
		}
		e.stack.PushByteArray(v)

	case op == OP_ROT:
		return e.stack.RotN(1)

	case op == OP_2ROT:
		return e.stack.RotN(2)

	case op == OP_SWAP:
		return e.stack.SwapN(1)

	case op == OP_2SWAP:
		return e.stack.SwapN(2)

	case op == OP_TUCK:
		return e.stack.Tuck()

	case op == OP_SIZE:
		v, err := e.stack.PeekByteArray(0)
		if err != nil {
			return err
		}
		e.stack.PushInt(scriptNum(len(v)))

	case op == OP_EQUAL, op == OP_EQUALVERIFY:
		b, err := e.stack.PopByteArray()
		if err != nil {
			return err
		}
		a, err := e.stack.PopByteArray()
		if err != nil {
			return err
		}
		eq := bytes.Equal(a, b)
		if op == OP_EQUALVERIFY {
			if !eq {
				return scriptError(ErrEqualVerify, "OP_EQUALVERIFY failed")
			}
			return nil
		}
		e.stack.PushBool(eq)

	case op == OP_1ADD, op == OP_1SUB, op == OP_NEGATE, op == OP_ABS,
		op == OP_NOT, op == OP_0NOTEQUAL:
		n, err := e.stack.PopInt()
		if err != nil {
			return err
		}
		var res scriptNum
		switch op {
		case OP_1ADD:
			res = n + 1
		case OP_1SUB:
			res = n - 1
		case OP_NEGATE:
			res = -n
		case OP_ABS:
			if n < 0 {
				res = -n
			} else {
				res = n
			}
		case OP_NOT:
			if n == 0 {
				res = 1
			}
		case OP_0NOTEQUAL:
			if n != 0 {
				res = 1
			}
		}
		e.stack.PushInt(res)

	case op == OP_ADD, op == OP_SUB, op == OP_BOOLAND, op == OP_BOOLOR,
		op == OP_NUMEQUAL, op == OP_NUMEQUALVERIFY, op == OP_NUMNOTEQUAL,
		op == OP_LESSTHAN, op == OP_GREATERTHAN, op == OP_LESSTHANOREQUAL,
		op == OP_GREATERTHANOREQUAL, op == OP_MIN, op == OP_MAX:
		b, err := e.stack.PopInt()
		if err != nil {
			return err
		}
		a, err := e.stack.PopInt()
		if err != nil {
			return err
		}
		var res scriptNum
		var boolOut bool
		isBool := false
		switch op {
		case OP_ADD:
			res = a + b
		case OP_SUB:
			res = a - b
		case OP_BOOLAND:
			isBool, boolOut = true, a != 0 && b != 0
		case OP_BOOLOR:
			isBool, boolOut = true, a != 0 || b != 0
		case OP_NUMEQUAL, OP_NUMEQUALVERIFY:
			isBool, boolOut = true, a == b
		case OP_NUMNOTEQUAL:
			isBool, boolOut = true, a != b
		case OP_LESSTHAN:
			isBool, boolOut = true, a < b
		case OP_GREATERTHAN:
			isBool, boolOut = true, a > b
		case OP_LESSTHANOREQUAL:
			isBool, boolOut = true, a <= b
		case OP_GREATERTHANOREQUAL:
			isBool, boolOut = true, a >= b
		case OP_MIN:
			if a < b {
				res = a
			} else {
				res = b
			}
		case OP_MAX:
			if a > b {
				res = a
			} else {
				res = b
			}
		}
		if op == OP_NUMEQUALVERIFY {
			if !boolOut {
				return scriptError(ErrNumEqualVerify, "OP_NUMEQUALVERIFY failed")
			}
			return nil
		}
		if isBool {
			e.stack.PushBool(boolOut)
		} else {
			e.stack.PushInt(res)
		}

	case op == OP_WITHIN:
		max, err := e.stack.PopInt()
		if err != nil {
			return err
		}
		min, err := e.stack.PopInt()
		if err != nil {
			return err
		}
		x, err := e.stack.PopInt()
		if err != nil {
			return err
		}
		e.stack.PushBool(x >= min && x < max)

	case op == OP_RIPEMD160:
		v, err := e.stack.PopByteArray()
		if err != nil {
			return err
		}
		h := ripemd160.New()
		h.Write(v)
		e.stack.PushByteArray(h.Sum(nil))

	case op == OP_SHA1:
		v, err := e.stack.PopByteArray()
		if err != nil {
			return err
		}
		h := sha1.Sum(v)
		e.stack.PushByteArray(h[:])

	case op == OP_SHA256:
		v, err := e.stack.PopByteArray()
		if err != nil {
			return err
		}
		h := sha256.Sum256(v)
		e.stack.PushByteArray(h[:])

	case op == OP_HASH160:
		v, err := e.stack.PopByteArray()
		if err != nil {
			return err
		}
		e.stack.PushByteArray(Hash160(v))

	case op == OP_HASH256:
		v, err := e.stack.PopByteArray()
		if err != nil {
			return err
		}
		first := sha256.Sum256(v)
		second := sha256.Sum256(first[:])
		e.stack.PushByteArray(second[:])

	case op == OP_CHECKSIG, op == OP_CHECKSIGVERIFY:
		ok, err := e.checkSig(raw)
		if err != nil {
			return err
		}
		if op == OP_CHECKSIGVERIFY {
			if !ok {
				return scriptError(ErrCheckSigVerify, "OP_CHECKSIGVERIFY failed")
			}
			return nil
		}
		e.stack.PushBool(ok)

	case op == OP_CHECKMULTISIG, op == OP_CHECKMULTISIGVERIFY:
		ok, err := e.checkMultiSig(raw)
		if err != nil {
			return err
		}
		if op == OP_CHECKMULTISIGVERIFY {
			if !ok {
				return scriptError(ErrCheckMultiSigVerify, "OP_CHECKMULTISIGVERIFY failed")
			}
			return nil
		}
		e.stack.PushBool(ok)

	case op == OP_CHECKLOCKTIMEVERIFY:
		if e.flags&ScriptVerifyCheckLockTimeVerify == 0 {
			return e.discourageOrNop()
		}
		return e.checkLockTimeVerify()

	case op == OP_CHECKSEQUENCEVERIFY:
		if e.flags&ScriptVerifyCheckSequenceVerify == 0 {
			return e.discourageOrNop()
		}
		return e.checkSequenceVerify()

	case op >= OP_NOP1 && op <= OP_NOP10:
		return e.discourageOrNop()

	default:
		return scriptError(ErrReservedOpcode, "attempt to execute unimplemented opcode "+opcodeName(op))
	}

	return nil
}

func (e *engine) discourageOrNop() error {
	if e.flags&ScriptDiscourageUpgradableNops != 0 {
		return scriptError(ErrDiscourageUpgradableNOPs,
			"encountered an upgradable NOP with the discourage flag set")
	}
	return nil
}

func (e *engine) checkLockTimeVerify() error {
	if e.lockCtx == nil {
		return scriptError(ErrUnsatisfiedLockTime, "no lock-time context available")
	}
	top, err := e.stack.PeekByteArray(0)
	if err != nil {
		return err
	}
	lockTime, err := MakeScriptNum(top, true, cltvMaxScriptNumLen)
	if err != nil {
		return err
	}
	if lockTime < 0 {
		return scriptError(ErrNegativeLockTime, "negative locktime")
	}

	const lockTimeThreshold = 500000000
	txLockTime := scriptNum(e.lockCtx.TxLockTime())
	if !((lockTime < lockTimeThreshold && txLockTime < lockTimeThreshold) ||
		(lockTime >= lockTimeThreshold && txLockTime >= lockTimeThreshold)) {
		return scriptError(ErrUnsatisfiedLockTime, "mismatched locktime types")
	}
	if lockTime > txLockTime {
		return scriptError(ErrUnsatisfiedLockTime, "locktime requirement not satisfied")
	}
	if e.lockCtx.InputSequence(e.inputIndex) == 0xffffffff {
		return scriptError(ErrUnsatisfiedLockTime, "input is finalized")
	}
	return nil
}

func (e *engine) checkSequenceVerify() error {
	if e.lockCtx == nil {
		return scriptError(ErrUnsatisfiedLockTime, "no lock-time context available")
	}
	top, err := e.stack.PeekByteArray(0)
	if err != nil {
		return err
	}
	sequence, err := MakeScriptNum(top, true, cltvMaxScriptNumLen)
	if err != nil {
		return err
	}
	if sequence < 0 {
		return scriptError(ErrNegativeLockTime, "negative sequence")
	}

	const (
		sequenceLockTimeDisableFlag = 1 << 31
		sequenceLockTimeTypeFlag    = 1 << 22
		sequenceLockTimeMask        = 0x0000ffff
	)

	if int64(sequence)&sequenceLockTimeDisableFlag != 0 {
		return nil
	}

	txSequence := scriptNum(e.lockCtx.InputSequence(e.inputIndex))
	if int64(txSequence)&sequenceLockTimeDisableFlag != 0 {
		return scriptError(ErrUnsatisfiedLockTime, "input sequence disabled relative locktime")
	}

	seqType := int64(sequence) & sequenceLockTimeTypeFlag
	txType := int64(txSequence) & sequenceLockTimeTypeFlag
	if seqType != txType {
		return scriptError(ErrUnsatisfiedLockTime, "mismatched sequence types")
	}
	if int64(sequence)&sequenceLockTimeMask > int64(txSequence)&sequenceLockTimeMask {
		return scriptError(ErrUnsatisfiedLockTime, "sequence requirement not satisfied")
	}
	return nil
}

// subScript returns the portion of raw following the last executed
// OP_CODESEPARATOR, with every byte occurrence of the serialized-push
// encoding of sig stripped out.
func (e *engine) subScript(raw []byte, sig []byte) []byte {
	sub := raw[e.lastSepPlus1:]
	push := canonicalDataPush(sig)
	return removeAll(sub, push)
}

// canonicalDataPush returns the canonical push-data encoding of data, the
// same encoding parseScript would have produced for a literal push of it.
func canonicalDataPush(data []byte) []byte {
	n := len(data)
	switch {
	case n < OP_PUSHDATA1:
		return append([]byte{byte(n)}, data...)
	case n <= 0xff:
		return append([]byte{OP_PUSHDATA1, byte(n)}, data...)
	case n <= 0xffff:
		return append([]byte{OP_PUSHDATA2, byte(n), byte(n >> 8)}, data...)
	default:
		return append([]byte{OP_PUSHDATA4, byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24)}, data...)
	}
}

// removeAll strips every occurrence of needle from haystack.
func removeAll(haystack, needle []byte) []byte {
	if len(needle) == 0 {
		return haystack
	}
	var out []byte
	for i := 0; i < len(haystack); {
		if i+len(needle) <= len(haystack) && bytes.Equal(haystack[i:i+len(needle)], needle) {
			i += len(needle)
			continue
		}
		out = append(out, haystack[i])
		i++
	}
	return out
}

func (e *engine) checkSig(raw []byte) (bool, error) {
	pubKeyBytes, err := e.stack.PopByteArray()
	if err != nil {
		return false, err
	}
	sigBytes, err := e.stack.PopByteArray()
	if err != nil {
		return false, err
	}
	if len(sigBytes) == 0 {
		return false, nil
	}

	hashType := SigHashType(sigBytes[len(sigBytes)-1])
	rawSig := sigBytes[:len(sigBytes)-1]

	sub := e.subScript(raw, sigBytes)
	sigHash, err := e.sigHasher.HashForSignature(e.inputIndex, sub, hashType)
	if err != nil {
		return false, nil
	}

	return verifySignature(e.sigCache, sigHash, rawSig, pubKeyBytes), nil
}

func (e *engine) checkMultiSig(raw []byte) (bool, error) {
	numKeys, err := e.stack.PopInt()
	if err != nil {
		return false, err
	}
	numPubKeys := int(numKeys.Int32())
	if numPubKeys < 0 || numPubKeys > maxPubKeysPerMultiSig {
		return false, scriptError(ErrInvalidPubKeyCount, "invalid pubkey count in OP_CHECKMULTISIG")
	}
	if err := e.checkOpCountExtra(numPubKeys); err != nil {
		return false, err
	}

	pubKeys := make([][]byte, numPubKeys)
	for i := 0; i < numPubKeys; i++ {
		pk, err := e.stack.PopByteArray()
		if err != nil {
			return false, err
		}
		pubKeys[i] = pk
	}

	numSigsNum, err := e.stack.PopInt()
	if err != nil {
		return false, err
	}
	numSigs := int(numSigsNum.Int32())
	if numSigs < 0 || numSigs > numPubKeys {
		return false, scriptError(ErrInvalidSignatureCount, "invalid signature count in OP_CHECKMULTISIG")
	}

	sigs := make([][]byte, numSigs)
	for i := 0; i < numSigs; i++ {
		s, err := e.stack.PopByteArray()
		if err != nil {
			return false, err
		}
		sigs[i] = s
	}

	// Reference-client off-by-one: pop one extra item that is never
	// used, and preserve it.
	if _, err := e.stack.PopByteArray(); err != nil {
		return false, err
	}

	sub := raw[e.lastSepPlus1:]
	for _, s := range sigs {
		sub = removeAll(sub, canonicalDataPush(s))
	}

	sigIdx, keyIdx := 0, 0
	success := true
	for sigIdx < numSigs {
		if keyIdx >= numPubKeys {
			success = false
			break
		}

		sig := sigs[sigIdx]
		if len(sig) == 0 {
			keyIdx++
			continue
		}
		hashType := SigHashType(sig[len(sig)-1])
		rawSig := sig[:len(sig)-1]

		sigHash, err := e.sigHasher.HashForSignature(e.inputIndex, sub, hashType)
		if err == nil && verifySignature(e.sigCache, sigHash, rawSig, pubKeys[keyIdx]) {
			sigIdx++
		}
		keyIdx++
	}

	return success && sigIdx == numSigs, nil
}

// checkOpCountExtra folds in the advertised public key count of an
// OP_CHECKMULTISIG(VERIFY), which increments the opcode counter once per
// key in addition to the single increment the opcode itself already
// contributed.
func (e *engine) checkOpCountExtra(numPubKeys int) error {
	e.opCount += numPubKeys
	if e.opCount > maxOpsPerScript {
		return scriptError(ErrTooManyOperations, "script exceeds the maximum allowed operations")
	}
	return nil
}

// CorrectlySpends validates that scriptSig correctly spends scriptPubKey
// for the given input, per the consensus execution contract: run
// scriptSig, snapshot the stack for a possible P2SH pass, run
// scriptPubKey, require a true top-of-stack, and if P2SH is enabled and
// scriptPubKey is the P2SH template, additionally evaluate the redeem
// script popped from the scriptSig's own push-only output.
func CorrectlySpends(sigHasher SigHasher, inputIndex int, scriptSig, scriptPubKey []byte, flags VerifyFlags, sigCache *SigCache, lockCtx LockTimeContext) error {
	if len(scriptSig) > MaxScriptSize || len(scriptPubKey) > MaxScriptSize {
		return scriptError(ErrScriptTooBig, "script size exceeds the maximum allowed size")
	}

	sigChunks, err := parseScript(scriptSig)
	if err != nil {
		return err
	}
	pkChunks, err := parseScript(scriptPubKey)
	if err != nil {
		return err
	}

	e := &engine{
		flags:      flags,
		sigHasher:  sigHasher,
		sigCache:   sigCache,
		lockCtx:    lockCtx,
		inputIndex: inputIndex,
	}

	if err := e.execute(scriptSig, sigChunks); err != nil {
		return err
	}

	var p2shStack stack
	if flags&ScriptVerifyP2SH != 0 {
		p2shStack.items = append([][]byte(nil), e.stack.items...)
	}

	e.ifStack = nil
	if err := e.execute(scriptPubKey, pkChunks); err != nil {
		return err
	}

	ok, err := e.stack.PopBool()
	if err != nil {
		return err
	}
	if !ok {
		return scriptError(ErrEvalFalse, "script evaluated without error but finished with a false top stack element")
	}

	if flags&ScriptVerifyP2SH != 0 && isScriptHash(scriptPubKey) {
		if !isPushOnly(sigChunks) {
			return scriptError(ErrNotPushOnly, "signature script for a P2SH output is not push only")
		}

		redeem, err := p2shStack.PopByteArray()
		if err != nil {
			return err
		}
		redeemChunks, err := parseScript(redeem)
		if err != nil {
			return err
		}

		re := &engine{
			flags:      flags,
			sigHasher:  sigHasher,
			sigCache:   sigCache,
			lockCtx:    lockCtx,
			inputIndex: inputIndex,
			stack:      p2shStack,
		}
		if err := re.execute(redeem, redeemChunks); err != nil {
			return err
		}
		ok, err := re.stack.PopBool()
		if err != nil {
			return err
		}
		if !ok {
			return scriptError(ErrEvalFalse, "P2SH redeem script evaluated without error but finished with a false top stack element")
		}
	}

	return nil
}
