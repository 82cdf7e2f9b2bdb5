// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package txscript implements the Bitcoin-SV transaction script (authorization)
language: the stack-based, FORTH-like interpreter a full-verification layer
calls once per transaction input to decide whether that input's scriptSig is
allowed to spend the output's scriptPubKey.

A complete description of the reference script language can be found at
https://en.bitcoin.it/wiki/Script. The following only serves as a quick
overview to provide information on how to use the package.

This package provides data structures and functions to parse a script's byte
program into a chunk sequence and execute that sequence against a stack
machine.

# Script Overview

Scripts are written in a stack-based, FORTH-like language: every opcode reads
from and writes to a shared byte-string stack, plus an alt stack and a
conditional stack for branching. There are no loops.

Opcodes fall into several categories: pushing and popping data to and from
the stack, performing arithmetic and bitwise operations (several of which are
disabled at the consensus level and fail the script if ever executed, even
inside a branch that is not taken), conditional branching, comparing hashes,
and checking ECDSA signatures. Scripts execute left to right.

The most common form pairs a scriptPubKey that commits to a public key's
hash160 with a scriptSig supplying the matching public key and a signature
over the spending transaction, proving the spender holds the corresponding
private key. Pay-to-script-hash (P2SH) scriptPubKeys instead commit to the
hash160 of a redeem script supplied by the scriptSig, which is parsed and
executed as a second script once the outer script evaluates true.

# Errors

Errors returned by this package are of type txscript.Error. This allows the
caller to programmatically determine the specific error by examining the
ErrorCode field of the type asserted txscript.Error while still providing rich
error messages with contextual information. A convenience function named
IsErrorCode is also provided to allow callers to easily check for a specific
error code. See ErrorCode in the package documentation for a full list.
*/
package txscript
