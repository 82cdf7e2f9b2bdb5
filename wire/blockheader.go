// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire implements the fixed 80-byte block header record the chain
// engine ingests. Framing, message types, and peer protocol encoding are
// a network-layer concern and live outside this module.
package wire

import (
	"bytes"
	"encoding/binary"
	"io"
	"time"

	"github.com/gosatsv/svcore/chainhash"
)

// BlockHeaderLen is the number of bytes in a serialized block header:
// version (4) + prev hash (32) + merkle root (32) + time (4) + bits (4) +
// nonce (4).
const BlockHeaderLen = 80

var littleEndian = binary.LittleEndian

// BlockHeader defines the fixed-size record identifying a block: version,
// link to the previous block, the merkle root of its transactions, and the
// proof-of-work fields.
type BlockHeader struct {
	// Version of the block. This is not the same as the protocol version.
	Version int32

	// PrevBlock is the hash of the previous block header in the chain.
	PrevBlock chainhash.Hash

	// MerkleRoot is the merkle tree reference to the hash of all
	// transactions for the block.
	MerkleRoot chainhash.Hash

	// Timestamp the block was created. Encoded on the wire as a uint32
	// and therefore limited to 2106.
	Timestamp time.Time

	// Bits is the compact-encoded difficulty target for the block.
	Bits uint32

	// Nonce used to generate the block.
	Nonce uint32
}

// NewBlockHeader returns a new BlockHeader using the provided version,
// previous block hash, merkle root hash, difficulty bits, and nonce, with
// the timestamp set to now truncated to one-second precision.
func NewBlockHeader(version int32, prevHash, merkleRootHash *chainhash.Hash, bits, nonce uint32) *BlockHeader {
	return &BlockHeader{
		Version:    version,
		PrevBlock:  *prevHash,
		MerkleRoot: *merkleRootHash,
		Timestamp:  time.Unix(time.Now().Unix(), 0),
		Bits:       bits,
		Nonce:      nonce,
	}
}

// BlockHash computes the block identifier hash for the header: the
// double-SHA-256 of its 80-byte serialization.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	buf := bytes.NewBuffer(make([]byte, 0, BlockHeaderLen))
	// Serialize cannot fail writing into a bytes.Buffer.
	_ = writeBlockHeader(buf, h)
	return chainhash.DoubleHashH(buf.Bytes())
}

// Serialize encodes the header to w in the canonical 80-byte wire format.
func (h *BlockHeader) Serialize(w io.Writer) error {
	return writeBlockHeader(w, h)
}

// Deserialize decodes a block header from r into the receiver.
func (h *BlockHeader) Deserialize(r io.Reader) error {
	return readBlockHeader(r, h)
}

// Bytes returns the canonical 80-byte serialization of the header.
func (h *BlockHeader) Bytes() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, BlockHeaderLen))
	if err := h.Serialize(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromBytes deserializes a block header from its canonical 80-byte form.
func (h *BlockHeader) FromBytes(b []byte) error {
	if len(b) != BlockHeaderLen {
		return io.ErrUnexpectedEOF
	}
	return h.Deserialize(bytes.NewReader(b))
}

func readBlockHeader(r io.Reader, bh *BlockHeader) error {
	var buf [4]byte

	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	bh.Version = int32(littleEndian.Uint32(buf[:]))

	if _, err := io.ReadFull(r, bh.PrevBlock[:]); err != nil {
		return err
	}
	if _, err := io.ReadFull(r, bh.MerkleRoot[:]); err != nil {
		return err
	}

	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	bh.Timestamp = time.Unix(int64(littleEndian.Uint32(buf[:])), 0)

	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	bh.Bits = littleEndian.Uint32(buf[:])

	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	bh.Nonce = littleEndian.Uint32(buf[:])

	return nil
}

func writeBlockHeader(w io.Writer, bh *BlockHeader) error {
	var buf [4]byte

	littleEndian.PutUint32(buf[:], uint32(bh.Version))
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}

	if _, err := w.Write(bh.PrevBlock[:]); err != nil {
		return err
	}
	if _, err := w.Write(bh.MerkleRoot[:]); err != nil {
		return err
	}

	littleEndian.PutUint32(buf[:], uint32(bh.Timestamp.Unix()))
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}

	littleEndian.PutUint32(buf[:], bh.Bits)
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}

	littleEndian.PutUint32(buf[:], bh.Nonce)
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}

	return nil
}
