package test

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// DecodeHexString is a helper function for tests that decodes hex strings. It doesn't return
// an error value, which makes it usable inline.
func DecodeHexString(hexData string) []byte {
	// Strip off any leading/trailing whitespace in hex string
	hexData = strings.TrimSpace(hexData)
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}

// MustHashFromString is a helper function for tests that parses a block hash
// from its hex form. It panics instead of returning an error, which makes it
// usable inline.
func MustHashFromString(hashStr string) *chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(hashStr)
	if err != nil {
		panic(fmt.Sprintf("error parsing hash: %s", err))
	}
	return hash
}

// BuildBlock returns a minimal single-transaction block and its serialized
// bytes, for use as a REST response fixture. The block is built
// programmatically so fixtures never depend on hand-typed serialized data.
func BuildBlock() (*wire.MsgBlock, []byte) {
	tx := wire.NewMsgTx(1)
	tx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: *wire.NewOutPoint(
			&chainhash.Hash{},
			wire.MaxPrevOutIndex,
		),
		SignatureScript: DecodeHexString("04ffff001d0104"),
		Sequence:        wire.MaxTxInSequenceNum,
	})
	tx.AddTxOut(&wire.TxOut{
		Value:    5000000000,
		PkScript: []byte{0x51}, // OP_TRUE
	})
	header := wire.BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.Hash{},
		MerkleRoot: tx.TxHash(),
		Timestamp:  time.Unix(1231006505, 0),
		Bits:       0x1d00ffff,
		Nonce:      2083236893,
	}
	block := wire.NewMsgBlock(&header)
	if err := block.AddTransaction(tx); err != nil {
		panic(fmt.Sprintf("error adding transaction: %s", err))
	}
	var buf bytes.Buffer
	if err := block.Serialize(&buf); err != nil {
		panic(fmt.Sprintf("error serializing block: %s", err))
	}
	return block, buf.Bytes()
}
