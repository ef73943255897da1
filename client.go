// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package svnode implements a dual-transport client for a Bitcoin SV full
// node. Chain state is read over the node's JSON-RPC interface, while whole
// blocks travel over the node's binary REST interface.
//
// A Client is a configuration bundle plus a shared HTTP connection pool,
// not a stateful session: it holds no mutable state between calls and is
// safe for concurrent use. Calls fail fast with no retries, and the client
// imposes no timeout of its own; callers bound individual calls through the
// context.
//
// This package is the main entry point into this library. The rpc and rest
// transport packages can be used outside of it, but it's not a primary
// design goal.
package svnode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/blinklabs-io/gsvnode/rest"
	"github.com/blinklabs-io/gsvnode/rpc"
	"github.com/blinklabs-io/gsvnode/transport"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

var (
	// ErrPartialCredentials indicates exactly one of username and password
	// was configured. Credentials must be provided together or not at all.
	ErrPartialCredentials = errors.New(
		"username and password must be configured together",
	)
	// ErrNoAddress indicates neither a node address nor a network was
	// configured.
	ErrNoAddress = errors.New("no node address or network configured")
)

// NodeClient is the read surface of a node. It is satisfied by *Client and
// lets callers swap in alternative node backends behind the same three
// operations.
type NodeClient interface {
	GetBestBlockHash(ctx context.Context) (*chainhash.Hash, error)
	GetBlockHeader(
		ctx context.Context,
		hash *chainhash.Hash,
	) (*wire.BlockHeader, error)
	GetBlock(ctx context.Context, hash *chainhash.Hash) (*btcutil.Block, error)
}

// The Client type provides typed access to a single node over both the
// JSON-RPC and REST transports
type Client struct {
	address    string
	network    Network
	username   string
	password   string
	timeout    time.Duration
	httpClient *http.Client
	ownsClient bool
	logger     *slog.Logger
	rpcClient  *rpc.Client
	restClient *rest.Client
}

var _ NodeClient = (*Client)(nil)

// NewClient returns a new Client object with the specified options. The
// configuration is validated here and immutable afterward; no network I/O
// happens until the first operation is invoked.
func NewClient(options ...ClientOptionFunc) (*Client, error) {
	c := &Client{}
	// Apply provided options functions
	for _, option := range options {
		option(c)
	}
	if (c.username == "") != (c.password == "") {
		return nil, transport.NewConfigError(ErrPartialCredentials)
	}
	if c.address == "" {
		if c.network.DefaultRPCPort == 0 {
			return nil, transport.NewConfigError(ErrNoAddress)
		}
		c.address = c.network.DefaultAddress()
	}
	address, err := transport.NormalizeBaseURL(c.address)
	if err != nil {
		return nil, err
	}
	c.address = address
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
		c.ownsClient = true
	}
	rpcClient, err := rpc.NewClient(rpc.Config{
		BaseURL:    c.address,
		Username:   c.username,
		Password:   c.password,
		HTTPClient: c.httpClient,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, err
	}
	restClient, err := rest.NewClient(rest.Config{
		BaseURL:    c.address,
		HTTPClient: c.httpClient,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, err
	}
	c.rpcClient = rpcClient
	c.restClient = restClient
	return c, nil
}

// New is an alias to NewClient
func New(options ...ClientOptionFunc) (*Client, error) {
	return NewClient(options...)
}

// RPC returns the JSON-RPC transport client, for callers that need node
// methods beyond the typed operations
func (c *Client) RPC() *rpc.Client {
	return c.rpcClient
}

// REST returns the binary REST transport client
func (c *Client) REST() *rest.Client {
	return c.restClient
}

// Address returns the normalized node base URL
func (c *Client) Address() string {
	return c.address
}

// Network returns the network the client was configured with, or the zero
// Network when only an address was given
func (c *Client) Network() Network {
	return c.network
}

// Close releases idle connections held by the client's own HTTP transport.
// The client remains usable afterward; there is no closed state. An HTTP
// client supplied via WithHTTPClient is left untouched, since the caller
// may share it.
func (c *Client) Close() error {
	if c.ownsClient {
		c.httpClient.CloseIdleConnections()
	}
	return nil
}

// GetBestBlockHash returns the hash of the best block in the longest chain
// the node knows about.
func (c *Client) GetBestBlockHash(
	ctx context.Context,
) (*chainhash.Hash, error) {
	const method = "getbestblockhash"
	result, err := c.rpcClient.Call(ctx, method, nil)
	if err != nil {
		return nil, err
	}
	var hashStr string
	if err := json.Unmarshal(result, &hashStr); err != nil {
		return nil, transport.NewDecodeError(
			method,
			fmt.Errorf("result is not a string: %w", err),
		)
	}
	return parseHashString(method, hashStr)
}

// blockHeaderResult is the node's structured getblockheader reply. Pointer
// fields distinguish a missing field from a zero value.
type blockHeaderResult struct {
	Version           *int32  `json:"version"`
	PreviousBlockHash *string `json:"previousblockhash"`
	MerkleRoot        *string `json:"merkleroot"`
	Time              *int64  `json:"time"`
	Bits              *string `json:"bits"`
	Nonce             *uint32 `json:"nonce"`
}

// GetBlockHeader returns the decoded header of the block with the given
// hash. The hex-encoded hash is passed as the sole parameter, so the node
// replies in its structured form, which is mapped field by field into the
// domain header type. A reply missing any header field is a decode failure,
// never a header with defaulted fields.
func (c *Client) GetBlockHeader(
	ctx context.Context,
	hash *chainhash.Hash,
) (*wire.BlockHeader, error) {
	const method = "getblockheader"
	result, err := c.rpcClient.Call(ctx, method, []any{hash.String()})
	if err != nil {
		return nil, err
	}
	var hdr blockHeaderResult
	if err := json.Unmarshal(result, &hdr); err != nil {
		return nil, transport.NewDecodeError(
			method,
			fmt.Errorf("unmarshal header: %w", err),
		)
	}
	switch {
	case hdr.Version == nil:
		return nil, missingField(method, "version")
	case hdr.PreviousBlockHash == nil:
		return nil, missingField(method, "previousblockhash")
	case hdr.MerkleRoot == nil:
		return nil, missingField(method, "merkleroot")
	case hdr.Time == nil:
		return nil, missingField(method, "time")
	case hdr.Bits == nil:
		return nil, missingField(method, "bits")
	case hdr.Nonce == nil:
		return nil, missingField(method, "nonce")
	}
	prevBlock, err := parseHashString(method, *hdr.PreviousBlockHash)
	if err != nil {
		return nil, err
	}
	merkleRoot, err := parseHashString(method, *hdr.MerkleRoot)
	if err != nil {
		return nil, err
	}
	bits, err := strconv.ParseUint(*hdr.Bits, 16, 32)
	if err != nil {
		return nil, transport.NewDecodeError(
			method,
			fmt.Errorf("field %q is not a 32-bit hex value: %w", "bits", err),
		)
	}
	return &wire.BlockHeader{
		Version:    *hdr.Version,
		PrevBlock:  *prevBlock,
		MerkleRoot: *merkleRoot,
		Timestamp:  time.Unix(*hdr.Time, 0),
		Bits:       uint32(bits),
		Nonce:      *hdr.Nonce,
	}, nil
}

// GetBlock fetches the block with the given hash and deserializes it. This
// is the only operation routed over REST rather than RPC: block sizes are
// unbounded upward, and the binary form avoids JSON-encoding overhead
// proportional to block size.
func (c *Client) GetBlock(
	ctx context.Context,
	hash *chainhash.Hash,
) (*btcutil.Block, error) {
	resourcePath := rest.BlockPath(hash.String())
	raw, err := c.restClient.FetchBinary(ctx, resourcePath)
	if err != nil {
		return nil, err
	}
	block, err := btcutil.NewBlockFromBytes(raw)
	if err != nil {
		return nil, transport.NewDecodeError(
			resourcePath,
			fmt.Errorf("deserialize block: %w", err),
		)
	}
	return block, nil
}

// parseHashString decodes a block hash from the node's hex form, enforcing
// the exact 64-character length before handing off to chainhash, which
// would otherwise zero-pad short input.
func parseHashString(op string, hashStr string) (*chainhash.Hash, error) {
	if len(hashStr) != chainhash.MaxHashStringSize {
		return nil, transport.NewDecodeError(
			op,
			fmt.Errorf(
				"block hash %q: expected %d hex characters, got %d",
				hashStr,
				chainhash.MaxHashStringSize,
				len(hashStr),
			),
		)
	}
	hash, err := chainhash.NewHashFromStr(hashStr)
	if err != nil {
		return nil, transport.NewDecodeError(
			op,
			fmt.Errorf("block hash %q: %w", hashStr, err),
		)
	}
	return hash, nil
}

func missingField(op string, field string) error {
	return transport.NewDecodeError(
		op,
		fmt.Errorf("reply missing field %q", field),
	)
}
