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

package svnode_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	svnode "github.com/blinklabs-io/gsvnode"
	"github.com/blinklabs-io/gsvnode/internal/test"
	"github.com/blinklabs-io/gsvnode/rpc"
	"github.com/blinklabs-io/gsvnode/transport"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// decodeRPCRequest reads the request envelope a handler received. Handlers
// run on server goroutines, so failures are recorded with assert rather than
// aborting the test.
func decodeRPCRequest(t *testing.T, r *http.Request) rpc.Request {
	t.Helper()
	var req rpc.Request
	assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
	return req
}

func writeRPCResult(
	t *testing.T,
	w http.ResponseWriter,
	reqID string,
	result any,
) {
	t.Helper()
	resultJSON, err := json.Marshal(result)
	assert.NoError(t, err)
	fmt.Fprintf(w, `{"result":%s,"error":null,"id":%q}`, resultJSON, reqID)
}

// headerFields returns a complete structured getblockheader reply matching
// the header of the given block, including fields the node sends that the
// client does not map.
func headerFields(msgBlock *wire.MsgBlock) map[string]any {
	return map[string]any{
		"hash":              msgBlock.BlockHash().String(),
		"confirmations":     1,
		"height":            0,
		"version":           msgBlock.Header.Version,
		"versionHex":        fmt.Sprintf("%08x", msgBlock.Header.Version),
		"merkleroot":        msgBlock.Header.MerkleRoot.String(),
		"time":              msgBlock.Header.Timestamp.Unix(),
		"mediantime":        msgBlock.Header.Timestamp.Unix(),
		"nonce":             msgBlock.Header.Nonce,
		"bits":              fmt.Sprintf("%08x", msgBlock.Header.Bits),
		"difficulty":        1,
		"previousblockhash": msgBlock.Header.PrevBlock.String(),
	}
}

func TestNewClient(t *testing.T) {
	t.Run("no address or network", func(t *testing.T) {
		_, err := svnode.NewClient()
		require.Error(t, err)
		assert.ErrorIs(t, err, svnode.ErrNoAddress)
		assert.True(t, transport.IsKind(err, transport.KindConfig))
	})
	t.Run("username without password", func(t *testing.T) {
		_, err := svnode.NewClient(
			svnode.WithAddress("http://localhost:8332"),
			svnode.WithUsername("rpcuser"),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, svnode.ErrPartialCredentials)
		assert.True(t, transport.IsKind(err, transport.KindConfig))
	})
	t.Run("password without username", func(t *testing.T) {
		_, err := svnode.NewClient(
			svnode.WithAddress("http://localhost:8332"),
			svnode.WithPassword("rpcpass"),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, svnode.ErrPartialCredentials)
	})
	t.Run("unsupported address scheme", func(t *testing.T) {
		_, err := svnode.NewClient(
			svnode.WithAddress("ftp://localhost:8332"),
		)
		require.Error(t, err)
		assert.True(t, transport.IsKind(err, transport.KindConfig))
	})
	t.Run("network default address", func(t *testing.T) {
		client, err := svnode.NewClient(
			svnode.WithNetwork(svnode.NetworkMainnet),
		)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8332", client.Address())
		assert.Equal(t, svnode.NetworkMainnet, client.Network())
	})
	t.Run("address overrides network default", func(t *testing.T) {
		client, err := svnode.NewClient(
			svnode.WithAddress("http://node.example.com:8332"),
			svnode.WithNetwork(svnode.NetworkMainnet),
		)
		require.NoError(t, err)
		assert.Equal(t, "http://node.example.com:8332", client.Address())
	})
	t.Run("trailing slash trimmed", func(t *testing.T) {
		client, err := svnode.NewClient(
			svnode.WithAddress("http://localhost:8332/"),
		)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8332", client.Address())
	})
}

func TestNewClientRejectsBeforeAnyRequest(t *testing.T) {
	// Construction failures must be decided locally, without touching the
	// configured node
	var requests atomic.Int32
	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
		}),
	)
	defer srv.Close()
	_, err := svnode.NewClient(
		svnode.WithAddress(srv.URL),
		svnode.WithUsername("rpcuser"),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, svnode.ErrPartialCredentials)
	assert.Equal(t, int32(0), requests.Load())
}

func TestGetBestBlockHash(t *testing.T) {
	msgBlock, _ := test.BuildBlock()
	tipHash := msgBlock.BlockHash()
	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req := decodeRPCRequest(t, r)
			assert.Equal(t, "getbestblockhash", req.Method)
			assert.Equal(t, []any{}, req.Params)
			writeRPCResult(t, w, req.ID, tipHash.String())
		}),
	)
	defer srv.Close()
	client, err := svnode.NewClient(svnode.WithAddress(srv.URL))
	require.NoError(t, err)
	hash, err := client.GetBestBlockHash(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &tipHash, hash)
	assert.Equal(t, tipHash.String(), hash.String())
}

func TestGetBestBlockHashDecodeErrors(t *testing.T) {
	testDefs := []struct {
		name   string
		result any
	}{
		{
			name:   "not a string",
			result: 42,
		},
		{
			name:   "not hex",
			result: strings.Repeat("zz", 32),
		},
		{
			name:   "wrong length",
			result: "abcd",
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			srv := httptest.NewServer(
				http.HandlerFunc(
					func(w http.ResponseWriter, r *http.Request) {
						req := decodeRPCRequest(t, r)
						writeRPCResult(t, w, req.ID, testDef.result)
					},
				),
			)
			defer srv.Close()
			client, err := svnode.NewClient(svnode.WithAddress(srv.URL))
			require.NoError(t, err)
			_, err = client.GetBestBlockHash(context.Background())
			require.Error(t, err)
			assert.True(
				t,
				transport.IsKind(err, transport.KindDecode),
				"expected decode error, got: %v",
				err,
			)
		})
	}
}

func TestGetBlockHeader(t *testing.T) {
	msgBlock, _ := test.BuildBlock()
	blockHash := msgBlock.BlockHash()
	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req := decodeRPCRequest(t, r)
			assert.Equal(t, "getblockheader", req.Method)
			assert.Equal(t, []any{blockHash.String()}, req.Params)
			writeRPCResult(t, w, req.ID, headerFields(msgBlock))
		}),
	)
	defer srv.Close()
	client, err := svnode.NewClient(svnode.WithAddress(srv.URL))
	require.NoError(t, err)
	header, err := client.GetBlockHeader(context.Background(), &blockHash)
	require.NoError(t, err)
	assert.Equal(t, &msgBlock.Header, header)
	assert.Equal(t, blockHash, header.BlockHash())
}

func TestGetBlockHeaderDecodeErrors(t *testing.T) {
	msgBlock, _ := test.BuildBlock()
	blockHash := msgBlock.BlockHash()
	mapped := []string{
		"version",
		"previousblockhash",
		"merkleroot",
		"time",
		"bits",
		"nonce",
	}
	type headerMutation struct {
		name   string
		mutate func(fields map[string]any)
	}
	testDefs := []headerMutation{
		{
			name: "bits not hex",
			mutate: func(fields map[string]any) {
				fields["bits"] = "xyz"
			},
		},
		{
			name: "previousblockhash wrong length",
			mutate: func(fields map[string]any) {
				fields["previousblockhash"] = "abcd"
			},
		},
		{
			name: "version wrong type",
			mutate: func(fields map[string]any) {
				fields["version"] = "one"
			},
		},
	}
	for _, field := range mapped {
		testDefs = append(testDefs, headerMutation{
			name: "missing " + field,
			mutate: func(fields map[string]any) {
				delete(fields, field)
			},
		})
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			fields := headerFields(msgBlock)
			testDef.mutate(fields)
			srv := httptest.NewServer(
				http.HandlerFunc(
					func(w http.ResponseWriter, r *http.Request) {
						req := decodeRPCRequest(t, r)
						writeRPCResult(t, w, req.ID, fields)
					},
				),
			)
			defer srv.Close()
			client, err := svnode.NewClient(svnode.WithAddress(srv.URL))
			require.NoError(t, err)
			_, err = client.GetBlockHeader(context.Background(), &blockHash)
			require.Error(t, err)
			assert.True(
				t,
				transport.IsKind(err, transport.KindDecode),
				"expected decode error, got: %v",
				err,
			)
		})
	}
}

func TestGetBlockHeaderNodeError(t *testing.T) {
	// Unknown hashes are reported by the node as code -5 with HTTP 500;
	// the structured error must surface, not the status
	msgBlock, _ := test.BuildBlock()
	blockHash := msgBlock.BlockHash()
	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req := decodeRPCRequest(t, r)
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintf(
				w,
				`{"result":null,"error":{"code":-5,"message":"Block not found"},"id":%q}`,
				req.ID,
			)
		}),
	)
	defer srv.Close()
	client, err := svnode.NewClient(svnode.WithAddress(srv.URL))
	require.NoError(t, err)
	_, err = client.GetBlockHeader(context.Background(), &blockHash)
	require.Error(t, err)
	var nodeErr *transport.Error
	require.ErrorAs(t, err, &nodeErr)
	assert.Equal(t, transport.KindRPC, nodeErr.Kind)
	assert.Equal(t, -5, nodeErr.Code)
	assert.Equal(t, "Block not found", nodeErr.Message)
}

func TestGetBlock(t *testing.T) {
	msgBlock, blockBytes := test.BuildBlock()
	blockHash := msgBlock.BlockHash()
	var gets, posts atomic.Int32
	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				posts.Add(1)
				return
			}
			gets.Add(1)
			assert.Equal(
				t,
				"/rest/block/"+blockHash.String()+".bin",
				r.URL.Path,
			)
			assert.Empty(
				t,
				r.Header.Get("Authorization"),
				"unexpected Authorization header on REST request",
			)
			_, _ = w.Write(blockBytes)
		}),
	)
	defer srv.Close()
	// Credentials are configured to prove the REST fetch never carries them
	client, err := svnode.NewClient(
		svnode.WithAddress(srv.URL),
		svnode.WithUsername("rpcuser"),
		svnode.WithPassword("rpcpass"),
	)
	require.NoError(t, err)
	block, err := client.GetBlock(context.Background(), &blockHash)
	require.NoError(t, err)
	assert.Equal(t, blockHash, *block.Hash())
	assert.Len(t, block.Transactions(), 1)
	assert.Equal(t, int32(1), gets.Load())
	assert.Equal(t, int32(0), posts.Load())
}

func TestGetBlockErrors(t *testing.T) {
	msgBlock, blockBytes := test.BuildBlock()
	blockHash := msgBlock.BlockHash()
	t.Run("truncated block bytes", func(t *testing.T) {
		srv := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write(blockBytes[:10])
			}),
		)
		defer srv.Close()
		client, err := svnode.NewClient(svnode.WithAddress(srv.URL))
		require.NoError(t, err)
		_, err = client.GetBlock(context.Background(), &blockHash)
		require.Error(t, err)
		assert.True(
			t,
			transport.IsKind(err, transport.KindDecode),
			"expected decode error, got: %v",
			err,
		)
	})
	t.Run("block not found", func(t *testing.T) {
		srv := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "Block not found", http.StatusNotFound)
			}),
		)
		defer srv.Close()
		client, err := svnode.NewClient(svnode.WithAddress(srv.URL))
		require.NoError(t, err)
		_, err = client.GetBlock(context.Background(), &blockHash)
		require.Error(t, err)
		var nodeErr *transport.Error
		require.ErrorAs(t, err, &nodeErr)
		assert.Equal(t, transport.KindHTTP, nodeErr.Kind)
		assert.Equal(t, http.StatusNotFound, nodeErr.Status)
	})
}

func TestClientConcurrentUse(t *testing.T) {
	defer goleak.VerifyNone(t)
	msgBlock, blockBytes := test.BuildBlock()
	tipHash := msgBlock.BlockHash()
	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				_, _ = w.Write(blockBytes)
				return
			}
			req := decodeRPCRequest(t, r)
			writeRPCResult(t, w, req.ID, tipHash.String())
		}),
	)
	defer srv.Close()
	client, err := svnode.NewClient(svnode.WithAddress(srv.URL))
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, client.Close())
	}()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			hash, err := client.GetBestBlockHash(context.Background())
			assert.NoError(t, err)
			if hash != nil {
				assert.Equal(t, tipHash, *hash)
			}
		}()
		go func() {
			defer wg.Done()
			block, err := client.GetBlock(context.Background(), &tipHash)
			assert.NoError(t, err)
			if block != nil {
				assert.Equal(t, tipHash, *block.Hash())
			}
		}()
	}
	wg.Wait()
}
