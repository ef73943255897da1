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

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/blinklabs-io/gsvnode/cmd/common"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

type blockHeaderFlags struct {
	*common.GlobalFlags
	hash string
}

func main() {
	// Parse commandline
	f := blockHeaderFlags{
		GlobalFlags: common.NewGlobalFlags(),
	}
	f.Flagset.StringVar(
		&f.hash,
		"hash",
		"",
		"hash of the block header to fetch",
	)
	f.Parse()
	if f.hash == "" {
		fmt.Printf("You must specify -hash\n\n")
		f.Flagset.PrintDefaults()
		os.Exit(1)
	}
	blockHash, err := chainhash.NewHashFromStr(f.hash)
	if err != nil {
		fmt.Printf("ERROR: failed to parse block hash: %s\n", err)
		os.Exit(1)
	}
	// Create client
	client := common.CreateClient(f.GlobalFlags)
	defer client.Close()

	header, err := client.GetBlockHeader(context.Background(), blockHash)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}

	fmt.Printf("Block header %s:\n\n", blockHash)
	fmt.Printf("Version: %d (0x%08x)\n", header.Version, header.Version)
	fmt.Printf("Previous block: %s\n", header.PrevBlock)
	fmt.Printf("Merkle root: %s\n", header.MerkleRoot)
	fmt.Printf(
		"Timestamp: %s\n",
		header.Timestamp.UTC().Format(time.RFC3339),
	)
	fmt.Printf("Bits: %08x\n", header.Bits)
	fmt.Printf("Nonce: %d\n", header.Nonce)
}
