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

type blockFetchFlags struct {
	*common.GlobalFlags
	hash string
}

func main() {
	// Parse commandline
	f := blockFetchFlags{
		GlobalFlags: common.NewGlobalFlags(),
	}
	f.Flagset.StringVar(&f.hash, "hash", "", "hash of the block to fetch")
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

	block, err := client.GetBlock(context.Background(), blockHash)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}

	// Display block info
	msgBlock := block.MsgBlock()
	fmt.Printf("Block %s:\n\n", block.Hash())
	fmt.Printf("Transactions: %d\n", len(msgBlock.Transactions))
	fmt.Printf("Serialized size: %d bytes\n", msgBlock.SerializeSize())
	fmt.Printf(
		"Timestamp: %s\n",
		msgBlock.Header.Timestamp.UTC().Format(time.RFC3339),
	)
}
