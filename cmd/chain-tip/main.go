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

	"github.com/blinklabs-io/gsvnode/cmd/common"
)

type chainTipFlags struct {
	*common.GlobalFlags
}

func main() {
	// Parse commandline
	f := chainTipFlags{
		GlobalFlags: common.NewGlobalFlags(),
	}
	f.Parse()
	// Create client
	client := common.CreateClient(f.GlobalFlags)
	defer client.Close()

	hash, err := client.GetBestBlockHash(context.Background())
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}

	fmt.Print("Current chain tip:\n\n")
	fmt.Printf("Block hash: %s\n", hash)
}
