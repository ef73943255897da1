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

package svnode

import "fmt"

// Network definitions
var (
	NetworkMainnet = Network{
		Name:           "mainnet",
		Magic:          0xe8f3e1e3,
		DefaultRPCPort: 8332,
	}
	NetworkTestnet = Network{
		Name:           "testnet",
		Magic:          0xf4f3e5f4,
		DefaultRPCPort: 18332,
	}
	NetworkSTN = Network{
		Name:           "stn",
		Magic:          0xf9c4cefb,
		DefaultRPCPort: 9332,
	}
	NetworkRegtest = Network{
		Name:           "regtest",
		Magic:          0xdab5bffa,
		DefaultRPCPort: 18332,
	}

	NetworkInvalid = Network{
		Name: "invalid",
	} // NetworkInvalid is used as a return value for lookup functions when a network isn't found
)

// List of valid networks for use in lookup functions
var networks = []Network{
	NetworkMainnet,
	NetworkTestnet,
	NetworkSTN,
	NetworkRegtest,
}

// Network represents a Bitcoin SV network
type Network struct {
	Name string
	// Magic is the P2P message-start word in host order, as btcd encodes it
	Magic          uint32
	DefaultRPCPort uint16
}

// DefaultAddress returns the conventional local node endpoint for the
// network. The REST interface is served on the same port as RPC.
func (n Network) DefaultAddress() string {
	return fmt.Sprintf("http://localhost:%d", n.DefaultRPCPort)
}

// NetworkByName returns a predefined network by name
func NetworkByName(name string) Network {
	for _, network := range networks {
		if network.Name == name {
			return network
		}
	}
	return NetworkInvalid
}

// NetworkByMagic returns a predefined network by P2P magic
func NetworkByMagic(magic uint32) Network {
	for _, network := range networks {
		if network.Magic == magic {
			return network
		}
	}
	return NetworkInvalid
}
