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

package common

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	svnode "github.com/blinklabs-io/gsvnode"
)

type GlobalFlags struct {
	Flagset  *flag.FlagSet
	Address  string
	Network  string
	Username string
	Password string
	Profile  string
	Debug    bool
}

func NewGlobalFlags() *GlobalFlags {
	f := &GlobalFlags{
		Flagset: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}
	f.Flagset.StringVar(
		&f.Address,
		"address",
		"",
		"node base URL, e.g. http://localhost:8332",
	)
	f.Flagset.StringVar(
		&f.Network,
		"network",
		"",
		"named network to derive the default node endpoint from",
	)
	f.Flagset.StringVar(&f.Username, "username", "", "RPC username")
	f.Flagset.StringVar(&f.Password, "password", "", "RPC password")
	f.Flagset.StringVar(
		&f.Profile,
		"profile",
		"",
		"path to a YAML node profile file",
	)
	f.Flagset.BoolVar(&f.Debug, "debug", false, "enable debug logging")
	return f
}

func (f *GlobalFlags) Parse() {
	if err := f.Flagset.Parse(os.Args[1:]); err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}
	// Fill unset flags from the profile file, then from the environment
	profile := &NodeProfile{
		Address:  f.Address,
		Network:  f.Network,
		Username: f.Username,
		Password: f.Password,
	}
	if f.Profile != "" {
		fileProfile, err := NewNodeProfileFromFile(f.Profile)
		if err != nil {
			fmt.Printf("failed to load node profile: %s\n", err)
			os.Exit(1)
		}
		profile.Merge(fileProfile)
	}
	profile.Merge(NewNodeProfileFromEnv())
	f.Address = profile.Address
	f.Network = profile.Network
	f.Username = profile.Username
	f.Password = profile.Password
	if f.Network != "" &&
		svnode.NetworkByName(f.Network) == svnode.NetworkInvalid {
		fmt.Printf("Invalid network specified: %s\n", f.Network)
		os.Exit(1)
	}
}

// CreateClient builds a node client from the resolved flags
func CreateClient(f *GlobalFlags) *svnode.Client {
	if f.Address == "" && f.Network == "" {
		fmt.Printf("You must specify one of -address or -network\n\n")
		f.Flagset.PrintDefaults()
		os.Exit(1)
	}
	logLevel := slog.LevelInfo
	if f.Debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}),
	)
	options := []svnode.ClientOptionFunc{
		svnode.WithLogger(logger),
	}
	if f.Address != "" {
		options = append(options, svnode.WithAddress(f.Address))
	}
	if f.Network != "" {
		options = append(
			options,
			svnode.WithNetwork(svnode.NetworkByName(f.Network)),
		)
	}
	if f.Username != "" || f.Password != "" {
		options = append(
			options,
			svnode.WithUsername(f.Username),
			svnode.WithPassword(f.Password),
		)
	}
	client, err := svnode.NewClient(options...)
	if err != nil {
		fmt.Printf("failed to create client: %s\n", err)
		os.Exit(1)
	}
	return client
}
