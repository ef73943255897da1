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
	"io"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// NodeProfile describes how to reach a node. Profiles come from a YAML
// file, from the environment, or from commandline flags; empty fields are
// filled from the next source in that order.
type NodeProfile struct {
	Address  string `yaml:"address"`
	Network  string `yaml:"network"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// NewNodeProfileFromFile loads a node profile from a YAML file
func NewNodeProfileFromFile(path string) (*NodeProfile, error) {
	dataFile, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer dataFile.Close()
	return NewNodeProfileFromReader(dataFile)
}

// NewNodeProfileFromReader loads a node profile from YAML content
func NewNodeProfileFromReader(r io.Reader) (*NodeProfile, error) {
	p := &NodeProfile{}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, err
	}
	return p, nil
}

// NewNodeProfileFromEnv builds a node profile from the BSV_NODE_URL,
// BSV_NODE_USER, and BSV_NODE_PASSWORD environment variables. An optional
// .env file in the working directory is loaded first.
func NewNodeProfileFromEnv() *NodeProfile {
	_ = godotenv.Load()
	return &NodeProfile{
		Address:  os.Getenv("BSV_NODE_URL"),
		Username: os.Getenv("BSV_NODE_USER"),
		Password: os.Getenv("BSV_NODE_PASSWORD"),
	}
}

// Merge fills empty fields of the profile from another profile
func (p *NodeProfile) Merge(other *NodeProfile) {
	if p.Address == "" {
		p.Address = other.Address
	}
	if p.Network == "" {
		p.Network = other.Network
	}
	if p.Username == "" {
		p.Username = other.Username
	}
	if p.Password == "" {
		p.Password = other.Password
	}
}
