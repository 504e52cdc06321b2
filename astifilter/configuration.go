package main

import (
	"flag"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/asticode/go-astifilter"
)

// Flags
var (
	addr       = flag.String("a", "", "the server addr")
	configPath = flag.String("c", "", "the config path")
)

// Configuration represents a configuration
type Configuration struct {
	Filter astifilter.Configuration `toml:"filter"`
}

func newConfiguration() (c Configuration, err error) {
	// Defaults
	c = Configuration{
		Filter: astifilter.Configuration{
			Server: astifilter.ConfigurationServer{
				Addr: "127.0.0.1:4000",
			},
		},
	}

	// Config file
	if *configPath != "" {
		if _, err = toml.DecodeFile(*configPath, &c); err != nil {
			err = fmt.Errorf("main: decoding %s failed: %w", *configPath, err)
			return
		}
	}

	// Flag overrides
	if *addr != "" {
		c.Filter.Server.Addr = *addr
	}
	return
}
