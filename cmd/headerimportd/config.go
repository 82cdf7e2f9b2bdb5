// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"
)

var (
	defaultHomeDir    = filepath.Join(appDataDir(), "headerimportd")
	defaultConfigFile = filepath.Join(defaultHomeDir, "headerimportd.conf")
	defaultDataDir    = filepath.Join(defaultHomeDir, "data")
	defaultLogFile    = filepath.Join(defaultHomeDir, "headerimportd.log")
)

// config defines the configuration options for headerimportd.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ConfigFile  string `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir     string `short:"d" long:"datadir" description:"Directory to store the LevelDB header store"`
	LogFile     string `long:"logfile" description:"File to write rotated logs to"`
	Network     string `short:"n" long:"network" description:"Network to import headers for (mainnet, testnet, regtest)"`
	HeadersFile string `short:"f" long:"headers" description:"Newline-delimited hex-encoded 80-byte headers to import" required:"true"`
	Debug       string `long:"debuglevel" description:"Logging level (trace, debug, info, warn, error, off)"`
}

// appDataDir returns the default base directory used for application data,
// honoring the user's home directory the way AppDataDir-style helpers do
// across the wider pack, without the registry/XDG dance a real desktop
// companion app would want: headerimportd is a server-side demonstration
// tool and a single $HOME/.headerimportd default is enough.
func appDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".headerimportd")
}

// loadConfig reads flags and an optional ini-style config file, with
// command-line values taking precedence, mirroring the two-pass
// pre-parse/parse idiom the rest of the pack's CLIs use.
func loadConfig() (*config, []string, error) {
	cfg := config{
		ConfigFile: defaultConfigFile,
		DataDir:    defaultDataDir,
		LogFile:    defaultLogFile,
		Network:    "mainnet",
		Debug:      "info",
	}

	preCfg := cfg
	preParser := flags.NewParser(&preCfg, flags.HelpFlag)
	_, err := preParser.Parse()
	if err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			return nil, nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(preCfg.ConfigFile), 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create home directory: %w", err)
	}

	parser := flags.NewParser(&cfg, flags.Default)
	err = flags.NewIniParser(parser).ParseFile(preCfg.ConfigFile)
	if err != nil {
		if _, ok := err.(*os.PathError); !ok {
			return nil, nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	remainingArgs, err := parser.Parse()
	if err != nil {
		if e, ok := err.(*flags.Error); !ok || e.Type != flags.ErrHelp {
			return nil, nil, err
		}
		os.Exit(0)
	}

	return &cfg, remainingArgs, nil
}
