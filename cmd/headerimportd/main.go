// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command headerimportd is a small demonstration daemon that reads a
// newline-delimited file of hex-encoded 80-byte block headers and feeds
// each one through a blockchain.BlockChain backed by a LevelDB header
// store, logging acceptance, orphaning, and reorganize notifications as it
// goes. It exercises the ambient configuration/logging stack together with
// the chain engine; it does not validate transactions, since headers carry
// none.
package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/gosatsv/svcore/blockchain"
	"github.com/gosatsv/svcore/blockstore/leveldbstore"
	"github.com/gosatsv/svcore/chaincfg"
	svlog "github.com/gosatsv/svcore/log"
	"github.com/gosatsv/svcore/wire"
)

func main() {
	if err := realMain(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func realMain() error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	logWriter, err := svlog.NewRotatingFileWriter(cfg.LogFile, 10, 3)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logWriter.Close()

	logger := svlog.NewSlogLogger("HDRI", io.MultiWriter(os.Stdout, logWriter))
	if level, ok := svlog.LevelFromString(cfg.Debug); ok {
		logger.SetLevel(level)
	}
	blockchain.UseLogger(logger)

	params, err := networkParams(cfg.Network)
	if err != nil {
		return err
	}

	store, err := leveldbstore.Open(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open header store: %w", err)
	}
	defer store.Close()

	chain, err := blockchain.New(params.BlockChainConfig(store))
	if err != nil {
		return fmt.Errorf("failed to initialize chain engine: %w", err)
	}

	chain.AddNewBlockListener(func(block *blockchain.StoredBlock) {
		logger.Infof("new_best_block height=%d hash=%s", block.Height(), block.Hash())
	}, blockchain.SameThreadExecutor)

	chain.AddReorganizeListener(func(split *blockchain.StoredBlock, oldChain, newChain []*blockchain.StoredBlock) {
		logger.Warnf("reorganize split_height=%d disconnected=%d connected=%d",
			split.Height(), len(oldChain), len(newChain))
	}, blockchain.SameThreadExecutor)

	f, err := os.Open(cfg.HeadersFile)
	if err != nil {
		return fmt.Errorf("failed to open headers file: %w", err)
	}
	defer f.Close()

	accepted, orphaned, rejected := 0, 0, 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		raw, err := hex.DecodeString(line)
		if err != nil {
			logger.Errorf("skipping malformed line: %v", err)
			rejected++
			continue
		}

		var header wire.BlockHeader
		if err := header.FromBytes(raw); err != nil {
			logger.Errorf("skipping malformed header: %v", err)
			rejected++
			continue
		}

		result, err := chain.Add(header)
		if err != nil {
			logger.Errorf("rejected header %s: %v", header.BlockHash(), err)
			rejected++
			continue
		}
		if result == blockchain.Orphaned {
			orphaned++
			continue
		}
		accepted++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading headers file: %w", err)
	}

	logger.Infof("import complete accepted=%d orphaned=%d rejected=%d best_height=%d",
		accepted, orphaned, rejected, chain.BestHeight())
	return nil
}

func networkParams(name string) (*chaincfg.Params, error) {
	switch name {
	case "mainnet":
		return &chaincfg.MainNetParams, nil
	case "testnet":
		return &chaincfg.TestNetParams, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	default:
		return nil, fmt.Errorf("unknown network %q", name)
	}
}
