// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command poststakesim assembles a small synthetic chain in memory and
// drives it through ComputeNextStakeModifier, CheckStakeTimeKernelHash, and
// the stake-modifier checksum/checkpoint pair, printing the results. It
// exists to give an operator a runnable end-to-end walk of the kernel
// package without a real node database behind it.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btclog"
	flags "github.com/jessevdk/go-flags"
	"github.com/solarcoin/solarcoin-wallet-dev/blockchain"
)

type config struct {
	Network string `long:"network" description:"network parameters to simulate" choice:"mainnet" choice:"testnet" default:"testnet"`
	Blocks  int    `long:"blocks" description:"number of blocks to simulate past genesis" default:"6500"`
	Verbose bool   `short:"v" long:"verbose" description:"enable debug logging"`
}

func main() {
	cfg := config{}
	if _, err := flags.Parse(&cfg); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}

	backend := btclog.NewBackend(os.Stdout)
	logger := backend.Logger("PSTK")
	if cfg.Verbose {
		logger.SetLevel(btclog.LevelDebug)
	} else {
		logger.SetLevel(btclog.LevelInfo)
	}
	blockchain.UseLogger(logger)

	params := &blockchain.TestNetParams
	if cfg.Network == "mainnet" {
		params = &blockchain.MainNetParams
	}

	if err := run(params, cfg.Blocks, logger); err != nil {
		logger.Errorf("simulation failed: %v", err)
		os.Exit(1)
	}
}

// syntheticHash derives a deterministic, height-dependent hash so the
// simulated chain's entropy bits and candidate ordering vary block to block
// without depending on any real proof-of-work or proof-of-stake solving.
func syntheticHash(height int32, salt string) chainhash.Hash {
	return chainhash.HashH([]byte(fmt.Sprintf("poststakesim-%s-%d", salt, height)))
}

func run(params *blockchain.Params, numBlocks int, logger btclog.Logger) error {
	const genesisTime = 1392000000
	const powBits = 0x1e0fffff

	chain := newMemChain(genesisTime + int64(numBlocks)*params.TargetSpacing + 3600)

	genesis := &blockchain.BlockIndex{
		Hash:   syntheticHash(0, "block"),
		Height: 0,
		Time:   genesisTime,
		Bits:   powBits,
	}
	modifier, generated, err := blockchain.ComputeNextStakeModifier(params, genesis)
	if err != nil {
		return fmt.Errorf("genesis stake modifier: %w", err)
	}
	genesis.StakeModifier = modifier
	genesis.SetGeneratedStakeModifier(generated)
	checksum, err := blockchain.GetStakeModifierChecksum(genesis)
	if err != nil {
		return fmt.Errorf("genesis checksum: %w", err)
	}
	genesis.StakeModifierChecksum = checksum
	if !blockchain.CheckStakeModifierCheckpoints(params, genesis.Height, checksum) {
		return blockchain.RuleError{ErrorCode: blockchain.ErrStakeModifierCheckpoint,
			Description: fmt.Sprintf("genesis checksum %#08x fails checkpoint", checksum)}
	}
	chain.addBlock(genesis)
	logger.Infof("genesis: modifier=%#016x checksum=%#08x", genesis.StakeModifier, genesis.StakeModifierChecksum)

	var firstPoS *blockchain.BlockIndex
	prev := genesis
	for height := int32(1); height <= int32(numBlocks); height++ {
		block := &blockchain.BlockIndex{
			Hash:   syntheticHash(height, "block"),
			Height: height,
			Time:   prev.Time + params.TargetSpacing,
			Bits:   powBits,
			Prev:   prev,
		}
		block.SetStakeEntropyBit(blockchain.ComputeStakeEntropyBit(block.Hash))

		if block.IsProofOfStake(params) {
			block.HashProofOfStake = syntheticHash(height, "kernel")
			if firstPoS == nil {
				firstPoS = block
			}
		}

		modifier, generated, err := blockchain.ComputeNextStakeModifier(params, block)
		if err != nil {
			return fmt.Errorf("stake modifier at height %d: %w", height, err)
		}
		block.StakeModifier = modifier
		block.SetGeneratedStakeModifier(generated)

		checksum, err := blockchain.GetStakeModifierChecksum(block)
		if err != nil {
			return fmt.Errorf("checksum at height %d: %w", height, err)
		}
		block.StakeModifierChecksum = checksum
		if !blockchain.CheckStakeModifierCheckpoints(params, height, checksum) {
			return blockchain.RuleError{ErrorCode: blockchain.ErrStakeModifierCheckpoint,
				Description: fmt.Sprintf("checksum %#08x at height %d fails checkpoint", checksum, height)}
		}

		chain.addBlock(block)
		prev = block
	}
	tip := prev
	logger.Infof("tip: height=%d modifier=%#016x checksum=%#08x", tip.Height, tip.StakeModifier, tip.StakeModifierChecksum)

	if firstPoS == nil {
		return errors.New("no proof-of-stake block generated, increase --blocks")
	}

	kernelTxHash := syntheticHash(firstPoS.Height, "kernel-tx")
	chain.addTx(kernelTxHash, memTx{
		value:           5000 * blockchain.Coin,
		time:            firstPoS.Time - params.StakeMinAge - 3600,
		containingBlock: firstPoS.Hash,
		offset:          100,
	})

	coinstake := memStakeTx{
		coinstake: true,
		time:      firstPoS.Time + params.StakeMinAge + 3600,
		inputs:    []wire.OutPoint{{Hash: kernelTxHash, Index: 0}},
	}

	hashProof, targetProof, ok, err := blockchain.CheckProofOfStake(chain, params, coinstake, tip.Bits, tip)
	if err != nil {
		re, isRuleError := err.(blockchain.RuleError)
		if !isRuleError || re.ErrorCode != blockchain.ErrKernelTargetNotMet {
			return fmt.Errorf("check proof of stake: %w", err)
		}
		logger.Infof("kernel check: hash proof of stake did not clear target, synthetic coinstake not accepted")
	} else {
		logger.Infof("kernel check: ok=%v hash=%s target=%s", ok, hashProof, targetProof)
	}

	stakeTime, err := blockchain.GetStakeTime(chain, params, tip.Height+1, coinstake, tip)
	if err != nil {
		return fmt.Errorf("get stake time: %w", err)
	}
	coinAge, err := blockchain.GetCoinAge(chain, params, coinstake)
	if err != nil {
		return fmt.Errorf("get coin age: %w", err)
	}
	logger.Infof("stake accounting: stakeTime=%d coinAge=%d", stakeTime, coinAge)

	return nil
}
