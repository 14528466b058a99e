// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/rico/builtin/rico/config"
	"github.com/vechain/rico/thor"
)

// saleFile is the yaml layout of a sale configuration. Amounts are decimal or 0x prefixed hex strings.
type saleFile struct {
	Token           thor.Address          `yaml:"token"`
	Authority       thor.Address          `yaml:"authority"`
	Beneficiary     thor.Address          `yaml:"beneficiary"`
	StartBlock      uint32                `yaml:"startBlock"`
	CommitBlocks    uint32                `yaml:"commitBlocks"`
	CommitPrice     *math.HexOrDecimal256 `yaml:"commitPrice"`
	StageCount      uint32                `yaml:"stageCount"`
	StageBlocks     uint32                `yaml:"stageBlocks"`
	PriceStep       *math.HexOrDecimal256 `yaml:"priceStep"`
	Decimals        uint8                 `yaml:"decimals"`
	MinContribution *math.HexOrDecimal256 `yaml:"minContribution"`
	TokenSupply     *math.HexOrDecimal256 `yaml:"tokenSupply"`
}

func bigOf(v *math.HexOrDecimal256) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set((*big.Int)(v))
}

// parseSaleConfig decodes and validates a sale configuration.
func parseSaleConfig(data []byte) (*config.Config, error) {
	var f saleFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(err, "decode sale config")
	}

	cfg := &config.Config{
		Token:           f.Token,
		Authority:       f.Authority,
		Beneficiary:     f.Beneficiary,
		StartBlock:      f.StartBlock,
		CommitBlocks:    f.CommitBlocks,
		CommitPrice:     bigOf(f.CommitPrice),
		StageCount:      f.StageCount,
		StageBlocks:     f.StageBlocks,
		PriceStep:       bigOf(f.PriceStep),
		Decimals:        f.Decimals,
		MinContribution: bigOf(f.MinContribution),
		TokenSupply:     bigOf(f.TokenSupply),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadSaleConfig(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read sale config")
	}
	return parseSaleConfig(data)
}
