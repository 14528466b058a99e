// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config

import (
	"math"
	"math/big"

	"github.com/vechain/rico/builtin/rico/reverts"
	"github.com/vechain/rico/thor"
)

// MaxDecimals bounds the token scale 10^Decimals.
const MaxDecimals = 36

// Config is the sale configuration. It is immutable once the sale is initialized.
// Prices are in the smallest currency unit per whole token (10^Decimals token units).
type Config struct {
	Token           thor.Address
	Authority       thor.Address
	Beneficiary     thor.Address
	StartBlock      uint32
	CommitBlocks    uint32
	CommitPrice     *big.Int
	StageCount      uint32
	StageBlocks     uint32
	PriceStep       *big.Int
	Decimals        uint8
	MinContribution *big.Int
	TokenSupply     *big.Int
}

// Scale returns 10^Decimals.
func (c *Config) Scale() *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(c.Decimals)), nil)
}

// EndBlock returns the first block after the last buy stage.
func (c *Config) EndBlock() uint64 {
	return uint64(c.StartBlock) + uint64(c.CommitBlocks) + uint64(c.StageCount)*uint64(c.StageBlocks)
}

// Validate checks the stage parameters.
func (c *Config) Validate() error {
	switch {
	case c.StageCount == 0:
		return reverts.ErrInvalidConfig.Withf("stage count is zero")
	case c.CommitBlocks == 0:
		return reverts.ErrInvalidConfig.Withf("commit duration is zero")
	case c.StageBlocks == 0:
		return reverts.ErrInvalidConfig.Withf("stage duration is zero")
	case c.CommitPrice == nil || c.CommitPrice.Sign() <= 0:
		return reverts.ErrInvalidConfig.Withf("commit price must be positive")
	case c.PriceStep == nil || c.PriceStep.Sign() <= 0:
		return reverts.ErrInvalidConfig.Withf("price step must be positive")
	case c.Decimals > MaxDecimals:
		return reverts.ErrInvalidConfig.Withf("decimals %d exceed %d", c.Decimals, MaxDecimals)
	case c.MinContribution != nil && c.MinContribution.Sign() < 0:
		return reverts.ErrInvalidConfig.Withf("negative minimum contribution")
	case c.TokenSupply != nil && c.TokenSupply.Sign() < 0:
		return reverts.ErrInvalidConfig.Withf("negative token supply")
	case c.Authority.IsZero():
		return reverts.ErrInvalidConfig.Withf("authority is not set")
	case c.Beneficiary.IsZero():
		return reverts.ErrInvalidConfig.Withf("beneficiary is not set")
	case c.EndBlock() > math.MaxUint32:
		return reverts.ErrInvalidConfig.Withf("sale ends after block %d", uint32(math.MaxUint32))
	}
	return nil
}

// Normalize fills the optional amounts with their defaults.
func (c *Config) Normalize() {
	if c.MinContribution == nil || c.MinContribution.Sign() == 0 {
		c.MinContribution = big.NewInt(1)
	}
	if c.TokenSupply == nil {
		c.TokenSupply = new(big.Int)
	}
}
