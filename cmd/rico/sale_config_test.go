// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rico/builtin/rico/reverts"
	"github.com/vechain/rico/thor"
)

const saleYaml = `
token: "0x0000000000000000000000000000000000001000"
authority: "0x0000000000000000000000000000000000002000"
beneficiary: "0x0000000000000000000000000000000000003000"
startBlock: 100
commitBlocks: 20
commitPrice: "2000000000000000"
stageCount: 3
stageBlocks: 10
priceStep: "0x5af3107a4000"
decimals: 18
tokenSupply: "1000000000000000000000000"
`

func TestParseSaleConfig(t *testing.T) {
	cfg, err := parseSaleConfig([]byte(saleYaml))
	require.NoError(t, err)

	assert.Equal(t, thor.MustParseAddress("0x0000000000000000000000000000000000002000"), cfg.Authority)
	assert.Equal(t, uint32(100), cfg.StartBlock)
	assert.Equal(t, uint32(3), cfg.StageCount)
	assert.Equal(t, "2000000000000000", cfg.CommitPrice.String())
	assert.Equal(t, "100000000000000", cfg.PriceStep.String())
	assert.Equal(t, "1000000000000000000000000", cfg.TokenSupply.String())
	assert.Nil(t, cfg.MinContribution)
	assert.Equal(t, uint64(150), cfg.EndBlock())
}

func TestParseSaleConfigErrors(t *testing.T) {
	_, err := parseSaleConfig([]byte(saleYaml + "unknown: 1\n"))
	assert.Error(t, err)

	_, err = parseSaleConfig([]byte(strings.Replace(saleYaml, "\"2000000000000000\"", "\"abc\"", 1)))
	assert.Error(t, err)

	// zero stages
	_, err = parseSaleConfig([]byte(`
authority: "0x0000000000000000000000000000000000002000"
beneficiary: "0x0000000000000000000000000000000000003000"
commitBlocks: 1
stageBlocks: 1
commitPrice: "1"
priceStep: "1"
`))
	assert.ErrorIs(t, err, reverts.ErrInvalidConfig)
}

func TestLoadSaleConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sale.yaml")
	require.NoError(t, os.WriteFile(path, []byte(saleYaml), 0o600))

	cfg, err := loadSaleConfig(path)
	require.NoError(t, err)
	assert.Equal(t, uint8(18), cfg.Decimals)

	_, err = loadSaleConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
