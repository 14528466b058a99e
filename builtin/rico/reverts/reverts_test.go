// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_Reverts(t *testing.T) {
	revert := New(KindBalance, "Test", "test")
	assert.Equal(t, "test", revert.message)
	assert.Equal(t, revert.Error(), revert.message)
	assert.Equal(t, "Test", revert.Name())

	assert.True(t, IsRevertErr(revert))
	assert.True(t, IsRevertErr(errors.Wrap(revert, "wrapped")))
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr(fmt.Errorf("test")))
	assert.False(t, IsRevertErr(big.NewInt(0)))
}

func TestWithfMatchesSentinel(t *testing.T) {
	err := ErrExceedsLockedBalance.Withf("requested=%d locked=%d", 10, 5)

	assert.ErrorIs(t, err, ErrExceedsLockedBalance)
	assert.NotErrorIs(t, err, ErrNoLockedTokens)
	assert.Equal(t, "Withdraw not possible. Returned tokens exceed the locked balance. requested=10 locked=5", err.Error())

	kind, ok := KindOf(errors.Wrap(err, "ctx"))
	assert.True(t, ok)
	assert.Equal(t, KindBalance, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestKinds(t *testing.T) {
	tests := []struct {
		err  *ErrRevert
		kind string
	}{
		{ErrAlreadyInitialized, "ConfigurationError"},
		{ErrInvalidConfig, "ConfigurationError"},
		{ErrSaleNotActive, "SaleStateError"},
		{ErrBelowMinimum, "SaleStateError"},
		{ErrNoLockedTokens, "BalanceError"},
		{ErrExceedsLockedBalance, "BalanceError"},
		{ErrInsufficientAllocation, "BalanceError"},
		{ErrNotAuthority, "AuthorizationError"},
		{ErrZeroAmount, "InputError"},
		{ErrValueOverflow, "InputError"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, tt.err.Kind().String(), tt.err.Name())
	}
}
