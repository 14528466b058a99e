// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
)

// Kind classifies a revert for the caller.
type Kind uint8

const (
	KindInput Kind = iota
	KindConfiguration
	KindSaleState
	KindBalance
	KindAuthorization
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "ConfigurationError"
	case KindSaleState:
		return "SaleStateError"
	case KindBalance:
		return "BalanceError"
	case KindAuthorization:
		return "AuthorizationError"
	default:
		return "InputError"
	}
}

// ErrRevert is a rejected operation. State is left untouched by the host.
type ErrRevert struct {
	kind    Kind
	name    string
	message string
}

func New(kind Kind, name, message string) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		name:    name,
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func (e *ErrRevert) Kind() Kind {
	return e.kind
}

// Name is the stable identifier of the revert, e.g. NoLockedTokens.
func (e *ErrRevert) Name() string {
	return e.name
}

// Is matches reverts by name, so a detailed revert matches its sentinel.
func (e *ErrRevert) Is(target error) bool {
	t, ok := target.(*ErrRevert)
	return ok && t.name == e.name
}

// Withf returns a copy of the revert with detail appended to the message.
func (e *ErrRevert) Withf(format string, args ...any) *ErrRevert {
	return &ErrRevert{
		kind:    e.kind,
		name:    e.name,
		message: e.message + " " + fmt.Sprintf(format, args...),
	}
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// KindOf returns the kind of the revert in err's chain.
func KindOf(err error) (Kind, bool) {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.kind, true
	}
	return 0, false
}

var (
	ErrNotInitialized     = New(KindConfiguration, "NotInitialized", "sale is not initialized.")
	ErrAlreadyInitialized = New(KindConfiguration, "AlreadyInitialized", "sale is already initialized.")
	ErrInvalidConfig      = New(KindConfiguration, "InvalidConfig", "invalid sale configuration:")

	ErrSaleNotActive   = New(KindSaleState, "SaleNotActive", "Contribution not possible. Sale is not active.")
	ErrBelowMinimum    = New(KindSaleState, "BelowMinimum", "Contribution not possible. Value is below the minimum contribution.")
	ErrSupplyExhausted = New(KindSaleState, "SupplyExhausted", "Contribution not possible. No tokens left for sale.")

	ErrZeroAmount             = New(KindInput, "ZeroAmount", "amount must be greater than zero.")
	ErrValueOverflow          = New(KindInput, "ValueOverflow", "amount overflows the sale totals.")
	ErrNoLockedTokens         = New(KindBalance, "NoLockedTokens", "Withdraw not possible. Participant has no locked tokens.")
	ErrExceedsLockedBalance   = New(KindBalance, "ExceedsLockedBalance", "Withdraw not possible. Returned tokens exceed the locked balance.")
	ErrInsufficientAllocation = New(KindBalance, "InsufficientAllocation", "Project withdraw not possible. Amount exceeds the unlocked allocation.")
	ErrCancelNotAllowed       = New(KindBalance, "CancelNotAllowed", "Cancel not possible. Participant has no pending contributions or has accepted ones.")

	ErrNotAuthority   = New(KindAuthorization, "NotAuthority", "only the whitelist authority can call this method.")
	ErrNotBeneficiary = New(KindAuthorization, "NotBeneficiary", "only the project beneficiary can call this method.")
)
