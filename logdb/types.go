// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/vechain/rico/thor"
)

type EventType uint8

const (
	ContributionNew EventType = iota + 1
	ContributionCancel
	ParticipantCancel
	CommitmentAccepted
	WhitelistApprove
	WhitelistReject
	ParticipantWithdraw
	ProjectWithdraw
	SupplyDeposit
)

var eventTypeNames = map[EventType]string{
	ContributionNew:     "CONTRIBUTION_NEW",
	ContributionCancel:  "CONTRIBUTION_CANCEL",
	ParticipantCancel:   "PARTICIPANT_CANCEL",
	CommitmentAccepted:  "COMMITMENT_ACCEPTED",
	WhitelistApprove:    "WHITELIST_APPROVE",
	WhitelistReject:     "WHITELIST_REJECT",
	ParticipantWithdraw: "PARTICIPANT_WITHDRAW",
	ProjectWithdraw:     "PROJECT_WITHDRAW",
	SupplyDeposit:       "SUPPLY_DEPOSIT",
}

func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("EVENT_%d", uint8(t))
}

func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *EventType) UnmarshalText(text []byte) error {
	name := strings.ToUpper(string(text))
	for k, v := range eventTypeNames {
		if v == name {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("unknown event type %q", text)
}

type TransferType uint8

const (
	AutomaticReturn TransferType = iota + 1
	_                            // WHITELIST_REJECT, not emitted
	CancelRefund
	WithdrawRefund
	ProjectPayout
)

var transferTypeNames = map[TransferType]string{
	AutomaticReturn: "AUTOMATIC_RETURN",
	CancelRefund:    "PARTICIPANT_CANCEL",
	WithdrawRefund:  "PARTICIPANT_WITHDRAW",
	ProjectPayout:   "PROJECT_WITHDRAW",
}

func (t TransferType) String() string {
	if name, ok := transferTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TRANSFER_%d", uint8(t))
}

func (t TransferType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TransferType) UnmarshalText(text []byte) error {
	name := strings.ToUpper(string(text))
	for k, v := range transferTypeNames {
		if v == name {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("unknown transfer type %q", text)
}

// Event is a recorded sale event.
type Event struct {
	BlockNumber  uint32
	Index        uint32 // position within the block
	Type         EventType
	Participant  thor.Address
	Contribution uint32 // contribution index, for contribution events
	Value        *big.Int
	Tokens       *big.Int
}

// Transfer is a value movement the host performed for the sale.
type Transfer struct {
	BlockNumber uint32
	Index       uint32
	Type        TransferType
	Recipient   thor.Address
	Amount      *big.Int
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range is an inclusive block range. To below From means open ended.
type Range struct {
	From uint32
	To   uint32
}

type Options struct {
	Offset uint64
	Limit  uint64
}

type EventFilter struct {
	Participant *thor.Address
	Types       []EventType
	Range       *Range
	Options     *Options
	Order       Order // default asc
}

type TransferFilter struct {
	Recipient *thor.Address
	Types     []TransferType
	Range     *Range
	Options   *Options
	Order     Order // default asc
}
