// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logs

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/rico/api/utils"
	"github.com/vechain/rico/logdb"
	"github.com/vechain/rico/thor"
)

type Event struct {
	BlockNumber  uint32                `json:"blockNumber"`
	Index        uint32                `json:"index"`
	Type         logdb.EventType       `json:"type"`
	Participant  thor.Address          `json:"participant"`
	Contribution uint32                `json:"contribution"`
	Value        *math.HexOrDecimal256 `json:"value"`
	Tokens       *math.HexOrDecimal256 `json:"tokens"`
}

func ConvertEvent(e *logdb.Event) *Event {
	return &Event{
		BlockNumber:  e.BlockNumber,
		Index:        e.Index,
		Type:         e.Type,
		Participant:  e.Participant,
		Contribution: e.Contribution,
		Value:        utils.Amount(e.Value),
		Tokens:       utils.Amount(e.Tokens),
	}
}

type Transfer struct {
	BlockNumber uint32                `json:"blockNumber"`
	Index       uint32                `json:"index"`
	Type        logdb.TransferType    `json:"type"`
	Recipient   thor.Address          `json:"recipient"`
	Amount      *math.HexOrDecimal256 `json:"amount"`
}

func ConvertTransfer(t *logdb.Transfer) *Transfer {
	return &Transfer{
		BlockNumber: t.BlockNumber,
		Index:       t.Index,
		Type:        t.Type,
		Recipient:   t.Recipient,
		Amount:      utils.Amount(t.Amount),
	}
}
