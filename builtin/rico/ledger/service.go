// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/vechain/rico/builtin/solidity"
	"github.com/vechain/rico/thor"
)

var (
	slotParticipants  = thor.Slot("participants")
	slotContributions = thor.Slot("contributions")
)

// Service is the participant ledger. Contribution entries are append-only.
type Service struct {
	participants  *solidity.Mapping[thor.Address, *Participant]
	contributions *solidity.Mapping[thor.Bytes32, *Contribution]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		participants:  solidity.NewMapping[thor.Address, *Participant](sctx, slotParticipants),
		contributions: solidity.NewMapping[thor.Bytes32, *Contribution](sctx, slotContributions),
	}
}

func contributionKey(addr thor.Address, index uint32) thor.Bytes32 {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], index)
	return thor.Blake2b(addr.Bytes(), b[:])
}

// Get returns the participant record. Unknown participants get a zeroed record.
func (s *Service) Get(addr thor.Address) (*Participant, error) {
	p, err := s.participants.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get participant")
	}
	if p == nil {
		return NewParticipant(), nil
	}
	return p, nil
}

// Update writes the participant record.
func (s *Service) Update(addr thor.Address, p *Participant) error {
	if err := s.participants.Update(addr, p); err != nil {
		return errors.Wrap(err, "failed to set participant")
	}
	return nil
}

// Append adds a contribution at the next index of p and advances its count.
// The caller persists p.
func (s *Service) Append(addr thor.Address, p *Participant, c *Contribution) error {
	c.Index = p.ContributionCount
	if err := s.contributions.Insert(contributionKey(addr, c.Index), c); err != nil {
		return errors.Wrap(err, "failed to add contribution")
	}
	p.ContributionCount++
	return nil
}

// Contribution returns the entry at index, nil if it does not exist.
func (s *Service) Contribution(addr thor.Address, index uint32) (*Contribution, error) {
	c, err := s.contributions.Get(contributionKey(addr, index))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get contribution")
	}
	return c, nil
}

// Iterate calls cb for contributions in [from, to) in chronological order.
func (s *Service) Iterate(addr thor.Address, from, to uint32, cb func(*Contribution) error) error {
	for i := from; i < to; i++ {
		c, err := s.Contribution(addr, i)
		if err != nil {
			return err
		}
		if c == nil {
			return errors.Errorf("missing contribution %d of %v", i, addr)
		}
		if err := cb(c); err != nil {
			return err
		}
	}
	return nil
}

// Contributions lists all entries of the participant.
func (s *Service) Contributions(addr thor.Address) ([]*Contribution, error) {
	p, err := s.Get(addr)
	if err != nil {
		return nil, err
	}
	list := make([]*Contribution, 0, p.ContributionCount)
	err = s.Iterate(addr, 0, p.ContributionCount, func(c *Contribution) error {
		list = append(list, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}
