// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config

import (
	"github.com/pkg/errors"

	"github.com/vechain/rico/builtin/rico/reverts"
	"github.com/vechain/rico/builtin/solidity"
	"github.com/vechain/rico/thor"
)

var (
	slotConfig      = thor.Slot("sale-config")
	slotAuthority   = thor.Slot("authority")
	slotBeneficiary = thor.Slot("beneficiary")
)

// Service stores the sale configuration.
// Authority and beneficiary are also kept in their own slots.
type Service struct {
	config      *solidity.Raw[*Config]
	authority   *solidity.Address
	beneficiary *solidity.Address
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		config:      solidity.NewRaw[*Config](sctx, slotConfig),
		authority:   solidity.NewAddress(sctx, slotAuthority),
		beneficiary: solidity.NewAddress(sctx, slotBeneficiary),
	}
}

// Get returns the configuration, nil when the sale is not initialized.
func (s *Service) Get() (*Config, error) {
	cfg, err := s.config.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get config")
	}
	return cfg, nil
}

// MustGet returns the configuration or ErrNotInitialized.
func (s *Service) MustGet() (*Config, error) {
	cfg, err := s.Get()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, reverts.ErrNotInitialized
	}
	return cfg, nil
}

// Init validates and stores the configuration, only once.
func (s *Service) Init(cfg *Config) error {
	existing, err := s.Get()
	if err != nil {
		return err
	}
	if existing != nil {
		return reverts.ErrAlreadyInitialized
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := s.config.Upsert(cfg); err != nil {
		return errors.Wrap(err, "failed to set config")
	}
	s.authority.Set(cfg.Authority)
	s.beneficiary.Set(cfg.Beneficiary)
	return nil
}

// Authority returns the address allowed to change approvals.
func (s *Service) Authority() (thor.Address, error) {
	return role(s.authority)
}

// Beneficiary returns the address receiving the project allocation.
func (s *Service) Beneficiary() (thor.Address, error) {
	return role(s.beneficiary)
}

// role reads a role slot, a zero address is only found before Init.
func role(slot *solidity.Address) (thor.Address, error) {
	addr, err := slot.Get()
	if err != nil {
		return thor.Address{}, errors.Wrap(err, "failed to get role")
	}
	if addr.IsZero() {
		return thor.Address{}, reverts.ErrNotInitialized
	}
	return addr, nil
}
