// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/vechain/rico/state"
	"github.com/vechain/rico/thor"
)

// Context binds storage wrappers to a contract address on a state.
type Context struct {
	address thor.Address
	state   *state.State
	meter   *Meter
}

// NewContext creates a context. meter may be nil.
func NewContext(address thor.Address, state *state.State, meter *Meter) *Context {
	return &Context{
		address: address,
		state:   state,
		meter:   meter,
	}
}

func (c *Context) Address() thor.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}

func (c *Context) load(length int) {
	if c.meter != nil {
		c.meter.reads += toWordSize(length)
	}
}

func (c *Context) store(length int) {
	if c.meter != nil {
		c.meter.writes += toWordSize(length)
	}
}
