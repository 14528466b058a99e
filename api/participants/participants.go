// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package participants

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/rico/api/utils"
	"github.com/vechain/rico/builtin/rico"
	"github.com/vechain/rico/runtime"
)

type Participants struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Participants {
	return &Participants{rt: rt}
}

func (p *Participants) handleGetParticipant(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var out *Participant
	err = p.rt.View(func(r *rico.Rico, _ uint32) error {
		record, err := r.Participant(addr)
		if err != nil {
			return err
		}
		list, err := r.Contributions(addr)
		if err != nil {
			return err
		}
		out = convertParticipant(addr, record, list)
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, out)
}

func (p *Participants) handleGetBalances(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	block, err := utils.ParseBlock(req, p.rt.BlockNumber())
	if err != nil {
		return err
	}
	var out *Balances
	err = p.rt.View(func(r *rico.Rico, _ uint32) error {
		b, err := r.Balances(addr, block)
		if err != nil {
			return err
		}
		out = convertBalances(block, b)
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, out)
}

func (p *Participants) handleGetCancelModes(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	block, err := utils.ParseBlock(req, p.rt.BlockNumber())
	if err != nil {
		return err
	}
	var out *CancelModes
	err = p.rt.View(func(r *rico.Rico, _ uint32) error {
		m, err := r.CancelModes(addr, block)
		if err != nil {
			return err
		}
		out = convertCancelModes(block, m)
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, out)
}

func (p *Participants) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(p.handleGetParticipant))
	sub.Path("/{address}/balances").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(p.handleGetBalances))
	sub.Path("/{address}/cancel-modes").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(p.handleGetCancelModes))
}
