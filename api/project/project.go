// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package project

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/rico/api/utils"
	"github.com/vechain/rico/builtin/rico"
	"github.com/vechain/rico/runtime"
	"github.com/vechain/rico/thor"
)

// Allocation is the project side of the sale at a block.
type Allocation struct {
	Block       uint32                `json:"block"`
	Beneficiary thor.Address          `json:"beneficiary"`
	Available   *math.HexOrDecimal256 `json:"available"`
	Withdrawn   *math.HexOrDecimal256 `json:"withdrawn"`
	Allocated   *math.HexOrDecimal256 `json:"allocated"`
}

type WithdrawRequest struct {
	Amount string `json:"amount"`
}

type Project struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Project {
	return &Project{rt: rt}
}

func (p *Project) handleGetAllocation(w http.ResponseWriter, req *http.Request) error {
	block, err := utils.ParseBlock(req, p.rt.BlockNumber())
	if err != nil {
		return err
	}
	var out *Allocation
	err = p.rt.View(func(r *rico.Rico, _ uint32) error {
		available, err := r.ProjectAvailable(block)
		if err != nil {
			return err
		}
		cfg, err := r.Config()
		if err != nil {
			return err
		}
		totals, err := r.Totals()
		if err != nil {
			return err
		}
		out = &Allocation{
			Block:       block,
			Beneficiary: cfg.Beneficiary,
			Available:   utils.Amount(available),
			Withdrawn:   utils.Amount(totals.ProjectWithdrawn),
			Allocated:   utils.Amount(totals.Allocated),
		}
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, out)
}

func (p *Project) handleWithdraw(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	var body WithdrawRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	amount, err := utils.ParseAmount(body.Amount)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "amount"))
	}
	paid, err := p.rt.WithdrawProject(caller, amount)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{"amount": utils.Amount(paid)})
}

func (p *Project) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(p.handleGetAllocation))
	sub.Path("/withdrawals").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(p.handleWithdraw))
}
