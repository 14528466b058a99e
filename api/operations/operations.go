// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package operations

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/rico/api/utils"
	"github.com/vechain/rico/runtime"
)

// Operations serves the mutating endpoints. Every request acts on behalf of the x-caller address.
type Operations struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Operations {
	return &Operations{rt: rt}
}

func (o *Operations) handleContribute(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	var body ContributeRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	value, err := utils.ParseAmount(body.Value)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "value"))
	}
	c, err := o.rt.Contribute(caller, value)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertContribution(c))
}

func (o *Operations) handleWithdraw(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	var body WithdrawRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	tokens, err := utils.ParseAmount(body.Tokens)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "tokens"))
	}
	wd, err := o.rt.Withdraw(caller, tokens)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertWithdrawal(wd))
}

func (o *Operations) handleCancel(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	c, err := o.rt.Cancel(caller)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertCancellation(c))
}

func (o *Operations) handleWhitelist(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	var body WhitelistRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	t, err := o.rt.SetApproval(caller, body.Participant, body.Approved)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertTransition(body.Participant, t))
}

func (o *Operations) handleDepositSupply(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	var body SupplyRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	amount, err := utils.ParseAmount(body.Amount)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "amount"))
	}
	if err := o.rt.DepositSupply(caller, amount); err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{"amount": utils.Amount(amount)})
}

func (o *Operations) Mount(root *mux.Router) {
	root.Path("/contributions").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(o.handleContribute))
	root.Path("/withdrawals").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(o.handleWithdraw))
	root.Path("/cancellations").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(o.handleCancel))
	root.Path("/whitelist").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(o.handleWhitelist))
	root.Path("/supply").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(o.handleDepositSupply))
}
