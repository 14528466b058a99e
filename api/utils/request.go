// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"math/big"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/rico/log"
	"github.com/vechain/rico/thor"
)

var logger = log.WithContext("pkg", "api")

// CallerHeader carries the address on whose behalf an operation is executed.
// Authenticating it is up to the host in front of the API.
const CallerHeader = "x-caller"

// Caller returns the caller address of req.
func Caller(req *http.Request) (thor.Address, error) {
	v := req.Header.Get(CallerHeader)
	if v == "" {
		return thor.Address{}, Forbidden(errors.New("missing " + CallerHeader + " header"))
	}
	addr, err := thor.ParseAddress(v)
	if err != nil {
		return thor.Address{}, BadRequest(errors.WithMessage(err, CallerHeader))
	}
	return addr, nil
}

// AddressVar parses the path variable name as an address.
func AddressVar(req *http.Request, name string) (thor.Address, error) {
	addr, err := thor.ParseAddress(mux.Vars(req)[name])
	if err != nil {
		return thor.Address{}, BadRequest(errors.WithMessage(err, name))
	}
	return addr, nil
}

// ParseBlock parses the block query parameter, def is used when it is absent.
func ParseBlock(req *http.Request, def uint32) (uint32, error) {
	v := req.URL.Query().Get("block")
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(v, 0, 32)
	if err != nil {
		return 0, BadRequest(errors.WithMessage(err, "block"))
	}
	return uint32(n), nil
}

// ParseAmount parses a 256-bit unsigned amount, decimal or 0x prefixed hex.
func ParseAmount(s string) (*big.Int, error) {
	if s == "" {
		return nil, errors.New("empty amount")
	}
	var (
		v   *uint256.Int
		err error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = uint256.FromHex(s)
	} else {
		v, err = uint256.FromDecimal(s)
	}
	if err != nil {
		return nil, err
	}
	return v.ToBig(), nil
}
