// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logs

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/rico/api/utils"
	"github.com/vechain/rico/logdb"
	"github.com/vechain/rico/thor"
)

// Logs serves the recorded events and transfers.
//
// Query parameters: participant (recipient for transfers), types (comma separated names),
// from and to (inclusive block range), offset, limit and order (asc|desc).
type Logs struct {
	db    *logdb.LogDB
	limit uint64
}

func New(db *logdb.LogDB, logsLimit uint64) *Logs {
	return &Logs{db: db, limit: logsLimit}
}

type query struct {
	address *thor.Address
	types   []string
	rng     *logdb.Range
	options *logdb.Options
	order   logdb.Order
}

func parseUint32(q url.Values, name string) (uint32, bool, error) {
	v := q.Get(name)
	if v == "" {
		return 0, false, nil
	}
	n, err := strconv.ParseUint(v, 0, 32)
	if err != nil {
		return 0, false, utils.BadRequest(errors.WithMessage(err, name))
	}
	return uint32(n), true, nil
}

func (l *Logs) parseQuery(req *http.Request, addressParam string) (*query, error) {
	q := req.URL.Query()
	out := &query{order: logdb.ASC}

	if v := q.Get(addressParam); v != "" {
		addr, err := thor.ParseAddress(v)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, addressParam))
		}
		out.address = &addr
	}
	if v := q.Get("types"); v != "" {
		out.types = strings.Split(v, ",")
	}

	from, hasFrom, err := parseUint32(q, "from")
	if err != nil {
		return nil, err
	}
	to, hasTo, err := parseUint32(q, "to")
	if err != nil {
		return nil, err
	}
	if hasFrom || hasTo {
		if !hasTo {
			to = ^uint32(0)
		}
		if from > to {
			return nil, utils.BadRequest(errors.New("to must be greater than or equal to from"))
		}
		out.rng = &logdb.Range{From: from, To: to}
	}

	switch order := logdb.Order(strings.ToLower(q.Get("order"))); order {
	case "", logdb.ASC:
	case logdb.DESC:
		out.order = logdb.DESC
	default:
		return nil, utils.BadRequest(fmt.Errorf("invalid order %q", order))
	}

	// one more than the limit to detect oversized results
	out.options = &logdb.Options{Limit: l.limit + 1}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.ParseUint(v, 10, 63)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "offset"))
		}
		out.options.Offset = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "limit"))
		}
		if n > l.limit {
			return nil, utils.Forbidden(fmt.Errorf("limit exceeds the maximum allowed value of %d", l.limit))
		}
		out.options.Limit = n
	}
	return out, nil
}

func (l *Logs) handleFilterEvents(w http.ResponseWriter, req *http.Request) error {
	q, err := l.parseQuery(req, "participant")
	if err != nil {
		return err
	}
	filter := &logdb.EventFilter{
		Participant: q.address,
		Range:       q.rng,
		Options:     q.options,
		Order:       q.order,
	}
	for _, name := range q.types {
		var typ logdb.EventType
		if err := typ.UnmarshalText([]byte(name)); err != nil {
			return utils.BadRequest(errors.WithMessage(err, "types"))
		}
		filter.Types = append(filter.Types, typ)
	}

	events, err := l.db.FilterEvents(req.Context(), filter)
	if err != nil {
		return err
	}
	if uint64(len(events)) > l.limit {
		return utils.Forbidden(fmt.Errorf("the number of filtered logs exceeds the maximum allowed value of %d, please use pagination", l.limit))
	}
	out := make([]*Event, 0, len(events))
	for _, e := range events {
		out = append(out, ConvertEvent(e))
	}
	return utils.WriteJSON(w, out)
}

func (l *Logs) handleFilterTransfers(w http.ResponseWriter, req *http.Request) error {
	q, err := l.parseQuery(req, "recipient")
	if err != nil {
		return err
	}
	filter := &logdb.TransferFilter{
		Recipient: q.address,
		Range:     q.rng,
		Options:   q.options,
		Order:     q.order,
	}
	for _, name := range q.types {
		var typ logdb.TransferType
		if err := typ.UnmarshalText([]byte(name)); err != nil {
			return utils.BadRequest(errors.WithMessage(err, "types"))
		}
		filter.Types = append(filter.Types, typ)
	}

	transfers, err := l.db.FilterTransfers(req.Context(), filter)
	if err != nil {
		return err
	}
	if uint64(len(transfers)) > l.limit {
		return utils.Forbidden(fmt.Errorf("the number of filtered logs exceeds the maximum allowed value of %d, please use pagination", l.limit))
	}
	out := make([]*Transfer, 0, len(transfers))
	for _, t := range transfers {
		out = append(out, ConvertTransfer(t))
	}
	return utils.WriteJSON(w, out)
}

func (l *Logs) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/events").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(l.handleFilterEvents))
	sub.Path("/transfers").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(l.handleFilterTransfers))
}
