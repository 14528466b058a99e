// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sale

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/rico/api/utils"
	"github.com/vechain/rico/builtin/rico"
	"github.com/vechain/rico/runtime"
)

type Sales struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Sales {
	return &Sales{rt: rt}
}

func (s *Sales) handleGetSale(w http.ResponseWriter, req *http.Request) error {
	var sale *Sale
	err := s.rt.View(func(r *rico.Rico, block uint32) error {
		cfg, err := r.Config()
		if err != nil {
			return err
		}
		sched, err := r.Schedule()
		if err != nil {
			return err
		}
		totals, err := r.Totals()
		if err != nil {
			return err
		}
		sale = convertSale(r.Address(), cfg, sched, totals, block)
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, sale)
}

func (s *Sales) handleGetPhase(w http.ResponseWriter, req *http.Request) error {
	block, err := utils.ParseBlock(req, s.rt.BlockNumber())
	if err != nil {
		return err
	}
	var phase *Phase
	err = s.rt.View(func(r *rico.Rico, _ uint32) error {
		sched, err := r.Schedule()
		if err != nil {
			return err
		}
		phase = convertPhase(sched, block)
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, phase)
}

func (s *Sales) handleGetSchedule(w http.ResponseWriter, req *http.Request) error {
	var windows []*Window
	err := s.rt.View(func(r *rico.Rico, _ uint32) error {
		sched, err := r.Schedule()
		if err != nil {
			return err
		}
		windows = convertWindows(sched.Windows())
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, windows)
}

func (s *Sales) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(s.handleGetSale))
	sub.Path("/phase").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(s.handleGetPhase))
	sub.Path("/schedule").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(s.handleGetSchedule))
}
