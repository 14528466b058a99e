// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages contract storage of the sale.
// It follows the flow as bellow:
//
//	          o
//	          |
//	 [ revertable state ]
//	          |
//	   [ stacked map ] -> [ journal ] -> [ playback(staging) ] -> [ kv batch ]
//	          |
//	   [ lru value cache ]
//	          |
//	    [ read-only kv ]
//
// Every storage slot is addressed by (contract address, 32 bytes key) and holds an rlp encoded value.
package state
