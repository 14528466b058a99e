// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv defines the key-value store the sale storage is committed to.
package kv

// Getter reads values. A missing key is reported as an error recognized by IsNotFound.
type Getter interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	IsNotFound(error) bool
}

type Putter interface {
	Put(key, value []byte) error
	Delete(key []byte) error
}

// Batch buffers writes until Write applies them at once.
type Batch interface {
	Putter
	Len() int
	Write() error
}

// Store is a key-value store that can batch writes.
type Store interface {
	Getter
	Putter
	NewBatch() Batch
}

type StoreCloser interface {
	Store
	Close() error
}
