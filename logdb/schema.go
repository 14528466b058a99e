// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

// seq is the block number and index within the block, see sequence.
const (
	eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY NOT NULL,
	type INTEGER NOT NULL,
	participant BLOB(20) NOT NULL,
	contribution INTEGER NOT NULL,
	value BLOB,
	tokens BLOB
);
CREATE INDEX IF NOT EXISTS event_i0 ON event(participant, seq);
CREATE INDEX IF NOT EXISTS event_i1 ON event(type, seq);
`

	transferTableSchema = `CREATE TABLE IF NOT EXISTS transfer (
	seq INTEGER PRIMARY KEY NOT NULL,
	type INTEGER NOT NULL,
	recipient BLOB(20) NOT NULL,
	amount BLOB
);
CREATE INDEX IF NOT EXISTS transfer_i0 ON transfer(recipient, seq);
CREATE INDEX IF NOT EXISTS transfer_i1 ON transfer(type, seq);
`
)
