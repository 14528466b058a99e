// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"math/big"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/vechain/rico/thor"
)

// LogDB stores sale events and transfers in sqlite.
type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
	stmtCache     *stmtCache
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	// in-memory databases are per connection
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(eventTableSchema + transferTableSchema); err != nil {
		return nil, errors.Wrap(err, "create tables")
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path:          path,
		db:            db,
		driverVersion: driverVer,
		stmtCache:     newStmtCache(db),
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() error {
	db.stmtCache.Clear()
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

// DriverVersion returns the sqlite library version.
func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

// NewestBlockNumber returns the block number of the latest record, 0 when empty.
func (db *LogDB) NewestBlockNumber() (uint32, error) {
	var seq sql.NullInt64
	row := db.db.QueryRow("SELECT MAX(seq) FROM (SELECT MAX(seq) AS seq FROM event UNION SELECT MAX(seq) FROM transfer)")
	if err := row.Scan(&seq); err != nil {
		return 0, err
	}
	if !seq.Valid {
		return 0, nil
	}
	return sequence(seq.Int64).BlockNumber(), nil
}

func rangeCondition(r *Range, stmt string, args []any) (string, []any) {
	if r == nil {
		return stmt, args
	}
	from, _ := blockBounds(r.From)
	stmt += " AND seq >= ?"
	args = append(args, from)
	if r.To >= r.From {
		_, to := blockBounds(r.To)
		stmt += " AND seq <= ?"
		args = append(args, to)
	}
	return stmt, args
}

func typesCondition[T ~uint8](types []T, stmt string, args []any) (string, []any) {
	if len(types) == 0 {
		return stmt, args
	}
	stmt += " AND type IN (?" + strings.Repeat(",?", len(types)-1) + ")"
	for _, t := range types {
		args = append(args, uint8(t))
	}
	return stmt, args
}

func orderAndPage(order Order, options *Options, stmt string, args []any) (string, []any) {
	if order == DESC {
		stmt += " ORDER BY seq DESC"
	} else {
		stmt += " ORDER BY seq ASC"
	}
	if options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, options.Offset, options.Limit)
	}
	return stmt, args
}

func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	const query = "SELECT seq, type, participant, contribution, value, tokens FROM event WHERE 1"
	if filter == nil {
		return db.queryEvents(ctx, query)
	}
	metricsHandleEventsFilter(filter)

	var args []any
	stmt := query
	if filter.Participant != nil {
		stmt += " AND participant = ?"
		args = append(args, filter.Participant.Bytes())
	}
	stmt, args = typesCondition(filter.Types, stmt, args)
	stmt, args = rangeCondition(filter.Range, stmt, args)
	stmt, args = orderAndPage(filter.Order, filter.Options, stmt, args)
	return db.queryEvents(ctx, stmt, args...)
}

func (db *LogDB) FilterTransfers(ctx context.Context, filter *TransferFilter) ([]*Transfer, error) {
	const query = "SELECT seq, type, recipient, amount FROM transfer WHERE 1"
	if filter == nil {
		return db.queryTransfers(ctx, query)
	}
	metricsHandleTransfersFilter(filter)

	var args []any
	stmt := query
	if filter.Recipient != nil {
		stmt += " AND recipient = ?"
		args = append(args, filter.Recipient.Bytes())
	}
	stmt, args = typesCondition(filter.Types, stmt, args)
	stmt, args = rangeCondition(filter.Range, stmt, args)
	stmt, args = orderAndPage(filter.Order, filter.Options, stmt, args)
	return db.queryTransfers(ctx, stmt, args...)
}

func (db *LogDB) queryEvents(ctx context.Context, query string, args ...any) ([]*Event, error) {
	stmt, err := db.stmtCache.Prepare(query)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq          int64
			typ          uint8
			participant  []byte
			contribution uint32
			value        []byte
			tokens       []byte
		)
		if err := rows.Scan(&seq, &typ, &participant, &contribution, &value, &tokens); err != nil {
			return nil, err
		}
		events = append(events, &Event{
			BlockNumber:  sequence(seq).BlockNumber(),
			Index:        sequence(seq).Index(),
			Type:         EventType(typ),
			Participant:  thor.BytesToAddress(participant),
			Contribution: contribution,
			Value:        new(big.Int).SetBytes(value),
			Tokens:       new(big.Int).SetBytes(tokens),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (db *LogDB) queryTransfers(ctx context.Context, query string, args ...any) ([]*Transfer, error) {
	stmt, err := db.stmtCache.Prepare(query)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []*Transfer
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq       int64
			typ       uint8
			recipient []byte
			amount    []byte
		)
		if err := rows.Scan(&seq, &typ, &recipient, &amount); err != nil {
			return nil, err
		}
		transfers = append(transfers, &Transfer{
			BlockNumber: sequence(seq).BlockNumber(),
			Index:       sequence(seq).Index(),
			Type:        TransferType(typ),
			Recipient:   thor.BytesToAddress(recipient),
			Amount:      new(big.Int).SetBytes(amount),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transfers, nil
}

// NewBatch prepares records of one operation executed at blockNum.
func (db *LogDB) NewBatch(blockNum uint32) *Batch {
	return &Batch{db: db.db, blockNum: blockNum}
}

// Batch collects events and transfers, written atomically by Commit.
type Batch struct {
	db        *sql.DB
	blockNum  uint32
	events    []*Event
	transfers []*Transfer
}

func bytesOf(v *big.Int) []byte {
	if v == nil {
		return nil
	}
	return v.Bytes()
}

// AddEvent appends an event. value and tokens may be nil.
func (b *Batch) AddEvent(typ EventType, participant thor.Address, contribution uint32, value, tokens *big.Int) *Batch {
	b.events = append(b.events, &Event{
		BlockNumber:  b.blockNum,
		Type:         typ,
		Participant:  participant,
		Contribution: contribution,
		Value:        value,
		Tokens:       tokens,
	})
	return b
}

// AddTransfer appends a transfer. Zero amounts are skipped.
func (b *Batch) AddTransfer(typ TransferType, recipient thor.Address, amount *big.Int) *Batch {
	if amount == nil || amount.Sign() == 0 {
		return b
	}
	b.transfers = append(b.transfers, &Transfer{
		BlockNumber: b.blockNum,
		Type:        typ,
		Recipient:   recipient,
		Amount:      amount,
	})
	return b
}

func (b *Batch) Events() []*Event {
	return b.events
}

func (b *Batch) Transfers() []*Transfer {
	return b.transfers
}

// Len returns the number of records in the batch.
func (b *Batch) Len() int {
	return len(b.events) + len(b.transfers)
}

func (b *Batch) execInTx(proc func(*sql.Tx) error) (err error) {
	tx, err := b.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// nextIndex returns the first free index of the block in table.
func nextIndex(tx *sql.Tx, table string, blockNum uint32) (uint32, error) {
	var seq sql.NullInt64
	first, last := blockBounds(blockNum)
	row := tx.QueryRow("SELECT MAX(seq) FROM "+table+" WHERE seq >= ? AND seq <= ?", first, last)
	if err := row.Scan(&seq); err != nil {
		return 0, err
	}
	if !seq.Valid {
		return 0, nil
	}
	return sequence(seq.Int64).Index() + 1, nil
}

// Commit writes the batch, indexes continue after records already stored for the block.
func (b *Batch) Commit() error {
	if b.Len() == 0 {
		return nil
	}
	return b.execInTx(func(tx *sql.Tx) error {
		index, err := nextIndex(tx, "event", b.blockNum)
		if err != nil {
			return err
		}
		for _, ev := range b.events {
			ev.Index = index
			index++
			if _, err := tx.Exec("INSERT INTO event(seq, type, participant, contribution, value, tokens) VALUES (?, ?, ?, ?, ?, ?)",
				newSequence(ev.BlockNumber, ev.Index),
				uint8(ev.Type),
				ev.Participant.Bytes(),
				ev.Contribution,
				bytesOf(ev.Value),
				bytesOf(ev.Tokens),
			); err != nil {
				return err
			}
		}

		index, err = nextIndex(tx, "transfer", b.blockNum)
		if err != nil {
			return err
		}
		for _, tr := range b.transfers {
			tr.Index = index
			index++
			if _, err := tx.Exec("INSERT INTO transfer(seq, type, recipient, amount) VALUES (?, ?, ?, ?)",
				newSequence(tr.BlockNumber, tr.Index),
				uint8(tr.Type),
				tr.Recipient.Bytes(),
				tr.Amount.Bytes(),
			); err != nil {
				return err
			}
		}
		return nil
	})
}
