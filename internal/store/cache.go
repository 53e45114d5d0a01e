// Package store provides a SQLite-backed cache of fetched budget events,
// keyed by the date span they were fetched for.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ccplan/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache provides SQLite-backed event caching.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// ReplaceEvents atomically replaces all cached events for a span and
// records the fetch time.
func (c *Cache) ReplaceEvents(span string, events []model.BudgetEvent, fetchedAt time.Time) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM events WHERE span = ?", span); err != nil {
		return err
	}

	for _, ev := range events {
		_, err := tx.Exec(`INSERT OR REPLACE INTO events
			(id, span, amount, date, category_id, category_title,
			 category_is_bill, category_is_transfer, is_transfer,
			 repeat_type, repeat_interval, note)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			ev.ID, span, ev.Amount, ev.Date.Format("2006-01-02"),
			ev.Category.ID, ev.Category.Title,
			boolInt(ev.Category.IsBill), boolInt(ev.Category.IsTransfer), boolInt(ev.IsTransfer),
			string(ev.RepeatType), ev.RepeatInterval, ev.Note,
		)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO fetch_meta (span, fetched_at) VALUES (?, ?)`,
		span, fetchedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	return tx.Commit()
}

// LoadEvents reads all cached events for a span, interpreting dates in loc.
func (c *Cache) LoadEvents(span string, loc *time.Location) ([]model.BudgetEvent, error) {
	rows, err := c.db.Query(`SELECT
		id, amount, date, category_id, category_title,
		category_is_bill, category_is_transfer, is_transfer,
		repeat_type, repeat_interval, note
		FROM events WHERE span = ? ORDER BY date`, span)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var events []model.BudgetEvent
	for rows.Next() {
		var ev model.BudgetEvent
		var dateStr, repeatType string
		var catTitle, note sql.NullString
		var catID sql.NullInt64
		var catBill, catTransfer, evTransfer int

		err := rows.Scan(
			&ev.ID, &ev.Amount, &dateStr, &catID, &catTitle,
			&catBill, &catTransfer, &evTransfer,
			&repeatType, &ev.RepeatInterval, &note,
		)
		if err != nil {
			return nil, err
		}

		ev.Date, err = time.ParseInLocation("2006-01-02", dateStr, loc)
		if err != nil {
			return nil, fmt.Errorf("corrupt cached date %q: %w", dateStr, err)
		}
		ev.Category = model.Category{
			ID:         catID.Int64,
			Title:      catTitle.String,
			IsBill:     catBill != 0,
			IsTransfer: catTransfer != 0,
		}
		ev.IsTransfer = evTransfer != 0
		ev.RepeatType = model.RepeatType(repeatType)
		ev.Note = note.String

		events = append(events, ev)
	}
	return events, rows.Err()
}

// FetchedAt returns when the span was last fetched, or ok=false if never.
func (c *Cache) FetchedAt(span string) (time.Time, bool, error) {
	var fetchedStr string
	err := c.db.QueryRow("SELECT fetched_at FROM fetch_meta WHERE span = ?", span).Scan(&fetchedStr)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}

	fetched, err := time.Parse(time.RFC3339, fetchedStr)
	if err != nil {
		return time.Time{}, false, nil
	}
	return fetched, true, nil
}

// EventCount returns the number of cached events for a span.
func (c *Cache) EventCount(span string) (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM events WHERE span = ?", span).Scan(&count)
	return count, err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
