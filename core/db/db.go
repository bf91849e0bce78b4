// Package db loads cached books into a SQLite database for consumers that
// prefer relational access over per-book JSON artifacts. The database is
// derived state: re-populating from the store replaces existing rows.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/tdavies-dev/gutenshad/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS books (
	id INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	author TEXT NOT NULL,
	chapter_count INTEGER DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS chapters (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	book_id INTEGER NOT NULL,
	chapter_number INTEGER NOT NULL,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	word_count INTEGER DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (book_id) REFERENCES books (id),
	UNIQUE(book_id, chapter_number)
);
CREATE INDEX IF NOT EXISTS idx_chapters_book_id ON chapters (book_id);
CREATE INDEX IF NOT EXISTS idx_books_title ON books (title);
CREATE INDEX IF NOT EXISTS idx_books_author ON books (author);
CREATE VIEW IF NOT EXISTS book_stats AS
SELECT
	b.id,
	b.title,
	b.author,
	b.chapter_count,
	COALESCE(SUM(c.word_count), 0) AS total_words,
	COALESCE(AVG(c.word_count), 0) AS avg_words_per_chapter
FROM books b
LEFT JOIN chapters c ON b.id = c.book_id
GROUP BY b.id, b.title, b.author, b.chapter_count;
`

// BookDB wraps a SQLite database holding books and chapters.
type BookDB struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema.
// Use ":memory:" for an in-memory database.
func Open(path string) (*BookDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &BookDB{db: db}, nil
}

// Close closes the underlying database.
func (d *BookDB) Close() error {
	return d.db.Close()
}

// Insert writes one book and its chapters, replacing any previous rows for
// the same external ID.
func (d *BookDB) Insert(ctx context.Context, book core.Book) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO books (id, title, author, chapter_count) VALUES (?, ?, ?, ?)`,
		book.ExternalID, book.Title, book.Author, len(book.Chapters))
	if err != nil {
		return fmt.Errorf("insert book %d: %w", book.ExternalID, err)
	}

	// Clear old chapters in case a re-segmented book has fewer of them.
	if _, err := tx.ExecContext(ctx, `DELETE FROM chapters WHERE book_id = ?`, book.ExternalID); err != nil {
		return fmt.Errorf("clear chapters for book %d: %w", book.ExternalID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO chapters (book_id, chapter_number, title, content, word_count) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare chapter insert: %w", err)
	}
	defer stmt.Close()

	for i, ch := range book.Chapters {
		words := len(strings.Fields(ch.Content))
		if _, err := stmt.ExecContext(ctx, book.ExternalID, i+1, ch.Title, ch.Content, words); err != nil {
			return fmt.Errorf("insert chapter %d of book %d: %w", i+1, book.ExternalID, err)
		}
	}

	return tx.Commit()
}

// Populate loads every artifact from the store into the database and returns
// the number of books inserted. A book that fails to read or insert is
// skipped; the first such error is returned alongside the count.
func (d *BookDB) Populate(ctx context.Context, st core.Store) (int, error) {
	keys, err := st.Keys()
	if err != nil {
		return 0, err
	}

	inserted := 0
	var firstErr error
	for _, key := range keys {
		book, err := st.Read(key)
		if err == nil {
			err = d.Insert(ctx, book)
		}
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("populate %q: %w", key, err)
			}
			continue
		}
		inserted++
	}
	return inserted, firstErr
}

// Counts returns the number of books, chapters, and total words stored.
func (d *BookDB) Counts(ctx context.Context) (books, chapters, words int, err error) {
	if err = d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&books); err != nil {
		return 0, 0, 0, fmt.Errorf("count books: %w", err)
	}
	if err = d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chapters`).Scan(&chapters); err != nil {
		return 0, 0, 0, fmt.Errorf("count chapters: %w", err)
	}
	if err = d.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(word_count), 0) FROM chapters`).Scan(&words); err != nil {
		return 0, 0, 0, fmt.Errorf("sum words: %w", err)
	}
	return books, chapters, words, nil
}
