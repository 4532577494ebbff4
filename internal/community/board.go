package community

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// TopicAll selects every message.
const TopicAll = "all"

// ErrSendDisabled is returned by Send; the community feed is read-only.
var ErrSendDisabled = errors.New("community: sending messages is not available")

type Message struct {
	ID       int64
	Author   string
	Topic    string
	Body     string
	PostedAt time.Time
}

// Board serves the mock community feed from a private in-memory database.
type Board struct {
	db *sql.DB
}

// Open creates the in-memory board and loads the mock messages.
func Open() (*Board, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	b := &Board{db: db}
	if err := b.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := b.seed(mockMessages); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed: %w", err)
	}
	return b, nil
}

func (b *Board) Close() error {
	return b.db.Close()
}

func (b *Board) migrate() error {
	var version int
	if err := b.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version >= currentVersion {
		return nil
	}

	const ddl = `
	CREATE TABLE IF NOT EXISTS messages (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		author     TEXT NOT NULL,
		topic      TEXT NOT NULL,
		body       TEXT NOT NULL,
		posted_at  TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_messages_topic ON messages(topic);
	`
	if _, err := b.db.Exec(ddl); err != nil {
		return err
	}

	_, err := b.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (b *Board) seed(msgs []Message) error {
	tx, err := b.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, m := range msgs {
		_, err := tx.Exec(
			`INSERT INTO messages (author, topic, body, posted_at) VALUES (?, ?, ?, ?)`,
			m.Author, m.Topic, m.Body, m.PostedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("insert message: %w", err)
		}
	}
	return tx.Commit()
}

// Topics returns the distinct topics in alphabetical order.
func (b *Board) Topics() ([]string, error) {
	rows, err := b.db.Query(`SELECT DISTINCT topic FROM messages ORDER BY topic`)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	var topics []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// Messages returns the messages of a topic, oldest first. An empty topic or
// TopicAll returns everything.
func (b *Board) Messages(topic string) ([]Message, error) {
	query := `SELECT id, author, topic, body, posted_at FROM messages`
	var args []any
	if topic != "" && topic != TopicAll {
		query += ` WHERE topic = ?`
		args = append(args, topic)
	}
	query += ` ORDER BY posted_at, id`

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		var m Message
		var postedAt string
		if err := rows.Scan(&m.ID, &m.Author, &m.Topic, &m.Body, &postedAt); err != nil {
			return nil, err
		}
		m.PostedAt, _ = time.Parse(time.RFC3339, postedAt)
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// Send always fails with ErrSendDisabled.
func (b *Board) Send(topic, body string) error {
	return ErrSendDisabled
}
