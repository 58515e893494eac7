package progress

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite

	"exam-qa-study/internal/config"
)

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS solved (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  q_num INTEGER NOT NULL,
  token TEXT NOT NULL,
  letter TEXT NOT NULL,
  session_id TEXT NOT NULL DEFAULT '',
  answered_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_solved_token ON solved(token);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS solved (
  seq BIGSERIAL PRIMARY KEY,
  q_num INTEGER NOT NULL,
  token TEXT NOT NULL,
  letter TEXT NOT NULL,
  session_id TEXT NOT NULL DEFAULT '',
  answered_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_solved_token ON solved(token);
`

// SQLStore хранит журнал ответов в SQLite или Postgres
type SQLStore struct {
	db     *sql.DB
	driver string
	now    func() time.Time
}

// OpenSQL открывает базу выбранного драйвера и создает схему при необходимости
func OpenSQL(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	var drvName, schema string
	switch driver {
	case config.DriverSQLite:
		drvName, schema = "sqlite", schemaSQLite
	case config.DriverPostgres:
		drvName, schema = "pgx", schemaPostgres
	default:
		return nil, fmt.Errorf("неподдерживаемый драйвер: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка подключения к %s: %w", driver, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка создания схемы: %w", err)
	}
	return &SQLStore{db: db, driver: driver, now: time.Now}, nil
}

// OpenSQLite открывает журнал в файле SQLite
func OpenSQLite(ctx context.Context, dsn string) (*SQLStore, error) {
	return OpenSQL(ctx, config.DriverSQLite, dsn)
}

// Append сохраняет ответ
func (s *SQLStore) Append(ctx context.Context, id int, letter, sessionID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO solved (q_num, token, letter, session_id, answered_at) VALUES ($1, $2, $3, $4, $5)`,
		id, Token(id), letter, sessionID, s.now().Unix())
	if err != nil {
		return fmt.Errorf("ошибка записи ответа Q%d: %w", id, err)
	}
	return nil
}

// Entries возвращает ответы в порядке записи
func (s *SQLStore) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT token, letter, session_id, answered_at FROM solved ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответов: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var answeredAt int64
		if err := rows.Scan(&e.Token, &e.Letter, &e.SessionID, &answeredAt); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки: %w", err)
		}
		e.AnsweredAt = time.Unix(answeredAt, 0).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Driver возвращает имя драйвера хранилища
func (s *SQLStore) Driver() string {
	return s.driver
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
