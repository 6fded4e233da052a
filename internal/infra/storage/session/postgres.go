package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

const sessionsTable = "admin_sessions"

// schema таблица сессий; обе колонки nullable, как две независимые записи
const schema = `CREATE TABLE IF NOT EXISTS admin_sessions (
	session_key TEXT PRIMARY KEY,
	token       TEXT,
	expires_at  TIMESTAMPTZ,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// DBExecutor интерфейс для работы с БД (*sql.DB, *sql.Tx)
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// psql билдер с плейсхолдерами $1, $2...
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// PostgresStore хранилище сессий в PostgreSQL
type PostgresStore struct {
	db DBExecutor
}

// NewPostgresStore создает новый экземпляр хранилища
func NewPostgresStore(db DBExecutor) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema создает таблицу, если ее нет
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%w: EnsureSchema: %v", ErrExecQuery, err)
	}
	return nil
}

// Load получает пару по ключу
func (s *PostgresStore) Load(ctx context.Context, key string) (*domain.AdminSession, error) {
	query, args, err := psql.Select("token", "expires_at").
		From(sessionsTable).
		Where(squirrel.Eq{"session_key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Load - build select query: %v", ErrBuildQuery, err)
	}

	var (
		token     sql.NullString
		expiresAt sql.NullTime
	)
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&token, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Load - scan session: %v", ErrScanRow, err)
	}
	if !token.Valid && !expiresAt.Valid {
		return nil, ErrSessionNotFound
	}

	return &domain.AdminSession{Token: token.String, ExpiresAt: expiresAt.Time}, nil
}

// Save создает или заменяет пару (upsert)
func (s *PostgresStore) Save(ctx context.Context, key string, sess domain.AdminSession) error {
	token := sql.NullString{String: sess.Token, Valid: sess.Token != ""}
	expiresAt := sql.NullTime{Time: sess.ExpiresAt, Valid: !sess.ExpiresAt.IsZero()}

	query, args, err := psql.Insert(sessionsTable).
		Columns("session_key", "token", "expires_at").
		Values(key, token, expiresAt).
		Suffix("ON CONFLICT (session_key) DO UPDATE SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Save - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}

// Delete удаляет пару
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	query, args, err := psql.Delete(sessionsTable).
		Where(squirrel.Eq{"session_key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}
	return nil
}

// PurgeExpired удаляет сессии, истекшие более grace назад, и пары без срока старше grace
// Возвращает количество удаленных строк
func (s *PostgresStore) PurgeExpired(ctx context.Context, grace time.Duration) (int64, error) {
	cutoff := time.Now().Add(-grace)

	query, args, err := psql.Delete(sessionsTable).
		Where(squirrel.Or{
			squirrel.Lt{"expires_at": cutoff},
			squirrel.And{
				squirrel.Eq{"expires_at": nil},
				squirrel.Lt{"updated_at": cutoff},
			},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - execute delete: %v", ErrExecQuery, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - rows affected: %v", ErrExecQuery, err)
	}
	return n, nil
}
