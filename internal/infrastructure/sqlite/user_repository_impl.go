package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/oksasatya/go-mcp-user-server/internal/domain/entity"
	"github.com/oksasatya/go-mcp-user-server/internal/domain/repository"
	"github.com/oksasatya/go-mcp-user-server/internal/infrastructure/mapper"
	"github.com/oksasatya/go-mcp-user-server/pkg/apperror"
)

const (
	findAllFailed = "Failed to find all users"
	saveFailed    = "Failed to save user"
)

type UserRepository struct {
	db     *sql.DB
	logger logrus.FieldLogger
}

func NewUserRepository(db *sql.DB, logger logrus.FieldLogger) *UserRepository {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &UserRepository{db: db, logger: logger}
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, age, created_at, updated_at
		FROM users
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, apperror.Internal(findAllFailed, err)
	}
	defer func() { _ = rows.Close() }()

	var records []mapper.UserRow
	for rows.Next() {
		var row mapper.UserRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Age, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, apperror.Internal(findAllFailed, err)
		}
		records = append(records, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Internal(findAllFailed, err)
	}

	users, err := mapper.ToUsers(records)
	if err != nil {
		r.logger.WithError(err).Warn("stored user failed validation, aborting read")
		return nil, apperror.Internal(findAllFailed, err)
	}
	return users, nil
}

func (r *UserRepository) Save(ctx context.Context, u *entity.User) error {
	row := mapper.ToRow(u)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, age, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, row.ID, row.Name, row.Age, row.CreatedAt, row.UpdatedAt)
	if err != nil {
		if isPrimaryKeyViolation(err) {
			return apperror.Internal(saveFailed, fmt.Errorf("%w: %s", repository.ErrUserAlreadyExists, row.ID))
		}
		return apperror.Internal(saveFailed, err)
	}
	return nil
}

func isPrimaryKeyViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return false
}

var _ repository.UserRepository = (*UserRepository)(nil)
