package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-mcp-user-server/internal/domain/entity"
	"github.com/oksasatya/go-mcp-user-server/internal/domain/repository"
	"github.com/oksasatya/go-mcp-user-server/internal/infrastructure/mapper"
	"github.com/oksasatya/go-mcp-user-server/pkg/apperror"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool   *pgxpool.Pool
	logger logrus.FieldLogger
}

func NewUserRepository(pool *pgxpool.Pool, logger logrus.FieldLogger) *UserRepository {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &UserRepository{pool: pool, logger: logger}
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, age, created_at, updated_at
		FROM users
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, apperror.Internal("Failed to find all users", err)
	}
	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (mapper.UserRow, error) {
		var rec mapper.UserRow
		err := row.Scan(&rec.ID, &rec.Name, &rec.Age, &rec.CreatedAt, &rec.UpdatedAt)
		return rec, err
	})
	if err != nil {
		return nil, apperror.Internal("Failed to find all users", err)
	}

	users, err := mapper.ToUsers(records)
	if err != nil {
		r.logger.WithError(err).Warn("stored user failed validation, aborting read")
		return nil, apperror.Internal("Failed to find all users", err)
	}
	return users, nil
}

func (r *UserRepository) Save(ctx context.Context, u *entity.User) error {
	row := mapper.ToRow(u)
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, name, age, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, row.ID, row.Name, row.Age, row.CreatedAt, row.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperror.Internal("Failed to save user", fmt.Errorf("%w: %s", repository.ErrUserAlreadyExists, row.ID))
		}
		return apperror.Internal("Failed to save user", err)
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
