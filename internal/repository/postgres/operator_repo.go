package postgres

import (
	"context"
	"database/sql"
	"errors"

	"portalevents/internal/domain"
)

type operatorRepository struct {
	DB *sql.DB
}

func NewOperatorRepository(db *sql.DB) domain.OperatorRepository {
	return &operatorRepository{DB: db}
}

func (r *operatorRepository) Create(ctx context.Context, op *domain.Operator) error {
	query := `
		INSERT INTO operators (email, password_hash, salt, name, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, op.Email, op.PasswordHash, op.Salt, op.Name, op.CreatedAt).Scan(&op.ID)
	if isUniqueViolation(err) {
		return domain.ErrOperatorExists
	}
	return err
}

func (r *operatorRepository) GetByEmail(ctx context.Context, email string) (*domain.Operator, error) {
	query := `
		SELECT id, email, password_hash, salt, name, created_at
		FROM operators
		WHERE email = $1
	`
	op := &domain.Operator{}
	err := r.DB.QueryRowContext(ctx, query, email).Scan(&op.ID, &op.Email, &op.PasswordHash, &op.Salt, &op.Name, &op.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return op, nil
}
