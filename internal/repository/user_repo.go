package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/partsflow/procurement-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userSelectColumns = `SELECT id, username, password_hash, role, status, created_at`

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.Status,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserRepository provides access to login accounts.
type UserRepository interface {
	GetUsers(ctx context.Context, limit, offset int, username, status string) ([]models.User, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, username, passwordHash string, role models.UserRole) (*models.User, error)
	UpdateUserStatus(ctx context.Context, userID string, status models.UserStatus) error
	UpdateUserPassword(ctx context.Context, userID, passwordHash string) error
}

// PostgresUserRepository is the database-backed UserRepository.
type PostgresUserRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresUserRepository creates a new PostgresUserRepository.
func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// GetUsers returns a filtered page of accounts, newest first.
func (r *PostgresUserRepository) GetUsers(ctx context.Context, limit, offset int, username, status string) ([]models.User, error) {
	query := userSelectColumns + ` FROM users`
	var filters []string
	var args []interface{}
	argIndex := 1

	if username != "" {
		filters = append(filters, fmt.Sprintf("username ILIKE $%d", argIndex))
		args = append(args, "%"+username+"%")
		argIndex++
	}
	if status != "" {
		filters = append(filters, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, status)
		argIndex++
	}

	if len(filters) > 0 {
		query += " WHERE " + strings.Join(filters, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// GetUserByID returns the account for an id.
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	query := userSelectColumns + ` FROM users WHERE id = $1`
	return scanUser(r.DB.QueryRow(ctx, query, userID))
}

// GetUserByUsername returns the account for a username.
func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := userSelectColumns + ` FROM users WHERE username = $1`
	return scanUser(r.DB.QueryRow(ctx, query, username))
}

// CreateUser registers a new active account with an already-hashed password.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, username, passwordHash string, role models.UserRole) (*models.User, error) {
	newUser := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		Status:       models.ActiveUser,
		CreatedAt:    time.Now().UTC(),
	}

	query := `INSERT INTO users (id, username, password_hash, role, status, created_at) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.Exec(ctx, query, newUser.ID, newUser.Username, newUser.PasswordHash, newUser.Role, newUser.Status, newUser.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &newUser, nil
}

// UpdateUserStatus enables or disables an account.
func (r *PostgresUserRepository) UpdateUserStatus(ctx context.Context, userID string, status models.UserStatus) error {
	_, err := r.DB.Exec(ctx, `UPDATE users SET status = $1 WHERE id = $2`, status, userID)
	return err
}

// UpdateUserPassword replaces an account's password hash.
func (r *PostgresUserRepository) UpdateUserPassword(ctx context.Context, userID, passwordHash string) error {
	_, err := r.DB.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, userID)
	return err
}
