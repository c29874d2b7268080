package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"elysian/internal/db"
)

type AuthRepository struct {
	DB *sql.DB
}

func NewAuthRepository(database *sql.DB) *AuthRepository {
	return &AuthRepository{DB: database}
}

func (r *AuthRepository) GetAdminByEmail(email string) (*db.Admin, error) {
	var admin db.Admin
	err := r.DB.QueryRow(
		`SELECT id, email, password_hash FROM admins WHERE email = $1`, email,
	).Scan(&admin.ID, &admin.Email, &admin.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("error querying admin: %w", err)
	}
	return &admin, nil
}

func (r *AuthRepository) CreateAdmin(admin *db.Admin) error {
	query := `INSERT INTO admins (email, password_hash) VALUES ($1, $2) RETURNING id`
	return r.DB.QueryRow(query, admin.Email, admin.PasswordHash).Scan(&admin.ID)
}
