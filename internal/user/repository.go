package user

import (
	"database/sql"
	"errors"
	"fmt"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("profile not found")
)

type Repository interface {
	createUser(user *User, displayName string) error
	userExistsByLoginOrEmail(login, email string) (*User, error)
	getUserByLoginOrEmail(loginOrEmail string) (*User, error)
	getUserByID(id string) (*User, error)
	getProfile(userID string) (*Profile, error)
	updateProfile(profile *Profile) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) Repository {
	return &userRepository{
		db: db,
	}
}

// createUser inserts the users row and its profile row in one transaction,
// so a user never exists without a profile.
func (r *userRepository) createUser(user *User, displayName string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %v", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO users (id, email, login, password_hash, hash_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err = tx.Exec(query, user.ID, user.Email, user.Login, user.PasswordHash, user.HashToken)
	if err != nil {
		return fmt.Errorf("could not create user: %v", err)
	}

	profileQuery := `
		INSERT INTO profiles (user_id, display_name, monthly_budget, created_at, updated_at)
		VALUES ($1, $2, 0, NOW(), NOW())
	`
	_, err = tx.Exec(profileQuery, user.ID, displayName)
	if err != nil {
		return fmt.Errorf("could not create profile: %v", err)
	}

	return tx.Commit()
}

func (r *userRepository) userExistsByLoginOrEmail(login, email string) (*User, error) {
	query := `
		SELECT id, email, login, password_hash, hash_token, created_at, updated_at
		FROM users
		WHERE login = $1 OR email = $2
	`

	var user User
	err := r.db.QueryRow(query, login, email).Scan(&user.ID, &user.Email, &user.Login, &user.PasswordHash, &user.HashToken, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("could not find user: %v", err)
	}

	return &user, nil
}

func (r *userRepository) getUserByLoginOrEmail(loginOrEmail string) (*User, error) {
	query := `
		SELECT id, email, login, password_hash, hash_token, created_at, updated_at
		FROM users
		WHERE login = $1 OR email = $1
	`

	var user User
	err := r.db.QueryRow(query, loginOrEmail).Scan(&user.ID, &user.Email, &user.Login, &user.PasswordHash, &user.HashToken, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("could not find user: %v", err)
	}

	return &user, nil
}

func (r *userRepository) getUserByID(id string) (*User, error) {
	query := `
		SELECT id, email, login, password_hash, hash_token, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user User
	err := r.db.QueryRow(query, id).Scan(&user.ID, &user.Email, &user.Login, &user.PasswordHash, &user.HashToken, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("could not find user: %v", err)
	}

	return &user, nil
}

func (r *userRepository) getProfile(userID string) (*Profile, error) {
	query := `
		SELECT user_id, display_name, monthly_budget, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var profile Profile
	err := r.db.QueryRow(query, userID).Scan(&profile.UserID, &profile.DisplayName, &profile.MonthlyBudget, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("could not find profile: %v", err)
	}

	return &profile, nil
}

func (r *userRepository) updateProfile(profile *Profile) error {
	query := `
		UPDATE profiles
		SET display_name = $2, monthly_budget = $3, updated_at = NOW()
		WHERE user_id = $1
	`

	result, err := r.db.Exec(query, profile.UserID, profile.DisplayName, profile.MonthlyBudget)
	if err != nil {
		return fmt.Errorf("could not update profile: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not check updated rows: %v", err)
	}
	if rows == 0 {
		return ErrProfileNotFound
	}

	return nil
}
