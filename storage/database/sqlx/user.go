package sqlxrepos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/trezcool/darasa/core/user"
)

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

type userRow struct {
	user.User
	Roles pq.StringArray `db:"roles"`
}

func (row userRow) toUser() user.User {
	usr := row.User
	usr.Roles = row.Roles
	return usr
}

const userColumns = `id, name, username, email, is_active, roles, password_hash, created_at, updated_at, last_login`

func (repo *userRepository) CheckUsernameUniqueness(ctx context.Context, username, email string, excludedUsers ...user.User) error {
	excludedIDs := make([]string, 0, len(excludedUsers))
	for _, usr := range excludedUsers {
		if usr.ID != "" {
			excludedIDs = append(excludedIDs, usr.ID)
		}
	}
	// sentinel keeps the NOT IN clause valid when nothing is excluded
	if len(excludedIDs) == 0 {
		excludedIDs = append(excludedIDs, "00000000-0000-0000-0000-000000000000")
	}

	check := func(column, value string, errExists error) error {
		if value == "" {
			return nil
		}
		query, args, err := sqlx.In(
			`SELECT count(id) FROM admin_user WHERE `+column+` = ? AND id NOT IN (?)`,
			value, excludedIDs)
		if err != nil {
			return err
		}
		var count int
		if err = repo.db.GetContext(ctx, &count, repo.db.Rebind(query), args...); err != nil {
			return err
		}
		if count > 0 {
			return errExists
		}
		return nil
	}

	if err := check("username", username, user.ErrUsernameExists); err != nil {
		return err
	}
	return check("email", email, user.ErrEmailExists)
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	err := repo.db.QueryRowxContext(ctx,
		`INSERT INTO admin_user (name, username, email, is_active, roles, password_hash, created_at, updated_at, last_login)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		usr.Name, usr.Username, usr.Email, usr.IsActive, pq.Array(usr.Roles),
		usr.PasswordHash, usr.CreatedAt, usr.UpdatedAt, usr.LastLogin,
	).Scan(&usr.ID)
	return usr, err
}

func (repo *userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	var row userRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT `+userColumns+` FROM admin_user WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return user.User{}, user.ErrNotFound
	}
	if err != nil {
		return user.User{}, err
	}
	return row.toUser(), nil
}

func (repo *userRepository) GetUserByUsernameOrEmail(ctx context.Context, username string) (user.User, error) {
	var row userRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT `+userColumns+` FROM admin_user WHERE username = $1 OR email = $1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return user.User{}, user.ErrNotFound
	}
	if err != nil {
		return user.User{}, err
	}
	return row.toUser(), nil
}

func (repo *userRepository) UpdateOrCreateUser(ctx context.Context, usr user.User) (user.User, error) {
	if usr.ID == "" {
		return repo.CreateUser(ctx, usr)
	}
	_, err := repo.db.ExecContext(ctx,
		`UPDATE admin_user
		 SET name = $1, username = $2, email = $3, is_active = $4, roles = $5,
		     password_hash = $6, updated_at = $7
		 WHERE id = $8`,
		usr.Name, usr.Username, usr.Email, usr.IsActive, pq.Array(usr.Roles),
		usr.PasswordHash, usr.UpdatedAt, usr.ID)
	return usr, err
}

func (repo *userRepository) SetLastLogin(ctx context.Context, usr user.User) (user.User, error) {
	_, err := repo.db.ExecContext(ctx,
		`UPDATE admin_user SET last_login = $1 WHERE id = $2`, usr.LastLogin, usr.ID)
	return usr, err
}
