package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/propai/pkg/types"
)

var _ types.UserTable = (*usersTable)(nil)

const userColumns = "id, email, name, role, avatar, created_at"

type usersTable struct {
	backend *Backend
}

func hydrateUser(row rowScanner) (types.User, error) {
	var (
		u      types.User
		role   string
		avatar sql.NullString
	)
	err := row.Scan(&u.ID, &u.Email, &u.Name, &role, &avatar, &u.CreatedAt)
	u.Role = types.Role(role)
	if avatar.Valid {
		u.Avatar = &avatar.String
	}
	return u, err
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func (ut *usersTable) List(ctx context.Context) ([]types.User, error) {
	return ut.selectMany(ctx, "ORDER BY seq")
}

func (ut *usersTable) Get(ctx context.Context, id string) (*types.User, error) {
	return ut.selectOne(ctx, "WHERE id = ?", id)
}

// Create relies on the email UNIQUE constraint; the pre-check under the
// backend write lock gives a clean ErrEmailTaken without parsing driver
// errors in the common case.
func (ut *usersTable) Create(ctx context.Context, data types.User) (*types.User, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	u := data.Clone()
	err := ut.backend.write(ctx, func(tx *sql.Tx) error {
		existing, err := queryOne(ctx, tx, hydrateUser,
			"SELECT "+userColumns+" FROM users WHERE email = ?", u.Email)
		if err != nil {
			return fmt.Errorf("checking email: %w", err)
		}
		if existing != nil {
			return types.ErrEmailTaken
		}
		u.ID = generateUUID()
		u.CreatedAt = ut.backend.nowMillis()
		return insertUser(ctx, tx, u)
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func insertUser(ctx context.Context, tx *sql.Tx, u types.User) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO users ("+userColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		u.ID, u.Email, u.Name, string(u.Role), nullableString(u.Avatar), u.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return types.ErrEmailTaken
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (ut *usersTable) Update(ctx context.Context, id string, patch types.UserPatch) (*types.User, error) {
	var out *types.User
	err := ut.backend.write(ctx, func(tx *sql.Tx) error {
		cur, err := queryOne(ctx, tx, hydrateUser,
			"SELECT "+userColumns+" FROM users WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("getting user %s: %w", id, err)
		}
		if cur == nil {
			return nil
		}
		u := patch.Apply(*cur)
		if err := u.Validate(); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			"UPDATE users SET name = ?, role = ?, avatar = ? WHERE id = ?",
			u.Name, string(u.Role), nullableString(u.Avatar), id,
		)
		if err != nil {
			return fmt.Errorf("updating user %s: %w", id, err)
		}
		out = &u
		return nil
	})
	return out, err
}

func (ut *usersTable) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, ut.backend, "users", id)
}

func (ut *usersTable) ByEmail(ctx context.Context, email string) (*types.User, error) {
	return ut.selectOne(ctx, "WHERE email = ?", email)
}

func (ut *usersTable) ByRole(ctx context.Context, role types.Role) ([]types.User, error) {
	return ut.selectMany(ctx, "WHERE role = ? ORDER BY seq", string(role))
}

func (ut *usersTable) Search(ctx context.Context, query string) ([]types.User, error) {
	all, err := ut.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []types.User{}
	for _, u := range all {
		if u.Matches(query) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (ut *usersTable) selectMany(ctx context.Context, clause string, args ...any) ([]types.User, error) {
	var out []types.User
	err := ut.backend.read(ctx, func(db *sql.DB) error {
		var err error
		out, err = queryAll(ctx, db, hydrateUser, "SELECT "+userColumns+" FROM users "+clause, args...)
		if err != nil {
			return fmt.Errorf("listing users: %w", err)
		}
		return nil
	})
	return out, err
}

func (ut *usersTable) selectOne(ctx context.Context, clause string, args ...any) (*types.User, error) {
	var out *types.User
	err := ut.backend.read(ctx, func(db *sql.DB) error {
		var err error
		out, err = queryOne(ctx, db, hydrateUser, "SELECT "+userColumns+" FROM users "+clause, args...)
		if err != nil {
			return fmt.Errorf("getting user: %w", err)
		}
		return nil
	})
	return out, err
}
