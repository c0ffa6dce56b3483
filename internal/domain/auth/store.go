package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	PasswordHash string    `json:"-"`
	RoleID       string    `json:"roleId"`
	RoleName     string    `json:"role"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

const UserStatusActive = "active"

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) FindActiveUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := s.DB.QueryRow(ctx, `
    SELECT u.id, u.email, u.full_name, u.password_hash, u.role_id, r.name, u.status, u.created_at
    FROM users u
    JOIN roles r ON u.role_id = r.id
    WHERE lower(u.email) = lower($1) AND u.status = $2
  `, email, UserStatusActive).Scan(
		&user.ID, &user.Email, &user.FullName, &user.PasswordHash,
		&user.RoleID, &user.RoleName, &user.Status, &user.CreatedAt,
	)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *Store) UpdateLastLogin(ctx context.Context, userID string) error {
	_, err := s.DB.Exec(ctx, `UPDATE users SET last_login_at = now() WHERE id = $1`, userID)
	return err
}

type menuRow struct {
	ID        string
	ParentID  string
	Key       string
	Label     string
	Path      string
	CanCreate bool
	CanUpdate bool
	CanDelete bool
}

// MenuTree returns the role's navigation tree with capability flags, in
// menu position order.
func (s *Store) MenuTree(ctx context.Context, roleID string) ([]MenuNode, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT m.id,
           COALESCE(m.parent_id::text, ''),
           m.key, m.label, m.path,
           rm.can_create, rm.can_update, rm.can_delete
    FROM menus m
    JOIN role_menus rm ON rm.menu_id = m.id
    WHERE rm.role_id = $1
    ORDER BY m.position, m.label
  `, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flat []menuRow
	for rows.Next() {
		var row menuRow
		if err := rows.Scan(&row.ID, &row.ParentID, &row.Key, &row.Label, &row.Path,
			&row.CanCreate, &row.CanUpdate, &row.CanDelete); err != nil {
			return nil, err
		}
		flat = append(flat, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return buildTree(flat), nil
}

func buildTree(flat []menuRow) []MenuNode {
	present := make(map[string]bool, len(flat))
	for _, row := range flat {
		present[row.ID] = true
	}

	var roots []MenuNode
	for _, row := range flat {
		// An entry whose parent is not granted to the role surfaces as a
		// root rather than disappearing.
		if row.ParentID == "" || !present[row.ParentID] {
			roots = append(roots, toNode(row, flat))
		}
	}
	return roots
}

func toNode(row menuRow, flat []menuRow) MenuNode {
	node := MenuNode{
		Key:       row.Key,
		Label:     row.Label,
		Path:      row.Path,
		CanCreate: row.CanCreate,
		CanUpdate: row.CanUpdate,
		CanDelete: row.CanDelete,
	}
	for _, child := range flat {
		if child.ParentID == row.ID {
			node.Children = append(node.Children, toNode(child, flat))
		}
	}
	return node
}

// HasCapability resolves one menu entry's action flag for a role.
func (s *Store) HasCapability(ctx context.Context, roleID, menuKey, action string) (bool, error) {
	var node MenuNode
	err := s.DB.QueryRow(ctx, `
    SELECT rm.can_create, rm.can_update, rm.can_delete
    FROM role_menus rm
    JOIN menus m ON rm.menu_id = m.id
    WHERE rm.role_id = $1 AND m.key = $2
  `, roleID, menuKey).Scan(&node.CanCreate, &node.CanUpdate, &node.CanDelete)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return node.Allows(action), nil
}
