package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"opsdash/internal/domain/auth"
	"opsdash/internal/platform/config"
)

// seedMenu mirrors the dashboard navigation; Parent references another
// entry's key.
type seedMenu struct {
	Key      string
	Label    string
	Path     string
	Parent   string
	Position int
}

var defaultMenus = []seedMenu{
	{Key: "dashboard", Label: "Dashboard", Path: "/", Position: 1},
	{Key: "master-data", Label: "Master Data", Path: "", Position: 2},
	{Key: "employees", Label: "Karyawan", Path: "/employees", Parent: "master-data", Position: 1},
	{Key: "assets", Label: "Aset", Path: "/assets", Parent: "master-data", Position: 2},
	{Key: "fuel-ratios", Label: "Rasio BBM", Path: "/fuel-ratios", Position: 3},
	{Key: "backlogs", Label: "Backlog", Path: "/backlogs", Position: 4},
}

const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleViewer     = "viewer"
)

type grant struct {
	CanCreate bool
	CanUpdate bool
	CanDelete bool
}

// roleGrants maps role -> menu key -> capability flags. A missing menu key
// means the role cannot see that screen at all.
var roleGrants = map[string]map[string]grant{
	RoleAdmin: {
		"dashboard":   {},
		"master-data": {},
		"employees":   {CanCreate: true, CanUpdate: true, CanDelete: true},
		"assets":      {CanCreate: true, CanUpdate: true, CanDelete: true},
		"fuel-ratios": {CanCreate: true, CanUpdate: true, CanDelete: true},
		"backlogs":    {CanCreate: true, CanUpdate: true, CanDelete: true},
	},
	RoleSupervisor: {
		"dashboard":   {},
		"master-data": {},
		"employees":   {CanUpdate: true},
		"assets":      {CanCreate: true, CanUpdate: true},
		"fuel-ratios": {CanCreate: true, CanUpdate: true},
		"backlogs":    {CanCreate: true, CanUpdate: true},
	},
	RoleViewer: {
		"dashboard":   {},
		"master-data": {},
		"employees":   {},
		"assets":      {},
		"fuel-ratios": {},
		"backlogs":    {},
	},
}

func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	menuIDs, err := ensureMenus(ctx, pool)
	if err != nil {
		return err
	}

	roleIDs, err := ensureRoles(ctx, pool)
	if err != nil {
		return err
	}

	if err := ensureRoleMenus(ctx, pool, roleIDs, menuIDs); err != nil {
		return err
	}

	if strings.TrimSpace(cfg.SeedAdminEmail) != "" {
		if err := ensureAdminUser(ctx, pool, roleIDs[RoleAdmin], cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
			return err
		}
	}
	return nil
}

func ensureMenus(ctx context.Context, pool *pgxpool.Pool) (map[string]string, error) {
	ids := map[string]string{}
	for _, m := range defaultMenus {
		var parentID any
		if m.Parent != "" {
			parentID = ids[m.Parent]
		}
		var id string
		err := pool.QueryRow(ctx, `
      INSERT INTO menus (key, label, path, parent_id, position)
      VALUES ($1, $2, $3, $4, $5)
      ON CONFLICT (key) DO UPDATE SET label = EXCLUDED.label, path = EXCLUDED.path, position = EXCLUDED.position
      RETURNING id
    `, m.Key, m.Label, m.Path, parentID, m.Position).Scan(&id)
		if err != nil {
			return nil, err
		}
		ids[m.Key] = id
	}
	return ids, nil
}

func ensureRoles(ctx context.Context, pool *pgxpool.Pool) (map[string]string, error) {
	ids := map[string]string{}
	for roleName := range roleGrants {
		var id string
		err := pool.QueryRow(ctx, `
      INSERT INTO roles (name) VALUES ($1)
      ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
      RETURNING id
    `, roleName).Scan(&id)
		if err != nil {
			return nil, err
		}
		ids[roleName] = id
	}
	return ids, nil
}

func ensureRoleMenus(ctx context.Context, pool *pgxpool.Pool, roleIDs, menuIDs map[string]string) error {
	for roleName, grants := range roleGrants {
		for menuKey, g := range grants {
			_, err := pool.Exec(ctx, `
        INSERT INTO role_menus (role_id, menu_id, can_create, can_update, can_delete)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (role_id, menu_id) DO UPDATE
          SET can_create = EXCLUDED.can_create,
              can_update = EXCLUDED.can_update,
              can_delete = EXCLUDED.can_delete
      `, roleIDs[roleName], menuIDs[menuKey], g.CanCreate, g.CanUpdate, g.CanDelete)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, roleID, email, password string) error {
	var exists bool
	if err := pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))", email).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO users (email, full_name, password_hash, role_id, status)
    VALUES ($1, $2, $3, $4, $5)
  `, email, "Administrator", hash, roleID, auth.UserStatusActive)
	return err
}
