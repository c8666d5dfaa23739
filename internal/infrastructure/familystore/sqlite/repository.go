// Package sqlite provides a SQLite implementation of the FamilyStore
// and ReviewQueue interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Virtualupon/FamilyTree-sub012/internal/domain/entities"
	"github.com/Virtualupon/FamilyTree-sub012/internal/infrastructure/config"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Repository implements ports.FamilyStore and ports.ReviewQueue using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Family trees
	CREATE TABLE IF NOT EXISTS trees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		normalized_name TEXT NOT NULL UNIQUE,
		description TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- People (soft-deletable)
	CREATE TABLE IF NOT EXISTS people (
		id TEXT PRIMARY KEY,
		tree_id TEXT NOT NULL,
		name TEXT NOT NULL,
		arabic_name TEXT NOT NULL DEFAULT '',
		sex TEXT NOT NULL DEFAULT 'unknown',
		birth_date TIMESTAMP,
		family_group_id TEXT NOT NULL DEFAULT '',
		deleted INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_people_tree ON people(tree_id, deleted);
	CREATE INDEX IF NOT EXISTS idx_people_family_group ON people(family_group_id);

	-- Parent-child links (soft-deletable)
	CREATE TABLE IF NOT EXISTS parent_child_links (
		id TEXT PRIMARY KEY,
		parent_id TEXT NOT NULL,
		child_id TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT 'biological',
		deleted INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_links_parent ON parent_child_links(parent_id, deleted);
	CREATE INDEX IF NOT EXISTS idx_links_child ON parent_child_links(child_id, deleted);

	-- Unions (soft-deletable)
	CREATE TABLE IF NOT EXISTS unions (
		id TEXT PRIMARY KEY,
		tree_id TEXT NOT NULL,
		start_date TIMESTAMP,
		end_date TIMESTAMP,
		deleted INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_unions_tree ON unions(tree_id, deleted);

	-- Union members (independently soft-deletable)
	CREATE TABLE IF NOT EXISTS union_members (
		id TEXT PRIMARY KEY,
		union_id TEXT NOT NULL,
		person_id TEXT NOT NULL,
		deleted INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_union_members_union ON union_members(union_id, deleted);
	CREATE INDEX IF NOT EXISTS idx_union_members_person ON union_members(person_id, deleted);

	-- Prediction suggestions awaiting review
	CREATE TABLE IF NOT EXISTS suggestions (
		id TEXT PRIMARY KEY,
		tree_id TEXT NOT NULL,
		rule_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		source_id TEXT NOT NULL,
		target_id TEXT NOT NULL,
		confidence INTEGER NOT NULL,
		explanation TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		reviewed_at TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_suggestions_tree ON suggestions(tree_id, status);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SaveTree saves or updates a tree.
func (r *Repository) SaveTree(ctx context.Context, tree *entities.Tree) error {
	query := `
		INSERT INTO trees (id, name, normalized_name, description, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			normalized_name = excluded.normalized_name,
			description = excluded.description
	`
	_, err := r.db.ExecContext(ctx, query,
		tree.ID,
		tree.Name,
		entities.NormalizeName(tree.Name),
		tree.Description,
		tree.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving tree: %w", err)
	}
	return nil
}

// FindTreeByID finds a tree by its ID.
func (r *Repository) FindTreeByID(ctx context.Context, treeID string) (*entities.Tree, error) {
	query := `
		SELECT id, name, description, created_at
		FROM trees
		WHERE id = ?
	`
	return r.scanTree(r.db.QueryRowContext(ctx, query, treeID))
}

// FindTreeByName finds a tree by its name (case-insensitive).
func (r *Repository) FindTreeByName(ctx context.Context, name string) (*entities.Tree, error) {
	query := `
		SELECT id, name, description, created_at
		FROM trees
		WHERE normalized_name = ?
	`
	return r.scanTree(r.db.QueryRowContext(ctx, query, entities.NormalizeName(name)))
}

func (r *Repository) scanTree(row *sql.Row) (*entities.Tree, error) {
	var tree entities.Tree
	err := row.Scan(&tree.ID, &tree.Name, &tree.Description, &tree.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning tree: %w", err)
	}
	return &tree, nil
}

// ListTrees lists all trees.
func (r *Repository) ListTrees(ctx context.Context) ([]entities.Tree, error) {
	query := `
		SELECT id, name, description, created_at
		FROM trees
		ORDER BY name ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying trees: %w", err)
	}
	defer rows.Close()

	result := make([]entities.Tree, 0)
	for rows.Next() {
		var tree entities.Tree
		if err := rows.Scan(&tree.ID, &tree.Name, &tree.Description, &tree.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning tree: %w", err)
		}
		result = append(result, tree)
	}
	return result, rows.Err()
}

// SavePerson saves or updates a person.
func (r *Repository) SavePerson(ctx context.Context, person *entities.Person) error {
	query := `
		INSERT INTO people (id, tree_id, name, arabic_name, sex, birth_date, family_group_id, deleted, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			arabic_name = excluded.arabic_name,
			sex = excluded.sex,
			birth_date = excluded.birth_date,
			family_group_id = excluded.family_group_id,
			deleted = excluded.deleted
	`
	_, err := r.db.ExecContext(ctx, query,
		person.ID,
		person.TreeID,
		person.Name,
		person.ArabicName,
		string(person.Sex),
		nullTime(person.BirthDate),
		person.FamilyGroupID,
		boolToInt(person.Deleted),
		person.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving person: %w", err)
	}
	return nil
}

// FindPersonByID finds a non-deleted person by ID.
func (r *Repository) FindPersonByID(ctx context.Context, personID string) (*entities.Person, error) {
	query := `
		SELECT id, tree_id, name, arabic_name, sex, birth_date, family_group_id, created_at
		FROM people
		WHERE id = ? AND deleted = 0
	`
	row := r.db.QueryRowContext(ctx, query, personID)

	person, err := scanPerson(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning person: %w", err)
	}
	return person, nil
}

// ListPeople lists all non-deleted people in a tree, ordered by name.
func (r *Repository) ListPeople(ctx context.Context, treeID string) ([]entities.Person, error) {
	query := `
		SELECT id, tree_id, name, arabic_name, sex, birth_date, family_group_id, created_at
		FROM people
		WHERE tree_id = ? AND deleted = 0
		ORDER BY name ASC, id ASC
	`
	return r.queryPeople(ctx, query, treeID)
}

// SearchPeople searches non-deleted people in a tree by name pattern.
func (r *Repository) SearchPeople(ctx context.Context, treeID, query string, limit int) ([]entities.Person, error) {
	pattern := "%" + entities.NormalizeName(query) + "%"
	sqlQuery := `
		SELECT id, tree_id, name, arabic_name, sex, birth_date, family_group_id, created_at
		FROM people
		WHERE tree_id = ? AND deleted = 0 AND (LOWER(name) LIKE ? OR arabic_name LIKE ?)
		ORDER BY name ASC, id ASC
		LIMIT ?
	`
	return r.queryPeople(ctx, sqlQuery, treeID, pattern, pattern, limit)
}

func (r *Repository) queryPeople(ctx context.Context, query string, args ...any) ([]entities.Person, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying people: %w", err)
	}
	defer rows.Close()

	result := make([]entities.Person, 0)
	for rows.Next() {
		person, err := scanPerson(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning person: %w", err)
		}
		result = append(result, *person)
	}
	return result, rows.Err()
}

// scanPerson scans a person row via the given scan function.
func scanPerson(scan func(dest ...any) error) (*entities.Person, error) {
	var person entities.Person
	var sex string
	var birthDate sql.NullTime
	err := scan(
		&person.ID,
		&person.TreeID,
		&person.Name,
		&person.ArabicName,
		&sex,
		&birthDate,
		&person.FamilyGroupID,
		&person.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	person.Sex = entities.Sex(sex)
	if birthDate.Valid {
		t := birthDate.Time
		person.BirthDate = &t
	}
	return &person, nil
}

// DeletePerson soft-deletes a person.
func (r *Repository) DeletePerson(ctx context.Context, personID string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE people SET deleted = 1 WHERE id = ?`, personID)
	if err != nil {
		return fmt.Errorf("deleting person: %w", err)
	}
	return nil
}

// CountPeople returns the number of non-deleted people in a tree.
func (r *Repository) CountPeople(ctx context.Context, treeID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM people WHERE tree_id = ? AND deleted = 0`, treeID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting people: %w", err)
	}
	return count, nil
}

// SaveParentLink saves or updates a parent-child link.
func (r *Repository) SaveParentLink(ctx context.Context, link *entities.ParentChildLink) error {
	query := `
		INSERT INTO parent_child_links (id, parent_id, child_id, type, deleted, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			deleted = excluded.deleted
	`
	_, err := r.db.ExecContext(ctx, query,
		link.ID,
		link.ParentID,
		link.ChildID,
		string(link.Type),
		boolToInt(link.Deleted),
		link.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving parent-child link: %w", err)
	}
	return nil
}

// ListParentLinks lists non-deleted links between non-deleted people in
// a tree, annotated with parent and child names.
func (r *Repository) ListParentLinks(ctx context.Context, treeID string) ([]entities.ParentChildLink, error) {
	query := `
		SELECT l.id, l.parent_id, l.child_id, l.type, l.created_at, p.name, c.name
		FROM parent_child_links l
		JOIN people p ON p.id = l.parent_id AND p.deleted = 0
		JOIN people c ON c.id = l.child_id AND c.deleted = 0
		WHERE p.tree_id = ? AND l.deleted = 0
		ORDER BY l.id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, treeID)
	if err != nil {
		return nil, fmt.Errorf("querying parent-child links: %w", err)
	}
	defer rows.Close()

	result := make([]entities.ParentChildLink, 0)
	for rows.Next() {
		var link entities.ParentChildLink
		var linkType string
		if err := rows.Scan(
			&link.ID,
			&link.ParentID,
			&link.ChildID,
			&linkType,
			&link.CreatedAt,
			&link.ParentName,
			&link.ChildName,
		); err != nil {
			return nil, fmt.Errorf("scanning parent-child link: %w", err)
		}
		link.Type = entities.LinkType(linkType)
		result = append(result, link)
	}
	return result, rows.Err()
}

// HasParentLink reports whether a non-deleted parent-to-child link exists.
func (r *Repository) HasParentLink(ctx context.Context, parentID, childID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM parent_child_links WHERE parent_id = ? AND child_id = ? AND deleted = 0`,
		parentID, childID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking parent-child link: %w", err)
	}
	return count > 0, nil
}

// CountBiologicalParents counts non-deleted biological parent links of a child.
func (r *Repository) CountBiologicalParents(ctx context.Context, childID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM parent_child_links WHERE child_id = ? AND type = ? AND deleted = 0`,
		childID, string(entities.LinkBiological),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting biological parents: %w", err)
	}
	return count, nil
}

// DeleteParentLink soft-deletes a parent-child link.
func (r *Repository) DeleteParentLink(ctx context.Context, linkID string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE parent_child_links SET deleted = 1 WHERE id = ?`, linkID)
	if err != nil {
		return fmt.Errorf("deleting parent-child link: %w", err)
	}
	return nil
}

// SaveUnion saves or updates a union (without members).
func (r *Repository) SaveUnion(ctx context.Context, union *entities.Union) error {
	query := `
		INSERT INTO unions (id, tree_id, start_date, end_date, deleted, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			deleted = excluded.deleted
	`
	_, err := r.db.ExecContext(ctx, query,
		union.ID,
		union.TreeID,
		nullTime(union.StartDate),
		nullTime(union.EndDate),
		boolToInt(union.Deleted),
		union.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving union: %w", err)
	}
	return nil
}

// AddUnionMember adds a person to a union.
func (r *Repository) AddUnionMember(ctx context.Context, unionID, personID string) error {
	query := `
		INSERT INTO union_members (id, union_id, person_id, deleted, created_at)
		VALUES (?, ?, ?, 0, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		unionID+":"+personID,
		unionID,
		personID,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("adding union member: %w", err)
	}
	return nil
}

// ListUnions lists non-deleted unions in a tree with their non-deleted
// members, annotated with member names.
func (r *Repository) ListUnions(ctx context.Context, treeID string) ([]entities.Union, error) {
	query := `
		SELECT id, tree_id, start_date, end_date, created_at
		FROM unions
		WHERE tree_id = ? AND deleted = 0
		ORDER BY id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, treeID)
	if err != nil {
		return nil, fmt.Errorf("querying unions: %w", err)
	}
	defer rows.Close()

	unions := make([]entities.Union, 0)
	indexByID := make(map[string]int)
	for rows.Next() {
		var union entities.Union
		var start, end sql.NullTime
		if err := rows.Scan(&union.ID, &union.TreeID, &start, &end, &union.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning union: %w", err)
		}
		union.StartDate = timePtr(start)
		union.EndDate = timePtr(end)
		indexByID[union.ID] = len(unions)
		unions = append(unions, union)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	memberQuery := `
		SELECT m.id, m.union_id, m.person_id, m.created_at, p.name
		FROM union_members m
		JOIN unions u ON u.id = m.union_id AND u.deleted = 0
		JOIN people p ON p.id = m.person_id AND p.deleted = 0
		WHERE u.tree_id = ? AND m.deleted = 0
		ORDER BY m.union_id ASC, m.id ASC
	`
	memberRows, err := r.db.QueryContext(ctx, memberQuery, treeID)
	if err != nil {
		return nil, fmt.Errorf("querying union members: %w", err)
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var member entities.UnionMember
		if err := memberRows.Scan(
			&member.ID,
			&member.UnionID,
			&member.PersonID,
			&member.CreatedAt,
			&member.PersonName,
		); err != nil {
			return nil, fmt.Errorf("scanning union member: %w", err)
		}
		if i, ok := indexByID[member.UnionID]; ok {
			unions[i].Members = append(unions[i].Members, member)
		}
	}
	return unions, memberRows.Err()
}

// FindUnionByID finds a non-deleted union by ID with its members.
func (r *Repository) FindUnionByID(ctx context.Context, unionID string) (*entities.Union, error) {
	query := `
		SELECT id, tree_id, start_date, end_date, created_at
		FROM unions
		WHERE id = ? AND deleted = 0
	`
	row := r.db.QueryRowContext(ctx, query, unionID)

	var union entities.Union
	var start, end sql.NullTime
	err := row.Scan(&union.ID, &union.TreeID, &start, &end, &union.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning union: %w", err)
	}
	union.StartDate = timePtr(start)
	union.EndDate = timePtr(end)

	memberQuery := `
		SELECT m.id, m.union_id, m.person_id, m.created_at, p.name
		FROM union_members m
		JOIN people p ON p.id = m.person_id AND p.deleted = 0
		WHERE m.union_id = ? AND m.deleted = 0
		ORDER BY m.id ASC
	`
	rows, err := r.db.QueryContext(ctx, memberQuery, unionID)
	if err != nil {
		return nil, fmt.Errorf("querying union members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var member entities.UnionMember
		if err := rows.Scan(
			&member.ID,
			&member.UnionID,
			&member.PersonID,
			&member.CreatedAt,
			&member.PersonName,
		); err != nil {
			return nil, fmt.Errorf("scanning union member: %w", err)
		}
		union.Members = append(union.Members, member)
	}
	return &union, rows.Err()
}

// HasUnionBetween reports whether two people share a non-deleted union.
func (r *Repository) HasUnionBetween(ctx context.Context, personA, personB string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM union_members a
		JOIN union_members b ON a.union_id = b.union_id
		JOIN unions u ON u.id = a.union_id AND u.deleted = 0
		WHERE a.person_id = ? AND b.person_id = ?
		  AND a.deleted = 0 AND b.deleted = 0
	`
	var count int
	err := r.db.QueryRowContext(ctx, query, personA, personB).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking union between people: %w", err)
	}
	return count > 0, nil
}

// DeleteUnion soft-deletes a union.
func (r *Repository) DeleteUnion(ctx context.Context, unionID string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE unions SET deleted = 1 WHERE id = ?`, unionID)
	if err != nil {
		return fmt.Errorf("deleting union: %w", err)
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	result := t.Time
	return &result
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
