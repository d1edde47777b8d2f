package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"movie-catalog/internal/apperror"
	"movie-catalog/internal/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope narrows a query, typically to the rows a user owns.
type Scope = func(*gorm.DB) *gorm.DB

// OwnedBy limits a query to rows whose column equals userID.
func OwnedBy(column string, userID uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", userID)
	}
}

// FavoriteMoviesOf limits favorite_movies to entries of the user's favorites list.
func FavoriteMoviesOf(userID uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN favorites ON favorites.id = favorite_movies.favorite_id").
			Where("favorites.user_id = ?", userID)
	}
}

var byID = clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: clause.PrimaryKey}}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// translate maps driver errors onto application errors.
func translate(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.NotFound(entity + " not found")
	case apperror.IsDuplicateError(err):
		return apperror.Wrap(apperror.KindConflict, entity+" already exists", err)
	default:
		return err
	}
}

// Upsert describes an insert that resolves conflicts on a unique key.
// An empty Update list keeps the existing row untouched.
type Upsert[M any] struct {
	Columns []string
	Update  []string
	Values  func(*M) []any
}

// Dependent is a table whose rows reference a store's entity through Column.
type Dependent struct {
	Model  any
	Column string
}

// Cascade lists what Delete removes along with a row. Replies names a
// self-referencing column; rows pointing at a deleted row are deleted too,
// recursively, and Dependents are cleared for every removed row.
type Cascade struct {
	Replies    string
	Dependents []Dependent
}

// Store is a GORM-backed CRUD store for one entity type.
type Store[M any] struct {
	db       *gorm.DB
	timeout  time.Duration
	entity   string
	preloads []string
	cascade  Cascade
}

func NewStore[M any](db *database.Database, entity string, preloads ...string) *Store[M] {
	return &Store[M]{
		db:       db.DB,
		timeout:  db.GetQueryTimeout(),
		entity:   entity,
		preloads: preloads,
	}
}

// WithCascade sets the rows Delete removes along with the deleted one.
func (s *Store[M]) WithCascade(c Cascade) *Store[M] {
	s.cascade = c
	return s
}

func (s *Store[M]) Entity() string {
	return s.entity
}

func (s *Store[M]) query(ctx context.Context) *gorm.DB {
	q := s.db.WithContext(ctx)
	for _, p := range s.preloads {
		q = q.Preload(p)
	}
	return q
}

func (s *Store[M]) Get(ctx context.Context, id uint) (*M, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var m M
	if err := s.query(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err, s.entity)
	}
	return &m, nil
}

func (s *Store[M]) List(ctx context.Context, offset, limit int, scopes ...Scope) ([]M, int64, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var total int64
	var items []M

	base := s.db.WithContext(ctx).Model(new(M)).Scopes(scopes...)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := s.query(ctx).Scopes(scopes...).
		Order(byID).
		Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Store[M]) Create(ctx context.Context, m *M) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error, s.entity)
}

// Upsert inserts m or resolves the unique-key conflict described by u, then
// reloads m from the stored row.
func (s *Store[M]) Upsert(ctx context.Context, m *M, u Upsert[M]) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	columns := make([]clause.Column, len(u.Columns))
	for i, c := range u.Columns {
		columns[i] = clause.Column{Name: c}
	}
	onConflict := clause.OnConflict{Columns: columns, DoNothing: len(u.Update) == 0}
	if len(u.Update) > 0 {
		onConflict.DoUpdates = clause.AssignmentColumns(u.Update)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Clauses(onConflict).Create(m).Error; err != nil {
			return translate(err, s.entity)
		}

		values := u.Values(m)
		conds := make([]string, len(u.Columns))
		for i, c := range u.Columns {
			conds[i] = c + " = ?"
		}
		var stored M
		if err := tx.Where(strings.Join(conds, " AND "), values...).First(&stored).Error; err != nil {
			return translate(err, s.entity)
		}
		*m = stored
		return nil
	})
}

func (s *Store[M]) Save(ctx context.Context, m *M) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error, s.entity)
}

func (s *Store[M]) Delete(ctx context.Context, id uint) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := []uint{id}
		if s.cascade.Replies != "" {
			var err error
			if ids, err = s.replyTree(tx, id); err != nil {
				return err
			}
		}

		for _, dep := range s.cascade.Dependents {
			if err := tx.Where(dep.Column+" IN ?", ids).Delete(dep.Model).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(new(M), ids)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperror.NotFound(s.entity + " not found")
		}
		return nil
	})
}

// replyTree returns id followed by every row that replies to it, directly or
// through other replies.
func (s *Store[M]) replyTree(tx *gorm.DB, id uint) ([]uint, error) {
	ids := []uint{id}
	seen := map[uint]bool{id: true}
	frontier := []uint{id}
	for len(frontier) > 0 {
		var replies []uint
		if err := tx.Model(new(M)).Where(s.cascade.Replies+" IN ?", frontier).Pluck("id", &replies).Error; err != nil {
			return nil, err
		}

		var next []uint
		for _, reply := range replies {
			if !seen[reply] {
				seen[reply] = true
				ids = append(ids, reply)
				next = append(next, reply)
			}
		}
		frontier = next
	}
	return ids, nil
}

// Transaction runs fn against a store bound to a single database transaction.
func (s *Store[M]) Transaction(ctx context.Context, fn func(tx *Store[M]) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store[M]{db: tx, timeout: s.timeout, entity: s.entity, preloads: s.preloads, cascade: s.cascade})
	})
}
