package services

import (
	"context"

	"movie-catalog/internal/apperror"
	"movie-catalog/internal/pagination"
	"movie-catalog/internal/repository"
	"movie-catalog/internal/serializers"
)

// Input is a request payload that can be written onto a model.
type Input[M any] interface {
	Apply(m *M)
}

// ResourceOptions parameterize a ResourceService for one entity.
type ResourceOptions[M any, In Input[M]] struct {
	// NewInput derives the editable fields from a model.
	NewInput func(m *M) In
	OwnerOf  func(m *M) uint
	// SetOwner stamps the acting user onto new and edited rows. Nil when the
	// owner follows from another field.
	SetOwner func(m *M, userID uint)
	// Scope restricts listings to the acting user's rows. A resource with a
	// scope is private: other users' rows read as missing.
	Scope func(userID uint) repository.Scope
	// Check validates references after the input is applied.
	Check  func(ctx context.Context, userID uint, m *M) error
	Upsert *repository.Upsert[M]
}

// ResourceService implements list, create, retrieve, update and delete for
// user owned rows.
type ResourceService[M any, In Input[M]] struct {
	store *repository.Store[M]
	opts  ResourceOptions[M, In]
}

func NewResourceService[M any, In Input[M]](store *repository.Store[M], opts ResourceOptions[M, In]) *ResourceService[M, In] {
	return &ResourceService[M, In]{store: store, opts: opts}
}

func (s *ResourceService[M, In]) Entity() string {
	return s.store.Entity()
}

func (s *ResourceService[M, In]) private() bool {
	return s.opts.Scope != nil
}

func (s *ResourceService[M, In]) authorize(m *M, userID uint) error {
	if s.opts.OwnerOf(m) == userID {
		return nil
	}
	if s.private() {
		return apperror.NotFound(s.store.Entity() + " not found")
	}
	return apperror.Forbidden("You do not have permission to perform this action.")
}

func (s *ResourceService[M, In]) List(ctx context.Context, userID uint, page pagination.Request) ([]M, int64, error) {
	var scopes []repository.Scope
	if s.private() {
		scopes = append(scopes, s.opts.Scope(userID))
	}
	return s.store.List(ctx, page.Offset(), page.Size, scopes...)
}

func (s *ResourceService[M, In]) Get(ctx context.Context, userID, id uint) (*M, error) {
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.private() {
		if err := s.authorize(m, userID); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (s *ResourceService[M, In]) Create(ctx context.Context, userID uint, decode Decoder) (*M, error) {
	m := new(M)
	if err := s.bind(ctx, userID, m, s.opts.NewInput(m), decode); err != nil {
		return nil, err
	}

	if s.opts.Upsert != nil {
		if err := s.store.Upsert(ctx, m, *s.opts.Upsert); err != nil {
			return nil, err
		}
		return m, nil
	}
	if err := s.store.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Update replaces the editable fields of row id. A partial update decodes onto
// the current values, a full one onto empty ones.
func (s *ResourceService[M, In]) Update(ctx context.Context, userID, id uint, partial bool, decode Decoder) (*M, error) {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(current, userID); err != nil {
		return nil, err
	}

	in := s.opts.NewInput(new(M))
	if partial {
		in = s.opts.NewInput(current)
	}
	updated := *current
	if err := s.bind(ctx, userID, &updated, in, decode); err != nil {
		return nil, err
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store[M]) error {
		stored, err := tx.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := s.authorize(stored, userID); err != nil {
			return err
		}
		return tx.Save(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *ResourceService[M, In]) Delete(ctx context.Context, userID, id uint) error {
	return s.store.Transaction(ctx, func(tx *repository.Store[M]) error {
		stored, err := tx.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := s.authorize(stored, userID); err != nil {
			return err
		}
		return tx.Delete(ctx, id)
	})
}

// bind decodes the request onto in, validates it and writes it onto m.
// It runs outside any transaction because Check reads other tables.
func (s *ResourceService[M, In]) bind(ctx context.Context, userID uint, m *M, in In, decode Decoder) error {
	if err := decode(&in); err != nil {
		return err
	}
	if err := serializers.Validate(in); err != nil {
		return err
	}

	in.Apply(m)
	if s.opts.SetOwner != nil {
		s.opts.SetOwner(m, userID)
	}
	if s.opts.Check != nil {
		return s.opts.Check(ctx, userID, m)
	}
	return nil
}
