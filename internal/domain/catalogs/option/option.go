// Package option provides small configurable name lists used by the
// product catalog: produce types (Kion, Curcuma) and qualities (Primera,
// Segunda). One table, keyed by kind.
package option

import (
	"context"
	"fmt"
	"strings"

	"gyh/internal/core/apperror"
	"gyh/internal/core/entity"
	"gyh/internal/core/id"
	"gyh/internal/core/tx"
)

// Kind selects the option list.
type Kind string

const (
	KindProductType    Kind = "product_type"
	KindProductQuality Kind = "product_quality"
)

// Valid reports whether the kind is known.
func (k Kind) Valid() bool {
	return k == KindProductType || k == KindProductQuality
}

// Option is a single named entry of a list.
type Option struct {
	entity.BaseEntity

	Kind Kind   `db:"kind" json:"kind"`
	Name string `db:"name" json:"name"`
}

// New creates an Option.
func New(kind Kind, name string) *Option {
	return &Option{
		BaseEntity: entity.NewBaseEntity(),
		Kind:       kind,
		Name:       strings.TrimSpace(name),
	}
}

// Validate implements entity.Validatable interface.
func (o *Option) Validate(ctx context.Context) error {
	if !o.Kind.Valid() {
		return apperror.NewFieldValidation("kind", "unknown option kind")
	}
	if strings.TrimSpace(o.Name) == "" {
		return apperror.NewFieldValidation("name", "name is required")
	}
	return nil
}

// Repository defines the interface for Option persistence.
type Repository interface {
	Create(ctx context.Context, o *Option) error
	Delete(ctx context.Context, id id.ID) error
	ListByKind(ctx context.Context, kind Kind) ([]*Option, error)
	FindByName(ctx context.Context, kind Kind, name string) (*Option, error)
}

// Service provides business logic for option lists.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new option Service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Create adds a new entry; names are unique within a kind.
func (s *Service) Create(ctx context.Context, o *Option) error {
	if err := o.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.FindByName(ctx, o.Kind, o.Name)
		if err != nil && !apperror.IsNotFound(err) {
			return err
		}
		if existing != nil {
			return apperror.NewDuplicate(string(o.Kind), "name", o.Name)
		}
		if err := s.repo.Create(ctx, o); err != nil {
			return fmt.Errorf("create %s: %w", o.Kind, err)
		}
		return nil
	})
}

// Delete removes an entry.
func (s *Service) Delete(ctx context.Context, optionID id.ID) error {
	return s.repo.Delete(ctx, optionID)
}

// List returns all entries of a kind ordered by name.
func (s *Service) List(ctx context.Context, kind Kind) ([]*Option, error) {
	if !kind.Valid() {
		return nil, apperror.NewFieldValidation("kind", "unknown option kind")
	}
	return s.repo.ListByKind(ctx, kind)
}
