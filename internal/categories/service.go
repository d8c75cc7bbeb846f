package categories

import (
	"context"
	"errors"

	"github.com/shoplane/shoplane-backend/pkg/db/models"
	pkgerrors "github.com/shoplane/shoplane-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is the persistence surface the service needs.
type Store interface {
	Create(ctx context.Context, dto CreateCategoryDTO) (*models.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	CountChildren(ctx context.Context, parentID uuid.UUID) (int64, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateCategoryDTO) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service defines category operations. The tree is at most one level
// deep: a sub category can never become a parent, and a category with
// children can never become a sub category.
type Service interface {
	Create(ctx context.Context, dto CreateCategoryDTO) (*CategoryDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*CategoryDTO, error)
	List(ctx context.Context) ([]CategoryDTO, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateCategoryDTO) (*CategoryDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	store Store
}

// NewService wires category dependencies.
func NewService(store Store) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "categories store required")
	}
	return &service{store: store}, nil
}

func (s *service) Create(ctx context.Context, dto CreateCategoryDTO) (*CategoryDTO, error) {
	if dto.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}

	var parentName *string
	if dto.ParentID != nil {
		parent, err := s.requireMainParent(ctx, *dto.ParentID)
		if err != nil {
			return nil, err
		}
		parentName = &parent.Name
	}

	category, err := s.store.Create(ctx, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return FromModel(category, parentName), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*CategoryDTO, error) {
	category, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(category, s.parentName(ctx, category)), nil
}

func (s *service) List(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.store.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}

	namesByID := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		namesByID[c.ID] = c.Name
	}

	out := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		var parentName *string
		if pid := categories[i].ParentID; pid != nil {
			if name, ok := namesByID[*pid]; ok {
				parentName = &name
			}
		}
		out = append(out, *FromModel(&categories[i], parentName))
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, dto UpdateCategoryDTO) (*CategoryDTO, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}

	if dto.SetParent && dto.ParentID != nil {
		if *dto.ParentID == id {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category cannot be its own parent")
		}
		if _, err := s.requireMainParent(ctx, *dto.ParentID); err != nil {
			return nil, err
		}
		children, err := s.store.CountChildren(ctx, id)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count children")
		}
		if children > 0 {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "category with sub categories cannot become a sub category")
		}
	}

	category, err := s.store.Update(ctx, id, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	return FromModel(category, s.parentName(ctx, category)), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	children, err := s.store.CountChildren(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count children")
	}
	if children > 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "category still has sub categories")
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	category, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return category, nil
}

// requireMainParent verifies the parent exists and is itself a main
// category, keeping the tree one level deep.
func (s *service) requireMainParent(ctx context.Context, parentID uuid.UUID) (*models.Category, error) {
	parent, err := s.store.FindByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "parent category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load parent category")
	}
	if parent.ParentID != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "parent must be a main category")
	}
	return parent, nil
}

func (s *service) parentName(ctx context.Context, category *models.Category) *string {
	if category.ParentID == nil {
		return nil
	}
	parent, err := s.store.FindByID(ctx, *category.ParentID)
	if err != nil {
		return nil
	}
	return &parent.Name
}
