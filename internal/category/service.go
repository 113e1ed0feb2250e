package category

import (
	"context"
	"log/slog"
	"time"

	errors "github.com/Dijital-human/yusu-admin/internal"
	"github.com/Dijital-human/yusu-admin/internal/audit"
	catalogDatamodel "github.com/Dijital-human/yusu-admin/internal/core/datamodel/catalog"
	"github.com/Dijital-human/yusu-admin/internal/transport"
	"github.com/google/uuid"
)

// RepositoryAPI is the storage surface the category service needs. Lookups
// return (nil, nil) when the row does not exist.
type RepositoryAPI interface {
	List(filter ListFilter) ([]*catalogDatamodel.CategoryWithCounts, int64, error)
	GetByID(id string) (*catalogDatamodel.Category, error)
	GetByIDWithCounts(id string) (*catalogDatamodel.CategoryWithCounts, error)
	FindByNameInScope(name string, parentID *string, excludeID string) (*catalogDatamodel.Category, error)
	ListChildren(parentID string) ([]*catalogDatamodel.Category, error)
	Create(cat *catalogDatamodel.Category) error
	Update(cat *catalogDatamodel.Category) error
	Delete(id string) error
	ForceDelete(id string, newParentID *string) error
}

type Service struct {
	repo    RepositoryAPI
	auditor audit.Recorder
	logger  *slog.Logger
}

func NewService(repo RepositoryAPI, auditor audit.Recorder, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		auditor: auditor,
		logger:  logger,
	}
}

// List returns one page of categories in two views: the flat page ordered
// by name, and a hierarchy grouped by parentId within that same page. A
// subtree whose members fall outside the page shows up partial; the
// pagination contract applies to the flat view only.
func (s *Service) List(filter ListFilter) (*ListResponse, error) {
	filter.Normalize()

	rows, total, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list categories", "error", err)
		return nil, errors.NewInternalError("failed to list categories", err)
	}

	flat := make([]CategoryResponse, 0, len(rows))
	for _, row := range rows {
		flat = append(flat, toResponse(FromDataModelWithCounts(row)))
	}

	return &ListResponse{
		Categories:     buildHierarchy(flat, nil),
		FlatCategories: flat,
		Pagination:     transport.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

// buildHierarchy nests the flat page by parent id, starting from roots.
func buildHierarchy(flat []CategoryResponse, parentID *string) []CategoryResponse {
	var nodes []CategoryResponse
	for _, cat := range flat {
		if !sameParent(cat.ParentID, parentID) {
			continue
		}
		node := cat
		node.Children = buildHierarchy(flat, &cat.ID)
		nodes = append(nodes, node)
	}
	return nodes
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Create validates and inserts a new category. On any validation failure
// nothing is written.
func (s *Service) Create(ctx context.Context, dto *CreateCategoryDTO, actorID int64) (*CategoryResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByNameInScope(dto.Name, dto.ParentID, "")
	if err != nil {
		s.logger.Error("failed to check category name", "name", dto.Name, "error", err)
		return nil, errors.NewInternalError("failed to check category name", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError(
			"Category with this name already exists in the same parent",
			errors.ErrCodeDuplicateCategory)
	}

	var parent *catalogDatamodel.Category
	if dto.ParentID != nil {
		parent, err = s.repo.GetByID(*dto.ParentID)
		if err != nil {
			s.logger.Error("failed to look up parent category", "parent_id", *dto.ParentID, "error", err)
			return nil, errors.NewInternalError("failed to look up parent category", err)
		}
		if parent == nil {
			return nil, errors.ErrParentNotFound
		}
		if !parent.IsActive {
			return nil, errors.ErrParentInactive
		}
	}

	now := time.Now()
	dm := &catalogDatamodel.Category{
		ID:              uuid.NewString(),
		Name:            dto.Name,
		Description:     dto.Description,
		Image:           dto.Image,
		ParentID:        dto.ParentID,
		IsActive:        true,
		SortOrder:       0,
		MetaTitle:       dto.MetaTitle,
		MetaDescription: dto.MetaDescription,
		Keywords:        dto.Keywords,
		Icon:            dto.Icon,
		Color:           dto.Color,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if dto.IsActive != nil {
		dm.IsActive = *dto.IsActive
	}
	if dto.SortOrder != nil {
		dm.SortOrder = *dto.SortOrder
	}

	if err := s.repo.Create(dm); err != nil {
		s.logger.Error("failed to create category", "name", dto.Name, "error", err)
		return nil, errors.NewInternalError("failed to create category", err)
	}

	s.auditor.Record(ctx, audit.Record{
		ActorID:      actorID,
		Action:       audit.ActionCreateCategory,
		ResourceType: audit.ResourceCategory,
		ResourceID:   dm.ID,
		Details: map[string]interface{}{
			"categoryName": dm.Name,
			"parentId":     dm.ParentID,
		},
	})

	s.logger.Info("category created", "category_id", dm.ID, "name", dm.Name)

	resp := toResponse(FromDataModel(dm))
	if parent != nil {
		resp.Parent = &RefResponse{ID: parent.ID, Name: parent.Name, IsActive: parent.IsActive}
	}
	return &resp, nil
}

// Update applies a sparse set of changes. Renames are checked against the
// effective parent scope; parent moves require an existing, active parent
// and reject direct self-parenting. Deeper cycles created through
// multi-step reparenting are not walked; that matches the original
// contract, not an oversight in the checks below.
func (s *Service) Update(ctx context.Context, dto *UpdateCategoryDTO, actorID int64) (*CategoryResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(dto.CategoryID)
	if err != nil {
		s.logger.Error("failed to look up category", "category_id", dto.CategoryID, "error", err)
		return nil, errors.NewInternalError("failed to look up category", err)
	}
	if existing == nil {
		return nil, errors.ErrCategoryNotFound
	}

	changes := make(map[string]interface{})

	if dto.Name != nil && *dto.Name != existing.Name {
		effectiveParent := existing.ParentID
		if dto.ParentID != nil {
			effectiveParent = dto.ParentID
		}
		conflict, err := s.repo.FindByNameInScope(*dto.Name, effectiveParent, existing.ID)
		if err != nil {
			s.logger.Error("failed to check category name", "name", *dto.Name, "error", err)
			return nil, errors.NewInternalError("failed to check category name", err)
		}
		if conflict != nil {
			return nil, errors.NewConflictError(
				"Category with this name already exists in the same parent",
				errors.ErrCodeDuplicateCategory)
		}
		existing.Name = *dto.Name
		changes["name"] = *dto.Name
	}

	if dto.ParentID != nil && !sameParent(dto.ParentID, existing.ParentID) {
		if *dto.ParentID == existing.ID {
			return nil, errors.ErrSelfParent
		}
		parent, err := s.repo.GetByID(*dto.ParentID)
		if err != nil {
			s.logger.Error("failed to look up parent category", "parent_id", *dto.ParentID, "error", err)
			return nil, errors.NewInternalError("failed to look up parent category", err)
		}
		if parent == nil {
			return nil, errors.ErrParentNotFound
		}
		if !parent.IsActive {
			return nil, errors.ErrParentInactive
		}
		existing.ParentID = dto.ParentID
		changes["parentId"] = *dto.ParentID
	}

	if dto.Description != nil {
		existing.Description = *dto.Description
		changes["description"] = *dto.Description
	}
	if dto.Image != nil {
		existing.Image = *dto.Image
		changes["image"] = *dto.Image
	}
	if dto.IsActive != nil {
		existing.IsActive = *dto.IsActive
		changes["isActive"] = *dto.IsActive
	}
	if dto.SortOrder != nil {
		existing.SortOrder = *dto.SortOrder
		changes["sortOrder"] = *dto.SortOrder
	}
	if dto.MetaTitle != nil {
		existing.MetaTitle = *dto.MetaTitle
		changes["metaTitle"] = *dto.MetaTitle
	}
	if dto.MetaDescription != nil {
		existing.MetaDescription = *dto.MetaDescription
		changes["metaDescription"] = *dto.MetaDescription
	}
	if dto.Keywords != nil {
		existing.Keywords = *dto.Keywords
		changes["keywords"] = *dto.Keywords
	}
	if dto.Icon != nil {
		existing.Icon = *dto.Icon
		changes["icon"] = *dto.Icon
	}
	if dto.Color != nil {
		existing.Color = *dto.Color
		changes["color"] = *dto.Color
	}

	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(existing); err != nil {
		s.logger.Error("failed to update category", "category_id", existing.ID, "error", err)
		return nil, errors.NewInternalError("failed to update category", err)
	}

	s.auditor.Record(ctx, audit.Record{
		ActorID:      actorID,
		Action:       audit.ActionUpdateCategory,
		ResourceType: audit.ResourceCategory,
		ResourceID:   existing.ID,
		Details: map[string]interface{}{
			"categoryName": existing.Name,
			"changes":      changes,
		},
	})

	s.logger.Info("category updated", "category_id", existing.ID, "changed_fields", len(changes))

	return s.buildDetailResponse(existing)
}

// buildDetailResponse re-fetches the parent ref and direct children for the
// mutation response.
func (s *Service) buildDetailResponse(dm *catalogDatamodel.Category) (*CategoryResponse, error) {
	withCounts, err := s.repo.GetByIDWithCounts(dm.ID)
	if err != nil {
		return nil, errors.NewInternalError("failed to reload category", err)
	}
	if withCounts == nil {
		return nil, errors.ErrCategoryNotFound
	}

	resp := toResponse(FromDataModelWithCounts(withCounts))

	if dm.ParentID != nil {
		parent, err := s.repo.GetByID(*dm.ParentID)
		if err != nil {
			return nil, errors.NewInternalError("failed to load parent category", err)
		}
		if parent != nil {
			resp.Parent = &RefResponse{ID: parent.ID, Name: parent.Name, IsActive: parent.IsActive}
		}
	}

	children, err := s.repo.ListChildren(dm.ID)
	if err != nil {
		return nil, errors.NewInternalError("failed to load child categories", err)
	}
	for _, child := range children {
		resp.Children = append(resp.Children, toResponse(FromDataModel(child)))
	}

	return &resp, nil
}

// Delete removes a category. Without force it is rejected while the
// category still owns products or children, reporting the exact counts.
// With force, products and children are reassigned to the category's own
// parent before the row is removed.
func (s *Service) Delete(ctx context.Context, id string, force bool, actorID int64) error {
	existing, err := s.repo.GetByIDWithCounts(id)
	if err != nil {
		s.logger.Error("failed to look up category", "category_id", id, "error", err)
		return errors.NewInternalError("failed to look up category", err)
	}
	if existing == nil {
		return errors.ErrCategoryNotFound
	}

	if !force && (existing.ProductsCount > 0 || existing.ChildrenCount > 0) {
		return errors.NewConflictError(
			"Category has products or subcategories",
			errors.ErrCodeCategoryNotEmpty).
			WithDetails(errors.DeleteConflictDetails{
				ProductsCount: existing.ProductsCount,
				ChildrenCount: existing.ChildrenCount,
			})
	}

	if force {
		err = s.repo.ForceDelete(id, existing.ParentID)
	} else {
		err = s.repo.Delete(id)
	}
	if err != nil {
		s.logger.Error("failed to delete category", "category_id", id, "force", force, "error", err)
		return errors.NewInternalError("failed to delete category", err)
	}

	s.auditor.Record(ctx, audit.Record{
		ActorID:      actorID,
		Action:       audit.ActionDeleteCategory,
		ResourceType: audit.ResourceCategory,
		ResourceID:   id,
		Details: map[string]interface{}{
			"categoryName": existing.Name,
			"forceDelete":  force,
		},
	})

	s.logger.Info("category deleted", "category_id", id, "name", existing.Name, "force", force)
	return nil
}
