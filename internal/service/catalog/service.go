package catalog

import (
	"context"
	"sort"
	"strings"

	"storefront-platform/internal/domain"
	productrepo "storefront-platform/internal/repository/product"
)

// Sort orders accepted by List.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// ListFilter narrows the storefront product listing. Zero values mean no
// constraint.
type ListFilter struct {
	Category string
	Search   string
	Sort     string
}

// Service serves the buyer-facing catalog. Only active products are visible
// through it; drafts and archived products need the admin surface.
type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// List returns the store's active products after filtering and sorting.
// Search matches name and description, case-insensitively.
func (s *Service) List(ctx context.Context, store domain.Store, filter ListFilter) ([]domain.Product, error) {
	all, err := s.repo.ListByStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if p.Status != domain.ProductStatusActive {
			continue
		}
		if filter.Category != "" && !hasCategory(p, filter.Category) {
			continue
		}
		if filter.Search != "" && !matchesSearch(p, filter.Search) {
			continue
		}
		products = append(products, p)
	}

	sortProducts(products, filter.Sort)
	return products, nil
}

// GetBySlug returns an active product by slug. Non-active products report
// not found rather than leaking their existence.
func (s *Service) GetBySlug(ctx context.Context, store domain.Store, slug string) (*domain.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, domain.ErrNotFound
	}
	p, err := s.repo.GetBySlug(ctx, store.ID, slug)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.ProductStatusActive {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Categories returns the distinct category names used by the store's active
// products, sorted alphabetically.
func (s *Service) Categories(ctx context.Context, store domain.Store) ([]string, error) {
	products, err := s.List(ctx, store, ListFilter{})
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var out []string
	for _, p := range products {
		for _, c := range p.Categories {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out, nil
}

func hasCategory(p domain.Product, category string) bool {
	for _, c := range p.Categories {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

func matchesSearch(p domain.Product, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

// sortProducts sorts in place. Price ordering uses the effective price so a
// product on sale ranks by what the buyer actually pays.
func sortProducts(products []domain.Product, order string) {
	switch order {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].EffectivePriceCents() < products[j].EffectivePriceCents()
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].EffectivePriceCents() > products[j].EffectivePriceCents()
		})
	case SortNewest, "":
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}

// ValidSort reports whether the given sort order is one List understands.
func ValidSort(order string) bool {
	switch order {
	case "", SortNewest, SortPriceAsc, SortPriceDesc:
		return true
	}
	return false
}
