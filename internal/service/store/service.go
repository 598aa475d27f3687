package store

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"storefront-platform/internal/cache"
	"storefront-platform/internal/domain"
	storerepo "storefront-platform/internal/repository/store"
)

// Service resolves store tenants by slug.
type Service struct {
	repo   storeRepo
	cache  *cache.StoreCache
	logger *log.Logger
}

type storeRepo interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Store, error)
	GetByID(ctx context.Context, id string) (*domain.Store, error)
	Create(ctx context.Context, store domain.Store) (*domain.Store, error)
	List(ctx context.Context) ([]domain.Store, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

func New(repo storerepo.Repository, storeCache *cache.StoreCache, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, cache: storeCache, logger: logger}
}

// Resolve is the read-only lookup. It returns domain.ErrNotFound for unknown
// slugs and never provisions anything.
func (s *Service) Resolve(ctx context.Context, slug string) (*domain.Store, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, domain.ErrNotFound
	}
	if cached, err := s.cache.Get(ctx, slug); err == nil {
		return cached, nil
	}
	store, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, store); err != nil {
		s.logger.Printf("store svc: cache set slug=%s err=%v", slug, err)
	}
	return store, nil
}

// ResolveOrProvision looks a store up and, on a miss, provisions a demo store
// for the slug. If provisioning itself fails the storefront still gets a
// synthetic, non-persisted store: storefront rendering never blocks on this
// path, the error is only logged.
func (s *Service) ResolveOrProvision(ctx context.Context, slug string) (*domain.Store, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, domain.ErrNotFound
	}

	store, err := s.Resolve(ctx, slug)
	if err == nil {
		return store, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		s.logger.Printf("store svc: resolve slug=%s err=%v, serving default", slug, err)
		fallback := DefaultStore(slug)
		return &fallback, nil
	}

	created, err := s.repo.Create(ctx, DefaultStore(slug))
	if err != nil {
		// Two racing first visits can collide on the slug; the loser
		// reads the winner's row.
		if errors.Is(err, domain.ErrAlreadyExists) {
			if existing, getErr := s.repo.GetBySlug(ctx, slug); getErr == nil {
				return existing, nil
			}
		}
		s.logger.Printf("store svc: provision slug=%s err=%v, serving default", slug, err)
		fallback := DefaultStore(slug)
		return &fallback, nil
	}
	s.logger.Printf("store svc: provisioned demo store slug=%s id=%s", created.Slug, created.ID)
	if err := s.cache.Set(ctx, created); err != nil {
		s.logger.Printf("store svc: cache set slug=%s err=%v", slug, err)
	}
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Store, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) error {
	switch status {
	case domain.StoreStatusActive, domain.StoreStatusPending, domain.StoreStatusSuspended:
	default:
		return errors.New("invalid status")
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	if store, err := s.repo.GetByID(ctx, id); err == nil {
		if err := s.cache.Invalidate(ctx, store.Slug); err != nil {
			s.logger.Printf("store svc: cache invalidate slug=%s err=%v", store.Slug, err)
		}
	}
	return nil
}

// DefaultStore builds the demo store provisioned for an unknown slug.
func DefaultStore(slug string) domain.Store {
	return domain.Store{
		Slug:   slug,
		Name:   displayName(slug),
		Status: domain.StoreStatusActive,
		Settings: domain.StoreSettings{
			PrimaryColor:   "#1f2937",
			SecondaryColor: "#f59e0b",
			FontFamily:     "Inter",
			Currency:       "USD",
			Languages:      []string{"en"},
			Features: map[string]bool{
				"reviews":  true,
				"wishlist": true,
				"search":   true,
			},
		},
	}
}

func displayName(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	if len(words) == 0 {
		return slug
	}
	return strings.Join(words, " ")
}
