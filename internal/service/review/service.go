package review

import (
	"context"
	"errors"
	"strings"

	"storefront-platform/internal/domain"
	productrepo "storefront-platform/internal/repository/product"
	reviewrepo "storefront-platform/internal/repository/review"
)

var (
	// ErrInvalidRating is returned when a rating falls outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrInvalidStatus is returned on moderation with an unknown status.
	ErrInvalidStatus = errors.New("invalid review status")
)

// Service handles product review submission and moderation. Submissions land
// as pending; only approved reviews are served on the storefront.
type Service struct {
	repo     reviewrepo.Repository
	products productrepo.Repository
}

func New(repo reviewrepo.Repository, products productrepo.Repository) *Service {
	return &Service{repo: repo, products: products}
}

// SubmitInput is a storefront review submission.
type SubmitInput struct {
	ProductID  string  `json:"productId"`
	CustomerID *string `json:"-"`
	Author     string  `json:"author"`
	Rating     int     `json:"rating"`
	Title      string  `json:"title"`
	Body       string  `json:"body"`
}

// Submit creates a pending review for an existing product.
func (s *Service) Submit(ctx context.Context, store domain.Store, in SubmitInput) (*domain.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidRating
	}
	author := strings.TrimSpace(in.Author)
	if author == "" {
		return nil, errors.New("author required")
	}
	if _, err := s.products.GetByID(ctx, store.ID, in.ProductID); err != nil {
		return nil, err
	}

	rv := domain.Review{
		StoreID:    store.ID,
		ProductID:  in.ProductID,
		CustomerID: in.CustomerID,
		Author:     author,
		Rating:     in.Rating,
		Title:      strings.TrimSpace(in.Title),
		Body:       strings.TrimSpace(in.Body),
		Status:     domain.ReviewStatusPending,
	}
	return s.repo.Create(ctx, rv)
}

// ListApproved returns the approved reviews for a product, for the
// storefront product page.
func (s *Service) ListApproved(ctx context.Context, store domain.Store, productID string) ([]domain.Review, error) {
	return s.repo.ListByProduct(ctx, store.ID, productID, domain.ReviewStatusApproved)
}

// ListAll returns every review in the store regardless of status, for the
// moderation queue.
func (s *Service) ListAll(ctx context.Context, store domain.Store) ([]domain.Review, error) {
	return s.repo.ListByStore(ctx, store.ID)
}

// Moderate sets a review's status to approved or rejected.
func (s *Service) Moderate(ctx context.Context, store domain.Store, reviewID, status string) error {
	switch status {
	case domain.ReviewStatusApproved, domain.ReviewStatusRejected, domain.ReviewStatusPending:
	default:
		return ErrInvalidStatus
	}
	return s.repo.SetStatus(ctx, store.ID, reviewID, status)
}
