package review

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"storefront-platform/internal/domain"
)

type stubReviewRepo struct {
	created []domain.Review
	status  map[string]string
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{status: make(map[string]string)}
}

func (s *stubReviewRepo) Create(ctx context.Context, rv domain.Review) (*domain.Review, error) {
	rv.ID = fmt.Sprintf("rev-%d", len(s.created)+1)
	s.created = append(s.created, rv)
	return &rv, nil
}

func (s *stubReviewRepo) ListByProduct(ctx context.Context, storeID, productID, status string) ([]domain.Review, error) {
	var out []domain.Review
	for _, rv := range s.created {
		if rv.ProductID != productID {
			continue
		}
		if status != "" && rv.Status != status {
			continue
		}
		out = append(out, rv)
	}
	return out, nil
}

func (s *stubReviewRepo) ListByStore(ctx context.Context, storeID string) ([]domain.Review, error) {
	return append([]domain.Review(nil), s.created...), nil
}

func (s *stubReviewRepo) SetStatus(ctx context.Context, storeID, id, status string) error {
	s.status[id] = status
	for i := range s.created {
		if s.created[i].ID == id {
			s.created[i].Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

type stubProducts struct {
	known map[string]bool
}

func (s *stubProducts) ListByStore(ctx context.Context, storeID string) ([]domain.Product, error) {
	return nil, nil
}

func (s *stubProducts) GetBySlug(ctx context.Context, storeID, slug string) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}

func (s *stubProducts) GetByID(ctx context.Context, storeID, id string) (*domain.Product, error) {
	if s.known[id] {
		return &domain.Product{ID: id, Status: domain.ProductStatusActive}, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubProducts) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	return nil, errors.New("not used")
}

func (s *stubProducts) Delete(ctx context.Context, storeID, id string) error {
	return errors.New("not used")
}

func testStore() domain.Store {
	return domain.Store{ID: "store-1"}
}

func TestSubmit_CreatesPendingReview(t *testing.T) {
	repo := newStubReviewRepo()
	svc := New(repo, &stubProducts{known: map[string]bool{"p1": true}})

	rv, err := svc.Submit(context.Background(), testStore(), SubmitInput{
		ProductID: "p1",
		Author:    "  Ada  ",
		Rating:    4,
		Title:     "Solid",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if rv.Status != domain.ReviewStatusPending {
		t.Fatalf("status = %q, want pending", rv.Status)
	}
	if rv.Author != "Ada" {
		t.Fatalf("author = %q, want trimmed", rv.Author)
	}
}

func TestSubmit_RejectsOutOfRangeRatings(t *testing.T) {
	svc := New(newStubReviewRepo(), &stubProducts{known: map[string]bool{"p1": true}})

	for _, rating := range []int{0, -1, 6, 100} {
		_, err := svc.Submit(context.Background(), testStore(), SubmitInput{ProductID: "p1", Author: "A", Rating: rating})
		if !errors.Is(err, ErrInvalidRating) {
			t.Fatalf("rating %d: err = %v, want ErrInvalidRating", rating, err)
		}
	}
}

func TestSubmit_UnknownProduct(t *testing.T) {
	svc := New(newStubReviewRepo(), &stubProducts{known: map[string]bool{}})

	_, err := svc.Submit(context.Background(), testStore(), SubmitInput{ProductID: "ghost", Author: "A", Rating: 3})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListApproved_FiltersPending(t *testing.T) {
	repo := newStubReviewRepo()
	svc := New(repo, &stubProducts{known: map[string]bool{"p1": true}})
	ctx := context.Background()

	first, err := svc.Submit(ctx, testStore(), SubmitInput{ProductID: "p1", Author: "A", Rating: 5})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Submit(ctx, testStore(), SubmitInput{ProductID: "p1", Author: "B", Rating: 2}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := svc.Moderate(ctx, testStore(), first.ID, domain.ReviewStatusApproved); err != nil {
		t.Fatalf("moderate: %v", err)
	}

	approved, err := svc.ListApproved(ctx, testStore(), "p1")
	if err != nil {
		t.Fatalf("ListApproved: %v", err)
	}
	if len(approved) != 1 || approved[0].ID != first.ID {
		t.Fatalf("approved = %+v", approved)
	}
}

func TestModerate_RejectsUnknownStatus(t *testing.T) {
	svc := New(newStubReviewRepo(), &stubProducts{})

	if err := svc.Moderate(context.Background(), testStore(), "rev-1", "published"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
}
