package cart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"storefront-platform/internal/domain"
	cartrepo "storefront-platform/internal/repository/cart"
)

var (
	// ErrVariationRequired is returned when an add misses a selection for a
	// declared variation group.
	ErrVariationRequired = errors.New("selection required for every variation group")
	// ErrInvalidDiscount is returned when a discount code cannot be applied
	// to the current cart.
	ErrInvalidDiscount = errors.New("invalid discount code")
)

// Service implements the session-scoped cart operations.
type Service struct {
	repo         cartRepo
	productRepo  productRepo
	discountRepo discountRepo
	logger       *log.Logger
	now          func() time.Time
}

type cartRepo interface {
	Create(ctx context.Context, storeID, sessionID, currency string) (*domain.Cart, error)
	GetActiveBySession(ctx context.Context, storeID, sessionID string) (*domain.Cart, error)
	GetByID(ctx context.Context, storeID, id string) (*domain.Cart, error)
	InsertItem(ctx context.Context, item domain.CartItem) error
	UpdateItemQuantity(ctx context.Context, cartID, itemID string, quantity int, totalCents int64) error
	DeleteItem(ctx context.Context, cartID, itemID string) error
	SaveTotals(ctx context.Context, cart *domain.Cart) error
	SetCheckoutStep(ctx context.Context, cartID, step string) error
	SetState(ctx context.Context, cartID, state string) error
	AssignCustomer(ctx context.Context, cartID, customerID string) error
}

type productRepo interface {
	GetBySlug(ctx context.Context, storeID, slug string) (*domain.Product, error)
	GetByID(ctx context.Context, storeID, id string) (*domain.Product, error)
}

type discountRepo interface {
	GetByCode(ctx context.Context, storeID, code string) (*domain.DiscountCode, error)
}

func New(repo cartrepo.Repository, products productRepo, discounts discountRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		repo:         repo,
		productRepo:  products,
		discountRepo: discounts,
		logger:       logger,
		now:          time.Now,
	}
}

// GetOrCreate returns the active cart for the session, lazily creating an
// empty one on first use.
func (s *Service) GetOrCreate(ctx context.Context, store domain.Store, sessionID string) (*domain.Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, errors.New("session id required")
	}
	cart, err := s.repo.GetActiveBySession(ctx, store.ID, sessionID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return s.repo.Create(ctx, store.ID, sessionID, store.Currency())
}

// AddItemInput identifies a product plus the buyer's variation selections.
type AddItemInput struct {
	ProductID  string            `json:"productId"`
	Variations map[string]string `json:"variations"`
	Quantity   int               `json:"quantity"`
}

// AddItem snapshots the product into the cart. Every variation group declared
// on the product must have a selection; a rejected add leaves the cart
// untouched. Adding the same product with the same selections merges
// quantities.
func (s *Service) AddItem(ctx context.Context, store domain.Store, sessionID string, in AddItemInput) (*domain.Cart, error) {
	if in.Quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, errors.New("productId required")
	}

	product, err := s.productRepo.GetByID(ctx, store.ID, in.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, err
	}
	if product.Status != domain.ProductStatusActive {
		return nil, errors.New("product not available")
	}

	unitPrice, err := resolveUnitPrice(*product, in.Variations)
	if err != nil {
		return nil, err
	}

	cart, err := s.GetOrCreate(ctx, store, sessionID)
	if err != nil {
		return nil, err
	}

	if existing := findMatchingItem(cart.Items, product.ID, in.Variations); existing != nil {
		newQty := existing.Quantity + in.Quantity
		total := existing.UnitPriceCents * int64(newQty)
		if err := s.repo.UpdateItemQuantity(ctx, cart.ID, existing.ID, newQty, total); err != nil {
			return nil, err
		}
	} else {
		item := domain.CartItem{
			CartID:         cart.ID,
			ProductID:      product.ID,
			ProductName:    product.Name,
			ProductSKU:     product.SKU,
			ProductImage:   product.MainImageURL(),
			Variations:     in.Variations,
			Quantity:       in.Quantity,
			UnitPriceCents: unitPrice,
			TotalCents:     unitPrice * int64(in.Quantity),
		}
		if err := s.repo.InsertItem(ctx, item); err != nil {
			return nil, err
		}
	}

	return s.refreshTotals(ctx, store, cart.ID)
}

// UpdateItemQuantity changes an item's quantity. A target of zero or below is
// defined as remove, never a clamp.
func (s *Service) UpdateItemQuantity(ctx context.Context, store domain.Store, sessionID, itemID string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, store, sessionID, itemID)
	}

	cart, err := s.ownedCart(ctx, store, sessionID)
	if err != nil {
		return nil, err
	}
	item := findItemByID(cart.Items, itemID)
	if item == nil {
		return nil, domain.ErrNotFound
	}
	total := item.UnitPriceCents * int64(quantity)
	if err := s.repo.UpdateItemQuantity(ctx, cart.ID, itemID, quantity, total); err != nil {
		return nil, err
	}
	return s.refreshTotals(ctx, store, cart.ID)
}

// RemoveItem deletes an item by id and returns the recomputed cart.
func (s *Service) RemoveItem(ctx context.Context, store domain.Store, sessionID, itemID string) (*domain.Cart, error) {
	cart, err := s.ownedCart(ctx, store, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteItem(ctx, cart.ID, itemID); err != nil {
		return nil, err
	}
	return s.refreshTotals(ctx, store, cart.ID)
}

// ApplyDiscount validates a code against the store and the current subtotal,
// then recomputes totals with it.
func (s *Service) ApplyDiscount(ctx context.Context, store domain.Store, sessionID, code string) (*domain.Cart, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrInvalidDiscount
	}

	cart, err := s.ownedCart(ctx, store, sessionID)
	if err != nil {
		return nil, err
	}

	dc, err := s.discountRepo.GetByCode(ctx, store.ID, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidDiscount
		}
		return nil, err
	}
	if !dc.ValidAt(s.now(), cart.SubtotalCents) {
		return nil, fmt.Errorf("%w: not applicable to this cart", ErrInvalidDiscount)
	}

	updated := RecomputeTotals(*cart, dc)
	if err := s.repo.SaveTotals(ctx, &updated); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, store.ID, cart.ID)
}

// RemoveDiscount clears the applied code; total falls back to
// subtotal + tax + shipping.
func (s *Service) RemoveDiscount(ctx context.Context, store domain.Store, sessionID string) (*domain.Cart, error) {
	cart, err := s.ownedCart(ctx, store, sessionID)
	if err != nil {
		return nil, err
	}
	updated := RecomputeTotals(*cart, nil)
	if err := s.repo.SaveTotals(ctx, &updated); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, store.ID, cart.ID)
}

// AssignCustomer binds an anonymous session cart to a logged-in account.
func (s *Service) AssignCustomer(ctx context.Context, cartID, customerID string) error {
	return s.repo.AssignCustomer(ctx, cartID, customerID)
}

// refreshTotals re-reads the cart, recomputes aggregates and persists them.
// An applied discount is re-derived from the stored code so item mutations
// keep the discount consistent with the new subtotal.
func (s *Service) refreshTotals(ctx context.Context, store domain.Store, cartID string) (*domain.Cart, error) {
	cart, err := s.repo.GetByID(ctx, store.ID, cartID)
	if err != nil {
		return nil, err
	}

	var dc *domain.DiscountCode
	if cart.DiscountCode != "" {
		found, err := s.discountRepo.GetByCode(ctx, store.ID, cart.DiscountCode)
		if err == nil && found.ValidAt(s.now(), sumItems(cart.Items)) {
			dc = found
		}
	}

	updated := RecomputeTotals(*cart, dc)
	if err := s.repo.SaveTotals(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) ownedCart(ctx context.Context, store domain.Store, sessionID string) (*domain.Cart, error) {
	cart, err := s.repo.GetActiveBySession(ctx, store.ID, sessionID)
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func resolveUnitPrice(product domain.Product, selections map[string]string) (int64, error) {
	price := product.EffectivePriceCents()
	for _, group := range product.Variations {
		selected, ok := selections[group.Name]
		if !ok || strings.TrimSpace(selected) == "" {
			return 0, fmt.Errorf("%w: %s", ErrVariationRequired, group.Name)
		}
		matched := false
		for _, opt := range group.Options {
			if strings.EqualFold(opt.Name, selected) {
				price += opt.PriceDeltaCents
				matched = true
				break
			}
		}
		if !matched {
			return 0, fmt.Errorf("unknown option %q for %s", selected, group.Name)
		}
	}
	if len(selections) > len(product.Variations) {
		return 0, errors.New("selection for undeclared variation group")
	}
	return price, nil
}

func findMatchingItem(items []domain.CartItem, productID string, selections map[string]string) *domain.CartItem {
	for i := range items {
		if items[i].ProductID != productID {
			continue
		}
		if sameSelections(items[i].Variations, selections) {
			return &items[i]
		}
	}
	return nil
}

func findItemByID(items []domain.CartItem, itemID string) *domain.CartItem {
	for i := range items {
		if items[i].ID == itemID {
			return &items[i]
		}
	}
	return nil
}

func sameSelections(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

func sumItems(items []domain.CartItem) int64 {
	var total int64
	for _, item := range items {
		total += item.TotalCents
	}
	return total
}
