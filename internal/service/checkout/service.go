package checkout

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"storefront-platform/internal/domain"
	cartrepo "storefront-platform/internal/repository/cart"
	orderrepo "storefront-platform/internal/repository/order"
)

var (
	// ErrEmptyCart is returned when checkout is attempted on a cart with no
	// items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrWrongStep is returned when an operation is not valid at the
	// current step, e.g. placing an order before the review step.
	ErrWrongStep = errors.New("operation not valid at this checkout step")
)

// steps in wizard order. The slice is the single definition of ordering;
// Advance and Back just walk it.
var steps = []string{
	domain.CheckoutStepShipping,
	domain.CheckoutStepPayment,
	domain.CheckoutStepReview,
}

type mailer interface {
	SendOrderConfirmation(ctx context.Context, to string, order domain.Order) error
}

// Service drives the linear checkout wizard and order placement.
type Service struct {
	carts  cartRepo
	orders orderRepo
	mailer mailer
	logger *log.Logger
}

type cartRepo interface {
	GetActiveBySession(ctx context.Context, storeID, sessionID string) (*domain.Cart, error)
	SetCheckoutStep(ctx context.Context, cartID, step string) error
	SetState(ctx context.Context, cartID, state string) error
}

type orderRepo interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByNumber(ctx context.Context, storeID, number string) (*domain.Order, error)
}

func New(carts cartrepo.Repository, orders orderrepo.Repository, m mailer, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{carts: carts, orders: orders, mailer: m, logger: logger}
}

// Current returns the cart's checkout step, entering the wizard at the
// shipping step on first call.
func (s *Service) Current(ctx context.Context, store domain.Store, sessionID string) (string, *domain.Cart, error) {
	cart, err := s.activeCart(ctx, store, sessionID)
	if err != nil {
		return "", nil, err
	}
	if cart.CheckoutStep == "" {
		if err := s.carts.SetCheckoutStep(ctx, cart.ID, domain.CheckoutStepShipping); err != nil {
			return "", nil, err
		}
		cart.CheckoutStep = domain.CheckoutStepShipping
	}
	return cart.CheckoutStep, cart, nil
}

// Advance moves to the next step. Advancing from the review step is invalid:
// the only way forward from review is PlaceOrder.
func (s *Service) Advance(ctx context.Context, store domain.Store, sessionID string) (string, error) {
	step, cart, err := s.Current(ctx, store, sessionID)
	if err != nil {
		return "", err
	}
	idx := stepIndex(step)
	if idx >= len(steps)-1 {
		return "", fmt.Errorf("%w: already at %s", ErrWrongStep, step)
	}
	next := steps[idx+1]
	if err := s.carts.SetCheckoutStep(ctx, cart.ID, next); err != nil {
		return "", err
	}
	return next, nil
}

// Back moves to the previous step. From the first step it is a no-op, not an
// error.
func (s *Service) Back(ctx context.Context, store domain.Store, sessionID string) (string, error) {
	step, cart, err := s.Current(ctx, store, sessionID)
	if err != nil {
		return "", err
	}
	idx := stepIndex(step)
	if idx <= 0 {
		return steps[0], nil
	}
	prev := steps[idx-1]
	if err := s.carts.SetCheckoutStep(ctx, cart.ID, prev); err != nil {
		return "", err
	}
	return prev, nil
}

// PlaceOrderInput carries the shipping/billing forms collected by the wizard.
type PlaceOrderInput struct {
	Email           string              `json:"email"`
	ShippingAddress domain.OrderAddress `json:"shippingAddress"`
	BillingAddress  domain.OrderAddress `json:"billingAddress"`
}

// PlaceOrder snapshots the cart into an order. It is only valid on the review
// step; on failure the cart stays on review so the buyer can retry.
func (s *Service) PlaceOrder(ctx context.Context, store domain.Store, sessionID string, in PlaceOrderInput) (*domain.Order, error) {
	step, cart, err := s.Current(ctx, store, sessionID)
	if err != nil {
		return nil, err
	}
	if step != domain.CheckoutStepReview {
		return nil, fmt.Errorf("%w: place order requires the review step, at %s", ErrWrongStep, step)
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, errors.New("email required")
	}

	order := domain.Order{
		StoreID:         store.ID,
		Number:          generateOrderNumber(),
		SessionID:       sessionID,
		CustomerID:      cart.CustomerID,
		Email:           strings.TrimSpace(in.Email),
		Items:           cart.Items,
		SubtotalCents:   cart.SubtotalCents,
		DiscountCents:   cart.DiscountCents,
		TaxCents:        cart.TaxCents,
		ShippingCents:   cart.ShippingCents,
		TotalCents:      cart.TotalCents,
		Currency:        cart.Currency,
		DiscountCode:    cart.DiscountCode,
		ShippingAddress: in.ShippingAddress,
		BillingAddress:  in.BillingAddress,
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}
	if err := s.carts.SetState(ctx, cart.ID, domain.CartStateOrdered); err != nil {
		s.logger.Printf("checkout svc: mark cart ordered cart_id=%s err=%v", cart.ID, err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendOrderConfirmation(ctx, created.Email, *created); err != nil {
			s.logger.Printf("checkout svc: confirmation mail number=%s err=%v", created.Number, err)
		}
	}

	return created, nil
}

// GetOrder serves the confirmation route.
func (s *Service) GetOrder(ctx context.Context, store domain.Store, number string) (*domain.Order, error) {
	return s.orders.GetByNumber(ctx, store.ID, number)
}

func (s *Service) activeCart(ctx context.Context, store domain.Store, sessionID string) (*domain.Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, errors.New("session id required")
	}
	return s.carts.GetActiveBySession(ctx, store.ID, sessionID)
}

func stepIndex(step string) int {
	for i, s := range steps {
		if s == step {
			return i
		}
	}
	return 0
}

func generateOrderNumber() string {
	const alphabet = "23456789ABCDEFGHJKMNPQRSTVWXYZ"
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return fmt.Sprintf("ORD-%d", len(alphabet))
	}
	out := make([]byte, len(buf))
	for i, b := range buf {
		out[i] = alphabet[int(b)%len(alphabet)]
	}
	return "ORD-" + string(out)
}
