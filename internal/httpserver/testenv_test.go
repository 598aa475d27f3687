package httpserver

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"storefront-platform/internal/config"
	"storefront-platform/internal/domain"
	tokenrepo "storefront-platform/internal/repository/token"
	cartsvc "storefront-platform/internal/service/cart"
	catalogsvc "storefront-platform/internal/service/catalog"
	checkoutsvc "storefront-platform/internal/service/checkout"
	customersvc "storefront-platform/internal/service/customer"
	reviewsvc "storefront-platform/internal/service/review"
	storesvc "storefront-platform/internal/service/store"
	superadminsvc "storefront-platform/internal/service/superadmin"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// memStoreRepo / memProductRepo / memCartRepo etc. are in-memory repository
// implementations shared by the handler tests.

type memStoreRepo struct {
	mu     sync.Mutex
	stores map[string]domain.Store // by slug
	nextID int
}

func newMemStoreRepo() *memStoreRepo {
	return &memStoreRepo{stores: make(map[string]domain.Store)}
}

func (r *memStoreRepo) GetBySlug(_ context.Context, slug string) (*domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stores[slug]; ok {
		cp := s
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memStoreRepo) GetByID(_ context.Context, id string) (*domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.stores {
		if s.ID == id {
			cp := s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memStoreRepo) Create(_ context.Context, store domain.Store) (*domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.stores[store.Slug]; exists {
		return nil, domain.ErrAlreadyExists
	}
	r.nextID++
	store.ID = fmt.Sprintf("store-%d", r.nextID)
	r.stores[store.Slug] = store
	cp := store
	return &cp, nil
}

func (r *memStoreRepo) List(_ context.Context) ([]domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Store, 0, len(r.stores))
	for _, s := range r.stores {
		out = append(out, s)
	}
	return out, nil
}

func (r *memStoreRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for slug, s := range r.stores {
		if s.ID == id {
			s.Status = status
			r.stores[slug] = s
			return nil
		}
	}
	return domain.ErrNotFound
}

type memProductRepo struct {
	mu       sync.Mutex
	products []domain.Product
	nextID   int
}

func (r *memProductRepo) ListByStore(_ context.Context, storeID string) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Product
	for _, p := range r.products {
		if p.StoreID == storeID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) GetBySlug(_ context.Context, storeID, slug string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.StoreID == storeID && p.Slug == slug {
			cp := p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memProductRepo) GetByID(_ context.Context, storeID, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.StoreID == storeID && p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memProductRepo) Upsert(_ context.Context, product domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.StoreID == product.StoreID && (p.ID == product.ID || p.Slug == product.Slug) {
			product.ID = p.ID
			r.products[i] = product
			cp := product
			return &cp, nil
		}
	}
	r.nextID++
	product.ID = fmt.Sprintf("prod-%d", r.nextID)
	r.products = append(r.products, product)
	cp := product
	return &cp, nil
}

func (r *memProductRepo) Delete(_ context.Context, storeID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.StoreID == storeID && p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type memCartRepo struct {
	mu     sync.Mutex
	carts  map[string]*domain.Cart // by cart id
	nextID int
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: make(map[string]*domain.Cart)}
}

func (r *memCartRepo) Create(_ context.Context, storeID, sessionID, currency string) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	cart := &domain.Cart{
		ID:        fmt.Sprintf("cart-%d", r.nextID),
		StoreID:   storeID,
		SessionID: sessionID,
		Currency:  currency,
		State:     domain.CartStateActive,
	}
	r.carts[cart.ID] = cart
	cp := *cart
	return &cp, nil
}

func (r *memCartRepo) GetActiveBySession(_ context.Context, storeID, sessionID string) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cart := range r.carts {
		if cart.StoreID == storeID && cart.SessionID == sessionID && cart.State == domain.CartStateActive {
			cp := *cart
			cp.Items = append([]domain.CartItem(nil), cart.Items...)
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memCartRepo) GetByID(_ context.Context, storeID, id string) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.carts[id]
	if !ok || cart.StoreID != storeID {
		return nil, domain.ErrNotFound
	}
	cp := *cart
	cp.Items = append([]domain.CartItem(nil), cart.Items...)
	return &cp, nil
}

func (r *memCartRepo) InsertItem(_ context.Context, item domain.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.carts[item.CartID]
	if !ok {
		return domain.ErrNotFound
	}
	item.ID = fmt.Sprintf("item-%d", len(cart.Items)+1)
	cart.Items = append(cart.Items, item)
	return nil
}

func (r *memCartRepo) UpdateItemQuantity(_ context.Context, cartID, itemID string, quantity int, totalCents int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.carts[cartID]
	if !ok {
		return domain.ErrNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Quantity = quantity
			cart.Items[i].TotalCents = totalCents
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memCartRepo) DeleteItem(_ context.Context, cartID, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.carts[cartID]
	if !ok {
		return domain.ErrNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memCartRepo) SaveTotals(_ context.Context, updated *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.carts[updated.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cart.SubtotalCents = updated.SubtotalCents
	cart.DiscountCents = updated.DiscountCents
	cart.TaxCents = updated.TaxCents
	cart.ShippingCents = updated.ShippingCents
	cart.TotalCents = updated.TotalCents
	cart.DiscountCode = updated.DiscountCode
	return nil
}

func (r *memCartRepo) SetCheckoutStep(_ context.Context, cartID, step string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.carts[cartID]
	if !ok {
		return domain.ErrNotFound
	}
	cart.CheckoutStep = step
	return nil
}

func (r *memCartRepo) SetState(_ context.Context, cartID, state string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.carts[cartID]
	if !ok {
		return domain.ErrNotFound
	}
	cart.State = state
	return nil
}

func (r *memCartRepo) AssignCustomer(_ context.Context, cartID, customerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.carts[cartID]
	if !ok {
		return domain.ErrNotFound
	}
	cart.CustomerID = &customerID
	return nil
}

type memCustomerRepo struct {
	mu        sync.Mutex
	customers []domain.Customer
	nextID    int
}

func (r *memCustomerRepo) Create(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.customers {
		if existing.StoreID == c.StoreID && existing.Email == c.Email {
			return nil, domain.ErrAlreadyExists
		}
	}
	r.nextID++
	c.ID = fmt.Sprintf("cust-%d", r.nextID)
	r.customers = append(r.customers, c)
	cp := c
	return &cp, nil
}

func (r *memCustomerRepo) GetByEmail(_ context.Context, storeID, email string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.StoreID == storeID && c.Email == email {
			cp := c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memCustomerRepo) GetByID(_ context.Context, storeID, id string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.StoreID == storeID && c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

type memTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]tokenrepo.Token
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: make(map[string]tokenrepo.Token)}
}

func (r *memTokenRepo) Create(_ context.Context, token tokenrepo.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tokens[token.Token]; exists {
		return domain.ErrAlreadyExists
	}
	r.tokens[token.Token] = token
	return nil
}

func (r *memTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := t
	return &cp, nil
}

func (r *memTokenRepo) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[token]; !ok {
		return domain.ErrNotFound
	}
	delete(r.tokens, token)
	return nil
}

type memDiscountRepo struct {
	mu     sync.Mutex
	codes  []domain.DiscountCode
	nextID int
}

func (r *memDiscountRepo) GetByCode(_ context.Context, storeID, code string) (*domain.DiscountCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, dc := range r.codes {
		if dc.StoreID == storeID && strings.EqualFold(dc.Code, code) {
			cp := dc
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memDiscountRepo) ListByStore(_ context.Context, storeID string) ([]domain.DiscountCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.DiscountCode
	for _, dc := range r.codes {
		if dc.StoreID == storeID {
			out = append(out, dc)
		}
	}
	return out, nil
}

func (r *memDiscountRepo) Create(_ context.Context, dc domain.DiscountCode) (*domain.DiscountCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	dc.ID = fmt.Sprintf("disc-%d", r.nextID)
	r.codes = append(r.codes, dc)
	cp := dc
	return &cp, nil
}

func (r *memDiscountRepo) Delete(_ context.Context, storeID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, dc := range r.codes {
		if dc.StoreID == storeID && dc.ID == id {
			r.codes = append(r.codes[:i], r.codes[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type memOrderRepo struct {
	mu     sync.Mutex
	orders []domain.Order
	nextID int
}

func (r *memOrderRepo) Create(_ context.Context, o domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	o.ID = fmt.Sprintf("order-%d", r.nextID)
	r.orders = append(r.orders, o)
	cp := o
	return &cp, nil
}

func (r *memOrderRepo) GetByNumber(_ context.Context, storeID, number string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.StoreID == storeID && o.Number == number {
			cp := o
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memOrderRepo) ListByStore(_ context.Context, storeID string) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for _, o := range r.orders {
		if o.StoreID == storeID {
			out = append(out, o)
		}
	}
	return out, nil
}

type memReviewRepo struct {
	mu      sync.Mutex
	reviews []domain.Review
	nextID  int
}

func (r *memReviewRepo) Create(_ context.Context, rv domain.Review) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	rv.ID = fmt.Sprintf("rev-%d", r.nextID)
	r.reviews = append(r.reviews, rv)
	cp := rv
	return &cp, nil
}

func (r *memReviewRepo) ListByProduct(_ context.Context, storeID, productID, status string) ([]domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Review
	for _, rv := range r.reviews {
		if rv.StoreID != storeID || rv.ProductID != productID {
			continue
		}
		if status != "" && rv.Status != status {
			continue
		}
		out = append(out, rv)
	}
	return out, nil
}

func (r *memReviewRepo) ListByStore(_ context.Context, storeID string) ([]domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Review
	for _, rv := range r.reviews {
		if rv.StoreID == storeID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *memReviewRepo) SetStatus(_ context.Context, storeID, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.reviews {
		if r.reviews[i].StoreID == storeID && r.reviews[i].ID == id {
			r.reviews[i].Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

// testEnv wires real services over in-memory repositories behind a full
// router, the same way cmd/api does over Postgres.
type testEnv struct {
	router    *gin.Engine
	stores    *memStoreRepo
	products  *memProductRepo
	carts     *memCartRepo
	customers *memCustomerRepo
	discounts *memDiscountRepo
	orders    *memOrderRepo
	reviews   *memReviewRepo
}

const testPlatformDomain = "shopforge.test"

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		stores:    newMemStoreRepo(),
		products:  &memProductRepo{},
		carts:     newMemCartRepo(),
		customers: &memCustomerRepo{},
		discounts: &memDiscountRepo{},
		orders:    &memOrderRepo{},
		reviews:   &memReviewRepo{},
	}

	logger := logDiscard()
	storeSvc := storesvc.New(env.stores, nil, logger)
	cartSvc := cartsvc.New(env.carts, env.products, env.discounts, logger)
	checkoutSvc := checkoutsvc.New(env.carts, env.orders, nil, logger)
	customerSvc := customersvc.New(env.customers, newMemTokenRepo())
	adminSvc := superadminsvc.New([]config.AdminCredential{
		{Email: "ops@shopforge.test", Password: "Sup3rSecret", Name: "Ops"},
	}, "test-admin-secret")

	env.router = buildRouter(logger, nil, Deps{
		PlatformDomain: testPlatformDomain,
		Stores:         storeSvc,
		Catalog:        catalogsvc.New(env.products),
		Carts:          cartSvc,
		Checkout:       checkoutSvc,
		Customers:      customerSvc,
		Reviews:        reviewsvc.New(env.reviews, env.products),
		SuperAdmin:     adminSvc,
		Products:       env.products,
		Discounts:      env.discounts,
		Orders:         env.orders,
	})
	return env
}

// seedStore inserts a store directly, bypassing auto-provisioning.
func (e *testEnv) seedStore(slug, ownerID string) domain.Store {
	store := storesvc.DefaultStore(slug)
	store.OwnerID = ownerID
	created, err := e.stores.Create(context.Background(), store)
	if err != nil {
		panic(err)
	}
	return *created
}

func (e *testEnv) seedProduct(storeID string, p domain.Product) domain.Product {
	p.StoreID = storeID
	if p.Status == "" {
		p.Status = domain.ProductStatusActive
	}
	saved, err := e.products.Upsert(context.Background(), p)
	if err != nil {
		panic(err)
	}
	return *saved
}
