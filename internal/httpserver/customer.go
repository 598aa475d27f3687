package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	customersvc "storefront-platform/internal/service/customer"
)

type signupRequest struct {
	Email     string                     `json:"email"`
	Password  string                     `json:"password"`
	FirstName string                     `json:"firstName"`
	LastName  string                     `json:"lastName"`
	Addresses []customersvc.AddressInput `json:"addresses"`
}

func (h *handlers) customerSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	customer, err := h.deps.Customers.Signup(c.Request.Context(), currentStore(c).ID, customersvc.SignupInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Addresses: req.Addresses,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"customer": customer})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *handlers) customerLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	customer, token, err := h.deps.Customers.Login(c.Request.Context(), currentStore(c).ID, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	// Logging in binds the session's open cart to the account.
	if cart, cartErr := h.deps.Carts.GetOrCreate(c.Request.Context(), currentStore(c), currentSession(c)); cartErr == nil {
		if err := h.deps.Carts.AssignCustomer(c.Request.Context(), cart.ID, customer.ID); err != nil {
			h.logger.Printf("http: assign cart customer err=%v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"customer":  customer,
		"token":     token,
		"expiresIn": h.deps.Customers.TokenTTLSeconds(),
	})
}

func (h *handlers) customerLogout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	if err := h.deps.Customers.Logout(c.Request.Context(), token); err != nil {
		h.logger.Printf("http: logout err=%v", err)
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlers) customerMe(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	customer, err := h.deps.Customers.LookupByToken(c.Request.Context(), currentStore(c).ID, token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer})
}
