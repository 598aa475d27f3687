package superadmin

import (
	"errors"
	"testing"
	"time"

	"storefront-platform/internal/config"
)

func testService() *Service {
	return New([]config.AdminCredential{
		{Email: "ops@platform.dev", Password: "hunter22", Name: "Ops"},
		{Email: "root@platform.dev", Password: "correct horse", Name: "Root"},
	}, "test-secret")
}

func TestLoginAndValidate_RoundTrip(t *testing.T) {
	svc := testService()

	token, err := svc.Login("ops@platform.dev", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Email != "ops@platform.dev" || claims.Name != "Ops" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestLogin_EmailIsCaseInsensitive(t *testing.T) {
	svc := testService()
	if _, err := svc.Login("OPS@Platform.Dev", "hunter22"); err != nil {
		t.Fatalf("login with mixed-case email: %v", err)
	}
}

func TestLogin_RejectsBadPairs(t *testing.T) {
	svc := testService()

	cases := []struct {
		name, email, pass string
	}{
		{"wrong password", "ops@platform.dev", "wrong"},
		{"unknown email", "nobody@platform.dev", "hunter22"},
		{"crossed pair", "ops@platform.dev", "correct horse"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		if _, err := svc.Login(tc.email, tc.pass); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("%s: err = %v, want ErrInvalidCredentials", tc.name, err)
		}
	}
}

func TestValidate_ExpiredSession(t *testing.T) {
	svc := testService()

	issued := time.Now()
	svc.now = func() time.Time { return issued }
	token, err := svc.Login("ops@platform.dev", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	svc.now = func() time.Time { return issued.Add(23 * time.Hour) }
	if _, err := svc.Validate(token); err != nil {
		t.Fatalf("validate within 24h: %v", err)
	}

	svc.now = func() time.Time { return issued.Add(25 * time.Hour) }
	if _, err := svc.Validate(token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("err = %v, want ErrInvalidSession after expiry", err)
	}
}

func TestValidate_GarbageToken(t *testing.T) {
	svc := testService()
	if _, err := svc.Validate("not.a.jwt"); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("err = %v, want ErrInvalidSession", err)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	svc := testService()
	token, err := svc.Login("ops@platform.dev", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	other := New([]config.AdminCredential{}, "different-secret")
	if _, err := other.Validate(token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("err = %v, want ErrInvalidSession with wrong secret", err)
	}
}
