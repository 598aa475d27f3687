package config

import "testing"

func TestAdminCredentialsFromEnv(t *testing.T) {
	t.Setenv("ADMIN_1_EMAIL", "root@shopforge.dev")
	t.Setenv("ADMIN_1_PASSWORD", "hunter2")
	t.Setenv("ADMIN_1_NAME", "Root")
	t.Setenv("ADMIN_2_EMAIL", "ops@shopforge.dev")
	t.Setenv("ADMIN_2_PASSWORD", "hunter3")
	// ADMIN_3 missing: scan stops at the gap.
	t.Setenv("ADMIN_4_EMAIL", "ignored@shopforge.dev")

	creds := adminCredentialsFromEnv()
	if len(creds) != 2 {
		t.Fatalf("expected 2 credentials, got %d", len(creds))
	}
	if creds[0].Email != "root@shopforge.dev" || creds[0].Name != "Root" {
		t.Fatalf("unexpected first credential %+v", creds[0])
	}
	if creds[1].Email != "ops@shopforge.dev" || creds[1].Password != "hunter3" {
		t.Fatalf("unexpected second credential %+v", creds[1])
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()
	if cfg.HTTPAddr == "" || cfg.PlatformDomain == "" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}
