package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("GRPC_ADDR", ":8080")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.GRPCAddr != ":8080" {
		t.Errorf("GRPCAddr = %q, want %q", cfg.GRPCAddr, ":8080")
	}
	if cfg.JWTAccessTTL != "24h" {
		t.Errorf("JWTAccessTTL = %q, want %q", cfg.JWTAccessTTL, "24h")
	}
	if cfg.JWTRefreshTTL != "168h" {
		t.Errorf("JWTRefreshTTL = %q, want %q", cfg.JWTRefreshTTL, "168h")
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
	if cfg.JWTSigningKey != "" {
		t.Errorf("JWTSigningKey = %q, want empty", cfg.JWTSigningKey)
	}
	if cfg.OTLPEndpoint != "" {
		t.Errorf("OTLPEndpoint = %q, want empty", cfg.OTLPEndpoint)
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("GRPC_ADDR", ":9090")
	os.Setenv("JWT_SIGNING_KEY", "c2VjcmV0")
	os.Setenv("JWT_ACCESS_TTL", "15m")
	os.Setenv("BCRYPT_COST", "14")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GRPCAddr != ":9090" {
		t.Errorf("GRPCAddr = %q, want %q", cfg.GRPCAddr, ":9090")
	}
	if cfg.JWTSigningKey != "c2VjcmV0" {
		t.Errorf("JWTSigningKey = %q, want %q", cfg.JWTSigningKey, "c2VjcmV0")
	}
	if cfg.JWTAccessTTL != "15m" {
		t.Errorf("JWTAccessTTL = %q, want %q", cfg.JWTAccessTTL, "15m")
	}
	if cfg.BcryptCost != 14 {
		t.Errorf("BcryptCost = %d, want 14", cfg.BcryptCost)
	}
}

func TestLoad_BcryptCostRange(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		want  int
		err   bool
	}{
		{"valid min", "4", 4, false},
		{"valid max", "31", 31, false},
		{"valid middle", "12", 12, false},
		{"too low", "3", 0, true},
		{"too high", "32", 0, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			os.Clearenv()
			os.Setenv("GRPC_ADDR", ":8080")
			os.Setenv("BCRYPT_COST", tc.value)

			cfg, err := Load()
			if tc.err {
				if err == nil {
					t.Fatalf("Load should fail for BCRYPT_COST=%s", tc.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.BcryptCost != tc.want {
				t.Errorf("BcryptCost = %d, want %d", cfg.BcryptCost, tc.want)
			}
		})
	}
}

func TestAccessTTL(t *testing.T) {
	cfg := &Config{JWTAccessTTL: "15m"}
	if got := cfg.AccessTTL(); got != 15*time.Minute {
		t.Errorf("AccessTTL = %v, want 15m", got)
	}

	cfg = &Config{JWTAccessTTL: ""}
	if got := cfg.AccessTTL(); got != 24*time.Hour {
		t.Errorf("AccessTTL = %v, want 24h default", got)
	}

	cfg = &Config{JWTAccessTTL: "garbage"}
	if got := cfg.AccessTTL(); got != 24*time.Hour {
		t.Errorf("AccessTTL = %v, want 24h default for invalid value", got)
	}

	cfg = &Config{JWTAccessTTL: "-5m"}
	if got := cfg.AccessTTL(); got != 24*time.Hour {
		t.Errorf("AccessTTL = %v, want 24h default for negative value", got)
	}
}

func TestRefreshTTL(t *testing.T) {
	cfg := &Config{JWTRefreshTTL: "72h"}
	if got := cfg.RefreshTTL(); got != 72*time.Hour {
		t.Errorf("RefreshTTL = %v, want 72h", got)
	}

	cfg = &Config{JWTRefreshTTL: ""}
	if got := cfg.RefreshTTL(); got != 168*time.Hour {
		t.Errorf("RefreshTTL = %v, want 168h default", got)
	}
}
