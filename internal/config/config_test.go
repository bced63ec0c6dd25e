package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	// Set required environment variables
	os.Setenv("DB_PASSWORD", "test_password")
	os.Setenv("JWT_SECRET_KEY", "this_is_a_test_secret_key_with_32_chars_minimum")
	defer func() {
		os.Unsetenv("DB_PASSWORD")
		os.Unsetenv("JWT_SECRET_KEY")
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.DBPassword != "test_password" {
		t.Errorf("DBPassword = %q, want %q", cfg.DBPassword, "test_password")
	}

	if cfg.TerritoryCooldownHours != 24 {
		t.Errorf("TerritoryCooldownHours = %d, want 24", cfg.TerritoryCooldownHours)
	}

	if cfg.StartingCash != 500 {
		t.Errorf("StartingCash = %d, want 500", cfg.StartingCash)
	}
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name: "Missing DB_PASSWORD",
			envVars: map[string]string{
				"JWT_SECRET_KEY": "this_is_a_test_secret_key_with_32_chars_minimum",
			},
		},
		{
			name: "Missing JWT_SECRET_KEY",
			envVars: map[string]string{
				"DB_PASSWORD": "password",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear all env vars
			os.Clearenv()

			// Set only the provided env vars
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			_, err := LoadConfig()
			if err == nil {
				t.Error("LoadConfig() expected error for missing required field, got nil")
			}
		})
	}
}

func TestValidate_JWTSecretTooShort(t *testing.T) {
	cfg := &Config{
		DBPassword:             "password",
		JWTSecret:              "short", // Less than 32 chars
		TerritoryCooldownHours: 24,
		IncomeIntervalMinutes:  60,
	}

	err := cfg.Validate()
	if err == nil {
		t.Error("Validate() expected error for short JWT secret, got nil")
	}
}

func TestValidate_BadTunables(t *testing.T) {
	tests := []struct {
		name          string
		cooldownHours int
		incomeMinutes int
	}{
		{
			name:          "Zero cooldown",
			cooldownHours: 0,
			incomeMinutes: 60,
		},
		{
			name:          "Negative income interval",
			cooldownHours: 24,
			incomeMinutes: -5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				DBPassword:             "password",
				JWTSecret:              "this_is_a_test_secret_key_with_32_chars_minimum",
				TerritoryCooldownHours: tt.cooldownHours,
				IncomeIntervalMinutes:  tt.incomeMinutes,
			}

			err := cfg.Validate()
			if err == nil {
				t.Error("Validate() expected error for bad tunable, got nil")
			}
		})
	}
}

func TestValidateProductionSecurity(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *Config
		shouldErr bool
	}{
		{
			name: "Valid production config",
			cfg: &Config{
				AppEnv:    "production",
				DBSSLMode: "require",
				JWTSecret: "production_secret_key_different_from_default",
			},
			shouldErr: false,
		},
		{
			name: "Development mode - no validation",
			cfg: &Config{
				AppEnv:    "development",
				DBSSLMode: "disable",
			},
			shouldErr: false,
		},
		{
			name: "Production without SSL",
			cfg: &Config{
				AppEnv:    "production",
				DBSSLMode: "disable",
				JWTSecret: "production_secret",
			},
			shouldErr: true,
		},
		{
			name: "Production with default JWT secret",
			cfg: &Config{
				AppEnv:    "production",
				DBSSLMode: "require",
				JWTSecret: "your_jwt_secret_minimum_32_chars_here_change_this",
			},
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateProductionSecurity()
			if tt.shouldErr && err == nil {
				t.Error("ValidateProductionSecurity() expected error, got nil")
			}
			if !tt.shouldErr && err != nil {
				t.Errorf("ValidateProductionSecurity() unexpected error = %v", err)
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "testuser",
		DBPassword: "testpass",
		DBName:     "testdb",
		DBSSLMode:  "disable",
	}

	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	dsn := cfg.GetDSN()

	if dsn != expected {
		t.Errorf("GetDSN() = %q, want %q", dsn, expected)
	}
}

func TestGetTerritoryCooldown(t *testing.T) {
	cfg := &Config{
		TerritoryCooldownHours: 12,
	}

	if got := cfg.GetTerritoryCooldown(); got != 12*time.Hour {
		t.Errorf("GetTerritoryCooldown() = %v, want %v", got, 12*time.Hour)
	}
}

func TestGetIncomeInterval(t *testing.T) {
	cfg := &Config{
		IncomeIntervalMinutes: 30,
	}

	if got := cfg.GetIncomeInterval(); got != 30*time.Minute {
		t.Errorf("GetIncomeInterval() = %v, want %v", got, 30*time.Minute)
	}
}
