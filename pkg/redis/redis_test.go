package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"
)

// getTestConfig returns config for testing
func getTestConfig() *Config {
	cfg := DefaultConfig()

	if host := os.Getenv("TEST_REDIS_HOST"); host != "" {
		cfg.Host = host
	}
	if password := os.Getenv("TEST_REDIS_PASSWORD"); password != "" {
		cfg.Password = password
	}

	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Host != "localhost" {
		t.Errorf("Expected host 'localhost', got '%s'", cfg.Host)
	}
	if cfg.Port != 6379 {
		t.Errorf("Expected port 6379, got %d", cfg.Port)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("Expected 3 retries, got %d", cfg.MaxRetries)
	}
}

func TestConfig_Addr(t *testing.T) {
	cfg := &Config{
		Host: "redis.example.com",
		Port: 6380,
	}

	expected := "redis.example.com:6380"
	if cfg.Addr() != expected {
		t.Errorf("Expected addr '%s', got '%s'", expected, cfg.Addr())
	}
}

func TestNewClient_InvalidConfig(t *testing.T) {
	cfg := &Config{
		Host:          "invalid-host-that-does-not-exist",
		Port:          9999,
		MaxRetries:    0,
		RetryInterval: 100 * time.Millisecond,
		DialTimeout:   500 * time.Millisecond,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewClient(ctx, cfg)
	if err == nil {
		t.Error("Expected error for invalid config, got nil")
	}
}

func TestNewClient_Integration(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run")
	}

	cfg := getTestConfig()
	ctx := context.Background()

	client, err := NewClient(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to connect to redis: %v", err)
	}
	defer client.Close()

	if err := client.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck failed: %v", err)
	}
}

func TestClient_CacheOperations_Integration(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run")
	}

	cfg := getTestConfig()
	ctx := context.Background()

	client, err := NewClient(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to connect to redis: %v", err)
	}
	defer client.Close()

	testKey := "test:key:" + time.Now().Format("20060102150405")

	// Test SetString
	if err := client.SetString(ctx, testKey, "test_value", time.Minute); err != nil {
		t.Errorf("SetString failed: %v", err)
	}

	// Test GetString
	val, err := client.GetString(ctx, testKey)
	if err != nil {
		t.Errorf("GetString failed: %v", err)
	}
	if val != "test_value" {
		t.Errorf("Expected 'test_value', got '%s'", val)
	}

	// Test GetString on a missing key returns empty without error
	missing, err := client.GetString(ctx, testKey+":missing")
	if err != nil {
		t.Errorf("GetString on missing key failed: %v", err)
	}
	if missing != "" {
		t.Errorf("Expected empty value for missing key, got '%s'", missing)
	}

	// Test Delete
	if err := client.Delete(ctx, testKey); err != nil {
		t.Errorf("Delete failed: %v", err)
	}

	// Verify deleted
	if val, _ := client.GetString(ctx, testKey); val != "" {
		t.Error("Key should not exist after deletion")
	}
}

func TestClient_DeleteByPattern_Integration(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run")
	}

	cfg := getTestConfig()
	ctx := context.Background()

	client, err := NewClient(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to connect to redis: %v", err)
	}
	defer client.Close()

	prefix := "test:pattern:" + time.Now().Format("20060102150405")

	for i := 0; i < 5; i++ {
		key := fmt.Sprintf("%s:%d", prefix, i)
		if err := client.SetString(ctx, key, "v", time.Minute); err != nil {
			t.Fatalf("SetString failed: %v", err)
		}
	}

	if err := client.DeleteByPattern(ctx, prefix+":*"); err != nil {
		t.Errorf("DeleteByPattern failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		key := fmt.Sprintf("%s:%d", prefix, i)
		if val, _ := client.GetString(ctx, key); val != "" {
			t.Errorf("Key %s should not exist after pattern deletion", key)
		}
	}

	// Deleting a pattern with no matches is a no-op
	if err := client.DeleteByPattern(ctx, prefix+":none:*"); err != nil {
		t.Errorf("DeleteByPattern on empty match set failed: %v", err)
	}
}
