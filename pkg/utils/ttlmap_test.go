package utils_test

import (
	"testing"
	"time"

	"github.com/threadguard/threadguard/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func TestTTLMap(t *testing.T) {
	t.Parallel()

	ttl := 100 * time.Millisecond
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	m := utils.NewTTLMap[string, int](ttl)

	// Test Set and Get
	t.Run("basic set and get", func(t *testing.T) {
		t.Parallel()
		m.Set("test1", 123, base)
		value, exists := m.Get("test1", base)
		assert.True(t, exists)
		assert.Equal(t, 123, value)
	})

	// Test expiration
	t.Run("expiration", func(t *testing.T) {
		t.Parallel()
		m.Set("test2", 456, base)

		_, exists := m.Get("test2", base.Add(ttl+50*time.Millisecond))
		assert.False(t, exists)
	})

	// Entries live through the full window
	t.Run("alive at window edge", func(t *testing.T) {
		t.Parallel()
		m.Set("edge", 999, base)

		value, exists := m.Get("edge", base.Add(ttl))
		assert.True(t, exists)
		assert.Equal(t, 999, value)
	})

	// Test Delete
	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		m.Set("test3", 789, base)
		m.Delete("test3")
		_, exists := m.Get("test3", base)
		assert.False(t, exists)
	})

	// Test non-existent key
	t.Run("non-existent key", func(t *testing.T) {
		t.Parallel()

		_, exists := m.Get("nonexistent", base)
		assert.False(t, exists)
	})

	// Test updating existing key
	t.Run("update existing key", func(t *testing.T) {
		t.Parallel()
		m.Set("test4", 111, base)
		m.Set("test4", 222, base.Add(50*time.Millisecond))

		// The second Set reset the window
		value, exists := m.Get("test4", base.Add(ttl+25*time.Millisecond))
		assert.True(t, exists)
		assert.Equal(t, 222, value)
	})

	// Test multiple types
	t.Run("different types", func(t *testing.T) {
		t.Parallel()

		stringMap := utils.NewTTLMap[string, string](ttl)
		stringMap.Set("hello", "world", base)
		value, exists := stringMap.Get("hello", base)
		assert.True(t, exists)
		assert.Equal(t, "world", value)
	})
}

func TestTTLMapConcurrent(t *testing.T) {
	t.Parallel()

	t.Run("concurrent access", func(t *testing.T) {
		t.Parallel()

		ttl := 100 * time.Millisecond
		base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		m := utils.NewTTLMap[string, int](ttl)

		done := make(chan bool)

		go func() {
			for i := range 100 {
				m.Set("key", i, base)
			}

			done <- true
		}()

		go func() {
			for range 100 {
				m.Get("key", base)
			}

			done <- true
		}()

		// Wait for both goroutines to finish
		<-done
		<-done
	})
}
