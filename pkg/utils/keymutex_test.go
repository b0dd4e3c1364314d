package utils_test

import (
	"sync"
	"testing"

	"github.com/threadguard/threadguard/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func TestKeyMutex(t *testing.T) {
	t.Parallel()

	t.Run("serializes same key", func(t *testing.T) {
		t.Parallel()

		m := utils.NewKeyMutex[string]()
		counter := 0

		var wg sync.WaitGroup

		for range 50 {
			wg.Add(1)

			go func() {
				defer wg.Done()

				m.Lock("report-1")
				counter++
				m.Unlock("report-1")
			}()
		}

		wg.Wait()
		assert.Equal(t, 50, counter)
	})

	t.Run("independent keys do not block", func(t *testing.T) {
		t.Parallel()

		m := utils.NewKeyMutex[string]()
		m.Lock("a")

		done := make(chan struct{})

		go func() {
			m.Lock("b")
			m.Unlock("b")
			close(done)
		}()

		<-done // Would deadlock if "b" waited on "a"
		m.Unlock("a")
	})

	t.Run("unlock of unheld key panics", func(t *testing.T) {
		t.Parallel()

		m := utils.NewKeyMutex[uint64]()
		assert.Panics(t, func() { m.Unlock(42) })
	})
}
