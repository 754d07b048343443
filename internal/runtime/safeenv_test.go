package runtime

import (
	"fmt"
	"sync"
	"testing"

	"github.com/korelang/kore/internal/kernel"
	"github.com/korelang/kore/internal/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeEnvConcurrentReadsDuringWrites(t *testing.T) {
	env := kernel.New()
	safe := NewSafeEnv(env)

	prop := env.Pool.Sort(level.ZeroLevel)
	require.NoError(t, safe.AddAxiom("base", 0, prop))

	var wg sync.WaitGroup
	errs := make(chan error, 64)

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := safe.Lookup("base"); err != nil {
				errs <- err
			}
		}()
	}

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("axiom%d", i)
			if err := safe.AddAxiom(name, 0, prop); err != nil {
				errs <- err
			}
		}(i)
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}

	names := safe.Names()
	assert.Len(t, names, 9) // base + 8 concurrently-added axioms
}

func TestSafeEnvSummarizeMatchesUnderlyingEnv(t *testing.T) {
	env := kernel.New()
	safe := NewSafeEnv(env)
	prop := env.Pool.Sort(level.ZeroLevel)
	require.NoError(t, safe.AddAxiom("thing", 0, prop))

	sum, err := safe.Summarize("thing")
	require.NoError(t, err)
	assert.Equal(t, "thing", sum.Name)
	assert.False(t, sum.HasBody)
}
