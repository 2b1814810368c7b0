package store

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentHashStable(t *testing.T) {
	h := ContentHash("x = 1;\n")
	assert.Len(t, h, 64)
	assert.Equal(t, h, ContentHash("x = 1;\n"))
	assert.NotEqual(t, h, ContentHash("x = 2;\n"))
}

func TestContentHashNormalizesNFC(t *testing.T) {
	composed := "% caf\u00e9\n"
	decomposed := "% cafe\u0301\n"
	require.NotEqual(t, composed, decomposed)
	assert.Equal(t, ContentHash(composed), ContentHash(decomposed))
}

func TestContentHashDomainSeparated(t *testing.T) {
	assert.NotEqual(t, ContentHash("x"), hashWithDomain("other/v1", []byte("x")))
}

func TestUUIDv7Generator(t *testing.T) {
	id := UUIDv7Generator{}.Generate()
	u, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), u.Version())
}

func TestFixedGenerator(t *testing.T) {
	g := NewFixedGenerator("a", "b")
	assert.Equal(t, "a", g.Generate())
	assert.Equal(t, "b", g.Generate())
	assert.Panics(t, func() { g.Generate() })
}

func TestFixedGeneratorConcurrent(t *testing.T) {
	ids := make([]string, 50)
	for i := range ids {
		ids[i] = uuid.NewString()
	}
	g := NewFixedGenerator(ids...)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[string]bool)
	)
	for range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := g.Generate()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, len(ids))
}
