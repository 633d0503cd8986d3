package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapStore struct {
	m map[string]string
}

func (s *mapStore) GetResponse(hash string) (string, error) {
	return s.m[hash], nil
}

func (s *mapStore) SetResponse(hash, response string) error {
	s.m[hash] = response
	return nil
}

func (s *mapStore) Close() error { return nil }

type countingGenerator struct {
	calls int
	text  string
}

func (g *countingGenerator) Generate(ctx context.Context, promptText string, images [][]byte) (*Result, error) {
	g.calls++
	return &Result{Text: g.text}, nil
}

func TestCachedGeneratorReusesResponses(t *testing.T) {
	inner := &countingGenerator{text: `{"title": "Jeans"}`}
	cached := NewCachedGenerator(inner, &mapStore{m: make(map[string]string)})

	images := [][]byte{[]byte("img")}

	first, err := cached.Generate(context.Background(), "prompt", images)
	require.NoError(t, err)
	second, err := cached.Generate(context.Background(), "prompt", images)
	require.NoError(t, err)

	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedGeneratorDistinguishesRequests(t *testing.T) {
	inner := &countingGenerator{text: "resp"}
	cached := NewCachedGenerator(inner, &mapStore{m: make(map[string]string)})

	_, err := cached.Generate(context.Background(), "prompt a", [][]byte{[]byte("img")})
	require.NoError(t, err)
	_, err = cached.Generate(context.Background(), "prompt b", [][]byte{[]byte("img")})
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestHashRequestBoundaries(t *testing.T) {
	// Length prefixes keep [A, B] distinct from [AB].
	a := hashRequest("p", [][]byte{[]byte("ab"), []byte("c")})
	b := hashRequest("p", [][]byte{[]byte("a"), []byte("bc")})
	assert.NotEqual(t, a, b)
}

func TestCachedGeneratorNilStore(t *testing.T) {
	inner := &countingGenerator{text: "resp"}
	cached := NewCachedGenerator(inner, nil)

	result, err := cached.Generate(context.Background(), "prompt", nil)
	require.NoError(t, err)
	assert.Equal(t, "resp", result.Text)
}
