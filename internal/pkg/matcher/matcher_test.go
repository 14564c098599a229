package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roster() []Candidate {
	return []Candidate{
		{ID: "e1", Name: "Juan Dela Cruz"},
		{ID: "e2", Name: "Maria Niña Santos"},
		{ID: "e3", Name: "Jose Rizal Mercado"},
		{ID: "e4", Name: "Andres Bonifacio"},
		{ID: "e5", Name: "Andres Bonifacio"},
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ma nino pena", Normalize("Ma. Niño  Peña"))
	assert.Equal(t, "juan dela cruz", Normalize("  JUAN dela-Cruz "))
	assert.Equal(t, "", Normalize(" ... "))
}

func TestMatcher_Exact(t *testing.T) {
	m := New(roster(), DefaultMaxDistance)

	got, unresolved := m.Resolve("maria nina santos")
	require.Nil(t, unresolved)
	assert.Equal(t, "e2", got.ID)
	assert.Equal(t, MethodExact, got.Method)
}

func TestMatcher_Fuzzy(t *testing.T) {
	m := New(roster(), DefaultMaxDistance)

	got, unresolved := m.Resolve("Juan Dela Crux")
	require.Nil(t, unresolved)
	assert.Equal(t, "e1", got.ID)
	assert.Equal(t, MethodFuzzy, got.Method)
	assert.Equal(t, 2, got.Distance) // one substitution costs 2 under DefaultOptions
}

func TestMatcher_DuplicateNamesAreAmbiguous(t *testing.T) {
	m := New(roster(), DefaultMaxDistance)

	_, unresolved := m.Resolve("Andres Bonifacio")
	require.NotNil(t, unresolved)
	assert.Equal(t, ReasonAmbiguous, unresolved.Reason)
	assert.Len(t, unresolved.Suggestions, 2)
}

func TestMatcher_TooFarIsNotFound(t *testing.T) {
	m := New(roster(), DefaultMaxDistance)

	_, unresolved := m.Resolve("Emilio Aguinaldo")
	require.NotNil(t, unresolved)
	assert.Equal(t, ReasonNotFound, unresolved.Reason)
}

func TestMatcher_EmptyRoster(t *testing.T) {
	m := New(nil, DefaultMaxDistance)

	_, unresolved := m.Resolve("Juan Dela Cruz")
	require.NotNil(t, unresolved)
	assert.Equal(t, ReasonNotFound, unresolved.Reason)
}
