package runelock

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// forcedCellScenario excludes every activation but #1 from position 0 so
// consolidation derives a MustBe with a rich justification set.
func forcedCellScenario(t *testing.T) (*FactDB, FactHandle) {
	t.Helper()
	db := NewFactDB(RingSize, RingSize)
	lock := ruleLessLock()
	for a := 1; a < RingSize; a++ {
		require.NoError(t, db.IntegrateAndConsolidate(
			cannotBe(0, Activation(a), ByAssumption()), lock))
	}
	h, ok := db.At(0, 0)
	require.True(t, ok)
	fact, err := db.Fact(h)
	require.NoError(t, err)
	require.Equal(t, FactMustBe, fact.Kind)
	return db, h
}

func TestExplainDerivedMustBe(t *testing.T) {
	db, h := forcedCellScenario(t)
	lock := ruleLessLock()

	var b strings.Builder
	require.NoError(t, db.Explain(&b, h, lock, 10))
	out := b.String()

	assert.Contains(t, out, "must be on 0")
	// Every leaf of this justification tree is an assumption marker.
	assert.Contains(t, out, "Fact is Assumed.")
	assert.NotContains(t, out, "unknown fact")
	assert.NotContains(t, out, "depth limit", "depth 10 is ample here")
}

func TestExplainGroupsSiblingExclusions(t *testing.T) {
	db := NewFactDB(RingSize, RingSize)
	lock := ruleLessLock()
	require.NoError(t, db.IntegrateAndConsolidate(mustBe(0, 0, ByAssumption()), lock))

	// The activation line's exclusions all cite the same assumption; a
	// NoOptionsLeft-style group would list them together. Here we check
	// the simplest grouping: explain one exclusion, whose sole cited
	// fact is the assumption itself.
	h, ok := db.At(5, 0)
	require.True(t, ok)

	var b strings.Builder
	require.NoError(t, db.Explain(&b, h, lock, 10))
	out := b.String()
	assert.Contains(t, out, "cannot be on 5")
	assert.Contains(t, out, "must be on 0")
	assert.Contains(t, out, "Fact is Assumed.")
}

func TestExplainGroupingDeduplicates(t *testing.T) {
	db, h := forcedCellScenario(t)
	lock := ruleLessLock()

	var b strings.Builder
	require.NoError(t, db.Explain(&b, h, lock, 10))
	out := b.String()

	// The eleven sibling exclusions share kind, activation and reason
	// set pairwise only per activation, so no grouping collapses them.
	// But each exclusion's own reasoning is reported exactly once.
	lines := strings.Split(out, "\n")
	assert.Greater(t, len(lines), 3)
	assert.Equal(t, 1, strings.Count(out, "must be on 0"),
		"the explained fact itself appears once")
}

func TestExplainDepthBound(t *testing.T) {
	db, h := forcedCellScenario(t)
	lock := ruleLessLock()

	var b strings.Builder
	require.NoError(t, db.Explain(&b, h, lock, 0))
	out := b.String()

	// At depth zero the fact is stated and everything below is elided,
	// explicitly.
	assert.Contains(t, out, "must be on 0")
	assert.Contains(t, out, "depth limit")
	assert.NotContains(t, out, "Fact is Assumed.")
}

func TestExplainUnknownHandle(t *testing.T) {
	db := NewFactDB(RingSize, RingSize)
	var b strings.Builder
	err := db.Explain(&b, 7, ruleLessLock(), 3)
	var unknown *UnknownFactError
	require.ErrorAs(t, err, &unknown)
}

func TestExplainRuleLeaf(t *testing.T) {
	lock := &Lock{
		Runes: DefaultLock().Runes,
		Rules: []Rule{AntakianConjugates(1, 2)},
	}
	db := NewFactDB(RingSize, RingSize)
	require.NoError(t, db.IntegrateAndConsolidate(mustBe(0, 0, ByAssumption()), lock))

	// Pick an exclusion derived from the rule.
	h, ok := db.At(5, 1)
	require.True(t, ok)
	fact, err := db.Fact(h)
	require.NoError(t, err)
	require.Equal(t, FactCannotBe, fact.Kind)

	var b strings.Builder
	require.NoError(t, db.Explain(&b, h, lock, 10))
	out := b.String()
	assert.Contains(t, out, "Rule 0:")
	assert.Contains(t, out, "Antakian Conjugates")
	assert.Contains(t, out, "Fact is Assumed.")
}
