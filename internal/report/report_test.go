package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilderDoesNotShareParams(t *testing.T) {
	base := New(AttackHits).Subject(3).Add("punch")
	left := base.Add("LA", 5)
	right := base.Add("RA", 6)

	assert.Equal(t, []any{"punch"}, base.Params)
	assert.Equal(t, []any{"punch", "LA", 5}, left.Params)
	assert.Equal(t, []any{"punch", "RA", 6}, right.Params)
	assert.Equal(t, 3, right.SubjectID)
}

func TestSink(t *testing.T) {
	var s Sink
	s.Append(New(AttackerHeader).Add("Centurion"))
	mark := s.Len()
	s.Append(New(AttackRoll).Indented(1), New(AttackMisses).Indented(2))

	assert.Equal(t, 3, s.Len())
	assert.Len(t, s.Since(mark), 2)
	assert.Nil(t, s.Since(10))
	assert.True(t, s.Has(AttackMisses))
	assert.False(t, s.Has(AttackHits))

	got := s.Reports()
	got[0].TemplateID = 0
	assert.Equal(t, AttackerHeader, s.Reports()[0].TemplateID, "Reports returns a copy")
}

func TestNamesAreUnique(t *testing.T) {
	seen := map[string]int{}
	for id, n := range names {
		if prev, ok := seen[n]; ok {
			t.Errorf("name %q used by %d and %d", n, prev, id)
		}
		seen[n] = id
	}
	assert.Equal(t, "unknown", Name(-1))
	assert.Equal(t, "attacker", Name(AttackerHeader))
}
