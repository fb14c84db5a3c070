package rangeset_test

import (
	"testing"

	"github.com/kraklabs/dook/internal/rangeset"
	"github.com/stretchr/testify/assert"
)

func TestPushDisjoint(t *testing.T) {
	r := rangeset.New()
	r.Push(1, 3)
	r.Push(5, 7)

	assert.Equal(t, []rangeset.Range{{Start: 1, End: 3}, {Start: 5, End: 7}}, r.Iter())
}

func TestPushOverlapping(t *testing.T) {
	r := rangeset.New()
	r.Push(1, 5)
	r.Push(3, 8)

	assert.Equal(t, []rangeset.Range{{Start: 1, End: 8}}, r.Iter())
}

func TestPushTouching(t *testing.T) {
	r := rangeset.New()
	r.Push(1, 3)
	r.Push(3, 6)

	assert.Equal(t, []rangeset.Range{{Start: 1, End: 6}}, r.Iter())
}

func TestPushWidensExistingStart(t *testing.T) {
	r := rangeset.New()
	r.Push(1, 3)
	r.Push(1, 2)

	assert.Equal(t, []rangeset.Range{{Start: 1, End: 3}}, r.Iter())
}

func TestIterFillingGaps(t *testing.T) {
	r := rangeset.New()
	r.Push(0, 2)
	r.Push(5, 7)

	assert.Equal(t, []rangeset.Range{{Start: 0, End: 2}, {Start: 5, End: 7}}, r.IterFillingGaps(0))
	assert.Equal(t, []rangeset.Range{{Start: 0, End: 7}}, r.IterFillingGaps(3))
}

func TestExtend(t *testing.T) {
	r := rangeset.New()
	r.Extend([]rangeset.Range{{Start: 0, End: 2}, {Start: 2, End: 4}})

	assert.Equal(t, []rangeset.Range{{Start: 0, End: 4}}, r.Iter())
}

func TestEmptyEnd(t *testing.T) {
	r := rangeset.New()
	_, ok := r.End()
	assert.False(t, ok)

	r.Push(0, 3)
	r.Push(4, 10)
	end, ok := r.End()
	assert.True(t, ok)
	assert.Equal(t, 10, end)
}

func TestIsEmpty(t *testing.T) {
	r := rangeset.New()
	assert.True(t, r.IsEmpty())

	r.Push(0, 1)
	assert.False(t, r.IsEmpty())
}
