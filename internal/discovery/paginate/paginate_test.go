// internal/discovery/paginate/paginate_test.go
package paginate

import (
	"testing"

	cerrors "discovery-service/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPaginate_FirstPage(t *testing.T) {
	res, err := Paginate(intRange(45), 20, 0)
	require.NoError(t, err)

	assert.Equal(t, intRange(45)[0:20], res.Data)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 20, res.Limit)
	assert.Equal(t, 45, res.Total)
	assert.Equal(t, 3, res.TotalPages)
	assert.True(t, res.HasNext)
	assert.False(t, res.HasPrev)
}

func TestPaginate_MiddlePage(t *testing.T) {
	res, err := Paginate(intRange(45), 20, 20)
	require.NoError(t, err)

	assert.Len(t, res.Data, 20)
	assert.Equal(t, 2, res.Page)
	assert.True(t, res.HasNext)
	assert.True(t, res.HasPrev)
}

func TestPaginate_LastPartialPage(t *testing.T) {
	res, err := Paginate(intRange(45), 20, 40)
	require.NoError(t, err)

	assert.Len(t, res.Data, 5)
	assert.Equal(t, 3, res.Page)
	assert.False(t, res.HasNext)
	assert.True(t, res.HasPrev)
}

func TestPaginate_OffsetPastEnd(t *testing.T) {
	res, err := Paginate(intRange(10), 5, 50)
	require.NoError(t, err)

	assert.Empty(t, res.Data)
	assert.Equal(t, 10, res.Total)
	assert.False(t, res.HasNext)
	assert.True(t, res.HasPrev)
}

func TestPaginate_EmptyInput(t *testing.T) {
	res, err := Paginate([]int{}, 20, 0)
	require.NoError(t, err)

	assert.Empty(t, res.Data)
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, 0, res.TotalPages)
	assert.False(t, res.HasNext)
	assert.False(t, res.HasPrev)
}

func TestPaginate_InvalidLimit(t *testing.T) {
	for _, limit := range []int{0, -1, -20} {
		_, err := Paginate(intRange(10), limit, 0)
		require.Error(t, err, "limit %d", limit)
		assert.Equal(t, cerrors.ErrCodeInvalidArgument, cerrors.CodeOf(err))
	}
}

func TestPaginate_NegativeOffsetClampsToZero(t *testing.T) {
	res, err := Paginate(intRange(10), 5, -7)
	require.NoError(t, err)

	assert.Equal(t, intRange(10)[0:5], res.Data)
	assert.Equal(t, 1, res.Page)
	assert.False(t, res.HasPrev)
}

func TestPaginate_Invariants(t *testing.T) {
	items := intRange(37)
	for limit := 1; limit <= 40; limit += 3 {
		for offset := 0; offset < len(items); offset += 5 {
			res, err := Paginate(items, limit, offset)
			require.NoError(t, err)

			expectLen := limit
			if remaining := len(items) - offset; remaining < limit {
				expectLen = remaining
			}
			assert.Len(t, res.Data, expectLen, "limit=%d offset=%d", limit, offset)
			assert.Equal(t, len(items), res.Total)
			assert.Equal(t, offset+limit < len(items), res.HasNext)
			assert.Equal(t, offset > 0, res.HasPrev)
		}
	}
}
