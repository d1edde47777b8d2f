package pagination

import (
	"math"
	"strconv"
	"testing"

	"movie-catalog/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_PageSize(t *testing.T) {
	cases := []struct {
		name   string
		policy Policy
		raw    string
		want   int
	}{
		{"movie default", Movie, "", 5},
		{"category default", Category, "", 4},
		{"country default", Country, "", 6},
		{"fallback default", Default, "", 20},
		{"within cap", Movie, "7", 7},
		{"clamped to cap", Movie, "50", 10},
		{"fallback cap", Default, "1000", 100},
		{"zero uses default", Movie, "0", 5},
		{"negative uses default", Country, "-3", 6},
		{"garbage uses default", Category, "lots", 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := tc.policy.Resolve("", tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, req.Size)
			assert.Equal(t, 1, req.Page)
		})
	}
}

func TestResolve_InvalidPage(t *testing.T) {
	for _, raw := range []string{"0", "-1", "two", strconv.Itoa(math.MaxInt), "99999999999999999999"} {
		_, err := Movie.Resolve(raw, "")
		assert.True(t, apperror.IsNotFound(err), raw)
	}
}

func TestRequest_Check(t *testing.T) {
	req, err := Movie.Resolve("3", "5")
	require.NoError(t, err)
	assert.Equal(t, 10, req.Offset())

	assert.NoError(t, req.Check(11))
	assert.True(t, apperror.IsNotFound(req.Check(10)))

	first, err := Movie.Resolve("1", "")
	require.NoError(t, err)
	assert.NoError(t, first.Check(0))
}

func TestResolve_LargestPageKeepsOffsetPositive(t *testing.T) {
	last := math.MaxInt/10 + 1

	req, err := Movie.Resolve(strconv.Itoa(last), "10")
	require.NoError(t, err)
	assert.Positive(t, req.Offset())
	assert.True(t, apperror.IsNotFound(req.Check(3)))

	_, err = Movie.Resolve(strconv.Itoa(last+1), "10")
	assert.True(t, apperror.IsNotFound(err))
}
