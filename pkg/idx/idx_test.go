package idx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewProducesValidIDs(t *testing.T) {
	t.Parallel()

	id := New()
	require.False(t, id.IsZero())

	parsed, err := Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestNewAtOrdering(t *testing.T) {
	t.Parallel()

	earlier := NewAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	later := NewAt(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	require.Less(t, earlier.String(), later.String())
	require.Equal(t, 2024, earlier.Time().Year())
}

func TestParseRejectsGarbage(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "   ", "not-a-ulid", "0000"} {
		_, err := Parse(s)
		require.ErrorIs(t, err, ErrInvalid)
	}
}
