package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSnowflake(t *testing.T) {
	n, err := ParseSnowflake("900000000000000001")
	require.NoError(t, err)
	assert.Equal(t, int64(900000000000000001), n)
}

func TestParseSnowflakeRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "abc", "12x", "-"} {
		_, err := ParseSnowflake(s)
		assert.Errorf(t, err, "%q should not parse", s)
	}
}

func TestParseSnowflakeRejectsOverflow(t *testing.T) {
	// One above max int64; ids beyond the signed range cannot be stored.
	_, err := ParseSnowflake("9223372036854775808")
	assert.Error(t, err)
}
