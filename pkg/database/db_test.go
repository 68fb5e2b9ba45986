package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sport", "%sport%"},
		{"100%", `%100\%%`},
		{"test_topic", `%test\_topic%`},
		{`back\slash`, `%back\\slash%`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ContainsPattern(tt.in))
	}
}

func TestConnectRedis(t *testing.T) {
	ctx := context.Background()

	client, err := ConnectRedis(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, client)

	_, err = ConnectRedis(ctx, "not a url")
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	client, err = ConnectRedis(ctx, "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.NoError(t, client.Close())
}
