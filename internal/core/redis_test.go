// AngelaMos | 2026
// redis_test.go

package core

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisPing(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectPing().SetVal("PONG")

	r := &Redis{Client: client}
	require.NoError(t, r.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisPingFailure(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectPing().SetErr(errors.New("connection refused"))

	r := &Redis{Client: client}
	err := r.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
}
