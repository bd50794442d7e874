package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsernameReserver_Reserve(t *testing.T) {
	client, mock := redismock.NewClientMock()
	r := NewUsernameReserver(client)

	mock.ExpectSetNX("user:reserve:lm9", "1", reservationTTL).SetVal(true)
	mock.ExpectSetNX("user:reserve:lm9", "1", reservationTTL).SetVal(false)

	ok, err := r.Reserve(context.Background(), "lm9")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Reserve(context.Background(), "lm9")
	require.NoError(t, err)
	assert.False(t, ok, "second reservation must see the held claim")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsernameReserver_ReserveError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	r := NewUsernameReserver(client)

	mock.ExpectSetNX("user:reserve:lm9", "1", reservationTTL).SetErr(errors.New("connection refused"))

	ok, err := r.Reserve(context.Background(), "lm9")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestUsernameReserver_Release(t *testing.T) {
	client, mock := redismock.NewClientMock()
	r := NewUsernameReserver(client)

	mock.ExpectDel("user:reserve:lm9").SetVal(1)
	mock.ExpectDel("user:reserve:jd").SetErr(errors.New("timeout"))

	assert.NoError(t, r.Release(context.Background(), "lm9"))
	assert.Error(t, r.Release(context.Background(), "jd"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
