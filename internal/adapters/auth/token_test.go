package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portalevents/internal/domain"
)

func TestJWTTokens_Issue(t *testing.T) {
	secret := "test-secret"
	tokens := NewJWTTokens(secret)
	now := time.Now()
	op := &domain.Operator{ID: "op-123", Email: "admin@demo.com"}

	token, err := tokens.Issue("sess-1", op, now, now.Add(time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "sess-1", claims.ID)
	assert.Equal(t, "op-123", claims.Subject)
	assert.Equal(t, "admin@demo.com", claims.Email)
}

func TestJWTTokens_Verify(t *testing.T) {
	tokens := NewJWTTokens("secret")
	op := &domain.Operator{ID: "op-1", Email: "a@b.co"}
	now := time.Now()

	valid, err := tokens.Issue("sess-1", op, now, now.Add(time.Hour))
	require.NoError(t, err)
	expired, err := tokens.Issue("sess-2", op, now.Add(-2*time.Hour), now.Add(-time.Hour))
	require.NoError(t, err)
	otherKey, err := NewJWTTokens("other").Issue("sess-3", op, now, now.Add(time.Hour))
	require.NoError(t, err)
	noSession, err := tokens.Issue("", op, now, now.Add(time.Hour))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantID  string
		wantErr bool
	}{
		{name: "valid", token: valid, wantID: "sess-1"},
		{name: "expired", token: expired, wantErr: true},
		{name: "wrong key", token: otherKey, wantErr: true},
		{name: "garbage", token: "not-a-jwt", wantErr: true},
		{name: "missing session id", token: noSession, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := tokens.Verify(tt.token)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrUnauthorized)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
