package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateSessionToken(3, "room-a")
	require.NoError(t, err)

	playerID, roomID, err := VerifySessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, int32(3), playerID)
	assert.Equal(t, "room-a", roomID)
}

func TestSessionTokenRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := GenerateSessionToken(1, "room-a")
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		PlayerID: 1,
		RoomID:   "room-a",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	expiredToken, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{PlayerID: 1, RoomID: "room-a"})
	noneToken, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		setup func(t *testing.T)
	}{
		{name: "垃圾数据", token: "not-a-token"},
		{name: "过期", token: expiredToken},
		{name: "未签名", token: noneToken},
		{name: "密钥变更", token: token, setup: func(t *testing.T) { t.Setenv("JWT_SECRET", "rotated") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup(t)
			}
			_, _, err := VerifySessionToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
