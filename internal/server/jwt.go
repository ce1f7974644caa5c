package server

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// SessionTTL 会话有效期，足够覆盖断线重连
	SessionTTL = 30 * time.Minute

	tokenIssuer = "bomberman-server"
)

var ErrInvalidToken = errors.New("无效的会话令牌")

// Claims 会话令牌内容
type Claims struct {
	PlayerID int32  `json:"player_id"`
	RoomID   string `json:"room_id"`
	jwt.RegisteredClaims
}

// getSigningKey 从环境变量 JWT_SECRET 读取签名密钥
func getSigningKey() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "bomberman-dev-secret-change-in-production"
	}
	return []byte(secret)
}

// GenerateSessionToken 生成会话令牌
func GenerateSessionToken(playerID int32, roomID string) (string, error) {
	now := time.Now()
	claims := Claims{
		PlayerID: playerID,
		RoomID:   roomID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Subject:   fmt.Sprintf("player-%d", playerID),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getSigningKey())
}

// VerifySessionToken 验证令牌，返回玩家 ID 与房间 ID
func VerifySessionToken(tokenString string) (int32, string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return getSigningKey(), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
	)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || claims.RoomID == "" {
		return 0, "", ErrInvalidToken
	}
	return claims.PlayerID, claims.RoomID, nil
}
