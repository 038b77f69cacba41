package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/safespeak/safespeak/server/auth/key"
	"github.com/stretchr/testify/assert"
)

func testKeyPair(t *testing.T) *key.KeyPair {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	assert.Nil(t, err)

	return &key.KeyPair{
		Kid:        "test-key-id",
		PrivateKey: privateKey,
		PublicKey:  &privateKey.PublicKey,
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("very-secure")
	assert.Nil(t, err)
	assert.NotEqual(t, "very-secure", hash)

	assert.True(t, CheckPasswordHash("very-secure", hash))
	assert.False(t, CheckPasswordHash("not-the-password", hash))
}

func TestEncodeAndDecodeJWT(t *testing.T) {
	keyPair := testKeyPair(t)

	claims := SafespeakTokenClaims{
		DisplayName: "tony stark",
		IsAdmin:     true,
		StandardClaims: jwt.StandardClaims{
			Subject:   "1",
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	}

	tokenString, err := EncodeJWT(claims, keyPair)
	assert.Nil(t, err)

	decoded, err := DecodeJWT(tokenString, keyPair)
	assert.Nil(t, err)
	assert.Equal(t, "tony stark", decoded.DisplayName)
	assert.Equal(t, "1", decoded.Subject)
	assert.True(t, decoded.IsAdmin)
}

func TestDecodeExpiredJWT(t *testing.T) {
	keyPair := testKeyPair(t)

	claims := SafespeakTokenClaims{
		StandardClaims: jwt.StandardClaims{
			Subject:   "1",
			ExpiresAt: time.Now().Add(-time.Hour).Unix(),
		},
	}

	tokenString, err := EncodeJWT(claims, keyPair)
	assert.Nil(t, err)

	_, err = DecodeJWT(tokenString, keyPair)
	assert.NotNil(t, err)
}

func TestDecodeJWTWithWrongKey(t *testing.T) {
	tokenString, err := EncodeJWT(SafespeakTokenClaims{
		StandardClaims: jwt.StandardClaims{Subject: "1", ExpiresAt: time.Now().Add(time.Hour).Unix()},
	}, testKeyPair(t))
	assert.Nil(t, err)

	_, err = DecodeJWT(tokenString, testKeyPair(t))
	assert.NotNil(t, err)
}
