package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingSecret se devuelve cuando no hay secreto configurado.
var ErrMissingSecret = errors.New("jwt: secret vacío")

// Subject son los datos de identidad que viajan dentro del token.
// El middleware construye la identidad de autorización a partir de estos campos sin consultar la DB.
type Subject struct {
	UserID   string
	Username string
	Role     string // ADMIN | BASE_COMMANDER | LOGISTICS_OFFICER | PERSONNEL
	BaseID   string // vacío para usuarios sin base (ADMIN)
	FullName string
}

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	BaseID   string `json:"base_id,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// Generate genera un token JWT firmado (HS256) para el sujeto indicado.
func Generate(secret string, sub Subject, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   sub.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:   sub.UserID,
		Username: sub.Username,
		Role:     sub.Role,
		BaseID:   sub.BaseID,
		FullName: sub.FullName,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve el sujeto.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Subject, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return &Subject{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
		BaseID:   claims.BaseID,
		FullName: claims.FullName,
	}, nil
}
