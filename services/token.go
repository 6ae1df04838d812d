package services

import (
	"fmt"
	"strconv"
	"strings"

	"airmetr/errors"

	"github.com/dgrijalva/jwt-go"
	"github.com/goccy/go-json"
)

// GetCustomerIDFromToken reads the userinfo.userid claim of a bearer token.
// With an empty secret the signature is not checked, matching tokens issued by
// an upstream identity service this API does not share a key with.
func GetCustomerIDFromToken(tokenString, secret string) (string, error) {
	claims, err := parseClaims(tokenString, secret)
	if err != nil {
		return "", err
	}

	userInfo, ok := claims["userinfo"].(map[string]interface{})
	if !ok {
		return "", errors.NewAppError(errors.ErrCodeInvalidToken, "No user info in token", nil)
	}

	switch id := userInfo["userid"].(type) {
	case float64:
		return strconv.FormatInt(int64(id), 10), nil
	case string:
		if id != "" {
			return id, nil
		}
	}
	return "", errors.NewAppError(errors.ErrCodeInvalidToken, "No user id in token", nil)
}

func parseClaims(tokenString, secret string) (jwt.MapClaims, error) {
	if secret != "" {
		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Invalid token", err)
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Cannot parse token", nil)
		}
		return claims, nil
	}

	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Invalid token", nil)
	}
	payload, err := jwt.DecodeSegment(parts[1])
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Cannot decode token", err)
	}
	claims := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Cannot parse token", err)
	}
	return claims, nil
}
