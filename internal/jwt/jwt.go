package jwt

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lifeline-dev/lifeline/internal/domain"
	internal_errors "github.com/lifeline-dev/lifeline/internal/errors"
	"github.com/lifeline-dev/lifeline/internal/logger"
)

type Service interface {
	NewToken(session domain.Session) (string, error)
	DecodeToken(jwtStr string) (domain.Session, error)
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) *Jwt {
	return &Jwt{secretKey, ttl}
}

// NewToken signs a session marker for either actor kind. The kind claim keeps
// user and hospital cookies from being replayed against each other.
func (j *Jwt) NewToken(session domain.Session) (string, error) {
	claims := jwt.MapClaims{}
	claims["kind"] = string(session.Kind)
	claims["exp"] = time.Now().Add(j.ttl).Unix()
	switch session.Kind {
	case domain.SessionUser:
		claims["phone"] = session.Phone
	case domain.SessionHospital:
		claims["hid"] = session.HospitalId
	default:
		return "", fmt.Errorf("unknown session kind %q", session.Kind)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("failed to sign session token", "error", err)
		return "", fmt.Errorf("can't create token: %w", err)
	}

	return tokenString, nil
}

func (j *Jwt) DecodeToken(jwtStr string) (domain.Session, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		// Verify signing algorithm
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, &internal_errors.ErrorWithStatusCode{Message: fmt.Sprintf("Unexpected signing method: %v", token.Header["alg"]), StatusCode: http.StatusUnauthorized}
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return domain.Session{}, &internal_errors.ErrorWithStatusCode{Message: "Invalid token signature", StatusCode: http.StatusUnauthorized}
	}
	if !token.Valid {
		return domain.Session{}, &internal_errors.ErrorWithStatusCode{Message: "Invalid access token", StatusCode: http.StatusUnauthorized}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Session{}, &internal_errors.ErrorWithStatusCode{Message: "Invalid token claims", StatusCode: http.StatusUnauthorized}
	}

	kind, _ := claims["kind"].(string)
	switch domain.SessionKind(kind) {
	case domain.SessionUser:
		phone, ok := claims["phone"].(string)
		if !ok {
			return domain.Session{}, &internal_errors.ErrorWithStatusCode{Message: "Invalid token claims", StatusCode: http.StatusUnauthorized}
		}
		return domain.Session{Kind: domain.SessionUser, Phone: phone}, nil
	case domain.SessionHospital:
		hid, ok := claims["hid"].(float64)
		if !ok {
			return domain.Session{}, &internal_errors.ErrorWithStatusCode{Message: "Invalid token claims", StatusCode: http.StatusUnauthorized}
		}
		return domain.Session{Kind: domain.SessionHospital, HospitalId: int64(hid)}, nil
	default:
		return domain.Session{}, &internal_errors.ErrorWithStatusCode{Message: "Invalid token claims", StatusCode: http.StatusUnauthorized}
	}
}
