package rtctoken

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims содержимое токена видеокомнаты
type Claims struct {
	Room string `json:"room"`
	UID  int64  `json:"uid"`
	jwt.RegisteredClaims
}

// Issuer выпускает токены доступа к видеокомнате, подписанные HS256
type Issuer struct {
	appID  string
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer создает выпускающего токены
func NewIssuer(appID, secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		appID:  appID,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// IssueToken выпускает токен участнику uid для комнаты sessionID
func (i *Issuer) IssueToken(sessionID string, uid int64) (string, time.Time, error) {
	issuedAt := i.now()
	expiresAt := issuedAt.Add(i.ttl)

	claims := Claims{
		Room: sessionID,
		UID:  uid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.appID,
			Subject:   strconv.FormatInt(uid, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrSign, err)
	}

	return token, expiresAt, nil
}

// Parse проверяет подпись и срок действия токена
func (i *Issuer) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.appID),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}
