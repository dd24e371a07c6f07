package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer issues the JWT
const Issuer = "holdem-server"

// Audience is the intended JWT audience
const Audience = "holdem-table"

// ErrWrongTable is returned when a seat token was issued for another table
var ErrWrongTable = errors.New("token was issued for another table")

// SeatClaims binds a participant to a seat at a table
// The participant is the subject.
type SeatClaims struct {
	TableID string `json:"tbl"`
	jwtgo.RegisteredClaims
}

// Keys signs and validates seat tokens
type Keys struct {
	public  *rsa.PublicKey
	private *rsa.PrivateKey
	// TTL is how long a token is valid for. Zero never expires.
	TTL time.Duration
}

// NewKeys returns keys from parsed RSA keys
func NewKeys(public *rsa.PublicKey, private *rsa.PrivateKey) *Keys {
	return &Keys{
		public:  public,
		private: private,
	}
}

// LoadKeys will load the public and private keys from PEM files
func LoadKeys(publicKeyPath, privateKeyPath string) (*Keys, error) {
	b, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("could not read public key: %w", err)
	}

	public, err := jwtgo.ParseRSAPublicKeyFromPEM(b)
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}

	b, err = os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("could not read private key: %w", err)
	}

	private, err := jwtgo.ParseRSAPrivateKeyFromPEM(b)
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA private key: %w", err)
	}

	return NewKeys(public, private), nil
}

// Sign will sign a seat token for the participant at the table
func (k *Keys) Sign(tableID, participant string) (string, error) {
	if k.private == nil {
		return "", errors.New("no private key")
	}

	now := time.Now()
	claims := SeatClaims{
		TableID: tableID,
		RegisteredClaims: jwtgo.RegisteredClaims{
			Audience: jwtgo.ClaimStrings{Audience},
			ID:       uuid.New().String(),
			IssuedAt: jwtgo.NewNumericDate(now),
			Issuer:   Issuer,
			Subject:  participant,
		},
	}

	if k.TTL > 0 {
		claims.ExpiresAt = jwtgo.NewNumericDate(now.Add(k.TTL))
	}

	return jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, claims).SignedString(k.private)
}

// Validate will validate a signed seat token and return the claims
func (k *Keys) Validate(signedString string) (*SeatClaims, error) {
	claims := &SeatClaims{}
	token, err := jwtgo.ParseWithClaims(signedString, claims, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodRSA); !ok {
			return nil, errors.New("expected RS256 signing method")
		}

		return k.public, nil
	}, jwtgo.WithAudience(Audience), jwtgo.WithIssuer(Issuer))

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("claims were not valid")
	}

	if claims.Subject == "" || claims.TableID == "" {
		return nil, errors.New("token is missing the seat")
	}

	return claims, nil
}

// ValidateSeat validates the token and checks it was issued for the table
func (k *Keys) ValidateSeat(signedString, tableID string) (string, error) {
	claims, err := k.Validate(signedString)
	if err != nil {
		return "", err
	}

	if claims.TableID != tableID {
		return "", ErrWrongTable
	}

	return claims.Subject, nil
}
