package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidAttestation is returned when a replay bundle's signature
// cannot be verified against its recorded claims.
var ErrInvalidAttestation = errors.New("store: replay bundle attestation invalid")

// replayClaims is the JWT claim set a replay bundle's signature
// attests to: the hash triple that must hold for the bundle to be
// trusted as untampered.
type replayClaims struct {
	jwt.RegisteredClaims
	InitialStateHash string `json:"initial_state_hash"`
	StepsHash        string `json:"steps_hash"`
	FinalStateHash   string `json:"final_state_hash"`
}

// Attestor signs and verifies replay bundle claim sets with HS256.
type Attestor struct {
	secret []byte
}

func NewAttestor(secret string) *Attestor {
	return &Attestor{secret: []byte(secret)}
}

// Sign produces a compact JWT attesting the three hashes a replay
// bundle carries.
func (a *Attestor) Sign(initialHash, stepsHash, finalHash string) (string, error) {
	claims := replayClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		InitialStateHash: initialHash,
		StepsHash:        stepsHash,
		FinalStateHash:   finalHash,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("store: signing replay attestation: %w", err)
	}
	return signed, nil
}

// Verify checks signature validity and that the claimed hashes match
// the three supplied by the caller; it computes no hash itself.
func (a *Attestor) Verify(signed, initialHash, stepsHash, finalHash string) error {
	token, err := jwt.ParseWithClaims(signed, &replayClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAttestation, err)
	}
	claims, ok := token.Claims.(*replayClaims)
	if !ok || !token.Valid {
		return ErrInvalidAttestation
	}
	if claims.InitialStateHash != initialHash || claims.StepsHash != stepsHash || claims.FinalStateHash != finalHash {
		return ErrInvalidAttestation
	}
	return nil
}
