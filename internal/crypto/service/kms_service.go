// Package service opens and checks KMS keepers through gocloud.dev/secrets.
package service

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"strings"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/allisson/drive-proxy/internal/crypto/domain"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// sampleSize is the number of random bytes sealed by RoundTrip.
const sampleSize = 16

// KMSService opens keepers and checks that they can seal and open data.
type KMSService interface {
	// OpenKeeper opens a keeper for the KMS addressed by keyURI.
	// Supports: awskms://, gcpkms://, azurekeyvault://, hashivault://, base64key://
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)

	// RoundTrip encrypts and decrypts a random value, reporting whether the KMS is usable.
	RoundTrip(ctx context.Context, keeper cryptoDomain.KMSKeeper) error
}

// kmsService implements KMSService using gocloud.dev/secrets.
type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens a *secrets.Keeper for keyURI. Opening does not contact the KMS;
// credentials and reachability are only exercised by the first Encrypt or Decrypt.
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	if strings.TrimSpace(keyURI) == "" {
		return nil, fmt.Errorf("%w: empty key uri", cryptoDomain.ErrKeeperUnavailable)
	}
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open KMS keeper: %w", cryptoDomain.ErrKeeperUnavailable, err)
	}
	return keeper, nil
}

// RoundTrip performs one encrypt/decrypt round trip with a throwaway value.
func (k *kmsService) RoundTrip(ctx context.Context, keeper cryptoDomain.KMSKeeper) error {
	sample := make([]byte, sampleSize)
	if _, err := rand.Read(sample); err != nil {
		return fmt.Errorf("failed to generate sample: %w", err)
	}

	ciphertext, err := keeper.Encrypt(ctx, sample)
	if err != nil {
		return fmt.Errorf("%w: encrypt: %w", cryptoDomain.ErrKeeperUnavailable, err)
	}

	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return fmt.Errorf("%w: decrypt: %w", cryptoDomain.ErrKeeperUnavailable, err)
	}
	defer cryptoDomain.Zero(plaintext)

	if !bytes.Equal(sample, plaintext) {
		return cryptoDomain.ErrRoundTripMismatch
	}
	return nil
}
