// Package service seals and opens capabilities with a KMS keeper.
package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	capabilityDomain "github.com/allisson/drive-proxy/internal/capability/domain"
	cryptoDomain "github.com/allisson/drive-proxy/internal/crypto/domain"
)

// encoding is the URL-safe, unpadded alphabet used for payload query parameters.
// Strict mode rejects non-canonical trailing bits so each payload has one encoding.
var encoding = base64.RawURLEncoding.Strict()

// payload is the sealed JSON form of a capability. Expiry is in unix milliseconds.
type payload struct {
	AccessToken string `json:"accessToken"`
	FileID      string `json:"fileId"`
	Expiry      *int64 `json:"expiry"`
}

// Codec issues and redeems opaque capability strings.
type Codec interface {
	// Issue seals a capability for fileID expiring ttl from now.
	Issue(ctx context.Context, accessToken, fileID string, ttl time.Duration) (string, error)

	// Redeem opens an opaque capability and rejects it once expired.
	Redeem(ctx context.Context, opaque string) (*capabilityDomain.Capability, error)

	// Open decrypts and parses an opaque capability without checking its expiry.
	Open(ctx context.Context, opaque string) (*capabilityDomain.Capability, error)
}

// kmsCodec implements Codec with a single fixed KMS key.
type kmsCodec struct {
	keeper cryptoDomain.KMSKeeper
	now    func() time.Time
}

// NewCodec creates a Codec sealing with keeper.
func NewCodec(keeper cryptoDomain.KMSKeeper) Codec {
	return &kmsCodec{
		keeper: keeper,
		now:    time.Now,
	}
}

// Issue validates its input, seals the JSON payload and encodes it for use in a URL.
func (k *kmsCodec) Issue(ctx context.Context, accessToken, fileID string, ttl time.Duration) (string, error) {
	switch {
	case strings.TrimSpace(accessToken) == "":
		return "", fmt.Errorf("%w: empty access token", capabilityDomain.ErrInvalidCapabilityInput)
	case strings.TrimSpace(fileID) == "":
		return "", fmt.Errorf("%w: empty file id", capabilityDomain.ErrInvalidCapabilityInput)
	case ttl <= 0:
		return "", fmt.Errorf("%w: ttl must be positive", capabilityDomain.ErrInvalidCapabilityInput)
	}

	expiry := k.now().Add(ttl).UnixMilli()
	plaintext, err := json.Marshal(payload{
		AccessToken: accessToken,
		FileID:      fileID,
		Expiry:      &expiry,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", capabilityDomain.ErrEncryption, err)
	}
	defer cryptoDomain.Zero(plaintext)

	ciphertext, err := k.keeper.Encrypt(ctx, plaintext)
	if err != nil {
		return "", fmt.Errorf("%w: %w", capabilityDomain.ErrEncryption, err)
	}

	return encoding.EncodeToString(ciphertext), nil
}

// Redeem opens the capability and enforces expiry with no clock skew allowance.
func (k *kmsCodec) Redeem(ctx context.Context, opaque string) (*capabilityDomain.Capability, error) {
	capability, err := k.Open(ctx, opaque)
	if err != nil {
		return nil, err
	}

	if capability.Expired(k.now()) {
		return nil, fmt.Errorf("%w: expired at %s", capabilityDomain.ErrCapabilityExpired,
			capability.ExpiresAt.UTC().Format(time.RFC3339Nano))
	}
	return capability, nil
}

// Open decodes, decrypts and parses the payload.
func (k *kmsCodec) Open(ctx context.Context, opaque string) (*capabilityDomain.Capability, error) {
	ciphertext, err := encoding.DecodeString(opaque)
	if err != nil || len(ciphertext) == 0 {
		return nil, fmt.Errorf("%w: invalid encoding", capabilityDomain.ErrDecryption)
	}

	plaintext, err := k.keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", capabilityDomain.ErrDecryption, err)
	}
	defer cryptoDomain.Zero(plaintext)

	var p payload
	if err := json.Unmarshal(plaintext, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", capabilityDomain.ErrPayloadMalformed, err)
	}

	switch {
	case p.AccessToken == "":
		return nil, fmt.Errorf("%w: missing accessToken", capabilityDomain.ErrPayloadMalformed)
	case p.FileID == "":
		return nil, fmt.Errorf("%w: missing fileId", capabilityDomain.ErrPayloadMalformed)
	case p.Expiry == nil:
		return nil, fmt.Errorf("%w: missing expiry", capabilityDomain.ErrPayloadMalformed)
	}

	return &capabilityDomain.Capability{
		AccessToken: p.AccessToken,
		FileID:      p.FileID,
		ExpiresAt:   time.UnixMilli(*p.Expiry),
	}, nil
}
