// Package domain defines the envelope encryption abstractions used to seal capabilities.
//
// Key material never enters the process: encryption and decryption are delegated to an
// external key management service addressed by a fixed key URI.
package domain

import "context"

// KMSKeeper encrypts and decrypts small payloads with a key held by a KMS.
// *secrets.Keeper from gocloud.dev/secrets satisfies this interface.
type KMSKeeper interface {
	// Encrypt seals plaintext. The ciphertext is authenticated and opaque.
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)

	// Decrypt opens ciphertext produced by Encrypt with the same key.
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)

	// Close releases resources held by the keeper.
	Close() error
}
