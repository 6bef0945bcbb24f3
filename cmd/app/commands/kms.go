package commands

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	"gocloud.dev/secrets/localsecrets"

	cryptoDomain "github.com/allisson/drive-proxy/internal/crypto/domain"
	cryptoService "github.com/allisson/drive-proxy/internal/crypto/service"
)

// RunCheckKMS opens the keeper at keyURI and seals and opens a throwaway value with it.
// Use it to confirm credentials and key permissions before starting the server.
func RunCheckKMS(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	keyURI string,
) error {
	keeper, err := kmsService.OpenKeeper(ctx, keyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Error("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	if err := kmsService.RoundTrip(ctx, keeper); err != nil {
		return fmt.Errorf("KMS check failed: %w", err)
	}

	logger.Info("KMS check succeeded")
	_, err = fmt.Fprintln(writer, "KMS keeper is reachable and can seal capabilities")
	return err
}

// RunCreateLocalKey generates a random key for the localsecrets driver and prints it
// as a KMS_KEY_URI. Intended for development; production deployments use a cloud KMS.
func RunCreateLocalKey(logger *slog.Logger, writer io.Writer) error {
	key, err := localsecrets.NewRandomKey()
	if err != nil {
		return fmt.Errorf("failed to generate local key: %w", err)
	}
	defer cryptoDomain.Zero(key[:])

	logger.Warn("generated a local key, do not use it in production")

	_, err = fmt.Fprintf(writer,
		"# Local development key. Use awskms://, gcpkms://, azurekeyvault:// or hashivault:// in production.\nKMS_KEY_URI=\"base64key://%s\"\n",
		base64.URLEncoding.EncodeToString(key[:]),
	)
	return err
}
