package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	capabilityService "github.com/allisson/drive-proxy/internal/capability/service"
)

// RunInspectCapability opens a presigned URL payload and prints the file it grants
// and when it expires. The embedded access token is never printed. Both the bare
// payload and a full presigned URL are accepted.
func RunInspectCapability(
	ctx context.Context,
	codec capabilityService.Codec,
	logger *slog.Logger,
	writer io.Writer,
	input string,
	format string,
	now time.Time,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	payload, err := extractPayload(input)
	if err != nil {
		return err
	}

	capability, err := codec.Open(ctx, payload)
	if err != nil {
		return fmt.Errorf("failed to open capability: %w", err)
	}

	expired := capability.Expired(now)
	expiresAt := capability.ExpiresAt.UTC()
	logger.Info("capability inspected",
		slog.String("file_id", capability.FileID),
		slog.Bool("expired", expired),
	)

	if format == "json" {
		return writeJSON(writer, map[string]any{
			"file_id":    capability.FileID,
			"expires_at": expiresAt.Format(time.RFC3339Nano),
			"expired":    expired,
		})
	}

	status := "valid"
	if expired {
		status = "expired"
	}
	_, err = fmt.Fprintf(writer, "Capability %s\n  File ID:    %s\n  Expires at: %s\n",
		status, capability.FileID, expiresAt.Format(time.RFC3339Nano))
	return err
}

// extractPayload returns the payload query parameter of a presigned URL, or input
// itself when it is not a URL.
func extractPayload(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("payload is required")
	}
	if !strings.Contains(input, "://") {
		return input, nil
	}

	u, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("invalid presigned url: %w", err)
	}
	payload := u.Query().Get("payload")
	if payload == "" {
		return "", fmt.Errorf("presigned url has no payload parameter")
	}
	return payload, nil
}
