package app

import (
	"context"
	"fmt"

	cryptoDomain "github.com/allisson/drive-proxy/internal/crypto/domain"
	cryptoService "github.com/allisson/drive-proxy/internal/crypto/service"
)

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = c.initKMSService()
	})
	return c.kmsService
}

// KMSKeeper returns the keeper for the configured key URI.
func (c *Container) KMSKeeper() (cryptoDomain.KMSKeeper, error) {
	var err error
	c.kmsKeeperInit.Do(func() {
		c.kmsKeeper, err = c.initKMSKeeper()
		if err != nil {
			c.setInitError("kmsKeeper", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("kmsKeeper"); storedErr != nil {
		return nil, storedErr
	}
	return c.kmsKeeper, nil
}

// KMSReadinessCheck reports whether the keeper can currently seal and open data.
func (c *Container) KMSReadinessCheck(ctx context.Context) error {
	keeper, err := c.KMSKeeper()
	if err != nil {
		return err
	}
	return c.KMSService().RoundTrip(ctx, keeper)
}

// initKMSService creates the KMS service for opening and probing keepers.
func (c *Container) initKMSService() cryptoService.KMSService {
	return cryptoService.NewKMSService()
}

// initKMSKeeper opens the keeper named by KMS_KEY_URI.
func (c *Container) initKMSKeeper() (cryptoDomain.KMSKeeper, error) {
	keeper, err := c.KMSService().OpenKeeper(c.ctx, c.config.KMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open kms keeper: %w", err)
	}
	return keeper, nil
}
