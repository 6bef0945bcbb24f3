package app

import (
	"fmt"

	capabilityService "github.com/allisson/drive-proxy/internal/capability/service"
	capabilityUseCase "github.com/allisson/drive-proxy/internal/capability/usecase"
)

// CapabilityCodec returns the codec sealing capabilities with the configured keeper.
func (c *Container) CapabilityCodec() (capabilityService.Codec, error) {
	var err error
	c.capabilityCodecInit.Do(func() {
		c.capabilityCodec, err = c.initCapabilityCodec()
		if err != nil {
			c.setInitError("capabilityCodec", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("capabilityCodec"); storedErr != nil {
		return nil, storedErr
	}
	return c.capabilityCodec, nil
}

// CapabilityUseCase returns the capability use case, instrumented when metrics are enabled.
func (c *Container) CapabilityUseCase() (capabilityUseCase.CapabilityUseCase, error) {
	var err error
	c.capabilityUseCaseInit.Do(func() {
		c.capabilityUseCase, err = c.initCapabilityUseCase()
		if err != nil {
			c.setInitError("capabilityUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("capabilityUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.capabilityUseCase, nil
}

// initCapabilityCodec creates the codec on top of the KMS keeper.
func (c *Container) initCapabilityCodec() (capabilityService.Codec, error) {
	keeper, err := c.KMSKeeper()
	if err != nil {
		return nil, fmt.Errorf("failed to get kms keeper for capability codec: %w", err)
	}
	return capabilityService.NewCodec(keeper), nil
}

// initCapabilityUseCase creates the capability use case with all its dependencies.
func (c *Container) initCapabilityUseCase() (capabilityUseCase.CapabilityUseCase, error) {
	codec, err := c.CapabilityCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get capability codec for capability use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for capability use case: %w", err)
	}

	useCase := capabilityUseCase.NewCapabilityUseCase(codec, c.config.CapabilityTTL)
	if c.config.MetricsEnabled {
		useCase = capabilityUseCase.NewCapabilityUseCaseWithMetrics(useCase, businessMetrics)
	}
	return useCase, nil
}
