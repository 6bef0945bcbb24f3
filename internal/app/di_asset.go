package app

import (
	"fmt"

	assetHTTP "github.com/allisson/drive-proxy/internal/asset/http"
	assetService "github.com/allisson/drive-proxy/internal/asset/service"
	assetUseCase "github.com/allisson/drive-proxy/internal/asset/usecase"
	oauthHTTP "github.com/allisson/drive-proxy/internal/oauth/http"
)

// Relay returns the origin relay.
func (c *Container) Relay() assetService.Relay {
	c.relayInit.Do(func() {
		c.relay = c.initRelay()
	})
	return c.relay
}

// AssetUseCase returns the asset use case, instrumented when metrics are enabled.
func (c *Container) AssetUseCase() (assetUseCase.AssetUseCase, error) {
	var err error
	c.assetUseCaseInit.Do(func() {
		c.assetUseCase, err = c.initAssetUseCase()
		if err != nil {
			c.setInitError("assetUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("assetUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.assetUseCase, nil
}

// AssetHandler returns the HTTP handler for presigned URLs and asset streaming.
func (c *Container) AssetHandler() (*assetHTTP.AssetHandler, error) {
	var err error
	c.assetHandlerInit.Do(func() {
		c.assetHandler, err = c.initAssetHandler()
		if err != nil {
			c.setInitError("assetHandler", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("assetHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.assetHandler, nil
}

// RedirectHandler returns the HTTP handler for the OAuth authorization redirect.
func (c *Container) RedirectHandler() *oauthHTTP.RedirectHandler {
	c.redirectHandlerInit.Do(func() {
		c.redirectHandler = oauthHTTP.NewRedirectHandler(c.config.OAuthAuthorizeURL, c.Logger())
	})
	return c.redirectHandler
}

// initRelay creates the relay for the configured origin.
func (c *Container) initRelay() assetService.Relay {
	return assetService.NewRelay(assetService.RelayConfig{
		BaseURL:      c.config.OriginBaseURL,
		FetchTimeout: c.config.OriginFetchTimeout,
		Metrics:      c.metricsRecorder(),
	}, c.Logger())
}

// initAssetUseCase creates the asset use case with all its dependencies.
func (c *Container) initAssetUseCase() (assetUseCase.AssetUseCase, error) {
	capabilities, err := c.CapabilityUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get capability use case for asset use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for asset use case: %w", err)
	}

	useCase := assetUseCase.NewAssetUseCase(capabilities, c.Relay())
	if c.config.MetricsEnabled {
		useCase = assetUseCase.NewAssetUseCaseWithMetrics(useCase, businessMetrics)
	}
	return useCase, nil
}

// initAssetHandler creates the asset handler with all its dependencies.
func (c *Container) initAssetHandler() (*assetHTTP.AssetHandler, error) {
	capabilities, err := c.CapabilityUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get capability use case for asset handler: %w", err)
	}

	assets, err := c.AssetUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get asset use case for asset handler: %w", err)
	}

	return assetHTTP.NewAssetHandler(capabilities, assets, c.config.PublicBaseURL, c.Logger()), nil
}
