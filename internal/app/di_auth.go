package app

import (
	"fmt"

	authDomain "github.com/allisson/drive-proxy/internal/auth/domain"
	authService "github.com/allisson/drive-proxy/internal/auth/service"
	authUseCase "github.com/allisson/drive-proxy/internal/auth/usecase"
)

// KeyResolver returns the JWKS backed signing key resolver.
func (c *Container) KeyResolver() authService.KeyResolver {
	c.keyResolverInit.Do(func() {
		c.keyResolver = c.initKeyResolver()
	})
	return c.keyResolver
}

// TokenVerifier returns the app token verifier.
func (c *Container) TokenVerifier() authService.TokenVerifier {
	c.tokenVerifierInit.Do(func() {
		c.tokenVerifier = c.initTokenVerifier()
	})
	return c.tokenVerifier
}

// TokenUseCase returns the token use case, instrumented when metrics are enabled.
func (c *Container) TokenUseCase() (authUseCase.TokenUseCase, error) {
	var err error
	c.tokenUseCaseInit.Do(func() {
		c.tokenUseCase, err = c.initTokenUseCase()
		if err != nil {
			c.setInitError("tokenUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("tokenUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.tokenUseCase, nil
}

// initKeyResolver creates the key resolver from the JWKS configuration.
func (c *Container) initKeyResolver() authService.KeyResolver {
	return authService.NewKeyResolver(authService.KeyResolverConfig{
		URLTemplate:  c.config.JWKSURLTemplate,
		CacheTTL:     c.config.JWKSCacheTTL,
		FetchTimeout: c.config.JWKSFetchTimeout,
		Metrics:      c.metricsRecorder(),
	}, c.Logger())
}

// initTokenVerifier creates the token verifier with the configured allowlist.
func (c *Container) initTokenVerifier() authService.TokenVerifier {
	return authService.NewTokenVerifier(
		c.KeyResolver(),
		authDomain.NewAllowlist(c.config.AppIDAllowlist),
		c.Logger(),
	)
}

// initTokenUseCase creates the token use case with all its dependencies.
func (c *Container) initTokenUseCase() (authUseCase.TokenUseCase, error) {
	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
	}

	useCase := authUseCase.NewTokenUseCase(c.TokenVerifier())
	if c.config.MetricsEnabled {
		useCase = authUseCase.NewTokenUseCaseWithMetrics(useCase, businessMetrics)
	}
	return useCase, nil
}
