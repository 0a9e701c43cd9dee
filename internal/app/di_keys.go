package app

import (
	"fmt"

	keysDomain "github.com/allisson/keyvault/internal/keys/domain"
	keysHTTP "github.com/allisson/keyvault/internal/keys/http"
	keysRepository "github.com/allisson/keyvault/internal/keys/repository"
	keysService "github.com/allisson/keyvault/internal/keys/service"
	keysUseCase "github.com/allisson/keyvault/internal/keys/usecase"
)

// KeyRecordRepository returns the key record repository for the configured driver.
func (c *Container) KeyRecordRepository() (keysUseCase.KeyRecordRepository, error) {
	var err error
	c.keyRecordRepoInit.Do(func() {
		c.keyRecordRepo, err = c.initKeyRecordRepository()
		if err != nil {
			c.initErrors["keyRecordRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyRecordRepo"]; exists {
		return nil, storedErr
	}
	return c.keyRecordRepo, nil
}

// KeyServices initializes the cryptographic services shared by the key use case.
func (c *Container) KeyServices() error {
	var err error
	c.keyServicesInit.Do(func() {
		err = c.initKeyServices()
		if err != nil {
			c.initErrors["keyServices"] = err
		}
	})
	if err != nil {
		return err
	}
	if storedErr, exists := c.initErrors["keyServices"]; exists {
		return storedErr
	}
	return nil
}

// KeyUseCase returns the key use case decorated with business metrics.
func (c *Container) KeyUseCase() (keysUseCase.KeyUseCase, error) {
	var err error
	c.keyUseCaseInit.Do(func() {
		c.keyUseCase, err = c.initKeyUseCase()
		if err != nil {
			c.initErrors["keyUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyUseCase"]; exists {
		return nil, storedErr
	}
	return c.keyUseCase, nil
}

// KeyHandler returns the HTTP handler for key routes.
func (c *Container) KeyHandler() (*keysHTTP.KeyHandler, error) {
	var err error
	c.keyHandlerInit.Do(func() {
		var useCase keysUseCase.KeyUseCase
		useCase, err = c.KeyUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get key use case for key handler: %w", err)
			c.initErrors["keyHandler"] = err
			return
		}
		c.keyHandler = keysHTTP.NewKeyHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyHandler"]; exists {
		return nil, storedErr
	}
	return c.keyHandler, nil
}

func (c *Container) initKeyRecordRepository() (keysUseCase.KeyRecordRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for key record repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return keysRepository.NewMySQLKeyRecordRepository(db), nil
	case "postgres":
		return keysRepository.NewPostgreSQLKeyRecordRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initKeyServices() error {
	passwordVerifier, err := keysService.NewPasswordVerifier(c.config.PasswordHashPolicy)
	if err != nil {
		return fmt.Errorf("failed to create password verifier: %w", err)
	}

	c.keyGenerator = keysService.NewKeyPairGenerator()
	c.keyDeriver = keysService.NewScryptKeyDeriver()
	c.wrapperManager = keysService.NewWrapperManager()
	c.passwordVerifier = passwordVerifier
	c.workerPool = keysService.NewWorkerPool(c.config.KeygenMaxWorkers)
	return nil
}

func (c *Container) initKeyUseCase() (keysUseCase.KeyUseCase, error) {
	wrapAlgorithm, err := keysDomain.ParseWrapAlgorithm(c.config.KeyWrapAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("invalid key wrap algorithm: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for key use case: %w", err)
	}

	keyRepo, err := c.KeyRecordRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get key record repository for key use case: %w", err)
	}

	if err := c.KeyServices(); err != nil {
		return nil, err
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for key use case: %w", err)
	}

	useCase := keysUseCase.NewKeyUseCase(
		txManager,
		keyRepo,
		c.keyGenerator,
		c.keyDeriver,
		c.wrapperManager,
		c.passwordVerifier,
		c.workerPool,
		wrapAlgorithm,
	)

	return keysUseCase.NewKeyUseCaseWithMetrics(useCase, businessMetrics), nil
}
