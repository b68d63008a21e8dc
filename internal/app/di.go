// Package app provides the dependency injection container for assembling
// application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	clientsRepository "github.com/mvidal/ordervault/internal/clients/repository"
	"github.com/mvidal/ordervault/internal/config"
	cryptoDomain "github.com/mvidal/ordervault/internal/crypto/domain"
	cryptoService "github.com/mvidal/ordervault/internal/crypto/service"
	"github.com/mvidal/ordervault/internal/database"
	"github.com/mvidal/ordervault/internal/metrics"
	ordersRepository "github.com/mvidal/ordervault/internal/orders/repository"
	ordersUsecase "github.com/mvidal/ordervault/internal/orders/usecase"
	productsRepository "github.com/mvidal/ordervault/internal/products/repository"
)

// Container holds all application dependencies and provides methods to access
// them. It follows the lazy initialization pattern - components are created on
// first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger *slog.Logger
	db     *sql.DB

	// Managers
	txManager database.TxManager

	// Crypto
	keyStore    *cryptoService.KeyStore
	aeadManager cryptoService.AEADManager
	cipher      cryptoService.Hybrid

	// Repositories
	clientRepo  ordersUsecase.ClientRepository
	productRepo productsRepository.Repository
	orderRepo   ordersUsecase.OrderRepository

	// Use Cases
	orderUseCase ordersUsecase.OrderUseCase

	// Observability
	metricsProvider *metrics.Provider
	metricsListener *metrics.Listener

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	txManagerInit       sync.Once
	keyStoreInit        sync.Once
	aeadManagerInit     sync.Once
	cipherInit          sync.Once
	clientRepoInit      sync.Once
	productRepoInit     sync.Once
	orderRepoInit       sync.Once
	orderUseCaseInit    sync.Once
	metricsProviderInit sync.Once
	metricsListenerInit sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection, creating and configuring it on first access.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := c.initDB()
		if err != nil {
			c.initErrors["db"] = err
			return
		}
		c.db = db
	})
	if err, exists := c.initErrors["db"]; exists {
		return nil, err
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["txManager"] = fmt.Errorf("failed to get database for tx manager: %w", err)
			return
		}
		c.txManager = database.NewTxManager(db)
	})
	if err, exists := c.initErrors["txManager"]; exists {
		return nil, err
	}
	return c.txManager, nil
}

// KeyStore returns the lazily loaded RSA keypair provider.
func (c *Container) KeyStore() *cryptoService.KeyStore {
	c.keyStoreInit.Do(func() {
		c.keyStore = cryptoService.NewKeyStore(
			c.config.RSAPublicKeyPath,
			c.config.RSAPrivateKeyPath,
		)
	})
	return c.keyStore
}

// AEADManager returns the AEAD cipher factory.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager()
	})
	return c.aeadManager
}

// HybridCipher returns the hybrid payload cipher. When the deterministic key
// override is enabled by configuration, the cipher uses the operator-supplied
// key instead of a fresh random key per call.
func (c *Container) HybridCipher() (cryptoService.Hybrid, error) {
	c.cipherInit.Do(func() {
		algorithm, err := cryptoDomain.ParseAlgorithm(c.config.CryptoAlgorithm)
		if err != nil {
			c.initErrors["cipher"] = fmt.Errorf("failed to parse crypto algorithm: %w", err)
			return
		}

		if c.config.CryptoFixedKeyEnabled {
			c.Logger().Warn("deterministic crypto key override is enabled; do not use in production")
			c.cipher = cryptoService.NewDeterministicHybridCipher(
				c.KeyStore(), c.AEADManager(), algorithm, []byte(c.config.CryptoFixedKey),
			)
			return
		}

		c.cipher = cryptoService.NewHybridCipher(c.KeyStore(), c.AEADManager(), algorithm)
	})
	if err, exists := c.initErrors["cipher"]; exists {
		return nil, err
	}
	return c.cipher, nil
}

// ClientRepository returns the client repository for the configured driver.
func (c *Container) ClientRepository() (ordersUsecase.ClientRepository, error) {
	c.clientRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["clientRepo"] = fmt.Errorf("failed to get database for client repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.clientRepo = clientsRepository.NewMySQLClientRepository(db)
		case "postgres":
			c.clientRepo = clientsRepository.NewPostgreSQLClientRepository(db)
		default:
			c.initErrors["clientRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["clientRepo"]; exists {
		return nil, err
	}
	return c.clientRepo, nil
}

// ProductRepository returns the product repository for the configured driver.
// It doubles as the inventory ledger used during order creation.
func (c *Container) ProductRepository() (productsRepository.Repository, error) {
	c.productRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["productRepo"] = fmt.Errorf("failed to get database for product repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.productRepo = productsRepository.NewMySQLProductRepository(db)
		case "postgres":
			c.productRepo = productsRepository.NewPostgreSQLProductRepository(db)
		default:
			c.initErrors["productRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["productRepo"]; exists {
		return nil, err
	}
	return c.productRepo, nil
}

// OrderRepository returns the order repository for the configured driver.
func (c *Container) OrderRepository() (ordersUsecase.OrderRepository, error) {
	c.orderRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["orderRepo"] = fmt.Errorf("failed to get database for order repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.orderRepo = ordersRepository.NewMySQLOrderRepository(db)
		case "postgres":
			c.orderRepo = ordersRepository.NewPostgreSQLOrderRepository(db)
		default:
			c.initErrors["orderRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["orderRepo"]; exists {
		return nil, err
	}
	return c.orderRepo, nil
}

// OrderUseCase returns the order use case with all its dependencies, decorated
// with metrics when metrics are enabled.
func (c *Container) OrderUseCase() (ordersUsecase.OrderUseCase, error) {
	c.orderUseCaseInit.Do(func() {
		useCase, err := c.initOrderUseCase()
		if err != nil {
			c.initErrors["orderUseCase"] = err
			return
		}
		c.orderUseCase = useCase
	})
	if err, exists := c.initErrors["orderUseCase"]; exists {
		return nil, err
	}
	return c.orderUseCase, nil
}

// MetricsProvider returns the metrics provider instance.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = fmt.Errorf("failed to create metrics provider: %w", err)
			return
		}
		c.metricsProvider = provider
	})
	if err, exists := c.initErrors["metricsProvider"]; exists {
		return nil, err
	}
	return c.metricsProvider, nil
}

// MetricsListener returns the HTTP listener serving the /metrics endpoint.
func (c *Container) MetricsListener() (*metrics.Listener, error) {
	c.metricsListenerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsListener"] = err
			return
		}
		c.metricsListener = metrics.NewListener(
			provider, c.config.MetricsHost, c.config.MetricsPort, c.Logger(),
		)
	})
	if err, exists := c.initErrors["metricsListener"]; exists {
		return nil, err
	}
	return c.metricsListener, nil
}

// Shutdown performs cleanup of all initialized resources.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.metricsListener != nil {
		if err := c.metricsListener.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics listener shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initOrderUseCase wires the order use case with all of its dependencies.
func (c *Container) initOrderUseCase() (ordersUsecase.OrderUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for order use case: %w", err)
	}

	clientRepo, err := c.ClientRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get client repository for order use case: %w", err)
	}

	productRepo, err := c.ProductRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get product repository for order use case: %w", err)
	}

	orderRepo, err := c.OrderRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get order repository for order use case: %w", err)
	}

	cipher, err := c.HybridCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get hybrid cipher for order use case: %w", err)
	}

	useCase := ordersUsecase.NewOrderUseCase(txManager, clientRepo, orderRepo, productRepo, cipher)

	if !c.config.MetricsEnabled {
		return ordersUsecase.NewOrderUseCaseWithMetrics(useCase, metrics.NewNoOpBusinessMetrics()), nil
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	return ordersUsecase.NewOrderUseCaseWithMetrics(useCase, businessMetrics), nil
}
