package endpoint

import (
	"context"
	"fmt"
	"github.com/datastax/page-data-blocks/config"
	"github.com/datastax/page-data-blocks/db"
	"github.com/datastax/page-data-blocks/graphql"
	"github.com/datastax/page-data-blocks/host"
	"github.com/datastax/page-data-blocks/host/memory"
	"github.com/datastax/page-data-blocks/log"
	"github.com/datastax/page-data-blocks/pages"
	"github.com/datastax/page-data-blocks/properties"
	"github.com/datastax/page-data-blocks/rest"
	"github.com/datastax/page-data-blocks/sqlite"
	"github.com/datastax/page-data-blocks/types"
	"go.uber.org/zap"
	"time"
)

const DefaultSaveDelay = 1 * time.Second

type HostType string

const (
	HostMemory    HostType = "memory"
	HostCassandra HostType = "cassandra"
	HostSQLite    HostType = "sqlite"
)

type DataEndpointConfig struct {
	hostType    HostType
	dataFile    string
	dbHosts     []string
	dbUsername  string
	dbPassword  string
	dbTimeout   time.Duration
	keyspace    string
	sqlitePath  string
	saveDelay   time.Duration
	permissions config.Permissions
	overrides   properties.Overrides
	naming      config.NamingConvention
	logger      log.Logger
}

func (cfg DataEndpointConfig) SaveDelay() time.Duration {
	return cfg.saveDelay
}

func (cfg DataEndpointConfig) Permissions() config.Permissions {
	return cfg.permissions
}

func (cfg DataEndpointConfig) Naming() config.NamingConvention {
	return cfg.naming
}

func (cfg DataEndpointConfig) Logger() log.Logger {
	return cfg.logger
}

func (cfg *DataEndpointConfig) WithHostType(hostType HostType) *DataEndpointConfig {
	cfg.hostType = hostType
	return cfg
}

// WithDataFile sets the YAML snapshot served by the memory host
func (cfg *DataEndpointConfig) WithDataFile(dataFile string) *DataEndpointConfig {
	cfg.dataFile = dataFile
	return cfg
}

func (cfg *DataEndpointConfig) WithDbHosts(hosts ...string) *DataEndpointConfig {
	cfg.dbHosts = hosts
	return cfg
}

func (cfg *DataEndpointConfig) WithDbUsername(dbUsername string) *DataEndpointConfig {
	cfg.dbUsername = dbUsername
	return cfg
}

func (cfg *DataEndpointConfig) WithDbPassword(dbPassword string) *DataEndpointConfig {
	cfg.dbPassword = dbPassword
	return cfg
}

func (cfg *DataEndpointConfig) WithDbTimeout(dbTimeout time.Duration) *DataEndpointConfig {
	cfg.dbTimeout = dbTimeout
	return cfg
}

func (cfg *DataEndpointConfig) WithKeyspace(keyspace string) *DataEndpointConfig {
	cfg.keyspace = keyspace
	return cfg
}

func (cfg *DataEndpointConfig) WithSQLitePath(sqlitePath string) *DataEndpointConfig {
	cfg.sqlitePath = sqlitePath
	return cfg
}

func (cfg *DataEndpointConfig) WithSaveDelay(saveDelay time.Duration) *DataEndpointConfig {
	cfg.saveDelay = saveDelay
	return cfg
}

func (cfg *DataEndpointConfig) WithPermissions(permissions config.Permissions) *DataEndpointConfig {
	cfg.permissions = permissions
	return cfg
}

// WithOverrides sets the layouts table and fields instead of guessing them
func (cfg *DataEndpointConfig) WithOverrides(overrides properties.Overrides) *DataEndpointConfig {
	cfg.overrides = overrides
	return cfg
}

func (cfg *DataEndpointConfig) WithNaming(naming config.NamingConvention) *DataEndpointConfig {
	cfg.naming = naming
	return cfg
}

// NewEndpoint opens the configured host and builds the page service over it
func (cfg DataEndpointConfig) NewEndpoint() (*DataEndpoint, error) {
	var base host.Base
	var closer func() error

	switch cfg.hostType {
	case HostMemory, "":
		if cfg.dataFile == "" {
			return nil, fmt.Errorf("a data file is required for the %s host", HostMemory)
		}
		memoryBase, err := memory.Load(cfg.dataFile, cfg.permissions)
		if err != nil {
			return nil, err
		}
		base = memoryBase
	case HostCassandra:
		if cfg.keyspace == "" {
			return nil, fmt.Errorf("a keyspace is required for the %s host", HostCassandra)
		}
		dbClient, err := db.NewDb(db.ClusterConfig{
			Hosts:    cfg.dbHosts,
			Username: cfg.dbUsername,
			Password: cfg.dbPassword,
			Timeout:  cfg.dbTimeout,
		})
		if err != nil {
			return nil, err
		}
		dbBase, err := db.NewBase(dbClient, cfg.keyspace, cfg.permissions)
		if err != nil {
			dbClient.Close()
			return nil, err
		}
		base = dbBase
		closer = func() error {
			dbClient.Close()
			return nil
		}
	case HostSQLite:
		sqliteBase, err := sqlite.Open(cfg.sqlitePath, cfg.permissions)
		if err != nil {
			return nil, err
		}
		base = sqliteBase
		closer = sqliteBase.Close
	default:
		return nil, fmt.Errorf("unsupported host type '%s'", cfg.hostType)
	}

	cfg.logger.Info("host opened", "type", cfg.hostType, "tables", len(base.Tables()))
	endpoint := cfg.newEndpointWithBase(base)
	endpoint.closer = closer
	return endpoint, nil
}

func (cfg DataEndpointConfig) newEndpointWithBase(base host.Base) *DataEndpoint {
	service := pages.NewService(base, cfg, cfg.overrides)
	return &DataEndpoint{
		service:         service,
		graphQLRouteGen: graphql.NewRouteGenerator(service, cfg.logger),
		restRouteGen:    rest.NewRouteGenerator(service, cfg.logger),
		logger:          cfg.logger,
	}
}

type DataEndpoint struct {
	service         *pages.Service
	graphQLRouteGen *graphql.RouteGenerator
	restRouteGen    *rest.RouteGenerator
	logger          log.Logger
	closer          func() error
}

func NewEndpointConfig() (*DataEndpointConfig, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return NewEndpointConfigWithLogger(log.NewZapLogger(logger)), nil
}

func NewEndpointConfigWithLogger(logger log.Logger) *DataEndpointConfig {
	return &DataEndpointConfig{
		hostType:    HostMemory,
		saveDelay:   DefaultSaveDelay,
		permissions: config.DefaultPermissions,
		naming:      config.NewDefaultNaming(),
		logger:      logger,
	}
}

func (e *DataEndpoint) Service() *pages.Service {
	return e.service
}

func (e *DataEndpoint) RoutesGraphQL(pattern string) ([]types.Route, error) {
	return e.graphQLRouteGen.Routes(pattern)
}

func (e *DataEndpoint) RoutesREST(prefix string) []types.Route {
	return e.restRouteGen.Routes(prefix)
}

// Close writes any pending layout save and releases the host
func (e *DataEndpoint) Close(ctx context.Context) error {
	err := e.service.Close(ctx)
	if err != nil {
		e.logger.Error("unable to write pending layout", "error", err)
	}
	if e.closer != nil {
		if closeErr := e.closer(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}
