package cmd

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"github.com/datastax/page-data-blocks/auth"
	"github.com/datastax/page-data-blocks/config"
	"github.com/datastax/page-data-blocks/endpoint"
	"github.com/datastax/page-data-blocks/graphql"
	"github.com/datastax/page-data-blocks/log"
	"github.com/datastax/page-data-blocks/properties"
	"github.com/datastax/page-data-blocks/rest"
	"github.com/datastax/page-data-blocks/types"
	"github.com/julienschmidt/httprouter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	log2 "log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

const defaultGraphQLPath = "/graphql"
const defaultRESTPath = "/rest"
const defaultGraphQLPlaygroundPath = "/graphql-playground"
const shutdownTimeout = 10 * time.Second

// Environment variables prefixed with "PAGE_BLOCKS_" can override settings e.g. "PAGE_BLOCKS_HOST_TYPE"
const envVarPrefix = "page_blocks"

var cfgFile string
var logger log.Logger

var serverCmd = &cobra.Command{
	Use:   os.Args[0] + " --host-type [memory|cassandra|sqlite] [--start-graphql|--start-rest] [OPTIONS]",
	Short: "Page block data endpoints over a table host",
	Args: func(cmd *cobra.Command, args []string) error {
		switch endpoint.HostType(viper.GetString("host-type")) {
		case endpoint.HostMemory:
			if viper.GetString("data-file") == "" {
				return errors.New("data-file is required for the memory host")
			}
		case endpoint.HostCassandra:
			if len(getStringSlice("hosts")) == 0 {
				return errors.New("hosts are required for the cassandra host")
			}
			if viper.GetString("keyspace") == "" {
				return errors.New("keyspace is required for the cassandra host")
			}
		case endpoint.HostSQLite:
			if viper.GetString("sqlite-path") == "" {
				return errors.New("sqlite-path is required for the sqlite host")
			}
		default:
			return fmt.Errorf("unsupported host type '%s'", viper.GetString("host-type"))
		}

		startGraphQL := viper.GetBool("start-graphql")
		startREST := viper.GetBool("start-rest")
		if !startGraphQL && !startREST {
			return errors.New("at least one endpoint type should be started")
		}
		if startGraphQL && startREST && viper.GetString("graphql-path") == viper.GetString("rest-path") {
			return errors.New("graphql and rest paths can not be the same")
		}

		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		endpoint := createEndpoint()

		router := createRouter()
		endpointNames := make([]string, 0, 2)
		if viper.GetBool("start-graphql") {
			addGraphQLRoutes(router, endpoint)
			endpointNames = append(endpointNames, "GraphQL")
		}
		if viper.GetBool("start-rest") {
			addRESTRoutes(router, endpoint)
			endpointNames = append(endpointNames, "REST")
		}

		listenAndServe(router, viper.GetInt("port"), strings.Join(endpointNames, "/"), endpoint)
	},
}

// Execute start GraphQL/REST endpoints
func Execute() {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log2.Fatalf("unable to initialize logger: %v", err)
	}

	logger = log.NewZapLogger(zapLogger)

	flags := serverCmd.PersistentFlags()

	// General endpoint flags
	flags.StringVarP(&cfgFile, "config", "c", "", "config file")
	flags.String("host-type", string(endpoint.HostMemory), "table host serving the data. options: memory,cassandra,sqlite")
	flags.String("data-file", "", "YAML or JSON snapshot served by the memory host")
	flags.StringSliceP("hosts", "t", nil, "hosts for connecting to the database")
	flags.StringP("username", "u", "", "connect with database username")
	flags.StringP("password", "p", "", "database user's password")
	flags.Duration("db-timeout", 0, "timeout of database requests, the driver default when zero")
	flags.String("keyspace", "", "keyspace whose tables are served by the cassandra host")
	flags.String("sqlite-path", "", "database file served by the sqlite host")
	flags.Int("port", 8080, "endpoint port")
	flags.Duration("save-delay", endpoint.DefaultSaveDelay, "quiet period after the last layout save before it is written")
	flags.String("layouts-table", "", "table storing the layout, guessed when empty")
	flags.String("name-field", "", "name field of the layouts table, guessed when empty")
	flags.String("doc-field", "", "document field of the layouts table, guessed when empty")
	flags.String("assets-field", "", "assets field of the layouts table, guessed when empty")
	flags.StringSlice("permissions", []string{"ReadRecords"}, "permissions granted on the host tables. options: ReadRecords,UpdateRecords")
	flags.String("role-header", auth.DefaultHeader, "request header holding the user or role queries run as")
	flags.Bool("request-logging", false, "enable request logging")
	flags.String("access-control-allow-origin", "", "Access-Control-Allow-Origin header value")

	// GraphQL specific flags
	flags.Bool("start-graphql", true, "start the GraphQL endpoint")
	flags.String("graphql-path", defaultGraphQLPath, "GraphQL endpoint path")
	flags.Bool("graphql-playground", true, "expose a GraphQL playground route")
	flags.String("graphql-playground-path", defaultGraphQLPlaygroundPath, "path for the GraphQL playground static file")

	// REST specific flags
	flags.Bool("start-rest", false, "start the REST endpoint")
	flags.String("rest-path", defaultRESTPath, "REST endpoint path")

	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Name != "config" {
			viper.BindPFlag(flag.Name, flags.Lookup(flag.Name))
		}
	})

	cobra.OnInitialize(initialize)

	viper.SetEnvPrefix(envVarPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := serverCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func createEndpoint() *endpoint.DataEndpoint {
	perms, err := config.Perms(getStringSlice("permissions")...)
	if err != nil {
		logger.Fatal("invalid permissions", "permissions", getStringSlice("permissions"), "error", err)
	}

	saveDelay := viper.GetDuration("save-delay")
	if saveDelay <= 0 {
		saveDelay = endpoint.DefaultSaveDelay
	}

	cfg := endpoint.NewEndpointConfigWithLogger(logger).
		WithHostType(endpoint.HostType(viper.GetString("host-type"))).
		WithDataFile(viper.GetString("data-file")).
		WithDbHosts(getStringSlice("hosts")...).
		WithDbUsername(viper.GetString("username")).
		WithDbPassword(viper.GetString("password")).
		WithDbTimeout(viper.GetDuration("db-timeout")).
		WithKeyspace(viper.GetString("keyspace")).
		WithSQLitePath(viper.GetString("sqlite-path")).
		WithSaveDelay(saveDelay).
		WithPermissions(perms).
		WithOverrides(properties.Overrides{
			LayoutsTable: viper.GetString("layouts-table"),
			NameField:    viper.GetString("name-field"),
			DocField:     viper.GetString("doc-field"),
			AssetsField:  viper.GetString("assets-field"),
		})

	endpoint, err := cfg.NewEndpoint()
	if err != nil {
		logger.Fatal("unable create new endpoint",
			"error", err)
	}

	return endpoint
}

func addGraphQLRoutes(router *httprouter.Router, endpoint *endpoint.DataEndpoint) {
	rootPath := viper.GetString("graphql-path")
	routes, err := endpoint.RoutesGraphQL(rootPath)
	if err != nil {
		logger.Fatal("unable to generate graphql routes",
			"error", err)
	}

	if viper.GetBool("graphql-playground") {
		playgroundPath := viper.GetString("graphql-playground-path")
		hostAndPort := fmt.Sprintf("http://localhost:%d", viper.GetInt("port"))
		logger.Info("get started by visiting the GraphQL playground",
			"url", fmt.Sprintf("%s%s", hostAndPort, playgroundPath))
		routes = append(routes, graphql.PlaygroundRoute(playgroundPath, hostAndPort+rootPath))
	}

	addRoutes(router, routes)
}

func addRESTRoutes(router *httprouter.Router, endpoint *endpoint.DataEndpoint) {
	prefix := viper.GetString("rest-path")
	routes := endpoint.RoutesREST(prefix)
	addRoutes(router, routes)
	router.GET(prefix, rest.Index(routes))
}

func addRoutes(router *httprouter.Router, routes []types.Route) {
	header := viper.GetString("role-header")
	for _, route := range routes {
		router.Handler(route.Method, route.Pattern, auth.NewHeaderHandler(header, route.Handler))
	}
}

func maybeAddRequestLogging(handler http.Handler) http.Handler {
	if viper.GetBool("request-logging") {
		handler = log.NewLoggingHandler(handler, logger)
	}
	return handler
}

func maybeAddCORS(handler http.Handler) http.Handler {
	if value := viper.GetString("access-control-allow-origin"); value != "" {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", value)
			handler.ServeHTTP(w, r)
		})
	}
	return handler
}

func initialize() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err == nil {
			logger.Info("using config file",
				"file", viper.ConfigFileUsed())
		}
	}
}

func createRouter() *httprouter.Router {
	router := httprouter.New()
	if value := viper.GetString("access-control-allow-origin"); value != "" {
		router.GlobalOPTIONS = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Access-Control-Request-Method") != "" {
				header := w.Header()
				header.Set("Access-Control-Allow-Method", r.Header.Get("Access-Control-Request-Method"))
				header.Set("Access-Control-Allow-Headers", r.Header.Get("Access-Control-Request-Headers"))
				header.Set("Access-Control-Allow-Origin", value)
			}

			w.WriteHeader(http.StatusNoContent)
		})
	}
	return router
}

// listenAndServe serves until SIGINT or SIGTERM, then writes any pending layout save before exiting
func listenAndServe(handler http.Handler, port int, endpointNames string, endpoint *endpoint.DataEndpoint) {
	logger.Info("server listening",
		"port", port,
		"type", endpointNames)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: maybeAddCORS(maybeAddRequestLogging(handler)),
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		logger.Fatal("unable to start server",
			"port", port,
			"error", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("unable to shut down server", "error", err)
	}
	if err := endpoint.Close(ctx); err != nil {
		logger.Error("unable to close endpoint", "error", err)
	}
}

func getStringSlice(key string) []string {
	value := viper.GetStringSlice(key)
	slice, err := toStringSlice(value)
	if err != nil {
		logger.Fatal("invalid string slice value for setting",
			"error", err,
			"key", key,
			"value", value)
	}
	return slice
}

func toStringSlice(slice []string) ([]string, error) {
	result := make([]string, 0)
	for _, entry := range slice {
		stringReader := strings.NewReader(entry)
		csvReader := csv.NewReader(stringReader)
		split, err := csvReader.Read()
		if err != nil {
			return nil, err
		}
		for _, part := range split {
			if part != "" { // Don't add empty values
				result = append(result, part)
			}
		}
	}
	return result, nil
}
