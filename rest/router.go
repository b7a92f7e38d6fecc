package rest

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/datastax/page-data-blocks/log"
	"github.com/datastax/page-data-blocks/pages"
	restEndpointV1 "github.com/datastax/page-data-blocks/rest/endpoint/v1"
	"github.com/datastax/page-data-blocks/types"
	"github.com/julienschmidt/httprouter"
)

// RouteGenerator creates the REST routes of a page service
type RouteGenerator struct {
	service *pages.Service
	logger  log.Logger
}

func NewRouteGenerator(service *pages.Service, logger log.Logger) *RouteGenerator {
	return &RouteGenerator{
		service: service,
		logger:  logger,
	}
}

func (g *RouteGenerator) Routes(prefix string) []types.Route {
	return restEndpointV1.Routes(prefix, g.service, g.logger)
}

// ApiRouter registers routes on a new router, along with an index of the API paths at indexPath
func ApiRouter(indexPath string, routes []types.Route) *httprouter.Router {
	router := httprouter.New()
	for _, route := range routes {
		router.Handler(route.Method, route.Pattern, route.Handler)
	}
	router.GET(indexPath, Index(routes))
	return router
}

// Index lists the method and pattern of every route as plain text
func Index(routes []types.Route) httprouter.Handle {
	lines := make([]string, 0, len(routes))
	for _, route := range routes {
		lines = append(lines, fmt.Sprintf("%-6s %s", route.Method, route.Pattern))
	}
	sort.Strings(lines)

	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=UTF-8")
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return
			}
		}
	}
}
