// Package rest serves single requests against generated REST routes inside gomega specs.
package rest

import (
	"encoding/json"
	"fmt"
	"github.com/datastax/page-data-blocks/auth"
	"github.com/datastax/page-data-blocks/rest/models"
	"github.com/datastax/page-data-blocks/types"
	"github.com/julienschmidt/httprouter"
	. "github.com/onsi/gomega"
	"net/http"
	"net/http/httptest"
	"path"
	"regexp"
	"strings"
)

// Prefix is the path the routes under test are generated for.
const Prefix = "/rest"

var routeParam = regexp.MustCompile(`:\w+`)

func ExecuteGet(routes []types.Route, routeFormat string, responsePtr interface{}, values ...interface{}) int {
	return serve(http.MethodGet, routes, routeFormat, "", responsePtr, values...)
}

func ExecutePost(routes []types.Route, routeFormat, body string, responsePtr interface{}, values ...interface{}) int {
	return serve(http.MethodPost, routes, routeFormat, body, responsePtr, values...)
}

func ExecutePut(routes []types.Route, routeFormat, body string, responsePtr interface{}, values ...interface{}) int {
	return serve(http.MethodPut, routes, routeFormat, body, responsePtr, values...)
}

// serve routes a single request through an httprouter so path parameters are populated, and
// decodes a JSON answer into responsePtr. Error answers are only decoded into a ModelError.
func serve(
	method string,
	routes []types.Route,
	routeFormat string,
	body string,
	responsePtr interface{},
	values ...interface{},
) int {
	route := findRoute(routes, method, routeFormat)
	router := httprouter.New()
	router.Handler(method, route.Pattern, auth.NewHeaderHandler(auth.DefaultHeader, route.Handler))

	r := httptest.NewRequest(method, path.Join(Prefix, fmt.Sprintf(routeFormat, values...)), strings.NewReader(body))
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if responsePtr == nil || w.Code == http.StatusNoContent {
		return w.Code
	}
	if _, isError := responsePtr.(*models.ModelError); w.Code >= http.StatusBadRequest && !isError {
		panic(fmt.Sprintf("unexpected http status %d: %s", w.Code, w.Body))
	}
	Expect(json.Unmarshal(w.Body.Bytes(), responsePtr)).To(Succeed(),
		fmt.Sprintf("unable to decode response with status %d: %s", w.Code, w.Body))
	return w.Code
}

// findRoute matches routeFormat against the route patterns, each %s standing for one parameter.
func findRoute(routes []types.Route, method, routeFormat string) types.Route {
	for _, route := range routes {
		if route.Method != method {
			continue
		}
		pattern := strings.TrimPrefix(route.Pattern, Prefix)
		if routeParam.ReplaceAllString(pattern, "%s") == routeFormat {
			return route
		}
	}
	panic(fmt.Sprintf("no %s route for %s", method, routeFormat))
}
