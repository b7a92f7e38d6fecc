package graphql

import (
	"context"
	"encoding/json"
	"github.com/datastax/page-data-blocks/config"
	"github.com/datastax/page-data-blocks/internal/testutil"
	"github.com/datastax/page-data-blocks/pages"
	"github.com/datastax/page-data-blocks/properties"
	"github.com/datastax/page-data-blocks/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func newRoutes(t *testing.T) map[string]types.Route {
	service := pages.NewService(
		testutil.SampleBase(config.ReadRecords), config.NewConfigMock().Default(), properties.Overrides{})
	t.Cleanup(func() { _ = service.Close(context.Background()) })

	routes, err := NewRouteGenerator(service, testutil.TestLogger()).Routes("/graphql")
	require.NoError(t, err)
	byMethod := make(map[string]types.Route, len(routes))
	for _, route := range routes {
		assert.Equal(t, "/graphql", route.Pattern)
		byMethod[route.Method] = route
	}
	return byMethod
}

func TestRoutesGet(t *testing.T) {
	routes := newRoutes(t)

	query := url.Values{}
	query.Set("query", `query Count($table: String!) { summarize(tableName: $table) { value } }`)
	query.Set("variables", `{"table": "Deals"}`)
	r := httptest.NewRequest(http.MethodGet, "/graphql?"+query.Encode(), nil)
	w := httptest.NewRecorder()
	routes[http.MethodGet].Handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data": {"summarize": {"value": "3"}}}`, w.Body.String())

	query.Set("variables", "{")
	r = httptest.NewRequest(http.MethodGet, "/graphql?"+query.Encode(), nil)
	w = httptest.NewRecorder()
	routes[http.MethodGet].Handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoutesPost(t *testing.T) {
	routes := newRoutes(t)

	body, err := json.Marshal(RequestBody{Query: `{ tables { name } }`})
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body)))
	w := httptest.NewRecorder()
	routes[http.MethodPost].Handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data": {"tables": [{"name": "Layouts"}, {"name": "Deals"}]}}`, w.Body.String())

	r = httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader("not json"))
	w = httptest.NewRecorder()
	routes[http.MethodPost].Handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaygroundRoute(t *testing.T) {
	route := PlaygroundRoute("/graphql-playground", "/graphql")
	w := httptest.NewRecorder()
	route.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graphql-playground", nil))

	assert.Equal(t, http.MethodGet, route.Method)
	assert.Contains(t, w.Body.String(), "endpoint: '/graphql'")
}
