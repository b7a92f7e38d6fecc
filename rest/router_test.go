package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/datastax/page-data-blocks/config"
	"github.com/datastax/page-data-blocks/internal/testutil"
	"github.com/datastax/page-data-blocks/pages"
	"github.com/datastax/page-data-blocks/properties"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApiRouter(t *testing.T) {
	service := pages.NewService(testutil.SampleBase(config.ReadRecords), config.NewConfigMock().Default(),
		properties.Overrides{})
	defer service.Close(context.Background())

	routes := NewRouteGenerator(service, testutil.TestLogger()).Routes("/rest")
	router := ApiRouter("/rest", routes)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rest", nil))
	require.Equal(t, http.StatusOK, w.Code)
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, len(routes))
	assert.Contains(t, w.Body.String(), "PUT    /rest/v1/layout")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rest/v1/tables", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Deals"`)
}
