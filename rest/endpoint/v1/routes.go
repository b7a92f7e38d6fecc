package endpoint

import (
	"fmt"
	"net/http"
	"path"

	"github.com/datastax/page-data-blocks/log"
	"github.com/datastax/page-data-blocks/pages"
	"github.com/datastax/page-data-blocks/types"
	"github.com/julienschmidt/httprouter"
)

const (
	TablesPathFormat        = "/v1/tables"
	TableFieldsPathFormat   = "/v1/tables/%s/fields"
	ResolvePathFormat       = "/v1/resolve"
	SummarizePathFormat     = "/v1/summarize"
	PropertiesPathFormat    = "/v1/properties"
	BlocksPathFormat        = "/v1/blocks"
	BlockFieldsPathFormat   = "/v1/blocks/%s/fields"
	LayoutPathFormat        = "/v1/layout"
	LayoutPublishPathFormat = "/v1/layout/publish"
	LayoutRenderPathFormat  = "/v1/layout/render"
)

// routeList holds the dependencies of the handlers
type routeList struct {
	service *pages.Service
	logger  log.Logger
	params  func(*http.Request, string) string
}

func httpRouterParams(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}

// Routes returns a slice of all the endpoint routes
func Routes(prefix string, service *pages.Service, logger log.Logger) []types.Route {
	rl := routeList{
		service: service,
		logger:  logger,
		params:  httpRouterParams,
	}

	pattern := func(format string, params ...interface{}) string {
		return path.Join(prefix, fmt.Sprintf(format, params...))
	}

	return []types.Route{
		{
			Method:  http.MethodGet,
			Pattern: pattern(TablesPathFormat),
			Handler: http.HandlerFunc(rl.GetTables),
		},
		{
			Method:  http.MethodGet,
			Pattern: pattern(TableFieldsPathFormat, ":tableName"),
			Handler: http.HandlerFunc(rl.GetTableFields),
		},
		{
			Method:  http.MethodPost,
			Pattern: pattern(ResolvePathFormat),
			Handler: http.HandlerFunc(rl.Resolve),
		},
		{
			Method:  http.MethodPost,
			Pattern: pattern(SummarizePathFormat),
			Handler: http.HandlerFunc(rl.Summarize),
		},
		{
			Method:  http.MethodGet,
			Pattern: pattern(PropertiesPathFormat),
			Handler: http.HandlerFunc(rl.GetProperties),
		},
		{
			Method:  http.MethodGet,
			Pattern: pattern(BlocksPathFormat),
			Handler: http.HandlerFunc(rl.GetBlocks),
		},
		{
			Method:  http.MethodGet,
			Pattern: pattern(BlockFieldsPathFormat, ":blockType"),
			Handler: http.HandlerFunc(rl.GetBlockFields),
		},
		{
			Method:  http.MethodGet,
			Pattern: pattern(LayoutPathFormat),
			Handler: http.HandlerFunc(rl.GetLayout),
		},
		{
			Method:  http.MethodPut,
			Pattern: pattern(LayoutPathFormat),
			Handler: http.HandlerFunc(rl.SaveLayout),
		},
		{
			Method:  http.MethodPost,
			Pattern: pattern(LayoutPublishPathFormat),
			Handler: http.HandlerFunc(rl.PublishLayout),
		},
		{
			Method:  http.MethodGet,
			Pattern: pattern(LayoutRenderPathFormat),
			Handler: http.HandlerFunc(rl.RenderLayout),
		},
		{
			Method:  http.MethodPost,
			Pattern: pattern(LayoutRenderPathFormat),
			Handler: http.HandlerFunc(rl.RenderDocument),
		},
	}
}
