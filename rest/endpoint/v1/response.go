package endpoint

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/datastax/page-data-blocks/blocks"
	"github.com/datastax/page-data-blocks/host"
	"github.com/datastax/page-data-blocks/layout"
	"github.com/datastax/page-data-blocks/pages"
	"github.com/datastax/page-data-blocks/properties"
	e "github.com/datastax/page-data-blocks/rest/errors"
	m "github.com/datastax/page-data-blocks/rest/models"
)

// RespondJSONObjectWithCode writes the object and status header to the response. Important to note that if this is being
// used for an error case then an empty return will need to immediately follow the call to this function
func RespondJSONObjectWithCode(w http.ResponseWriter, code int, obj interface{}) {
	setCommonHeaders(w)
	var err error
	var jsonBytes []byte
	if obj != nil {
		jsonBytes, err = json.Marshal(obj)
	}
	writeJSONBytes(w, jsonBytes, err, code)
}

func writeJSONBytes(w http.ResponseWriter, jsonBytes []byte, err error, code int) {
	if err != nil {
		RespondWithError(w, errors.New("unable to marshal response"), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(code)
	if jsonBytes != nil {
		_, _ = w.Write(jsonBytes)
	}
}

func RespondWithError(w http.ResponseWriter, err error, code int) {
	requestError := m.ModelError{
		Description: err.Error(),
		Code:        code,
	}
	RespondJSONObjectWithCode(w, code, requestError)
}

// StatusCode maps the errors returned by the page operations onto http status codes.
func StatusCode(err error) int {
	var (
		requestErr     *e.RequestError
		tableNotFound  *pages.TableNotFoundError
		recordNotFound *host.RecordNotFoundError
		fieldNotFound  *host.FieldNotFoundError
		unknownBlock   *blocks.UnknownBlockError
		setup          *properties.SetupError
	)

	switch {
	case errors.As(err, &requestErr):
		return requestErr.Status
	case errors.As(err, &tableNotFound), errors.As(err, &recordNotFound), errors.As(err, &fieldNotFound),
		errors.As(err, &unknownBlock), errors.Is(err, layout.ErrNoLayoutRecord):
		return http.StatusNotFound
	case errors.Is(err, host.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.As(err, &setup):
		return http.StatusConflict
	case errors.Is(err, layout.ErrSaverClosed):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func setCommonHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
}
