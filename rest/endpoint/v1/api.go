package endpoint

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/datastax/page-data-blocks/blocks"
	"github.com/datastax/page-data-blocks/layout"
	e "github.com/datastax/page-data-blocks/rest/errors"
	m "github.com/datastax/page-data-blocks/rest/models"
	"github.com/datastax/page-data-blocks/types"
)

// maxBodySize bounds request payloads, layout documents included
const maxBodySize = 4 << 20

var (
	inputValidator *validator.Validate
	trans          ut.Translator
)

func init() {
	inputValidator = validator.New()

	uni := ut.New(en.New(), en.New())
	trans, _ = uni.GetTranslator("en")

	_ = enTranslations.RegisterDefaultTranslations(inputValidator, trans)

	_ = inputValidator.RegisterTranslation("required", trans, func(ut ut.Translator) error {
		return ut.Add("required", "{0} is a required field", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		translator, _ := ut.T("required", fe.Field())
		return translator
	})

	_ = inputValidator.RegisterTranslation("oneof", trans, func(ut ut.Translator) error {
		return ut.Add("oneof", "{0} must be one of [{1}]", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		translator, _ := ut.T("oneof", fe.Field(), fe.Param())
		return translator
	})
}

func (s *routeList) GetTables(w http.ResponseWriter, r *http.Request) {
	RespondJSONObjectWithCode(w, http.StatusOK, s.service.Tables())
}

func (s *routeList) GetTableFields(w http.ResponseWriter, r *http.Request) {
	tableName := s.params(r, "tableName")

	table, err := s.service.Table(tableName)
	if err != nil {
		s.respondWithError(w, err, "unable to describe table", "table", tableName)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, table.Fields)
}

func (s *routeList) Resolve(w http.ResponseWriter, r *http.Request) {
	var ref types.DataRef
	if err := parseAndValidatePayload(&ref, r); err != nil {
		RespondWithError(w, err, http.StatusBadRequest)
		return
	}

	result, err := s.service.Resolve(r.Context(), &ref)
	if err != nil {
		s.respondWithError(w, err, "unable to resolve data reference", "table", ref.TableName)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, result)
}

func (s *routeList) Summarize(w http.ResponseWriter, r *http.Request) {
	var props blocks.NumberProps
	if err := parseAndValidatePayload(&props, r); err != nil {
		RespondWithError(w, err, http.StatusBadRequest)
		return
	}

	value, err := s.service.Summarize(r.Context(), props)
	if err != nil {
		s.respondWithError(w, err, "unable to summarize table", "table", props.TableName)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, value)
}

func (s *routeList) GetProperties(w http.ResponseWriter, r *http.Request) {
	properties := m.Properties{Slots: s.service.Properties()}

	selection, err := s.service.Selection()
	if err != nil {
		properties.SetupRequired = err.Error()
	} else {
		properties.Selection = &m.Selection{
			Table:       selection.Table.Name(),
			NameField:   selection.NameField.Name,
			DocField:    selection.DocField.Name,
			AssetsField: selection.AssetsField.Name,
		}
	}

	RespondJSONObjectWithCode(w, http.StatusOK, properties)
}

func (s *routeList) GetBlocks(w http.ResponseWriter, r *http.Request) {
	RespondJSONObjectWithCode(w, http.StatusOK, s.service.Blocks())
}

// GetBlockFields returns the editor fields of a block type. The current props of the block are
// passed as query parameters.
func (s *routeList) GetBlockFields(w http.ResponseWriter, r *http.Request) {
	blockType := s.params(r, "blockType")

	query := r.URL.Query()
	props := make(map[string]interface{}, len(query))
	for name := range query {
		props[name] = query.Get(name)
	}

	fields, err := s.service.Fields(blockType, props)
	if err != nil {
		s.respondWithError(w, err, "unable to list block fields", "blockType", blockType)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, fields)
}

func (s *routeList) GetLayout(w http.ResponseWriter, r *http.Request) {
	doc, err := s.service.Layout(r.Context())
	if err != nil {
		s.respondWithError(w, err, "unable to load layout")
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, m.Layout{Document: doc, Pending: s.service.SavePending()})
}

// SaveLayout schedules the document to be written, later saves replace earlier ones until the
// write happens.
func (s *routeList) SaveLayout(w http.ResponseWriter, r *http.Request) {
	doc, err := parseDocument(r)
	if err != nil {
		RespondWithError(w, err, http.StatusBadRequest)
		return
	}

	if err := s.service.SaveLayout(r.Context(), doc); err != nil {
		s.respondWithError(w, err, "unable to save layout")
		return
	}

	RespondJSONObjectWithCode(w, http.StatusAccepted, m.LayoutSaved{Pending: s.service.SavePending()})
}

func (s *routeList) PublishLayout(w http.ResponseWriter, r *http.Request) {
	doc, err := parseDocument(r)
	if err != nil {
		RespondWithError(w, err, http.StatusBadRequest)
		return
	}

	if err := s.service.PublishLayout(r.Context(), doc); err != nil {
		s.respondWithError(w, err, "unable to publish layout")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *routeList) RenderLayout(w http.ResponseWriter, r *http.Request) {
	page, err := s.service.Render(r.Context())
	if err != nil {
		s.respondWithError(w, err, "unable to render layout")
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, page)
}

// RenderDocument renders the posted document without storing it
func (s *routeList) RenderDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := parseDocument(r)
	if err != nil {
		RespondWithError(w, err, http.StatusBadRequest)
		return
	}

	page, err := s.service.RenderDocument(r.Context(), doc)
	if err != nil {
		s.respondWithError(w, err, "unable to render layout")
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, page)
}

// respondWithError logs err with the given context and writes it with the matching status code.
// Server side failures are reported with msg only.
func (s *routeList) respondWithError(w http.ResponseWriter, err error, msg string, keyAndValues ...interface{}) {
	code := StatusCode(err)
	if code == http.StatusInternalServerError {
		s.logger.Error(msg, append(keyAndValues, "error", err)...)
		RespondWithError(w, e.NewInternalError(msg), code)
		return
	}

	s.logger.Debug(msg, append(keyAndValues, "error", err)...)
	RespondWithError(w, err, code)
}

func parseAndValidatePayload(obj interface{}, r *http.Request) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(obj); err != nil {
		return err
	}

	if err := inputValidator.Struct(obj); err != nil {
		return e.TranslateValidationError(err, trans)
	}

	return nil
}

func parseDocument(r *http.Request) (layout.Document, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return layout.Document{}, err
	}
	if strings.TrimSpace(string(body)) == "" {
		return layout.Document{}, e.NewBadRequestError("layout document is required")
	}
	return layout.Decode(string(body))
}
