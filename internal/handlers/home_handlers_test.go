package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"stockview/internal/apiclient"
	"stockview/internal/forms"
	"stockview/internal/models"
	"stockview/internal/notify"
	"stockview/internal/session"
	"stockview/internal/store"
)

// upstream is a stub inventory service backing the real API client, so these
// tests cover handlers, templates and store against actual HTTP round trips.
type upstream struct {
	srv     *httptest.Server
	records []models.InventoryRecord
	failAll bool
}

func newUpstream(records []models.InventoryRecord) *upstream {
	u := &upstream{records: records}
	mux := http.NewServeMux()
	mux.HandleFunc("/inventory", func(w http.ResponseWriter, r *http.Request) {
		if u.failAll {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(u.records)
		case http.MethodPost:
			var draft models.ItemDraft
			json.NewDecoder(r.Body).Decode(&draft)
			record := models.InventoryRecord{
				ID: "id-" + time.Now().Format("150405.000000000"), Name: draft.Name,
				Category: draft.Category, Quantity: draft.Quantity,
			}
			u.records = append(u.records, record)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(record)
		}
	})
	mux.HandleFunc("/inventory/", func(w http.ResponseWriter, r *http.Request) {
		if u.failAll {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/inventory/")
		switch r.Method {
		case http.MethodPut:
			var fields models.ItemDraft
			json.NewDecoder(r.Body).Decode(&fields)
			json.NewEncoder(w).Encode(models.InventoryRecord{
				ID: id, Name: fields.Name, Category: fields.Category, Quantity: fields.Quantity,
			})
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	})
	u.srv = httptest.NewServer(mux)
	return u
}

type HomeHandlersTestSuite struct {
	suite.Suite
	upstream *upstream
	echo     *echo.Echo
	store    *store.InventoryStore
	sessions *session.Controller
	flash    *notify.FlashQueue
	handlers *HomeHandlers
}

func (suite *HomeHandlersTestSuite) SetupTest() {
	suite.upstream = newUpstream([]models.InventoryRecord{
		{ID: "1", Name: "Bolt", Category: "Hardware", Quantity: 0},
		{ID: "2", Name: "Nut", Category: "Hardware", Quantity: 5},
		{ID: "3", Name: "Seed Tray", Category: "Garden", Quantity: 25},
		{ID: "4", Name: "Hose", Category: "Garden", Quantity: 12},
		{ID: "5", Name: "Hammer", Category: "Tools", Quantity: 3},
	})

	api := apiclient.New(suite.upstream.srv.URL, 5*time.Second)
	suite.store = store.New(api)
	suite.flash = notify.NewFlashQueue()
	suite.sessions = session.NewController(context.Background(), session.NewMemoryTokenStore())

	addForm := forms.NewAddItemForm(suite.store, suite.flash)
	editForm := forms.NewEditItemForm(suite.store, suite.flash)
	suite.handlers = NewHomeHandlers(suite.store, suite.sessions, addForm, editForm, suite.flash, nil)

	suite.echo = echo.New()
	suite.echo.Renderer = NewTemplateRenderer()
}

func (suite *HomeHandlersTestSuite) TearDownTest() {
	suite.upstream.srv.Close()
}

func TestHomeHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HomeHandlersTestSuite))
}

func (suite *HomeHandlersTestSuite) get(target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	suite.Require().NoError(suite.handlers.Home(c))
	return rec
}

func (suite *HomeHandlersTestSuite) TestHome_LoadsAndRendersFirstPage() {
	rec := suite.get("/")

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(suite.T(), body, "Bolt")
	assert.Contains(suite.T(), body, "Hose")
	// Page size is 4: the fifth record belongs to page 2.
	assert.NotContains(suite.T(), body, "Hammer")
	assert.Contains(suite.T(), body, "Page 1 of 2")
	assert.Contains(suite.T(), body, "table-danger")
	assert.Contains(suite.T(), body, "table-warning")
}

func (suite *HomeHandlersTestSuite) TestHome_SecondPage() {
	suite.get("/")
	rec := suite.get("/?page=2")

	body := rec.Body.String()
	assert.Contains(suite.T(), body, "Hammer")
	assert.NotContains(suite.T(), body, "Bolt")
	assert.Contains(suite.T(), body, "Page 2 of 2")
}

func (suite *HomeHandlersTestSuite) TestHome_SearchFiltersTable() {
	suite.get("/")
	rec := suite.get("/?" + url.Values{"q": {"garden"}}.Encode())

	body := rec.Body.String()
	assert.Contains(suite.T(), body, "Seed Tray")
	assert.Contains(suite.T(), body, "Hose")
	assert.NotContains(suite.T(), body, "Bolt")
}

func (suite *HomeHandlersTestSuite) TestHome_LoadFailureShowsToast() {
	suite.upstream.failAll = true

	rec := suite.get("/")

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "Failed to fetch inventory!")
}

func (suite *HomeHandlersTestSuite) TestHome_EditParamOpensEditForm() {
	suite.get("/")
	rec := suite.get("/?edit=2")

	body := rec.Body.String()
	assert.Contains(suite.T(), body, "Edit Item")
	assert.Contains(suite.T(), body, `action="/items/2"`)
}

func (suite *HomeHandlersTestSuite) TestAddItem_ShowsSuccessToastOnNextRender() {
	suite.get("/")

	form := url.Values{"name": {"Wrench"}, "category": {"Tools"}, "quantity": {"7"}}
	req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	suite.Require().NoError(suite.handlers.AddItem(c))
	assert.Equal(suite.T(), http.StatusSeeOther, rec.Code)

	body := suite.get("/").Body.String()
	assert.Contains(suite.T(), body, "Item added successfully!")
	assert.Contains(suite.T(), body, "Wrench")
}

func (suite *HomeHandlersTestSuite) TestDeleteItem_SurfacesFailure() {
	suite.get("/")
	suite.upstream.failAll = true

	req := httptest.NewRequest(http.MethodPost, "/items/1/delete", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	suite.Require().NoError(suite.handlers.DeleteItem(c))

	suite.upstream.failAll = false
	body := suite.get("/").Body.String()
	assert.Contains(suite.T(), body, "Failed to delete item")
	// Nothing was removed locally.
	assert.Contains(suite.T(), body, "Bolt")
}

func (suite *HomeHandlersTestSuite) TestExportPDF_ServesAttachment() {
	suite.get("/")

	req := httptest.NewRequest(http.MethodGet, "/inventory/export", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	suite.Require().NoError(suite.handlers.ExportPDF(c))

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Header().Get(echo.HeaderContentDisposition), `inventory.pdf`)
	require.True(suite.T(), rec.Body.Len() > 4)
	assert.Equal(suite.T(), "%PDF", rec.Body.String()[:4])
}
