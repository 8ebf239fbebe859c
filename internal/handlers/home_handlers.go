package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"stockview/internal/export"
	"stockview/internal/forms"
	"stockview/internal/models"
	"stockview/internal/notify"
	"stockview/internal/session"
	"stockview/internal/store"
	"stockview/internal/view"
)

// HomeHandlers serves the authenticated inventory screen: search, add/edit
// forms, the paginated table, sorting and PDF export.
type HomeHandlers struct {
	store    *store.InventoryStore
	sessions *session.Controller
	addForm  *forms.AddItemForm
	editForm *forms.EditItemForm
	flash    *notify.FlashQueue
	archive  export.ArchiveStore // nil when archiving is not configured
}

// NewHomeHandlers creates a new home handlers instance.
func NewHomeHandlers(
	inv *store.InventoryStore,
	sessions *session.Controller,
	addForm *forms.AddItemForm,
	editForm *forms.EditItemForm,
	flash *notify.FlashQueue,
	archive export.ArchiveStore,
) *HomeHandlers {
	return &HomeHandlers{
		store:    inv,
		sessions: sessions,
		addForm:  addForm,
		editForm: editForm,
		flash:    flash,
		archive:  archive,
	}
}

type homeRow struct {
	models.InventoryRecord
	RowClass string
}

type homePage struct {
	Authenticated bool
	Username      string
	Query         string
	NextSort      string
	Page          view.Page
	Rows          []homeRow
	AddDraft      models.ItemDraft
	Editing       bool
	EditID        string
	EditDraft     models.ItemDraft
	Notifications []notify.Notification
}

// Home renders the inventory screen. Query params: q (search), page, and
// edit (id of the record whose edit form is open).
func (h *HomeHandlers) Home(c echo.Context) error {
	ctx := c.Request().Context()

	// One load per authenticated session, attempted on first render.
	if !h.store.Loaded() {
		if err := h.store.Load(ctx); err != nil {
			h.flash.Error("Failed to fetch inventory!")
		}
	}

	params := c.QueryParams()
	if params.Has("q") {
		h.store.SetSearchQuery(params.Get("q"))
	}
	if params.Has("page") {
		if page, err := strconv.Atoi(params.Get("page")); err == nil {
			h.store.SetPage(page)
		}
	}
	if editID := params.Get("edit"); editID != "" {
		if record, ok := h.store.Get(editID); ok {
			h.editForm.Begin(record)
		}
	}

	page := view.Paginate(h.store.Filtered(), h.store.CurrentPage())
	h.store.SetPage(page.Number)

	rows := make([]homeRow, 0, len(page.Items))
	for _, record := range page.Items {
		rows = append(rows, homeRow{
			InventoryRecord: record,
			RowClass:        view.StatusOf(record).RowClass(),
		})
	}

	return c.Render(http.StatusOK, "home.html", homePage{
		Authenticated: true,
		Username:      h.sessions.Username(),
		Query:         h.store.SearchQuery(),
		NextSort:      h.store.SortDirection().String(),
		Page:          page,
		Rows:          rows,
		AddDraft:      h.addForm.Draft(),
		Editing:       h.editForm.Active(),
		EditID:        h.editForm.ID(),
		EditDraft:     h.editForm.Draft(),
		Notifications: h.flash.Drain(),
	})
}

// AddItem submits the add-item form.
func (h *HomeHandlers) AddItem(c echo.Context) error {
	h.addForm.SetFields(
		c.FormValue("name"),
		c.FormValue("category"),
		c.FormValue("quantity"),
	)

	// Outcome lands in the flash queue either way; the draft survives failure.
	_ = h.addForm.Submit(c.Request().Context())
	return c.Redirect(http.StatusSeeOther, "/")
}

// UpdateItem submits the edit-item form for the record in the path.
func (h *HomeHandlers) UpdateItem(c echo.Context) error {
	if h.editForm.ID() != c.Param("id") {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	h.editForm.SetFields(
		c.FormValue("name"),
		c.FormValue("category"),
		c.FormValue("quantity"),
	)

	_ = h.editForm.Submit(c.Request().Context())
	return c.Redirect(http.StatusSeeOther, "/")
}

// DeleteItem removes a record. Failures surface like every other CRUD
// failure rather than disappearing into a debug log.
func (h *HomeHandlers) DeleteItem(c echo.Context) error {
	if err := h.store.Remove(c.Request().Context(), c.Param("id")); err != nil {
		h.flash.Error(err.Error())
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// SortByQuantity applies the quantity sort in the pending direction.
func (h *HomeHandlers) SortByQuantity(c echo.Context) error {
	h.store.SortByQuantity()
	return c.Redirect(http.StatusSeeOther, "/")
}

// ResetSort restores the order captured at load.
func (h *HomeHandlers) ResetSort(c echo.Context) error {
	h.store.ResetSort()
	return c.Redirect(http.StatusSeeOther, "/")
}

// ExportPDF serves the full loaded list as a PDF download and archives a
// copy when an archive store is configured.
func (h *HomeHandlers) ExportPDF(c echo.Context) error {
	data, err := export.BuildInventoryPDF(h.store.Items())
	if err != nil {
		h.flash.Error("Failed to export PDF!")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	if h.archive != nil {
		if err := h.archive.SaveExport(c.Request().Context(), export.Filename, data); err != nil {
			log.Printf("WARN: failed to archive export: %v", err)
		}
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.Filename))
	return c.Blob(http.StatusOK, "application/pdf", data)
}
