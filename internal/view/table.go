// Package view computes the table presentation of the inventory list: fixed
// page slicing and per-row stock emphasis. Everything here is a pure function
// of the filtered list and the requested page.
package view

import (
	"stockview/internal/models"
)

// PageSize is the fixed number of rows shown per page.
const PageSize = 4

// StockStatus classifies a row for display emphasis.
type StockStatus int

const (
	InStock StockStatus = iota
	LowStock
	OutOfStock
)

// lowStockThreshold is the quantity below which a row is flagged low stock.
const lowStockThreshold = 10

// StatusOf returns the display emphasis for a record.
func StatusOf(r models.InventoryRecord) StockStatus {
	switch {
	case r.Quantity == 0:
		return OutOfStock
	case r.Quantity < lowStockThreshold:
		return LowStock
	default:
		return InStock
	}
}

// RowClass maps a status onto the table row class used by the templates.
func (s StockStatus) RowClass() string {
	switch s {
	case OutOfStock:
		return "table-danger"
	case LowStock:
		return "table-warning"
	default:
		return ""
	}
}

// TotalPages returns the page count for count items: at least 1, even when
// the list is empty.
func TotalPages(count int) int {
	pages := (count + PageSize - 1) / PageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Clamp bounds page into [1, totalPages].
func Clamp(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Page is one rendered slice of the filtered list.
type Page struct {
	Items      []models.InventoryRecord
	Number     int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

// Paginate slices items into the requested page, clamping the page number
// against the current list length.
func Paginate(items []models.InventoryRecord, page int) Page {
	totalPages := TotalPages(len(items))
	page = Clamp(page, totalPages)

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page{
		Items:      items[start:end],
		Number:     page,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}
