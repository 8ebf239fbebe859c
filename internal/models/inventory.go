package models

// InventoryRecord is a single inventory row as the upstream service returns it.
// The service is Mongo-backed, so the identifier travels on the wire as "_id".
type InventoryRecord struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

// ItemDraft holds user-entered item fields not yet confirmed by the service.
// The server assigns the identifier on create.
type ItemDraft struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}
