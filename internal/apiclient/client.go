package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"stockview/internal/models"
)

// Client is the narrow contract the UI speaks against the remote inventory
// service: four inventory operations and two auth operations.
type Client interface {
	ListInventory(ctx context.Context) ([]models.InventoryRecord, error)
	CreateItem(ctx context.Context, draft *models.ItemDraft) (*models.InventoryRecord, error)
	UpdateItem(ctx context.Context, id string, fields *models.ItemDraft) (*models.InventoryRecord, error)
	DeleteItem(ctx context.Context, id string) error
	Login(ctx context.Context, creds *models.Credentials) (*models.LoginResponse, error)
	Register(ctx context.Context, details *models.Credentials) error
}

type restClient struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a REST client for the inventory service at baseURL.
func New(baseURL string, timeout time.Duration) Client {
	return &restClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// makeRequest performs a single HTTP request against the inventory service.
func (c *restClient) makeRequest(ctx context.Context, method, endpoint string, payload interface{}) (*http.Response, error) {
	url := fmt.Sprintf("%s%s", c.baseURL, endpoint)

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	return resp, nil
}

func (c *restClient) ListInventory(ctx context.Context) ([]models.InventoryRecord, error) {
	resp, err := c.makeRequest(ctx, http.MethodGet, "/inventory", nil)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Err: statusError(resp)}
	}

	var records []models.InventoryRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, &FetchError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return records, nil
}

func (c *restClient) CreateItem(ctx context.Context, draft *models.ItemDraft) (*models.InventoryRecord, error) {
	resp, err := c.makeRequest(ctx, http.MethodPost, "/inventory", draft)
	if err != nil {
		return nil, &CreateError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, &CreateError{Err: statusError(resp)}
	}

	var record models.InventoryRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, &CreateError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return &record, nil
}

func (c *restClient) UpdateItem(ctx context.Context, id string, fields *models.ItemDraft) (*models.InventoryRecord, error) {
	resp, err := c.makeRequest(ctx, http.MethodPut, fmt.Sprintf("/inventory/%s", id), fields)
	if err != nil {
		return nil, &UpdateError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpdateError{Err: statusError(resp)}
	}

	var record models.InventoryRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, &UpdateError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return &record, nil
}

func (c *restClient) DeleteItem(ctx context.Context, id string) error {
	resp, err := c.makeRequest(ctx, http.MethodDelete, fmt.Sprintf("/inventory/%s", id), nil)
	if err != nil {
		return &DeleteError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return &DeleteError{Err: statusError(resp)}
	}
	return nil
}

func (c *restClient) Login(ctx context.Context, creds *models.Credentials) (*models.LoginResponse, error) {
	resp, err := c.makeRequest(ctx, http.MethodPost, "/auth/login", creds)
	if err != nil {
		return nil, &LoginError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &InvalidCredentialsError{}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &LoginError{
			Message: serviceMessage(body),
			Err:     fmt.Errorf("inventory API returned status %d: %s", resp.StatusCode, string(body)),
		}
	}

	var login models.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		return nil, &LoginError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return &login, nil
}

func (c *restClient) Register(ctx context.Context, details *models.Credentials) error {
	resp, err := c.makeRequest(ctx, http.MethodPost, "/auth/register", details)
	if err != nil {
		return &RegistrationError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return &RegistrationError{
			Message: serviceMessage(body),
			Err:     fmt.Errorf("inventory API returned status %d: %s", resp.StatusCode, string(body)),
		}
	}
	return nil
}

// statusError captures a non-2xx response for the wrapped error chain.
func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("inventory API returned status %d: %s", resp.StatusCode, string(body))
}

// serviceMessage extracts the "message" field some error responses carry.
func serviceMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}
