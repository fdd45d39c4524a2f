package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"eastside-storefront/models"
)

var ErrFunctionCall = errors.New("callable function failed")

// FunctionError carries the error envelope returned by a callable function.
type FunctionError struct {
	Name       string
	Status     string
	Message    string
	HTTPStatus int
}

func (e *FunctionError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Name, e.Message, e.Status)
}

func (e *FunctionError) Unwrap() error { return ErrFunctionCall }

// ProductGateway is the Remote Function Gateway used for catalog writes.
type ProductGateway interface {
	AddProduct(ctx context.Context, idToken, storeID string, product models.Product) error
	UpdateProduct(ctx context.Context, idToken, storeID, productID string, updates models.Product) error
	DeleteProduct(ctx context.Context, idToken, storeID, productID string) error
	BootstrapAdminClaims(ctx context.Context, idToken, storeID string) error
}

// FunctionsClient speaks the callable function protocol over HTTPS.
type FunctionsClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewFunctionsClient targets baseURL, e.g. https://us-central1-<project>.cloudfunctions.net.
func NewFunctionsClient(baseURL string, httpClient *http.Client) *FunctionsClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &FunctionsClient{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

type callEnvelope struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// Call invokes the named function with data as the payload and returns the raw result.
func (f *FunctionsClient) Call(ctx context.Context, name, idToken string, data any) (json.RawMessage, error) {
	body, err := json.Marshal(map[string]any{"data": data})
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/"+name, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if idToken != "" {
		req.Header.Set("Authorization", "Bearer "+idToken)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", name, err)
	}

	var env callEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &FunctionError{
			Name:       name,
			Status:     "INTERNAL",
			Message:    fmt.Sprintf("unexpected response (HTTP %d)", resp.StatusCode),
			HTTPStatus: resp.StatusCode,
		}
	}
	if env.Error != nil {
		return nil, &FunctionError{
			Name:       name,
			Status:     env.Error.Status,
			Message:    env.Error.Message,
			HTTPStatus: resp.StatusCode,
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &FunctionError{
			Name:       name,
			Status:     "UNKNOWN",
			Message:    http.StatusText(resp.StatusCode),
			HTTPStatus: resp.StatusCode,
		}
	}
	return env.Result, nil
}

func (f *FunctionsClient) AddProduct(ctx context.Context, idToken, storeID string, product models.Product) error {
	_, err := f.Call(ctx, "addProduct", idToken, map[string]any{
		"storeId":     storeID,
		"productData": product,
	})
	return err
}

func (f *FunctionsClient) UpdateProduct(ctx context.Context, idToken, storeID, productID string, updates models.Product) error {
	_, err := f.Call(ctx, "updateProduct", idToken, map[string]any{
		"storeId":   storeID,
		"productId": productID,
		"updates":   updates,
	})
	return err
}

func (f *FunctionsClient) DeleteProduct(ctx context.Context, idToken, storeID, productID string) error {
	_, err := f.Call(ctx, "deleteProduct", idToken, map[string]any{
		"storeId":   storeID,
		"productId": productID,
	})
	return err
}

func (f *FunctionsClient) BootstrapAdminClaims(ctx context.Context, idToken, storeID string) error {
	_, err := f.Call(ctx, "bootstrapAdminClaims", idToken, map[string]any{"storeId": storeID})
	return err
}
