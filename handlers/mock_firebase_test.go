package handlers

import (
	"context"
	"io"

	"eastside-storefront/models"
)

type gatewayCall struct {
	Name      string
	Token     string
	StoreID   string
	ProductID string
	Product   models.Product
}

type mockGateway struct {
	Err   error
	Calls []gatewayCall
}

func (m *mockGateway) record(call gatewayCall) error {
	m.Calls = append(m.Calls, call)
	return m.Err
}

func (m *mockGateway) AddProduct(_ context.Context, token, storeID string, p models.Product) error {
	return m.record(gatewayCall{Name: "addProduct", Token: token, StoreID: storeID, Product: p})
}

func (m *mockGateway) UpdateProduct(_ context.Context, token, storeID, id string, p models.Product) error {
	return m.record(gatewayCall{Name: "updateProduct", Token: token, StoreID: storeID, ProductID: id, Product: p})
}

func (m *mockGateway) DeleteProduct(_ context.Context, token, storeID, id string) error {
	return m.record(gatewayCall{Name: "deleteProduct", Token: token, StoreID: storeID, ProductID: id})
}

func (m *mockGateway) BootstrapAdminClaims(_ context.Context, token, storeID string) error {
	return m.record(gatewayCall{Name: "bootstrapAdminClaims", Token: token, StoreID: storeID})
}

type mockStorage struct {
	UploadFn        func(storeID, uid, filename, contentType string, data []byte) (string, error)
	ImportFn        func(storeID, uid, url string) (string, error)
	DeleteFileCalls []string
	DeleteErr       error
}

func newMockStorage() *mockStorage {
	return &mockStorage{DeleteFileCalls: []string{}}
}

func (m *mockStorage) UploadProductImage(_ context.Context, storeID, uid string, file io.Reader, filename, contentType string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	if m.UploadFn != nil {
		return m.UploadFn(storeID, uid, filename, contentType, data)
	}
	return "https://storage.googleapis.com/test-bucket/stores/" + storeID + "/uploads/products/" + uid + "/1-" + filename, nil
}

func (m *mockStorage) ImportRemoteImage(_ context.Context, storeID, uid, url string) (string, error) {
	if m.ImportFn != nil {
		return m.ImportFn(storeID, uid, url)
	}
	return "https://storage.googleapis.com/test-bucket/stores/" + storeID + "/uploads/products/" + uid + "/1-imported.jpg", nil
}

func (m *mockStorage) DeleteFile(_ context.Context, objectPath string) error {
	m.DeleteFileCalls = append(m.DeleteFileCalls, objectPath)
	return m.DeleteErr
}
