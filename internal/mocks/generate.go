// Package mocks provides mock implementations of the backend ports for tests.
//
// This package uses go.uber.org/mock (gomock). To regenerate mocks after
// interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockBackendAPI(ctrl)
//	api.EXPECT().ListDocuments(gomock.Any()).Return(docs, nil)
package mocks

// Generate mocks for the BackendAPI and ScopedBackend interfaces from internal/ports.
// MockScopedBackend adds ClearCookies on top of the BackendAPI methods.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=backend_api_mock.go github.com/target/docanalyzer-ui/internal/ports BackendAPI,ScopedBackend
