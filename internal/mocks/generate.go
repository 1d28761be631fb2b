// Package mocks provides gomock doubles for the ports used by the web layer.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockLibraryAPI(ctrl)
//	api.EXPECT().ListLibros(gomock.Any(), gomock.Any()).Return(libros, nil)
package mocks

// MockSessionStore: Save, Get, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_store_mock.go github.com/sisbib/sisbib-web/internal/ports SessionStore

// MockLibraryAPI: every backend call made by the views, Login included
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=library_api_mock.go github.com/sisbib/sisbib-web/internal/ports LibraryAPI
