// internal/application/catalog_service_test.go
package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/bookworks/bookstore/internal/domain"
	"github.com/bookworks/bookstore/internal/ports"
)

func TestCatalogService_ListCategories(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	categories := []*domain.Category{
		{ID: 1, Name: "Classics"},
		{ID: 2, Name: "Mystery"},
	}
	cacheBytes, _ := json.Marshal(categories)

	tests := []struct {
		name      string
		mockSetup func(catalog *ports.MockCatalogPort, cache *stubCache)
		wantErr   bool
		wantLen   int
	}{
		{
			name: "Cache hit",
			mockSetup: func(catalog *ports.MockCatalogPort, cache *stubCache) {
				cache.get = func(ctx context.Context, key string) ([]byte, error) { return cacheBytes, nil }
			},
			wantLen: 2,
		},
		{
			name: "Cache miss, successful DB query",
			mockSetup: func(catalog *ports.MockCatalogPort, cache *stubCache) {
				cache.get = func(ctx context.Context, key string) ([]byte, error) { return nil, errors.New("cache miss") }
				catalog.EXPECT().FindAllCategories(gomock.Any()).Return(categories, nil)
				cache.set = func(ctx context.Context, key string, value interface{}) error { return nil }
			},
			wantLen: 2,
		},
		{
			name: "Repository error",
			mockSetup: func(catalog *ports.MockCatalogPort, cache *stubCache) {
				cache.get = func(ctx context.Context, key string) ([]byte, error) { return nil, errors.New("cache miss") }
				catalog.EXPECT().FindAllCategories(gomock.Any()).
					Return(nil, &domain.StorageError{Op: "select categories", Cause: errors.New("db down")})
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCatalog := ports.NewMockCatalogPort(ctrl)
			cache := missCache()
			tt.mockSetup(mockCatalog, cache)
			svc := NewCatalogService(mockCatalog, cache)

			got, err := svc.ListCategories(context.Background())
			if tt.wantErr {
				if err == nil {
					t.Fatal("ListCategories() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ListCategories() unexpected error: %v", err)
			}
			if len(got) != tt.wantLen {
				t.Errorf("ListCategories() = %d categories, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestCatalogService_BooksByCategoryName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	category := &domain.Category{ID: 3, Name: "Science Fiction"}
	books := []*domain.Book{
		{ID: 5, Title: "Dune", Price: 1899, CategoryID: 3},
		{ID: 6, Title: "The Martian", Price: 1499, CategoryID: 3},
	}

	t.Run("resolves category then books", func(t *testing.T) {
		mockCatalog := ports.NewMockCatalogPort(ctrl)
		mockCatalog.EXPECT().FindCategoryByName(gomock.Any(), "Science Fiction").Return(category, nil)
		mockCatalog.EXPECT().FindBooksByCategoryID(gomock.Any(), int64(3)).Return(books, nil)
		svc := NewCatalogService(mockCatalog, missCache())

		got, err := svc.BooksByCategoryName(context.Background(), "Science Fiction")
		if err != nil {
			t.Fatalf("BooksByCategoryName() unexpected error: %v", err)
		}
		if len(got) != 2 || got[0].Title != "Dune" {
			t.Errorf("BooksByCategoryName() = %+v, want the two seeded books", got)
		}
	})

	t.Run("unknown category name is not found", func(t *testing.T) {
		mockCatalog := ports.NewMockCatalogPort(ctrl)
		mockCatalog.EXPECT().FindCategoryByName(gomock.Any(), "Nonexistent").
			Return(nil, fmt.Errorf("category %q: %w", "Nonexistent", domain.ErrNotFound))
		svc := NewCatalogService(mockCatalog, missCache())

		_, err := svc.BooksByCategoryName(context.Background(), "Nonexistent")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("BooksByCategoryName() error = %v, want ErrNotFound", err)
		}
	})
}
