// internal/application/catalog_service.go
package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/bookworks/bookstore/internal/domain"
	"github.com/bookworks/bookstore/internal/ports"
)

const catalogKeyPrefix = "catalog:"

// CatalogService serves the read-only category and book queries. The
// catalog changes rarely, so every query is cache-aside.
type CatalogService struct {
	catalog ports.CatalogPort
	cache   ports.CachePort
}

func NewCatalogService(catalog ports.CatalogPort, cache ports.CachePort) *CatalogService {
	return &CatalogService{catalog: catalog, cache: cache}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	key := catalogKeyPrefix + "categories"
	if data, err := s.cache.Get(ctx, key); err == nil {
		var categories []*domain.Category
		if err := json.Unmarshal(data, &categories); err == nil {
			return categories, nil
		}
	}

	categories, err := s.catalog.FindAllCategories(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, categories)
	return categories, nil
}

func (s *CatalogService) TopCategories(ctx context.Context, limit int) ([]*domain.Category, error) {
	if limit < 1 {
		limit = 3
	}
	key := fmt.Sprintf("%stop:%d", catalogKeyPrefix, limit)
	if data, err := s.cache.Get(ctx, key); err == nil {
		var categories []*domain.Category
		if err := json.Unmarshal(data, &categories); err == nil {
			return categories, nil
		}
	}

	categories, err := s.catalog.FindTopCategories(ctx, limit)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, categories)
	return categories, nil
}

// BooksByCategoryName resolves the category first so an unknown name
// surfaces as not-found rather than an empty book list.
func (s *CatalogService) BooksByCategoryName(ctx context.Context, name string) ([]*domain.Book, error) {
	key := fmt.Sprintf("%scategory:%s:books", catalogKeyPrefix, name)
	if data, err := s.cache.Get(ctx, key); err == nil {
		var books []*domain.Book
		if err := json.Unmarshal(data, &books); err == nil {
			return books, nil
		}
	}

	category, err := s.catalog.FindCategoryByName(ctx, name)
	if err != nil {
		return nil, err
	}
	books, err := s.catalog.FindBooksByCategoryID(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, books)
	return books, nil
}

func (s *CatalogService) GetBook(ctx context.Context, bookID int64) (*domain.Book, error) {
	return s.catalog.FindBookByID(ctx, bookID)
}

func (s *CatalogService) cacheSet(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		log.Printf("failed to cache %s: %v", key, err)
	}
}
