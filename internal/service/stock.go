package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/stockroom/inventory-api/internal/events"
	"github.com/stockroom/inventory-api/internal/logging"
	"github.com/stockroom/inventory-api/internal/metrics"
	"github.com/stockroom/inventory-api/internal/models"
	"github.com/stockroom/inventory-api/internal/repo"
	"github.com/stockroom/inventory-api/internal/search"
)

// StockService owns the stock mutation rules: sku uniqueness, the
// stock >= 0 invariant at every mutation point, and the atomic delta.
type StockService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
	Index    *search.Index
	Metrics  *metrics.Metrics
}

func (s *StockService) Create(ctx context.Context, sku, name string, stock int64) (*models.Product, error) {
	sku = strings.TrimSpace(sku)
	name = strings.TrimSpace(name)
	if sku == "" || name == "" {
		return nil, fmt.Errorf("%w: sku and name are required", ErrValidation)
	}
	if stock < 0 {
		return nil, fmt.Errorf("%w: stock must be >= 0", ErrValidation)
	}

	prod := models.Product{SKU: sku, Name: name, Stock: stock}
	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		return nil, err
	}

	s.syncIndex(ctx, &prod)
	s.publish(ctx, fmt.Sprint(prod.ID), map[string]any{
		"type":       "product_created",
		"product_id": prod.ID,
		"sku":        prod.SKU,
	})
	return &prod, nil
}

func (s *StockService) Replace(ctx context.Context, id uint, sku, name string, stock int64) (*models.Product, error) {
	sku = strings.TrimSpace(sku)
	name = strings.TrimSpace(name)
	if sku == "" || name == "" {
		return nil, fmt.Errorf("%w: sku and name are required", ErrValidation)
	}
	if stock < 0 {
		return nil, fmt.Errorf("%w: stock must be >= 0", ErrValidation)
	}

	prod, err := s.Repo.ReplaceProduct(ctx, id, sku, name, stock)
	if err != nil {
		return nil, err
	}

	s.syncIndex(ctx, prod)
	s.publish(ctx, fmt.Sprint(prod.ID), map[string]any{
		"type":       "product_replaced",
		"product_id": prod.ID,
		"sku":        prod.SKU,
	})
	return prod, nil
}

func (s *StockService) SetStock(ctx context.Context, id uint, stock int64) (*models.Product, error) {
	if stock < 0 {
		return nil, fmt.Errorf("%w: stock must be >= 0", ErrValidation)
	}

	prod, err := s.Repo.SetStock(ctx, id, stock)
	if err != nil {
		return nil, err
	}

	s.syncIndex(ctx, prod)
	s.publish(ctx, fmt.Sprint(prod.ID), map[string]any{
		"type":       "stock_set",
		"product_id": prod.ID,
		"sku":        prod.SKU,
		"stock":      prod.Stock,
	})
	return prod, nil
}

// AdjustStock applies a signed delta. A delta that would take stock below
// zero fails with repo.ErrInsufficientStock and leaves the record unchanged.
func (s *StockService) AdjustStock(ctx context.Context, id uint, delta int64) (*models.Product, error) {
	prod, err := s.Repo.AdjustStock(ctx, id, delta)
	if err != nil {
		if errors.Is(err, repo.ErrInsufficientStock) && s.Metrics != nil {
			s.Metrics.InsufficientStock.Inc()
		}
		return nil, err
	}

	if s.Metrics != nil {
		s.Metrics.StockAdjustments.Inc()
	}
	s.syncIndex(ctx, prod)
	s.publish(ctx, fmt.Sprint(prod.ID), map[string]any{
		"type":       "stock_adjusted",
		"product_id": prod.ID,
		"sku":        prod.SKU,
		"delta":      delta,
		"stock":      prod.Stock,
	})
	return prod, nil
}

func (s *StockService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	if err := s.Index.DeleteProduct(ctx, id); err != nil {
		logging.FromContext(ctx).Error("search index delete error", "product_id", id, "error", err)
	}
	s.publish(ctx, fmt.Sprint(id), map[string]any{
		"type":       "product_deleted",
		"product_id": id,
	})
	return nil
}

func (s *StockService) Get(ctx context.Context, id uint) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *StockService) List(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

// Lookup resolves a product by raw sku/id query values. Exactly one of the
// two must be supplied; when both are present sku takes precedence.
func (s *StockService) Lookup(ctx context.Context, sku, id string) (*models.Product, error) {
	switch {
	case sku != "":
		return s.Repo.GetProductBySKU(ctx, sku)
	case id != "":
		n, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: id must be an integer", ErrValidation)
		}
		return s.Repo.GetProduct(ctx, uint(n))
	default:
		return nil, fmt.Errorf("%w: provide sku or id", ErrValidation)
	}
}

func (s *StockService) Search(ctx context.Context, query string, size int) (int64, []models.Product, error) {
	return s.Index.Search(ctx, query, size)
}

func (s *StockService) syncIndex(ctx context.Context, p *models.Product) {
	if err := s.Index.IndexProduct(ctx, p); err != nil {
		logging.FromContext(ctx).Error("search index error", "product_id", p.ID, "error", err)
	}
}

func (s *StockService) publish(ctx context.Context, key string, event map[string]any) {
	topic := events.TopicProductEvents
	if t, ok := event["type"].(string); ok && strings.HasPrefix(t, "stock_") {
		topic = events.TopicStockEvents
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", topic, "error", err)
	}
}
