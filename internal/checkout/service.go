package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fjod/go_supply/internal/catalog"
	"github.com/fjod/go_supply/internal/domain"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// StockStore is the slice of the catalog checkout consumes.
type StockStore interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	DecrementStock(ctx context.Context, id string, amount float64) (float64, error)
}

type Service struct {
	catalog   StockStore
	publisher EventPublisher
}

func NewService(catalog StockStore, publisher EventPublisher) *Service {
	return &Service{
		catalog:   catalog,
		publisher: publisher,
	}
}

// ProcessCheckout reconciles a batch of requested items against stock.
// Each item is handled independently: its stock check and decrement are one
// conditional update, failures are collected per item, and commits made for
// earlier items are not rolled back when a later item fails. The batch
// succeeds when at least one item commits.
func (s *Service) ProcessCheckout(ctx context.Context, sessionID string, items []domain.CheckoutItem) (*domain.CheckoutResult, error) {
	result := &domain.CheckoutResult{
		CheckoutID: uuid.New().String(),
		Results:    []domain.CheckoutItemResult{},
		Errors:     []domain.CheckoutItemError{},
	}

	for _, item := range items {
		if item.ProductID == "" || item.Quantity <= 0 {
			result.Errors = append(result.Errors, domain.CheckoutItemError{
				ProductID: item.ProductID,
				Code:      domain.CheckoutErrInvalidItem,
				Message:   "productId is required and quantity must be greater than zero",
				Requested: item.Quantity,
			})
			continue
		}

		product, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			result.Errors = append(result.Errors, itemError(item, err, 0))
			continue
		}

		remaining, err := s.catalog.DecrementStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			result.Errors = append(result.Errors, itemError(item, err, s.availableStock(ctx, item.ProductID, product)))
			continue
		}

		result.Results = append(result.Results, domain.CheckoutItemResult{
			ProductID:      item.ProductID,
			Name:           product.Name,
			Quantity:       item.Quantity,
			RemainingStock: remaining,
			Status:         domain.CheckoutItemCommitted,
		})
	}

	result.Success = len(result.Results) > 0

	if result.Success {
		s.publishCompleted(ctx, sessionID, result)
	}

	return result, nil
}

// availableStock re-reads the product after a failed decrement: a concurrent
// checkout may have moved the stock since the initial read, and the rejection
// should report what is available now.
func (s *Service) availableStock(ctx context.Context, productID string, initial *domain.Product) float64 {
	fresh, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return initial.Stock
	}
	return fresh.Stock
}

func (s *Service) publishCompleted(ctx context.Context, sessionID string, result *domain.CheckoutResult) {
	if s.publisher == nil || sessionID == "" {
		return
	}

	event := domain.CheckoutCompletedEvent{
		CheckoutID:  result.CheckoutID,
		SessionID:   sessionID,
		Items:       result.Results,
		CompletedAt: time.Now(),
	}

	// Best effort: the stock decrements have already committed, so a publish
	// failure only delays the cart cleanup.
	if err := s.publisher.Publish(ctx, event); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"checkout_id": result.CheckoutID,
			"session_id":  sessionID,
		}).Warn("failed to publish checkout event")
	}
}

func itemError(item domain.CheckoutItem, err error, available float64) domain.CheckoutItemError {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		return domain.CheckoutItemError{
			ProductID: item.ProductID,
			Code:      domain.CheckoutErrProductNotFound,
			Message:   "product not found",
			Requested: item.Quantity,
		}
	case errors.Is(err, catalog.ErrInsufficientStock):
		return domain.CheckoutItemError{
			ProductID: item.ProductID,
			Code:      domain.CheckoutErrInsufficientStock,
			Message:   fmt.Sprintf("requested %.2f but only %.2f available", item.Quantity, available),
			Requested: item.Quantity,
			Available: available,
		}
	default:
		return domain.CheckoutItemError{
			ProductID: item.ProductID,
			Code:      domain.CheckoutErrInternal,
			Message:   "failed to process item",
			Requested: item.Quantity,
		}
	}
}
