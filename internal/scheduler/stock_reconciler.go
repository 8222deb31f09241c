package scheduler

import (
	"github.com/shlee-dev/veloura-backend/internal/app/model"
	"github.com/shlee-dev/veloura-backend/internal/app/repository"
	"github.com/shlee-dev/veloura-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// StockReconciler periodically re-derives each product's aggregate stock
// from its variant sum. Order placement keeps both in step, but direct
// admin edits to variant rows can introduce drift.
type StockReconciler struct {
	cron        *cron.Cron
	productRepo repository.ProductRepository
}

func NewStockReconciler(productRepo repository.ProductRepository) *StockReconciler {
	return &StockReconciler{
		cron:        cron.New(),
		productRepo: productRepo,
	}
}

// Start schedules the reconciliation run every hour
func (s *StockReconciler) Start() error {
	_, err := s.cron.AddFunc("@hourly", func() {
		if err := s.Reconcile(); err != nil {
			logger.Error("Scheduled stock reconciliation failed", err)
		}
	})
	if err != nil {
		logger.Error("Failed to add cron job for stock reconciliation", err)
		return err
	}

	s.cron.Start()
	logger.Info("Stock reconciler started (hourly)", nil)
	return nil
}

// Reconcile repairs every product whose aggregate disagrees with its
// variant sum. Variantless products are left alone.
func (s *StockReconciler) Reconcile() error {
	products, err := s.productRepo.FindWithVariants()
	if err != nil {
		return err
	}

	repaired := 0
	for i := range products {
		product := &products[i]
		sum := variantSum(product.Variants)
		if product.StockQuantity == sum {
			continue
		}

		logger.Warn("Aggregate stock drift detected", map[string]interface{}{
			"product_id": product.ID,
			"aggregate":  product.StockQuantity,
			"sum":        sum,
		})

		product.StockQuantity = sum
		if err := s.productRepo.Update(product); err != nil {
			return err
		}
		repaired++
	}

	logger.Info("Stock reconciliation completed", map[string]interface{}{
		"checked":  len(products),
		"repaired": repaired,
	})
	return nil
}

func (s *StockReconciler) Stop() {
	s.cron.Stop()
	logger.Info("Stock reconciler stopped", nil)
}

func variantSum(variants []model.ProductVariant) int {
	sum := 0
	for _, v := range variants {
		sum += v.StockQuantity
	}
	return sum
}
