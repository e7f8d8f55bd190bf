package workers

import (
	"context"
	"errors"
	"time"

	"freelance_backend/internal/logger"
	"freelance_backend/internal/repositories"
	"freelance_backend/internal/services"
	"freelance_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// LedgerWorker периодически сверяет балансы баллов с журналом транзакций.
// Расхождения только логируются, баланс не исправляется.
type LedgerWorker struct {
	db           *gorm.DB
	pointRepo    repositories.PointRepository
	pointService services.PointService
	interval     time.Duration
	batchSize    int
}

func NewLedgerWorker(
	db *gorm.DB,
	pointRepo repositories.PointRepository,
	pointService services.PointService,
	interval time.Duration,
	batchSize int,
) *LedgerWorker {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &LedgerWorker{
		db:           db,
		pointRepo:    pointRepo,
		pointService: pointService,
		interval:     interval,
		batchSize:    batchSize,
	}
}

// Start запускает сверку в фоне. При interval <= 0 ничего не делает.
func (w *LedgerWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		logger.Info("Ledger worker disabled")
		return
	}
	go w.loop(ctx)
}

func (w *LedgerWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Ledger worker stopped")
			return
		case <-ticker.C:
			checked, mismatched, err := w.RunOnce(ctx)
			if err != nil {
				logger.Error("Ledger reconciliation failed", "error", err)
				continue
			}
			logger.Info("Ledger reconciliation finished", "checked", checked, "mismatched", mismatched)
		}
	}
}

// RunOnce проходит по всем счетам и возвращает число проверенных
// и число несошедшихся. Счета, удаленные во время обхода, пропускаются.
func (w *LedgerWorker) RunOnce(ctx context.Context) (checked, mismatched int, err error) {
	db := w.db.WithContext(ctx)

	after := ""
	for {
		if err := ctx.Err(); err != nil {
			return checked, mismatched, err
		}

		userIDs, err := w.pointRepo.FindPointOwners(db, after, w.batchSize)
		if err != nil {
			return checked, mismatched, err
		}

		for _, userID := range userIDs {
			report, err := w.pointService.ReconcileLedger(db, userID)
			if errors.Is(err, apperrors.ErrPointNotFound) {
				logger.Warn("Point account vanished during reconciliation", "user_id", userID)
				continue
			}
			if err != nil {
				return checked, mismatched, err
			}
			checked++
			if !report.Consistent {
				mismatched++
			}
		}

		if len(userIDs) < w.batchSize {
			return checked, mismatched, nil
		}
		after = userIDs[len(userIDs)-1]
	}
}
