package services

import (
	"math"
	"strings"

	"freelance_backend/internal/logger"
	"freelance_backend/internal/models"
	"freelance_backend/internal/repositories"
	"freelance_backend/internal/services/dto"
	"freelance_backend/internal/validator"
	"freelance_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type PointService interface {
	OpenPoint(db *gorm.DB, userID string) (*models.Point, error)
	GetPoint(db *gorm.DB, userID string) (*models.Point, error)
	Credit(db *gorm.DB, userID string, req *dto.PointOperationRequest) (*dto.PointOperationResult, error)
	Debit(db *gorm.DB, userID string, req *dto.PointOperationRequest) (*dto.PointOperationResult, error)
	ListTransactions(db *gorm.DB, userID string, page dto.PaginationRequest) (*dto.PaginatedResponse[models.Transaction], error)
	DeletePoint(db *gorm.DB, userID string) error
	ReconcileLedger(db *gorm.DB, userID string) (*dto.LedgerReport, error)
}

type PointServiceImpl struct {
	pointRepo repositories.PointRepository
	userRepo  repositories.UserRepository
	validator *validator.Validator
}

func NewPointService(pointRepo repositories.PointRepository, userRepo repositories.UserRepository, v *validator.Validator) PointService {
	return &PointServiceImpl{
		pointRepo: pointRepo,
		userRepo:  userRepo,
		validator: v,
	}
}

// OpenPoint открывает счет баллов с нулевым балансом.
func (s *PointServiceImpl) OpenPoint(db *gorm.DB, userID string) (*models.Point, error) {
	point := &models.Point{UserID: userID}
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepo.FindByID(tx, userID); err != nil {
			return err
		}
		return s.pointRepo.CreatePoint(tx, point)
	})
	if err != nil {
		return nil, handleRepoError(err)
	}

	logger.CtxInfo(db.Statement.Context, "point account opened", "user_id", userID, "point_id", point.ID)
	return point, nil
}

func (s *PointServiceImpl) GetPoint(db *gorm.DB, userID string) (*models.Point, error) {
	point, err := s.pointRepo.FindPointByUserID(db, userID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return point, nil
}

// Credit начисляет баллы и пишет положительную транзакцию.
func (s *PointServiceImpl) Credit(db *gorm.DB, userID string, req *dto.PointOperationRequest) (*dto.PointOperationResult, error) {
	return s.apply(db, userID, req, 1, models.TransactionReasonCredit)
}

// Debit списывает баллы. Баланс не может уйти в минус.
func (s *PointServiceImpl) Debit(db *gorm.DB, userID string, req *dto.PointOperationRequest) (*dto.PointOperationResult, error) {
	return s.apply(db, userID, req, -1, models.TransactionReasonDebit)
}

// apply меняет баланс и создает транзакцию атомарно; строка счета
// заблокирована до конца транзакции.
func (s *PointServiceImpl) apply(db *gorm.DB, userID string, req *dto.PointOperationRequest, sign int64, defaultReason string) (*dto.PointOperationResult, error) {
	if req.Amount <= 0 {
		return nil, apperrors.ErrInvalidPointAmount
	}
	if err := validateRequest(s.validator, req); err != nil {
		return nil, err
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = defaultReason
	}
	delta := sign * req.Amount

	var result dto.PointOperationResult
	err := db.Transaction(func(tx *gorm.DB) error {
		point, err := s.pointRepo.FindPointByUserIDForUpdate(tx, userID)
		if err != nil {
			return err
		}
		if sign > 0 && point.Amount > math.MaxInt64-req.Amount {
			return apperrors.ErrPointsOverflow.WithDetails(map[string]int64{
				"balance":   point.Amount,
				"requested": req.Amount,
			})
		}
		balance := point.Amount + delta
		if balance < 0 {
			return apperrors.ErrInsufficientPoints.WithDetails(map[string]int64{
				"balance":   point.Amount,
				"requested": req.Amount,
			})
		}

		if err := s.pointRepo.UpdateBalance(tx, point.ID, balance); err != nil {
			return err
		}
		point.Amount = balance

		transaction := &models.Transaction{
			PointID: point.ID,
			Amount:  delta,
			Reason:  reason,
		}
		if err := s.pointRepo.CreateTransaction(tx, transaction); err != nil {
			return err
		}

		result.Point = point
		result.Transaction = transaction
		return nil
	})
	if err != nil {
		return nil, handleRepoError(err)
	}

	logger.CtxInfo(db.Statement.Context, "points balance changed",
		"user_id", userID,
		"delta", delta,
		"balance", result.Point.Amount,
		"reason", reason,
	)
	return &result, nil
}

func (s *PointServiceImpl) ListTransactions(db *gorm.DB, userID string, page dto.PaginationRequest) (*dto.PaginatedResponse[models.Transaction], error) {
	point, err := s.pointRepo.FindPointByUserID(db, userID)
	if err != nil {
		return nil, handleRepoError(err)
	}

	page = page.Normalize()
	transactions, total, err := s.pointRepo.FindTransactions(db, point.ID, repositories.Pagination{
		Limit:  page.PageSize,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, handleRepoError(err)
	}
	return dto.NewPaginatedResponse(transactions, total, page), nil
}

func (s *PointServiceImpl) DeletePoint(db *gorm.DB, userID string) error {
	if err := s.pointRepo.DeletePoint(db, userID); err != nil {
		return handleRepoError(err)
	}
	logger.CtxInfo(db.Statement.Context, "point account deleted", "user_id", userID)
	return nil
}

// ReconcileLedger сверяет баланс счета с суммой его транзакций.
// Баланс и сумма читаются в одной транзакции под блокировкой строки счета.
func (s *PointServiceImpl) ReconcileLedger(db *gorm.DB, userID string) (*dto.LedgerReport, error) {
	var report dto.LedgerReport
	err := db.Transaction(func(tx *gorm.DB) error {
		point, err := s.pointRepo.FindPointByUserIDForUpdate(tx, userID)
		if err != nil {
			return err
		}
		sum, err := s.pointRepo.SumTransactions(tx, point.ID)
		if err != nil {
			return err
		}

		report = dto.LedgerReport{
			PointID:        point.ID,
			Balance:        point.Amount,
			TransactionSum: sum,
			Consistent:     point.Amount == sum,
		}
		return nil
	})
	if err != nil {
		return nil, handleRepoError(err)
	}

	if !report.Consistent {
		logger.CtxWarn(db.Statement.Context, "points ledger mismatch",
			"point_id", report.PointID, "balance", report.Balance, "sum", report.TransactionSum)
	}
	return &report, nil
}
