package services_test

import (
	"math"
	"testing"

	"freelance_backend/internal/models"
	"freelance_backend/internal/repositories"
	"freelance_backend/internal/services"
	"freelance_backend/internal/services/dto"
	"freelance_backend/internal/validator"
	"freelance_backend/pkg/apperrors"
	"freelance_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPointService_OpenPoint(t *testing.T) {
	tx, svc := setup(t)
	user := newUser(t, tx)

	point, err := svc.PointService.OpenPoint(tx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), point.Amount)

	_, err = svc.PointService.OpenPoint(tx, user.ID)
	assertAppError(t, err, apperrors.ErrPointAlreadyExists)

	_, err = svc.PointService.OpenPoint(tx, "missing-user")
	assertAppError(t, err, apperrors.ErrUserNotFound)
}

func TestPointService_CreditDebit(t *testing.T) {
	tx, svc := setup(t)
	user := newUser(t, tx)
	_, err := svc.PointService.OpenPoint(tx, user.ID)
	require.NoError(t, err)

	credit, err := svc.PointService.Credit(tx, user.ID, &dto.PointOperationRequest{Amount: 100, Reason: "signup bonus"})
	require.NoError(t, err)
	assert.Equal(t, int64(100), credit.Point.Amount)
	assert.Equal(t, int64(100), credit.Transaction.Amount)
	assert.Equal(t, "signup bonus", credit.Transaction.Reason)

	debit, err := svc.PointService.Debit(tx, user.ID, &dto.PointOperationRequest{Amount: 30})
	require.NoError(t, err)
	assert.Equal(t, int64(70), debit.Point.Amount)
	assert.Equal(t, int64(-30), debit.Transaction.Amount)
	assert.Equal(t, models.TransactionReasonDebit, debit.Transaction.Reason)

	point, err := svc.PointService.GetPoint(tx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(70), point.Amount)

	page, err := svc.PointService.ListTransactions(tx, user.ID, dto.PaginationRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Len(t, page.Data, 2)

	report, err := svc.PointService.ReconcileLedger(tx, user.ID)
	require.NoError(t, err)
	assert.True(t, report.Consistent)
	assert.Equal(t, int64(70), report.TransactionSum)
}

func TestPointService_Debit_Insufficient(t *testing.T) {
	tx, svc := setup(t)
	user := newUser(t, tx)
	_, err := svc.PointService.OpenPoint(tx, user.ID)
	require.NoError(t, err)
	_, err = svc.PointService.Credit(tx, user.ID, &dto.PointOperationRequest{Amount: 10})
	require.NoError(t, err)

	_, err = svc.PointService.Debit(tx, user.ID, &dto.PointOperationRequest{Amount: 11})
	assertAppError(t, err, apperrors.ErrInsufficientPoints)

	// баланс и журнал не изменились
	point, err := svc.PointService.GetPoint(tx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), point.Amount)
	assert.Equal(t, int64(1), helpers.CountRows(t, tx, "transactions", "point_id = ?", point.ID))
}

func TestPointService_Credit_Overflow(t *testing.T) {
	tx, svc := setup(t)
	user := newUser(t, tx)
	_, err := svc.PointService.OpenPoint(tx, user.ID)
	require.NoError(t, err)
	_, err = svc.PointService.Credit(tx, user.ID, &dto.PointOperationRequest{Amount: 10})
	require.NoError(t, err)

	_, err = svc.PointService.Credit(tx, user.ID, &dto.PointOperationRequest{Amount: math.MaxInt64})
	assertAppError(t, err, apperrors.ErrPointsOverflow)

	point, err := svc.PointService.GetPoint(tx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), point.Amount)

	// до предела включительно - можно
	result, err := svc.PointService.Credit(tx, user.ID, &dto.PointOperationRequest{Amount: math.MaxInt64 - 10})
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), result.Point.Amount)
}

func TestPointService_InvalidAmount(t *testing.T) {
	tx, svc := setup(t)
	user := newUser(t, tx)
	_, err := svc.PointService.OpenPoint(tx, user.ID)
	require.NoError(t, err)

	for _, amount := range []int64{0, -5} {
		_, err = svc.PointService.Credit(tx, user.ID, &dto.PointOperationRequest{Amount: amount})
		assertAppError(t, err, apperrors.ErrInvalidPointAmount)
	}

	_, err = svc.PointService.Credit(tx, "missing-user", &dto.PointOperationRequest{Amount: 1})
	assertAppError(t, err, apperrors.ErrPointNotFound)
}

func TestPointService_ReconcileLedger_Mismatch(t *testing.T) {
	tx, svc := setup(t)
	user := newUser(t, tx)
	point, err := svc.PointService.OpenPoint(tx, user.ID)
	require.NoError(t, err)
	_, err = svc.PointService.Credit(tx, user.ID, &dto.PointOperationRequest{Amount: 5})
	require.NoError(t, err)

	// ручная правка баланса в обход журнала
	require.NoError(t, tx.Model(&models.Point{}).Where("id = ?", point.ID).Update("amount", 50).Error)

	report, err := svc.PointService.ReconcileLedger(tx, user.ID)
	require.NoError(t, err)
	assert.False(t, report.Consistent)
	assert.Equal(t, int64(50), report.Balance)
	assert.Equal(t, int64(5), report.TransactionSum)
}

// lockingPointRepo считает чтения счета с блокировкой
type lockingPointRepo struct {
	repositories.PointRepository
	locked int
}

func (r *lockingPointRepo) FindPointByUserIDForUpdate(db *gorm.DB, userID string) (*models.Point, error) {
	r.locked++
	return r.PointRepository.FindPointByUserIDForUpdate(db, userID)
}

func TestPointService_ReconcileLedger_LocksPoint(t *testing.T) {
	tx, svc := setup(t)
	user := newUser(t, tx)
	_, err := svc.PointService.OpenPoint(tx, user.ID)
	require.NoError(t, err)
	_, err = svc.PointService.Credit(tx, user.ID, &dto.PointOperationRequest{Amount: 7})
	require.NoError(t, err)

	repo := &lockingPointRepo{PointRepository: repositories.NewPointRepository()}
	pointService := services.NewPointService(repo, repositories.NewUserRepository(), validator.New())

	report, err := pointService.ReconcileLedger(tx, user.ID)
	require.NoError(t, err)
	assert.True(t, report.Consistent)
	assert.Equal(t, int64(7), report.Balance)
	assert.Equal(t, 1, repo.locked)

	_, err = pointService.ReconcileLedger(tx, "missing-user")
	assertAppError(t, err, apperrors.ErrPointNotFound)
}

func TestPointService_DeletePoint(t *testing.T) {
	tx, svc := setup(t)
	user := newUser(t, tx)
	point, err := svc.PointService.OpenPoint(tx, user.ID)
	require.NoError(t, err)
	_, err = svc.PointService.Credit(tx, user.ID, &dto.PointOperationRequest{Amount: 5})
	require.NoError(t, err)

	require.NoError(t, svc.PointService.DeletePoint(tx, user.ID))
	assert.Equal(t, int64(0), helpers.CountRows(t, tx, "transactions", "point_id = ?", point.ID))

	err = svc.PointService.DeletePoint(tx, user.ID)
	assertAppError(t, err, apperrors.ErrPointNotFound)
}
