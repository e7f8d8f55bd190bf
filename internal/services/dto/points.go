package dto

import "freelance_backend/internal/models"

type PointOperationRequest struct {
	Amount int64  `json:"amount" validate:"gt=0"`
	Reason string `json:"reason" validate:"max=255"`
}

// PointOperationResult - состояние счета после операции и созданная транзакция
type PointOperationResult struct {
	Point       *models.Point       `json:"point"`
	Transaction *models.Transaction `json:"transaction"`
}

// LedgerReport сравнивает баланс с суммой транзакций
type LedgerReport struct {
	PointID        string `json:"point_id"`
	Balance        int64  `json:"balance"`
	TransactionSum int64  `json:"transaction_sum"`
	Consistent     bool   `json:"consistent"`
}
