package models

type BusinessType string

const (
	BusinessTypeIndividual BusinessType = "Individual"
	BusinessTypeCorporate  BusinessType = "Corporate"
)

// AllBusinessTypes - допустимые значения Business.Biz
func AllBusinessTypes() []BusinessType {
	return []BusinessType{BusinessTypeIndividual, BusinessTypeCorporate}
}

func (b BusinessType) IsValid() bool {
	switch b {
	case BusinessTypeIndividual, BusinessTypeCorporate:
		return true
	default:
		return false
	}
}

// Причины движения баллов по умолчанию
const (
	TransactionReasonCredit = "credit"
	TransactionReasonDebit  = "debit"
)
