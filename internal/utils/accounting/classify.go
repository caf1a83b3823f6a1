package accounting

import (
	"strings"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
)

// Kind is the reconciliation role of a ledger row.
type Kind int

const (
	KindNone Kind = iota
	KindSale
	KindSupply
	KindWithdrawal
)

// Classification is the outcome of Classify.
type Classification struct {
	Kind   Kind
	Tender domain.Tender
}

// Description tags written by the point of sale and by the till operations.
// Matching is case-insensitive.
var (
	saleTags       = []string{"PDV"}
	supplyTags     = []string{"REFORÇO", "REFORCO"}
	withdrawalTags = []string{"CAIXA:", "SANGUIA", "SANGRIA"}

	tenderTags = map[domain.Tender][]string{
		domain.TenderCash:   {"CASH", "DINHEIRO"},
		domain.TenderPix:    {"PIX"},
		domain.TenderCredit: {"CREDIT", "CRÉDITO"},
		domain.TenderDebit:  {"DEBIT", "DÉBITO"},
	}
)

// SupplyTag and WithdrawalTag prefix the descriptions of till operations so
// rows stay readable by consumers that only understand tags.
const (
	SupplyTag     = "Reforço de caixa"
	WithdrawalTag = "CAIXA:"
)

func containsAny(upper string, tags []string) bool {
	for _, tag := range tags {
		if strings.Contains(upper, tag) {
			return true
		}
	}
	return false
}

// DetectTender returns the first tender whose keywords appear in description.
func DetectTender(description string) domain.Tender {
	upper := strings.ToUpper(description)
	for _, tender := range domain.Tenders {
		if containsAny(upper, tenderTags[tender]) {
			return tender
		}
	}
	return domain.TenderNone
}

// Classify decides how a transaction participates in a till reconciliation.
// An explicit purpose always wins; rows without one fall back to description tags.
func Classify(tx domain.FinancialTransaction) Classification {
	if tx.Purpose != domain.PurposeUnset {
		switch {
		case tx.Purpose == domain.PurposeSale && tx.Type == domain.Income:
			return Classification{Kind: KindSale, Tender: tx.Tender}
		case tx.Purpose == domain.PurposeTillSupply && tx.Type == domain.Income:
			return Classification{Kind: KindSupply}
		case tx.Purpose == domain.PurposeTillWithdrawal && tx.Type == domain.Expense:
			return Classification{Kind: KindWithdrawal}
		}
		return Classification{Kind: KindNone}
	}

	upper := strings.ToUpper(tx.Description)
	switch tx.Type {
	case domain.Income:
		if containsAny(upper, saleTags) {
			tender := tx.Tender
			if tender == domain.TenderNone {
				tender = DetectTender(tx.Description)
			}
			return Classification{Kind: KindSale, Tender: tender}
		}
		if containsAny(upper, supplyTags) {
			return Classification{Kind: KindSupply}
		}
	case domain.Expense:
		if containsAny(upper, withdrawalTags) {
			return Classification{Kind: KindWithdrawal}
		}
	}
	return Classification{Kind: KindNone}
}
