package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashBreakdown is the reconciliation of one shift's till.
type CashBreakdown struct {
	CashSales             decimal.Decimal `json:"cashSales"`
	PixSales              decimal.Decimal `json:"pixSales"`
	CreditSales           decimal.Decimal `json:"creditSales"`
	DebitSales            decimal.Decimal `json:"debitSales"`
	UncategorizedSales    decimal.Decimal `json:"uncategorizedSales"`
	SystemCalculatedTotal decimal.Decimal `json:"systemCalculatedTotal"`
	Supplies              decimal.Decimal `json:"supplies"`
	Expenses              decimal.Decimal `json:"expenses"`
	OpeningBalance        decimal.Decimal `json:"openingBalance"`
	ExpectedCash          decimal.Decimal `json:"expectedCash"`
	CountedCash           decimal.Decimal `json:"countedCash"`
	Difference            decimal.Decimal `json:"difference"`
	Balanced              bool            `json:"balanced"`
}

// IncomeStatement is the DRE cascade for a period.
type IncomeStatement struct {
	PeriodStart  time.Time       `json:"periodStart"`
	PeriodEnd    time.Time       `json:"periodEnd"`
	GrossRevenue decimal.Decimal `json:"grossRevenue"`
	Taxes        decimal.Decimal `json:"taxes"`
	NetRevenue   decimal.Decimal `json:"netRevenue"`
	CMV          decimal.Decimal `json:"cmv"`
	GrossProfit  decimal.Decimal `json:"grossProfit"`
	Labor        decimal.Decimal `json:"labor"`
	Utility      decimal.Decimal `json:"utility"`
	Service      decimal.Decimal `json:"service"`
	Other        decimal.Decimal `json:"other"`
	EBITDA       decimal.Decimal `json:"ebitda"`
	// Margins are percentages of gross revenue; zero when there is no revenue.
	GrossMargin  decimal.Decimal `json:"grossMargin"`
	EBITDAMargin decimal.Decimal `json:"ebitdaMargin"`
}

// ProjectionStatus summarises a cash projection.
type ProjectionStatus string

const (
	ProjectionHealthy       ProjectionStatus = "HEALTHY"
	ProjectionShortfallRisk ProjectionStatus = "SHORTFALL_RISK"
)

// ProjectionPoint is one day of a cash projection.
type ProjectionPoint struct {
	Date    time.Time       `json:"date"`
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	Balance decimal.Decimal `json:"balance"`
}

// CashProjection is the day-by-day forward balance.
type CashProjection struct {
	StartingBalance decimal.Decimal   `json:"startingBalance"`
	Points          []ProjectionPoint `json:"points"`
	MinBalance      decimal.Decimal   `json:"minBalance"`
	MinBalanceDate  time.Time         `json:"minBalanceDate"`
	Status          ProjectionStatus  `json:"status"`
}

// SettlementEntry is the expected payout of one electronic sale.
type SettlementEntry struct {
	TransactionID     string          `json:"transactionId"`
	SaleDate          time.Time       `json:"saleDate"`
	Tender            Tender          `json:"tender"`
	PaymentMethodID   string          `json:"paymentMethodId"`
	PaymentMethodName string          `json:"paymentMethodName"`
	Gross             decimal.Decimal `json:"gross"`
	Fee               decimal.Decimal `json:"fee"`
	Net               decimal.Decimal `json:"net"`
	SettlementDate    time.Time       `json:"settlementDate"`
}

// SettlementSchedule aggregates settlement entries for a sales window.
type SettlementSchedule struct {
	From       time.Time         `json:"from"`
	To         time.Time         `json:"to"`
	Entries    []SettlementEntry `json:"entries"`
	Unmatched  []string          `json:"unmatchedTransactionIds"`
	TotalGross decimal.Decimal   `json:"totalGross"`
	TotalFee   decimal.Decimal   `json:"totalFee"`
	TotalNet   decimal.Decimal   `json:"totalNet"`
}
