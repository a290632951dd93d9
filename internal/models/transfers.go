package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Типы переводов
const (
	TransferTypeDeposit  = "deposit"
	TransferTypeWithdraw = "withdraw"
)

// DefaultCurrency - единственная валюта системы
const DefaultCurrency = "TND"

// TransferParty - участник перевода (отправитель или получатель)
type TransferParty struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// TransferRecord - запись о переводе средств, принадлежит бэкенду.
// Снимки баланса до и после относятся к счёту, затронутому переводом.
type TransferRecord struct {
	ID            string          `json:"_id"`
	Sender        *TransferParty  `json:"sender"`
	Receiver      *TransferParty  `json:"receiver"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Note          string          `json:"note,omitempty"`
	Currency      string          `json:"currency,omitempty"`
	BalanceBefore decimal.Decimal `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	Date          time.Time       `json:"date"`
}

// TransferSummary - агрегированная строка по пользователю:
// суммы пополнений, списаний и сальдо за один проход по переводам.
// Вычисляется заново при каждом обновлении данных, нигде не хранится.
type TransferSummary struct {
	Username string          `json:"username"`
	Deposit  decimal.Decimal `json:"deposit"`
	Withdraw decimal.Decimal `json:"withdraw"`
	Net      decimal.Decimal `json:"net"`
	Currency string          `json:"currency"`
	LastDate time.Time       `json:"lastDate"`
}

// TransferRequest - запрос консоли на перевод средств выбранному пользователю
type TransferRequest struct {
	UserID string  `json:"userId"`
	Amount float64 `json:"amount"`
	Type   string  `json:"type"`
	Note   string  `json:"note,omitempty"`
}
