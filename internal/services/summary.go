package services

import (
	"sort"
	"strings"
	"time"

	"github.com/denmor86/balance-console/internal/models"
	"github.com/shopspring/decimal"
)

// Имена-заглушки для записей с неполными данными: такие переводы
// учитываются в итогах, а не отбрасываются.
const (
	UnknownSender   = "Unknown Sender"
	UnknownReceiver = "Unknown Receiver"
)

type summaryAccumulator struct {
	deposit  decimal.Decimal
	withdraw decimal.Decimal
	lastDate time.Time
}

// Aggregate - сводит плоский список переводов в строки по пользователям
// за один проход. Пополнение учитывается только на счётчике получателя,
// списание - только на счётчике отправителя: встречная сторона перевода
// в этой записи не затрагивается (поведение учёта сохранено как есть).
// Результат отсортирован по имени, представление сортирует по-своему.
func Aggregate(records []models.TransferRecord) []models.TransferSummary {
	accumulators := make(map[string]*summaryAccumulator)
	get := func(username string) *summaryAccumulator {
		acc, ok := accumulators[username]
		if !ok {
			acc = &summaryAccumulator{deposit: decimal.Zero, withdraw: decimal.Zero}
			accumulators[username] = acc
		}
		return acc
	}

	for _, record := range records {
		switch record.Type {
		case models.TransferTypeDeposit:
			username := UnknownReceiver
			if record.Receiver != nil && record.Receiver.Username != "" {
				username = record.Receiver.Username
			}
			acc := get(username)
			acc.deposit = acc.deposit.Add(record.Amount)
			if record.Date.After(acc.lastDate) {
				acc.lastDate = record.Date
			}
		case models.TransferTypeWithdraw:
			username := UnknownSender
			if record.Sender != nil && record.Sender.Username != "" {
				username = record.Sender.Username
			}
			acc := get(username)
			acc.withdraw = acc.withdraw.Add(record.Amount)
			if record.Date.After(acc.lastDate) {
				acc.lastDate = record.Date
			}
		}
	}

	rows := make([]models.TransferSummary, 0, len(accumulators))
	for username, acc := range accumulators {
		rows = append(rows, models.TransferSummary{
			Username: username,
			Deposit:  acc.deposit,
			Withdraw: acc.withdraw,
			Net:      acc.deposit.Sub(acc.withdraw),
			Currency: models.DefaultCurrency,
			LastDate: acc.lastDate,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Username < rows[j].Username })
	return rows
}

// FilterRecordsByDate - записи в диапазоне дат, применяется до агрегации.
// Нулевые границы означают отсутствие ограничения.
func FilterRecordsByDate(records []models.TransferRecord, from time.Time, to time.Time) []models.TransferRecord {
	if from.IsZero() && to.IsZero() {
		return records
	}
	filtered := make([]models.TransferRecord, 0, len(records))
	for _, record := range records {
		if !from.IsZero() && record.Date.Before(from) {
			continue
		}
		if !to.IsZero() && record.Date.After(to) {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered
}

// FilterSummaries - поиск по подстроке имени пользователя
func FilterSummaries(rows []models.TransferSummary, search string) []models.TransferSummary {
	if search == "" {
		return rows
	}
	needle := strings.ToLower(search)
	filtered := make([]models.TransferSummary, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Username), needle) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// SortSummaries - сортировка сводных строк по ключу
func SortSummaries(rows []models.TransferSummary, key string, desc bool) {
	less := func(a, b models.TransferSummary) bool { return false }
	switch key {
	case "username":
		less = func(a, b models.TransferSummary) bool { return a.Username < b.Username }
	case "deposit":
		less = func(a, b models.TransferSummary) bool { return a.Deposit.LessThan(b.Deposit) }
	case "withdraw":
		less = func(a, b models.TransferSummary) bool { return a.Withdraw.LessThan(b.Withdraw) }
	case "net":
		less = func(a, b models.TransferSummary) bool { return a.Net.LessThan(b.Net) }
	default:
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}

// SortRecords - сортировка истории переводов по ключу
func SortRecords(records []models.TransferRecord, key string, desc bool) {
	partyName := func(party *models.TransferParty) string {
		if party == nil {
			return ""
		}
		return party.Username
	}
	less := func(a, b models.TransferRecord) bool { return false }
	switch key {
	case "date":
		less = func(a, b models.TransferRecord) bool { return a.Date.Before(b.Date) }
	case "sender":
		less = func(a, b models.TransferRecord) bool { return partyName(a.Sender) < partyName(b.Sender) }
	case "receiver":
		less = func(a, b models.TransferRecord) bool { return partyName(a.Receiver) < partyName(b.Receiver) }
	case "type":
		less = func(a, b models.TransferRecord) bool { return a.Type < b.Type }
	case "amount":
		less = func(a, b models.TransferRecord) bool { return a.Amount.LessThan(b.Amount) }
	case "balanceBefore":
		less = func(a, b models.TransferRecord) bool { return a.BalanceBefore.LessThan(b.BalanceBefore) }
	case "balanceAfter":
		less = func(a, b models.TransferRecord) bool { return a.BalanceAfter.LessThan(b.BalanceAfter) }
	default:
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		if desc {
			return less(records[j], records[i])
		}
		return less(records[i], records[j])
	})
}
