package validators

import (
	"regexp"

	"github.com/denmor86/balance-console/internal/models"
)

// usernameRegexp - 4-16 символов: буквы, цифры, точка, подчёркивание, дефис
var usernameRegexp = regexp.MustCompile(`^[a-zA-Z0-9._-]{4,16}$`)

// CheckUsername проверяет формат имени пользователя до обращения к бэкенду
func CheckUsername(username string) bool {
	return usernameRegexp.MatchString(username)
}

// CheckRole проверяет, что роль входит в список допустимых
func CheckRole(role string) bool {
	for _, known := range models.Roles {
		if role == known {
			return true
		}
	}
	return false
}

// CheckTransferType проверяет тип перевода
func CheckTransferType(transferType string) bool {
	return transferType == models.TransferTypeDeposit || transferType == models.TransferTypeWithdraw
}

// CheckAmount проверяет сумму перевода: строго положительная
func CheckAmount(amount float64) bool {
	return amount > 0
}
