package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/denmor86/balance-console/internal/logger"
	"github.com/denmor86/balance-console/internal/models"
	"github.com/denmor86/balance-console/internal/services"
	"github.com/denmor86/balance-console/internal/validators"
)

// TransferResponse - выполненный перевод и обновлённые стороны
type TransferResponse struct {
	Success         bool                   `json:"success"`
	Message         string                 `json:"message,omitempty"`
	Transfer        *models.TransferRecord `json:"transfer,omitempty"`
	UpdatedSender   *models.UserNode       `json:"updatedSender,omitempty"`
	UpdatedReceiver *models.UserNode       `json:"updatedReceiver,omitempty"`
}

// HistoryResponse - история переводов
type HistoryResponse struct {
	Success   bool                    `json:"success"`
	Transfers []models.TransferRecord `json:"transfers"`
}

// SummaryResponse - сводные строки по пользователям
type SummaryResponse struct {
	Success   bool                     `json:"success"`
	Summaries []models.TransferSummary `json:"summaries"`
}

// parseDateRange - границы диапазона дат из параметров запроса (RFC 3339
// или YYYY-MM-DD). Неразобранная граница игнорируется.
func parseDateRange(r *http.Request) (time.Time, time.Time) {
	parse := func(value string) time.Time {
		if value == "" {
			return time.Time{}
		}
		if t, err := time.Parse(time.RFC3339, value); err == nil {
			return t
		}
		if t, err := time.Parse("2006-01-02", value); err == nil {
			return t
		}
		return time.Time{}
	}
	params := r.URL.Query()
	return parse(params.Get("from")), parse(params.Get("to"))
}

// MakeTransferHandler — перевод средств текущего пользователя выбранному.
// Сумма и тип проверяются до обращения к бэкенду.
func MakeTransferHandler(i services.IdentityService, t services.TransfersService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		consoleSession, err := loadSession(r, i)
		if err != nil {
			WriteBackendError(w, err)
			return
		}

		var request models.TransferRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.Error("Failed to decode request", err)
			WriteError(w, http.StatusBadRequest, "invalid request format")
			return
		}
		if request.UserID == "" {
			WriteError(w, http.StatusBadRequest, "no user selected")
			return
		}
		if !validators.CheckTransferType(request.Type) {
			WriteError(w, http.StatusBadRequest, "invalid transfer type")
			return
		}
		if !validators.CheckAmount(request.Amount) {
			WriteError(w, http.StatusBadRequest, "invalid amount")
			return
		}

		result, err := t.Make(r.Context(), consoleSession, request)
		if err != nil {
			WriteBackendError(w, err)
			return
		}

		WriteJSON(w, http.StatusOK, TransferResponse{
			Success:         true,
			Message:         result.Message,
			Transfer:        result.Transfer,
			UpdatedSender:   result.UpdatedSender,
			UpdatedReceiver: result.UpdatedReceiver,
		})
	})
}

// TransferHistoryHandler — история переводов с сортировкой и диапазоном дат
func TransferHistoryHandler(i services.IdentityService, t services.TransfersService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		consoleSession, err := loadSession(r, i)
		if err != nil {
			WriteBackendError(w, err)
			return
		}

		from, to := parseDateRange(r)
		params := r.URL.Query()
		records, err := t.History(r.Context(), consoleSession.Token, services.HistoryQuery{
			From:    from,
			To:      to,
			SortKey: params.Get("sort"),
			Order:   params.Get("order"),
		})
		if err != nil {
			WriteBackendError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, HistoryResponse{Success: true, Transfers: records})
	})
}

// TransferSummaryHandler — сводка по пользователям: пополнения, списания,
// сальдо. Пересчитывается при каждом запросе по свежим данным.
func TransferSummaryHandler(i services.IdentityService, t services.TransfersService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		consoleSession, err := loadSession(r, i)
		if err != nil {
			WriteBackendError(w, err)
			return
		}

		from, to := parseDateRange(r)
		params := r.URL.Query()
		rows, err := t.Summary(r.Context(), consoleSession.Token, services.SummaryQuery{
			From:    from,
			To:      to,
			Search:  params.Get("search"),
			SortKey: params.Get("sort"),
			Order:   params.Get("order"),
		})
		if err != nil {
			WriteBackendError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, SummaryResponse{Success: true, Summaries: rows})
	})
}
