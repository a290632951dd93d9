package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/denmor86/balance-console/internal/models"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client - реализация Backend поверх HTTP
type Client struct {
	baseURL    string
	httpClient HTTPClient
}

func NewClient(baseURL string, client HTTPClient) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: client,
	}
}

const unreachableMessage = "network error or server is unreachable"

// do - выполняет запрос и декодирует успешный ответ в out.
// Сбой транспорта нормализуется в ошибку со статусом 500 и общим
// сообщением о недоступности, ответы с ошибкой - в таксономию клиента.
func (c *Client) do(ctx context.Context, method string, path string, token string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return NewAPIError(http.StatusInternalServerError, unreachableMessage, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return HandleErrorResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewAPIError(http.StatusInternalServerError, "malformed backend response", ErrBackend)
	}
	return nil
}

// HandleErrorResponse - нормализация ответа с ошибкой: сообщение бэкенда
// сохраняется, статус привязывается к таксономии клиента.
func HandleErrorResponse(resp *http.Response) error {
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if payload.Message == "" {
			payload.Message = "invalid credentials"
		}
		return NewAPIError(resp.StatusCode, payload.Message, ErrUnauthorized)
	case http.StatusConflict:
		if payload.Message == "" {
			payload.Message = "user already registered"
		}
		return NewAPIError(resp.StatusCode, payload.Message, ErrConflict)
	case http.StatusNotFound:
		if payload.Message == "" {
			payload.Message = "not found"
		}
		return NewAPIError(resp.StatusCode, payload.Message, ErrNotFound)
	case http.StatusTooManyRequests:
		return NewRateLimitError(resp.Header)
	default:
		if payload.Message == "" {
			payload.Message = "server error"
		}
		return NewAPIError(resp.StatusCode, payload.Message, ErrBackend)
	}
}

// Register - регистрация новой учётной записи под создателем
func (c *Client) Register(ctx context.Context, payload RegisterPayload) (string, error) {
	var result struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", payload, &result); err != nil {
		return "", err
	}
	return result.Message, nil
}

// Login - аутентификация на бэкенде
func (c *Client) Login(ctx context.Context, username string, password string) (*LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	var result struct {
		Token   string           `json:"token"`
		User    *models.UserNode `json:"user"`
		Message string           `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &result); err != nil {
		return nil, err
	}
	if result.Token == "" || result.User == nil {
		return nil, NewAPIError(http.StatusInternalServerError, "malformed backend response", ErrBackend)
	}
	return &LoginResult{Token: result.Token, User: result.User, Message: result.Message}, nil
}

// GetUser - пользователь по идентификатору, без поддерева
func (c *Client) GetUser(ctx context.Context, token string, id string) (*models.UserNode, error) {
	var result struct {
		User *models.UserNode `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/user/"+id, token, nil, &result); err != nil {
		return nil, err
	}
	if result.User == nil {
		return nil, NewAPIError(http.StatusNotFound, "user not found", ErrNotFound)
	}
	return result.User, nil
}

// subtreeResponse - ответ usersByCreater. Исторически бэкенд отдавал корень
// то в user, то в users (узлом или списком), поэтому принимаются обе формы.
type subtreeResponse struct {
	User  *models.UserNode `json:"user"`
	Users json.RawMessage  `json:"users"`
}

func (r *subtreeResponse) root() (*models.UserNode, error) {
	if r.User != nil {
		return r.User, nil
	}
	raw := bytes.TrimSpace(r.Users)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, NewAPIError(http.StatusNotFound, "subtree not found", ErrNotFound)
	}
	if raw[0] == '[' {
		var list []*models.UserNode
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, NewAPIError(http.StatusInternalServerError, "malformed backend response", ErrBackend)
		}
		if len(list) == 0 {
			return nil, NewAPIError(http.StatusNotFound, "subtree not found", ErrNotFound)
		}
		return list[0], nil
	}
	var node models.UserNode
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, NewAPIError(http.StatusInternalServerError, "malformed backend response", ErrBackend)
	}
	return &node, nil
}

// GetUserTree - поддерево созданных пользователей одним запросом,
// корень с вложенными children.
func (c *Client) GetUserTree(ctx context.Context, token string, creatorID string) (*models.UserNode, error) {
	var result subtreeResponse
	if err := c.do(ctx, http.MethodGet, "/auth/usersByCreater/"+creatorID, token, nil, &result); err != nil {
		return nil, err
	}
	return result.root()
}

// UpdateUser - изменение пользователя, возвращает обновлённую запись
func (c *Client) UpdateUser(ctx context.Context, token string, payload UpdatePayload) (*models.UserNode, error) {
	var result struct {
		Message string           `json:"message"`
		User    *models.UserNode `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/auth/update", token, payload, &result); err != nil {
		return nil, err
	}
	if result.User == nil {
		return nil, NewAPIError(http.StatusInternalServerError, "malformed backend response", ErrBackend)
	}
	return result.User, nil
}

// DeleteUser - удаление пользователя по идентификатору
func (c *Client) DeleteUser(ctx context.Context, token string, id string) (string, error) {
	var result struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodDelete, "/auth/delete_user/"+id, token, nil, &result); err != nil {
		return "", err
	}
	return result.Message, nil
}

// GetAllUsers - плоский список всех пользователей
func (c *Client) GetAllUsers(ctx context.Context, token string) ([]*models.UserNode, error) {
	var result struct {
		Users []*models.UserNode `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/getallusers", token, nil, &result); err != nil {
		return nil, err
	}
	return result.Users, nil
}

// MakeTransfer - перевод средств между счетами
func (c *Client) MakeTransfer(ctx context.Context, token string, payload TransferPayload) (*TransferResult, error) {
	var result struct {
		Message string `json:"message"`
		Data    struct {
			Transfer *models.TransferRecord `json:"transfer"`
		} `json:"data"`
		UpdatedSender   *models.UserNode `json:"updatedSender"`
		UpdatedReceiver *models.UserNode `json:"updatedReceiver"`
	}
	if err := c.do(ctx, http.MethodPost, "/tr/transfer", token, payload, &result); err != nil {
		return nil, err
	}
	return &TransferResult{
		Message:         result.Message,
		Transfer:        result.Data.Transfer,
		UpdatedSender:   result.UpdatedSender,
		UpdatedReceiver: result.UpdatedReceiver,
	}, nil
}

// GetAllTransfers - полный список переводов
func (c *Client) GetAllTransfers(ctx context.Context, token string) ([]models.TransferRecord, error) {
	var result struct {
		Transfers []models.TransferRecord `json:"transfers"`
	}
	if err := c.do(ctx, http.MethodGet, "/tr/all-transfers", token, nil, &result); err != nil {
		return nil, err
	}
	return result.Transfers, nil
}
