package services

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/denmor86/balance-console/internal/client"
	"github.com/denmor86/balance-console/internal/logger"
	"github.com/denmor86/balance-console/internal/models"
	"github.com/denmor86/balance-console/internal/session"
	"github.com/denmor86/balance-console/internal/tree"
	"github.com/shopspring/decimal"
)

// Допустимые размеры страницы списка пользователей
var PerPageOptions = []int{10, 25, 50, 100}

const DefaultPerPage = 10

// ListQuery - параметры списка пользователей: поиск по подстроке имени,
// сортировка с переключением направления, постраничный вывод.
type ListQuery struct {
	Search  string
	SortKey string
	Order   string
	Page    int
	PerPage int
}

// UsersService - дерево созданных пользователей и операции над учётными записями
type UsersService interface {
	GetTree(ctx context.Context, s *session.Session, refresh bool) (*models.UserNode, error)
	GetUser(ctx context.Context, s *session.Session, id string) (*models.UserNode, error)
	Update(ctx context.Context, s *session.Session, id string, request models.UpdateUserRequest) (*models.UserNode, error)
	Delete(ctx context.Context, s *session.Session, id string) (string, error)
	List(ctx context.Context, s *session.Session, query ListQuery) (*models.UserListResponse, error)
}

type Users struct {
	Backend  client.Backend
	Sessions session.Storage
	TTL      time.Duration
}

// Создание сервиса
func NewUsers(backend client.Backend, sessions session.Storage, ttl time.Duration) UsersService {
	return &Users{Backend: backend, Sessions: sessions, TTL: ttl}
}

// GetTree - поддерево текущего пользователя: кэш сессии либо свежая
// загрузка с бэкенда одним запросом (без N+1).
func (u *Users) GetTree(ctx context.Context, s *session.Session, refresh bool) (*models.UserNode, error) {
	if !refresh && s.Tree != nil {
		return s.Tree, nil
	}
	return u.fetchTree(ctx, s)
}

// fetchTree - загрузка и нормализация поддерева, обновление кэша сессии
func (u *Users) fetchTree(ctx context.Context, s *session.Session) (*models.UserNode, error) {
	payload, err := u.Backend.GetUserTree(ctx, s.Token, s.User.ID)
	if err != nil {
		logger.Error("Failed to get user tree", err)
		return nil, err
	}
	root, err := tree.Build(payload)
	if err != nil {
		logger.Error("Malformed user tree payload", err)
		return nil, err
	}
	s.Tree = root
	if s.TreeState == nil {
		s.TreeState = tree.NewUIState(root.ID)
	}
	if err := u.Sessions.Save(ctx, s, u.TTL); err != nil {
		return nil, err
	}
	return root, nil
}

// GetUser - учётная запись по идентификатору: сперва кэш дерева, затем бэкенд
func (u *Users) GetUser(ctx context.Context, s *session.Session, id string) (*models.UserNode, error) {
	if s.Tree != nil {
		if found := tree.Find(s.Tree, id); found != nil {
			return found, nil
		}
	}
	return u.Backend.GetUser(ctx, s.Token, id)
}

// Update - изменение пользователя с точечным обновлением кэша дерева.
// Узел, пропавший из дерева (параллельное удаление), означает полную
// перезагрузку: побеждает последнее действие, а не последний ответ.
func (u *Users) Update(ctx context.Context, s *session.Session, id string, request models.UpdateUserRequest) (*models.UserNode, error) {
	updated, err := u.Backend.UpdateUser(ctx, s.Token, client.UpdatePayload{
		UserID:   id,
		Username: request.Username,
		Password: request.Password,
		Role:     request.Role,
	})
	if err != nil {
		logger.Error("Error updating user", id, err)
		return nil, err
	}

	if s.Tree != nil {
		patched, ok := tree.Replace(s.Tree, id, tree.Patch{
			Username: &updated.Username,
			Role:     &updated.Role,
			Balance:  &updated.Balance,
		})
		if ok {
			s.Tree = patched
		} else {
			logger.Warn("Updated node not found in tree, refetch", id)
			if _, err := u.fetchTree(ctx, s); err != nil {
				return updated, err
			}
			return updated, nil
		}
	}

	// изменение собственной записи отражается в данных сессии
	if s.User != nil && s.User.ID == id {
		s.User.Username = updated.Username
		s.User.Role = updated.Role
		s.User.Balance = updated.Balance
	}

	if err := u.Sessions.Save(ctx, s, u.TTL); err != nil {
		return updated, err
	}
	return updated, nil
}

// Delete - удаление пользователя. Состояние UI очищается от следов узла,
// дерево перечитывается целиком.
func (u *Users) Delete(ctx context.Context, s *session.Session, id string) (string, error) {
	message, err := u.Backend.DeleteUser(ctx, s.Token, id)
	if err != nil {
		logger.Error("Error deleting user", id, err)
		return "", err
	}

	if s.TreeState != nil {
		if s.TreeState.SelectedID == id {
			s.TreeState.Select("")
			s.TreeState.CloseModal()
		}
		if s.TreeState.IsMenuOpen(id) {
			s.TreeState.CloseMenu()
		}
		delete(s.TreeState.Expanded, id)
	}

	if _, err := u.fetchTree(ctx, s); err != nil {
		// кэш сбрасывается, следующий запрос дерева загрузит его заново
		s.Tree = nil
		if saveErr := u.Sessions.Save(ctx, s, u.TTL); saveErr != nil {
			return message, saveErr
		}
	}
	return message, nil
}

// List - страница плоского списка пользователей с итогами по
// отфильтрованному набору (количество и суммарный баланс).
func (u *Users) List(ctx context.Context, s *session.Session, query ListQuery) (*models.UserListResponse, error) {
	users, err := u.Backend.GetAllUsers(ctx, s.Token)
	if err != nil {
		logger.Error("Failed to get users", err)
		return nil, err
	}

	filtered := filterUsers(users, query.Search)
	sortUsers(filtered, query.SortKey, query.Order == "desc")

	totalBalance := decimal.Zero
	for _, user := range filtered {
		totalBalance = totalBalance.Add(user.Balance)
	}

	perPage := normalizePerPage(query.PerPage)
	pages := int(math.Ceil(float64(len(filtered)) / float64(perPage)))
	page := query.Page
	if page < 1 {
		page = 1
	}
	if pages > 0 && page > pages {
		page = pages
	}

	balance, _ := totalBalance.Float64()
	return &models.UserListResponse{
		Success:      true,
		Users:        paginateUsers(filtered, page, perPage),
		Count:        len(filtered),
		TotalBalance: balance,
		Page:         page,
		Pages:        pages,
	}, nil
}

func filterUsers(users []*models.UserNode, search string) []*models.UserNode {
	if search == "" {
		return append([]*models.UserNode(nil), users...)
	}
	needle := strings.ToLower(search)
	filtered := make([]*models.UserNode, 0, len(users))
	for _, user := range users {
		if strings.Contains(strings.ToLower(user.Username), needle) {
			filtered = append(filtered, user)
		}
	}
	return filtered
}

// sortUsers - сортировка списка по ключу. Повторный выбор того же ключа
// на клиенте переключает направление через параметр order.
func sortUsers(users []*models.UserNode, key string, desc bool) {
	less := func(a, b *models.UserNode) bool { return false }
	switch key {
	case "username":
		less = func(a, b *models.UserNode) bool { return a.Username < b.Username }
	case "role":
		less = func(a, b *models.UserNode) bool { return a.Role < b.Role }
	case "balance":
		less = func(a, b *models.UserNode) bool { return a.Balance.LessThan(b.Balance) }
	case "createdAt":
		less = func(a, b *models.UserNode) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return
	}
	sort.SliceStable(users, func(i, j int) bool {
		if desc {
			return less(users[j], users[i])
		}
		return less(users[i], users[j])
	})
}

func normalizePerPage(perPage int) int {
	for _, option := range PerPageOptions {
		if perPage == option {
			return perPage
		}
	}
	return DefaultPerPage
}

func paginateUsers(users []*models.UserNode, page int, perPage int) []*models.UserNode {
	first := (page - 1) * perPage
	if first >= len(users) {
		return []*models.UserNode{}
	}
	last := first + perPage
	if last > len(users) {
		last = len(users)
	}
	return users[first:last]
}
