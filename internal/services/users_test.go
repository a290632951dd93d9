package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/denmor86/balance-console/internal/client"
	"github.com/denmor86/balance-console/internal/client/mocks"
	"github.com/denmor86/balance-console/internal/models"
	"github.com/denmor86/balance-console/internal/session"
	"github.com/denmor86/balance-console/internal/tree"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

const testTTL = time.Minute

func treePayload() *models.UserNode {
	return &models.UserNode{
		ID: "boss-id", Username: "boss", Role: models.RoleAdmin, Balance: decimal.NewFromInt(1000),
		Children: []*models.UserNode{
			{ID: "child-1", Username: "alice", Role: models.RolePartner, Balance: decimal.NewFromInt(100)},
			{ID: "child-2", Username: "bob", Role: models.RoleUser, Balance: decimal.NewFromInt(50)},
		},
	}
}

func newTestSession() *session.Session {
	return &session.Session{
		ID:        "s1",
		Token:     "backend-token",
		User:      &models.UserNode{ID: "boss-id", Username: "boss", Role: models.RoleAdmin, Balance: decimal.NewFromInt(1000)},
		TreeState: tree.NewUIState("boss-id"),
	}
}

func TestGetTree(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := mocks.NewMockBackend(ctrl)
	// одна загрузка с бэкенда: повторный запрос обслуживается кэшем сессии
	backend.EXPECT().
		GetUserTree(gomock.Any(), "backend-token", "boss-id").
		Return(treePayload(), nil).
		Times(1)

	sessions := session.NewMemoryStorage()
	defer sessions.Close()

	users := NewUsers(backend, sessions, testTTL)
	s := newTestSession()

	root, err := users.GetTree(context.Background(), s, false)
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	if tree.Count(root) != 3 {
		t.Errorf("Expected 3 nodes, got %d", tree.Count(root))
	}
	if s.Tree == nil {
		t.Fatalf("Expected tree cached in session")
	}

	cached, err := users.GetTree(context.Background(), s, false)
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	if cached != root {
		t.Errorf("Expected cached tree on second call")
	}
}

func TestGetTreeRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().
		GetUserTree(gomock.Any(), "backend-token", "boss-id").
		Return(treePayload(), nil).
		Times(2)

	sessions := session.NewMemoryStorage()
	defer sessions.Close()

	users := NewUsers(backend, sessions, testTTL)
	s := newTestSession()

	if _, err := users.GetTree(context.Background(), s, false); err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	// refresh=true идёт мимо кэша
	if _, err := users.GetTree(context.Background(), s, true); err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
}

func TestGetTreeMalformed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().
		GetUserTree(gomock.Any(), "backend-token", "boss-id").
		Return(&models.UserNode{ID: "boss-id", Username: "boss", Children: []*models.UserNode{{ID: "no-name"}}}, nil)

	sessions := session.NewMemoryStorage()
	defer sessions.Close()

	users := NewUsers(backend, sessions, testTTL)
	if _, err := users.GetTree(context.Background(), newTestSession(), false); !errors.Is(err, tree.ErrMalformedTree) {
		t.Errorf("Expected ErrMalformedTree, got: '%v'", err)
	}
}

func TestGetUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := mocks.NewMockBackend(ctrl)
	// узел вне кэша дерева запрашивается у бэкенда
	backend.EXPECT().
		GetUser(gomock.Any(), "backend-token", "outsider").
		Return(&models.UserNode{ID: "outsider", Username: "eve"}, nil)

	sessions := session.NewMemoryStorage()
	defer sessions.Close()

	users := NewUsers(backend, sessions, testTTL)
	s := newTestSession()
	s.Tree, _ = tree.Build(treePayload())

	fromCache, err := users.GetUser(context.Background(), s, "child-1")
	if err != nil || fromCache.Username != "alice" {
		t.Errorf("Expected alice from tree cache, got %v, '%v'", fromCache, err)
	}

	fromBackend, err := users.GetUser(context.Background(), s, "outsider")
	if err != nil || fromBackend.Username != "eve" {
		t.Errorf("Expected eve from backend, got %v, '%v'", fromBackend, err)
	}
}

func TestUpdatePatchesTree(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	updated := &models.UserNode{ID: "child-1", Username: "alice2", Role: models.RoleAssistant, Balance: decimal.NewFromInt(150)}
	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().
		UpdateUser(gomock.Any(), "backend-token", client.UpdatePayload{UserID: "child-1", Username: "alice2", Role: models.RoleAssistant}).
		Return(updated, nil)

	sessions := session.NewMemoryStorage()
	defer sessions.Close()

	users := NewUsers(backend, sessions, testTTL)
	s := newTestSession()
	s.Tree, _ = tree.Build(treePayload())
	before := s.Tree

	result, err := users.Update(context.Background(), s, "child-1", models.UpdateUserRequest{Username: "alice2", Role: models.RoleAssistant})
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	if result.Username != "alice2" {
		t.Errorf("Expected updated user, got %+v", result)
	}

	// дерево обновлено точечно, без обращения к бэкенду за поддеревом
	node := tree.Find(s.Tree, "child-1")
	if node == nil || node.Username != "alice2" || node.Role != models.RoleAssistant {
		t.Errorf("Expected patched node in tree, got %+v", node)
	}
	if !node.Balance.Equal(decimal.NewFromInt(150)) {
		t.Errorf("Expected patched balance, got %s", node.Balance)
	}
	// прежний снимок дерева не изменён
	if tree.Find(before, "child-1").Username != "alice" {
		t.Errorf("Expected previous tree snapshot untouched")
	}
}

func TestUpdateMissingNodeRefetches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	updated := &models.UserNode{ID: "ghost", Username: "ghost", Role: models.RoleUser}
	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().
		UpdateUser(gomock.Any(), "backend-token", gomock.Any()).
		Return(updated, nil)
	// узла нет в кэше - дерево перечитывается целиком
	backend.EXPECT().
		GetUserTree(gomock.Any(), "backend-token", "boss-id").
		Return(treePayload(), nil)

	sessions := session.NewMemoryStorage()
	defer sessions.Close()

	users := NewUsers(backend, sessions, testTTL)
	s := newTestSession()
	s.Tree, _ = tree.Build(treePayload())

	if _, err := users.Update(context.Background(), s, "ghost", models.UpdateUserRequest{Username: "ghost"}); err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	if tree.Count(s.Tree) != 3 {
		t.Errorf("Expected refetched tree, got %d nodes", tree.Count(s.Tree))
	}
}

func TestUpdateSelf(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	updated := &models.UserNode{ID: "boss-id", Username: "boss2", Role: models.RoleAdmin, Balance: decimal.NewFromInt(1000)}
	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().
		UpdateUser(gomock.Any(), "backend-token", gomock.Any()).
		Return(updated, nil)

	sessions := session.NewMemoryStorage()
	defer sessions.Close()

	users := NewUsers(backend, sessions, testTTL)
	s := newTestSession()
	s.Tree, _ = tree.Build(treePayload())

	if _, err := users.Update(context.Background(), s, "boss-id", models.UpdateUserRequest{Username: "boss2"}); err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	// изменение собственной записи отражается в сессии
	if s.User.Username != "boss2" {
		t.Errorf("Expected session user updated, got %s", s.User.Username)
	}
}

func TestDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().
		DeleteUser(gomock.Any(), "backend-token", "child-2").
		Return("User deleted", nil)
	backend.EXPECT().
		GetUserTree(gomock.Any(), "backend-token", "boss-id").
		Return(&models.UserNode{
			ID: "boss-id", Username: "boss", Role: models.RoleAdmin,
			Children: []*models.UserNode{{ID: "child-1", Username: "alice"}},
		}, nil)

	sessions := session.NewMemoryStorage()
	defer sessions.Close()

	users := NewUsers(backend, sessions, testTTL)
	s := newTestSession()
	s.Tree, _ = tree.Build(treePayload())
	s.TreeState.Select("child-2")
	s.TreeState.OpenMenu("child-2")
	s.TreeState.Toggle("child-2")

	message, err := users.Delete(context.Background(), s, "child-2")
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	if message != "User deleted" {
		t.Errorf("Expected backend message, got %q", message)
	}

	// состояние UI очищено от следов удалённого узла
	if s.TreeState.SelectedID == "child-2" || s.TreeState.IsMenuOpen("child-2") || s.TreeState.IsExpanded("child-2") {
		t.Errorf("Expected UI state cleaned, got %+v", s.TreeState)
	}
	if tree.Find(s.Tree, "child-2") != nil {
		t.Errorf("Expected deleted node gone from refetched tree")
	}
}

func TestDeleteBackendError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().
		DeleteUser(gomock.Any(), "backend-token", "child-1").
		Return("", client.NewAPIError(http.StatusNotFound, "user not found", client.ErrNotFound))

	sessions := session.NewMemoryStorage()
	defer sessions.Close()

	users := NewUsers(backend, sessions, testTTL)
	if _, err := users.Delete(context.Background(), newTestSession(), "child-1"); !errors.Is(err, client.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: '%v'", err)
	}
}

func TestList(t *testing.T) {
	all := []*models.UserNode{
		{ID: "1", Username: "alice", Role: models.RolePartner, Balance: decimal.NewFromInt(100)},
		{ID: "2", Username: "bob", Role: models.RoleUser, Balance: decimal.NewFromInt(50)},
		{ID: "3", Username: "carol", Role: models.RoleUser, Balance: decimal.NewFromInt(200)},
		{ID: "4", Username: "malice", Role: models.RoleAssistant, Balance: decimal.NewFromInt(10)},
	}

	testCases := []struct {
		name            string
		query           ListQuery
		expectedNames   []string
		expectedCount   int
		expectedBalance float64
		expectedPages   int
	}{
		{
			name:            "List: all users, default page size #1",
			query:           ListQuery{},
			expectedNames:   []string{"alice", "bob", "carol", "malice"},
			expectedCount:   4,
			expectedBalance: 360,
			expectedPages:   1,
		},
		{
			name:            "List: substring search with totals #2",
			query:           ListQuery{Search: "lice"},
			expectedNames:   []string{"alice", "malice"},
			expectedCount:   2,
			expectedBalance: 110,
			expectedPages:   1,
		},
		{
			name:            "List: sort by balance descending #3",
			query:           ListQuery{SortKey: "balance", Order: "desc"},
			expectedNames:   []string{"carol", "alice", "bob", "malice"},
			expectedCount:   4,
			expectedBalance: 360,
			expectedPages:   1,
		},
		{
			name:            "List: page beyond range clamps to last #4",
			query:           ListQuery{Page: 99},
			expectedNames:   []string{"alice", "bob", "carol", "malice"},
			expectedCount:   4,
			expectedBalance: 360,
			expectedPages:   1,
		},
		{
			name:            "List: unsupported page size falls back to default #5",
			query:           ListQuery{PerPage: 7},
			expectedNames:   []string{"alice", "bob", "carol", "malice"},
			expectedCount:   4,
			expectedBalance: 360,
			expectedPages:   1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			backend := mocks.NewMockBackend(ctrl)
			backend.EXPECT().
				GetAllUsers(gomock.Any(), "backend-token").
				Return(all, nil)

			sessions := session.NewMemoryStorage()
			defer sessions.Close()

			users := NewUsers(backend, sessions, testTTL)
			response, err := users.List(context.Background(), newTestSession(), tc.query)
			if err != nil {
				t.Fatalf("Expected no error, got: '%v'", err)
			}

			names := make([]string, 0, len(response.Users))
			for _, user := range response.Users {
				names = append(names, user.Username)
			}
			if diff := cmp.Diff(tc.expectedNames, names); diff != "" {
				t.Errorf("Unexpected page (-want +got):\n%s", diff)
			}
			if response.Count != tc.expectedCount {
				t.Errorf("Expected count %d, got %d", tc.expectedCount, response.Count)
			}
			if response.TotalBalance != tc.expectedBalance {
				t.Errorf("Expected total balance %v, got %v", tc.expectedBalance, response.TotalBalance)
			}
			if response.Pages != tc.expectedPages {
				t.Errorf("Expected %d pages, got %d", tc.expectedPages, response.Pages)
			}
		})
	}
}

func TestListSearchPreservesSourceOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	all := make([]*models.UserNode, 0, 30)
	for i := 0; i < 30; i++ {
		all = append(all, &models.UserNode{
			ID:       string(rune('a' + i)),
			Username: "user" + string(rune('a'+i)),
			Balance:  decimal.NewFromInt(int64(i)),
		})
	}
	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().GetAllUsers(gomock.Any(), "backend-token").Return(all, nil)

	sessions := session.NewMemoryStorage()
	defer sessions.Close()

	users := NewUsers(backend, sessions, testTTL)
	response, err := users.List(context.Background(), newTestSession(), ListQuery{Page: 2, PerPage: 25})
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	// 30 пользователей по 25 на страницу: вторая страница из 5
	if len(response.Users) != 5 || response.Pages != 2 || response.Page != 2 {
		t.Errorf("Expected second page of 5, got %d users, page %d of %d", len(response.Users), response.Page, response.Pages)
	}
}
