package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/denmor86/balance-console/internal/logger"
	"github.com/denmor86/balance-console/internal/models"
	"github.com/denmor86/balance-console/internal/services"
	"github.com/denmor86/balance-console/internal/session"
	"github.com/denmor86/balance-console/internal/tree"
)

// TreeResponse - видимые строки дерева и текущее состояние UI
type TreeResponse struct {
	Success    bool       `json:"success"`
	Rows       []tree.Row `json:"rows"`
	SelectedID string     `json:"selectedId,omitempty"`
	Modal      string     `json:"modal,omitempty"`
	Count      int        `json:"count"`
}

// NodeRequest - намерение узла ("выбери меня", "открой моё меню")
type NodeRequest struct {
	NodeID string `json:"nodeId"`
}

// ActionRequest - выбранный пункт контекстного меню
type ActionRequest struct {
	Action string `json:"action"`
}

func writeTree(w http.ResponseWriter, root *models.UserNode, state *tree.UIState) {
	WriteJSON(w, http.StatusOK, TreeResponse{
		Success:    true,
		Rows:       tree.Rows(root, state),
		SelectedID: state.SelectedID,
		Modal:      state.Modal,
		Count:      tree.Count(root),
	})
}

// GetTreeHandler — дерево созданных пользователей. Параметр refresh
// принудительно перечитывает поддерево с бэкенда.
func GetTreeHandler(i services.IdentityService, u services.UsersService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		consoleSession, err := loadSession(r, i)
		if err != nil {
			WriteBackendError(w, err)
			return
		}

		refresh := r.URL.Query().Get("refresh") == "true"
		root, err := u.GetTree(r.Context(), consoleSession, refresh)
		if err != nil {
			WriteBackendError(w, err)
			return
		}
		writeTree(w, root, consoleSession.TreeState)
	})
}

// treeIntent - общий каркас обработчиков намерений дерева: загрузка
// сессии и дерева, изменение состояния UI, сохранение сессии, ответ
// со свежими строками.
func treeIntent(i services.IdentityService, u services.UsersService,
	apply func(r *http.Request, s *session.Session, root *models.UserNode) error) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		consoleSession, err := loadSession(r, i)
		if err != nil {
			WriteBackendError(w, err)
			return
		}
		root, err := u.GetTree(r.Context(), consoleSession, false)
		if err != nil {
			WriteBackendError(w, err)
			return
		}

		if err := apply(r, consoleSession, root); err != nil {
			if errors.Is(err, tree.ErrUnknownAction) || errors.Is(err, tree.ErrNoSelection) {
				WriteError(w, http.StatusBadRequest, err.Error())
				return
			}
			WriteBackendError(w, err)
			return
		}

		if err := i.SaveSession(r.Context(), consoleSession); err != nil {
			WriteBackendError(w, err)
			return
		}
		writeTree(w, root, consoleSession.TreeState)
	})
}

func decodeNodeID(r *http.Request) (string, error) {
	var request NodeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		return "", err
	}
	return request.NodeID, nil
}

// SelectNodeHandler — клик по узлу: выбор всегда, раскрытие только при
// наличии дочерних узлов.
func SelectNodeHandler(i services.IdentityService, u services.UsersService) http.HandlerFunc {
	return treeIntent(i, u, func(r *http.Request, s *session.Session, root *models.UserNode) error {
		nodeID, err := decodeNodeID(r)
		if err != nil {
			logger.Error("Failed to decode request", err)
			return tree.ErrNoSelection
		}
		controller := tree.Controller{State: s.TreeState}
		// отсутствующий узел - молчаливый no-op, пользователь увидит свежее дерево
		controller.Click(tree.Find(root, nodeID))
		return nil
	})
}

// ToggleNodeHandler — переключение раскрытия узла
func ToggleNodeHandler(i services.IdentityService, u services.UsersService) http.HandlerFunc {
	return treeIntent(i, u, func(r *http.Request, s *session.Session, root *models.UserNode) error {
		nodeID, err := decodeNodeID(r)
		if err != nil {
			logger.Error("Failed to decode request", err)
			return tree.ErrNoSelection
		}
		s.TreeState.Toggle(nodeID)
		return nil
	})
}

// OpenMenuHandler — открытие контекстного меню узла. Меню других узлов
// закрывается самим переходом: слот OpenMenuID один на всё дерево.
func OpenMenuHandler(i services.IdentityService, u services.UsersService) http.HandlerFunc {
	return treeIntent(i, u, func(r *http.Request, s *session.Session, root *models.UserNode) error {
		nodeID, err := decodeNodeID(r)
		if err != nil {
			logger.Error("Failed to decode request", err)
			return tree.ErrNoSelection
		}
		s.TreeState.Select(nodeID)
		s.TreeState.OpenMenu(nodeID)
		return nil
	})
}

// CloseMenuHandler — закрытие меню (клик вне меню)
func CloseMenuHandler(i services.IdentityService, u services.UsersService) http.HandlerFunc {
	return treeIntent(i, u, func(r *http.Request, s *session.Session, root *models.UserNode) error {
		s.TreeState.CloseMenu()
		return nil
	})
}

// MenuActionHandler — выбор пункта меню: действие выполняется не здесь,
// контроллер лишь запрашивает открытие соответствующего модального окна
// для выбранного узла.
func MenuActionHandler(i services.IdentityService, u services.UsersService) http.HandlerFunc {
	return treeIntent(i, u, func(r *http.Request, s *session.Session, root *models.UserNode) error {
		var request ActionRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.Error("Failed to decode request", err)
			return tree.ErrUnknownAction
		}

		controller := tree.Controller{
			State: s.TreeState,
			Actions: tree.Actions{
				RequestUpdate:   func(string) { s.TreeState.OpenModal(tree.ModalUpdate) },
				RequestTransfer: func(string) { s.TreeState.OpenModal(tree.ModalTransfer) },
				RequestAddChild: func(string) { s.TreeState.OpenModal(tree.ModalAddChild) },
				RequestDelete:   func(string) { s.TreeState.OpenModal(tree.ModalDelete) },
			},
		}
		return controller.Dispatch(request.Action)
	})
}

// CloseModalHandler — закрытие модального окна без выполнения действия.
// Запрос, уже отправленный бэкенду, при этом не отменяется.
func CloseModalHandler(i services.IdentityService, u services.UsersService) http.HandlerFunc {
	return treeIntent(i, u, func(r *http.Request, s *session.Session, root *models.UserNode) error {
		s.TreeState.CloseModal()
		return nil
	})
}
