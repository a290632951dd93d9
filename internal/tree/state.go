package tree

import (
	"errors"

	"github.com/denmor86/balance-console/internal/models"
)

// Действия контекстного меню узла
const (
	ActionUpdate   = "update"
	ActionTransfer = "transfer"
	ActionAddChild = "add"
	ActionDelete   = "delete"
)

// Модальные окна консоли, открываемые по действиям меню
const (
	ModalNone     = ""
	ModalUpdate   = "update"
	ModalTransfer = "transfer"
	ModalAddChild = "add"
	ModalDelete   = "delete"
)

var (
	ErrNoSelection   = errors.New("no node selected")
	ErrUnknownAction = errors.New("unknown tree action")
)

// UIState - сериализуемое состояние дерева в рамках одной сессии консоли.
// Открытое меню хранится в едином слоте OpenMenuID, а не в флагах по узлам:
// два одновременно открытых меню невозможны по построению.
type UIState struct {
	Expanded   map[string]bool `json:"expanded"`
	SelectedID string          `json:"selectedId,omitempty"`
	OpenMenuID string          `json:"openMenuId,omitempty"`
	Modal      string          `json:"modal,omitempty"`
}

// NewUIState - начальное состояние: корень раскрыт, остальные узлы свёрнуты
func NewUIState(rootID string) *UIState {
	state := &UIState{Expanded: make(map[string]bool)}
	if rootID != "" {
		state.Expanded[rootID] = true
	}
	return state
}

// Toggle - переключает раскрытие узла. Повторный вызов возвращает
// множество раскрытых узлов в исходное состояние.
func (s *UIState) Toggle(id string) {
	if id == "" {
		return
	}
	if s.Expanded == nil {
		s.Expanded = make(map[string]bool)
	}
	if s.Expanded[id] {
		delete(s.Expanded, id)
	} else {
		s.Expanded[id] = true
	}
}

// IsExpanded - раскрыт ли узел
func (s *UIState) IsExpanded(id string) bool {
	return s.Expanded[id]
}

// Select - клик по узлу всегда выбирает его. Раскрытие обрабатывается
// отдельно: выбор и раскрытие независимы.
func (s *UIState) Select(id string) {
	s.SelectedID = id
}

// OpenMenu - открывает меню узла. Открытие меню другого узла замещает
// текущее без промежуточного закрытого состояния.
func (s *UIState) OpenMenu(id string) {
	s.OpenMenuID = id
}

// CloseMenu - закрывает меню (выбор пункта, клик вне меню, открытие модального окна)
func (s *UIState) CloseMenu() {
	s.OpenMenuID = ""
}

// IsMenuOpen - открыто ли меню узла
func (s *UIState) IsMenuOpen(id string) bool {
	return id != "" && s.OpenMenuID == id
}

// OpenModal - открытие модального окна закрывает контекстное меню
func (s *UIState) OpenModal(modal string) {
	s.Modal = modal
	s.CloseMenu()
}

// CloseModal - закрывает модальное окно
func (s *UIState) CloseModal() {
	s.Modal = ModalNone
}

// Actions - внешние обработчики пунктов меню. Контроллер не выполняет
// действие сам, а запрашивает его у владельца модальных окон: отрисовка
// и выбор узла отделены от форм и отправки запросов.
type Actions struct {
	RequestUpdate   func(nodeID string)
	RequestTransfer func(nodeID string)
	RequestAddChild func(nodeID string)
	RequestDelete   func(nodeID string)
}

// Controller - посредник между отрисованным деревом и состоянием UI
type Controller struct {
	State   *UIState
	Actions Actions
}

// Click - клик по узлу: узел выбирается всегда, раскрытие переключается
// только при наличии дочерних узлов.
func (c *Controller) Click(node *models.UserNode) {
	if node == nil {
		return
	}
	c.State.Select(node.ID)
	if len(node.Children) > 0 {
		c.State.Toggle(node.ID)
	}
}

// Dispatch - выбор пункта меню: меню закрывается, действие передаётся
// обработчику для выбранного узла.
func (c *Controller) Dispatch(action string) error {
	id := c.State.SelectedID
	if id == "" {
		return ErrNoSelection
	}
	c.State.CloseMenu()
	switch action {
	case ActionUpdate:
		if c.Actions.RequestUpdate != nil {
			c.Actions.RequestUpdate(id)
		}
	case ActionTransfer:
		if c.Actions.RequestTransfer != nil {
			c.Actions.RequestTransfer(id)
		}
	case ActionAddChild:
		if c.Actions.RequestAddChild != nil {
			c.Actions.RequestAddChild(id)
		}
	case ActionDelete:
		if c.Actions.RequestDelete != nil {
			c.Actions.RequestDelete(id)
		}
	default:
		return ErrUnknownAction
	}
	return nil
}
