package tree

import (
	"github.com/denmor86/balance-console/internal/models"
)

// Row - видимая строка дерева. Отступ строки пропорционален Depth.
type Row struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	Role        string  `json:"role"`
	Balance     float64 `json:"balance"`
	Depth       int     `json:"depth"`
	HasChildren bool    `json:"hasChildren"`
	Expanded    bool    `json:"expanded"`
	Selected    bool    `json:"selected"`
	MenuOpen    bool    `json:"menuOpen"`
}

// Rows - видимые строки дерева: прямой обход в глубину, дочерние узлы
// выводятся только у раскрытых. Дерево из одного корня без потомков -
// одна строка-лист. Глубина ограничена MaxDepth.
func Rows(root *models.UserNode, state *UIState) []Row {
	rows := make([]Row, 0)
	if state == nil {
		state = NewUIState("")
	}
	appendRows(root, state, 0, &rows)
	return rows
}

func appendRows(node *models.UserNode, state *UIState, depth int, rows *[]Row) {
	if node == nil || depth > MaxDepth {
		return
	}
	balance, _ := node.Balance.Float64()
	*rows = append(*rows, Row{
		ID:          node.ID,
		Username:    node.Username,
		Role:        node.Role,
		Balance:     balance,
		Depth:       depth,
		HasChildren: len(node.Children) > 0,
		Expanded:    state.IsExpanded(node.ID),
		Selected:    state.SelectedID == node.ID,
		MenuOpen:    state.IsMenuOpen(node.ID),
	})
	if !state.IsExpanded(node.ID) {
		return
	}
	for _, child := range node.Children {
		appendRows(child, state, depth+1, rows)
	}
}
