package tree

import (
	"errors"

	"github.com/denmor86/balance-console/internal/models"
	"github.com/shopspring/decimal"
)

// MaxDepth - защитный предел глубины обхода. Бэкенд гарантирует отсутствие
// циклов, но данным извне полностью доверять нельзя.
const MaxDepth = 256

var (
	ErrMalformedTree = errors.New("malformed tree payload")
)

// Build - проверяет и нормализует поддерево, полученное от бэкенда.
// Узел без id или username считается повреждённым, отсутствующие
// children - лист. Порядок дочерних узлов сохраняется.
func Build(payload *models.UserNode) (*models.UserNode, error) {
	if payload == nil {
		return nil, ErrMalformedTree
	}
	return build(payload, 0)
}

func build(node *models.UserNode, depth int) (*models.UserNode, error) {
	if depth > MaxDepth {
		return nil, ErrMalformedTree
	}
	if node.ID == "" || node.Username == "" {
		return nil, ErrMalformedTree
	}
	copied := *node
	copied.Children = nil
	for _, child := range node.Children {
		if child == nil {
			return nil, ErrMalformedTree
		}
		built, err := build(child, depth+1)
		if err != nil {
			return nil, err
		}
		copied.Children = append(copied.Children, built)
	}
	return &copied, nil
}

// Find - поиск узла по id в глубину. Возвращает nil, если узел не найден:
// вызывающий код обязан обработать это повторной загрузкой дерева.
func Find(root *models.UserNode, id string) *models.UserNode {
	return find(root, id, 0)
}

func find(node *models.UserNode, id string, depth int) *models.UserNode {
	if node == nil || depth > MaxDepth {
		return nil
	}
	if node.ID == id {
		return node
	}
	for _, child := range node.Children {
		if found := find(child, id, depth+1); found != nil {
			return found
		}
	}
	return nil
}

// Count - количество узлов в поддереве, включая корень
func Count(root *models.UserNode) int {
	return count(root, 0)
}

func count(node *models.UserNode, depth int) int {
	if node == nil || depth > MaxDepth {
		return 0
	}
	total := 1
	for _, child := range node.Children {
		total += count(child, depth+1)
	}
	return total
}

// Patch - частичное обновление узла. Непустые поля замещают значения узла,
// дочерние узлы сохраняются, если Children не задан явно.
type Patch struct {
	Username *string
	Role     *string
	Balance  *decimal.Decimal
	Children []*models.UserNode
}

// Replace - возвращает новое дерево, в котором узел с заданным id заменён
// результатом слияния с patch. Исходное дерево не изменяется: копируются
// только узлы на пути от корня до заменённого. Если узел не найден,
// возвращается исходное дерево и false - сигнал перечитать дерево целиком.
func Replace(root *models.UserNode, id string, patch Patch) (*models.UserNode, bool) {
	return replace(root, id, patch, 0)
}

func replace(node *models.UserNode, id string, patch Patch, depth int) (*models.UserNode, bool) {
	if node == nil || depth > MaxDepth {
		return node, false
	}
	if node.ID == id {
		merged := *node
		if patch.Username != nil {
			merged.Username = *patch.Username
		}
		if patch.Role != nil {
			merged.Role = *patch.Role
		}
		if patch.Balance != nil {
			merged.Balance = *patch.Balance
		}
		if patch.Children != nil {
			merged.Children = patch.Children
		}
		return &merged, true
	}
	for i, child := range node.Children {
		replaced, ok := replace(child, id, patch, depth+1)
		if !ok {
			continue
		}
		copied := *node
		copied.Children = make([]*models.UserNode, len(node.Children))
		copy(copied.Children, node.Children)
		copied.Children[i] = replaced
		return &copied, true
	}
	return node, false
}
