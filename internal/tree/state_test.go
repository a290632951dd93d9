package tree

import (
	"errors"
	"testing"

	"github.com/denmor86/balance-console/internal/models"
	"github.com/google/go-cmp/cmp"
)

func TestNewUIState(t *testing.T) {
	state := NewUIState("root")
	if !state.IsExpanded("root") {
		t.Errorf("Expected root to be expanded")
	}
	if state.IsExpanded("other") {
		t.Errorf("Expected other nodes to be collapsed")
	}
	if state.SelectedID != "" || state.OpenMenuID != "" || state.Modal != ModalNone {
		t.Errorf("Expected clean initial state, got %+v", state)
	}
}

func TestToggleRoundTrip(t *testing.T) {
	state := NewUIState("root")
	state.Toggle("a")
	state.Toggle("b")

	before := make(map[string]bool, len(state.Expanded))
	for id, v := range state.Expanded {
		before[id] = v
	}

	// раскрыть и свернуть один узел - множество раскрытых не меняется
	state.Toggle("c")
	state.Toggle("c")

	if diff := cmp.Diff(before, state.Expanded); diff != "" {
		t.Errorf("Expanded set changed after toggle round trip (-want +got):\n%s", diff)
	}
}

func TestMenuSingleSlot(t *testing.T) {
	state := NewUIState("root")

	state.OpenMenu("a")
	if !state.IsMenuOpen("a") {
		t.Fatalf("Expected menu of a to be open")
	}

	// открытие меню другого узла замещает текущее
	state.OpenMenu("b")
	if state.IsMenuOpen("a") {
		t.Errorf("Expected menu of a to be closed after opening b")
	}
	if !state.IsMenuOpen("b") {
		t.Errorf("Expected menu of b to be open")
	}

	state.CloseMenu()
	if state.IsMenuOpen("b") {
		t.Errorf("Expected menu closed")
	}
	if state.IsMenuOpen("") {
		t.Errorf("Expected empty id to never report an open menu")
	}
}

func TestOpenModalClosesMenu(t *testing.T) {
	state := NewUIState("root")
	state.OpenMenu("a")

	state.OpenModal(ModalTransfer)
	if state.Modal != ModalTransfer {
		t.Errorf("Expected modal %s, got %s", ModalTransfer, state.Modal)
	}
	if state.OpenMenuID != "" {
		t.Errorf("Expected menu closed when modal opens")
	}

	state.CloseModal()
	if state.Modal != ModalNone {
		t.Errorf("Expected modal closed")
	}
}

func TestControllerClick(t *testing.T) {
	parent := &models.UserNode{
		ID: "a", Username: "alice",
		Children: []*models.UserNode{{ID: "a1", Username: "anna"}},
	}
	leaf := &models.UserNode{ID: "b", Username: "bob"}

	state := NewUIState("root")
	controller := &Controller{State: state}

	// клик по листу: выбор без раскрытия
	controller.Click(leaf)
	if state.SelectedID != "b" {
		t.Errorf("Expected selection b, got %s", state.SelectedID)
	}
	if state.IsExpanded("b") {
		t.Errorf("Expected leaf not to be expanded")
	}

	// клик по узлу с детьми: выбор и раскрытие
	controller.Click(parent)
	if state.SelectedID != "a" {
		t.Errorf("Expected selection a, got %s", state.SelectedID)
	}
	if !state.IsExpanded("a") {
		t.Errorf("Expected parent to be expanded")
	}

	// повторный клик сворачивает узел, но выбор остаётся
	controller.Click(parent)
	if state.IsExpanded("a") {
		t.Errorf("Expected parent to be collapsed after second click")
	}
	if state.SelectedID != "a" {
		t.Errorf("Expected selection to survive collapse, got %s", state.SelectedID)
	}

	controller.Click(nil)
	if state.SelectedID != "a" {
		t.Errorf("Expected nil click to be ignored")
	}
}

func TestControllerDispatch(t *testing.T) {
	testCases := []struct {
		name          string
		action        string
		selectedID    string
		expectedCall  string
		expectedError error
	}{
		{name: "Dispatch: update #1", action: ActionUpdate, selectedID: "a", expectedCall: "update:a"},
		{name: "Dispatch: transfer #2", action: ActionTransfer, selectedID: "a", expectedCall: "transfer:a"},
		{name: "Dispatch: add child #3", action: ActionAddChild, selectedID: "b", expectedCall: "add:b"},
		{name: "Dispatch: delete #4", action: ActionDelete, selectedID: "b", expectedCall: "delete:b"},
		{name: "Dispatch: no selection #5", action: ActionUpdate, selectedID: "", expectedError: ErrNoSelection},
		{name: "Dispatch: unknown action #6", action: "rename", selectedID: "a", expectedError: ErrUnknownAction},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var called string
			record := func(prefix string) func(string) {
				return func(id string) { called = prefix + ":" + id }
			}
			state := NewUIState("root")
			state.Select(tc.selectedID)
			state.OpenMenu(tc.selectedID)
			controller := &Controller{
				State: state,
				Actions: Actions{
					RequestUpdate:   record("update"),
					RequestTransfer: record("transfer"),
					RequestAddChild: record("add"),
					RequestDelete:   record("delete"),
				},
			}

			err := controller.Dispatch(tc.action)
			if !errors.Is(err, tc.expectedError) {
				t.Fatalf("Expected error: '%v', got: '%v'", tc.expectedError, err)
			}
			if called != tc.expectedCall {
				t.Errorf("Expected call %q, got %q", tc.expectedCall, called)
			}
			if tc.expectedError == nil && state.OpenMenuID != "" {
				t.Errorf("Expected menu closed after dispatch")
			}
		})
	}
}

func TestRows(t *testing.T) {
	root, _ := Build(samplePayload())

	t.Run("Rows: collapsed children hidden #1", func(t *testing.T) {
		state := NewUIState("root")
		rows := Rows(root, state)
		// корень раскрыт, alice свёрнута - anna не видна
		ids := rowIDs(rows)
		expected := []string{"root", "a", "b"}
		if diff := cmp.Diff(expected, ids); diff != "" {
			t.Errorf("Unexpected visible rows (-want +got):\n%s", diff)
		}
	})

	t.Run("Rows: expanded branch #2", func(t *testing.T) {
		state := NewUIState("root")
		state.Toggle("a")
		state.Select("a1")
		state.OpenMenu("b")
		rows := Rows(root, state)
		ids := rowIDs(rows)
		expected := []string{"root", "a", "a1", "b"}
		if diff := cmp.Diff(expected, ids); diff != "" {
			t.Fatalf("Unexpected visible rows (-want +got):\n%s", diff)
		}
		if rows[2].Depth != 2 || !rows[2].Selected {
			t.Errorf("Expected a1 at depth 2 and selected, got %+v", rows[2])
		}
		if !rows[3].MenuOpen {
			t.Errorf("Expected menu flag on b, got %+v", rows[3])
		}
		if !rows[1].HasChildren || rows[3].HasChildren {
			t.Errorf("Expected HasChildren on a only")
		}
	})

	t.Run("Rows: single leaf root #3", func(t *testing.T) {
		leaf := &models.UserNode{ID: "solo", Username: "solo"}
		rows := Rows(leaf, NewUIState("solo"))
		if len(rows) != 1 || rows[0].Depth != 0 || rows[0].HasChildren {
			t.Errorf("Expected a single leaf row, got %+v", rows)
		}
	})

	t.Run("Rows: collapsed root hides everything below #4", func(t *testing.T) {
		state := NewUIState("")
		rows := Rows(root, state)
		if len(rows) != 1 || rows[0].ID != "root" {
			t.Errorf("Expected only the root row, got %+v", rows)
		}
	})
}

func rowIDs(rows []Row) []string {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids
}
