package store_test

import (
	"context"
	"testing"

	"tododesk/internal/model"
	"tododesk/tests/testutil"
)

func TestSubtasksOrderPerTodo(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	a, _ := s.CreateTodo(ctx, model.Todo{Title: "a"})
	b, _ := s.CreateTodo(ctx, model.Todo{Title: "b"})

	first, err := s.CreateSubtask(ctx, model.Subtask{TodoID: a.ID, Title: "one"})
	if err != nil {
		t.Fatalf("creating subtask: %v", err)
	}
	second, _ := s.CreateSubtask(ctx, model.Subtask{TodoID: a.ID, Title: "two"})
	other, _ := s.CreateSubtask(ctx, model.Subtask{TodoID: b.ID, Title: "elsewhere"})

	// sort_order counts per todo, not globally.
	if first.SortOrder != 0 || second.SortOrder != 1 {
		t.Errorf("subtask orders = %d, %d, want 0, 1", first.SortOrder, second.SortOrder)
	}
	if other.SortOrder != 0 {
		t.Errorf("other todo's first subtask order = %d, want 0", other.SortOrder)
	}

	subtasks, err := s.GetSubtasks(ctx, a.ID)
	if err != nil {
		t.Fatalf("getting subtasks: %v", err)
	}
	if len(subtasks) != 2 {
		t.Errorf("todo a has %d subtasks, want 2", len(subtasks))
	}
}

func TestToggleSubtask(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	todo, _ := s.CreateTodo(ctx, model.Todo{Title: "a"})
	sub, _ := s.CreateSubtask(ctx, model.Subtask{TodoID: todo.ID, Title: "flip me"})

	ok, err := s.ToggleSubtask(ctx, sub.ID)
	if err != nil || !ok {
		t.Fatalf("ToggleSubtask = (%v, %v), want (true, nil)", ok, err)
	}
	got, _ := s.GetSubtask(ctx, sub.ID)
	if !got.Completed {
		t.Error("subtask not completed after toggle")
	}

	s.ToggleSubtask(ctx, sub.ID)
	got, _ = s.GetSubtask(ctx, sub.ID)
	if got.Completed {
		t.Error("subtask still completed after second toggle")
	}
}

func TestSubtasksCascadeWithTodo(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	todo, _ := s.CreateTodo(ctx, model.Todo{Title: "parent"})
	s.CreateSubtask(ctx, model.Subtask{TodoID: todo.ID, Title: "child"})

	if _, err := s.PurgeTodo(ctx, todo.ID); err != nil {
		t.Fatalf("purging todo: %v", err)
	}
	subtasks, err := s.GetSubtasks(ctx, todo.ID)
	if err != nil {
		t.Fatalf("getting subtasks: %v", err)
	}
	if len(subtasks) != 0 {
		t.Errorf("subtasks survived todo purge: %v", subtasks)
	}
}

func TestGlobalSearch(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	s.CreateTodo(ctx, model.Todo{Title: "ship release notes"})
	s.CreateTodo(ctx, model.Todo{Title: "unrelated", Notes: "mentions release here"})
	s.CreatePerson(ctx, model.Person{Name: "Release Manager"})
	s.CreateProject(ctx, model.Project{Name: "Release 2026"})
	deleted, _ := s.CreateProject(ctx, model.Project{Name: "Release archive"})
	s.DeleteProject(ctx, deleted.ID)

	results, err := s.GlobalSearch(ctx, "release", 0)
	if err != nil {
		t.Fatalf("searching: %v", err)
	}
	if len(results.Todos) != 2 {
		t.Errorf("todo matches = %d, want 2 (title and notes)", len(results.Todos))
	}
	if len(results.Persons) != 1 {
		t.Errorf("person matches = %d, want 1", len(results.Persons))
	}
	if len(results.Projects) != 1 {
		t.Errorf("project matches = %d, want 1 (trash excluded)", len(results.Projects))
	}
}
