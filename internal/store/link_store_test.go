package store_test

import (
	"context"
	"testing"

	"tododesk/internal/model"
	"tododesk/tests/testutil"
)

func TestLinkTodosSymmetric(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	a, _ := s.CreateTodo(ctx, model.Todo{Title: "a"})
	b, _ := s.CreateTodo(ctx, model.Todo{Title: "b"})

	ok, err := s.LinkTodos(ctx, a.ID, b.ID)
	if err != nil || !ok {
		t.Fatalf("LinkTodos = (%v, %v), want (true, nil)", ok, err)
	}
	// The reversed pair collapses onto the same stored row.
	if _, err := s.LinkTodos(ctx, b.ID, a.ID); err != nil {
		t.Fatalf("linking reversed pair: %v", err)
	}

	linkedToA, err := s.GetLinkedTodos(ctx, a.ID)
	if err != nil {
		t.Fatalf("getting linked todos: %v", err)
	}
	if len(linkedToA) != 1 || linkedToA[0].ID != b.ID {
		t.Errorf("todos linked to a = %v, want only %d", linkedToA, b.ID)
	}
	linkedToB, err := s.GetLinkedTodos(ctx, b.ID)
	if err != nil {
		t.Fatalf("getting linked todos: %v", err)
	}
	if len(linkedToB) != 1 || linkedToB[0].ID != a.ID {
		t.Errorf("todos linked to b = %v, want only %d", linkedToB, a.ID)
	}
}

func TestLinkTodosSelf(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	a, _ := s.CreateTodo(ctx, model.Todo{Title: "a"})
	ok, err := s.LinkTodos(ctx, a.ID, a.ID)
	if err != nil {
		t.Fatalf("self-link errored: %v", err)
	}
	if ok {
		t.Error("self-link reported success")
	}
}

func TestLinkTodosMissingTarget(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	a, _ := s.CreateTodo(ctx, model.Todo{Title: "a"})
	ok, err := s.LinkTodos(ctx, a.ID, 9999)
	if err != nil {
		t.Fatalf("link to missing todo errored: %v", err)
	}
	if ok {
		t.Error("link to missing todo reported success")
	}
}

func TestUnlinkTodos(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	a, _ := s.CreateTodo(ctx, model.Todo{Title: "a"})
	b, _ := s.CreateTodo(ctx, model.Todo{Title: "b"})
	s.LinkTodos(ctx, a.ID, b.ID)

	// Unlinking works from either direction of the pair.
	ok, err := s.UnlinkTodos(ctx, b.ID, a.ID)
	if err != nil || !ok {
		t.Fatalf("UnlinkTodos = (%v, %v), want (true, nil)", ok, err)
	}
	linked, _ := s.GetLinkedTodos(ctx, a.ID)
	if len(linked) != 0 {
		t.Errorf("still linked after unlink: %v", linked)
	}

	// Unlinking an absent pair stays quiet.
	if _, err := s.UnlinkTodos(ctx, a.ID, b.ID); err != nil {
		t.Errorf("unlinking absent pair errored: %v", err)
	}
}

func TestGetLinkedTodosSkipsTrash(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	a, _ := s.CreateTodo(ctx, model.Todo{Title: "a"})
	b, _ := s.CreateTodo(ctx, model.Todo{Title: "b"})
	s.LinkTodos(ctx, a.ID, b.ID)
	s.DeleteTodo(ctx, b.ID)

	linked, err := s.GetLinkedTodos(ctx, a.ID)
	if err != nil {
		t.Fatalf("getting linked todos: %v", err)
	}
	if len(linked) != 0 {
		t.Errorf("trashed todo still appears in links: %v", linked)
	}
}

func TestTodoPersonLinks(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	todo, _ := s.CreateTodo(ctx, model.Todo{Title: "review"})
	person, err := s.CreatePerson(ctx, model.Person{Name: "Alex"})
	if err != nil {
		t.Fatalf("creating person: %v", err)
	}

	ok, err := s.LinkTodoPerson(ctx, todo.ID, person.ID)
	if err != nil || !ok {
		t.Fatalf("LinkTodoPerson = (%v, %v), want (true, nil)", ok, err)
	}
	// Duplicate link is a quiet no-op.
	if _, err := s.LinkTodoPerson(ctx, todo.ID, person.ID); err != nil {
		t.Fatalf("duplicate LinkTodoPerson errored: %v", err)
	}

	persons, err := s.GetTodoPersons(ctx, todo.ID)
	if err != nil {
		t.Fatalf("getting todo persons: %v", err)
	}
	if len(persons) != 1 || persons[0].ID != person.ID {
		t.Errorf("todo persons = %v, want only %d", persons, person.ID)
	}

	ok, err = s.UnlinkTodoPerson(ctx, todo.ID, person.ID)
	if err != nil || !ok {
		t.Fatalf("UnlinkTodoPerson = (%v, %v), want (true, nil)", ok, err)
	}
	persons, _ = s.GetTodoPersons(ctx, todo.ID)
	if len(persons) != 0 {
		t.Errorf("person still attached after unlink: %v", persons)
	}
}

func TestProjectPersonStakeholder(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	project, _ := s.CreateProject(ctx, model.Project{Name: "Launch"})
	person, _ := s.CreatePerson(ctx, model.Person{Name: "Sam"})

	ok, err := s.LinkProjectPerson(ctx, project.ID, person.ID)
	if err != nil || !ok {
		t.Fatalf("LinkProjectPerson = (%v, %v), want (true, nil)", ok, err)
	}

	ok, err = s.UpdateStakeholder(ctx, project.ID, person.ID, model.StakeholderData{
		InfluenceLevel:     ptr(4),
		InterestLevel:      ptr(5),
		StakeholderType:    ptr("sponsor"),
		EngagementStrategy: ptr("manage closely"),
		Notes:              "weekly sync",
	})
	if err != nil || !ok {
		t.Fatalf("UpdateStakeholder = (%v, %v), want (true, nil)", ok, err)
	}

	members, err := s.GetProjectMembers(ctx, project.ID)
	if err != nil {
		t.Fatalf("getting project members: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("project members = %d, want 1", len(members))
	}
	m := members[0]
	if m.InfluenceLevel == nil || *m.InfluenceLevel != 4 {
		t.Errorf("influence level = %v, want 4", m.InfluenceLevel)
	}
	if m.StakeholderType == nil || *m.StakeholderType != "sponsor" {
		t.Errorf("stakeholder type = %v, want sponsor", m.StakeholderType)
	}
	if m.StakeholderNotes != "weekly sync" {
		t.Errorf("stakeholder notes = %q, want %q", m.StakeholderNotes, "weekly sync")
	}

	// Updating stakeholder data for a non-member reports false.
	ok, err = s.UpdateStakeholder(ctx, project.ID, 9999, model.StakeholderData{})
	if err != nil || ok {
		t.Errorf("UpdateStakeholder for non-member = (%v, %v), want (false, nil)", ok, err)
	}

	ok, err = s.UnlinkProjectPerson(ctx, project.ID, person.ID)
	if err != nil || !ok {
		t.Fatalf("UnlinkProjectPerson = (%v, %v), want (true, nil)", ok, err)
	}
	members, _ = s.GetProjectMembers(ctx, project.ID)
	if len(members) != 0 {
		t.Errorf("member still attached after unlink: %v", members)
	}
}
