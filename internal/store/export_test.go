package store_test

import (
	"context"
	"testing"
	"time"

	"tododesk/internal/model"
	"tododesk/internal/store"
	"tododesk/tests/testutil"
)

// seedDataset builds a small but fully connected dataset: a project with a
// todo and a stakeholder, a linked pair of todos, a subtask, and an
// assigned person.
func seedDataset(t *testing.T, s *store.SQLiteStore) {
	t.Helper()
	ctx := context.Background()

	project, err := s.CreateProject(ctx, model.Project{Name: "Work"})
	if err != nil {
		t.Fatalf("creating project: %v", err)
	}
	person, err := s.CreatePerson(ctx, model.Person{Name: "Alex", Email: "alex@example.com"})
	if err != nil {
		t.Fatalf("creating person: %v", err)
	}

	a, err := s.CreateTodo(ctx, model.Todo{Title: "plan", ProjectID: &project.ID})
	if err != nil {
		t.Fatalf("creating todo: %v", err)
	}
	b, err := s.CreateTodo(ctx, model.Todo{Title: "execute"})
	if err != nil {
		t.Fatalf("creating todo: %v", err)
	}

	if _, err := s.CreateSubtask(ctx, model.Subtask{TodoID: a.ID, Title: "outline"}); err != nil {
		t.Fatalf("creating subtask: %v", err)
	}
	if _, err := s.LinkTodos(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("linking todos: %v", err)
	}
	if _, err := s.LinkTodoPerson(ctx, a.ID, person.ID); err != nil {
		t.Fatalf("linking person: %v", err)
	}
	if _, err := s.LinkProjectPerson(ctx, project.ID, person.ID); err != nil {
		t.Fatalf("linking project person: %v", err)
	}
}

func TestExportImportReplaceRoundTrip(t *testing.T) {
	source := testutil.NewTestStore(t)
	seedDataset(t, source)
	ctx := context.Background()

	doc, err := source.ExportData(ctx)
	if err != nil {
		t.Fatalf("exporting: %v", err)
	}
	if doc.Version != model.ExportVersion {
		t.Errorf("export version = %d, want %d", doc.Version, model.ExportVersion)
	}
	if doc.ExportID == "" {
		t.Error("export id is empty")
	}

	dest := testutil.NewTestStore(t)
	if err := dest.ImportData(ctx, doc, model.ImportModeReplace); err != nil {
		t.Fatalf("importing: %v", err)
	}

	todos, err := dest.GetAllTodos(ctx, store.ScopeAll())
	if err != nil {
		t.Fatalf("getting todos: %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("imported %d todos, want 2", len(todos))
	}

	// Relations survive under fresh ids.
	var plan *model.TodoWithRelations
	for i := range todos {
		if todos[i].Title == "plan" {
			plan = &todos[i]
		}
	}
	if plan == nil {
		t.Fatal("imported todo 'plan' not found")
	}
	if plan.ProjectName == nil || *plan.ProjectName != "Work" {
		t.Errorf("imported todo lost its project: %+v", plan)
	}
	if plan.SubtaskCount != 1 {
		t.Errorf("imported todo has %d subtasks, want 1", plan.SubtaskCount)
	}
	linked, err := dest.GetLinkedTodos(ctx, plan.ID)
	if err != nil {
		t.Fatalf("getting linked todos: %v", err)
	}
	if len(linked) != 1 || linked[0].Title != "execute" {
		t.Errorf("imported link = %v, want 'execute'", linked)
	}
	persons, err := dest.GetTodoPersons(ctx, plan.ID)
	if err != nil {
		t.Fatalf("getting todo persons: %v", err)
	}
	if len(persons) != 1 || persons[0].Name != "Alex" {
		t.Errorf("imported todo persons = %v, want Alex", persons)
	}
}

func TestImportReplaceWipesExistingRows(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateTodo(ctx, model.Todo{Title: "old"}); err != nil {
		t.Fatalf("creating todo: %v", err)
	}

	doc := &model.ExportDocument{
		Version:    model.ExportVersion,
		ExportDate: time.Now().UTC(),
		Data: &model.ExportData{
			Todos: []model.Todo{{ID: 1, Title: "new", Type: model.TodoTypeTodo}},
		},
	}
	if err := s.ImportData(ctx, doc, model.ImportModeReplace); err != nil {
		t.Fatalf("importing: %v", err)
	}

	todos, _ := s.GetAllTodos(ctx, store.ScopeAll())
	if len(todos) != 1 || todos[0].Title != "new" {
		t.Errorf("after replace import todos = %v, want only 'new'", todos)
	}
	// Replace wipes seeded statuses too; only document rows remain.
	statuses, _ := s.GetAllStatuses(ctx)
	if len(statuses) != 0 {
		t.Errorf("after replace import statuses = %v, want none", statuses)
	}
}

func TestImportMergeKeepsExistingRows(t *testing.T) {
	s := testutil.NewTestStore(t)
	seedDataset(t, s)
	ctx := context.Background()

	doc, err := s.ExportData(ctx)
	if err != nil {
		t.Fatalf("exporting: %v", err)
	}
	// Merging a document into its own source duplicates everything;
	// merge never deduplicates.
	if err := s.ImportData(ctx, doc, model.ImportModeMerge); err != nil {
		t.Fatalf("importing: %v", err)
	}

	todos, _ := s.GetAllTodos(ctx, store.ScopeAll())
	if len(todos) != 4 {
		t.Errorf("after merge import %d todos, want 4", len(todos))
	}
	projects, _ := s.GetAllProjects(ctx)
	if len(projects) != 2 {
		t.Errorf("after merge import %d projects, want 2", len(projects))
	}
}

func TestImportDropsOrphanedReferences(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	doc := &model.ExportDocument{
		Version:    model.ExportVersion,
		ExportDate: time.Now().UTC(),
		Data: &model.ExportData{
			Todos: []model.Todo{
				{ID: 10, Title: "orphan refs", Type: model.TodoTypeTodo, ProjectID: ptr(int64(99))},
			},
			Subtasks: []model.Subtask{
				{ID: 1, TodoID: 42, Title: "dangling"},
			},
			TodoLinks: []model.TodoLink{
				{ID: 1, SourceID: 10, TargetID: 42},
			},
		},
	}
	if err := s.ImportData(ctx, doc, model.ImportModeReplace); err != nil {
		t.Fatalf("importing: %v", err)
	}

	todos, _ := s.GetAllTodos(ctx, store.ScopeAll())
	if len(todos) != 1 {
		t.Fatalf("imported %d todos, want 1", len(todos))
	}
	if todos[0].ProjectID != nil {
		t.Errorf("orphaned project reference kept: %v", todos[0].ProjectID)
	}
	if todos[0].SubtaskCount != 0 {
		t.Errorf("orphaned subtask imported: count = %d", todos[0].SubtaskCount)
	}
	linked, _ := s.GetLinkedTodos(ctx, todos[0].ID)
	if len(linked) != 0 {
		t.Errorf("orphaned link imported: %v", linked)
	}
}

func TestImportRemapsParents(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	doc := &model.ExportDocument{
		Version:    model.ExportVersion,
		ExportDate: time.Now().UTC(),
		Data: &model.ExportData{
			Todos: []model.Todo{
				// Child listed before its parent.
				{ID: 5, Title: "child", Type: model.TodoTypeTodo, ParentID: ptr(int64(6))},
				{ID: 6, Title: "milestone", Type: model.TodoTypeMilestone},
			},
		},
	}
	if err := s.ImportData(ctx, doc, model.ImportModeReplace); err != nil {
		t.Fatalf("importing: %v", err)
	}

	milestones, _ := s.GetMilestones(ctx)
	if len(milestones) != 1 {
		t.Fatalf("imported %d milestones, want 1", len(milestones))
	}
	children, _ := s.GetMilestoneTodos(ctx, milestones[0].ID)
	if len(children) != 1 || children[0].Title != "child" {
		t.Errorf("milestone children = %v, want 'child'", children)
	}
}

func TestImportWithoutData(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.ImportData(ctx, nil, model.ImportModeMerge); err == nil {
		t.Error("importing a nil document succeeded")
	}
	if err := s.ImportData(ctx, &model.ExportDocument{Version: 1}, model.ImportModeMerge); err == nil {
		t.Error("importing a document without data succeeded")
	}
}
