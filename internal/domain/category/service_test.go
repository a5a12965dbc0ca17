package category

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/todotracker/backend/internal/domain/task"
	"go.uber.org/zap"
)

type link struct {
	taskID     uuid.UUID
	categoryID uuid.UUID
}

// memCategoryRepo is an in-memory CategoryRepository for service tests.
type memCategoryRepo struct {
	categories map[uuid.UUID]*Category
	links      []link
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: make(map[uuid.UUID]*Category)}
}

func (m *memCategoryRepo) Create(ctx context.Context, c *Category) error {
	cp := *c
	m.categories[c.ID] = &cp
	return nil
}

func (m *memCategoryRepo) FindByID(ctx context.Context, id, userID uuid.UUID) (*Category, error) {
	c, ok := m.categories[id]
	if !ok || c.UserID != userID {
		return nil, ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCategoryRepo) FindAll(ctx context.Context, userID uuid.UUID) ([]Category, error) {
	var out []Category
	for _, c := range m.categories {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memCategoryRepo) Update(ctx context.Context, c *Category) error {
	if _, ok := m.categories[c.ID]; !ok {
		return ErrCategoryNotFound
	}
	cp := *c
	m.categories[c.ID] = &cp
	return nil
}

func (m *memCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.categories[id]; !ok {
		return ErrCategoryNotFound
	}
	delete(m.categories, id)
	kept := m.links[:0]
	for _, l := range m.links {
		if l.categoryID != id {
			kept = append(kept, l)
		}
	}
	m.links = kept
	return nil
}

func (m *memCategoryRepo) Link(ctx context.Context, taskID, categoryID uuid.UUID) error {
	for _, l := range m.links {
		if l.taskID == taskID && l.categoryID == categoryID {
			return nil
		}
	}
	m.links = append(m.links, link{taskID, categoryID})
	return nil
}

func (m *memCategoryRepo) Unlink(ctx context.Context, taskID, categoryID uuid.UUID) error {
	kept := m.links[:0]
	for _, l := range m.links {
		if !(l.taskID == taskID && l.categoryID == categoryID) {
			kept = append(kept, l)
		}
	}
	m.links = kept
	return nil
}

func (m *memCategoryRepo) FindByTask(ctx context.Context, taskID uuid.UUID) ([]Category, error) {
	var out []Category
	for _, l := range m.links {
		if l.taskID == taskID {
			if c, ok := m.categories[l.categoryID]; ok {
				out = append(out, *c)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// stubTaskRepo resolves task ownership for the service under test.
type stubTaskRepo struct {
	task.TaskRepository
	owners map[uuid.UUID]uuid.UUID
}

func (s *stubTaskRepo) FindByID(ctx context.Context, id, userID uuid.UUID) (*task.Task, error) {
	owner, ok := s.owners[id]
	if !ok || owner != userID {
		return nil, task.ErrTaskNotFound
	}
	return &task.Task{ID: id, UserID: owner}, nil
}

func TestAssignToTaskOwnership(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	taskID := uuid.New()
	strangersTaskID := uuid.New()

	repo := newMemCategoryRepo()
	tasks := &stubTaskRepo{owners: map[uuid.UUID]uuid.UUID{
		taskID:          owner,
		strangersTaskID: stranger,
	}}
	svc := NewService(repo, tasks, zap.NewNop())

	ownCategory, err := svc.CreateCategory(context.Background(), CreateCategoryInput{UserID: owner, Name: "work"})
	require.NoError(t, err)
	strangersCategory, err := svc.CreateCategory(context.Background(), CreateCategoryInput{UserID: stranger, Name: "theirs"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		taskID     uuid.UUID
		categoryID uuid.UUID
		wantErr    error
	}{
		{"Own task and own category", taskID, ownCategory.ID, nil},
		{"Another user's task", strangersTaskID, ownCategory.ID, task.ErrTaskNotFound},
		{"Another user's category", taskID, strangersCategory.ID, ErrCategoryNotFound},
		{"Unknown task", uuid.New(), ownCategory.ID, task.ErrTaskNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.AssignToTask(context.Background(), tt.taskID, tt.categoryID, owner)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}

	// The single successful assignment produced exactly one link, and
	// re-assigning is a no-op.
	require.NoError(t, svc.AssignToTask(context.Background(), taskID, ownCategory.ID, owner))
	assert.Len(t, repo.links, 1)
}

func TestCreateCategoryValidation(t *testing.T) {
	svc := NewService(newMemCategoryRepo(), &stubTaskRepo{}, zap.NewNop())

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'x'
	}

	tests := []struct {
		name    string
		input   CreateCategoryInput
		wantErr bool
	}{
		{"Valid", CreateCategoryInput{UserID: uuid.New(), Name: "errands", Color: "#00ff00"}, false},
		{"Empty name", CreateCategoryInput{UserID: uuid.New(), Name: ""}, true},
		{"Overlong name", CreateCategoryInput{UserID: uuid.New(), Name: string(long)}, true},
		{"Missing owner", CreateCategoryInput{Name: "errands"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCategory(context.Background(), tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestListCategoriesSortedByName(t *testing.T) {
	owner := uuid.New()
	repo := newMemCategoryRepo()
	svc := NewService(repo, &stubTaskRepo{}, zap.NewNop())

	for _, name := range []string{"zebra", "alpha", "midway"} {
		_, err := svc.CreateCategory(context.Background(), CreateCategoryInput{UserID: owner, Name: name})
		require.NoError(t, err)
	}
	_, err := svc.CreateCategory(context.Background(), CreateCategoryInput{UserID: uuid.New(), Name: "foreign"})
	require.NoError(t, err)

	listed, err := svc.ListCategories(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "alpha", listed[0].Name)
	assert.Equal(t, "midway", listed[1].Name)
	assert.Equal(t, "zebra", listed[2].Name)
}

func TestDeleteCategoryCascadesLinks(t *testing.T) {
	owner := uuid.New()
	taskID := uuid.New()

	repo := newMemCategoryRepo()
	tasks := &stubTaskRepo{owners: map[uuid.UUID]uuid.UUID{taskID: owner}}
	svc := NewService(repo, tasks, zap.NewNop())

	created, err := svc.CreateCategory(context.Background(), CreateCategoryInput{UserID: owner, Name: "work"})
	require.NoError(t, err)
	require.NoError(t, svc.AssignToTask(context.Background(), taskID, created.ID, owner))
	require.Len(t, repo.links, 1)

	require.NoError(t, svc.DeleteCategory(context.Background(), created.ID, owner))
	assert.Empty(t, repo.links)

	// Deleting someone else's category is a not-found, not a cascade.
	other, err := svc.CreateCategory(context.Background(), CreateCategoryInput{UserID: uuid.New(), Name: "foreign"})
	require.NoError(t, err)
	err = svc.DeleteCategory(context.Background(), other.ID, owner)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
