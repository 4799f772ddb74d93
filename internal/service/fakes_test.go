package service

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/project-board/internal/confirm"
	"github.com/spec-kit/project-board/internal/domain"
	"github.com/spec-kit/project-board/internal/events"
	"github.com/spec-kit/project-board/internal/repository"
)

type fakeMemberRepo struct {
	mu      sync.Mutex
	members map[string]*domain.Member
	creates int
	updates int
	deletes int
}

func newFakeMemberRepo(members ...*domain.Member) *fakeMemberRepo {
	repo := &fakeMemberRepo{members: make(map[string]*domain.Member)}
	for _, m := range members {
		copied := *m
		repo.members[m.ID] = &copied
	}
	return repo
}

func (r *fakeMemberRepo) Create(ctx context.Context, member *domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	copied := *member
	r.members[member.ID] = &copied
	return nil
}

func (r *fakeMemberRepo) Update(ctx context.Context, member *domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[member.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.updates++
	copied := *member
	r.members[member.ID] = &copied
	return nil
}

func (r *fakeMemberRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[id]; !ok {
		return pgx.ErrNoRows
	}
	r.deletes++
	delete(r.members, id)
	return nil
}

func (r *fakeMemberRepo) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	member, ok := r.members[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *member
	return &copied, nil
}

func (r *fakeMemberRepo) GetByAlias(ctx context.Context, alias string) (*domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, member := range r.members {
		if member.Alias == alias {
			copied := *member
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeMemberRepo) List(ctx context.Context, search string) ([]domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []domain.Member
	for _, member := range r.members {
		all = append(all, *member)
	}
	return FilterMembers(all, search), nil
}

type fakeTaskRepo struct {
	mu           sync.Mutex
	tasks        map[string]*domain.Task
	updates      int
	clearedFor   []string
	deletedTasks []string
}

func newFakeTaskRepo(tasks ...*domain.Task) *fakeTaskRepo {
	repo := &fakeTaskRepo{tasks: make(map[string]*domain.Task)}
	for _, task := range tasks {
		copied := *task
		repo.tasks[task.ID] = &copied
	}
	return repo
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *task
	r.tasks[task.ID] = &copied
	return nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[task.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.updates++
	copied := *task
	r.tasks[task.ID] = &copied
	return nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tasks, id)
	r.deletedTasks = append(r.deletedTasks, id)
	return nil
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *task
	return &copied, nil
}

func (r *fakeTaskRepo) ListWithFilter(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Task
	for _, task := range r.tasks {
		result = append(result, *task)
	}
	return result, nil
}

func (r *fakeTaskRepo) ClearAssignee(ctx context.Context, memberID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearedFor = append(r.clearedFor, memberID)
	for _, task := range r.tasks {
		if task.AssigneeID != nil && *task.AssigneeID == memberID {
			task.AssigneeID = nil
		}
	}
	return nil
}

type fakeUpdateRepo struct {
	mu      sync.Mutex
	updates []domain.StatusUpdate
}

func (r *fakeUpdateRepo) Create(ctx context.Context, update *domain.StatusUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, *update)
	return nil
}

func (r *fakeUpdateRepo) GetByID(ctx context.Context, id string) (*domain.StatusUpdate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.updates {
		if r.updates[i].ID == id {
			copied := r.updates[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUpdateRepo) List(ctx context.Context, limit, offset int) ([]domain.StatusUpdate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.StatusUpdate{}, r.updates...), nil
}

// fakeGate mirrors confirm.Gate semantics with in-memory, single-use tokens.
type fakeGate struct {
	mu     sync.Mutex
	tokens map[string]struct{}
	next   string
	issued []confirm.Challenge
}

func newFakeGate() *fakeGate {
	return &fakeGate{tokens: make(map[string]struct{}), next: "confirm-token-1"}
}

func (g *fakeGate) Issue(ctx context.Context, action, targetID, title, message string, dangerous bool) (*confirm.Challenge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	challenge := confirm.Challenge{
		Token:     g.next,
		Title:     title,
		Message:   message,
		Dangerous: dangerous,
	}
	g.tokens[action+":"+targetID+":"+challenge.Token] = struct{}{}
	g.issued = append(g.issued, challenge)
	return &challenge, nil
}

func (g *fakeGate) Consume(ctx context.Context, action, targetID, token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	key := action + ":" + targetID + ":" + token
	if _, ok := g.tokens[key]; !ok {
		return confirm.ErrNotConfirmed
	}
	delete(g.tokens, key)
	return nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

func (d *recordingDispatcher) byType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var matched []events.Event
	for _, event := range d.events {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}

type fakeGenerator struct {
	text string
	err  error
	// prompts records what the service asked for.
	prompts []string
}

func (g *fakeGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}
