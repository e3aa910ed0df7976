package leaderboardservice

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/uptrace/bun"

	leaderboarddb "github.com/M8eight/socio-oprosnik/app/modules/leaderboard/infrastructure/repositories"
)

// ------------------------
// Fake Leader Repo
// ------------------------

// FakeLeaderRepo is an in-memory Repository. Its default behavior enforces
// the unique constraint on username the way the real store does, so the
// creation-race path is exercisable; individual methods can be overridden via
// the *Func fields.
type FakeLeaderRepo struct {
	mu     sync.Mutex
	trace  []string
	nextID int64
	rows   map[int64]leaderboarddb.Leader
	byName map[string]int64

	GetByIDFunc       func(ctx context.Context, db bun.IDB, id int64) (*leaderboarddb.Leader, error)
	GetByUsernameFunc func(ctx context.Context, db bun.IDB, username string) (*leaderboarddb.Leader, error)
	InsertFunc        func(ctx context.Context, db bun.IDB, leader *leaderboarddb.Leader) (bool, error)
	UpdateFunc        func(ctx context.Context, db bun.IDB, leader *leaderboarddb.Leader) error
	DeleteFunc        func(ctx context.Context, db bun.IDB, id int64) error
	ListFunc          func(ctx context.Context, db bun.IDB, offset, limit int) ([]leaderboarddb.Leader, error)
}

func NewFakeLeaderRepo() *FakeLeaderRepo {
	return &FakeLeaderRepo{
		trace:  []string{},
		rows:   map[int64]leaderboarddb.Leader{},
		byName: map[string]int64{},
	}
}

func (f *FakeLeaderRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository interface implementation ---

func (f *FakeLeaderRepo) GetByID(ctx context.Context, db bun.IDB, id int64) (*leaderboarddb.Leader, error) {
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetByID")
	row, ok := f.rows[id]
	if !ok {
		return nil, leaderboarddb.ErrNotFound
	}
	return &row, nil
}

func (f *FakeLeaderRepo) GetByUsername(ctx context.Context, db bun.IDB, username string) (*leaderboarddb.Leader, error) {
	if f.GetByUsernameFunc != nil {
		return f.GetByUsernameFunc(ctx, db, username)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetByUsername")
	id, ok := f.byName[username]
	if !ok {
		return nil, leaderboarddb.ErrNotFound
	}
	row := f.rows[id]
	return &row, nil
}

func (f *FakeLeaderRepo) Insert(ctx context.Context, db bun.IDB, leader *leaderboarddb.Leader) (bool, error) {
	if f.InsertFunc != nil {
		return f.InsertFunc(ctx, db, leader)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Insert")
	if _, taken := f.byName[leader.Username]; taken {
		return false, nil
	}
	f.nextID++
	leader.ID = f.nextID
	f.rows[leader.ID] = *leader
	f.byName[leader.Username] = leader.ID
	return true, nil
}

func (f *FakeLeaderRepo) Update(ctx context.Context, db bun.IDB, leader *leaderboarddb.Leader) error {
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, db, leader)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Update")
	current, ok := f.rows[leader.ID]
	if !ok {
		return leaderboarddb.ErrNotFound
	}
	if other, taken := f.byName[leader.Username]; taken && other != leader.ID {
		return leaderboarddb.ErrUsernameTaken
	}
	delete(f.byName, current.Username)
	f.rows[leader.ID] = *leader
	f.byName[leader.Username] = leader.ID
	return nil
}

func (f *FakeLeaderRepo) Delete(ctx context.Context, db bun.IDB, id int64) error {
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, db, id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Delete")
	row, ok := f.rows[id]
	if !ok {
		return leaderboarddb.ErrNotFound
	}
	delete(f.rows, id)
	delete(f.byName, row.Username)
	return nil
}

func (f *FakeLeaderRepo) List(ctx context.Context, db bun.IDB, offset, limit int) ([]leaderboarddb.Leader, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db, offset, limit)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("List")
	all := make([]leaderboarddb.Leader, 0, len(f.rows))
	for _, row := range f.rows {
		all = append(all, row)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score > all[j].Score
		}
		return all[i].ID < all[j].ID
	})
	if offset >= len(all) {
		return []leaderboarddb.Leader{}, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// --- Accessors for assertions ---

func (f *FakeLeaderRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeLeaderRepo) RowCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

func (f *FakeLeaderRepo) Stored(username string) (leaderboarddb.Leader, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.byName[username]
	if !ok {
		return leaderboarddb.Leader{}, false
	}
	return f.rows[id], true
}

// Seed inserts a row directly, bypassing the trace.
func (f *FakeLeaderRepo) Seed(leader leaderboarddb.Leader) leaderboarddb.Leader {
	f.mu.Lock()
	defer f.mu.Unlock()
	if leader.ID == 0 {
		f.nextID++
		leader.ID = f.nextID
	} else if leader.ID > f.nextID {
		f.nextID = leader.ID
	}
	f.rows[leader.ID] = leader
	f.byName[leader.Username] = leader.ID
	return leader
}

// Ensure the fake actually satisfies the interface
var _ leaderboarddb.Repository = (*FakeLeaderRepo)(nil)

func newTestService(repo leaderboarddb.Repository) *ProgressService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewProgressService(repo, nil, logger, nil)
}

func countSteps(trace []string, step string) int {
	n := 0
	for _, s := range trace {
		if s == step {
			n++
		}
	}
	return n
}
