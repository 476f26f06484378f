package services

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dailyvote/api/internal/core/domain"
	"github.com/dailyvote/api/internal/core/ports"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
	// onListCandidates runs once, after the candidate list has been read.
	onListCandidates func()
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
	for i := range users {
		u := users[i]
		r.users[u.ID] = &u
	}
	return r
}

func (r *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	slices.SortFunc(out, func(a, b domain.User) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

func (r *fakeUserRepo) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	users, _ := r.List(ctx)
	var out []domain.Candidate
	for _, u := range users {
		if u.IsEmployee() {
			out = append(out, domain.Candidate{ID: u.ID, Name: u.Name, Username: u.Username})
		}
	}
	if hook := r.onListCandidates; hook != nil {
		r.onListCandidates = nil
		hook()
	}
	return out, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, id uuid.UUID, update ports.UserUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Username != nil {
		u.Username = *update.Username
	}
	if update.Password != nil {
		u.Password = *update.Password
	}
	if update.IsAdmin != nil {
		u.IsAdmin = *update.IsAdmin
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	delete(r.users, id)
	return u, nil
}

type fakeDateRepo struct {
	dates []domain.VotingDate
}

func (r *fakeDateRepo) List(ctx context.Context) ([]domain.VotingDate, error) {
	return r.dates, nil
}

func (r *fakeDateRepo) Get(ctx context.Context, date string) (*domain.VotingDate, error) {
	for _, d := range r.dates {
		if d.Date == date {
			cp := d
			return &cp, nil
		}
	}
	return nil, domain.ErrDateNotFound
}

func (r *fakeDateRepo) Ensure(ctx context.Context, date domain.VotingDate) (bool, error) {
	if _, err := r.Get(ctx, date.Date); err == nil {
		return false, nil
	}
	r.dates = append(r.dates, date)
	return true, nil
}

type fakeVoteRepo struct {
	votes []domain.Vote
}

func (r *fakeVoteRepo) Save(ctx context.Context, vote *domain.Vote) error {
	for _, v := range r.votes {
		if v.VoterID == vote.VoterID && v.Date == vote.Date {
			return domain.ErrAlreadyVoted
		}
	}
	vote.VotedAt = time.Now()
	r.votes = append(r.votes, *vote)
	return nil
}

func (r *fakeVoteRepo) GetByVoterAndDate(ctx context.Context, voterID uuid.UUID, date string) (*domain.Vote, error) {
	for _, v := range r.votes {
		if v.VoterID == voterID && v.Date == date {
			cp := v
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeVoteRepo) ListByVoter(ctx context.Context, voterID uuid.UUID) ([]domain.Vote, error) {
	var out []domain.Vote
	for _, v := range r.votes {
		if v.VoterID == voterID {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, func(a, b domain.Vote) int { return cmp.Compare(b.Date, a.Date) })
	return out, nil
}

func (r *fakeVoteRepo) ListByDate(ctx context.Context, date string) ([]domain.Vote, error) {
	var out []domain.Vote
	for _, v := range r.votes {
		if v.Date == date {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVoteRepo) ListAll(ctx context.Context) ([]domain.Vote, error) {
	return r.votes, nil
}

type fakeTieRepo struct {
	resolutions []domain.TieResolution
}

func (r *fakeTieRepo) Create(ctx context.Context, resolution *domain.TieResolution) error {
	for _, t := range r.resolutions {
		if t.Date == resolution.Date {
			return domain.ErrTieAlreadyResolved
		}
	}
	resolution.ResolvedAt = time.Now()
	r.resolutions = append(r.resolutions, *resolution)
	return nil
}

func (r *fakeTieRepo) GetByDate(ctx context.Context, date string) (*domain.TieResolution, error) {
	for _, t := range r.resolutions {
		if t.Date == date {
			cp := t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTieRepo) List(ctx context.Context) ([]domain.TieResolution, error) {
	return r.resolutions, nil
}

type fakeCache struct {
	candidates  []domain.Candidate
	filled      bool
	generation  int64
	invalidated int
}

func (c *fakeCache) Get(ctx context.Context) ([]domain.Candidate, bool, error) {
	return c.candidates, c.filled, nil
}

func (c *fakeCache) Generation(ctx context.Context) (int64, error) {
	return c.generation, nil
}

func (c *fakeCache) Set(ctx context.Context, generation int64, candidates []domain.Candidate) (bool, error) {
	if generation != c.generation {
		return false, nil
	}
	c.candidates = candidates
	c.filled = true
	return true, nil
}

func (c *fakeCache) Invalidate(ctx context.Context) error {
	c.candidates = nil
	c.filled = false
	c.generation++
	c.invalidated++
	return nil
}

func employee(name string) domain.User {
	return domain.User{ID: uuid.New(), Name: name, Username: name, Password: "secret"}
}

func admin(name string) domain.User {
	u := employee(name)
	u.IsAdmin = true
	return u
}

func identityOf(u domain.User) domain.Identity {
	return domain.Identity{ID: u.ID, Name: u.Name, Username: u.Username, IsAdmin: u.IsAdmin}
}

func ptr[T any](v T) *T {
	return &v
}
