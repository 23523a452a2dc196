package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"sampark-api/core/errors"
	"sampark-api/core/params"
	"sampark-api/core/utils"
	attendeeEntity "sampark-api/modules/attendee/entity"
	attendeeRepo "sampark-api/modules/attendee/repository"
	"sampark-api/modules/connection/dto"
	"sampark-api/modules/connection/entity"
	"sampark-api/modules/connection/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConnectionRepo is an in-memory ledger that enforces the same
// invariants as the postgres schema: pair uniqueness for live rows with
// a non-empty source, and status transitions only out of Pending.
type fakeConnectionRepo struct {
	rows []*entity.Connection
}

func (f *fakeConnectionRepo) livePairExists(source, target string) bool {
	for _, row := range f.rows {
		if row.Status != entity.StatusPending && row.Status != entity.StatusAccepted {
			continue
		}
		if row.SourceEmail == "" {
			continue
		}
		if (utils.SameEmail(row.SourceEmail, source) && utils.SameEmail(row.TargetEmail, target)) ||
			(utils.SameEmail(row.SourceEmail, target) && utils.SameEmail(row.TargetEmail, source)) {
			return true
		}
	}
	return false
}

func (f *fakeConnectionRepo) Create(_ context.Context, conn *entity.Connection) error {
	if conn.SourceEmail != "" && f.livePairExists(conn.SourceEmail, conn.TargetEmail) {
		return repository.ErrPairExists
	}
	conn.ID = uuid.New()
	if conn.CreatedAt.IsZero() {
		conn.CreatedAt = time.Now()
	}
	if conn.Status == "" {
		conn.Status = entity.StatusPending
	}
	f.rows = append(f.rows, conn)
	return nil
}

func (f *fakeConnectionRepo) GetByPair(_ context.Context, a, b string) (*entity.Connection, error) {
	var best *entity.Connection
	for _, row := range f.rows {
		match := (utils.SameEmail(row.SourceEmail, a) && utils.SameEmail(row.TargetEmail, b)) ||
			(utils.SameEmail(row.SourceEmail, b) && utils.SameEmail(row.TargetEmail, a))
		if !match {
			continue
		}
		if best == nil {
			best = row
			continue
		}
		bestLive := best.Status == entity.StatusPending || best.Status == entity.StatusAccepted
		rowLive := row.Status == entity.StatusPending || row.Status == entity.StatusAccepted
		if rowLive && !bestLive {
			best = row
		} else if rowLive == bestLive && row.CreatedAt.After(best.CreatedAt) {
			best = row
		}
	}
	if best == nil {
		return nil, repository.ErrNotFound
	}
	return best, nil
}

func (f *fakeConnectionRepo) GetDirected(_ context.Context, source, target string) (*entity.Connection, error) {
	var best *entity.Connection
	for _, row := range f.rows {
		if utils.SameEmail(row.SourceEmail, source) && utils.SameEmail(row.TargetEmail, target) {
			if best == nil || row.CreatedAt.After(best.CreatedAt) {
				best = row
			}
		}
	}
	if best == nil {
		return nil, repository.ErrNotFound
	}
	return best, nil
}

func (f *fakeConnectionRepo) UpdateStatusIfPending(_ context.Context, source, target string, status entity.ConnectionStatus) (bool, error) {
	for _, row := range f.rows {
		if utils.SameEmail(row.SourceEmail, source) && utils.SameEmail(row.TargetEmail, target) && row.Status == entity.StatusPending {
			now := time.Now()
			row.Status = status
			row.RespondedAt = &now
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeConnectionRepo) ListForUser(_ context.Context, email string, p params.QueryParams) ([]entity.Connection, error) {
	var out []entity.Connection
	for _, row := range f.rows {
		if utils.SameEmail(row.SourceEmail, email) || utils.SameEmail(row.TargetEmail, email) {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if p.Offset < len(out) {
		out = out[p.Offset:]
	} else {
		out = nil
	}
	if p.Limit > 0 && len(out) > p.Limit {
		out = out[:p.Limit]
	}
	return out, nil
}

func (f *fakeConnectionRepo) CountAccepted(_ context.Context, email string) (int, error) {
	count := 0
	for _, row := range f.rows {
		if row.Status != entity.StatusAccepted {
			continue
		}
		if utils.SameEmail(row.SourceEmail, email) || utils.SameEmail(row.TargetEmail, email) {
			count++
		}
	}
	return count, nil
}

func (f *fakeConnectionRepo) CountAcceptedAll(_ context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, row := range f.rows {
		if row.Status != entity.StatusAccepted {
			continue
		}
		if row.SourceEmail != "" {
			counts[utils.NormalizeEmail(row.SourceEmail)]++
		}
		counts[utils.NormalizeEmail(row.TargetEmail)]++
	}
	return counts, nil
}

// fakeAttendeeDirectory implements the subset of directory behavior the
// ledger needs: lookup by email.
type fakeAttendeeDirectory struct {
	attendees map[string]*attendeeEntity.Attendee
}

func newFakeDirectory(people ...*attendeeEntity.Attendee) *fakeAttendeeDirectory {
	f := &fakeAttendeeDirectory{attendees: make(map[string]*attendeeEntity.Attendee)}
	for _, p := range people {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		f.attendees[utils.NormalizeEmail(p.Email)] = p
	}
	return f
}

func (f *fakeAttendeeDirectory) GetByEmail(_ context.Context, email string) (*attendeeEntity.Attendee, error) {
	if a, ok := f.attendees[utils.NormalizeEmail(email)]; ok {
		return a, nil
	}
	return nil, attendeeRepo.ErrNotFound
}

func (f *fakeAttendeeDirectory) Create(_ context.Context, a *attendeeEntity.Attendee) error {
	a.ID = uuid.New()
	f.attendees[utils.NormalizeEmail(a.Email)] = a
	return nil
}

func (f *fakeAttendeeDirectory) GetBySlug(_ context.Context, slug string) (*attendeeEntity.Attendee, error) {
	for _, a := range f.attendees {
		if a.Slug == slug {
			return a, nil
		}
	}
	return nil, attendeeRepo.ErrNotFound
}

func (f *fakeAttendeeDirectory) GetByID(_ context.Context, id uuid.UUID) (*attendeeEntity.Attendee, error) {
	for _, a := range f.attendees {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, attendeeRepo.ErrNotFound
}

func (f *fakeAttendeeDirectory) GetAll(_ context.Context, _ params.QueryParams) ([]attendeeEntity.Attendee, error) {
	var out []attendeeEntity.Attendee
	for _, a := range f.attendees {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAttendeeDirectory) Search(_ context.Context, _ string, _ params.QueryParams) ([]attendeeEntity.Attendee, error) {
	return f.GetAll(context.Background(), params.QueryParams{})
}

func (f *fakeAttendeeDirectory) UpdateProfile(_ context.Context, _ *attendeeEntity.Attendee) error {
	return nil
}

func (f *fakeAttendeeDirectory) UpdateStatus(_ context.Context, _ uuid.UUID, _ attendeeEntity.AttendeeStatus) error {
	return nil
}

func (f *fakeAttendeeDirectory) UpdatePasswordHash(_ context.Context, _ uuid.UUID, _ string) error {
	return nil
}

func (f *fakeAttendeeDirectory) UpdateSlug(_ context.Context, _ uuid.UUID, _ string) error {
	return nil
}

func (f *fakeAttendeeDirectory) SlugExists(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (f *fakeAttendeeDirectory) ListMissingSlugs(_ context.Context) ([]attendeeEntity.Attendee, error) {
	return nil, nil
}

func newTestService(people ...*attendeeEntity.Attendee) (*ConnectionService, *fakeConnectionRepo) {
	repo := &fakeConnectionRepo{}
	dir := newFakeDirectory(people...)
	return NewConnectionService(repo, dir, nil), repo
}

func alice() *attendeeEntity.Attendee {
	return &attendeeEntity.Attendee{Name: "Alice", Email: "alice@x.com", Phone: "111"}
}

func bob() *attendeeEntity.Attendee {
	return &attendeeEntity.Attendee{Name: "Bob", Email: "bob@y.com", Phone: "222"}
}

func TestRequest_SelfConnectionRejected(t *testing.T) {
	svc, repo := newTestService(alice())

	appErr := svc.Request(context.Background(), &dto.RequestConnectionRequest{
		SourceEmail: "alice@x.com",
		TargetEmail: "Alice@X.com",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrAlreadyExists, appErr.Code)
	assert.Contains(t, appErr.Message, "yourself")
	assert.Empty(t, repo.rows)
}

func TestRequest_UnregisteredSourceRejected(t *testing.T) {
	svc, repo := newTestService(bob())

	appErr := svc.Request(context.Background(), &dto.RequestConnectionRequest{
		SourceEmail: "ghost@x.com",
		TargetEmail: "bob@y.com",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
	assert.Empty(t, repo.rows)
}

func TestRequest_CreatesPendingRow(t *testing.T) {
	svc, repo := newTestService(alice(), bob())

	appErr := svc.Request(context.Background(), &dto.RequestConnectionRequest{
		SourceEmail: "alice@x.com",
		TargetEmail: "bob@y.com",
		Note:        "hello",
	})
	require.Nil(t, appErr)
	require.Len(t, repo.rows, 1)

	row := repo.rows[0]
	assert.Equal(t, entity.StatusPending, row.Status)
	assert.Equal(t, "Alice", row.SourceName)
	assert.Equal(t, "111", row.SourcePhone)
	assert.Equal(t, "hello", row.Note)

	status, statusErr := svc.GetStatus(context.Background(), "alice@x.com", "bob@y.com")
	require.Nil(t, statusErr)
	assert.Equal(t, entity.StatusPending, status)
}

func TestRequest_DuplicateEitherDirectionConflicts(t *testing.T) {
	svc, repo := newTestService(alice(), bob())

	require.Nil(t, svc.Request(context.Background(), &dto.RequestConnectionRequest{
		SourceEmail: "alice@x.com",
		TargetEmail: "bob@y.com",
	}))

	// Same direction.
	appErr := svc.Request(context.Background(), &dto.RequestConnectionRequest{
		SourceEmail: "alice@x.com",
		TargetEmail: "bob@y.com",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrAlreadyExists, appErr.Code)
	assert.Contains(t, appErr.Message, "pending")

	// Reverse direction: same unordered pair.
	appErr = svc.Request(context.Background(), &dto.RequestConnectionRequest{
		SourceEmail: "bob@y.com",
		TargetEmail: "alice@x.com",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrAlreadyExists, appErr.Code)

	assert.Len(t, repo.rows, 1)
}

func TestRequest_AlreadyConnectedMessageDistinct(t *testing.T) {
	svc, _ := newTestService(alice(), bob())

	require.Nil(t, svc.Request(context.Background(), &dto.RequestConnectionRequest{
		SourceEmail: "alice@x.com",
		TargetEmail: "bob@y.com",
	}))
	require.Nil(t, svc.Respond(context.Background(), "bob@y.com", "alice@x.com", entity.StatusAccepted))

	appErr := svc.Request(context.Background(), &dto.RequestConnectionRequest{
		SourceEmail: "alice@x.com",
		TargetEmail: "bob@y.com",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrAlreadyExists, appErr.Code)
	assert.Contains(t, appErr.Message, "already connected")
}

func TestRequest_StorageRaceLosesWithConflict(t *testing.T) {
	// Two racers both pass the pre-check; the second insert must fail on
	// the pair constraint, not create a second row.
	svc, repo := newTestService(alice(), bob())

	require.Nil(t, repo.Create(context.Background(), &entity.Connection{
		SourceEmail: "bob@y.com",
		TargetEmail: "alice@x.com",
		Status:      entity.StatusPending,
	}))

	err := repo.Create(context.Background(), &entity.Connection{
		SourceEmail: "alice@x.com",
		TargetEmail: "bob@y.com",
		Status:      entity.StatusPending,
	})
	assert.Equal(t, repository.ErrPairExists, err)
	assert.Len(t, repo.rows, 1)

	// And the service maps that to a Conflict.
	appErr := svc.Request(context.Background(), &dto.RequestConnectionRequest{
		SourceEmail: "alice@x.com",
		TargetEmail: "bob@y.com",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrAlreadyExists, appErr.Code)
}

func TestRequest_GuestWithoutIdentityRejected(t *testing.T) {
	svc, repo := newTestService(bob())

	appErr := svc.Request(context.Background(), &dto.RequestConnectionRequest{
		TargetEmail: "bob@y.com",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
	assert.Empty(t, repo.rows)
}

func TestRequest_GuestStoredByNameAndPhone(t *testing.T) {
	svc, repo := newTestService(bob())

	appErr := svc.Request(context.Background(), &dto.RequestConnectionRequest{
		TargetEmail: "bob@y.com",
		SourceName:  "Walk-in Visitor",
		SourcePhone: "555",
		Note:        "met at the booth",
	})
	require.Nil(t, appErr)
	require.Len(t, repo.rows, 1)
	assert.Empty(t, repo.rows[0].SourceEmail)
	assert.Equal(t, "Walk-in Visitor", repo.rows[0].SourceName)
	assert.Equal(t, "555", repo.rows[0].SourcePhone)
}

func TestGetStatus_SymmetricAndDefaultsToNone(t *testing.T) {
	svc, _ := newTestService(alice(), bob())

	status, appErr := svc.GetStatus(context.Background(), "alice@x.com", "bob@y.com")
	require.Nil(t, appErr)
	assert.Equal(t, entity.StatusNone, status)

	require.Nil(t, svc.Request(context.Background(), &dto.RequestConnectionRequest{
		SourceEmail: "alice@x.com",
		TargetEmail: "bob@y.com",
	}))

	ab, appErr := svc.GetStatus(context.Background(), "alice@x.com", "bob@y.com")
	require.Nil(t, appErr)
	ba, appErr2 := svc.GetStatus(context.Background(), "bob@y.com", "alice@x.com")
	require.Nil(t, appErr2)
	assert.Equal(t, ab, ba)
	assert.Equal(t, entity.StatusPending, ab)
}

func TestRespond_AcceptTransitionsAndIsTerminal(t *testing.T) {
	svc, _ := newTestService(alice(), bob())

	require.Nil(t, svc.Request(context.Background(), &dto.RequestConnectionRequest{
		SourceEmail: "alice@x.com",
		TargetEmail: "bob@y.com",
		Note:        "hello",
	}))

	require.Nil(t, svc.Respond(context.Background(), "bob@y.com", "alice@x.com", entity.StatusAccepted))

	status, appErr := svc.GetStatus(context.Background(), "alice@x.com", "bob@y.com")
	require.Nil(t, appErr)
	assert.Equal(t, entity.StatusAccepted, status)

	// A stale retry must not flip the terminal row.
	retry := svc.Respond(context.Background(), "bob@y.com", "alice@x.com", entity.StatusRejected)
	require.NotNil(t, retry)
	assert.Equal(t, errors.ErrAlreadyExists, retry.Code)

	status, appErr = svc.GetStatus(context.Background(), "alice@x.com", "bob@y.com")
	require.Nil(t, appErr)
	assert.Equal(t, entity.StatusAccepted, status)
}

func TestRespond_OnlyAddresseeMayRespond(t *testing.T) {
	svc, _ := newTestService(alice(), bob())

	require.Nil(t, svc.Request(context.Background(), &dto.RequestConnectionRequest{
		SourceEmail: "alice@x.com",
		TargetEmail: "bob@y.com",
	}))

	// Alice (the requester) tries to accept her own request: the
	// directional row source=bob target=alice does not exist.
	appErr := svc.Respond(context.Background(), "alice@x.com", "bob@y.com", entity.StatusAccepted)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestRespond_UnknownPairNotFound(t *testing.T) {
	svc, _ := newTestService(alice(), bob())

	appErr := svc.Respond(context.Background(), "bob@y.com", "alice@x.com", entity.StatusAccepted)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestRespond_InvalidDecisionRejected(t *testing.T) {
	svc, _ := newTestService(alice(), bob())

	appErr := svc.Respond(context.Background(), "bob@y.com", "alice@x.com", entity.ConnectionStatus("Maybe"))
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestRejectedPairMayBeReRequested(t *testing.T) {
	svc, repo := newTestService(alice(), bob())

	require.Nil(t, svc.Request(context.Background(), &dto.RequestConnectionRequest{
		SourceEmail: "alice@x.com",
		TargetEmail: "bob@y.com",
	}))
	require.Nil(t, svc.Respond(context.Background(), "bob@y.com", "alice@x.com", entity.StatusRejected))

	// A rejection is terminal for the row but not for the pair.
	appErr := svc.Request(context.Background(), &dto.RequestConnectionRequest{
		SourceEmail: "alice@x.com",
		TargetEmail: "bob@y.com",
	})
	require.Nil(t, appErr)
	assert.Len(t, repo.rows, 2)

	status, statusErr := svc.GetStatus(context.Background(), "alice@x.com", "bob@y.com")
	require.Nil(t, statusErr)
	assert.Equal(t, entity.StatusPending, status)
}

func TestList_DirectionAndCounterpartResolution(t *testing.T) {
	svc, _ := newTestService(alice(), bob())

	require.Nil(t, svc.Request(context.Background(), &dto.RequestConnectionRequest{
		SourceEmail: "alice@x.com",
		TargetEmail: "bob@y.com",
		Note:        "hello",
	}))

	bobView, appErr := svc.List(context.Background(), "bob@y.com", params.QueryParams{Limit: 10})
	require.Nil(t, appErr)
	require.Len(t, bobView.Connections, 1)
	assert.Equal(t, dto.DirectionIncoming, bobView.Connections[0].Direction)
	assert.Equal(t, "Alice", bobView.Connections[0].CounterpartName)
	assert.Equal(t, "hello", bobView.Connections[0].Note)

	aliceView, appErr := svc.List(context.Background(), "alice@x.com", params.QueryParams{Limit: 10})
	require.Nil(t, appErr)
	require.Len(t, aliceView.Connections, 1)
	assert.Equal(t, dto.DirectionOutgoing, aliceView.Connections[0].Direction)
	assert.Equal(t, "Bob", aliceView.Connections[0].CounterpartName)
}

func TestList_GuestCounterpartFallsBackToCapturedName(t *testing.T) {
	svc, _ := newTestService(bob())

	require.Nil(t, svc.Request(context.Background(), &dto.RequestConnectionRequest{
		TargetEmail: "bob@y.com",
		SourceName:  "Walk-in Visitor",
	}))

	view, appErr := svc.List(context.Background(), "bob@y.com", params.QueryParams{Limit: 10})
	require.Nil(t, appErr)
	require.Len(t, view.Connections, 1)
	assert.Equal(t, dto.DirectionIncoming, view.Connections[0].Direction)
	assert.Equal(t, "Walk-in Visitor", view.Connections[0].CounterpartName)
	assert.Empty(t, view.Connections[0].CounterpartEmail)
}

func TestList_NewestFirst(t *testing.T) {
	svc, repo := newTestService(alice(), bob())

	base := time.Now()
	for i, src := range []string{"old@e.com", "mid@e.com", "new@e.com"} {
		require.Nil(t, repo.Create(context.Background(), &entity.Connection{
			SourceEmail: src,
			TargetEmail: "bob@y.com",
			SourceName:  src,
			Status:      entity.StatusPending,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}))
	}

	view, appErr := svc.List(context.Background(), "bob@y.com", params.QueryParams{Limit: 10})
	require.Nil(t, appErr)
	require.Len(t, view.Connections, 3)
	assert.Equal(t, "new@e.com", view.Connections[0].CounterpartEmail)
	assert.Equal(t, "old@e.com", view.Connections[2].CounterpartEmail)
}

func TestCountAccepted_SymmetricPolicy(t *testing.T) {
	svc, repo := newTestService(alice(), bob())

	// Three accepted incoming, one pending incoming, one accepted
	// outgoing for bob.
	for _, src := range []string{"p1@e.com", "p2@e.com", "p3@e.com"} {
		require.Nil(t, repo.Create(context.Background(), &entity.Connection{
			SourceEmail: src, TargetEmail: "bob@y.com", Status: entity.StatusAccepted,
		}))
	}
	require.Nil(t, repo.Create(context.Background(), &entity.Connection{
		SourceEmail: "p4@e.com", TargetEmail: "bob@y.com", Status: entity.StatusPending,
	}))
	require.Nil(t, repo.Create(context.Background(), &entity.Connection{
		SourceEmail: "bob@y.com", TargetEmail: "p5@e.com", Status: entity.StatusAccepted,
	}))

	count, appErr := svc.CountAccepted(context.Background(), "bob@y.com")
	require.Nil(t, appErr)
	assert.Equal(t, 4, count)

	// The other side of an accepted edge counts it too.
	count, appErr = svc.CountAccepted(context.Background(), "p1@e.com")
	require.Nil(t, appErr)
	assert.Equal(t, 1, count)
}

func TestScenario_AliceBobLifecycle(t *testing.T) {
	svc, _ := newTestService(alice(), bob())
	ctx := context.Background()

	require.Nil(t, svc.Request(ctx, &dto.RequestConnectionRequest{
		SourceEmail: "alice@x.com",
		TargetEmail: "bob@y.com",
		Note:        "hello",
	}))

	for _, pair := range [][2]string{{"alice@x.com", "bob@y.com"}, {"bob@y.com", "alice@x.com"}} {
		status, appErr := svc.GetStatus(ctx, pair[0], pair[1])
		require.Nil(t, appErr)
		assert.Equal(t, entity.StatusPending, status)
	}

	require.Nil(t, svc.Respond(ctx, "bob@y.com", "alice@x.com", entity.StatusAccepted))

	status, appErr := svc.GetStatus(ctx, "alice@x.com", "bob@y.com")
	require.Nil(t, appErr)
	assert.Equal(t, entity.StatusAccepted, status)

	view, appErr := svc.List(ctx, "bob@y.com", params.QueryParams{Limit: 10})
	require.Nil(t, appErr)
	require.Len(t, view.Connections, 1)
	item := view.Connections[0]
	assert.Equal(t, dto.DirectionIncoming, item.Direction)
	assert.Equal(t, "Alice", item.CounterpartName)
	assert.Equal(t, "hello", item.Note)
	assert.Equal(t, string(entity.StatusAccepted), item.Status)
}
