package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"go-campus-events/internal/model"
	"go-campus-events/internal/repository"
	"go-campus-events/pkg/extauth"

	"github.com/google/uuid"
)

var errBoom = errors.New("boom")

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uuid.UUID]*model.User{}}
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) FindAll(_ context.Context, username string) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.User
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.Username), strings.ToLower(username)) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByKmail(_ context.Context, kmail string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Kmail == kmail {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByKind(_ context.Context, kind string) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.User
	for _, u := range r.users {
		if u.Kind == kind {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Kmail == user.Kmail || u.Kid == user.Kid {
			return repository.ErrDuplicate
		}
	}
	user.ID = uuid.New()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) UpsertByKmail(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Kmail == user.Kmail {
			u.Kind = user.Kind
			*user = *u
			return nil
		}
	}
	user.ID = uuid.New()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

type fakeEventRepo struct {
	mu     sync.Mutex
	events map[uuid.UUID]*model.Event
	// listErr and countErr let tests fail one side of the concurrent listing.
	listErr  error
	countErr error
	lastList repository.EventFilter
}

func newFakeEventRepo(events ...*model.Event) *fakeEventRepo {
	r := &fakeEventRepo{events: map[uuid.UUID]*model.Event{}}
	for _, e := range events {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		r.events[e.ID] = e
	}
	return r
}

func (r *fakeEventRepo) matching(search string) []model.Event {
	var out []model.Event
	for _, e := range r.events {
		if search == "" || strings.Contains(strings.ToLower(e.Name+" "+e.Description), strings.ToLower(search)) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakeEventRepo) List(_ context.Context, f repository.EventFilter) ([]model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastList = f
	if r.listErr != nil {
		return nil, r.listErr
	}
	all := r.matching(f.Search)
	if f.Offset >= len(all) {
		return nil, nil
	}
	end := f.Offset + f.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[f.Offset:end], nil
}

func (r *fakeEventRepo) Count(_ context.Context, f repository.EventFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.countErr != nil {
		return 0, r.countErr
	}
	return int64(len(r.matching(f.Search))), nil
}

func (r *fakeEventRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEventRepo) FindByCreator(_ context.Context, userID uuid.UUID) ([]model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Event
	for _, e := range r.events {
		if e.IsCreatedBy(userID) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) Upcoming(_ context.Context, now time.Time) ([]model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Event
	for _, e := range r.events {
		if e.StartTime != nil && !e.StartTime.Before(now) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) Create(_ context.Context, e *model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	cp := *e
	r.events[e.ID] = &cp
	return nil
}

func (r *fakeEventRepo) Update(_ context.Context, e *model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.events[e.ID] = &cp
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.events, id)
	return nil
}

type fakeRegistrationRepo struct {
	regs map[uuid.UUID]*model.EventRegistration
}

func newFakeRegistrationRepo(regs ...*model.EventRegistration) *fakeRegistrationRepo {
	r := &fakeRegistrationRepo{regs: map[uuid.UUID]*model.EventRegistration{}}
	for _, reg := range regs {
		if reg.ID == uuid.Nil {
			reg.ID = uuid.New()
		}
		r.regs[reg.ID] = reg
	}
	return r
}

func (r *fakeRegistrationRepo) FindAll(context.Context) ([]model.EventRegistration, error) {
	var out []model.EventRegistration
	for _, reg := range r.regs {
		out = append(out, *reg)
	}
	return out, nil
}

func (r *fakeRegistrationRepo) FindByID(_ context.Context, id uuid.UUID) (*model.EventRegistration, error) {
	reg, ok := r.regs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *reg
	return &cp, nil
}

func (r *fakeRegistrationRepo) FindByEvent(_ context.Context, eventID uuid.UUID) ([]model.EventRegistration, error) {
	var out []model.EventRegistration
	for _, reg := range r.regs {
		if reg.EventID == eventID {
			out = append(out, *reg)
		}
	}
	return out, nil
}

func (r *fakeRegistrationRepo) Create(_ context.Context, reg *model.EventRegistration) error {
	for _, existing := range r.regs {
		if existing.UserID == reg.UserID && existing.EventID == reg.EventID {
			return repository.ErrDuplicate
		}
	}
	reg.ID = uuid.New()
	cp := *reg
	r.regs[reg.ID] = &cp
	return nil
}

func (r *fakeRegistrationRepo) Update(_ context.Context, reg *model.EventRegistration) error {
	cp := *reg
	r.regs[reg.ID] = &cp
	return nil
}

func (r *fakeRegistrationRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.regs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.regs, id)
	return nil
}

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*model.AttendanceSession
}

func newFakeSessionRepo(sessions ...*model.AttendanceSession) *fakeSessionRepo {
	r := &fakeSessionRepo{sessions: map[uuid.UUID]*model.AttendanceSession{}}
	for _, s := range sessions {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		r.sessions[s.ID] = s
	}
	return r
}

func (r *fakeSessionRepo) FindAll(context.Context) ([]model.AttendanceSession, error) {
	var out []model.AttendanceSession
	for _, s := range r.sessions {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.AttendanceSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) FindByEvent(_ context.Context, eventID uuid.UUID) ([]model.AttendanceSession, error) {
	var out []model.AttendanceSession
	for _, s := range r.sessions {
		if s.EventID == eventID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) Create(_ context.Context, s *model.AttendanceSession) error {
	s.ID = uuid.New()
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) Update(_ context.Context, s *model.AttendanceSession) error {
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.sessions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

type fakeAttendanceRepo struct {
	rows map[uuid.UUID]*model.Attendance
	// unknownUsers makes CreateIfAbsent fail with a foreign-key error.
	unknownUsers map[uuid.UUID]bool
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{rows: map[uuid.UUID]*model.Attendance{}, unknownUsers: map[uuid.UUID]bool{}}
}

func (r *fakeAttendanceRepo) FindAll(context.Context) ([]model.Attendance, error) {
	var out []model.Attendance
	for _, a := range r.rows {
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeAttendanceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Attendance, error) {
	a, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAttendanceRepo) FindBySession(_ context.Context, sessionID uuid.UUID) ([]model.Attendance, error) {
	var out []model.Attendance
	for _, a := range r.rows {
		if a.AttendanceSessionID == sessionID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]model.Attendance, error) {
	var out []model.Attendance
	for _, a := range r.rows {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) Create(ctx context.Context, a *model.Attendance) error {
	ok, err := r.CreateIfAbsent(ctx, a)
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrDuplicate
	}
	return nil
}

func (r *fakeAttendanceRepo) CreateIfAbsent(_ context.Context, a *model.Attendance) (bool, error) {
	if r.unknownUsers[a.UserID] {
		return false, repository.ErrReference
	}
	for _, existing := range r.rows {
		if existing.UserID == a.UserID && existing.AttendanceSessionID == a.AttendanceSessionID {
			return false, nil
		}
	}
	a.ID = uuid.New()
	cp := *a
	r.rows[a.ID] = &cp
	return true, nil
}

func (r *fakeAttendanceRepo) Update(_ context.Context, a *model.Attendance) error {
	cp := *a
	r.rows[a.ID] = &cp
	return nil
}

func (r *fakeAttendanceRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

// fakeRoleRepo stores roles of either scope keyed by id.
type fakeRoleRepo[R any] struct {
	roles  map[uint]*R
	nextID uint
	name   func(*R) string
	id     func(*R) uint
	setID  func(*R, uint)
}

func newFakeUserRoleRepo() *fakeRoleRepo[model.UserRole] {
	return &fakeRoleRepo[model.UserRole]{
		roles: map[uint]*model.UserRole{},
		name:  func(r *model.UserRole) string { return r.Name },
		id:    func(r *model.UserRole) uint { return r.ID },
		setID: func(r *model.UserRole, id uint) { r.ID = id },
	}
}

func newFakeEventRoleRepo() *fakeRoleRepo[model.EventRole] {
	return &fakeRoleRepo[model.EventRole]{
		roles: map[uint]*model.EventRole{},
		name:  func(r *model.EventRole) string { return r.Name },
		id:    func(r *model.EventRole) uint { return r.ID },
		setID: func(r *model.EventRole, id uint) { r.ID = id },
	}
}

func (f *fakeRoleRepo[R]) FindAll(context.Context) ([]R, error) {
	out := make([]R, 0, len(f.roles))
	for id := uint(1); id <= f.nextID; id++ {
		if r, ok := f.roles[id]; ok {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRoleRepo[R]) FindByID(_ context.Context, id uint) (*R, error) {
	r, ok := f.roles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRoleRepo[R]) FindByName(_ context.Context, name string) (*R, error) {
	for _, r := range f.roles {
		if f.name(r) == name {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRoleRepo[R]) Create(_ context.Context, role *R) error {
	for _, r := range f.roles {
		if f.name(r) == f.name(role) {
			return repository.ErrDuplicate
		}
	}
	f.nextID++
	f.setID(role, f.nextID)
	cp := *role
	f.roles[f.nextID] = &cp
	return nil
}

func (f *fakeRoleRepo[R]) Update(_ context.Context, role *R) error {
	id := f.id(role)
	if _, ok := f.roles[id]; !ok {
		return repository.ErrNotFound
	}
	for otherID, r := range f.roles {
		if otherID != id && f.name(r) == f.name(role) {
			return repository.ErrDuplicate
		}
	}
	cp := *role
	f.roles[id] = &cp
	return nil
}

func (f *fakeRoleRepo[R]) Upsert(ctx context.Context, role *R) error {
	if existing, err := f.FindByName(ctx, f.name(role)); err == nil {
		f.setID(role, f.id(existing))
		return f.Update(ctx, role)
	}
	return f.Create(ctx, role)
}

func (f *fakeRoleRepo[R]) Delete(_ context.Context, id uint) error {
	if _, ok := f.roles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.roles, id)
	return nil
}

func (f *fakeRoleRepo[R]) SeedDefaults(ctx context.Context, defaults []R) error {
	for i := range defaults {
		role := defaults[i]
		if _, err := f.FindByName(ctx, f.name(&role)); err == nil {
			continue
		}
		if err := f.Create(ctx, &role); err != nil {
			return err
		}
	}
	return nil
}

type fakeUserAssignments struct {
	roles *fakeRoleRepo[model.UserRole]
	held  map[uuid.UUID]map[uint]bool
	err   error
}

func newFakeUserAssignments(roles *fakeRoleRepo[model.UserRole]) *fakeUserAssignments {
	return &fakeUserAssignments{roles: roles, held: map[uuid.UUID]map[uint]bool{}}
}

func (f *fakeUserAssignments) ListAssignedRoles(ctx context.Context, userID uuid.UUID) ([]model.UserRole, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.UserRole
	for id := range f.held[userID] {
		r, err := f.roles.FindByID(ctx, id)
		if err == nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeUserAssignments) Assign(ctx context.Context, userID uuid.UUID, roleID uint) (*model.UserRoleAssignment, error) {
	role, err := f.roles.FindByID(ctx, roleID)
	if err != nil {
		return nil, repository.ErrReference
	}
	if f.held[userID] == nil {
		f.held[userID] = map[uint]bool{}
	}
	f.held[userID][roleID] = true
	return &model.UserRoleAssignment{UserID: userID, RoleID: roleID, Role: role}, nil
}

func (f *fakeUserAssignments) Remove(_ context.Context, userID uuid.UUID, roleID uint) error {
	if !f.held[userID][roleID] {
		return repository.ErrNotFound
	}
	delete(f.held[userID], roleID)
	return nil
}

type eventKey struct{ user, event uuid.UUID }

type fakeEventAssignments struct {
	roles *fakeRoleRepo[model.EventRole]
	held  map[eventKey]map[uint]bool
	err   error
}

func newFakeEventAssignments(roles *fakeRoleRepo[model.EventRole]) *fakeEventAssignments {
	return &fakeEventAssignments{roles: roles, held: map[eventKey]map[uint]bool{}}
}

func (f *fakeEventAssignments) ListAssignedRoles(ctx context.Context, userID, eventID uuid.UUID) ([]model.EventRole, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.EventRole
	for id := range f.held[eventKey{userID, eventID}] {
		r, err := f.roles.FindByID(ctx, id)
		if err == nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeEventAssignments) Assign(ctx context.Context, userID, eventID uuid.UUID, roleID uint) (*model.EventRoleAssignment, error) {
	role, err := f.roles.FindByID(ctx, roleID)
	if err != nil {
		return nil, repository.ErrReference
	}
	k := eventKey{userID, eventID}
	if f.held[k] == nil {
		f.held[k] = map[uint]bool{}
	}
	f.held[k][roleID] = true
	return &model.EventRoleAssignment{UserID: userID, EventID: eventID, RoleID: roleID, Role: role}, nil
}

func (f *fakeEventAssignments) Remove(_ context.Context, userID, eventID uuid.UUID, roleID uint) error {
	k := eventKey{userID, eventID}
	if !f.held[k][roleID] {
		return repository.ErrNotFound
	}
	delete(f.held[k], roleID)
	return nil
}

func (f *fakeEventAssignments) Replace(_ context.Context, userID, eventID uuid.UUID, roleIDs []uint) error {
	k := eventKey{userID, eventID}
	f.held[k] = map[uint]bool{}
	for _, id := range roleIDs {
		f.held[k][id] = true
	}
	return nil
}

type fakeVerifier struct {
	identity *extauth.Identity
	err      error
	calls    int
}

func (f *fakeVerifier) Verify(context.Context, string, string) (*extauth.Identity, error) {
	f.calls++
	return f.identity, f.err
}

type fakePublisher struct {
	payloads [][]byte
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.payloads = append(f.payloads, payload)
	return nil
}
