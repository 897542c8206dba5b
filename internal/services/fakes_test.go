package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"testing"
	"time"

	"go.uber.org/zap"

	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
)

var fixedNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

// sequentialIDs returns "id-1", "id-2", ... so assertions can name records.
func sequentialIDs() IDGenerator {
	n := 0
	return func() string {
		n++
		return "id-" + strconv.Itoa(n)
	}
}

func testBase(cache repositories.CacheRepositoryInterface) *BaseService {
	return NewBaseService(cache, zap.NewNop()).
		WithClock(func() time.Time { return fixedNow }).
		WithIDGenerator(sequentialIDs())
}

func filterMatches(filter types.Filter, values map[string]string) bool {
	for key, want := range filter.Filter {
		got, known := values[key]
		if !known {
			continue
		}
		if fmt.Sprint(want) != got {
			return false
		}
	}
	return true
}

// requests

type fakeRequestRepo struct {
	items   map[string]*entities.MaintenanceRequest
	updates int
	failOn  string
}

func newFakeRequestRepo(list ...entities.MaintenanceRequest) *fakeRequestRepo {
	r := &fakeRequestRepo{items: map[string]*entities.MaintenanceRequest{}}
	for i := range list {
		item := list[i]
		r.items[item.ID] = &item
	}
	return r
}

func (r *fakeRequestRepo) values(m *entities.MaintenanceRequest) map[string]string {
	return map[string]string{
		"teamId":            m.TeamID,
		"stage":             string(m.Stage),
		"type":              string(m.Type),
		"equipmentId":       m.EquipmentID,
		"assignedToUserId":  m.AssignedToUserID.String,
		"requestedByUserId": m.RequestedByUserID,
	}
}

func (r *fakeRequestRepo) sorted() []entities.MaintenanceRequest {
	out := make([]entities.MaintenanceRequest, 0, len(r.items))
	for _, m := range r.items {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeRequestRepo) FindByID(_ context.Context, id string) (*entities.MaintenanceRequest, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("request", id)
	}
	cp := *m
	return &cp, nil
}

func (r *fakeRequestRepo) List(_ context.Context, filter types.Filter) ([]entities.MaintenanceRequest, uint64, error) {
	var out []entities.MaintenanceRequest
	for _, m := range r.sorted() {
		if filterMatches(filter, r.values(&m)) {
			out = append(out, m)
		}
	}
	return out, uint64(len(out)), nil
}

func (r *fakeRequestRepo) ListByEquipment(_ context.Context, equipmentID string) ([]entities.MaintenanceRequest, error) {
	var out []entities.MaintenanceRequest
	for _, m := range r.sorted() {
		if m.EquipmentID == equipmentID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) ListScheduled(_ context.Context, filter types.Filter, from, to time.Time) ([]entities.MaintenanceRequest, error) {
	var out []entities.MaintenanceRequest
	for _, m := range r.sorted() {
		if !m.ScheduledDate.Valid || !filterMatches(filter, r.values(&m)) {
			continue
		}
		if !from.IsZero() && m.ScheduledDate.Time.Before(from) {
			continue
		}
		if !to.IsZero() && !m.ScheduledDate.Time.Before(to) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeRequestRepo) Create(_ context.Context, m *entities.MaintenanceRequest) error {
	cp := *m
	r.items[m.ID] = &cp
	return nil
}

func (r *fakeRequestRepo) Update(_ context.Context, m *entities.MaintenanceRequest) error {
	if r.failOn != "" && r.failOn == m.ID {
		return apperrors.NewStoreError("update request", fmt.Errorf("connection reset"))
	}
	if _, ok := r.items[m.ID]; !ok {
		return apperrors.NewNotFoundError("request", m.ID)
	}
	cp := *m
	r.items[m.ID] = &cp
	r.updates++
	return nil
}

func (r *fakeRequestRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return apperrors.NewNotFoundError("request", id)
	}
	delete(r.items, id)
	return nil
}

func (r *fakeRequestRepo) ClearTeam(_ context.Context, teamID string) (int64, error) {
	var n int64
	for _, m := range r.items {
		if m.TeamID == teamID {
			m.TeamID = ""
			n++
		}
	}
	return n, nil
}

func (r *fakeRequestRepo) ClearAssignee(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, m := range r.items {
		if m.AssignedToUserID.Valid && m.AssignedToUserID.String == userID {
			m.AssignedToUserID.Valid, m.AssignedToUserID.String = false, ""
			n++
		}
	}
	return n, nil
}

func (r *fakeRequestRepo) ClearCategory(_ context.Context, category string) (int64, error) {
	var n int64
	for _, m := range r.items {
		if m.Category == category {
			m.Category = ""
			n++
		}
	}
	return n, nil
}

func (r *fakeRequestRepo) ClearWorkCenter(_ context.Context, workCenterID string) (int64, error) {
	var n int64
	for _, m := range r.items {
		if m.WorkCenterID.Valid && m.WorkCenterID.String == workCenterID {
			m.WorkCenterID.Valid, m.WorkCenterID.String = false, ""
			n++
		}
	}
	return n, nil
}

// equipment

type fakeEquipmentRepo struct {
	items map[string]*entities.Equipment
}

func newFakeEquipmentRepo(list ...entities.Equipment) *fakeEquipmentRepo {
	r := &fakeEquipmentRepo{items: map[string]*entities.Equipment{}}
	for i := range list {
		item := list[i]
		r.items[item.ID] = &item
	}
	return r
}

func (r *fakeEquipmentRepo) FindByID(_ context.Context, id string) (*entities.Equipment, error) {
	e, ok := r.items[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("equipment", id)
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEquipmentRepo) List(_ context.Context, _ types.Filter) ([]entities.Equipment, uint64, error) {
	out := make([]entities.Equipment, 0, len(r.items))
	for _, e := range r.items {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, uint64(len(out)), nil
}

func (r *fakeEquipmentRepo) Create(_ context.Context, e *entities.Equipment) error {
	for _, existing := range r.items {
		if e.SerialNumber != "" && existing.SerialNumber == e.SerialNumber {
			return apperrors.NewValidationError("serialNumber", "serial number %s is already registered", e.SerialNumber)
		}
	}
	cp := *e
	r.items[e.ID] = &cp
	return nil
}

func (r *fakeEquipmentRepo) Update(_ context.Context, e *entities.Equipment) error {
	if _, ok := r.items[e.ID]; !ok {
		return apperrors.NewNotFoundError("equipment", e.ID)
	}
	cp := *e
	r.items[e.ID] = &cp
	return nil
}

func (r *fakeEquipmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return apperrors.NewNotFoundError("equipment", id)
	}
	delete(r.items, id)
	return nil
}

func (r *fakeEquipmentRepo) ClearTeam(_ context.Context, teamID string) (int64, error) {
	var n int64
	for _, e := range r.items {
		if e.MaintenanceTeamID == teamID {
			e.MaintenanceTeamID = ""
			n++
		}
	}
	return n, nil
}

func (r *fakeEquipmentRepo) ClearCategory(_ context.Context, categoryID string) (int64, error) {
	var n int64
	for _, e := range r.items {
		if e.Category == categoryID {
			e.Category = ""
			n++
		}
	}
	return n, nil
}

// teams

type fakeTeamRepo struct {
	items map[string]*entities.Team
}

func newFakeTeamRepo(list ...entities.Team) *fakeTeamRepo {
	r := &fakeTeamRepo{items: map[string]*entities.Team{}}
	for i := range list {
		item := list[i]
		r.items[item.ID] = &item
	}
	return r
}

func (r *fakeTeamRepo) FindByID(_ context.Context, id string) (*entities.Team, error) {
	t, ok := r.items[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("team", id)
	}
	cp := *t
	cp.MemberIDs = append([]string(nil), t.MemberIDs...)
	return &cp, nil
}

func (r *fakeTeamRepo) List(_ context.Context, _ types.Filter) ([]entities.Team, uint64, error) {
	out := make([]entities.Team, 0, len(r.items))
	for _, t := range r.items {
		out = append(out, *t)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeTeamRepo) Create(_ context.Context, t *entities.Team) error {
	cp := *t
	r.items[t.ID] = &cp
	return nil
}

func (r *fakeTeamRepo) Update(_ context.Context, t *entities.Team) error {
	if _, ok := r.items[t.ID]; !ok {
		return apperrors.NewNotFoundError("team", t.ID)
	}
	cp := *t
	r.items[t.ID] = &cp
	return nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return apperrors.NewNotFoundError("team", id)
	}
	delete(r.items, id)
	return nil
}

func (r *fakeTeamRepo) RemoveMember(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, t := range r.items {
		if !t.HasMember(userID) {
			continue
		}
		kept := t.MemberIDs[:0:0]
		for _, id := range t.MemberIDs {
			if id != userID {
				kept = append(kept, id)
			}
		}
		t.MemberIDs = kept
		n++
	}
	return n, nil
}

// users

type fakeUserRepo struct {
	items map[string]*entities.User
}

func newFakeUserRepo(list ...entities.User) *fakeUserRepo {
	r := &fakeUserRepo{items: map[string]*entities.User{}}
	for i := range list {
		item := list[i]
		r.items[item.ID] = &item
	}
	return r
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*entities.User, error) {
	u, ok := r.items[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("user", id)
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.items {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user", email)
}

func (r *fakeUserRepo) List(_ context.Context, _ types.Filter) ([]entities.User, uint64, error) {
	out := make([]entities.User, 0, len(r.items))
	for _, u := range r.items {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, uint64(len(out)), nil
}

func (r *fakeUserRepo) ListByRoles(_ context.Context, roles ...entities.UserRole) ([]entities.User, error) {
	all, _, _ := r.List(context.Background(), types.Filter{})
	var out []entities.User
	for _, u := range all {
		for _, role := range roles {
			if u.Role == role {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Create(_ context.Context, u *entities.User) error {
	cp := *u
	r.items[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entities.User) error {
	if _, ok := r.items[u.ID]; !ok {
		return apperrors.NewNotFoundError("user", u.ID)
	}
	cp := *u
	r.items[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return apperrors.NewNotFoundError("user", id)
	}
	delete(r.items, id)
	return nil
}

// categories

type fakeCategoryRepo struct {
	items map[string]*entities.EquipmentCategory
}

func newFakeCategoryRepo(list ...entities.EquipmentCategory) *fakeCategoryRepo {
	r := &fakeCategoryRepo{items: map[string]*entities.EquipmentCategory{}}
	for i := range list {
		item := list[i]
		r.items[item.ID] = &item
	}
	return r
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id string) (*entities.EquipmentCategory, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("category", id)
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) List(_ context.Context, _ types.Filter) ([]entities.EquipmentCategory, uint64, error) {
	out := make([]entities.EquipmentCategory, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, *c)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *entities.EquipmentCategory) error {
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *entities.EquipmentCategory) error {
	if _, ok := r.items[c.ID]; !ok {
		return apperrors.NewNotFoundError("category", c.ID)
	}
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return apperrors.NewNotFoundError("category", id)
	}
	delete(r.items, id)
	return nil
}

// work centers

type fakeWorkCenterRepo struct {
	items map[string]*entities.WorkCenter
}

func newFakeWorkCenterRepo(list ...entities.WorkCenter) *fakeWorkCenterRepo {
	r := &fakeWorkCenterRepo{items: map[string]*entities.WorkCenter{}}
	for i := range list {
		item := list[i]
		r.items[item.ID] = &item
	}
	return r
}

func (r *fakeWorkCenterRepo) FindByID(_ context.Context, id string) (*entities.WorkCenter, error) {
	w, ok := r.items[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("work center", id)
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWorkCenterRepo) List(_ context.Context, _ types.Filter) ([]entities.WorkCenter, uint64, error) {
	out := make([]entities.WorkCenter, 0, len(r.items))
	for _, w := range r.items {
		out = append(out, *w)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeWorkCenterRepo) Create(_ context.Context, w *entities.WorkCenter) error {
	cp := *w
	r.items[w.ID] = &cp
	return nil
}

func (r *fakeWorkCenterRepo) Update(_ context.Context, w *entities.WorkCenter) error {
	if _, ok := r.items[w.ID]; !ok {
		return apperrors.NewNotFoundError("work center", w.ID)
	}
	cp := *w
	r.items[w.ID] = &cp
	return nil
}

func (r *fakeWorkCenterRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return apperrors.NewNotFoundError("work center", id)
	}
	delete(r.items, id)
	return nil
}

// tracking logs

type fakeTrackingLogRepo struct {
	items []entities.TrackingLog
}

func (r *fakeTrackingLogRepo) List(_ context.Context, filter types.Filter) ([]entities.TrackingLog, uint64, error) {
	var out []entities.TrackingLog
	for _, l := range r.items {
		if filterMatches(filter, map[string]string{"requestId": l.RequestID}) {
			out = append(out, l)
		}
	}
	return out, uint64(len(out)), nil
}

func (r *fakeTrackingLogRepo) ListByRequests(_ context.Context, requestIDs ...string) ([]entities.TrackingLog, error) {
	wanted := map[string]bool{}
	for _, id := range requestIDs {
		wanted[id] = true
	}
	out := []entities.TrackingLog{}
	for _, l := range r.items {
		if wanted[l.RequestID] {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeTrackingLogRepo) Create(_ context.Context, l *entities.TrackingLog) error {
	r.items = append(r.items, *l)
	return nil
}

func (r *fakeTrackingLogRepo) DeleteByRequest(_ context.Context, requestID string) (int64, error) {
	kept := r.items[:0]
	var n int64
	for _, l := range r.items {
		if l.RequestID == requestID {
			n++
			continue
		}
		kept = append(kept, l)
	}
	r.items = kept
	return n, nil
}

// requirements

type fakeRequirementRepo struct {
	items []entities.Requirement
}

func (r *fakeRequirementRepo) FindByID(_ context.Context, id string) (*entities.Requirement, error) {
	for _, req := range r.items {
		if req.ID == id {
			cp := req
			return &cp, nil
		}
	}
	return nil, apperrors.NewNotFoundError("requirement", id)
}

func (r *fakeRequirementRepo) List(_ context.Context, filter types.Filter) ([]entities.Requirement, uint64, error) {
	var out []entities.Requirement
	for _, req := range r.items {
		if filterMatches(filter, map[string]string{"requestId": req.RequestID, "status": string(req.Status)}) {
			out = append(out, req)
		}
	}
	return out, uint64(len(out)), nil
}

func (r *fakeRequirementRepo) ListByRequests(_ context.Context, requestIDs ...string) ([]entities.Requirement, error) {
	wanted := map[string]bool{}
	for _, id := range requestIDs {
		wanted[id] = true
	}
	out := []entities.Requirement{}
	for _, req := range r.items {
		if wanted[req.RequestID] {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeRequirementRepo) Create(_ context.Context, req *entities.Requirement) error {
	r.items = append(r.items, *req)
	return nil
}

func (r *fakeRequirementRepo) Update(_ context.Context, req *entities.Requirement) error {
	for i := range r.items {
		if r.items[i].ID == req.ID {
			r.items[i] = *req
			return nil
		}
	}
	return apperrors.NewNotFoundError("requirement", req.ID)
}

func (r *fakeRequirementRepo) DeleteByRequest(_ context.Context, requestID string) (int64, error) {
	kept := r.items[:0]
	var n int64
	for _, req := range r.items {
		if req.RequestID == requestID {
			n++
			continue
		}
		kept = append(kept, req)
	}
	r.items = kept
	return n, nil
}

// notifications

type fakeNotificationRepo struct {
	items []*entities.Notification
}

func (r *fakeNotificationRepo) FindByID(_ context.Context, id string) (*entities.Notification, error) {
	for _, n := range r.items {
		if n.ID == id {
			cp := *n
			return &cp, nil
		}
	}
	return nil, apperrors.NewNotFoundError("notification", id)
}

func (r *fakeNotificationRepo) List(_ context.Context, filter types.Filter) ([]entities.Notification, uint64, error) {
	var out []entities.Notification
	for _, n := range r.items {
		if filterMatches(filter, map[string]string{"userId": n.UserID, "type": string(n.Type)}) {
			out = append(out, *n)
		}
	}
	return out, uint64(len(out)), nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, userID string) (int, error) {
	count := 0
	for _, n := range r.items {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *entities.Notification) error {
	cp := *n
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id string) error {
	for _, n := range r.items {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return apperrors.NewNotFoundError("notification", id)
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range r.items {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) Delete(_ context.Context, id string) error {
	for i, n := range r.items {
		if n.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFoundError("notification", id)
}

// sink records everything handed to it; fail makes every Create return an error.

type recordingSink struct {
	sent []entities.Notification
	fail bool
}

func (s *recordingSink) Create(_ context.Context, n *entities.Notification) error {
	if s.fail {
		return fmt.Errorf("sink unavailable")
	}
	s.sent = append(s.sent, *n)
	return nil
}

func (s *recordingSink) to(userID string) []entities.Notification {
	var out []entities.Notification
	for _, n := range s.sent {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

// cache

type fakeCache struct {
	values  map[string]string
	expires map[string]time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}, expires: map[string]time.Duration{}}
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	switch v := value.(type) {
	case []byte:
		c.values[key] = string(v)
	default:
		c.values[key] = fmt.Sprint(v)
	}
	c.expires[key] = expiration
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	v, ok := c.values[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.values, k)
		delete(c.expires, k)
	}
	return nil
}

func (c *fakeCache) Incr(_ context.Context, key string) (int64, error) {
	n, _ := strconv.ParseInt(c.values[key], 10, 64)
	n++
	c.values[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (c *fakeCache) Expire(_ context.Context, key string, expiration time.Duration) error {
	c.expires[key] = expiration
	return nil
}

// lifecycleFixture wires a RequestLifecycleService over in-memory stores.
type lifecycleFixture struct {
	requests     *fakeRequestRepo
	equipment    *fakeEquipmentRepo
	teams        *fakeTeamRepo
	users        *fakeUserRepo
	logs         *fakeTrackingLogRepo
	requirements *fakeRequirementRepo
	sink         *recordingSink
	svc          *RequestLifecycleService
}

func newLifecycleFixture(t *testing.T, policy StagePolicy) *lifecycleFixture {
	t.Helper()
	f := &lifecycleFixture{
		requests: newFakeRequestRepo(),
		equipment: newFakeEquipmentRepo(entities.Equipment{
			ID: "eq-1", Name: "CNC Mill", SerialNumber: "CNC-001", MaintenanceTeamID: "team-1",
			Category: "cat-1", Status: entities.EquipmentActive,
		}),
		teams: newFakeTeamRepo(entities.Team{
			ID: "team-1", Name: "Mechanics", MemberIDs: []string{"tech-1", "tech-2"},
		}),
		users: newFakeUserRepo(
			entities.User{ID: "admin-1", Name: "Alice Admin", Role: entities.RoleAdmin},
			entities.User{ID: "mgr-1", Name: "Mark Manager", Role: entities.RoleManager},
			entities.User{ID: "tech-1", Name: "Tom Tech", Role: entities.RoleTechnician},
			entities.User{ID: "tech-2", Name: "Tina Tech", Role: entities.RoleTechnician},
			entities.User{ID: "user-1", Name: "Uma User", Role: entities.RoleUser},
		),
		logs:         &fakeTrackingLogRepo{},
		requirements: &fakeRequirementRepo{},
		sink:         &recordingSink{},
	}
	base := testBase(nil)
	roles := NewRoleDirectory(base, f.users, 0)
	f.svc = NewRequestLifecycleService(base, f.requests, f.equipment, f.teams, f.users, f.logs,
		f.requirements, roles, f.sink, policy)
	return f
}
