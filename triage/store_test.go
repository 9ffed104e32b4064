package triage

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/linesmerrill/civic-report-api/geocode"
	"github.com/linesmerrill/civic-report-api/models"
)

// memStore is an in-memory ReportStore with the same compare-and-swap
// contract as the mongo implementation
type memStore struct {
	mu        sync.Mutex
	reports   map[primitive.ObjectID]*models.Report
	conflicts int
	swaps     int
}

func newMemStore() *memStore {
	return &memStore{reports: map[primitive.ObjectID]*models.Report{}}
}

func clone(r *models.Report) *models.Report {
	c := *r
	c.Upvotes = append([]models.Upvote(nil), r.Upvotes...)
	c.Updates = append([]models.Update(nil), r.Updates...)
	c.Images = append([]models.MediaRef(nil), r.Images...)
	return &c
}

func (m *memStore) FindByID(_ context.Context, id string) (*models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		if r, ok := m.reports[oid]; ok {
			return clone(r), nil
		}
		return nil, mongo.ErrNoDocuments
	}
	for _, r := range m.reports {
		if r.ReportID == id {
			return clone(r), nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *memStore) Create(_ context.Context, r *models.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	m.reports[r.ID] = clone(r)
	return nil
}

func (m *memStore) CompareAndSwap(_ context.Context, r *models.Report, expectedVersion int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conflicts > 0 {
		m.conflicts--
		return false, nil
	}
	stored, ok := m.reports[r.ID]
	if !ok || stored.Version != expectedVersion {
		return false, nil
	}
	m.reports[r.ID] = clone(r)
	m.swaps++
	return true, nil
}

func (m *memStore) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.reports, id)
	return nil
}

func (m *memStore) stored(id primitive.ObjectID) *models.Report {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.reports[id]; ok {
		return clone(r)
	}
	return nil
}

// memLedger is an in-memory MediaLedger
type memLedger struct {
	mu      sync.Mutex
	uploads map[string]models.Upload
}

func newMemLedger(uploads ...models.Upload) *memLedger {
	l := &memLedger{uploads: map[string]models.Upload{}}
	for _, u := range uploads {
		l.uploads[u.ID] = u
	}
	return l
}

func (l *memLedger) FindUnclaimed(_ context.Context, ownerID string, ids []string) ([]models.Upload, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var found []models.Upload
	for _, id := range ids {
		if u, ok := l.uploads[id]; ok && u.OwnerID == ownerID && u.Report == nil {
			found = append(found, u)
		}
	}
	return found, nil
}

func (l *memLedger) Claim(_ context.Context, ids []string, reportID primitive.ObjectID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, id := range ids {
		u := l.uploads[id]
		held := reportID
		u.Report = &held
		l.uploads[id] = u
	}
	return nil
}

func (l *memLedger) holder(id string) *primitive.ObjectID {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.uploads[id].Report
}

type stubGeocoder struct {
	result geocode.Result
	calls  int
}

func (g *stubGeocoder) District(context.Context, float64, float64) geocode.Result {
	g.calls++
	return g.result
}

var (
	testNow        = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	testMunicipal  = primitive.NewObjectID()
	testDepartment = primitive.NewObjectID()
)

// seedReport stores an open report owned by testDepartment and lets the
// caller adjust it first
func seedReport(store *memStore, adjust func(r *models.Report)) *models.Report {
	dept := testDepartment
	r := &models.Report{
		ID:             primitive.NewObjectID(),
		ReportID:       "INFR-00001",
		Title:          "Pothole on 5th",
		Description:    "Deep pothole near the bus stop",
		Category:       models.CategoryInfrastructure,
		Urgency:        models.UrgencyMedium,
		Location:       models.NewGeoPoint(77.5946, 12.9716),
		Upvotes:        []models.Upvote{},
		Updates:        []models.Update{},
		ReportedBy:     "citizen-1",
		Municipality:   testMunicipal,
		Department:     &dept,
		Status:         models.StatusAssigned,
		AssignmentType: models.AssignmentAutomatic,
		CreatedAt:      testNow.Add(-48 * time.Hour),
		UpdatedAt:      testNow.Add(-48 * time.Hour),
	}
	rescore(r, r.CreatedAt)
	if adjust != nil {
		adjust(r)
	}
	_ = store.Create(context.Background(), r)
	return r
}

func newTestService(store *memStore, departments DepartmentStore) *Service {
	return &Service{
		Reports:     store,
		Departments: departments,
		Uploads:     newMemLedger(),
		Router:      NewRouter(departments),
		Now:         func() time.Time { return testNow },
	}
}

var (
	citizen = models.Principal{ID: "citizen-1", Role: models.RoleCitizen}
	other   = models.Principal{ID: "citizen-2", Role: models.RoleCitizen}
	staff   = models.Principal{ID: "staff-1", Role: models.RoleStaff, Department: testDepartment.Hex()}
	outside = models.Principal{ID: "staff-9", Role: models.RoleStaff, Department: primitive.NewObjectID().Hex()}
	admin   = models.Principal{ID: "admin-1", Role: models.RoleAdmin}
)
