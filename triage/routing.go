package triage

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/linesmerrill/civic-report-api/models"
)

// DepartmentStore is the department read/write side the engine needs
type DepartmentStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Department, error)
	FindByCategory(ctx context.Context, municipalityID primitive.ObjectID, category models.Category) ([]models.Department, error)
	AttachReport(ctx context.Context, departmentID, reportID primitive.ObjectID) error
}

// Router picks the department that owns a category within a municipality
type Router struct {
	Departments DepartmentStore
}

// NewRouter returns a router backed by departments
func NewRouter(departments DepartmentStore) *Router {
	return &Router{Departments: departments}
}

// Route returns the owning department with AssignmentAutomatic, or nil with
// AssignmentPending. Other is never auto-routed. When several departments
// list the category, the one earliest in the municipality's ordering wins.
func (r *Router) Route(ctx context.Context, m *models.Municipality, category models.Category) (*models.Department, models.AssignmentType, error) {
	if category == models.CategoryOther || m == nil {
		return nil, models.AssignmentPending, nil
	}
	departments, err := r.Departments.FindByCategory(ctx, m.ID, category)
	if err != nil {
		return nil, "", fmt.Errorf("failed department lookup: %w", err)
	}
	if len(departments) == 0 {
		return nil, models.AssignmentPending, nil
	}

	order := make(map[primitive.ObjectID]int, len(m.Departments))
	for i, id := range m.Departments {
		order[id] = i
	}
	rank := func(d models.Department) int {
		if i, ok := order[d.ID]; ok {
			return i
		}
		return len(order)
	}
	sort.SliceStable(departments, func(i, j int) bool {
		return rank(departments[i]) < rank(departments[j])
	})

	return &departments[0], models.AssignmentAutomatic, nil
}
