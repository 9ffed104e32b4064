package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/civic-report-api/config"
	"github.com/linesmerrill/civic-report-api/databases"
	"github.com/linesmerrill/civic-report-api/models"
	"github.com/linesmerrill/civic-report-api/triage"
)

// JurisdictionResolver finds the municipality owning a point
type JurisdictionResolver interface {
	Resolve(ctx context.Context, point models.GeoPoint) (*models.Municipality, triage.Method, error)
}

// Jurisdiction previews which municipality a location would be filed under
type Jurisdiction struct {
	Resolver JurisdictionResolver
}

// ResolveHandler resolves the lng/lat query parameters to a municipality
func (j Jurisdiction) ResolveHandler(w http.ResponseWriter, r *http.Request) {
	point, err := queryPoint(r)
	if err != nil {
		config.ErrorStatus("invalid location", http.StatusBadRequest, w, err)
		return
	}
	m, method, err := j.Resolver.Resolve(r.Context(), point)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"municipality": m,
		"method":       method,
	})
}

// Municipality handles municipality and department administration
type Municipality struct {
	DB  databases.MunicipalityDatabase
	DDB databases.DepartmentDatabase
}

type createMunicipalityRequest struct {
	Name     string   `json:"name"`
	District string   `json:"district"`
	State    string   `json:"state"`
	Location location `json:"location"`
	AdminID  string   `json:"adminId"`
}

type createDepartmentRequest struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
	Staff      []string `json:"staff"`
}

// MunicipalitiesHandler lists every municipality by name
func (m Municipality) MunicipalitiesHandler(w http.ResponseWriter, r *http.Request) {
	municipalities, err := m.DB.Find(r.Context(), bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		config.ErrorStatus("failed to get municipalities", http.StatusInternalServerError, w, err)
		return
	}
	if municipalities == nil {
		municipalities = []models.Municipality{}
	}
	writeJSON(w, http.StatusOK, municipalities)
}

// CreateMunicipalityHandler registers a municipality and its center point
func (m Municipality) CreateMunicipalityHandler(w http.ResponseWriter, r *http.Request) {
	var req createMunicipalityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	name, district := strings.TrimSpace(req.Name), strings.TrimSpace(req.District)
	if name == "" || district == "" {
		config.ErrorStatus("name and district are required", http.StatusBadRequest, w, nil)
		return
	}
	if req.Location.Longitude == nil || req.Location.Latitude == nil {
		config.ErrorStatus("location with longitude and latitude is required", http.StatusBadRequest, w, nil)
		return
	}
	if err := models.ValidateCoordinates(*req.Location.Longitude, *req.Location.Latitude); err != nil {
		config.ErrorStatus("invalid location", http.StatusBadRequest, w, err)
		return
	}

	municipality := &models.Municipality{
		Name:      name,
		District:  district,
		State:     strings.TrimSpace(req.State),
		Location:  models.NewGeoPoint(*req.Location.Longitude, *req.Location.Latitude),
		AdminID:   req.AdminID,
		CreatedAt: time.Now().UTC(),
	}
	if err := m.DB.Create(r.Context(), municipality); err != nil {
		config.ErrorStatus("failed to create municipality", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, municipality)
}

// DepartmentsHandler lists the departments of a municipality
func (m Municipality) DepartmentsHandler(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(mux.Vars(r)["municipality_id"])
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	departments, err := m.DDB.Find(r.Context(), bson.M{"municipality": oid})
	if err != nil {
		config.ErrorStatus("failed to get departments", http.StatusInternalServerError, w, err)
		return
	}
	if departments == nil {
		departments = []models.Department{}
	}
	writeJSON(w, http.StatusOK, departments)
}

// CreateDepartmentHandler adds a department at the end of the municipality's
// routing order
func (m Municipality) CreateDepartmentHandler(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(mux.Vars(r)["municipality_id"])
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	var req createDepartmentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" || len(req.Categories) == 0 {
		config.ErrorStatus("name and at least one category are required", http.StatusBadRequest, w, nil)
		return
	}
	categories := make([]models.Category, 0, len(req.Categories))
	for _, c := range req.Categories {
		category, ok := models.ParseCategory(c)
		if !ok {
			config.ErrorStatus("invalid category "+c, http.StatusBadRequest, w, nil)
			return
		}
		categories = append(categories, category)
	}

	if _, err := m.DB.FindByID(r.Context(), oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			config.ErrorStatus("municipality not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to get municipality", http.StatusInternalServerError, w, err)
		return
	}

	department := &models.Department{
		Name:         name,
		Municipality: oid,
		Categories:   categories,
		Staff:        req.Staff,
		CreatedAt:    time.Now().UTC(),
	}
	if err := m.DDB.Create(r.Context(), department); err != nil {
		config.ErrorStatus("failed to create department", http.StatusInternalServerError, w, err)
		return
	}
	if err := m.DB.AddDepartment(r.Context(), oid, department.ID); err != nil {
		config.ErrorStatus("failed to add department to municipality", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, department)
}
