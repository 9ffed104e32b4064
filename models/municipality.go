package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Municipality holds the structure for the municipalities collection in mongo.
// Ownership of a point is decided by distance to Location, not by polygon
// containment.
type Municipality struct {
	ID          primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Name        string               `json:"name" bson:"name"`
	District    string               `json:"district" bson:"district"`
	State       string               `json:"state,omitempty" bson:"state,omitempty"`
	Location    GeoPoint             `json:"location" bson:"location"`
	AdminID     string               `json:"adminId" bson:"adminId"`
	Departments []primitive.ObjectID `json:"departments" bson:"departments"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
}

// Department holds the structure for the departments collection in mongo
type Department struct {
	ID           primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Name         string               `json:"name" bson:"name"`
	Municipality primitive.ObjectID   `json:"municipality" bson:"municipality"`
	Categories   []Category           `json:"categories" bson:"categories"`
	Staff        []string             `json:"staff" bson:"staff"`
	Reports      []primitive.ObjectID `json:"reports" bson:"reports"`
	CreatedAt    time.Time            `json:"createdAt" bson:"createdAt"`
}

// HasStaff reports whether userID is a member of the department
func (d *Department) HasStaff(userID string) bool {
	for _, s := range d.Staff {
		if s == userID {
			return true
		}
	}
	return false
}
