package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role is the authorization role of an authenticated principal
type Role string

// Roles
const (
	RoleCitizen    Role = "citizen"
	RoleStaff      Role = "staff"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// IsAdmin reports whether r carries administrative authority
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User holds the structure for the users collection in mongo. Only the fields
// needed to issue tokens are read here.
type User struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	Email      string             `json:"email" bson:"email"`
	Name       string             `json:"name" bson:"name"`
	Password   string             `json:"-" bson:"password"`
	Role       Role               `json:"role" bson:"role"`
	Department string             `json:"department,omitempty" bson:"department,omitempty"`
}

// Principal is the authenticated actor of a request
type Principal struct {
	ID         string `json:"id"`
	Role       Role   `json:"role"`
	Department string `json:"department,omitempty"`
}
