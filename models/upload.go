package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Upload holds the structure for the uploads collection in mongo. It records
// who stored a media handle and which report, once attached, holds it.
type Upload struct {
	ID           string              `json:"id" bson:"_id"`
	URL          string              `json:"url,omitempty" bson:"url,omitempty"`
	ResourceType string              `json:"resourceType,omitempty" bson:"resourceType,omitempty"`
	Kind         string              `json:"kind" bson:"kind"`
	OwnerID      string              `json:"ownerId" bson:"ownerId"`
	Report       *primitive.ObjectID `json:"report" bson:"report"`
	CreatedAt    time.Time           `json:"createdAt" bson:"createdAt"`
}

// Ref returns the media handle the upload stands for
func (u Upload) Ref() MediaRef {
	return MediaRef{URL: u.URL, ID: u.ID, ResourceType: u.ResourceType}
}
