package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered account. The password hash is persisted but never
// serialized to clients.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Role         string             `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// Dashboard aggregates station counts for the dashboard endpoint.
type Dashboard struct {
	TotalStations    int64            `json:"totalStations"`
	ByStatus         map[string]int64 `json:"byStatus"`
	ByConnectorType  map[string]int64 `json:"byConnectorType"`
	TotalPowerOutput float64          `json:"totalPowerOutput"`
}
