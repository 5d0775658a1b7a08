package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"chargemap/internal/apperr"
	"chargemap/internal/models"
)

const stationsCollection = "stations"

// StationRepository handles CRUD for the stations collection.
type StationRepository struct {
	col *mongo.Collection
}

// NewStationRepository returns repository instance.
func NewStationRepository(database *mongo.Database) *StationRepository {
	return &StationRepository{col: database.Collection(stationsCollection)}
}

// Create inserts a new station and assigns id and timestamps.
func (r *StationRepository) Create(ctx context.Context, station *models.Station) error {
	now := time.Now().UTC()
	station.CreatedAt = now
	station.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, station)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		station.ID = oid
	}
	return nil
}

// GetByID fetches a station by its hex id. A malformed hex is an id that
// cannot exist, so it maps to not found like any other unknown id.
func (r *StationRepository) GetByID(ctx context.Context, id string) (*models.Station, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFound("station", id)
	}

	var station models.Station
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&station); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("station", id)
		}
		return nil, err
	}
	return &station, nil
}

// List returns stations matching the filter in insertion order.
func (r *StationRepository) List(ctx context.Context, filter models.StationFilter) ([]models.Station, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.ConnectorType != "" {
		query["connectorType"] = filter.ConnectorType
	}

	cursor, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stations := make([]models.Station, 0)
	if err := cursor.All(ctx, &stations); err != nil {
		return nil, err
	}
	return stations, nil
}

// Replace overwrites every mutable field of the identified station,
// preserving createdAt and refreshing updatedAt. Last write wins.
func (r *StationRepository) Replace(ctx context.Context, id string, station *models.Station) (*models.Station, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	station.ID = existing.ID
	station.CreatedAt = existing.CreatedAt
	station.UpdatedAt = time.Now().UTC()

	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": existing.ID}, station); err != nil {
		return nil, err
	}
	return station, nil
}

// Delete removes a station by id.
func (r *StationRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.NotFound("station", id)
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("station", id)
	}
	return nil
}
