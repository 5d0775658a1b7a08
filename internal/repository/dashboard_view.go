package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"chargemap/internal/models"
)

// DashboardView provides aggregated station counts for the dashboard.
type DashboardView struct {
	col *mongo.Collection
}

// NewDashboardView returns view accessor.
func NewDashboardView(database *mongo.Database) *DashboardView {
	return &DashboardView{col: database.Collection(stationsCollection)}
}

type bucket struct {
	ID    string `bson:"_id"`
	Count int64  `bson:"count"`
}

type dashboardDoc struct {
	ByStatus    []bucket `bson:"byStatus"`
	ByConnector []bucket `bson:"byConnector"`
	Totals      []struct {
		Count      int64   `bson:"count"`
		TotalPower float64 `bson:"totalPower"`
	} `bson:"totals"`
}

// Aggregate computes total station count, counts by status and connector
// type, and the summed power output, in a single faceted pipeline.
func (v *DashboardView) Aggregate(ctx context.Context) (*models.Dashboard, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$facet", Value: bson.M{
			"byStatus": bson.A{
				bson.M{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
			},
			"byConnector": bson.A{
				bson.M{"$group": bson.M{"_id": "$connectorType", "count": bson.M{"$sum": 1}}},
			},
			"totals": bson.A{
				bson.M{"$group": bson.M{
					"_id":        nil,
					"count":      bson.M{"$sum": 1},
					"totalPower": bson.M{"$sum": "$powerOutput"},
				}},
			},
		}}},
	}

	cursor, err := v.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []dashboardDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	dashboard := &models.Dashboard{
		ByStatus:        make(map[string]int64),
		ByConnectorType: make(map[string]int64),
	}
	if len(docs) == 0 {
		return dashboard, nil
	}

	doc := docs[0]
	for _, b := range doc.ByStatus {
		dashboard.ByStatus[b.ID] = b.Count
	}
	for _, b := range doc.ByConnector {
		dashboard.ByConnectorType[b.ID] = b.Count
	}
	if len(doc.Totals) > 0 {
		dashboard.TotalStations = doc.Totals[0].Count
		dashboard.TotalPowerOutput = doc.Totals[0].TotalPower
	}
	return dashboard, nil
}
