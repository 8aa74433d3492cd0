package mongo

import (
	"context"

	"github.com/genba-survey/validation-api/internal/dashboard/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SurveyCatalogRepository は調査カタログコレクションの読み取りを担う。
type SurveyCatalogRepository struct {
	surveys *mongo.Collection
}

// NewSurveyCatalogRepository はカタログコレクションを束縛したリポジトリを構築する。
func NewSurveyCatalogRepository(db *mongo.Database, collection string) *SurveyCatalogRepository {
	return &SurveyCatalogRepository{surveys: db.Collection(collection)}
}

// ListActive は有効な調査のみを assetId 昇順で返す。
func (r *SurveyCatalogRepository) ListActive(ctx context.Context) ([]domain.Survey, error) {
	opts := options.Find().SetSort(bson.D{{Key: "assetId", Value: 1}})
	cursor, err := r.surveys.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	surveys := make([]domain.Survey, 0)
	for cursor.Next(ctx) {
		var doc SurveyDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		surveys = append(surveys, domain.Survey{
			AssetID:   doc.AssetID,
			Name:      doc.Name,
			CountryID: doc.CountryID,
			Active:    doc.Active,
		})
	}
	return surveys, cursor.Err()
}

// EnsureIndexes は assetId のユニークインデックスを保証する。起動時に呼び出す。
func (r *SurveyCatalogRepository) EnsureIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "assetId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, err := r.surveys.Indexes().CreateOne(ctx, model)
	return err
}
