package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubmissionDocument は調査パーティション（調査ごとのコレクション）内の回答スキーマ。
// _id は取り込みパイプラインが採番する回答IDで、パーティション内でのみ一意。
type SubmissionDocument struct {
	ID               string     `bson:"_id"`
	Date             string     `bson:"date,omitempty"`
	Submitter        string     `bson:"submitter,omitempty"`
	ValidationStatus string     `bson:"validationStatus,omitempty"`
	ValidatedAt      *time.Time `bson:"validatedAt,omitempty"`
	ValidatedBy      string     `bson:"validatedBy,omitempty"`
	AlertFlag        string     `bson:"alertFlag,omitempty"`
	MetadataOnly     bool       `bson:"metadataOnly,omitempty"`
}

// SurveyDocument はカタログコレクション上の調査スキーマ。
type SurveyDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	AssetID   string             `bson:"assetId"`
	Name      string             `bson:"name"`
	CountryID string             `bson:"countryId,omitempty"`
	Active    bool               `bson:"active"`
	CreatedAt *time.Time         `bson:"createdAt,omitempty"`
	UpdatedAt *time.Time         `bson:"updatedAt,omitempty"`
}
