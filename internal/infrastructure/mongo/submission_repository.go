package mongo

import (
	"context"

	"github.com/genba-survey/validation-api/internal/dashboard/application"
	"github.com/genba-survey/validation-api/internal/dashboard/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SubmissionRepository は調査ごとの回答パーティションを MongoDB コレクション
// として扱う実装リポジトリ。コレクション名は検証済みの PartitionKey から取る。
type SubmissionRepository struct {
	database *mongo.Database
}

// NewSubmissionRepository はデータベースを束縛したリポジトリを構築する。
func NewSubmissionRepository(db *mongo.Database) *SubmissionRepository {
	return &SubmissionRepository{database: db}
}

// FetchPartition は1パーティション分の回答を取得する。メタデータ専用レコードを
// 除外し、提出者絞り込みを適用し、下流で使うフィールドのみ射影する。
func (r *SubmissionRepository) FetchPartition(ctx context.Context, key domain.PartitionKey, filter domain.EnumeratorFilter) ([]domain.Submission, error) {
	collection := r.database.Collection(key.String())

	mongoFilter := bson.M{"metadataOnly": bson.M{"$ne": true}}
	if filter.Restricted() {
		mongoFilter["submitter"] = bson.M{"$in": []string(filter)}
	}

	opts := options.Find().SetProjection(bson.M{
		"_id":              1,
		"date":             1,
		"submitter":        1,
		"validationStatus": 1,
		"validatedAt":      1,
		"validatedBy":      1,
		"alertFlag":        1,
	})

	cursor, err := collection.Find(ctx, mongoFilter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	submissions := make([]domain.Submission, 0)
	for cursor.Next(ctx) {
		var doc SubmissionDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		submissions = append(submissions, mapSubmissionDocument(doc))
	}
	return submissions, cursor.Err()
}

// UpdateStatus は回答IDを自然キーとして upsert し、検証メタデータを刻印する。
// ドキュメント単位の更新セマンティクスに任せるため、アプリ側のロックは持たない
// （同時更新は後勝ち）。
func (r *SubmissionRepository) UpdateStatus(ctx context.Context, key domain.PartitionKey, update application.StatusUpdate) error {
	collection := r.database.Collection(key.String())

	mongoUpdate := bson.M{"$set": bson.M{
		"validationStatus": update.Status.String(),
		"validatedAt":      update.ValidatedAt,
		"validatedBy":      update.ValidatedBy,
	}}
	opts := options.Update().SetUpsert(true)

	_, err := collection.UpdateOne(ctx, bson.M{"_id": update.SubmissionID}, mongoUpdate, opts)
	return err
}

// mapSubmissionDocument は Mongo ドキュメントをドメイン Submission へ復元する。
func mapSubmissionDocument(doc SubmissionDocument) domain.Submission {
	return domain.Submission{
		ID:               doc.ID,
		Date:             doc.Date,
		Submitter:        doc.Submitter,
		ValidationStatus: domain.NormalizeValidationStatus(doc.ValidationStatus),
		ValidatedAt:      doc.ValidatedAt,
		ValidatedBy:      doc.ValidatedBy,
		AlertFlag:        doc.AlertFlag,
	}
}
