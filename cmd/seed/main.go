// seed は開発環境向けに調査カタログと調査ごとの回答パーティションを投入するツール。
// 本番の取り込みパイプラインが書くのと同じスキーマで書き込むことで、
// ダッシュボード/分析の動作確認をローカルで完結できるようにする。
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/genba-survey/validation-api/internal/dashboard/domain"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type seedOptions struct {
	mongoURI          string
	database          string
	surveyCollection  string
	partitionPrefix   string
	surveyCount       int
	submissionsPerSvy int
	dropCollections   bool
	randomSeed        int64
}

var enumeratorNames = []string{
	"佐藤 花子",
	"鈴木 一郎",
	"高橋 結衣",
	"田中 健",
	"伊藤 美咲",
	"Amadou Diallo",
	"Fatima Sow",
	"Unknown",
}

var alertFlags = []string{"", "NA", "1", "2", "1,3", "2,4,5"}

var countryIDs = []string{"JP", "SN", "ML", "BF"}

func main() {
	_ = godotenv.Load()

	opts := parseFlags()
	rng := rand.New(rand.NewSource(opts.randomSeed))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(opts.mongoURI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("MongoDB 接続に失敗しました: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(opts.database)
	if err := seedCatalogAndPartitions(ctx, db, opts, rng); err != nil {
		log.Fatalf("シードに失敗しました: %v", err)
	}
	log.Printf("シード完了: surveys=%d submissions/survey=%d", opts.surveyCount, opts.submissionsPerSvy)
}

func parseFlags() seedOptions {
	opts := seedOptions{}
	flag.StringVar(&opts.mongoURI, "mongo-uri", envOrDefault("MONGO_URI", "mongodb://localhost:27017"), "MongoDB 接続URI")
	flag.StringVar(&opts.database, "db", envOrDefault("MONGO_DB", "genba-survey"), "データベース名")
	flag.StringVar(&opts.surveyCollection, "survey-collection", envOrDefault("SURVEY_COLLECTION", "surveys"), "調査カタログのコレクション名")
	flag.StringVar(&opts.partitionPrefix, "partition-prefix", envOrDefault("SUBMISSION_PARTITION_PREFIX", "submissions_for_"), "回答パーティションのプレフィックス")
	flag.IntVar(&opts.surveyCount, "surveys", 5, "投入する調査数")
	flag.IntVar(&opts.submissionsPerSvy, "submissions", 200, "調査あたりの回答数")
	flag.BoolVar(&opts.dropCollections, "drop", false, "既存コレクションを削除してから投入する")
	flag.Int64Var(&opts.randomSeed, "seed", time.Now().UnixNano(), "乱数シード")
	flag.Parse()
	return opts
}

func seedCatalogAndPartitions(ctx context.Context, db *mongo.Database, opts seedOptions, rng *rand.Rand) error {
	surveys := db.Collection(opts.surveyCollection)
	if opts.dropCollections {
		if err := surveys.Drop(ctx); err != nil {
			return fmt.Errorf("カタログの削除に失敗: %w", err)
		}
	}

	now := time.Now().UTC()
	for i := 0; i < opts.surveyCount; i++ {
		assetID := "a" + strings.ReplaceAll(uuid.NewString(), "-", "")[:21]
		active := i != opts.surveyCount-1 || opts.surveyCount == 1

		doc := bson.M{
			"assetId":   assetID,
			"name":      fmt.Sprintf("現地調査 %02d", i+1),
			"countryId": countryIDs[rng.Intn(len(countryIDs))],
			"active":    active,
			"createdAt": now,
			"updatedAt": now,
		}
		if _, err := surveys.InsertOne(ctx, doc); err != nil {
			return fmt.Errorf("調査 %s の投入に失敗: %w", assetID, err)
		}

		key, err := domain.NewPartitionKey(opts.partitionPrefix, assetID)
		if err != nil {
			return fmt.Errorf("パーティションキーの構築に失敗: %w", err)
		}
		if err := seedPartition(ctx, db.Collection(key.String()), opts, rng); err != nil {
			return fmt.Errorf("パーティション %s の投入に失敗: %w", key, err)
		}
	}
	return nil
}

func seedPartition(ctx context.Context, collection *mongo.Collection, opts seedOptions, rng *rand.Rand) error {
	if opts.dropCollections {
		if err := collection.Drop(ctx); err != nil {
			return err
		}
	}

	docs := make([]interface{}, 0, opts.submissionsPerSvy+1)
	now := time.Now()
	for i := 0; i < opts.submissionsPerSvy; i++ {
		submittedAt := now.AddDate(0, 0, -rng.Intn(120)).Add(-time.Duration(rng.Intn(86400)) * time.Second)
		docs = append(docs, bson.M{
			"_id":              uuid.NewString(),
			"date":             formatSubmissionDate(submittedAt, rng),
			"submitter":        enumeratorNames[rng.Intn(len(enumeratorNames))],
			"validationStatus": randomStatus(rng),
			"alertFlag":        alertFlags[rng.Intn(len(alertFlags))],
		})
	}
	// 取り込みパイプラインが残すメタデータ専用レコードも混ぜておく。
	docs = append(docs, bson.M{
		"_id":          uuid.NewString(),
		"metadataOnly": true,
	})

	_, err := collection.InsertMany(ctx, docs)
	return err
}

// formatSubmissionDate は本番データに混在する2種類の日時表記を再現する。
func formatSubmissionDate(t time.Time, rng *rand.Rand) string {
	if rng.Intn(2) == 0 {
		return t.Format("2006-01-02T15:04:05")
	}
	return t.Format("2006-01-02 15:04:05")
}

func randomStatus(rng *rand.Rand) string {
	switch rng.Intn(4) {
	case 0:
		return domain.StatusApproved.String()
	case 1:
		return domain.StatusNotApproved.String()
	case 2:
		return domain.StatusOnHold.String()
	default:
		// ステータス未設定のレコードは読み出し時に on_hold へ正規化される。
		return ""
	}
}

func envOrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
