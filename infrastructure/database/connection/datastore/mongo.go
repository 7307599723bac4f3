package datastore

import (
	"context"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"lifex.health/infrastructure/logger"
)

var (
	UserModel             *mongo.Collection
	BiometricProfileModel *mongo.Collection
	AuditLogModel         *mongo.Collection
)

var cancelFn *context.CancelFunc

func ConnectToDatabase() {
	cancelFn = connectMongo()
}

func CleanUp() {
	if cancelFn != nil {
		(*cancelFn)()
	}
}

func connectMongo() *context.CancelFunc {
	url := os.Getenv("DB_URL")

	if url == "" {
		logger.Error("mongo url missing")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)

	clientOpts := options.Client().ApplyURI(url)
	clientOpts.SetMinPoolSize(5)
	clientOpts.SetMaxPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)

	if err != nil {
		logger.Warning("an error occured while starting the database", logger.LoggerOptions{Key: "error", Data: err})
		return &cancel
	}

	db := client.Database(os.Getenv("DB_NAME"))
	setUpIndexes(ctx, db)

	logger.Info("connected to mongodb successfully")
	return &cancel
}

// Set up the indexes for the database
func setUpIndexes(ctx context.Context, db *mongo.Database) {
	UserModel = db.Collection("Users")
	UserModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}, {
		Keys:    bson.D{{Key: "role", Value: 1}},
		Options: options.Index(),
	}})

	BiometricProfileModel = db.Collection("BiometricProfiles")
	BiometricProfileModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "userID", Value: 1}},
		Options: options.Index().SetUnique(true),
	}, {
		Keys:    bson.D{{Key: "biometricID", Value: 1}},
		Options: options.Index(),
	}, {
		Keys:    bson.D{{Key: "faceRecognitionEnabled", Value: 1}, {Key: "isFaceVerified", Value: 1}},
		Options: options.Index(),
	}, {
		Keys:    bson.D{{Key: "ledgerStatus", Value: 1}},
		Options: options.Index(),
	}})

	AuditLogModel = db.Collection("AuditLogs")
	AuditLogModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "userID", Value: 1}},
		Options: options.Index(),
	}, {
		Keys:    bson.D{{Key: "action", Value: 1}},
		Options: options.Index(),
	}})

	logger.Info("mongodb indexes set up successfully")
}
