package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on. Idempotent:
// safe to run on every startup.
//
//   - users.email is unique so duplicate registration fails at the store.
//   - project_id / task_id carry unique lookup indexes.
//   - tasks.project_id serves the board listing and cascade delete.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	if _, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("users email index: %w", err)
	}

	if _, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("users user_id index: %w", err)
	}

	if _, err := db.Collection(projectsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "project_id", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("projects project_id index: %w", err)
	}

	taskIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "task_id", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "project_id", Value: 1}}},
	}
	if _, err := db.Collection(tasksCollection).Indexes().CreateMany(ctx, taskIndexes); err != nil {
		return fmt.Errorf("tasks indexes: %w", err)
	}

	return nil
}
