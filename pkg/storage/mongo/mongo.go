// Package mongo is a MongoDB-backed [storage.Store].
//
// Each resource lives in its own collection (portfolios, skills,
// experiences, projects, achievements, publications, status_checks).
// Documents use the camelCase field names of the JSON API and are looked
// up by their "id" field; the MongoDB _id is never exposed.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/portfolio/pkg/portfolio"
	"github.com/matzehuels/portfolio/pkg/storage"
)

// Collection names.
const (
	colPortfolios   = "portfolios"
	colSkills       = "skills"
	colExperiences  = "experiences"
	colProjects     = "projects"
	colAchievements = "achievements"
	colPublications = "publications"
	colStatusChecks = "status_checks"
)

// Config holds connection settings.
type Config struct {
	URL      string
	Database string
	// ConnectTimeout bounds the initial ping. Zero means 10 seconds.
	ConnectTimeout time.Duration
}

// Store implements [storage.Store] on MongoDB.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a client and verifies the server with a ping.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URL == "" {
		return nil, errors.New("mongo: URL is required")
	}
	if cfg.Database == "" {
		return nil, errors.New("mongo: database name is required")
	}
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URL).SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}
	s := &Store{client: client, db: client.Database(cfg.Database)}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := s.Ping(pingCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}
	return s, nil
}

// EnsureIndexes creates the lookup indexes used by the store.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if _, err := s.db.Collection(colPortfolios).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("mongo: index %s: %w", colPortfolios, err)
	}
	for _, name := range []string{colSkills, colExperiences, colProjects, colAchievements, colPublications} {
		_, err := s.db.Collection(name).Indexes().CreateMany(ctx, []mongo.IndexModel{
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "portfolioId", Value: 1}, {Key: "order", Value: 1}}},
		})
		if err != nil {
			return fmt.Errorf("mongo: index %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) Profile(ctx context.Context, userID string) (*portfolio.Profile, error) {
	var p portfolio.Profile
	err := s.db.Collection(colPortfolios).
		FindOne(ctx, bson.M{"userId": userID}, options.FindOne().SetProjection(bson.M{"_id": 0})).
		Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) SaveProfile(ctx context.Context, p portfolio.Profile) error {
	_, err := s.db.Collection(colPortfolios).
		ReplaceOne(ctx, bson.M{"userId": p.UserID}, p, options.Replace().SetUpsert(true))
	return err
}

func (s *Store) UpdatePersonal(ctx context.Context, userID string, u portfolio.PersonalInfoUpdate, now time.Time) error {
	return s.updateProfile(ctx, userID, "personal", u.Fields(), now)
}

func (s *Store) UpdateAbout(ctx context.Context, userID string, u portfolio.AboutSectionUpdate, now time.Time) error {
	return s.updateProfile(ctx, userID, "about", u.Fields(), now)
}

func (s *Store) updateProfile(ctx context.Context, userID, section string, fields map[string]any, now time.Time) error {
	set := bson.M{"updatedAt": now}
	for k, v := range fields {
		set[section+"."+k] = v
	}
	res, err := s.db.Collection(colPortfolios).UpdateOne(ctx, bson.M{"userId": userID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) Skills() storage.Collection[portfolio.SkillCategory] {
	return collection[portfolio.SkillCategory]{s.db.Collection(colSkills)}
}

func (s *Store) Experiences() storage.Collection[portfolio.Experience] {
	return collection[portfolio.Experience]{s.db.Collection(colExperiences)}
}

func (s *Store) Projects() storage.Collection[portfolio.Project] {
	return collection[portfolio.Project]{s.db.Collection(colProjects)}
}

func (s *Store) Achievements() storage.Collection[portfolio.Achievement] {
	return collection[portfolio.Achievement]{s.db.Collection(colAchievements)}
}

func (s *Store) Publications() storage.Collection[portfolio.Publication] {
	return collection[portfolio.Publication]{s.db.Collection(colPublications)}
}

func (s *Store) StatusChecks() storage.StatusChecks {
	return statusChecks{s.db.Collection(colStatusChecks)}
}

// Ping checks that the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Drop removes every collection of the store's database. Used by tests.
func (s *Store) Drop(ctx context.Context) error {
	return s.db.Drop(ctx)
}

type collection[T portfolio.Item] struct {
	c *mongo.Collection
}

func (c collection[T]) List(ctx context.Context, portfolioID string) ([]T, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "order", Value: 1}}).
		SetProjection(bson.M{"_id": 0})
	cur, err := c.c.Find(ctx, bson.M{"portfolioId": portfolioID}, opts)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c collection[T]) Insert(ctx context.Context, item T) error {
	_, err := c.c.InsertOne(ctx, item)
	return err
}

func (c collection[T]) Update(ctx context.Context, id string, patch portfolio.Patch[T], now time.Time) error {
	set := bson.M{"updatedAt": now}
	for k, v := range patch.Fields() {
		set[k] = v
	}
	res, err := c.c.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (c collection[T]) Delete(ctx context.Context, id string) error {
	res, err := c.c.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (c collection[T]) Upsert(ctx context.Context, item T, keys ...string) error {
	if len(keys) == 0 {
		return c.Insert(ctx, item)
	}
	raw, err := bson.Marshal(item)
	if err != nil {
		return err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return err
	}
	filter := bson.M{}
	for _, k := range keys {
		filter[k] = doc[k]
	}
	_, err = c.c.ReplaceOne(ctx, filter, item, options.Replace().SetUpsert(true))
	return err
}

type statusChecks struct {
	c *mongo.Collection
}

func (s statusChecks) Insert(ctx context.Context, check portfolio.StatusCheck) error {
	_, err := s.c.InsertOne(ctx, check)
	return err
}

func (s statusChecks) List(ctx context.Context, limit int) ([]portfolio.StatusCheck, error) {
	if limit <= 0 || limit > storage.MaxStatusChecks {
		limit = storage.MaxStatusChecks
	}
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().
		SetLimit(int64(limit)).
		SetProjection(bson.M{"_id": 0}))
	if err != nil {
		return nil, err
	}
	out := []portfolio.StatusCheck{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var _ storage.Store = (*Store)(nil)
