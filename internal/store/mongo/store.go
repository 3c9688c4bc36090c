// Package mongo implements store.Store on top of a MongoDB database.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/justsurfingit/job-portal/internal/models"
	"github.com/justsurfingit/job-portal/internal/store"
)

// Store is a MongoDB-backed store. The client is shared by all requests.
type Store struct {
	client       *mongo.Client
	jobs         *mongo.Collection
	applications *mongo.Collection
	log          *logrus.Logger
}

var _ store.Store = (*Store)(nil)

// New returns a Store over the named database of client. Documents that
// cannot be decoded are skipped and reported on log.
func New(client *mongo.Client, dbName string, log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	db := client.Database(dbName)
	return &Store{
		client:       client,
		jobs:         db.Collection(jobsCollection),
		applications: db.Collection(applicationsCollection),
		log:          log,
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) ListJobs(ctx context.Context, hrEmail string) ([]models.Job, error) {
	filter := bson.M{}
	if hrEmail != "" {
		filter = bson.M{"hr_email": hrEmail}
	}

	cur, err := s.jobs.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find jobs: %w", err)
	}
	defer cur.Close(ctx)

	jobs := []models.Job{}
	for cur.Next(ctx) {
		var d jobDocument
		if err := cur.Decode(&d); err != nil {
			s.skip(jobsCollection, cur.Current, err)
			continue
		}
		jobs = append(jobs, d.model())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("read jobs: %w", err)
	}
	return jobs, nil
}

func (s *Store) GetJob(ctx context.Context, id string) (*models.Job, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc jobDocument
	err = s.jobs.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find job %s: %w", id, err)
	}
	job := doc.model()
	return &job, nil
}

func (s *Store) InsertJob(ctx context.Context, job *models.Job) (string, error) {
	res, err := s.jobs.InsertOne(ctx, newJobDocument(job))
	if err != nil {
		return "", fmt.Errorf("insert job: %w", err)
	}
	return insertedHex(res), nil
}

func (s *Store) IncrementApplicationCount(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := s.jobs.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"applicationCount": 1}},
	)
	if err != nil {
		return fmt.Errorf("increment applicationCount for job %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListApplicationsByApplicant(ctx context.Context, email string) ([]models.JobApplication, error) {
	return s.findApplications(ctx, bson.M{"applicant_email": email})
}

func (s *Store) ListApplicationsByJob(ctx context.Context, jobID string) ([]models.JobApplication, error) {
	return s.findApplications(ctx, bson.M{"job_id": jobID})
}

func (s *Store) findApplications(ctx context.Context, filter bson.M) ([]models.JobApplication, error) {
	cur, err := s.applications.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find applications: %w", err)
	}
	defer cur.Close(ctx)

	apps := []models.JobApplication{}
	for cur.Next(ctx) {
		var d applicationDocument
		if err := cur.Decode(&d); err != nil {
			s.skip(applicationsCollection, cur.Current, err)
			continue
		}
		apps = append(apps, d.model())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("read applications: %w", err)
	}
	return apps, nil
}

func (s *Store) skip(collection string, raw bson.Raw, err error) {
	s.log.WithError(err).WithFields(logrus.Fields{
		"collection": collection,
		"_id":        documentID(raw),
	}).Warn("skipping undecodable document")
}

func (s *Store) InsertApplication(ctx context.Context, app *models.JobApplication) (string, error) {
	res, err := s.applications.InsertOne(ctx, newApplicationDocument(app))
	if err != nil {
		return "", fmt.Errorf("insert application: %w", err)
	}
	return insertedHex(res), nil
}

func (s *Store) UpdateApplicationStatus(ctx context.Context, id, status string) (models.UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.UpdateResult{}, err
	}

	res, err := s.applications.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("update application %s: %w", id, err)
	}
	// Unacknowledged writes fail with mongo.ErrUnacknowledgedWrite, so a result means acknowledged.
	return models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

func insertedHex(res *mongo.InsertOneResult) string {
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(res.InsertedID)
}
