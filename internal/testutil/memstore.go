package testutil

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/justsurfingit/job-portal/internal/models"
	"github.com/justsurfingit/job-portal/internal/store"
)

// MemoryStore is an in-memory store.Store with Mongo-style ObjectID hex ids.
// Err* fields force the matching operation to fail.
type MemoryStore struct {
	mu           sync.Mutex
	jobs         map[string]models.Job
	applications map[string]models.JobApplication
	seq          int

	ErrList      error
	ErrGet       error
	ErrInsert    error
	ErrIncrement error
	ErrUpdate    error
	ErrPing      error
}

var _ store.Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		jobs:         make(map[string]models.Job),
		applications: make(map[string]models.JobApplication),
	}
}

func (s *MemoryStore) Ping(context.Context) error  { return s.ErrPing }
func (s *MemoryStore) Close(context.Context) error { return nil }

// Job returns a copy of the stored job, for assertions.
func (s *MemoryStore) Job(id string) (models.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	return j, ok
}

// Application returns a copy of the stored application, for assertions.
func (s *MemoryStore) Application(id string) (models.JobApplication, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.applications[id]
	return a, ok
}

func (s *MemoryStore) ListJobs(_ context.Context, hrEmail string) ([]models.Job, error) {
	if s.ErrList != nil {
		return nil, s.ErrList
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Job{}
	for _, j := range s.jobs {
		if hrEmail == "" || j.HREmail == hrEmail {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out, nil
}

func (s *MemoryStore) GetJob(_ context.Context, id string) (*models.Job, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, store.ErrInvalidID
	}
	if s.ErrGet != nil {
		return nil, s.ErrGet
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &j, nil
}

func (s *MemoryStore) InsertJob(_ context.Context, job *models.Job) (string, error) {
	if s.ErrInsert != nil {
		return "", s.ErrInsert
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	j := *job
	j.ID = s.nextID()
	s.jobs[j.ID] = j
	return j.ID, nil
}

func (s *MemoryStore) IncrementApplicationCount(_ context.Context, id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return store.ErrInvalidID
	}
	if s.ErrIncrement != nil {
		return s.ErrIncrement
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return store.ErrNotFound
	}
	j.ApplicationCount++
	s.jobs[id] = j
	return nil
}

func (s *MemoryStore) ListApplicationsByApplicant(_ context.Context, email string) ([]models.JobApplication, error) {
	return s.filterApplications(func(a models.JobApplication) bool { return a.ApplicantEmail == email })
}

func (s *MemoryStore) ListApplicationsByJob(_ context.Context, jobID string) ([]models.JobApplication, error) {
	return s.filterApplications(func(a models.JobApplication) bool { return a.JobID == jobID })
}

func (s *MemoryStore) filterApplications(keep func(models.JobApplication) bool) ([]models.JobApplication, error) {
	if s.ErrList != nil {
		return nil, s.ErrList
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.JobApplication{}
	for _, a := range s.applications {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out, nil
}

func (s *MemoryStore) InsertApplication(_ context.Context, app *models.JobApplication) (string, error) {
	if s.ErrInsert != nil {
		return "", s.ErrInsert
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	a := *app
	a.ID = s.nextID()
	s.applications[a.ID] = a
	return a.ID, nil
}

func (s *MemoryStore) UpdateApplicationStatus(_ context.Context, id, status string) (models.UpdateResult, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return models.UpdateResult{}, store.ErrInvalidID
	}
	if s.ErrUpdate != nil {
		return models.UpdateResult{}, s.ErrUpdate
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.applications[id]
	if !ok {
		return models.UpdateResult{Acknowledged: true}, nil
	}
	res := models.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if a.Status != status {
		a.Status = status
		s.applications[id] = a
		res.ModifiedCount = 1
	}
	return res, nil
}

// nextID returns increasing ObjectID-shaped hex ids. Caller holds mu.
func (s *MemoryStore) nextID() string {
	s.seq++
	var oid primitive.ObjectID
	oid[8] = byte(s.seq >> 24)
	oid[9] = byte(s.seq >> 16)
	oid[10] = byte(s.seq >> 8)
	oid[11] = byte(s.seq)
	return oid.Hex()
}
