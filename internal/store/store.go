// ABOUTME: UserStateStore owning the profile, workout schedule, and activity log.
// ABOUTME: Memory is authoritative; every mutation is persisted through the write queue.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitness/internal/kv"
	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/stats"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"golang.org/x/crypto/bcrypt"
)

// Simulated auth round-trip times.
const (
	DefaultLoginLatency  = time.Second
	DefaultSignupLatency = 1500 * time.Millisecond
)

// ErrInvalidWorkout is returned by ScheduleWorkout for malformed input.
var ErrInvalidWorkout = errors.New("invalid workout")

// Store is the single source of truth for user state.
type Store struct {
	backend kv.Store
	queue   *writeQueue
	log     logrus.FieldLogger

	now           func() time.Time
	loc           *time.Location
	loginLatency  time.Duration
	signupLatency time.Duration
	passwordCost  int
	newToken      func() string

	mu         sync.RWMutex
	loading    bool
	profile    models.Profile
	workouts   []models.Workout
	activities []models.ActivityLog
	nutrition  []models.NutritionEntry
	foods      []models.Food
	auth       AuthState
	creds      *credentials
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLocation sets the zone used to decide calendar days.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithLogger routes store logging to log.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Store) { s.log = log }
}

// WithAuthLatency overrides the simulated login and signup delays.
func WithAuthLatency(login, signup time.Duration) Option {
	return func(s *Store) {
		s.loginLatency = login
		s.signupLatency = signup
	}
}

// WithPasswordCost sets the bcrypt cost used for new credentials.
func WithPasswordCost(cost int) Option {
	return func(s *Store) { s.passwordCost = cost }
}

// WithTokenFunc replaces the session token generator.
func WithTokenFunc(fn func() string) Option {
	return func(s *Store) { s.newToken = fn }
}

// New creates a Store on top of backend. The store starts in the loading
// state with default data until LoadAll is called.
func New(backend kv.Store, opts ...Option) *Store {
	s := &Store{
		backend:       backend,
		log:           logrus.StandardLogger(),
		now:           time.Now,
		loc:           time.Local,
		loginLatency:  DefaultLoginLatency,
		signupLatency: DefaultSignupLatency,
		passwordCost:  bcrypt.DefaultCost,
		newToken:      func() string { return "token_" + uuid.NewString() },

		loading:    true,
		profile:    models.DefaultProfile(),
		workouts:   MockWorkouts(),
		activities: []models.ActivityLog{},
		nutrition:  []models.NutritionEntry{},
		foods:      MockFoods(),
		auth:       AuthState{Status: StatusUnauthenticated},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.queue = newWriteQueue(backend, s.log)
	return s
}

// LoadAll replaces in-memory state with what the backend holds. Missing or
// unreadable documents fall back to defaults and are logged; it never fails.
func (s *Store) LoadAll(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	s.queue.flush()

	profile := readJSON(ctx, s, ProfileKey, models.DefaultProfile())
	workouts := readJSON(ctx, s, WorkoutsKey, MockWorkouts())
	activities := readJSON(ctx, s, ActivityKey, []models.ActivityLog{})
	nutrition := readJSON(ctx, s, NutritionKey, []models.NutritionEntry{})
	creds := readJSON[*credentials](ctx, s, CredentialsKey, nil)
	token := s.readToken(ctx)

	if profile.Goals == nil {
		profile.Goals = []models.FitnessGoal{}
	}
	if workouts == nil {
		s.log.WithField("key", WorkoutsKey).Warn("null schedule, using seed workouts")
		workouts = MockWorkouts()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = profile
	s.workouts = workouts
	s.activities = nonNil(activities)
	s.nutrition = nonNil(nutrition)
	s.creds = creds
	s.auth = AuthState{Status: StatusUnauthenticated}
	if token != "" && creds != nil {
		s.auth = AuthState{Status: StatusAuthenticated, Token: token, Account: creds.account()}
	}
	s.loading = false

	s.log.WithFields(logrus.Fields{
		"workouts":      len(s.workouts),
		"activities":    len(s.activities),
		"authenticated": s.auth.Status == StatusAuthenticated,
	}).Debug("state loaded")
}

func readJSON[T any](ctx context.Context, s *Store, key string, fallback T) T {
	if v, ok := loadJSON[T](ctx, s, key); ok {
		return v
	}
	return fallback
}

// loadJSON decodes the document at key. ok is false when it is missing or unreadable.
func loadJSON[T any](ctx context.Context, s *Store, key string) (v T, ok bool) {
	data, err := s.backend.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return v, false
	}
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"key": key, "op": "get"}).Error("load failed, using default")
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"key": key, "op": "decode"}).Error("corrupt document, using default")
		return v, false
	}
	return v, true
}

func (s *Store) readToken(ctx context.Context) string {
	data, err := s.backend.Get(ctx, AuthTokenKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.log.WithError(err).WithFields(logrus.Fields{"key": AuthTokenKey, "op": "get"}).Error("load failed")
		}
		return ""
	}
	return string(data)
}

// persist snapshots v and enqueues it. Callers hold s.mu.
func (s *Store) persist(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"key": key, "op": "encode"}).Error("persist failed")
		return
	}
	s.queue.set(key, data)
}

// Flush blocks until every mutation made so far has reached the backend.
func (s *Store) Flush() {
	s.queue.flush()
}

// Close drains pending writes and closes the backend.
func (s *Store) Close() error {
	s.queue.close()
	var err error
	if cerr := s.backend.Close(); cerr != nil {
		err = multierr.Append(err, fmt.Errorf("close backend: %w", cerr))
	}
	return err
}

// Backend exposes the underlying key-value store (for sync and migrate).
func (s *Store) Backend() kv.Store {
	return s.backend
}

// Location is the zone used for calendar days.
func (s *Store) Location() *time.Location {
	return s.loc
}

func (s *Store) today() time.Time {
	return s.now().In(s.loc)
}

// IsLoading reports whether LoadAll has not completed yet.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Profile returns a copy of the current profile.
func (s *Store) Profile() models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Clone()
}

// Workouts returns a copy of the schedule.
func (s *Store) Workouts() []models.Workout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Workout{}, s.workouts...)
}

// Workout looks up a single workout by id.
func (s *Store) Workout(id string) (models.Workout, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.workouts {
		if w.ID == id {
			return w, true
		}
	}
	return models.Workout{}, false
}

// Activities returns a copy of the activity log, oldest first.
func (s *Store) Activities() []models.ActivityLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ActivityLog{}, s.activities...)
}

// UpdateProfile merges u into the profile and persists it. No validation.
func (s *Store) UpdateProfile(u models.ProfileUpdate) models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = s.profile.Merge(u)
	s.persist(ProfileKey, s.profile)
	return s.profile.Clone()
}

// CompleteOnboarding applies u and marks the profile onboarded.
func (s *Store) CompleteOnboarding(u models.ProfileUpdate) models.Profile {
	onboarded := true
	u.Onboarded = &onboarded
	return s.UpdateProfile(u)
}

// CompleteWorkout marks the workout completed and logs an activity for it.
// Unknown ids are ignored. Completing an already completed workout logs again.
func (s *Store) CompleteWorkout(id string) (models.ActivityLog, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, w := range s.workouts {
		if w.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.log.WithField("workout_id", id).Debug("complete ignored, unknown workout")
		return models.ActivityLog{}, false
	}

	workouts := append([]models.Workout{}, s.workouts...)
	workouts[idx].Completed = true
	entry := models.NewActivityLog(workouts[idx], s.now())

	s.workouts = workouts
	s.activities = append(append([]models.ActivityLog{}, s.activities...), entry)
	s.persist(WorkoutsKey, s.workouts)
	s.persist(ActivityKey, s.activities)
	return entry, true
}

// ScheduleWorkout adds w to the schedule. An empty ID is generated.
func (s *Store) ScheduleWorkout(w models.Workout) (models.Workout, error) {
	if w.Name == "" {
		return models.Workout{}, fmt.Errorf("%w: name is required", ErrInvalidWorkout)
	}
	if w.Duration < 0 || w.Calories < 0 {
		return models.Workout{}, fmt.Errorf("%w: duration and calories must not be negative", ErrInvalidWorkout)
	}
	if w.Difficulty != "" && !models.IsValidFitnessLevel(string(w.Difficulty)) {
		return models.Workout{}, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidWorkout, w.Difficulty)
	}
	day := s.now()
	if w.Date != "" {
		parsed, err := time.ParseInLocation(models.DateLayout, w.Date, s.loc)
		if err != nil {
			return models.Workout{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidWorkout)
		}
		day = parsed
	}
	if w.Difficulty == "" {
		w.Difficulty = models.LevelBeginner
	}
	nw := models.NewWorkout(w.Name, w.Duration, w.Calories, w.Difficulty, day.In(s.loc))
	if w.ID != "" {
		nw.ID = w.ID
	}
	w = *nw

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.workouts {
		if existing.ID == w.ID {
			return models.Workout{}, fmt.Errorf("%w: id %s already scheduled", ErrInvalidWorkout, w.ID)
		}
	}
	s.workouts = append(append([]models.Workout{}, s.workouts...), w)
	s.persist(WorkoutsKey, s.workouts)
	return w, nil
}

// TodayStats derives today's totals.
func (s *Store) TodayStats() stats.TodayStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return stats.Today(s.workouts, s.activities, s.today())
}

// WeekProgress returns seven days of progress, oldest first, ending today.
func (s *Store) WeekProgress() []models.ProgressData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return stats.Week(s.activities, s.today())
}

// StreakDays counts consecutive active days ending today.
func (s *Store) StreakDays() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return stats.Streak(s.activities, s.today())
}

// Summary derives lifetime totals.
func (s *Store) Summary() stats.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return stats.Summarize(s.activities, s.today())
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
