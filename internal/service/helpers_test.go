package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/teachback-api/internal/models"
	"github.com/noah-isme/teachback-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// uowStub runs the unit against the provided set without a real transaction.
type uowStub struct {
	set repository.Set
}

func (u uowStub) Do(ctx context.Context, fn func(tx repository.Set) error) error {
	return fn(u.set)
}

type userRepoStub struct {
	users  map[uint]models.User
	nextID uint
}

func newUserRepoStub(users ...models.User) *userRepoStub {
	stub := &userRepoStub{users: make(map[uint]models.User), nextID: 1}
	for _, user := range users {
		if user.ID >= stub.nextID {
			stub.nextID = user.ID + 1
		}
		stub.users[user.ID] = user
	}
	return stub
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	user.ID = s.nextID
	s.nextID++
	s.users[user.ID] = *user
	return nil
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (models.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (s *userRepoStub) AddXP(ctx context.Context, id uint, earned int) (models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	user.TotalXP += earned
	user.Level = user.TotalXP/1000 + 1
	s.users[id] = user
	return user, nil
}

func (s *userRepoStub) UpdateActivity(ctx context.Context, id uint, streak int, lastActive time.Time) (models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	user.Streak = streak
	user.LastActiveAt = &lastActive
	s.users[id] = user
	return user, nil
}

func (s *userRepoStub) Leaderboard(ctx context.Context, limit int) ([]models.User, error) {
	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	for i := 0; i < len(users); i++ {
		for j := i + 1; j < len(users); j++ {
			if users[j].TotalXP > users[i].TotalXP {
				users[i], users[j] = users[j], users[i]
			}
		}
	}
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

type topicRepoStub struct {
	topics map[uint]models.Topic
}

func newTopicRepoStub(topics ...models.Topic) *topicRepoStub {
	stub := &topicRepoStub{topics: make(map[uint]models.Topic)}
	for _, topic := range topics {
		stub.topics[topic.ID] = topic
	}
	return stub
}

func (s *topicRepoStub) List(ctx context.Context) ([]models.Topic, error) {
	topics := make([]models.Topic, 0, len(s.topics))
	for _, topic := range s.topics {
		topics = append(topics, topic)
	}
	return topics, nil
}

func (s *topicRepoStub) GetByID(ctx context.Context, id uint) (models.Topic, error) {
	topic, ok := s.topics[id]
	if !ok {
		return models.Topic{}, gorm.ErrRecordNotFound
	}
	return topic, nil
}

func (s *topicRepoStub) ListUnexplained(ctx context.Context, userID uint, limit int) ([]models.Topic, error) {
	return s.List(ctx)
}

func (s *topicRepoStub) UpsertBatch(ctx context.Context, topics []models.Topic) (int64, error) {
	for i := range topics {
		if topics[i].ID == 0 {
			topics[i].ID = uint(len(s.topics) + 1)
		}
		s.topics[topics[i].ID] = topics[i]
	}
	return int64(len(topics)), nil
}

type explanationRepoStub struct {
	explanations []models.Explanation
	nextID       uint
}

func newExplanationRepoStub() *explanationRepoStub {
	return &explanationRepoStub{nextID: 1}
}

func (s *explanationRepoStub) Create(ctx context.Context, explanation *models.Explanation) error {
	explanation.ID = s.nextID
	s.nextID++
	s.explanations = append(s.explanations, *explanation)
	return nil
}

func (s *explanationRepoStub) GetByID(ctx context.Context, id uint) (models.Explanation, error) {
	for _, explanation := range s.explanations {
		if explanation.ID == id {
			return explanation, nil
		}
	}
	return models.Explanation{}, gorm.ErrRecordNotFound
}

func (s *explanationRepoStub) ListByUser(ctx context.Context, userID uint, limit int) ([]models.Explanation, error) {
	result := make([]models.Explanation, 0)
	for _, explanation := range s.explanations {
		if explanation.UserID == userID {
			result = append(result, explanation)
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *explanationRepoStub) ListPublic(ctx context.Context, limit int) ([]models.Explanation, error) {
	result := make([]models.Explanation, 0)
	for _, explanation := range s.explanations {
		if explanation.IsPublic {
			result = append(result, explanation)
		}
	}
	return result, nil
}

func (s *explanationRepoStub) AggregatesByUser(ctx context.Context, userID uint) (repository.UserAggregates, error) {
	var aggregates repository.UserAggregates
	var scoreSum int64
	subjects := make(map[uint]bool)
	for _, explanation := range s.explanations {
		if explanation.UserID != userID {
			continue
		}
		aggregates.ExplanationsCount++
		scoreSum += int64(explanation.Score)
		aggregates.TotalXPEarned += int64(explanation.XPEarned)
		aggregates.UpvotesReceived += int64(explanation.Upvotes)
		subjects[explanation.TopicID] = true
	}
	if aggregates.ExplanationsCount > 0 {
		aggregates.AverageScore = float64(scoreSum) / float64(aggregates.ExplanationsCount)
	}
	aggregates.SubjectsExplained = int64(len(subjects))
	return aggregates, nil
}

type badgeRepoStub struct {
	catalog []models.Badge
	earned  map[uint]map[uint]bool
}

func newBadgeRepoStub(catalog ...models.Badge) *badgeRepoStub {
	return &badgeRepoStub{catalog: catalog, earned: make(map[uint]map[uint]bool)}
}

func (s *badgeRepoStub) ListCatalog(ctx context.Context) ([]models.Badge, error) {
	return s.catalog, nil
}

func (s *badgeRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.UserBadge, error) {
	awards := make([]models.UserBadge, 0)
	for _, badge := range s.catalog {
		if s.earned[userID][badge.ID] {
			awards = append(awards, models.UserBadge{UserID: userID, BadgeID: badge.ID, Badge: badge})
		}
	}
	return awards, nil
}

func (s *badgeRepoStub) EarnedIDs(ctx context.Context, userID uint) (map[uint]bool, error) {
	earned := make(map[uint]bool, len(s.earned[userID]))
	for id := range s.earned[userID] {
		earned[id] = true
	}
	return earned, nil
}

func (s *badgeRepoStub) CountByUser(ctx context.Context, userID uint) (int64, error) {
	return int64(len(s.earned[userID])), nil
}

func (s *badgeRepoStub) Award(ctx context.Context, userID, badgeID uint) (bool, error) {
	if s.earned[userID] == nil {
		s.earned[userID] = make(map[uint]bool)
	}
	if s.earned[userID][badgeID] {
		return false, nil
	}
	s.earned[userID][badgeID] = true
	return true, nil
}

func (s *badgeRepoStub) UpsertCatalog(ctx context.Context, badges []models.Badge) (int64, error) {
	s.catalog = badges
	return int64(len(badges)), nil
}

type voteRepoStub struct {
	votes map[[2]uint]models.Vote
}

func newVoteRepoStub() *voteRepoStub {
	return &voteRepoStub{votes: make(map[[2]uint]models.Vote)}
}

func (s *voteRepoStub) GetByUserAndExplanation(ctx context.Context, userID, explanationID uint) (models.Vote, error) {
	vote, ok := s.votes[[2]uint{userID, explanationID}]
	if !ok {
		return models.Vote{}, gorm.ErrRecordNotFound
	}
	return vote, nil
}

func (s *voteRepoStub) Cast(ctx context.Context, vote *models.Vote) error {
	key := [2]uint{vote.UserID, vote.ExplanationID}
	if _, exists := s.votes[key]; exists {
		return errors.New("duplicate vote")
	}
	s.votes[key] = *vote
	return nil
}

func (s *voteRepoStub) ChangeDirection(ctx context.Context, userID, explanationID uint, isUpvote bool) error {
	key := [2]uint{userID, explanationID}
	vote, ok := s.votes[key]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	vote.IsUpvote = isUpvote
	s.votes[key] = vote
	return nil
}

type reportRepoStub struct {
	reports []models.Report
}

func (s *reportRepoStub) Create(ctx context.Context, report *models.Report) error {
	report.ID = uint(len(s.reports) + 1)
	s.reports = append(s.reports, *report)
	return nil
}

func (s *reportRepoStub) ListRecent(ctx context.Context, userID uint, reportType string, limit int) ([]models.Report, error) {
	result := make([]models.Report, 0)
	for _, report := range s.reports {
		if report.UserID != userID {
			continue
		}
		if reportType != "" && report.Type != reportType {
			continue
		}
		result = append(result, report)
	}
	return result, nil
}

type storageStub struct {
	uploads int
	fail    bool
}

func (s *storageStub) Upload(ctx context.Context, name string, reader io.Reader) (string, error) {
	if s.fail {
		return "", errors.New("storage unavailable")
	}
	s.uploads++
	return "https://cdn.example.com/media/" + name, nil
}

type notifierStub struct {
	messages []string
}

func (s *notifierStub) Notify(ctx context.Context, userID uint, notificationType, message string) {
	s.messages = append(s.messages, notificationType+": "+message)
}
