package repository

import (
	"context"

	"gorm.io/gorm"
)

// Set bundles the repositories bound to one gorm handle, so a unit of work
// can hand transactional variants to business code.
type Set struct {
	Users        UserRepository
	Topics       TopicRepository
	Explanations ExplanationRepository
	Badges       BadgeRepository
	Votes        VoteRepository
	Reports      ReportRepository
}

// NewSet constructs the repository set over a gorm handle.
func NewSet(db *gorm.DB) Set {
	return Set{
		Users:        NewUserRepository(db),
		Topics:       NewTopicRepository(db),
		Explanations: NewExplanationRepository(db),
		Badges:       NewBadgeRepository(db),
		Votes:        NewVoteRepository(db),
		Reports:      NewReportRepository(db),
	}
}

// UnitOfWork runs a function against a repository set bound to a single
// database transaction. Any error rolls the whole unit back, so callers
// never observe partially applied state.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(tx Set) error) error
}

type gormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork builds a transaction runner over the given database.
func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) Do(ctx context.Context, fn func(tx Set) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewSet(tx))
	})
}
