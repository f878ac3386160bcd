package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/teachback-api/internal/dto"
	"github.com/noah-isme/teachback-api/internal/models"
	"github.com/noah-isme/teachback-api/internal/repository"
)

var (
	// ErrAlreadyVoted indicates the user already voted in this direction.
	ErrAlreadyVoted = errors.New("vote already recorded")
	// ErrSelfVote indicates a user tried to vote on their own explanation.
	ErrSelfVote = errors.New("cannot vote on your own explanation")
)

// VoteService records helpfulness votes on public explanations.
type VoteService interface {
	Vote(ctx context.Context, userID, explanationID uint, isUpvote bool) (dto.ExplanationResponse, error)
}

type voteService struct {
	votes        repository.VoteRepository
	explanations repository.ExplanationRepository
	logger       zerolog.Logger
}

// NewVoteService constructs a VoteService instance.
func NewVoteService(votes repository.VoteRepository, explanations repository.ExplanationRepository, logger zerolog.Logger) VoteService {
	return &voteService{
		votes:        votes,
		explanations: explanations,
		logger:       logger.With().Str("component", "vote_service").Logger(),
	}
}

// Vote casts a new vote, or flips an existing one when the direction changed.
// Repeating the same direction is rejected so counters cannot be inflated.
func (s *voteService) Vote(ctx context.Context, userID, explanationID uint, isUpvote bool) (dto.ExplanationResponse, error) {
	explanation, err := s.explanations.GetByID(ctx, explanationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExplanationResponse{}, ErrExplanationNotFound
		}
		return dto.ExplanationResponse{}, err
	}

	if explanation.UserID == userID {
		return dto.ExplanationResponse{}, ErrSelfVote
	}

	existing, err := s.votes.GetByUserAndExplanation(ctx, userID, explanationID)
	switch {
	case err == nil:
		if existing.IsUpvote == isUpvote {
			return dto.ExplanationResponse{}, ErrAlreadyVoted
		}
		if err := s.votes.ChangeDirection(ctx, userID, explanationID, isUpvote); err != nil {
			return dto.ExplanationResponse{}, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		vote := models.Vote{UserID: userID, ExplanationID: explanationID, IsUpvote: isUpvote}
		if err := s.votes.Cast(ctx, &vote); err != nil {
			return dto.ExplanationResponse{}, err
		}
	default:
		return dto.ExplanationResponse{}, err
	}

	updated, err := s.explanations.GetByID(ctx, explanationID)
	if err != nil {
		return dto.ExplanationResponse{}, err
	}

	s.logger.Info().
		Uint("user_id", userID).
		Uint("explanation_id", explanationID).
		Bool("is_upvote", isUpvote).
		Msg("vote recorded")

	return dto.NewExplanationResponse(updated), nil
}
