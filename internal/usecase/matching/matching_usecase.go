package matching

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/gdugdh24/skillswap-backend/internal/domain"
	"github.com/gdugdh24/skillswap-backend/internal/infrastructure/gemini"
	"github.com/gdugdh24/skillswap-backend/internal/repository"
)

// Explainer writes a short human-readable reason for a new match.
type Explainer interface {
	GenerateMatchExplanation(ctx context.Context, user1, user2 gemini.MatchParty) (string, error)
}

type MatchingUseCase struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	matchRepo   repository.MatchRepository
	explainer   Explainer
	logger      *log.Logger
}

// NewMatchingUseCase wires the matching flow. explainer may be nil.
func NewMatchingUseCase(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	matchRepo repository.MatchRepository,
	explainer Explainer,
	logger *log.Logger,
) *MatchingUseCase {
	if logger == nil {
		logger = log.Default()
	}
	return &MatchingUseCase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		matchRepo:   matchRepo,
		explainer:   explainer,
		logger:      logger,
	}
}

// FindPotentialMatches returns every other user whose skills meet the
// caller's interests or whose interests meet the caller's skills. It only
// reads.
func (uc *MatchingUseCase) FindPotentialMatches(ctx context.Context, userID int) ([]*domain.User, error) {
	me, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.findPotentialMatches(ctx, me)
}

func (uc *MatchingUseCase) findPotentialMatches(ctx context.Context, me *domain.Profile) ([]*domain.User, error) {
	interests, skills := me.InterestNames(), me.SkillNames()
	if len(interests) == 0 && len(skills) == 0 {
		return []*domain.User{}, nil
	}

	candidates, err := uc.userRepo.FindCandidates(ctx, me.UserID, interests, skills)
	if err != nil {
		return nil, fmt.Errorf("failed to find candidates: %w", err)
	}

	// The store already excludes the caller; keep the guarantee local too.
	out := candidates[:0]
	for _, c := range candidates {
		if c.ID != me.UserID {
			out = append(out, c)
		}
	}
	return out, nil
}

// AreUsersMatch reports whether the two users reciprocally overlap.
func (uc *MatchingUseCase) AreUsersMatch(ctx context.Context, user1ID, user2ID int) (bool, error) {
	p1, err := uc.profileRepo.GetByUserID(ctx, user1ID)
	if err != nil {
		return false, err
	}
	p2, err := uc.profileRepo.GetByUserID(ctx, user2ID)
	if err != nil {
		return false, err
	}
	return Reciprocal(p1, p2), nil
}

// ConfirmMatch records that userID accepts a match with otherID. The pair
// is stored once regardless of order; repeated calls are no-ops apart from
// returning the current row.
func (uc *MatchingUseCase) ConfirmMatch(ctx context.Context, userID, otherID int) (*domain.Match, bool, error) {
	match, err := domain.NewMatch(userID, otherID)
	if err != nil {
		return nil, false, err
	}

	created, err := uc.matchRepo.Upsert(ctx, match)
	if err != nil {
		return nil, false, fmt.Errorf("failed to save match: %w", err)
	}
	return match, created, nil
}

// FindMatches runs discovery for the caller: candidates are re-tested with
// the reciprocal rule and every passing pair is confirmed. It returns the
// matches confirmed in this run ordered by the other user's id.
func (uc *MatchingUseCase) FindMatches(ctx context.Context, userID int) ([]*domain.Match, error) {
	me, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates, err := uc.findPotentialMatches(ctx, me)
	if err != nil {
		return nil, err
	}

	confirmed := make([]*domain.Match, 0, len(candidates))
	for _, candidate := range candidates {
		other, err := uc.profileRepo.GetByUserID(ctx, candidate.ID)
		if err != nil {
			if errors.Is(err, domain.ErrProfileNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to load candidate profile: %w", err)
		}

		if !Reciprocal(me, other) {
			continue
		}

		match, created, err := uc.ConfirmMatch(ctx, userID, candidate.ID)
		if err != nil {
			return nil, err
		}
		if created {
			uc.logger.Printf("match created: id=%d users=%d,%d", match.ID, match.User1ID, match.User2ID)
			uc.explain(ctx, match, me, other, candidate)
		}

		confirmed = append(confirmed, match)
	}

	return confirmed, nil
}

// explain attaches an explanation to a new match. Failures only get logged.
func (uc *MatchingUseCase) explain(ctx context.Context, match *domain.Match, me, other *domain.Profile, otherUser *domain.User) {
	if uc.explainer == nil {
		return
	}

	meUser, err := uc.userRepo.GetByID(ctx, me.UserID)
	if err != nil {
		uc.logger.Printf("match %d: skip explanation, caller lookup failed: %v", match.ID, err)
		return
	}

	meTeaches, otherTeaches := SharedTags(me, other)
	text, err := uc.explainer.GenerateMatchExplanation(ctx,
		gemini.MatchParty{Name: meUser.Username, Teaches: meTeaches, Learns: otherTeaches},
		gemini.MatchParty{Name: otherUser.Username, Teaches: otherTeaches, Learns: meTeaches},
	)
	if err != nil || text == "" {
		uc.logger.Printf("match %d: explanation failed: %v", match.ID, err)
		return
	}

	if err := uc.matchRepo.UpdateExplanation(ctx, match.ID, text); err != nil {
		uc.logger.Printf("match %d: failed to store explanation: %v", match.ID, err)
		return
	}
	match.Explanation = &text
}

// ListMatches returns matches involving userID, newest first.
func (uc *MatchingUseCase) ListMatches(ctx context.Context, userID, limit, offset int) ([]*domain.Match, error) {
	matches, err := uc.matchRepo.GetUserMatches(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

// GetMatch returns a match only if userID takes part in it.
func (uc *MatchingUseCase) GetMatch(ctx context.Context, userID, matchID int) (*domain.Match, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasUser(userID) {
		return nil, domain.ErrMatchNotFound
	}
	return match, nil
}
