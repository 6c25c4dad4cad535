package service

import (
	"quiz_sphere_backend/internal/model"
)

// AttemptFinder is the read side of the attempt store the aggregator needs.
type AttemptFinder interface {
	Find(userID, categoryID uint) (*model.Attempt, error)
}

// StandingsService composes the catalog and the attempt store into a user's
// cross-category summary. The write side of the standing (credit on finalize,
// refund on delete) is embedded in the attempt store's transactional methods
// so it can never run outside those transactions.
type StandingsService struct {
	Catalog  *CategoryService
	Attempts AttemptFinder
}

func NewStandingsService(catalog *CategoryService, attempts AttemptFinder) *StandingsService {
	return &StandingsService{Catalog: catalog, Attempts: attempts}
}

type CategoryStanding struct {
	CategoryName string `json:"categoryName"`
	Attempted    bool   `json:"isAttempt"`
}

// UserStandings reports, per category, whether the user finished it, plus the
// sum of the scale marks of every finished category. The total is the
// maximum attainable across completed categories, not the user's score: the
// caller divides by it for a cross-category completion percentage.
type UserStandings struct {
	AllCategoryDetails []CategoryStanding `json:"allCategoryDetails"`
	AllCategoryMarks   int                `json:"allCategoryMarks"`
}

func (s *StandingsService) Summarize(userID uint) (*UserStandings, error) {
	categories, err := s.Catalog.List()
	if err != nil {
		return nil, err
	}

	out := &UserStandings{AllCategoryDetails: make([]CategoryStanding, 0, len(categories))}
	for _, cat := range categories {
		attempt, err := s.Attempts.Find(userID, cat.ID)
		if err != nil {
			return nil, err
		}

		finished := attempt != nil && attempt.IsFinished
		out.AllCategoryDetails = append(out.AllCategoryDetails, CategoryStanding{
			CategoryName: cat.Name,
			Attempted:    finished,
		})

		if finished {
			scale, err := s.Catalog.Scale(cat.ID)
			if err != nil {
				return nil, err
			}
			out.AllCategoryMarks += scale.TotalMarks
		}
	}
	return out, nil
}
