package sorter

import (
	"github.com/cmarcal/futmeet-sub000/internal/model"
)

// Service distributes players into balanced teams
type Service struct{}

// New creates a new SorterService
func New() *Service {
	return &Service{}
}

// Sort distributes players round-robin into teamCount fresh teams.
// Priority players are dealt first, then regular players continue the
// round-robin from wherever the priority pass stopped, so team sizes
// never differ by more than one.
//
// The input order is preserved within each group: the i-th priority
// player lands in team i mod teamCount, and regular players follow.
// Returns an empty slice when teamCount is below the minimum.
func (s *Service) Sort(players []model.Player, teamCount int) []model.Team {
	if teamCount < model.MinTeamCount {
		return []model.Team{}
	}

	teams := make([]model.Team, teamCount)
	for i := range teams {
		teams[i] = model.NewTeam(i + 1)
	}

	priority := make([]model.Player, 0, len(players))
	regular := make([]model.Player, 0, len(players))
	for _, p := range players {
		if p.Priority {
			priority = append(priority, p)
		} else {
			regular = append(regular, p)
		}
	}

	cursor := 0
	for _, p := range priority {
		teams[cursor%teamCount].Players = append(teams[cursor%teamCount].Players, p)
		cursor++
	}
	for _, p := range regular {
		teams[cursor%teamCount].Players = append(teams[cursor%teamCount].Players, p)
		cursor++
	}

	return teams
}

// Interface for dependency injection
type ServiceInterface interface {
	Sort(players []model.Player, teamCount int) []model.Team
}

var _ ServiceInterface = (*Service)(nil)
