package share

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cmarcal/futmeet-sub000/internal/model"
)

// Service renders sessions as text for pasting into a messaging app
type Service struct{}

// New creates a new ShareService
func New() *Service {
	return &Service{}
}

// Summary builds the shareable text for a game session. Once teams
// have been sorted it lists them in team blocks; before that it falls
// back to the plain roster. Priority players carry a star marker and
// team names use asterisk bolding, which messaging apps render bold.
func (s *Service) Summary(g *model.GameSession) string {
	var sb strings.Builder

	if len(g.Teams) > 0 {
		sb.WriteString("⚽ Teams sorted!\n")
		for _, team := range g.Teams {
			sb.WriteString(fmt.Sprintf("\n*%s*\n", team.Name))
			for _, p := range team.Players {
				sb.WriteString(playerLine(p))
			}
		}
		return sb.String()
	}

	sb.WriteString("⚽ Player list\n")
	if len(g.Players) > 0 {
		sb.WriteString("\n")
	}
	for _, p := range g.Players {
		sb.WriteString(playerLine(p))
	}
	return sb.String()
}

// RoomSummary builds the shareable text for a waiting room roster
func (s *Service) RoomSummary(r *model.WaitingRoom) string {
	var sb strings.Builder
	sb.WriteString("⚽ Waiting room\n")
	if len(r.Players) > 0 {
		sb.WriteString("\n")
	}
	for _, p := range r.Players {
		sb.WriteString(playerLine(p))
	}
	return sb.String()
}

// WhatsAppURL wraps text in a wa.me link that opens a chat with the
// text prefilled
func (s *Service) WhatsAppURL(text string) string {
	return "https://wa.me/?text=" + url.QueryEscape(text)
}

func playerLine(p model.Player) string {
	if p.Priority {
		return fmt.Sprintf("- %s ⭐\n", p.Name)
	}
	return fmt.Sprintf("- %s\n", p.Name)
}

// Interface for dependency injection
type ServiceInterface interface {
	Summary(g *model.GameSession) string
	RoomSummary(r *model.WaitingRoom) string
	WhatsAppURL(text string) string
}

var _ ServiceInterface = (*Service)(nil)
