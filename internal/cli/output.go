package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case Session:
		o.printSession(v)
	case Room:
		o.printRoom(v)
	case Roster:
		o.printRoster(v)
	case TeamCount:
		o.printTeamCount(v)
	case SortResult:
		o.printSortResult(v)
	case Share:
		o.printShare(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Priority bool   `json:"priority"`
}

// Team response type
type Team struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Players []Player `json:"players"`
}

// Session response type
type Session struct {
	ID        string   `json:"id"`
	Players   []Player `json:"players"`
	TeamCount int      `json:"team_count"`
	Status    string   `json:"status"`
	Teams     []Team   `json:"teams"`
}

// Room response type
type Room struct {
	ID      string   `json:"id"`
	Players []Player `json:"players"`
}

// Roster response type
type Roster struct {
	Players []Player `json:"players"`
}

// TeamCount response type
type TeamCount struct {
	TeamCount int `json:"team_count"`
}

// SortResult response type
type SortResult struct {
	Status string `json:"status"`
	Teams  []Team `json:"teams"`
}

// Share response type
type Share struct {
	Text        string `json:"text"`
	WhatsAppURL string `json:"whatsapp_url"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.Name, p.ID)
	if p.Priority {
		fmt.Println("Priority: yes")
	} else {
		fmt.Println("Priority: no")
	}
}

func (o *Output) printPlayers(players []Player) {
	for i, p := range players {
		marker := ""
		if p.Priority {
			marker = " [priority]"
		}
		fmt.Printf("  %d. %s%s\n", i+1, p.Name, marker)
	}
}

func (o *Output) printTeams(teams []Team) {
	for _, team := range teams {
		fmt.Printf("  %s:\n", team.Name)
		for _, p := range team.Players {
			marker := ""
			if p.Priority {
				marker = " [priority]"
			}
			fmt.Printf("    - %s%s\n", p.Name, marker)
		}
	}
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Session: %s\n", s.ID)
	fmt.Printf("Status: %s\n", s.Status)
	fmt.Printf("Team Count: %d\n", s.TeamCount)
	fmt.Printf("Players (%d):\n", len(s.Players))
	o.printPlayers(s.Players)
	if len(s.Teams) > 0 {
		fmt.Println("Teams:")
		o.printTeams(s.Teams)
	}
}

func (o *Output) printRoom(r Room) {
	fmt.Printf("Room: %s\n", r.ID)
	fmt.Printf("Players (%d):\n", len(r.Players))
	o.printPlayers(r.Players)
}

func (o *Output) printRoster(r Roster) {
	fmt.Printf("Players (%d):\n", len(r.Players))
	o.printPlayers(r.Players)
}

func (o *Output) printTeamCount(tc TeamCount) {
	fmt.Printf("Team Count: %d\n", tc.TeamCount)
}

func (o *Output) printSortResult(sr SortResult) {
	fmt.Printf("Status: %s\n", sr.Status)
	fmt.Println("Teams:")
	o.printTeams(sr.Teams)
}

func (o *Output) printShare(s Share) {
	fmt.Println(s.Text)
	fmt.Printf("WhatsApp: %s\n", s.WhatsAppURL)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
