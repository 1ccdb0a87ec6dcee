package contract

import (
	"fmt"
	"strings"
)

// Teams is a read-only registry of configured teams, kept in configuration order.
type Teams struct {
	order  []string
	byName map[string]Team
}

func NewTeams(teams []Team) (*Teams, error) {
	t := &Teams{byName: make(map[string]Team, len(teams))}
	for _, team := range teams {
		name := strings.TrimSpace(team.Name)
		if name == "" {
			return nil, fmt.Errorf("team without name")
		}
		key := strings.ToLower(name)
		if _, exists := t.byName[key]; exists {
			return nil, fmt.Errorf("duplicate team: %s", name)
		}
		if !validHours(team.ContractedHours) {
			return nil, fmt.Errorf("team %s: %w", name, ErrInvalidContractedHours)
		}
		if team.ContractedDays == 0 {
			team.ContractedDays = DefaultContractedDays
		}
		if team.ContractedDays < 1 || team.ContractedDays > 7 {
			return nil, fmt.Errorf("team %s: %w", name, ErrInvalidContractedDays)
		}
		team.Name = name
		t.byName[key] = team
		t.order = append(t.order, key)
	}
	return t, nil
}

// Get looks a team up by name, case-insensitive.
func (t *Teams) Get(name string) (Team, error) {
	team, ok := t.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Team{}, fmt.Errorf("%w: %s", ErrTeamNotFound, name)
	}
	return team, nil
}

func (t *Teams) All() []Team {
	teams := make([]Team, 0, len(t.order))
	for _, key := range t.order {
		teams = append(teams, t.byName[key])
	}
	return teams
}

func (t *Teams) Names() []string {
	names := make([]string, 0, len(t.order))
	for _, key := range t.order {
		names = append(names, t.byName[key].Name)
	}
	return names
}
