package fixtures

import (
	"fmt"
	"net/url"
)

// playoffPosition is the last league position qualifying for the
// promotion playoffs in the EFL Championship.
const playoffPosition = 6

// Standing is one team's row in a league table
type Standing struct {
	Position       int    `json:"position"`
	TeamID         int    `json:"team_id"`
	TeamName       string `json:"team_name"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Draw           int    `json:"draw"`
	Lost           int    `json:"lost"`
	Points         int    `json:"points"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`

	// PointsToPlayoff is the gap to the last playoff place. Zero when
	// the team already sits in a playoff position.
	PointsToPlayoff int `json:"points_to_playoff"`
}

// standingsResponse mirrors the upstream /competitions/{code}/standings payload
type standingsResponse struct {
	Standings []struct {
		Type  string `json:"type"`
		Table []struct {
			Position int `json:"position"`
			Team     struct {
				ID   int    `json:"id"`
				Name string `json:"name"`
			} `json:"team"`
			PlayedGames    int `json:"playedGames"`
			Won            int `json:"won"`
			Draw           int `json:"draw"`
			Lost           int `json:"lost"`
			Points         int `json:"points"`
			GoalsFor       int `json:"goalsFor"`
			GoalsAgainst   int `json:"goalsAgainst"`
			GoalDifference int `json:"goalDifference"`
		} `json:"table"`
	} `json:"standings"`
}

// FetchTable fetches the full league table for a competition code
// (e.g. "ELC" for the Championship). Only the TOTAL standing type is used.
func (c *Client) FetchTable(competition string) ([]*Standing, error) {
	if competition == "" {
		return nil, &FetchError{Reason: "competition code is required"}
	}

	endpoint := fmt.Sprintf("/v4/competitions/%s/standings", url.PathEscape(competition))

	var result standingsResponse
	if err := c.get(endpoint, nil, &result); err != nil {
		return nil, err
	}

	for _, group := range result.Standings {
		if group.Type != "TOTAL" {
			continue
		}

		table := make([]*Standing, 0, len(group.Table))
		for _, row := range group.Table {
			table = append(table, &Standing{
				Position:       row.Position,
				TeamID:         row.Team.ID,
				TeamName:       row.Team.Name,
				Played:         row.PlayedGames,
				Won:            row.Won,
				Draw:           row.Draw,
				Lost:           row.Lost,
				Points:         row.Points,
				GoalsFor:       row.GoalsFor,
				GoalsAgainst:   row.GoalsAgainst,
				GoalDifference: row.GoalDifference,
			})
		}
		return table, nil
	}

	return nil, &FetchError{Reason: "no TOTAL standings in response"}
}

// FetchStanding fetches one team's row from the competition table and
// fills in the points gap to the playoff places.
func (c *Client) FetchStanding(competition string, teamID int) (*Standing, error) {
	table, err := c.FetchTable(competition)
	if err != nil {
		return nil, err
	}

	var standing *Standing
	playoffPoints := 0
	for _, row := range table {
		if row.TeamID == teamID {
			standing = row
		}
		if row.Position == playoffPosition {
			playoffPoints = row.Points
		}
	}

	if standing == nil {
		return nil, &FetchError{Reason: fmt.Sprintf("team %d not found in %s table", teamID, competition)}
	}

	if standing.Position > playoffPosition {
		gap := playoffPoints - standing.Points
		if gap <= 0 {
			// Level on points but behind on position still needs one more
			gap = 1
		}
		standing.PointsToPlayoff = gap
	}

	return standing, nil
}
