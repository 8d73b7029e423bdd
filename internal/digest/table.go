package digest

import (
	"fmt"
	"strings"

	"github.com/pcollins/matchday/internal/fixtures"
)

// FormatTable renders a full league table as a Telegram HTML message,
// marking the followed team's row. Used by the interactive bot's
// /table command.
func FormatTable(competition string, table []*fixtures.Standing, teamID int) string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("🏆 <b>%s table</b>\n\n", competition))
	msg.WriteString("<pre>")
	msg.WriteString("  #  Team                 P   Pts  GD\n")

	for _, row := range table {
		marker := " "
		if row.TeamID == teamID {
			marker = "▸"
		}
		gdSign := ""
		if row.GoalDifference > 0 {
			gdSign = "+"
		}
		msg.WriteString(fmt.Sprintf("%s%3d %-20s %3d %4d %3s\n",
			marker, row.Position, clip(row.TeamName, 20), row.Played, row.Points,
			gdSign+fmt.Sprint(row.GoalDifference)))
	}

	msg.WriteString("</pre>")

	return msg.String()
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
