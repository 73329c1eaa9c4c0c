package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/sideline/internal/services/match"
	"github.com/bwmarrin/discordgo"
)

// Embed colors
const (
	colorGreen  = 0x2ecc71
	colorRed    = 0xe74c3c
	colorBlue   = 0x3498db
	colorYellow = 0xf1c40f
	colorGrey   = 0x95a5a6
)

// renderNotification builds the embed posted for a committed operation
func renderNotification(n *match.Notification) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: matchTitle(n),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Match " + n.MatchID,
		},
	}
	if !n.Timestamp.IsZero() {
		embed.Timestamp = n.Timestamp.UTC().Format(time.RFC3339)
	}

	switch n.Kind {
	case match.NotificationClockStarted:
		embed.Description = fmt.Sprintf("⏱️ Clock started, period %d", n.Period)
		embed.Color = colorGreen
	case match.NotificationClockStopped:
		embed.Description = fmt.Sprintf("⏸️ Clock stopped, period %d", n.Period)
		embed.Color = colorRed
	case match.NotificationChangesApplied:
		embed.Description = fmt.Sprintf("🔁 Lineup changes, period %d", n.Period)
		embed.Color = colorBlue
		if len(n.Substitutions) > 0 {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "Substitutions",
				Value: renderSubstitutions(n.Substitutions),
			})
		}
		if len(n.Swaps) > 0 {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "Position changes",
				Value: renderSwaps(n.Swaps),
			})
		}
	case match.NotificationPeriodEnded:
		embed.Description = fmt.Sprintf("🔔 End of period %d", n.Period)
		embed.Color = colorYellow
		embed.Fields = playerFields(n.Players)
	case match.NotificationMatchEnded:
		embed.Description = "🏁 Full time"
		embed.Color = colorGrey
		embed.Fields = playerFields(n.Players)
	default:
		embed.Description = string(n.Kind)
		embed.Color = colorGrey
	}

	return embed
}

func matchTitle(n *match.Notification) string {
	if n.MatchName != "" {
		return n.MatchName
	}
	return "Match " + n.MatchID
}

func renderSubstitutions(subs []match.SubstitutionSummary) string {
	var sb strings.Builder
	for _, sub := range subs {
		fmt.Fprintf(&sb, "⬆️ %s for ⬇️ %s (%s)\n", sub.InName, sub.OutName, sub.PositionID)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func renderSwaps(swaps []match.SwapSummary) string {
	var sb strings.Builder
	for _, swap := range swaps {
		if swap.FromPositionID == "" {
			fmt.Fprintf(&sb, "%s: %s\n", swap.Name, swap.ToPositionID)
			continue
		}
		fmt.Fprintf(&sb, "%s: %s → %s\n", swap.Name, swap.FromPositionID, swap.ToPositionID)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// playerFields lists players on the field first, then the bench
func playerFields(players []match.PlayerSummary) []*discordgo.MessageEmbedField {
	var on, off strings.Builder
	for _, p := range players {
		line := fmt.Sprintf("%s  %s (%s)\n", p.Name, p.TotalTime, shifts(p.Shifts))
		if p.IsOn {
			on.WriteString(line)
		} else {
			off.WriteString(line)
		}
	}

	var fields []*discordgo.MessageEmbedField
	if on.Len() > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "On the field",
			Value: strings.TrimSuffix(on.String(), "\n"),
		})
	}
	if off.Len() > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Bench",
			Value: strings.TrimSuffix(off.String(), "\n"),
		})
	}
	return fields
}

func shifts(n int) string {
	if n == 1 {
		return "1 shift"
	}
	return fmt.Sprintf("%d shifts", n)
}
