package discord

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/sideline/internal/services/match"
	"github.com/KirkDiggler/sideline/internal/timing"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	channelID string
	embeds    []*discordgo.MessageEmbed
	err       error
}

func (f *fakeSender) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.channelID = channelID
	f.embeds = append(f.embeds, embed)
	return &discordgo.Message{ChannelID: channelID}, nil
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(&Config{ChannelID: "c1"})
	assert.Error(t, err)

	_, err = New(&Config{Token: "token"})
	assert.Error(t, err)

	n, err := New(&Config{Token: "token", ChannelID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, "c1", n.channelID)
}

func TestNotifySendsEmbedToChannel(t *testing.T) {
	sender := &fakeSender{}
	n := &Notifier{sender: sender, channelID: "c1"}

	err := n.Notify(context.Background(), &match.Notification{
		Kind:    match.NotificationClockStarted,
		MatchID: "match-1",
		Period:  1,
	})
	require.NoError(t, err)

	assert.Equal(t, "c1", sender.channelID)
	require.Len(t, sender.embeds, 1)
	assert.Equal(t, "⏱️ Clock started, period 1", sender.embeds[0].Description)
}

func TestNotifyWrapsSendError(t *testing.T) {
	cause := errors.New("rate limited")
	n := &Notifier{sender: &fakeSender{err: cause}, channelID: "c1"}

	err := n.Notify(context.Background(), &match.Notification{Kind: match.NotificationClockStopped, MatchID: "match-1"})

	assert.ErrorIs(t, err, cause)
	assert.Error(t, n.Notify(context.Background(), nil))
}

func TestRenderChangesApplied(t *testing.T) {
	at := time.Date(2025, 4, 19, 9, 10, 0, 0, time.UTC)

	embed := renderNotification(&match.Notification{
		Kind:      match.NotificationChangesApplied,
		MatchID:   "match-1",
		MatchName: "U10 vs Rovers",
		Period:    2,
		Timestamp: at,
		Substitutions: []match.SubstitutionSummary{
			{InName: "Dee", OutName: "Ann", PositionID: "GK"},
		},
		Swaps: []match.SwapSummary{
			{Name: "Ben", FromPositionID: "DF", ToPositionID: "FW"},
			{Name: "Cal", FromPositionID: "FW", ToPositionID: "DF"},
			{Name: "Eli", ToPositionID: "GK"},
		},
	})

	assert.Equal(t, "U10 vs Rovers", embed.Title)
	assert.Equal(t, "2025-04-19T09:10:00Z", embed.Timestamp)
	assert.Equal(t, colorBlue, embed.Color)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "⬆️ Dee for ⬇️ Ann (GK)", embed.Fields[0].Value)
	assert.Equal(t, "Ben: DF → FW\nCal: FW → DF\nEli: GK", embed.Fields[1].Value)
}

func TestRenderPeriodTotals(t *testing.T) {
	embed := renderNotification(&match.Notification{
		Kind:    match.NotificationPeriodEnded,
		MatchID: "match-1",
		Period:  1,
		Players: []match.PlayerSummary{
			{Name: "Ann", IsOn: true, Shifts: 1, TotalTime: timing.Seconds(1200)},
			{Name: "Dee", IsOn: false, Shifts: 2, TotalTime: timing.Seconds(65)},
		},
	})

	assert.Equal(t, "Match match-1", embed.Title)
	assert.Empty(t, embed.Timestamp)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "On the field", embed.Fields[0].Name)
	assert.Equal(t, "Ann  20:00 (1 shift)", embed.Fields[0].Value)
	assert.Equal(t, "Bench", embed.Fields[1].Name)
	assert.Equal(t, "Dee  1:05 (2 shifts)", embed.Fields[1].Value)
}
