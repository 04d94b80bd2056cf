package slackmsg

import (
	"context"

	"github.com/slack-go/slack"

	"github.com/igotm1lk/slackbot/internal/report"
)

// Poster posts follow-up messages via chat.postMessage with the bot token.
type Poster struct {
	client *slack.Client
}

func New(botToken string) *Poster {
	return &Poster{client: slack.New(botToken)}
}

func (p *Poster) PostReport(ctx context.Context, channelID string, msg report.Message) error {
	_, _, err := p.client.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(msg.Fallback, false),
		slack.MsgOptionBlocks(msg.Blocks...),
	)
	return err
}

func (p *Poster) PostText(ctx context.Context, channelID, text string) error {
	_, _, err := p.client.PostMessageContext(ctx, channelID, slack.MsgOptionText(text, false))
	return err
}
