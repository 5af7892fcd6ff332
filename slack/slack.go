// Package slack shares recipes to an incoming webhook as Block Kit messages.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"recipefinder"
)

var _ recipefinder.SlackClient = (*Client)(nil)

type Client struct {
	webhookURL string
	httpClient recipefinder.HTTPClient
}

func NewClient(webhookURL string, httpClient recipefinder.HTTPClient) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: httpClient,
	}
}

// Message is an incoming-webhook payload. Text is the notification fallback
// for clients that do not render blocks.
type Message struct {
	Channel string  `json:"channel,omitempty"`
	Text    string  `json:"text"`
	Blocks  []Block `json:"blocks,omitempty"`
}

type Block struct {
	Type      string `json:"type"`
	Text      *Text  `json:"text,omitempty"`
	Accessory *Image `json:"accessory,omitempty"`
	Elements  []Text `json:"elements,omitempty"`
}

type Text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type Image struct {
	Type     string `json:"type"`
	ImageURL string `json:"image_url"`
	AltText  string `json:"alt_text"`
}

// ShareRecipe posts r to channel. link, when set, points at the recipe's
// detail page.
func (c *Client) ShareRecipe(ctx context.Context, channel string, r recipefinder.Recipe, link string) error {
	return c.post(ctx, RecipeMessage(channel, r, link))
}

func (c *Client) post(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post to slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Webhooks explain rejections in a short plain-text body.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("slack rejected recipe: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return nil
}

// RecipeMessage lays r out as a header, a summary with the thumbnail, the
// ingredient list and a video link. Empty parts are left out.
func RecipeMessage(channel string, r recipefinder.Recipe, link string) Message {
	msg := Message{
		Channel: channel,
		Text:    "Recipe: " + r.Name,
		Blocks:  []Block{{Type: "header", Text: plain(r.Name)}},
	}

	var labels []string
	for _, l := range []string{r.Area, r.Category} {
		if l != "" {
			labels = append(labels, l)
		}
	}
	summary := strings.Join(labels, " · ")
	if link != "" {
		summary = strings.TrimSpace(summary + "\n<" + link + "|Open recipe>")
	}
	if summary != "" || r.Thumbnail != "" {
		if summary == "" {
			summary = r.Name
		}
		b := Block{Type: "section", Text: mrkdwn(summary)}
		if r.Thumbnail != "" {
			b.Accessory = &Image{Type: "image", ImageURL: r.Thumbnail, AltText: r.Name}
		}
		msg.Blocks = append(msg.Blocks, b)
	}

	if len(r.Ingredients) > 0 {
		var sb strings.Builder
		sb.WriteString("*Ingredients*")
		for _, ing := range r.Ingredients {
			sb.WriteString("\n• " + strings.TrimSpace(ing.Measure+" "+ing.Name))
		}
		msg.Blocks = append(msg.Blocks, Block{Type: "section", Text: mrkdwn(sb.String())})
	}

	if r.YouTube != "" {
		msg.Blocks = append(msg.Blocks, Block{
			Type:     "context",
			Elements: []Text{*mrkdwn("<" + r.YouTube + "|Watch on YouTube>")},
		})
	}
	return msg
}

func plain(s string) *Text  { return &Text{Type: "plain_text", Text: s} }
func mrkdwn(s string) *Text { return &Text{Type: "mrkdwn", Text: s} }
