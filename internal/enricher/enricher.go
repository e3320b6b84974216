package enricher

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/thiswillbeyourgithub/tagwarden/internal/linkwarden"
	"github.com/thiswillbeyourgithub/tagwarden/internal/openai"
)

// Enricher holds the clients for the Linkwarden and completion APIs.
type Enricher struct {
	LinkwardenClient *linkwarden.Client
	OpenAIClient     *openai.Client
	Log              *logrus.Logger
}

// New creates a new Enricher.
func New(linkwardenClient *linkwarden.Client, openaiClient *openai.Client, log *logrus.Logger) *Enricher {
	return &Enricher{
		LinkwardenClient: linkwardenClient,
		OpenAIClient:     openaiClient,
		Log:              log,
	}
}

// Run scans every link once, sequentially, and tags the untagged ones.
// Each run starts from cursor 0; links that already carry tags or were
// tagged by an earlier run are skipped, so re-running is a no-op for them.
// Any transport failure aborts the remaining links.
func (e *Enricher) Run() error {
	pager := e.LinkwardenClient.Search()
	for {
		links, ok, err := pager.Next()
		if err != nil {
			return fmt.Errorf("failed to fetch links: %w", err)
		}
		if !ok {
			break
		}

		for i := range links {
			if err := e.processLink(&links[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Enricher) processLink(link *linkwarden.Link) error {
	if link.AiTagged {
		return nil
	}
	if len(link.Tags) > 0 {
		return nil
	}

	tags, err := e.OpenAIClient.GenerateTags(textSource(link))
	if err != nil {
		return fmt.Errorf("failed to generate tags for link %d: %w", link.ID, err)
	}

	payload := linkwarden.BuildUpdatePayload(link, tags)
	if payload == nil {
		return nil
	}

	if err := e.LinkwardenClient.UpdateLink(payload); err != nil {
		return fmt.Errorf("failed to update link %d: %w", link.ID, err)
	}

	e.Log.WithFields(logrus.Fields{
		"link": link.ID,
		"tags": tags,
	}).Info("Updated link")

	return nil
}

// textSource picks the first non-empty text field to describe the link,
// preferring curated fields over the raw URL.
func textSource(link *linkwarden.Link) string {
	for _, candidate := range []string{link.Description, link.TextContent, link.Name, link.URL} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}
