package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/thiswillbeyourgithub/tagwarden/internal/config"
	"github.com/thiswillbeyourgithub/tagwarden/internal/enricher"
	"github.com/thiswillbeyourgithub/tagwarden/internal/linkwarden"
	"github.com/thiswillbeyourgithub/tagwarden/internal/openai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	linkwardenClient := linkwarden.NewClient(cfg.LinkwardenBaseURL, cfg.LinkwardenToken)
	linkwardenClient.SetSearchPath(cfg.LinkwardenSearchPath)
	linkwardenClient.SetLinkPath(cfg.LinkwardenLinkPath)

	openaiClient := openai.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
	openaiClient.SetChatPath(cfg.OpenAIChatPath)

	e := enricher.New(linkwardenClient, openaiClient, log)

	if err := e.Run(); err != nil {
		log.Fatalf("Tagging run failed: %v", err)
	}
}
