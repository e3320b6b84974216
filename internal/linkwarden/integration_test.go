//go:build integration

package linkwarden

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
)

func TestIntegrationSearch(t *testing.T) {
	_ = godotenv.Load("../../.env")

	baseURL := os.Getenv("LINKWARDEN_BASE_URL")
	token := os.Getenv("LINKWARDEN_TOKEN")
	if baseURL == "" || token == "" {
		t.Skip("LINKWARDEN_BASE_URL or LINKWARDEN_TOKEN not set, skipping integration test")
	}

	client := NewClient(baseURL, token)

	links, ok, err := client.Search().Next()
	if err != nil {
		t.Fatalf("Failed to fetch first page: %v", err)
	}
	if !ok {
		t.Fatal("Expected at least one page from a live instance")
	}

	t.Logf("Fetched %d links from first page", len(links))
	for _, link := range links {
		if link.ID == 0 {
			t.Errorf("Link with zero id in response: %+v", link)
		}
	}
}
