package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractGitHubTopics returns the text of GitHub repository topic tags.
func extractGitHubTopics(doc *goquery.Document) []string {
	var topics []string
	seen := make(map[string]bool)
	doc.Find(".topic-tag").Each(func(_ int, sel *goquery.Selection) {
		topic := strings.TrimSpace(sel.Text())
		if topic == "" || seen[topic] {
			return
		}
		seen[topic] = true
		topics = append(topics, topic)
	})
	return topics
}
