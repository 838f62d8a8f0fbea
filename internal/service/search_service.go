package service

import (
	"html"
	"log"
	"strings"
	"time"

	"campusshare/internal/model"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

// SearchService maintains the secondary full-text index of resources.
// The REST listing endpoint stays on Postgres; the index serves the
// frontend's instant-search box.
type SearchService interface {
	IndexResource(resource *model.Resource) error
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

// cleanTextForIndex strips any markup from user-supplied text before it
// reaches the index. Titles and descriptions are expected to be plain
// text, but the index serves them back to every client.
func (s *searchService) cleanTextForIndex(content string) string {
	sanitized := s.sanitizer.Sanitize(content)
	cleanText := html.UnescapeString(sanitized)
	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *searchService) initIndexes() {
	filterableAttrs := []string{"subject", "semester", "type"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	_, err := s.client.Index("resources").UpdateFilterableAttributes(&filterableInterface)
	if err != nil {
		log.Printf("Failed to update resources filterable attributes: %v", err)
	}

	sortableAttrs := []string{"created_at", "download_count"}
	_, err = s.client.Index("resources").UpdateSortableAttributes(&sortableAttrs)
	if err != nil {
		log.Printf("Failed to update resources sortable attributes: %v", err)
	}
}

type resourceDocument struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Subject       string   `json:"subject"`
	Type          string   `json:"type"`
	Semester      int      `json:"semester"`
	Tags          []string `json:"tags"`
	DownloadCount int      `json:"download_count"`
	CreatedAt     int64    `json:"created_at"`
}

func (s *searchService) IndexResource(resource *model.Resource) error {
	doc := resourceDocument{
		ID:            resource.ID.String(),
		Title:         s.cleanTextForIndex(resource.Title),
		Subject:       resource.Subject,
		Type:          string(resource.Type),
		Semester:      resource.Semester,
		Tags:          []string(resource.Tags),
		DownloadCount: resource.DownloadCount,
		CreatedAt:     resource.CreatedAt.Unix(),
	}
	if resource.Description != nil {
		doc.Description = s.cleanTextForIndex(*resource.Description)
	}
	if doc.CreatedAt <= 0 {
		doc.CreatedAt = time.Now().Unix()
	}

	_, err := s.client.Index("resources").AddDocuments([]resourceDocument{doc}, strPtr("id"))
	return err
}

func strPtr(s string) *string {
	return &s
}
