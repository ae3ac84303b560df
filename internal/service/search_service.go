package service

import (
	"log"

	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"

	"ruangpendapat.com/forum/internal/model"
)

const postsIndex = "posts"

type PostDocument struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID string `json:"category_id,omitempty"`
	CreatedAt  int64  `json:"created_at"`
}

type SearchService interface {
	IndexPost(post *model.Post) error
	DeletePost(id string) error
	Search(query string, limit int) ([]string, error)
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

func (s *searchService) initIndexes() {
	filterableAttrs := []string{"category_id"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	if _, err := s.client.Index(postsIndex).UpdateFilterableAttributes(&filterableInterface); err != nil {
		log.Printf("Failed to update posts filterable attributes: %v", err)
	}

	sortable := []string{"created_at"}
	if _, err := s.client.Index(postsIndex).UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("Failed to update posts sortable attributes: %v", err)
	}
}

func (s *searchService) IndexPost(post *model.Post) error {
	doc := PostDocument{
		ID:        post.ID.String(),
		Title:     s.sanitizer.Sanitize(post.Title),
		Content:   s.sanitizer.Sanitize(post.Content),
		CreatedAt: post.CreatedAt.Unix(),
	}
	if post.CategoryID != nil {
		doc.CategoryID = post.CategoryID.String()
	}

	_, err := s.client.Index(postsIndex).AddDocuments([]PostDocument{doc}, strPtr("id"))
	return err
}

func strPtr(s string) *string {
	return &s
}

func (s *searchService) DeletePost(id string) error {
	_, err := s.client.Index(postsIndex).DeleteDocument(id)
	return err
}

// Search returns matching post IDs; the caller hydrates them from the store.
func (s *searchService) Search(query string, limit int) ([]string, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	res, err := s.client.Index(postsIndex).Search(query, &meilisearch.SearchRequest{
		Limit: int64(limit),
	})
	if err != nil {
		return nil, err
	}

	return idsFromHits(res.Hits), nil
}

func idsFromHits(hits meilisearch.Hits) []string {
	ids := make([]string, 0, len(hits))
	for _, hit := range hits {
		var doc PostDocument
		if err := hit.Decode(&doc); err != nil {
			log.Printf("Failed to decode search hit: %v", err)
			continue
		}
		if doc.ID != "" {
			ids = append(ids, doc.ID)
		}
	}
	return ids
}
