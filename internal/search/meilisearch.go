// Package search mirrors the property catalogue into a Meilisearch index
// so listings can be searched with typo tolerance and relevance ranking.
package search

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/meilisearch/meilisearch-go"

	"github.com/mesh-intelligence/propai/pkg/types"
)

// DefaultIndex is the index uid used for properties.
const DefaultIndex = "properties"

// Client wraps a Meilisearch index holding properties keyed by id.
type Client struct {
	client *meilisearch.Client
	index  string
}

// NewClient returns a client for the properties index on host.
func NewClient(host, apiKey string) *Client {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})
	return &Client{client: client, index: DefaultIndex}
}

// InitIndex creates the index and configures its attributes.
func (s *Client) InitIndex() error {
	_, err := s.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        s.index,
		PrimaryKey: "id",
	})
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		return err
	}

	idx := s.client.Index(s.index)
	if _, err := idx.UpdateSearchableAttributes(&[]string{
		"title",
		"location",
		"description",
		"type",
	}); err != nil {
		return err
	}
	if _, err := idx.UpdateFilterableAttributes(&[]string{
		"featured",
		"type",
		"bedrooms",
	}); err != nil {
		return err
	}
	if _, err := idx.UpdateSortableAttributes(&[]string{
		"createdAt",
		"bedrooms",
	}); err != nil {
		return err
	}
	return nil
}

// Put indexes or replaces one property.
func (s *Client) Put(p types.Property) error {
	_, err := s.client.Index(s.index).AddDocuments([]types.Property{p})
	return err
}

// PutAll indexes many properties in one task.
func (s *Client) PutAll(properties []types.Property) error {
	if len(properties) == 0 {
		return nil
	}
	_, err := s.client.Index(s.index).AddDocuments(properties)
	return err
}

// Remove deletes a property from the index.
func (s *Client) Remove(id string) error {
	_, err := s.client.Index(s.index).DeleteDocument(id)
	return err
}

// Search returns up to limit properties ranked by Meilisearch.
func (s *Client) Search(query string, limit int64) ([]types.Property, error) {
	if limit <= 0 {
		limit = 20
	}
	res, err := s.client.Index(s.index).Search(query, &meilisearch.SearchRequest{Limit: limit})
	if err != nil {
		return nil, err
	}
	out := make([]types.Property, 0, len(res.Hits))
	for _, hit := range res.Hits {
		p, err := propertyFromHit(hit)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// propertyFromHit decodes a hit, which arrives as a generic JSON map.
func propertyFromHit(hit any) (types.Property, error) {
	var p types.Property
	raw, err := json.Marshal(hit)
	if err != nil {
		return p, fmt.Errorf("encoding hit: %w", err)
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("decoding hit: %w", err)
	}
	return p, nil
}
