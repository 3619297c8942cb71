// internal/store/theme_search.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	enginerrors "monetization-engine/internal/common/errors"
	"monetization-engine/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// ThemeSearch implements filtered theme listing against an Elasticsearch
// index. It satisfies the read half of the theme port for callers that need
// ranked, paginated discovery queries instead of primary-store reads.
type ThemeSearch struct {
	client *elasticsearch.Client
	index  string
}

func NewThemeSearch(client *elasticsearch.Client, index string) *ThemeSearch {
	return &ThemeSearch{client: client, index: index}
}

var searchSortFields = map[string]string{
	"name":              "name.keyword",
	"marketSize":        "marketSize",
	"monetizationScore": "monetizationScore",
	"createdAt":         "createdAt",
	"updatedAt":         "updatedAt",
}

// GetMany runs the filter as a bool query and returns the matching themes.
func (s *ThemeSearch) GetMany(ctx context.Context, filter models.ThemeFilter) ([]models.Theme, error) {
	if s.index == "" {
		return nil, enginerrors.NewSearchQueryError("", fmt.Errorf("index name is required"))
	}

	body, err := json.Marshal(buildThemeSearchQuery(filter))
	if err != nil {
		return nil, enginerrors.NewSearchQueryError(s.index, err)
	}

	size := filter.Limit
	if size <= 0 {
		size = 20
	}
	from := filter.Offset

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  strings.NewReader(string(body)),
		From:  &from,
		Size:  &size,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, enginerrors.NewSearchQueryError(s.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, enginerrors.NewSearchQueryError(s.index, fmt.Errorf("search returned %s", res.Status()))
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source models.Theme `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, enginerrors.NewSearchQueryError(s.index, err)
	}

	themes := make([]models.Theme, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		themes = append(themes, hit.Source)
	}
	return themes, nil
}

// buildThemeSearchQuery assembles the bool query for a filter. Term filters
// for the enum fields, range filters for score and market size.
func buildThemeSearchQuery(filter models.ThemeFilter) map[string]interface{} {
	filterClauses := []interface{}{}

	if filter.Category != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"category": filter.Category},
		})
	}
	if filter.CompetitionLevel != nil {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"competitionLevel": string(*filter.CompetitionLevel)},
		})
	}
	if filter.TechnicalDifficulty != nil {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"technicalDifficulty": string(*filter.TechnicalDifficulty)},
		})
	}

	if scoreRange := rangeClause(filter.MinScore, filter.MaxScore); scoreRange != nil {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{"monetizationScore": scoreRange},
		})
	}
	if sizeRange := rangeClause(filter.MinMarketSize, filter.MaxMarketSize); sizeRange != nil {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{"marketSize": sizeRange},
		})
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": filterClauses,
			},
		},
	}

	if sortField, ok := searchSortFields[filter.SortBy]; ok {
		order := "desc"
		if strings.EqualFold(filter.SortOrder, "asc") {
			order = "asc"
		}
		query["sort"] = []interface{}{
			map[string]interface{}{sortField: map[string]interface{}{"order": order}},
		}
	}
	return query
}

func rangeClause(min, max *float64) map[string]interface{} {
	if min == nil && max == nil {
		return nil
	}
	clause := map[string]interface{}{}
	if min != nil {
		clause["gte"] = *min
	}
	if max != nil {
		clause["lte"] = *max
	}
	return clause
}
