// Package osstore implements [fieldschema.Store] on OpenSearch. Entities are
// index names; lookups are term queries, so compared fields should be
// mapped as keyword or numeric. Declared types come from the field mapping.
package osstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Gobd/fieldschema"
	"github.com/Gobd/fieldschema/store"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
)

// ErrRequestFailed wraps error responses from the cluster.
var ErrRequestFailed = errors.New("opensearch request failed")

// Store queries indices through t, normally an *opensearch.Client.
type Store struct {
	t       opensearchapi.Transport
	idField string
}

// New returns a store. Documents are identified by idField, their "_id"
// when empty.
func New(t opensearchapi.Transport, idField string) *Store {
	if idField == "" {
		idField = "_id"
	}
	return &Store{t: t, idField: idField}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string         `json:"_id"`
			Source map[string]any `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// LookupByField implements [fieldschema.Store].
func (s *Store) LookupByField(ctx context.Context, entity, field string, value any) (any, bool, error) {
	query := map[string]any{
		"size":  1,
		"query": map[string]any{"term": map[string]any{field: store.Param(value)}},
	}
	if s.idField == "_id" {
		query["_source"] = false
	} else {
		query["_source"] = []string{s.idField}
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, false, err
	}

	req := opensearchapi.SearchRequest{
		Index: []string{entity},
		Body:  strings.NewReader(string(body)),
	}
	var out searchResponse
	if err := s.do(ctx, req, &out); err != nil {
		return nil, false, fmt.Errorf("osstore: lookup %s.%s: %w", entity, field, err)
	}
	if len(out.Hits.Hits) == 0 {
		return nil, false, nil
	}
	hit := out.Hits.Hits[0]
	if s.idField == "_id" {
		return hit.ID, true, nil
	}
	return hit.Source[s.idField], true, nil
}

type fieldMappingResponse map[string]struct {
	Mappings map[string]struct {
		Mapping map[string]struct {
			Type string `json:"type"`
		} `json:"mapping"`
	} `json:"mappings"`
}

// DeclaredType implements [fieldschema.Store]. Unmapped fields have an
// empty type.
func (s *Store) DeclaredType(ctx context.Context, entity, field string) (fieldschema.StoreType, error) {
	req := opensearchapi.IndicesGetFieldMappingRequest{
		Index:  []string{entity},
		Fields: []string{field},
	}
	var out fieldMappingResponse
	if err := s.do(ctx, req, &out); err != nil {
		return "", fmt.Errorf("osstore: declared type %s.%s: %w", entity, field, err)
	}
	leaf := field[strings.LastIndexByte(field, '.')+1:]
	for _, idx := range out {
		if m, ok := idx.Mappings[field]; ok {
			return store.NativeType(m.Mapping[leaf].Type), nil
		}
	}
	return "", nil
}

type request interface {
	Do(ctx context.Context, t opensearchapi.Transport) (*opensearchapi.Response, error)
}

func (s *Store) do(ctx context.Context, req request, out any) error {
	res, err := req.Do(ctx, s.t)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("%w: %s %s", ErrRequestFailed, http.StatusText(res.StatusCode), msg)
	}
	return json.NewDecoder(res.Body).Decode(out)
}
