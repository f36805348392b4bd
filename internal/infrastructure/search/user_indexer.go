// Package search mirrors created users into a search index.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-mcp-user-server/internal/domain/entity"
	"github.com/oksasatya/go-mcp-user-server/pkg/helpers"
)

// UserIndexer writes one document per user, keyed by user id.
type UserIndexer struct {
	es      *elasticsearch.Client
	index   string
	timeout time.Duration
}

func NewUserIndexer(es *elasticsearch.Client, index string) *UserIndexer {
	return &UserIndexer{es: es, index: index, timeout: 3 * time.Second}
}

type userDocument struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Age       int    `json:"age"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (x *UserIndexer) IndexUser(ctx context.Context, u *entity.User) error {
	if x == nil || x.es == nil || x.index == "" {
		return nil
	}
	b, err := json.Marshal(userDocument{
		ID:        u.ID().String(),
		Name:      u.Name().String(),
		Age:       u.Age().Int(),
		CreatedAt: helpers.FormatISO(u.CreatedAt()),
		UpdatedAt: helpers.FormatISO(u.UpdatedAt()),
	})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.index, DocumentID: u.ID().String(), Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index response error: %s", res.Status())
	}
	return nil
}
