package osstore

import (
	"context"
	"errors"

	"github.com/opensearch-project/opensearch-go/v2"
)

var (
	ErrConnectionFailed  = errors.New("opensearch connection failed")
	ErrHealthcheckFailed = errors.New("opensearch healthcheck failed")
)

// Config holds the OpenSearch connection settings read from the environment.
type Config struct {
	Addresses  []string `env:"OPENSEARCH_ADDRESSES,required"`
	Username   string   `env:"OPENSEARCH_USERNAME"`
	Password   string   `env:"OPENSEARCH_PASSWORD"`
	MaxRetries int      `env:"OPENSEARCH_MAX_RETRIES" envDefault:"3"`
	IDField    string   `env:"OPENSEARCH_ID_FIELD" envDefault:"_id"`
}

// Connect creates a client and verifies the cluster answers.
func Connect(ctx context.Context, cfg Config) (*opensearch.Client, error) {
	client, err := opensearch.NewClient(opensearch.Config{
		Addresses:  cfg.Addresses,
		Username:   cfg.Username,
		Password:   cfg.Password,
		MaxRetries: cfg.MaxRetries,
	})
	if err != nil {
		return nil, errors.Join(ErrConnectionFailed, err)
	}
	res, err := client.Info(client.Info.WithContext(ctx))
	if err != nil {
		return nil, errors.Join(ErrHealthcheckFailed, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, errors.Join(ErrHealthcheckFailed, errors.New(res.String()))
	}
	return client, nil
}
