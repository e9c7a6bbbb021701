package config

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/service/storage"
)

// Storage holds CLI flags for the Cloud Storage blob store
type Storage struct {
	enabled         bool
	credentialsPath string
}

// Flags returns CLI flags for storage configuration
func (s *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "storage-enabled",
			Usage:       "Enable uploads and signed URL generation for Cloud Storage objects",
			Value:       true,
			Sources:     cli.EnvVars("GEMLEDGER_STORAGE_ENABLED"),
			Destination: &s.enabled,
		},
		&cli.StringFlag{
			Name:        "storage-credentials",
			Usage:       "Path to a service account key JSON for URL signing (defaults to ADC)",
			Sources:     cli.EnvVars("GEMLEDGER_STORAGE_CREDENTIALS"),
			Destination: &s.credentialsPath,
		},
	}
}

// Configure builds the blob store. Returns nil when storage features are
// disabled; the upload and signed URL endpoints then reject requests.
func (s *Storage) Configure(ctx context.Context) (interfaces.BlobStore, error) {
	if !s.enabled {
		return nil, nil
	}

	var opts []storage.Option
	if s.credentialsPath != "" {
		data, err := os.ReadFile(s.credentialsPath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read storage credentials",
				goerr.V("path", s.credentialsPath))
		}
		opts = append(opts, storage.WithCredentialsJSON(data))
	}

	store, err := storage.New(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure blob store")
	}
	return store, nil
}
