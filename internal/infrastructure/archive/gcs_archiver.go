// Package archive sube los artefactos de cada corrida (PDF y resumen JSON).
package archive

import (
	"context"
	"fmt"
	"path"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/kemaxx/InventoryInsights/internal/application/ports"
	"github.com/kemaxx/InventoryInsights/internal/domain"
)

var _ ports.ReportArchiver = (*GCSArchiver)(nil)

// GCSArchiver guarda objetos en un bucket de Cloud Storage bajo un prefijo.
type GCSArchiver struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSArchiver crea el cliente. Sin credenciales usa ADC (GOOGLE_APPLICATION_CREDENTIALS).
func NewGCSArchiver(ctx context.Context, bucket, prefix, credentialsFile string) (*GCSArchiver, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, domain.External("gcs", "new client", err)
	}
	return &GCSArchiver{client: client, bucket: bucket, prefix: prefix}, nil
}

// Archive escribe data en gs://bucket/prefix/name y devuelve esa URL.
func (a *GCSArchiver) Archive(ctx context.Context, name, contentType string, data []byte) (string, error) {
	object := path.Join(a.prefix, name)
	wc := a.client.Bucket(a.bucket).Object(object).NewWriter(ctx)
	wc.ContentType = contentType

	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return "", domain.External("gcs", "write "+object, err)
	}
	if err := wc.Close(); err != nil {
		return "", domain.External("gcs", "close "+object, err)
	}
	return fmt.Sprintf("gs://%s/%s", a.bucket, object), nil
}

// Close libera el cliente.
func (a *GCSArchiver) Close() error {
	return a.client.Close()
}
