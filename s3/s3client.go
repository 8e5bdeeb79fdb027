package s3client

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

// Options подключение к хранилищу копий резюме
type Options struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	Region          string
}

// Connect создает клиента и проверяет доступность хранилища
func Connect(ctx context.Context, opts Options) (*minio.Client, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKeyID, opts.SecretAccessKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка инициализации клиента S3")
	}
	if _, err = client.ListBuckets(ctx); err != nil {
		return client, errors.Wrap(err, "S3 недоступен")
	}
	return client, nil
}
