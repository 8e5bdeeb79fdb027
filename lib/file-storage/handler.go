package filestorage

import (
	"context"
	"recruit-portal/lib/backend/client"
)

// Provider копии резюме кандидатов в S3
type Provider interface {
	PutResume(ctx context.Context, file client.File) error
	// GetResume found=false, если копии нет
	GetResume(ctx context.Context, fileName string) (file *client.File, found bool, err error)
	MakeBucket(ctx context.Context) error
}

var Instance Provider
