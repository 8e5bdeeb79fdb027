package filestorage

import (
	"bytes"
	"context"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	"io"
	"path"
	"recruit-portal/lib/backend/client"
)

const resumePrefix = "resumes"

type impl struct {
	s3client   *minio.Client
	bucketName string
	region     string
}

func NewInstance(s3client *minio.Client, bucketName, region string) {
	Instance = &impl{
		s3client:   s3client,
		bucketName: bucketName,
		region:     region,
	}
}

func (i impl) PutResume(ctx context.Context, file client.File) error {
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := i.s3client.PutObject(ctx, i.bucketName, i.objectName(file.Name), bytes.NewReader(file.Content), int64(len(file.Content)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrap(err, "ошибка сохранения резюме в S3")
	}
	return nil
}

func (i impl) GetResume(ctx context.Context, fileName string) (*client.File, bool, error) {
	object, err := i.s3client.GetObject(ctx, i.bucketName, i.objectName(fileName), minio.GetObjectOptions{})
	if err != nil {
		return nil, false, errors.Wrap(err, "ошибка получения резюме из S3")
	}
	defer object.Close()
	info, err := object.Stat()
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "ошибка получения резюме из S3")
	}
	content, err := io.ReadAll(object)
	if err != nil {
		return nil, false, errors.Wrap(err, "ошибка чтения резюме из S3")
	}
	return &client.File{
		Name:        fileName,
		ContentType: info.ContentType,
		Content:     content,
	}, true, nil
}

func (i impl) MakeBucket(ctx context.Context) error {
	exists, err := i.s3client.BucketExists(ctx, i.bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = i.s3client.MakeBucket(ctx, i.bucketName, minio.MakeBucketOptions{Region: i.region})
	if err != nil {
		return err
	}
	return nil
}

func (i impl) objectName(fileName string) string {
	return path.Join(resumePrefix, path.Base(fileName))
}
