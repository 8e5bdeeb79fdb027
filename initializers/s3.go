package initializers

import (
	"context"
	"recruit-portal/config"
	filestorage "recruit-portal/lib/file-storage"
	s3client "recruit-portal/s3"

	log "github.com/sirupsen/logrus"
)

// InitS3 пустой endpoint отключает хранение копий резюме
func InitS3(ctx context.Context) {
	if config.Conf.S3.Endpoint == "" {
		log.Info("S3 не настроен, копии резюме не сохраняются")
		return
	}
	minioClient, err := s3client.Connect(ctx, s3client.Options{
		Endpoint:        config.Conf.S3.Endpoint,
		AccessKeyID:     config.Conf.S3.AccessKeyID,
		SecretAccessKey: config.Conf.S3.SecretAccessKey,
		UseSSL:          *config.Conf.S3.UseSSL,
		Region:          config.Conf.S3.Region,
	})
	if minioClient == nil {
		log.WithError(err).Error("копии резюме не сохраняются")
		return
	}
	if err != nil {
		log.WithError(err).Warn("S3 недоступен при старте, повторная попытка при первой загрузке")
	}

	filestorage.NewInstance(minioClient, config.Conf.S3.BucketName, config.Conf.S3.Region)
	if err = filestorage.Instance.MakeBucket(ctx); err != nil {
		log.WithError(err).Error("Ошибка создания бакета для резюме")
	}
	log.Info("S3 клиент успешно инициализирован")
}
