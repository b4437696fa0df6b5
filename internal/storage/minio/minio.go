// minio предоставляет реализацию storage.ImageStorage на базе MinIO/S3:
// сохранение и удаление изображений номеров с валидацией типа и размера.
package minio

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"hotel-admin-service/internal/config"
	"hotel-admin-service/internal/storage"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ImageStorage — адаптер MinIO для изображений номеров.
type ImageStorage struct {
	cfg     config.S3Config
	uploads config.UploadsConfig
	client  *mclient.Client
}

// New создает и инициализирует клиент MinIO.
// Делает endpoint-перенастройку (убирает схему), подбирает Secure по схеме
// и выполняет fail-fast-проверку доступности бакета.
func New(ctx context.Context, cfg config.S3Config, uploads config.UploadsConfig) (*ImageStorage, error) {
	const op = "storage/minio/New"

	endpoint := cfg.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.RootUser, cfg.RootPassword, ""),
		Secure: secure,
	})

	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist", op, cfg.Bucket)
	}

	return &ImageStorage{cfg: cfg, uploads: uploads, client: client}, nil
}

// SaveObject сохраняет изображение и возвращает его публичный URL.
// Недопустимый тип или размер — storage.ErrInvalidUpload; границы
// задаются конфигом.
func (s *ImageStorage) SaveObject(ctx context.Context, key, contentType string, data []byte) (string, error) {
	const op = "storage/minio/SaveObject"

	if int64(len(data)) == 0 || int64(len(data)) > s.uploads.MaxSizeBytes {
		return "", fmt.Errorf("%s: %w", op, storage.ErrInvalidUpload)
	}

	if !isAllowedContentType(s.uploads.AllowedContentTypes, contentType) {
		return "", fmt.Errorf("%s: %w", op, storage.ErrInvalidUpload)
	}

	_, err := s.client.PutObject(ctx, s.cfg.Bucket, key, bytes.NewReader(data), int64(len(data)),
		mclient.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return s.publicURL(key), nil
}

// RemoveObject удаляет объект по ключу.
func (s *ImageStorage) RemoveObject(ctx context.Context, key string) error {
	const op = "storage/minio/RemoveObject"

	if err := s.client.RemoveObject(ctx, s.cfg.Bucket, key, mclient.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// publicURL строит публичную ссылку на объект: PublicURL из конфига,
// иначе endpoint/bucket/key.
func (s *ImageStorage) publicURL(key string) string {
	base := strings.TrimRight(s.cfg.PublicURL, "/")
	if base == "" {
		base = strings.TrimRight(s.cfg.Endpoint, "/") + "/" + s.cfg.Bucket
	}

	return base + "/" + key
}

func isAllowedContentType(allowed []string, contentType string) bool {
	for _, t := range allowed {
		if strings.EqualFold(strings.TrimSpace(t), contentType) {
			return true
		}
	}

	return false
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.ImageStorage = (*ImageStorage)(nil)
