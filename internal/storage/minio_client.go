package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"studorgCPT/internal/config"

	"github.com/google/uuid"
)

// UploadFile - один файл из multipart формы, уже вычитанный в память
type UploadFile struct {
	Name string
	Data []byte
}

type Storage interface {
	UploadImage(ctx context.Context, folder string, file UploadFile) (string, error)
	UploadMultiple(ctx context.Context, folder string, files []UploadFile) ([]string, error)
	DeleteByURL(ctx context.Context, imageURL string) error
}

type MinIOClient struct {
	client *minio.Client
	config *config.Config

	// подменяется в тестах; в работе всегда UploadImage
	upload func(ctx context.Context, folder string, file UploadFile) (string, error)
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания клиента MinIO: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinIO.BucketName)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки bucket: %w", err)
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIO.BucketName, minio.MakeBucketOptions{Region: cfg.MinIO.Region})
		if err != nil {
			return nil, fmt.Errorf("ошибка создания bucket: %w", err)
		}
	}

	return &MinIOClient{client: client, config: cfg}, nil
}

// transform приводит изображение к границам из конфига и перекодирует в JPEG.
// Не-изображения отклоняются на этом шаге.
func (m *MinIOClient) transform(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("файл не является изображением: %w", err)
	}

	maxW := m.config.Image.MaxWidth
	maxH := m.config.Image.MaxHeight
	if img.Bounds().Dx() > maxW || img.Bounds().Dy() > maxH {
		img = imaging.Fit(img, maxW, maxH, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	err = imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(m.config.Image.JPEGQuality))
	if err != nil {
		return nil, fmt.Errorf("ошибка перекодирования изображения: %w", err)
	}

	return buf.Bytes(), nil
}

func (m *MinIOClient) UploadImage(ctx context.Context, folder string, file UploadFile) (string, error) {
	transformed, err := m.transform(file.Data)
	if err != nil {
		return "", err
	}

	now := time.Now()
	objectName := fmt.Sprintf("%s/%d/%02d/%s.jpg",
		folder,
		now.Year(),
		now.Month(),
		uuid.New().String())

	_, err = m.client.PutObject(ctx, m.config.MinIO.BucketName, objectName,
		bytes.NewReader(transformed), int64(len(transformed)),
		minio.PutObjectOptions{
			ContentType: "image/jpeg",
			UserMetadata: map[string]string{
				"original-filename": file.Name,
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки в MinIO: %w", err)
	}

	imageURL := fmt.Sprintf("%s/%s/%s",
		strings.TrimSuffix(m.config.MinIO.PublicURL, "/"),
		m.config.MinIO.BucketName,
		objectName)

	return imageURL, nil
}

// UploadMultiple загружает файлы конкурентно. Если часть загрузок упала,
// упавшие повторяются по одному; операция успешна, пока успешен хотя бы
// один файл.
func (m *MinIOClient) UploadMultiple(ctx context.Context, folder string, files []UploadFile) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	upload := m.upload
	if upload == nil {
		upload = m.UploadImage
	}

	urls := make([]string, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i := range files {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			urls[i], errs[i] = upload(ctx, folder, files[i])
		}(i)
	}
	wg.Wait()

	// повторная попытка по одному для упавших
	for i := range files {
		if errs[i] != nil {
			urls[i], errs[i] = upload(ctx, folder, files[i])
		}
	}

	result := make([]string, 0, len(files))
	var lastErr error
	for i := range files {
		if errs[i] != nil {
			log.Printf("Предупреждение: не удалось загрузить файл %s: %v", files[i].Name, errs[i])
			lastErr = errs[i]
			continue
		}
		result = append(result, urls[i])
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("не удалось загрузить ни одного файла: %w", lastErr)
	}

	return result, nil
}

// DeleteByURL выводит имя объекта из публичного URL и удаляет его.
// Вызывающая сторона сама решает, игнорировать ли ошибку (best-effort).
func (m *MinIOClient) DeleteByURL(ctx context.Context, imageURL string) error {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return fmt.Errorf("неверный формат URL изображения: %w", err)
	}

	path := strings.TrimPrefix(parsed.Path, "/")
	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 || parts[0] != m.config.MinIO.BucketName {
		return fmt.Errorf("URL не принадлежит bucket %s: %s", m.config.MinIO.BucketName, imageURL)
	}
	objectName := parts[1]

	err = m.client.RemoveObject(ctx, m.config.MinIO.BucketName, objectName,
		minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("ошибка удаления из MinIO: %w", err)
	}

	return nil
}
