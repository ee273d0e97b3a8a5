package services

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/storage"
)

// StorageService uploads resume files to GCS. It is optional: with no
// bucket configured the upload is skipped and onboarding proceeds
// without a stored copy.
type StorageService struct {
	Client *storage.Client
	Bucket string
}

func NewStorageService(client *storage.Client, bucket string) *StorageService {
	return &StorageService{Client: client, Bucket: bucket}
}

func (s *StorageService) Enabled() bool {
	return s.Client != nil && s.Bucket != ""
}

// UploadResume stores the raw resume bytes under resumes/ and returns the
// gs:// path.
func (s *StorageService) UploadResume(ctx context.Context, userID, filename string, data []byte, contentType string) (string, error) {
	if !s.Enabled() {
		return "", nil
	}

	object := fmt.Sprintf("resumes/%s_%s", userID, filename)
	w := s.Client.Bucket(s.Bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	url := fmt.Sprintf("gs://%s/%s", s.Bucket, object)
	log.Printf("📁 Resume stored at %s", url)
	return url, nil
}
