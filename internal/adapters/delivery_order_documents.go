package adapters

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"wholesale_portal_backend/internal/adapters/storage"
	ordersvc "wholesale_portal_backend/internal/orders/service"
)

const deliveryOrderFolder = "delivery-orders"

// DeliveryOrderStore keeps rendered delivery orders in object storage.
type DeliveryOrderStore struct {
	storage storage.StorageService
	bucket  string
	now     func() time.Time
}

// NewDeliveryOrderStore creates a store writing to bucket.
func NewDeliveryOrderStore(svc storage.StorageService, bucket string) *DeliveryOrderStore {
	return &DeliveryOrderStore{storage: svc, bucket: bucket, now: time.Now}
}

// Save uploads the PDF under delivery-orders/{year}/{orderNumber}.pdf.
func (s *DeliveryOrderStore) Save(ctx context.Context, orderNumber string, pdf []byte) (string, error) {
	folder := fmt.Sprintf("%s/%d", deliveryOrderFolder, s.now().UTC().Year())
	key, err := s.storage.UploadFile(ctx, s.bucket, folder, orderNumber+".pdf", "application/pdf", bytes.NewReader(pdf), int64(len(pdf)))
	if err != nil {
		return "", fmt.Errorf("store delivery order %s: %w", orderNumber, err)
	}
	return key, nil
}

// DownloadURL presigns a stored delivery order.
func (s *DeliveryOrderStore) DownloadURL(ctx context.Context, key string) (string, time.Time, error) {
	presigned, err := s.storage.GenerateDownloadURL(ctx, s.bucket, key)
	if err != nil {
		return "", time.Time{}, err
	}
	return presigned.URL, presigned.ExpiresAt, nil
}

var _ ordersvc.DocumentStore = (*DeliveryOrderStore)(nil)
