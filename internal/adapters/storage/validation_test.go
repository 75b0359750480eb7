package storage

import "testing"

func TestValidateContentType(t *testing.T) {
	if err := validateContentType("application/pdf; charset=binary"); err != nil {
		t.Fatalf("expected pdf allowed, got %v", err)
	}
	if err := validateContentType("video/mp4"); err == nil {
		t.Fatal("expected video rejected")
	}
}

func TestValidateFileSize(t *testing.T) {
	if err := validateFileSize(0, 1024); err == nil {
		t.Fatal("expected empty file rejected")
	}
	if err := validateFileSize(2048, 1024); err == nil {
		t.Fatal("expected oversized file rejected")
	}
	if err := validateFileSize(2048, 0); err != nil {
		t.Fatalf("expected unlimited size accepted, got %v", err)
	}
}

func TestObjectKey(t *testing.T) {
	if got := ObjectKey("delivery-orders/2026", "../DO20260309-0042.pdf"); got != "delivery-orders/2026/DO20260309-0042.pdf" {
		t.Fatalf("unexpected key %q", got)
	}
}
