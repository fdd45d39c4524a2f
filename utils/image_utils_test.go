package utils

import "testing"

func TestExtractObjectPathPublicURL(t *testing.T) {
	path, err := ExtractObjectPath("https://storage.googleapis.com/my-bucket/stores/s1/uploads/products/u1/1-a.jpg", "my-bucket")
	if err != nil {
		t.Fatal(err)
	}
	if path != "stores/s1/uploads/products/u1/1-a.jpg" {
		t.Errorf("unexpected path %q", path)
	}
}

func TestExtractObjectPathDownloadURL(t *testing.T) {
	raw := "https://firebasestorage.googleapis.com/v0/b/my-bucket/o/stores%2Fs1%2Fuploads%2Fproducts%2Fu1%2F1-a.jpg?alt=media&token=abc"
	path, err := ExtractObjectPath(raw, "my-bucket")
	if err != nil {
		t.Fatal(err)
	}
	if path != "stores/s1/uploads/products/u1/1-a.jpg" {
		t.Errorf("unexpected path %q", path)
	}
}

func TestExtractObjectPathRejects(t *testing.T) {
	tests := []string{
		"https://example.com/my-bucket/products/image.jpg",
		"https://storage.googleapis.com/nobucket",
		"https://storage.googleapis.com/other-bucket/products/image.jpg",
		"http://storage.googleapis.com/my-bucket/products/image.jpg",
		"https://firebasestorage.googleapis.com/v1/my-bucket/x",
		"/image0.jpeg",
	}
	for _, raw := range tests {
		if _, err := ExtractObjectPath(raw, "my-bucket"); err == nil {
			t.Errorf("expected %q to be rejected", raw)
		}
	}
}

func TestExtractObjectPathAnyBucket(t *testing.T) {
	path, err := ExtractObjectPath("https://storage.googleapis.com/whatever/a/b.png", "")
	if err != nil || path != "a/b.png" {
		t.Fatalf("expected a/b.png, got %q err=%v", path, err)
	}
}
