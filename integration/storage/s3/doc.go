// Package s3 implements the storage.Storage interface on Amazon S3 and
// S3-compatible services (MinIO, DigitalOcean Spaces, Wasabi) using the
// AWS SDK v2. Product images validated by the catalog land here.
//
// Basic usage:
//
//	import "github.com/freshmart/platform/integration/storage/s3"
//
//	cfg := s3.Config{
//		Bucket:      "freshmart-product-images",
//		Region:      "us-east-1",
//		AccessKeyID: "AKIA...", // optional, IAM roles used when empty
//		SecretKey:   "...",
//	}
//
//	store, err := s3.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//
//	blob, err := store.Put(ctx, "images/abc.png", data, "image/png")
//	url := store.URL(blob.Key)
//
// MinIO and other S3-compatible services set Endpoint and ForcePathStyle:
//
//	cfg := s3.Config{
//		Bucket:         "freshmart",
//		Region:         "us-east-1",
//		Endpoint:       "http://localhost:9000",
//		ForcePathStyle: true,
//	}
//
// Failures are classified into the core/storage sentinel errors, so
// callers branch with errors.Is regardless of backend.
package s3
