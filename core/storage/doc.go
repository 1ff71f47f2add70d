// Package storage defines the blob storage abstraction used for product
// image data, with an in-memory implementation for tests and local
// development. The S3 implementation lives in integration/storage/s3.
//
// Basic usage:
//
//	import "github.com/freshmart/platform/core/storage"
//
//	var store storage.Storage = storage.NewMemoryStorage("https://cdn.test")
//
//	blob, err := store.Put(ctx, "images/abc.png", data, "image/png")
//	if err != nil {
//		return err
//	}
//	url := store.URL(blob.Key)
//
// Implementations classify failures into the sentinel errors declared in
// this package so callers can branch with errors.Is regardless of backend.
package storage
