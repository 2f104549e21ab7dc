// Package s3 implements blobstore.BlobStore for Amazon S3.
//
// Small blobs are written with a single PutObject carrying a CRC32C
// checksum. Blobs of at least UploadConfig.PartSize bytes go through the
// multipart upload manager.
//
// Usage:
//
//	store, err := s3.NewFromConfig(ctx, "my-bucket", "meshes/")
//	if err != nil {
//	    return err
//	}
//	err = sys.Save(ctx, store, "two-squares")
package s3
