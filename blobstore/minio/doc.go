// Package minio implements blobstore.BlobStore for MinIO and other
// S3-compatible object stores.
//
// Usage:
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    return err
//	}
//	store := minioblob.NewStore(client, "meshes", "runs/")
//	err = sys.Save(ctx, store, "two-squares")
package minio
