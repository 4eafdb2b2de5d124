// SPDX-License-Identifier: EPL-2.0

// Package fetch retrieves encoded audio by source string.
//
// Default serves local paths and http(s) URLs. S3 objects are added with
// an explicitly built fetcher, since they need AWS credentials:
//
//	mux := fetch.Default()
//	s3f, err := fetch.NewS3(ctx)
//	if err == nil {
//	    mux.Handle("s3", s3f)
//	}
//	data, err := mux.Fetch(ctx, "s3://sounds/laser.ogg")
//
// Every fetcher enforces a payload size limit, DefaultMaxSize unless set.
package fetch
