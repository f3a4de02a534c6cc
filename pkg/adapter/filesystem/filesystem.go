// Copyright 2026 SGNL.ai, Inc.

// Package filesystem is the FileSystem adapter family of spec.md §4.2,
// grounded on the teacher's pkg/aws-s3: a bucket-scoped S3Handler built
// from aws-sdk-go-v2's s3.Client with static credentials, HeadObject for
// existence checks and GetObject for reads, generalized from the
// teacher's single-file-per-entity ingestion model to the general
// ReadFile/WriteFile/ListDirectory primitives adapter.FileSystemAdapter
// requires. "Directory" is simulated the S3 way: a key prefix ending in
// "/".
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dc-api-x/dcapix/pkg/dcerrors"
)

// Config configures a FileSystem adapter connection.
type Config struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
}

// Adapter implements adapter.FileSystemAdapter over an S3 bucket,
// grounded on the teacher's S3Handler.
type Adapter struct {
	cfg    Config
	client *s3.Client
}

// New constructs an Adapter. Connect must be called before use.
func New(cfg Config) *Adapter {
	return &Adapter{cfg: cfg}
}

func (a *Adapter) Connect(ctx context.Context) error {
	if a.client != nil {
		return nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(a.cfg.Region))
	if err != nil {
		return dcerrors.NewApiConnectionError("failed to load AWS config", err)
	}

	if a.cfg.AccessKey != "" {
		cfg.Credentials = credentials.NewStaticCredentialsProvider(a.cfg.AccessKey, a.cfg.SecretKey, "")
	}

	a.client = s3.NewFromConfig(cfg)

	return nil
}

func (a *Adapter) Disconnect(context.Context) error {
	a.client = nil

	return nil
}

func (a *Adapter) IsConnected() bool {
	return a.client != nil
}

// SetOption is a no-op; the filesystem adapter takes all configuration
// through Config at construction time.
func (a *Adapter) SetOption(string, any) {}

func (a *Adapter) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := a.requireConnected(); err != nil {
		return nil, err
	}

	key := strings.TrimPrefix(path, "/")

	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(a.cfg.Bucket), Key: aws.String(key)})
	if err != nil {
		return nil, translateS3Error("read_file", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, dcerrors.NewApiError("read_file", fmt.Sprintf("failed to read object body: %v", err))
	}

	return data, nil
}

func (a *Adapter) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := a.requireConnected(); err != nil {
		return err
	}

	key := strings.TrimPrefix(path, "/")

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(a.cfg.Bucket),
		Key:    aws.String(key),
		Body:   strings.NewReader(string(data)),
	})
	if err != nil {
		return translateS3Error("write_file", err)
	}

	return nil
}

func (a *Adapter) DeleteFile(ctx context.Context, path string) error {
	if err := a.requireConnected(); err != nil {
		return err
	}

	key := strings.TrimPrefix(path, "/")

	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: aws.String(a.cfg.Bucket), Key: aws.String(key)})
	if err != nil {
		return translateS3Error("delete_file", err)
	}

	return nil
}

// ListDirectory lists keys under path treated as a prefix, per S3's
// "directories are key prefixes" convention.
func (a *Adapter) ListDirectory(ctx context.Context, path string) ([]string, error) {
	if err := a.requireConnected(); err != nil {
		return nil, err
	}

	prefix := normalizeDirPrefix(path)

	out, err := a.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(a.cfg.Bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return nil, translateS3Error("list_directory", err)
	}

	names := make([]string, 0, len(out.Contents))
	for _, obj := range out.Contents {
		names = append(names, strings.TrimPrefix(aws.ToString(obj.Key), prefix))
	}

	return names, nil
}

// CreateDirectory writes a zero-byte marker object at the prefix, the
// common S3 convention for representing an otherwise-implicit directory.
func (a *Adapter) CreateDirectory(ctx context.Context, path string) error {
	if err := a.requireConnected(); err != nil {
		return err
	}

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(a.cfg.Bucket),
		Key:    aws.String(normalizeDirPrefix(path)),
		Body:   strings.NewReader(""),
	})
	if err != nil {
		return translateS3Error("create_directory", err)
	}

	return nil
}

func (a *Adapter) DeleteDirectory(ctx context.Context, path string, recursive bool) error {
	if err := a.requireConnected(); err != nil {
		return err
	}

	prefix := normalizeDirPrefix(path)

	if !recursive {
		_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: aws.String(a.cfg.Bucket), Key: aws.String(prefix)})
		if err != nil {
			return translateS3Error("delete_directory", err)
		}

		return nil
	}

	names, err := a.ListDirectory(ctx, path)
	if err != nil {
		return err
	}

	for _, name := range names {
		if err := a.DeleteFile(ctx, prefix+name); err != nil {
			return err
		}
	}

	return nil
}

// Exists checks whether path names an object, grounded on the teacher's
// S3Handler.FileExists HeadObject/403/404 handling.
func (a *Adapter) Exists(ctx context.Context, path string) (bool, error) {
	if err := a.requireConnected(); err != nil {
		return false, err
	}

	key := strings.TrimPrefix(path, "/")

	_, err := a.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: aws.String(a.cfg.Bucket), Key: aws.String(key)})
	if err == nil {
		return true, nil
	}

	if isNotFound(err) {
		return false, nil
	}

	return false, translateS3Error("exists", err)
}

func (a *Adapter) IsFile(ctx context.Context, path string) (bool, error) {
	return a.Exists(ctx, path)
}

func (a *Adapter) IsDirectory(ctx context.Context, path string) (bool, error) {
	names, err := a.ListDirectory(ctx, path)
	if err != nil {
		return false, err
	}

	return len(names) > 0, nil
}

func (a *Adapter) requireConnected() error {
	if a.client == nil {
		return dcerrors.NewApiConnectionError("filesystem adapter is not connected", nil)
	}

	return nil
}

func normalizeDirPrefix(path string) string {
	p := strings.TrimPrefix(path, "/")
	if p != "" && !strings.HasSuffix(p, "/") {
		p += "/"
	}

	return p
}

func isNotFound(err error) bool {
	var respErr *awshttp.ResponseError

	return errors.As(err, &respErr) && respErr.Response.StatusCode == http.StatusNotFound
}

func translateS3Error(operation string, err error) error {
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.Response.StatusCode {
		case http.StatusForbidden:
			return dcerrors.NewAuthenticationError(fmt.Sprintf("%s: missing permissions", operation))
		case http.StatusNotFound:
			return dcerrors.NewApiError(operation, "object does not exist")
		}
	}

	return dcerrors.NewApiConnectionError(operation+" failed", err)
}
