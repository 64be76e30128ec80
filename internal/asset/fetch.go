package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// FetchConfig configures where asset bytes come from.
type FetchConfig struct {
	Root        string
	HTTPTimeout time.Duration
	S3          S3Config
}

// S3Config configures s3:// references.
type S3Config struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// objectGetter is the subset of *s3.Client the fetcher uses.
type objectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Fetcher opens the byte stream behind a Ref. File references are returned
// as a path so the decoder can resolve sibling buffers of .gltf files.
type Fetcher struct {
	cfg  FetchConfig
	http *http.Client

	s3Once sync.Once
	s3     objectGetter
	s3Err  error
}

// NewFetcher creates a fetcher.
func NewFetcher(cfg FetchConfig) *Fetcher {
	return &Fetcher{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

// Path resolves a file reference against the configured root.
func (f *Fetcher) Path(ref Ref) (string, error) {
	p := ref.URL()
	if ref.Scheme() == "file" && strings.HasPrefix(p, "file://") {
		u, err := url.Parse(p)
		if err != nil {
			return "", fmt.Errorf("parsing %s: %w", p, err)
		}
		p = u.Path
	}
	if !filepath.IsAbs(p) && f.cfg.Root != "" {
		p = filepath.Join(f.cfg.Root, p)
	}
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		return "", err
	}
	return p, nil
}

// Open returns a reader over a remote reference's content.
func (f *Fetcher) Open(ctx context.Context, ref Ref) (io.ReadCloser, error) {
	switch ref.Scheme() {
	case "http", "https":
		return f.openHTTP(ctx, ref)
	case "s3":
		return f.openS3(ctx, ref)
	case "file":
		p, err := f.Path(ref)
		if err != nil {
			return nil, err
		}
		return os.Open(p)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, ref.Scheme())
	}
}

func (f *Fetcher) openHTTP(ctx context.Context, ref Ref) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref.URL(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", ref, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
	case resp.StatusCode >= 300:
		resp.Body.Close()
		return nil, fmt.Errorf("fetching %s: unexpected status %s", ref, resp.Status)
	}
	return resp.Body, nil
}

// splitS3 splits s3://bucket/key/parts into bucket and key.
func splitS3(ref Ref) (bucket, key string, err error) {
	rest := ref.URL()[len("s3://"):]
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: want s3://bucket/key, got %s", ErrInvalidAsset, ref)
	}
	return bucket, key, nil
}

func (f *Fetcher) openS3(ctx context.Context, ref Ref) (io.ReadCloser, error) {
	bucket, key, err := splitS3(ref)
	if err != nil {
		return nil, err
	}

	client, err := f.s3Client(ctx)
	if err != nil {
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		var notFound *types.NotFound
		if errors.As(err, &noKey) || errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
		}
		return nil, fmt.Errorf("getting %s: %w", ref, err)
	}
	return out.Body, nil
}

// s3Client builds the S3 client on first use so viewers of local files never
// touch the AWS credential chain.
func (f *Fetcher) s3Client(ctx context.Context) (objectGetter, error) {
	f.s3Once.Do(func() {
		if f.s3 != nil {
			return
		}
		opts := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(f.cfg.S3.Region),
		}
		if f.cfg.S3.AccessKeyID != "" {
			opts = append(opts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(f.cfg.S3.AccessKeyID, f.cfg.S3.SecretAccessKey, ""),
			))
		}
		if f.cfg.S3.Endpoint != "" {
			opts = append(opts, awsconfig.WithBaseEndpoint(f.cfg.S3.Endpoint))
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			f.s3Err = fmt.Errorf("loading aws config: %w", err)
			return
		}
		f.s3 = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.UsePathStyle = f.cfg.S3.UsePathStyle
		})
	})
	return f.s3, f.s3Err
}
