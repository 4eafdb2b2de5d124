// SPDX-License-Identifier: EPL-2.0

package fetch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_Fetch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "clip.wav"), []byte("RIFF"), 0o600))

	data, err := File{}.Fetch(context.Background(), filepath.Join(dir, "clip.wav"))
	require.NoError(t, err)
	assert.Equal(t, []byte("RIFF"), data)

	data, err = File{Root: dir}.Fetch(context.Background(), "file://clip.wav")
	require.NoError(t, err)
	assert.Equal(t, []byte("RIFF"), data)

	_, err = File{Root: dir}.Fetch(context.Background(), "missing.wav")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = File{}.Fetch(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidSource)

	_, err = File{Root: dir, MaxSize: 2}.Fetch(context.Background(), "clip.wav")
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestFile_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := File{}.Fetch(ctx, "anything.wav")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTP_Fetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.mp3":
			assert.Equal(t, "aural-test", r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte("ID3 data"))
		case "/big.mp3":
			_, _ = w.Write(bytes.Repeat([]byte{1}, 64))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	h := HTTP{Client: srv.Client(), UserAgent: "aural-test"}

	data, err := h.Fetch(context.Background(), srv.URL+"/ok.mp3")
	require.NoError(t, err)
	assert.Equal(t, "ID3 data", string(data))

	_, err = h.Fetch(context.Background(), srv.URL+"/nope.mp3")
	assert.ErrorIs(t, err, ErrStatus)

	h.MaxSize = 16
	_, err = h.Fetch(context.Background(), srv.URL+"/big.mp3")
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = h.Fetch(context.Background(), "http://bad host/")
	assert.Error(t, err)
}

func TestHTTP_Cancelled(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := HTTP{Client: srv.Client()}.Fetch(ctx, srv.URL)
	assert.ErrorIs(t, err, context.Canceled)
}

type mockS3 struct {
	objects map[string]string
	calls   int
}

func (m *mockS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	m.calls++

	body, ok := m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}

	return &s3.GetObjectOutput{
		Body:          io.NopCloser(strings.NewReader(body)),
		ContentLength: aws.Int64(int64(len(body))),
	}, nil
}

func TestS3_Fetch(t *testing.T) {
	t.Parallel()

	client := &mockS3{objects: map[string]string{"sounds/fx/laser.ogg": "OggS"}}
	f := &S3{Client: client}

	data, err := f.Fetch(context.Background(), "s3://sounds/fx/laser.ogg")
	require.NoError(t, err)
	assert.Equal(t, "OggS", string(data))

	_, err = f.Fetch(context.Background(), "s3://sounds/missing.ogg")
	assert.Error(t, err)

	f.MaxSize = 2
	_, err = f.Fetch(context.Background(), "s3://sounds/fx/laser.ogg")
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = f.Fetch(context.Background(), "s3://bucket-only")
	assert.ErrorIs(t, err, ErrInvalidSource)
	assert.Equal(t, 3, client.calls)
}

func TestParseS3(t *testing.T) {
	t.Parallel()

	bucket, key, err := ParseS3("s3://b/a/b/c.wav")
	require.NoError(t, err)
	assert.Equal(t, "b", bucket)
	assert.Equal(t, "a/b/c.wav", key)

	for _, bad := range []string{"http://b/k", "s3:///k", "s3://b/", "%zz"} {
		_, _, err := ParseS3(bad)
		assert.ErrorIs(t, err, ErrInvalidSource, bad)
	}
}

func TestScheme(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"sounds/a.wav":      "file",
		"/abs/a.wav":        "file",
		`C:\sounds\a.wav`:   "file",
		"file:///a.wav":     "file",
		"HTTPS://x.test/a":  "https",
		"s3://bucket/a.ogg": "s3",
		"we ird://x":        "file",
	}

	for in, want := range tests {
		assert.Equal(t, want, Scheme(in), in)
	}
}

func TestMux_Fetch(t *testing.T) {
	t.Parallel()

	m := NewMux()
	m.Handle("MEM", Func(func(_ context.Context, source string) ([]byte, error) {
		return []byte(source), nil
	}))

	data, err := m.Fetch(context.Background(), "mem://x")
	require.NoError(t, err)
	assert.Equal(t, "mem://x", string(data))

	_, err = m.Fetch(context.Background(), "ftp://x")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)

	_, err = m.Fetch(context.Background(), "local.wav")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)
}

func TestDefault_ServesFiles(t *testing.T) {
	t.Parallel()

	name := filepath.Join(t.TempDir(), "a.wav")
	require.NoError(t, os.WriteFile(name, []byte("data"), 0o600))

	data, err := Default().Fetch(context.Background(), name)
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
}
