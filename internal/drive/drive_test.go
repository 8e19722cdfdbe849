package drive_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/idir-jpg/study-success-matching/internal/drive"
	"github.com/idir-jpg/study-success-matching/internal/graph"
)

type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func keyIs(key string) any {
	return mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return *in.Key == key && *in.Bucket == "desk"
	})
}

func TestS3Source_Fetch(t *testing.T) {
	t.Parallel()

	client := &MockS3Client{}
	client.On("GetObject", mock.Anything, keyIs("team/GESTION QUOTIDIENNE/Parent_Eleve_Prof.xlsx"), mock.Anything).
		Return(&s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader("xlsx"))}, nil)
	client.On("GetObject", mock.Anything, keyIs("team/missing.pdf"), mock.Anything).
		Return(nil, &types.NoSuchKey{})
	client.On("GetObject", mock.Anything, keyIs("team/secret.pdf"), mock.Anything).
		Return(nil, &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"})
	client.On("GetObject", mock.Anything, keyIs("team/slow.pdf"), mock.Anything).
		Return(nil, &smithy.GenericAPIError{Code: "SlowDown", Message: "slow down"})

	src, err := drive.NewS3Source(context.Background(), drive.S3Config{Bucket: "desk", Region: "eu-west-3", Prefix: "/team/"}, drive.WithS3Client(client))
	require.NoError(t, err)

	data, err := src.Fetch(context.Background(), "/GESTION QUOTIDIENNE/Parent_Eleve_Prof.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "xlsx", string(data))

	_, err = src.Fetch(context.Background(), "missing.pdf")
	assert.ErrorIs(t, err, drive.ErrFileNotFound)

	_, err = src.Fetch(context.Background(), "secret.pdf")
	assert.ErrorIs(t, err, drive.ErrAccessDenied)

	_, err = src.Fetch(context.Background(), "slow.pdf")
	assert.ErrorIs(t, err, drive.ErrFetch)

	_, err = src.Fetch(context.Background(), "../other-team/file.pdf")
	assert.ErrorIs(t, err, drive.ErrInvalidPath)

	client.AssertExpectations(t)
}

func TestNewS3Source_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := drive.NewS3Source(context.Background(), drive.S3Config{Region: "eu-west-3"})
	assert.ErrorIs(t, err, drive.ErrInvalidConfig)
}

func TestLocalSource_Fetch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "GESTION QUOTIDIENNE"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "GESTION QUOTIDIENNE", "Parent_Eleve_Prof.xlsx"), []byte("xlsx"), 0o644))

	src, err := drive.NewLocalSource(dir)
	require.NoError(t, err)

	data, err := src.Fetch(context.Background(), "GESTION QUOTIDIENNE/Parent_Eleve_Prof.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "xlsx", string(data))

	_, err = src.Fetch(context.Background(), "GESTION QUOTIDIENNE/absent.xlsx")
	assert.ErrorIs(t, err, drive.ErrFileNotFound)

	for _, p := range []string{"", "..", "../etc/passwd", "a/../../b"} {
		_, err = src.Fetch(context.Background(), p)
		assert.ErrorIs(t, err, drive.ErrInvalidPath, p)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Fetch(ctx, "GESTION QUOTIDIENNE/Parent_Eleve_Prof.xlsx")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = drive.NewLocalSource("")
	assert.ErrorIs(t, err, drive.ErrInvalidConfig)
}

type fakeDownloader map[string]error

func (f fakeDownloader) Download(_ context.Context, p string) ([]byte, error) {
	if err, ok := f[p]; ok {
		return nil, err
	}
	return []byte("content of " + p), nil
}

func TestGraphSource_Fetch(t *testing.T) {
	t.Parallel()

	src := drive.NewGraphSource(fakeDownloader{
		"missing.pdf": graph.ErrNotFound,
		"locked.pdf":  graph.ErrAccessDenied,
		"broken.pdf":  errors.New("connection reset"),
	})

	data, err := src.Fetch(context.Background(), "/GESTION QUOTIDIENNE/./Parent_Eleve_Prof.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "content of GESTION QUOTIDIENNE/Parent_Eleve_Prof.xlsx", string(data))

	_, err = src.Fetch(context.Background(), "missing.pdf")
	assert.ErrorIs(t, err, drive.ErrFileNotFound)
	_, err = src.Fetch(context.Background(), "locked.pdf")
	assert.ErrorIs(t, err, drive.ErrAccessDenied)
	_, err = src.Fetch(context.Background(), "broken.pdf")
	assert.ErrorIs(t, err, drive.ErrFetch)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	_, err := drive.Open(context.Background(), drive.Config{Backend: drive.BackendGraph}, nil)
	assert.ErrorIs(t, err, drive.ErrInvalidConfig)

	_, err = drive.Open(context.Background(), drive.Config{Backend: "ftp"}, nil)
	assert.ErrorIs(t, err, drive.ErrInvalidConfig)

	src, err := drive.Open(context.Background(), drive.Config{Backend: drive.BackendLocal, LocalDir: t.TempDir()}, nil)
	require.NoError(t, err)
	assert.IsType(t, &drive.LocalSource{}, src)
}

func TestPaths_ProfileResult(t *testing.T) {
	t.Parallel()

	p := drive.Paths{ProfileResults: "GESTION QUOTIDIENNE/TEST DE MEMOIRE"}
	assert.Equal(t, "GESTION QUOTIDIENNE/TEST DE MEMOIRE/Léo résultat profil d'apprentissage.pdf",
		p.ProfileResult("Léo résultat profil d'apprentissage.pdf"))
}
