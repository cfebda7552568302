package camera

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/snapbooth/snapbooth/pkg/errors"
)

func TestStubCamera_ProducesDecodableJPEG(t *testing.T) {
	cam := NewStubCamera(320, 240)

	data, err := cam.Capture(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	img, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())
}

func TestStubCamera_CancelledContext(t *testing.T) {
	cam := NewStubCamera(0, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cam.Capture(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecCamera_MissingCommand(t *testing.T) {
	logger := zerolog.Nop()
	cam := NewExecCamera("snapbooth-no-such-binary", []string{FilePlaceholder}, &logger)

	_, err := cam.Capture(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkgerrors.ErrCameraUnavailable))
}

func TestExecCamera_WritesThroughPlaceholder(t *testing.T) {
	logger := zerolog.Nop()
	// cp copies a known JPEG-ish payload into the placeholder path.
	src := writeTempFile(t, []byte("jpeg-bytes"))
	cam := NewExecCamera("cp", []string{src, FilePlaceholder}, &logger)

	data, err := cam.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)
}

func writeTempFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.jpg")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
