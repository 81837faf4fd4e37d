package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDestination(t *testing.T) {
	d, err := ParseDestination("s3://charts/clarinet/demo.pdf")
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(Destination{Bucket: "charts", Key: "clarinet/demo.pdf"}, d)
	assert.Equal("s3://charts/clarinet/demo.pdf", d.String())
}

func TestParseDestinationRejects(t *testing.T) {
	for _, raw := range []string{
		"charts/demo.pdf",
		"https://charts/demo.pdf",
		"s3://charts",
		"s3://charts/",
		"s3:///demo.pdf",
		"",
	} {
		_, err := ParseDestination(raw)
		assert.ErrorIs(t, err, ErrDestination, raw)
	}
}

func TestObjectForPrefix(t *testing.T) {
	d, err := ParseDestination("s3://charts/clarinet/")
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("clarinet/chart.pdf", d.ObjectFor("out/chart.pdf").Key)

	exact := Destination{Bucket: "charts", Key: "a.pdf"}
	assert.Equal(exact, exact.ObjectFor("out/chart.pdf"))
}

func TestUploadMissingFile(t *testing.T) {
	dest := Destination{Bucket: "charts", Key: "a.pdf"}
	err := Upload(context.Background(), dest, filepath.Join(t.TempDir(), "nope.pdf"))
	assert.Error(t, err)
}
