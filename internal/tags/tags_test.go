package tags_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sirius241/Pharmacy-Managment-System/domain"
	"github.com/Sirius241/Pharmacy-Managment-System/internal/tags"
)

var catalog = &mockCatalog{drugs: map[int64]domain.Drug{
	1: {ID: 1, Name: "Paracetamol", Description: "Used for pain relief and fever reduction."},
	2: {ID: 2, Name: "Aspirin", Description: "Used for pain relief and to reduce inflammation."},
}}

func TestPayloadFormat(t *testing.T) {
	assert.Equal(t, "Medicine ID: 2\nName: Aspirin", tags.Payload(2, "Aspirin"))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	png, err := tags.Encode(2, "Aspirin")
	require.NoError(t, err)
	require.NotEmpty(t, png)

	payload, err := tags.Decode(bytes.NewReader(png))
	require.NoError(t, err)
	assert.Equal(t, tags.Payload(2, "Aspirin"), payload)

	// Round-tripped payload resolves to the same description as a direct lookup.
	resolver := tags.NewResolver(catalog)
	viaTag, err := resolver.Describe(context.Background(), payload)
	require.NoError(t, err)
	direct, err := resolver.Describe(context.Background(), tags.Payload(2, "Aspirin"))
	require.NoError(t, err)
	assert.Equal(t, direct, viaTag)
	assert.Equal(t, "Used for pain relief and to reduce inflammation.", viaTag)
}

func TestDecodeImageWithoutTag(t *testing.T) {
	var blank bytes.Buffer
	require.NoError(t, png.Encode(&blank, image.NewRGBA(image.Rect(0, 0, 64, 64))))

	_, err := tags.Decode(&blank)
	require.ErrorIs(t, err, tags.ErrNoTagDetected)
}

func TestDescribeUnknownPayload(t *testing.T) {
	resolver := tags.NewResolver(catalog)

	for _, payload := range []string{
		"Medicine ID: 99\nName: Quinine", // unknown id
		"Medicine ID: 1\nName: Aspirin",  // id and name disagree
		"not a tag payload",
	} {
		desc, err := resolver.Describe(context.Background(), payload)
		require.NoError(t, err, payload)
		assert.Equal(t, tags.NotFoundMessage, desc, payload)
	}
}

type mockCatalog struct {
	drugs map[int64]domain.Drug
}

func (m *mockCatalog) DrugByID(_ context.Context, id int64) (domain.Drug, error) {
	drug, ok := m.drugs[id]
	if !ok {
		return domain.Drug{}, domain.ErrNotFound
	}
	return drug, nil
}
