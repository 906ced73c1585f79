package bookhub_test

import (
	"encoding/json"
	"testing"

	"github.com/bookhub/admin-client/pkg/bookhub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNormalizePage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		want    bookhub.Page[int]
		wantErr bool
	}{
		{
			name: "paged object",
			data: `{"content":[1,2],"totalPages":4,"currentPage":1}`,
			want: bookhub.Page[int]{Content: []int{1, 2}, TotalPages: 4, CurrentPage: 1},
		},
		{
			name: "bare array",
			data: `[5,6,7]`,
			want: bookhub.Page[int]{Content: []int{5, 6, 7}, TotalPages: 1, Unpaged: true},
		},
		{
			name: "empty bare array",
			data: ` [] `,
			want: bookhub.Page[int]{Content: []int{}, TotalPages: 1, Unpaged: true},
		},
		{
			name: "paged object without content",
			data: `{"totalPages":0,"currentPage":0}`,
			want: bookhub.Page[int]{Content: []int{}},
		},
		{
			name: "null",
			data: `null`,
			want: bookhub.Page[int]{Content: []int{}},
		},
		{
			name:    "wrong item type",
			data:    `["a"]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			page, err := bookhub.NormalizePage[int]([]byte(tt.data))
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, *page)
		})
	}
}

func TestNormalizePage_BareArrayIsOnePage(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		items := rapid.SliceOf(rapid.Int()).Draw(t, "items")

		data, err := json.Marshal(items)
		require.NoError(t, err)

		page, err := bookhub.NormalizePage[int](data)
		require.NoError(t, err)

		assert.Equal(t, 1, page.TotalPages)
		assert.Equal(t, 0, page.CurrentPage)
		assert.True(t, page.Unpaged)
		assert.Len(t, page.Content, len(items))
	})
}

func TestEnvelope_Decode(t *testing.T) {
	t.Parallel()

	var envelope bookhub.Envelope[bookhub.Page[bookhub.Publisher]]

	err := json.Unmarshal([]byte(`{"code":"SU","message":"Success.","data":[{"publisherId":4,"publisherName":"Minumsa"}]}`), &envelope)
	require.NoError(t, err)

	require.True(t, envelope.Succeeded())
	require.NoError(t, envelope.Err())
	require.NotNil(t, envelope.Data)
	assert.True(t, envelope.Data.Unpaged)
	assert.Equal(t, "Minumsa", envelope.Data.Content[0].PublisherName)
}

func TestEnvelope_Err(t *testing.T) {
	t.Parallel()

	t.Run("nil envelope", func(t *testing.T) {
		t.Parallel()

		var envelope *bookhub.Status

		assert.False(t, envelope.Succeeded())
		require.ErrorIs(t, envelope.Err(), bookhub.ErrEmptyEnvelope)
	})

	t.Run("failure code", func(t *testing.T) {
		t.Parallel()

		envelope := &bookhub.Status{Code: "NP", Message: "No permission."}

		err := envelope.Err()
		require.Error(t, err)
		assert.True(t, bookhub.IsRemote(err))
		assert.Equal(t, "No permission.", bookhub.DisplayMessage(err))

		failure := bookhub.AsFailure(err)
		assert.Equal(t, "NP", failure.Code)
	})
}
