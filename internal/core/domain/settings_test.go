package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	require.NoError(t, s.Validate())
	assert.Equal(t, 500, s.ChunkSize)
	assert.Equal(t, 50, s.ChunkOverlap)
	assert.Equal(t, 5, s.TopK)
	assert.InDelta(t, 0.7, s.MinScore, 1e-9)
	assert.Equal(t, 1024, s.EmbeddingDimensions)
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr error
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Settings) {},
		},
		{
			name:    "overlap equal to chunk size",
			mutate:  func(s *Settings) { s.ChunkOverlap = s.ChunkSize },
			wantErr: ErrInvalidChunking,
		},
		{
			name:    "overlap larger than chunk size",
			mutate:  func(s *Settings) { s.ChunkOverlap = s.ChunkSize + 1 },
			wantErr: ErrInvalidChunking,
		},
		{
			name:    "negative overlap",
			mutate:  func(s *Settings) { s.ChunkOverlap = -1 },
			wantErr: ErrInvalidChunking,
		},
		{
			name:    "zero chunk size",
			mutate:  func(s *Settings) { s.ChunkSize = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "score above one",
			mutate:  func(s *Settings) { s.MinScore = 1.5 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero top k",
			mutate:  func(s *Settings) { s.TopK = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero dimensions",
			mutate:  func(s *Settings) { s.EmbeddingDimensions = 0 },
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)

			err := s.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
