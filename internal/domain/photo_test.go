package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPhotoName(t *testing.T) {
	date := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "PHOTO_240315_AB12CD34_1.jpg", PhotoName(date, "AB12CD34", 1))
	assert.Equal(t, "PHOTO_240315_AB12CD34_12.jpg", PhotoName(date, "AB12CD34", 12))
}

func TestNextPhotoCounter(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	id := Identifier("AB12CD34")

	tests := []struct {
		name     string
		existing []string
		want     int
	}{
		{
			name: "empty folder starts at 1",
			want: 1,
		},
		{
			name: "contiguous counters append",
			existing: []string{
				"PHOTO_240315_AB12CD34_1.jpg",
				"PHOTO_240315_AB12CD34_2.jpg",
			},
			want: 3,
		},
		{
			name: "hole left by deletion is refilled first",
			existing: []string{
				"PHOTO_240315_AB12CD34_1.jpg",
				"PHOTO_240315_AB12CD34_2.jpg",
				"PHOTO_240315_AB12CD34_4.jpg",
			},
			want: 3,
		},
		{
			name: "other dates do not reserve counters",
			existing: []string{
				"PHOTO_240314_AB12CD34_1.jpg",
				"PHOTO_240314_AB12CD34_2.jpg",
			},
			want: 1,
		},
		{
			name: "other identifiers do not reserve counters",
			existing: []string{
				"PHOTO_240315_ZZ99XX88_1.jpg",
			},
			want: 1,
		},
		{
			name: "unrelated files are ignored",
			existing: []string{
				"validation.json",
				"IMG_0001.jpg",
				"PHOTO_240315_AB12CD34_garbage.jpg",
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextPhotoCounter(tt.existing, date, id))
		})
	}
}

func TestIsImageName(t *testing.T) {
	assert.True(t, IsImageName("a.jpg"))
	assert.True(t, IsImageName("a.JPEG"))
	assert.True(t, IsImageName("a.png"))
	assert.False(t, IsImageName("a.gif"))
	assert.False(t, IsImageName("a.pdf"))
	assert.False(t, IsImageName("noextension"))
}
