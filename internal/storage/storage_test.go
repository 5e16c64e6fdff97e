package storage

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestObjectName(t *testing.T) {
	tests := []struct {
		filename string
		suffix   string
	}{
		{"photo.png", "-photo.png"},
		{"dir/clip.mp4", "-clip.mp4"},
		{`C:\Users\me\shot.jpg`, "-shot.jpg"},
		{"", "-upload"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			name := ObjectName(tt.filename)
			if !strings.HasSuffix(name, tt.suffix) {
				t.Errorf("ObjectName(%q) = %q, want suffix %q", tt.filename, name, tt.suffix)
			}
			if _, err := uuid.Parse(name[:36]); err != nil {
				t.Errorf("ObjectName(%q) = %q, want uuid prefix: %v", tt.filename, name, err)
			}
		})
	}
}

func TestObjectName_Unique(t *testing.T) {
	if ObjectName("a.png") == ObjectName("a.png") {
		t.Error("Expected distinct object names for repeated uploads")
	}
}
