package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "numeric key", content: "101"},
		{name: "empty string", content: ""},
		{name: "long content", content: "What are some guidelines for maintaining responsible session security with PHP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("101")
	id2 := IDFromContent("102")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}
