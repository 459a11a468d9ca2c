package types

import (
	"errors"
	"testing"
)

func TestParseResourceTypeReference(t *testing.T) {
	tests := []struct {
		in      string
		fq      string
		version string
		wantErr bool
	}{
		{in: "Storage/accounts@2023-01-01", fq: "Storage/accounts", version: "2023-01-01"},
		{in: "Network/virtualNetworks/subnets@2023-04-01", fq: "Network/virtualNetworks/subnets", version: "2023-04-01"},
		{in: "Storage/accounts", wantErr: true},
		{in: "Storage@2023", wantErr: true},
		{in: "Storage//x@1", wantErr: true},
		{in: "A/b@1@2", wantErr: true},
		{in: "A/b@", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ref, err := ParseResourceTypeReference(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidResourceType) {
					t.Fatalf("expected ErrInvalidResourceType, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ref.FullyQualifiedType() != tt.fq || ref.Version != tt.version {
				t.Fatalf("got %s @ %s", ref.FullyQualifiedType(), ref.Version)
			}
			if ref.String() != tt.in {
				t.Fatalf("round trip: %q", ref.String())
			}
		})
	}
}
