package workitem

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseRelationshipType(t *testing.T) {
	tests := []struct {
		in      string
		want    RelationshipType
		wantErr bool
	}{
		{"PARENT", Parent, false},
		{"child", Child, false},
		{"blocked-by", BlockedBy, false},
		{"Relates To", RelatesTo, false},
		{" DUPLICATES ", Duplicates, false},
		{"owns", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRelationshipType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRelationshipType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseRelationshipType(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRelationshipType_String(t *testing.T) {
	for _, rt := range RelationshipTypes() {
		parsed, err := ParseRelationshipType(rt.String())
		if err != nil || parsed != rt {
			t.Errorf("%v does not parse back: %v, %v", rt, parsed, err)
		}
	}
	if got := RelationshipType(42).String(); got != "RelationshipType(42)" {
		t.Errorf("String() = %q", got)
	}
	if BlockedBy.Abbrev() != "B" {
		t.Errorf("Abbrev() = %q", BlockedBy.Abbrev())
	}
}

func TestLink_YAML(t *testing.T) {
	var l Link
	if err := yaml.Unmarshal([]byte("type: blocks\ntarget: WI-2\n"), &l); err != nil {
		t.Fatal(err)
	}
	if l.Type != Blocks || l.Target != "WI-2" {
		t.Errorf("decoded %+v", l)
	}

	if err := yaml.Unmarshal([]byte("type: owns\ntarget: WI-2\n"), &l); err == nil {
		t.Error("unknown relationship type should fail to decode")
	}

	out, err := yaml.Marshal(Link{Type: RelatesTo, Target: "WI-9"})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "type: RELATES_TO\ntarget: WI-9\n" {
		t.Errorf("Marshal() = %q", out)
	}
}
