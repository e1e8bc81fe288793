package checksum

import "testing"

func TestETag(t *testing.T) {
	a := ETag([]byte("<a> <b> <c> .\n"))
	b := ETag([]byte("<a> <b> <c> .\n"))
	c := ETag([]byte("<a> <b> <d> .\n"))
	if a != b {
		t.Errorf("same body, different tags: %s %s", a, b)
	}
	if a == c {
		t.Errorf("different bodies share tag %s", a)
	}
	if len(a) != 34 || a[0] != '"' || a[len(a)-1] != '"' {
		t.Errorf("malformed tag %s", a)
	}
}
