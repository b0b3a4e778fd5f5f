package services

import "testing"

func TestSecureJoin(t *testing.T) {
	root := "/srv/uploads/alice/alice-amp"

	cases := []struct {
		rel string
		ok  bool
	}{
		{"bom.csv", true},
		{"gerber/top.gbr", true},
		{"/leading/slash.txt", true},
		{"../sibling.txt", false},
		{"../../other-user/file.txt", false},
		{"a/../../escape.txt", false},
		{"", false},
	}
	for _, c := range cases {
		_, err := secureJoin(root, c.rel)
		if c.ok && err != nil {
			t.Errorf("secureJoin(%q) unexpectedly failed: %v", c.rel, err)
		}
		if !c.ok && err == nil {
			t.Errorf("secureJoin(%q) should have been rejected", c.rel)
		}
	}
}

func TestSanitizeStorageName(t *testing.T) {
	cases := map[string]string{
		"Audio Amp v2": "Audio_Amp_v2",
		"../../etc":    "etc",
		"   ":          "project",
		"board.rev1":   "board.rev1",
	}
	for in, want := range cases {
		if got := sanitizeStorageName(in); got != want {
			t.Errorf("sanitizeStorageName(%q) = %q, want %q", in, got, want)
		}
	}
}
