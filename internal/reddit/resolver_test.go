package reddit

import "testing"

func TestResolveUsername(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"bare name", "spez", "spez", false},
		{"u prefix", "u/spez", "spez", false},
		{"slash u prefix", "/u/spez", "spez", false},
		{"profile url", "https://www.reddit.com/user/spez", "spez", false},
		{"profile url trailing slash", "https://old.reddit.com/user/spez/", "spez", false},
		{"profile url with section", "https://www.reddit.com/user/spez/comments/", "spez", false},
		{"profile url with query", "https://www.reddit.com/user/spez?sort=new", "spez", false},
		{"short link", "https://redd.it/some_user", "some_user", false},
		{"foreign url last segment", "https://example.com/profiles/some_user", "some_user", false},
		{"surrounding space", "  spez  ", "spez", false},
		{"hyphen and underscore", "a-b_c", "a-b_c", false},
		{"empty", "", "", true},
		{"too short", "ab", "", true},
		{"too long", "this_name_is_far_too_long_to_be_real", "", true},
		{"illegal chars", "not a name", "", true},
		{"url without path", "https://example.com", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveUsername(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ResolveUsername(%q) = %q, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveUsername(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ResolveUsername(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
