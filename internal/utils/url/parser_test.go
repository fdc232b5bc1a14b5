package urlutil

import "testing"

func TestValidate(t *testing.T) {
	valid := []string{
		"http://example.com",
		"https://food.grab.com/sg/en/restaurants?search=chinese-food",
	}
	for _, u := range valid {
		if err := ValidateURL(u); err != nil {
			t.Fatalf("expected valid, got error: %v", err)
		}
	}

	invalid := []string{"ftp://example.com", "//example.com", "http:///"}
	for _, u := range invalid {
		if err := ValidateURL(u); err == nil {
			t.Fatalf("expected invalid for %s", u)
		}
	}
}

func TestLastPathSegment(t *testing.T) {
	cases := map[string]string{
		"/sg/en/restaurant/chinese-kitchen-delivery/4-C2XXLYKVE?": "4-C2XXLYKVE?",
		"https://food.grab.com/a/b":                              "b",
		"plain":                                                  "plain",
		"/trailing/":                                             "",
	}
	for in, want := range cases {
		if got := LastPathSegment(in); got != want {
			t.Errorf("LastPathSegment(%q) = %q, want %q", in, got, want)
		}
	}
}
