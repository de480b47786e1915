package version

import "testing"

func TestCompare(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"1.0", "1.0", 0},
		{"1.2", "1.10", -1},
		{"2.0.0", "1.9.9", 1},
		{"1.0-SNAPSHOT", "1.0", -1},
		{"r09", "r10", -1},
		{"1.0", "r09", -1},
		{"", "1.0", 1},
		{"1.5x", "1.10", 1},
	}
	for _, tc := range cases {
		if got := Compare(tc.a, tc.b); got != tc.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestLessIsAntisymmetric(t *testing.T) {
	pairs := [][2]string{{"1.2", "1.10"}, {"1.0.0", "1.0"}, {"alpha", "beta"}}
	for _, p := range pairs {
		if Less(p[0], p[1]) && Less(p[1], p[0]) {
			t.Errorf("Less(%q, %q) and Less(%q, %q) both true", p[0], p[1], p[1], p[0])
		}
	}
}

// TestCompareIsTransitive checks every ordered triple of a mixed list.
func TestCompareIsTransitive(t *testing.T) {
	versions := []string{"1.9", "1.10", "1.5x", "1.0", "1.0.0", "r09", "", "2.0-SNAPSHOT", "Final"}
	for _, a := range versions {
		for _, b := range versions {
			for _, c := range versions {
				if Less(a, b) && Less(b, c) && !Less(a, c) {
					t.Errorf("%q < %q < %q but not %q < %q", a, b, c, a, c)
				}
			}
		}
	}
}
