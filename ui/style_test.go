package ui

import (
	"strings"
	"testing"

	"curseforge-client/curseforge"
)

func TestReleaseBadge(t *testing.T) {
	tests := []struct {
		in   curseforge.FileReleaseType
		want string
	}{
		{curseforge.Release, "[release]"},
		{curseforge.Beta, "[beta]"},
		{curseforge.Alpha, "[alpha]"},
		{curseforge.FileReleaseType(9), "[unknown]"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := ReleaseBadge(tt.in); !strings.Contains(got, tt.want) {
				t.Errorf("ReleaseBadge(%d) = %q, want it to contain %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorize_KeepsText(t *testing.T) {
	if got := Colorize("Minecraft", 0xff0000); !strings.Contains(got, "Minecraft") {
		t.Errorf("expected text to survive styling, got %q", got)
	}
}
