package components

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTabVisualWidthMatchesRender(t *testing.T) {
	for active := range Tabs {
		bar := RenderTabBar(active, 0)
		want := 1
		for i := range Tabs {
			want += TabVisualWidth(i, i == active)
		}
		want += (len(Tabs) - 1) * TabGap()
		if got := lipgloss.Width(bar); got != want {
			t.Fatalf("active=%d: bar width %d, summed widths %d", active, got, want)
		}
	}
}

func TestTabAtX(t *testing.T) {
	if got := TabAtX(0, 0); got != -1 {
		t.Fatalf("TabAtX(0) = %d, want -1", got)
	}
	if got := TabAtX(1, 0); got != 0 {
		t.Fatalf("TabAtX(1) = %d, want 0", got)
	}
	second := 1 + TabVisualWidth(0, true) + TabGap()
	if got := TabAtX(second, 0); got != 1 {
		t.Fatalf("TabAtX(%d) = %d, want 1", second, got)
	}
	if got := TabAtX(500, 0); got != -1 {
		t.Fatalf("TabAtX(500) = %d, want -1", got)
	}
}

func TestTabIdxByKey(t *testing.T) {
	cases := map[rune]int{'o': 0, 'c': 1, 'l': 2, 'b': 3, 'x': 4, 'z': -1}
	for key, want := range cases {
		if got := TabIdxByKey(key); got != want {
			t.Fatalf("TabIdxByKey(%q) = %d, want %d", key, got, want)
		}
	}
}
