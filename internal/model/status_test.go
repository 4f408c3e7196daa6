package model

import "testing"

func TestPresentStatusCoversEveryStatus(t *testing.T) {
	all := []Status{
		StatusUploading,
		StatusParsing,
		StatusTranslating,
		StatusCompleted,
		StatusFailed,
	}

	for _, s := range all {
		sv := PresentStatus(s)
		if sv.Icon == "" {
			t.Errorf("PresentStatus(%q) has empty icon", s)
		}
		if sv.Label == "" {
			t.Errorf("PresentStatus(%q) has empty label", s)
		}
	}
}

func TestPresentStatusTuplesAreDistinct(t *testing.T) {
	all := []Status{
		StatusUploading,
		StatusParsing,
		StatusTranslating,
		StatusCompleted,
		StatusFailed,
	}

	seen := make(map[StatusView]Status)
	for _, s := range all {
		sv := PresentStatus(s)
		if prev, dup := seen[sv]; dup {
			t.Errorf("statuses %q and %q present identically: %+v", prev, s, sv)
		}
		seen[sv] = s
	}
}

func TestPresentStatusCapabilities(t *testing.T) {
	tests := []struct {
		status    Status
		canEdit   bool
		canDelete bool
		spinning  bool
	}{
		{StatusUploading, false, true, false},
		{StatusParsing, false, true, true},
		{StatusTranslating, true, true, true},
		{StatusCompleted, true, true, false},
		{StatusFailed, false, true, false},
	}

	for _, tt := range tests {
		sv := PresentStatus(tt.status)
		if sv.CanEdit != tt.canEdit {
			t.Errorf("%s: CanEdit = %v, want %v", tt.status, sv.CanEdit, tt.canEdit)
		}
		if sv.CanDelete != tt.canDelete {
			t.Errorf("%s: CanDelete = %v, want %v", tt.status, sv.CanDelete, tt.canDelete)
		}
		if sv.Spinning != tt.spinning {
			t.Errorf("%s: Spinning = %v, want %v", tt.status, sv.Spinning, tt.spinning)
		}
	}
}

// An unrecognized status must render readably rather than panic or vanish,
// since the server may grow new statuses before the client does.
func TestPresentStatusUnknownFallsBack(t *testing.T) {
	sv := PresentStatus(Status("archively"))
	if sv.Label != "archively" {
		t.Errorf("unknown status label = %q, want raw value", sv.Label)
	}
	if sv.CanEdit {
		t.Error("unknown status should not be editable")
	}
	if !sv.CanDelete {
		t.Error("unknown status should still be deletable")
	}
}

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusUploading, false},
		{StatusParsing, false},
		{StatusTranslating, false},
		{StatusCompleted, true},
		{StatusFailed, true},
	}

	for _, tt := range tests {
		p := Project{Status: tt.status}
		if got := p.IsTerminal(); got != tt.want {
			t.Errorf("IsTerminal(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestLanguagePair(t *testing.T) {
	p := Project{SourceLanguage: "ko", TargetLanguage: "en"}
	if got := p.LanguagePair(); got != "KO → EN" {
		t.Errorf("LanguagePair() = %q", got)
	}
}
