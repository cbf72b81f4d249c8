package filter

import "testing"

func TestCheck_AllowsRegularURLs(t *testing.T) {
	f := New()

	allowed := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://vimeo.com/123456",
		"https://soundcloud.com/artist/track",
	}

	for _, url := range allowed {
		if decision := f.Check(url); decision.Blocked {
			t.Errorf("Expected %s to be allowed, blocked with reason: %s", url, decision.Reason)
		}
	}
}

func TestCheck_BlocksByDomain(t *testing.T) {
	f := New()

	blocked := []string{
		"https://pornhub.com/view?v=1",
		"https://www.xvideos.com/video1",
		"https://sub.redtube.com/page",
	}

	for _, url := range blocked {
		decision := f.Check(url)
		if !decision.Blocked {
			t.Errorf("Expected %s to be blocked", url)
		}
		if decision.Reason == "" {
			t.Errorf("Expected a reason for blocking %s", url)
		}
	}
}

func TestCheck_BlocksByKeyword(t *testing.T) {
	f := New()

	if decision := f.Check("https://example.com/free-xxx-videos"); !decision.Blocked {
		t.Error("Expected keyword match to block URL")
	}
}

func TestCheck_DomainSuffixNotSubstring(t *testing.T) {
	f := New()
	f.RemoveBlockedKeyword("sex")

	// essex.com ends with the letters of sex.com but is a different domain
	if decision := f.Check("https://essex.com/history"); decision.Blocked {
		t.Errorf("Expected essex.com to be allowed, blocked with reason: %s", decision.Reason)
	}
}

func TestAddRemoveBlockedDomain(t *testing.T) {
	f := New()

	f.AddBlockedDomain("example.org")
	if decision := f.Check("https://example.org/page"); !decision.Blocked {
		t.Error("Expected added domain to be blocked")
	}

	// Duplicate add is a no-op
	before := len(f.BlockedDomains())
	f.AddBlockedDomain("example.org")
	if len(f.BlockedDomains()) != before {
		t.Error("Expected duplicate domain add to be a no-op")
	}

	f.RemoveBlockedDomain("example.org")
	if decision := f.Check("https://example.org/page"); decision.Blocked {
		t.Errorf("Expected removed domain to be allowed, reason: %s", decision.Reason)
	}
}

func TestAddRemoveBlockedKeyword(t *testing.T) {
	f := New()

	f.AddBlockedKeyword("gambling")
	if decision := f.Check("https://example.com/gambling-tips"); !decision.Blocked {
		t.Error("Expected added keyword to block URL")
	}

	f.RemoveBlockedKeyword("gambling")
	if decision := f.Check("https://example.com/gambling-tips"); decision.Blocked {
		t.Error("Expected removed keyword to allow URL")
	}
}
