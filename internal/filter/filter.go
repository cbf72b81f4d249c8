package filter

// Package filter implements a lightweight URL content filter. It is consulted
// by the caller before a job is submitted; the scheduler itself never filters.

import (
	"log"
	"net/url"
	"regexp"
	"strings"
	"sync"
)

// Decision is the outcome of a filter check
type Decision struct {
	Blocked bool
	Reason  string
}

// Default blocklists, normalized to lowercase
var (
	defaultBlockedDomains = []string{
		"pornhub.com",
		"xvideos.com",
		"xhamster.com",
		"redtube.com",
		"youporn.com",
		"tube8.com",
		"spankbang.com",
		"xnxx.com",
		"beeg.com",
		"sex.com",
	}

	defaultBlockedKeywords = []string{
		"porn", "xxx", "sex", "nude", "naked",
		"adult", "nsfw", "erotic", "fetish",
		"cam", "strip", "escort",
	}
)

// ContentFilter blocks URLs by domain suffix or by keyword match. Unparseable
// URLs are blocked rather than silently allowed.
type ContentFilter struct {
	mu             sync.RWMutex
	blockedDomains []string
	blockedWords   []string
	wordPattern    *regexp.Regexp
}

// New creates a filter preloaded with the default blocklists
func New() *ContentFilter {
	f := &ContentFilter{
		blockedDomains: append([]string(nil), defaultBlockedDomains...),
		blockedWords:   append([]string(nil), defaultBlockedKeywords...),
	}
	f.recompile()
	return f
}

// Check decides whether rawURL should be blocked
func (f *ContentFilter) Check(rawURL string) Decision {
	f.mu.RLock()
	defer f.mu.RUnlock()

	parsed, err := url.Parse(strings.TrimSpace(strings.ToLower(rawURL)))
	if err != nil {
		// Fail safe: better to block than to allow silently
		log.Printf("Filter: error parsing URL %q: %v", rawURL, err)
		return Decision{Blocked: true, Reason: "unparseable URL"}
	}

	domain := strings.TrimPrefix(parsed.Hostname(), "www.")
	for _, blocked := range f.blockedDomains {
		if domain == blocked || strings.HasSuffix(domain, "."+blocked) {
			log.Printf("Filter: blocked by domain: %s", domain)
			return Decision{Blocked: true, Reason: "blocked domain: " + blocked}
		}
	}

	if f.wordPattern != nil && f.wordPattern.MatchString(rawURL) {
		log.Printf("Filter: blocked by keyword in URL: %s", rawURL)
		return Decision{Blocked: true, Reason: "blocked keyword in URL"}
	}

	return Decision{}
}

// AddBlockedDomain adds a domain to the blocklist
func (f *ContentFilter) AddBlockedDomain(domain string) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.blockedDomains {
		if existing == domain {
			return
		}
	}
	f.blockedDomains = append(f.blockedDomains, domain)
}

// RemoveBlockedDomain removes a domain from the blocklist
func (f *ContentFilter) RemoveBlockedDomain(domain string) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.blockedDomains {
		if existing == domain {
			f.blockedDomains = append(f.blockedDomains[:i], f.blockedDomains[i+1:]...)
			return
		}
	}
}

// AddBlockedKeyword adds a keyword and recompiles the pattern
func (f *ContentFilter) AddBlockedKeyword(keyword string) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.blockedWords {
		if existing == keyword {
			return
		}
	}
	f.blockedWords = append(f.blockedWords, keyword)
	f.recompileLocked()
}

// RemoveBlockedKeyword removes a keyword and recompiles the pattern
func (f *ContentFilter) RemoveBlockedKeyword(keyword string) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.blockedWords {
		if existing == keyword {
			f.blockedWords = append(f.blockedWords[:i], f.blockedWords[i+1:]...)
			f.recompileLocked()
			return
		}
	}
}

// BlockedDomains returns a copy of the domain blocklist
func (f *ContentFilter) BlockedDomains() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string(nil), f.blockedDomains...)
}

// BlockedKeywords returns a copy of the keyword blocklist
func (f *ContentFilter) BlockedKeywords() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string(nil), f.blockedWords...)
}

func (f *ContentFilter) recompile() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recompileLocked()
}

func (f *ContentFilter) recompileLocked() {
	if len(f.blockedWords) == 0 {
		f.wordPattern = nil
		return
	}
	escaped := make([]string, len(f.blockedWords))
	for i, word := range f.blockedWords {
		escaped[i] = regexp.QuoteMeta(word)
	}
	f.wordPattern = regexp.MustCompile("(?i)(" + strings.Join(escaped, "|") + ")")
}
